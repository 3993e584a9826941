package export

import (
	"fmt"
	"strings"

	"birthdayppt/deck"
	"birthdayppt/i18n"
)

// InspectTemplate describes a template deck: the slide count, then every
// slide's layout and shapes with their kind, name, text and first run colour.
// Text inside groups and tables is listed under the containing shape.
func InspectTemplate(d deck.Deck) string {
	var b strings.Builder
	line := func(key string, args ...interface{}) {
		b.WriteString(i18n.T(key, args...))
		b.WriteByte('\n')
	}

	line("inspect.slide_count", len(d.Slides))
	for i, s := range d.Slides {
		line("inspect.slide", i+1)
		layout := s.LayoutName
		if layout == "" {
			layout = s.Layout
		}
		line("inspect.layout", layout)
		line("inspect.shapes")
		for j, sh := range s.Shapes {
			line("inspect.shape", j+1)
			line("inspect.shape_type", sh.Kind)
			line("inspect.shape_name", sh.Name)
			if sh.Text != nil {
				line("inspect.shape_text", strings.ReplaceAll(sh.Text.Text(), "\n", " / "))
				if c := firstColor(sh.Text); c != nil {
					line("inspect.shape_color", describeColor(d.Theme, c))
				}
			}
			for _, tf := range sh.Nested {
				line("inspect.shape_text", strings.ReplaceAll(tf.Text(), "\n", " / "))
			}
		}
	}
	return b.String()
}

func firstColor(tf *deck.TextFrame) *deck.Color {
	for _, p := range tf.Paragraphs {
		for _, r := range p.Runs {
			if r.Font.Color != nil {
				return r.Font.Color
			}
		}
	}
	return nil
}

func describeColor(th deck.Theme, c *deck.Color) string {
	res, err := th.Resolve(c)
	if err != nil {
		return fmt.Sprintf("%s (?)", c)
	}
	if res.Alpha < 100000 {
		return fmt.Sprintf("%s (#%s, alpha %d%%)", c, res.RGB, res.Alpha/1000)
	}
	return fmt.Sprintf("%s (#%s)", c, res.RGB)
}
