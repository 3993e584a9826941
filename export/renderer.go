package export

import (
	"fmt"
	"strconv"
	"strings"

	"birthdayppt/birthday"
	"birthdayppt/deck"
	"birthdayppt/i18n"

	"github.com/jinzhu/copier"
)

// Placeholders recognised in template text.
const (
	PlaceholderMonth = "{month}"
	PlaceholderName  = "{name}"
	PlaceholderDay   = "{day}"
)

// Template slide positions.
const (
	titleSlideIndex  = 0
	personSlideIndex = 1
)

// Logger is the part of logger.Logger the renderer writes to.
type Logger interface {
	Logf(format string, args ...interface{})
	Warnf(format string, args ...interface{})
}

// SlideRenderer turns a template deck and a month's birthday people into
// the output deck: the title slide with the month filled in, then one slide
// per person modelled on the template's second slide. The template deck is
// never modified.
type SlideRenderer struct {
	FontFamily string
	log        Logger
}

// NewSlideRenderer creates a renderer that forces fontFamily on every run it
// writes. An empty fontFamily keeps the template's typefaces.
func NewSlideRenderer(fontFamily string, log Logger) *SlideRenderer {
	return &SlideRenderer{FontFamily: fontFamily, log: log}
}

func (r *SlideRenderer) logf(format string, args ...interface{}) {
	if r.log != nil {
		r.log.Logf(format, args...)
	}
}

func (r *SlideRenderer) warnf(format string, args ...interface{}) {
	if r.log != nil {
		r.log.Warnf(format, args...)
	}
}

// Render builds the output deck. Input is checked before any slide is
// touched: month must be 1..12, people non-empty and complete, and the
// template must carry a title slide and a person slide.
func (r *SlideRenderer) Render(month int, people []birthday.Person, tmpl deck.Deck) (deck.Deck, error) {
	if err := CheckInput(month, people); err != nil {
		return deck.Deck{}, err
	}
	if len(tmpl.Slides) <= personSlideIndex {
		return deck.Deck{}, newError(KindTemplate, StageTemplate,
			i18n.T("render.template_slides", len(tmpl.Slides)), nil)
	}

	out := deck.Deck{Width: tmpl.Width, Height: tmpl.Height}
	if err := deepCopy(&out.Theme, tmpl.Theme); err != nil {
		return deck.Deck{}, newError(KindRender, StageTemplate,
			i18n.T("render.template_unreadable", err.Error()), err)
	}

	title, err := r.renderTitle(tmpl.Slides[titleSlideIndex], month)
	if err != nil {
		return deck.Deck{}, newError(KindRender, StageTitle, i18n.T("render.title_failed", err.Error()), err)
	}
	out.Slides = append(out.Slides, title)

	// Slides after the person slide stay, ahead of the generated ones.
	for _, s := range tmpl.Slides[personSlideIndex+1:] {
		kept, err := cloneSlide(s)
		if err != nil {
			return deck.Deck{}, newError(KindRender, StageTemplate, i18n.T("render.slide_failed", err.Error()), err)
		}
		out.Slides = append(out.Slides, kept)
	}

	for _, p := range people {
		s, err := r.renderPerson(tmpl.Slides[personSlideIndex], month, p)
		if err != nil {
			return deck.Deck{}, newError(KindRender, StagePerson, i18n.T("render.slide_failed", err.Error()), err)
		}
		out.Slides = append(out.Slides, s)
	}
	r.logf("%s", i18n.T("render.template_removed"))
	return out, nil
}

// CheckInput validates the month and the people list.
func CheckInput(month int, people []birthday.Person) error {
	if month < 1 || month > 12 {
		return newError(KindInvalidInput, StageInput, i18n.T("render.invalid_month", month), nil)
	}
	if len(people) == 0 {
		return newError(KindInvalidInput, StageInput, i18n.T("render.empty_people"), nil)
	}
	for i, p := range people {
		if err := p.Check(); err != nil {
			return newError(KindInvalidInput, StageInput, i18n.T("render.invalid_person", i+1, err.Error()), err)
		}
		if int(p.BirthDate.Month()) != month {
			return newError(KindInvalidInput, StageInput,
				i18n.T("render.month_mismatch", i+1, p.Name, int(p.BirthDate.Month())), nil)
		}
	}
	return nil
}

func (r *SlideRenderer) renderTitle(src deck.Slide, month int) (deck.Slide, error) {
	s, err := cloneSlide(src)
	if err != nil {
		return deck.Slide{}, err
	}
	m := strconv.Itoa(month)
	for i := range s.Shapes {
		r.titleText(s.Shapes[i].Text, m)
		for _, tf := range s.Shapes[i].Nested {
			r.titleText(tf, m)
		}
	}
	return s, nil
}

// titleText fills in the month run by run, so every run keeps its font.
func (r *SlideRenderer) titleText(tf *deck.TextFrame, month string) {
	if tf == nil {
		return
	}
	for pi := range tf.Paragraphs {
		runs := tf.Paragraphs[pi].Runs
		for ri := range runs {
			if strings.Contains(runs[ri].Text, PlaceholderMonth) {
				replaced := strings.ReplaceAll(runs[ri].Text, PlaceholderMonth, month)
				r.logf("%s", i18n.T("render.text_replaced", runs[ri].Text, replaced))
				runs[ri].Text = replaced
			}
			r.forceFamily(&runs[ri].Font)
		}
	}
}

func (r *SlideRenderer) renderPerson(src deck.Slide, month int, p birthday.Person) (deck.Slide, error) {
	s := deck.Slide{Source: src.Source, Layout: src.Layout, LayoutName: src.LayoutName}
	repl := strings.NewReplacer(
		PlaceholderName, p.Name,
		PlaceholderMonth, strconv.Itoa(month),
		PlaceholderDay, strconv.Itoa(p.Day()),
	)
	for _, sh := range src.Shapes {
		if sh.Kind == deck.ShapeText && sh.Text != nil {
			s.Shapes = append(s.Shapes, deck.Shape{
				ID:       sh.ID,
				Name:     sh.Name,
				Kind:     sh.Kind,
				Frame:    sh.Frame,
				HasFrame: sh.HasFrame,
				Text:     r.personText(sh.Name, sh.Text, repl),
			})
			continue
		}
		// Pictures and every other shape are carried over; text inside
		// groups and tables is filled in like a text box.
		cloned, err := cloneShape(sh)
		if err != nil {
			return deck.Slide{}, fmt.Errorf("failed to copy shape %q: %w", sh.Name, err)
		}
		if len(sh.Nested) > 0 {
			cloned.Nested = make([]*deck.TextFrame, len(sh.Nested))
			for i, tf := range sh.Nested {
				if tf != nil {
					cloned.Nested[i] = r.personText(sh.Name, tf, repl)
				}
			}
		}
		s.Shapes = append(s.Shapes, cloned)
	}
	return s, nil
}

// personText rebuilds a text body paragraph by paragraph. Each paragraph
// keeps its alignment and level and becomes a single run styled like its
// first original run.
func (r *SlideRenderer) personText(shape string, src *deck.TextFrame, repl *strings.Replacer) *deck.TextFrame {
	out := &deck.TextFrame{}
	for _, para := range src.Paragraphs {
		np := deck.Paragraph{Align: para.Align, Level: para.Level}
		if len(para.Runs) > 0 {
			np.Runs = []deck.Run{{
				Text: repl.Replace(para.Text()),
				Font: r.personFont(shape, para.Runs[0].Font),
			}}
		}
		out.Paragraphs = append(out.Paragraphs, np)
	}
	return out
}

func (r *SlideRenderer) personFont(shape string, src deck.Font) deck.Font {
	f := deck.Font{
		Family:    src.Family,
		EastAsian: src.EastAsian,
		Size:      src.Size,
		Bold:      copyBool(src.Bold),
		Italic:    copyBool(src.Italic),
		Underline: src.Underline,
	}
	r.forceFamily(&f)
	// A colour that cannot be copied leaves the run with the inherited colour.
	c, err := src.Color.Copy()
	if err != nil {
		r.warnf("%s", i18n.T("render.color_copy_failed", shape, err))
		return f
	}
	f.Color = c
	return f
}

func (r *SlideRenderer) forceFamily(f *deck.Font) {
	if r.FontFamily == "" {
		return
	}
	f.Family = r.FontFamily
	f.EastAsian = r.FontFamily
}

func copyBool(b *bool) *bool {
	if b == nil {
		return nil
	}
	v := *b
	return &v
}

func cloneSlide(s deck.Slide) (deck.Slide, error) {
	var out deck.Slide
	if err := deepCopy(&out, s); err != nil {
		return deck.Slide{}, err
	}
	return out, nil
}

func cloneShape(sh deck.Shape) (deck.Shape, error) {
	var out deck.Shape
	if err := deepCopy(&out, sh); err != nil {
		return deck.Shape{}, err
	}
	return out, nil
}

func deepCopy(dst, src interface{}) error {
	if err := copier.CopyWithOption(dst, src, copier.Option{DeepCopy: true}); err != nil {
		return fmt.Errorf("failed to copy: %w", err)
	}
	return nil
}
