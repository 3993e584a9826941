// Package deck describes a slide deck independently of any file format:
// slides, their shapes, text runs with their fonts, and the theme colours
// those fonts may refer to. Values are plain data; renderers build new
// decks instead of editing shared ones.
package deck

import "strings"

// EMUPerPoint is the number of English Metric Units in a typographic point.
const (
	EMUPerInch  = 914400
	EMUPerPoint = 12700
)

// Deck is an ordered list of slides plus the colour theme they share.
type Deck struct {
	Slides []Slide
	Theme  Theme
	Width  int64 // slide size in EMU
	Height int64
}

// Slide is one slide. Source names the slide part the slide was read from
// (or is modelled on) and Layout the slide layout part it uses.
type Slide struct {
	Source     string
	Layout     string
	LayoutName string
	Shapes     []Shape
}

// ShapeKind tells which of Text or Picture a shape carries.
type ShapeKind int

const (
	ShapeOther ShapeKind = iota
	ShapeText
	ShapePicture
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeText:
		return "TEXT_BOX"
	case ShapePicture:
		return "PICTURE"
	default:
		return "OTHER"
	}
}

// Frame is a shape's position and size in EMU.
type Frame struct {
	X, Y          int64
	Width, Height int64
}

// Shape is a top-level shape of a slide. ID and Name come from the shape's
// non-visual properties and are unique within a slide.
type Shape struct {
	ID       int
	Name     string
	Kind     ShapeKind
	Frame    Frame
	HasFrame bool // false when the shape inherits its frame from the layout
	Text     *TextFrame
	Picture  *Picture
	// Nested holds the text bodies inside a group or table shape, in
	// document order. Text shapes carry their own text in Text.
	Nested []*TextFrame
}

// TextFrame is the text body of a shape.
type TextFrame struct {
	Paragraphs []Paragraph
}

// Align is a paragraph's horizontal alignment, using DrawingML values.
type Align string

const (
	AlignInherit Align = ""
	AlignLeft    Align = "l"
	AlignCenter  Align = "ctr"
	AlignRight   Align = "r"
	AlignJustify Align = "just"
)

// Paragraph is a list of runs with one alignment and indent level.
type Paragraph struct {
	Align Align
	Level int
	Runs  []Run
}

// Run is a span of text sharing one font. A run whose Text is "\n" is a
// line break.
type Run struct {
	Text string
	Font Font
}

// Font is the character formatting of a run. Zero values mean "inherit":
// empty names, Size 0, nil Bold/Italic, empty Underline, nil Color.
type Font struct {
	Family    string // Latin typeface
	EastAsian string // East Asian typeface
	Size      int    // hundredths of a point
	Bold      *bool
	Italic    *bool
	Underline string // DrawingML underline style, "none" to switch off
	Color     *Color
}

// Picture is an embedded image.
type Picture struct {
	Data        []byte
	ContentType string
}

// Bool returns a pointer to v, for Font.Bold and Font.Italic.
func Bool(v bool) *bool {
	return &v
}

// Text returns the paragraph text with runs concatenated.
func (p Paragraph) Text() string {
	var b strings.Builder
	for _, r := range p.Runs {
		b.WriteString(r.Text)
	}
	return b.String()
}

// Text returns the text of all paragraphs joined with newlines.
func (t *TextFrame) Text() string {
	if t == nil {
		return ""
	}
	lines := make([]string, len(t.Paragraphs))
	for i, p := range t.Paragraphs {
		lines[i] = p.Text()
	}
	return strings.Join(lines, "\n")
}

// Text returns the slide's text, one text body per line, nested text after
// the shape's own.
func (s Slide) Text() string {
	var parts []string
	for _, sh := range s.Shapes {
		if sh.Text != nil {
			parts = append(parts, sh.Text.Text())
		}
		for _, tf := range sh.Nested {
			if tf != nil {
				parts = append(parts, tf.Text())
			}
		}
	}
	return strings.Join(parts, "\n")
}
