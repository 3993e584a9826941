package export

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"
	"time"

	"birthdayppt/birthday"
	"birthdayppt/deck"
	"birthdayppt/i18n"
	"birthdayppt/pptx"
	"birthdayppt/pptx/pptxtest"
)

type recordLogger struct {
	infos []string
	warns []string
}

func (l *recordLogger) Logf(format string, args ...interface{}) {
	l.infos = append(l.infos, fmt.Sprintf(format, args...))
}

func (l *recordLogger) Warnf(format string, args ...interface{}) {
	l.warns = append(l.warns, fmt.Sprintf(format, args...))
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func januaryPeople() []birthday.Person {
	return []birthday.Person{
		{Name: "홍길동", Gender: "남", BirthDate: date(1990, time.January, 15), Age: 36},
		{Name: "김영희", Gender: "여", BirthDate: date(1992, time.January, 22), Age: 34},
	}
}

func templateDeck(t *testing.T, opts pptxtest.Options) deck.Deck {
	t.Helper()
	data, err := pptxtest.Build(opts)
	if err != nil {
		t.Fatalf("failed to build template: %v", err)
	}
	p, err := pptx.OpenBytes(data)
	if err != nil {
		t.Fatalf("failed to open template: %v", err)
	}
	d, err := p.Deck()
	if err != nil {
		t.Fatalf("failed to read template: %v", err)
	}
	return d
}

func TestRender_TitleAndPersonSlides(t *testing.T) {
	log := &recordLogger{}
	r := NewSlideRenderer("맑은 고딕", log)
	tmpl := templateDeck(t, pptxtest.Default)

	out, err := r.Render(1, januaryPeople(), tmpl)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if len(out.Slides) != 3 {
		t.Fatalf("got %d slides, want 3", len(out.Slides))
	}
	if out.Width != tmpl.Width || out.Height != tmpl.Height {
		t.Errorf("slide size %dx%d, want %dx%d", out.Width, out.Height, tmpl.Width, tmpl.Height)
	}
	if !reflect.DeepEqual(out.Theme, tmpl.Theme) {
		t.Errorf("theme = %+v, want %+v", out.Theme, tmpl.Theme)
	}

	// Title slide
	title := out.Slides[0]
	if title.Source != tmpl.Slides[0].Source {
		t.Errorf("title source = %q, want %q", title.Source, tmpl.Slides[0].Source)
	}
	runs := title.Shapes[0].Text.Paragraphs[0].Runs
	if runs[0].Text != "1" || runs[1].Text != "월 생일자" {
		t.Errorf("title runs = %q %q", runs[0].Text, runs[1].Text)
	}
	for _, run := range runs {
		if run.Font.Family != "맑은 고딕" || run.Font.EastAsian != "맑은 고딕" {
			t.Errorf("title run %q font = %q/%q", run.Text, run.Font.Family, run.Font.EastAsian)
		}
		if run.Font.Size != 4400 || run.Font.Bold == nil || !*run.Font.Bold {
			t.Errorf("title run %q lost size or bold: %+v", run.Text, run.Font)
		}
	}
	if c := runs[0].Font.Color; c == nil || c.Kind != deck.ColorScheme || c.Value != "tx1" {
		t.Errorf("title colour = %v, want scheme tx1", c)
	}
	if got := title.Shapes[1].Text.Text(); got != "Happy Birthday" {
		t.Errorf("subtitle = %q", got)
	}

	// Person slides, in input order
	for i, want := range []struct{ name, date string }{{"홍길동님", "1월 15일"}, {"김영희님", "1월 22일"}} {
		s := out.Slides[1+i]
		if s.Source != tmpl.Slides[1].Source || s.Layout != tmpl.Slides[1].Layout {
			t.Errorf("slide %d modelled on %q/%q", i+1, s.Source, s.Layout)
		}
		if len(s.Shapes) != 3 {
			t.Fatalf("slide %d has %d shapes, want 3", i+1, len(s.Shapes))
		}
		paras := s.Shapes[1].Text.Paragraphs
		if len(paras) != 3 {
			t.Fatalf("slide %d has %d paragraphs, want 3", i+1, len(paras))
		}
		if got := paras[0].Text(); got != want.name {
			t.Errorf("slide %d name = %q, want %q", i+1, got, want.name)
		}
		if got := paras[1].Text(); got != want.date {
			t.Errorf("slide %d date = %q, want %q", i+1, got, want.date)
		}
		for j, p := range paras {
			if len(p.Runs) != 1 {
				t.Errorf("slide %d paragraph %d has %d runs, want 1", i+1, j, len(p.Runs))
			}
		}
	}
	if len(log.infos) == 0 || !strings.Contains(log.infos[0], "{month}") {
		t.Errorf("log = %q, want the title replacement first", log.infos)
	}
}

func TestRender_PersonFontCopied(t *testing.T) {
	log := &recordLogger{}
	r := NewSlideRenderer("맑은 고딕", log)
	out, err := r.Render(1, januaryPeople()[:1], templateDeck(t, pptxtest.Default))
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	paras := out.Slides[1].Shapes[1].Text.Paragraphs

	name := paras[0]
	if name.Align != deck.AlignLeft {
		t.Errorf("name align = %q", name.Align)
	}
	f := name.Runs[0].Font
	if f.Family != "맑은 고딕" || f.EastAsian != "맑은 고딕" {
		t.Errorf("name font = %q/%q", f.Family, f.EastAsian)
	}
	if f.Size != 3600 || f.Bold == nil || !*f.Bold || f.Underline != "sng" {
		t.Errorf("name font lost size, bold or underline: %+v", f)
	}
	if f.Color == nil || f.Color.Kind != deck.ColorRGB || f.Color.Value != "C00000" {
		t.Fatalf("name colour = %v", f.Color)
	}
	if a, ok := f.Color.Transform("alpha"); !ok || a != 80000 {
		t.Errorf("name alpha = %d, %v", a, ok)
	}

	day := paras[1]
	if day.Align != deck.AlignCenter || day.Level != 1 {
		t.Errorf("date paragraph align/level = %q/%d", day.Align, day.Level)
	}
	df := day.Runs[0].Font
	if df.Italic == nil || !*df.Italic || df.Size != 2800 {
		t.Errorf("date font = %+v", df)
	}
	if df.Color == nil || df.Color.Kind != deck.ColorScheme || df.Color.Value != "accent1" {
		t.Fatalf("date colour = %v", df.Color)
	}
	if v, _ := df.Color.Transform("lumMod"); v != 60000 {
		t.Errorf("lumMod = %d, want 60000", v)
	}
	if v, _ := df.Color.Transform("lumOff"); v != 40000 {
		t.Errorf("lumOff = %d, want 40000", v)
	}

	// The gradient fill cannot be copied: the run keeps no colour and a
	// warning is logged.
	wish := paras[2]
	if wish.Runs[0].Font.Color != nil {
		t.Errorf("gradient colour copied: %v", wish.Runs[0].Font.Color)
	}
	if len(log.warns) != 1 || !strings.Contains(log.warns[0], "TextBox 4") {
		t.Errorf("warnings = %q", log.warns)
	}
}

func TestRender_PicturesAndOtherShapesCloned(t *testing.T) {
	tmpl := templateDeck(t, pptxtest.Default)
	out, err := NewSlideRenderer("", nil).Render(1, januaryPeople(), tmpl)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	src := tmpl.Slides[1]
	for _, s := range out.Slides[1:] {
		pic := s.Shapes[0]
		if pic.Kind != deck.ShapePicture || pic.Frame != src.Shapes[0].Frame || pic.ID != src.Shapes[0].ID {
			t.Errorf("picture = %+v", pic)
		}
		if !reflect.DeepEqual(pic.Picture.Data, src.Shapes[0].Picture.Data) {
			t.Error("picture bytes differ")
		}
		if pic.Picture == src.Shapes[0].Picture {
			t.Error("picture shares the template's value")
		}
		oval := s.Shapes[2]
		if oval.Name != "Oval 5" || oval.Frame != src.Shapes[2].Frame {
			t.Errorf("oval = %+v", oval)
		}
	}
}

func TestRender_KeepsFontsWithoutFamily(t *testing.T) {
	tmpl := templateDeck(t, pptxtest.Default)
	out, err := NewSlideRenderer("", nil).Render(1, januaryPeople()[:1], tmpl)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	f := out.Slides[0].Shapes[0].Text.Paragraphs[0].Runs[0].Font
	if f.Family != "Arial" || f.EastAsian != "굴림" {
		t.Errorf("title font = %q/%q, want Arial/굴림", f.Family, f.EastAsian)
	}
}

func TestRender_KeepsTrailingTemplateSlides(t *testing.T) {
	out, err := NewSlideRenderer("", nil).Render(1, januaryPeople(), templateDeck(t, pptxtest.Options{Slides: 3}))
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if len(out.Slides) != 4 {
		t.Fatalf("got %d slides, want 4", len(out.Slides))
	}
	if got := out.Slides[1].Text(); got != "모두 축하해 주세요" {
		t.Errorf("slide 2 = %q", got)
	}
	if got := out.Slides[3].Text(); !strings.Contains(got, "김영희") {
		t.Errorf("last slide = %q", got)
	}
}

func TestRender_DoesNotModifyTemplate(t *testing.T) {
	tmpl := templateDeck(t, pptxtest.Default)
	pristine := templateDeck(t, pptxtest.Default)

	out, err := NewSlideRenderer("맑은 고딕", nil).Render(1, januaryPeople(), tmpl)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	// Writes to the output must not reach the template.
	out.Slides[0].Shapes[0].Text.Paragraphs[0].Runs[0].Text = "changed"
	out.Slides[1].Shapes[0].Picture.Data[0] ^= 0xFF

	if !reflect.DeepEqual(tmpl, pristine) {
		t.Error("template deck was modified")
	}
}

func TestRender_NoPlaceholdersLeft(t *testing.T) {
	templates := map[string]pptxtest.Options{
		"text boxes":         pptxtest.Default,
		"groups and tables":  {Slides: 2, Nested: true},
		"with closing slide": {Slides: 3, Nested: true},
	}
	for name, opts := range templates {
		t.Run(name, func(t *testing.T) {
			out, err := NewSlideRenderer("", nil).Render(1, januaryPeople(), templateDeck(t, opts))
			if err != nil {
				t.Fatalf("Render failed: %v", err)
			}
			for i, s := range out.Slides {
				text := s.Text()
				for _, ph := range []string{PlaceholderMonth, PlaceholderName, PlaceholderDay} {
					if strings.Contains(text, ph) {
						t.Errorf("slide %d still contains %s: %q", i, ph, text)
					}
				}
			}
		})
	}
}

func TestRender_FillsNestedText(t *testing.T) {
	tmpl := templateDeck(t, pptxtest.Options{Slides: 2, Nested: true})
	out, err := NewSlideRenderer("맑은 고딕", nil).Render(1, januaryPeople(), tmpl)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	table := out.Slides[0].Shapes[2]
	if len(table.Nested) != 2 || table.Nested[0].Text() != "1월" || table.Nested[1].Text() != "생일자" {
		t.Errorf("title table = %+v", table.Nested)
	}
	if f := table.Nested[0].Paragraphs[0].Runs[0].Font; f.Family != "맑은 고딕" || f.Size != 1800 {
		t.Errorf("table font = %+v", f)
	}

	for i, want := range []string{"홍길동 15일", "김영희 22일"} {
		group := out.Slides[1+i].Shapes[3]
		if group.Kind != deck.ShapeOther || group.Name != "Group 6" {
			t.Fatalf("slide %d shape = %+v", i+1, group)
		}
		if len(group.Nested) != 1 || group.Nested[0].Text() != want {
			t.Errorf("slide %d group text = %+v, want %q", i+1, group.Nested, want)
			continue
		}
		runs := group.Nested[0].Paragraphs[0].Runs
		if len(runs) != 1 || runs[0].Font.Bold == nil || !*runs[0].Font.Bold || runs[0].Font.Family != "맑은 고딕" {
			t.Errorf("slide %d group runs = %+v", i+1, runs)
		}
	}
	if got := tmpl.Slides[1].Shapes[3].Nested[0].Text(); got != "{name} {day}일" {
		t.Errorf("template group text changed to %q", got)
	}
}

func TestRender_InvalidInput(t *testing.T) {
	tmpl := templateDeck(t, pptxtest.Default)
	noName := januaryPeople()
	noName[1].Name = ""
	february := januaryPeople()
	february[0].BirthDate = date(1990, time.February, 3)

	tests := []struct {
		name   string
		month  int
		people []birthday.Person
		want   string
	}{
		{"month zero", 0, januaryPeople(), i18n.T("render.invalid_month", 0)},
		{"month thirteen", 13, januaryPeople(), i18n.T("render.invalid_month", 13)},
		{"no people", 1, nil, i18n.T("render.empty_people")},
		{"missing name", 1, noName, i18n.T("render.invalid_person", 2, birthday.ColumnName)},
		{"other month", 1, february, i18n.T("render.month_mismatch", 1, "홍길동", 2)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSlideRenderer("", nil).Render(tt.month, tt.people, tmpl)
			if !IsKind(err, KindInvalidInput) {
				t.Fatalf("err = %v, want KindInvalidInput", err)
			}
			if err.Error() != tt.want {
				t.Errorf("message = %q, want %q", err.Error(), tt.want)
			}
		})
	}
}

func TestRender_MissingNameKeepsFieldError(t *testing.T) {
	people := januaryPeople()
	people[0].Name = ""
	_, err := NewSlideRenderer("", nil).Render(1, people, templateDeck(t, pptxtest.Default))
	var fe *birthday.FieldError
	if !errors.As(err, &fe) {
		t.Fatalf("err = %v, want a FieldError in the chain", err)
	}
	if len(fe.Fields) != 1 || fe.Fields[0] != birthday.ColumnName {
		t.Errorf("fields = %v", fe.Fields)
	}
}

func TestRender_SingleSlideTemplate(t *testing.T) {
	log := &recordLogger{}
	_, err := NewSlideRenderer("", log).Render(1, januaryPeople(), templateDeck(t, pptxtest.Options{Slides: 1}))
	if !IsKind(err, KindTemplate) {
		t.Fatalf("err = %v, want KindTemplate", err)
	}
	var re *RenderError
	if errors.As(err, &re) && re.Stage != StageTemplate {
		t.Errorf("stage = %q", re.Stage)
	}
	if len(log.infos) != 0 || len(log.warns) != 0 {
		t.Errorf("work was logged before failing: %q %q", log.infos, log.warns)
	}
}

func TestRenderError(t *testing.T) {
	cause := errors.New("disk full")
	err := newError(KindSave, StageSave, "", cause)
	if err.Error() != "save failed: disk full" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("cause not reachable through Unwrap")
	}
	if KindSave.String() != "Save" || ErrorKind(42).String() != "ErrorKind(42)" {
		t.Errorf("kind names = %q %q", KindSave, ErrorKind(42))
	}
	if IsKind(cause, KindSave) {
		t.Error("plain error reported as RenderError")
	}
}
