package export

import (
	"bytes"
	"image/png"
	"strings"
	"testing"

	"birthdayppt/config"
	"birthdayppt/deck"
	"birthdayppt/i18n"
	"birthdayppt/pptx"
	"birthdayppt/pptx/pptxtest"
)

func TestBuildDefaultTemplate(t *testing.T) {
	data, err := BuildDefaultTemplate()
	if err != nil {
		t.Fatalf("BuildDefaultTemplate failed: %v", err)
	}
	pkg, err := pptx.OpenBytes(data)
	if err != nil {
		t.Fatalf("bundled template does not open: %v", err)
	}
	d, err := pkg.Deck()
	if err != nil {
		t.Fatalf("bundled template does not read: %v", err)
	}
	if len(d.Slides) != 2 {
		t.Fatalf("got %d slides, want 2", len(d.Slides))
	}
	if !strings.Contains(d.Slides[0].Text(), PlaceholderMonth) {
		t.Errorf("title slide = %q", d.Slides[0].Text())
	}
	person := d.Slides[1].Text()
	for _, ph := range []string{PlaceholderName, PlaceholderMonth, PlaceholderDay} {
		if !strings.Contains(person, ph) {
			t.Errorf("person slide %q lacks %s", person, ph)
		}
	}
}

func TestGeneratePPT_BundledTemplate(t *testing.T) {
	cfg := config.Default(t.TempDir())
	svc := NewBirthdayPPTService(cfg, nil)

	path, err := svc.GeneratePPT(1, januaryPeople(), t.TempDir())
	if err != nil {
		t.Fatalf("GeneratePPT failed: %v", err)
	}
	pkg, err := pptx.Open(path)
	if err != nil {
		t.Fatalf("failed to reopen deck: %v", err)
	}
	if pkg.SlideCount() != 3 {
		t.Errorf("got %d slides, want 3", pkg.SlideCount())
	}
}

func TestCakeImage(t *testing.T) {
	img, err := png.Decode(bytes.NewReader(cakeImage()))
	if err != nil {
		t.Fatalf("cake image is not a PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 240 || b.Dy() != 240 {
		t.Errorf("bounds = %v", b)
	}
}

func TestInspectTemplate(t *testing.T) {
	report := InspectTemplate(templateDeck(t, pptxtest.Default))

	for _, want := range []string{
		i18n.T("inspect.slide_count", 2),
		i18n.T("inspect.slide", 1),
		i18n.T("inspect.layout", "Title Slide"),
		i18n.T("inspect.shape_name", "Title 1"),
		i18n.T("inspect.shape_type", deck.ShapePicture),
		i18n.T("inspect.shape_text", "{month}월 생일자"),
		i18n.T("inspect.shape_color", "scheme:tx1 lumMod=75000 lumOff=25000 (#404040)"),
		i18n.T("inspect.shape_color", "rgb:C00000 alpha=80000 (#C00000, alpha 80%)"),
	} {
		if !strings.Contains(report, want) {
			t.Errorf("report lacks %q:\n%s", want, report)
		}
	}
}
