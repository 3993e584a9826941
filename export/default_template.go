package export

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"

	ppt "github.com/VantageDataChat/GoPPT"
)

// 기본 템플릿 레이아웃 (16:9)
const (
	emuPerInch = 914400

	tplSlideWidth   = int64(10.0 * emuPerInch)
	tplMarginLeft   = int64(0.5 * emuPerInch)
	tplContentWidth = int64(9.0 * emuPerInch)

	tplFontTitle    = 44
	tplFontSubtitle = 20
	tplFontName     = 40
	tplFontDate     = 28
	tplFontMessage  = 24
)

// helper: create a solid fill
func solidFill(argb string) *ppt.Fill {
	return ppt.NewFill().SetSolid(ppt.NewColor(argb))
}

// helper: set paragraph alignment to center
func alignCenter(p *ppt.Paragraph) {
	p.SetAlignment(ppt.NewAlignment().SetHorizontal(ppt.HorizontalCenter))
}

// BuildDefaultTemplate builds the bundled two-slide template used when no
// template file is configured: a title slide carrying {month} and a person
// slide carrying {name}, {month} and {day}.
func BuildDefaultTemplate() ([]byte, error) {
	p := ppt.New()
	p.GetDocumentProperties().Title = "생일자 템플릿"
	p.GetDocumentProperties().Creator = "BirthdayPPT"

	addTemplateTitle(p.GetActiveSlide())
	addTemplatePerson(p.CreateSlide())

	w, err := ppt.NewWriter(p, ppt.WriterPowerPoint2007)
	if err != nil {
		return nil, fmt.Errorf("failed to create PPT writer: %w", err)
	}
	var buf bytes.Buffer
	if err := w.(*ppt.PPTXWriter).WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to save PPT: %w", err)
	}
	return buf.Bytes(), nil
}

func addTemplateTitle(slide *ppt.Slide) {
	// 상단 장식 바
	topBar := slide.CreateRichTextShape()
	topBar.SetOffsetX(0).SetOffsetY(0)
	topBar.SetWidth(tplSlideWidth).SetHeight(int64(0.15 * emuPerInch))
	topBar.SetFill(solidFill("FFF472B6"))

	title := slide.CreateRichTextShape()
	title.SetOffsetX(tplMarginLeft).SetOffsetY(int64(1.8 * emuPerInch))
	title.SetWidth(tplContentWidth).SetHeight(int64(1.2 * emuPerInch))
	tr := title.CreateTextRun(PlaceholderMonth + "월 생일자")
	tr.GetFont().SetSize(tplFontTitle).SetBold(true).SetColor(ppt.NewColor("FFBE185D"))
	alignCenter(title.GetActiveParagraph())

	sub := slide.CreateRichTextShape()
	sub.SetOffsetX(tplMarginLeft).SetOffsetY(int64(3.1 * emuPerInch))
	sub.SetWidth(tplContentWidth).SetHeight(int64(0.6 * emuPerInch))
	st := sub.CreateTextRun("Happy Birthday")
	st.GetFont().SetSize(tplFontSubtitle).SetColor(ppt.NewColor("FF64748B"))
	alignCenter(sub.GetActiveParagraph())
}

func addTemplatePerson(slide *ppt.Slide) {
	img := slide.CreateDrawingShape()
	img.SetImageData(cakeImage(), "image/png")
	img.SetOffsetX(int64(3.75 * emuPerInch)).SetOffsetY(int64(0.4 * emuPerInch))
	img.SetWidth(int64(2.5 * emuPerInch)).SetHeight(int64(2.5 * emuPerInch))

	name := slide.CreateRichTextShape()
	name.SetOffsetX(tplMarginLeft).SetOffsetY(int64(3.0 * emuPerInch))
	name.SetWidth(tplContentWidth).SetHeight(int64(0.8 * emuPerInch))
	nt := name.CreateTextRun(PlaceholderName)
	nt.GetFont().SetSize(tplFontName).SetBold(true).SetColor(ppt.NewColor("FF1E293B"))
	alignCenter(name.GetActiveParagraph())

	date := slide.CreateRichTextShape()
	date.SetOffsetX(tplMarginLeft).SetOffsetY(int64(3.8 * emuPerInch))
	date.SetWidth(tplContentWidth).SetHeight(int64(0.6 * emuPerInch))
	dt := date.CreateTextRun(PlaceholderMonth + "월 " + PlaceholderDay + "일")
	dt.GetFont().SetSize(tplFontDate).SetColor(ppt.NewColor("FFBE185D"))
	alignCenter(date.GetActiveParagraph())

	msg := slide.CreateRichTextShape()
	msg.SetOffsetX(tplMarginLeft).SetOffsetY(int64(4.5 * emuPerInch))
	msg.SetWidth(tplContentWidth).SetHeight(int64(0.6 * emuPerInch))
	mt := msg.CreateTextRun("생일을 축하합니다!")
	mt.GetFont().SetSize(tplFontMessage).SetColor(ppt.NewColor("FF475569"))
	alignCenter(msg.GetActiveParagraph())
}

// cakeImage draws the placeholder picture of the person slide: a pink cake
// with one candle on a light background.
func cakeImage() []byte {
	const size = 240
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	fill := func(x0, y0, x1, y1 int, c color.RGBA) {
		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				img.SetRGBA(x, y, c)
			}
		}
	}
	fill(0, 0, size, size, color.RGBA{R: 0xFD, G: 0xF2, B: 0xF8, A: 0xFF})
	fill(40, 130, 200, 200, color.RGBA{R: 0xF4, G: 0x72, B: 0xB6, A: 0xFF})
	fill(40, 120, 200, 132, color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF})
	fill(114, 80, 126, 120, color.RGBA{R: 0x60, G: 0xA5, B: 0xFA, A: 0xFF})
	fill(115, 66, 125, 80, color.RGBA{R: 0xFB, G: 0xBF, B: 0x24, A: 0xFF})

	var buf bytes.Buffer
	// Encoding an in-memory RGBA image does not fail.
	_ = png.Encode(&buf, img)
	return buf.Bytes()
}
