// Package pptxtest builds small PowerPoint templates for tests.
package pptxtest

import (
	"archive/zip"
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const (
	nsA = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsR = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsP = "http://schemas.openxmlformats.org/presentationml/2006/main"

	relType = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/"
)

// Options selects what the template contains.
type Options struct {
	// Slides is 1 for a title slide only, 2 for title and person slides, 3
	// adds a closing slide after the person slide.
	Slides int
	// Notes attaches speaker notes to the person slide.
	Notes bool
	// Nested adds a table with "{month}" to the title slide and a group
	// holding a "{name} {day}" text box to the person slide.
	Nested bool
}

// Default is the usual two-slide birthday template with notes.
var Default = Options{Slides: 2, Notes: true}

// Picture returns the PNG embedded on the person slide.
func Picture() []byte {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// Build returns the template as .pptx bytes.
func Build(opts Options) ([]byte, error) {
	if opts.Slides < 1 || opts.Slides > 3 {
		return nil, fmt.Errorf("unsupported slide count %d", opts.Slides)
	}

	type part struct {
		name string
		data string
	}
	slideXML := []string{titleSlide, personSlide, closingSlide}
	if opts.Nested {
		slideXML[0] = strings.Replace(titleSlide, closeTree, monthTable+closeTree, 1)
		slideXML[1] = strings.Replace(personSlide, closeTree, personGroup+closeTree, 1)
	}
	slideRels := []string{
		rels(rel("rId1", "slideLayout", "../slideLayouts/slideLayout1.xml")),
		rels(rel("rId1", "slideLayout", "../slideLayouts/slideLayout2.xml"),
			rel("rId2", "image", "../media/image1.png")),
		rels(rel("rId1", "slideLayout", "../slideLayouts/slideLayout1.xml")),
	}
	if opts.Notes {
		slideRels[1] = rels(rel("rId1", "slideLayout", "../slideLayouts/slideLayout2.xml"),
			rel("rId2", "image", "../media/image1.png"),
			rel("rId3", "notesSlide", "../notesSlides/notesSlide1.xml"))
	}

	var overrides, presRels, sldIDs []string
	presRels = append(presRels,
		rel("rId1", "slideMaster", "slideMasters/slideMaster1.xml"),
		rel("rId2", "theme", "theme/theme1.xml"))
	parts := []part{}
	for i := 0; i < opts.Slides; i++ {
		name := fmt.Sprintf("ppt/slides/slide%d.xml", i+1)
		parts = append(parts,
			part{name, slideXML[i]},
			part{fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", i+1), slideRels[i]})
		overrides = append(overrides, override(name, "presentationml.slide+xml"))
		rid := fmt.Sprintf("rId%d", 10+i)
		presRels = append(presRels, rel(rid, "slide", fmt.Sprintf("slides/slide%d.xml", i+1)))
		sldIDs = append(sldIDs, fmt.Sprintf(`<p:sldId id="%d" r:id="%s"/>`, 256+i, rid))
	}
	if opts.Notes && opts.Slides >= 2 {
		parts = append(parts,
			part{"ppt/notesSlides/notesSlide1.xml", notesSlide},
			part{"ppt/notesSlides/_rels/notesSlide1.xml.rels", rels(rel("rId1", "slide", "../slides/slide2.xml"))})
		overrides = append(overrides, override("ppt/notesSlides/notesSlide1.xml", "presentationml.notesSlide+xml"))
	}

	overrides = append(overrides,
		override("ppt/presentation.xml", "presentationml.presentation.main+xml"),
		override("ppt/slideMasters/slideMaster1.xml", "presentationml.slideMaster+xml"),
		override("ppt/slideLayouts/slideLayout1.xml", "presentationml.slideLayout+xml"),
		override("ppt/slideLayouts/slideLayout2.xml", "presentationml.slideLayout+xml"),
		override("ppt/theme/theme1.xml", "theme+xml"),
		`<Override PartName="/docProps/app.xml" ContentType="application/vnd.openxmlformats-officedocument.extended-properties+xml"/>`)

	notes := 0
	if opts.Notes {
		notes = 1
	}
	all := []part{
		{"[Content_Types].xml", xmlHeader + `<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
			`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
			`<Default Extension="xml" ContentType="application/xml"/>` +
			`<Default Extension="png" ContentType="image/png"/>` +
			strings.Join(overrides, "") + `</Types>`},
		{"_rels/.rels", rels(
			`<Relationship Id="rId1" Type="` + relType + `officeDocument" Target="ppt/presentation.xml"/>`,
			`<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/extended-properties" Target="docProps/app.xml"/>`)},
		{"docProps/app.xml", xmlHeader + `<Properties xmlns="http://schemas.openxmlformats.org/officeDocument/2006/extended-properties">` +
			`<Application>Microsoft Office PowerPoint</Application>` +
			fmt.Sprintf("<Slides>%d</Slides><Notes>%d</Notes>", opts.Slides, notes) + `</Properties>`},
		{"ppt/presentation.xml", xmlHeader + `<p:presentation xmlns:a="` + nsA + `" xmlns:r="` + nsR + `" xmlns:p="` + nsP + `">` +
			`<p:sldMasterIdLst><p:sldMasterId id="2147483648" r:id="rId1"/></p:sldMasterIdLst>` +
			`<p:sldIdLst>` + strings.Join(sldIDs, "") + `</p:sldIdLst>` +
			`<p:sldSz cx="12192000" cy="6858000"/><p:notesSz cx="6858000" cy="9144000"/>` +
			`</p:presentation>`},
		{"ppt/_rels/presentation.xml.rels", rels(presRels...)},
		{"ppt/slideMasters/slideMaster1.xml", slideMaster},
		{"ppt/slideMasters/_rels/slideMaster1.xml.rels", rels(
			rel("rId1", "slideLayout", "../slideLayouts/slideLayout1.xml"),
			rel("rId2", "slideLayout", "../slideLayouts/slideLayout2.xml"),
			rel("rId3", "theme", "../theme/theme1.xml"))},
		{"ppt/slideLayouts/slideLayout1.xml", layout("Title Slide")},
		{"ppt/slideLayouts/_rels/slideLayout1.xml.rels", rels(rel("rId1", "slideMaster", "../slideMasters/slideMaster1.xml"))},
		{"ppt/slideLayouts/slideLayout2.xml", layout("Blank")},
		{"ppt/slideLayouts/_rels/slideLayout2.xml.rels", rels(rel("rId1", "slideMaster", "../slideMasters/slideMaster1.xml"))},
		{"ppt/theme/theme1.xml", theme},
	}
	all = append(all, parts...)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, p := range all {
		w, err := zw.Create(p.name)
		if err != nil {
			return nil, err
		}
		if _, err := w.Write([]byte(p.data)); err != nil {
			return nil, err
		}
	}
	w, err := zw.Create("ppt/media/image1.png")
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(Picture()); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write builds the template into dir and returns its path.
func Write(tb testing.TB, dir string, opts Options) string {
	tb.Helper()
	data, err := Build(opts)
	if err != nil {
		tb.Fatalf("failed to build template: %v", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("template_%d.pptx", opts.Slides))
	if err := os.WriteFile(path, data, 0644); err != nil {
		tb.Fatalf("failed to write template: %v", err)
	}
	return path
}

const xmlHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

func rels(items ...string) string {
	return xmlHeader + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
		strings.Join(items, "") + `</Relationships>`
}

func rel(id, kind, target string) string {
	return `<Relationship Id="` + id + `" Type="` + relType + kind + `" Target="` + target + `"/>`
}

func override(part, kind string) string {
	return `<Override PartName="/` + part + `" ContentType="application/vnd.openxmlformats-officedocument.` + kind + `"/>`
}

const spTreeHeader = `<p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr>` +
	`<p:grpSpPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="0" cy="0"/><a:chOff x="0" y="0"/><a:chExt cx="0" cy="0"/></a:xfrm></p:grpSpPr>`

const slideRoot = `<p:sld xmlns:a="` + nsA + `" xmlns:r="` + nsR + `" xmlns:p="` + nsP + `">`

func layout(name string) string {
	return xmlHeader + `<p:sldLayout xmlns:a="` + nsA + `" xmlns:r="` + nsR + `" xmlns:p="` + nsP + `">` +
		`<p:cSld name="` + name + `"><p:spTree>` + spTreeHeader + `</p:spTree></p:cSld>` +
		`<p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr></p:sldLayout>`
}

// Title slide: "{month}" and "월 생일자" in two runs, a theme colour with
// luminance transforms on the first run, and a subtitle without placeholders.
const titleSlide = xmlHeader + slideRoot + `<p:cSld><p:spTree>` + spTreeHeader +
	`<p:sp><p:nvSpPr><p:cNvPr id="2" name="Title 1"/><p:cNvSpPr txBox="1"/><p:nvPr/></p:nvSpPr>` +
	`<p:spPr><a:xfrm><a:off x="914400" y="1828800"/><a:ext cx="10363200" cy="1470025"/></a:xfrm><a:prstGeom prst="rect"><a:avLst/></a:prstGeom></p:spPr>` +
	`<p:txBody><a:bodyPr wrap="square"/><a:lstStyle/>` +
	`<a:p><a:pPr algn="ctr"/>` +
	`<a:r><a:rPr lang="ko-KR" altLang="en-US" sz="4400" b="1"><a:solidFill><a:schemeClr val="tx1"><a:lumMod val="75000"/><a:lumOff val="25000"/></a:schemeClr></a:solidFill><a:latin typeface="Arial" panose="020B0604020202020204"/><a:ea typeface="굴림"/></a:rPr><a:t>{month}</a:t></a:r>` +
	`<a:r><a:rPr lang="ko-KR" altLang="en-US" sz="4400" b="1"/><a:t>월 생일자</a:t></a:r>` +
	`<a:endParaRPr lang="ko-KR" altLang="en-US" sz="4400"/></a:p>` +
	`</p:txBody></p:sp>` +
	`<p:sp><p:nvSpPr><p:cNvPr id="3" name="Subtitle 2"/><p:cNvSpPr txBox="1"/><p:nvPr/></p:nvSpPr>` +
	`<p:spPr><a:xfrm><a:off x="914400" y="3500000"/><a:ext cx="10363200" cy="800000"/></a:xfrm></p:spPr>` +
	`<p:txBody><a:bodyPr/><a:lstStyle/><a:p><a:r><a:rPr lang="en-US" sz="2000" i="1"><a:solidFill><a:srgbClr val="1F4E79"/></a:solidFill></a:rPr><a:t>Happy Birthday</a:t></a:r></a:p></p:txBody></p:sp>` +
	`</p:spTree></p:cSld><p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr></p:sld>`

// Person slide: a picture, a text box with three paragraphs and an ellipse
// without text.
const personSlide = xmlHeader + slideRoot + `<p:cSld><p:spTree>` + spTreeHeader +
	`<p:pic><p:nvPicPr><p:cNvPr id="4" name="Picture 3"/><p:cNvPicPr><a:picLocks noChangeAspect="1"/></p:cNvPicPr><p:nvPr/></p:nvPicPr>` +
	`<p:blipFill><a:blip r:embed="rId2"/><a:stretch><a:fillRect/></a:stretch></p:blipFill>` +
	`<p:spPr><a:xfrm><a:off x="457200" y="457200"/><a:ext cx="2743200" cy="2743200"/></a:xfrm><a:prstGeom prst="rect"><a:avLst/></a:prstGeom></p:spPr></p:pic>` +
	`<p:sp><p:nvSpPr><p:cNvPr id="5" name="TextBox 4"/><p:cNvSpPr txBox="1"/><p:nvPr/></p:nvSpPr>` +
	`<p:spPr><a:xfrm><a:off x="3657600" y="1371600"/><a:ext cx="7315200" cy="3200400"/></a:xfrm><a:prstGeom prst="rect"><a:avLst/></a:prstGeom><a:noFill/></p:spPr>` +
	`<p:txBody><a:bodyPr wrap="square" rtlCol="0"><a:spAutoFit/></a:bodyPr><a:lstStyle/>` +
	`<a:p><a:pPr algn="l"/>` +
	`<a:r><a:rPr lang="ko-KR" altLang="en-US" sz="3600" b="1" u="sng"><a:solidFill><a:srgbClr val="C00000"><a:alpha val="80000"/></a:srgbClr></a:solidFill><a:latin typeface="Arial"/></a:rPr><a:t>{name}</a:t></a:r>` +
	`<a:r><a:rPr lang="ko-KR" altLang="en-US" sz="2000"/><a:t>님</a:t></a:r></a:p>` +
	`<a:p><a:pPr algn="ctr" lvl="1"/>` +
	`<a:r><a:rPr lang="ko-KR" altLang="en-US" sz="2800" i="1"><a:solidFill><a:schemeClr val="accent1"><a:lumMod val="60000"/><a:lumOff val="40000"/></a:schemeClr></a:solidFill></a:rPr><a:t>{month}월 </a:t></a:r>` +
	`<a:r><a:rPr lang="ko-KR" altLang="en-US" sz="2800"/><a:t>{day}일</a:t></a:r></a:p>` +
	`<a:p><a:r><a:rPr lang="ko-KR" altLang="en-US" sz="2400"><a:gradFill><a:gsLst><a:gs pos="0"><a:srgbClr val="FF0000"/></a:gs><a:gs pos="100000"><a:srgbClr val="0000FF"/></a:gs></a:gsLst></a:gradFill></a:rPr><a:t>생일을 축하합니다!</a:t></a:r></a:p>` +
	`</p:txBody></p:sp>` +
	`<p:sp><p:nvSpPr><p:cNvPr id="6" name="Oval 5"/><p:cNvSpPr/><p:nvPr/></p:nvSpPr>` +
	`<p:spPr><a:xfrm><a:off x="10000000" y="5000000"/><a:ext cx="914400" cy="914400"/></a:xfrm><a:prstGeom prst="ellipse"><a:avLst/></a:prstGeom>` +
	`<a:solidFill><a:schemeClr val="accent1"/></a:solidFill></p:spPr></p:sp>` +
	`</p:spTree></p:cSld><p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr></p:sld>`

const closeTree = `</p:spTree>`

// Title slide table: "{month}월" in the first cell.
const monthTable = `<p:graphicFrame><p:nvGraphicFramePr><p:cNvPr id="4" name="Table 3"/><p:cNvGraphicFramePr><a:graphicFrameLocks noGrp="1"/></p:cNvGraphicFramePr><p:nvPr/></p:nvGraphicFramePr>` +
	`<p:xfrm><a:off x="914400" y="4500000"/><a:ext cx="4000000" cy="740000"/></p:xfrm>` +
	`<a:graphic><a:graphicData uri="http://schemas.openxmlformats.org/drawingml/2006/table"><a:tbl><a:tblPr firstRow="1"/>` +
	`<a:tblGrid><a:gridCol w="2000000"/><a:gridCol w="2000000"/></a:tblGrid><a:tr h="370000">` +
	`<a:tc><a:txBody><a:bodyPr/><a:lstStyle/><a:p><a:r><a:rPr lang="ko-KR" sz="1800"/><a:t>{month}월</a:t></a:r></a:p></a:txBody><a:tcPr/></a:tc>` +
	`<a:tc><a:txBody><a:bodyPr/><a:lstStyle/><a:p><a:r><a:rPr lang="ko-KR" sz="1800"/><a:t>생일자</a:t></a:r></a:p></a:txBody><a:tcPr/></a:tc>` +
	`</a:tr></a:tbl></a:graphicData></a:graphic></p:graphicFrame>`

// Person slide group: a text box with "{name} " and "{day}일" in two runs.
const personGroup = `<p:grpSp><p:nvGrpSpPr><p:cNvPr id="7" name="Group 6"/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr>` +
	`<p:grpSpPr><a:xfrm><a:off x="457200" y="4800000"/><a:ext cx="3000000" cy="900000"/><a:chOff x="457200" y="4800000"/><a:chExt cx="3000000" cy="900000"/></a:xfrm></p:grpSpPr>` +
	`<p:sp><p:nvSpPr><p:cNvPr id="8" name="TextBox 7"/><p:cNvSpPr txBox="1"/><p:nvPr/></p:nvSpPr>` +
	`<p:spPr><a:xfrm><a:off x="457200" y="4800000"/><a:ext cx="3000000" cy="900000"/></a:xfrm></p:spPr>` +
	`<p:txBody><a:bodyPr/><a:lstStyle/><a:p><a:r><a:rPr lang="ko-KR" sz="1800" b="1"/><a:t>{name} </a:t></a:r>` +
	`<a:r><a:rPr lang="ko-KR" sz="1800"/><a:t>{day}일</a:t></a:r></a:p></p:txBody></p:sp>` +
	`</p:grpSp>`

const closingSlide = xmlHeader + slideRoot + `<p:cSld><p:spTree>` + spTreeHeader +
	`<p:sp><p:nvSpPr><p:cNvPr id="2" name="TextBox 1"/><p:cNvSpPr txBox="1"/><p:nvPr/></p:nvSpPr>` +
	`<p:spPr><a:xfrm><a:off x="914400" y="2743200"/><a:ext cx="10363200" cy="1371600"/></a:xfrm></p:spPr>` +
	`<p:txBody><a:bodyPr/><a:lstStyle/><a:p><a:r><a:rPr lang="ko-KR" sz="3200"/><a:t>모두 축하해 주세요</a:t></a:r></a:p></p:txBody></p:sp>` +
	`</p:spTree></p:cSld></p:sld>`

const notesSlide = xmlHeader + `<p:notes xmlns:a="` + nsA + `" xmlns:r="` + nsR + `" xmlns:p="` + nsP + `">` +
	`<p:cSld><p:spTree>` + spTreeHeader +
	`<p:sp><p:nvSpPr><p:cNvPr id="2" name="Notes Placeholder 1"/><p:cNvSpPr/><p:nvPr><p:ph type="body" idx="1"/></p:nvPr></p:nvSpPr><p:spPr/>` +
	`<p:txBody><a:bodyPr/><a:lstStyle/><a:p><a:r><a:rPr lang="ko-KR"/><a:t>{name} 사진 교체</a:t></a:r></a:p></p:txBody></p:sp>` +
	`</p:spTree></p:cSld></p:notes>`

const slideMaster = xmlHeader + `<p:sldMaster xmlns:a="` + nsA + `" xmlns:r="` + nsR + `" xmlns:p="` + nsP + `">` +
	`<p:cSld><p:spTree>` + spTreeHeader + `</p:spTree></p:cSld>` +
	`<p:clrMap bg1="lt1" tx1="dk1" bg2="lt2" tx2="dk2" accent1="accent1" accent2="accent2" accent3="accent3" accent4="accent4" accent5="accent5" accent6="accent6" hlink="hlink" folHlink="folHlink"/>` +
	`<p:sldLayoutIdLst><p:sldLayoutId id="2147483649" r:id="rId1"/><p:sldLayoutId id="2147483650" r:id="rId2"/></p:sldLayoutIdLst>` +
	`</p:sldMaster>`

const theme = xmlHeader + `<a:theme xmlns:a="` + nsA + `" name="Office Theme"><a:themeElements>` +
	`<a:clrScheme name="Office">` +
	`<a:dk1><a:sysClr val="windowText" lastClr="000000"/></a:dk1>` +
	`<a:lt1><a:sysClr val="window" lastClr="FFFFFF"/></a:lt1>` +
	`<a:dk2><a:srgbClr val="44546A"/></a:dk2>` +
	`<a:lt2><a:srgbClr val="E7E6E6"/></a:lt2>` +
	`<a:accent1><a:srgbClr val="4472C4"/></a:accent1>` +
	`<a:accent2><a:srgbClr val="ED7D31"/></a:accent2>` +
	`<a:accent3><a:srgbClr val="A5A5A5"/></a:accent3>` +
	`<a:accent4><a:srgbClr val="FFC000"/></a:accent4>` +
	`<a:accent5><a:srgbClr val="5B9BD5"/></a:accent5>` +
	`<a:accent6><a:srgbClr val="70AD47"/></a:accent6>` +
	`<a:hlink><a:srgbClr val="0563C1"/></a:hlink>` +
	`<a:folHlink><a:srgbClr val="954F72"/></a:folHlink>` +
	`</a:clrScheme>` +
	`<a:fontScheme name="Office"><a:majorFont><a:latin typeface="Calibri Light"/><a:ea typeface=""/><a:cs typeface=""/></a:majorFont>` +
	`<a:minorFont><a:latin typeface="Calibri"/><a:ea typeface=""/><a:cs typeface=""/></a:minorFont></a:fontScheme>` +
	`<a:fmtScheme name="Office"><a:fillStyleLst/><a:lnStyleLst/><a:effectStyleLst/><a:bgFillStyleLst/></a:fmtScheme>` +
	`</a:themeElements></a:theme>`
