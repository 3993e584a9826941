package pptx

import (
	"slices"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"birthdayppt/deck"
)

// Child order of a:rPr.
var runPropsOrder = []string{
	"ln", "noFill", "solidFill", "gradFill", "blipFill", "pattFill", "grpFill",
	"effectLst", "effectDag", "highlight", "uLnTx", "uLn", "uFillTx", "uFill",
	"latin", "ea", "cs", "sym", "hlinkClick", "hlinkMouseOver", "rtl", "extLst",
}

var fillTags = []string{"noFill", "solidFill", "gradFill", "blipFill", "pattFill", "grpFill"}

func readTextBody(body *etree.Element) *deck.TextFrame {
	tf := &deck.TextFrame{}
	for _, p := range body.SelectElements("p") {
		tf.Paragraphs = append(tf.Paragraphs, readParagraph(p))
	}
	return tf
}

func readParagraph(p *etree.Element) deck.Paragraph {
	var para deck.Paragraph
	if pPr := p.SelectElement("pPr"); pPr != nil {
		para.Align = deck.Align(pPr.SelectAttrValue("algn", ""))
		para.Level = attrInt(pPr, "lvl")
	}
	for _, c := range p.ChildElements() {
		switch c.Tag {
		case "r", "fld":
			text := ""
			if t := c.SelectElement("t"); t != nil {
				text = t.Text()
			}
			para.Runs = append(para.Runs, deck.Run{Text: text, Font: readFont(c.SelectElement("rPr"))})
		case "br":
			para.Runs = append(para.Runs, deck.Run{Text: "\n", Font: readFont(c.SelectElement("rPr"))})
		}
	}
	return para
}

func readFont(rPr *etree.Element) deck.Font {
	var f deck.Font
	if rPr == nil {
		return f
	}
	f.Size = attrInt(rPr, "sz")
	f.Bold = boolAttr(rPr, "b")
	f.Italic = boolAttr(rPr, "i")
	f.Underline = rPr.SelectAttrValue("u", "")
	if latin := rPr.SelectElement("latin"); latin != nil {
		f.Family = latin.SelectAttrValue("typeface", "")
	}
	if ea := rPr.SelectElement("ea"); ea != nil {
		f.EastAsian = ea.SelectAttrValue("typeface", "")
	}
	f.Color = readFill(rPr)
	return f
}

func boolAttr(el *etree.Element, key string) *bool {
	switch el.SelectAttrValue(key, "") {
	case "1", "true", "on":
		return deck.Bool(true)
	case "0", "false", "off":
		return deck.Bool(false)
	}
	return nil
}

// readFill returns the colour of the first fill child of el. Fills other than
// a solid colour are reported as ColorUnsupported.
func readFill(el *etree.Element) *deck.Color {
	for _, c := range el.ChildElements() {
		if !slices.Contains(fillTags, c.Tag) {
			continue
		}
		if c.Tag != "solidFill" {
			return &deck.Color{Kind: deck.ColorUnsupported, Value: c.Tag}
		}
		children := c.ChildElements()
		if len(children) == 0 {
			return &deck.Color{Kind: deck.ColorUnsupported, Value: c.Tag}
		}
		return readColor(children[0])
	}
	return nil
}

func readColor(el *etree.Element) *deck.Color {
	c := &deck.Color{Value: el.SelectAttrValue("val", "")}
	switch el.Tag {
	case "srgbClr":
		c.Kind = deck.ColorRGB
		c.Value = strings.ToUpper(c.Value)
	case "schemeClr":
		c.Kind = deck.ColorScheme
	case "sysClr":
		c.Kind = deck.ColorSystem
		c.Fallback = el.SelectAttrValue("lastClr", "")
	case "prstClr":
		c.Kind = deck.ColorPreset
	default:
		return &deck.Color{Kind: deck.ColorUnsupported, Value: el.Tag}
	}
	for _, t := range el.ChildElements() {
		c.Transforms = append(c.Transforms, deck.ColorTransform{Name: t.Tag, Val: attrInt(t, "val")})
	}
	return c
}

// writeTextBody replaces the paragraphs of body. Existing paragraphs serve as
// skeletons for paragraph and run properties the description does not model.
func writeTextBody(body *etree.Element, tf *deck.TextFrame) {
	old := body.SelectElements("p")
	for _, p := range old {
		body.RemoveChild(p)
	}
	for i, para := range tf.Paragraphs {
		var skel *etree.Element
		switch {
		case i < len(old):
			skel = old[i]
		case len(old) > 0:
			skel = old[len(old)-1]
		}
		body.AddChild(buildParagraph(para, skel))
	}
	if len(tf.Paragraphs) == 0 {
		body.CreateElement("a:p")
	}
}

func buildParagraph(para deck.Paragraph, skel *etree.Element) *etree.Element {
	p := etree.NewElement("a:p")

	var runs []*etree.Element
	var endProps *etree.Element
	if skel != nil {
		if pPr := skel.SelectElement("pPr"); pPr != nil {
			p.AddChild(pPr.Copy())
		}
		for _, c := range skel.ChildElements() {
			switch c.Tag {
			case "r", "fld", "br":
				runs = append(runs, c)
			case "endParaRPr":
				endProps = c
			}
		}
	}

	pPr := p.SelectElement("pPr")
	if pPr == nil && (para.Align != deck.AlignInherit || para.Level > 0) {
		pPr = p.CreateElement("a:pPr")
	}
	if pPr != nil {
		setAttr(pPr, "algn", string(para.Align))
		if para.Level > 0 {
			setAttr(pPr, "lvl", strconv.Itoa(para.Level))
		} else {
			pPr.RemoveAttr("lvl")
		}
	}

	k := 0
	for _, run := range para.Runs {
		for _, piece := range splitLines(run.Text) {
			rPr := baseRunProps(runs, k, endProps)
			k++
			applyFont(rPr, run.Font)
			if piece == "\n" {
				br := p.CreateElement("a:br")
				br.AddChild(rPr)
				continue
			}
			r := p.CreateElement("a:r")
			r.AddChild(rPr)
			r.CreateElement("a:t").SetText(piece)
		}
	}

	if endProps != nil {
		p.AddChild(endProps.Copy())
	}
	return p
}

// splitLines splits text at newlines, keeping each newline as its own piece.
func splitLines(text string) []string {
	parts := strings.Split(text, "\n")
	var out []string
	for i, part := range parts {
		if i > 0 {
			out = append(out, "\n")
		}
		if part != "" || len(parts) == 1 {
			out = append(out, part)
		}
	}
	return out
}

func baseRunProps(runs []*etree.Element, k int, endProps *etree.Element) *etree.Element {
	var src *etree.Element
	switch {
	case k < len(runs):
		src = runs[k]
	case len(runs) > 0:
		src = runs[0]
	}
	if src != nil {
		if rPr := src.SelectElement("rPr"); rPr != nil {
			return rPr.Copy()
		}
	}
	if endProps != nil {
		rPr := endProps.Copy()
		rPr.Tag = "rPr"
		return rPr
	}
	return etree.NewElement("a:rPr")
}

func applyFont(rPr *etree.Element, f deck.Font) {
	if f.Size > 0 {
		setAttr(rPr, "sz", strconv.Itoa(f.Size))
	} else {
		rPr.RemoveAttr("sz")
	}
	setBoolAttr(rPr, "b", f.Bold)
	setBoolAttr(rPr, "i", f.Italic)
	setAttr(rPr, "u", f.Underline)

	// An unsupported colour cannot be rebuilt; leave the skeleton's fill alone.
	if f.Color == nil || f.Color.Kind != deck.ColorUnsupported {
		for _, c := range rPr.ChildElements() {
			if slices.Contains(fillTags, c.Tag) {
				rPr.RemoveChild(c)
			}
		}
		if f.Color != nil {
			insertOrdered(rPr, colorFill(f.Color), runPropsOrder)
		}
	}

	setTypeface(rPr, "latin", f.Family)
	setTypeface(rPr, "ea", f.EastAsian)
}

func colorFill(c *deck.Color) *etree.Element {
	fill := etree.NewElement("a:solidFill")
	var el *etree.Element
	switch c.Kind {
	case deck.ColorRGB:
		el = fill.CreateElement("a:srgbClr")
	case deck.ColorScheme:
		el = fill.CreateElement("a:schemeClr")
	case deck.ColorSystem:
		el = fill.CreateElement("a:sysClr")
	default:
		el = fill.CreateElement("a:prstClr")
	}
	el.CreateAttr("val", c.Value)
	if c.Kind == deck.ColorSystem && c.Fallback != "" {
		el.CreateAttr("lastClr", c.Fallback)
	}
	for _, t := range c.Transforms {
		el.CreateElement("a:"+t.Name).CreateAttr("val", strconv.Itoa(t.Val))
	}
	return fill
}

func setTypeface(rPr *etree.Element, tag, typeface string) {
	el := rPr.SelectElement(tag)
	if typeface == "" {
		if el != nil {
			rPr.RemoveChild(el)
		}
		return
	}
	if el == nil {
		el = etree.NewElement("a:" + tag)
		insertOrdered(rPr, el, runPropsOrder)
	}
	if el.SelectAttrValue("typeface", "") != typeface {
		el.RemoveAttr("panose")
		el.RemoveAttr("pitchFamily")
		el.RemoveAttr("charset")
	}
	el.CreateAttr("typeface", typeface)
}

// insertOrdered inserts child before the first sibling that order places after it.
func insertOrdered(parent, child *etree.Element, order []string) {
	rank := slices.Index(order, child.Tag)
	for _, c := range parent.ChildElements() {
		if r := slices.Index(order, c.Tag); r > rank {
			parent.InsertChildAt(c.Index(), child)
			return
		}
	}
	parent.AddChild(child)
}

func setAttr(el *etree.Element, key, value string) {
	if value == "" {
		el.RemoveAttr(key)
		return
	}
	el.CreateAttr(key, value)
}

func setBoolAttr(el *etree.Element, key string, v *bool) {
	switch {
	case v == nil:
		el.RemoveAttr(key)
	case *v:
		el.CreateAttr(key, "1")
	default:
		el.CreateAttr(key, "0")
	}
}
