package pptx

import (
	"fmt"

	"github.com/beevik/etree"
	"github.com/gabriel-vasile/mimetype"

	"birthdayppt/deck"
)

// Deck describes the presentation: slides in order with their shapes, the
// slide size and the theme colour scheme.
func (p *Package) Deck() (deck.Deck, error) {
	var d deck.Deck

	pres, err := p.document(p.presentation)
	if err != nil {
		return d, err
	}
	if sz := pres.Root().SelectElement("sldSz"); sz != nil {
		d.Width = attrInt64(sz, "cx")
		d.Height = attrInt64(sz, "cy")
	}

	if d.Theme, err = p.theme(); err != nil {
		return d, err
	}

	for _, part := range p.slides {
		s, err := p.readSlide(part)
		if err != nil {
			return deck.Deck{}, fmt.Errorf("failed to read %s: %w", part, err)
		}
		d.Slides = append(d.Slides, s)
	}
	return d, nil
}

func (p *Package) theme() (deck.Theme, error) {
	th := deck.Theme{Colors: map[string]string{}}
	rels, err := p.relationships(p.presentation)
	if err != nil {
		return th, err
	}
	rel, ok := rels.firstOfType(relTheme)
	if !ok {
		return th, nil
	}
	doc, err := p.document(resolvePart(p.presentation, rel.Target))
	if err != nil {
		return th, err
	}
	th.Name = doc.Root().SelectAttrValue("name", "")
	scheme := doc.Root().FindElement("./themeElements/clrScheme")
	if scheme == nil {
		return th, nil
	}
	for _, slot := range scheme.ChildElements() {
		for _, c := range slot.ChildElements() {
			switch c.Tag {
			case "srgbClr":
				th.Colors[slot.Tag] = c.SelectAttrValue("val", "")
			case "sysClr":
				th.Colors[slot.Tag] = c.SelectAttrValue("lastClr", "")
			}
		}
	}
	return th, nil
}

func (p *Package) readSlide(part string) (deck.Slide, error) {
	s := deck.Slide{Source: part}

	doc, err := p.document(part)
	if err != nil {
		return s, err
	}
	rels, err := p.relationships(part)
	if err != nil {
		return s, err
	}

	if rel, ok := rels.firstOfType(relSlideLayout); ok {
		s.Layout = resolvePart(part, rel.Target)
		if layout, err := p.document(s.Layout); err == nil {
			if cSld := layout.Root().SelectElement("cSld"); cSld != nil {
				s.LayoutName = cSld.SelectAttrValue("name", "")
			}
		}
	}

	tree := shapeTree(doc)
	if tree == nil {
		return s, nil
	}
	for _, el := range tree.ChildElements() {
		if !isShape(el) {
			continue
		}
		s.Shapes = append(s.Shapes, p.readShape(part, rels, el))
	}
	return s, nil
}

func (p *Package) readShape(part string, rels *relationships, el *etree.Element) deck.Shape {
	var sh deck.Shape
	if nv := el.FindElement(".//cNvPr"); nv != nil {
		sh.ID = attrInt(nv, "id")
		sh.Name = nv.SelectAttrValue("name", "")
	}
	if xfrm := frameElement(el); xfrm != nil {
		sh.Frame, sh.HasFrame = readFrame(xfrm)
	}

	switch el.Tag {
	case "sp":
		if body := el.SelectElement("txBody"); body != nil {
			sh.Kind = deck.ShapeText
			sh.Text = readTextBody(body)
		}
	case "pic":
		blip := el.FindElement("./blipFill/blip")
		if blip == nil {
			break
		}
		rel, ok := rels.byID(blip.SelectAttrValue("r:embed", ""))
		if !ok || rel.External {
			break
		}
		if data, ok := p.parts[resolvePart(part, rel.Target)]; ok {
			sh.Kind = deck.ShapePicture
			sh.Picture = &deck.Picture{Data: data, ContentType: mimetype.Detect(data).String()}
		}
	default:
		// Group members and table cells.
		for _, body := range nestedBodies(el) {
			sh.Nested = append(sh.Nested, readTextBody(body))
		}
	}
	return sh
}

// nestedBodies returns the text bodies below a group, table or other
// container shape in document order.
func nestedBodies(el *etree.Element) []*etree.Element {
	return el.FindElements(".//txBody")
}

func shapeTree(doc *etree.Document) *etree.Element {
	cSld := doc.Root().SelectElement("cSld")
	if cSld == nil {
		return nil
	}
	return cSld.SelectElement("spTree")
}

func isShape(el *etree.Element) bool {
	switch el.Tag {
	case "sp", "pic", "graphicFrame", "grpSp", "cxnSp", "contentPart", "AlternateContent":
		return true
	}
	return false
}

// frameElement returns the a:xfrm (or p:xfrm) holding el's position.
func frameElement(el *etree.Element) *etree.Element {
	var props *etree.Element
	switch el.Tag {
	case "sp", "pic", "cxnSp":
		props = el.SelectElement("spPr")
	case "grpSp":
		props = el.SelectElement("grpSpPr")
	case "graphicFrame":
		props = el
	}
	if props == nil {
		return nil
	}
	return props.SelectElement("xfrm")
}

func readFrame(xfrm *etree.Element) (deck.Frame, bool) {
	off := xfrm.SelectElement("off")
	ext := xfrm.SelectElement("ext")
	if off == nil || ext == nil {
		return deck.Frame{}, false
	}
	return deck.Frame{
		X:      attrInt64(off, "x"),
		Y:      attrInt64(off, "y"),
		Width:  attrInt64(ext, "cx"),
		Height: attrInt64(ext, "cy"),
	}, true
}
