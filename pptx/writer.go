package pptx

import (
	"archive/zip"
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"github.com/gabriel-vasile/mimetype"

	"birthdayppt/deck"
)

// Save writes d to w as a presentation built from p's parts. Every slide of d
// must name a Source slide of p; shapes are rebuilt from the source shape with
// the same ID, or created anew for text and pictures without one. The slides
// of p that d does not reproduce are dropped together with all speaker notes.
func (p *Package) Save(w io.Writer, d deck.Deck) error {
	b, err := newBuilder(p)
	if err != nil {
		return err
	}
	if err := b.build(d); err != nil {
		return err
	}
	return b.writeZip(w)
}

// SaveFile writes d to path.
func (p *Package) SaveFile(path string, d deck.Deck) (err error) {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()
	return p.Save(f, d)
}

type builder struct {
	src   *Package
	parts map[string][]byte
	added []string
	types *contentTypes
	media map[[sha256.Size]byte]string
}

func newBuilder(src *Package) (*builder, error) {
	types, err := parseContentTypes(src.parts[contentTypesPart])
	if err != nil {
		return nil, fmt.Errorf("failed to parse content types: %w", err)
	}
	b := &builder{
		src:   src,
		parts: make(map[string][]byte, len(src.parts)),
		types: types,
		media: make(map[[sha256.Size]byte]string),
	}
	for _, name := range src.order {
		data := src.parts[name]
		b.parts[name] = data
		if strings.HasPrefix(name, "ppt/media/") {
			sum := sha256.Sum256(data)
			if _, ok := b.media[sum]; !ok {
				b.media[sum] = name
			}
		}
	}
	return b, nil
}

func (b *builder) put(name string, data []byte) {
	if _, ok := b.parts[name]; !ok && !slices.Contains(b.src.order, name) {
		b.added = append(b.added, name)
	}
	b.parts[name] = data
}

func (b *builder) remove(name string) {
	delete(b.parts, name)
	b.types.removeOverride(name)
}

func (b *builder) build(d deck.Deck) error {
	for _, part := range b.src.slides {
		rels, err := b.src.relationships(part)
		if err != nil {
			return err
		}
		for _, rel := range rels.ofType(relNotesSlide) {
			notes := resolvePart(part, rel.Target)
			b.remove(notes)
			b.remove(relsPartName(notes))
		}
		b.remove(part)
		b.remove(relsPartName(part))
	}

	names := make([]string, len(d.Slides))
	for i, s := range d.Slides {
		name := fmt.Sprintf("ppt/slides/slide%d.xml", i+1)
		if err := b.buildSlide(name, s); err != nil {
			return fmt.Errorf("failed to build slide %d: %w", i+1, err)
		}
		names[i] = name
	}

	if err := b.updatePresentation(names); err != nil {
		return err
	}
	if err := b.updateAppProps(len(names)); err != nil {
		return err
	}
	data, err := b.types.bytes()
	if err != nil {
		return err
	}
	b.put(contentTypesPart, data)
	return nil
}

// slideRefs re-creates the relationships a slide's XML refers to.
type slideRefs struct {
	name    string
	source  string
	srcRels *relationships
	out     *relationships
	mapped  map[string]string
}

func (r *slideRefs) remap(el *etree.Element) error {
	for i := range el.Attr {
		a := &el.Attr[i]
		if a.Space != "r" || a.Value == "" {
			continue
		}
		if id, ok := r.mapped[a.Value]; ok {
			a.Value = id
			continue
		}
		rel, ok := r.srcRels.byID(a.Value)
		if !ok {
			return fmt.Errorf("relationship %s of %s not found", a.Value, r.source)
		}
		target := rel.Target
		if !rel.External {
			target = relativeTarget(r.name, resolvePart(r.source, rel.Target))
		}
		id := r.out.add(rel.Type, target, rel.External)
		r.mapped[a.Value] = id
		a.Value = id
	}
	for _, c := range el.ChildElements() {
		if err := r.remap(c); err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) buildSlide(name string, s deck.Slide) error {
	if s.Source == "" {
		return fmt.Errorf("slide has no source slide")
	}
	doc, err := b.src.document(s.Source)
	if err != nil {
		return err
	}
	srcRels, err := b.src.relationships(s.Source)
	if err != nil {
		return err
	}

	tree := shapeTree(doc)
	if tree == nil {
		return fmt.Errorf("%s has no shape tree", s.Source)
	}
	skeletons := make(map[int]*etree.Element)
	for _, el := range tree.ChildElements() {
		if !isShape(el) {
			continue
		}
		id := 0
		if nv := el.FindElement(".//cNvPr"); nv != nil {
			id = attrInt(nv, "id")
		}
		if _, dup := skeletons[id]; !dup {
			skeletons[id] = el
		}
		tree.RemoveChild(el)
	}

	layout := s.Layout
	if layout == "" {
		if rel, ok := srcRels.firstOfType(relSlideLayout); ok {
			layout = resolvePart(s.Source, rel.Target)
		}
	}
	if layout == "" {
		return fmt.Errorf("%s has no slide layout", s.Source)
	}

	refs := &slideRefs{
		name:    name,
		source:  s.Source,
		srcRels: srcRels,
		out:     &relationships{},
		mapped:  make(map[string]string),
	}
	refs.out.add(relTypePrefix+relSlideLayout, relativeTarget(name, layout), false)

	// Background images, transitions and other slide-level references.
	if err := refs.remap(doc.Root()); err != nil {
		return err
	}

	maxID := 1
	for _, sh := range s.Shapes {
		maxID = max(maxID, sh.ID)
	}
	ext := tree.SelectElement("extLst")
	for _, sh := range s.Shapes {
		if sh.ID <= 0 {
			maxID++
			sh.ID = maxID
		}
		el, err := b.buildShape(refs, sh, skeletons[sh.ID])
		if err != nil {
			return fmt.Errorf("shape %d (%s): %w", sh.ID, sh.Name, err)
		}
		if ext != nil {
			tree.InsertChildAt(ext.Index(), el)
		} else {
			tree.AddChild(el)
		}
	}

	data, err := doc.WriteToBytes()
	if err != nil {
		return err
	}
	relsData, err := refs.out.bytes()
	if err != nil {
		return err
	}
	b.put(name, data)
	b.put(relsPartName(name), relsData)
	b.types.setOverride(name, slideContentType)
	return nil
}

func (b *builder) buildShape(refs *slideRefs, sh deck.Shape, skel *etree.Element) (*etree.Element, error) {
	var el *etree.Element
	var mediaPart string
	if sh.Kind == deck.ShapePicture && sh.Picture != nil {
		part, err := b.mediaPart(sh.Picture)
		if err != nil {
			return nil, err
		}
		mediaPart = part
	}

	if skel != nil {
		el = skel.Copy()
		if mediaPart != "" {
			// Drop the old image reference unless it already points at the picture.
			if blip := el.FindElement(".//blip"); blip != nil {
				rel, ok := refs.srcRels.byID(blip.SelectAttrValue("r:embed", ""))
				if !ok || rel.External || resolvePart(refs.source, rel.Target) != mediaPart {
					blip.RemoveAttr("r:embed")
				}
			}
		}
		if err := refs.remap(el); err != nil {
			return nil, err
		}
	} else {
		switch sh.Kind {
		case deck.ShapeText:
			el = newTextShape()
		case deck.ShapePicture:
			el = newPictureShape()
		default:
			return nil, fmt.Errorf("no source element to clone")
		}
	}

	if nv := el.FindElement(".//cNvPr"); nv != nil {
		nv.CreateAttr("id", strconv.Itoa(sh.ID))
		if sh.Name != "" {
			nv.CreateAttr("name", sh.Name)
		}
	}
	if sh.HasFrame {
		setFrame(el, sh.Frame)
	}

	if sh.Kind == deck.ShapeText && sh.Text != nil {
		body := el.SelectElement("txBody")
		if body == nil {
			body = newTextBody()
			if ext := el.SelectElement("extLst"); ext != nil {
				el.InsertChildAt(ext.Index(), body)
			} else {
				el.AddChild(body)
			}
		}
		writeTextBody(body, sh.Text)
	}
	if len(sh.Nested) > 0 && skel != nil {
		bodies := nestedBodies(el)
		for i, tf := range sh.Nested {
			if i < len(bodies) && tf != nil {
				writeTextBody(bodies[i], tf)
			}
		}
	}

	if mediaPart != "" {
		blip := el.FindElement(".//blip")
		if blip == nil {
			return nil, fmt.Errorf("picture has no blip")
		}
		if blip.SelectAttr("r:embed") == nil {
			id := refs.out.add(relTypePrefix+relImage, relativeTarget(refs.name, mediaPart), false)
			blip.CreateAttr("r:embed", id)
		}
	}
	return el, nil
}

// mediaPart returns the media part holding the picture, adding one when no
// part with the same bytes exists.
func (b *builder) mediaPart(pic *deck.Picture) (string, error) {
	if len(pic.Data) == 0 {
		return "", fmt.Errorf("picture has no data")
	}
	sum := sha256.Sum256(pic.Data)
	if name, ok := b.media[sum]; ok {
		return name, nil
	}

	mt := mimetype.Detect(pic.Data)
	ext := mt.Extension()
	if ext == "" {
		ext = ".bin"
	}
	contentType := pic.ContentType
	if contentType == "" {
		contentType = mt.String()
	}

	var name string
	for n := len(b.media) + 1; ; n++ {
		name = fmt.Sprintf("ppt/media/image%d%s", n, ext)
		if _, taken := b.parts[name]; !taken {
			break
		}
	}
	b.put(name, pic.Data)
	b.types.ensureDefault(strings.TrimPrefix(ext, "."), contentType)
	b.media[sum] = name
	return name, nil
}

func setFrame(el *etree.Element, f deck.Frame) {
	var props *etree.Element
	xfrmTag := "a:xfrm"
	switch el.Tag {
	case "sp", "pic", "cxnSp":
		props = el.SelectElement("spPr")
		if props == nil {
			props = etree.NewElement("p:spPr")
			// spPr follows the non-visual properties.
			at := 0
			if children := el.ChildElements(); len(children) > 0 {
				at = children[0].Index() + 1
			}
			el.InsertChildAt(at, props)
		}
	case "grpSp":
		props = el.SelectElement("grpSpPr")
	case "graphicFrame":
		props = el
		xfrmTag = "p:xfrm"
	}
	if props == nil {
		return
	}

	xfrm := props.SelectElement("xfrm")
	if xfrm == nil {
		xfrm = etree.NewElement(xfrmTag)
		if el.Tag == "graphicFrame" {
			if g := props.SelectElement("graphic"); g != nil {
				props.InsertChildAt(g.Index(), xfrm)
			} else {
				props.AddChild(xfrm)
			}
		} else {
			props.InsertChildAt(0, xfrm)
		}
	}
	off := xfrm.SelectElement("off")
	if off == nil {
		off = etree.NewElement("a:off")
		xfrm.InsertChildAt(0, off)
	}
	off.CreateAttr("x", strconv.FormatInt(f.X, 10))
	off.CreateAttr("y", strconv.FormatInt(f.Y, 10))
	ext := xfrm.SelectElement("ext")
	if ext == nil {
		ext = etree.NewElement("a:ext")
		xfrm.InsertChildAt(off.Index()+1, ext)
	}
	ext.CreateAttr("cx", strconv.FormatInt(f.Width, 10))
	ext.CreateAttr("cy", strconv.FormatInt(f.Height, 10))
}

func newTextShape() *etree.Element {
	sp := etree.NewElement("p:sp")
	nv := sp.CreateElement("p:nvSpPr")
	nv.CreateElement("p:cNvPr").CreateAttr("name", "TextBox")
	nv.CreateElement("p:cNvSpPr").CreateAttr("txBox", "1")
	nv.CreateElement("p:nvPr")
	spPr := sp.CreateElement("p:spPr")
	geom := spPr.CreateElement("a:prstGeom")
	geom.CreateAttr("prst", "rect")
	geom.CreateElement("a:avLst")
	spPr.CreateElement("a:noFill")
	sp.AddChild(newTextBody())
	return sp
}

func newTextBody() *etree.Element {
	body := etree.NewElement("p:txBody")
	bodyPr := body.CreateElement("a:bodyPr")
	bodyPr.CreateAttr("wrap", "square")
	bodyPr.CreateAttr("rtlCol", "0")
	body.CreateElement("a:lstStyle")
	return body
}

func newPictureShape() *etree.Element {
	pic := etree.NewElement("p:pic")
	nv := pic.CreateElement("p:nvPicPr")
	nv.CreateElement("p:cNvPr").CreateAttr("name", "Picture")
	nv.CreateElement("p:cNvPicPr").CreateElement("a:picLocks").CreateAttr("noChangeAspect", "1")
	nv.CreateElement("p:nvPr")
	fill := pic.CreateElement("p:blipFill")
	fill.CreateElement("a:blip")
	fill.CreateElement("a:stretch").CreateElement("a:fillRect")
	spPr := pic.CreateElement("p:spPr")
	geom := spPr.CreateElement("a:prstGeom")
	geom.CreateAttr("prst", "rect")
	geom.CreateElement("a:avLst")
	return pic
}

func (b *builder) updatePresentation(slides []string) error {
	doc, err := b.src.document(b.src.presentation)
	if err != nil {
		return err
	}
	rels, err := b.src.relationships(b.src.presentation)
	if err != nil {
		return err
	}
	rels.removeType(relSlide)

	root := doc.Root()
	lst := root.SelectElement("sldIdLst")
	if lst == nil {
		lst = etree.NewElement("p:sldIdLst")
		at := 0
		for _, tag := range []string{"sldMasterIdLst", "notesMasterIdLst", "handoutMasterIdLst"} {
			if el := root.SelectElement(tag); el != nil {
				at = el.Index() + 1
			}
		}
		root.InsertChildAt(at, lst)
	}
	for _, c := range lst.ChildElements() {
		lst.RemoveChild(c)
	}

	ids := make([]string, len(slides))
	for i, name := range slides {
		rid := rels.add(relTypePrefix+relSlide, relativeTarget(b.src.presentation, name), false)
		ids[i] = strconv.Itoa(256 + i)
		el := lst.CreateElement("p:sldId")
		el.CreateAttr("id", ids[i])
		el.CreateAttr("r:id", rid)
	}

	// Custom shows list slides by relationship id and would dangle.
	if shows := root.SelectElement("custShowLst"); shows != nil {
		root.RemoveChild(shows)
	}

	for i, section := range root.FindElements(".//extLst//section") {
		sl := section.SelectElement("sldIdLst")
		if sl == nil {
			continue
		}
		for _, c := range sl.ChildElements() {
			sl.RemoveChild(c)
		}
		if i > 0 {
			continue
		}
		for _, id := range ids {
			el := etree.NewElement(sl.Space + ":sldId")
			el.CreateAttr("id", id)
			sl.AddChild(el)
		}
	}

	data, err := doc.WriteToBytes()
	if err != nil {
		return err
	}
	relsData, err := rels.bytes()
	if err != nil {
		return err
	}
	b.put(b.src.presentation, data)
	b.put(relsPartName(b.src.presentation), relsData)
	return nil
}

func (b *builder) updateAppProps(slideCount int) error {
	rels, err := b.src.relationships("")
	if err != nil {
		return err
	}
	rel, ok := rels.firstOfType(relExtendedProps)
	if !ok {
		return nil
	}
	part := resolvePart("", rel.Target)
	if _, ok := b.parts[part]; !ok {
		return nil
	}
	doc, err := b.src.document(part)
	if err != nil {
		return err
	}
	if el := doc.Root().SelectElement("Slides"); el != nil {
		el.SetText(strconv.Itoa(slideCount))
	}
	if el := doc.Root().SelectElement("Notes"); el != nil {
		el.SetText("0")
	}
	data, err := doc.WriteToBytes()
	if err != nil {
		return err
	}
	b.put(part, data)
	return nil
}

func (b *builder) writeZip(w io.Writer) error {
	zw := zip.NewWriter(w)
	names := []string{contentTypesPart}
	for _, name := range b.src.order {
		if name != contentTypesPart {
			names = append(names, name)
		}
	}
	names = append(names, b.added...)

	for _, name := range names {
		data, ok := b.parts[name]
		if !ok {
			continue
		}
		fw, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate})
		if err != nil {
			return fmt.Errorf("failed to add %s: %w", name, err)
		}
		if _, err := fw.Write(data); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
	}
	return zw.Close()
}
