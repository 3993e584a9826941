// Package pptx reads PowerPoint (.pptx) packages into deck descriptions and
// writes deck descriptions back, using the package's own slides as XML
// skeletons so everything the description does not model survives.
package pptx

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

const (
	contentTypesPart = "[Content_Types].xml"

	relOfficeDocument = "officeDocument"
	relExtendedProps  = "extended-properties"
	relSlide          = "slide"
	relSlideLayout    = "slideLayout"
	relNotesSlide     = "notesSlide"
	relImage          = "image"
	relTheme          = "theme"

	relTypePrefix = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/"

	slideContentType = "application/vnd.openxmlformats-officedocument.presentationml.slide+xml"
)

// ErrNotPresentation is returned for files that are not PowerPoint packages.
var ErrNotPresentation = errors.New("not a PowerPoint presentation")

// Package is a presentation package held in memory. It is not modified by
// Deck or Save and can be reused.
type Package struct {
	parts        map[string][]byte
	order        []string
	presentation string
	slides       []string
}

// Open reads the presentation at path.
func Open(path string) (*Package, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open presentation: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat presentation: %w", err)
	}
	return Read(f, info.Size())
}

// OpenBytes reads a presentation held in memory.
func OpenBytes(data []byte) (*Package, error) {
	return Read(bytes.NewReader(data), int64(len(data)))
}

// Read loads every part of the package. The reader is not used after Read returns.
func Read(r io.ReaderAt, size int64) (*Package, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotPresentation, err)
	}

	p := &Package{parts: make(map[string][]byte, len(zr.File))}
	for _, f := range zr.File {
		if strings.HasSuffix(f.Name, "/") {
			continue
		}
		data, err := readZipFile(f)
		if err != nil {
			return nil, fmt.Errorf("failed to read part %s: %w", f.Name, err)
		}
		name := strings.TrimPrefix(f.Name, "/")
		if _, dup := p.parts[name]; !dup {
			p.order = append(p.order, name)
		}
		p.parts[name] = data
	}

	if _, ok := p.parts[contentTypesPart]; !ok {
		return nil, fmt.Errorf("%w: missing %s", ErrNotPresentation, contentTypesPart)
	}
	rels, err := p.relationships("")
	if err != nil {
		return nil, err
	}
	doc, ok := rels.firstOfType(relOfficeDocument)
	if !ok {
		return nil, fmt.Errorf("%w: no main document", ErrNotPresentation)
	}
	p.presentation = resolvePart("", doc.Target)
	if _, ok := p.parts[p.presentation]; !ok {
		return nil, fmt.Errorf("%w: missing %s", ErrNotPresentation, p.presentation)
	}

	if p.slides, err = p.slideOrder(); err != nil {
		return nil, err
	}
	return p, nil
}

func readZipFile(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// SlideCount returns the number of slides in presentation order.
func (p *Package) SlideCount() int {
	return len(p.slides)
}

// Part returns the raw bytes of a part.
func (p *Package) Part(name string) ([]byte, bool) {
	data, ok := p.parts[name]
	return data, ok
}

// slideOrder lists slide parts in sldIdLst order.
func (p *Package) slideOrder() ([]string, error) {
	doc, err := p.document(p.presentation)
	if err != nil {
		return nil, err
	}
	rels, err := p.relationships(p.presentation)
	if err != nil {
		return nil, err
	}

	var slides []string
	lst := doc.Root().SelectElement("sldIdLst")
	if lst == nil {
		return slides, nil
	}
	for _, id := range lst.SelectElements("sldId") {
		rid := id.SelectAttrValue("r:id", "")
		rel, ok := rels.byID(rid)
		if !ok {
			return nil, fmt.Errorf("%w: slide relationship %q not found", ErrNotPresentation, rid)
		}
		part := resolvePart(p.presentation, rel.Target)
		if _, ok := p.parts[part]; !ok {
			return nil, fmt.Errorf("%w: missing slide part %s", ErrNotPresentation, part)
		}
		slides = append(slides, part)
	}
	return slides, nil
}

// document parses a part. Every call returns a fresh tree.
func (p *Package) document(part string) (*etree.Document, error) {
	data, ok := p.parts[part]
	if !ok {
		return nil, fmt.Errorf("part %s not found", part)
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", part, err)
	}
	if doc.Root() == nil {
		return nil, fmt.Errorf("part %s has no root element", part)
	}
	return doc, nil
}

// relationships returns the relationships of part ("" for the package).
func (p *Package) relationships(part string) (*relationships, error) {
	data, ok := p.parts[relsPartName(part)]
	if !ok {
		return &relationships{}, nil
	}
	rels, err := parseRelationships(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse relationships of %q: %w", part, err)
	}
	return rels, nil
}

func attrInt(el *etree.Element, key string) int {
	v, _ := strconv.Atoi(el.SelectAttrValue(key, "0"))
	return v
}

func attrInt64(el *etree.Element, key string) int64 {
	v, _ := strconv.ParseInt(el.SelectAttrValue(key, "0"), 10, 64)
	return v
}
