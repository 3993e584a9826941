package pptx

import (
	"strings"

	"github.com/beevik/etree"
)

type contentTypes struct {
	doc *etree.Document
}

func parseContentTypes(data []byte) (*contentTypes, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, err
	}
	if doc.Root() == nil {
		return nil, ErrNotPresentation
	}
	return &contentTypes{doc: doc}, nil
}

func (c *contentTypes) findOverride(part string) *etree.Element {
	for _, el := range c.doc.Root().SelectElements("Override") {
		if strings.EqualFold(el.SelectAttrValue("PartName", ""), "/"+part) {
			return el
		}
	}
	return nil
}

func (c *contentTypes) setOverride(part, contentType string) {
	el := c.findOverride(part)
	if el == nil {
		el = c.doc.Root().CreateElement("Override")
		el.CreateAttr("PartName", "/"+part)
	}
	el.CreateAttr("ContentType", contentType)
}

func (c *contentTypes) removeOverride(part string) {
	if el := c.findOverride(part); el != nil {
		c.doc.Root().RemoveChild(el)
	}
}

func (c *contentTypes) ensureDefault(ext, contentType string) {
	for _, el := range c.doc.Root().SelectElements("Default") {
		if strings.EqualFold(el.SelectAttrValue("Extension", ""), ext) {
			return
		}
	}
	el := etree.NewElement("Default")
	el.CreateAttr("Extension", ext)
	el.CreateAttr("ContentType", contentType)
	// Defaults come before Overrides.
	if first := c.doc.Root().SelectElement("Override"); first != nil {
		c.doc.Root().InsertChildAt(first.Index(), el)
		return
	}
	c.doc.Root().AddChild(el)
}

func (c *contentTypes) bytes() ([]byte, error) {
	return c.doc.WriteToBytes()
}
