package pptx

import (
	"fmt"
	"path"
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

const relationshipsNS = "http://schemas.openxmlformats.org/package/2006/relationships"

type relationship struct {
	ID       string
	Type     string
	Target   string
	External bool
}

func (r relationship) is(kind string) bool {
	return strings.HasSuffix(r.Type, "/"+kind)
}

type relationships struct {
	list []relationship
}

func parseRelationships(data []byte) (*relationships, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, err
	}
	rels := &relationships{}
	root := doc.Root()
	if root == nil {
		return rels, nil
	}
	for _, el := range root.SelectElements("Relationship") {
		rels.list = append(rels.list, relationship{
			ID:       el.SelectAttrValue("Id", ""),
			Type:     el.SelectAttrValue("Type", ""),
			Target:   el.SelectAttrValue("Target", ""),
			External: el.SelectAttrValue("TargetMode", "") == "External",
		})
	}
	return rels, nil
}

func (r *relationships) byID(id string) (relationship, bool) {
	for _, rel := range r.list {
		if rel.ID == id {
			return rel, true
		}
	}
	return relationship{}, false
}

func (r *relationships) firstOfType(kind string) (relationship, bool) {
	for _, rel := range r.list {
		if rel.is(kind) {
			return rel, true
		}
	}
	return relationship{}, false
}

func (r *relationships) ofType(kind string) []relationship {
	var out []relationship
	for _, rel := range r.list {
		if rel.is(kind) {
			out = append(out, rel)
		}
	}
	return out
}

func (r *relationships) removeType(kind string) {
	kept := r.list[:0]
	for _, rel := range r.list {
		if !rel.is(kind) {
			kept = append(kept, rel)
		}
	}
	r.list = kept
}

// add appends a relationship and returns its new, unused id.
func (r *relationships) add(typ, target string, external bool) string {
	next := 1
	for _, rel := range r.list {
		if n, err := strconv.Atoi(strings.TrimPrefix(rel.ID, "rId")); err == nil && n >= next {
			next = n + 1
		}
	}
	id := fmt.Sprintf("rId%d", next)
	r.list = append(r.list, relationship{ID: id, Type: typ, Target: target, External: external})
	return id
}

func (r *relationships) bytes() ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8" standalone="yes"`)
	root := doc.CreateElement("Relationships")
	root.CreateAttr("xmlns", relationshipsNS)
	for _, rel := range r.list {
		el := root.CreateElement("Relationship")
		el.CreateAttr("Id", rel.ID)
		el.CreateAttr("Type", rel.Type)
		el.CreateAttr("Target", rel.Target)
		if rel.External {
			el.CreateAttr("TargetMode", "External")
		}
	}
	return doc.WriteToBytes()
}

// relsPartName returns the relationships part of part; "" is the package itself.
func relsPartName(part string) string {
	dir, file := path.Split(part)
	return dir + "_rels/" + file + ".rels"
}

// resolvePart turns a relationship target of source into a part name.
func resolvePart(source, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	return strings.TrimPrefix(path.Clean(path.Join(path.Dir(source), target)), "/")
}

// relativeTarget returns the relationship target pointing from source to part.
func relativeTarget(source, part string) string {
	from := strings.Split(path.Dir(source), "/")
	if path.Dir(source) == "." {
		from = nil
	}
	to := strings.Split(part, "/")

	common := 0
	for common < len(from) && common < len(to)-1 && from[common] == to[common] {
		common++
	}
	var b strings.Builder
	for i := common; i < len(from); i++ {
		b.WriteString("../")
	}
	b.WriteString(strings.Join(to[common:], "/"))
	return b.String()
}
