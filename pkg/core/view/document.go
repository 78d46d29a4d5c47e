package view

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Document is the host page the widgets mount into. It is owned by a single
// caller and is not safe for concurrent use.
type Document struct {
	doc *goquery.Document
}

// Parse reads a host page.
func Parse(r io.Reader) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse host document: %w", err)
	}
	return &Document{doc: doc}, nil
}

// ParseString is Parse for an in-memory page.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// Anchor looks up a required container element by id.
func (d *Document) Anchor(id string) (*goquery.Selection, bool) {
	sel := d.doc.Find("#" + id)
	if sel.Length() == 0 {
		return nil, false
	}
	return sel.First(), true
}

// Find runs a CSS selector against the whole document.
func (d *Document) Find(selector string) *goquery.Selection {
	return d.doc.Find(selector)
}

// Count returns how many elements match the selector.
func (d *Document) Count(selector string) int {
	return d.doc.Find(selector).Length()
}

// AppendTo appends the rendered tree as the last child of parent.
func (d *Document) AppendTo(parent *goquery.Selection, n Node) *goquery.Selection {
	node := HTMLNode(n)
	parent.AppendNodes(node)
	return goquery.NewDocumentFromNode(node).Selection
}

// AppendBody appends the rendered tree to <body>.
func (d *Document) AppendBody(n Node) *goquery.Selection {
	return d.AppendTo(d.doc.Find("body").First(), n)
}

// After inserts the rendered tree as the next sibling of sel.
func (d *Document) After(sel *goquery.Selection, n Node) *goquery.Selection {
	node := HTMLNode(n)
	sel.AfterNodes(node)
	return goquery.NewDocumentFromNode(node).Selection
}

// Replace swaps every child of parent for the rendered tree.
func (d *Document) Replace(parent *goquery.Selection, n Node) *goquery.Selection {
	parent.Empty()
	return d.AppendTo(parent, n)
}

// SetText replaces the text content of the element with the given id.
// Returns false if the element does not exist.
func (d *Document) SetText(id, text string) bool {
	sel, ok := d.Anchor(id)
	if !ok {
		return false
	}
	sel.SetText(text)
	return true
}

// SetStyle sets one inline style property, preserving the others.
func (d *Document) SetStyle(id, prop, value string) bool {
	sel, ok := d.Anchor(id)
	if !ok {
		return false
	}
	style := parseStyle(sel.AttrOr("style", ""))
	style[prop] = value
	sel.SetAttr("style", styleString(style))
	return true
}

// Style returns one inline style property of the element with the given id.
func (d *Document) Style(id, prop string) string {
	sel, ok := d.Anchor(id)
	if !ok {
		return ""
	}
	return parseStyle(sel.AttrOr("style", ""))[prop]
}

// HTML serialises the whole document.
func (d *Document) HTML() (string, error) {
	out, err := d.doc.Html()
	if err != nil {
		return "", fmt.Errorf("failed to serialise document: %w", err)
	}
	return out, nil
}

func parseStyle(s string) map[string]string {
	out := make(map[string]string)
	for _, decl := range strings.Split(s, ";") {
		prop, value, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		prop = strings.TrimSpace(prop)
		if prop == "" {
			continue
		}
		out[prop] = strings.TrimSpace(value)
	}
	return out
}
