package view

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// HTMLNode converts the tree into an x/net/html node, ready to be inserted
// into a parsed document.
func HTMLNode(n Node) *html.Node {
	if n.Tag == "" {
		return &html.Node{Type: html.TextNode, Data: n.Text}
	}

	out := &html.Node{
		Type:     html.ElementNode,
		Data:     n.Tag,
		DataAtom: atom.Lookup([]byte(n.Tag)),
	}
	if n.ID != "" {
		out.Attr = append(out.Attr, html.Attribute{Key: "id", Val: n.ID})
	}
	if n.Class != "" {
		out.Attr = append(out.Attr, html.Attribute{Key: "class", Val: n.Class})
	}
	if s := styleString(n.Style); s != "" {
		out.Attr = append(out.Attr, html.Attribute{Key: "style", Val: s})
	}

	keys := make([]string, 0, len(n.Attrs))
	for k := range n.Attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		out.Attr = append(out.Attr, html.Attribute{Key: k, Val: n.Attrs[k]})
	}

	if n.Text != "" {
		out.AppendChild(&html.Node{Type: html.TextNode, Data: n.Text})
	}
	for _, c := range n.Children {
		out.AppendChild(HTMLNode(c))
	}
	return out
}

// Render serialises the tree to HTML.
func Render(n Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, HTMLNode(n)); err != nil {
		return "", fmt.Errorf("failed to render %s node: %w", n.Tag, err)
	}
	return buf.String(), nil
}

// FromHTML parses an HTML fragment (for example rendered markdown) back into
// render trees. Comments and doctype nodes are dropped.
func FromHTML(fragment string) ([]Node, error) {
	ctx := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	parsed, err := html.ParseFragment(strings.NewReader(fragment), ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to parse fragment: %w", err)
	}
	out := make([]Node, 0, len(parsed))
	for _, p := range parsed {
		if n, ok := fromHTMLNode(p); ok {
			out = append(out, n)
		}
	}
	return out, nil
}

func fromHTMLNode(h *html.Node) (Node, bool) {
	switch h.Type {
	case html.TextNode:
		return Text(h.Data), true
	case html.ElementNode:
	default:
		return Node{}, false
	}

	n := Node{Tag: h.Data}
	for _, a := range h.Attr {
		switch a.Key {
		case "id":
			n.ID = a.Val
		case "class":
			n.Class = a.Val
		case "style":
			n.Style = parseStyle(a.Val)
		default:
			n = n.WithAttr(a.Key, a.Val)
		}
	}
	for c := h.FirstChild; c != nil; c = c.NextSibling {
		if child, ok := fromHTMLNode(c); ok {
			n.Children = append(n.Children, child)
		}
	}
	return n, true
}
