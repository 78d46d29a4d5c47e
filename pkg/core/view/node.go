// Package view holds the declarative render trees produced by the widgets and
// the host document they are mounted into.
//
// Widgets never build markup by string concatenation: they describe labelled
// fields as Node trees, and the tree is serialised by the HTML renderer, which
// also takes care of escaping.
package view

import (
	"sort"
	"strings"
)

// Node is one element of a render tree. A Node with an empty Tag is a text node.
type Node struct {
	Tag      string            `json:"tag,omitempty"`
	ID       string            `json:"id,omitempty"`
	Class    string            `json:"class,omitempty"`
	Attrs    map[string]string `json:"attrs,omitempty"`
	Style    map[string]string `json:"style,omitempty"`
	Text     string            `json:"text,omitempty"`
	Children []Node            `json:"children,omitempty"`
}

// El builds an element with a class and children.
func El(tag, class string, children ...Node) Node {
	return Node{Tag: tag, Class: class, Children: children}
}

// Text builds a text node.
func Text(s string) Node {
	return Node{Text: s}
}

// TextEl builds an element holding only text.
func TextEl(tag, class, text string) Node {
	return Node{Tag: tag, Class: class, Children: []Node{Text(text)}}
}

// Field is a labelled value row: <div class="detail-row"><span class="detail-label">…
func Field(label, value string) Node {
	return El("div", "detail-row",
		TextEl("span", "detail-label", label),
		TextEl("span", "detail-value", value),
	)
}

// WithAttr returns a copy of n with the attribute set.
func (n Node) WithAttr(key, value string) Node {
	attrs := make(map[string]string, len(n.Attrs)+1)
	for k, v := range n.Attrs {
		attrs[k] = v
	}
	attrs[key] = value
	n.Attrs = attrs
	return n
}

// WithStyle returns a copy of n with the inline style property set.
func (n Node) WithStyle(prop, value string) Node {
	style := make(map[string]string, len(n.Style)+1)
	for k, v := range n.Style {
		style[k] = v
	}
	style[prop] = value
	n.Style = style
	return n
}

// TextContent concatenates every text node below n, depth first.
func (n Node) TextContent() string {
	var b strings.Builder
	n.walk(func(c Node) {
		if c.Tag == "" {
			b.WriteString(c.Text)
		}
	})
	return b.String()
}

// FindClass returns the first node carrying the class, depth first.
func (n Node) FindClass(class string) (Node, bool) {
	var found Node
	ok := false
	n.walk(func(c Node) {
		if ok {
			return
		}
		for _, cl := range strings.Fields(c.Class) {
			if cl == class {
				found, ok = c, true
				return
			}
		}
	})
	return found, ok
}

func (n Node) walk(fn func(Node)) {
	fn(n)
	for _, c := range n.Children {
		c.walk(fn)
	}
}

// styleString serialises the style map in a stable order.
func styleString(style map[string]string) string {
	if len(style) == 0 {
		return ""
	}
	keys := make([]string, 0, len(style))
	for k := range style {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+style[k])
	}
	return strings.Join(parts, "; ") + ";"
}
