package view

import (
	"fmt"

	"github.com/google/uuid"
)

// Overlay kinds.
const (
	KindTooltip = "tooltip"
	KindModal   = "modal"
)

// Slot holds the one transient overlay a widget may have open. Opening a new
// overlay always tears down the previous one first, so at most one node
// carrying the slot's marker class exists in the document.
type Slot struct {
	doc    *Document
	marker string

	id   string
	kind string
}

// NewSlot creates a slot whose overlay nodes carry the marker class.
func NewSlot(doc *Document, marker string) *Slot {
	return &Slot{doc: doc, marker: marker}
}

// Marker returns the class that identifies this slot's overlay nodes.
func (s *Slot) Marker() string {
	return s.marker
}

// Open replaces the current overlay with n and returns the new overlay id.
func (s *Slot) Open(kind string, n Node) string {
	s.Close()

	id := uuid.New().String()
	if n.Class == "" {
		n.Class = s.marker
	} else {
		n.Class = n.Class + " " + s.marker
	}
	n = n.WithAttr("data-overlay-id", id).WithAttr("data-overlay-kind", kind)
	s.doc.AppendBody(n)

	s.id, s.kind = id, kind
	return id
}

// Close removes the current overlay. Returns false if nothing was open.
func (s *Slot) Close() bool {
	if s.id == "" {
		return false
	}
	s.doc.Find(fmt.Sprintf(`[data-overlay-id="%s"]`, s.id)).Remove()
	s.id, s.kind = "", ""
	return true
}

// CloseKind closes the current overlay only if it is of the given kind.
func (s *Slot) CloseKind(kind string) bool {
	if s.kind != kind {
		return false
	}
	return s.Close()
}

// Kind returns the kind of the open overlay, or "" when none is open.
func (s *Slot) Kind() string {
	return s.kind
}

// ID returns the id of the open overlay, or "" when none is open.
func (s *Slot) ID() string {
	return s.id
}
