// Package mask wraps the active unit into a single marker element so host
// geometry can treat multi-node selection as one node.
package mask

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"axnav/dom"
)

// ErrNoMarker is returned by Unmask when marker vanished from the tree
// underneath the manager.
var ErrNoMarker = errors.New("selection marker is detached")

// Manager owns at most one live marker per document.
type Manager struct {
	log    *zap.Logger
	doc    dom.Document
	marker dom.Node
}

// New creates manager for doc.
func New(doc dom.Document, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{log: log.Named("mask"), doc: doc}
}

// Marker returns live marker or nil.
func (m *Manager) Marker() dom.Node {
	return m.marker
}

// Mask removes any previous marker, then moves the inclusive sibling range
// from the first to the last unit node into a new marker placed where the
// range was. On structural error the tree is left untouched.
func (m *Manager) Mask(u dom.Unit) (dom.Node, error) {
	if err := m.Unmask(); err != nil {
		return nil, err
	}
	if u.Empty() {
		return nil, nil
	}
	if err := u.Validate(); err != nil {
		return nil, err
	}
	span, err := u.Span()
	if err != nil {
		return nil, err
	}
	parent, _ := u.Parent()

	marker := m.doc.CreateMarker()
	if err := m.doc.InsertBefore(parent, marker, span[0]); err != nil {
		return nil, fmt.Errorf("unable to insert marker: %w", err)
	}
	m.marker = marker
	for i, n := range span {
		if err := m.doc.InsertBefore(marker, n, nil); err != nil {
			// put back what was moved so far
			rerr := m.Unmask()
			m.log.Error("Unable to mask unit", zap.Int("moved", i), zap.Stringer("unit", u), zap.Error(err), zap.NamedError("restore", rerr))
			return nil, fmt.Errorf("unable to move node into marker: %w", err)
		}
	}
	return marker, nil
}

// Unmask splices marker children back to their place and removes marker.
// It does nothing when there is no marker.
func (m *Manager) Unmask() error {
	marker := m.marker
	if marker == nil {
		return nil
	}
	m.marker = nil

	parent := marker.Parent()
	if parent == nil {
		m.log.Warn("Selection marker was removed by someone else")
		return ErrNoMarker
	}
	for _, c := range marker.Children() {
		if err := m.doc.InsertBefore(parent, c, marker); err != nil {
			return fmt.Errorf("unable to restore node from marker: %w", err)
		}
	}
	if err := m.doc.RemoveChild(parent, marker); err != nil {
		return fmt.Errorf("unable to remove marker: %w", err)
	}
	return nil
}

// Reset forgets marker without touching the tree, used when document is
// replaced.
func (m *Manager) Reset(doc dom.Document) {
	m.doc, m.marker = doc, nil
}
