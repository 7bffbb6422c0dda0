// Package dom defines the single adapter interface navigation code uses to
// read (and, for the selection marker only, mutate) a host document tree.
// Everything above this package sees the document exclusively through Node
// and Document.
package dom

import (
	"net/url"

	"axnav/common"
)

// MarkerTag is the element name of the synthetic selection marker.
const MarkerTag = "axnav-marker"

// Attr is a single attribute in document order.
type Attr struct {
	Name  string
	Value string
}

// Rect is a host geometry rectangle in document coordinates.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Empty reports whether rectangle has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Union returns smallest rectangle containing both r and o. Empty rectangles
// do not contribute.
func (r Rect) Union(o Rect) Rect {
	switch {
	case r.Empty():
		return o
	case o.Empty():
		return r
	}
	x0, y0 := min(r.X, o.X), min(r.Y, o.Y)
	x1, y1 := max(r.X+r.Width, o.X+o.Width), max(r.Y+r.Height, o.Y+o.Height)
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Style is host computed presentation state the classifiers need.
type Style struct {
	Display    string // computed display keyword, empty when host does not know
	Visibility string // inherited visibility keyword, empty means visible
	Explicit   bool   // display was set by author (stylesheet or style attribute)
}

// Hidden reports whether node is not displayed or not visible.
func (s Style) Hidden() bool {
	return s.Display == "none" || s.Visibility == "hidden" || s.Visibility == "collapse"
}

// Node is a content node of the host document. Adapters must return the same
// Node value for the same underlying node so that nodes can be compared with
// ==, and must return untyped nil where there is no node.
type Node interface {
	Type() common.NodeType
	// Tag is lower-case element name, empty for non-elements.
	Tag() string
	Attr(name string) (string, bool)
	Attrs() []Attr
	Children() []Node
	Parent() Node
	// Text is payload of text and comment nodes.
	Text() string
	Style() Style
	Rects() []Rect
}

// Document gives access to the tree as a whole. Mutating methods exist only
// to support the selection marker.
type Document interface {
	// Top is the document node itself.
	Top() Node
	// Root is the document root container navigation is confined to: body
	// when present, document element otherwise.
	Root() Node
	ByID(id string) Node
	// URL document was loaded from, may be nil.
	URL() *url.URL
	CreateMarker() Node
	// InsertBefore moves child (detaching it from its current parent if
	// necessary) under parent before ref; nil ref appends.
	InsertBefore(parent, child, ref Node) error
	RemoveChild(parent, child Node) error
	// Generation changes on every structural mutation.
	Generation() uint64
}

// Geometry supplies host rectangles for a node.
type Geometry func(n Node) []Rect
