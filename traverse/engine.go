// Package traverse computes next, previous, first and last navigation units
// over a classified document.
package traverse

import (
	"go.uber.org/zap"

	"axnav/common"
	"axnav/dom"
)

// Classifier is what traversal needs to know about nodes.
type Classifier interface {
	Document() dom.Document
	IsFocusable(n dom.Node, src common.Source) bool
	IsGrouped(n dom.Node) bool
	IsIgnorable(n dom.Node) bool
	IsMergeable(n dom.Node, src common.Source) bool
	AreAllChildrenInline(n dom.Node, src common.Source) bool
	FlowTargets(n dom.Node) []dom.Node
	FlowReferrers(n dom.Node) []dom.Node
}

// Engine walks the document in navigation order. Results are recomputed on
// every call, the engine keeps no state besides its collaborators.
type Engine struct {
	log *zap.Logger
	c   Classifier
}

// New creates traversal engine.
func New(c Classifier, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{log: log.Named("traverse"), c: c}
}

type direction bool

const (
	forward  direction = true
	backward direction = false
)

func (e *Engine) root() dom.Node {
	return e.c.Document().Root()
}

func (e *Engine) focusable(n dom.Node, src common.Source) bool {
	return !e.c.IsIgnorable(n) && e.c.IsFocusable(n, src)
}

// sibling returns nearest focusable sibling of n in given direction.
func (e *Engine) sibling(n dom.Node, src common.Source, dir direction) dom.Node {
	p := n.Parent()
	if p == nil {
		return nil
	}
	children := p.Children()
	i := indexIn(children, n)
	if i < 0 {
		return nil
	}
	for {
		if dir == forward {
			i++
		} else {
			i--
		}
		if i < 0 || i >= len(children) {
			return nil
		}
		if e.focusable(children[i], src) {
			return children[i]
		}
	}
}

// child returns first (forward) or last focusable child, nil for opaque
// leaves.
func (e *Engine) child(n dom.Node, src common.Source, dir direction) dom.Node {
	if e.c.IsGrouped(n) {
		return nil
	}
	children := n.Children()
	if dir == forward {
		for _, c := range children {
			if e.focusable(c, src) {
				return c
			}
		}
		return nil
	}
	for i := len(children) - 1; i >= 0; i-- {
		if e.focusable(children[i], src) {
			return children[i]
		}
	}
	return nil
}

func indexIn(children []dom.Node, n dom.Node) int {
	for i, c := range children {
		if c == n {
			return i
		}
	}
	return -1
}

// descend goes down while node has focusable child and its content is not
// all inline.
func (e *Engine) descend(n dom.Node, src common.Source, dir direction) dom.Node {
	for {
		c := e.child(n, src, dir)
		if c == nil || e.c.AreAllChildrenInline(n, src) {
			return n
		}
		n = c
	}
}

// extend widens raw sibling range children[lo..hi] over neighbouring
// mergeable nodes. Ignorable nodes inside the result are kept so the unit
// stays a contiguous range, ignorable nodes at its ends are not.
func (e *Engine) extend(children []dom.Node, lo, hi int, src common.Source) dom.Unit {
	for j := lo - 1; j >= 0; j-- {
		if e.c.IsIgnorable(children[j]) {
			continue
		}
		if !e.c.IsMergeable(children[j], src) {
			break
		}
		lo = j
	}
	for j := hi + 1; j < len(children); j++ {
		if e.c.IsIgnorable(children[j]) {
			continue
		}
		if !e.c.IsMergeable(children[j], src) {
			break
		}
		hi = j
	}
	return append(dom.Unit(nil), children[lo:hi+1]...)
}

// run builds inline run around seed: seed alone when it does not merge,
// otherwise the maximal range of mergeable siblings containing it.
func (e *Engine) run(seed dom.Node, src common.Source) dom.Unit {
	p := seed.Parent()
	if p == nil || !e.c.IsMergeable(seed, src) {
		return dom.Unit{seed}
	}
	children := p.Children()
	i := indexIn(children, seed)
	if i < 0 {
		return dom.Unit{seed}
	}
	return e.extend(children, i, i, src)
}

// refine narrows single node unit to the range of its focusable children,
// repeatedly, so the innermost contiguous range is reported.
func (e *Engine) refine(u dom.Unit, src common.Source) dom.Unit {
	for len(u) == 1 {
		first, last := e.child(u[0], src, forward), e.child(u[0], src, backward)
		if first == nil || last == nil {
			break
		}
		children := u[0].Children()
		lo, hi := indexIn(children, first), indexIn(children, last)
		if lo < 0 || hi < lo {
			break
		}
		u = e.extend(children, lo, hi, src)
	}
	return u
}

// collect turns seed node into navigation unit.
func (e *Engine) collect(seed dom.Node, src common.Source, dir direction) dom.Unit {
	return e.refine(e.run(e.descend(seed, src, dir), src), src)
}

// adjacent ascends from n until a focusable sibling in given direction is
// found, never leaving the document root container.
func (e *Engine) adjacent(n dom.Node, src common.Source, dir direction) dom.Unit {
	root := e.root()
	for cur := n; cur != nil && cur != root; cur = cur.Parent() {
		if s := e.sibling(cur, src, dir); s != nil {
			return e.collect(s, src, dir)
		}
	}
	return nil
}

// NextNodes returns unit following node from, empty unit at document end.
func (e *Engine) NextNodes(from dom.Node, src common.Source) dom.Unit {
	if from == nil {
		return nil
	}
	return e.adjacent(from, src, forward)
}

// PrevNodes returns unit preceding node from, empty unit at document start.
func (e *Engine) PrevNodes(from dom.Node, src common.Source) dom.Unit {
	if from == nil {
		return nil
	}
	return e.adjacent(from, src, backward)
}

// First returns the first unit under root.
func (e *Engine) First(root dom.Node, src common.Source) dom.Unit {
	if root == nil {
		return nil
	}
	seed := e.child(root, src, forward)
	if seed == nil {
		return nil
	}
	return e.collect(seed, src, forward)
}

// Last returns the last unit under root.
func (e *Engine) Last(root dom.Node, src common.Source) dom.Unit {
	if root == nil {
		return nil
	}
	seed := e.child(root, src, backward)
	if seed == nil {
		return nil
	}
	return e.collect(seed, src, backward)
}
