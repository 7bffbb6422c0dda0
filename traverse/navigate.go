package traverse

import (
	"go.uber.org/zap"

	"axnav/common"
	"axnav/dom"
)

// Next returns unit after u. Author flow reference of the unit's actionable
// element takes precedence over document order.
func (e *Engine) Next(u dom.Unit, src common.Source) (dom.Unit, error) {
	if u.Empty() {
		return e.First(e.root(), src), nil
	}
	if err := u.Validate(); err != nil {
		return nil, err
	}
	for _, n := range e.actionable(u) {
		for _, t := range e.c.FlowTargets(n) {
			if next := e.flowUnit(t, src); !next.Empty() {
				e.log.Debug("Following flow reference", zap.Stringer("from", u), zap.Stringer("to", next))
				return next, nil
			}
		}
	}
	return e.NextNodes(u.Last(), src), nil
}

// Prev returns unit before u. When the unit is target of a flow reference
// the referring element is returned.
func (e *Engine) Prev(u dom.Unit, src common.Source) (dom.Unit, error) {
	if u.Empty() {
		return e.Last(e.root(), src), nil
	}
	if err := u.Validate(); err != nil {
		return nil, err
	}
	for _, n := range e.actionable(u) {
		for _, r := range e.c.FlowReferrers(n) {
			if prev := e.flowUnit(r, src); !prev.Empty() {
				e.log.Debug("Following flow reference back", zap.Stringer("from", u), zap.Stringer("to", prev))
				return prev, nil
			}
		}
	}
	return e.PrevNodes(u.First(), src), nil
}

// actionable lists elements unit stands for: its own elements and then
// ancestors whose whole content it covers, innermost first.
func (e *Engine) actionable(u dom.Unit) []dom.Node {
	var res []dom.Node
	for _, n := range u {
		if dom.IsElement(n) {
			res = append(res, n)
		}
	}
	p, err := u.Parent()
	if err != nil {
		return res
	}
	root := e.root()
	first, last := u.First(), u.Last()
	for p != nil && dom.IsElement(p) {
		if e.edge(p, forward) != first || e.edge(p, backward) != last {
			break
		}
		res = append(res, p)
		if p == root {
			break
		}
		first, last = p, p
		p = p.Parent()
	}
	return res
}

// edge returns first or last non-ignorable child.
func (e *Engine) edge(n dom.Node, dir direction) dom.Node {
	children := n.Children()
	if dir == forward {
		for _, c := range children {
			if !e.c.IsIgnorable(c) {
				return c
			}
		}
		return nil
	}
	for i := len(children) - 1; i >= 0; i-- {
		if !e.c.IsIgnorable(children[i]) {
			return children[i]
		}
	}
	return nil
}

// flowUnit is inner range of flow target: target itself refined to its
// innermost contiguous content.
func (e *Engine) flowUnit(t dom.Node, src common.Source) dom.Unit {
	if !e.focusable(t, src) {
		return nil
	}
	x := e.descend(t, src, forward)
	u := dom.Unit{x}
	if x != t {
		u = e.run(x, src)
	}
	return e.refine(u, src)
}

// UnitAt returns unit containing node n, as if traversal stopped there.
// Nodes which are not part of any unit resolve to the nearest following
// unit, or preceding one at the document end.
func (e *Engine) UnitAt(n dom.Node, src common.Source) dom.Unit {
	root := e.root()
	if n == nil || n == root {
		return e.First(root, src)
	}

	// path from child of root down to n
	var path []dom.Node
	for cur := n; cur != root; cur = cur.Parent() {
		if cur == nil {
			// outside of root container
			return nil
		}
		path = append(path, cur)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	for i, c := range path {
		if !e.focusable(c, src) {
			if u := e.run(c, src); len(u) > 1 && e.anyFocusable(u, src) {
				return e.refine(u, src)
			}
			return e.nearest(c, src)
		}
		if e.child(c, src, forward) != nil && !e.c.AreAllChildrenInline(c, src) {
			if i+1 < len(path) {
				continue
			}
			return e.collect(c, src, forward)
		}
		return e.refine(e.run(c, src), src)
	}
	return nil
}

func (e *Engine) anyFocusable(u dom.Unit, src common.Source) bool {
	for _, n := range u {
		if e.focusable(n, src) {
			return true
		}
	}
	return false
}

func (e *Engine) nearest(n dom.Node, src common.Source) dom.Unit {
	if u := e.NextNodes(n, src); !u.Empty() {
		return u
	}
	return e.PrevNodes(n, src)
}
