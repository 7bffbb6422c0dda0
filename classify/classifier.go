// Package classify decides which nodes take part in navigation and which of
// them merge with their siblings.
package classify

import (
	"strings"

	"go.uber.org/zap"

	"axnav/common"
	"axnav/describe"
	"axnav/dom"
)

// Labeler supplies spoken label knowledge for rule about punctuation-only
// labels.
type Labeler interface {
	// Speakable reports whether node produces more than one meaningful
	// character when spoken.
	Speakable(n dom.Node) bool
	// ExplicitLabel returns author attached label, if any.
	ExplicitLabel(n dom.Node) (string, bool)
}

// Classifier implements focusability and grouping predicates over one
// document. It is not safe for concurrent use.
type Classifier struct {
	log    *zap.Logger
	doc    dom.Document
	labels Labeler
	cache  *Cache
	flows  flowIndex
}

// Option configures Classifier.
type Option func(*Classifier)

// WithCache memoises predicate results until document changes.
func WithCache() Option {
	return func(c *Classifier) { c.cache = newCache() }
}

// New creates classifier. labels may be nil, then label based rule is not
// applied.
func New(doc dom.Document, labels Labeler, log *zap.Logger, opts ...Option) *Classifier {
	if log == nil {
		log = zap.NewNop()
	}
	c := &Classifier{log: log.Named("classify"), doc: doc, labels: labels}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Document returns document classifier works on.
func (c *Classifier) Document() dom.Document {
	return c.doc
}

// boolAttr is dom.BoolAttr which logs malformed values.
func (c *Classifier) boolAttr(n dom.Node, name string) (value, ok bool) {
	if value, ok = dom.BoolAttr(n, name); ok {
		return value, true
	}
	if raw, present := n.Attr(name); present {
		c.log.Debug("Malformed attribute value ignored",
			zap.String("attr", name), zap.String("value", raw), zap.Stringer("node", stringer{n}))
	}
	return false, false
}

type stringer struct{ n dom.Node }

func (s stringer) String() string { return dom.Short(s.n) }

// focusOverride applies focusability override tiers for source: point tier
// beats nav tier which beats general attribute.
func (c *Classifier) focusOverride(n dom.Node, src common.Source) (value, ok bool) {
	var tiers []string
	switch src {
	case common.SourcePoint:
		tiers = []string{dom.AttrFocusablePoint, dom.AttrFocusableNav, dom.AttrFocusable}
	case common.SourceNav:
		tiers = []string{dom.AttrFocusableNav, dom.AttrFocusable}
	default:
		tiers = []string{dom.AttrFocusable}
	}
	for _, name := range tiers {
		if value, ok = c.boolAttr(n, name); ok {
			return value, true
		}
	}
	return false, false
}

func (c *Classifier) ariaHidden(n dom.Node) bool {
	v, ok := c.boolAttr(n, dom.AttrHidden)
	return ok && v
}

// hiddenInput is rule for <input type=hidden>, such inputs are never
// rendered whether disabled or not.
func hiddenInput(n dom.Node) bool {
	return dom.IsTag(n, "input") && describe.InputType(n) == "hidden"
}

// HasFlow reports outbound flow reference or inbound one from another node.
func (c *Classifier) HasFlow(n dom.Node) bool {
	if !dom.IsElement(n) {
		return false
	}
	if len(dom.IDRefs(n, dom.AttrFlowTo)) > 0 {
		return true
	}
	return len(c.FlowReferrers(n)) > 0
}

// IsFocusable reports whether node takes part in navigation for given
// source.
func (c *Classifier) IsFocusable(n dom.Node, src common.Source) bool {
	if n == nil {
		return false
	}
	if v, ok := c.cache.get(c.doc, n, src, kindFocusable); ok {
		return v
	}
	v := c.isFocusable(n, src)
	c.cache.put(n, src, kindFocusable, v)
	return v
}

func (c *Classifier) isFocusable(n dom.Node, src common.Source) bool {
	switch n.Type() {
	case common.NodeTypeText:
		return !describe.IsPunctuationOnly(n.Text())
	case common.NodeTypeElement:
	default:
		return false
	}
	if skippedTags[n.Tag()] {
		return false
	}
	if c.HasFlow(n) {
		return true
	}
	if c.groupedAncestor(n) {
		return false
	}
	if v, ok := c.focusOverride(n, src); ok {
		return v
	}
	if c.ariaHidden(n) {
		return false
	}
	if c.labels != nil && !c.labels.Speakable(n) {
		return false
	}
	if n.Style().Hidden() || hiddenInput(n) {
		return false
	}
	return c.inherited(n, src)
}

// groupedAncestor reports whether any ancestor is opaque leaf.
func (c *Classifier) groupedAncestor(n dom.Node) bool {
	for a := range dom.Ancestors(n) {
		if c.IsGrouped(a) {
			return true
		}
	}
	return false
}

// inherited walks ancestors up to the document root container applying
// node level rules to each of them.
func (c *Classifier) inherited(n dom.Node, src common.Source) bool {
	root := c.doc.Root()
	for a := n.Parent(); a != nil; a = a.Parent() {
		if a.Type() != common.NodeTypeElement {
			break
		}
		if skippedTags[a.Tag()] {
			return false
		}
		if c.HasFlow(a) {
			return true
		}
		if v, ok := c.focusOverride(a, src); ok {
			return v
		}
		if c.ariaHidden(a) {
			return false
		}
		if c.labels != nil {
			if label, ok := c.labels.ExplicitLabel(a); ok && describe.IsPunctuationOnly(label) {
				return false
			}
		}
		if a.Style().Hidden() || hiddenInput(a) {
			return false
		}
		if a == root {
			break
		}
	}
	return true
}

// IsGrouped reports opaque composite controls.
func (c *Classifier) IsGrouped(n dom.Node) bool {
	if !dom.IsElement(n) {
		return false
	}
	if v, ok := n.Attr(dom.AttrChunk); ok && strings.EqualFold(strings.TrimSpace(v), dom.ChunkGroup) {
		return true
	}
	return groupedRoles[describe.ResolveRole(n)]
}

// IsIgnorable reports nodes sibling walks step over without looking.
func (c *Classifier) IsIgnorable(n dom.Node) bool {
	switch n.Type() {
	case common.NodeTypeElement:
		return false
	case common.NodeTypeText:
		return dom.IsWhitespace(n)
	}
	return true
}

// chunkOverride applies chunking override attributes, source specific ones
// first.
func (c *Classifier) chunkOverride(n dom.Node, src common.Source) (inline, ok bool) {
	var order []string
	switch src {
	case common.SourcePoint:
		order = []string{dom.AttrBlockPoint, dom.AttrInlinePoint}
	case common.SourceNav:
		order = []string{dom.AttrBlockNav, dom.AttrInlineNav}
	}
	order = append(order, dom.AttrBlock, dom.AttrInline)
	for _, name := range order {
		v, ok := c.boolAttr(n, name)
		if !ok {
			continue
		}
		if name == dom.AttrBlock || name == dom.AttrBlockNav || name == dom.AttrBlockPoint {
			return !v, true
		}
		return v, true
	}
	return false, false
}

// displayInline maps author set display value.
func displayInline(n dom.Node) (inline, ok bool) {
	s := n.Style()
	if !s.Explicit || s.Display == "" {
		return false, false
	}
	switch s.Display {
	case "inline", "inline-block", "inline-flex", "inline-grid", "inline-table", "contents", "none", "ruby":
		return true, true
	}
	return false, true
}

// IsInlineElement reports whether node merges with inline siblings.
func (c *Classifier) IsInlineElement(n dom.Node, src common.Source) bool {
	if n == nil {
		return false
	}
	if v, ok := c.cache.get(c.doc, n, src, kindInline); ok {
		return v
	}
	v := c.isInlineElement(n, src)
	c.cache.put(n, src, kindInline, v)
	return v
}

func (c *Classifier) isInlineElement(n dom.Node, src common.Source) bool {
	if !dom.IsElement(n) {
		return true
	}
	eff := c.innermost(n)
	if c.IsGrouped(eff) {
		return false
	}
	if v, ok := c.chunkOverride(eff, src); ok {
		return v
	}
	if v, ok := displayInline(eff); ok {
		return v
	}
	tag := eff.Tag()
	if blockTags[tag] {
		return false
	}
	if !inlineTags[tag] && tag != dom.MarkerTag {
		c.log.Debug("Unknown element treated as inline", zap.String("tag", tag))
	}
	return true
}

// innermost follows chain of wrappers around a single element down to the
// element actually classified. Grouped and style-hidden elements end the
// chain, selection marker is looked through.
func (c *Classifier) innermost(n dom.Node) dom.Node {
	eff := n
	for !c.IsGrouped(eff) && !eff.Style().Hidden() {
		next := c.soleElementChild(eff)
		for next != nil && next.Tag() == dom.MarkerTag {
			next = c.soleElementChild(next)
		}
		if next == nil {
			return eff
		}
		eff = next
	}
	return eff
}

// soleElementChild returns the only non-ignorable child when it is an
// element.
func (c *Classifier) soleElementChild(n dom.Node) dom.Node {
	var sole dom.Node
	for _, ch := range n.Children() {
		if c.IsIgnorable(ch) {
			continue
		}
		if sole != nil {
			return nil
		}
		sole = ch
	}
	if !dom.IsElement(sole) {
		return nil
	}
	return sole
}

// AreAllChildrenInline reports whether the whole subtree below n is inline
// content. Style-hidden nodes are vacuously inline.
func (c *Classifier) AreAllChildrenInline(n dom.Node, src common.Source) bool {
	if n == nil {
		return true
	}
	if v, ok := c.cache.get(c.doc, n, src, kindAllInline); ok {
		return v
	}
	v := c.areAllChildrenInline(n, src)
	c.cache.put(n, src, kindAllInline, v)
	return v
}

func (c *Classifier) areAllChildrenInline(n dom.Node, src common.Source) bool {
	stack := []dom.Node{n}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if dom.IsElement(cur) && cur.Style().Hidden() {
			continue
		}
		for _, ch := range cur.Children() {
			if c.IsIgnorable(ch) {
				continue
			}
			if !c.IsInlineElement(ch, src) {
				return false
			}
			if dom.IsElement(ch) {
				stack = append(stack, ch)
			}
		}
	}
	return true
}

// IsMergeable reports whether node can be part of an inline run: it is
// inline and so is everything below it.
func (c *Classifier) IsMergeable(n dom.Node, src common.Source) bool {
	if !c.IsInlineElement(n, src) {
		return false
	}
	return dom.IsText(n) || c.AreAllChildrenInline(n, src)
}
