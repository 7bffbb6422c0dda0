// Package htmldoc implements dom.Document over golang.org/x/net/html trees.
package htmldoc

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"axnav/common"
	"axnav/css"
	"axnav/dom"
)

// Document wraps parsed HTML tree. Wrappers are cached so the same
// *html.Node always maps to the same dom.Node value.
type Document struct {
	log      *zap.Logger
	top      *html.Node
	url      *url.URL
	resolver *css.Resolver
	geometry dom.Geometry

	nodes map[*html.Node]*node
	gen   uint64

	styles    map[*html.Node]dom.Style
	stylesGen uint64
}

// Option configures Document.
type Option func(*Document)

// WithURL sets URL document was loaded from.
func WithURL(u *url.URL) Option {
	return func(d *Document) { d.url = u }
}

// WithResolver sets style resolver used to compute node presentation.
func WithResolver(r *css.Resolver) Option {
	return func(d *Document) { d.resolver = r }
}

// Parse reads HTML from r. Input is expected to be UTF-8.
func Parse(r io.Reader, log *zap.Logger, opts ...Option) (*Document, error) {
	top, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("unable to parse html: %w", err)
	}
	return New(top, log, opts...), nil
}

// New wraps already parsed tree. top should be html.DocumentNode.
func New(top *html.Node, log *zap.Logger, opts ...Option) *Document {
	if log == nil {
		log = zap.NewNop()
	}
	d := &Document{
		log:   log.Named("htmldoc"),
		top:   top,
		nodes: make(map[*html.Node]*node),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.resolver == nil {
		d.resolver = css.NewResolver(log)
	}
	return d
}

// SetGeometry installs rectangle provider. Without one nodes report no
// rectangles.
func (d *Document) SetGeometry(g dom.Geometry) {
	d.geometry = g
}

// Render writes current tree (marker included) as HTML.
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.top)
}

func (d *Document) wrap(n *html.Node) dom.Node {
	if n == nil {
		return nil
	}
	if w, ok := d.nodes[n]; ok {
		return w
	}
	w := &node{doc: d, n: n}
	d.nodes[n] = w
	return w
}

func (d *Document) unwrap(n dom.Node) (*html.Node, error) {
	w, ok := n.(*node)
	if !ok || w.doc != d {
		return nil, dom.ErrForeignNode
	}
	return w.n, nil
}

// Top implements dom.Document.
func (d *Document) Top() dom.Node {
	return d.wrap(d.top)
}

// Root implements dom.Document.
func (d *Document) Root() dom.Node {
	var docElem *html.Node
	for c := d.top.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			docElem = c
			break
		}
	}
	if docElem == nil {
		return d.wrap(d.top)
	}
	for c := docElem.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (c.DataAtom == atom.Body || c.DataAtom == atom.Frameset) {
			return d.wrap(c)
		}
	}
	return d.wrap(docElem)
}

// ByID implements dom.Document.
func (d *Document) ByID(id string) dom.Node {
	if id == "" {
		return nil
	}
	return dom.FindByAttr(d.Top(), dom.AttrID, id)
}

// URL implements dom.Document.
func (d *Document) URL() *url.URL {
	return d.url
}

// CreateMarker implements dom.Document.
func (d *Document) CreateMarker() dom.Node {
	return d.wrap(&html.Node{Type: html.ElementNode, Data: dom.MarkerTag})
}

// InsertBefore implements dom.Document.
func (d *Document) InsertBefore(parent, child, ref dom.Node) error {
	p, err := d.unwrap(parent)
	if err != nil {
		return err
	}
	c, err := d.unwrap(child)
	if err != nil {
		return err
	}
	var r *html.Node
	if ref != nil {
		if r, err = d.unwrap(ref); err != nil {
			return err
		}
		if r.Parent != p {
			return dom.ErrNotChild
		}
		if r == c {
			return nil
		}
	}
	if c.Parent != nil {
		c.Parent.RemoveChild(c)
	}
	p.InsertBefore(c, r)
	d.gen++
	return nil
}

// RemoveChild implements dom.Document.
func (d *Document) RemoveChild(parent, child dom.Node) error {
	p, err := d.unwrap(parent)
	if err != nil {
		return err
	}
	c, err := d.unwrap(child)
	if err != nil {
		return err
	}
	if c.Parent != p {
		return dom.ErrNotChild
	}
	p.RemoveChild(c)
	d.gen++
	return nil
}

// Generation implements dom.Document.
func (d *Document) Generation() uint64 {
	return d.gen
}

func (d *Document) style(n *html.Node) dom.Style {
	if d.styles == nil || d.stylesGen != d.gen {
		d.styles, d.stylesGen = make(map[*html.Node]dom.Style), d.gen
	}
	if s, ok := d.styles[n]; ok {
		return s
	}
	var chain []css.Element
	for p := n; p != nil && p.Type == html.ElementNode; p = p.Parent {
		if p.Data == dom.MarkerTag {
			continue
		}
		chain = append(chain, element{p})
	}
	c := d.resolver.Compute(chain)
	s := dom.Style{Display: c.Display, Visibility: c.Visibility, Explicit: c.Explicit}
	d.styles[n] = s
	return s
}

// element presents *html.Node to css resolver.
type element struct {
	n *html.Node
}

func (e element) Tag() string {
	return strings.ToLower(e.n.Data)
}

func (e element) Attr(name string) (string, bool) {
	return attr(e.n, name)
}

func attr(n *html.Node, name string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && strings.EqualFold(a.Key, name) {
			return a.Val, true
		}
	}
	return "", false
}

type node struct {
	doc *Document
	n   *html.Node
}

func (w *node) Type() common.NodeType {
	switch w.n.Type {
	case html.ElementNode:
		return common.NodeTypeElement
	case html.TextNode:
		return common.NodeTypeText
	case html.CommentNode:
		return common.NodeTypeComment
	case html.DoctypeNode:
		return common.NodeTypeDoctype
	case html.DocumentNode:
		return common.NodeTypeDocument
	}
	return common.NodeTypeOther
}

func (w *node) Tag() string {
	if w.n.Type != html.ElementNode {
		return ""
	}
	return strings.ToLower(w.n.Data)
}

func (w *node) Attr(name string) (string, bool) {
	if w.n.Type != html.ElementNode {
		return "", false
	}
	return attr(w.n, name)
}

func (w *node) Attrs() []dom.Attr {
	if w.n.Type != html.ElementNode || len(w.n.Attr) == 0 {
		return nil
	}
	res := make([]dom.Attr, 0, len(w.n.Attr))
	for _, a := range w.n.Attr {
		name := a.Key
		if a.Namespace != "" {
			name = a.Namespace + ":" + a.Key
		}
		res = append(res, dom.Attr{Name: name, Value: a.Val})
	}
	return res
}

func (w *node) Children() []dom.Node {
	var res []dom.Node
	for c := w.n.FirstChild; c != nil; c = c.NextSibling {
		res = append(res, w.doc.wrap(c))
	}
	return res
}

func (w *node) Parent() dom.Node {
	return w.doc.wrap(w.n.Parent)
}

func (w *node) Text() string {
	switch w.n.Type {
	case html.TextNode, html.CommentNode:
		return w.n.Data
	}
	return ""
}

func (w *node) Style() dom.Style {
	if w.n.Type != html.ElementNode || w.n.Data == dom.MarkerTag {
		return dom.Style{}
	}
	return w.doc.style(w.n)
}

func (w *node) Rects() []dom.Rect {
	if w.n.Type == html.ElementNode && w.n.Data == dom.MarkerTag {
		var res []dom.Rect
		for _, c := range w.Children() {
			res = append(res, c.Rects()...)
		}
		return res
	}
	if w.doc.geometry == nil {
		return nil
	}
	return w.doc.geometry(w)
}
