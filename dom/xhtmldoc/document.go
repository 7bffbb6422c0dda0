// Package xhtmldoc implements dom.Document over github.com/beevik/etree trees
// for XHTML and EPUB content documents.
package xhtmldoc

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/beevik/etree"
	"go.uber.org/zap"
	"golang.org/x/net/html/charset"

	"axnav/common"
	"axnav/css"
	"axnav/dom"
)

// Document wraps parsed XML tree.
type Document struct {
	log      *zap.Logger
	doc      *etree.Document
	url      *url.URL
	resolver *css.Resolver
	geometry dom.Geometry

	nodes map[etree.Token]*node
	gen   uint64

	styles    map[*etree.Element]dom.Style
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

// Parse reads XHTML from r. Declared encodings are honored and HTML named
// character references are accepted.
func Parse(r io.Reader, log *zap.Logger, opts ...Option) (*Document, error) {
	doc := etree.NewDocument()
	doc.ReadSettings = etree.ReadSettings{
		CharsetReader: charset.NewReaderLabel,
		Entity:        Entities(),
		ValidateInput: false,
		Permissive:    true,
	}
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("unable to parse xhtml: %w", err)
	}
	if doc.Root() == nil {
		return nil, fmt.Errorf("unable to parse xhtml: no root element")
	}
	return New(doc, log, opts...), nil
}

// New wraps already parsed document.
func New(doc *etree.Document, log *zap.Logger, opts ...Option) *Document {
	if log == nil {
		log = zap.NewNop()
	}
	d := &Document{
		log:   log.Named("xhtmldoc"),
		doc:   doc,
		nodes: make(map[etree.Token]*node),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.resolver == nil {
		d.resolver = css.NewResolver(log)
	}
	return d
}

// SetGeometry installs rectangle provider.
func (d *Document) SetGeometry(g dom.Geometry) {
	d.geometry = g
}

// Render writes current tree (marker included) as XML.
func (d *Document) Render(w io.Writer) error {
	_, err := d.doc.WriteTo(w)
	return err
}

func (d *Document) wrap(t etree.Token) dom.Node {
	if t == nil {
		return nil
	}
	if e, ok := t.(*etree.Element); ok && e == nil {
		return nil
	}
	if w, ok := d.nodes[t]; ok {
		return w
	}
	w := &node{doc: d, t: t}
	d.nodes[t] = w
	return w
}

func (d *Document) unwrap(n dom.Node) (etree.Token, error) {
	w, ok := n.(*node)
	if !ok || w.doc != d {
		return nil, dom.ErrForeignNode
	}
	return w.t, nil
}

func (d *Document) unwrapElement(n dom.Node) (*etree.Element, error) {
	t, err := d.unwrap(n)
	if err != nil {
		return nil, err
	}
	e, ok := t.(*etree.Element)
	if !ok {
		return nil, dom.ErrNotChild
	}
	return e, nil
}

// Top implements dom.Document.
func (d *Document) Top() dom.Node {
	return d.wrap(&d.doc.Element)
}

// Root implements dom.Document.
func (d *Document) Root() dom.Node {
	root := d.doc.Root()
	if root == nil {
		return d.Top()
	}
	for _, c := range root.ChildElements() {
		if strings.EqualFold(c.Tag, "body") {
			return d.wrap(c)
		}
	}
	return d.wrap(root)
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
	return d.wrap(etree.NewElement(dom.MarkerTag))
}

// InsertBefore implements dom.Document.
func (d *Document) InsertBefore(parent, child, ref dom.Node) error {
	p, err := d.unwrapElement(parent)
	if err != nil {
		return err
	}
	c, err := d.unwrap(child)
	if err != nil {
		return err
	}
	var r etree.Token
	if ref != nil {
		if r, err = d.unwrap(ref); err != nil {
			return err
		}
		if r.Parent() != p {
			return dom.ErrNotChild
		}
		if r == c {
			return nil
		}
	}
	if cp := c.Parent(); cp != nil {
		cp.RemoveChildAt(c.Index())
	}
	if r == nil {
		p.AddChild(c)
	} else {
		p.InsertChildAt(r.Index(), c)
	}
	d.gen++
	return nil
}

// RemoveChild implements dom.Document.
func (d *Document) RemoveChild(parent, child dom.Node) error {
	p, err := d.unwrapElement(parent)
	if err != nil {
		return err
	}
	c, err := d.unwrap(child)
	if err != nil {
		return err
	}
	if c.Parent() != p {
		return dom.ErrNotChild
	}
	p.RemoveChildAt(c.Index())
	d.gen++
	return nil
}

// Generation implements dom.Document.
func (d *Document) Generation() uint64 {
	return d.gen
}

func (d *Document) style(e *etree.Element) dom.Style {
	if d.styles == nil || d.stylesGen != d.gen {
		d.styles, d.stylesGen = make(map[*etree.Element]dom.Style), d.gen
	}
	if s, ok := d.styles[e]; ok {
		return s
	}
	var chain []css.Element
	for p := e; p != nil && p != &d.doc.Element; p = p.Parent() {
		if p.Tag == dom.MarkerTag {
			continue
		}
		chain = append(chain, element{p})
	}
	c := d.resolver.Compute(chain)
	s := dom.Style{Display: c.Display, Visibility: c.Visibility, Explicit: c.Explicit}
	d.styles[e] = s
	return s
}

// element presents *etree.Element to css resolver.
type element struct {
	e *etree.Element
}

func (e element) Tag() string {
	return strings.ToLower(e.e.Tag)
}

func (e element) Attr(name string) (string, bool) {
	return attr(e.e, name)
}

// attr matches unprefixed attributes by local name and prefixed ones by full
// name (epub:type, xml:lang).
func attr(e *etree.Element, name string) (string, bool) {
	for i := range e.Attr {
		a := &e.Attr[i]
		if (a.Space == "" && strings.EqualFold(a.Key, name)) || strings.EqualFold(a.FullKey(), name) {
			return a.Value, true
		}
	}
	if name == "lang" {
		return attr(e, "xml:lang")
	}
	return "", false
}

type node struct {
	doc *Document
	t   etree.Token
}

func (w *node) element() *etree.Element {
	e, _ := w.t.(*etree.Element)
	return e
}

func (w *node) Type() common.NodeType {
	switch t := w.t.(type) {
	case *etree.Element:
		if t == &w.doc.doc.Element {
			return common.NodeTypeDocument
		}
		return common.NodeTypeElement
	case *etree.CharData:
		return common.NodeTypeText
	case *etree.Comment:
		return common.NodeTypeComment
	case *etree.Directive:
		if strings.HasPrefix(strings.ToUpper(strings.TrimSpace(t.Data)), "DOCTYPE") {
			return common.NodeTypeDoctype
		}
	}
	return common.NodeTypeOther
}

func (w *node) Tag() string {
	if w.Type() != common.NodeTypeElement {
		return ""
	}
	return strings.ToLower(w.element().Tag)
}

func (w *node) Attr(name string) (string, bool) {
	if w.Type() != common.NodeTypeElement {
		return "", false
	}
	return attr(w.element(), name)
}

func (w *node) Attrs() []dom.Attr {
	e := w.element()
	if e == nil || len(e.Attr) == 0 {
		return nil
	}
	res := make([]dom.Attr, 0, len(e.Attr))
	for i := range e.Attr {
		res = append(res, dom.Attr{Name: e.Attr[i].FullKey(), Value: e.Attr[i].Value})
	}
	return res
}

func (w *node) Children() []dom.Node {
	e := w.element()
	if e == nil || len(e.Child) == 0 {
		return nil
	}
	res := make([]dom.Node, 0, len(e.Child))
	for _, c := range e.Child {
		res = append(res, w.doc.wrap(c))
	}
	return res
}

func (w *node) Parent() dom.Node {
	p := w.t.Parent()
	if p == nil {
		return nil
	}
	return w.doc.wrap(p)
}

func (w *node) Text() string {
	switch t := w.t.(type) {
	case *etree.CharData:
		return t.Data
	case *etree.Comment:
		return t.Data
	}
	return ""
}

func (w *node) Style() dom.Style {
	if w.Type() != common.NodeTypeElement || w.element().Tag == dom.MarkerTag {
		return dom.Style{}
	}
	return w.doc.style(w.element())
}

func (w *node) Rects() []dom.Rect {
	if e := w.element(); e != nil && e.Tag == dom.MarkerTag {
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
