package document

import (
	"github.com/mattn/go-runewidth"
	"go.uber.org/zap"

	"axnav/common"
	"axnav/dom"
)

const (
	charWidth  = 8.0
	lineHeight = 16.0

	defaultColumns = 80
	controlColumns = 12
)

// block level elements start on a new line.
var blockTags = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true, "body": true,
	"dd": true, "details": true, "dialog": true, "div": true, "dl": true, "dt": true,
	"fieldset": true, "figcaption": true, "figure": true, "footer": true, "form": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"header": true, "hr": true, "li": true, "main": true, "nav": true, "ol": true,
	"p": true, "pre": true, "section": true, "summary": true, "table": true,
	"tbody": true, "td": true, "tfoot": true, "th": true, "thead": true, "tr": true,
	"ul": true, "br": true, "caption": true, "legend": true, "html": true,
}

// replaced elements occupy fixed box even without text.
var replacedTags = map[string]bool{
	"img": true, "input": true, "select": true, "button": true, "textarea": true,
	"video": true, "audio": true, "canvas": true, "iframe": true, "meter": true, "progress": true,
}

// Estimator lays document out into fixed width character grid. It stands in
// for host geometry when there is no rendering engine: rectangles follow
// reading order and line breaks of block content.
type Estimator struct {
	log     *zap.Logger
	doc     dom.Document
	columns int

	gen   uint64
	valid bool
	rects map[dom.Node][]dom.Rect

	col, line int
}

// NewEstimator creates estimator for doc with given line width.
func NewEstimator(doc dom.Document, columns int, log *zap.Logger) *Estimator {
	if log == nil {
		log = zap.NewNop()
	}
	if columns <= 0 {
		columns = defaultColumns
	}
	return &Estimator{log: log.Named("geometry"), doc: doc, columns: columns}
}

// Rects is dom.Geometry.
func (e *Estimator) Rects(n dom.Node) []dom.Rect {
	if !e.valid || e.gen != e.doc.Generation() {
		e.layout()
	}
	return e.rects[n]
}

func (e *Estimator) layout() {
	e.rects = make(map[dom.Node][]dom.Rect)
	e.col, e.line = 0, 0
	e.gen, e.valid = e.doc.Generation(), true

	type frame struct {
		n     dom.Node
		start int // len of collected rects when entered
		exit  bool
	}
	var (
		all   []dom.Rect
		stack = []frame{{n: e.doc.Root()}}
	)
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if f.exit {
			if block(f.n) {
				e.newline()
			}
			if len(all) > f.start {
				e.rects[f.n] = append([]dom.Rect(nil), all[f.start:]...)
			}
			continue
		}

		switch f.n.Type() {
		case common.NodeTypeText:
			r := e.text(f.n.Text())
			e.rects[f.n] = r
			all = append(all, r...)
			continue
		case common.NodeTypeElement:
		default:
			continue
		}
		if f.n.Style().Hidden() {
			continue
		}
		if block(f.n) {
			e.newline()
		}
		if replacedTags[f.n.Tag()] {
			r := e.box(controlColumns)
			e.rects[f.n] = r
			all = append(all, r...)
			continue
		}
		stack = append(stack, frame{n: f.n, start: len(all), exit: true})
		children := f.n.Children()
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, frame{n: children[i]})
		}
	}
	e.log.Debug("Layout estimated", zap.Int("lines", e.line), zap.Int("nodes", len(e.rects)))
}

func block(n dom.Node) bool {
	switch d := n.Style().Display; d {
	case "":
	case "inline", "inline-block", "contents":
		return false
	default:
		return true
	}
	return blockTags[n.Tag()]
}

func (e *Estimator) newline() {
	if e.col > 0 {
		e.col = 0
		e.line++
	}
}

// text places words wrapping at line width, one rectangle per line touched.
// Words are sized by their display width in cells.
func (e *Estimator) text(s string) []dom.Rect {
	var (
		res   []dom.Rect
		start = -1
	)
	flush := func() {
		if start >= 0 && e.col > start {
			res = append(res, e.rect(start, e.col))
		}
		start = -1
	}
	word := 0
	emit := func() {
		if word == 0 {
			return
		}
		if e.col > 0 && e.col+word > e.columns {
			flush()
			e.col = 0
			e.line++
		}
		if start < 0 {
			start = e.col
		}
		e.col += word
		word = 0
	}
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '\r', '\f':
			emit()
			if e.col > 0 && e.col < e.columns {
				if start < 0 {
					start = e.col
				}
				e.col++
			}
		default:
			// wide runes take two cells, combining marks none
			word += runewidth.RuneWidth(r)
		}
	}
	emit()
	flush()
	return res
}

func (e *Estimator) box(width int) []dom.Rect {
	if e.col > 0 && e.col+width > e.columns {
		e.newline()
	}
	r := e.rect(e.col, e.col+width)
	e.col += width
	return []dom.Rect{r}
}

func (e *Estimator) rect(from, to int) dom.Rect {
	return dom.Rect{
		X:      float64(from) * charWidth,
		Y:      float64(e.line) * lineHeight,
		Width:  float64(to-from) * charWidth,
		Height: lineHeight,
	}
}
