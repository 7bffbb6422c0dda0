// Package document loads markup into one of the dom adapters and wires its
// stylesheets.
package document

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
	"go.uber.org/zap"
	"golang.org/x/net/html/charset"

	"axnav/common"
	"axnav/css"
	"axnav/dom"
	"axnav/dom/htmldoc"
	"axnav/dom/xhtmldoc"
)

// ErrArchive is returned when input is zip container rather than markup.
var ErrArchive = errors.New("input is an archive")

// Document is dom.Document produced by one of the adapters.
type Document interface {
	dom.Document
	Render(w io.Writer) error
	SetGeometry(g dom.Geometry)
}

// Loaded is parsed document with its origin.
type Loaded struct {
	Document
	Name   string
	Markup common.Markup
	Sheets int // number of stylesheets taking part in the cascade
}

// Options controls loading.
type Options struct {
	// Fragment is set on document URL, navigation may start from it.
	Fragment string
	// UserStylesheet is applied after document styles.
	UserStylesheet []byte
	// Open reads resources referenced by document (linked stylesheets),
	// name is relative to document location. Nil disables linked resources.
	Open func(name string) ([]byte, error)
	// EstimateGeometry installs Estimator as rectangle provider.
	EstimateGeometry bool
	// Columns is estimator line width in characters.
	Columns int
	// Media is medium @media rules and stylesheet links are evaluated
	// against, "screen" when empty.
	Media string
}

// Load reads document from r. name is file path or URL used for markup
// detection and resolving of relative references.
func Load(ctx context.Context, r io.Reader, name string, opts Options, log *zap.Logger) (*Loaded, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("loader")

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("unable to read document: %w", err)
	}
	if filetype.Is(data, "zip") || filetype.Is(data, "epub") {
		return nil, ErrArchive
	}

	if opts.Media == "" {
		opts.Media = "screen"
	}
	resolver := css.NewResolver(log, opts.Media)
	u := documentURL(name, opts.Fragment)

	res := &Loaded{Name: name, Markup: DetectMarkup(name, data)}
	switch res.Markup {
	case common.MarkupXhtml:
		doc, err := xhtmldoc.Parse(bytes.NewReader(data), log, xhtmldoc.WithURL(u), xhtmldoc.WithResolver(resolver))
		if err == nil {
			res.Document = doc
			break
		}
		log.Warn("Unable to parse as XHTML, falling back to HTML parser", zap.String("name", name), zap.Error(err))
		res.Markup = common.MarkupHtml
		fallthrough
	case common.MarkupHtml:
		rd, err := charset.NewReader(bytes.NewReader(data), "text/html")
		if err != nil {
			return nil, fmt.Errorf("unable to detect document encoding: %w", err)
		}
		doc, err := htmldoc.Parse(rd, log, htmldoc.WithURL(u), htmldoc.WithResolver(resolver))
		if err != nil {
			return nil, err
		}
		res.Document = doc
	}

	res.Sheets = addStylesheets(res.Document, resolver, name, opts, log)

	if opts.EstimateGeometry {
		res.SetGeometry(NewEstimator(res.Document, opts.Columns, log).Rects)
	}

	log.Debug("Document loaded",
		zap.String("name", name),
		zap.Stringer("markup", res.Markup),
		zap.Int("stylesheets", res.Sheets),
		zap.Int("rules", resolver.Rules()))
	return res, nil
}

// DetectMarkup decides which parser should handle data.
func DetectMarkup(name string, data []byte) common.Markup {
	switch strings.ToLower(path.Ext(name)) {
	case ".xhtml", ".xht", ".xml":
		return common.MarkupXhtml
	case ".html", ".htm":
		return common.MarkupHtml
	}
	head := data[:min(len(data), 1024)]
	if bytes.HasPrefix(bytes.TrimSpace(head), []byte("<?xml")) || bytes.Contains(head, []byte(`xmlns="http://www.w3.org/1999/xhtml"`)) {
		return common.MarkupXhtml
	}
	return common.MarkupHtml
}

func documentURL(name, fragment string) *url.URL {
	if u, err := url.Parse(name); err == nil && u.Scheme != "" && len(u.Scheme) > 1 {
		if fragment != "" {
			u.Fragment = fragment
		}
		return u
	}
	p := name
	if abs, err := filepath.Abs(name); err == nil {
		p = abs
	}
	return &url.URL{Scheme: "file", Path: filepath.ToSlash(p), Fragment: fragment}
}

// addStylesheets feeds document and user stylesheets to resolver in cascade
// order and returns number of sheets added.
func addStylesheets(doc dom.Document, resolver *css.Resolver, name string, opts Options, log *zap.Logger) int {
	parser := css.NewParser(log)
	count := 0
	add := func(data []byte, source string) {
		sheet := parser.Parse(data, source)
		for _, w := range sheet.Warnings {
			log.Debug("Stylesheet warning", zap.String("source", source), zap.String("warning", w))
		}
		resolver.Add(sheet)
		count++
	}

	for n := range dom.Descendants(doc.Top()) {
		switch {
		case dom.IsTag(n, "style"):
			if media, ok := n.Attr("media"); ok && !mediaApplies(media, opts.Media) {
				continue
			}
			add([]byte(dom.TextContent(n)), name+"#style")
		case dom.IsTag(n, "link"):
			rel, _ := n.Attr("rel")
			href, _ := n.Attr("href")
			if !strings.Contains(strings.ToLower(rel), "stylesheet") || href == "" || opts.Open == nil {
				continue
			}
			if media, ok := n.Attr("media"); ok && !mediaApplies(media, opts.Media) {
				continue
			}
			ref, err := url.Parse(href)
			if err != nil || ref.IsAbs() {
				log.Debug("Skipping linked stylesheet", zap.String("href", href))
				continue
			}
			target := path.Join(path.Dir(filepath.ToSlash(name)), ref.Path)
			data, err := opts.Open(target)
			if err != nil {
				log.Warn("Unable to read linked stylesheet", zap.String("href", href), zap.Error(err))
				continue
			}
			add(data, target)
		}
	}
	if len(opts.UserStylesheet) > 0 {
		add(opts.UserStylesheet, "user")
	}
	return count
}

// mediaApplies evaluates media attribute as comma separated query list.
func mediaApplies(media, medium string) bool {
	if strings.TrimSpace(media) == "" {
		return true
	}
	for q := range strings.SplitSeq(media, ",") {
		sheet := css.NewParser(nil).Parse([]byte("@media " + q + " { x { display: none } }"))
		for _, item := range sheet.Items {
			if item.MediaBlock != nil && item.MediaBlock.Query.Evaluate(medium) {
				return true
			}
		}
	}
	return false
}
