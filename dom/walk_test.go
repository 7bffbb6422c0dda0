package dom_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap/zaptest"

	"axnav/common"
	"axnav/dom"
	"axnav/dom/htmldoc"
)

func parse(t *testing.T, src string) *htmldoc.Document {
	t.Helper()
	doc, err := htmldoc.Parse(strings.NewReader(src), zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return doc
}

func shorts(seq func(func(dom.Node) bool)) []string {
	var res []string
	for n := range seq {
		res = append(res, dom.Short(n))
	}
	return res
}

const sample = `<div id="a"><p id="b">one <em>two</em></p><p id="c">three</p></div>`

func TestDescendants(t *testing.T) {
	doc := parse(t, sample)

	got := shorts(dom.Descendants(doc.Root()))
	want := []string{`<div#a>`, `<p#b>`, `"one"`, `<em>`, `"two"`, `<p#c>`, `"three"`}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Descendants() mismatch (-want +got):\n%s", diff)
	}

	// early stop
	count := 0
	for range dom.Descendants(doc.Root()) {
		count++
		if count == 2 {
			break
		}
	}
	if count != 2 {
		t.Errorf("expected iteration to stop at 2, got %d", count)
	}

	if got := shorts(dom.Descendants(nil)); got != nil {
		t.Errorf("Descendants(nil) = %v, want nothing", got)
	}
}

func TestAncestors(t *testing.T) {
	doc := parse(t, sample)
	em := dom.FindByAttr(doc.Root(), "id", "b").Children()[1]

	got := shorts(dom.Ancestors(em))
	want := []string{`<p#b>`, `<div#a>`, `<body>`, `<html>`, common.NodeTypeDocument.String()}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Ancestors() mismatch (-want +got):\n%s", diff)
	}

	div := doc.ByID("a")
	if !dom.IsAncestor(div, em) {
		t.Error("div must be ancestor of em")
	}
	if dom.IsAncestor(em, div) || dom.IsAncestor(em, em) {
		t.Error("em must not be ancestor of div or itself")
	}
}

func TestSiblings(t *testing.T) {
	doc := parse(t, sample)
	div, b, c := doc.ByID("a"), doc.ByID("b"), doc.ByID("c")

	if got := dom.IndexOf(div, c); got != 1 {
		t.Errorf("IndexOf() = %d, want 1", got)
	}
	if got := dom.IndexOf(div, doc.Root()); got != -1 {
		t.Errorf("IndexOf() of non child = %d, want -1", got)
	}
	if got := dom.IndexOf(nil, c); got != -1 {
		t.Errorf("IndexOf(nil) = %d, want -1", got)
	}
	if got := dom.NextSibling(b); got != c {
		t.Errorf("NextSibling() = %s", dom.Short(got))
	}
	if got := dom.NextSibling(c); got != nil {
		t.Errorf("NextSibling() of last = %s", dom.Short(got))
	}
	if got := dom.PrevSibling(c); got != b {
		t.Errorf("PrevSibling() = %s", dom.Short(got))
	}
	if got := dom.PrevSibling(b); got != nil {
		t.Errorf("PrevSibling() of first = %s", dom.Short(got))
	}
}

func TestPredicates(t *testing.T) {
	doc := parse(t, `<p id="x"> </p><p id="y">text<!-- note --></p>`)
	x, y := doc.ByID("x"), doc.ByID("y")
	space, text, comment := x.Children()[0], y.Children()[0], y.Children()[1]

	tests := []struct {
		name string
		got  bool
		want bool
	}{
		{"element", dom.IsElement(x), true},
		{"text is not element", dom.IsElement(text), false},
		{"nil is not element", dom.IsElement(nil), false},
		{"text", dom.IsText(text), true},
		{"whitespace", dom.IsWhitespace(space), true},
		{"text is not whitespace", dom.IsWhitespace(text), false},
		{"comment is not whitespace", dom.IsWhitespace(comment), false},
		{"tag", dom.IsTag(x, "div", "p"), true},
		{"other tag", dom.IsTag(x, "div"), false},
		{"text has no tag", dom.IsTag(text, ""), false},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: got %v, want %v", tt.name, tt.got, tt.want)
		}
	}
	if got := dom.ID(text); got != "" {
		t.Errorf("ID() of text = %q", got)
	}
}

func TestTextContent(t *testing.T) {
	doc := parse(t, sample)

	if got := dom.TextContent(doc.ByID("a")); got != "one twothree" {
		t.Errorf("TextContent() = %q", got)
	}
	if got := dom.TextContent(nil); got != "" {
		t.Errorf("TextContent(nil) = %q", got)
	}
}

func TestFindByAttr(t *testing.T) {
	doc := parse(t, `<p><a name="top">x</a></p>`)

	if got := dom.FindByAttr(doc.Top(), "name", "top"); !dom.IsTag(got, "a") {
		t.Errorf("FindByAttr() = %s", dom.Short(got))
	}
	if got := dom.FindByAttr(doc.Top(), "name", "bottom"); got != nil {
		t.Errorf("FindByAttr() = %s, want nil", dom.Short(got))
	}
	if got := dom.FindByAttr(doc.Root(), "id", ""); got != nil {
		t.Errorf("FindByAttr() = %s, want nil", dom.Short(got))
	}
}

func TestShort(t *testing.T) {
	doc := parse(t, `<p id="x">  many   words  here but  this text is really too long to print</p><p>y</p>`)

	if got := dom.Short(doc.ByID("x")); got != "<p#x>" {
		t.Errorf("Short() = %q", got)
	}
	if got := dom.Short(dom.NextSibling(doc.ByID("x"))); got != "<p>" {
		t.Errorf("Short() = %q", got)
	}
	if got := dom.Short(doc.ByID("x").Children()[0]); got != `"many words here but this text is..."` {
		t.Errorf("Short() = %q", got)
	}
	if got := dom.Short(nil); got != "<nil>" {
		t.Errorf("Short(nil) = %q", got)
	}
}
