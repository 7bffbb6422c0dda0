package css_test

import (
	"testing"

	"go.uber.org/zap/zaptest"

	"axnav/css"
)

type element struct {
	tag   string
	attrs map[string]string
}

func (e element) Tag() string { return e.tag }

func (e element) Attr(name string) (string, bool) {
	v, ok := e.attrs[name]
	return v, ok
}

func el(tag string, kv ...string) element {
	e := element{tag: tag, attrs: map[string]string{}}
	for i := 0; i+1 < len(kv); i += 2 {
		e.attrs[kv[i]] = kv[i+1]
	}
	return e
}

func chain(els ...element) []css.Element {
	res := make([]css.Element, 0, len(els))
	for _, e := range els {
		res = append(res, e)
	}
	return res
}

func newResolver(t *testing.T, sheet string) *css.Resolver {
	t.Helper()
	log := zaptest.NewLogger(t)
	r := css.NewResolver(log)
	r.Add(css.NewParser(log).Parse([]byte(sheet)))
	return r
}

func TestResolver_Defaults(t *testing.T) {
	r := newResolver(t, ``)

	if got := r.Compute(chain(el("p"), el("body"))); got != (css.Computed{}) {
		t.Errorf("unexpected computed %+v", got)
	}
	if got := r.Compute(chain(el("script"), el("body"))); got.Display != "none" || got.Explicit {
		t.Errorf("script must not be displayed: %+v", got)
	}
	if got := r.Compute(chain(el("div", "hidden", ""), el("body"))); got.Display != "none" {
		t.Errorf("hidden attribute must hide element: %+v", got)
	}
	if got := r.Compute(nil); got != (css.Computed{}) {
		t.Errorf("unexpected computed for empty chain %+v", got)
	}
}

func TestResolver_Cascade(t *testing.T) {
	r := newResolver(t, `
p { display: none }
p.shown { display: block }
#main p { display: inline }
.x { display: none }
.x { display: flex }
`)

	tests := []struct {
		name  string
		chain []css.Element
		want  string
	}{
		{"element", chain(el("p"), el("body")), "none"},
		{"class beats element", chain(el("p", "class", "shown"), el("body")), "block"},
		{"id ancestor beats class", chain(el("p", "class", "shown"), el("div", "id", "main"), el("body")), "inline"},
		{"later rule wins", chain(el("span", "class", "x")), "flex"},
		{"no match", chain(el("span")), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Compute(tt.chain)
			if got.Display != tt.want {
				t.Errorf("display = %q, want %q", got.Display, tt.want)
			}
			if got.Explicit != (tt.want != "") {
				t.Errorf("explicit = %v", got.Explicit)
			}
		})
	}
}

func TestResolver_InlineStyle(t *testing.T) {
	r := newResolver(t, `p { display: none } .keep { display: none !important }`)

	if got := r.Compute(chain(el("p", "style", "display: block"))); got.Display != "block" {
		t.Errorf("style attribute must win over rule: %+v", got)
	}
	if got := r.Compute(chain(el("p", "class", "keep", "style", "display: block"))); got.Display != "none" {
		t.Errorf("important rule must win over style attribute: %+v", got)
	}
	if got := r.Compute(chain(el("p", "class", "keep", "style", "display: block !important"))); got.Display != "block" {
		t.Errorf("important style attribute must win: %+v", got)
	}
	if got := r.Compute(chain(el("div", "hidden", "", "style", "display: block"))); got.Display != "block" {
		t.Errorf("explicit style must override hidden attribute: %+v", got)
	}
}

func TestResolver_VisibilityInherited(t *testing.T) {
	r := newResolver(t, `.ghost { visibility: hidden } .back { visibility: visible }`)

	if got := r.Compute(chain(el("span"), el("div", "class", "ghost"))); got.Visibility != "hidden" {
		t.Errorf("visibility must be inherited: %+v", got)
	}
	if got := r.Compute(chain(el("span", "class", "back"), el("div", "class", "ghost"))); got.Visibility != "" {
		t.Errorf("visible must override inherited value: %+v", got)
	}
	if got := r.Compute(chain(el("span"), el("div", "class", "ghost"))); got.Explicit {
		t.Errorf("visibility must not mark display explicit: %+v", got)
	}
}

func TestResolver_Media(t *testing.T) {
	r := newResolver(t, `@media print { p { display: none } } @media screen { span { display: none } }`)

	if got := r.Compute(chain(el("p"))); got.Display != "" {
		t.Errorf("print rule must not apply: %+v", got)
	}
	if got := r.Compute(chain(el("span"))); got.Display != "none" {
		t.Errorf("screen rule must apply: %+v", got)
	}
	if r.Rules() != 1 {
		t.Errorf("expected 1 rule in cascade, got %d", r.Rules())
	}
}
