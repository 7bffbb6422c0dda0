package css

import (
	"strings"

	"go.uber.org/zap"
)

// Element is what resolver needs to know about an element to match selectors
// against it.
type Element interface {
	Tag() string
	Attr(name string) (string, bool)
}

// Computed is resolved presentation of a single element.
type Computed struct {
	Display    string
	Visibility string
	Explicit   bool // display was set by author rule or style attribute
}

// elements which are never rendered regardless of author styles (UA sheet).
var displayNoneTags = map[string]bool{
	"head": true, "title": true, "meta": true, "link": true, "base": true,
	"script": true, "style": true, "template": true, "noscript": true,
	"datalist": true, "param": true,
}

type cascadeRule struct {
	sel         Selector
	props       map[string]Value
	specificity int
	order       int
}

// Resolver applies collected stylesheets to elements.
type Resolver struct {
	log    *zap.Logger
	parser *Parser
	media  []string
	rules  []cascadeRule
}

// NewResolver creates resolver accepting rules for given media types (in
// addition to "all").
func NewResolver(log *zap.Logger, media ...string) *Resolver {
	if log == nil {
		log = zap.NewNop()
	}
	if len(media) == 0 {
		media = []string{"screen"}
	}
	return &Resolver{
		log:    log.Named("css-resolver"),
		parser: NewParser(log),
		media:  media,
	}
}

// Add appends stylesheet rules to the cascade, later sheets win over earlier
// ones with equal specificity.
func (r *Resolver) Add(sheet *Stylesheet) {
	if sheet == nil {
		return
	}
	add := func(rule Rule) {
		if _, ok := rule.Properties["display"]; !ok {
			if _, ok := rule.Properties["visibility"]; !ok {
				return
			}
		}
		r.rules = append(r.rules, cascadeRule{
			sel:         rule.Selector,
			props:       rule.Properties,
			specificity: rule.Selector.Specificity(),
			order:       len(r.rules),
		})
	}
	for _, item := range sheet.Items {
		switch {
		case item.Rule != nil:
			add(*item.Rule)
		case item.MediaBlock != nil:
			if !item.MediaBlock.Query.Evaluate(r.media...) {
				r.log.Debug("Media block does not apply", zap.String("query", item.MediaBlock.Query.Raw))
				continue
			}
			for _, rule := range item.MediaBlock.Rules {
				add(rule)
			}
		}
	}
}

// Rules returns number of rules taking part in the cascade.
func (r *Resolver) Rules() int {
	return len(r.rules)
}

// Compute resolves element presentation. chain holds the element followed by
// its element ancestors up to the document element.
func (r *Resolver) Compute(chain []Element) Computed {
	if len(chain) == 0 {
		return Computed{}
	}
	var res Computed

	if v, ok := r.lookup(chain, 0, "display"); ok {
		res.Display, res.Explicit = firstWord(v.Keyword), true
	} else if _, hidden := chain[0].Attr("hidden"); hidden || displayNoneTags[chain[0].Tag()] {
		res.Display = "none"
	}

	// visibility is inherited
	for i := range chain {
		if v, ok := r.lookup(chain, i, "visibility"); ok {
			if kw := firstWord(v.Keyword); kw != "inherit" {
				res.Visibility = kw
				break
			}
		}
	}
	if res.Visibility == "visible" {
		res.Visibility = ""
	}
	return res
}

// lookup finds winning declaration of property for chain[i]: style
// attribute, then rules by importance, specificity and order.
func (r *Resolver) lookup(chain []Element, i int, prop string) (Value, bool) {
	el := chain[i]

	var (
		inline   Value
		inlineOK bool
	)
	if style, ok := el.Attr("style"); ok {
		inline, inlineOK = r.parser.ParseDeclarations(style)[prop]
		if inlineOK && inline.Important {
			return inline, true
		}
	}

	var (
		best  *cascadeRule
		value Value
	)
	for k := range r.rules {
		cr := &r.rules[k]
		v, ok := cr.props[prop]
		if !ok || !matches(cr.sel, chain[i:]) {
			continue
		}
		if best == nil || outranks(cr, v, best, value) {
			best, value = cr, v
		}
	}
	switch {
	case best != nil && value.Important:
		return value, true
	case inlineOK:
		return inline, true
	case best != nil:
		return value, true
	}
	return Value{}, false
}

func outranks(a *cascadeRule, av Value, b *cascadeRule, bv Value) bool {
	if av.Important != bv.Important {
		return av.Important
	}
	if a.specificity != b.specificity {
		return a.specificity > b.specificity
	}
	return a.order > b.order
}

// matches tests selector against chain[0] with chain[1:] as ancestors.
func matches(sel Selector, chain []Element) bool {
	if len(chain) == 0 || !matchSimple(sel, chain[0]) {
		return false
	}
	if sel.Ancestor == nil {
		return true
	}
	for i := 1; i < len(chain); i++ {
		if matches(*sel.Ancestor, chain[i:]) {
			return true
		}
	}
	return false
}

func matchSimple(sel Selector, el Element) bool {
	if !sel.IsSimple() {
		return false
	}
	if sel.Element != "" && !strings.EqualFold(sel.Element, el.Tag()) {
		return false
	}
	if sel.ID != "" {
		if id, _ := el.Attr("id"); id != sel.ID {
			return false
		}
	}
	if sel.Class != "" {
		classes, _ := el.Attr("class")
		found := false
		for _, c := range strings.Fields(classes) {
			if c == sel.Class {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func firstWord(s string) string {
	if f := strings.Fields(s); len(f) > 0 {
		return strings.ToLower(f[0])
	}
	return ""
}
