package css

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode"
)

// MediaQuery represents a parsed @media query condition.
type MediaQuery struct {
	Raw      string         // Original media query string
	Type     string         // Media type (e.g., "screen", "print")
	Negated  bool           // true if "not" modifier was used on main type
	Features []MediaFeature // Additional conditions (e.g., "and (min-width: 40em)")
}

// MediaFeature represents a single media feature condition in a media query.
type MediaFeature struct {
	Name    string // Feature name (e.g., "min-width")
	Negated bool   // true if "not" modifier was used
}

// Evaluate returns true if this media query matches one of the given media
// types. Query without type ("(min-width: 10em)") applies to all media.
// Features cannot be evaluated without a viewport and never match, so rules
// guarded by them do not hide content.
func (mq MediaQuery) Evaluate(media ...string) bool {
	var typeMatches bool
	switch t := strings.ToLower(mq.Type); t {
	case "", "all":
		typeMatches = true
	default:
		for _, m := range media {
			if strings.EqualFold(m, t) {
				typeMatches = true
				break
			}
		}
	}

	if mq.Negated {
		typeMatches = !typeMatches
	}
	if !typeMatches {
		return false
	}

	for _, f := range mq.Features {
		if !f.Negated {
			return false
		}
	}
	return true
}

// Value represents a parsed CSS property value.
type Value struct {
	Raw       string  // Original CSS value string (e.g., "1.2em", "none", "#ff0000")
	Value     float64 // Numeric value if applicable
	Unit      string  // Unit if applicable: "em", "px", "%", "pt", etc.
	Keyword   string  // Keyword if applicable: "none", "inline", "hidden", etc.
	Important bool    // value was marked !important
}

// IsNumeric returns true if the value has a numeric component.
// This includes explicit zero values like "0" or "0px".
func (v Value) IsNumeric() bool {
	if v.Unit != "" {
		return true
	}
	if v.Value != 0 && v.Keyword == "" {
		return true
	}
	if v.Raw != "" && v.Keyword == "" {
		firstChar := rune(v.Raw[0])
		if unicode.IsDigit(firstChar) || firstChar == '.' || firstChar == '-' || firstChar == '+' {
			return true
		}
	}
	return false
}

// IsKeyword returns true if the value is a keyword (no numeric component).
func (v Value) IsKeyword() bool {
	return v.Keyword != "" && v.Unit == ""
}

// Selector represents a parsed CSS selector with its components.
type Selector struct {
	Raw       string    // Original selector string
	Element   string    // Element name (e.g., "p", "h1") or empty
	Class     string    // Class name without dot or empty
	ID        string    // Id without hash or empty
	Universal bool      // "*"
	Pseudo    bool      // selector targets pseudo-element or pseudo-class
	Ancestor  *Selector // Ancestor selector for descendant selectors (e.g., "p code" -> Ancestor is "p")
}

// IsSimple returns true if this selector can be matched against an element.
func (s Selector) IsSimple() bool {
	return (s.Element != "" || s.Class != "" || s.ID != "" || s.Universal) && !s.Pseudo
}

// IsDescendant returns true if this is a descendant selector.
func (s Selector) IsDescendant() bool {
	return s.Ancestor != nil
}

// Specificity returns selector weight as (ids, classes, elements) packed into
// one comparable integer.
func (s Selector) Specificity() int {
	w := 0
	if s.ID != "" {
		w += 10000
	}
	if s.Class != "" {
		w += 100
	}
	if s.Element != "" {
		w++
	}
	if s.Ancestor != nil {
		w += s.Ancestor.Specificity()
	}
	return w
}

// Rule represents a single CSS rule (selector + properties).
type Rule struct {
	Selector   Selector         // Parsed selector
	Properties map[string]Value // Property name -> value
}

// GetProperty returns the value for a property, or empty Value if not found.
func (r Rule) GetProperty(name string) (Value, bool) {
	v, ok := r.Properties[name]
	return v, ok
}

// StylesheetItem is a single top-level item in a stylesheet.
// Exactly one of Rule, MediaBlock, or Import is non-nil.
type StylesheetItem struct {
	Rule       *Rule       // A plain rule (selector + properties)
	MediaBlock *MediaBlock // A @media block containing nested rules
	Import     *string     // An @import URL
}

// MediaBlock represents a @media block with its query and nested rules.
type MediaBlock struct {
	Query MediaQuery
	Rules []Rule
}

// Stylesheet represents a parsed CSS stylesheet.
type Stylesheet struct {
	Items    []StylesheetItem // All top-level items in source order
	Warnings []string         // Warnings for unsupported features
}

// Imports returns all @import URLs from the stylesheet in source order.
func (s *Stylesheet) Imports() []string {
	var urls []string
	for _, item := range s.Items {
		if item.Import != nil {
			urls = append(urls, *item.Import)
		}
	}
	return urls
}

// RulesBySelector returns all top-level rules matching the given selector string.
func (s *Stylesheet) RulesBySelector(selector string) []Rule {
	var matches []Rule
	for _, item := range s.Items {
		if item.Rule != nil && item.Rule.Selector.Raw == selector {
			matches = append(matches, *item.Rule)
		}
	}
	return matches
}

// WriteTo writes the stylesheet to w in source order, implementing io.WriterTo.
// Property order within a rule is sorted alphabetically for deterministic output.
func (s *Stylesheet) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for i, item := range s.Items {
		var n int
		var err error

		switch {
		case item.Import != nil:
			n, err = fmt.Fprintf(w, "@import url(%q);\n", *item.Import)
		case item.MediaBlock != nil:
			n, err = writeMediaBlock(w, item.MediaBlock)
		case item.Rule != nil:
			n, err = writeRule(w, "", item.Rule)
		}

		total += int64(n)
		if err != nil {
			return total, err
		}

		if i < len(s.Items)-1 {
			n, err = fmt.Fprint(w, "\n")
			total += int64(n)
			if err != nil {
				return total, err
			}
		}
	}
	return total, nil
}

// String returns the CSS text of the stylesheet.
func (s *Stylesheet) String() string {
	var sb strings.Builder
	s.WriteTo(&sb) //nolint:errcheck
	return sb.String()
}

// writeRule writes a single CSS rule to w using indent as line prefix.
func writeRule(w io.Writer, indent string, rule *Rule) (int, error) {
	var total int
	n, err := fmt.Fprintf(w, "%s%s {\n", indent, rule.Selector.Raw)
	total += n
	if err != nil {
		return total, err
	}

	names := make([]string, 0, len(rule.Properties))
	for name := range rule.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		val := rule.Properties[name]
		important := ""
		if val.Important {
			important = " !important"
		}
		n, err = fmt.Fprintf(w, "%s  %s: %s%s;\n", indent, name, val.Raw, important)
		total += n
		if err != nil {
			return total, err
		}
	}
	n, err = fmt.Fprintf(w, "%s}\n", indent)
	total += n
	return total, err
}

// writeMediaBlock writes an @media block to w.
func writeMediaBlock(w io.Writer, mb *MediaBlock) (int, error) {
	var total int
	n, err := fmt.Fprintf(w, "@media %s {\n", mb.Query.Raw)
	total += n
	if err != nil {
		return total, err
	}
	for i := range mb.Rules {
		n, err = writeRule(w, "  ", &mb.Rules[i])
		total += n
		if err != nil {
			return total, err
		}
	}
	n, err = fmt.Fprint(w, "}\n")
	total += n
	return total, err
}
