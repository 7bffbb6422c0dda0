// Package css parses author stylesheets and style attributes and resolves the
// small part of the cascade navigation depends on: whether an element is
// displayed, how it is displayed and whether it is visible.
package css

import (
	"bytes"
	"maps"
	"strconv"
	"strings"
	"unicode"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// Parser parses CSS stylesheets into structured rules.
type Parser struct {
	log *zap.Logger
}

// NewParser creates a new CSS parser.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("css-parser")}
}

// Parse parses CSS text into a Stylesheet.
// The optional source parameter identifies what's being parsed (for debug logging).
func (p *Parser) Parse(data []byte, source ...string) *Stylesheet {
	sheet := &Stylesheet{
		Items:    make([]StylesheetItem, 0),
		Warnings: make([]string, 0),
	}

	if len(source) > 0 && source[0] != "" {
		p.log.Debug("Parsing CSS", zap.String("source", source[0]), zap.Int("bytes", len(data)))
	}

	parser := css.NewParser(parse.NewInput(bytes.NewReader(data)), false)

	var pending []string
	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar:
			// End of input or error
			if parser.Err() != nil && parser.Err().Error() != "EOF" {
				p.log.Debug("CSS parse error", zap.Error(parser.Err()))
			}
			return sheet

		case css.BeginAtRuleGrammar:
			atRule := strings.ToLower(string(data))
			switch atRule {
			case "@media":
				mq := p.parseMediaQueryFromTokens(parser.Values())
				rules := p.parseMediaBlockRules(parser, sheet)
				p.log.Debug("Parsed @media block", zap.String("query", mq.Raw), zap.Int("rules", len(rules)))
				sheet.Items = append(sheet.Items, StylesheetItem{
					MediaBlock: &MediaBlock{Query: mq, Rules: rules},
				})
			default:
				// @font-face, @page, @keyframes... do not affect visibility
				p.skipAtRuleBlock(parser)
				p.log.Debug("Skipping @-rule", zap.String("rule", atRule))
			}

		case css.AtRuleGrammar:
			atRule := strings.ToLower(string(data))
			if atRule == "@import" {
				if url := extractImportURL(parser.Values()); url != "" {
					sheet.Items = append(sheet.Items, StylesheetItem{Import: &url})
					sheet.Warnings = append(sheet.Warnings, "imported stylesheet is not loaded: "+url)
					p.log.Debug("Parsed @import", zap.String("url", url))
				}
			} else {
				p.log.Debug("Skipping @-rule", zap.String("rule", atRule))
			}

		case css.QualifiedRuleGrammar:
			// selector list part reported ahead of the ruleset
			pending = append(pending, p.parseSelectors(data, parser.Values())...)

		case css.BeginRulesetGrammar:
			selectors := append(pending, p.parseSelectors(data, parser.Values())...)
			pending = nil
			sheet.Items = append(sheet.Items, p.buildRules(selectors, p.parseDeclarations(parser), sheet)...)
		}
	}
}

// ParseDeclarations parses content of a style attribute.
func (p *Parser) ParseDeclarations(data string) map[string]Value {
	props := make(map[string]Value)
	if strings.TrimSpace(data) == "" {
		return props
	}

	parser := css.NewParser(parse.NewInputString(data), true)
	for {
		gt, _, name := parser.Next()
		switch gt {
		case css.ErrorGrammar:
			if parser.Err() != nil && parser.Err().Error() != "EOF" {
				p.log.Debug("CSS style attribute parse error", zap.String("style", data), zap.Error(parser.Err()))
			}
			return props
		case css.DeclarationGrammar:
			if values := parser.Values(); len(values) > 0 {
				props[strings.ToLower(string(name))] = p.parsePropertyValue(values)
			}
		}
	}
}

func (p *Parser) buildRules(selectors []string, props map[string]Value, sheet *Stylesheet) []StylesheetItem {
	var items []StylesheetItem
	for _, selStr := range selectors {
		sel := p.parseSelector(selStr, sheet)
		if !sel.IsSimple() {
			continue
		}
		// Clone properties for each rule
		propsCopy := make(map[string]Value, len(props))
		maps.Copy(propsCopy, props)
		items = append(items, StylesheetItem{Rule: &Rule{Selector: sel, Properties: propsCopy}})
	}
	return items
}

// extractImportURL extracts the URL from @import tokens.
// Handles: @import "url"; @import url("url"); @import url(url);
func extractImportURL(tokens []css.Token) string {
	for _, t := range tokens {
		switch t.TokenType {
		case css.StringToken:
			return unquote(string(t.Data))
		case css.URLToken:
			s := string(t.Data)
			s = strings.TrimPrefix(s, "url(")
			s = strings.TrimSuffix(s, ")")
			return unquote(strings.TrimSpace(s))
		}
	}
	return ""
}

// parseSelectors extracts selector strings from token data.
func (p *Parser) parseSelectors(data []byte, values []css.Token) []string {
	var sb strings.Builder
	sb.Write(data)
	for _, v := range values {
		sb.Write(v.Data)
	}

	// Split by comma for grouped selectors
	var selectors []string
	for s := range strings.SplitSeq(sb.String(), ",") {
		s = strings.TrimSpace(s)
		if s != "" {
			selectors = append(selectors, s)
		}
	}
	return selectors
}

// parseDeclarations parses property declarations until EndRulesetGrammar.
func (p *Parser) parseDeclarations(parser *css.Parser) map[string]Value {
	props := make(map[string]Value)

	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar, css.EndRulesetGrammar:
			return props

		case css.DeclarationGrammar:
			propName := strings.ToLower(string(data))
			values := parser.Values()
			if len(values) > 0 {
				props[propName] = p.parsePropertyValue(values)
			}

		case css.CustomPropertyGrammar:
			// CSS custom properties (--var) - skip
			continue
		}
	}
}

// parsePropertyValue converts CSS tokens to a Value.
func (p *Parser) parsePropertyValue(tokens []css.Token) Value {
	var important bool
	tokens, important = stripImportant(tokens)
	if len(tokens) == 0 {
		return Value{Important: important}
	}

	// Build raw value string
	var rawParts []string
	for _, t := range tokens {
		if t.TokenType != css.WhitespaceToken {
			rawParts = append(rawParts, string(t.Data))
		} else if len(rawParts) > 0 {
			rawParts = append(rawParts, " ")
		}
	}
	raw := strings.TrimSpace(strings.Join(rawParts, ""))

	val := Value{Raw: raw, Important: important}

	// Handle single token cases
	if len(tokens) == 1 || (len(tokens) == 2 && tokens[1].TokenType == css.WhitespaceToken) {
		t := tokens[0]
		switch t.TokenType {
		case css.DimensionToken:
			val.Value, val.Unit = parseDimension(string(t.Data))
		case css.PercentageToken:
			val.Value, _ = strconv.ParseFloat(strings.TrimSuffix(string(t.Data), "%"), 64)
			val.Unit = "%"
		case css.NumberToken:
			val.Value, _ = strconv.ParseFloat(string(t.Data), 64)
		case css.IdentToken:
			val.Keyword = strings.ToLower(string(t.Data))
		case css.StringToken:
			val.Keyword = unquote(string(t.Data))
		case css.HashToken:
			val.Keyword = string(t.Data)
		}
		return val
	}

	// Multi-value properties and functions - store as keyword with raw value
	val.Keyword = strings.ToLower(raw)
	return val
}

// stripImportant removes trailing "!important" reporting its presence.
func stripImportant(tokens []css.Token) ([]css.Token, bool) {
	end := len(tokens)
	for end > 0 && tokens[end-1].TokenType == css.WhitespaceToken {
		end--
	}
	if end >= 2 && tokens[end-1].TokenType == css.IdentToken &&
		strings.EqualFold(string(tokens[end-1].Data), "important") {
		i := end - 2
		for i >= 0 && tokens[i].TokenType == css.WhitespaceToken {
			i--
		}
		if i >= 0 && tokens[i].TokenType == css.DelimToken && string(tokens[i].Data) == "!" {
			return tokens[:i], true
		}
	}
	return tokens, false
}

// parseDimension extracts numeric value and unit from dimension token.
func parseDimension(s string) (float64, string) {
	numEnd := 0
	for i, r := range s {
		if unicode.IsDigit(r) || r == '.' || r == '-' || r == '+' {
			numEnd = i + 1
		} else {
			break
		}
	}

	if numEnd == 0 {
		return 0, ""
	}

	num, _ := strconv.ParseFloat(s[:numEnd], 64)
	unit := strings.ToLower(s[numEnd:])
	return num, unit
}

// parseSelector parses a single selector string into a Selector.
func (p *Parser) parseSelector(selStr string, sheet *Stylesheet) Selector {
	selStr = strings.TrimSpace(selStr)
	sel := Selector{Raw: selStr}

	if strings.ContainsAny(selStr, "+~>") {
		sheet.Warnings = append(sheet.Warnings, "unsupported combinator selector: "+selStr)
		p.log.Debug("Skipping combinator selector", zap.String("selector", selStr))
		return sel
	}
	if strings.Contains(selStr, "[") {
		sheet.Warnings = append(sheet.Warnings, "unsupported attribute selector: "+selStr)
		p.log.Debug("Skipping attribute selector", zap.String("selector", selStr))
		return sel
	}

	if strings.ContainsAny(selStr, " \t\n") {
		return p.parseDescendantSelector(selStr, sheet)
	}
	return p.parseSimpleSelector(selStr, sheet)
}

// parseDescendantSelector parses a descendant selector like "p code" or ".nav a".
func (p *Parser) parseDescendantSelector(selStr string, sheet *Stylesheet) Selector {
	sel := Selector{Raw: selStr}

	parts := strings.Fields(selStr)
	if len(parts) < 2 {
		return sel
	}

	mainSel := p.parseSimpleSelector(parts[len(parts)-1], sheet)
	if !mainSel.IsSimple() {
		return sel
	}
	sel.Element, sel.Class, sel.ID, sel.Universal = mainSel.Element, mainSel.Class, mainSel.ID, mainSel.Universal

	ancestorParts := parts[:len(parts)-1]
	var ancestorSel Selector
	if len(ancestorParts) == 1 {
		ancestorSel = p.parseSimpleSelector(ancestorParts[0], sheet)
	} else {
		ancestorSel = p.parseDescendantSelector(strings.Join(ancestorParts, " "), sheet)
	}
	if !ancestorSel.IsSimple() {
		// rule cannot be matched reliably, drop it
		sel.Pseudo = true
		return sel
	}
	sel.Ancestor = &ancestorSel
	return sel
}

// parseSimpleSelector parses a compound selector: [element|*][#id][.class]
// with optional pseudo part. Pseudo-classes and pseudo-elements are marked and
// never matched: generated content and dynamic state do not change structure.
func (p *Parser) parseSimpleSelector(selStr string, sheet *Stylesheet) Selector {
	selStr = strings.TrimSpace(selStr)
	sel := Selector{Raw: selStr}

	remaining := selStr
	if before, pseudo, found := strings.Cut(selStr, ":"); found {
		sel.Pseudo = true
		remaining = before
		sheet.Warnings = append(sheet.Warnings, "unsupported pseudo selector: "+selStr)
		p.log.Debug("Skipping pseudo selector", zap.String("selector", selStr), zap.String("pseudo", pseudo))
	}
	if remaining == "" {
		return sel
	}

	if rest, class, found := strings.Cut(remaining, "."); found {
		if strings.Contains(class, ".") {
			// multiple classes are not supported
			sheet.Warnings = append(sheet.Warnings, "unsupported multiple class selector: "+selStr)
			sel.Pseudo = true
		}
		sel.Class = class
		remaining = rest
	}
	if rest, id, found := strings.Cut(remaining, "#"); found {
		sel.ID = id
		remaining = rest
	}
	switch remaining {
	case "":
	case "*":
		sel.Universal = true
	default:
		sel.Element = strings.ToLower(remaining)
	}
	return sel
}

// skipAtRuleBlock skips tokens until the matching end of an @-rule block.
func (p *Parser) skipAtRuleBlock(parser *css.Parser) {
	depth := 1
	for depth > 0 {
		gt, _, _ := parser.Next()
		switch gt {
		case css.ErrorGrammar:
			return
		case css.BeginAtRuleGrammar, css.BeginRulesetGrammar:
			depth++
		case css.EndAtRuleGrammar, css.EndRulesetGrammar:
			depth--
		}
	}
}

// parseMediaQueryFromTokens parses a media query from CSS tokens.
// Handles queries like "screen", "not print", "screen and (min-width: 40em)".
func (p *Parser) parseMediaQueryFromTokens(tokens []css.Token) MediaQuery {
	mq := MediaQuery{}

	var rawParts []string
	for _, t := range tokens {
		if t.TokenType != css.WhitespaceToken {
			rawParts = append(rawParts, string(t.Data))
		} else if len(rawParts) > 0 {
			rawParts = append(rawParts, " ")
		}
	}
	mq.Raw = strings.TrimSpace(strings.Join(rawParts, ""))

	// Format: [not] [type] [and [not] feature]... where parenthesised
	// feature is reduced to its name.
	var (
		words       []string
		inParens    bool
		featureSeen bool
	)
	for _, t := range tokens {
		switch t.TokenType {
		case css.LeftParenthesisToken:
			inParens, featureSeen = true, false
		case css.RightParenthesisToken:
			inParens = false
		case css.IdentToken:
			w := strings.ToLower(string(t.Data))
			switch {
			case !inParens:
				words = append(words, w)
			case !featureSeen:
				// feature name is first ident inside parentheses
				words = append(words, "("+w)
				featureSeen = true
			}
		}
	}

	i := 0
	if i < len(words) && words[i] == "not" {
		mq.Negated = true
		i++
	}
	if i < len(words) && !strings.HasPrefix(words[i], "(") {
		mq.Type = words[i]
		i++
	}
	negated := false
	for ; i < len(words); i++ {
		switch w := words[i]; {
		case w == "and", w == "only":
		case w == "not":
			negated = true
		case strings.HasPrefix(w, "("):
			mq.Features = append(mq.Features, MediaFeature{Name: strings.TrimPrefix(w, "("), Negated: negated})
			negated = false
		}
	}
	return mq
}

// parseMediaBlockRules parses rules inside an @media block and returns them.
func (p *Parser) parseMediaBlockRules(parser *css.Parser, sheet *Stylesheet) []Rule {
	var (
		rules   []Rule
		pending []string
	)

	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar, css.EndAtRuleGrammar:
			return rules

		case css.BeginAtRuleGrammar:
			p.skipAtRuleBlock(parser)

		case css.QualifiedRuleGrammar:
			pending = append(pending, p.parseSelectors(data, parser.Values())...)

		case css.BeginRulesetGrammar:
			selectors := append(pending, p.parseSelectors(data, parser.Values())...)
			pending = nil
			for _, item := range p.buildRules(selectors, p.parseDeclarations(parser), sheet) {
				rules = append(rules, *item.Rule)
			}
		}
	}
}

// unquote removes surrounding quotes from a string.
func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return s
	}
	if (s[0] == '"' && s[len(s)-1] == '"') ||
		(s[0] == '\'' && s[len(s)-1] == '\'') {
		return s[1 : len(s)-1]
	}
	return s
}
