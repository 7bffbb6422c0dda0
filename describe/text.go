// Package describe turns navigation units into spoken text and audio cues.
package describe

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/width"
)

// IsPunctuationOnly reports whether s carries at most one meaningful rune
// once markup remnants, punctuation, symbols and spaces are removed.
func IsPunctuationOnly(s string) bool {
	return MeaningfulRunes(s) <= 1
}

// MeaningfulRunes counts runes which are not punctuation, symbols, spaces or
// markup remnants.
func MeaningfulRunes(s string) int {
	s = width.Fold.String(stripTags(s))
	count := 0
	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		s = s[size:]
		if unicode.IsPunct(r) || unicode.IsSymbol(r) || unicode.IsSpace(r) || unicode.IsControl(r) || r == utf8.RuneError {
			continue
		}
		count++
	}
	return count
}

// stripTags removes things which look like markup ("<b>", "</p>") left in
// text by broken sources.
func stripTags(s string) string {
	if !strings.Contains(s, "<") {
		return s
	}
	var sb strings.Builder
	for {
		open := strings.IndexByte(s, '<')
		if open < 0 {
			break
		}
		end := strings.IndexByte(s[open:], '>')
		if end < 0 {
			break
		}
		sb.WriteString(s[:open])
		s = s[open+end+1:]
	}
	sb.WriteString(s)
	return sb.String()
}

// Normalize collapses white space.
func Normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
