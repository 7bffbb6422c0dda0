package describe

import (
	"strings"
	"unicode"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

// Splitter breaks speech string into utterances, one sentence each.
type Splitter struct {
	*sentences.DefaultSentenceTokenizer
}

// NewSplitter returns splitter for lang. Only English model is available,
// for other languages nil is returned and Split keeps text whole.
func NewSplitter(lang language.Tag, log *zap.Logger) *Splitter {
	if log == nil {
		log = zap.NewNop()
	}
	base, confidence := lang.Base()
	if confidence == language.No {
		log.Warn("Unable to determine language base, turning off sentence splitting", zap.Stringer("tag", lang))
		return nil
	}
	if en, _ := language.English.Base(); base != en {
		log.Warn("Unable to find suitable sentence tokenizer model, turning off sentence splitting", zap.Stringer("language", lang))
		return nil
	}
	tokenizer, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		log.Warn("Unable to load sentences tokenizer data", zap.Stringer("tag", lang), zap.Error(err))
		return nil
	}
	return &Splitter{tokenizer}
}

// Split returns non-empty sentences of in with surrounding spaces trimmed.
func (s *Splitter) Split(in string) []string {
	in = strings.TrimSpace(in)
	if in == "" {
		return nil
	}
	if s == nil {
		return []string{in}
	}
	var res []string
	for _, sentence := range s.Tokenize(in) {
		if t := strings.TrimFunc(sentence.Text, unicode.IsSpace); t != "" {
			res = append(res, t)
		}
	}
	if len(res) == 0 {
		return []string{in}
	}
	return res
}
