// Package extractor turns free text into the set of recognized symptom labels.
package extractor

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/Skufu/GoSymptom/internal/lexicon"
)

// Matcher decides which labels a normalized utterance mentions.
type Matcher interface {
	Match(doc Document, labels []lexicon.Symptom) []lexicon.Symptom
}

// Extractor recognizes lexicon symptoms in free text. It holds no mutable
// state and is safe for concurrent use.
type Extractor struct {
	lex     *lexicon.Lexicon
	matcher Matcher
}

// New returns an Extractor over lex. A nil matcher selects ContainmentMatcher
// with its default settings.
func New(lex *lexicon.Lexicon, matcher Matcher) *Extractor {
	if matcher == nil {
		matcher = NewContainmentMatcher(DefaultMinTokenLength)
	}
	return &Extractor{lex: lex, matcher: matcher}
}

// Extract returns the de-duplicated symptoms mentioned in text, in lexicon
// order. Text without symptom language yields an empty, non-nil slice.
func (e *Extractor) Extract(text string) []lexicon.Symptom {
	doc := Normalize(text)
	if len(doc.Tokens) == 0 {
		return []lexicon.Symptom{}
	}

	found := make(map[lexicon.Symptom]struct{})
	for _, s := range e.matcher.Match(doc, e.lex.Symptoms()) {
		found[s] = struct{}{}
	}

	out := make([]lexicon.Symptom, 0, len(found))
	for _, s := range e.lex.Symptoms() {
		if _, ok := found[s]; ok {
			out = append(out, s)
		}
	}
	return out
}

// Token is a word of the normalized text with its byte offsets.
type Token struct {
	Text  string
	Start int
	End   int
}

// Document is normalized text: lowercase, punctuation replaced by single
// spaces, tokens separated by exactly one space.
type Document struct {
	Text   string
	Tokens []Token
}

// Normalize applies NFKC, lowercases and turns every non letter/digit rune
// into a token boundary.
func Normalize(text string) Document {
	folded := strings.ToLower(norm.NFKC.String(text))
	words := strings.FieldsFunc(folded, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	var b strings.Builder
	tokens := make([]Token, 0, len(words))
	for i, w := range words {
		if i > 0 {
			b.WriteByte(' ')
		}
		start := b.Len()
		b.WriteString(w)
		tokens = append(tokens, Token{Text: w, Start: start, End: b.Len()})
	}
	return Document{Text: b.String(), Tokens: tokens}
}
