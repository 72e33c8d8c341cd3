package extractor

import (
	"strings"
	"unicode/utf8"

	"github.com/Skufu/GoSymptom/internal/lexicon"
)

// DefaultMinTokenLength is the shortest token considered for fuzzy containment.
const DefaultMinTokenLength = 3

var stopWords = map[string]struct{}{
	"and": {}, "the": {}, "but": {}, "for": {}, "with": {}, "have": {}, "has": {},
	"had": {}, "feel": {}, "feels": {}, "feeling": {}, "very": {}, "really": {},
	"some": {}, "been": {}, "was": {}, "are": {}, "not": {}, "got": {}, "also": {},
	"since": {}, "this": {}, "that": {}, "from": {}, "bad": {}, "day": {}, "days": {},
}

// ContainmentMatcher matches labels by exact substring over the whole text,
// then by token containment in either direction for labels still unmatched.
// The token pass recovers stems such as "vomit" but also admits false
// positives; tokens already covered by an exact match do not take part in it.
type ContainmentMatcher struct {
	minTokenLength int
}

// NewContainmentMatcher returns a matcher ignoring tokens shorter than
// minTokenLength runes during the fuzzy pass.
func NewContainmentMatcher(minTokenLength int) *ContainmentMatcher {
	if minTokenLength < 1 {
		minTokenLength = 1
	}
	return &ContainmentMatcher{minTokenLength: minTokenLength}
}

// Match implements Matcher.
func (m *ContainmentMatcher) Match(doc Document, labels []lexicon.Symptom) []lexicon.Symptom {
	matched := make(map[lexicon.Symptom]struct{}, len(labels))
	covered := make([]bool, len(doc.Tokens))
	out := make([]lexicon.Symptom, 0)

	for _, label := range labels {
		spans := findAll(doc.Text, string(label))
		if len(spans) == 0 {
			continue
		}
		matched[label] = struct{}{}
		out = append(out, label)
		for _, sp := range spans {
			for i, tok := range doc.Tokens {
				if tok.Start < sp[1] && sp[0] < tok.End {
					covered[i] = true
				}
			}
		}
	}

	for i, tok := range doc.Tokens {
		if covered[i] || !m.eligible(tok.Text) {
			continue
		}
		for _, label := range labels {
			if _, ok := matched[label]; ok {
				continue
			}
			l := string(label)
			if strings.Contains(l, tok.Text) || strings.Contains(tok.Text, l) {
				matched[label] = struct{}{}
				out = append(out, label)
			}
		}
	}
	return out
}

func (m *ContainmentMatcher) eligible(token string) bool {
	if utf8.RuneCountInString(token) < m.minTokenLength {
		return false
	}
	_, stop := stopWords[token]
	return !stop
}

func findAll(text, sub string) [][2]int {
	var spans [][2]int
	if sub == "" {
		return spans
	}
	offset := 0
	for {
		i := strings.Index(text[offset:], sub)
		if i < 0 {
			return spans
		}
		start := offset + i
		spans = append(spans, [2]int{start, start + len(sub)})
		offset = start + 1
	}
}
