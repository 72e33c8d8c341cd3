// Package scorer ranks candidate conditions for a set of symptoms.
package scorer

import (
	"cmp"
	"slices"

	"github.com/Skufu/GoSymptom/internal/lexicon"
)

// Normalization selects the divisor applied to a condition's raw score.
type Normalization int

const (
	// NormalizeByClusterSize divides by the size of the full cluster, so
	// large clusters score lower even with complete overlap.
	NormalizeByClusterSize Normalization = iota
	// NormalizeByMatchCount divides by the number of matched symptoms.
	NormalizeByMatchCount
)

// FollowUpConditions is how many top conditions contribute follow-up questions.
const FollowUpConditions = 2

// ConditionScore is a condition and its normalized score in [0,1].
type ConditionScore struct {
	Condition lexicon.Condition `json:"condition"`
	Score     float64           `json:"score"`
}

// Ranking is a list of condition scores sorted best first.
type Ranking []ConditionScore

// Top returns the best condition, or false when the ranking is empty.
func (r Ranking) Top() (ConditionScore, bool) {
	if len(r) == 0 {
		return ConditionScore{}, false
	}
	return r[0], true
}

// Map returns the ranking keyed by condition.
func (r Ranking) Map() map[lexicon.Condition]float64 {
	out := make(map[lexicon.Condition]float64, len(r))
	for _, cs := range r {
		out[cs.Condition] = cs.Score
	}
	return out
}

// Scorer scores symptoms against the lexicon clusters. It is stateless and
// safe for concurrent use.
type Scorer struct {
	lex  *lexicon.Lexicon
	norm Normalization
}

// New returns a Scorer using the cluster-size normalization.
func New(lex *lexicon.Lexicon) *Scorer {
	return &Scorer{lex: lex, norm: NormalizeByClusterSize}
}

// WithNormalization returns a copy of s using n.
func (s *Scorer) WithNormalization(n Normalization) *Scorer {
	return &Scorer{lex: s.lex, norm: n}
}

// Score ranks every condition whose cluster intersects symptoms and returns
// the follow-up symptoms of the top conditions that were not reported yet.
// Conditions without any matching symptom are absent from the ranking.
func (s *Scorer) Score(symptoms []lexicon.Symptom) (Ranking, []lexicon.Symptom) {
	input := toSet(symptoms)
	ranking := Ranking{}
	if len(input) == 0 {
		return ranking, []lexicon.Symptom{}
	}

	for _, c := range s.lex.Conditions() {
		cluster := s.lex.Cluster(c)
		raw, matched := 0.0, 0
		for _, sym := range cluster {
			if _, ok := input[sym]; !ok {
				continue
			}
			w, _ := s.lex.Weight(sym)
			raw += w
			matched++
		}
		if matched == 0 {
			continue
		}

		divisor := len(cluster)
		if s.norm == NormalizeByMatchCount {
			divisor = matched
		}
		ranking = append(ranking, ConditionScore{Condition: c, Score: raw / float64(divisor)})
	}

	// Stable sort keeps lexicon order among equal scores.
	slices.SortStableFunc(ranking, func(a, b ConditionScore) int {
		return cmp.Compare(b.Score, a.Score)
	})

	return ranking, s.followUps(ranking, input)
}

func (s *Scorer) followUps(ranking Ranking, reported map[lexicon.Symptom]struct{}) []lexicon.Symptom {
	out := []lexicon.Symptom{}
	seen := make(map[lexicon.Symptom]struct{})
	for i := 0; i < len(ranking) && i < FollowUpConditions; i++ {
		for _, sym := range s.lex.FollowUps(ranking[i].Condition) {
			if _, ok := reported[sym]; ok {
				continue
			}
			if _, ok := seen[sym]; ok {
				continue
			}
			seen[sym] = struct{}{}
			out = append(out, sym)
		}
	}
	return out
}

// MatchProbability is the fraction of symptoms that belong to the cluster of
// c. It is 0 for an empty symptom set.
func (s *Scorer) MatchProbability(c lexicon.Condition, symptoms []lexicon.Symptom) float64 {
	input := toSet(symptoms)
	if len(input) == 0 {
		return 0
	}
	cluster := toSet(s.lex.Cluster(c))
	hits := 0
	for sym := range input {
		if _, ok := cluster[sym]; ok {
			hits++
		}
	}
	return float64(hits) / float64(len(input))
}

// Percentages converts scores into shares of their sum, in percent. An empty
// ranking or a zero sum yields an empty map.
func Percentages(r Ranking) map[lexicon.Condition]float64 {
	out := make(map[lexicon.Condition]float64, len(r))
	total := 0.0
	for _, cs := range r {
		total += cs.Score
	}
	if total <= 0 {
		return out
	}
	for _, cs := range r {
		out[cs.Condition] = cs.Score / total * 100
	}
	return out
}

func toSet(symptoms []lexicon.Symptom) map[lexicon.Symptom]struct{} {
	set := make(map[lexicon.Symptom]struct{}, len(symptoms))
	for _, s := range symptoms {
		set[s] = struct{}{}
	}
	return set
}
