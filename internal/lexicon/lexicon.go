package lexicon

import (
	"errors"
	"fmt"
)

// Symptom is a canonical lowercase symptom label such as "chest pain".
type Symptom string

// Condition is a canonical condition name such as "heart attack".
type Condition string

// ErrInvalidLexicon is returned by Validate when a table is inconsistent.
var ErrInvalidLexicon = errors.New("invalid lexicon")

// Entry describes one condition: its characteristic symptoms and the follow-up
// symptoms asked about to disambiguate it.
type Entry struct {
	Condition Condition
	Primary   []Symptom
	FollowUps []Symptom
}

// Lexicon is the read-only symptom and condition table shared by the pipeline.
// Build it once with New or Default; it is never mutated afterwards.
type Lexicon struct {
	symptoms []Symptom
	weights  map[Symptom]float64
	entries  []Entry
	clusters map[Condition][]Symptom
	index    map[Condition]int
}

// New builds a Lexicon from a weight table and an ordered condition list.
// Symptom order follows weights; condition order follows entries and is the
// tie-break order used by the scorer.
func New(weights []WeightedSymptom, entries []Entry) (*Lexicon, error) {
	l := &Lexicon{
		weights:  make(map[Symptom]float64, len(weights)),
		clusters: make(map[Condition][]Symptom, len(entries)),
		index:    make(map[Condition]int, len(entries)),
	}

	for _, w := range weights {
		if _, dup := l.weights[w.Symptom]; dup {
			return nil, fmt.Errorf("%w: duplicate symptom %q", ErrInvalidLexicon, w.Symptom)
		}
		l.weights[w.Symptom] = w.Weight
		l.symptoms = append(l.symptoms, w.Symptom)
	}

	for i, e := range entries {
		if _, dup := l.index[e.Condition]; dup {
			return nil, fmt.Errorf("%w: duplicate condition %q", ErrInvalidLexicon, e.Condition)
		}
		l.index[e.Condition] = i
		l.entries = append(l.entries, e)
		l.clusters[e.Condition] = union(e.Primary, e.FollowUps)
	}

	if err := l.Validate(); err != nil {
		return nil, err
	}
	return l, nil
}

// WeightedSymptom pairs a symptom with its severity weight in [0,1].
type WeightedSymptom struct {
	Symptom Symptom
	Weight  float64
}

// Validate checks weights are within [0,1] and that every clustered or
// follow-up symptom has a weight.
func (l *Lexicon) Validate() error {
	for _, s := range l.symptoms {
		if s == "" {
			return fmt.Errorf("%w: empty symptom label", ErrInvalidLexicon)
		}
		if w := l.weights[s]; w < 0 || w > 1 {
			return fmt.Errorf("%w: weight %.2f for %q outside [0,1]", ErrInvalidLexicon, w, s)
		}
	}
	for _, e := range l.entries {
		if len(e.Primary) == 0 {
			return fmt.Errorf("%w: condition %q has no symptoms", ErrInvalidLexicon, e.Condition)
		}
		for _, s := range l.clusters[e.Condition] {
			if _, ok := l.weights[s]; !ok {
				return fmt.Errorf("%w: condition %q references unknown symptom %q", ErrInvalidLexicon, e.Condition, s)
			}
		}
	}
	return nil
}

// Symptoms returns every known symptom in table order.
func (l *Lexicon) Symptoms() []Symptom {
	return append([]Symptom(nil), l.symptoms...)
}

// Conditions returns every known condition in table order.
func (l *Lexicon) Conditions() []Condition {
	out := make([]Condition, 0, len(l.entries))
	for _, e := range l.entries {
		out = append(out, e.Condition)
	}
	return out
}

// Weight returns the severity weight of s and whether s is known.
func (l *Lexicon) Weight(s Symptom) (float64, bool) {
	w, ok := l.weights[s]
	return w, ok
}

// IsSymptom reports whether s is a known label.
func (l *Lexicon) IsSymptom(s Symptom) bool {
	_, ok := l.weights[s]
	return ok
}

// IsCondition reports whether c is a known condition.
func (l *Lexicon) IsCondition(c Condition) bool {
	_, ok := l.index[c]
	return ok
}

// Cluster returns the full signature of c: primary symptoms followed by
// follow-up symptoms, de-duplicated. The slice must not be modified.
func (l *Lexicon) Cluster(c Condition) []Symptom {
	return l.clusters[c]
}

// FollowUps returns the follow-up symptoms of c in question order.
func (l *Lexicon) FollowUps(c Condition) []Symptom {
	i, ok := l.index[c]
	if !ok {
		return nil
	}
	return l.entries[i].FollowUps
}

// Order returns the table position of c, or -1 when unknown.
func (l *Lexicon) Order(c Condition) int {
	i, ok := l.index[c]
	if !ok {
		return -1
	}
	return i
}

func union(a, b []Symptom) []Symptom {
	seen := make(map[Symptom]struct{}, len(a)+len(b))
	out := make([]Symptom, 0, len(a)+len(b))
	for _, list := range [][]Symptom{a, b} {
		for _, s := range list {
			if _, ok := seen[s]; ok {
				continue
			}
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}
	return out
}
