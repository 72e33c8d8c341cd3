package dataset

import (
	"cmp"
	"slices"

	"github.com/Skufu/GoSymptom/internal/lexicon"
)

// Match is a condition found by the lookup with the share of reported
// symptoms that point to it.
type Match struct {
	Condition   lexicon.Condition `json:"condition"`
	Probability float64           `json:"probability"`
}

// CheckResult is the outcome of Checker.Check.
type CheckResult struct {
	Conditions []Match `json:"conditions"`
	Confidence float64 `json:"confidence"`
}

// Details describes a condition as recorded in the dataset.
type Details struct {
	RiskLevel      string            `json:"risk_level"`
	Recommendation string            `json:"recommendation"`
	CommonSymptoms []lexicon.Symptom `json:"common_symptoms"`
}

// Checker is a direct symptom→condition lookup over dataset rows. It is
// read-only after construction.
type Checker struct {
	bySymptom   map[lexicon.Symptom][]lexicon.Condition
	byCondition map[lexicon.Condition][]Row
	order       map[lexicon.Condition]int
}

// NewChecker indexes rows. Row order decides ties.
func NewChecker(rows []Row) *Checker {
	c := &Checker{
		bySymptom:   make(map[lexicon.Symptom][]lexicon.Condition),
		byCondition: make(map[lexicon.Condition][]Row),
		order:       make(map[lexicon.Condition]int),
	}
	for _, r := range rows {
		c.bySymptom[r.Symptom] = append(c.bySymptom[r.Symptom], r.Condition)
		c.byCondition[r.Condition] = append(c.byCondition[r.Condition], r)
		if _, ok := c.order[r.Condition]; !ok {
			c.order[r.Condition] = len(c.order)
		}
	}
	return c
}

// Check ranks conditions by the fraction of symptoms associated with them.
func (c *Checker) Check(symptoms []lexicon.Symptom) CheckResult {
	res := CheckResult{Conditions: []Match{}}
	if len(symptoms) == 0 {
		return res
	}

	counts := make(map[lexicon.Condition]int)
	for _, s := range symptoms {
		for _, cond := range c.bySymptom[s] {
			counts[cond]++
		}
	}

	for cond, n := range counts {
		res.Conditions = append(res.Conditions, Match{
			Condition:   cond,
			Probability: float64(n) / float64(len(symptoms)),
		})
	}
	slices.SortFunc(res.Conditions, func(a, b Match) int {
		if d := cmp.Compare(b.Probability, a.Probability); d != 0 {
			return d
		}
		return cmp.Compare(c.order[a.Condition], c.order[b.Condition])
	})

	if len(res.Conditions) > 0 {
		res.Confidence = res.Conditions[0].Probability
	}
	return res
}

// Details returns the dataset entry for cond and whether it exists.
func (c *Checker) Details(cond lexicon.Condition) (Details, bool) {
	rows, ok := c.byCondition[cond]
	if !ok {
		return Details{}, false
	}
	d := Details{
		RiskLevel:      rows[0].RiskLevel,
		Recommendation: rows[0].Recommendation,
	}
	for _, r := range rows {
		d.CommonSymptoms = append(d.CommonSymptoms, r.Symptom)
	}
	return d, true
}
