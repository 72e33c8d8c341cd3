// Package risk maps condition scores to a discrete risk tier.
package risk

import (
	"math"

	"github.com/Skufu/GoSymptom/internal/lexicon"
)

// Tier is the discretized risk level.
type Tier string

const (
	TierUnknown Tier = "unknown"
	TierVeryLow Tier = "very_low"
	TierLow     Tier = "low"
	TierMedium  Tier = "medium"
	TierHigh    Tier = "high"
)

// Factor names reported in Assessment.Factors.
const (
	FactorConditionUrgency = "condition_urgency"
	FactorSymptomSeverity  = "symptom_severity"
	FactorSymptomDuration  = "symptom_duration"
	FactorAge              = "age_factor"
)

// Assessment is the classifier output for one analysis.
type Assessment struct {
	Tier       Tier               `json:"risk_level"`
	Score      float64            `json:"score"`
	Confidence float64            `json:"confidence"`
	Factors    map[string]float64 `json:"factors"`
}

// Classifier is a pure function of its Config.
type Classifier struct {
	cfg Config
}

// NewClassifier returns a classifier for cfg. cfg is expected to be validated.
func NewClassifier(cfg Config) *Classifier {
	return &Classifier{cfg: cfg}
}

// Classify scores the top condition. An empty top condition means nothing
// matched and yields TierUnknown with zero score and confidence.
func (c *Classifier) Classify(symptomCount int, top lexicon.Condition, probability float64) Assessment {
	if top == "" {
		return Assessment{Tier: TierUnknown, Factors: map[string]float64{}}
	}

	factors := map[string]float64{
		FactorConditionUrgency: c.urgency(top),
		FactorSymptomSeverity:  c.severity(symptomCount),
		FactorSymptomDuration:  c.cfg.DurationPlaceholder,
		FactorAge:              c.cfg.AgePlaceholder,
	}

	w := c.cfg.Weights
	composite := w.ConditionUrgency*factors[FactorConditionUrgency] +
		w.SymptomSeverity*factors[FactorSymptomSeverity] +
		w.SymptomDuration*factors[FactorSymptomDuration] +
		w.AgeFactor*factors[FactorAge]
	score := math.Min(1, composite*probability)

	return Assessment{
		Tier:       c.TierFor(score),
		Score:      score,
		Confidence: probability,
		Factors:    factors,
	}
}

// TierFor maps a score to a tier; it is non-decreasing in score.
func (c *Classifier) TierFor(score float64) Tier {
	t := c.cfg.Thresholds
	switch {
	case score >= t.High:
		return TierHigh
	case score >= t.Medium:
		return TierMedium
	case score >= t.Low:
		return TierLow
	default:
		return TierVeryLow
	}
}

func (c *Classifier) urgency(cond lexicon.Condition) float64 {
	if u, ok := c.cfg.Urgency[cond]; ok {
		return u
	}
	return c.cfg.DefaultUrgency
}

func (c *Classifier) severity(count int) float64 {
	if count <= 0 {
		return 0
	}
	return math.Min(1, float64(count)*c.cfg.SeverityStep)
}
