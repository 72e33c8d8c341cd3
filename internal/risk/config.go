package risk

import (
	"errors"
	"fmt"
	"math"

	"github.com/Skufu/GoSymptom/internal/lexicon"
)

// ErrInvalidConfig is returned by Config.Validate.
var ErrInvalidConfig = errors.New("invalid risk configuration")

const weightTolerance = 1e-9

// Weights are the factor weights of the composite score. They must sum to 1.
type Weights struct {
	ConditionUrgency float64 `mapstructure:"condition_urgency" json:"condition_urgency"`
	SymptomSeverity  float64 `mapstructure:"symptom_severity" json:"symptom_severity"`
	SymptomDuration  float64 `mapstructure:"symptom_duration" json:"symptom_duration"`
	AgeFactor        float64 `mapstructure:"age_factor" json:"age_factor"`
}

// Sum returns the total of all weights.
func (w Weights) Sum() float64 {
	return w.ConditionUrgency + w.SymptomSeverity + w.SymptomDuration + w.AgeFactor
}

// Thresholds are the lower bounds of each tier, checked high to low.
type Thresholds struct {
	High   float64 `mapstructure:"high" json:"high"`
	Medium float64 `mapstructure:"medium" json:"medium"`
	Low    float64 `mapstructure:"low" json:"low"`
}

// Config holds every tunable of the classifier.
type Config struct {
	Weights    Weights    `mapstructure:"weights"`
	Thresholds Thresholds `mapstructure:"thresholds"`

	// SeverityStep is the severity added per reported symptom, capped at 1.
	SeverityStep float64 `mapstructure:"severity_step"`
	// Duration and age have no input yet; these constants stand in for them.
	DurationPlaceholder float64 `mapstructure:"duration_placeholder"`
	AgePlaceholder      float64 `mapstructure:"age_placeholder"`

	DefaultUrgency float64                       `mapstructure:"default_urgency"`
	Urgency        map[lexicon.Condition]float64 `mapstructure:"urgency"`
}

// DefaultConfig returns the stock weights, thresholds and urgency table.
func DefaultConfig() Config {
	return Config{
		Weights: Weights{
			ConditionUrgency: 0.4,
			SymptomSeverity:  0.3,
			SymptomDuration:  0.2,
			AgeFactor:        0.1,
		},
		Thresholds: Thresholds{
			High:   0.8,
			Medium: 0.6,
			Low:    0.3,
		},
		SeverityStep:        0.2,
		DurationPlaceholder: 0.5,
		AgePlaceholder:      0.5,
		DefaultUrgency:      0.5,
		Urgency: map[lexicon.Condition]float64{
			lexicon.HeartAttack:      1.0,
			lexicon.Stroke:           1.0,
			lexicon.AllergicReaction: 0.8,
			lexicon.FoodPoisoning:    0.6,
			lexicon.Flu:              0.6,
			lexicon.Dehydration:      0.5,
			lexicon.Anxiety:          0.5,
			lexicon.Migraine:         0.4,
			lexicon.CommonCold:       0.3,
		},
	}
}

// Validate reports out-of-range values. It runs once at startup; Classify
// does not re-check.
func (c Config) Validate() error {
	unit := map[string]float64{
		"weights.condition_urgency": c.Weights.ConditionUrgency,
		"weights.symptom_severity":  c.Weights.SymptomSeverity,
		"weights.symptom_duration":  c.Weights.SymptomDuration,
		"weights.age_factor":        c.Weights.AgeFactor,
		"thresholds.high":           c.Thresholds.High,
		"thresholds.medium":         c.Thresholds.Medium,
		"thresholds.low":            c.Thresholds.Low,
		"severity_step":             c.SeverityStep,
		"duration_placeholder":      c.DurationPlaceholder,
		"age_placeholder":           c.AgePlaceholder,
		"default_urgency":           c.DefaultUrgency,
	}
	for name, v := range unit {
		if v < 0 || v > 1 || math.IsNaN(v) {
			return fmt.Errorf("%w: %s=%v outside [0,1]", ErrInvalidConfig, name, v)
		}
	}
	if sum := c.Weights.Sum(); math.Abs(sum-1) > weightTolerance {
		return fmt.Errorf("%w: weights sum to %v, want 1", ErrInvalidConfig, sum)
	}
	if !(c.Thresholds.High >= c.Thresholds.Medium && c.Thresholds.Medium >= c.Thresholds.Low) {
		return fmt.Errorf("%w: thresholds must satisfy high >= medium >= low", ErrInvalidConfig)
	}
	for cond, v := range c.Urgency {
		if v < 0 || v > 1 || math.IsNaN(v) {
			return fmt.Errorf("%w: urgency %q=%v outside [0,1]", ErrInvalidConfig, cond, v)
		}
	}
	return nil
}

// ValidateConditions rejects urgency entries naming conditions unknown to lex.
func (c Config) ValidateConditions(lex *lexicon.Lexicon) error {
	for cond := range c.Urgency {
		if !lex.IsCondition(cond) {
			return fmt.Errorf("%w: urgency for unknown condition %q", ErrInvalidConfig, cond)
		}
	}
	return nil
}
