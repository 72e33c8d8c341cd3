package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skufu/GoSymptom/internal/lexicon"
)

func TestClassifyUnknownWithoutTopCondition(t *testing.T) {
	cl := NewClassifier(DefaultConfig())

	for _, count := range []int{0, 3} {
		got := cl.Classify(count, "", 0.9)
		assert.Equal(t, TierUnknown, got.Tier)
		assert.Zero(t, got.Score)
		assert.Zero(t, got.Confidence)
		assert.NotNil(t, got.Factors)
	}
}

func TestClassify(t *testing.T) {
	cl := NewClassifier(DefaultConfig())

	tests := []struct {
		name        string
		count       int
		top         lexicon.Condition
		probability float64
		wantTier    Tier
		wantScore   float64
	}{
		{"urgent pair", 2, lexicon.HeartAttack, 1.0, TierMedium, 0.67},
		{"urgent many symptoms", 5, lexicon.Stroke, 1.0, TierHigh, 0.85},
		{"mild respiratory", 3, lexicon.CommonCold, 1.0, TierLow, 0.45},
		{"weak match", 1, lexicon.Migraine, 0.5, TierVeryLow, 0.185},
		{"unlisted condition uses default urgency", 1, "sunburn", 1.0, TierLow, 0.41},
		{"severity is capped", 20, lexicon.HeartAttack, 1.0, TierHigh, 0.85},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cl.Classify(tt.count, tt.top, tt.probability)
			assert.Equal(t, tt.wantTier, got.Tier)
			assert.InDelta(t, tt.wantScore, got.Score, 1e-9)
			assert.Equal(t, tt.probability, got.Confidence)
			assert.Len(t, got.Factors, 4)
		})
	}
}

func TestClassifyFactors(t *testing.T) {
	got := NewClassifier(DefaultConfig()).Classify(2, lexicon.Flu, 1)

	assert.InDelta(t, 0.6, got.Factors[FactorConditionUrgency], 1e-9)
	assert.InDelta(t, 0.4, got.Factors[FactorSymptomSeverity], 1e-9)
	assert.InDelta(t, 0.5, got.Factors[FactorSymptomDuration], 1e-9)
	assert.InDelta(t, 0.5, got.Factors[FactorAge], 1e-9)
}

func TestTierForIsMonotonic(t *testing.T) {
	cl := NewClassifier(DefaultConfig())
	rank := map[Tier]int{TierVeryLow: 0, TierLow: 1, TierMedium: 2, TierHigh: 3}

	prev := -1
	for i := 0; i <= 1000; i++ {
		tier := cl.TierFor(float64(i) / 1000)
		r, ok := rank[tier]
		require.True(t, ok, "unexpected tier %q", tier)
		assert.GreaterOrEqual(t, r, prev)
		prev = r
	}

	assert.Equal(t, TierHigh, cl.TierFor(0.8))
	assert.Equal(t, TierMedium, cl.TierFor(0.6))
	assert.Equal(t, TierLow, cl.TierFor(0.3))
	assert.Equal(t, TierVeryLow, cl.TierFor(0.29))
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"weights do not sum to one", func(c *Config) { c.Weights.AgeFactor = 0.2 }},
		{"negative weight", func(c *Config) { c.Weights.AgeFactor = -0.1; c.Weights.ConditionUrgency = 0.6 }},
		{"threshold above one", func(c *Config) { c.Thresholds.High = 1.2 }},
		{"thresholds out of order", func(c *Config) { c.Thresholds.Low = 0.7 }},
		{"urgency out of range", func(c *Config) { c.Urgency[lexicon.Flu] = 2 }},
		{"negative severity step", func(c *Config) { c.SeverityStep = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestConfigValidateConditions(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.ValidateConditions(lexicon.Default()))

	cfg.Urgency["heart_condition"] = 0.9
	assert.ErrorIs(t, cfg.ValidateConditions(lexicon.Default()), ErrInvalidConfig)
}
