package recommend

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Skufu/GoSymptom/internal/lexicon"
	"github.com/Skufu/GoSymptom/internal/risk"
)

func seeded() *Generator {
	return NewGenerator(rand.New(rand.NewPCG(1, 2)))
}

func TestGenerateHighRisk(t *testing.T) {
	rec := seeded().Generate(lexicon.HeartAttack, risk.TierHigh)

	assert.Len(t, rec.Specific, 6)
	assert.Equal(t, risk.TierHigh, rec.RiskLevel)
	assert.Contains(t, motivational[risk.TierHigh], rec.Motivational)

	immediate := 0
	for _, s := range rec.Specific {
		for _, a := range actionGroups[risk.TierHigh][0] {
			if s == a {
				immediate++
			}
		}
	}
	assert.Equal(t, 2, immediate)
}

func TestGenerateWithConditionTips(t *testing.T) {
	rec := seeded().Generate(lexicon.Flu, risk.TierMedium)

	assert.Len(t, rec.Specific, 8)
	assert.Len(t, rec.HealthTips, 6)
}

func TestGenerateWithoutCondition(t *testing.T) {
	rec := seeded().Generate("", risk.TierUnknown)

	assert.Empty(t, rec.Specific)
	assert.Len(t, rec.HealthTips, 3)
	assert.Contains(t, motivational[risk.TierLow], rec.Motivational)
}

func TestGenerateIsRepeatableWithSeed(t *testing.T) {
	assert.Equal(t,
		seeded().Generate(lexicon.Anxiety, risk.TierLow),
		seeded().Generate(lexicon.Anxiety, risk.TierLow),
	)
}

func TestFallbackMessage(t *testing.T) {
	rec := Recommendations{Specific: []string{"Call emergency services right away"}, Motivational: "Help is on the way."}

	msg := FallbackMessage(lexicon.HeartAttack, risk.TierHigh, rec)
	assert.Contains(t, msg, "heart attack")
	assert.Contains(t, msg, "immediate medical attention")
	assert.Contains(t, msg, "Call emergency services right away.")
	assert.Contains(t, msg, "Help is on the way.")

	assert.Contains(t, FallbackMessage(lexicon.Flu, risk.TierMedium, Recommendations{}), "healthcare provider")
	assert.Contains(t, FallbackMessage(lexicon.CommonCold, risk.TierVeryLow, Recommendations{}), "manageable")
	assert.Contains(t, FallbackMessage("", risk.TierUnknown, Recommendations{}), "more detail")
	assert.Equal(t, FallbackMessage(lexicon.Flu, risk.TierLow, rec), FallbackMessage(lexicon.Flu, risk.TierLow, rec))
}
