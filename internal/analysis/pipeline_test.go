package analysis

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skufu/GoSymptom/internal/lexicon"
	"github.com/Skufu/GoSymptom/internal/risk"
)

func newPipeline() *Pipeline {
	return NewDefault(lexicon.Default(), risk.DefaultConfig())
}

func TestAnalyzeRespiratoryComplaint(t *testing.T) {
	res := newPipeline().Analyze("I have a headache, cough, and feel very fatigued")

	assert.Subset(t, res.DetectedSymptoms, []lexicon.Symptom{lexicon.Headache, lexicon.Cough, lexicon.Fatigue})

	scores := res.Conditions.Map()
	require.Contains(t, scores, lexicon.Flu)
	require.Contains(t, scores, lexicon.CommonCold)
	assert.NotContains(t, scores, lexicon.HeartAttack)
	assert.Equal(t, lexicon.CommonCold, res.TopCondition())
	assert.Equal(t, risk.TierLow, res.Risk.Tier)
	assert.NotEmpty(t, res.FollowUpQuestions)
}

func TestAnalyzeCardiacComplaint(t *testing.T) {
	res := newPipeline().Analyze("severe chest pain and shortness of breath")

	assert.Contains(t, []lexicon.Condition{lexicon.HeartAttack, lexicon.Anxiety}, res.TopCondition())
	assert.Contains(t, []risk.Tier{risk.TierHigh, risk.TierMedium}, res.Risk.Tier)
	assert.InDelta(t, 1.0, res.Risk.Confidence, 1e-9)
}

func TestAnalyzeEmptyInput(t *testing.T) {
	res := newPipeline().Analyze("")

	assert.Empty(t, res.DetectedSymptoms)
	assert.Empty(t, res.Conditions)
	assert.Empty(t, res.RiskPercentages)
	assert.Empty(t, res.FollowUpQuestions)
	assert.Equal(t, risk.TierUnknown, res.Risk.Tier)
	assert.Equal(t, lexicon.Condition(""), res.TopCondition())
}

func TestAnalyzeIsDeterministic(t *testing.T) {
	p := newPipeline()
	text := "dizzy, nausea and a headache with sensitivity to light"

	assert.Equal(t, p.Analyze(text), p.Analyze(text))
}

func TestRefineRaisesConfirmedCondition(t *testing.T) {
	p := newPipeline()

	initial := p.Analyze("fever, cough")
	refined := p.Refine([]string{"fever", "cough"}, []string{"chills", "sweating"})

	before := initial.Conditions.Map()[lexicon.Flu]
	after := refined.Conditions.Map()[lexicon.Flu]
	assert.Greater(t, after, before)
	assert.Equal(t, lexicon.Flu, refined.TopCondition())
	assert.NotContains(t, refined.FollowUpQuestions, lexicon.Chills)
}

func TestAnalyzeConcurrentCallsAreIndependent(t *testing.T) {
	p := newPipeline()
	inputs := []string{
		"severe chest pain and shortness of breath",
		"vomiting and diarrhea since last night",
		"",
		"rash and swelling on my arm",
	}
	want := make([]Result, len(inputs))
	for i, in := range inputs {
		want[i] = p.Analyze(in)
	}

	var wg sync.WaitGroup
	for n := 0; n < 20; n++ {
		for i, in := range inputs {
			wg.Add(1)
			go func(i int, in string) {
				defer wg.Done()
				assert.Equal(t, want[i], p.Analyze(in))
			}(i, in)
		}
	}
	wg.Wait()
}

func TestPercentagesMatchRanking(t *testing.T) {
	res := newPipeline().Analyze("vomiting and diarrhea with abdominal pain")

	require.NotEmpty(t, res.Conditions)
	assert.Len(t, res.RiskPercentages, len(res.Conditions))

	total := 0.0
	for _, v := range res.RiskPercentages {
		total += v
	}
	assert.InDelta(t, 100.0, total, 1e-9)
}
