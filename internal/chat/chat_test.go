package chat

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skufu/GoSymptom/internal/analysis"
	"github.com/Skufu/GoSymptom/internal/lexicon"
	"github.com/Skufu/GoSymptom/internal/risk"
)

func TestDetect(t *testing.T) {
	d := NewDetector()

	tests := []struct {
		name     string
		text     string
		health   bool
		keywords []string
	}{
		{"compound symptom", "I have chest pain", true, []string{"chest pain", "pain"}},
		{"plain keywords", "Fever and a bad cough, fever again", true, []string{"fever", "cough"}},
		{"condition word", "I think it's the flu", true, []string{}},
		{"phrase", "I feel terrible today", true, []string{}},
		{"curly apostrophe", "I’m ill", true, []string{}},
		{"small talk", "what's the weather like?", false, []string{}},
		{"empty", "", false, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := d.Detect(tt.text)
			assert.Equal(t, tt.health, got.HealthRelated)
			assert.Equal(t, tt.keywords, got.Keywords)
		})
	}
}

func TestDetectBodyPartHurts(t *testing.T) {
	d := &Detector{symptoms: map[string]struct{}{}, conditions: map[string]struct{}{}, bodyParts: toSet([]string{"knee"})}
	assert.True(t, d.bodyPartHurts(tokenize("my knee hurts")))
	assert.False(t, d.bodyPartHurts(tokenize("my day hurts")))
}

func TestHistoryEvictsOldest(t *testing.T) {
	h := NewHistory(3)
	for i := 1; i <= 5; i++ {
		h.Add(RoleUser, fmt.Sprint(i))
	}

	msgs := h.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, "3", msgs[0].Text)
	assert.Equal(t, "5", msgs[2].Text)
	assert.Equal(t, 3, h.Len())
}

func TestHistoryMinimumCapacity(t *testing.T) {
	h := NewHistory(0)
	h.Add(RoleUser, "a")
	h.Add(RoleAssistant, "b")

	msgs := h.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, RoleAssistant, msgs[0].Role)
}

func TestHistoryConcurrentAdds(t *testing.T) {
	h := NewHistory(10)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h.Add(RoleUser, "x")
		}()
	}
	wg.Wait()
	assert.Equal(t, 10, h.Len())
}

func newSession() *Session {
	return NewSession(analysis.NewDefault(lexicon.Default(), risk.DefaultConfig()), 5)
}

func TestSessionTwoStepFlow(t *testing.T) {
	s := newSession()
	assert.NotEmpty(t, s.ID)

	initial := s.Start("fever, cough")
	require.Equal(t, lexicon.Flu, initial.TopCondition())
	require.Contains(t, initial.FollowUpQuestions, lexicon.Chills)

	refined, err := s.Confirm([]lexicon.Symptom{lexicon.Chills})
	require.NoError(t, err)
	assert.Greater(t, refined.Conditions.Map()[lexicon.Flu], initial.Conditions.Map()[lexicon.Flu])
	assert.Equal(t, []string{"fever, cough", "chills"}, s.Reports())
}

func TestSessionStartKeepsHistory(t *testing.T) {
	s := newSession()
	s.History().Add(RoleUser, "fever, cough")
	s.History().Add(RoleAssistant, "rest up")

	s.Start("headache")
	assert.Equal(t, []string{"headache"}, s.Reports())
	assert.Equal(t, 2, s.History().Len())
}

func TestSessionConfirmErrors(t *testing.T) {
	s := newSession()

	_, err := s.Confirm([]lexicon.Symptom{lexicon.Chills})
	assert.ErrorIs(t, err, ErrNoAnalysis)

	s.Start("fever, cough")
	_, err = s.Confirm([]lexicon.Symptom{lexicon.Hives})
	assert.ErrorIs(t, err, ErrInvalidSelection)
}

func TestSessionSelect(t *testing.T) {
	s := newSession()
	res := s.Start("fever, cough")
	require.NotEmpty(t, res.FollowUpQuestions)

	got, err := s.Select([]int{1, 1})
	require.NoError(t, err)
	assert.Equal(t, []lexicon.Symptom{res.FollowUpQuestions[0]}, got)

	_, err = s.Select([]int{0})
	assert.ErrorIs(t, err, ErrInvalidSelection)
	_, err = s.Select([]int{len(res.FollowUpQuestions) + 1})
	assert.ErrorIs(t, err, ErrInvalidSelection)
}
