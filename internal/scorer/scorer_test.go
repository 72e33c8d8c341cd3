package scorer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skufu/GoSymptom/internal/lexicon"
)

func conditionsOf(r Ranking) []lexicon.Condition {
	out := make([]lexicon.Condition, 0, len(r))
	for _, cs := range r {
		out = append(out, cs.Condition)
	}
	return out
}

func TestScoreEmptyInput(t *testing.T) {
	ranking, followUps := New(lexicon.Default()).Score(nil)

	assert.NotNil(t, ranking)
	assert.Empty(t, ranking)
	assert.NotNil(t, followUps)
	assert.Empty(t, followUps)
}

func TestScoreRespiratorySymptoms(t *testing.T) {
	ranking, followUps := New(lexicon.Default()).Score([]lexicon.Symptom{
		lexicon.Headache, lexicon.Cough, lexicon.Fatigue,
	})

	require.Len(t, ranking, 6)
	assert.Equal(t, []lexicon.Condition{
		lexicon.CommonCold, lexicon.Flu, lexicon.Migraine,
		lexicon.Stroke, lexicon.Anxiety, lexicon.Dehydration,
	}, conditionsOf(ranking))
	assert.InDelta(t, 1.9/8, ranking[0].Score, 1e-9)
	assert.InDelta(t, 1.9/10, ranking[1].Score, 1e-9)
	assert.NotContains(t, ranking.Map(), lexicon.HeartAttack)

	assert.Equal(t, []lexicon.Symptom{
		lexicon.Sneezing, lexicon.RunnyNose, lexicon.Congestion, lexicon.MildFever,
		lexicon.Chills, lexicon.Sweating,
	}, followUps)
}

func TestScoreTieKeepsTableOrder(t *testing.T) {
	ranking, followUps := New(lexicon.Default()).Score([]lexicon.Symptom{
		lexicon.ChestPain, lexicon.ShortnessOfBreath,
	})

	require.GreaterOrEqual(t, len(ranking), 2)
	assert.Equal(t, lexicon.HeartAttack, ranking[0].Condition)
	assert.Equal(t, lexicon.Anxiety, ranking[1].Condition)
	assert.Equal(t, ranking[0].Score, ranking[1].Score)
	assert.Equal(t, lexicon.PainInArms, followUps[0])
	assert.Contains(t, followUps, lexicon.FeelingOfDoom)
}

func TestScoreOmitsNonIntersectingConditions(t *testing.T) {
	lex := lexicon.Default()
	sets := [][]lexicon.Symptom{
		{lexicon.Rash},
		{lexicon.Fever, lexicon.Cough},
		{lexicon.Thirst, lexicon.JointPain},
		{lexicon.Seizures},
	}

	for _, set := range sets {
		ranking, _ := New(lex).Score(set)
		for _, cs := range ranking {
			assert.Greater(t, cs.Score, 0.0)
			assert.Truef(t, intersects(lex.Cluster(cs.Condition), set), "%q scored for %v", cs.Condition, set)
		}
	}
}

func TestScoreDropsUnclusteredSymptoms(t *testing.T) {
	ranking, followUps := New(lexicon.Default()).Score([]lexicon.Symptom{lexicon.JointPain, lexicon.Seizures})

	assert.Empty(t, ranking)
	assert.Empty(t, followUps)
}

func TestFollowUpsSkipReportedSymptoms(t *testing.T) {
	_, followUps := New(lexicon.Default()).Score([]lexicon.Symptom{
		lexicon.Fever, lexicon.Cough, lexicon.Chills,
	})

	assert.NotContains(t, followUps, lexicon.Chills)
	assert.Contains(t, followUps, lexicon.Sweating)
}

func TestFollowUpSymptomsRaiseScore(t *testing.T) {
	sc := New(lexicon.Default())

	initial, _ := sc.Score([]lexicon.Symptom{lexicon.Fever, lexicon.Cough})
	refined, _ := sc.Score([]lexicon.Symptom{lexicon.Fever, lexicon.Cough, lexicon.Chills, lexicon.Sweating})

	assert.InDelta(t, 0.15, initial.Map()[lexicon.Flu], 1e-9)
	assert.InDelta(t, 0.26, refined.Map()[lexicon.Flu], 1e-9)
}

func TestNormalizeByMatchCount(t *testing.T) {
	ranking, _ := New(lexicon.Default()).
		WithNormalization(NormalizeByMatchCount).
		Score([]lexicon.Symptom{lexicon.Fever, lexicon.Cough})

	assert.InDelta(t, 0.75, ranking.Map()[lexicon.Flu], 1e-9)
}

func TestMatchProbability(t *testing.T) {
	sc := New(lexicon.Default())

	assert.InDelta(t, 1.0, sc.MatchProbability(lexicon.HeartAttack, []lexicon.Symptom{lexicon.ChestPain, lexicon.ShortnessOfBreath}), 1e-9)
	assert.InDelta(t, 0.5, sc.MatchProbability(lexicon.Flu, []lexicon.Symptom{lexicon.Fever, lexicon.Rash}), 1e-9)
	assert.Zero(t, sc.MatchProbability(lexicon.Flu, nil))
}

func TestPercentages(t *testing.T) {
	t.Run("sums to one hundred", func(t *testing.T) {
		ranking, _ := New(lexicon.Default()).Score([]lexicon.Symptom{
			lexicon.Headache, lexicon.Nausea, lexicon.Dizziness,
		})
		require.NotEmpty(t, ranking)

		total := 0.0
		for _, v := range Percentages(ranking) {
			total += v
		}
		assert.InDelta(t, 100.0, total, 1e-9)
	})

	t.Run("empty ranking", func(t *testing.T) {
		got := Percentages(Ranking{})
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("zero sum", func(t *testing.T) {
		got := Percentages(Ranking{{Condition: lexicon.Flu, Score: 0}})
		assert.Empty(t, got)
	})

	t.Run("shares", func(t *testing.T) {
		got := Percentages(Ranking{
			{Condition: lexicon.Flu, Score: 0.3},
			{Condition: lexicon.CommonCold, Score: 0.1},
		})
		assert.InDelta(t, 75.0, got[lexicon.Flu], 1e-9)
		assert.InDelta(t, 25.0, got[lexicon.CommonCold], 1e-9)
	})
}

func TestRankingTop(t *testing.T) {
	_, ok := Ranking{}.Top()
	assert.False(t, ok)

	top, ok := Ranking{{Condition: lexicon.Flu, Score: 0.2}}.Top()
	assert.True(t, ok)
	assert.Equal(t, lexicon.Flu, top.Condition)
}

func intersects(cluster, set []lexicon.Symptom) bool {
	for _, a := range cluster {
		for _, b := range set {
			if a == b {
				return true
			}
		}
	}
	return false
}
