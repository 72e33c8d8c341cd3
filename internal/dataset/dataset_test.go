package dataset

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skufu/GoSymptom/internal/lexicon"
)

func TestSeedAgreesWithLexicon(t *testing.T) {
	rows, err := Seed()
	require.NoError(t, err)
	require.NotEmpty(t, rows)

	assert.NoError(t, Validate(rows, lexicon.Default()))
}

func TestParseCSV(t *testing.T) {
	rows, err := ParseCSV(strings.NewReader("symptom,disease,risk_level,recommendations\n" +
		"  Chest   Pain ,Heart Attack, HIGH ,Call for help.\n"))
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, Row{
		Symptom:        lexicon.ChestPain,
		Condition:      lexicon.HeartAttack,
		RiskLevel:      "high",
		Recommendation: "Call for help.",
	}, rows[0])
}

func TestParseCSVRejectsShortRecords(t *testing.T) {
	_, err := ParseCSV(strings.NewReader("symptom,disease,risk_level,recommendations\nfever,flu\n"))
	assert.Error(t, err)
}

func TestValidateUnknownLabels(t *testing.T) {
	lex := lexicon.Default()

	err := Validate([]Row{{Symptom: "hiccups", Condition: lexicon.Flu}}, lex)
	assert.ErrorIs(t, err, ErrUnknownLabel)

	err = Validate([]Row{{Symptom: lexicon.Fever, Condition: "cold"}}, lex)
	assert.ErrorIs(t, err, ErrUnknownLabel)
}

func TestValidateRejectsDuplicateRows(t *testing.T) {
	rows := []Row{
		{Symptom: lexicon.Fever, Condition: lexicon.Flu},
		{Symptom: lexicon.Cough, Condition: lexicon.Flu},
		{Symptom: lexicon.Fever, Condition: lexicon.Flu},
	}

	err := Validate(rows, lexicon.Default())
	assert.ErrorIs(t, err, ErrDuplicateRow)
	assert.Contains(t, err.Error(), "rows 1 and 3")

	assert.NoError(t, Validate(rows[:2], lexicon.Default()))
}

func TestParseCSVDuplicateLineFailsValidation(t *testing.T) {
	rows, err := ParseCSV(strings.NewReader("symptom,disease,risk_level,recommendations\n" +
		"fever,flu,medium,Rest.\n" +
		"Fever,Flu,medium,Rest.\n"))
	require.NoError(t, err)

	assert.ErrorIs(t, Validate(rows, lexicon.Default()), ErrDuplicateRow)
}

func TestCheckerCheck(t *testing.T) {
	rows, err := Seed()
	require.NoError(t, err)
	checker := NewChecker(rows)

	res := checker.Check([]lexicon.Symptom{lexicon.Cough, lexicon.SoreThroat})
	require.NotEmpty(t, res.Conditions)
	assert.Equal(t, lexicon.CommonCold, res.Conditions[0].Condition)
	assert.InDelta(t, 1.0, res.Conditions[0].Probability, 1e-9)
	assert.InDelta(t, 1.0, res.Confidence, 1e-9)
	assert.Equal(t, lexicon.Flu, res.Conditions[1].Condition)
	assert.InDelta(t, 0.5, res.Conditions[1].Probability, 1e-9)
}

func TestCheckerCheckEmpty(t *testing.T) {
	checker := NewChecker(nil)

	res := checker.Check(nil)
	assert.Empty(t, res.Conditions)
	assert.Zero(t, res.Confidence)

	res = checker.Check([]lexicon.Symptom{lexicon.Fever})
	assert.Empty(t, res.Conditions)
}

func TestCheckerDetails(t *testing.T) {
	rows, err := Seed()
	require.NoError(t, err)
	checker := NewChecker(rows)

	d, ok := checker.Details(lexicon.Stroke)
	require.True(t, ok)
	assert.Equal(t, "high", d.RiskLevel)
	assert.Contains(t, d.CommonSymptoms, lexicon.Numbness)

	_, ok = checker.Details("scurvy")
	assert.False(t, ok)
}

func TestMemoryStore(t *testing.T) {
	rows := []Row{{Symptom: lexicon.Fever, Condition: lexicon.Flu}}
	store := NewMemoryStore(rows)

	got, err := store.Rows(context.Background())
	require.NoError(t, err)
	assert.Equal(t, rows, got)

	got[0].Symptom = lexicon.Cough
	again, _ := store.Rows(context.Background())
	assert.Equal(t, lexicon.Fever, again[0].Symptom)
}

func TestConnectRejectsBadURL(t *testing.T) {
	_, err := Connect(context.Background(), "postgres://user@localhost:notaport/db")
	assert.Error(t, err)
}

func TestReferenceFor(t *testing.T) {
	ref, ok := ReferenceFor(lexicon.Flu)
	require.True(t, ok)
	assert.Equal(t, "Moderate", ref.Severity)

	_, ok = ReferenceFor(lexicon.Migraine)
	assert.False(t, ok)
}
