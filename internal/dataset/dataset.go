// Package dataset holds the symptom→condition reference rows used for the
// simple lookup and for condition details in the final analysis.
package dataset

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Skufu/GoSymptom/internal/lexicon"
)

// ErrUnknownLabel is returned when a row names a symptom or condition the
// lexicon does not know.
var ErrUnknownLabel = errors.New("unknown dataset label")

// ErrDuplicateRow is returned when a (symptom, condition) pair appears twice.
var ErrDuplicateRow = errors.New("duplicate dataset row")

//go:embed data/symptoms.csv
var seedCSV []byte

// Row is one symptom→condition association.
type Row struct {
	Symptom        lexicon.Symptom   `json:"symptom"`
	Condition      lexicon.Condition `json:"condition"`
	RiskLevel      string            `json:"risk_level"`
	Recommendation string            `json:"recommendation"`
}

// Store provides dataset rows.
type Store interface {
	Rows(ctx context.Context) ([]Row, error)
}

// MemoryStore serves a fixed row set.
type MemoryStore struct {
	rows []Row
}

// NewMemoryStore returns a store over rows.
func NewMemoryStore(rows []Row) *MemoryStore {
	return &MemoryStore{rows: rows}
}

// Rows implements Store.
func (m *MemoryStore) Rows(context.Context) ([]Row, error) {
	return append([]Row(nil), m.rows...), nil
}

// Seed returns the embedded dataset.
func Seed() ([]Row, error) {
	return ParseCSV(bytes.NewReader(seedCSV))
}

// ParseCSV reads rows with header symptom,disease,risk_level,recommendations.
func ParseCSV(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 4
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	rows := make([]Row, 0, len(records)-1)
	for _, rec := range records[1:] {
		rows = append(rows, Row{
			Symptom:        lexicon.Symptom(normalizeLabel(rec[0])),
			Condition:      lexicon.Condition(normalizeLabel(rec[1])),
			RiskLevel:      strings.ToLower(strings.TrimSpace(rec[2])),
			Recommendation: strings.TrimSpace(rec[3]),
		})
	}
	return rows, nil
}

// Validate checks every row against lex so both sides agree on labels, and
// rejects repeated (symptom, condition) pairs.
func Validate(rows []Row, lex *lexicon.Lexicon) error {
	type pair struct {
		symptom   lexicon.Symptom
		condition lexicon.Condition
	}
	seen := make(map[pair]int, len(rows))
	for i, r := range rows {
		key := pair{r.Symptom, r.Condition}
		if first, ok := seen[key]; ok {
			return fmt.Errorf("%w: rows %d and %d both map %q to %q", ErrDuplicateRow, first, i+1, r.Symptom, r.Condition)
		}
		seen[key] = i + 1
		if !lex.IsSymptom(r.Symptom) {
			return fmt.Errorf("%w: row %d symptom %q", ErrUnknownLabel, i+1, r.Symptom)
		}
		if !lex.IsCondition(r.Condition) {
			return fmt.Errorf("%w: row %d condition %q", ErrUnknownLabel, i+1, r.Condition)
		}
	}
	return nil
}

func normalizeLabel(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
