package chat

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/Skufu/GoSymptom/internal/analysis"
	"github.com/Skufu/GoSymptom/internal/lexicon"
)

var (
	// ErrNoAnalysis is returned when follow-ups are confirmed before any
	// initial analysis ran.
	ErrNoAnalysis = errors.New("no initial analysis in session")
	// ErrInvalidSelection is returned for follow-up choices that were not
	// offered.
	ErrInvalidSelection = errors.New("invalid follow-up selection")
)

// Session runs the two-step flow: an initial analysis over free text, then a
// refined analysis once the user confirms some of the offered follow-up
// symptoms. The session, not the pipeline, accumulates what the user said.
type Session struct {
	ID string

	pipeline *analysis.Pipeline
	history  *History

	mu      sync.Mutex
	reports []string
	offered []lexicon.Symptom
}

// NewSession starts an empty session with a fresh id.
func NewSession(p *analysis.Pipeline, historySize int) *Session {
	return &Session{
		ID:       uuid.NewString(),
		pipeline: p,
		history:  NewHistory(historySize),
	}
}

// History returns the session's message history.
func (s *Session) History() *History {
	return s.history
}

// Start analyzes text and resets the reports and offered follow-ups. History
// is kept across analyses; callers record turns with History().Add. The
// returned follow-up questions are the ones Confirm accepts.
func (s *Session) Start(text string) analysis.Result {
	res := s.pipeline.Analyze(text)

	s.mu.Lock()
	s.reports = []string{text}
	s.offered = res.FollowUpQuestions
	s.mu.Unlock()
	return res
}

// Confirm refines the analysis with the follow-up symptoms the user
// confirmed. Confirmed symptoms join the session's reports, so Confirm may be
// called again with the new follow-up questions.
func (s *Session) Confirm(confirmed []lexicon.Symptom) (analysis.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.reports) == 0 {
		return analysis.Result{}, ErrNoAnalysis
	}
	extra := make([]string, 0, len(confirmed))
	for _, c := range confirmed {
		if !slices.Contains(s.offered, c) {
			return analysis.Result{}, fmt.Errorf("%w: %q was not offered", ErrInvalidSelection, c)
		}
		extra = append(extra, string(c))
	}

	res := s.pipeline.Refine(s.reports, extra)
	s.reports = append(s.reports, extra...)
	s.offered = res.FollowUpQuestions
	return res, nil
}

// Select maps 1-based choices onto the currently offered follow-ups.
func (s *Session) Select(choices []int) ([]lexicon.Symptom, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]lexicon.Symptom, 0, len(choices))
	for _, n := range choices {
		if n < 1 || n > len(s.offered) {
			return nil, fmt.Errorf("%w: %d out of range 1-%d", ErrInvalidSelection, n, len(s.offered))
		}
		if sym := s.offered[n-1]; !slices.Contains(out, sym) {
			out = append(out, sym)
		}
	}
	return out, nil
}

// Reports returns everything the user reported so far.
func (s *Session) Reports() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.reports)
}
