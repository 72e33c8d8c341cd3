// Package analysis wires extraction, scoring and risk classification into a
// single call.
package analysis

import (
	"strings"

	"github.com/Skufu/GoSymptom/internal/extractor"
	"github.com/Skufu/GoSymptom/internal/lexicon"
	"github.com/Skufu/GoSymptom/internal/risk"
	"github.com/Skufu/GoSymptom/internal/scorer"
)

// Result is the outcome of one analysis.
type Result struct {
	DetectedSymptoms  []lexicon.Symptom             `json:"detected_symptoms"`
	Conditions        scorer.Ranking                `json:"potential_conditions"`
	RiskPercentages   map[lexicon.Condition]float64 `json:"risk_percentages"`
	Risk              risk.Assessment               `json:"risk_assessment"`
	FollowUpQuestions []lexicon.Symptom             `json:"follow_up_questions"`
}

// TopCondition returns the best ranked condition, or "" when none matched.
func (r Result) TopCondition() lexicon.Condition {
	top, ok := r.Conditions.Top()
	if !ok {
		return ""
	}
	return top.Condition
}

// Pipeline runs text → symptoms → condition scores → risk tier. It keeps no
// per-call state; concurrent calls are independent.
type Pipeline struct {
	extractor  *extractor.Extractor
	scorer     *scorer.Scorer
	classifier *risk.Classifier
}

// New assembles a pipeline from its stages.
func New(ex *extractor.Extractor, sc *scorer.Scorer, cl *risk.Classifier) *Pipeline {
	return &Pipeline{extractor: ex, scorer: sc, classifier: cl}
}

// NewDefault builds a pipeline over lex with the default matcher and cfg.
func NewDefault(lex *lexicon.Lexicon, cfg risk.Config) *Pipeline {
	return New(extractor.New(lex, nil), scorer.New(lex), risk.NewClassifier(cfg))
}

// Analyze runs the full pipeline over text.
func (p *Pipeline) Analyze(text string) Result {
	symptoms := p.extractor.Extract(text)
	ranking, followUps := p.scorer.Score(symptoms)

	var (
		top         lexicon.Condition
		probability float64
	)
	if best, ok := ranking.Top(); ok {
		top = best.Condition
		probability = p.scorer.MatchProbability(top, symptoms)
	}

	return Result{
		DetectedSymptoms:  symptoms,
		Conditions:        ranking,
		RiskPercentages:   scorer.Percentages(ranking),
		Risk:              p.classifier.Classify(len(symptoms), top, probability),
		FollowUpQuestions: followUps,
	}
}

// Refine analyzes initial symptoms together with the follow-up symptoms the
// user confirmed. The caller owns the accumulated symptom history.
func (p *Pipeline) Refine(initial, confirmed []string) Result {
	all := make([]string, 0, len(initial)+len(confirmed))
	all = append(all, initial...)
	all = append(all, confirmed...)
	return p.Analyze(strings.Join(all, ", "))
}
