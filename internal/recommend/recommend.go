// Package recommend turns an analysis outcome into advice text. Selection is
// randomized for display variety; the analysis pipeline never depends on it.
package recommend

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/Skufu/GoSymptom/internal/lexicon"
	"github.com/Skufu/GoSymptom/internal/risk"
)

// Recommendations is the advice shown with an analysis.
type Recommendations struct {
	Specific     []string  `json:"specific_recommendations"`
	Motivational string    `json:"motivational_message"`
	HealthTips   []string  `json:"health_tips"`
	RiskLevel    risk.Tier `json:"risk_level"`
}

// Generator picks advice from static templates.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewGenerator returns a generator drawing from rng. Pass a seeded source in
// tests for repeatable output.
func NewGenerator(rng *rand.Rand) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Generator{rng: rng}
}

// Generate builds recommendations for the top condition and tier. An empty
// condition yields general tips only.
func (g *Generator) Generate(top lexicon.Condition, tier risk.Tier) Recommendations {
	g.mu.Lock()
	defer g.mu.Unlock()

	key := tierKey(tier)
	rec := Recommendations{
		Specific:     []string{},
		Motivational: g.pickOne(motivational[key]),
		RiskLevel:    tier,
	}

	if top == "" {
		rec.HealthTips = g.sample(generalTips, 3)
		return rec
	}

	groups := actionGroups[key]
	rec.Specific = append(rec.Specific, g.sample(groups[0], 2)...)
	rec.Specific = append(rec.Specific, g.sample(groups[1], 2)...)
	rec.Specific = append(rec.Specific, g.sample(conditionTips[top], 2)...)
	rec.Specific = append(rec.Specific, g.sample(generalTips, 2)...)
	g.rng.Shuffle(len(rec.Specific), func(i, j int) {
		rec.Specific[i], rec.Specific[j] = rec.Specific[j], rec.Specific[i]
	})

	rec.HealthTips = append(g.sample(conditionTips[top], 3), g.sample(generalTips, 3)...)
	return rec
}

func (g *Generator) pickOne(items []string) string {
	if len(items) == 0 {
		return ""
	}
	return items[g.rng.IntN(len(items))]
}

func (g *Generator) sample(items []string, n int) []string {
	if n > len(items) {
		n = len(items)
	}
	out := make([]string, 0, n)
	for _, i := range g.rng.Perm(len(items))[:n] {
		out = append(out, items[i])
	}
	return out
}

// FallbackMessage is the deterministic reply used when text generation is
// unavailable. It depends only on its arguments.
func FallbackMessage(top lexicon.Condition, tier risk.Tier, rec Recommendations) string {
	if top == "" {
		return "Thank you for sharing how you feel. I couldn't match your description to a known condition; " +
			"could you describe your symptoms in a little more detail?"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Based on your symptoms, it appears you may have %s. ", top)
	switch tier {
	case risk.TierHigh:
		b.WriteString("This condition requires immediate medical attention. ")
	case risk.TierMedium:
		b.WriteString("It's recommended to consult with a healthcare provider. ")
	default:
		b.WriteString("This condition is generally manageable with proper care. ")
	}
	if len(rec.Specific) > 0 {
		b.WriteString(rec.Specific[0])
		b.WriteString(".")
	}
	if rec.Motivational != "" {
		b.WriteString("\n\n")
		b.WriteString(rec.Motivational)
	}
	return b.String()
}
