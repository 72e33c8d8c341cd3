// Package chat holds the conversational side of the assistant: intent
// detection, bounded message history and the two-step analysis session.
package chat

import (
	"strings"
	"unicode"
)

var (
	symptomKeywords = []string{
		"pain", "ache", "fever", "headache", "nausea", "dizziness",
		"fatigue", "cough", "sore", "swelling", "rash", "bleeding",
	}
	conditionKeywords = []string{
		"sick", "ill", "disease", "infection", "injury", "allergy",
		"asthma", "diabetes", "cancer", "flu", "cold",
	}
	bodyParts = []string{
		"head", "chest", "stomach", "back", "arm", "leg", "throat",
		"nose", "ear", "eye", "heart", "lung",
	}
	healthPhrases = []string{
		"i feel", "i'm feeling", "i have", "i've got", "i'm sick", "i'm ill",
	}
)

// Intent is the outcome of Detector.Detect.
type Intent struct {
	HealthRelated bool     `json:"is_health_related"`
	Keywords      []string `json:"keywords"`
}

// Detector flags messages that talk about health. It only looks at keywords
// and a few fixed phrases.
type Detector struct {
	symptoms   map[string]struct{}
	conditions map[string]struct{}
	bodyParts  map[string]struct{}
}

// NewDetector returns a detector over the built-in keyword lists.
func NewDetector() *Detector {
	return &Detector{
		symptoms:   toSet(symptomKeywords),
		conditions: toSet(conditionKeywords),
		bodyParts:  toSet(bodyParts),
	}
}

// Detect reports whether text is health related and which symptom keywords
// it mentions, including "<body part> <symptom>" pairs such as "chest pain".
// Keywords appear in order of first occurrence.
func (d *Detector) Detect(text string) Intent {
	tokens := tokenize(text)
	intent := Intent{Keywords: []string{}}

	seen := make(map[string]struct{})
	add := func(k string) {
		if _, ok := seen[k]; !ok {
			seen[k] = struct{}{}
			intent.Keywords = append(intent.Keywords, k)
		}
	}

	for i, tok := range tokens {
		if _, ok := d.symptoms[tok]; ok {
			if i > 0 {
				if _, ok := d.bodyParts[tokens[i-1]]; ok {
					add(tokens[i-1] + " " + tok)
				}
			}
			add(tok)
			intent.HealthRelated = true
			continue
		}
		if _, ok := d.conditions[tok]; ok {
			intent.HealthRelated = true
		}
		if _, ok := d.bodyParts[tok]; ok {
			intent.HealthRelated = true
		}
	}

	if !intent.HealthRelated {
		joined := strings.Join(tokens, " ")
		intent.HealthRelated = containsAny(joined, healthPhrases) || d.bodyPartHurts(tokens)
	}
	return intent
}

// bodyPartHurts matches "my <body part> hurts".
func (d *Detector) bodyPartHurts(tokens []string) bool {
	for i := 0; i+2 < len(tokens); i++ {
		if tokens[i] != "my" || tokens[i+2] != "hurts" {
			continue
		}
		if _, ok := d.bodyParts[tokens[i+1]]; ok {
			return true
		}
	}
	return false
}

func tokenize(text string) []string {
	text = strings.ReplaceAll(strings.ToLower(text), "’", "'")
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})
}

func containsAny(text string, phrases []string) bool {
	padded := " " + text + " "
	for _, p := range phrases {
		if strings.Contains(padded, " "+p+" ") {
			return true
		}
	}
	return false
}

func toSet(items []string) map[string]struct{} {
	out := make(map[string]struct{}, len(items))
	for _, it := range items {
		out[it] = struct{}{}
	}
	return out
}
