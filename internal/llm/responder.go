package llm

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"

	"go.uber.org/zap"

	"github.com/Skufu/GoSymptom/internal/analysis"
	"github.com/Skufu/GoSymptom/internal/chat"
	"github.com/Skufu/GoSymptom/internal/metrics"
	"github.com/Skufu/GoSymptom/internal/recommend"
)

var (
	greetingReplies = []string{
		"Hello! How can I help you today?",
		"Hi there! I'm here to assist you.",
		"Welcome! How are you feeling today?",
	}
	errorReplies = []string{
		"I'm having trouble processing that right now. Could you please rephrase?",
		"I apologize for the technical difficulty. Could you try explaining your concern again?",
		"I'm experiencing a temporary issue. Please try again in a moment.",
	}
	greetingWords = map[string]struct{}{"hi": {}, "hello": {}, "hey": {}}
)

// Responder writes conversational replies, preferring the text generator and
// falling back to templates built from the analysis when it fails.
type Responder struct {
	gen    Generator
	logger *zap.Logger
}

// NewResponder returns a responder. gen may be nil, in which case every reply
// comes from templates.
func NewResponder(gen Generator, logger *zap.Logger) *Responder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Responder{gen: gen, logger: logger}
}

// HealthReply answers a health-related message using the analysis result.
// history holds the earlier turns of the conversation, oldest first.
func (r *Responder) HealthReply(ctx context.Context, userInput string, res analysis.Result, rec recommend.Recommendations, history []chat.Message) string {
	fallback := recommend.FallbackMessage(res.TopCondition(), res.Risk.Tier, rec)
	if r.gen == nil {
		metrics.LLMRequests.WithLabelValues("skipped").Inc()
		return fallback
	}

	text, err := r.gen.Generate(ctx, healthPrompt(userInput, res, rec, history))
	if err != nil {
		metrics.LLMRequests.WithLabelValues("fallback").Inc()
		r.logger.Warn("text generation failed, using template reply", zap.Error(err))
		return fallback
	}
	metrics.LLMRequests.WithLabelValues("ok").Inc()
	return text
}

// GeneralReply answers a message that is not about symptoms.
func (r *Responder) GeneralReply(ctx context.Context, message string, history []chat.Message) string {
	if isGreeting(message) {
		return pick(greetingReplies)
	}
	if r.gen == nil {
		metrics.LLMRequests.WithLabelValues("skipped").Inc()
		return pick(errorReplies)
	}

	text, err := r.gen.Generate(ctx, generalPrompt(message, history))
	if err != nil {
		metrics.LLMRequests.WithLabelValues("fallback").Inc()
		r.logger.Warn("text generation failed", zap.Error(err))
		return pick(errorReplies)
	}
	metrics.LLMRequests.WithLabelValues("ok").Inc()
	return text
}

func generalPrompt(message string, history []chat.Message) string {
	if len(history) == 0 {
		return message
	}
	return fmt.Sprintf("Conversation so far:\n%s\n\nUser: %s", formatConversation(history), message)
}

func healthPrompt(userInput string, res analysis.Result, rec recommend.Recommendations, history []chat.Message) string {
	conditions := make([]string, 0, len(res.Conditions))
	for _, cs := range res.Conditions {
		conditions = append(conditions, string(cs.Condition))
	}

	var b strings.Builder
	b.WriteString("You are a helpful and empathetic health assistant. A user has described their symptoms and concerns.\n\n")
	if len(history) > 0 {
		fmt.Fprintf(&b, "Conversation so far:\n%s\n\n", formatConversation(history))
	}
	fmt.Fprintf(&b, "User Input: %s\n\n", userInput)
	fmt.Fprintf(&b, "Detected Conditions: %s\n", strings.Join(conditions, ", "))
	fmt.Fprintf(&b, "Risk Level: %s\n\n", res.Risk.Tier)
	fmt.Fprintf(&b, "Recommendations:\n%s\n%s\n\n", strings.Join(rec.Specific, "\n"), rec.Motivational)
	fmt.Fprintf(&b, "Health Tips:\n%s\n\n", strings.Join(rec.HealthTips, "\n"))
	b.WriteString("Please provide a compassionate and informative response that acknowledges the user's concerns, " +
		"summarizes the key findings in simple terms, presents the recommendations supportively, and offers next steps. " +
		"Remind the user this is not a medical diagnosis.")
	return b.String()
}

// formatConversation renders turns as "User: ..." and "Assistant: ..." lines.
func formatConversation(history []chat.Message) string {
	lines := make([]string, 0, len(history))
	for _, m := range history {
		speaker := "User"
		if m.Role == chat.RoleAssistant {
			speaker = "Assistant"
		}
		lines = append(lines, speaker+": "+m.Text)
	}
	return strings.Join(lines, "\n")
}

func isGreeting(message string) bool {
	for _, w := range strings.FieldsFunc(strings.ToLower(message), func(r rune) bool {
		return r < 'a' || r > 'z'
	}) {
		if _, ok := greetingWords[w]; ok {
			return true
		}
	}
	return false
}

func pick(items []string) string {
	return items[rand.IntN(len(items))]
}
