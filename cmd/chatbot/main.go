package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Skufu/GoSymptom/internal/analysis"
	"github.com/Skufu/GoSymptom/internal/chat"
	"github.com/Skufu/GoSymptom/internal/config"
	"github.com/Skufu/GoSymptom/internal/dataset"
	"github.com/Skufu/GoSymptom/internal/lexicon"
	"github.com/Skufu/GoSymptom/internal/llm"
	"github.com/Skufu/GoSymptom/internal/logger"
	"github.com/Skufu/GoSymptom/internal/recommend"
)

var quitWords = map[string]struct{}{"quit": {}, "exit": {}, "bye": {}}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	// Logs go to stderr so they never interleave with the conversation.
	zl := logger.New(cfg.Logging.Level, "console")
	defer func() { _ = zl.Sync() }()

	bot, err := newBot(cfg, zl)
	if err != nil {
		zl.Fatal("startup failed", zap.Error(err))
	}
	bot.run(context.Background(), os.Stdin, os.Stdout)
}

type bot struct {
	pipeline    *analysis.Pipeline
	checker     *dataset.Checker
	recs        *recommend.Generator
	responder   *llm.Responder
	detector    *chat.Detector
	historySize int
	timeout     time.Duration
}

func newBot(cfg *config.Config, zl *zap.Logger) (*bot, error) {
	lex := lexicon.Default()
	if err := cfg.Risk.ValidateConditions(lex); err != nil {
		return nil, err
	}
	rows, err := dataset.Seed()
	if err != nil {
		return nil, err
	}

	var gen llm.Generator
	if cfg.LLM.APIKey != "" {
		client, err := llm.NewGeminiClient(llm.Config{
			APIKey:   cfg.LLM.APIKey,
			Endpoint: cfg.LLM.Endpoint,
			Model:    cfg.LLM.Model,
			Timeout:  time.Duration(cfg.LLM.Timeout) * time.Second,
		})
		if err != nil {
			return nil, err
		}
		gen = client
	}

	return &bot{
		pipeline:    analysis.NewDefault(lex, cfg.Risk),
		checker:     dataset.NewChecker(rows),
		recs:        recommend.NewGenerator(nil),
		responder:   llm.NewResponder(gen, zl),
		detector:    chat.NewDetector(),
		historySize: cfg.Chat.HistorySize,
		timeout:     time.Duration(cfg.LLM.Timeout+5) * time.Second,
	}, nil
}

func (b *bot) run(ctx context.Context, in io.Reader, out io.Writer) {
	scanner := bufio.NewScanner(in)
	fmt.Fprintln(out, "Health assistant. Describe how you feel, or type 'quit' to exit.")
	fmt.Fprintln(out, "This is not medical advice. In an emergency, call your local emergency number.")
	session := chat.NewSession(b.pipeline, b.historySize)

	for {
		line, ok := prompt(scanner, out, "\nYou: ")
		if !ok {
			return
		}
		if _, quit := quitWords[strings.ToLower(line)]; quit {
			fmt.Fprintln(out, "Take care!")
			return
		}
		if line == "" {
			continue
		}

		if !b.detector.Detect(line).HealthRelated {
			history := session.History().Messages()
			reply := b.reply(ctx, func(ctx context.Context) string {
				return b.responder.GeneralReply(ctx, line, history)
			})
			session.History().Add(chat.RoleUser, line)
			session.History().Add(chat.RoleAssistant, reply)
			fmt.Fprintf(out, "Assistant: %s\n", reply)
			continue
		}
		if !b.consult(ctx, scanner, out, session, line) {
			return
		}
	}
}

// consult runs one two-step analysis within session. It returns false once
// input is exhausted.
func (b *bot) consult(ctx context.Context, scanner *bufio.Scanner, out io.Writer, session *chat.Session, text string) bool {
	history := session.History().Messages()
	res := session.Start(text)
	printAnalysis(out, res)

	if len(res.FollowUpQuestions) > 0 {
		fmt.Fprintln(out, "\nDo you also have any of these symptoms?")
		for i, s := range res.FollowUpQuestions {
			fmt.Fprintf(out, "  %d. %s\n", i+1, s)
		}

		for {
			line, ok := prompt(scanner, out, "Enter numbers separated by commas, or press Enter to skip: ")
			if !ok {
				return false
			}
			choices, err := parseChoices(line)
			if err == nil {
				var confirmed []lexicon.Symptom
				if confirmed, err = session.Select(choices); err == nil && len(confirmed) > 0 {
					res, err = session.Confirm(confirmed)
				}
			}
			if err != nil {
				fmt.Fprintf(out, "Sorry, %v. Please try again.\n", err)
				continue
			}
			break
		}
	}

	top := res.TopCondition()
	rec := b.recs.Generate(top, res.Risk.Tier)
	printFinal(out, res, b.checker, rec)

	reports := strings.Join(session.Reports(), ", ")
	reply := b.reply(ctx, func(ctx context.Context) string {
		return b.responder.HealthReply(ctx, reports, res, rec, history)
	})
	session.History().Add(chat.RoleUser, reports)
	session.History().Add(chat.RoleAssistant, reply)
	fmt.Fprintf(out, "\nAssistant: %s\n", reply)
	return true
}

func (b *bot) reply(ctx context.Context, fn func(context.Context) string) string {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()
	return fn(ctx)
}

func prompt(scanner *bufio.Scanner, out io.Writer, label string) (string, bool) {
	fmt.Fprint(out, label)
	if !scanner.Scan() {
		return "", false
	}
	return strings.TrimSpace(scanner.Text()), true
}

func parseChoices(line string) ([]int, error) {
	var out []int
	for _, f := range strings.FieldsFunc(line, func(r rune) bool { return r == ',' || r == ' ' }) {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("%q is not a number", f)
		}
		out = append(out, n)
	}
	return out, nil
}

func printAnalysis(out io.Writer, res analysis.Result) {
	if len(res.DetectedSymptoms) == 0 {
		fmt.Fprintln(out, "\nI couldn't recognise any specific symptoms.")
		return
	}

	names := make([]string, len(res.DetectedSymptoms))
	for i, s := range res.DetectedSymptoms {
		names[i] = string(s)
	}
	fmt.Fprintf(out, "\nDetected symptoms: %s\n", strings.Join(names, ", "))

	fmt.Fprintln(out, "Possible conditions:")
	for _, cs := range res.Conditions {
		fmt.Fprintf(out, "  - %s: %.1f%%\n", cs.Condition, res.RiskPercentages[cs.Condition])
	}
}

func printFinal(out io.Writer, res analysis.Result, checker *dataset.Checker, rec recommend.Recommendations) {
	fmt.Fprintf(out, "\nRisk level: %s (score %.2f, confidence %.0f%%)\n",
		res.Risk.Tier, res.Risk.Score, res.Risk.Confidence*100)

	if d, ok := checker.Details(res.TopCondition()); ok && d.Recommendation != "" {
		fmt.Fprintf(out, "About %s: %s\n", res.TopCondition(), d.Recommendation)
	}
	if len(rec.Specific) > 0 {
		fmt.Fprintln(out, "Recommendations:")
		for _, s := range rec.Specific {
			fmt.Fprintf(out, "  - %s\n", s)
		}
	}
	if rec.Motivational != "" {
		fmt.Fprintln(out, rec.Motivational)
	}
}
