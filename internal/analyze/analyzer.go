// Package analyze runs NLP tasks and LLM summarization over extracted text.
package analyze

import (
	"context"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/seyi-adel/docintake/internal/llm"
)

// Entity is one named entity with its model label.
type Entity struct {
	Text  string
	Label string
}

// Result carries entities and keywords in model order (no dedup here;
// that is a presentation concern) plus the LLM summary.
type Result struct {
	Entities []Entity
	Keywords []string
	Summary  string
	Points   []string
}

type Analyzer struct {
	nlp        Tagger
	summarizer llm.Summarizer
	answerer   llm.Answerer
	maxChars   int
	logger     *slog.Logger
}

// NewAnalyzer wires the NLP and LLM capabilities. maxChars bounds the text
// window handed to the LLM on every call, to respect its context limits.
func NewAnalyzer(nlp Tagger, summarizer llm.Summarizer, answerer llm.Answerer, maxChars int, logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	if maxChars <= 0 {
		maxChars = 15000
	}
	return &Analyzer{
		nlp:        nlp,
		summarizer: summarizer,
		answerer:   answerer,
		maxChars:   maxChars,
		logger:     logger,
	}
}

// Analyze extracts entities and keywords and requests a summary. Summary
// failures are contained as a placeholder string and never propagate; only
// an NLP failure is an error.
func (a *Analyzer) Analyze(ctx context.Context, text string) (Result, error) {
	entities, keywords, err := a.nlp.Tag(text)
	if err != nil {
		return Result{}, fmt.Errorf("analyze text: %w", err)
	}

	res := Result{Entities: entities, Keywords: keywords}

	window := truncateRunes(text, a.maxChars)
	sum, err := a.summarizer.Summarize(ctx, window)
	if err != nil {
		a.logger.Warn("summarization failed", "error", err)
		res.Summary = fmt.Sprintf("Summary unavailable: %v", err)
		return res, nil
	}
	res.Summary = sum.Text
	res.Points = sum.Points
	return res, nil
}

// Answer asks a free-form question over the same bounded text window.
// Failures come back as placeholder text, matching the summary policy.
func (a *Analyzer) Answer(ctx context.Context, question, text string, history []llm.Message) string {
	window := truncateRunes(text, a.maxChars)
	answer, err := a.answerer.Answer(ctx, question, window, history)
	if err != nil {
		a.logger.Warn("answer failed", "error", err)
		return fmt.Sprintf("Answer unavailable: %v", err)
	}
	return answer
}

// truncateRunes cuts at a rune boundary so the window never ends mid-sequence.
func truncateRunes(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max])
}
