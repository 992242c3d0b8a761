// Package ui is the presentation layer: form state, rendering and the
// interactive terminal loop.
package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"xlsum/internal/domain"
)

const (
	DefaultMaxLength = 150
	MinMaxLength     = 50
	MaxMaxLength     = 500

	defaultLanguage = "en"
	defaultStrategy = domain.StrategyAbstractive

	emptyInputMessage = "Input text is required!"
)

// Engine is the orchestration layer as seen by the presentation layer.
type Engine interface {
	Summarize(ctx context.Context, req domain.Request) (domain.Result, error)
	Languages() []domain.Language
	Strategies() []domain.Strategy
}

// Session holds the current control values and output area.
type Session struct {
	engine Engine
	log    *slog.Logger

	Input          string
	SourceLanguage string
	TargetLanguage string
	Strategy       domain.Strategy
	MaxLength      int

	Candidates []string
	Output     string
	Notice     string
}

func NewSession(engine Engine, log *slog.Logger) *Session {
	return &Session{
		engine:         engine,
		log:            log,
		SourceLanguage: defaultLanguage,
		TargetLanguage: defaultLanguage,
		Strategy:       defaultStrategy,
		MaxLength:      DefaultMaxLength,
	}
}

// Submit runs one summarization with the current values. On failure the
// output area is left as it was.
func (s *Session) Submit(ctx context.Context) error {
	text := strings.TrimSpace(s.Input)
	if text == "" {
		return domain.ErrEmptyInput
	}

	res, err := s.engine.Summarize(ctx, domain.Request{
		Text:           text,
		SourceLanguage: s.SourceLanguage,
		TargetLanguage: s.TargetLanguage,
		Strategy:       s.Strategy,
		MaxLength:      s.MaxLength,
	})
	if err != nil {
		s.log.ErrorContext(ctx, "Failed to summarize text",
			"error", err,
			"sourceLanguage", s.SourceLanguage,
			"targetLanguage", s.TargetLanguage,
			"strategy", s.Strategy,
			"maxLength", s.MaxLength)

		return err
	}

	s.Candidates = res.Candidates
	s.Output = FormatSummaries(res.Candidates)
	s.Notice = ""
	if res.Degraded {
		s.Notice = fmt.Sprintf("Translation %s→%s is unavailable, summaries use the original text.",
			s.SourceLanguage, s.TargetLanguage)
	}

	return nil
}

// Clear empties the input and output areas.
func (s *Session) Clear() {
	s.Input = ""
	s.Candidates = nil
	s.Output = ""
	s.Notice = ""
}

func FormatSummaries(summaries []string) string {
	var b strings.Builder
	for i, summary := range summaries {
		fmt.Fprintf(&b, "Summary %d:\n%s\n\n", i+1, summary)
	}

	return b.String()
}

// ErrorMessage is the single user-facing line for a failed submission.
func ErrorMessage(err error) string {
	if errors.Is(err, domain.ErrEmptyInput) {
		return emptyInputMessage
	}

	return "Failed to summarize text: " + err.Error()
}

func ParseMaxLength(raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, errors.New("max length must be a number")
	}

	if n < MinMaxLength || n > MaxMaxLength {
		return 0, fmt.Errorf("max length must be between %d and %d", MinMaxLength, MaxMaxLength)
	}

	return n, nil
}
