package summarizer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

var ErrSummarization = errors.New("summarization error")

const (
	NoContentSummary   = "No transcription available to summarize."
	UnavailableSummary = "Summary could not be generated."
)

// Model is a remote text completion service.
type Model interface {
	Complete(ctx context.Context, systemPrompt, text string) (string, error)
}

// Summarizer never fails; it substitutes a sentinel instead.
type Summarizer interface {
	Summarize(ctx context.Context, fullText string) string
}

type Service struct {
	model  Model
	prompt string
}

func NewService(model Model, prompt string) *Service {
	return &Service{model: model, prompt: prompt}
}

func (s *Service) Summarize(ctx context.Context, fullText string) string {
	if strings.TrimSpace(fullText) == "" {
		slog.Info("empty transcript; skipping summarization")
		return NoContentSummary
	}
	summary, err := s.model.Complete(ctx, s.prompt, fullText)
	if err == nil && strings.TrimSpace(summary) == "" {
		err = errors.New("model returned an empty summary")
	}
	if err != nil {
		slog.Error("summarization failed; using fallback", "error", fmt.Errorf("%w: %w", ErrSummarization, err))
		return UnavailableSummary
	}
	return strings.TrimSpace(summary)
}
