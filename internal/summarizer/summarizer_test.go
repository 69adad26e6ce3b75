package summarizer

import (
	"context"
	"errors"
	"testing"
)

type countingModel struct {
	calls  int
	prompt string
	text   string
	reply  string
	err    error
}

func (m *countingModel) Complete(_ context.Context, systemPrompt, text string) (string, error) {
	m.calls++
	m.prompt = systemPrompt
	m.text = text
	return m.reply, m.err
}

func TestSummarize_EmptyInputSkipsModel(t *testing.T) {
	for _, in := range []string{"", "   ", "\n\t "} {
		model := &countingModel{reply: "should not be used"}
		got := NewService(model, "prompt").Summarize(context.Background(), in)
		if got != NoContentSummary {
			t.Fatalf("input %q: expected no-content sentinel, got %q", in, got)
		}
		if model.calls != 0 {
			t.Fatalf("input %q: expected 0 model calls, got %d", in, model.calls)
		}
	}
}

func TestSummarize_ModelFailureReturnsFallback(t *testing.T) {
	model := &countingModel{err: errors.New("rate limited")}
	got := NewService(model, "prompt").Summarize(context.Background(), "the lecture covered rome")
	if got != UnavailableSummary {
		t.Fatalf("expected fallback sentinel, got %q", got)
	}
	if model.calls != 1 {
		t.Fatalf("expected 1 model call, got %d", model.calls)
	}
}

func TestSummarize_BlankReplyReturnsFallback(t *testing.T) {
	model := &countingModel{reply: "  \n"}
	if got := NewService(model, "prompt").Summarize(context.Background(), "content"); got != UnavailableSummary {
		t.Fatalf("expected fallback sentinel, got %q", got)
	}
}

func TestSummarize_PassesPromptAndTrimsReply(t *testing.T) {
	model := &countingModel{reply: "\n- Rome founded 753 BC\n"}
	got := NewService(model, "study notes").Summarize(context.Background(), "rome was founded ")
	if got != "- Rome founded 753 BC" {
		t.Fatalf("unexpected summary: %q", got)
	}
	if model.prompt != "study notes" || model.text != "rome was founded " {
		t.Fatalf("unexpected model input: prompt=%q text=%q", model.prompt, model.text)
	}
}
