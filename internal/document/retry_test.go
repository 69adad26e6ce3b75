package document

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type flakySink struct {
	mu       sync.Mutex
	failures int
	calls    int
	texts    []string
}

func (f *flakySink) record(text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.failures < 0 || f.calls <= f.failures {
		return errors.New("backend unavailable")
	}
	f.texts = append(f.texts, text)
	return nil
}

func (f *flakySink) AppendText(_ context.Context, _, text string) error   { return f.record(text) }
func (f *flakySink) AppendTitle(_ context.Context, _, title string) error { return f.record(title) }
func (f *flakySink) AppendSummary(_ context.Context, _, s string) error   { return f.record(s) }

func TestRetryingSink_RecoversWithinWindow(t *testing.T) {
	inner := &flakySink{failures: 2}
	sink := NewRetryingSink(inner, RetryPolicy{Window: time.Second, InitialInterval: time.Millisecond})

	if err := sink.AppendText(context.Background(), "doc-1", "hello "); err != nil {
		t.Fatalf("expected eventual success, got %v", err)
	}
	if inner.calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", inner.calls)
	}
	if len(inner.texts) != 1 || inner.texts[0] != "hello " {
		t.Fatalf("expected a single successful append, got %q", inner.texts)
	}
}

func TestRetryingSink_GivesUpAfterWindow(t *testing.T) {
	inner := &flakySink{failures: -1}
	sink := NewRetryingSink(inner, RetryPolicy{Window: 50 * time.Millisecond, InitialInterval: time.Millisecond})

	start := time.Now()
	err := sink.AppendSummary(context.Background(), "doc-1", "summary")
	if !errors.Is(err, ErrSink) {
		t.Fatalf("expected ErrSink, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("retry exceeded its window: %v", elapsed)
	}
	if inner.calls < 2 {
		t.Fatalf("expected several attempts, got %d", inner.calls)
	}
}

func TestRetryingSink_ZeroWindowTriesOnce(t *testing.T) {
	inner := &flakySink{failures: -1}
	sink := NewRetryingSink(inner, RetryPolicy{})

	if err := sink.AppendTitle(context.Background(), "doc-1", "Lecture 1"); !errors.Is(err, ErrSink) {
		t.Fatalf("expected ErrSink, got %v", err)
	}
	if inner.calls != 1 {
		t.Fatalf("expected a single attempt, got %d", inner.calls)
	}
}
