package document

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v5"
)

const defaultInitialInterval = 250 * time.Millisecond

type RetryPolicy struct {
	// Window bounds the total time spent on one append, retries included.
	Window          time.Duration
	InitialInterval time.Duration
}

type retryingSink struct {
	inner  Sink
	policy RetryPolicy
}

// NewRetryingSink wraps inner so each call retries with exponential backoff until the window closes.
func NewRetryingSink(inner Sink, policy RetryPolicy) Sink {
	if policy.InitialInterval <= 0 {
		policy.InitialInterval = defaultInitialInterval
	}
	return &retryingSink{inner: inner, policy: policy}
}

func (s *retryingSink) AppendText(ctx context.Context, documentID, text string) error {
	return s.do(ctx, "append_text", documentID, func() error {
		return s.inner.AppendText(ctx, documentID, text)
	})
}

func (s *retryingSink) AppendTitle(ctx context.Context, documentID, title string) error {
	return s.do(ctx, "append_title", documentID, func() error {
		return s.inner.AppendTitle(ctx, documentID, title)
	})
}

func (s *retryingSink) AppendSummary(ctx context.Context, documentID, summary string) error {
	return s.do(ctx, "append_summary", documentID, func() error {
		return s.inner.AppendSummary(ctx, documentID, summary)
	})
}

func (s *retryingSink) do(ctx context.Context, op, documentID string, fn func() error) error {
	if s.policy.Window <= 0 {
		return wrap(fn())
	}
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = s.policy.InitialInterval
	b.MaxInterval = s.policy.Window

	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		return struct{}{}, fn()
	},
		backoff.WithBackOff(b),
		backoff.WithMaxElapsedTime(s.policy.Window),
		backoff.WithNotify(func(err error, next time.Duration) {
			slog.Warn("document append failed; retrying", "op", op, "document_id", documentID, "error", err, "retry_in", next)
		}),
	)
	return wrap(err)
}

func wrap(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrSink, err)
}
