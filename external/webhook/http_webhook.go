package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/foxseedlab/lecturenote/internal/webhook"
)

const (
	requestTimeout   = 30 * time.Second
	deliveryWindow   = time.Minute
	errorBodyPreview = 256
	userAgent        = "lecturenote-webhook/1"
)

// ReportSender POSTs a session report as JSON. Server errors and transport failures are
// retried within a bounded window; client errors are returned at once.
type ReportSender struct {
	url    string
	client *http.Client
	window time.Duration
}

func NewReportSender(url string) webhook.Sender {
	return &ReportSender{
		url:    strings.TrimSpace(url),
		client: &http.Client{Timeout: requestTimeout},
		window: deliveryWindow,
	}
}

func (s *ReportSender) SendReport(ctx context.Context, report webhook.SessionReport) error {
	if s.url == "" {
		return nil
	}
	body, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("encode session report: %w", err)
	}

	attempt := 0
	_, err = backoff.Retry(ctx, func() (struct{}, error) {
		attempt++
		return struct{}{}, s.post(ctx, report.SessionID, body)
	},
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxElapsedTime(s.window),
		backoff.WithNotify(func(err error, next time.Duration) {
			slog.Warn("session report delivery failed; retrying", "error", err, "attempt", attempt, "retry_in", next)
		}),
	)
	if err != nil {
		return fmt.Errorf("deliver session report: %w", err)
	}
	slog.Info("session report delivered", "session_id", report.SessionID, "attempts", attempt)
	return nil
}

func (s *ReportSender) post(ctx context.Context, sessionID string, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return backoff.Permanent(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-Lecturenote-Session", sessionID)

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	preview, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyPreview))
	statusErr := fmt.Errorf("webhook returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(preview)))
	if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
		return statusErr
	}
	return backoff.Permanent(statusErr)
}
