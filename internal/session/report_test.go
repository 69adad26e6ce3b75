package session

import (
	"testing"
	"time"

	"github.com/foxseedlab/lecturenote/internal/transcript"
	"github.com/foxseedlab/lecturenote/internal/webhook"
)

func TestBuildSessionReport(t *testing.T) {
	startedAt := time.Date(2026, 2, 28, 12, 0, 0, 0, time.UTC)
	endedAt := startedAt.Add(2 * time.Minute)
	segments := []transcript.Segment{
		{Index: 0, Text: "hello world ", FinalizedAt: startedAt.Add(15 * time.Second)},
		{Index: 1, Text: "second part ", FinalizedAt: startedAt.Add(75 * time.Second)},
	}

	got := buildSessionReport(sessionInfo{id: "s-1", title: "Lecture 1", target: "CLST 201", startedAt: startedAt}, endedAt, segments, "hello world second part ", "- greeting")

	if got.SchemaVersion != webhook.SessionReportSchemaVersion {
		t.Fatalf("unexpected schema version: %q", got.SchemaVersion)
	}
	if got.StartAt != "2026-02-28T12:00:00Z" || got.EndAt != "2026-02-28T12:02:00Z" {
		t.Fatalf("unexpected time range: %s ~ %s", got.StartAt, got.EndAt)
	}
	if got.DurationSeconds != 120 || got.SegmentCount != 2 {
		t.Fatalf("unexpected counts: duration=%d segments=%d", got.DurationSeconds, got.SegmentCount)
	}
	if got.Segments[1].FinalizedAt != "2026-02-28T12:01:15Z" || got.Segments[1].Text != "second part " {
		t.Fatalf("unexpected second segment: %+v", got.Segments[1])
	}
}

func TestBuildSessionReport_ClampsNegativeDuration(t *testing.T) {
	startedAt := time.Date(2026, 2, 28, 12, 0, 0, 0, time.UTC)
	got := buildSessionReport(sessionInfo{startedAt: startedAt}, startedAt.Add(-time.Second), nil, "", "")
	if got.DurationSeconds != 0 || len(got.Segments) != 0 {
		t.Fatalf("unexpected report: %+v", got)
	}
}

func TestFormatElapsedHMS(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want string
	}{
		{-time.Second, "00:00:00"},
		{15 * time.Second, "00:00:15"},
		{time.Hour + 2*time.Minute + 3*time.Second, "01:02:03"},
	}
	for _, tc := range cases {
		if got := formatElapsedHMS(tc.d); got != tc.want {
			t.Fatalf("formatElapsedHMS(%v) = %q, want %q", tc.d, got, tc.want)
		}
	}
	if got := segmentMessage(75*time.Second, "hello world "); got != "`00:01:15` hello world" {
		t.Fatalf("unexpected segment message: %q", got)
	}
}
