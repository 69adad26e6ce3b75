package session

import (
	"fmt"
	"time"

	"github.com/foxseedlab/lecturenote/internal/transcript"
	"github.com/foxseedlab/lecturenote/internal/webhook"
)

type sessionInfo struct {
	id        string
	title     string
	target    string
	startedAt time.Time
}

func buildSessionReport(info sessionInfo, endedAt time.Time, segments []transcript.Segment, fullText, summary string) webhook.SessionReport {
	durationSeconds := int64(endedAt.Sub(info.startedAt).Seconds())
	if durationSeconds < 0 {
		durationSeconds = 0
	}
	out := make([]webhook.SessionReportSegment, 0, len(segments))
	for _, seg := range segments {
		out = append(out, webhook.SessionReportSegment{
			Index:       seg.Index,
			FinalizedAt: seg.FinalizedAt.UTC().Format(time.RFC3339),
			Text:        seg.Text,
		})
	}
	return webhook.SessionReport{
		SchemaVersion:   webhook.SessionReportSchemaVersion,
		SessionID:       info.id,
		Title:           info.title,
		Target:          info.target,
		StartAt:         info.startedAt.UTC().Format(time.RFC3339),
		EndAt:           endedAt.UTC().Format(time.RFC3339),
		DurationSeconds: durationSeconds,
		SegmentCount:    len(segments),
		Segments:        out,
		Transcript:      fullText,
		Summary:         summary,
	}
}

func formatElapsedHMS(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
