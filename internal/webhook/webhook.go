package webhook

import "context"

const SessionReportSchemaVersion = "1"

type SessionReportSegment struct {
	Index       int    `json:"index"`
	FinalizedAt string `json:"finalized_at"`
	Text        string `json:"text"`
}

type SessionReport struct {
	SchemaVersion   string                 `json:"schema_version"`
	SessionID       string                 `json:"session_id"`
	Title           string                 `json:"title"`
	Target          string                 `json:"target"`
	StartAt         string                 `json:"start_at"`
	EndAt           string                 `json:"end_at"`
	DurationSeconds int64                  `json:"duration_seconds"`
	SegmentCount    int                    `json:"segment_count"`
	Segments        []SessionReportSegment `json:"segments"`
	Transcript      string                 `json:"transcript"`
	Summary         string                 `json:"summary"`
}

type Sender interface {
	SendReport(ctx context.Context, report SessionReport) error
}
