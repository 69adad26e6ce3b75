package session

import (
	"context"
	"log/slog"
	"time"

	"github.com/foxseedlab/lecturenote/internal/repository"
	"github.com/foxseedlab/lecturenote/internal/transcript"
)

// archiveObserver stores every finalized segment. Failures are logged and never stop the session.
type archiveObserver struct {
	repo      repository.TranscriptRepository
	sessionID string
}

func (o archiveObserver) OnSegment(ctx context.Context, seg transcript.Segment) {
	if err := o.repo.InsertSegment(ctx, repository.InsertSegmentInput{
		SessionID:    o.sessionID,
		SegmentIndex: seg.Index,
		Content:      seg.Text,
		FinalizedAt:  seg.FinalizedAt,
	}); err != nil {
		slog.Error("failed to archive segment", "error", err, "session_id", o.sessionID, "segment_index", seg.Index)
	}
}

type mirrorObserver struct {
	mirror    *discordMirror
	startedAt time.Time
}

func (o mirrorObserver) OnSegment(_ context.Context, seg transcript.Segment) {
	o.mirror.post(segmentMessage(seg.FinalizedAt.Sub(o.startedAt), seg.Text))
}
