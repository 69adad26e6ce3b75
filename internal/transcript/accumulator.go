package transcript

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/foxseedlab/lecturenote/internal/document"
	"github.com/foxseedlab/lecturenote/internal/transcriber"
)

// Segment is a finalized transcript string; it is never mutated once recorded.
type Segment struct {
	Index       int
	Text        string
	FinalizedAt time.Time
}

// Observer receives every recorded segment after the document append. It must handle its own errors.
type Observer interface {
	OnSegment(ctx context.Context, seg Segment)
}

// Accumulator is owned by a single session and is not safe for concurrent use.
type Accumulator struct {
	sink       document.Sink
	documentID string
	observers  []Observer
	now        func() time.Time

	segments []Segment
	text     strings.Builder
	interim  int
}

func NewAccumulator(sink document.Sink, documentID string, observers ...Observer) *Accumulator {
	return &Accumulator{
		sink:       sink,
		documentID: documentID,
		observers:  observers,
		now:        time.Now,
	}
}

// OnResult records final results and ignores interim ones.
func (a *Accumulator) OnResult(ctx context.Context, r transcriber.Result) (Segment, bool) {
	top, ok := r.Top()
	if !r.IsFinal {
		a.interim++
		slog.Debug("interim result", "text", top)
		return Segment{}, false
	}
	text := normalize(top)
	if !ok || text == "" {
		slog.Debug("final result without text; ignoring")
		return Segment{}, false
	}

	seg := Segment{
		Index:       len(a.segments),
		Text:        text + " ",
		FinalizedAt: a.now(),
	}
	a.segments = append(a.segments, seg)
	a.text.WriteString(seg.Text)
	slog.Info("segment finalized", "segment_index", seg.Index, "text", text)

	if err := a.sink.AppendText(ctx, a.documentID, seg.Text); err != nil {
		slog.Error("failed to append segment to document; kept for summary", "error", err, "document_id", a.documentID, "segment_index", seg.Index)
	}
	for _, o := range a.observers {
		o.OnSegment(ctx, seg)
	}
	return seg, true
}

// Text is the ordered concatenation of every segment recorded so far.
func (a *Accumulator) Text() string {
	return a.text.String()
}

func (a *Accumulator) Segments() []Segment {
	return append([]Segment(nil), a.segments...)
}

func (a *Accumulator) Len() int {
	return len(a.segments)
}

func (a *Accumulator) InterimCount() int {
	return a.interim
}

func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
