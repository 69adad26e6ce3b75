package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/foxseedlab/lecturenote/internal/audio"
	"github.com/foxseedlab/lecturenote/internal/config"
	"github.com/foxseedlab/lecturenote/internal/discord"
	"github.com/foxseedlab/lecturenote/internal/document"
	"github.com/foxseedlab/lecturenote/internal/repository"
	"github.com/foxseedlab/lecturenote/internal/summarizer"
	"github.com/foxseedlab/lecturenote/internal/transcriber"
	"github.com/foxseedlab/lecturenote/internal/transcript"
	"github.com/foxseedlab/lecturenote/internal/webhook"
	"github.com/google/uuid"
)

const captureChannels = 1

var ErrAlreadyRun = errors.New("session controller already ran")

// Controller runs exactly one lecture session per process.
type Controller struct {
	cfg         *config.Config
	source      audio.Source
	transcriber transcriber.Transcriber
	sink        document.Sink
	summarizer  summarizer.Summarizer
	repo        repository.Repository
	discord     discord.Client
	webhook     webhook.Sender

	out         io.Writer
	now         func() time.Time
	newID       func() string
	mirrorFlush time.Duration
	started     atomic.Bool
	state       atomic.Int32
}

func NewController(
	cfg *config.Config,
	source audio.Source,
	stt transcriber.Transcriber,
	sink document.Sink,
	sum summarizer.Summarizer,
	repo repository.Repository,
	dc discord.Client,
	wh webhook.Sender,
	out io.Writer,
) *Controller {
	if out == nil {
		out = io.Discard
	}
	return &Controller{
		cfg:         cfg,
		source:      source,
		transcriber: stt,
		sink:        sink,
		summarizer:  sum,
		repo:        repo,
		discord:     dc,
		webhook:     wh,
		out:         out,
		now:         time.Now,
		newID:       uuid.NewString,
		mirrorFlush: mirrorFlushTimeout,
	}
}

func (c *Controller) State() State {
	return State(c.state.Load())
}

func (c *Controller) setState(s State) {
	prev := State(c.state.Swap(int32(s)))
	slog.Debug("session state changed", "from", prev.String(), "to", s.String())
}

// Run writes the title, streams until ctx is canceled, then drains, summarizes and returns nil.
// Any capture or transcription failure before cancellation aborts the session without a summary.
func (c *Controller) Run(ctx context.Context, title string, target config.Target) error {
	if !c.started.CompareAndSwap(false, true) {
		return ErrAlreadyRun
	}
	// Downstream writes must outlive the interrupt that cancels ctx.
	workCtx := context.WithoutCancel(ctx)
	info := sessionInfo{id: c.newID(), title: title, target: target.Name, startedAt: c.now()}
	log := slog.With("session_id", info.id)
	log.Info("session starting", "title", title, "target", target.Name, "transcript_document_id", target.TranscriptDocID, "summary_document_id", target.SummaryDocID)

	c.writeTitles(workCtx, log, title, target)
	c.setState(StateTitleWritten)

	if err := c.repo.CreateSession(workCtx, repository.CreateSessionInput{
		ID:              info.id,
		Title:           title,
		TargetName:      target.Name,
		TranscriptDocID: target.TranscriptDocID,
		SummaryDocID:    target.SummaryDocID,
		StartedAt:       info.startedAt,
	}); err != nil {
		log.Error("failed to archive session start", "error", err)
	}

	format := audio.Format{SampleRate: c.cfg.AudioSampleRate, Channels: captureChannels, FrameDuration: c.cfg.FrameDuration()}
	frames, err := c.source.Start(workCtx, format)
	if err != nil {
		return c.abort(workCtx, log, info, nil, err)
	}
	stream, err := c.transcriber.Stream(workCtx, frames, transcriber.Config{
		Encoding:        transcriber.EncodingLinear16,
		SampleRateHertz: format.SampleRate,
		ChannelCount:    format.Channels,
		LanguageCode:    c.cfg.TranscribeLanguage,
	})
	if err != nil {
		_ = c.source.Stop()
		return c.abort(workCtx, log, info, nil, err)
	}

	mirror := c.startMirror()
	defer mirror.close(c.mirrorFlush)
	acc := transcript.NewAccumulator(c.sink, target.TranscriptDocID, c.observers(info, mirror)...)
	c.setState(StateStreaming)
	log.Info("streaming; press Ctrl-C to stop and summarize")
	mirror.post(startMessage(title, target.Name))

	results := stream.Results()
	for {
		select {
		case <-ctx.Done():
			return c.shutdown(workCtx, log, info, target, stream, acc, mirror)
		case r, ok := <-results:
			if !ok {
				_ = c.source.Stop()
				_ = stream.Close()
				return c.abort(workCtx, log, info, acc, c.streamEndCause(stream))
			}
			acc.OnResult(workCtx, r)
		}
	}
}

func (c *Controller) writeTitles(ctx context.Context, log *slog.Logger, title string, target config.Target) {
	docs := []string{target.TranscriptDocID}
	if target.SummaryDocID != target.TranscriptDocID {
		docs = append(docs, target.SummaryDocID)
	}
	for _, id := range docs {
		if err := c.sink.AppendTitle(ctx, id, title); err != nil {
			log.Error("failed to append title", "error", err, "document_id", id)
		}
	}
}

func (c *Controller) startMirror() *discordMirror {
	if c.cfg.DiscordChannelID == "" {
		return nil
	}
	return startDiscordMirror(c.discord, c.cfg.DiscordChannelID)
}

func (c *Controller) observers(info sessionInfo, mirror *discordMirror) []transcript.Observer {
	obs := []transcript.Observer{archiveObserver{repo: c.repo, sessionID: info.id}}
	if mirror != nil {
		obs = append(obs, mirrorObserver{mirror: mirror, startedAt: info.startedAt})
	}
	return obs
}

// streamEndCause explains a result stream that ended without an interrupt. A capture failure wins
// because it is what closes the frame input.
func (c *Controller) streamEndCause(stream transcriber.Stream) error {
	if err := c.source.Err(); err != nil {
		return err
	}
	if err := stream.Err(); err != nil {
		return err
	}
	return fmt.Errorf("%w: recognition stream ended before interrupt", transcriber.ErrTranscription)
}

func (c *Controller) shutdown(ctx context.Context, log *slog.Logger, info sessionInfo, target config.Target, stream transcriber.Stream, acc *transcript.Accumulator, mirror *discordMirror) error {
	c.setState(StateSummarizing)
	log.Info("interrupt received; stopping capture")
	if err := c.source.Stop(); err != nil {
		log.Warn("failed to stop audio capture", "error", err)
	}
	c.drain(ctx, log, stream, acc)
	if err := stream.Close(); err != nil {
		log.Warn("failed to close recognition stream", "error", err)
	}
	if err := stream.Err(); err != nil {
		log.Warn("recognition stream reported an error while draining", "error", err)
	}
	log.Info("capture stopped", "segments", acc.Len(), "interim_results", acc.InterimCount(), "dropped_frames", c.source.Dropped())

	fullText := acc.Text()
	sumCtx, cancel := c.summarizeContext(ctx)
	summary := c.summarizer.Summarize(sumCtx, fullText)
	cancel()
	_, _ = fmt.Fprintf(c.out, "%s%s\n", terminalSummaryHeader, summary)

	if err := c.sink.AppendSummary(ctx, target.SummaryDocID, summary); err != nil {
		log.Error("failed to append summary", "error", err, "document_id", target.SummaryDocID)
	} else {
		log.Info("summary appended", "document_id", target.SummaryDocID)
	}

	endedAt := c.now()
	if err := c.repo.CompleteSession(ctx, repository.CompleteSessionInput{
		SessionID:    info.id,
		Status:       repository.SessionStatusCompleted,
		EndedAt:      endedAt,
		Summary:      summary,
		SegmentCount: acc.Len(),
	}); err != nil {
		log.Error("failed to archive session end", "error", err)
	}
	if err := c.webhook.SendReport(ctx, buildSessionReport(info, endedAt, acc.Segments(), fullText, summary)); err != nil {
		log.Error("failed to send session report", "error", err)
	}
	mirror.post(summaryMessage(info.title, summary))

	c.setState(StateDone)
	log.Info("session completed")
	return nil
}

// drain keeps accumulating finals that were in flight when capture stopped.
func (c *Controller) drain(ctx context.Context, log *slog.Logger, stream transcriber.Stream, acc *transcript.Accumulator) {
	if c.cfg.ShutdownDrainTimeout <= 0 {
		return
	}
	timer := time.NewTimer(c.cfg.ShutdownDrainTimeout)
	defer timer.Stop()
	results := stream.Results()
	for {
		select {
		case r, ok := <-results:
			if !ok {
				return
			}
			acc.OnResult(ctx, r)
		case <-timer.C:
			log.Warn("drain timed out; closing recognition stream", "timeout", c.cfg.ShutdownDrainTimeout)
			return
		}
	}
}

func (c *Controller) summarizeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.cfg.SummarizeTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.cfg.SummarizeTimeout)
}

func (c *Controller) abort(ctx context.Context, log *slog.Logger, info sessionInfo, acc *transcript.Accumulator, cause error) error {
	c.setState(StateAborted)
	segments := 0
	if acc != nil {
		segments = acc.Len()
	}
	log.Error("session aborted; transcript is not summarized", "error", cause, "segments", segments)
	if err := c.repo.CompleteSession(ctx, repository.CompleteSessionInput{
		SessionID:    info.id,
		Status:       repository.SessionStatusAborted,
		EndedAt:      c.now(),
		SegmentCount: segments,
	}); err != nil {
		log.Error("failed to archive session abort", "error", err)
	}
	return cause
}
