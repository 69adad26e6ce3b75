package transcriber

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"cloud.google.com/go/auth"
	speech "cloud.google.com/go/speech/apiv2"
	speechpb "cloud.google.com/go/speech/apiv2/speechpb"
	"github.com/foxseedlab/lecturenote/internal/audio"
	"github.com/foxseedlab/lecturenote/internal/transcriber"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	speechAPIEndpointPort = 443
	resultBufferSize      = 64
)

type CloudSpeechConfig struct {
	ProjectID     string
	Location      string
	Model         string
	RotateOnLimit bool
	Credentials   *auth.Credentials
}

type CloudSpeechTranscriber struct {
	projectID     string
	location      string
	model         string
	rotateOnLimit bool
	credentials   *auth.Credentials
}

func NewCloudSpeechTranscriber(cfg CloudSpeechConfig) transcriber.Transcriber {
	return &CloudSpeechTranscriber{
		projectID:     cfg.ProjectID,
		location:      strings.TrimSpace(cfg.Location),
		model:         strings.TrimSpace(cfg.Model),
		rotateOnLimit: cfg.RotateOnLimit,
		credentials:   cfg.Credentials,
	}
}

type streamOpener func(ctx context.Context) (speechpb.Speech_StreamingRecognizeClient, error)

func (t *CloudSpeechTranscriber) Stream(ctx context.Context, frames <-chan audio.Frame, cfg transcriber.Config) (transcriber.Stream, error) {
	slog.Info("starting cloud speech streaming", "location", t.location, "language", cfg.LanguageCode, "model", t.model, "sample_rate", cfg.SampleRateHertz)
	streamingConfig, err := t.streamingConfig(cfg)
	if err != nil {
		return nil, err
	}

	opts := []option.ClientOption{
		option.WithAuthCredentials(t.credentials),
	}
	if t.location != "global" {
		opts = append(opts, option.WithEndpoint(fmt.Sprintf("%s-speech.googleapis.com:%d", t.location, speechAPIEndpointPort)))
	}
	client, err := speech.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: create speech client: %w", transcriber.ErrTranscription, err)
	}

	recognizer := fmt.Sprintf("projects/%s/locations/%s/recognizers/_", t.projectID, t.location)
	open := func(ctx context.Context) (speechpb.Speech_StreamingRecognizeClient, error) {
		s, err := client.StreamingRecognize(ctx)
		if err != nil {
			return nil, err
		}
		if err := s.Send(&speechpb.StreamingRecognizeRequest{
			Recognizer:       recognizer,
			StreamingRequest: &speechpb.StreamingRecognizeRequest_StreamingConfig{StreamingConfig: streamingConfig},
		}); err != nil {
			_ = s.CloseSend()
			return nil, err
		}
		return s, nil
	}

	s, err := startSession(ctx, open, frames, t.rotateOnLimit, client.Close)
	if err != nil {
		return nil, err
	}
	slog.Info("cloud speech stream initialized", "recognizer", recognizer)
	return s, nil
}

func (t *CloudSpeechTranscriber) streamingConfig(cfg transcriber.Config) (*speechpb.StreamingRecognitionConfig, error) {
	if cfg.Encoding != transcriber.EncodingLinear16 {
		return nil, fmt.Errorf("%w: unsupported encoding %q", transcriber.ErrTranscription, cfg.Encoding)
	}
	channels := cfg.ChannelCount
	if channels <= 0 {
		channels = 1
	}
	return &speechpb.StreamingRecognitionConfig{
		Config: &speechpb.RecognitionConfig{
			Model:         t.model,
			LanguageCodes: []string{cfg.LanguageCode},
			DecodingConfig: &speechpb.RecognitionConfig_ExplicitDecodingConfig{
				ExplicitDecodingConfig: &speechpb.ExplicitDecodingConfig{
					Encoding:          speechpb.ExplicitDecodingConfig_LINEAR16,
					SampleRateHertz:   int32(cfg.SampleRateHertz),
					AudioChannelCount: int32(channels),
				},
			},
			Features: &speechpb.RecognitionFeatures{EnableAutomaticPunctuation: true},
		},
		StreamingFeatures: &speechpb.StreamingRecognitionFeatures{InterimResults: true},
	}, nil
}

// session owns one logical recognition session, possibly spanning several
// underlying gRPC streams when the service caps stream duration.
type session struct {
	results chan transcriber.Result
	cancel  context.CancelFunc
	rotate  bool
	closeFn func() error

	receivers sync.WaitGroup
	finished  chan struct{}

	mu       sync.Mutex
	err      error
	closeErr error
}

// generation is one underlying gRPC stream. limit and err are written before done is closed.
type generation struct {
	stream speechpb.Speech_StreamingRecognizeClient
	done   chan struct{}
	limit  bool
	err    error
}

func startSession(ctx context.Context, open streamOpener, frames <-chan audio.Frame, rotate bool, closeFn func() error) (*session, error) {
	sctx, cancel := context.WithCancel(ctx)
	first, err := open(sctx)
	if err != nil {
		cancel()
		_ = closeFn()
		return nil, fmt.Errorf("%w: open stream: %w", transcriber.ErrTranscription, err)
	}
	s := &session{
		results:  make(chan transcriber.Result, resultBufferSize),
		cancel:   cancel,
		rotate:   rotate,
		closeFn:  closeFn,
		finished: make(chan struct{}),
	}
	gen := s.startGeneration(sctx, first)
	go s.send(sctx, gen, frames, open)
	return s, nil
}

func (s *session) Results() <-chan transcriber.Result {
	return s.results
}

func (s *session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *session) Close() error {
	s.cancel()
	<-s.finished
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closeErr
}

func (s *session) fail(err error) {
	s.mu.Lock()
	if s.err == nil {
		s.err = fmt.Errorf("%w: %w", transcriber.ErrTranscription, err)
	}
	s.mu.Unlock()
	s.cancel()
}

func (s *session) startGeneration(ctx context.Context, stream speechpb.Speech_StreamingRecognizeClient) *generation {
	gen := &generation{stream: stream, done: make(chan struct{})}
	s.receivers.Add(1)
	go s.receive(ctx, gen)
	return gen
}

func (s *session) send(ctx context.Context, gen *generation, frames <-chan audio.Frame, open streamOpener) {
	defer func() {
		s.receivers.Wait()
		close(s.results)
		err := s.closeFn()
		s.mu.Lock()
		s.closeErr = err
		s.mu.Unlock()
		close(s.finished)
	}()

	for {
		select {
		case <-ctx.Done():
			_ = gen.stream.CloseSend()
			return
		case frame, ok := <-frames:
			if !ok {
				slog.Info("audio input ended; half-closing recognition stream")
				if err := gen.stream.CloseSend(); err != nil {
					s.fail(err)
				}
				return
			}
			req := &speechpb.StreamingRecognizeRequest{
				StreamingRequest: &speechpb.StreamingRecognizeRequest_Audio{Audio: frame},
			}
			err := gen.stream.Send(req)
			if err == nil {
				continue
			}
			<-gen.done
			if ctx.Err() != nil {
				return
			}
			if !gen.limit {
				s.fail(err)
				return
			}
			slog.Warn("recognition stream reached service limit; rotating", "error", err)
			next, err := open(ctx)
			if err != nil {
				slog.Error("failed to rotate recognition stream", "error", err)
				s.fail(fmt.Errorf("rotate stream: %w", err))
				return
			}
			gen = s.startGeneration(ctx, next)
			slog.Info("recognition stream rotated")
			if err := gen.stream.Send(req); err != nil {
				s.fail(err)
				return
			}
		}
	}
}

func (s *session) receive(ctx context.Context, gen *generation) {
	defer s.receivers.Done()
	defer close(gen.done)
	for {
		resp, err := gen.stream.Recv()
		if err != nil {
			switch {
			case errors.Is(err, io.EOF):
				slog.Info("recognition receive loop stopped", "reason", "eof")
			case ctx.Err() != nil || transcriber.IsCanceled(err):
				slog.Info("recognition receive loop stopped", "reason", err.Error())
			case s.rotate && isStreamLimitError(err):
				slog.Warn("recognition receive loop ended at service stream limit", "error", err)
				gen.limit = true
			default:
				gen.err = err
				s.fail(err)
			}
			return
		}
		for _, r := range resp.GetResults() {
			res, ok := toResult(r)
			if !ok {
				continue
			}
			select {
			case s.results <- res:
			case <-ctx.Done():
				return
			}
		}
	}
}

func toResult(r *speechpb.StreamingRecognitionResult) (transcriber.Result, bool) {
	alts := r.GetAlternatives()
	if len(alts) == 0 {
		return transcriber.Result{}, false
	}
	out := transcriber.Result{
		IsFinal:      r.GetIsFinal(),
		Alternatives: make([]transcriber.Alternative, 0, len(alts)),
	}
	for _, a := range alts {
		out.Alternatives = append(out.Alternatives, transcriber.Alternative{
			Transcript: a.GetTranscript(),
			Confidence: a.GetConfidence(),
		})
	}
	return out, true
}

func isStreamLimitError(err error) bool {
	st, ok := status.FromError(err)
	if !ok {
		return false
	}
	msg := strings.ToLower(st.Message())
	switch st.Code() {
	case codes.Aborted:
		return strings.Contains(msg, "max duration") ||
			strings.Contains(msg, "stream timed out after receiving no more client requests")
	case codes.OutOfRange:
		return strings.Contains(msg, "maximum allowed stream duration")
	default:
		return false
	}
}
