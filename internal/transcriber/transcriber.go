package transcriber

import (
	"context"
	"errors"
	"strings"

	"github.com/foxseedlab/lecturenote/internal/audio"
)

var ErrTranscription = errors.New("transcription error")

type Encoding string

const EncodingLinear16 Encoding = "LINEAR16"

type Config struct {
	Encoding        Encoding
	SampleRateHertz int
	ChannelCount    int
	LanguageCode    string
}

type Alternative struct {
	Transcript string
	// Confidence is carried through but unused downstream.
	Confidence float32
}

// Result is either interim (display-only) or final.
type Result struct {
	IsFinal      bool
	Alternatives []Alternative
}

// Top returns the best-ranked transcript.
func (r Result) Top() (string, bool) {
	if len(r.Alternatives) == 0 {
		return "", false
	}
	return r.Alternatives[0].Transcript, true
}

// Stream yields results in service order until the frame input ends or the session fails.
type Stream interface {
	// Results is closed when the session ends. Err is meaningful only after that.
	Results() <-chan Result
	Err() error
	// Close cancels the session without waiting for outstanding results.
	Close() error
}

type Transcriber interface {
	Stream(ctx context.Context, frames <-chan audio.Frame, cfg Config) (Stream, error)
}

// IsCanceled reports errors caused by local cancellation rather than the service.
func IsCanceled(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "context canceled") || strings.Contains(msg, "operation was canceled")
}
