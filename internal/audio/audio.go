package audio

import (
	"context"
	"errors"
	"time"
)

var ErrDevice = errors.New("audio device error")

const bytesPerSample = 2

// Format describes signed 16-bit little-endian PCM.
type Format struct {
	SampleRate    int
	Channels      int
	FrameDuration time.Duration
}

func (f Format) SamplesPerFrame() int {
	return int(int64(f.SampleRate) * int64(f.FrameDuration) / int64(time.Second))
}

// FrameBytes is 3200 for 16 kHz mono at 100 ms (1600 samples).
func (f Format) FrameBytes() int {
	return f.SamplesPerFrame() * f.Channels * bytesPerSample
}

// Frame is handed from the capture source to exactly one consumer and never modified afterwards.
type Frame []byte

type Source interface {
	// Start begins capture. The returned channel is closed when capture stops for any reason.
	Start(ctx context.Context, format Format) (<-chan Frame, error)
	// Stop is idempotent and a no-op when Start was never called.
	Stop() error
	// Err reports why capture ended on its own. It is nil after a requested Stop.
	Err() error
	// Dropped counts frames discarded because the consumer fell behind.
	Dropped() int64
}
