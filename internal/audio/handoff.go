package audio

import "sync/atomic"

// Handoff is a single-producer, single-consumer frame channel. Offer never blocks,
// and only the producer may call Offer and Close.
type Handoff struct {
	frames  chan Frame
	dropped atomic.Int64
}

func NewHandoff(capacity int) *Handoff {
	if capacity < 1 {
		capacity = 1
	}
	return &Handoff{frames: make(chan Frame, capacity)}
}

func (h *Handoff) Offer(f Frame) bool {
	select {
	case h.frames <- f:
		return true
	default:
		h.dropped.Add(1)
		return false
	}
}

func (h *Handoff) Frames() <-chan Frame {
	return h.frames
}

// Close marks end of input for the consumer.
func (h *Handoff) Close() {
	close(h.frames)
}

func (h *Handoff) Dropped() int64 {
	return h.dropped.Load()
}
