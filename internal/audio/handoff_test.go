package audio

import (
	"testing"
	"time"
)

func TestFormat_FrameBytes(t *testing.T) {
	f := Format{SampleRate: 16000, Channels: 1, FrameDuration: 100 * time.Millisecond}
	if got := f.SamplesPerFrame(); got != 1600 {
		t.Fatalf("expected 1600 samples, got %d", got)
	}
	if got := f.FrameBytes(); got != 3200 {
		t.Fatalf("expected 3200 bytes, got %d", got)
	}
}

func TestHandoff_PreservesOrderAndSignalsEnd(t *testing.T) {
	h := NewHandoff(4)
	for i := 0; i < 3; i++ {
		if !h.Offer(Frame{byte(i)}) {
			t.Fatalf("offer %d unexpectedly dropped", i)
		}
	}
	h.Close()

	var got []byte
	for f := range h.Frames() {
		got = append(got, f[0])
	}
	if string(got) != string([]byte{0, 1, 2}) {
		t.Fatalf("unexpected frame order: %v", got)
	}
}

func TestHandoff_DropsWithoutBlockingWhenFull(t *testing.T) {
	h := NewHandoff(1)
	done := make(chan struct{})
	go func() {
		h.Offer(Frame{1})
		h.Offer(Frame{2})
		h.Offer(Frame{3})
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("offer blocked on a full handoff")
	}
	if h.Dropped() != 2 {
		t.Fatalf("expected 2 dropped frames, got %d", h.Dropped())
	}
	if f := <-h.Frames(); f[0] != 1 {
		t.Fatalf("expected first frame to survive, got %v", f)
	}
}
