package audio

import "sync"

type SourceConfig struct {
	// Device is a capture device name. Empty selects the system default.
	Device string
	// Command overrides the capture command line. Only honored by the exec source.
	Command      string
	BufferFrames int
}

const stderrTailBytes = 512

// tailBuffer keeps the last bytes written to it, for error reports.
type tailBuffer struct {
	mu  sync.Mutex
	buf []byte
}

func (t *tailBuffer) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.buf = append(t.buf, p...)
	if over := len(t.buf) - stderrTailBytes; over > 0 {
		t.buf = append([]byte(nil), t.buf[over:]...)
	}
	return len(p), nil
}

func (t *tailBuffer) String() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return string(t.buf)
}
