//go:build !portaudio

package audio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/foxseedlab/lecturenote/internal/audio"
)

// firstFrameTimeout bounds how long Start waits for the first frame.
const firstFrameTimeout = 2 * time.Second

// ExecSource reads raw PCM from the stdout of a capture process, arecord by default.
type ExecSource struct {
	cfg SourceConfig

	mu       sync.Mutex
	cmd      *exec.Cmd
	handoff  *audio.Handoff
	stderr   *tailBuffer
	done     chan struct{}
	err      error
	stopping atomic.Bool
	stopOnce sync.Once
}

func NewSource(cfg SourceConfig) audio.Source {
	return &ExecSource{cfg: cfg}
}

func (s *ExecSource) captureArgs(format audio.Format) []string {
	if cmd := strings.TrimSpace(s.cfg.Command); cmd != "" {
		return strings.Fields(cmd)
	}
	args := []string{
		"arecord", "-q",
		"-t", "raw",
		"-f", "S16_LE",
		"-r", strconv.Itoa(format.SampleRate),
		"-c", strconv.Itoa(format.Channels),
	}
	if s.cfg.Device != "" {
		args = append(args, "-D", s.cfg.Device)
	}
	return append(args, "-")
}

func (s *ExecSource) Start(ctx context.Context, format audio.Format) (<-chan audio.Frame, error) {
	s.mu.Lock()
	if s.cmd != nil {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: capture already started", audio.ErrDevice)
	}
	if format.FrameBytes() <= 0 {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: invalid format %+v", audio.ErrDevice, format)
	}

	argv := s.captureArgs(format)
	path, err := exec.LookPath(argv[0])
	if err != nil {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: capture command %q not found: %w", audio.ErrDevice, argv[0], err)
	}
	cmd := exec.Command(path, argv[1:]...)
	detachProcessGroup(cmd)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: %w", audio.ErrDevice, err)
	}
	s.stderr = &tailBuffer{}
	cmd.Stderr = s.stderr
	if err := cmd.Start(); err != nil {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: start capture: %w", audio.ErrDevice, err)
	}

	s.cmd = cmd
	s.handoff = audio.NewHandoff(s.cfg.BufferFrames)
	s.done = make(chan struct{})
	firstFrame := make(chan struct{})
	go s.read(stdout, format.FrameBytes(), firstFrame)
	s.mu.Unlock()

	// The recorder only proves the device works once it delivers audio.
	timer := time.NewTimer(firstFrameTimeout)
	defer timer.Stop()
	select {
	case <-firstFrame:
	case <-s.done:
		if !closed(firstFrame) {
			if err := s.Err(); err != nil {
				return nil, err
			}
			return nil, fmt.Errorf("%w: capture exited before producing audio", audio.ErrDevice)
		}
	case <-ctx.Done():
		_ = s.Stop()
		return nil, fmt.Errorf("%w: start capture: %w", audio.ErrDevice, ctx.Err())
	case <-timer.C:
		slog.Warn("no audio within startup window; continuing", "timeout", firstFrameTimeout)
	}
	slog.Info("audio capture started", "command", argv[0], "sample_rate", format.SampleRate, "frame_bytes", format.FrameBytes())
	return s.handoff.Frames(), nil
}

func closed(ch <-chan struct{}) bool {
	select {
	case <-ch:
		return true
	default:
		return false
	}
}

func (s *ExecSource) read(r io.Reader, frameBytes int, firstFrame chan<- struct{}) {
	defer close(s.done)
	var readErr error
	for n := 0; ; n++ {
		frame := make([]byte, frameBytes)
		if _, err := io.ReadFull(r, frame); err != nil {
			readErr = err
			break
		}
		if !s.handoff.Offer(frame) {
			slog.Warn("audio frame dropped; consumer is behind", "dropped", s.handoff.Dropped())
		}
		if n == 0 {
			close(firstFrame)
		}
	}
	waitErr := s.cmd.Wait()
	if !s.stopping.Load() {
		cause := waitErr
		if cause == nil {
			cause = readErr
		}
		err := fmt.Errorf("%w: capture ended unexpectedly: %v", audio.ErrDevice, cause)
		if tail := strings.TrimSpace(s.stderr.String()); tail != "" {
			err = fmt.Errorf("%w: %s", err, tail)
		}
		s.mu.Lock()
		s.err = err
		s.mu.Unlock()
		slog.Error("audio capture ended", "error", err)
	}
	s.handoff.Close()
}

func (s *ExecSource) Stop() error {
	s.mu.Lock()
	cmd, done := s.cmd, s.done
	s.mu.Unlock()
	if cmd == nil {
		return nil
	}
	var stopErr error
	s.stopOnce.Do(func() {
		s.stopping.Store(true)
		if err := cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
			stopErr = fmt.Errorf("%w: stop capture: %w", audio.ErrDevice, err)
		}
		<-done
		slog.Info("audio capture stopped", "dropped", s.handoff.Dropped())
	})
	return stopErr
}

func (s *ExecSource) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *ExecSource) Dropped() int64 {
	s.mu.Lock()
	h := s.handoff
	s.mu.Unlock()
	if h == nil {
		return 0
	}
	return h.Dropped()
}
