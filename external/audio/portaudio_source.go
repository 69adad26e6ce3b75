//go:build portaudio

package audio

import (
	"context"
	"encoding/binary"
	"fmt"
	"log/slog"
	"sync"

	"github.com/foxseedlab/lecturenote/internal/audio"
	"github.com/gordonklaus/portaudio"
)

type PortAudioSource struct {
	cfg SourceConfig

	mu       sync.Mutex
	stream   *portaudio.Stream
	handoff  *audio.Handoff
	stopOnce sync.Once
}

func NewSource(cfg SourceConfig) audio.Source {
	return &PortAudioSource{cfg: cfg}
}

func (s *PortAudioSource) inputDevice() (*portaudio.DeviceInfo, error) {
	if s.cfg.Device == "" {
		return portaudio.DefaultInputDevice()
	}
	devices, err := portaudio.Devices()
	if err != nil {
		return nil, err
	}
	for _, d := range devices {
		if d.Name == s.cfg.Device && d.MaxInputChannels > 0 {
			return d, nil
		}
	}
	return nil, fmt.Errorf("input device %q not found", s.cfg.Device)
}

func (s *PortAudioSource) Start(_ context.Context, format audio.Format) (<-chan audio.Frame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stream != nil {
		return nil, fmt.Errorf("%w: capture already started", audio.ErrDevice)
	}
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("%w: initialize portaudio: %w", audio.ErrDevice, err)
	}
	dev, err := s.inputDevice()
	if err != nil {
		_ = portaudio.Terminate()
		return nil, fmt.Errorf("%w: %w", audio.ErrDevice, err)
	}

	h := audio.NewHandoff(s.cfg.BufferFrames)
	params := portaudio.LowLatencyParameters(dev, nil)
	params.Input.Channels = format.Channels
	params.SampleRate = float64(format.SampleRate)
	params.FramesPerBuffer = format.SamplesPerFrame()
	stream, err := portaudio.OpenStream(params, func(in []int16) {
		frame := make([]byte, len(in)*2)
		for i, v := range in {
			binary.LittleEndian.PutUint16(frame[i*2:], uint16(v))
		}
		h.Offer(frame)
	})
	if err != nil {
		_ = portaudio.Terminate()
		return nil, fmt.Errorf("%w: open stream: %w", audio.ErrDevice, err)
	}
	if err := stream.Start(); err != nil {
		_ = stream.Close()
		_ = portaudio.Terminate()
		return nil, fmt.Errorf("%w: start stream: %w", audio.ErrDevice, err)
	}
	s.stream = stream
	s.handoff = h
	slog.Info("audio capture started", "device", dev.Name, "sample_rate", format.SampleRate, "frame_bytes", format.FrameBytes())
	return h.Frames(), nil
}

func (s *PortAudioSource) Stop() error {
	s.mu.Lock()
	stream, h := s.stream, s.handoff
	s.mu.Unlock()
	if stream == nil {
		return nil
	}
	var stopErr error
	s.stopOnce.Do(func() {
		if err := stream.Stop(); err != nil {
			stopErr = fmt.Errorf("%w: stop stream: %w", audio.ErrDevice, err)
		}
		_ = stream.Close()
		_ = portaudio.Terminate()
		h.Close()
		slog.Info("audio capture stopped", "dropped", h.Dropped())
	})
	return stopErr
}

// Err is always nil. PortAudio does not report device loss through the callback API.
func (s *PortAudioSource) Err() error {
	return nil
}

func (s *PortAudioSource) Dropped() int64 {
	s.mu.Lock()
	h := s.handoff
	s.mu.Unlock()
	if h == nil {
		return 0
	}
	return h.Dropped()
}
