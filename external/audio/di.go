package audio

import (
	"github.com/foxseedlab/lecturenote/internal/audio"
	"github.com/foxseedlab/lecturenote/internal/config"
	"github.com/samber/do/v2"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (audio.Source, error) {
		c := do.MustInvoke[*config.Config](i)
		return NewSource(SourceConfig{
			Device:       c.AudioDevice,
			Command:      c.AudioCaptureCommand,
			BufferFrames: c.AudioBufferFrames,
		}), nil
	})
}
