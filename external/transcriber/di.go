package transcriber

import (
	"cloud.google.com/go/auth"
	"github.com/foxseedlab/lecturenote/internal/config"
	"github.com/foxseedlab/lecturenote/internal/transcriber"
	"github.com/samber/do/v2"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (transcriber.Transcriber, error) {
		c := do.MustInvoke[*config.Config](i)
		return NewCloudSpeechTranscriber(CloudSpeechConfig{
			ProjectID:     c.GoogleCloudProjectID,
			Location:      c.GoogleCloudSpeechLocation,
			Model:         c.GoogleCloudSpeechModel,
			RotateOnLimit: c.SpeechRotateOnLimit,
			Credentials:   do.MustInvoke[*auth.Credentials](i),
		}), nil
	})
}
