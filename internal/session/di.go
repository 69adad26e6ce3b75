package session

import (
	"os"

	"github.com/foxseedlab/lecturenote/internal/audio"
	"github.com/foxseedlab/lecturenote/internal/config"
	"github.com/foxseedlab/lecturenote/internal/discord"
	"github.com/foxseedlab/lecturenote/internal/document"
	"github.com/foxseedlab/lecturenote/internal/repository"
	"github.com/foxseedlab/lecturenote/internal/summarizer"
	"github.com/foxseedlab/lecturenote/internal/transcriber"
	"github.com/foxseedlab/lecturenote/internal/webhook"
	"github.com/samber/do/v2"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (*Controller, error) {
		cfg := do.MustInvoke[*config.Config](i)
		source := do.MustInvoke[audio.Source](i)
		stt := do.MustInvoke[transcriber.Transcriber](i)
		sink := do.MustInvoke[document.Sink](i)
		sum := do.MustInvoke[summarizer.Summarizer](i)
		repo := do.MustInvoke[repository.Repository](i)
		dc := do.MustInvoke[discord.Client](i)
		wh := do.MustInvoke[webhook.Sender](i)
		return NewController(cfg, source, stt, sink, sum, repo, dc, wh, os.Stdout), nil
	})
}
