package summarizer

import (
	"github.com/foxseedlab/lecturenote/internal/config"
	"github.com/foxseedlab/lecturenote/internal/summarizer"
	"github.com/samber/do/v2"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (summarizer.Summarizer, error) {
		c := do.MustInvoke[*config.Config](i)
		model := NewOpenAIModel(OpenAIConfig{
			APIKey:  c.OpenAIAPIKey,
			Model:   c.OpenAIModel,
			BaseURL: c.OpenAIBaseURL,
		})
		return summarizer.NewService(model, c.SummaryPrompt), nil
	})
}
