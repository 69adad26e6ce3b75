package docs

import (
	"context"
	"fmt"

	"cloud.google.com/go/auth"
	"github.com/foxseedlab/lecturenote/internal/config"
	"github.com/foxseedlab/lecturenote/internal/document"
	"github.com/samber/do/v2"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (document.Sink, error) {
		cfg := do.MustInvoke[*config.Config](i)
		svc, err := NewService(context.Background(), do.MustInvoke[*auth.Credentials](i))
		if err != nil {
			return nil, fmt.Errorf("failed to create docs service: %w", err)
		}
		sink := NewGoogleDocsSink(svc, document.BoldRange{
			Offset: cfg.SummaryBoldOffset,
			Length: cfg.SummaryBoldLength,
		})
		return document.NewRetryingSink(sink, document.RetryPolicy{Window: cfg.SinkRetryWindow}), nil
	})
}
