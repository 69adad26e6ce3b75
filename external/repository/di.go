package repository

import (
	"context"
	"log/slog"
	"time"

	"github.com/foxseedlab/lecturenote/internal/config"
	"github.com/foxseedlab/lecturenote/internal/repository"
	"github.com/samber/do/v2"
)

const databaseInitTimeout = 15 * time.Second

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (repository.Repository, error) {
		cfg := do.MustInvoke[*config.Config](i)
		if cfg.DatabaseURL == "" {
			slog.Debug("DATABASE_URL not set; session archive disabled")
			return NewNoopRepository(), nil
		}
		ctx, cancel := context.WithTimeout(context.Background(), databaseInitTimeout)
		defer cancel()

		pool, err := OpenPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		slog.Info("session archive enabled")
		return NewPostgresRepository(pool), nil
	})
}
