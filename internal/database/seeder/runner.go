package seeder

import (
	"context"
	"fmt"
	"time"

	"badge-sync/internal/database"

	"github.com/rs/zerolog"
)

type Runner struct {
	Seeders []Seeder
	Logger  zerolog.Logger
}

func (r Runner) Run(ctx context.Context, db database.DB) error {
	if db == nil {
		return fmt.Errorf("nil db")
	}
	for _, s := range r.Seeders {
		if s == nil {
			continue
		}
		start := time.Now()
		if err := s.Run(ctx, db); err != nil {
			return fmt.Errorf("seed %s: %w", s.Name(), err)
		}
		r.Logger.Info().Str("seeder", s.Name()).Dur("took", time.Since(start)).Msg("seeder finished")
	}
	return nil
}
