package app

import (
	"context"
	"fmt"
	"time"

	"badge-sync/internal/config"
	"badge-sync/internal/database"
	"badge-sync/internal/database/migration"
	dbpostgres "badge-sync/internal/database/postgres"
	"badge-sync/internal/dataset"
	"badge-sync/internal/domain/recommend"
	"badge-sync/internal/infrastructure/cache"
	"badge-sync/internal/metrics"
	"badge-sync/internal/repository"
	"badge-sync/migrations"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Container owns the long-lived dependencies of the server. DB and Cache are nil when disabled.
type Container struct {
	Config config.Config
	DB     database.DB
	Cache  *cache.Redis
	Model  *recommend.Model
}

func NewContainer(ctx context.Context, cfg config.Config, logger zerolog.Logger) (*Container, error) {
	c := &Container{Config: cfg}

	if cfg.Database.Enabled() {
		connCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		db, err := dbpostgres.Connect(connCtx, cfg.Database)
		cancel()
		if err != nil {
			return nil, fmt.Errorf("connect database: %w", err)
		}
		c.DB = db

		if cfg.Database.AutoMigrate {
			runner := migration.Runner{FS: migrations.FS, Logger: logger.With().Str("component", "migration").Logger()}
			if err := runner.Run(ctx, db.SQLDB()); err != nil {
				_ = c.Close()
				return nil, fmt.Errorf("migrate: %w", err)
			}
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		m, err := TrainModel(gctx, cfg, c.DB, logger)
		if err != nil {
			return err
		}
		c.Model = m
		return nil
	})
	if cfg.Redis.Enabled {
		g.Go(func() error {
			c.Cache = cache.NewRedis(gctx, cfg.Redis, logger)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		_ = c.Close()
		return nil, err
	}

	return c, nil
}

// TrainModel loads the configured dataset and trains a model from it. db may be nil for CSV datasets.
func TrainModel(ctx context.Context, cfg config.Config, db database.DB, logger zerolog.Logger) (*recommend.Model, error) {
	var records repository.SkillRecordRepository
	if db != nil {
		records = repository.NewPostgresSkillRecordRepository(db)
	}

	src, err := dataset.NewSource(cfg.Dataset, records)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	rows, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load %s dataset: %w", src.Name(), err)
	}

	m, err := recommend.Train(ctx, rows,
		recommend.WithAlpha(cfg.Recommend.Alpha),
		recommend.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("train model: %w", err)
	}

	info := m.Info()
	metrics.ModelLabels.Set(float64(info.Labels))
	metrics.ModelVocabularySize.Set(float64(info.VocabularySize))
	metrics.ModelTrainingDuration.Set(time.Since(start).Seconds())
	return m, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	var firstErr error
	if c.Cache != nil {
		if err := c.Cache.Close(); err != nil {
			firstErr = err
		}
	}
	if c.DB != nil {
		if err := c.DB.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
