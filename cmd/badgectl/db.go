package main

import (
	"context"
	"fmt"
	"time"

	"badge-sync/internal/config"
	"badge-sync/internal/database"
	"badge-sync/internal/database/migration"
	dbpostgres "badge-sync/internal/database/postgres"
	"badge-sync/internal/database/seeder"
	"badge-sync/internal/dataset"
	"badge-sync/internal/infrastructure/cache"
	"badge-sync/internal/usecase"
	"badge-sync/migrations"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type loggerFunc func(cmd *cobra.Command) zerolog.Logger

func connect(ctx context.Context) (config.Config, database.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, err
	}
	if !cfg.Database.Enabled() {
		return config.Config{}, nil, fmt.Errorf("database is not configured: set DB_HOST, DB_NAME and DB_USER")
	}

	connCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	db, err := dbpostgres.Connect(connCtx, cfg.Database)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("connect database: %w", err)
	}
	return cfg, db, nil
}

func newMigrateCmd(logger loggerFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending SQL migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, db, err := connect(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			runner := migration.Runner{FS: migrations.FS, Logger: logger(cmd)}
			return runner.Run(cmd.Context(), db.SQLDB())
		},
	}
}

func newSeedCmd(logger loggerFunc) *cobra.Command {
	var (
		file         string
		titleColumn  string
		skillsColumn string
		force        bool
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Import a skills CSV into job_skill_records",
		Long:  "Imports a skills CSV into job_skill_records. A populated table is left untouched unless --force is given, which replaces its rows.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, db, err := connect(cmd.Context())
			if err != nil {
				return err
			}
			defer db.Close()

			log := logger(cmd)
			runner := seeder.Runner{
				Seeders: []seeder.Seeder{seeder.SkillRecordsSeeder{
					Source: dataset.CSVSource{Path: file, TitleColumn: titleColumn, SkillsColumn: skillsColumn},
					Force:  force,
					Logger: log,
				}},
				Logger: log,
			}
			if err := runner.Run(cmd.Context(), db); err != nil {
				return err
			}

			// Cached predictions belong to the old model; the next server start trains a new one.
			if cfg.Redis.Enabled {
				rdb := cache.NewRedis(cmd.Context(), cfg.Redis, log)
				defer rdb.Close()
				n, err := rdb.DeleteByPattern(cmd.Context(), usecase.PredictCachePattern())
				if err != nil {
					log.Warn().Err(err).Msg("prediction cache not cleared")
					return nil
				}
				log.Info().Int("keys", n).Msg("prediction cache cleared")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Path to the skills CSV (required)")
	cmd.Flags().StringVar(&titleColumn, "title-column", dataset.DefaultTitleColumn, "CSV column holding the job title")
	cmd.Flags().StringVar(&skillsColumn, "skills-column", dataset.DefaultSkillsColumn, "CSV column holding the comma separated skills")
	cmd.Flags().BoolVar(&force, "force", false, "Replace existing rows")
	if err := cmd.MarkFlagRequired("file"); err != nil {
		panic(fmt.Sprintf("failed to mark file flag as required: %v", err))
	}
	return cmd
}
