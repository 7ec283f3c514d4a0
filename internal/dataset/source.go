// Package dataset loads the skill-to-job-title training rows from a CSV file or Postgres.
package dataset

import (
	"context"
	"fmt"

	"badge-sync/internal/config"
	"badge-sync/internal/domain/recommend"
	"badge-sync/internal/repository"
)

// Source yields the complete training dataset. Partial loads are errors.
type Source interface {
	Name() string
	Load(ctx context.Context) ([]recommend.Record, error)
}

func NewSource(cfg config.DatasetConfig, records repository.SkillRecordRepository) (Source, error) {
	switch cfg.Source {
	case "", config.DatasetSourceCSV:
		return CSVSource{Path: cfg.Path, TitleColumn: cfg.TitleColumn, SkillsColumn: cfg.SkillsColumn}, nil
	case config.DatasetSourcePostgres:
		if records == nil {
			return nil, fmt.Errorf("dataset source %q needs a database", cfg.Source)
		}
		return PostgresSource{Records: records}, nil
	default:
		return nil, fmt.Errorf("unknown dataset source %q", cfg.Source)
	}
}

type PostgresSource struct {
	Records repository.SkillRecordRepository
}

func (PostgresSource) Name() string { return config.DatasetSourcePostgres }

func (s PostgresSource) Load(ctx context.Context) ([]recommend.Record, error) {
	rows, err := s.Records.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list skill records: %w", err)
	}

	out := make([]recommend.Record, 0, len(rows))
	for _, r := range rows {
		out = append(out, recommend.Record{JobTitle: deref(r.JobTitle), Skills: deref(r.SkillsRequired)})
	}
	return out, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
