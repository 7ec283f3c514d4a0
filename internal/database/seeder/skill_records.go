package seeder

import (
	"context"
	"fmt"
	"strings"

	"badge-sync/internal/database"
	"badge-sync/internal/dataset"
	"badge-sync/internal/domain/recommend"
	"badge-sync/internal/repository"

	"github.com/rs/zerolog"
)

// SkillRecordsSeeder imports a dataset into job_skill_records. The import is skipped when the table
// already has rows, unless Force is set, in which case existing rows are replaced.
type SkillRecordsSeeder struct {
	Source dataset.Source
	Force  bool
	Logger zerolog.Logger

	// Records overrides the Postgres repository built from the handle passed to Run.
	Records repository.SkillRecordRepository
}

func (SkillRecordsSeeder) Name() string { return "job_skill_records" }

func (s SkillRecordsSeeder) Run(ctx context.Context, db database.DB) error {
	if s.Source == nil {
		return fmt.Errorf("nil dataset source")
	}
	if err := EnsureTableColumns(ctx, db, "job_skill_records", "id", "job_title", "skills_required", "source", "created_at"); err != nil {
		return err
	}

	repo := s.Records
	if repo == nil {
		repo = repository.NewPostgresSkillRecordRepository(db)
	}

	existing, err := repo.Count(ctx)
	if err != nil {
		return err
	}
	if existing > 0 && !s.Force {
		s.Logger.Info().Int64("rows", existing).Msg("job_skill_records already populated, skipping")
		return nil
	}

	records, err := s.Source.Load(ctx)
	if err != nil {
		return err
	}
	// Rejected here so a bad file never replaces a good table.
	if _, _, err := recommend.BuildCorpus(records); err != nil {
		return err
	}

	if existing > 0 {
		deleted, err := repo.DeleteAll(ctx)
		if err != nil {
			return err
		}
		s.Logger.Warn().Int64("rows", deleted).Msg("job_skill_records cleared")
	}

	rows := make([]repository.SkillRecord, 0, len(records))
	for _, r := range records {
		title := strings.TrimSpace(r.JobTitle)
		skills := r.Skills
		rows = append(rows, repository.SkillRecord{JobTitle: &title, SkillsRequired: &skills, Source: s.Source.Name()})
	}

	n, err := repo.InsertBatch(ctx, rows)
	if err != nil {
		return err
	}
	s.Logger.Info().Int64("rows", n).Str("source", s.Source.Name()).Msg("job_skill_records imported")
	return nil
}
