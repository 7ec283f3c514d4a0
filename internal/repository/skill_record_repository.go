package repository

import (
	"context"
	"time"

	"badge-sync/internal/database"

	"github.com/google/uuid"
)

const skillRecordsTable = "job_skill_records"

// SkillRecord is one stored dataset row. Title and skills are nullable in storage so that
// incomplete rows reach the corpus builder and fail it instead of being filtered out here.
type SkillRecord struct {
	ID             uuid.UUID
	JobTitle       *string
	SkillsRequired *string
	Source         string
	CreatedAt      time.Time
}

type SkillRecordRepository interface {
	ListAll(ctx context.Context) ([]SkillRecord, error)
	Count(ctx context.Context) (int64, error)
	InsertBatch(ctx context.Context, records []SkillRecord) (int64, error)
	DeleteAll(ctx context.Context) (int64, error)
}

type PostgresSkillRecordRepository struct {
	db database.DB
}

func NewPostgresSkillRecordRepository(db database.DB) *PostgresSkillRecordRepository {
	return &PostgresSkillRecordRepository{db: db}
}

func (r *PostgresSkillRecordRepository) ListAll(ctx context.Context) ([]SkillRecord, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, job_title, skills_required, source, created_at
		FROM job_skill_records
		ORDER BY created_at ASC, id ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]SkillRecord, 0)
	for rows.Next() {
		var it SkillRecord
		if err := rows.Scan(&it.ID, &it.JobTitle, &it.SkillsRequired, &it.Source, &it.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresSkillRecordRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM job_skill_records`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// InsertBatch bulk-loads records in one transaction. Missing IDs and timestamps are filled in;
// created_at increases with input order so ListAll returns rows as they were imported.
func (r *PostgresSkillRecordRepository) InsertBatch(ctx context.Context, records []SkillRecord) (int64, error) {
	if len(records) == 0 {
		return 0, nil
	}

	base := time.Now().UTC()
	rows := make([][]any, 0, len(records))
	for i, it := range records {
		id := it.ID
		if id == uuid.Nil {
			id = uuid.New()
		}
		createdAt := it.CreatedAt
		if createdAt.IsZero() {
			createdAt = base.Add(time.Duration(i) * time.Microsecond)
		}
		source := it.Source
		if source == "" {
			source = "csv"
		}
		rows = append(rows, []any{id, it.JobTitle, it.SkillsRequired, source, createdAt})
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback(context.Background()) }()

	n, err := tx.CopyFrom(ctx, skillRecordsTable,
		[]string{"id", "job_title", "skills_required", "source", "created_at"}, rows)
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *PostgresSkillRecordRepository) DeleteAll(ctx context.Context) (int64, error) {
	return r.db.Exec(ctx, `DELETE FROM job_skill_records`)
}
