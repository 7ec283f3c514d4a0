package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"badge-sync/internal/database"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type copyCall struct {
	table   string
	columns []string
	rows    [][]any
}

type fakeTx struct {
	copies     []copyCall
	copyErr    error
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Exec(context.Context, string, ...any) (int64, error)          { return 0, nil }
func (t *fakeTx) Query(context.Context, string, ...any) (database.Rows, error) { return nil, nil }
func (t *fakeTx) QueryRow(context.Context, string, ...any) database.Row        { return nil }
func (t *fakeTx) CopyFrom(_ context.Context, table string, columns []string, rows [][]any) (int64, error) {
	if t.copyErr != nil {
		return 0, t.copyErr
	}
	t.copies = append(t.copies, copyCall{table: table, columns: columns, rows: rows})
	return int64(len(rows)), nil
}
func (t *fakeTx) Commit(context.Context) error {
	t.committed = true
	return nil
}
func (t *fakeTx) Rollback(context.Context) error {
	if !t.committed {
		t.rolledBack = true
	}
	return nil
}

type fakeDB struct {
	tx *fakeTx
}

func (d *fakeDB) Ping(context.Context) error                                  { return nil }
func (d *fakeDB) Close() error                                                { return nil }
func (d *fakeDB) Exec(context.Context, string, ...any) (int64, error)         { return 0, nil }
func (d *fakeDB) Query(context.Context, string, ...any) (database.Rows, error) { return nil, nil }
func (d *fakeDB) QueryRow(context.Context, string, ...any) database.Row       { return nil }
func (d *fakeDB) CopyFrom(context.Context, string, []string, [][]any) (int64, error) {
	return 0, errors.New("copy outside transaction")
}
func (d *fakeDB) Begin(context.Context) (database.Tx, error) { return d.tx, nil }
func (d *fakeDB) SQLDB() *sql.DB                             { return nil }

func TestInsertBatch_FillsDefaultsInOrder(t *testing.T) {
	db := &fakeDB{tx: &fakeTx{}}
	repo := NewPostgresSkillRecordRepository(db)

	a, b := "Data Analyst", "sql, excel"
	fixedID := uuid.New()
	n, err := repo.InsertBatch(context.Background(), []SkillRecord{
		{ID: fixedID, JobTitle: &a, SkillsRequired: &b, Source: "postgres"},
		{JobTitle: &a},
	})
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
	assert.True(t, db.tx.committed)

	require.Len(t, db.tx.copies, 1)
	call := db.tx.copies[0]
	assert.Equal(t, "job_skill_records", call.table)
	assert.Equal(t, []string{"id", "job_title", "skills_required", "source", "created_at"}, call.columns)

	first, second := call.rows[0], call.rows[1]
	assert.Equal(t, fixedID, first[0])
	assert.Equal(t, "postgres", first[3])
	assert.NotEqual(t, uuid.Nil, second[0])
	assert.Equal(t, "csv", second[3])
	assert.Nil(t, second[2].(*string))
	assert.True(t, second[4].(time.Time).After(first[4].(time.Time)))
}

func TestInsertBatch_Empty(t *testing.T) {
	db := &fakeDB{tx: &fakeTx{}}
	n, err := NewPostgresSkillRecordRepository(db).InsertBatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, db.tx.copies)
}

func TestInsertBatch_CopyErrorRollsBack(t *testing.T) {
	boom := errors.New("boom")
	db := &fakeDB{tx: &fakeTx{copyErr: boom}}
	title := "x"

	_, err := NewPostgresSkillRecordRepository(db).InsertBatch(context.Background(), []SkillRecord{{JobTitle: &title}})
	assert.ErrorIs(t, err, boom)
	assert.False(t, db.tx.committed)
	assert.True(t, db.tx.rolledBack)
}
