package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"badge-sync/internal/config"
	"badge-sync/internal/domain/recommend"
)

const (
	DefaultTitleColumn  = "Job Title"
	DefaultSkillsColumn = "Skills_Required"
)

type CSVSource struct {
	Path         string
	TitleColumn  string
	SkillsColumn string
}

func (CSVSource) Name() string { return config.DatasetSourceCSV }

func (s CSVSource) Load(ctx context.Context) ([]recommend.Record, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	return ReadCSV(ctx, f, s.TitleColumn, s.SkillsColumn)
}

// ReadCSV parses a headered CSV. Only the title and skills columns are read; other columns are ignored.
func ReadCSV(ctx context.Context, r io.Reader, titleColumn, skillsColumn string) ([]recommend.Record, error) {
	if titleColumn == "" {
		titleColumn = DefaultTitleColumn
	}
	if skillsColumn == "" {
		skillsColumn = DefaultSkillsColumn
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty dataset", recommend.ErrDataIntegrity)
		}
		return nil, fmt.Errorf("read dataset header: %w", err)
	}

	titleIdx, skillsIdx := -1, -1
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		switch h {
		case titleColumn:
			titleIdx = i
		case skillsColumn:
			skillsIdx = i
		}
	}
	if titleIdx < 0 || skillsIdx < 0 {
		return nil, fmt.Errorf("%w: header must contain %q and %q", recommend.ErrDataIntegrity, titleColumn, skillsColumn)
	}

	out := make([]recommend.Record, 0)
	for line := 2; ; line++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read dataset line %d: %w", line, err)
		}
		if titleIdx >= len(row) || skillsIdx >= len(row) {
			return nil, fmt.Errorf("%w: line %d has %d fields", recommend.ErrDataIntegrity, line, len(row))
		}
		out = append(out, recommend.Record{JobTitle: row[titleIdx], Skills: row[skillsIdx]})
	}
	return out, nil
}
