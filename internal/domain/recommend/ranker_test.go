package recommend

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func trainFixture(t *testing.T, opts ...Option) *Model {
	t.Helper()
	m, err := Train(context.Background(), fixtureRecords(), opts...)
	require.NoError(t, err)
	return m
}

func titles(recs []Recommendation) []string {
	out := make([]string, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.JobTitle)
	}
	return out
}

func assertRankOrder(t *testing.T, recs []Recommendation) {
	t.Helper()
	for i := 1; i < len(recs); i++ {
		a, b := recs[i-1], recs[i]
		ok := a.MatchedCount > b.MatchedCount ||
			(a.MatchedCount == b.MatchedCount && a.MissingCount <= b.MissingCount)
		assert.Truef(t, ok, "rank order broken between %q and %q", a.JobTitle, b.JobTitle)
	}
}

func TestTrain_Info(t *testing.T) {
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	m := trainFixture(t, WithClock(func() time.Time { return fixed }))

	info := m.Info()
	assert.Equal(t, 5, info.Records)
	assert.Equal(t, 4, info.Documents)
	assert.Equal(t, 4, info.Labels)
	assert.Equal(t, fixed, info.TrainedAt)
	assert.Positive(t, info.VocabularySize)
	assert.Equal(t, m.ID(), info.ID)
}

func TestTrain_EmptyDataset(t *testing.T) {
	_, err := Train(context.Background(), nil)
	assert.ErrorIs(t, err, ErrDataIntegrity)
}

func TestTrain_IntegrityErrorAbortsTraining(t *testing.T) {
	records := append(fixtureRecords(), Record{JobTitle: "QA Engineer"})
	m, err := Train(context.Background(), records)
	assert.ErrorIs(t, err, ErrDataIntegrity)
	assert.Nil(t, m)
}

func TestRecommend_ExplainsMatchedAndMissing(t *testing.T) {
	m := trainFixture(t)

	recs := m.Recommend([]string{"SQL", " Excel "}, nil, 10)
	require.NotEmpty(t, recs)

	assert.Equal(t, "Data Analyst", recs[0].JobTitle)
	assert.Equal(t, []string{"excel", "sql"}, recs[0].MatchedSkills)
	assert.Equal(t, []string{"python"}, recs[0].MissingSkills)
	assert.Equal(t, 2, recs[0].MatchedCount)
	assert.Equal(t, 1, recs[0].MissingCount)
}

func TestRecommend_MatchedAndMissingPartitionRequired(t *testing.T) {
	m := trainFixture(t)
	user := []string{"python", "sql", "react"}

	recs := m.Recommend(user, nil, len(m.Labels()))
	require.Len(t, recs, len(m.Labels()))

	for _, r := range recs {
		required, ok := m.requiredSkills(r.JobTitle)
		require.True(t, ok)

		matched := NormalizeSkills(r.MatchedSkills)
		missing := NormalizeSkills(r.MissingSkills)
		assert.Equal(t, required, matched.Union(missing))
		for k := range matched {
			assert.False(t, missing.Has(k))
		}
	}
	assertRankOrder(t, recs)
}

func TestRecommend_TruncatesToN(t *testing.T) {
	m := trainFixture(t)

	recs := m.Recommend([]string{"python"}, nil, 2)
	assert.Len(t, recs, 2)
	assertRankOrder(t, recs)

	assert.Empty(t, m.Recommend([]string{"python"}, nil, 0))
	assert.Empty(t, m.Recommend([]string{"python"}, nil, -3))
}

func TestRecommend_IncludeSkillsFilter(t *testing.T) {
	m := trainFixture(t)
	user := []string{"go", "docker", "sql"}

	unfiltered := m.Recommend(user, nil, 5)
	require.NotEmpty(t, unfiltered)
	assert.Equal(t, "Backend Developer", unfiltered[0].JobTitle)

	filtered := m.Recommend(user, []string{" Python"}, 5)
	assert.Equal(t, []string{"Data Analyst", "ML Engineer"}, titles(filtered))
	for _, r := range filtered {
		assert.Contains(t, r.MissingSkills, "python")
	}

	none := m.Recommend(user, []string{"cobol"}, 5)
	assert.Empty(t, none)
}

func TestRecommend_PerfectMatch(t *testing.T) {
	m := trainFixture(t)

	recs := m.Recommend([]string{"Go", "SQL", "Docker"}, nil, 5)
	partial, perfect := Partition(recs)

	require.Len(t, perfect, 1)
	assert.Equal(t, "Backend Developer", perfect[0].JobTitle)
	assert.Equal(t, []string{"docker", "go", "sql"}, perfect[0].MatchedSkills)
	assert.Empty(t, perfect[0].MissingSkills)
	assert.NotContains(t, titles(partial), "Backend Developer")
	assert.Len(t, partial, len(recs)-1)
}

func TestRecommend_DegenerateQueryStillRanks(t *testing.T) {
	m := trainFixture(t)

	recs := m.Recommend(nil, nil, 5)
	assert.Equal(t, []string{"Backend Developer", "Data Analyst", "Frontend Developer", "ML Engineer"}, titles(recs))

	unknown := m.Recommend([]string{"cobol", "fortran"}, nil, 5)
	assert.Equal(t, titles(recs), titles(unknown))
	for _, r := range unknown {
		assert.InDelta(t, 0.25, r.Probability, 1e-12)
	}
}

func TestRecommend_DroppedLabelsNeverAppear(t *testing.T) {
	m := trainFixture(t, WithDeclaredLabels("Ghost Title"))

	assert.NotContains(t, m.Labels(), "Ghost Title")
	for _, skills := range [][]string{nil, {"python"}, {"go", "react"}} {
		assert.NotContains(t, titles(m.Recommend(skills, nil, 100)), "Ghost Title")
	}
}

func TestRecommend_ConcurrentReaders(t *testing.T) {
	m := trainFixture(t)
	want := m.Recommend([]string{"python", "sql"}, nil, 3)

	done := make(chan []Recommendation, 8)
	for i := 0; i < 8; i++ {
		go func() { done <- m.Recommend([]string{"python", "sql"}, nil, 3) }()
	}
	for i := 0; i < 8; i++ {
		assert.Equal(t, want, <-done)
	}
}
