package recommend

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"sql", "excel", "python"}, Tokenize("SQL, Excel  python"))
	assert.Equal(t, []string{"machine", "learning", "go"}, Tokenize("Machine Learning, C, Go"))
	assert.Empty(t, Tokenize(" , ; "))
}

func TestVectorizer_FitTransform(t *testing.T) {
	_, corpus, err := BuildCorpus(fixtureRecords())
	require.NoError(t, err)

	vec, err := FitVectorizer(corpus.Texts())
	require.NoError(t, err)

	terms := vec.Terms()
	assert.Contains(t, terms, "tensorflow")
	assert.IsIncreasing(t, terms)

	idx := map[string]int{}
	for i, term := range terms {
		idx[term] = i
	}
	// excel appears in one title, python in two
	assert.Greater(t, vec.idf[idx["excel"]], vec.idf[idx["python"]])

	v := vec.Transform("python excel excel")
	require.Len(t, v.Index, 2)
	var norm float64
	for _, x := range v.Value {
		norm += x * x
	}
	assert.InDelta(t, 1.0, math.Sqrt(norm), 1e-9)
}

func TestVectorizer_UnknownTermsAreIgnored(t *testing.T) {
	vec, err := FitVectorizer([]string{"go sql", "react css"})
	require.NoError(t, err)

	v := vec.Transform("cobol fortran")
	assert.True(t, v.isZero())
	assert.Empty(t, v.Index)

	mixed := vec.Transform("cobol go")
	require.Len(t, mixed.Index, 1)
	assert.InDelta(t, 1.0, mixed.Value[0], 1e-9)
}

func TestFitVectorizer_EmptyCorpus(t *testing.T) {
	_, err := FitVectorizer(nil)
	assert.Error(t, err)

	_, err = FitVectorizer([]string{"a, b"})
	assert.Error(t, err)
}

func TestLabelEncoder_DropUnused(t *testing.T) {
	labels, y := NewLabelEncoder("Ghost").Fit([][]string{{"Zeta"}, {"Alpha"}})
	require.Equal(t, []string{"Alpha", "Ghost", "Zeta"}, labels)
	assert.Equal(t, [][]bool{{false, false, true}, {true, false, false}}, y)

	labels, y = DropUnused(labels, y)
	assert.Equal(t, []string{"Alpha", "Zeta"}, labels)
	assert.Equal(t, [][]bool{{false, true}, {true, false}}, y)
}
