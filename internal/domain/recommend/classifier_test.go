package recommend

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fitFixture(t *testing.T) (*Vectorizer, *Classifier, []string) {
	t.Helper()

	_, corpus, err := BuildCorpus(fixtureRecords())
	require.NoError(t, err)
	vec, err := FitVectorizer(corpus.Texts())
	require.NoError(t, err)

	labels, y := NewLabelEncoder().Fit(singletonLabelSets(corpus.Titles()))
	clf := NewClassifier(1.0)
	require.NoError(t, clf.Fit(context.Background(), vec.TransformAll(corpus.Texts()), vec.Size(), y))
	return vec, clf, labels
}

func TestClassifier_ZeroVectorReturnsPriors(t *testing.T) {
	_, clf, labels := fitFixture(t)

	probs := clf.PredictProba(Vector{})
	require.Len(t, probs, len(labels))
	for _, p := range probs {
		assert.InDelta(t, 0.25, p, 1e-12)
	}
}

func TestClassifier_DistinctiveTermsWin(t *testing.T) {
	vec, clf, labels := fitFixture(t)

	probs := clf.PredictProba(vec.Transform("react css"))
	best := 0
	for i := range probs {
		if probs[i] > probs[best] {
			best = i
		}
	}
	assert.Equal(t, "Frontend Developer", labels[best])

	// one-vs-rest probabilities are independent, not a distribution
	var sum float64
	for _, p := range probs {
		assert.GreaterOrEqual(t, p, 0.0)
		assert.LessOrEqual(t, p, 1.0)
		sum += p
	}
	assert.NotEqual(t, 1.0, sum)
}

func TestClassifier_Deterministic(t *testing.T) {
	vec1, clf1, _ := fitFixture(t)
	vec2, clf2, _ := fitFixture(t)

	q := "python sql excel"
	assert.Equal(t, clf1.PredictProba(vec1.Transform(q)), clf2.PredictProba(vec2.Transform(q)))
}

func TestClassifier_LabelPresentInEveryRowIsConstant(t *testing.T) {
	vec, err := FitVectorizer([]string{"go sql"})
	require.NoError(t, err)

	clf := NewClassifier(0)
	require.NoError(t, clf.Fit(context.Background(), vec.TransformAll([]string{"go sql"}), vec.Size(), [][]bool{{true}}))

	assert.Equal(t, []float64{1.0}, clf.PredictProba(vec.Transform("go")))
	assert.Equal(t, []float64{1.0}, clf.PredictProba(Vector{}))
}

func TestClassifier_FitValidatesShapes(t *testing.T) {
	clf := NewClassifier(1.0)
	ctx := context.Background()

	assert.Error(t, clf.Fit(ctx, nil, 3, nil))
	assert.Error(t, clf.Fit(ctx, []Vector{{}}, 3, [][]bool{{true}, {false}}))
	assert.Error(t, clf.Fit(ctx, []Vector{{}}, 0, [][]bool{{true}}))
	assert.Error(t, clf.Fit(ctx, []Vector{{Index: []int{5}, Value: []float64{1}}}, 3, [][]bool{{true}}))
}

func TestClassifier_FitHonorsCancellation(t *testing.T) {
	vec, err := FitVectorizer([]string{"go sql", "react css"})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	clf := NewClassifier(1.0)
	err = clf.Fit(ctx, vec.TransformAll([]string{"go sql", "react css"}), vec.Size(), [][]bool{{true, false}, {false, true}})
	assert.ErrorIs(t, err, context.Canceled)
}

// Worked by hand with alpha=1 over two features (go, sql):
// P(c|x) = sigmoid(log prior odds + sum_j x_j * (log theta_pos_j - log theta_neg_j)),
// theta_j = (count_j + 1) / (total + 2).
func TestClassifier_PinnedProbabilities(t *testing.T) {
	ctx := context.Background()
	goTerm := Vector{Index: []int{0}, Value: []float64{1}}
	sqlTerm := Vector{Index: []int{1}, Value: []float64{1}}

	t.Run("two documents", func(t *testing.T) {
		// A = {go:2, sql:1}, B = {sql:1}
		x := []Vector{
			{Index: []int{0, 1}, Value: []float64{2, 1}},
			{Index: []int{1}, Value: []float64{1}},
		}
		y := [][]bool{{true, false}, {false, true}}

		clf := NewClassifier(1.0)
		require.NoError(t, clf.Fit(ctx, x, 2, y))

		// A: theta_pos = (3/5, 2/5), theta_neg = (1/3, 2/3), equal priors.
		// go:  odds (3/5)/(1/3) = 9/5 -> 9/14; B is the mirror image -> 5/14.
		// sql: odds (2/5)/(2/3) = 3/5 -> 3/8; B -> 5/8.
		got := clf.PredictProba(goTerm)
		assert.InDelta(t, 9.0/14.0, got[0], 1e-12)
		assert.InDelta(t, 5.0/14.0, got[1], 1e-12)

		got = clf.PredictProba(sqlTerm)
		assert.InDelta(t, 3.0/8.0, got[0], 1e-12)
		assert.InDelta(t, 5.0/8.0, got[1], 1e-12)
	})

	t.Run("unequal priors", func(t *testing.T) {
		// A = {go:2, sql:1} + {go:1}, B = {sql:1}
		x := []Vector{
			{Index: []int{0, 1}, Value: []float64{2, 1}},
			{Index: []int{1}, Value: []float64{1}},
			goTerm,
		}
		y := [][]bool{{true}, {false}, {true}}

		clf := NewClassifier(1.0)
		require.NoError(t, clf.Fit(ctx, x, 2, y))

		// prior odds 2, theta_pos = (4/6, 2/6), theta_neg = (1/3, 2/3): go odds 2*2 = 4 -> 4/5.
		assert.InDelta(t, 4.0/5.0, clf.PredictProba(goTerm)[0], 1e-12)
		// sql odds 2 * (1/3)/(2/3) = 1 -> 1/2.
		assert.InDelta(t, 0.5, clf.PredictProba(sqlTerm)[0], 1e-12)
		// zero vector: prior 2/3.
		assert.InDelta(t, 2.0/3.0, clf.PredictProba(Vector{})[0], 1e-12)
	})
}
