package recommend

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"
)

const defaultAlpha = 1.0

// binaryEstimator is a two-class multinomial naive Bayes reduced to its log-odds form:
// log P(pos|x) - log P(neg|x) = bias + sum_j x_j * weight_j.
type binaryEstimator struct {
	constant *float64
	bias     float64
	weight   []float64
}

func (e binaryEstimator) proba(x Vector) float64 {
	if e.constant != nil {
		return *e.constant
	}
	if x.isZero() {
		return sigmoid(e.bias)
	}
	z := e.bias
	for k, j := range x.Index {
		z += x.Value[k] * e.weight[j]
	}
	return sigmoid(z)
}

func sigmoid(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	ez := math.Exp(z)
	return ez / (1 + ez)
}

// Classifier is a one-vs-rest ensemble with one independent estimator per label column.
type Classifier struct {
	alpha      float64
	nFeatures  int
	estimators []binaryEstimator
}

func NewClassifier(alpha float64) *Classifier {
	if alpha <= 0 {
		alpha = defaultAlpha
	}
	return &Classifier{alpha: alpha}
}

func (c *Classifier) Labels() int {
	return len(c.estimators)
}

// Fit trains every label estimator. Estimators are independent, so the concurrent fit is deterministic.
func (c *Classifier) Fit(ctx context.Context, x []Vector, nFeatures int, y [][]bool) error {
	if len(x) == 0 {
		return errors.New("classifier: no training rows")
	}
	if len(x) != len(y) {
		return fmt.Errorf("classifier: %d feature rows but %d label rows", len(x), len(y))
	}
	if nFeatures <= 0 {
		return errors.New("classifier: empty feature space")
	}
	nLabels := len(y[0])
	for r, row := range y {
		if len(row) != nLabels {
			return fmt.Errorf("classifier: label row %d has %d columns, want %d", r, len(row), nLabels)
		}
	}
	for r, v := range x {
		for _, j := range v.Index {
			if j < 0 || j >= nFeatures {
				return fmt.Errorf("classifier: row %d feature index %d out of range", r, j)
			}
		}
	}

	total := make([]float64, nFeatures)
	for _, v := range x {
		for k, j := range v.Index {
			total[j] += v.Value[k]
		}
	}

	estimators := make([]binaryEstimator, nLabels)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for l := 0; l < nLabels; l++ {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			estimators[l] = c.fitOne(x, y, l, total)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	c.nFeatures = nFeatures
	c.estimators = estimators
	return nil
}

func (c *Classifier) fitOne(x []Vector, y [][]bool, label int, total []float64) binaryEstimator {
	n := len(x)
	nFeatures := len(total)

	pos := make([]float64, nFeatures)
	nPos := 0
	for r, v := range x {
		if !y[r][label] {
			continue
		}
		nPos++
		for k, j := range v.Index {
			pos[j] += v.Value[k]
		}
	}

	if nPos == 0 || nPos == n {
		p := 0.0
		if nPos == n {
			p = 1.0
		}
		return binaryEstimator{constant: &p}
	}

	var posSum, negSum float64
	for j := range total {
		posSum += pos[j]
		negSum += total[j] - pos[j]
	}
	smooth := c.alpha * float64(nFeatures)
	posDenom := math.Log(posSum + smooth)
	negDenom := math.Log(negSum + smooth)

	weight := make([]float64, nFeatures)
	for j := range total {
		neg := total[j] - pos[j]
		if neg < 0 {
			neg = 0
		}
		lp := math.Log(pos[j]+c.alpha) - posDenom
		ln := math.Log(neg+c.alpha) - negDenom
		weight[j] = lp - ln
	}

	bias := math.Log(float64(nPos)) - math.Log(float64(n-nPos))
	return binaryEstimator{bias: bias, weight: weight}
}

// PredictProba returns one independent positive-class probability per label, in label order.
// A zero vector yields the class priors.
func (c *Classifier) PredictProba(x Vector) []float64 {
	out := make([]float64, len(c.estimators))
	for l, e := range c.estimators {
		out[l] = e.proba(x)
	}
	return out
}
