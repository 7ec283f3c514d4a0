package recommend

import (
	"errors"
	"math"
	"sort"
	"strings"
	"unicode"
)

// Vector is a sparse feature vector with ascending indices.
type Vector struct {
	Index []int
	Value []float64
}

func (v Vector) isZero() bool {
	for _, x := range v.Value {
		if x != 0 {
			return false
		}
	}
	return true
}

// Vectorizer is a fitted TF-IDF term space.
// Weights are raw term counts times smoothed idf, ln((1+n)/(1+df))+1, with each row L2-normalized.
type Vectorizer struct {
	vocab map[string]int
	terms []string
	idf   []float64
}

// Tokenize lowercases text and returns runs of letters, digits or underscores at least two runes long.
func Tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_')
	})
	out := fields[:0]
	for _, f := range fields {
		if len([]rune(f)) < 2 {
			continue
		}
		out = append(out, f)
	}
	return out
}

func FitVectorizer(docs []string) (*Vectorizer, error) {
	if len(docs) == 0 {
		return nil, errors.New("vectorizer: empty corpus")
	}

	df := map[string]int{}
	for _, d := range docs {
		seen := map[string]struct{}{}
		for _, tok := range Tokenize(d) {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}
	if len(df) == 0 {
		return nil, errors.New("vectorizer: empty vocabulary")
	}

	terms := make([]string, 0, len(df))
	for t := range df {
		terms = append(terms, t)
	}
	sort.Strings(terms)

	n := float64(len(docs))
	v := &Vectorizer{
		vocab: make(map[string]int, len(terms)),
		terms: terms,
		idf:   make([]float64, len(terms)),
	}
	for i, t := range terms {
		v.vocab[t] = i
		v.idf[i] = math.Log((1+n)/(1+float64(df[t]))) + 1
	}
	return v, nil
}

func (v *Vectorizer) Size() int {
	if v == nil {
		return 0
	}
	return len(v.terms)
}

func (v *Vectorizer) Terms() []string {
	out := make([]string, len(v.terms))
	copy(out, v.terms)
	return out
}

// Transform maps text into the fitted space. Unknown terms are ignored.
func (v *Vectorizer) Transform(text string) Vector {
	counts := map[int]float64{}
	for _, tok := range Tokenize(text) {
		idx, ok := v.vocab[tok]
		if !ok {
			continue
		}
		counts[idx]++
	}
	if len(counts) == 0 {
		return Vector{}
	}

	idx := make([]int, 0, len(counts))
	for i := range counts {
		idx = append(idx, i)
	}
	sort.Ints(idx)

	vals := make([]float64, len(idx))
	var norm float64
	for k, i := range idx {
		w := counts[i] * v.idf[i]
		vals[k] = w
		norm += w * w
	}
	norm = math.Sqrt(norm)
	if norm > 0 {
		for k := range vals {
			vals[k] /= norm
		}
	}
	return Vector{Index: idx, Value: vals}
}

func (v *Vectorizer) TransformAll(texts []string) []Vector {
	out := make([]Vector, 0, len(texts))
	for _, t := range texts {
		out = append(out, v.Transform(t))
	}
	return out
}
