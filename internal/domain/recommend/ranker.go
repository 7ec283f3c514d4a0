package recommend

import "sort"

// Recommendation is a badge explained against one user's skills.
type Recommendation struct {
	JobTitle      string
	Probability   float64
	MatchedSkills []string
	MissingSkills []string
	MatchedCount  int
	MissingCount  int
}

// Perfect reports whether the user already has every required skill.
func (r Recommendation) Perfect() bool {
	return r.MissingCount == 0
}

type candidate struct {
	title   string
	proba   float64
	matched SkillSet
	missing SkillSet
}

// Recommend ranks badges for userSkills. The classifier probability only orders the candidate pool;
// the returned order is matched count descending, then missing count ascending, with probability
// (then job title) as the remaining tie-break. When includeSkills is non-empty only badges missing
// all of them are kept. n <= 0 returns nothing.
func (m *Model) Recommend(userSkills, includeSkills []string, n int) []Recommendation {
	if n <= 0 || m == nil {
		return []Recommendation{}
	}

	have := NormalizeSkills(userSkills)
	probs := m.classifier.PredictProba(m.vectorizer.Transform(have.Text()))

	pool := make([]candidate, 0, len(m.labels))
	for i, title := range m.labels {
		required, _ := m.requiredSkills(title)
		matched, missing := required.Split(have)
		pool = append(pool, candidate{title: title, proba: probs[i], matched: matched, missing: missing})
	}
	sort.SliceStable(pool, func(i, j int) bool {
		if pool[i].proba != pool[j].proba {
			return pool[i].proba > pool[j].proba
		}
		return pool[i].title < pool[j].title
	})

	include := NormalizeSkills(includeSkills)
	if include.Len() > 0 {
		kept := pool[:0]
		for _, c := range pool {
			if c.missing.ContainsAll(include) {
				kept = append(kept, c)
			}
		}
		pool = kept
	}

	sort.SliceStable(pool, func(i, j int) bool {
		if pool[i].matched.Len() != pool[j].matched.Len() {
			return pool[i].matched.Len() > pool[j].matched.Len()
		}
		return pool[i].missing.Len() < pool[j].missing.Len()
	})

	if len(pool) > n {
		pool = pool[:n]
	}

	out := make([]Recommendation, 0, len(pool))
	for _, c := range pool {
		out = append(out, Recommendation{
			JobTitle:      c.title,
			Probability:   c.proba,
			MatchedSkills: c.matched.Sorted(),
			MissingSkills: c.missing.Sorted(),
			MatchedCount:  c.matched.Len(),
			MissingCount:  c.missing.Len(),
		})
	}
	return out
}

// Partition splits recommendations into partial matches and perfect matches, keeping order.
func Partition(recs []Recommendation) (partial, perfect []Recommendation) {
	partial = make([]Recommendation, 0, len(recs))
	perfect = make([]Recommendation, 0)
	for _, r := range recs {
		if r.Perfect() {
			perfect = append(perfect, r)
			continue
		}
		partial = append(partial, r)
	}
	return partial, perfect
}
