package recommend

import (
	"sort"
	"strings"
)

// SkillSet is a set of normalized skill tokens.
type SkillSet map[string]struct{}

func NormalizeSkill(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NormalizeSkills trims, lowercases and dedupes skills. Empty tokens are dropped.
func NormalizeSkills(skills []string) SkillSet {
	out := make(SkillSet, len(skills))
	for _, s := range skills {
		s = NormalizeSkill(s)
		if s == "" {
			continue
		}
		out[s] = struct{}{}
	}
	return out
}

// ParseSkillList splits a comma separated skills string into a SkillSet.
func ParseSkillList(raw string) SkillSet {
	return NormalizeSkills(strings.Split(raw, ","))
}

func (s SkillSet) Has(skill string) bool {
	_, ok := s[skill]
	return ok
}

func (s SkillSet) Len() int {
	return len(s)
}

func (s SkillSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for k := range s {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func (s SkillSet) Union(other SkillSet) SkillSet {
	out := make(SkillSet, len(s)+len(other))
	for k := range s {
		out[k] = struct{}{}
	}
	for k := range other {
		out[k] = struct{}{}
	}
	return out
}

// Split partitions s into the skills present in have and the ones that are not.
func (s SkillSet) Split(have SkillSet) (matched, missing SkillSet) {
	matched = make(SkillSet)
	missing = make(SkillSet)
	for k := range s {
		if have.Has(k) {
			matched[k] = struct{}{}
			continue
		}
		missing[k] = struct{}{}
	}
	return matched, missing
}

func (s SkillSet) ContainsAll(sub SkillSet) bool {
	for k := range sub {
		if !s.Has(k) {
			return false
		}
	}
	return true
}

// Text joins the sorted skills with spaces, the form fed to the vectorizer for queries.
func (s SkillSet) Text() string {
	return strings.Join(s.Sorted(), " ")
}
