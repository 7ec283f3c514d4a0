package recommend

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var ErrDataIntegrity = errors.New("dataset integrity violation")

// Record is one raw dataset row: a job title and its comma separated required skills.
type Record struct {
	JobTitle string
	Skills   string
}

// Catalog maps a job title to the union of every skill listed for it.
type Catalog map[string]SkillSet

func (c Catalog) Titles() []string {
	out := make([]string, 0, len(c))
	for t := range c {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Document is the training text of one job title.
type Document struct {
	JobTitle string
	Text     string
}

type Corpus []Document

func (c Corpus) Texts() []string {
	out := make([]string, 0, len(c))
	for _, d := range c {
		out = append(out, d.Text)
	}
	return out
}

func (c Corpus) Titles() []string {
	out := make([]string, 0, len(c))
	for _, d := range c {
		out = append(out, d.JobTitle)
	}
	return out
}

type corpusAcc struct {
	catalog Catalog
	raw     map[string][]string
}

// BuildCorpus folds raw records into the title catalog and one training document per title.
// Documents are sorted by title. Raw skills strings are concatenated without dedupe so that
// repeated skills weigh more.
func BuildCorpus(records []Record) (Catalog, Corpus, error) {
	acc := corpusAcc{catalog: Catalog{}, raw: map[string][]string{}}
	for i, r := range records {
		next, err := acc.add(i+1, r)
		if err != nil {
			return nil, nil, err
		}
		acc = next
	}

	titles := acc.catalog.Titles()
	corpus := make(Corpus, 0, len(titles))
	for _, t := range titles {
		corpus = append(corpus, Document{JobTitle: t, Text: strings.Join(acc.raw[t], " ")})
	}
	return acc.catalog, corpus, nil
}

func (a corpusAcc) add(row int, r Record) (corpusAcc, error) {
	title := strings.TrimSpace(r.JobTitle)
	if title == "" {
		return a, fmt.Errorf("%w: row %d: missing job title", ErrDataIntegrity, row)
	}
	if strings.TrimSpace(r.Skills) == "" {
		return a, fmt.Errorf("%w: row %d: missing skills for %q", ErrDataIntegrity, row, title)
	}

	skills := ParseSkillList(r.Skills)
	if existing, ok := a.catalog[title]; ok {
		skills = existing.Union(skills)
	}
	a.catalog[title] = skills
	a.raw[title] = append(a.raw[title], r.Skills)
	return a, nil
}
