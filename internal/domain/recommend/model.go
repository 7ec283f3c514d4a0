package recommend

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Model is the trained, read-only recommendation state. It is safe for concurrent use.
type Model struct {
	id         uuid.UUID
	trainedAt  time.Time
	vectorizer *Vectorizer
	classifier *Classifier
	labels     []string
	catalog    Catalog
	documents  int
	records    int
}

type ModelInfo struct {
	ID             uuid.UUID
	TrainedAt      time.Time
	Records        int
	Documents      int
	Labels         int
	VocabularySize int
}

type trainOptions struct {
	alpha        float64
	extraClasses []string
	logger       zerolog.Logger
	now          func() time.Time
}

type Option func(*trainOptions)

func WithAlpha(alpha float64) Option {
	return func(o *trainOptions) { o.alpha = alpha }
}

// WithDeclaredLabels registers job titles as classes even if no training row carries them.
// Such labels have no positives and are dropped before training.
func WithDeclaredLabels(titles ...string) Option {
	return func(o *trainOptions) { o.extraClasses = append(o.extraClasses, titles...) }
}

func WithLogger(logger zerolog.Logger) Option {
	return func(o *trainOptions) { o.logger = logger }
}

func WithClock(now func() time.Time) Option {
	return func(o *trainOptions) { o.now = now }
}

// Train builds the corpus, fits the vectorizer, label space and classifier once.
// Any error means no model; callers must not serve with a partial one.
func Train(ctx context.Context, records []Record, opts ...Option) (*Model, error) {
	o := trainOptions{alpha: defaultAlpha, logger: zerolog.Nop(), now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	logger := o.logger.With().Str("component", "recommend").Logger()
	start := o.now()

	catalog, corpus, err := BuildCorpus(records)
	if err != nil {
		return nil, err
	}
	if len(corpus) == 0 {
		return nil, fmt.Errorf("%w: no records", ErrDataIntegrity)
	}

	vec, err := FitVectorizer(corpus.Texts())
	if err != nil {
		return nil, err
	}
	x := vec.TransformAll(corpus.Texts())

	labels, y := NewLabelEncoder(o.extraClasses...).Fit(singletonLabelSets(corpus.Titles()))
	before := len(labels)
	labels, y = DropUnused(labels, y)
	if dropped := before - len(labels); dropped > 0 {
		logger.Debug().Int("dropped", dropped).Msg("dropped labels without training rows")
	}
	for _, l := range labels {
		if _, ok := catalog[l]; !ok {
			return nil, fmt.Errorf("%w: label %q has no catalog entry", ErrDataIntegrity, l)
		}
	}

	clf := NewClassifier(o.alpha)
	if err := clf.Fit(ctx, x, vec.Size(), y); err != nil {
		return nil, fmt.Errorf("fit classifier: %w", err)
	}

	m := &Model{
		id:         uuid.New(),
		trainedAt:  o.now().UTC(),
		vectorizer: vec,
		classifier: clf,
		labels:     labels,
		catalog:    catalog,
		documents:  len(corpus),
		records:    len(records),
	}

	logger.Info().
		Str("model_id", m.id.String()).
		Int("records", m.records).
		Int("labels", len(labels)).
		Int("vocabulary", vec.Size()).
		Dur("took", o.now().Sub(start)).
		Msg("model trained")

	return m, nil
}

func (m *Model) ID() uuid.UUID {
	return m.id
}

func (m *Model) Labels() []string {
	out := make([]string, len(m.labels))
	copy(out, m.labels)
	return out
}

// requiredSkills returns the catalog skills of a job title.
func (m *Model) requiredSkills(title string) (SkillSet, bool) {
	s, ok := m.catalog[title]
	return s, ok
}

func (m *Model) Info() ModelInfo {
	return ModelInfo{
		ID:             m.id,
		TrainedAt:      m.trainedAt,
		Records:        m.records,
		Documents:      m.documents,
		Labels:         len(m.labels),
		VocabularySize: m.vectorizer.Size(),
	}
}
