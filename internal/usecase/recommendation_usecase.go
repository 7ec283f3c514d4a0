package usecase

import (
	"context"
	"time"

	"badge-sync/internal/config"
	"badge-sync/internal/domain/recommend"
	"badge-sync/internal/metrics"

	"github.com/rs/zerolog"
)

type PredictParams struct {
	Skills           []string
	AdditionalSkills []string
	// N is the requested result count; nil means the configured default.
	N *int
}

type PartialMatch struct {
	JobTitle      string   `json:"jobTitle"`
	MatchedSkills []string `json:"matchedSkills"`
	MissingSkills []string `json:"missingSkills"`
}

type PredictResult struct {
	Results       []PartialMatch      `json:"results"`
	MatchedBadges []string            `json:"matchedBadges"`
	MatchedSkill  map[string][]string `json:"matchedSkill"`
}

type RecommendationUsecase interface {
	Predict(ctx context.Context, params PredictParams) (PredictResult, error)
	ModelInfo(ctx context.Context) (recommend.ModelInfo, error)
}

type Recommendation struct {
	model  *recommend.Model
	cache  RecommendationCache
	cfg    config.RecommendConfig
	ttl    time.Duration
	logger zerolog.Logger
}

// NewRecommendationUsecase serves a trained model. cache may be nil.
func NewRecommendationUsecase(model *recommend.Model, cache RecommendationCache, cfg config.RecommendConfig, ttl time.Duration, logger zerolog.Logger) *Recommendation {
	if cfg.DefaultN <= 0 {
		cfg.DefaultN = 5
	}
	if cfg.MaxN <= 0 {
		cfg.MaxN = 100
	}
	return &Recommendation{
		model:  model,
		cache:  cache,
		cfg:    cfg,
		ttl:    ttl,
		logger: logger.With().Str("component", "recommendation").Logger(),
	}
}

func (u *Recommendation) Predict(ctx context.Context, params PredictParams) (PredictResult, error) {
	if u == nil || u.model == nil {
		metrics.RecommendationsTotal.WithLabelValues(metrics.OutcomeError).Inc()
		return PredictResult{}, ErrModelNotReady
	}
	if err := ctx.Err(); err != nil {
		return PredictResult{}, err
	}

	n := u.cfg.DefaultN
	if params.N != nil {
		n = *params.N
	}
	if n > u.cfg.MaxN {
		n = u.cfg.MaxN
	}
	if n <= 0 {
		metrics.RecommendationsTotal.WithLabelValues(metrics.OutcomeEmpty).Inc()
		return emptyResult(), nil
	}

	key := ""
	if u.cache != nil {
		key = PredictCacheKey(u.model.ID(), params.Skills, params.AdditionalSkills, n)
		var cached PredictResult
		hit, err := u.cache.GetJSON(ctx, key, &cached)
		if err != nil {
			u.logger.Debug().Err(err).Msg("prediction cache read failed")
		}
		if err == nil && hit {
			metrics.RecommendationCache.WithLabelValues(metrics.CacheHit).Inc()
			u.countOutcome(cached)
			return cached, nil
		}
		metrics.RecommendationCache.WithLabelValues(metrics.CacheMiss).Inc()
	}

	start := time.Now()
	recs := u.model.Recommend(params.Skills, params.AdditionalSkills, n)
	metrics.RecommendationDuration.Observe(time.Since(start).Seconds())

	res := buildResult(recs)
	u.countOutcome(res)

	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, key, res, u.ttl); err != nil {
			u.logger.Debug().Err(err).Msg("prediction cache write failed")
		}
	}

	u.logger.Debug().
		Int("skills", len(params.Skills)).
		Int("additional_skills", len(params.AdditionalSkills)).
		Int("n", n).
		Int("partial", len(res.Results)).
		Int("perfect", len(res.MatchedBadges)).
		Msg("prediction served")

	return res, nil
}

func (u *Recommendation) ModelInfo(_ context.Context) (recommend.ModelInfo, error) {
	if u == nil || u.model == nil {
		return recommend.ModelInfo{}, ErrModelNotReady
	}
	return u.model.Info(), nil
}

func (u *Recommendation) countOutcome(res PredictResult) {
	outcome := metrics.OutcomeResults
	if len(res.Results) == 0 && len(res.MatchedBadges) == 0 {
		outcome = metrics.OutcomeEmpty
	}
	metrics.RecommendationsTotal.WithLabelValues(outcome).Inc()
}

func emptyResult() PredictResult {
	return PredictResult{
		Results:       []PartialMatch{},
		MatchedBadges: []string{},
		MatchedSkill:  map[string][]string{},
	}
}

func buildResult(recs []recommend.Recommendation) PredictResult {
	partial, perfect := recommend.Partition(recs)

	res := emptyResult()
	for _, r := range partial {
		res.Results = append(res.Results, PartialMatch{
			JobTitle:      r.JobTitle,
			MatchedSkills: r.MatchedSkills,
			MissingSkills: r.MissingSkills,
		})
	}
	for _, r := range perfect {
		res.MatchedBadges = append(res.MatchedBadges, r.JobTitle)
		res.MatchedSkill[r.JobTitle] = r.MatchedSkills
	}
	return res
}
