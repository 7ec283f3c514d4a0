package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"badge-sync/internal/domain/recommend"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

const predictCacheKeyPrefix = "predict:"

type RecommendationCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
}

type predictCacheKeyInput struct {
	Skills           []string `json:"skills"`
	AdditionalSkills []string `json:"additional_skills"`
	N                int      `json:"n"`
}

// PredictCacheKey is stable under skill order, case and duplicates. The model id is part of the
// key so that entries of a previous model are never served.
func PredictCacheKey(modelID uuid.UUID, skills, additional []string, n int) string {
	in := predictCacheKeyInput{
		Skills:           recommend.NormalizeSkills(skills).Sorted(),
		AdditionalSkills: recommend.NormalizeSkills(additional).Sorted(),
		N:                n,
	}

	b, _ := json.Marshal(in)
	sum := sha256.Sum256(b)
	return predictCacheKeyPrefix + modelID.String() + ":" + hex.EncodeToString(sum[:])
}

// PredictCachePattern matches every cached prediction of any model.
func PredictCachePattern() string {
	return predictCacheKeyPrefix + "*"
}
