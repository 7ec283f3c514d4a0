package dto

import (
	"time"

	"github.com/google/uuid"
)

type ModelInfoResponse struct {
	ModelID        uuid.UUID `json:"modelId"`
	TrainedAt      time.Time `json:"trainedAt"`
	Records        int       `json:"records"`
	Documents      int       `json:"documents"`
	Labels         int       `json:"labels"`
	VocabularySize int       `json:"vocabularySize"`
}

type HealthResponse struct {
	Model    string `json:"model"`
	Database string `json:"database"`
	Cache    string `json:"cache"`
}
