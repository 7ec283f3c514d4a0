package handler

import (
	"context"
	"errors"

	"badge-sync/internal/delivery/http/dto"
	"badge-sync/internal/delivery/http/middleware"
	"badge-sync/internal/delivery/http/response"
	"badge-sync/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type PredictHandler struct {
	uc usecase.RecommendationUsecase
}

func NewPredictHandler(uc usecase.RecommendationUsecase) *PredictHandler {
	return &PredictHandler{uc: uc}
}

func (h *PredictHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/predict", h.Predict)
	r.Get("/model", h.Model)
}

func (h *PredictHandler) Predict(c fiber.Ctx) error {
	out, err := h.predict(c)
	if err != nil {
		return err
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

// PredictLegacy serves the unversioned route. Its clients read results, matchedBadges and
// matchedSkill at the top level, so the body is not wrapped in the response envelope.
func (h *PredictHandler) PredictLegacy(c fiber.Ctx) error {
	out, err := h.predict(c)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(out)
}

func (h *PredictHandler) predict(c fiber.Ctx) (dto.PredictResponse, error) {
	var req dto.PredictRequest
	if err := c.Bind().Body(&req); err != nil {
		return dto.PredictResponse{}, middleware.NewAppError(fiber.StatusBadRequest, "Invalid request body", nil, err)
	}
	if err := req.Validate(); err != nil {
		return dto.PredictResponse{}, middleware.NewAppError(fiber.StatusBadRequest, dto.ValidationMessage(err), nil, err)
	}

	res, err := h.uc.Predict(c.Context(), usecase.PredictParams{
		Skills:           req.Skills,
		AdditionalSkills: req.AdditionalSkills,
		N:                req.N,
	})
	if err != nil {
		return dto.PredictResponse{}, mapRecommendationUsecaseError(err)
	}

	out := dto.PredictResponse{
		Results:       make([]dto.PartialMatchResponse, 0, len(res.Results)),
		MatchedBadges: res.MatchedBadges,
		MatchedSkill:  res.MatchedSkill,
	}
	for _, r := range res.Results {
		out.Results = append(out.Results, dto.PartialMatchResponse{
			JobTitle:      r.JobTitle,
			MatchedSkills: r.MatchedSkills,
			MissingSkills: r.MissingSkills,
		})
	}
	return out, nil
}

func (h *PredictHandler) Model(c fiber.Ctx) error {
	info, err := h.uc.ModelInfo(c.Context())
	if err != nil {
		return mapRecommendationUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.ModelInfoResponse{
		ModelID:        info.ID,
		TrainedAt:      info.TrainedAt,
		Records:        info.Records,
		Documents:      info.Documents,
		Labels:         info.Labels,
		VocabularySize: info.VocabularySize,
	})
}

func mapRecommendationUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrModelNotReady):
		return middleware.NewAppError(fiber.StatusServiceUnavailable, response.MessageServiceUnavailable, nil, err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return middleware.NewAppError(fiber.StatusServiceUnavailable, response.MessageServiceUnavailable, nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
