package handler

import (
	"context"
	"time"

	"badge-sync/internal/delivery/http/dto"
	"badge-sync/internal/delivery/http/response"
	"badge-sync/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

const (
	stateUp       = "up"
	stateDown     = "down"
	stateDisabled = "disabled"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports model readiness. Database and cache are optional; nil means disabled.
// Only a missing model makes the service unhealthy since predictions never need the others.
type HealthHandler struct {
	uc    usecase.RecommendationUsecase
	db    Pinger
	cache Pinger
}

func NewHealthHandler(uc usecase.RecommendationUsecase, db, cache Pinger) *HealthHandler {
	return &HealthHandler{uc: uc, db: db, cache: cache}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Health)
}

func (h *HealthHandler) Health(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	out := dto.HealthResponse{
		Model:    stateUp,
		Database: ping(ctx, h.db),
		Cache:    ping(ctx, h.cache),
	}

	status := fiber.StatusOK
	if h.uc == nil {
		out.Model = stateDown
		status = fiber.StatusServiceUnavailable
	} else if _, err := h.uc.ModelInfo(ctx); err != nil {
		out.Model = stateDown
		status = fiber.StatusServiceUnavailable
	}

	return response.Success(c, status, "", out)
}

func ping(ctx context.Context, p Pinger) string {
	if p == nil {
		return stateDisabled
	}
	if err := p.Ping(ctx); err != nil {
		return stateDown
	}
	return stateUp
}
