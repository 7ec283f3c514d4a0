package routes

import (
	"badge-sync/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Registry struct {
	health  *handler.HealthHandler
	predict *handler.PredictHandler
}

func NewRegistry(health *handler.HealthHandler, predict *handler.PredictHandler) *Registry {
	return &Registry{health: health, predict: predict}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerOps(app)
	r.registerLegacy(app)
	r.registerAPI(app)
}

func (r *Registry) registerOps(app *fiber.App) {
	r.health.RegisterRoutes(app)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
}

// registerLegacy keeps the unversioned POST /predict with its unwrapped response body.
func (r *Registry) registerLegacy(app *fiber.App) {
	app.Post("/predict", r.predict.PredictLegacy)
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")
	RegisterV1(api.Group("/v1"), r.predict)
}
