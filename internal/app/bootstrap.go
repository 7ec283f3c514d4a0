package app

import (
	"context"
	"fmt"
	"strings"

	"badge-sync/internal/config"
	"badge-sync/internal/delivery/http/handler"
	"badge-sync/internal/delivery/http/middleware"
	"badge-sync/internal/delivery/http/routes"
	"badge-sync/internal/usecase"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/rs/zerolog"
)

type App struct {
	Fiber *fiber.App
}

// Deps are the collaborators of the HTTP surface. DB and Cache pingers may be nil.
type Deps struct {
	Recommendations usecase.RecommendationUsecase
	DB              handler.Pinger
	Cache           handler.Pinger
}

func New(cfg config.Config, deps Deps, logger zerolog.Logger) *App {
	f := fiber.New(fiber.Config{
		AppName:     cfg.App.AppName,
		JSONEncoder: json.Marshal,
		JSONDecoder: json.Unmarshal,
	})

	registerGlobalMiddleware(f, cfg, logger)
	registerRoutes(f, deps)

	return &App{Fiber: f}
}

// Bootstrap trains the model and wires the server. Training failure is fatal: there is no
// degraded mode without a model.
func Bootstrap(ctx context.Context, cfg config.Config, logger zerolog.Logger) (*App, func() error, error) {
	c, err := NewContainer(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	deps := Deps{}
	var predictCache usecase.RecommendationCache
	if c.Cache != nil {
		deps.Cache = c.Cache
		if c.Cache.Available() {
			predictCache = c.Cache
		}
	}
	if c.DB != nil {
		deps.DB = c.DB
	}
	deps.Recommendations = usecase.NewRecommendationUsecase(c.Model, predictCache, cfg.Recommend, cfg.Redis.TTL, logger)

	return New(cfg, deps, logger), c.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, cfg config.Config, logger zerolog.Logger) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware(logger).Middleware())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORS.AllowOrigins,
		AllowMethods: []string{fiber.MethodGet, fiber.MethodPost, fiber.MethodOptions},
		AllowHeaders: []string{"Content-Type", middleware.HeaderRequestID},
	}))
	app.Use(middleware.Metrics())
	app.Use(middleware.NewErrorMiddleware(logger).Middleware())
}

func registerRoutes(app *fiber.App, deps Deps) {
	if app == nil {
		return
	}

	health := handler.NewHealthHandler(deps.Recommendations, deps.DB, deps.Cache)
	predict := handler.NewPredictHandler(deps.Recommendations)
	routes.NewRegistry(health, predict).Register(app)
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
