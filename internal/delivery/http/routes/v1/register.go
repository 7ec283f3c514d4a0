package v1

import (
	"badge-sync/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

func Register(r fiber.Router, predict *handler.PredictHandler) {
	if r == nil || predict == nil {
		return
	}

	predict.RegisterRoutes(r)
}
