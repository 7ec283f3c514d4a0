package routes

import (
	"badge-sync/internal/delivery/http/handler"
	v1 "badge-sync/internal/delivery/http/routes/v1"

	"github.com/gofiber/fiber/v3"
)

func RegisterV1(r fiber.Router, predict *handler.PredictHandler) {
	if r == nil {
		return
	}

	v1.Register(r, predict)
}
