package middleware

import (
	"errors"
	"fmt"

	"badge-sync/internal/delivery/http/response"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog"
)

type AppError struct {
	StatusCode int
	Message    string
	Data       interface{}
	Cause      error
}

func (e *AppError) Error() string {
	if e == nil {
		return ""
	}
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func NewAppError(statusCode int, message string, data interface{}, cause error) *AppError {
	return &AppError{StatusCode: statusCode, Message: message, Data: data, Cause: cause}
}

// ErrorMiddleware renders handler errors and panics as SemanticResponse envelopes.
// Details of 5xx errors are logged and never sent to the client.
type ErrorMiddleware struct {
	logger zerolog.Logger
}

func NewErrorMiddleware(logger zerolog.Logger) *ErrorMiddleware {
	return &ErrorMiddleware{logger: logger.With().Str("component", "http").Logger()}
}

func (m *ErrorMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				m.logger.Error().
					Str("path", c.Path()).
					Str("panic", fmt.Sprint(r)).
					Msg("panic recovered")
				err = response.Error(c, fiber.StatusInternalServerError, response.MessageInternalServerError, nil)
			}
		}()

		err = c.Next()
		if err == nil {
			return nil
		}

		status, msg, data := normalizeError(err)
		if status >= 500 {
			m.logger.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("request failed")
		}
		return response.Error(c, status, msg, data)
	}
}

func normalizeError(err error) (int, string, interface{}) {
	if err == nil {
		return fiber.StatusInternalServerError, response.MessageInternalServerError, nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		status := appErr.StatusCode
		if status <= 0 || (status >= 500 && status != fiber.StatusServiceUnavailable) {
			return fiber.StatusInternalServerError, response.MessageInternalServerError, nil
		}
		if status >= 500 {
			return status, response.DefaultMessage(status), nil
		}

		msg := appErr.Message
		if msg == "" {
			msg = response.DefaultMessage(status)
		}
		return status, msg, appErr.Data
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		status := fiberErr.Code
		if status <= 0 || status >= 500 {
			return fiber.StatusInternalServerError, response.MessageInternalServerError, nil
		}

		msg := fiberErr.Message
		if msg == "" {
			msg = response.DefaultMessage(status)
		}
		return status, msg, nil
	}

	return fiber.StatusInternalServerError, response.MessageInternalServerError, nil
}
