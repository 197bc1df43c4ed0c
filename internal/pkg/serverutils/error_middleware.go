package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"lifehub-agent-be/internal/pkg/logger"
	"lifehub-agent-be/pkg/agent"
)

// ErrorHandlerMiddleware maps typed pipeline errors to status codes on the
// non-streaming endpoints. The streaming endpoint never reaches this: it has
// already answered 200 and reports failures as an in-stream error event.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		status := fiber.StatusInternalServerError

		var planErr *agent.PlanningError
		var streamErr *agent.StreamInterruptedError
		var validationErr *ValidationError
		var fiberErr *fiber.Error

		switch {
		case errors.As(err, &planErr):
			status = fiber.StatusUnprocessableEntity
		case errors.As(err, &streamErr):
			status = fiber.StatusBadGateway
		case errors.As(err, &validationErr):
			status = fiber.StatusBadRequest
		case errors.As(err, &fiberErr):
			status = fiberErr.Code
		}

		if status >= 500 {
			log.Error("http", "request failed", map[string]interface{}{
				"path":  ctx.Path(),
				"error": err.Error(),
			})
		} else {
			log.Warn("http", "request rejected", map[string]interface{}{
				"path":   ctx.Path(),
				"status": status,
				"error":  err.Error(),
			})
		}

		return ctx.Status(status).JSON(ErrorResponse(err.Error()))
	}
}
