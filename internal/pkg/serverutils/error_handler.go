package serverutils

import (
	"errors"

	"selection-mapper-be/internal/mapper"
	"selection-mapper-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// StatusCode maps an error returned by a handler to an HTTP status.
func StatusCode(err error) int {
	var fiberErr *fiber.Error
	var transformErr *mapper.TransformationError
	var typeErr *mapper.UnexpectedTypeError

	switch {
	case errors.As(err, &fiberErr):
		return fiberErr.Code
	case errors.As(err, &transformErr):
		return fiber.StatusUnprocessableEntity
	case errors.As(err, &typeErr):
		return fiber.StatusBadRequest
	}
	return fiber.StatusInternalServerError
}

// ErrorHandlerMiddleware renders errors returned further down the chain as
// JSON envelopes. Internal errors are logged and hidden from the client.
func ErrorHandlerMiddleware(sysLogger logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		code := StatusCode(err)
		message := err.Error()
		if code >= fiber.StatusInternalServerError {
			sysLogger.Error("http", "Request failed", map[string]interface{}{
				"method": ctx.Method(),
				"path":   ctx.Path(),
				"error":  err,
			})
			message = "Internal server error"
		}

		return ctx.Status(code).JSON(ErrorResponse(code, message))
	}
}
