package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"docrag-be/pkg/backend"
	"docrag-be/pkg/filesearch"
)

var ErrNotFound = errors.New("resource not found")

// StatusFor maps domain errors to HTTP status codes.
func StatusFor(err error) int {
	var (
		validationErr *ValidationError
		fiberErr      *fiber.Error
		providerErr   *filesearch.APIError
		backendErr    *backend.APIError
	)

	switch {
	case errors.As(err, &validationErr),
		errors.Is(err, filesearch.ErrMissingStoreName):
		return fiber.StatusBadRequest
	case errors.As(err, &fiberErr):
		return fiberErr.Code
	case errors.Is(err, ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, filesearch.ErrNotInitialized):
		return fiber.StatusServiceUnavailable
	case errors.Is(err, filesearch.ErrOperationTimeout):
		return fiber.StatusGatewayTimeout
	case errors.As(err, &backendErr):
		if backendErr.StatusCode == fiber.StatusUnauthorized {
			return fiber.StatusUnauthorized
		}
		return fiber.StatusBadGateway
	case errors.As(err, &providerErr),
		errors.Is(err, filesearch.ErrOperationFailed):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		code := StatusFor(err)
		return ctx.Status(code).JSON(ErrorResponse(code, err.Error()))
	}
}
