package httpapi

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/climate-likelihood/internal/climate"
	"github.com/i474232898/climate-likelihood/internal/store"
)

const (
	reasonValidation = "validation"
	reasonNotFound   = "not_found"
)

// errorResponse is the envelope returned for every failed request.
type errorResponse struct {
	Error   bool   `json:"error"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

// ErrorHandler is the centralized fiber error handler. Core failures are mapped onto
// HTTP statuses by reason.
func ErrorHandler(logger *slog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code, reason := classify(err)
		if code >= fiber.StatusInternalServerError {
			logger.Error("request failed",
				"method", c.Method(),
				"path", c.Path(),
				"status", code,
				"reason", reason,
				"error", err,
			)
		}
		return c.Status(code).JSON(errorResponse{
			Error:   true,
			Reason:  reason,
			Message: err.Error(),
		})
	}
}

func classify(err error) (int, string) {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		switch fe.Code {
		case fiber.StatusBadRequest:
			return fe.Code, reasonValidation
		case fiber.StatusNotFound:
			return fe.Code, reasonNotFound
		default:
			return fe.Code, "http"
		}
	}
	if errors.Is(err, store.ErrNotFound) {
		return fiber.StatusNotFound, reasonNotFound
	}

	reason := climate.Reason(err)
	switch reason {
	case "empty_input", "unclassifiable_boundary":
		return fiber.StatusUnprocessableEntity, reason
	case "transport", "malformed_response":
		return fiber.StatusBadGateway, reason
	default:
		return fiber.StatusInternalServerError, reason
	}
}
