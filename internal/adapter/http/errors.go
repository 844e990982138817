package http

import (
	"github.com/IdiotCoffee/jobforge/internal/model"
	"github.com/IdiotCoffee/jobforge/internal/usecase"
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

type ErrorResponse struct {
	Message string             `json:"message"`
	Stage   string             `json:"stage,omitempty"`
	Fields  []model.FieldError `json:"fields,omitempty"`
}

func errorJSON(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(ErrorResponse{Message: message})
}

var statusBySentinel = []struct {
	err    error
	status int
}{
	{usecase.ErrUnauthorized, fiber.StatusUnauthorized},
	{usecase.ErrUserNotFound, fiber.StatusNotFound},
	{usecase.ErrNotFound, fiber.StatusNotFound},
	{usecase.ErrNoSession, fiber.StatusNotFound},
	{usecase.ErrInFlight, fiber.StatusConflict},
	{usecase.ErrConfirmDiscard, fiber.StatusConflict},
	{usecase.ErrEmptyField, fiber.StatusUnprocessableEntity},
	{usecase.ErrUnknownTab, fiber.StatusBadRequest},
	{usecase.ErrSaveFailed, fiber.StatusBadGateway},
	{usecase.ErrLoadFailed, fiber.StatusBadGateway},
	{usecase.ErrImproveFailed, fiber.StatusBadGateway},
	{usecase.ErrCoverLetterFailed, fiber.StatusBadGateway},
}

// writeError maps usecase errors onto HTTP responses. Unknown errors are
// logged and reported without detail.
func writeError(c *fiber.Ctx, err error) error {
	var verr *model.ValidationError
	if errors.As(err, &verr) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(ErrorResponse{Message: "validation failed", Fields: verr.Fields})
	}
	var xerr *usecase.ExportError
	if errors.As(err, &xerr) {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Message: "export failed", Stage: string(xerr.Stage)})
	}
	for _, s := range statusBySentinel {
		if errors.Is(err, s.err) {
			return errorJSON(c, s.status, s.err.Error())
		}
	}
	log.Error().Err(err).Str("component", "http").Str("path", c.Path()).Msg("unhandled error")
	return errorJSON(c, fiber.StatusInternalServerError, "internal error")
}
