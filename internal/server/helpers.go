package server

import (
	"errors"
	"log/slog"

	"postboard/internal/middleware"
	"postboard/internal/models"

	"github.com/gofiber/fiber/v2"
)

// respondError logs err at the handler boundary and writes its JSON body.
// Client errors are logged at info level, everything else as errors.
func (s *Server) respondError(c *fiber.Ctx, op string, err error) error {
	var appErr *models.AppError
	level := slog.LevelError
	if errors.As(err, &appErr) && appErr.Status() < fiber.StatusInternalServerError {
		level = slog.LevelInfo
	}
	middleware.Logger.Log(c.UserContext(), level, "post request rejected",
		slog.String("operation", op),
		slog.String("error", err.Error()),
	)
	return models.RespondWithError(c, err)
}

// parseBody decodes a post or comment payload. An empty body decodes to the
// zero value so the validator reports the missing fields.
func parseBody[T any](c *fiber.Ctx) (T, error) {
	var in T
	if len(c.Body()) == 0 {
		return in, nil
	}
	if err := c.BodyParser(&in); err != nil {
		return in, models.NewValidationError(map[string]string{"body": "Invalid request body"})
	}
	return in, nil
}
