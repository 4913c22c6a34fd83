package handlers_fiber

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhmfreitas/usermanager-challenge/internal/dto"
	"github.com/jhmfreitas/usermanager-challenge/internal/entities"
)

// writeError maps domain error kinds onto HTTP statuses: validation → 400,
// not found → 404, duplicate email → 409, forbidden → 403, the rest → 500.
func writeError(c *fiber.Ctx, err error) error {
	status := http.StatusInternalServerError
	title := "Internal Server Error"

	switch {
	case errors.Is(err, entities.ErrInvalidArgument):
		status = http.StatusBadRequest
		title = "Bad Request"
	case errors.Is(err, entities.ErrUserNotFound), errors.Is(err, entities.ErrProjectNotFound):
		status = http.StatusNotFound
		title = "Resource Not Found"
	case errors.Is(err, entities.ErrEmailExists):
		status = http.StatusConflict
		title = "Duplicate creation request"
	case errors.Is(err, entities.ErrForbidden):
		status = http.StatusForbidden
		title = "Forbidden"
	}

	return c.Status(status).JSON(errorResponse(status, title, err.Error()))
}

func errorResponse(status int, title, msg string) dto.ErrorResponse {
	return dto.ErrorResponse{
		Timestamp: time.Now(),
		Status:    status,
		Error:     title,
		Message:   msg,
	}
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(http.StatusBadRequest).JSON(errorResponse(http.StatusBadRequest, "Bad Request", msg))
}

func parseID(c *fiber.Ctx, name string) (int64, error) {
	return strconv.ParseInt(c.Params(name), 10, 64)
}
