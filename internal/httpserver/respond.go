package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/techclub/club-portal/internal/service"
	"github.com/techclub/club-portal/internal/tokens"
	"github.com/techclub/club-portal/internal/upload"
)

func pagedResponse(items any, page, size int, total int64) echo.Map {
	totalPages := (total + int64(size) - 1) / int64(size)
	return echo.Map{
		"data": items,
		"meta": echo.Map{
			"page":        page,
			"size":        size,
			"total":       total,
			"total_pages": totalPages,
			"has_prev":    page > 1,
			"has_next":    int64(page) < totalPages,
		},
	}
}

// HTTPErrorHandler maps the service error taxonomy onto the {message, error?}
// wire shape. Handlers translate NotFound themselves so the message can name
// the resource; everything else lands here.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var he *echo.HTTPError
	var fe *service.FieldErrors
	var ce *service.ConflictError

	switch {
	case errors.As(err, &he):
		_ = c.JSON(he.Code, echo.Map{"message": he.Message})
	case errors.As(err, &fe):
		_ = c.JSON(http.StatusBadRequest, echo.Map{
			"message": "Validation failed",
			"errors":  fe.Fields,
		})
	case errors.As(err, &ce):
		_ = c.JSON(http.StatusConflict, echo.Map{"message": ce.Error()})
	case errors.Is(err, service.ErrConflict):
		_ = c.JSON(http.StatusConflict, echo.Map{"message": err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		_ = c.JSON(http.StatusUnauthorized, echo.Map{"message": "Invalid credentials"})
	case errors.Is(err, tokens.ErrInvalidToken):
		_ = c.JSON(http.StatusUnauthorized, echo.Map{"message": "Token is not valid"})
	case errors.Is(err, service.ErrForbidden):
		_ = c.JSON(http.StatusForbidden, echo.Map{"message": "Access denied"})
	case errors.Is(err, service.ErrNotFound):
		_ = c.JSON(http.StatusNotFound, echo.Map{"message": "Not found"})
	case errors.Is(err, upload.ErrNotImage), errors.Is(err, upload.ErrTooLarge):
		_ = c.JSON(http.StatusBadRequest, echo.Map{"message": err.Error()})
	default:
		// Internal detail stays in the logs.
		_ = c.JSON(http.StatusInternalServerError, echo.Map{"message": "Server error"})
	}
}
