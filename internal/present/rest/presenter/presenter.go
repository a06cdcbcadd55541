package presenter

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/trace"

	"github.com/agencyhub/agencyhub/internal/domain"
)

type errorResponse struct {
	Error string `json:"error"`
}

// OK wraps a successful response.
func OK(c echo.Context, payload any) error {
	return c.JSON(http.StatusOK, payload)
}

func Created(c echo.Context, payload any) error {
	return c.JSON(http.StatusCreated, payload)
}

func BadRequest(c echo.Context, err error) error {
	return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
}

func BadRequestMessage(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, errorResponse{Error: msg})
}

func Unauthorized(c echo.Context, msg string) error {
	return c.JSON(http.StatusUnauthorized, errorResponse{Error: msg})
}

func Forbidden(c echo.Context, msg string) error {
	return c.JSON(http.StatusForbidden, errorResponse{Error: msg})
}

func NotFound(c echo.Context, msg string) error {
	return c.JSON(http.StatusNotFound, errorResponse{Error: msg})
}

func Conflict(c echo.Context, msg string) error {
	return c.JSON(http.StatusConflict, errorResponse{Error: msg})
}

// InternalError logs err and answers with a generic message.
func InternalError(c echo.Context, err error) error {
	ctx := c.Request().Context()
	trace.SpanFromContext(ctx).RecordError(err)
	slog.ErrorContext(
		ctx, "request failed",
		slog.String("error", err.Error()),
		slog.String("method", c.Request().Method),
		slog.String("path", c.Path()),
		slog.String("module", "rest"),
	)
	return c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal server error"})
}

// Error maps domain errors to their status; anything unknown is a 500.
func Error(c echo.Context, err error) error {
	var invalid domain.InvalidArgumentError
	var forbidden domain.ForbiddenError
	var notFound domain.NotFoundError
	var conflict domain.ConflictError

	switch {
	case errors.As(err, &invalid):
		return BadRequestMessage(c, invalid.Error())
	case errors.As(err, &forbidden):
		return Forbidden(c, forbidden.Error())
	case errors.As(err, &notFound):
		return NotFound(c, notFound.Error())
	case errors.As(err, &conflict):
		return Conflict(c, conflict.Error())
	default:
		return InternalError(c, err)
	}
}
