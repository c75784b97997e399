package httpserver

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/prasadvm/storekart/internal/logging"
	"github.com/prasadvm/storekart/internal/mykafka"
	"github.com/prasadvm/storekart/internal/service"
)

// respondErr maps service sentinels onto HTTP statuses. Unexpected errors are
// logged in full but surfaced as a generic 500: raw database errors never
// reach the client.
func respondErr(c echo.Context, l *slog.Logger, op string, err error) error {
	switch {
	case errors.Is(err, service.ErrValidation):
		l.Warn(op, "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, message(err))
	case errors.Is(err, service.ErrUnauthorized):
		l.Warn(op, "status", 401, "error", err)
		return echo.NewHTTPError(http.StatusUnauthorized, message(err))
	case errors.Is(err, service.ErrForbidden):
		l.Warn(op, "status", 403, "error", err)
		return echo.NewHTTPError(http.StatusForbidden, message(err))
	case errors.Is(err, service.ErrNotFound):
		l.Warn(op, "status", 404, "error", err)
		return echo.NewHTTPError(http.StatusNotFound, message(err))
	case errors.Is(err, service.ErrConflict):
		l.Warn(op, "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, message(err))
	default:
		l.Error(op, "status", 500, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
	}
}

// message strips the sentinel prefix from wrapped service errors, leaving the
// human-readable part for the response body.
func message(err error) string {
	s := err.Error()
	if i := strings.Index(s, ": "); i >= 0 {
		return s[i+2:]
	}
	return s
}

func publish(c echo.Context, p *mykafka.Producer, topic, key string, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := p.PublishEvent(ctx, topic, key, event); err != nil {
		logging.FromContext(c.Request().Context()).Error("kafka publish error", "topic", topic, "error", err)
	}
}
