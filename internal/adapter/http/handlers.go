package http

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

type Handler struct {
	ping func(context.Context) error
}

// NewHandler takes an optional store probe; a nil probe reports ok.
func NewHandler(ping func(context.Context) error) *Handler { return &Handler{ping: ping} }

func (h *Handler) Health(c echo.Context) error {
	body := map[string]any{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339Nano),
	}
	if h.ping != nil {
		if err := h.ping(c.Request().Context()); err != nil {
			body["status"] = "degraded"
			body["store"] = err.Error()
			return c.JSON(http.StatusServiceUnavailable, body)
		}
	}
	return c.JSON(http.StatusOK, body)
}
