package http

import (
	stdhttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bank-ledger/internal/infrastructure/logging"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestNewServer_RateLimitPerIP(t *testing.T) {
	e := NewServer(logging.Discard(), ServerOptions{RateLimit: 1})
	e.GET("/ping", func(c echo.Context) error { return c.NoContent(stdhttp.StatusNoContent) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(stdhttp.MethodGet, "/ping", nil)
		req.RemoteAddr = "192.0.2.7:5000"
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	// burst of two, then refused
	assert.Equal(t, []int{stdhttp.StatusNoContent, stdhttp.StatusNoContent, stdhttp.StatusTooManyRequests}, codes)

	// another client has its own bucket
	req := httptest.NewRequest(stdhttp.MethodGet, "/ping", nil)
	req.RemoteAddr = "198.51.100.9:5000"
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, stdhttp.StatusNoContent, rec.Code)
}

func TestNewServer_RecoversAndTagsRequests(t *testing.T) {
	e := NewServer(logging.Discard(), ServerOptions{RequestTimeout: time.Second})
	e.GET("/panic", func(echo.Context) error { panic("boom") })

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, "/panic", nil))

	assert.Equal(t, stdhttp.StatusInternalServerError, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
}
