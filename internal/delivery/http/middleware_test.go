package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yourusername/autoparts-storefront/internal/domain/entity"
	"golang.org/x/time/rate"
)

func TestFromError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not found", fmt.Errorf("lookup: %w", entity.ErrProductNotFound), http.StatusNotFound, "not_found"},
		{"out of stock", fmt.Errorf("Brake Pads: %w", entity.ErrOutOfStock), http.StatusConflict, "out_of_stock"},
		{"login", entity.ErrLoginRequired, http.StatusUnauthorized, "login_required"},
		{"forbidden", entity.ErrForbidden, http.StatusForbidden, "forbidden"},
		{"validation", entity.ErrPasswordMismatch, http.StatusBadRequest, "validation"},
		{"timeout", fmt.Errorf("ask: %w", context.DeadlineExceeded), http.StatusGatewayTimeout, "timeout"},
		{"app error", badRequest("nope", nil), http.StatusBadRequest, "bad_request"},
		{"unknown", errors.New("disk on fire"), http.StatusInternalServerError, "internal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appErr := FromError(tt.err)
			assert.Equal(t, tt.status, appErr.Status)
			assert.Equal(t, tt.code, appErr.Code)
		})
	}

	assert.Equal(t, "internal server error", FromError(errors.New("secret")).Message)
}

func TestRateLimiter(t *testing.T) {
	r := gin.New()
	r.Use(NewRateLimiter(0.001, 1).Middleware())
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	send := func(ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.RemoteAddr = ip + ":1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, send("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, send("10.0.0.1"))
	assert.Equal(t, http.StatusOK, send("10.0.0.2"))
}

func TestRateLimiterCap(t *testing.T) {
	rl := NewRateLimiter(0.001, 2)
	rl.maxIPs = 2

	busy := rl.Limiter("10.0.0.1")
	require.True(t, busy.Allow())
	rl.Limiter("10.0.0.2")

	rl.Limiter("10.0.0.3")
	assert.Len(t, rl.ips, 2)
	assert.Contains(t, rl.ips, "10.0.0.1")
	assert.Contains(t, rl.ips, "10.0.0.3")
	assert.NotContains(t, rl.ips, "10.0.0.2")
	assert.Same(t, busy, rl.Limiter("10.0.0.1"))

	rl.maxIPs = 1
	rl.ips = map[string]*rate.Limiter{"10.0.0.1": busy}
	rl.Limiter("10.0.0.4")
	assert.Len(t, rl.ips, 1)
	assert.Contains(t, rl.ips, "10.0.0.4")
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), Recovery(nil))
	r.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"code":"internal","message":"internal server error"}`, w.Body.String())
}

func TestRequestIDEchoed(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(ctxRequestID)) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
	assert.Equal(t, "abc-123", w.Body.String())
}
