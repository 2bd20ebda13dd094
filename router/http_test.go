package router

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakePinger struct{ err error }

func (p fakePinger) PingContext(context.Context) error { return p.err }

func TestHealthCheck(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		r := NewHTTPRouter(fakePinger{})

		req, _ := http.NewRequest("GET", "/health", nil)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"status":"Bot is healthy and running"}`, rr.Body.String())
	})

	t.Run("database down", func(t *testing.T) {
		r := NewHTTPRouter(fakePinger{err: errors.New("gone")})

		req, _ := http.NewRequest("GET", "/health", nil)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
		assert.JSONEq(t, `{"status":"Database unavailable"}`, rr.Body.String())
	})

	t.Run("wrong method", func(t *testing.T) {
		r := NewHTTPRouter(nil)

		req, _ := http.NewRequest("POST", "/health", nil)
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	})
}
