package router

import (
	"go-economy-bot/handler"
	"net/http"
)

// NewHTTPRouter serves the operational endpoints.
func NewHTTPRouter(db handler.Pinger) http.Handler {
	mux := http.NewServeMux()

	mux.Handle("GET /health", handler.HealthCheck(db))

	return mux
}
