package api

import (
	"net/http"

	"github.com/justzen0/random-walker/internal/api/handlers"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(walks handlers.WalkSuggester, network handlers.NetworkStats) http.Handler {
	mux := http.NewServeMux()

	healthHandler := &handlers.HealthHandler{Network: network}
	walkHandler := &handlers.WalkHandler{Service: walks}

	mux.HandleFunc("/health", healthHandler.Health)
	mux.HandleFunc("POST /walks", walkHandler.Create)
	mux.HandleFunc("GET /walks", walkHandler.List)
	mux.HandleFunc("GET /walks/{id}", walkHandler.Get)
	mux.Handle("GET /metrics", promhttp.Handler())

	return requestIDMiddleware(loggingMiddleware(mux))
}
