// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/danielhkuo/livevote/cliparse"
	"github.com/danielhkuo/livevote/handlers"
	"github.com/danielhkuo/livevote/metrics"
	"github.com/danielhkuo/livevote/middleware"
	"github.com/danielhkuo/livevote/store"
)

// NewRouter wires every route of the data service.
// Metrics are registered on registry and exposed on GET /metrics.
func NewRouter(db *sql.DB, cfg cliparse.Config, st *store.Store, registry *prometheus.Registry) *http.ServeMux {
	mux := http.NewServeMux()
	m := metrics.New(registry)

	// Initialize handlers
	optionsHandler := handlers.NewOptionsHandler(db, cfg, st, m)
	authHandler := handlers.NewAuthHandler(db, cfg, m)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Options collection (public reads, authenticated writes)
	mux.HandleFunc("GET /options", middleware.WithLogging(optionsHandler.ListOptions))
	mux.HandleFunc("GET /options/stream", middleware.WithLogging(optionsHandler.StreamOptions))
	mux.HandleFunc("POST /options/{id}/increment", middleware.WithLogging(optionsHandler.Increment))

	// Identity provider
	mux.HandleFunc("POST /auth/sign-in", middleware.WithLogging(authHandler.SignIn))
	mux.HandleFunc("POST /auth/sign-out", middleware.WithLogging(authHandler.SignOut))
	mux.HandleFunc("GET /auth/session", middleware.WithLogging(authHandler.GetSession))

	// Metrics
	mux.Handle("GET /metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("livevote API v1"))
	})

	return mux
}
