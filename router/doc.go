// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the livevote data service.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	st := store.New(db)
	mux := router.NewRouter(db, cfg, st, prometheus.NewRegistry())

# Endpoints

Health:

	GET /health

Options collection:

	GET  /options                - Current snapshot
	GET  /options/stream         - Snapshot stream (server-sent events)
	POST /options/{id}/increment - Atomic counter increment (bearer token)

Identity provider:

	POST /auth/sign-in  - Sign in (registers on first use)
	POST /auth/sign-out - Revoke the session (bearer token)
	GET  /auth/session  - Current session user (bearer token)

Metrics:

	GET /metrics - Prometheus exposition

# Handler Initialization

The router creates handler instances with dependency injection:

	optionsHandler := handlers.NewOptionsHandler(db, cfg, st, m)
	authHandler := handlers.NewAuthHandler(db, cfg, m)

CORS is applied by the caller around the returned mux.
*/
package router
