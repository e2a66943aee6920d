// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware holds the HTTP plumbing shared by every handler.

# Request Logging

	mux.HandleFunc("GET /options", middleware.WithLogging(handler))

Each completed request is logged with method, path, status and
duration_ms; 5xx responses at error level. The wrapped writer still
implements http.Flusher, so the snapshot stream can sit behind it.

# CORS

	srv := &http.Server{Handler: middleware.CORS(mux)}

Echoes the request Origin (or "*") and answers preflight requests for
GET and POST with the Content-Type and Authorization headers.

# JSON

	middleware.JSONResponse(w, http.StatusOK, option)
	middleware.ErrorResponse(w, http.StatusNotFound, "Option not found")

	var req models.IncrementRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil { ... }

# Request Identity

	token := middleware.BearerToken(r) // "" when absent
	ip := middleware.GetClientIP(r)    // X-Forwarded-For, X-Real-IP, RemoteAddr
*/
package middleware
