// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/livevote/auth"
	"github.com/danielhkuo/livevote/cliparse"
	"github.com/danielhkuo/livevote/middleware"
)

var (
	errNoSession      = errors.New("Authorization bearer token required")
	errRevokedSession = errors.New("session has been signed out")
	errUsernameTaken  = errors.New("username already taken")
)

// authenticate resolves the bearer token of r to a live session.
// Returns errNoSession, auth.ErrInvalidToken, errRevokedSession or a
// database error.
func authenticate(db *sql.DB, cfg cliparse.Config, r *http.Request) (*auth.Claims, error) {
	token := middleware.BearerToken(r)
	if token == "" {
		return nil, errNoSession
	}

	claims, err := auth.ParseToken(cfg.SessionSecret, token)
	if err != nil {
		return nil, err
	}

	var revoked bool
	err = db.QueryRowContext(r.Context(), `
		SELECT revoked FROM session WHERE id = $1 AND account_id = $2
	`, claims.ID, claims.Subject).Scan(&revoked)
	if err == sql.ErrNoRows {
		return nil, auth.ErrInvalidToken
	}
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, errRevokedSession
	}

	return claims, nil
}

// writeAuthError maps an authenticate error to a response
func writeAuthError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errNoSession):
		middleware.ErrorResponse(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, errRevokedSession):
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid or expired session")
	default:
		slog.Error("failed to verify session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
	}
}
