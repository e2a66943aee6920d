// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/danielhkuo/livevote/auth"
	"github.com/danielhkuo/livevote/cliparse"
	"github.com/danielhkuo/livevote/metrics"
	"github.com/danielhkuo/livevote/middleware"
	"github.com/danielhkuo/livevote/models"
)

type AuthHandler struct {
	db      *sql.DB
	cfg     cliparse.Config
	metrics *metrics.Metrics
}

func NewAuthHandler(db *sql.DB, cfg cliparse.Config, m *metrics.Metrics) *AuthHandler {
	return &AuthHandler{db: db, cfg: cfg, metrics: m}
}

// SignIn handles POST /auth/sign-in
// The first sign-in for a username registers it with the given password.
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req models.SignInRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	if err := auth.ValidateUsername(req.Username); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Password == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "password is required")
		return
	}
	if len(req.Password) > models.MaxPasswordBytes {
		middleware.ErrorResponse(w, http.StatusBadRequest, fmt.Sprintf("password must be at most %d bytes", models.MaxPasswordBytes))
		return
	}

	// Find the account
	var accountID, passwordHash string
	err := h.db.QueryRowContext(r.Context(), `
		SELECT id, password_hash FROM account WHERE username = $1
	`, req.Username).Scan(&accountID, &passwordHash)

	isNew := false
	switch {
	case err == sql.ErrNoRows:
		accountID, err = h.register(r, req)
		if err == errUsernameTaken {
			// Lost a registration race; the winner's password applies
			h.metrics.SignIns.WithLabelValues(metrics.OutcomeRejected).Inc()
			middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid username or password")
			return
		}
		if err != nil {
			slog.Error("failed to register account", "error", err)
			h.metrics.SignIns.WithLabelValues(metrics.OutcomeError).Inc()
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to sign in")
			return
		}
		isNew = true
	case err != nil:
		slog.Error("failed to query account", "error", err)
		h.metrics.SignIns.WithLabelValues(metrics.OutcomeError).Inc()
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	default:
		if err := auth.CheckPassword(passwordHash, req.Password); err != nil {
			slog.Info("sign-in rejected", "username", req.Username, "remote", middleware.GetClientIP(r))
			h.metrics.SignIns.WithLabelValues(metrics.OutcomeRejected).Inc()
			middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid username or password")
			return
		}
	}

	// Open a session
	sessionID := auth.NewID()
	_, err = h.db.ExecContext(r.Context(), `
		INSERT INTO session (id, account_id, created_at) VALUES ($1, $2, $3)
	`, sessionID, accountID, time.Now().UTC())
	if err != nil {
		slog.Error("failed to insert session", "error", err, "account_id", accountID)
		h.metrics.SignIns.WithLabelValues(metrics.OutcomeError).Inc()
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to sign in")
		return
	}

	token, expiresAt, err := auth.IssueToken(h.cfg.SessionSecret, accountID, req.Username, sessionID, h.cfg.SessionTTL, time.Now())
	if err != nil {
		slog.Error("failed to issue session token", "error", err)
		h.metrics.SignIns.WithLabelValues(metrics.OutcomeError).Inc()
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to sign in")
		return
	}

	slog.Info("signed in", "account_id", accountID, "session_id", sessionID, "is_new", isNew)
	h.metrics.SignIns.WithLabelValues(metrics.OutcomeOK).Inc()

	status := http.StatusOK
	if isNew {
		status = http.StatusCreated
	}
	middleware.JSONResponse(w, status, models.SignInResponse{
		Session: models.Session{
			Token:     token,
			User:      models.User{ID: accountID, Username: req.Username},
			ExpiresAt: expiresAt,
		},
		IsNew: isNew,
	})
}

// SignOut handles POST /auth/sign-out
func (h *AuthHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	claims, err := authenticate(h.db, h.cfg, r)
	if err != nil {
		writeAuthError(w, err)
		return
	}

	_, err = h.db.ExecContext(r.Context(), `
		UPDATE session SET revoked = TRUE WHERE id = $1
	`, claims.ID)
	if err != nil {
		slog.Error("failed to revoke session", "error", err, "session_id", claims.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to sign out")
		return
	}

	slog.Info("signed out", "account_id", claims.Subject, "session_id", claims.ID)
	h.metrics.SignOuts.Inc()

	w.WriteHeader(http.StatusNoContent)
}

// GetSession handles GET /auth/session
func (h *AuthHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	claims, err := authenticate(h.db, h.cfg, r)
	if err != nil {
		writeAuthError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SessionResponse{
		User: models.User{ID: claims.Subject, Username: claims.Username},
	})
}

// register creates an account; errUsernameTaken when a concurrent
// sign-in registered the same username first
func (h *AuthHandler) register(r *http.Request, req models.SignInRequest) (string, error) {
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return "", err
	}

	accountID := auth.NewID()
	_, err = h.db.ExecContext(r.Context(), `
		INSERT INTO account (id, username, password_hash, created_at)
		VALUES ($1, $2, $3, $4)
	`, accountID, req.Username, hash, time.Now().UTC())
	if err != nil {
		if isUniqueViolation(err) {
			return "", errUsernameTaken
		}
		return "", err
	}

	slog.Info("account registered", "account_id", accountID, "username", req.Username)
	return accountID, nil
}

// isUniqueViolation recognizes unique constraint errors from both drivers
func isUniqueViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value violates unique constraint")
}
