// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/livevote/cliparse"
	"github.com/danielhkuo/livevote/metrics"
	"github.com/danielhkuo/livevote/middleware"
	"github.com/danielhkuo/livevote/models"
	"github.com/danielhkuo/livevote/store"
)

// DefaultKeepAlive is how often an idle snapshot stream gets a comment line
const DefaultKeepAlive = 15 * time.Second

type OptionsHandler struct {
	db        *sql.DB
	cfg       cliparse.Config
	store     *store.Store
	metrics   *metrics.Metrics
	keepAlive time.Duration
}

func NewOptionsHandler(db *sql.DB, cfg cliparse.Config, st *store.Store, m *metrics.Metrics) *OptionsHandler {
	return &OptionsHandler{db: db, cfg: cfg, store: st, metrics: m, keepAlive: DefaultKeepAlive}
}

// ListOptions handles GET /options
func (h *OptionsHandler) ListOptions(w http.ResponseWriter, r *http.Request) {
	snap, err := h.store.Snapshot(r.Context())
	if err != nil {
		slog.Error("failed to list options", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, snap)
}

// StreamOptions handles GET /options/stream
// Server-sent events: one "snapshot" event on connect and one per change.
func (h *OptionsHandler) StreamOptions(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Streaming unsupported")
		return
	}

	ctx := r.Context()
	snapshots, cancel := h.store.Hub().Subscribe()
	defer cancel()

	// Nothing published yet: read the collection ourselves
	var initial *models.Snapshot
	if _, ok := h.store.Hub().Last(); !ok {
		snap, err := h.store.Snapshot(ctx)
		if err != nil {
			slog.Error("failed to read initial snapshot", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		initial = &snap
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	h.metrics.StreamSubscribers.Inc()
	defer h.metrics.StreamSubscribers.Dec()

	if initial != nil {
		if err := h.writeSnapshot(w, flusher, *initial); err != nil {
			return
		}
	}

	ticker := time.NewTicker(h.keepAlive)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case snap, ok := <-snapshots:
			if !ok {
				return
			}
			if err := h.writeSnapshot(w, flusher, snap); err != nil {
				slog.Info("snapshot stream closed", "error", err, "remote", r.RemoteAddr)
				return
			}
		case <-ticker.C:
			if _, err := fmt.Fprint(w, ": keep-alive\n\n"); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

// Increment handles POST /options/{id}/increment
func (h *OptionsHandler) Increment(w http.ResponseWriter, r *http.Request) {
	optionID := r.PathValue("id")
	if optionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "option id is required")
		return
	}

	claims, err := authenticate(h.db, h.cfg, r)
	if err != nil {
		h.metrics.Increments.WithLabelValues(metrics.OutcomeRejected).Inc()
		writeAuthError(w, err)
		return
	}

	var req models.IncrementRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Field == "" {
		req.Field = models.FieldVotes
	}

	opt, err := h.store.Increment(r.Context(), optionID, req.Field, req.Delta)
	switch {
	case errors.Is(err, store.ErrOptionNotFound):
		h.metrics.Increments.WithLabelValues(metrics.OutcomeRejected).Inc()
		middleware.ErrorResponse(w, http.StatusNotFound, "Option not found")
		return
	case errors.Is(err, store.ErrUnknownField), errors.Is(err, store.ErrInvalidDelta):
		h.metrics.Increments.WithLabelValues(metrics.OutcomeRejected).Inc()
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		slog.Error("failed to increment option", "error", err, "option_id", optionID)
		h.metrics.Increments.WithLabelValues(metrics.OutcomeError).Inc()
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to increment")
		return
	}

	slog.Info("counter incremented",
		"option_id", optionID,
		"field", req.Field,
		"delta", req.Delta,
		"account_id", claims.Subject,
	)
	h.metrics.Increments.WithLabelValues(metrics.OutcomeOK).Inc()

	middleware.JSONResponse(w, http.StatusOK, opt)
}

func (h *OptionsHandler) writeSnapshot(w http.ResponseWriter, flusher http.Flusher, snap models.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", models.EventSnapshot, data); err != nil {
		return err
	}
	flusher.Flush()
	h.metrics.SnapshotsSent.Inc()
	return nil
}
