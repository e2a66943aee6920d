// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/danielhkuo/livevote/auth"
	"github.com/danielhkuo/livevote/models"
)

var (
	ErrOptionNotFound = errors.New("option not found")
	ErrUnknownField   = errors.New("unknown counter field")
	ErrInvalidDelta   = errors.New("delta must be positive")
)

// Store is the options collection backed by SQL.
// Every successful write publishes a fresh snapshot on the hub.
type Store struct {
	db  *sql.DB
	hub *Hub

	// pubMu orders read-then-publish so a stale read never overtakes a newer one
	pubMu sync.Mutex
}

func New(db *sql.DB) *Store {
	return &Store{db: db, hub: NewHub()}
}

// Hub returns the snapshot hub fed by this store
func (s *Store) Hub() *Hub {
	return s.hub
}

// List reads the whole collection
func (s *Store) List(ctx context.Context) ([]models.Option, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, votes FROM options ORDER BY created_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query options: %w", err)
	}
	defer rows.Close()

	options := []models.Option{}
	for rows.Next() {
		opt, err := scanOption(rows)
		if err != nil {
			return nil, err
		}
		options = append(options, opt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read options: %w", err)
	}
	return options, nil
}

// Snapshot reads the whole collection as a snapshot
func (s *Store) Snapshot(ctx context.Context) (models.Snapshot, error) {
	options, err := s.List(ctx)
	if err != nil {
		return models.Snapshot{}, err
	}
	return models.Snapshot{Options: options, TakenAt: time.Now().UTC()}, nil
}

// Get reads one option
func (s *Store) Get(ctx context.Context, id string) (models.Option, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, votes FROM options WHERE id = $1
	`, id)
	opt, err := scanOption(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Option{}, ErrOptionNotFound
	}
	return opt, err
}

// Increment atomically adds delta to a counter field of one option.
// The addition happens in the database, independent of any client copy.
func (s *Store) Increment(ctx context.Context, id, field string, delta int64) (models.Option, error) {
	if field != models.FieldVotes {
		return models.Option{}, ErrUnknownField
	}
	if delta <= 0 {
		return models.Option{}, ErrInvalidDelta
	}

	row := s.db.QueryRowContext(ctx, `
		UPDATE options SET votes = COALESCE(votes, 0) + $1
		WHERE id = $2
		RETURNING id, name, votes
	`, delta, id)
	opt, err := scanOption(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Option{}, ErrOptionNotFound
	}
	if err != nil {
		return models.Option{}, fmt.Errorf("failed to increment option %s: %w", id, err)
	}

	s.publish(ctx)
	return opt, nil
}

// Seed inserts one option per name, skipping names that already exist.
// Returns the options that were created.
func (s *Store) Seed(ctx context.Context, names []string) ([]models.Option, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	created := []models.Option{}
	seen := map[string]bool{}
	for _, name := range names {
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true

		var exists bool
		err := tx.QueryRowContext(ctx, `
			SELECT EXISTS(SELECT 1 FROM options WHERE name = $1)
		`, name).Scan(&exists)
		if err != nil {
			return nil, fmt.Errorf("failed to check option %q: %w", name, err)
		}
		if exists {
			continue
		}

		opt := models.Option{ID: auth.NewID(), Name: name}
		// Sub-second timestamp keeps seed order stable in listings
		_, err = tx.ExecContext(ctx, `
			INSERT INTO options (id, name, votes, created_at)
			VALUES ($1, $2, 0, $3)
		`, opt.ID, opt.Name, time.Now().UTC())
		if err != nil {
			return nil, fmt.Errorf("failed to insert option %q: %w", name, err)
		}
		created = append(created, opt)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit seed: %w", err)
	}

	if len(created) > 0 {
		s.publish(ctx)
	}
	return created, nil
}

// Watch re-reads the collection every interval and publishes a snapshot
// whenever it differs from the last one seen. This is how edits made
// outside this process reach subscribers. Blocks until ctx is done.
func (s *Store) Watch(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.refresh(ctx)
		}
	}
}

// refresh publishes the current collection if it changed since the last snapshot
func (s *Store) refresh(ctx context.Context) {
	s.pubMu.Lock()
	defer s.pubMu.Unlock()

	snap, err := s.Snapshot(ctx)
	if err != nil {
		if ctx.Err() == nil {
			slog.Warn("options watch read failed", "error", err)
		}
		return
	}
	if last, ok := s.hub.Last(); ok && slices.Equal(last.Options, snap.Options) {
		return
	}
	s.hub.Publish(snap)
}

func (s *Store) publish(ctx context.Context) {
	s.pubMu.Lock()
	defer s.pubMu.Unlock()

	snap, err := s.Snapshot(ctx)
	if err != nil {
		// The write already succeeded; Watch will catch up
		slog.Warn("failed to read snapshot after write", "error", err)
		return
	}
	s.hub.Publish(snap)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanOption(row scanner) (models.Option, error) {
	var opt models.Option
	var votes sql.NullInt64
	if err := row.Scan(&opt.ID, &opt.Name, &votes); err != nil {
		return models.Option{}, err
	}
	if votes.Valid {
		opt.Votes = votes.Int64
	}
	return opt, nil
}
