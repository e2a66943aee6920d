// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package vote

import (
	"context"

	"github.com/danielhkuo/livevote/models"
)

// Counter performs the atomic increment on the data service
type Counter interface {
	Increment(ctx context.Context, optionID, field string, delta int64) (models.Option, error)
}

// Identity is the identity provider
type Identity interface {
	SignIn(ctx context.Context, username, password string) (*models.Session, error)
	SignOut(ctx context.Context) error
}

// OptionSource pushes the full option list on every change
type OptionSource interface {
	SubscribeOptions(ctx context.Context) <-chan []models.Option
}

// SessionSource pushes the session on every auth-state change
type SessionSource interface {
	SubscribeSession(ctx context.Context) <-chan *models.Session
}

// Backend is everything a view needs from the data service.
// *client.Client implements it.
type Backend interface {
	Counter
	Identity
	OptionSource
	SessionSource
}
