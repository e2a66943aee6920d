// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tui

import (
	"time"

	"github.com/danielhkuo/livevote/models"
)

// OptionsMsg carries one snapshot of the options collection.
type OptionsMsg struct {
	Options []models.Option
}

// OptionsClosedMsg is sent when the options subscription ends.
type OptionsClosedMsg struct{}

// SessionMsg carries an auth-state change. Session is nil when signed out.
type SessionMsg struct {
	Session *models.Session
}

// SessionClosedMsg is sent when the session subscription ends.
type SessionClosedMsg struct{}

// VoteResultMsg reports the outcome of a vote write. Ballot and Token
// identify the ballot and session the write was issued under.
type VoteResultMsg struct {
	OptionID string
	Ballot   uint64
	Token    string
	Err      error
}

// SignInResultMsg reports the outcome of a sign-in attempt.
type SignInResultMsg struct {
	Session *models.Session
	Err     error
}

// SignOutResultMsg reports the outcome of a sign-out call.
type SignOutResultMsg struct {
	Err error
}

// FrameMsg advances the bar animation.
type FrameMsg struct {
	Time time.Time
}
