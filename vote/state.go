// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package vote

import (
	"context"
	"errors"

	"github.com/danielhkuo/livevote/models"
)

var (
	ErrNotSignedIn  = errors.New("sign in to vote")
	ErrAlreadyVoted = errors.New("already voted")
)

// Phase is where a view instance is in its per-session lifecycle
type Phase int

const (
	Unauthenticated Phase = iota
	Ready                 // signed in, not voted
	Voted
)

func (p Phase) String() string {
	switch p {
	case Unauthenticated:
		return "unauthenticated"
	case Ready:
		return "ready"
	case Voted:
		return "voted"
	default:
		return "unknown"
	}
}

// State is everything the view renders from.
//
// Options is written only by snapshots and Session only by session
// events, so the two subscriptions never touch the same field. Selected
// and HasVoted form the local ballot; they guard against a duplicate
// click and are not an integrity mechanism. Ballot numbers the local
// ballot and changes on every reset.
type State struct {
	Options []models.Option
	Session *models.Session

	Selected string
	HasVoted bool
	Ballot   uint64
}

// ApplySnapshot replaces the whole option list
func (s *State) ApplySnapshot(options []models.Option) {
	s.Options = options
}

// ApplySession replaces the session projection. nil means signed out.
func (s *State) ApplySession(sess *models.Session) {
	s.Session = sess
}

// RecordVote marks the ballot as spent on optionID
func (s *State) RecordVote(optionID string) {
	s.Selected = optionID
	s.HasVoted = true
}

// ResetBallot clears the local ballot. The remote count is untouched.
func (s *State) ResetBallot() {
	s.Selected = ""
	s.HasVoted = false
	s.Ballot++
}

// Token is the bearer token of the current session, "" when signed out
func (s State) Token() string {
	if s.Session == nil {
		return ""
	}
	return s.Session.Token
}

// Owns reports whether a vote written under ballot and token still
// belongs to the current ballot and session.
func (s State) Owns(ballot uint64, token string) bool {
	return s.Session != nil && s.Ballot == ballot && s.Session.Token == token
}

func (s State) Phase() Phase {
	switch {
	case s.Session == nil:
		return Unauthenticated
	case s.HasVoted:
		return Voted
	default:
		return Ready
	}
}

// CanVote reports whether a click would issue a write
func (s State) CanVote() bool {
	return s.Phase() == Ready
}

// CastVote issues one atomic +1 on optionID's vote counter. It returns
// ErrNotSignedIn or ErrAlreadyVoted without any write when the ballot is
// not open. The caller records the vote only when the error is nil.
func CastVote(ctx context.Context, c Counter, s State, optionID string) error {
	if s.Session == nil {
		return ErrNotSignedIn
	}
	if s.HasVoted {
		return ErrAlreadyVoted
	}

	_, err := c.Increment(ctx, optionID, models.FieldVotes, 1)
	return err
}
