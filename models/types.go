package models

import "time"

// Counter field names accepted by the increment operation
const (
	FieldVotes = "votes"
)

// MaxPasswordBytes is the longest password accepted at sign-in (bcrypt's input limit)
const MaxPasswordBytes = 72

// SSE event names
const (
	EventSnapshot = "snapshot"
)

// Request types

type SignInRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type IncrementRequest struct {
	Field string `json:"field"`
	Delta int64  `json:"delta"`
}

// Response types

type SignInResponse struct {
	Session Session `json:"session"`
	IsNew   bool    `json:"is_new"`
}

type SessionResponse struct {
	User User `json:"user"`
}

// Domain types

// Option is one votable entry of the options collection.
// Votes is zero when the stored counter is absent.
type Option struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Votes int64  `json:"votes"`
}

// Snapshot is the full options collection at one point in time.
type Snapshot struct {
	Options []Option  `json:"options"`
	TakenAt time.Time `json:"taken_at"`
}

type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// Session is the authenticated identity as issued by the identity provider.
type Session struct {
	Token     string    `json:"token"`
	User      User      `json:"user"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
