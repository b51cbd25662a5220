package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Session is the live authenticated credential state with the auth
// capability. The zero value means "no session".
type Session struct {
	Token     string
	UserID    uuid.UUID
	Email     string
	ExpiresAt time.Time
}

// IsZero reports whether the session is absent.
func (s Session) IsZero() bool {
	return s.UserID == uuid.Nil
}

// Identity is the resolved user id plus display username, usable by
// consumers once a session's profile has been resolved.
type Identity struct {
	ID       uuid.UUID
	Username string
}

// SessionListener receives session-change notifications. A zero-value
// session signals sign-out or expiry.
type SessionListener func(Session)

// AuthProvider is the remote auth capability. Implementations must
// deliver session-change events in the order they occur.
type AuthProvider interface {
	CurrentSession(ctx context.Context) (Session, error)
	SignInWithPassword(ctx context.Context, email, password string) (Session, error)
	SignUp(ctx context.Context, email, password string) (Session, error)
	SignOut(ctx context.Context) error
	// OnSessionChange registers a listener and returns a function that
	// removes it. Each registration must be released exactly once.
	OnSessionChange(listener SessionListener) (unsubscribe func())
}
