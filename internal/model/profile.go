package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ProfileStore defines persistence operations for profiles.
type ProfileStore interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (Profile, error)
}

// Profile is a user's display profile, keyed by the auth user id.
type Profile struct {
	ID        uuid.UUID
	Username  string
	CreatedAt time.Time
}
