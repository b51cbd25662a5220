package profile

import (
	"context"
	"errors"
	"fmt"

	"github.com/dtroode/routinekeeper/internal/logger"
	"github.com/dtroode/routinekeeper/internal/model"
)

// ErrProfileNotFound means the session's user has no profile row. This
// is a data-consistency fault after successful authentication, not a
// credential problem, so callers log it rather than surface it to the
// login flow.
var ErrProfileNotFound = errors.New("profile not found")

// Resolver maps an authenticated session to its display profile.
type Resolver struct {
	profiles model.ProfileStore
	logger   *logger.Logger
}

func NewResolver(profiles model.ProfileStore, logger *logger.Logger) *Resolver {
	return &Resolver{
		profiles: profiles,
		logger:   logger.Component("profile"),
	}
}

// Resolve fetches the single profile row scoped to the session's user
// id and produces the identity completing the authenticated state.
func (r *Resolver) Resolve(ctx context.Context, session model.Session) (model.Identity, error) {
	r.logger.Debug("Profile resolver: resolving profile", "user_id", session.UserID)

	p, err := r.profiles.GetByUserID(ctx, session.UserID)
	if errors.Is(err, model.ErrNotFound) {
		return model.Identity{}, ErrProfileNotFound
	}
	if err != nil {
		return model.Identity{}, fmt.Errorf("failed to get profile by user id: %w", err)
	}

	return model.Identity{
		ID:       session.UserID,
		Username: p.Username,
	}, nil
}
