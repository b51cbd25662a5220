package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dtroode/routinekeeper/internal/logger"
	"github.com/dtroode/routinekeeper/internal/model"
)

// ProfileCreator provisions the profile row that accompanies a new
// user. In the hosted deployment this was a database trigger; here the
// auth service performs the insert itself right after signup.
type ProfileCreator interface {
	Create(ctx context.Context, profile model.Profile) (model.Profile, error)
}

// Service implements model.AuthProvider on top of a user store, a
// token manager and bcrypt password hashes. Session-change listeners
// are notified synchronously on every sign-in, sign-up and sign-out,
// so each listener observes transitions in the order they happen.
type Service struct {
	users    model.UserStore
	profiles ProfileCreator
	tokens   model.TokenManager
	logger   *logger.Logger

	mu        sync.Mutex
	current   model.Session
	listeners map[int]model.SessionListener
	nextID    int
}

var _ model.AuthProvider = (*Service)(nil)

func NewService(
	users model.UserStore,
	profiles ProfileCreator,
	tokens model.TokenManager,
	logger *logger.Logger,
) *Service {
	return &Service{
		users:     users,
		profiles:  profiles,
		tokens:    tokens,
		logger:    logger.Component("auth"),
		listeners: map[int]model.SessionListener{},
	}
}

// CurrentSession returns the live session, or a zero session when none
// exists or the held token has expired.
func (s *Service) CurrentSession(ctx context.Context) (model.Session, error) {
	s.mu.Lock()
	current := s.current
	s.mu.Unlock()

	if current.IsZero() {
		return model.Session{}, nil
	}

	if _, err := s.tokens.ParseSessionToken(current.Token); err != nil {
		s.logger.Debug("Auth service: held session token no longer valid",
			"user_id", current.UserID,
			"error", err.Error())
		s.setSession(model.Session{})
		return model.Session{}, nil
	}

	return current, nil
}

// SignInWithPassword verifies the credentials and establishes a
// session. Unknown emails and wrong passwords are indistinguishable.
func (s *Service) SignInWithPassword(ctx context.Context, email, password string) (model.Session, error) {
	s.logger.Debug("Auth service: starting sign-in", "email", email)

	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		return model.Session{}, model.ErrInvalidCredentials
	}
	if err != nil {
		return model.Session{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		s.logger.Info("Auth service: password mismatch", "email", email)
		return model.Session{}, model.ErrInvalidCredentials
	}

	session, err := s.issueSession(user)
	if err != nil {
		return model.Session{}, err
	}

	s.logger.Info("Auth service: sign-in completed", "user_id", user.ID)
	return session, nil
}

// SignUp registers a new user, provisions the profile row and
// establishes a session.
func (s *Service) SignUp(ctx context.Context, email, password string) (model.Session, error) {
	s.logger.Debug("Auth service: starting sign-up", "email", email)

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		return model.Session{}, fmt.Errorf("failed to get user by email: %w", err)
	}
	if existing.ID != uuid.Nil {
		return model.Session{}, model.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return model.Session{}, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user, err := s.users.Create(ctx, model.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return model.Session{}, fmt.Errorf("failed to create user: %w", err)
	}

	if _, err := s.profiles.Create(ctx, model.Profile{
		ID:        user.ID,
		Username:  usernameFromEmail(email),
		CreatedAt: now,
	}); err != nil {
		// The user exists but the profile does not; profile resolution
		// will fail until the row is repaired.
		s.logger.Error("Auth service: failed to provision profile",
			"user_id", user.ID,
			"error", err.Error())
	}

	session, err := s.issueSession(user)
	if err != nil {
		return model.Session{}, err
	}

	s.logger.Info("Auth service: sign-up completed", "user_id", user.ID)
	return session, nil
}

// SignOut terminates the current session. Signing out with no session
// is a no-op.
func (s *Service) SignOut(ctx context.Context) error {
	s.mu.Lock()
	hadSession := !s.current.IsZero()
	s.mu.Unlock()

	if !hadSession {
		return nil
	}

	s.setSession(model.Session{})
	s.logger.Info("Auth service: signed out")
	return nil
}

// OnSessionChange registers a listener for session transitions and
// returns a function removing it.
func (s *Service) OnSessionChange(listener model.SessionListener) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = listener
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

func (s *Service) issueSession(user model.User) (model.Session, error) {
	tokenString, expiresAt, err := s.tokens.GenerateSessionToken(user.ID)
	if err != nil {
		return model.Session{}, fmt.Errorf("failed to issue session token: %w", err)
	}

	session := model.Session{
		Token:     tokenString,
		UserID:    user.ID,
		Email:     user.Email,
		ExpiresAt: expiresAt,
	}
	s.setSession(session)
	return session, nil
}

func (s *Service) setSession(session model.Session) {
	s.mu.Lock()
	s.current = session
	listeners := make([]model.SessionListener, 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.Unlock()

	// Listeners run outside the lock so they may call back into the
	// service.
	for _, l := range listeners {
		l(session)
	}
}

func usernameFromEmail(email string) string {
	if at := strings.IndexByte(email, '@'); at > 0 {
		return email[:at]
	}
	return email
}
