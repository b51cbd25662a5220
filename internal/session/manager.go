package session

import (
	"context"
	"errors"
	"sync"

	"github.com/dtroode/routinekeeper/internal/logger"
	"github.com/dtroode/routinekeeper/internal/model"
	"github.com/dtroode/routinekeeper/internal/observability"
	"github.com/dtroode/routinekeeper/internal/profile"
)

// State enumerates session manager lifecycle states.
type State int

const (
	// StateInitializing means the existing-session check has not
	// finished; consumers must treat identity as unknown, not as
	// logged-out.
	StateInitializing State = iota
	// StateAnonymous means no valid session exists.
	StateAnonymous
	// StateResolvingProfile means a session exists but its identity is
	// not usable yet.
	StateResolvingProfile
	// StateAuthenticated means the identity is resolved and usable.
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateAnonymous:
		return "anonymous"
	case StateResolvingProfile:
		return "resolving-profile"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// ErrAlreadyInitialized is returned by Initialize on reuse.
var ErrAlreadyInitialized = errors.New("session manager already initialized")

// Manager is the single source of truth for who is logged in. Identity
// changes only through the session-change event path; Login and SignUp
// never assign it from their own return values, which keeps a single
// writer for the authenticated state.
type Manager struct {
	provider model.AuthProvider
	resolver *profile.Resolver
	logger   *logger.Logger

	mu          sync.Mutex
	state       State
	session     model.Session
	identity    *model.Identity
	loading     bool
	lastError   string
	generation  uint64
	unsubscribe func()
}

func NewManager(provider model.AuthProvider, resolver *profile.Resolver, logger *logger.Logger) *Manager {
	return &Manager{
		provider: provider,
		resolver: resolver,
		logger:   logger.Component("session"),
		state:    StateInitializing,
		loading:  true,
	}
}

// Initialize registers the session-change listener and recovers an
// existing session from the provider. It returns once the resulting
// state is settled: either anonymous, or with profile resolution run to
// completion.
func (m *Manager) Initialize(ctx context.Context) error {
	m.mu.Lock()
	if m.unsubscribe != nil {
		m.mu.Unlock()
		return ErrAlreadyInitialized
	}
	m.unsubscribe = m.provider.OnSessionChange(func(s model.Session) {
		m.handleSessionChange(s)
	})
	m.mu.Unlock()

	current, err := m.provider.CurrentSession(ctx)
	if err != nil {
		m.logger.Error("Session manager: failed to get current session", "error", err.Error())
		m.settleAnonymous()
		return nil
	}

	if current.IsZero() {
		m.settleAnonymous()
		return nil
	}

	m.handleSessionChange(current)
	return nil
}

// Login forwards credentials to the auth provider. On failure a
// human-readable message is recorded and identity is left untouched.
// On success identity arrives through the session-change path.
func (m *Manager) Login(ctx context.Context, email, password string) {
	if !m.beginCredentialCall(email, password) {
		return
	}

	if _, err := m.provider.SignInWithPassword(ctx, email, password); err != nil {
		m.logger.Info("Session manager: sign-in rejected", "email", email)
		m.failCredentialCall(err, "an error occurred during sign-in")
	}
}

// SignUp registers a new account. Same contract as Login; the profile
// row is provisioned by the provider side.
func (m *Manager) SignUp(ctx context.Context, email, password string) {
	if !m.beginCredentialCall(email, password) {
		return
	}

	if _, err := m.provider.SignUp(ctx, email, password); err != nil {
		m.logger.Info("Session manager: sign-up rejected", "email", email)
		m.failCredentialCall(err, "an error occurred during sign-up")
	}
}

// Logout requests remote session termination. Best effort: failures
// are logged, identity clears through the session-change path.
func (m *Manager) Logout(ctx context.Context) {
	if err := m.provider.SignOut(ctx); err != nil {
		m.logger.Error("Session manager: sign-out failed", "error", err.Error())
	}
}

// Identity returns the resolved identity, if any.
func (m *Manager) Identity() (model.Identity, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.identity == nil {
		return model.Identity{}, false
	}
	return *m.identity, true
}

// State returns the current lifecycle state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Loading reports whether a credential call or resolution is in flight.
func (m *Manager) Loading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loading
}

// LastError returns the user-visible message of the last failed
// credential call, empty when the last call succeeded.
func (m *Manager) LastError() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastError
}

// Close releases the session-change subscription. Safe to call more
// than once.
func (m *Manager) Close() {
	m.mu.Lock()
	unsubscribe := m.unsubscribe
	m.unsubscribe = nil
	m.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
}

func (m *Manager) beginCredentialCall(email, password string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if email == "" || password == "" {
		m.lastError = "email and password are required"
		return false
	}

	m.loading = true
	m.lastError = ""
	return true
}

func (m *Manager) failCredentialCall(err error, fallback string) {
	message := fallback
	if errors.Is(err, model.ErrInvalidCredentials) || errors.Is(err, model.ErrEmailTaken) {
		message = err.Error()
	}

	m.mu.Lock()
	m.lastError = message
	m.loading = false
	m.mu.Unlock()
}

func (m *Manager) settleAnonymous() {
	m.mu.Lock()
	m.identity = nil
	m.session = model.Session{}
	m.setState(StateAnonymous)
	m.loading = false
	m.mu.Unlock()
}

// setState must be called with m.mu held.
func (m *Manager) setState(s State) {
	if m.state != s {
		observability.RecordSessionTransition(s.String())
	}
	m.state = s
}

// handleSessionChange is the only writer of identity. Each event bumps
// the generation counter; a profile resolution that finishes after a
// newer event has arrived is discarded, so rapid logout/login cannot
// leave identity reflecting a stale session.
func (m *Manager) handleSessionChange(s model.Session) {
	if s.IsZero() {
		m.logger.Debug("Session manager: session cleared")
		m.mu.Lock()
		m.generation++
		m.identity = nil
		m.session = model.Session{}
		m.setState(StateAnonymous)
		m.loading = false
		m.mu.Unlock()
		return
	}

	m.mu.Lock()
	m.generation++
	gen := m.generation
	m.session = s
	m.setState(StateResolvingProfile)
	m.mu.Unlock()

	identity, err := m.resolver.Resolve(context.Background(), s)

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.generation != gen {
		m.logger.Debug("Session manager: discarding stale profile resolution",
			"user_id", s.UserID)
		return
	}

	if err != nil {
		m.logger.Error("Session manager: failed to resolve profile",
			"user_id", s.UserID,
			"error", err.Error())
		m.loading = false
		return
	}

	m.identity = &identity
	m.setState(StateAuthenticated)
	m.loading = false
}
