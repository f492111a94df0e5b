package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"docvault/internal/models"
)

type State int

const (
	// StateLoading holds until the persisted token has been read once.
	StateLoading State = iota
	StateUnauthenticated
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Manager holds the process-wide session. Sign-in and sign-out are the only
// writers; reads return snapshots. Watchers observe every transition.
type Manager struct {
	log   *slog.Logger
	store TokenStore

	mu       sync.RWMutex
	state    State
	token    string
	watchers []func(State)
}

func NewManager(log *slog.Logger, store TokenStore) *Manager {
	return &Manager{
		log:   log,
		store: store,
		state: StateLoading,
	}
}

// Restore resolves the initial Loading state from the persisted token. A
// store read failure degrades to Unauthenticated instead of blocking the
// client.
func (m *Manager) Restore(ctx context.Context) State {
	op := pkg + "Restore"

	log := m.log.With(slog.String("op", op))

	log.Debug("attempting to restore session")

	token, found, err := m.store.Load(ctx)
	if err != nil {
		log.Warn("failed to load stored session", slog.String("error", err.Error()))
		return m.transition("", StateUnauthenticated)
	}

	if !found {
		log.Debug("no stored session")
		return m.transition("", StateUnauthenticated)
	}

	log.Debug("session restored")

	return m.transition(token, StateAuthenticated)
}

// SignIn persists the token before touching in-memory state, so a storage
// failure leaves the previous state intact.
func (m *Manager) SignIn(ctx context.Context, token string) error {
	op := pkg + "SignIn"

	log := m.log.With(slog.String("op", op))

	log.Debug("attempting to sign in")

	if token == "" {
		log.Warn("empty token")
		return fmt.Errorf("%s: %w", op, models.ErrInvalidParams)
	}

	if err := m.store.Save(ctx, token); err != nil {
		log.Error("failed to persist session", slog.String("error", err.Error()))
		return fmt.Errorf("%s: %w", op, models.ErrSessionStore)
	}

	m.transition(token, StateAuthenticated)

	log.Debug("signed in")

	return nil
}

// SignOut clears persisted storage before touching in-memory state.
func (m *Manager) SignOut(ctx context.Context) error {
	op := pkg + "SignOut"

	log := m.log.With(slog.String("op", op))

	log.Debug("attempting to sign out")

	if err := m.store.Clear(ctx); err != nil {
		log.Error("failed to clear stored session", slog.String("error", err.Error()))
		return fmt.Errorf("%s: %w", op, models.ErrSessionStore)
	}

	m.transition("", StateUnauthenticated)

	log.Debug("signed out")

	return nil
}

func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.state
}

// Token implements the token source contract of the API clients.
func (m *Manager) Token() (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.token, m.token != ""
}

// OnChange registers a watcher invoked after every transition, outside the
// manager lock, in transition order.
func (m *Manager) OnChange(fn func(State)) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.watchers = append(m.watchers, fn)
}

func (m *Manager) transition(token string, next State) State {
	m.mu.Lock()
	m.token = token
	m.state = next
	watchers := append(([]func(State))(nil), m.watchers...)
	m.mu.Unlock()

	for _, fn := range watchers {
		fn(next)
	}

	return next
}
