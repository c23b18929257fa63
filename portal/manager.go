/*
manager.go - Portal session lifecycle

PURPOSE:
  Logs employees in and out, owns the live State containers, and mirrors
  session snapshots to the cache. One live session per employee; logging in
  again replaces the previous session.

PERSISTENCE:
  Best-effort and non-transactional. A snapshot write that fails is logged
  by the caller and ignored; the cache is only a convenience mirror. At
  login the previous session snapshot, if present and parseable, seeds the
  new session's collections.
*/
package portal

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/chainpay/hr-engine/attendance"
	"github.com/chainpay/hr-engine/auth"
	"github.com/chainpay/hr-engine/roster"
	"github.com/chainpay/hr-engine/store"
)

// ErrInvalidCredentials is returned for an unknown email or a wrong
// password. The two cases are deliberately indistinguishable.
var ErrInvalidCredentials = errors.New("invalid credentials")

type Manager struct {
	roster   *roster.Roster
	cache    store.SnapshotStore
	settings attendance.Settings
	secret   string
	ttl      time.Duration

	mu         sync.RWMutex
	sessions   map[string]*State // session id -> state
	byEmployee map[string]string // employee id -> session id
}

func NewManager(r *roster.Roster, cache store.SnapshotStore, settings attendance.Settings, secret string, ttl time.Duration) *Manager {
	return &Manager{
		roster:     r,
		cache:      cache,
		settings:   settings,
		secret:     secret,
		ttl:        ttl,
		sessions:   make(map[string]*State),
		byEmployee: make(map[string]string),
	}
}

// Login authenticates against the roster, creates a session state seeded
// from the cached snapshot if one parses, and returns a signed session
// token. The snapshot read falling back to defaults is not an error.
func (m *Manager) Login(ctx context.Context, email, password string, now time.Time) (string, *State, error) {
	emp, ok := m.roster.ByEmail(email)
	if !ok || !emp.Active() {
		return "", nil, ErrInvalidCredentials
	}
	if err := auth.CheckPassword(emp.PasswordHash, password); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	session := EmployeeSession{
		ID:           uuid.NewString(),
		EmployeeID:   emp.ID,
		LoginTime:    now,
		LastActivity: now,
		IsActive:     true,
	}
	state := NewState(session, emp, m.settings)

	var snap SessionSnapshot
	if found, err := store.Load(ctx, m.cache, store.SessionKey(emp.ID), &snap); err == nil && found {
		state.RestoreSnapshot(snap)
	}

	token, err := auth.GenerateToken(m.secret, auth.Claims{
		SessionID:  session.ID,
		EmployeeID: emp.ID,
	}, m.ttl, now)
	if err != nil {
		return "", nil, err
	}

	m.mu.Lock()
	if prev, ok := m.byEmployee[emp.ID]; ok {
		delete(m.sessions, prev)
	}
	m.sessions[session.ID] = state
	m.byEmployee[emp.ID] = session.ID
	m.mu.Unlock()

	_ = m.Persist(ctx, session.ID)
	return token, state, nil
}

// Logout discards the session state and drops its cache entry.
func (m *Manager) Logout(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	state, ok := m.sessions[sessionID]
	if ok {
		delete(m.sessions, sessionID)
		delete(m.byEmployee, state.Employee().ID)
	}
	m.mu.Unlock()

	if !ok {
		return ErrNoSession
	}
	return m.cache.Delete(ctx, store.SessionKey(state.Employee().ID))
}

// StateFor returns the live state for a session id.
func (m *Manager) StateFor(sessionID string) (*State, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	state, ok := m.sessions[sessionID]
	if !ok {
		return nil, ErrNoSession
	}
	return state, nil
}

// Authenticate resolves a bearer token to its live session state.
func (m *Manager) Authenticate(token string) (*State, error) {
	claims, err := auth.ParseToken(m.secret, token)
	if err != nil {
		return nil, ErrNoSession
	}
	return m.StateFor(claims.SessionID)
}

// Persist mirrors one session's snapshot to the cache.
func (m *Manager) Persist(ctx context.Context, sessionID string) error {
	state, err := m.StateFor(sessionID)
	if err != nil {
		return err
	}
	snap := state.Snapshot()
	return store.Save(ctx, m.cache, store.SessionKey(snap.Employee.ID), snap)
}

// PersistAll mirrors every live session. Used by the autosaver.
func (m *Manager) PersistAll(ctx context.Context) error {
	m.mu.RLock()
	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	m.mu.RUnlock()

	var firstErr error
	for _, id := range ids {
		if err := m.Persist(ctx, id); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
