// Package session restores the saved session at startup and keeps the
// snapshot in step with the store afterwards.
package session

import (
	"context"
	"log/slog"
	"sync"

	"gitwise/internal/actions"
	"gitwise/internal/observability"
	"gitwise/internal/store"
)

// Manager owns the session lifecycle: restoring it from the snapshot at
// bootstrap and persisting every later identity change.
type Manager struct {
	svc       *actions.Service
	backend   actions.Backend
	snapshots *store.SnapshotStore

	mu         sync.Mutex
	lastToken  string
	lastUserID uint
}

// NewManager wires the session manager. It does not touch the store
// until Bootstrap is called.
func NewManager(svc *actions.Service, backend actions.Backend, snapshots *store.SnapshotStore) *Manager {
	return &Manager{svc: svc, backend: backend, snapshots: snapshots}
}

// Bootstrap restores the persisted session, subscribes the persistence
// hook and performs the initial loads. The public post collection is
// fetched regardless of auth; favorites only when a session survived.
func (m *Manager) Bootstrap(ctx context.Context) error {
	token, user, ok, err := m.snapshots.Load()
	if err != nil {
		observability.GlobalLogger.Warn("session restore failed, starting logged out",
			slog.String("error", err.Error()))
		ok = false
	}

	if ok {
		m.backend.SetToken(token)
		if m.backend.TokenExpired() {
			observability.GlobalLogger.Info("persisted token expired, discarding session")
			m.backend.ClearToken()
			if err := m.snapshots.Clear(); err != nil {
				observability.GlobalLogger.Warn("clear stale snapshot", slog.String("error", err.Error()))
			}
			ok = false
		}
	}

	if ok {
		m.mu.Lock()
		m.lastToken = token
		m.lastUserID = user.ID
		m.mu.Unlock()
		m.svc.Store().Dispatch(store.SetUser{User: user, Token: token})
	}

	m.svc.Store().Subscribe(m.persist)

	if err := m.svc.FetchAllPosts(ctx); err != nil {
		observability.GlobalLogger.Warn("initial post load failed", slog.String("error", err.Error()))
	}
	if ok {
		if err := m.svc.FetchFavorites(ctx); err != nil {
			observability.GlobalLogger.Warn("initial favorites load failed", slog.String("error", err.Error()))
		}
	}
	return nil
}

// persist mirrors identity changes into the snapshot. A new token also
// triggers a favorites refetch, since favorites are scoped to the
// session that loaded them.
func (m *Manager) persist(s store.State) {
	m.mu.Lock()
	prevToken := m.lastToken
	prevUserID := m.lastUserID

	if !s.LoggedIn() {
		m.lastToken = ""
		m.lastUserID = 0
		m.mu.Unlock()
		if prevToken != "" {
			if err := m.snapshots.Clear(); err != nil {
				observability.GlobalLogger.Warn("clear snapshot", slog.String("error", err.Error()))
			}
		}
		return
	}

	changed := s.Token != prevToken || s.User.ID != prevUserID
	m.lastToken = s.Token
	m.lastUserID = s.User.ID
	m.mu.Unlock()

	if !changed {
		return
	}
	if err := m.snapshots.Save(s.Token, s.User); err != nil {
		observability.GlobalLogger.Warn("save snapshot", slog.String("error", err.Error()))
	}
	if s.Token != prevToken {
		if err := m.svc.FetchFavorites(context.Background()); err != nil {
			observability.GlobalLogger.Warn("favorites refetch failed", slog.String("error", err.Error()))
		}
	}
}
