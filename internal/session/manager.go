package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	pkgerrors "github.com/merodoctor/merodoctor-backend/pkg/errors"
	"github.com/merodoctor/merodoctor-backend/pkg/logger"
)

// Manager serializes access to session state. Each session id owns a lock,
// so concurrent requests for the same session observe one another's writes
// in order. Load failures fall back to an empty state and save failures keep
// the in-memory copy authoritative; persistence is best effort.
type Manager struct {
	store Store
	logg  *logger.Logger

	mu      sync.Mutex
	entries map[string]*entry
}

type entry struct {
	mu    sync.Mutex
	state *State
}

func NewManager(store Store, logg *logger.Logger) (*Manager, error) {
	if store == nil {
		return nil, fmt.Errorf("session: store is required")
	}
	if logg == nil {
		return nil, fmt.Errorf("session: logger is required")
	}
	return &Manager{
		store:   store,
		logg:    logg,
		entries: map[string]*entry{},
	}, nil
}

// Update runs fn against the session's state under its lock and persists the
// state afterwards. If fn returns an error the state is not saved and the
// error is returned as-is.
func (m *Manager) Update(ctx context.Context, sessionID string, fn func(*State) error) error {
	return m.with(ctx, sessionID, fn, true)
}

// View runs fn against the session's state under its lock without saving.
// fn must not retain or mutate the state.
func (m *Manager) View(ctx context.Context, sessionID string, fn func(*State) error) error {
	return m.with(ctx, sessionID, fn, false)
}

func (m *Manager) with(ctx context.Context, sessionID string, fn func(*State) error, save bool) error {
	if sessionID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "missing session id")
	}

	ent := m.entry(sessionID)
	ent.mu.Lock()
	defer ent.mu.Unlock()

	if ent.state == nil {
		ent.state = m.load(ctx, sessionID)
	}

	if err := fn(ent.state); err != nil {
		return err
	}

	if save {
		if err := m.store.Save(ctx, sessionID, ent.state); err != nil {
			lctx := m.logg.WithSessionID(ctx, sessionID)
			lctx = m.logg.WithField(lctx, "error", err.Error())
			m.logg.Warn(lctx, "session save failed, continuing with in-memory state")
		}
	}
	return nil
}

func (m *Manager) entry(sessionID string) *entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	ent, ok := m.entries[sessionID]
	if !ok {
		ent = &entry{}
		m.entries[sessionID] = ent
	}
	return ent
}

func (m *Manager) load(ctx context.Context, sessionID string) *State {
	state, err := m.store.Load(ctx, sessionID)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			lctx := m.logg.WithSessionID(ctx, sessionID)
			lctx = m.logg.WithField(lctx, "error", err.Error())
			m.logg.Warn(lctx, "session load failed, starting from empty state")
		}
		return NewState()
	}
	return state
}
