package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/merodoctor/merodoctor-backend/pkg/config"
	pkgerrors "github.com/merodoctor/merodoctor-backend/pkg/errors"
	"github.com/merodoctor/merodoctor-backend/pkg/redis"
)

// ErrNotFound reports an absent session. Callers treat it as "start empty",
// never as a failure.
var ErrNotFound = pkgerrors.New(pkgerrors.CodeNotFound, "session state not found")

// Store persists session state by session id.
type Store interface {
	Load(ctx context.Context, sessionID string) (*State, error)
	Save(ctx context.Context, sessionID string, state *State) error
}

type redisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore returns a Store backed by the shared Redis client. Each save
// refreshes the TTL, so active sessions stay alive and abandoned ones expire.
func NewRedisStore(client *redis.Client, cfg config.SessionConfig) (Store, error) {
	if client == nil {
		return nil, fmt.Errorf("session: redis client is required")
	}
	return &redisStore{client: client, ttl: cfg.TTL}, nil
}

func (s *redisStore) Load(ctx context.Context, sessionID string) (*State, error) {
	raw, err := s.client.Get(ctx, s.client.SessionStateKey(sessionID))
	if err != nil {
		if redis.IsNil(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("session: load %q: %w", sessionID, err)
	}

	var state State
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return nil, fmt.Errorf("session: decode %q: %w", sessionID, err)
	}
	if state.Cart == nil {
		state.Cart = []CartLine{}
	}
	return &state, nil
}

func (s *redisStore) Save(ctx context.Context, sessionID string, state *State) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("session: encode %q: %w", sessionID, err)
	}
	if err := s.client.Set(ctx, s.client.SessionStateKey(sessionID), string(payload), s.ttl); err != nil {
		return fmt.Errorf("session: save %q: %w", sessionID, err)
	}
	return nil
}

type memoryStore struct {
	mu     sync.RWMutex
	states map[string][]byte
}

// NewMemoryStore returns an in-process Store. It round-trips states through
// JSON so it exercises the same serialization path as the Redis store.
func NewMemoryStore() Store {
	return &memoryStore{states: map[string][]byte{}}
}

func (s *memoryStore) Load(_ context.Context, sessionID string) (*State, error) {
	s.mu.RLock()
	raw, ok := s.states[sessionID]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}

	var state State
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("session: decode %q: %w", sessionID, err)
	}
	if state.Cart == nil {
		state.Cart = []CartLine{}
	}
	return &state, nil
}

func (s *memoryStore) Save(_ context.Context, sessionID string, state *State) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("session: encode %q: %w", sessionID, err)
	}
	s.mu.Lock()
	s.states[sessionID] = payload
	s.mu.Unlock()
	return nil
}
