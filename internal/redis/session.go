package redis

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"fleetops/internal/domain"
)

// SessionStore is the interface for server-held session records.
// A session exists from login until explicit logout or TTL expiry.
type SessionStore interface {
	Put(ctx context.Context, sessionID string, identity domain.Identity, ttl time.Duration) error
	Get(ctx context.Context, sessionID string) (*domain.Identity, error)
	Delete(ctx context.Context, sessionID string) error
}

const sessionPrefix = "session:"

// storedIdentity is the Redis representation of a session identity.
type storedIdentity struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name,omitempty"`
	Role     string `json:"role"`
	DriverID string `json:"driver_id,omitempty"`
}

// RedisSessionStore keeps session records in Redis so any instance can
// resolve a token's session.
type RedisSessionStore struct {
	client *redis.Client
}

// NewSessionStore creates a new RedisSessionStore.
func NewSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{client: client}
}

// Put stores a session record with the given TTL.
func (s *RedisSessionStore) Put(ctx context.Context, sessionID string, identity domain.Identity, ttl time.Duration) error {
	data, err := json.Marshal(storedIdentity{
		ID:       identity.ID,
		Email:    identity.Email,
		Name:     identity.Name,
		Role:     string(identity.Role),
		DriverID: identity.DriverID,
	})
	if err != nil {
		return err
	}
	return s.client.Set(ctx, sessionPrefix+sessionID, data, ttl).Err()
}

// Get retrieves a session record. Returns nil when no session exists.
func (s *RedisSessionStore) Get(ctx context.Context, sessionID string) (*domain.Identity, error) {
	data, err := s.client.Get(ctx, sessionPrefix+sessionID).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var stored storedIdentity
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, err
	}
	return &domain.Identity{
		ID:       stored.ID,
		Email:    stored.Email,
		Name:     stored.Name,
		Role:     domain.Role(stored.Role),
		DriverID: stored.DriverID,
	}, nil
}

// Delete removes a session record at logout.
func (s *RedisSessionStore) Delete(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, sessionPrefix+sessionID).Err()
}

var _ SessionStore = (*RedisSessionStore)(nil)

// LocalSessionStore is an in-process session store used in sample-data
// mode when no Redis is configured. Sessions do not survive a restart,
// which matches the rest of that mode's durability story.
type LocalSessionStore struct {
	mu       sync.RWMutex
	sessions map[string]localSession
}

type localSession struct {
	identity domain.Identity
	expires  time.Time
}

// NewLocalSessionStore creates a new LocalSessionStore.
func NewLocalSessionStore() *LocalSessionStore {
	return &LocalSessionStore{sessions: make(map[string]localSession)}
}

// Put stores a session record with the given TTL.
func (s *LocalSessionStore) Put(ctx context.Context, sessionID string, identity domain.Identity, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = localSession{identity: identity, expires: time.Now().Add(ttl)}
	return nil
}

// Get retrieves a session record. Returns nil when no live session exists.
func (s *LocalSessionStore) Get(ctx context.Context, sessionID string) (*domain.Identity, error) {
	s.mu.RLock()
	session, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	if time.Now().After(session.expires) {
		_ = s.Delete(ctx, sessionID)
		return nil, nil
	}
	identity := session.identity
	return &identity, nil
}

// Delete removes a session record at logout.
func (s *LocalSessionStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}

var _ SessionStore = (*LocalSessionStore)(nil)
