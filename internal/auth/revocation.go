package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const revokedKeyPrefix = "fraud-desk:revoked:"

// RevocationStore remembers logged-out sessions until their tokens expire.
type RevocationStore interface {
	Revoke(ctx context.Context, sessionID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, sessionID string) (bool, error)
}

// memoryRevocations keeps revoked session ids in process.
type memoryRevocations struct {
	mu      sync.Mutex
	entries map[string]time.Time
	now     func() time.Time
}

// NewMemoryRevocations creates an in-process store.
func NewMemoryRevocations() RevocationStore {
	return &memoryRevocations{entries: make(map[string]time.Time), now: time.Now}
}

func (m *memoryRevocations) Revoke(_ context.Context, sessionID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	for id, until := range m.entries {
		if !now.Before(until) {
			delete(m.entries, id)
		}
	}
	m.entries[sessionID] = now.Add(ttl)
	return nil
}

func (m *memoryRevocations) IsRevoked(_ context.Context, sessionID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	until, ok := m.entries[sessionID]
	if !ok {
		return false, nil
	}
	if !m.now().Before(until) {
		delete(m.entries, sessionID)
		return false, nil
	}
	return true, nil
}

// redisRevocations stores revoked ids as expiring keys, falling back to
// process memory while redis is unreachable.
type redisRevocations struct {
	client   *redis.Client
	fallback RevocationStore
	logger   *zap.Logger
}

// NewRedisRevocations creates a redis-backed store. A nil client yields the in-process store.
func NewRedisRevocations(client *redis.Client, logger *zap.Logger) RevocationStore {
	if client == nil {
		return NewMemoryRevocations()
	}
	return &redisRevocations{client: client, fallback: NewMemoryRevocations(), logger: logger}
}

func (r *redisRevocations) Revoke(ctx context.Context, sessionID string, ttl time.Duration) error {
	if sessionID == "" || ttl <= 0 {
		return nil
	}
	_ = r.fallback.Revoke(ctx, sessionID, ttl)
	if err := r.client.Set(ctx, revokedKeyPrefix+sessionID, "1", ttl).Err(); err != nil {
		r.logger.Warn("redis revoke failed; using memory", zap.Error(err))
	}
	return nil
}

func (r *redisRevocations) IsRevoked(ctx context.Context, sessionID string) (bool, error) {
	if sessionID == "" {
		return false, nil
	}
	if revoked, _ := r.fallback.IsRevoked(ctx, sessionID); revoked {
		return true, nil
	}
	_, err := r.client.Get(ctx, revokedKeyPrefix+sessionID).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		r.logger.Debug("redis revocation lookup failed", zap.Error(err))
		return false, nil
	}
	return true, nil
}
