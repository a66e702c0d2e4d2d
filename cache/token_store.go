package cache

import (
	"context"
	"sync"
	"time"
)

const revokedTokenPrefix = "revoked_token:"

// TokenStore remembers revoked JWT ids until they would have expired anyway.
type TokenStore interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

type RedisTokenStore struct {
	client *Client
}

func NewRedisTokenStore(client *Client) *RedisTokenStore {
	return &RedisTokenStore{client: client}
}

func (s *RedisTokenStore) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return s.client.Set(ctx, revokedTokenPrefix+jti, time.Now().Add(ttl).Unix(), ttl)
}

func (s *RedisTokenStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	return s.client.Exists(ctx, revokedTokenPrefix+jti)
}

// MemoryTokenStore is used when Redis is not configured and in tests.
type MemoryTokenStore struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	now     func() time.Time
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{
		revoked: make(map[string]time.Time),
		now:     time.Now,
	}
}

func (s *MemoryTokenStore) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[jti] = s.now().Add(ttl)
	return nil
}

func (s *MemoryTokenStore) IsRevoked(_ context.Context, jti string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	expires, ok := s.revoked[jti]
	if !ok {
		return false, nil
	}
	if s.now().After(expires) {
		delete(s.revoked, jti)
		return false, nil
	}
	return true, nil
}

// Purge drops entries whose tokens have expired.
func (s *MemoryTokenStore) Purge() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	now := s.now()
	for jti, expires := range s.revoked {
		if now.After(expires) {
			delete(s.revoked, jti)
			removed++
		}
	}
	return removed
}

// Len is the number of stored revocations, expired or not.
func (s *MemoryTokenStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.revoked)
}
