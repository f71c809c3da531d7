package auth

import (
	"context"
	"sync"
	"time"

	"intranet/internal/domain/service"
)

// memoryRevocationStore is an in-process TTL denylist keyed by token id.
// Entries expire with the token they revoke, so the map stays bounded by the
// number of logouts within one access-token lifetime.
type memoryRevocationStore struct {
	mu      sync.RWMutex
	revoked map[string]time.Time
	now     func() time.Time
}

// NewMemoryRevocationStore builds an empty in-memory revocation store.
func NewMemoryRevocationStore() service.RevocationStore {
	return &memoryRevocationStore{
		revoked: make(map[string]time.Time),
		now:     time.Now,
	}
}

// Revoke denies the token id until expiresAt.
func (s *memoryRevocationStore) Revoke(_ context.Context, tokenID string, expiresAt time.Time) error {
	if tokenID == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.revoked[tokenID] = expiresAt
	s.sweepLocked()

	return nil
}

// IsRevoked reports whether the token id has been revoked and is still within TTL.
func (s *memoryRevocationStore) IsRevoked(_ context.Context, tokenID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	expiresAt, ok := s.revoked[tokenID]
	if !ok {
		return false
	}

	return s.now().Before(expiresAt)
}

// sweepLocked drops entries whose tokens have expired on their own.
// Callers must hold the write lock.
func (s *memoryRevocationStore) sweepLocked() {
	now := s.now()
	for id, expiresAt := range s.revoked {
		if now.After(expiresAt) {
			delete(s.revoked, id)
		}
	}
}
