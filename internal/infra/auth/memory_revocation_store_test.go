package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRevocationStore_RevokeAndExpire(t *testing.T) {
	store := NewMemoryRevocationStore().(*memoryRevocationStore)
	now := time.Now()
	store.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, store.Revoke(ctx, "token-a", now.Add(time.Hour)))

	assert.True(t, store.IsRevoked(ctx, "token-a"))
	assert.False(t, store.IsRevoked(ctx, "token-b"))

	// Once the underlying token has expired the entry no longer matters.
	now = now.Add(2 * time.Hour)
	assert.False(t, store.IsRevoked(ctx, "token-a"))
}

func TestMemoryRevocationStore_SweepDropsExpiredEntries(t *testing.T) {
	store := NewMemoryRevocationStore().(*memoryRevocationStore)
	now := time.Now()
	store.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, store.Revoke(ctx, "old", now.Add(time.Minute)))

	now = now.Add(time.Hour)
	require.NoError(t, store.Revoke(ctx, "fresh", now.Add(time.Hour)))

	store.mu.RLock()
	defer store.mu.RUnlock()
	assert.NotContains(t, store.revoked, "old")
	assert.Contains(t, store.revoked, "fresh")
}

func TestMemoryRevocationStore_EmptyTokenIDIsNoop(t *testing.T) {
	store := NewMemoryRevocationStore()
	ctx := context.Background()

	require.NoError(t, store.Revoke(ctx, "", time.Now().Add(time.Hour)))
	assert.False(t, store.IsRevoked(ctx, ""))
}
