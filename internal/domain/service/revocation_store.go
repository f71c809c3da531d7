package service

import (
	"context"
	"time"
)

// RevocationStore is an optional denylist keyed by token id. When wired,
// logout revokes the presented token until its natural expiry; without it,
// logout is a client-side token discard and tokens stay bearer-valid.
type RevocationStore interface {
	// Revoke denies the token id until expiresAt, after which the entry may be dropped.
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error

	// IsRevoked reports whether the token id has been revoked and is still within TTL.
	IsRevoked(ctx context.Context, tokenID string) bool
}
