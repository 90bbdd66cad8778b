// AngelaMos | 2026
// revocation.go

package auth

import (
	"context"
	"time"
)

const revokedKeyPrefix = "session:revoked:"

type markerStore interface {
	SetUntil(ctx context.Context, key string, deadline time.Time) error
	Exists(ctx context.Context, key string) (bool, error)
}

// RedisRevocationList keeps logged-out token ids until their natural expiry.
type RedisRevocationList struct {
	store markerStore
}

func NewRedisRevocationList(store markerStore) *RedisRevocationList {
	return &RedisRevocationList{store: store}
}

func (l *RedisRevocationList) Revoke(
	ctx context.Context,
	tokenID string,
	until time.Time,
) error {
	return l.store.SetUntil(ctx, revokedKeyPrefix+tokenID, until)
}

func (l *RedisRevocationList) IsRevoked(
	ctx context.Context,
	tokenID string,
) (bool, error) {
	return l.store.Exists(ctx, revokedKeyPrefix+tokenID)
}

var _ RevocationList = (*RedisRevocationList)(nil)
