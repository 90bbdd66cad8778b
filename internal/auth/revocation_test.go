// AngelaMos | 2026
// revocation_test.go

package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMarkers struct {
	keys map[string]time.Time
}

func (f *fakeMarkers) SetUntil(_ context.Context, key string, deadline time.Time) error {
	f.keys[key] = deadline
	return nil
}

func (f *fakeMarkers) Exists(_ context.Context, key string) (bool, error) {
	_, ok := f.keys[key]
	return ok, nil
}

func TestRedisRevocationListPrefixesKeys(t *testing.T) {
	markers := &fakeMarkers{keys: make(map[string]time.Time)}
	list := NewRedisRevocationList(markers)
	ctx := context.Background()
	until := time.Now().Add(time.Hour)

	require.NoError(t, list.Revoke(ctx, "jti-1", until))
	assert.Equal(t, until, markers.keys["session:revoked:jti-1"])

	revoked, err := list.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = list.IsRevoked(ctx, "jti-2")
	require.NoError(t, err)
	assert.False(t, revoked)
}
