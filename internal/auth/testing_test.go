// AngelaMos | 2026
// testing_test.go

package auth

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/templates/pos-backend/internal/config"
	"github.com/carterperez-dev/templates/pos-backend/internal/core"
)

const testSecret = "test-secret-0123456789-abcdefghijklmnopqrstuvwxyz"

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:   testSecret,
		Expire:   7 * 24 * time.Hour,
		Issuer:   "pos-backend",
		Audience: "pos-backend-web",
	}
}

func testCookie() *SessionCookie {
	return NewSessionCookie(
		config.SessionConfig{CookieName: "token", SameSite: "lax"},
		7*24*time.Hour,
	)
}

type memoryRevocations struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	err     error
}

func newMemoryRevocations() *memoryRevocations {
	return &memoryRevocations{revoked: make(map[string]time.Time)}
}

func (m *memoryRevocations) Revoke(_ context.Context, id string, until time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.revoked[id] = until
	return nil
}

func (m *memoryRevocations) IsRevoked(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	_, ok := m.revoked[id]
	return ok, nil
}

func newTestTokenService(t *testing.T, revocations RevocationList) *TokenService {
	t.Helper()
	svc, err := NewTokenService(testJWTConfig(), revocations)
	require.NoError(t, err)
	return svc
}

// memoryUsers gives the first account ADMIN and every later one CASHIER.
type memoryUsers struct {
	mu    sync.Mutex
	users map[string]*UserInfo
	order int
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{users: make(map[string]*UserInfo)}
}

func (m *memoryUsers) GetByEmail(_ context.Context, email string) (*UserInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[strings.ToLower(email)]
	if !ok {
		return nil, core.ErrNotFound
	}
	return u, nil
}

func (m *memoryUsers) GetByID(_ context.Context, id string) (*UserInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, core.ErrNotFound
}

func (m *memoryUsers) Register(
	_ context.Context,
	email, passwordHash, name string,
) (*UserInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := strings.ToLower(email)
	if _, ok := m.users[key]; ok {
		return nil, core.ErrDuplicateKey
	}

	role := RoleCashier
	if len(m.users) == 0 {
		role = RoleAdmin
	}
	m.order++

	u := &UserInfo{
		ID:           "user-" + string(rune('0'+m.order)),
		Email:        key,
		Name:         name,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	m.users[key] = u
	return u, nil
}

func (m *memoryUsers) UpdatePassword(_ context.Context, id, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.ID == id {
			u.PasswordHash = hash
			return nil
		}
	}
	return core.ErrNotFound
}
