// AngelaMos | 2026
// service_test.go

package user

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/templates/pos-backend/internal/auth"
	"github.com/carterperez-dev/templates/pos-backend/internal/core"
	"github.com/carterperez-dev/templates/pos-backend/internal/query"
)

type fakeRepository struct {
	mu    sync.Mutex
	users []*User
}

func (f *fakeRepository) CreateWithInitialRole(
	_ context.Context,
	user *User,
	assign RoleAssigner,
) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.users {
		if u.Email == user.Email {
			return core.ErrDuplicateKey
		}
	}
	user.Role = assign(len(f.users))
	f.users = append(f.users, user)
	return nil
}

func (f *fakeRepository) GetByID(_ context.Context, id string) (*User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, core.ErrNotFound
}

func (f *fakeRepository) GetByEmail(_ context.Context, email string) (*User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, core.ErrNotFound
}

func (f *fakeRepository) UpdatePassword(_ context.Context, id, hash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.ID == id {
			u.PasswordHash = hash
			return nil
		}
	}
	return core.ErrNotFound
}

func (f *fakeRepository) List(_ context.Context, _ query.Spec) ([]User, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, len(out), nil
}

func TestInitialRole(t *testing.T) {
	assert.Equal(t, auth.RoleAdmin, InitialRole(0))
	assert.Equal(t, auth.RoleCashier, InitialRole(1))
	assert.Equal(t, auth.RoleCashier, InitialRole(42))
}

func TestRegisterFirstUserIsAdmin(t *testing.T) {
	svc := NewService(&fakeRepository{})
	ctx := context.Background()

	first, err := svc.Register(ctx, "  Owner@Toko.test ", "hash", " Owner ")
	require.NoError(t, err)
	assert.Equal(t, auth.RoleAdmin, first.Role)
	assert.Equal(t, "owner@toko.test", first.Email)
	assert.Equal(t, "Owner", first.Name)
	assert.NotEmpty(t, first.ID)

	second, err := svc.Register(ctx, "kasir@toko.test", "hash", "Kasir")
	require.NoError(t, err)
	assert.Equal(t, auth.RoleCashier, second.Role)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestRegisterDuplicateSurfacesDuplicateKey(t *testing.T) {
	svc := NewService(&fakeRepository{})
	ctx := context.Background()

	_, err := svc.Register(ctx, "owner@toko.test", "hash", "Owner")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "OWNER@toko.test", "hash", "Owner Again")
	assert.ErrorIs(t, err, core.ErrDuplicateKey)
}

func TestGetByEmailNormalizes(t *testing.T) {
	svc := NewService(&fakeRepository{})
	ctx := context.Background()

	_, err := svc.Register(ctx, "owner@toko.test", "hash", "Owner")
	require.NoError(t, err)

	found, err := svc.GetByEmail(ctx, " OWNER@TOKO.TEST")
	require.NoError(t, err)
	assert.Equal(t, "Owner", found.Name)
}

func TestListUsersRequiresAdmin(t *testing.T) {
	svc := NewService(&fakeRepository{})
	spec := ListSchema.Parse(nil)

	cashier := &auth.Identity{Claims: auth.Claims{UserID: "c", Role: auth.RoleCashier}}
	_, _, err := svc.ListUsers(context.Background(), cashier, spec)
	assert.ErrorIs(t, err, core.ErrForbidden)

	_, _, err = svc.ListUsers(context.Background(), nil, spec)
	assert.ErrorIs(t, err, core.ErrUnauthorized)

	admin := &auth.Identity{Claims: auth.Claims{UserID: "a", Role: auth.RoleAdmin}}
	_, total, err := svc.ListUsers(context.Background(), admin, spec)
	require.NoError(t, err)
	assert.Zero(t, total)
}
