// AngelaMos | 2026
// entity.go

package user

import (
	"time"

	"github.com/carterperez-dev/templates/pos-backend/internal/auth"
)

type User struct {
	ID           string    `db:"id"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	Name         string    `db:"name"`
	Role         string    `db:"role"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func (u *User) IsAdmin() bool {
	return u.Role == auth.RoleAdmin
}

// RoleAssigner picks the role of a new account from the number of accounts
// that already exist.
type RoleAssigner func(existing int) string

// InitialRole makes the very first account an administrator.
func InitialRole(existing int) string {
	if existing == 0 {
		return auth.RoleAdmin
	}
	return auth.RoleCashier
}
