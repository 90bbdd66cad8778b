// AngelaMos | 2026
// repository.go

package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/carterperez-dev/templates/pos-backend/internal/core"
	"github.com/carterperez-dev/templates/pos-backend/internal/query"
)

// roleAssignmentLock serializes registrations so that only one of two
// concurrent first sign-ups can observe an empty users table.
const roleAssignmentLock = 7_146_001

type Repository interface {
	CreateWithInitialRole(ctx context.Context, user *User, assign RoleAssigner) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	List(ctx context.Context, spec query.Spec) ([]User, int, error)
}

type repository struct {
	db core.DBTX
	tx core.TxRunner
}

func NewRepository(db core.DBTX, tx core.TxRunner) Repository {
	return &repository{db: db, tx: tx}
}

func (r *repository) CreateWithInitialRole(
	ctx context.Context,
	user *User,
	assign RoleAssigner,
) error {
	err := r.tx.InTx(ctx, func(tx core.DBTX) error {
		if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, roleAssignmentLock); err != nil {
			return fmt.Errorf("lock role assignment: %w", err)
		}

		var existing int
		if err := tx.GetContext(ctx, &existing, `SELECT COUNT(*) FROM users`); err != nil {
			return fmt.Errorf("count users: %w", err)
		}

		user.Role = assign(existing)

		query := `
			INSERT INTO users (id, email, password_hash, name, role)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING created_at, updated_at`

		return tx.QueryRowxContext(ctx, query,
			user.ID,
			user.Email,
			user.PasswordHash,
			user.Name,
			user.Role,
		).Scan(&user.CreatedAt, &user.UpdatedAt)
	})
	if err != nil {
		if core.IsUniqueViolation(err) {
			return fmt.Errorf("create user: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*User, error) {
	query := `
		SELECT id, email, password_hash, name, role, created_at, updated_at
		FROM users
		WHERE id = $1`

	var user User
	err := r.db.GetContext(ctx, &user, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	return &user, nil
}

func (r *repository) GetByEmail(
	ctx context.Context,
	email string,
) (*User, error) {
	query := `
		SELECT id, email, password_hash, name, role, created_at, updated_at
		FROM users
		WHERE email = $1`

	var user User
	err := r.db.GetContext(ctx, &user, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get user by email: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}

	return &user, nil
}

func (r *repository) UpdatePassword(
	ctx context.Context,
	id, passwordHash string,
) error {
	query := `
		UPDATE users
		SET password_hash = $2, updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, passwordHash)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("update password: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) List(
	ctx context.Context,
	spec query.Spec,
) ([]User, int, error) {
	clause, err := ListSchema.Build(spec)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM users WHERE " + clause.Where
	if err := r.db.GetContext(ctx, &total, countQuery, clause.Args...); err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	page, args := clause.Page()
	listQuery := fmt.Sprintf(`
		SELECT id, email, name, role, created_at, updated_at
		FROM users
		WHERE %s
		ORDER BY %s
		%s`,
		clause.Where, clause.OrderBy, page)

	users := []User{}
	if err := r.db.SelectContext(ctx, &users, listQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}

	return users, total, nil
}
