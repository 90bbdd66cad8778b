// AngelaMos | 2026
// repository.go

package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/carterperez-dev/templates/pos-backend/internal/core"
	"github.com/carterperez-dev/templates/pos-backend/internal/query"
)

type Repository interface {
	List(ctx context.Context, spec query.Spec) ([]Product, int, error)
	GetByID(ctx context.Context, id string) (*Product, error)
	Create(ctx context.Context, p *Product) error
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id string) error
	CategoryExists(ctx context.Context, categoryID string) (bool, error)
	CountTransactionItems(ctx context.Context, id string) (int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const selectProduct = `
	SELECT p.id, p.name, p.description, p.price, p.stock, p.category_id,
	       p.image, p.created_at, p.updated_at,
	       c.id AS "category.id", c.name AS "category.name"
	FROM products p
	LEFT JOIN categories c ON c.id = p.category_id`

func (r *repository) List(
	ctx context.Context,
	spec query.Spec,
) ([]Product, int, error) {
	clause, err := ListSchema.Build(spec)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM products p WHERE " + clause.Where
	if err := r.db.GetContext(ctx, &total, countQuery, clause.Args...); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	page, args := clause.Page()
	listQuery := fmt.Sprintf(`%s
		WHERE %s
		ORDER BY %s, p.id
		%s`,
		selectProduct, clause.Where, clause.OrderBy, page)

	products := []Product{}
	if err := r.db.SelectContext(ctx, &products, listQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}

	return products, total, nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Product, error) {
	if uuid.Validate(id) != nil {
		return nil, fmt.Errorf("get product: %w", core.ErrNotFound)
	}

	var p Product
	err := r.db.GetContext(ctx, &p, selectProduct+` WHERE p.id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get product: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}

	return &p, nil
}

func (r *repository) Create(ctx context.Context, p *Product) error {
	query := `
		INSERT INTO products (id, name, description, price, stock, category_id, image)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		p.ID,
		p.Name,
		p.Description,
		p.Price,
		p.Stock,
		p.CategoryID,
		p.Image,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if core.IsForeignKeyViolation(err) {
			return fmt.Errorf("create product: %w", core.ErrNotFound)
		}
		return fmt.Errorf("create product: %w", err)
	}

	return nil
}

func (r *repository) Update(ctx context.Context, p *Product) error {
	query := `
		UPDATE products
		SET name = $2, description = $3, price = $4, stock = $5,
		    category_id = $6, image = $7, updated_at = NOW()
		WHERE id = $1
		RETURNING created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		p.ID,
		p.Name,
		p.Description,
		p.Price,
		p.Stock,
		p.CategoryID,
		p.Image,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update product: %w", core.ErrNotFound)
	}
	if err != nil {
		if core.IsForeignKeyViolation(err) {
			return fmt.Errorf("update product: %w", core.ErrNotFound)
		}
		return fmt.Errorf("update product: %w", err)
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		if core.IsForeignKeyViolation(err) {
			return fmt.Errorf("delete product: %w", core.ErrConflict)
		}
		return fmt.Errorf("delete product: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete product: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) CategoryExists(ctx context.Context, categoryID string) (bool, error) {
	if uuid.Validate(categoryID) != nil {
		return false, nil
	}

	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM categories WHERE id = $1)`, categoryID)
	if err != nil {
		return false, fmt.Errorf("check category: %w", err)
	}

	return exists, nil
}

func (r *repository) CountTransactionItems(ctx context.Context, id string) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM transaction_items WHERE product_id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("count product transactions: %w", err)
	}

	return count, nil
}
