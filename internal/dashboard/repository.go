// AngelaMos | 2026
// repository.go

package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/carterperez-dev/templates/pos-backend/internal/core"
)

type Summary struct {
	Revenue      decimal.Decimal `db:"revenue"`
	Transactions int             `db:"transactions"`
	Products     int             `db:"products"`
}

type TopProduct struct {
	ProductID string          `db:"product_id"`
	ID        *string         `db:"id"`
	Name      *string         `db:"name"`
	Quantity  int             `db:"quantity"`
	Total     decimal.Decimal `db:"total"`
}

type Repository interface {
	Summary(ctx context.Context) (*Summary, error)
	DailyTotals(ctx context.Context, since time.Time) ([]SalePoint, error)
	TopProducts(ctx context.Context, limit int) ([]TopProduct, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Summary(ctx context.Context) (*Summary, error) {
	query := `
		SELECT
			(SELECT COALESCE(SUM(total), 0) FROM transactions) AS revenue,
			(SELECT COUNT(*) FROM transactions) AS transactions,
			(SELECT COUNT(*) FROM products) AS products`

	var s Summary
	if err := r.db.GetContext(ctx, &s, query); err != nil {
		return nil, fmt.Errorf("dashboard summary: %w", err)
	}

	return &s, nil
}

func (r *repository) DailyTotals(
	ctx context.Context,
	since time.Time,
) ([]SalePoint, error) {
	query := `
		SELECT date_trunc('day', date AT TIME ZONE 'UTC') AS day,
		       SUM(total) AS total
		FROM transactions
		WHERE date >= $1
		GROUP BY 1
		ORDER BY 1`

	points := []SalePoint{}
	if err := r.db.SelectContext(ctx, &points, query, since); err != nil {
		return nil, fmt.Errorf("daily totals: %w", err)
	}

	return points, nil
}

func (r *repository) TopProducts(ctx context.Context, limit int) ([]TopProduct, error) {
	query := `
		SELECT ti.product_id,
		       p.id,
		       p.name,
		       SUM(ti.quantity) AS quantity,
		       SUM(ti.price * ti.quantity) AS total
		FROM transaction_items ti
		LEFT JOIN products p ON p.id = ti.product_id
		GROUP BY ti.product_id, p.id, p.name
		ORDER BY quantity DESC, total DESC
		LIMIT $1`

	rows := []TopProduct{}
	if err := r.db.SelectContext(ctx, &rows, query, limit); err != nil {
		return nil, fmt.Errorf("top products: %w", err)
	}

	return rows, nil
}
