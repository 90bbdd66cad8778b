// AngelaMos | 2026
// repository.go

package transaction

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/templates/pos-backend/internal/core"
	"github.com/carterperez-dev/templates/pos-backend/internal/query"
)

type Repository interface {
	List(ctx context.Context, spec query.Spec) ([]Transaction, int, error)
	GetByID(ctx context.Context, id string) (*Transaction, error)
	Record(ctx context.Context, productIDs []string, build Builder) (*Transaction, error)
}

type repository struct {
	db core.DBTX
	tx core.TxRunner
}

func NewRepository(db core.DBTX, tx core.TxRunner) Repository {
	return &repository{db: db, tx: tx}
}

const selectTransaction = `
	SELECT t.id, t.date, t.total, t.cashier_id, u.name AS cashier_name, t.created_at
	FROM transactions t
	LEFT JOIN users u ON u.id = t.cashier_id`

func (r *repository) List(
	ctx context.Context,
	spec query.Spec,
) ([]Transaction, int, error) {
	clause, err := ListSchema.Build(spec)
	if err != nil {
		return nil, 0, fmt.Errorf("list transactions: %w", err)
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM transactions t WHERE " + clause.Where
	if err := r.db.GetContext(ctx, &total, countQuery, clause.Args...); err != nil {
		return nil, 0, fmt.Errorf("count transactions: %w", err)
	}

	page, args := clause.Page()
	listQuery := fmt.Sprintf(`%s
		WHERE %s
		ORDER BY %s, t.id
		%s`,
		selectTransaction, clause.Where, clause.OrderBy, page)

	transactions := []Transaction{}
	if err := r.db.SelectContext(ctx, &transactions, listQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("list transactions: %w", err)
	}

	if err := r.attachItems(ctx, r.db, transactions); err != nil {
		return nil, 0, err
	}

	return transactions, total, nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Transaction, error) {
	if uuid.Validate(id) != nil {
		return nil, fmt.Errorf("get transaction: %w", core.ErrNotFound)
	}

	var t Transaction
	err := r.db.GetContext(ctx, &t, selectTransaction+` WHERE t.id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get transaction: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get transaction: %w", err)
	}

	one := []Transaction{t}
	if err := r.attachItems(ctx, r.db, one); err != nil {
		return nil, err
	}

	return &one[0], nil
}

// Record locks the referenced product rows, hands them to build, then writes
// the transaction, its items and the stock decrements in one commit.
func (r *repository) Record(
	ctx context.Context,
	productIDs []string,
	build Builder,
) (*Transaction, error) {
	var created *Transaction

	err := r.tx.InTx(ctx, func(tx core.DBTX) error {
		products, err := lockProducts(ctx, tx, productIDs)
		if err != nil {
			return err
		}

		t, err := build(products)
		if err != nil {
			return err
		}

		err = tx.QueryRowxContext(ctx, `
			INSERT INTO transactions (id, date, total, cashier_id)
			VALUES ($1, $2, $3, $4)
			RETURNING created_at`,
			t.ID, t.Date, t.Total, t.CashierID,
		).Scan(&t.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert transaction: %w", err)
		}

		for _, item := range t.Items {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO transaction_items
					(id, transaction_id, product_id, position, quantity, price)
				VALUES ($1, $2, $3, $4, $5, $6)`,
				item.ID, t.ID, item.ProductID, item.Position, item.Quantity, item.Price,
			)
			if err != nil {
				return fmt.Errorf("insert transaction item: %w", err)
			}

			_, err = tx.ExecContext(ctx, `
				UPDATE products
				SET stock = stock - $2, updated_at = NOW()
				WHERE id = $1`,
				item.ProductID, item.Quantity,
			)
			if err != nil {
				return fmt.Errorf("decrement stock: %w", err)
			}
		}

		created = t
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("record transaction: %w", err)
	}

	return created, nil
}

func lockProducts(
	ctx context.Context,
	tx core.DBTX,
	ids []string,
) (map[string]StockedProduct, error) {
	products := make(map[string]StockedProduct, len(ids))
	if len(ids) == 0 {
		return products, nil
	}

	query, args, err := sqlx.In(`
		SELECT id, name, price, stock
		FROM products
		WHERE id IN (?)
		ORDER BY id
		FOR UPDATE`, ids)
	if err != nil {
		return nil, fmt.Errorf("lock products: %w", err)
	}

	var rows []StockedProduct
	if err := tx.SelectContext(ctx, &rows, tx.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("lock products: %w", err)
	}

	for _, p := range rows {
		products[p.ID] = p
	}

	return products, nil
}

func (r *repository) attachItems(
	ctx context.Context,
	db core.DBTX,
	transactions []Transaction,
) error {
	if len(transactions) == 0 {
		return nil
	}

	ids := make([]string, 0, len(transactions))
	for _, t := range transactions {
		ids = append(ids, t.ID)
	}

	query, args, err := sqlx.In(`
		SELECT ti.id, ti.transaction_id, ti.product_id, ti.position,
		       ti.quantity, ti.price,
		       p.id AS "product.id", p.name AS "product.name",
		       p.price AS "product.price", p.image AS "product.image"
		FROM transaction_items ti
		LEFT JOIN products p ON p.id = ti.product_id
		WHERE ti.transaction_id IN (?)
		ORDER BY ti.transaction_id, ti.position`, ids)
	if err != nil {
		return fmt.Errorf("load transaction items: %w", err)
	}

	var items []Item
	if err := db.SelectContext(ctx, &items, db.Rebind(query), args...); err != nil {
		return fmt.Errorf("load transaction items: %w", err)
	}

	byTransaction := make(map[string][]Item, len(transactions))
	for _, item := range items {
		byTransaction[item.TransactionID] = append(byTransaction[item.TransactionID], item)
	}

	for i := range transactions {
		transactions[i].Items = byTransaction[transactions[i].ID]
		if transactions[i].Items == nil {
			transactions[i].Items = []Item{}
		}
	}

	return nil
}
