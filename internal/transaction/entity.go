// AngelaMos | 2026
// entity.go

package transaction

import (
	"time"

	"github.com/shopspring/decimal"
)

type Transaction struct {
	ID          string          `db:"id"`
	Date        time.Time       `db:"date"`
	Total       decimal.Decimal `db:"total"`
	CashierID   *string         `db:"cashier_id"`
	CashierName *string         `db:"cashier_name"`
	CreatedAt   time.Time       `db:"created_at"`

	Items []Item `db:"-"`
}

type Item struct {
	ID            string          `db:"id"`
	TransactionID string          `db:"transaction_id"`
	ProductID     string          `db:"product_id"`
	Position      int             `db:"position"`
	Quantity      int             `db:"quantity"`
	Price         decimal.Decimal `db:"price"`

	Product ProductRef `db:"product"`
}

func (i Item) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

type ProductRef struct {
	ID    *string             `db:"id"`
	Name  *string             `db:"name"`
	Price decimal.NullDecimal `db:"price"`
	Image *string             `db:"image"`
}

// StockedProduct is a product row locked for the duration of a sale.
type StockedProduct struct {
	ID    string          `db:"id"`
	Name  string          `db:"name"`
	Price decimal.Decimal `db:"price"`
	Stock int             `db:"stock"`
}

// Builder turns the locked products into the transaction to persist. It runs
// inside the database transaction, so a returned error rolls everything back.
type Builder func(products map[string]StockedProduct) (*Transaction, error)
