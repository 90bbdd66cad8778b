// AngelaMos | 2026
// entity.go

package product

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          string          `db:"id"`
	Name        string          `db:"name"`
	Description *string         `db:"description"`
	Price       decimal.Decimal `db:"price"`
	Stock       int             `db:"stock"`
	CategoryID  string          `db:"category_id"`
	Image       *string         `db:"image"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`

	Category CategoryRef `db:"category"`
}

// CategoryRef is the joined category summary. Fields are nullable so a
// product row still scans when the join comes back empty.
type CategoryRef struct {
	ID   *string `db:"id"`
	Name *string `db:"name"`
}
