// AngelaMos | 2026
// dto.go

package transaction

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/carterperez-dev/templates/pos-backend/internal/core"
	"github.com/carterperez-dev/templates/pos-backend/internal/query"
)

type CreateRequest struct {
	Items []ItemRequest `json:"items" validate:"required,min=1,max=100,dive"`
}

type ItemRequest struct {
	ProductID string `json:"productId" validate:"required,uuid"`
	Quantity  int    `json:"quantity"  validate:"required,gt=0,max=10000"`
}

type ProductSummary struct {
	ID    string           `json:"id"`
	Name  string           `json:"name"`
	Price *decimal.Decimal `json:"price,omitempty"`
	Image *string          `json:"image"`
}

type ItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"productId"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Product   *ProductSummary `json:"product"`
}

type TransactionResponse struct {
	ID          string          `json:"id"`
	Date        time.Time       `json:"date"`
	Total       decimal.Decimal `json:"total"`
	CashierID   *string         `json:"cashierId"`
	CashierName *string         `json:"cashierName,omitempty"`
	Items       []ItemResponse  `json:"items"`
}

type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Pagination   core.Pagination       `json:"pagination"`
}

type TransactionEnvelope struct {
	Transaction TransactionResponse `json:"transaction"`
	Message     string              `json:"message,omitempty"`
}

// ListSchema orders transactions newest first unless asked otherwise.
var ListSchema = query.Schema{
	Sorts: map[string]string{
		"date":  "t.date",
		"total": "t.total",
	},
	Filters: map[string]string{
		"cashierId": "t.cashier_id::text",
	},
	DefaultSort:      "date",
	DefaultDirection: query.Desc,
	DefaultLimit:     20,
}

func ToTransactionResponse(t *Transaction) TransactionResponse {
	items := make([]ItemResponse, 0, len(t.Items))
	for _, it := range t.Items {
		items = append(items, toItemResponse(it))
	}

	return TransactionResponse{
		ID:          t.ID,
		Date:        t.Date,
		Total:       t.Total,
		CashierID:   t.CashierID,
		CashierName: t.CashierName,
		Items:       items,
	}
}

func ToTransactionResponseList(transactions []Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, 0, len(transactions))
	for i := range transactions {
		responses = append(responses, ToTransactionResponse(&transactions[i]))
	}
	return responses
}

func toItemResponse(it Item) ItemResponse {
	resp := ItemResponse{
		ID:        it.ID,
		ProductID: it.ProductID,
		Quantity:  it.Quantity,
		Price:     it.Price,
		Subtotal:  it.Subtotal(),
	}
	if it.Product.ID != nil {
		summary := &ProductSummary{
			ID:    *it.Product.ID,
			Image: it.Product.Image,
		}
		if it.Product.Name != nil {
			summary.Name = *it.Product.Name
		}
		if it.Product.Price.Valid {
			price := it.Product.Price.Decimal
			summary.Price = &price
		}
		resp.Product = summary
	}
	return resp
}
