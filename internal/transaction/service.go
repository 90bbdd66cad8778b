// AngelaMos | 2026
// service.go

package transaction

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"

	"github.com/carterperez-dev/templates/pos-backend/internal/auth"
	"github.com/carterperez-dev/templates/pos-backend/internal/core"
	"github.com/carterperez-dev/templates/pos-backend/internal/query"
)

var ErrProductNotFound = errors.New("product not found")

// InsufficientStockError reports the first line whose product cannot cover
// the requested quantity.
type InsufficientStockError struct {
	ProductID string
	Product   string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf(
		"insufficient stock for %s: requested %d, available %d",
		e.Product, e.Requested, e.Available,
	)
}

func (e *InsufficientStockError) Unwrap() error {
	return core.ErrInvalidInput
}

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

func (s *Service) List(
	ctx context.Context,
	actor *auth.Identity,
	spec query.Spec,
) ([]Transaction, int, error) {
	if err := actor.Require(); err != nil {
		return nil, 0, fmt.Errorf("list transactions: %w", err)
	}

	return s.repo.List(ctx, spec)
}

func (s *Service) Get(
	ctx context.Context,
	actor *auth.Identity,
	id string,
) (*Transaction, error) {
	if err := actor.Require(); err != nil {
		return nil, fmt.Errorf("get transaction: %w", err)
	}

	return s.repo.GetByID(ctx, id)
}

// Create records a sale. Prices come from the product rows at the time of
// sale, never from the request.
func (s *Service) Create(
	ctx context.Context,
	actor *auth.Identity,
	req CreateRequest,
) (t *Transaction, err error) {
	ctx, span := core.StartSpan(ctx, "transaction.create",
		attribute.Int("transaction.lines", len(req.Items)),
	)
	defer func() { core.EndSpan(span, err) }()

	if err := actor.Require(auth.RoleAdmin, auth.RoleCashier); err != nil {
		return nil, fmt.Errorf("create transaction: %w", err)
	}

	cashierID := actor.UserID
	date := s.now().UTC()

	created, err := s.repo.Record(ctx, productIDs(req.Items),
		func(products map[string]StockedProduct) (*Transaction, error) {
			return Price(req.Items, products, date, &cashierID)
		},
	)
	if err != nil {
		return nil, err
	}

	span.SetAttributes(
		attribute.String("transaction.id", created.ID),
		attribute.String("transaction.total", created.Total.String()),
	)

	return s.repo.GetByID(ctx, created.ID)
}

// Price builds a transaction from request lines and the current product rows.
// Quantities of repeated products are summed before the stock check.
func Price(
	lines []ItemRequest,
	products map[string]StockedProduct,
	date time.Time,
	cashierID *string,
) (*Transaction, error) {
	requested := make(map[string]int, len(lines))
	for _, line := range lines {
		requested[line.ProductID] += line.Quantity
	}

	t := &Transaction{
		ID:        uuid.New().String(),
		Date:      date,
		Total:     decimal.Zero,
		CashierID: cashierID,
		Items:     make([]Item, 0, len(lines)),
	}

	for i, line := range lines {
		p, ok := products[line.ProductID]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrProductNotFound, line.ProductID)
		}
		if want := requested[line.ProductID]; want > p.Stock {
			return nil, &InsufficientStockError{
				ProductID: p.ID,
				Product:   p.Name,
				Requested: want,
				Available: p.Stock,
			}
		}

		item := Item{
			ID:            uuid.New().String(),
			TransactionID: t.ID,
			ProductID:     p.ID,
			Position:      i,
			Quantity:      line.Quantity,
			Price:         p.Price,
		}
		t.Items = append(t.Items, item)
		t.Total = t.Total.Add(item.Subtotal())
	}

	return t, nil
}

func productIDs(lines []ItemRequest) []string {
	seen := make(map[string]struct{}, len(lines))
	ids := make([]string, 0, len(lines))
	for _, line := range lines {
		if _, ok := seen[line.ProductID]; ok {
			continue
		}
		seen[line.ProductID] = struct{}{}
		ids = append(ids, line.ProductID)
	}
	return ids
}
