// AngelaMos | 2026
// handler.go

package transaction

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/templates/pos-backend/internal/auth"
	"github.com/carterperez-dev/templates/pos-backend/internal/core"
	"github.com/carterperez-dev/templates/pos-backend/internal/receipt"
)

type Handler struct {
	service   *Service
	guard     *auth.Guard
	validator *validator.Validate
}

func NewHandler(service *Service, guard *auth.Guard) *Handler {
	return &Handler{
		service:   service,
		guard:     guard,
		validator: core.NewValidator(),
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/transactions", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{id}", h.Get)
		r.Get("/{id}/receipt", h.Receipt)
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.guard.Require(w, r)
	if !ok {
		return
	}

	spec := ListSchema.Parse(r.URL.Query())

	transactions, total, err := h.service.List(r.Context(), identity, spec)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	core.OK(w, TransactionListResponse{
		Transactions: ToTransactionResponseList(transactions),
		Pagination:   core.NewPagination(spec.Page, spec.Limit, total),
	})
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.guard.Require(w, r)
	if !ok {
		return
	}

	t, err := h.service.Get(r.Context(), identity, chi.URLParam(r, "id"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	core.OK(w, TransactionEnvelope{Transaction: ToTransactionResponse(t)})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.guard.Require(w, r, auth.RoleAdmin, auth.RoleCashier)
	if !ok {
		return
	}

	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.ValidationFailed(w, err)
		return
	}

	t, err := h.service.Create(r.Context(), identity, req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	core.Created(w, TransactionEnvelope{
		Transaction: ToTransactionResponse(t),
		Message:     "Transaction recorded successfully",
	})
}

// Receipt renders the stored transaction as a PDF.
func (h *Handler) Receipt(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.guard.Require(w, r)
	if !ok {
		return
	}

	t, err := h.service.Get(r.Context(), identity, chi.URLParam(r, "id"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := receipt.Render(&buf, ToReceipt(t)); err != nil {
		core.InternalServerError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set(
		"Content-Disposition",
		fmt.Sprintf(`inline; filename="receipt-%s.pdf"`, t.ID),
	)
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w) //nolint:errcheck // client went away
}

func ToReceipt(t *Transaction) receipt.Receipt {
	lines := make([]receipt.Line, 0, len(t.Items))
	for _, it := range t.Items {
		name := ""
		if it.Product.Name != nil {
			name = *it.Product.Name
		}
		lines = append(lines, receipt.Line{
			Product:  name,
			Price:    it.Price,
			Quantity: it.Quantity,
		})
	}

	cashier := ""
	if t.CashierName != nil {
		cashier = *t.CashierName
	}

	number := t.ID
	if len(number) > 8 {
		number = number[:8]
	}

	return receipt.Receipt{
		Number:  number,
		Date:    t.Date,
		Cashier: cashier,
		Lines:   lines,
		Total:   t.Total,
	}
}

func (h *Handler) handleError(
	w http.ResponseWriter,
	r *http.Request,
	err error,
) {
	var stock *InsufficientStockError
	switch {
	case errors.As(err, &stock):
		core.JSONError(w, r, core.BadRequestError("Insufficient stock").WithDetails(
			map[string]any{
				"productId": stock.ProductID,
				"requested": stock.Requested,
				"available": stock.Available,
			},
		))
	case errors.Is(err, ErrProductNotFound):
		core.NotFound(w, "product")
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, "transaction")
	case errors.Is(err, core.ErrForbidden):
		core.JSONError(w, r, core.ForbiddenError(""))
	case errors.Is(err, core.ErrUnauthorized):
		core.JSONError(w, r, core.UnauthorizedError(""))
	default:
		core.InternalServerError(w, r, err)
	}
}
