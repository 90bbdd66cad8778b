// AngelaMos | 2026
// handler.go

package product

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/templates/pos-backend/internal/auth"
	"github.com/carterperez-dev/templates/pos-backend/internal/core"
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
	r.Route("/products", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.guard.Require(w, r)
	if !ok {
		return
	}

	spec := ListSchema.Parse(r.URL.Query())

	products, total, err := h.service.List(r.Context(), identity, spec)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	core.OK(w, ProductListResponse{
		Products:   ToProductResponseList(products),
		Pagination: core.NewPagination(spec.Page, spec.Limit, total),
	})
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.guard.Require(w, r)
	if !ok {
		return
	}

	p, err := h.service.Get(r.Context(), identity, chi.URLParam(r, "id"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	core.OK(w, ProductEnvelope{Product: ToProductResponse(p)})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.guard.Require(w, r, auth.RoleAdmin)
	if !ok {
		return
	}

	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	p, err := h.service.Create(r.Context(), identity, req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	core.Created(w, ProductEnvelope{
		Product: ToProductResponse(p),
		Message: "Product created successfully",
	})
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.guard.Require(w, r, auth.RoleAdmin)
	if !ok {
		return
	}

	req, ok := h.decode(w, r)
	if !ok {
		return
	}

	p, err := h.service.Update(r.Context(), identity, chi.URLParam(r, "id"), req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	core.OK(w, ProductEnvelope{
		Product: ToProductResponse(p),
		Message: "Product updated successfully",
	})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.guard.Require(w, r, auth.RoleAdmin)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), identity, chi.URLParam(r, "id")); err != nil {
		h.handleError(w, r, err)
		return
	}

	core.Message(w, "Product deleted successfully")
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request) (ProductRequest, bool) {
	var req ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return req, false
	}

	req.Normalize()
	if err := h.validator.Struct(req); err != nil {
		core.ValidationFailed(w, err)
		return req, false
	}

	return req, true
}

func (h *Handler) handleError(
	w http.ResponseWriter,
	r *http.Request,
	err error,
) {
	var deps *core.DependentsError
	switch {
	case errors.As(err, &deps):
		core.JSONError(w, r, core.DependentRowsError(
			"Cannot delete a product that appears in transactions",
			"transactionCount",
			deps.Count,
		))
	case errors.Is(err, ErrCategoryNotFound):
		core.NotFound(w, "category")
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, "product")
	case errors.Is(err, core.ErrForbidden):
		core.JSONError(w, r, core.ForbiddenError(""))
	case errors.Is(err, core.ErrUnauthorized):
		core.JSONError(w, r, core.UnauthorizedError(""))
	default:
		core.InternalServerError(w, r, err)
	}
}
