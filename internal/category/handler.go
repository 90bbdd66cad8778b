// AngelaMos | 2026
// handler.go

package category

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
	r.Route("/categories", func(r chi.Router) {
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

	categories, err := h.service.List(r.Context(), identity)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	core.OK(w, CategoryListResponse{
		Categories: ToCategoryResponseList(categories),
	})
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.guard.Require(w, r)
	if !ok {
		return
	}

	c, err := h.service.Get(r.Context(), identity, chi.URLParam(r, "id"))
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	core.OK(w, CategoryEnvelope{Category: ToCategoryResponse(c)})
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

	c, err := h.service.Create(r.Context(), identity, req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	core.Created(w, CategoryEnvelope{
		Category: ToCategoryResponse(c),
		Message:  "Category created successfully",
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

	c, err := h.service.Update(r.Context(), identity, chi.URLParam(r, "id"), req)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	core.OK(w, CategoryEnvelope{
		Category: ToCategoryResponse(c),
		Message:  "Category updated successfully",
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

	core.Message(w, "Category deleted successfully")
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request) (CategoryRequest, bool) {
	var req CategoryRequest
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
			"Cannot delete category with existing products",
			"productCount",
			deps.Count,
		))
	case errors.Is(err, ErrNameExists):
		core.JSONError(w, r, core.BadRequestError("Category name already exists"))
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, "category")
	case errors.Is(err, core.ErrForbidden):
		core.JSONError(w, r, core.ForbiddenError(""))
	case errors.Is(err, core.ErrUnauthorized):
		core.JSONError(w, r, core.UnauthorizedError(""))
	default:
		core.InternalServerError(w, r, err)
	}
}
