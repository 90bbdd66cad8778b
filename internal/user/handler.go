// AngelaMos | 2026
// handler.go

package user

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/templates/pos-backend/internal/auth"
	"github.com/carterperez-dev/templates/pos-backend/internal/core"
)

type Handler struct {
	service *Service
	guard   *auth.Guard
}

func NewHandler(service *Service, guard *auth.Guard) *Handler {
	return &Handler{
		service: service,
		guard:   guard,
	}
}

// RegisterAdminRoutes mounts account management under /admin/users.
func (h *Handler) RegisterAdminRoutes(r chi.Router) {
	r.Get("/admin/users", h.ListUsers)
}

// ListUsers returns a page of accounts, filterable by role and searchable by
// name or email.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.guard.Require(w, r, auth.RoleAdmin)
	if !ok {
		return
	}

	spec := ListSchema.Parse(r.URL.Query())

	users, total, err := h.service.ListUsers(r.Context(), identity, spec)
	if err != nil {
		core.InternalServerError(w, r, err)
		return
	}

	core.OK(w, UserListResponse{
		Users:      ToUserResponseList(users),
		Pagination: core.NewPagination(spec.Page, spec.Limit, total),
	})
}
