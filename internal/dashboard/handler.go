// AngelaMos | 2026
// handler.go

package dashboard

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

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/dashboard/stats", h.Stats)
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.guard.Require(w, r)
	if !ok {
		return
	}

	stats, err := h.service.Stats(r.Context(), identity)
	if err != nil {
		core.InternalServerError(w, r, err)
		return
	}

	core.OK(w, ToStatsResponse(stats))
}
