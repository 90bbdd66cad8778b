// AngelaMos | 2026
// handler.go

package auth

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/templates/pos-backend/internal/core"
)

type Handler struct {
	service   *Service
	guard     *Guard
	cookie    *SessionCookie
	validator *validator.Validate
}

func NewHandler(service *Service, guard *Guard, cookie *SessionCookie) *Handler {
	return &Handler{
		service:   service,
		guard:     guard,
		cookie:    cookie,
		validator: core.NewValidator(),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	credentialLimiter func(http.Handler) http.Handler,
) {
	r.Route("/auth", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			if credentialLimiter != nil {
				r.Use(credentialLimiter)
			}
			r.Post("/login", h.Login)
			r.Post("/register", h.Register)
		})

		r.Post("/logout", h.Logout)
		r.Get("/me", h.Me)
	})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.ValidationFailed(w, err)
		return
	}

	session, err := h.service.Login(r.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			core.JSONError(
				w,
				r,
				core.UnauthorizedError("Invalid email or password"),
			)
			return
		}
		core.InternalServerError(w, r, err)
		return
	}

	h.cookie.Set(w, session.Token)
	core.OK(w, AuthResponse{
		User:    session.User,
		Message: "Login successful",
	})
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.ValidationFailed(w, err)
		return
	}

	session, err := h.service.Register(r.Context(), req)
	if err != nil {
		if errors.Is(err, ErrEmailExists) {
			core.JSONError(w, r, core.DuplicateError("email"))
			return
		}
		core.InternalServerError(w, r, err)
		return
	}

	h.cookie.Set(w, session.Token)
	core.Created(w, AuthResponse{
		User:    session.User,
		Message: "Registration successful",
	})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Logout(r.Context(), h.cookie.Read(r)); err != nil {
		slog.WarnContext(r.Context(), "token revocation failed", "error", err)
	}

	h.cookie.Clear(w)
	core.OK(w, LogoutResponse{
		Success: true,
		Message: "Logout successful",
	})
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	identity, ok := h.guard.Require(w, r)
	if !ok {
		return
	}

	user, err := h.service.CurrentUser(r.Context(), identity)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "user")
			return
		}
		core.InternalServerError(w, r, err)
		return
	}

	core.OK(w, MeResponse{User: *user})
}
