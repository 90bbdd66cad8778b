// AngelaMos | 2026
// guard.go

package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/carterperez-dev/templates/pos-backend/internal/core"
)

type Verifier interface {
	Verify(ctx context.Context, token string) (*Identity, error)
}

// Guard re-verifies the session cookie inside a handler. It never trusts
// identity headers or context values set further up the chain.
type Guard struct {
	verifier Verifier
	cookie   *SessionCookie
}

func NewGuard(verifier Verifier, cookie *SessionCookie) *Guard {
	return &Guard{
		verifier: verifier,
		cookie:   cookie,
	}
}

func (g *Guard) Authenticate(r *http.Request) (*Identity, error) {
	token := g.cookie.Read(r)
	if token == "" {
		return nil, fmt.Errorf("authenticate: %w", core.ErrUnauthorized)
	}

	identity, err := g.verifier.Verify(r.Context(), token)
	if err != nil {
		return nil, fmt.Errorf("authenticate: %w: %w", core.ErrUnauthorized, err)
	}

	return identity, nil
}

// Require authenticates the request and checks its role, writing the 401 or
// 403 response itself. Callers return immediately when ok is false.
func (g *Guard) Require(
	w http.ResponseWriter,
	r *http.Request,
	roles ...string,
) (*Identity, bool) {
	identity, err := g.Authenticate(r)
	if err != nil {
		core.JSONError(w, r, core.UnauthorizedError(""))
		return nil, false
	}

	if err := identity.Require(roles...); err != nil {
		if errors.Is(err, core.ErrForbidden) {
			core.JSONError(w, r, core.ForbiddenError(""))
			return nil, false
		}
		core.JSONError(w, r, core.UnauthorizedError(""))
		return nil, false
	}

	return identity, true
}
