// AngelaMos | 2026
// gate.go

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/carterperez-dev/templates/pos-backend/internal/auth"
)

const (
	IdentityKey contextKey = "identity"
)

const (
	HeaderUserID    = "X-User-Id"
	HeaderUserEmail = "X-User-Email"
	HeaderUserName  = "X-User-Name"
	HeaderUserRole  = "X-User-Role"
)

var identityHeaders = []string{
	HeaderUserID,
	HeaderUserEmail,
	HeaderUserName,
	HeaderUserRole,
}

type GateConfig struct {
	Verifier       auth.Verifier
	Cookie         *auth.SessionCookie
	LoginPath      string
	LandingPath    string
	PublicPaths    []string
	PublicPrefixes []string
	PublicSuffixes []string
	AdminPrefixes  []string
}

func DefaultGateConfig(verifier auth.Verifier, cookie *auth.SessionCookie) GateConfig {
	return GateConfig{
		Verifier:    verifier,
		Cookie:      cookie,
		LoginPath:   "/login",
		LandingPath: "/dashboard",
		PublicPaths: []string{
			"/login",
			"/register",
			"/favicon.ico",
			"/healthz",
			"/livez",
			"/readyz",
		},
		PublicPrefixes: []string{
			"/api/auth",
			"/static",
			"/uploads",
		},
		PublicSuffixes: []string{
			".png", ".jpg", ".jpeg", ".gif", ".svg", ".webp", ".ico",
			".css", ".js",
		},
		AdminPrefixes: []string{
			"/admin",
			"/api/admin",
		},
	}
}

// Gate is the page-level access check. Unauthenticated requests are
// redirected to the login page, non-admins on admin paths to the landing
// page. Verified requests carry the identity in the context and in the
// X-User-* headers; inbound copies of those headers are always dropped.
func Gate(cfg GateConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, h := range identityHeaders {
				r.Header.Del(h)
			}

			path := r.URL.Path
			if cfg.isPublic(path) {
				next.ServeHTTP(w, r)
				return
			}

			token := cfg.Cookie.Read(r)
			if token == "" {
				http.Redirect(w, r, cfg.LoginPath, http.StatusFound)
				return
			}

			identity, err := cfg.Verifier.Verify(r.Context(), token)
			if err != nil {
				http.Redirect(w, r, cfg.LoginPath, http.StatusFound)
				return
			}

			if cfg.isAdminOnly(path) && !identity.IsAdmin() {
				http.Redirect(w, r, cfg.LandingPath, http.StatusFound)
				return
			}

			r.Header.Set(HeaderUserID, identity.UserID)
			r.Header.Set(HeaderUserEmail, identity.Email)
			r.Header.Set(HeaderUserName, identity.Name)
			r.Header.Set(HeaderUserRole, identity.Role)

			ctx := context.WithValue(r.Context(), IdentityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func (c GateConfig) isPublic(path string) bool {
	for _, p := range c.PublicPaths {
		if path == p {
			return true
		}
	}
	for _, prefix := range c.PublicPrefixes {
		if hasPathPrefix(path, prefix) {
			return true
		}
	}
	lower := strings.ToLower(path)
	for _, suffix := range c.PublicSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return true
		}
	}
	return false
}

func (c GateConfig) isAdminOnly(path string) bool {
	for _, prefix := range c.AdminPrefixes {
		if hasPathPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// hasPathPrefix matches whole segments, so /admin covers /admin/users but
// not /administrator.
func hasPathPrefix(path, prefix string) bool {
	if !strings.HasPrefix(path, prefix) {
		return false
	}
	return len(path) == len(prefix) || path[len(prefix)] == '/'
}

func GetIdentity(ctx context.Context) *auth.Identity {
	if identity, ok := ctx.Value(IdentityKey).(*auth.Identity); ok {
		return identity
	}
	return nil
}
