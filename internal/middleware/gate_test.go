// AngelaMos | 2026
// gate_test.go

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/templates/pos-backend/internal/auth"
	"github.com/carterperez-dev/templates/pos-backend/internal/config"
)

type gateFixture struct {
	tokens  *auth.TokenService
	cookie  *auth.SessionCookie
	handler http.Handler
	seen    *http.Request
}

func newGateFixture(t *testing.T) *gateFixture {
	t.Helper()

	tokens, err := auth.NewTokenService(config.JWTConfig{
		Secret:   "gate-test-secret-0123456789-abcdefghijklmnop",
		Expire:   7 * 24 * time.Hour,
		Issuer:   "pos-backend",
		Audience: "pos-backend-web",
	}, nil)
	require.NoError(t, err)

	f := &gateFixture{
		tokens: tokens,
		cookie: auth.NewSessionCookie(
			config.SessionConfig{CookieName: "token", SameSite: "lax"},
			tokens.Lifetime(),
		),
	}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.seen = r
		w.WriteHeader(http.StatusOK)
	})
	f.handler = Gate(DefaultGateConfig(tokens, f.cookie))(next)
	return f
}

func (f *gateFixture) serve(t *testing.T, path, role string) *httptest.ResponseRecorder {
	t.Helper()
	f.seen = nil

	req := httptest.NewRequest(http.MethodGet, path, nil)
	if role != "" {
		token, err := f.tokens.Issue(auth.Claims{
			UserID: "user-1",
			Email:  "someone@toko.test",
			Name:   "Someone",
			Role:   role,
		})
		require.NoError(t, err)
		req.AddCookie(&http.Cookie{Name: f.cookie.Name, Value: token})
	}

	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func TestGatePublicPaths(t *testing.T) {
	f := newGateFixture(t)

	for _, path := range []string{
		"/login",
		"/register",
		"/api/auth/login",
		"/api/auth/me",
		"/uploads/abc.png",
		"/static/app.js",
		"/logo.svg",
		"/healthz",
	} {
		rec := f.serve(t, path, "")
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestGateRedirectsAnonymousToLogin(t *testing.T) {
	f := newGateFixture(t)

	for _, path := range []string{"/dashboard", "/products", "/api/products", "/admin"} {
		rec := f.serve(t, path, "")
		assert.Equal(t, http.StatusFound, rec.Code, path)
		assert.Equal(t, "/login", rec.Header().Get("Location"), path)
	}
}

func TestGateRedirectsInvalidTokenToLogin(t *testing.T) {
	f := newGateFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: "not-a-jwt"})
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
	assert.Nil(t, f.seen)
}

func TestGateKeepsCashiersOutOfAdmin(t *testing.T) {
	f := newGateFixture(t)

	for _, path := range []string{"/admin", "/admin/users", "/api/admin/users"} {
		rec := f.serve(t, path, auth.RoleCashier)
		assert.Equal(t, http.StatusFound, rec.Code, path)
		assert.Equal(t, "/dashboard", rec.Header().Get("Location"), path)
	}

	rec := f.serve(t, "/admin/users", auth.RoleAdmin)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGateAdminPrefixMatchesWholeSegments(t *testing.T) {
	f := newGateFixture(t)

	rec := f.serve(t, "/administrator", auth.RoleCashier)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGateInjectsIdentity(t *testing.T) {
	f := newGateFixture(t)

	rec := f.serve(t, "/dashboard", auth.RoleCashier)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, f.seen)

	assert.Equal(t, "user-1", f.seen.Header.Get(HeaderUserID))
	assert.Equal(t, "someone@toko.test", f.seen.Header.Get(HeaderUserEmail))
	assert.Equal(t, "Someone", f.seen.Header.Get(HeaderUserName))
	assert.Equal(t, auth.RoleCashier, f.seen.Header.Get(HeaderUserRole))

	identity := GetIdentity(f.seen.Context())
	require.NotNil(t, identity)
	assert.Equal(t, "user-1", identity.UserID)
}

func TestGateStripsSpoofedHeaders(t *testing.T) {
	f := newGateFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/login", nil)
	req.Header.Set(HeaderUserID, "attacker")
	req.Header.Set(HeaderUserRole, auth.RoleAdmin)
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, f.seen)
	assert.Empty(t, f.seen.Header.Get(HeaderUserID))
	assert.Empty(t, f.seen.Header.Get(HeaderUserRole))
	assert.Nil(t, GetIdentity(f.seen.Context()))
}
