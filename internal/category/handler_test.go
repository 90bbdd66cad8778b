// AngelaMos | 2026
// handler_test.go

package category

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/templates/pos-backend/internal/auth"
	"github.com/carterperez-dev/templates/pos-backend/internal/config"
	"github.com/carterperez-dev/templates/pos-backend/internal/core"
)

type handlerFixture struct {
	router http.Handler
	repo   *fakeRepository
	tokens *auth.TokenService
}

func newHandlerFixture(t *testing.T) *handlerFixture {
	t.Helper()

	tokens, err := auth.NewTokenService(config.JWTConfig{
		Secret:   "category-test-secret-0123456789-abcdefghij",
		Expire:   time.Hour,
		Issuer:   "pos-backend",
		Audience: "pos-backend-web",
	}, nil)
	require.NoError(t, err)

	cookie := auth.NewSessionCookie(config.SessionConfig{CookieName: "token"}, time.Hour)
	repo := newFakeRepository()

	r := chi.NewRouter()
	NewHandler(NewService(repo), auth.NewGuard(tokens, cookie)).RegisterRoutes(r)

	return &handlerFixture{router: r, repo: repo, tokens: tokens}
}

func (f *handlerFixture) do(t *testing.T, method, path, body, role string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if role != "" {
		token, err := f.tokens.Issue(auth.Claims{
			UserID: "user-1", Email: "user@toko.test", Name: "User", Role: role,
		})
		require.NoError(t, err)
		req.AddCookie(&http.Cookie{Name: "token", Value: token})
	}

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func TestCreateCategoryHandler(t *testing.T) {
	f := newHandlerFixture(t)

	rec := f.do(t, http.MethodPost, "/categories", `{"name":"Snacks"}`, auth.RoleAdmin)
	require.Equal(t, http.StatusCreated, rec.Code)

	var body CategoryEnvelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "Snacks", body.Category.Name)
	assert.Equal(t, "Category created successfully", body.Message)

	rec = f.do(t, http.MethodPost, "/categories", `{"name":"SNACKS"}`, auth.RoleAdmin)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Category name already exists")
}

func TestCashierCannotCreateCategory(t *testing.T) {
	f := newHandlerFixture(t)

	rec := f.do(t, http.MethodPost, "/categories", `{"name":"Snacks"}`, auth.RoleCashier)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Empty(t, f.repo.categories)

	rec = f.do(t, http.MethodGet, "/categories", "", auth.RoleCashier)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodGet, "/categories", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateCategoryValidation(t *testing.T) {
	f := newHandlerFixture(t)

	rec := f.do(t, http.MethodPost, "/categories", `{"name":"   "}`, auth.RoleAdmin)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body core.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "Validation failed", body.Error)
}

func TestDeleteCategoryWithProducts(t *testing.T) {
	f := newHandlerFixture(t)

	rec := f.do(t, http.MethodPost, "/categories", `{"name":"Snacks"}`, auth.RoleAdmin)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created CategoryEnvelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))
	f.repo.products[created.Category.ID] = 2

	rec = f.do(t, http.MethodDelete, "/categories/"+created.Category.ID, "", auth.RoleAdmin)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		Error   string         `json:"error"`
		Details map[string]int `json:"details"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "Cannot delete category with existing products", body.Error)
	assert.Equal(t, 2, body.Details["productCount"])
}

func TestGetMissingCategory(t *testing.T) {
	f := newHandlerFixture(t)

	rec := f.do(t, http.MethodGet, "/categories/does-not-exist", "", auth.RoleCashier)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "category not found")
}
