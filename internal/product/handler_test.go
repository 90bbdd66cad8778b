// AngelaMos | 2026
// handler_test.go

package product

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
		Secret:   "product-test-secret-0123456789-abcdefghij",
		Expire:   time.Hour,
		Issuer:   "pos-backend",
		Audience: "pos-backend-web",
	}, nil)
	require.NoError(t, err)

	cookie := auth.NewSessionCookie(config.SessionConfig{CookieName: "token"}, time.Hour)
	repo := newFakeRepository()

	r := chi.NewRouter()
	NewHandler(NewService(repo, nil), auth.NewGuard(tokens, cookie)).RegisterRoutes(r)

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

const chipsBody = `{"name":"Chips","price":12500,"stock":10,"categoryId":"` + snacksID + `"}`

func TestCreateProductHandler(t *testing.T) {
	f := newHandlerFixture(t)

	rec := f.do(t, http.MethodPost, "/products", chipsBody, auth.RoleAdmin)
	require.Equal(t, http.StatusCreated, rec.Code)

	var body struct {
		Product struct {
			Name     string  `json:"name"`
			Price    float64 `json:"price"`
			Stock    int     `json:"stock"`
			Category struct {
				Name string `json:"name"`
			} `json:"category"`
		} `json:"product"`
		Message string `json:"message"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "Chips", body.Product.Name)
	assert.InDelta(t, 12500.0, body.Product.Price, 0.001)
	assert.Equal(t, 10, body.Product.Stock)
	assert.Equal(t, "Snacks", body.Product.Category.Name)
	assert.Equal(t, "Product created successfully", body.Message)
}

func TestCashierCannotCreateProduct(t *testing.T) {
	f := newHandlerFixture(t)

	rec := f.do(t, http.MethodPost, "/products", chipsBody, auth.RoleCashier)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Empty(t, f.repo.products)
}

func TestCreateProductValidation(t *testing.T) {
	f := newHandlerFixture(t)

	rec := f.do(t, http.MethodPost, "/products",
		`{"name":"","price":0,"stock":-1,"categoryId":"nope"}`, auth.RoleAdmin)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body core.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "Validation failed", body.Error)

	details, ok := body.Details.(map[string]any)
	require.True(t, ok)
	for _, field := range []string{"name", "price", "stock", "categoryId"} {
		assert.Contains(t, details, field)
	}
}

func TestCreateProductMissingStock(t *testing.T) {
	f := newHandlerFixture(t)

	rec := f.do(t, http.MethodPost, "/products",
		`{"name":"Chips","price":100,"categoryId":"`+snacksID+`"}`, auth.RoleAdmin)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "stock")
}

func TestCreateProductUnknownCategoryHandler(t *testing.T) {
	f := newHandlerFixture(t)

	rec := f.do(t, http.MethodPost, "/products",
		`{"name":"Chips","price":100,"stock":1,"categoryId":"7f000000-0000-4000-8000-000000000000"}`,
		auth.RoleAdmin)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "category not found")
}

func TestDeleteProductInTransactions(t *testing.T) {
	f := newHandlerFixture(t)

	rec := f.do(t, http.MethodPost, "/products", chipsBody, auth.RoleAdmin)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created ProductEnvelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))
	f.repo.usage[created.Product.ID] = 3

	rec = f.do(t, http.MethodDelete, "/products/"+created.Product.ID, "", auth.RoleAdmin)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		Details map[string]int `json:"details"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, 3, body.Details["transactionCount"])
}
