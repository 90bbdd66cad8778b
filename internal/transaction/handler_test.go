// AngelaMos | 2026
// handler_test.go

package transaction

import (
	"bytes"
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
)

type handlerFixture struct {
	router http.Handler
	repo   *fakeRepository
	tokens *auth.TokenService
}

func newHandlerFixture(t *testing.T) *handlerFixture {
	t.Helper()

	tokens, err := auth.NewTokenService(config.JWTConfig{
		Secret:   "transaction-test-secret-0123456789-abcdefg",
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
			UserID: "cashier-1", Email: "kasir@toko.test", Name: "Kasir", Role: role,
		})
		require.NoError(t, err)
		req.AddCookie(&http.Cookie{Name: "token", Value: token})
	}

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func TestCreateTransactionHandler(t *testing.T) {
	f := newHandlerFixture(t)

	rec := f.do(t, http.MethodPost, "/transactions",
		`{"items":[{"productId":"`+coffeeID+`","quantity":2}]}`, auth.RoleCashier)
	require.Equal(t, http.StatusCreated, rec.Code)

	var body struct {
		Transaction struct {
			ID    string  `json:"id"`
			Total float64 `json:"total"`
			Items []struct {
				Quantity int     `json:"quantity"`
				Subtotal float64 `json:"subtotal"`
				Product  struct {
					Name string `json:"name"`
				} `json:"product"`
			} `json:"items"`
		} `json:"transaction"`
		Message string `json:"message"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.InDelta(t, 30000.0, body.Transaction.Total, 0.001)
	require.Len(t, body.Transaction.Items, 1)
	assert.Equal(t, "Coffee", body.Transaction.Items[0].Product.Name)
	assert.InDelta(t, 30000.0, body.Transaction.Items[0].Subtotal, 0.001)
	assert.Equal(t, "Transaction recorded successfully", body.Message)
}

func TestCreateTransactionInsufficientStock(t *testing.T) {
	f := newHandlerFixture(t)

	rec := f.do(t, http.MethodPost, "/transactions",
		`{"items":[{"productId":"`+breadID+`","quantity":5}]}`, auth.RoleCashier)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		Error   string `json:"error"`
		Details struct {
			ProductID string `json:"productId"`
			Requested int    `json:"requested"`
			Available int    `json:"available"`
		} `json:"details"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "Insufficient stock", body.Error)
	assert.Equal(t, breadID, body.Details.ProductID)
	assert.Equal(t, 5, body.Details.Requested)
	assert.Equal(t, 2, body.Details.Available)
}

func TestCreateTransactionValidation(t *testing.T) {
	f := newHandlerFixture(t)

	for _, payload := range []string{
		`{"items":[]}`,
		`{"items":[{"productId":"not-a-uuid","quantity":1}]}`,
		`{"items":[{"productId":"` + coffeeID + `","quantity":0}]}`,
		`not json`,
	} {
		rec := f.do(t, http.MethodPost, "/transactions", payload, auth.RoleCashier)
		assert.Equal(t, http.StatusBadRequest, rec.Code, payload)
	}
}

func TestCreateTransactionUnknownProduct(t *testing.T) {
	f := newHandlerFixture(t)

	rec := f.do(t, http.MethodPost, "/transactions",
		`{"items":[{"productId":"`+ghostID+`","quantity":1}]}`, auth.RoleCashier)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "product not found")
}

func TestTransactionsRequireSession(t *testing.T) {
	f := newHandlerFixture(t)

	rec := f.do(t, http.MethodGet, "/transactions", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestReceiptPDF(t *testing.T) {
	f := newHandlerFixture(t)

	rec := f.do(t, http.MethodPost, "/transactions",
		`{"items":[{"productId":"`+coffeeID+`","quantity":1},{"productId":"`+breadID+`","quantity":1}]}`,
		auth.RoleCashier)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created TransactionEnvelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))

	rec = f.do(t, http.MethodGet, "/transactions/"+created.Transaction.ID+"/receipt", "", auth.RoleCashier)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), created.Transaction.ID)
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")))
}

func TestToReceipt(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo)

	tx, err := svc.Create(t.Context(), cashier, CreateRequest{Items: []ItemRequest{
		{ProductID: coffeeID, Quantity: 2},
	}})
	require.NoError(t, err)

	r := ToReceipt(tx)
	assert.Equal(t, tx.ID[:8], r.Number)
	assert.Equal(t, "Kasir", r.Cashier)
	require.Len(t, r.Lines, 1)
	assert.Equal(t, "Coffee", r.Lines[0].Product)
	assert.True(t, tx.Total.Equal(r.Total))
}
