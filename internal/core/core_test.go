// AngelaMos | 2026
// core_test.go

package core

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("secret123")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$"))

	ok, err := VerifyPassword("secret123", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword("secret124", hash)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = VerifyPassword("secret123", "not-a-hash")
	assert.Error(t, err)
}

func TestVerifyPasswordTimingSafeUnknownAccount(t *testing.T) {
	ok, rehash, err := VerifyPasswordTimingSafe("anything", nil)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, rehash)
}

func TestMoneyEncodesAsNumber(t *testing.T) {
	out, err := json.Marshal(map[string]decimal.Decimal{"total": decimal.RequireFromString("12500.50")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"total":12500.5}`, string(out))
}

func TestDependentsErrorRendering(t *testing.T) {
	var err error = fmt.Errorf("delete: %w", &DependentsError{Dependent: "products", Count: 2})
	assert.ErrorIs(t, err, ErrConflict)

	var deps *DependentsError
	require.True(t, errors.As(err, &deps))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/categories/1", nil)
	JSONError(rec, req, DependentRowsError("Cannot delete", "productCount", deps.Count))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Cannot delete","details":{"productCount":2}}`, rec.Body.String())
}

func TestJSONErrorHidesUnknownCauses(t *testing.T) {
	var logs bytes.Buffer
	previous := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&logs, nil)))
	t.Cleanup(func() { slog.SetDefault(previous) })

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	req = req.WithContext(WithRequestID(req.Context(), "req-42"))

	JSONError(rec, req, errors.New("pq: connection reset"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "connection reset")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(logs.Bytes(), &entry))
	assert.Equal(t, "internal server error", entry["msg"])
	assert.Equal(t, "req-42", entry["request_id"])
	assert.Equal(t, "/api/products", entry["path"])
	assert.Contains(t, entry["error"], "connection reset")
}

func TestNotFoundEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	NotFound(rec, "product")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"product not found"}`, rec.Body.String())
}

func TestValidatorReportsJSONNames(t *testing.T) {
	type item struct {
		ProductID string          `json:"productId" validate:"required,uuid"`
		Price     decimal.Decimal `json:"price"     validate:"required,gt=0"`
	}

	err := NewValidator().Struct(item{ProductID: "x", Price: decimal.NewFromInt(-1)})
	require.Error(t, err)

	details := FormatValidationError(err)
	assert.Equal(t, "must be a valid id", details["productId"])
	assert.Equal(t, "must be greater than 0", details["price"])

	err = NewValidator().Struct(item{
		ProductID: "0b7e1f0e-6a53-4a43-9a4e-3f1b2a7d9c10",
		Price:     decimal.RequireFromString("0.01"),
	})
	assert.NoError(t, err)
}

func TestNewPagination(t *testing.T) {
	p := NewPagination(2, 10, 25)
	assert.Equal(t, 3, p.TotalPages)
	assert.Equal(t, 0, NewPagination(1, 10, 0).TotalPages)
}
