// AngelaMos | 2026
// receipt_test.go

package receipt

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderProducesPDF(t *testing.T) {
	var buf bytes.Buffer

	err := Render(&buf, Receipt{
		Number:  "c0ffee",
		Date:    time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
		Cashier: "Budi",
		Lines: []Line{
			{Product: "Kopi Susu", Price: decimal.RequireFromString("18000"), Quantity: 2},
			{Product: "", Price: decimal.RequireFromString("5000.50"), Quantity: 1},
		},
		Total: decimal.RequireFromString("41000.50"),
	})
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")))
	assert.Greater(t, buf.Len(), 500)
}

func TestLineSubtotal(t *testing.T) {
	line := Line{Price: decimal.RequireFromString("2.50"), Quantity: 3}
	assert.True(t, line.Subtotal().Equal(decimal.RequireFromString("7.50")))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, missing, truncate(""))
	assert.Equal(t, "short", truncate("short"))

	long := truncate("An extraordinarily long product name for a receipt")
	assert.Len(t, []rune(long), maxNameLen)
	assert.Contains(t, long, "...")
}
