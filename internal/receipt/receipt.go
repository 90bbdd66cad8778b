// AngelaMos | 2026
// receipt.go

package receipt

import (
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

type Line struct {
	Product  string
	Price    decimal.Decimal
	Quantity int
}

func (l Line) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

type Receipt struct {
	Title   string
	Number  string
	Date    time.Time
	Cashier string
	Lines   []Line
	Total   decimal.Decimal
}

const (
	pageWidth  = 80.0
	margin     = 4.0
	maxNameLen = 28
	currency   = "Rp"
	missing    = "Product unavailable"
)

// Render writes r as a single-column, receipt-width PDF. The page grows with
// the number of lines.
func Render(w io.Writer, r Receipt) error {
	height := 70.0 + 5.0*float64(len(r.Lines))

	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: pageWidth, Ht: height},
	})
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(false, margin)
	pdf.AddPage()

	contentW := pageWidth - 2*margin
	title := r.Title
	if title == "" {
		title = "Transaction Receipt"
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(contentW, 7, title, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	if r.Number != "" {
		pdf.CellFormat(contentW, 4, "No. "+r.Number, "", 1, "L", false, 0, "")
	}
	pdf.CellFormat(contentW, 4, "Date: "+r.Date.Format("02/01/2006 15:04"), "", 1, "L", false, 0, "")
	if r.Cashier != "" {
		pdf.CellFormat(contentW, 4, "Cashier: "+r.Cashier, "", 1, "L", false, 0, "")
	}
	pdf.Ln(2)

	colName := contentW * 0.40
	colPrice := contentW * 0.22
	colQty := contentW * 0.12
	colSub := contentW * 0.26

	pdf.SetFont("Helvetica", "B", 7)
	pdf.CellFormat(colName, 5, "Product", "B", 0, "L", false, 0, "")
	pdf.CellFormat(colPrice, 5, "Price", "B", 0, "R", false, 0, "")
	pdf.CellFormat(colQty, 5, "Qty", "B", 0, "C", false, 0, "")
	pdf.CellFormat(colSub, 5, "Subtotal", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	for _, line := range r.Lines {
		pdf.CellFormat(colName, 5, truncate(line.Product), "", 0, "L", false, 0, "")
		pdf.CellFormat(colPrice, 5, money(line.Price), "", 0, "R", false, 0, "")
		pdf.CellFormat(colQty, 5, fmt.Sprintf("%d", line.Quantity), "", 0, "C", false, 0, "")
		pdf.CellFormat(colSub, 5, money(line.Subtotal()), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.Line(margin, pdf.GetY(), pageWidth-margin, pdf.GetY())
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(colName+colPrice+colQty, 6, "TOTAL", "", 0, "L", false, 0, "")
	pdf.CellFormat(colSub, 6, money(r.Total), "", 1, "R", false, 0, "")

	pdf.Ln(3)
	pdf.SetFont("Helvetica", "I", 7)
	pdf.CellFormat(contentW, 4, "Thank you for your purchase", "", 1, "C", false, 0, "")

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render receipt: %w", err)
	}

	return nil
}

func money(d decimal.Decimal) string {
	return currency + d.StringFixed(2)
}

func truncate(name string) string {
	if name == "" {
		return missing
	}
	runes := []rune(name)
	if len(runes) > maxNameLen {
		return string(runes[:maxNameLen-3]) + "..."
	}
	return name
}
