package render

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/gaurav-prasanna/nfcepipe/core"
)

// csvHeader repeats the invoice-level columns on every row so each line
// item row is self-contained.
var csvHeader = []string{
	"access_key", "number", "series", "issued_at",
	"company", "cnpj", "payment_type",
	"product_code", "description", "quantity", "unit", "unit_price", "total_price",
}

// CSVRenderer produces one CSV row per line item.
type CSVRenderer struct{}

// NewCSVRenderer creates a CSVRenderer.
func NewCSVRenderer() *CSVRenderer {
	return &CSVRenderer{}
}

// Render writes the header plus one row per line item.
func (r *CSVRenderer) Render(inv *core.Invoice) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("writing CSV header: %w", err)
	}

	issued := ""
	if !inv.IssuedAt.IsZero() {
		issued = inv.IssuedAt.Format(time.RFC3339)
	}

	for _, item := range inv.Items {
		row := []string{
			inv.AccessKey,
			inv.Number,
			inv.Series,
			issued,
			inv.Company.Name,
			inv.Company.CNPJ,
			string(inv.Totals.Kind),
			item.Product.Code,
			item.Product.Description,
			formatAmount(item.Quantity),
			item.Unit,
			formatAmount(item.UnitPrice),
			formatAmount(item.TotalPrice()),
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("writing CSV row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flushing CSV: %w", err)
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for CSV output.
func (r *CSVRenderer) Extension() string {
	return ".csv"
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
