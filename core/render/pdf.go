package render

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/gaurav-prasanna/nfcepipe/core"
)

// PDFRenderer renders an invoice record as a printable PDF document:
// issuer block, line-item table, payment totals and the tax disclosure.
type PDFRenderer struct{}

// NewPDFRenderer creates a PDFRenderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// Render lays out the invoice on an A4 page.
func (r *PDFRenderer) Render(inv *core.Invoice) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	// Issuer block.
	pdf.SetFont("Helvetica", "B", 14)
	pdf.MultiCell(0, 7, tr(inv.Company.Name), "", "L", false)
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(100, 100, 100)
	pdf.MultiCell(0, 5, tr("CNPJ "+inv.Company.CNPJ), "", "L", false)
	if addr := formatAddress(inv.Address); addr != "" {
		pdf.MultiCell(0, 5, tr(addr), "", "L", false)
	}
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(3)

	// Document identifiers.
	pdf.SetFont("Helvetica", "", 9)
	pdf.MultiCell(0, 5, tr(fmt.Sprintf("NFC-e %s  Série %s", inv.Number, inv.Series)), "", "L", false)
	if !inv.IssuedAt.IsZero() {
		pdf.MultiCell(0, 5, "Issued "+inv.IssuedAt.Format(time.RFC3339), "", "L", false)
	}
	if inv.AccessKey != "" {
		pdf.MultiCell(0, 5, "Access key "+inv.AccessKey, "", "L", false)
	}
	pdf.Ln(4)

	// Line-item table.
	renderItemsTable(pdf, tr, inv.Items)
	pdf.Ln(4)

	// Totals block.
	pdf.SetFont("Helvetica", "", 10)
	writeTotal(pdf, tr, "Items", strconv.Itoa(inv.Totals.ItemCount))
	writeTotal(pdf, tr, "Total", money(inv.Totals.TotalBeforeDiscount))
	writeTotal(pdf, tr, "Discount", money(inv.Totals.Discount))
	writeTotal(pdf, tr, "To pay", money(inv.Totals.TotalAfterDiscount))
	if inv.Totals.Change > 0 {
		writeTotal(pdf, tr, "Change", money(inv.Totals.Change))
	}
	writeTotal(pdf, tr, "Payment", inv.Totals.TypeLabel)
	pdf.Ln(3)

	// Tax disclosure.
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(100, 100, 100)
	disclosure := fmt.Sprintf("Approx. taxes: %s federal, %s state, %s municipal (total %s)",
		money(inv.Taxes.Federal), money(inv.Taxes.State), money(inv.Taxes.Municipal), money(inv.Taxes.Total()))
	if inv.Taxes.Source != "" {
		disclosure += ", source " + inv.Taxes.Source
	}
	pdf.MultiCell(0, 4, tr(disclosure), "", "L", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for PDF output.
func (r *PDFRenderer) Extension() string {
	return ".pdf"
}

func renderItemsTable(pdf *gofpdf.Fpdf, tr func(string) string, items []core.LineItem) {
	widths := []float64{22, 78, 18, 14, 24, 24}
	headers := []string{"Code", "Description", "Qty", "Unit", "Unit price", "Total"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(235, 235, 235)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 6, h, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, item := range items {
		cells := []string{
			item.Product.Code,
			tr(item.Product.Description),
			formatAmount(item.Quantity),
			tr(item.Unit),
			money(item.UnitPrice),
			money(item.TotalPrice()),
		}
		for i, c := range cells {
			pdf.CellFormat(widths[i], 6, c, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}
}

func writeTotal(pdf *gofpdf.Fpdf, tr func(string) string, label, value string) {
	pdf.CellFormat(40, 5, label, "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 5, tr(value), "", 1, "L", false, 0, "")
}

func formatAddress(a core.Address) string {
	parts := []string{a.Street, a.Number, a.Complement, a.Neighborhood, a.Municipality, a.State, a.Zip}
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ", ")
}

func money(v float64) string {
	return "R$ " + formatAmount(v)
}
