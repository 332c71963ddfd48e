package extract

import (
	"errors"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/gaurav-prasanna/nfcepipe/core"
	"github.com/gaurav-prasanna/nfcepipe/core/norm"
)

// Labels the template prints on total lines.
const (
	labelItemCount  = "Qtd. total de itens:"
	labelTotalToPay = "Valor a pagar"
	labelTotal      = "Valor total"
	labelDiscount   = "Descontos"
	labelChange     = "Troco"
	labelTaxLine    = "Tributos Totais"
	currencyMarker  = "R$:"
	canonicalTaxKey = "tax"
)

// Totals reads the labeled total lines and the payment-type label. The page
// repeats the payment-type label on the line showing the amount paid with
// that method, so any total line whose label equals the payment type is
// skipped before the label/value pairs are collected.
//
// A missing "total before discount" line is derived as total after discount
// plus discount.
func Totals(doc *goquery.Document) (core.PaymentTotals, error) {
	content := doc.Find(contentRegion)
	if content.Length() == 0 {
		return core.PaymentTotals{}, errors.New("content region not found")
	}

	paymentLabel := content.Find("label.tx").First()
	if paymentLabel.Length() == 0 {
		return core.PaymentTotals{}, errors.New("payment type label not found")
	}
	payment := norm.Sanitize(paymentLabel.Text())

	values := totalValues(content, payment)

	totals := core.PaymentTotals{
		Kind:               core.ParsePaymentKind(payment),
		TypeLabel:          strings.ToUpper(payment),
		ItemCount:          int(values[labelItemCount]),
		TotalAfterDiscount: values[labelTotalToPay],
		Discount:           values[labelDiscount],
		Change:             values[labelChange],
	}

	before, ok := values[labelTotal]
	if !ok {
		before = totals.TotalAfterDiscount + totals.Discount
	}
	totals.TotalBeforeDiscount = before

	return totals, nil
}

// totalValues collects the label/value pairs of the total lines, skipping
// the payment-type display line. Labels are normalized: the tax-total line
// gets the canonical tax key, the rest lose the currency marker.
func totalValues(content *goquery.Selection, paymentLabel string) map[string]float64 {
	values := make(map[string]float64)
	content.Find("div#linhaTotal").Each(func(_ int, line *goquery.Selection) {
		label := line.Find("label").First()
		if label.Length() == 0 {
			return
		}
		key := norm.Sanitize(label.Text())
		if key == paymentLabel {
			return
		}
		if strings.Contains(key, labelTaxLine) {
			key = canonicalTaxKey
		} else {
			key = strings.TrimSpace(strings.ReplaceAll(key, currencyMarker, ""))
		}
		values[key] = norm.ToFloat(line.Find("span").First().Text())
	})
	return values
}
