package core

import (
	"encoding/json"
	"strings"
	"time"
)

// Address is the issuer address. When the source line cannot be split into
// all seven fields it is stored whole in Street and the rest stay empty.
type Address struct {
	Street       string `json:"street"`
	Number       string `json:"number"`
	Complement   string `json:"complement"`
	Neighborhood string `json:"neighborhood"`
	Municipality string `json:"municipality"`
	State        string `json:"state"`
	Zip          string `json:"zip"`
}

// Company is the invoice issuer.
type Company struct {
	Name string `json:"name"`
	CNPJ string `json:"cnpj"`
}

// Product identifies a purchasable good. Codes may look numeric but are
// opaque strings.
type Product struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// LineItem is one purchased product with its accumulated quantity. An
// invoice holds at most one LineItem per product code.
type LineItem struct {
	Product   Product `json:"product"`
	Quantity  float64 `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Unit      string  `json:"unit"`
}

// TotalPrice is always derived from the accumulated quantity, never read
// from a source total field.
func (i LineItem) TotalPrice() float64 {
	return i.UnitPrice * i.Quantity
}

// MarshalJSON includes the derived total price in the item payload.
func (i LineItem) MarshalJSON() ([]byte, error) {
	type alias LineItem
	return json.Marshal(struct {
		alias
		TotalPrice float64 `json:"total_price"`
	}{alias(i), i.TotalPrice()})
}

// TaxBreakdown is the approximate tax disclosure printed on the invoice.
type TaxBreakdown struct {
	Federal   float64 `json:"federal"`
	State     float64 `json:"state"`
	Municipal float64 `json:"municipal"`
	Source    string  `json:"source"`
}

// Total sums the three components.
func (t TaxBreakdown) Total() float64 {
	return t.Federal + t.State + t.Municipal
}

// MarshalJSON includes the derived total in the tax payload.
func (t TaxBreakdown) MarshalJSON() ([]byte, error) {
	type alias TaxBreakdown
	return json.Marshal(struct {
		alias
		Total float64 `json:"total"`
	}{alias(t), t.Total()})
}

// PaymentKind enumerates the recognized payment methods.
type PaymentKind string

const (
	PaymentCash    PaymentKind = "cash"
	PaymentCredit  PaymentKind = "credit_card"
	PaymentDebit   PaymentKind = "debit_card"
	PaymentPix     PaymentKind = "pix"
	PaymentUnknown PaymentKind = "unrecognized"
)

// paymentLabels maps the exact labels the invoice template prints.
var paymentLabels = map[string]PaymentKind{
	"DINHEIRO":          PaymentCash,
	"CARTÃO DE CRÉDITO": PaymentCredit,
	"CRÉDITO":           PaymentCredit,
	"CARTÃO DE DÉBITO":  PaymentDebit,
	"CARTÃO DÉBITO":     PaymentDebit,
	"DÉBITO":            PaymentDebit,
	"PIX":               PaymentPix,
}

// ParsePaymentKind maps a payment label to its kind. Unknown labels map to
// PaymentUnknown; the original text stays available in PaymentTotals.
func ParsePaymentKind(label string) PaymentKind {
	l := strings.ToUpper(strings.TrimSpace(label))
	if kind, ok := paymentLabels[l]; ok {
		return kind
	}
	switch {
	case strings.Contains(l, "DÉBITO"):
		return PaymentDebit
	case strings.Contains(l, "CRÉDITO"):
		return PaymentCredit
	case strings.Contains(l, "PIX"):
		return PaymentPix
	case strings.Contains(l, "DINHEIRO"):
		return PaymentCash
	}
	return PaymentUnknown
}

// PaymentTotals holds the monetary summary of the invoice. TypeLabel keeps
// the payment-type text exactly as printed, upper-cased, so unrecognized
// methods are not lost.
type PaymentTotals struct {
	Kind                PaymentKind `json:"payment_type"`
	TypeLabel           string      `json:"payment_type_label"`
	Discount            float64     `json:"discount"`
	Change              float64     `json:"change"`
	TotalBeforeDiscount float64     `json:"total_before_discount"`
	TotalAfterDiscount  float64     `json:"total_after_discount"`
	ItemCount           int         `json:"item_count"`
}

// Invoice is the normalized record of one NFC-e consumer invoice. It is
// built once per scrape and never mutated afterwards.
type Invoice struct {
	AccessKey             string        `json:"access_key"`
	Number                string        `json:"number"`
	Series                string        `json:"series"`
	IssuedAt              time.Time     `json:"issued_at"`
	AuthorizationProtocol string        `json:"authorization_protocol"`
	AuthorizedAt          time.Time     `json:"authorized_at"`
	Company               Company       `json:"company"`
	Address               Address       `json:"address"`
	Items                 []LineItem    `json:"items"`
	Taxes                 TaxBreakdown  `json:"taxes"`
	Totals                PaymentTotals `json:"totals"`
}

// HasAccessKey reports whether the scrape found the 44-digit access key.
// A record without one is structurally valid but must be treated as
// "invoice not found" by callers.
func (inv *Invoice) HasAccessKey() bool {
	return inv.AccessKey != ""
}
