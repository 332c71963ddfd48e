package extract

import (
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/gaurav-prasanna/nfcepipe/core"
	"github.com/gaurav-prasanna/nfcepipe/core/norm"
)

// ErrColumnMismatch reports item columns of unequal length. The items table
// is a positional join of five parallel column sequences; indexing it
// blindly on mismatch would attribute values to the wrong product, so the
// whole section fails instead.
var ErrColumnMismatch = errors.New("item columns have unequal lengths")

// itemRow is one positionally-joined row of the items table.
type itemRow struct {
	name     string
	code     string
	quantity string
	unit     string
	price    string
}

// Items reads the line-item table and folds its rows into at most one
// LineItem per product code. The first occurrence of a code creates the
// item; repeated occurrences only add their quantity to it. Output keeps
// first-occurrence order.
func Items(doc *goquery.Document) ([]core.LineItem, error) {
	table := doc.Find(contentRegion).Find(itemsTable)
	if table.Length() == 0 {
		return nil, errors.New("items table not found")
	}

	rows, err := itemRows(table)
	if err != nil {
		return nil, err
	}

	index := make(map[string]int, len(rows))
	items := make([]core.LineItem, 0, len(rows))
	for _, row := range rows {
		code := norm.Sanitize(row.code)
		quantity := norm.ToFloat(row.quantity)

		if at, ok := index[code]; ok {
			items[at].Quantity += quantity
			continue
		}

		index[code] = len(items)
		items = append(items, core.LineItem{
			Product: core.Product{
				Code:        code,
				Description: strings.ToUpper(norm.Sanitize(row.name)),
			},
			Quantity:  quantity,
			UnitPrice: norm.ToFloat(row.price),
			Unit:      strings.ToUpper(norm.Sanitize(row.unit)),
		})
	}
	return items, nil
}

// itemRows zips the five column sequences into rows, checking that they are
// all the same length first.
func itemRows(table *goquery.Selection) ([]itemRow, error) {
	names := columnText(table, "span.txtTit")
	codes := columnText(table, "span.RCod")
	quantities := columnText(table, "span.Rqtd")
	units := columnText(table, "span.RUN")
	prices := columnText(table, "span.RvlUnit")

	n := len(names)
	if len(codes) != n || len(quantities) != n || len(units) != n || len(prices) != n {
		return nil, fmt.Errorf("%w: name=%d code=%d quantity=%d unit=%d price=%d",
			ErrColumnMismatch, n, len(codes), len(quantities), len(units), len(prices))
	}

	rows := make([]itemRow, n)
	for i := range rows {
		rows[i] = itemRow{
			name:     names[i],
			code:     codes[i],
			quantity: quantities[i],
			unit:     units[i],
			price:    prices[i],
		}
	}
	return rows, nil
}

func columnText(table *goquery.Selection, selector string) []string {
	return table.Find(selector).Map(func(_ int, s *goquery.Selection) string {
		return s.Text()
	})
}
