// Package extract implements the field extractors and the aggregator that
// composes their results into one invoice record.
//
// Every extractor is a pure function of the parsed page: it reads one named
// region and returns a plain value. Extractors share no state and may run
// in any order. Failures never cross section boundaries; the aggregator
// substitutes a zero value for the failed section and records a diagnostic.
package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"

	"github.com/gaurav-prasanna/nfcepipe/core"
)

// DOM anchors of the fixed invoice template.
const (
	contentRegion = "div#conteudo"
	infoRegion    = "div#infos"
	itemsTable    = "table#tabResult"
)

// SectionError records a section that fell back to its zero value.
type SectionError struct {
	Section string
	Err     error
}

func (e SectionError) Error() string {
	return e.Section + ": " + e.Err.Error()
}

func (e SectionError) Unwrap() error {
	return e.Err
}

// Aggregator dispatches the parsed page to each extractor and merges the
// results.
type Aggregator struct {
	log zerolog.Logger
}

// NewAggregator creates an Aggregator.
func NewAggregator(log zerolog.Logger) *Aggregator {
	return &Aggregator{log: log.With().Str("component", "extract").Logger()}
}

// Aggregate parses the rendered page and composes the invoice record.
// Section failures are isolated: the caller always gets a well-formed,
// possibly partially empty, record plus one SectionError per failed
// section. A record whose access key is empty must be treated as "invoice
// not found" even though it is returned.
func (a *Aggregator) Aggregate(html string) (*core.Invoice, []SectionError) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return &core.Invoice{}, []SectionError{{Section: "page", Err: err}}
	}

	inv := &core.Invoice{}
	var errs []SectionError
	fail := func(section string, err error) {
		a.log.Warn().Err(err).Str("section", section).Msg("extractor fell back to defaults")
		errs = append(errs, SectionError{Section: section, Err: err})
	}

	info, err := Info(doc)
	// The access key is read before the fixed-structure list, so it
	// survives an Info failure.
	inv.AccessKey = info.AccessKey
	if err != nil {
		fail("info", err)
	} else {
		inv.Number = info.Number
		inv.Series = info.Series
		inv.IssuedAt = info.IssuedAt
		inv.AuthorizationProtocol = info.AuthorizationProtocol
		inv.AuthorizedAt = info.AuthorizedAt
	}

	if company, err := Company(doc); err != nil {
		fail("company", err)
	} else {
		inv.Company = company
	}

	if address, err := Address(doc); err != nil {
		fail("address", err)
	} else {
		inv.Address = address
	}

	if items, err := Items(doc); err != nil {
		fail("items", err)
	} else {
		inv.Items = items
	}

	if taxes, err := Tax(doc); err != nil {
		fail("taxes", err)
	} else {
		inv.Taxes = taxes
	}

	if totals, err := Totals(doc); err != nil {
		fail("totals", err)
	} else {
		inv.Totals = totals
	}

	if !inv.HasAccessKey() {
		a.log.Warn().Msg("record has no access key; treat as not found")
	}

	return inv, errs
}
