package extract

import (
	"errors"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/gaurav-prasanna/nfcepipe/core"
	"github.com/gaurav-prasanna/nfcepipe/core/norm"
)

// taxDisclosure matches the fixed-shape taxpayer disclosure sentence, e.g.
// "Trib aprox: R$ 0,90 Fed R$ 0,55 Est R$ 0,10 Mun Fonte: IBPT".
var taxDisclosure = regexp.MustCompile(`(?i)^trib *aprox: *R\$ *(\d+[.,]\d+) *fed *R\$ *(\d+[.,]\d+) *est *R\$ *(\d+[.,]\d+) *mun *fonte: *(\w+)`)

// Tax reads the taxpayer disclosure sentence and splits it into federal,
// state and municipal components plus the source label.
//
// When the sentence does not match, a single aggregate figure is read from
// the observation span and assigned to the federal component only, leaving
// the others at zero. That mirrors what the page shows; it is an
// approximation, not a tax computation.
func Tax(doc *goquery.Document) (core.TaxBreakdown, error) {
	content := doc.Find(contentRegion)
	if content.Length() == 0 {
		return core.TaxBreakdown{}, errors.New("content region not found")
	}

	// The disclosure lives in the third-from-last div of the content region.
	divs := content.Find("div")
	if divs.Length() >= 3 {
		sentence := strings.TrimSpace(divs.Eq(divs.Length() - 3).Find("ul").Text())
		if m := taxDisclosure.FindStringSubmatch(sentence); m != nil {
			return core.TaxBreakdown{
				Federal:   norm.ToFloat(m[1]),
				State:     norm.ToFloat(m[2]),
				Municipal: norm.ToFloat(m[3]),
				Source:    m[4],
			}, nil
		}
	}

	var federal float64
	if aggregate := content.Parent().Find("span.totalNumb.txtObs"); aggregate.Length() > 0 {
		federal = norm.ToFloat(aggregate.First().Text())
	}
	return core.TaxBreakdown{Federal: federal}, nil
}
