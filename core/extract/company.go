package extract

import (
	"errors"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/gaurav-prasanna/nfcepipe/core"
	"github.com/gaurav-prasanna/nfcepipe/core/norm"
)

// Company reads the issuer name from the page heading and the tax id from
// the adjacent text node. The tax id keeps only its digits.
func Company(doc *goquery.Document) (core.Company, error) {
	content := doc.Find(contentRegion)

	name := content.Find("div.txtTopo").First()
	if name.Length() == 0 {
		return core.Company{}, errors.New("company heading not found")
	}
	taxID := content.Find("div.text").First()
	if taxID.Length() == 0 {
		return core.Company{}, errors.New("tax id node not found")
	}

	return core.Company{
		Name: strings.ToUpper(norm.Sanitize(name.Text())),
		CNPJ: norm.Clean(taxID.Text()),
	}, nil
}
