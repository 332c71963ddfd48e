package extract

import (
	"errors"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/gaurav-prasanna/nfcepipe/core"
	"github.com/gaurav-prasanna/nfcepipe/core/norm"
)

// addressArity is the field count of a well-formed address line:
// street, number, complement, neighborhood, municipality, state, zip.
const addressArity = 7

// Address reads the issuer address from the content region. The source is a
// single comma-separated line; it only splits cleanly when all seven fields
// are present and the state code has exactly two characters. Anything else
// keeps the whole line in Street so a garbled split never reaches callers.
func Address(doc *goquery.Document) (core.Address, error) {
	texts := doc.Find(contentRegion).Find("div.text")
	if texts.Length() < 2 {
		return core.Address{}, errors.New("address node not found")
	}

	line := strings.ToUpper(norm.Sanitize(texts.Eq(1).Text()))

	parts := strings.Split(line, ",")
	if len(parts) != addressArity {
		return core.Address{Street: line}, nil
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	if len(parts[5]) != 2 {
		return core.Address{Street: line}, nil
	}

	return core.Address{
		Street:       parts[0],
		Number:       parts[1],
		Complement:   parts[2],
		Neighborhood: parts[3],
		Municipality: parts[4],
		State:        parts[5],
		Zip:          parts[6],
	}, nil
}
