package extract

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/nfcepipe/core"
)

func parseDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func addressPage(line string) string {
	return `<html><body><div id="conteudo">
		<div class="text">CNPJ: 06.057.223/0001-71</div>
		<div class="text">` + line + `</div>
	</div></body></html>`
}

func TestAddress_WellFormed(t *testing.T) {
	doc := parseDoc(t, invoicePage)

	addr, err := Address(doc)
	require.NoError(t, err)

	assert.Equal(t, core.Address{
		Street:       "AVENIDA BRASIL",
		Number:       "1500",
		Complement:   "LOJA 02",
		Neighborhood: "CENTRO",
		Municipality: "RIO DE JANEIRO",
		State:        "RJ",
		Zip:          "20040-002",
	}, addr)
}

func TestAddress_NoCommas(t *testing.T) {
	doc := parseDoc(t, addressPage("Some Street No Commas"))

	addr, err := Address(doc)
	require.NoError(t, err)

	assert.Equal(t, "SOME STREET NO COMMAS", addr.Street)
	assert.Equal(t, core.Address{Street: "SOME STREET NO COMMAS"}, addr,
		"malformed input must never produce a partial split")
}

func TestAddress_WrongArity(t *testing.T) {
	doc := parseDoc(t, addressPage("Rua A, 10, Centro, Cidade, SP"))

	addr, err := Address(doc)
	require.NoError(t, err)
	assert.Equal(t, core.Address{Street: "RUA A, 10, CENTRO, CIDADE, SP"}, addr)
}

func TestAddress_BadStateCode(t *testing.T) {
	doc := parseDoc(t, addressPage("Rua A, 10, , Centro, Cidade, Rio, 12345-000"))

	addr, err := Address(doc)
	require.NoError(t, err)
	assert.Equal(t, "RUA A, 10, , CENTRO, CIDADE, RIO, 12345-000", addr.Street)
	assert.Empty(t, addr.State)
}

func TestAddress_MissingNode(t *testing.T) {
	doc := parseDoc(t, `<html><body><div id="conteudo"></div></body></html>`)

	_, err := Address(doc)
	assert.Error(t, err)
}
