package store

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/nfcepipe/core"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:", zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func storedInvoice() *core.Invoice {
	return &core.Invoice{
		AccessKey:             "31230306057223000171650010000022619000242849",
		Number:                "123456",
		Series:                "1",
		IssuedAt:              time.Date(2023, 7, 15, 10, 30, 45, 0, time.FixedZone("", -3*60*60)),
		AuthorizationProtocol: "313230112345678",
		AuthorizedAt:          time.Date(2023, 7, 15, 10, 30, 46, 0, time.FixedZone("", -3*60*60)),
		Company:               core.Company{Name: "SUPERMERCADO BOM PRECO LTDA", CNPJ: "06057223000171"},
		Address: core.Address{
			Street:       "AVENIDA BRASIL",
			Number:       "1500",
			Complement:   "LOJA 02",
			Neighborhood: "CENTRO",
			Municipality: "RIO DE JANEIRO",
			State:        "RJ",
			Zip:          "20040-002",
		},
		Items: []core.LineItem{
			{Product: core.Product{Code: "123", Description: "ARROZ BRANCO 5KG"}, Quantity: 5, UnitPrice: 5.0, Unit: "UN"},
			{Product: core.Product{Code: "456", Description: "FEIJAO PRETO 1KG"}, Quantity: 1, UnitPrice: 3.5, Unit: "UN"},
		},
		Taxes: core.TaxBreakdown{Federal: 0.9, State: 0.55, Municipal: 0.1, Source: "IBPT"},
		Totals: core.PaymentTotals{
			Kind:                core.PaymentCredit,
			TypeLabel:           "CARTÃO DE CRÉDITO",
			Discount:            1.0,
			TotalBeforeDiscount: 28.5,
			TotalAfterDiscount:  27.5,
			ItemCount:           3,
		},
	}
}

func TestSaveAndFindByKey(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	inv := storedInvoice()

	require.NoError(t, s.Save(ctx, inv))

	got, err := s.FindByKey(ctx, inv.AccessKey)
	require.NoError(t, err)

	assert.Equal(t, inv.AccessKey, got.AccessKey)
	assert.Equal(t, inv.Number, got.Number)
	assert.Equal(t, inv.Company, got.Company)
	assert.Equal(t, inv.Address, got.Address)
	assert.Equal(t, inv.Items, got.Items)
	assert.Equal(t, inv.Taxes, got.Taxes)
	assert.Equal(t, inv.Totals, got.Totals)
	assert.True(t, got.IssuedAt.Equal(inv.IssuedAt))
	assert.True(t, got.AuthorizedAt.Equal(inv.AuthorizedAt))
}

func TestSave_RescrapeReplaces(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	inv := storedInvoice()
	require.NoError(t, s.Save(ctx, inv))

	inv.Items = inv.Items[:1]
	inv.Totals.TotalAfterDiscount = 25.0
	require.NoError(t, s.Save(ctx, inv))

	got, err := s.FindByKey(ctx, inv.AccessKey)
	require.NoError(t, err)
	assert.Len(t, got.Items, 1, "old items must not survive a re-scrape")
	assert.InDelta(t, 25.0, got.Totals.TotalAfterDiscount, 1e-9)

	keys, err := s.ListKeys(ctx)
	require.NoError(t, err)
	assert.Len(t, keys, 1, "re-scraping must not duplicate the invoice")
}

func TestSave_RejectsMissingAccessKey(t *testing.T) {
	s := openStore(t)

	inv := storedInvoice()
	inv.AccessKey = ""

	err := s.Save(context.Background(), inv)
	assert.Error(t, err)
}

func TestSave_WithoutCompany(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	inv := storedInvoice()
	inv.Company = core.Company{}
	inv.Address = core.Address{}

	require.NoError(t, s.Save(ctx, inv))

	got, err := s.FindByKey(ctx, inv.AccessKey)
	require.NoError(t, err)
	assert.Empty(t, got.Company.CNPJ)
}

func TestFindByKey_NotFound(t *testing.T) {
	s := openStore(t)

	_, err := s.FindByKey(context.Background(), "00000000000000000000000000000000000000000000")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListKeys(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	keys, err := s.ListKeys(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)

	first := storedInvoice()
	require.NoError(t, s.Save(ctx, first))

	second := storedInvoice()
	second.AccessKey = "00230306057223000171650010000022619000242849"
	require.NoError(t, s.Save(ctx, second))

	keys, err = s.ListKeys(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{first.AccessKey, second.AccessKey}, keys)
}

func TestOpen_FileDatabase(t *testing.T) {
	path := t.TempDir() + "/sub/invoices.db"

	s, err := Open(path, zerolog.Nop())
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Save(context.Background(), storedInvoice()))
	assert.FileExists(t, path)
}
