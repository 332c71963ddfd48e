package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/gaurav-prasanna/nfcepipe/core"
)

// Save upserts the invoice, its issuer and its line items in one
// transaction. Records without an access key are rejected; they represent
// invoices that were never found.
func (s *Store) Save(ctx context.Context, inv *core.Invoice) error {
	if !inv.HasAccessKey() {
		return errors.New("invoice has no access key")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if inv.Company.CNPJ != "" {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO companies (cnpj, name, street, number, complement, neighborhood, municipality, state, zip)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(cnpj) DO UPDATE SET
				name = excluded.name,
				street = excluded.street,
				number = excluded.number,
				complement = excluded.complement,
				neighborhood = excluded.neighborhood,
				municipality = excluded.municipality,
				state = excluded.state,
				zip = excluded.zip`,
			inv.Company.CNPJ, inv.Company.Name,
			inv.Address.Street, inv.Address.Number, inv.Address.Complement,
			inv.Address.Neighborhood, inv.Address.Municipality, inv.Address.State, inv.Address.Zip)
		if err != nil {
			return fmt.Errorf("saving company: %w", err)
		}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO invoices (access_key, company_cnpj, number, series, issued_at,
			authorization_protocol, authorized_at,
			federal_tax, state_tax, municipal_tax, tax_source,
			payment_type, payment_label, discount, change,
			total_before_discount, total_after_discount, item_count, scraped_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(access_key) DO UPDATE SET
			company_cnpj = excluded.company_cnpj,
			number = excluded.number,
			series = excluded.series,
			issued_at = excluded.issued_at,
			authorization_protocol = excluded.authorization_protocol,
			authorized_at = excluded.authorized_at,
			federal_tax = excluded.federal_tax,
			state_tax = excluded.state_tax,
			municipal_tax = excluded.municipal_tax,
			tax_source = excluded.tax_source,
			payment_type = excluded.payment_type,
			payment_label = excluded.payment_label,
			discount = excluded.discount,
			change = excluded.change,
			total_before_discount = excluded.total_before_discount,
			total_after_discount = excluded.total_after_discount,
			item_count = excluded.item_count,
			scraped_at = excluded.scraped_at`,
		inv.AccessKey, inv.Company.CNPJ, inv.Number, inv.Series, formatTime(inv.IssuedAt),
		inv.AuthorizationProtocol, formatTime(inv.AuthorizedAt),
		inv.Taxes.Federal, inv.Taxes.State, inv.Taxes.Municipal, inv.Taxes.Source,
		string(inv.Totals.Kind), inv.Totals.TypeLabel, inv.Totals.Discount, inv.Totals.Change,
		inv.Totals.TotalBeforeDiscount, inv.Totals.TotalAfterDiscount, inv.Totals.ItemCount,
		time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("saving invoice: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM invoice_items WHERE access_key = ?`, inv.AccessKey); err != nil {
		return fmt.Errorf("clearing items: %w", err)
	}
	for i, item := range inv.Items {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO invoice_items (access_key, position, product_code, description, quantity, unit, unit_price)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			inv.AccessKey, i, item.Product.Code, item.Product.Description,
			item.Quantity, item.Unit, item.UnitPrice)
		if err != nil {
			return fmt.Errorf("saving item %s: %w", item.Product.Code, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing: %w", err)
	}

	s.log.Info().Str("access_key", inv.AccessKey).Int("items", len(inv.Items)).Msg("invoice saved")
	return nil
}

// FindByKey loads one invoice by access key. Returns ErrNotFound when no
// row matches.
func (s *Store) FindByKey(ctx context.Context, accessKey string) (*core.Invoice, error) {
	inv := &core.Invoice{}
	var issuedAt, authorizedAt, paymentType string

	err := s.db.QueryRowContext(ctx, `
		SELECT i.access_key, i.number, i.series, i.issued_at,
			i.authorization_protocol, i.authorized_at,
			i.federal_tax, i.state_tax, i.municipal_tax, i.tax_source,
			i.payment_type, i.payment_label, i.discount, i.change,
			i.total_before_discount, i.total_after_discount, i.item_count,
			COALESCE(c.name, ''), COALESCE(c.cnpj, ''),
			COALESCE(c.street, ''), COALESCE(c.number, ''), COALESCE(c.complement, ''),
			COALESCE(c.neighborhood, ''), COALESCE(c.municipality, ''), COALESCE(c.state, ''), COALESCE(c.zip, '')
		FROM invoices i
		LEFT JOIN companies c ON c.cnpj = i.company_cnpj
		WHERE i.access_key = ?`, accessKey).Scan(
		&inv.AccessKey, &inv.Number, &inv.Series, &issuedAt,
		&inv.AuthorizationProtocol, &authorizedAt,
		&inv.Taxes.Federal, &inv.Taxes.State, &inv.Taxes.Municipal, &inv.Taxes.Source,
		&paymentType, &inv.Totals.TypeLabel, &inv.Totals.Discount, &inv.Totals.Change,
		&inv.Totals.TotalBeforeDiscount, &inv.Totals.TotalAfterDiscount, &inv.Totals.ItemCount,
		&inv.Company.Name, &inv.Company.CNPJ,
		&inv.Address.Street, &inv.Address.Number, &inv.Address.Complement,
		&inv.Address.Neighborhood, &inv.Address.Municipality, &inv.Address.State, &inv.Address.Zip)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading invoice: %w", err)
	}

	inv.Totals.Kind = core.PaymentKind(paymentType)
	if inv.IssuedAt, err = parseTime(issuedAt); err != nil {
		return nil, fmt.Errorf("parsing issued_at: %w", err)
	}
	if inv.AuthorizedAt, err = parseTime(authorizedAt); err != nil {
		return nil, fmt.Errorf("parsing authorized_at: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT product_code, description, quantity, unit, unit_price
		FROM invoice_items WHERE access_key = ? ORDER BY position`, accessKey)
	if err != nil {
		return nil, fmt.Errorf("loading items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item core.LineItem
		if err := rows.Scan(&item.Product.Code, &item.Product.Description,
			&item.Quantity, &item.Unit, &item.UnitPrice); err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		inv.Items = append(inv.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating items: %w", err)
	}

	return inv, nil
}

// ListKeys returns the access keys of every stored invoice, newest first.
func (s *Store) ListKeys(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT access_key FROM invoices ORDER BY scraped_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing invoices: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("scanning key: %w", err)
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

// formatTime stores zero times as empty strings.
func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, s)
}
