// Package store persists scraped invoices in SQLite. The access key is the
// primary key, so re-scraping an invoice replaces its previous row and
// items instead of duplicating them.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite" // pure Go SQLite driver
)

// ErrNotFound is returned when no invoice carries the requested access key.
var ErrNotFound = errors.New("invoice not found")

// Store is a SQLite-backed invoice repository.
type Store struct {
	db  *sql.DB
	log zerolog.Logger
}

// Open opens (or creates) the database at path and applies the schema.
// Pass ":memory:" for an in-memory database.
func Open(path string, log zerolog.Logger) (*Store, error) {
	connStr := path
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("creating database directory: %w", err)
			}
		}
		connStr = path + "?_journal=WAL&_busy_timeout=5000"
	}

	db, err := sql.Open("sqlite", connStr)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// SQLite is single-writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	s := &Store{db: db, log: log.With().Str("component", "store").Logger()}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating database: %w", err)
	}
	return s, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS companies (
		cnpj         TEXT PRIMARY KEY,
		name         TEXT NOT NULL DEFAULT '',
		street       TEXT NOT NULL DEFAULT '',
		number       TEXT NOT NULL DEFAULT '',
		complement   TEXT NOT NULL DEFAULT '',
		neighborhood TEXT NOT NULL DEFAULT '',
		municipality TEXT NOT NULL DEFAULT '',
		state        TEXT NOT NULL DEFAULT '',
		zip          TEXT NOT NULL DEFAULT ''
	);
	CREATE TABLE IF NOT EXISTS invoices (
		access_key             TEXT PRIMARY KEY,
		company_cnpj           TEXT NOT NULL DEFAULT '' REFERENCES companies(cnpj),
		number                 TEXT NOT NULL DEFAULT '',
		series                 TEXT NOT NULL DEFAULT '',
		issued_at              TEXT NOT NULL DEFAULT '',
		authorization_protocol TEXT NOT NULL DEFAULT '',
		authorized_at          TEXT NOT NULL DEFAULT '',
		federal_tax            REAL NOT NULL DEFAULT 0,
		state_tax              REAL NOT NULL DEFAULT 0,
		municipal_tax          REAL NOT NULL DEFAULT 0,
		tax_source             TEXT NOT NULL DEFAULT '',
		payment_type           TEXT NOT NULL DEFAULT '',
		payment_label          TEXT NOT NULL DEFAULT '',
		discount               REAL NOT NULL DEFAULT 0,
		change                 REAL NOT NULL DEFAULT 0,
		total_before_discount  REAL NOT NULL DEFAULT 0,
		total_after_discount   REAL NOT NULL DEFAULT 0,
		item_count             INTEGER NOT NULL DEFAULT 0,
		scraped_at             TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS invoice_items (
		access_key   TEXT NOT NULL REFERENCES invoices(access_key),
		position     INTEGER NOT NULL,
		product_code TEXT NOT NULL,
		description  TEXT NOT NULL DEFAULT '',
		quantity     REAL NOT NULL DEFAULT 0,
		unit         TEXT NOT NULL DEFAULT '',
		unit_price   REAL NOT NULL DEFAULT 0,
		PRIMARY KEY (access_key, product_code)
	);
	`
	_, err := s.db.Exec(schema)
	return err
}
