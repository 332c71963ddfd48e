// Package core defines the pipeline interfaces and the invoice data model
// for nfcepipe. Each stage of the pipeline is a clean, testable interface.
package core

import "context"

// FetchResult holds the fully-rendered HTML of the invoice page.
type FetchResult struct {
	URL  string
	HTML string
}

// Fetcher renders an invoice URL in a browser session and returns the final
// page once its data table is present.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*FetchResult, error)
}

// Renderer converts an invoice record into a final output format.
type Renderer interface {
	Render(inv *Invoice) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".json", ".pdf").
	Extension() string
}
