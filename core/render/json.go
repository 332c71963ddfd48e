// Package render implements the export renderers for invoice records:
// structured JSON, CSV rows for spreadsheet use, and a printable PDF
// document. It also converts raw page snapshots to Markdown for audit
// archives.
package render

import (
	"encoding/json"
	"fmt"

	"github.com/gaurav-prasanna/nfcepipe/core"
)

// JSONRenderer produces the indented JSON form of an invoice record.
// Derived values (item and tax totals) are included in the payload.
type JSONRenderer struct{}

// NewJSONRenderer creates a JSONRenderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

// Render marshals the invoice record.
func (r *JSONRenderer) Render(inv *core.Invoice) ([]byte, error) {
	data, err := json.MarshalIndent(inv, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return data, nil
}

// Extension returns the file extension for JSON output.
func (r *JSONRenderer) Extension() string {
	return ".json"
}
