// Package output handles file naming and writing for nfcepipe exports.
// Filenames are derived from the invoice access key, so re-scraping the
// same invoice overwrites its previous export instead of piling up copies.
package output

import (
	"fmt"
	"os"
	"path/filepath"
)

// Writer writes rendered output to disk.
type Writer struct {
	OutputDir string
}

// New creates a Writer targeting the given output directory.
// If outputDir is empty, it defaults to the current working directory.
func New(outputDir string) (*Writer, error) {
	if outputDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		outputDir = wd
	}

	// Ensure the output directory exists.
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &Writer{OutputDir: outputDir}, nil
}

// WriteInvoice writes a rendered invoice under <access key><ext>.
func (w *Writer) WriteInvoice(accessKey string, data []byte, ext string) (string, error) {
	path := filepath.Join(w.OutputDir, accessKey+ext)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", path, err)
	}
	return path, nil
}

// WriteArchive writes the Markdown page snapshot under
// <access key>.page.md.
func (w *Writer) WriteArchive(accessKey, markdown string) (string, error) {
	path := filepath.Join(w.OutputDir, accessKey+".page.md")
	if err := os.WriteFile(path, []byte(markdown), 0644); err != nil {
		return "", fmt.Errorf("writing archive %s: %w", path, err)
	}
	return path, nil
}
