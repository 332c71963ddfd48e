package cmd

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/nfcepipe/config"
	"github.com/gaurav-prasanna/nfcepipe/core"
	"github.com/gaurav-prasanna/nfcepipe/core/extract"
	"github.com/gaurav-prasanna/nfcepipe/core/fetch"
	"github.com/gaurav-prasanna/nfcepipe/core/norm"
	"github.com/gaurav-prasanna/nfcepipe/core/output"
	"github.com/gaurav-prasanna/nfcepipe/core/render"
	"github.com/gaurav-prasanna/nfcepipe/store"
)

// Flag variables.
var (
	flagJSON      bool
	flagCSV       bool
	flagPDF       bool
	flagSave      bool
	flagArchive   bool
	flagOutputDir string
	flagDB        string
	flagMarker    string
	flagChrome    string
	flagTimeout   time.Duration
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape <url>",
	Short: "Scrape an invoice URL into a structured record",
	Long: `Scrape renders the invoice query page, waits for its data table, extracts
the invoice record and writes it in the chosen format (JSON by default).

The URL must carry the invoice's 44-digit access key.

Examples:
  nfcepipe scrape "https://nfce.fazenda.example/qrcode?p=3123...2849|2|1|1|..."
  nfcepipe scrape <url> --csv --output_dir ./out
  nfcepipe scrape <url> --save --archive`,
	Args: cobra.ExactArgs(1),
	RunE: runScrape,
}

func init() {
	rootCmd.AddCommand(scrapeCmd)

	// Output format flags (mutually exclusive; JSON is the default).
	scrapeCmd.Flags().BoolVar(&flagJSON, "json", false, "Output structured JSON (default)")
	scrapeCmd.Flags().BoolVar(&flagCSV, "csv", false, "Output CSV, one row per line item")
	scrapeCmd.Flags().BoolVar(&flagPDF, "pdf", false, "Output a printable PDF document")

	scrapeCmd.Flags().BoolVar(&flagSave, "save", false, "Persist the record to the SQLite database")
	scrapeCmd.Flags().BoolVar(&flagArchive, "archive", false, "Also write a Markdown snapshot of the page")

	scrapeCmd.Flags().StringVar(&flagOutputDir, "output_dir", "", "Output directory (default: current directory)")
	scrapeCmd.Flags().StringVar(&flagDB, "db", "", "SQLite database path (default: $NFCE_DB or nfce.db)")
	scrapeCmd.Flags().StringVar(&flagMarker, "marker", "", "Id of the element that signals the page is rendered")
	scrapeCmd.Flags().StringVar(&flagChrome, "chrome", "", "Path to a Chrome/Chromium binary")
	scrapeCmd.Flags().DurationVar(&flagTimeout, "timeout", 0, "How long to wait for the page to render")
}

func runScrape(cmd *cobra.Command, args []string) error {
	rawURL := args[0]

	renderer, err := selectRenderer()
	if err != nil {
		return err
	}

	// Validate the URL before spending a browser session on it.
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("invalid URL: %s (must include scheme, e.g. https://...)", rawURL)
	}
	if !norm.HasAccessKey(rawURL) {
		return fmt.Errorf("URL does not carry a 44-digit access key: %s", rawURL)
	}

	cfg := config.Load()
	if flagOutputDir != "" {
		cfg.OutputDir = flagOutputDir
	}
	if flagDB != "" {
		cfg.DBPath = flagDB
	}
	if flagMarker != "" {
		cfg.Marker = flagMarker
	}
	if flagChrome != "" {
		cfg.ChromePath = flagChrome
	}
	if flagTimeout > 0 {
		cfg.Timeout = flagTimeout
	}

	writer, err := output.New(cfg.OutputDir)
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}

	fetcher := fetch.New(cfg.Marker, cfg.Timeout, cfg.ChromePath, log.Logger)
	result, err := fetcher.Fetch(cmd.Context(), rawURL)
	if err != nil {
		return fmt.Errorf("fetch: %w", err)
	}

	aggregator := extract.NewAggregator(log.Logger)
	inv, sectionErrs := aggregator.Aggregate(result.HTML)
	for _, se := range sectionErrs {
		fmt.Fprintf(os.Stderr, "  ✗ Section %s fell back to defaults: %v\n", se.Section, se.Err)
	}
	if !inv.HasAccessKey() {
		return fmt.Errorf("invoice not found: page carries no access key")
	}

	data, err := renderer.Render(inv)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	path, err := writer.WriteInvoice(inv.AccessKey, data, renderer.Extension())
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "✓ Written: %s\n", path)

	if flagArchive {
		markdown, err := render.PageMarkdown(result.HTML)
		if err != nil {
			return fmt.Errorf("archive: %w", err)
		}
		archivePath, err := writer.WriteArchive(inv.AccessKey, markdown)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "✓ Archived: %s\n", archivePath)
	}

	if flagSave {
		if err := saveInvoice(cmd, cfg.DBPath, inv); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "✓ Saved: %s\n", inv.AccessKey)
	}

	return nil
}

func saveInvoice(cmd *cobra.Command, dbPath string, inv *core.Invoice) error {
	db, err := store.Open(dbPath, log.Logger)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	if err := db.Save(cmd.Context(), inv); err != nil {
		return fmt.Errorf("saving invoice: %w", err)
	}
	return nil
}

// selectRenderer checks that at most one output format was chosen and
// returns it, defaulting to JSON.
func selectRenderer() (core.Renderer, error) {
	formatCount := 0
	if flagJSON {
		formatCount++
	}
	if flagCSV {
		formatCount++
	}
	if flagPDF {
		formatCount++
	}
	if formatCount > 1 {
		return nil, fmt.Errorf("only one output format allowed per run (got %d)", formatCount)
	}

	switch {
	case flagCSV:
		return render.NewCSVRenderer(), nil
	case flagPDF:
		return render.NewPDFRenderer(), nil
	default:
		return render.NewJSONRenderer(), nil
	}
}
