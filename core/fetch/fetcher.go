// Package fetch implements the Fetcher interface over a headless Chromium
// session driven by go-rod. The invoice page fills its data table with
// JavaScript after load, so a plain HTTP GET never sees the items; the
// fetcher instead navigates, waits for the table marker element to appear
// and snapshots the rendered DOM.
//
// Each Fetch owns exactly one browser session. The session is released on
// every exit path, including timeout.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/rs/zerolog"

	"github.com/gaurav-prasanna/nfcepipe/core"
)

const (
	// DefaultMarker is the id of the items table; its presence signals that
	// the page finished rendering the invoice data.
	DefaultMarker = "tabResult"

	// DefaultTimeout bounds the wait for the marker element.
	DefaultTimeout = 5 * time.Second
)

// TimeoutError reports that the marker element never appeared within the
// bound. The invoice is unobtainable when this happens.
type TimeoutError struct {
	Marker  string
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("timed out after %s waiting for #%s", e.Timeout, e.Marker)
}

// BrowserFetcher renders invoice pages in a headless Chromium.
type BrowserFetcher struct {
	marker     string
	timeout    time.Duration
	chromePath string
	log        zerolog.Logger
}

// New creates a BrowserFetcher. Empty marker and zero timeout fall back to
// the defaults; chromePath may be empty, in which case rod resolves (and if
// needed downloads) a browser on its own.
func New(marker string, timeout time.Duration, chromePath string, log zerolog.Logger) *BrowserFetcher {
	if marker == "" {
		marker = DefaultMarker
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &BrowserFetcher{
		marker:     marker,
		timeout:    timeout,
		chromePath: chromePath,
		log:        log.With().Str("component", "fetch").Logger(),
	}
}

// Fetch navigates to url, waits for the marker element and returns the
// rendered HTML. The browser session is closed before returning, whatever
// the outcome.
func (f *BrowserFetcher) Fetch(ctx context.Context, url string) (*core.FetchResult, error) {
	l := launcher.New().
		Headless(true).
		Set("disable-gpu").
		Set("no-sandbox").
		Set("disable-dev-shm-usage").
		Set("disable-extensions").
		Set("disable-background-networking").
		Set("lang", "pt-BR,pt")
	if f.chromePath != "" {
		l = l.Bin(f.chromePath)
	}

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}
	defer l.Cleanup()

	browser := rod.New().ControlURL(u).Context(ctx)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}
	defer func() {
		if err := browser.Close(); err != nil {
			f.log.Warn().Err(err).Msg("closing browser")
		}
	}()

	start := time.Now()
	f.log.Debug().Str("url", url).Msg("navigating")

	page, err := browser.Page(proto.TargetCreateTarget{URL: url})
	if err != nil {
		return nil, fmt.Errorf("opening page: %w", err)
	}

	if _, err := page.Timeout(f.timeout).Element("#" + f.marker); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, &TimeoutError{Marker: f.marker, Timeout: f.timeout}
		}
		return nil, fmt.Errorf("waiting for #%s: %w", f.marker, err)
	}

	html, err := page.HTML()
	if err != nil {
		return nil, fmt.Errorf("reading page source: %w", err)
	}

	f.log.Debug().Str("url", url).Dur("elapsed", time.Since(start)).Msg("page rendered")

	return &core.FetchResult{URL: url, HTML: html}, nil
}
