package rod

import (
	"context"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	cardeals "github.com/nicoselucafi/cardeals-ai"
)

// DefaultRenderDelay is how long a page gets to run its offer-carousel
// scripts after load before the HTML is captured.
const DefaultRenderDelay = 3 * time.Second

// offerSelector matches the class fragments dealer CMS platforms use for
// their specials widgets. Waiting for any of them to appear beats a blind
// sleep on pages that hydrate offers late.
const offerSelector = "[class*='special'], [class*='offer'], [class*='price'], [class*='payment'], [class*='lease']"

// Ensure Fetcher implements cardeals.Fetcher at compile time.
var _ cardeals.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML from URLs using Chrome browser automation.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	browser     *rod.Browser
	launcher    *launcher.Launcher
	renderDelay time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithRenderDelay sets how long to wait for client-side rendering after the
// page load event. Defaults to DefaultRenderDelay (3s).
func WithRenderDelay(d time.Duration) Option {
	return func(f *Fetcher) {
		f.renderDelay = d
	}
}

// NewFetcher creates a new Fetcher that launches a headless Chrome browser.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		renderDelay: DefaultRenderDelay,
	}
	for _, opt := range opts {
		opt(f)
	}

	l := launcher.New().
		Set("disable-dev-shm-usage").
		Leakless(true).
		Headless(true)
	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}

	f.browser = browser
	f.launcher = l
	return f, nil
}

// Fetch navigates to the URL, waits for the specials widgets to render, and
// returns the rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	page, err := f.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer page.Close()

	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", err
	}
	if err := page.WaitLoad(); err != nil {
		return "", err
	}

	// Best effort: some pages never render an offer widget (that's what the
	// generative fallback is for), so a missing selector is not an error.
	_, _ = page.Timeout(5 * time.Second).Element(offerSelector)

	if err := sleep(ctx, f.renderDelay); err != nil {
		return "", err
	}

	// Scroll to the bottom to trigger lazy-loaded offer images, then give
	// the loads a moment to land.
	_, _ = page.Eval(`() => window.scrollTo(0, document.body.scrollHeight)`)
	if err := sleep(ctx, time.Second); err != nil {
		return "", err
	}

	html, err := page.HTML()
	if err != nil {
		return "", err
	}

	return html, nil
}

// Close releases browser resources.
func (f *Fetcher) Close() error {
	err := f.browser.Close()
	if f.launcher != nil {
		f.launcher.Kill()
	}
	return err
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
