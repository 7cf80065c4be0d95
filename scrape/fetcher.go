package scrape

import (
	"context"
	"errors"

	cardeals "github.com/nicoselucafi/cardeals-ai"
)

// DefaultMinContentBytes is the smallest response treated as a real page.
// Dealer sites behind bot walls return tiny interstitial documents that
// parse fine but contain nothing; falling through to the next tier beats
// extracting from them.
const DefaultMinContentBytes = 1000

// Ensure TieredFetcher implements cardeals.Fetcher at compile time.
var _ cardeals.Fetcher = (*TieredFetcher)(nil)

// TieredFetcher tries a sequence of fetchers in order, returning the first
// sufficiently large response. The usual arrangement is a rendering fetcher
// first with a plain HTTP fetcher as backstop, or the reverse for cheap
// runs against server-rendered sites.
type TieredFetcher struct {
	tiers  []cardeals.Fetcher
	minLen int
}

// TieredOption configures a TieredFetcher.
type TieredOption func(*TieredFetcher)

// WithMinContentBytes sets the minimum response size accepted from a tier.
func WithMinContentBytes(n int) TieredOption {
	return func(f *TieredFetcher) {
		f.minLen = n
	}
}

// NewTieredFetcher creates a TieredFetcher that tries tiers in order.
func NewTieredFetcher(tiers []cardeals.Fetcher, opts ...TieredOption) *TieredFetcher {
	f := &TieredFetcher{
		tiers:  tiers,
		minLen: DefaultMinContentBytes,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch tries each tier in order until one returns enough content.
// The last tier's error is returned when all tiers fail.
func (f *TieredFetcher) Fetch(ctx context.Context, url string) (string, error) {
	if len(f.tiers) == 0 {
		return "", cardeals.Errorf(cardeals.EINTERNAL, "no fetch tiers configured")
	}

	var lastErr error
	for _, tier := range f.tiers {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		html, err := tier.Fetch(ctx, url)
		if err != nil {
			lastErr = err
			continue
		}
		if len(html) < f.minLen {
			lastErr = cardeals.Errorf(cardeals.EINTERNAL, "insufficient content (%d bytes) for %s", len(html), url)
			continue
		}
		return html, nil
	}

	return "", lastErr
}

// Close closes all tiers, joining any errors.
func (f *TieredFetcher) Close() error {
	var errs []error
	for _, tier := range f.tiers {
		if err := tier.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
