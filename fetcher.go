package cardeals

import "context"

// Fetcher retrieves page HTML from URLs.
// Implementations may use browser automation to handle JavaScript-rendered
// content; dealer specials pages frequently require it.
type Fetcher interface {
	// Fetch retrieves the page at url and returns its HTML.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases any underlying resources (e.g., a browser).
	Close() error
}

// DomainLimiter provides per-domain rate limiting so a batch of dealer runs
// doesn't hammer any one site and trip anti-scraping defenses.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
