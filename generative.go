package cardeals

import "context"

// GenerativeExtractor extracts offer candidates from cleaned page text using
// a language-generation backend. It is the expensive fallback path, invoked
// only when structural extraction is unavailable or yields nothing.
type GenerativeExtractor interface {
	// ExtractOffers prompts the backend with the page text and parses the
	// structured response. A malformed response yields an empty list, not
	// an error; errors are reserved for backend/transport failures.
	ExtractOffers(ctx context.Context, pageText string) ([]*OfferCandidate, error)
}
