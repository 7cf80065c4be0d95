package scrape

import (
	"context"
	"log/slog"
	"strings"

	cardeals "github.com/nicoselucafi/cardeals-ai"
	gq "github.com/nicoselucafi/cardeals-ai/goquery"
)

// Extraction pipeline defaults.
const (
	// DefaultMaxTextChars caps the cleaned page text sent to the
	// generative backend.
	DefaultMaxTextChars = 15000

	// DefaultMinKeywords is how many distinct offer keywords a page must
	// contain before the generative backend is worth invoking.
	DefaultMinKeywords = 3

	// minTextChars is the smallest cleaned text worth extracting from.
	minTextChars = 100
)

// DefaultOfferKeywords returns the phrases that signal offer content on a
// dealer page. Dollar-amount prefixes catch pages where everything else is
// an image.
func DefaultOfferKeywords() []string {
	return []string{
		"/mo", "/month", "per month", "monthly",
		"lease", "finance", "apr", "due at signing",
		"$2", "$3", "$4", "$5",
	}
}

// Extractor runs the two-stage extraction pipeline: platform-specific CSS
// extraction first, then the generative fallback for unknown layouts.
type Extractor struct {
	Registry   cardeals.ExtractorRegistry
	Generative cardeals.GenerativeExtractor // nil disables the fallback

	MaxTextChars int      // 0 means DefaultMaxTextChars
	MinKeywords  int      // 0 means DefaultMinKeywords
	Keywords     []string // nil means DefaultOfferKeywords

	Logger *slog.Logger
}

// Extract produces offer candidates for one dealer page. A page with no
// recognizable offers yields an empty slice and no error; errors are
// reserved for malformed input and backend failures worth surfacing.
//
// The CSS path wins whenever it produces candidates. The generative path
// runs only when the page passes the keyword pre-check, which keeps pages
// with no offer content from burning model tokens.
func (e *Extractor) Extract(ctx context.Context, html, baseURL string, override cardeals.Platform, defaultMake string) ([]*cardeals.OfferCandidate, error) {
	logger := e.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	if extractor, platform := e.Registry.Resolve(override, html); extractor != nil {
		candidates, err := extractor.Extract(html, baseURL, defaultMake)
		if err != nil {
			logger.Warn("css extraction failed", "platform", string(platform), "err", err)
		} else if len(candidates) > 0 {
			logger.Info("css extraction", "platform", string(platform), "offers", len(candidates))
			return candidates, nil
		}
	}

	if e.Generative == nil {
		return nil, nil
	}

	text, err := gq.CleanText(html)
	if err != nil {
		return nil, err
	}

	maxChars := e.MaxTextChars
	if maxChars <= 0 {
		maxChars = DefaultMaxTextChars
	}
	text = TruncateText(text, maxChars)
	if len(text) < minTextChars {
		return nil, nil
	}

	keywords := e.Keywords
	if keywords == nil {
		keywords = DefaultOfferKeywords()
	}
	minKeywords := e.MinKeywords
	if minKeywords <= 0 {
		minKeywords = DefaultMinKeywords
	}
	if found := CountKeywords(text, keywords); found < minKeywords {
		logger.Info("skipping generative extraction", "keywords", found, "required", minKeywords)
		return nil, nil
	}

	images, err := gq.ExtractVehicleImages(html, baseURL)
	if err != nil {
		images = nil
	}

	candidates, err := e.Generative.ExtractOffers(ctx, text)
	if err != nil {
		logger.Warn("generative extraction failed", "err", err)
		return nil, nil
	}

	for _, c := range candidates {
		if c.ImageURL != "" {
			continue
		}
		if url, ok := images[cardeals.ModelImageKey(c.Model)]; ok {
			c.ImageURL = url
		}
	}

	logger.Info("generative extraction", "offers", len(candidates))
	return candidates, nil
}

// TruncateText shortens text to at most maxChars bytes, cutting at the last
// sentence boundary when one falls in the final fifth of the window so the
// generative backend doesn't see a dangling half-offer.
func TruncateText(text string, maxChars int) string {
	if len(text) <= maxChars {
		return text
	}
	cut := text[:maxChars]
	if idx := strings.LastIndexByte(cut, '.'); idx > int(0.8*float64(maxChars)) {
		return cut[:idx+1]
	}
	return cut
}

// CountKeywords returns how many distinct keywords appear in text,
// case-insensitively.
func CountKeywords(text string, keywords []string) int {
	lower := strings.ToLower(text)
	count := 0
	for _, kw := range keywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			count++
		}
	}
	return count
}
