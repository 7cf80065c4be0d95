package cardeals

// Platform identifies a recurring dealer-website structural layout,
// detectable via fixed markup fingerprints.
type Platform string

// Known platforms. PlatformUnknown is the common case for long-tail dealer
// sites and routes the page to the generative fallback.
const (
	PlatformUnknown       Platform = ""
	PlatformOctane        Platform = "octane"
	PlatformDealerOn      Platform = "dealeron_gemini"
	PlatformDealerInspire Platform = "dealerinspire"

	// PlatformDealerCom is recorded on dealers known to run Dealer.com. No
	// structural extractor exists for it yet, so these pages take the
	// generative path.
	PlatformDealerCom Platform = "dealer_com"
)

// PlatformDetector identifies a platform from raw page markup.
type PlatformDetector interface {
	// Detect checks the markup for platform-specific markers in a fixed
	// priority order. Returns PlatformUnknown when nothing matches.
	Detect(html string) Platform
}

// OfferExtractor extracts offer candidates from a page of its platform's
// layout. Implementations are a closed set of variants: adding a layout
// means adding one extractor plus one detector rule.
type OfferExtractor interface {
	// Extract locates the layout's repeated offer containers and parses
	// each into a candidate. A parse failure on one container skips that
	// container; it never aborts the rest of the page. The base URL
	// resolves relative image links.
	Extract(html, baseURL, defaultMake string) ([]*OfferCandidate, error)

	// Platform returns the layout this extractor handles.
	Platform() Platform
}

// ExtractorRegistry manages platform-specific extractors.
type ExtractorRegistry interface {
	// Get returns the extractor for a platform, or nil if none is
	// registered.
	Get(platform Platform) OfferExtractor

	// Resolve returns the extractor for a dealer page along with the
	// platform it matched. A recorded per-dealer override takes precedence
	// over detection. Returns (nil, PlatformUnknown) when no known layout
	// applies.
	Resolve(override Platform, html string) (OfferExtractor, Platform)

	// Register adds an extractor for a platform.
	Register(platform Platform, extractor OfferExtractor)

	// List returns all registered platforms.
	List() []Platform
}
