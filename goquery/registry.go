package goquery

import (
	cardeals "github.com/nicoselucafi/cardeals-ai"
)

var _ cardeals.ExtractorRegistry = (*Registry)(nil)

// Registry manages platform-specific offer extractors and routes pages to
// the right one. A dealer's recorded platform override beats auto-detection;
// when neither yields a registered extractor the page falls through to the
// generative path.
type Registry struct {
	detector   cardeals.PlatformDetector
	extractors map[cardeals.Platform]cardeals.OfferExtractor
}

// NewRegistry creates a new Registry with the given detector.
func NewRegistry(detector cardeals.PlatformDetector) *Registry {
	return &Registry{
		detector:   detector,
		extractors: make(map[cardeals.Platform]cardeals.OfferExtractor),
	}
}

// Get returns the extractor for a specific platform.
// Returns nil if no extractor is registered for the platform.
func (r *Registry) Get(platform cardeals.Platform) cardeals.OfferExtractor {
	return r.extractors[platform]
}

// Resolve returns the extractor for a dealer page. The override, when set
// and registered, takes precedence; otherwise the platform is detected from
// the markup. Returns (nil, PlatformUnknown) when no known layout applies.
func (r *Registry) Resolve(override cardeals.Platform, html string) (cardeals.OfferExtractor, cardeals.Platform) {
	if override != cardeals.PlatformUnknown {
		if e, ok := r.extractors[override]; ok {
			return e, override
		}
	}

	platform := r.detector.Detect(html)
	if e, ok := r.extractors[platform]; ok {
		return e, platform
	}
	return nil, cardeals.PlatformUnknown
}

// Register adds an extractor for a platform.
// If an extractor is already registered for the platform, it is replaced.
func (r *Registry) Register(platform cardeals.Platform, extractor cardeals.OfferExtractor) {
	r.extractors[platform] = extractor
}

// List returns all registered platforms.
func (r *Registry) List() []cardeals.Platform {
	platforms := make([]cardeals.Platform, 0, len(r.extractors))
	for p := range r.extractors {
		platforms = append(platforms, p)
	}
	return platforms
}
