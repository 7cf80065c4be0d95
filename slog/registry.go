package slog

import (
	"log/slog"
	"time"

	cardeals "github.com/nicoselucafi/cardeals-ai"
)

// Ensure LoggingRegistry implements cardeals.ExtractorRegistry.
var _ cardeals.ExtractorRegistry = (*LoggingRegistry)(nil)

// LoggingRegistry wraps an ExtractorRegistry with debug logging for platform
// resolution.
type LoggingRegistry struct {
	next   cardeals.ExtractorRegistry
	logger *slog.Logger
}

// NewLoggingRegistry creates a new LoggingRegistry.
func NewLoggingRegistry(next cardeals.ExtractorRegistry, logger *slog.Logger) *LoggingRegistry {
	return &LoggingRegistry{next: next, logger: logger}
}

// Get delegates to the wrapped registry.
func (r *LoggingRegistry) Get(platform cardeals.Platform) cardeals.OfferExtractor {
	return r.next.Get(platform)
}

// Resolve resolves the extractor, logs the outcome, and returns it.
func (r *LoggingRegistry) Resolve(override cardeals.Platform, html string) (cardeals.OfferExtractor, cardeals.Platform) {
	begin := time.Now()
	extractor, platform := r.next.Resolve(override, html)
	platformName := string(platform)
	if platform == cardeals.PlatformUnknown {
		platformName = "(unknown)"
	}
	r.logger.Info("platform resolution",
		"platform", platformName,
		"override", string(override),
		"duration", time.Since(begin),
	)
	return extractor, platform
}

// Register delegates to the wrapped registry.
func (r *LoggingRegistry) Register(platform cardeals.Platform, extractor cardeals.OfferExtractor) {
	r.next.Register(platform, extractor)
}

// List delegates to the wrapped registry.
func (r *LoggingRegistry) List() []cardeals.Platform {
	return r.next.List()
}
