package goquery

import (
	"strings"

	cardeals "github.com/nicoselucafi/cardeals-ai"
)

var _ cardeals.PlatformDetector = (*Detector)(nil)

// Detector identifies dealer-site CMS platforms from raw page markup.
// Each known platform ships a CSS class-name fragment that is unique to it,
// so a substring check on the raw body is cheap and needs no DOM parse.
type Detector struct{}

// NewDetector creates a new Detector.
func NewDetector() *Detector {
	return &Detector{}
}

// Detect checks the markup for platform markers in a fixed priority order.
// Returns PlatformUnknown when nothing matches, which is the expected
// outcome for long-tail dealer sites.
func (d *Detector) Detect(html string) cardeals.Platform {
	// Octane prefixes every specials element with this fragment.
	if strings.Contains(html, "octane-specials-css") {
		return cardeals.PlatformOctane
	}

	// DealerOn/Gemini uses a banner container plus a vehicle-name element;
	// requiring both avoids matching unrelated "specials" pages.
	if strings.Contains(html, "vehicle-specials-banner") &&
		strings.Contains(html, "vehicle-specials-vehiclename") {
		return cardeals.PlatformDealerOn
	}

	// DealerInspire cards carry special-offer alongside either the
	// structured offerrate span or the offer-content wrapper.
	if strings.Contains(html, "special-offer") &&
		(strings.Contains(html, "offerrate") || strings.Contains(html, "offer-content")) {
		return cardeals.PlatformDealerInspire
	}

	return cardeals.PlatformUnknown
}
