package goquery_test

import (
	"testing"

	cardeals "github.com/nicoselucafi/cardeals-ai"
	"github.com/nicoselucafi/cardeals-ai/goquery"
	"github.com/stretchr/testify/assert"
)

// Ensure Detector implements cardeals.PlatformDetector at compile time.
var _ cardeals.PlatformDetector = (*goquery.Detector)(nil)

func TestDetector_Detect(t *testing.T) {
	t.Parallel()

	t.Run("detects Octane from its class prefix", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html><body>
<div class="octane-specials-css-vehicle-title">2026 Toyota RAV4</div>
<div class="octane-specials-css-offer-price">$299</div>
</body></html>`

		d := goquery.NewDetector()

		assert.Equal(t, cardeals.PlatformOctane, d.Detect(html))
	})

	t.Run("detects DealerOn from banner plus vehicle name", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html><body>
<div class="vehicle-specials-banner">
	<div class="vehicle-specials-vehiclename">2026 Toyota Camry Lease</div>
</div>
</body></html>`

		d := goquery.NewDetector()

		assert.Equal(t, cardeals.PlatformDealerOn, d.Detect(html))
	})

	t.Run("does not detect DealerOn from the banner alone", func(t *testing.T) {
		t.Parallel()

		html := `<div class="vehicle-specials-banner">generic specials</div>`

		d := goquery.NewDetector()

		assert.Equal(t, cardeals.PlatformUnknown, d.Detect(html))
	})

	t.Run("detects DealerInspire from special-offer with offerrate", func(t *testing.T) {
		t.Parallel()

		html := `<ul><li class="special-offer" id="offer-1">
<span class="offerrate">Lease for $249/mo</span>
</li></ul>`

		d := goquery.NewDetector()

		assert.Equal(t, cardeals.PlatformDealerInspire, d.Detect(html))
	})

	t.Run("detects DealerInspire from special-offer with offer-content", func(t *testing.T) {
		t.Parallel()

		html := `<ul><li class="special-offer"><div class="offer-content">text offer</div></li></ul>`

		d := goquery.NewDetector()

		assert.Equal(t, cardeals.PlatformDealerInspire, d.Detect(html))
	})

	t.Run("prefers Octane when multiple markers are present", func(t *testing.T) {
		t.Parallel()

		html := `<div class="octane-specials-css-vehicle-title"></div>
<div class="vehicle-specials-banner"><div class="vehicle-specials-vehiclename"></div></div>`

		d := goquery.NewDetector()

		assert.Equal(t, cardeals.PlatformOctane, d.Detect(html))
	})

	t.Run("returns unknown for unrecognized markup", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><h1>Welcome to our dealership</h1></body></html>`

		d := goquery.NewDetector()

		assert.Equal(t, cardeals.PlatformUnknown, d.Detect(html))
	})
}
