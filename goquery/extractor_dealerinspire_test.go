package goquery_test

import (
	"fmt"
	"testing"
	"time"

	cardeals "github.com/nicoselucafi/cardeals-ai"
	"github.com/nicoselucafi/cardeals-ai/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ cardeals.OfferExtractor = (*goquery.DealerInspireExtractor)(nil)

func TestDealerInspireExtractor_Extract(t *testing.T) {
	t.Parallel()

	year := time.Now().UTC().Year()
	baseURL := "https://www.goudyhonda.com/new-vehicles/new-vehicle-specials/"

	t.Run("extracts structured and free text cards from one page", func(t *testing.T) {
		t.Parallel()

		html := fmt.Sprintf(`<!DOCTYPE html>
<html><body>
<ul class="specials">
<li class="special-offer" id="di-1">
	<h2>New %d Honda CR-V LX</h2>
	<span class="offerrate">Lease for $279 per month</span>
	<div class="offerlabel">$2,999 due at signing</div>
	<p>36 months on approved credit. 10,000 miles per year. Expires 03/31/%d. Plus tax, title and license.</p>
	<img src="https://di-uploads.dealerinspire.com/goudy/crv.png">
</li>
<li class="special-offer" id="di-2">
	<div class="offer-content">Lease for $199 a month! %d Honda Civic: 36 months, $2,499 due at signing, 12,000 miles per year. Offer ends 04/30/%d.</div>
</li>
</ul>
</body></html>`, year, year, year, year)

		e := goquery.NewDealerInspireExtractor()
		offers, err := e.Extract(html, baseURL, "Honda")

		require.NoError(t, err)
		require.Len(t, offers, 2)

		structured := offers[0]
		assert.Equal(t, year, structured.Year)
		assert.Equal(t, "Honda", structured.Make)
		assert.Equal(t, "CR-V", structured.Model)
		assert.Equal(t, "LX", structured.Trim)
		assert.Equal(t, cardeals.OfferTypeLease, structured.OfferType)
		require.NotNil(t, structured.MonthlyPayment)
		assert.Equal(t, 279.0, *structured.MonthlyPayment)
		require.NotNil(t, structured.DownPayment)
		assert.Equal(t, 2999.0, *structured.DownPayment)
		require.NotNil(t, structured.TermMonths)
		assert.Equal(t, 36, *structured.TermMonths)
		require.NotNil(t, structured.AnnualMileage)
		assert.Equal(t, 10000, *structured.AnnualMileage)
		assert.Equal(t, fmt.Sprintf("%d-03-31", year), structured.OfferEndDate)
		assert.Contains(t, structured.Disclaimer, "Plus tax, title and license")
		assert.Equal(t, "https://di-uploads.dealerinspire.com/goudy/crv.png", structured.ImageURL)
		assert.Equal(t, "di-1", structured.SourceAnchor)
		require.NotNil(t, structured.Confidence)
		assert.Equal(t, 0.85, *structured.Confidence)

		text := offers[1]
		assert.Equal(t, year, text.Year)
		assert.Equal(t, "Civic", text.Model)
		assert.Equal(t, cardeals.OfferTypeLease, text.OfferType)
		require.NotNil(t, text.MonthlyPayment)
		assert.Equal(t, 199.0, *text.MonthlyPayment)
		require.NotNil(t, text.DownPayment)
		assert.Equal(t, 2499.0, *text.DownPayment)
		require.NotNil(t, text.AnnualMileage)
		assert.Equal(t, 12000, *text.AnnualMileage)
		assert.Equal(t, fmt.Sprintf("%d-04-30", year), text.OfferEndDate)
		assert.Contains(t, text.Disclaimer, "due at signing")
		assert.Equal(t, "di-2", text.SourceAnchor)
		require.NotNil(t, text.Confidence)
		assert.Equal(t, 0.80, *text.Confidence)
	})

	t.Run("falls back to the heading when no vehicle run is found", func(t *testing.T) {
		t.Parallel()

		html := fmt.Sprintf(`
<li class="special-offer">
	<h2>Accord Special</h2>
	<div class="offer-content">Finance for $350/mo. Model year %d.</div>
</li>`, year)

		e := goquery.NewDealerInspireExtractor()
		offers, err := e.Extract(html, baseURL, "Honda")

		require.NoError(t, err)
		require.Len(t, offers, 1)

		o := offers[0]
		assert.Equal(t, "Accord", o.Model)
		assert.Equal(t, year, o.Year)
		assert.Equal(t, cardeals.OfferTypeFinance, o.OfferType)
		require.NotNil(t, o.MonthlyPayment)
		assert.Equal(t, 350.0, *o.MonthlyPayment)
	})

	t.Run("skips cards without a payment", func(t *testing.T) {
		t.Parallel()

		html := `
<li class="special-offer">
	<div class="offer-content">Huge savings on all new Hondas this weekend!</div>
</li>`

		e := goquery.NewDealerInspireExtractor()
		offers, err := e.Extract(html, baseURL, "Honda")

		require.NoError(t, err)
		assert.Empty(t, offers)
	})
}
