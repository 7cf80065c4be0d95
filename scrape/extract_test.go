package scrape_test

import (
	"context"
	"strings"
	"testing"

	cardeals "github.com/nicoselucafi/cardeals-ai"
	"github.com/nicoselucafi/cardeals-ai/mock"
	"github.com/nicoselucafi/cardeals-ai/scrape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// passthroughRegistry resolves to the given extractor (or none).
func passthroughRegistry(extractor cardeals.OfferExtractor, platform cardeals.Platform) *mock.ExtractorRegistry {
	return &mock.ExtractorRegistry{
		ResolveFn: func(override cardeals.Platform, html string) (cardeals.OfferExtractor, cardeals.Platform) {
			return extractor, platform
		},
	}
}

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("css result wins without invoking the generative backend", func(t *testing.T) {
		t.Parallel()

		cssOffers := []*cardeals.OfferCandidate{{Model: "RAV4", Year: 2026}}
		generativeCalls := 0

		e := &scrape.Extractor{
			Registry: passthroughRegistry(&mock.OfferExtractor{
				ExtractFn: func(html, baseURL, defaultMake string) ([]*cardeals.OfferCandidate, error) {
					return cssOffers, nil
				},
			}, cardeals.PlatformOctane),
			Generative: &mock.GenerativeExtractor{
				ExtractOffersFn: func(ctx context.Context, pageText string) ([]*cardeals.OfferCandidate, error) {
					generativeCalls++
					return nil, nil
				},
			},
		}

		got, err := e.Extract(ctx, "<html><body>lease specials</body></html>", "https://x.test/", cardeals.PlatformUnknown, "Toyota")

		require.NoError(t, err)
		assert.Equal(t, cssOffers, got)
		assert.Zero(t, generativeCalls)
	})

	t.Run("page without offer keywords never reaches the generative backend", func(t *testing.T) {
		t.Parallel()

		generativeCalls := 0
		e := &scrape.Extractor{
			Registry: passthroughRegistry(nil, cardeals.PlatformUnknown),
			Generative: &mock.GenerativeExtractor{
				ExtractOffersFn: func(ctx context.Context, pageText string) ([]*cardeals.OfferCandidate, error) {
					generativeCalls++
					return nil, nil
				},
			},
		}

		body := "Welcome to our dealership. We sell cars and provide excellent service. " +
			strings.Repeat("Visit our showroom today. ", 10) + "lease"
		got, err := e.Extract(ctx, "<html><body><p>"+body+"</p></body></html>", "https://x.test/", cardeals.PlatformUnknown, "Honda")

		require.NoError(t, err)
		assert.Empty(t, got)
		assert.Zero(t, generativeCalls)
	})

	t.Run("generative fallback runs on keyword rich pages and attaches images", func(t *testing.T) {
		t.Parallel()

		e := &scrape.Extractor{
			Registry: passthroughRegistry(nil, cardeals.PlatformUnknown),
			Generative: &mock.GenerativeExtractor{
				ExtractOffersFn: func(ctx context.Context, pageText string) ([]*cardeals.OfferCandidate, error) {
					assert.Contains(t, pageText, "$289/mo")
					return []*cardeals.OfferCandidate{{Model: "Camry", Year: 2026}}, nil
				},
			},
		}

		html := `<html><body>
<img src="/img/camry-hero.png" alt="Camry">
<p>Lease a 2026 Camry for $289/mo with $2,999 due at signing. Finance offers available. ` +
			strings.Repeat("Monthly specials on every model. ", 5) + `</p>
</body></html>`

		got, err := e.Extract(ctx, html, "https://x.test/specials/", cardeals.PlatformUnknown, "Toyota")

		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "https://x.test/img/camry-hero.png", got[0].ImageURL)
	})

	t.Run("empty css result falls through to generative", func(t *testing.T) {
		t.Parallel()

		generativeCalls := 0
		e := &scrape.Extractor{
			Registry: passthroughRegistry(&mock.OfferExtractor{
				ExtractFn: func(html, baseURL, defaultMake string) ([]*cardeals.OfferCandidate, error) {
					return nil, nil
				},
			}, cardeals.PlatformOctane),
			Generative: &mock.GenerativeExtractor{
				ExtractOffersFn: func(ctx context.Context, pageText string) ([]*cardeals.OfferCandidate, error) {
					generativeCalls++
					return []*cardeals.OfferCandidate{{Model: "Corolla"}}, nil
				},
			},
		}

		html := `<html><body><p>Lease for $199/mo, finance from 3.9% apr, $2,999 due at signing. ` +
			strings.Repeat("Specials on every new model in stock this month. ", 3) + `</p></body></html>`

		got, err := e.Extract(ctx, html, "https://x.test/", cardeals.PlatformUnknown, "Toyota")

		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, 1, generativeCalls)
	})

	t.Run("nil generative backend yields no offers for unknown layouts", func(t *testing.T) {
		t.Parallel()

		e := &scrape.Extractor{
			Registry: passthroughRegistry(nil, cardeals.PlatformUnknown),
		}

		got, err := e.Extract(ctx, "<html><body>lease finance apr</body></html>", "https://x.test/", cardeals.PlatformUnknown, "Toyota")

		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("generative errors degrade to no offers", func(t *testing.T) {
		t.Parallel()

		e := &scrape.Extractor{
			Registry: passthroughRegistry(nil, cardeals.PlatformUnknown),
			Generative: &mock.GenerativeExtractor{
				ExtractOffersFn: func(ctx context.Context, pageText string) ([]*cardeals.OfferCandidate, error) {
					return nil, cardeals.Errorf(cardeals.EINTERNAL, "backend unavailable")
				},
			},
		}

		html := `<html><body><p>Lease for $299/mo or finance at 2.9% apr with $3,000 due at signing. ` +
			strings.Repeat("Great monthly offers. ", 5) + `</p></body></html>`

		got, err := e.Extract(ctx, html, "https://x.test/", cardeals.PlatformUnknown, "Toyota")

		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestTruncateText(t *testing.T) {
	t.Parallel()

	t.Run("returns short text unchanged", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "short", scrape.TruncateText("short", 100))
	})

	t.Run("cuts at a late sentence boundary", func(t *testing.T) {
		t.Parallel()

		text := strings.Repeat("a", 90) + ". " + strings.Repeat("b", 20)

		got := scrape.TruncateText(text, 100)

		assert.Equal(t, strings.Repeat("a", 90)+".", got)
	})

	t.Run("hard cuts when no boundary is near the end", func(t *testing.T) {
		t.Parallel()

		text := strings.Repeat("a", 200)

		got := scrape.TruncateText(text, 100)

		assert.Len(t, got, 100)
	})
}

func TestCountKeywords(t *testing.T) {
	t.Parallel()

	text := "Lease a new Camry for $289 per month with nothing due at signing"

	assert.Equal(t, 4, scrape.CountKeywords(text, []string{"lease", "per month", "due at signing", "$2", "apr"}))
	assert.Zero(t, scrape.CountKeywords("no offers here", scrape.DefaultOfferKeywords()))
}
