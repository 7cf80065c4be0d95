package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	cardeals "github.com/nicoselucafi/cardeals-ai"
)

var _ cardeals.OfferExtractor = (*DealerOnExtractor)(nil)

// DealerOnExtractor extracts offers from DealerOn/Gemini specials banners.
// Each banner is self-contained: vehicle name, pricing, terms, and a
// description block all live under one .vehicle-specials-banner element.
type DealerOnExtractor struct{}

// NewDealerOnExtractor creates a new DealerOnExtractor.
func NewDealerOnExtractor() *DealerOnExtractor {
	return &DealerOnExtractor{}
}

// Platform returns the platform this extractor handles.
func (e *DealerOnExtractor) Platform() cardeals.Platform {
	return cardeals.PlatformDealerOn
}

// Extract parses html and returns the offer candidates found on the page.
func (e *DealerOnExtractor) Extract(html, baseURL, defaultMake string) ([]*cardeals.OfferCandidate, error) {
	doc, err := parseDoc(html)
	if err != nil {
		return nil, err
	}

	var offers []*cardeals.OfferCandidate
	doc.Find(".vehicle-specials-banner").Each(func(_ int, banner *goquery.Selection) {
		if c := e.extractOffer(banner, baseURL, defaultMake); c != nil {
			offers = append(offers, c)
		}
	})

	return cardeals.DedupeOffers(offers), nil
}

func (e *DealerOnExtractor) extractOffer(banner *goquery.Selection, baseURL, defaultMake string) *cardeals.OfferCandidate {
	name := strings.TrimSpace(banner.Find(".vehicle-specials-vehiclename").First().Text())
	if len(name) < 5 {
		return nil
	}

	// A banner without a monthly figure is a generic promo, not an offer.
	monthly, ok := cardeals.ParsePrice(banner.Find(".pricing").First().Text())
	if !ok {
		return nil
	}

	vehicle := cardeals.ParseVehicle(name, defaultMake)
	c := &cardeals.OfferCandidate{
		Year:           vehicle.Year,
		Make:           vehicle.Make,
		Model:          vehicle.Model,
		Trim:           vehicle.Trim,
		MonthlyPayment: cardeals.Float(monthly),
	}

	if strings.Contains(strings.ToLower(name), "lease") {
		c.OfferType = cardeals.OfferTypeLease
	} else {
		c.OfferType = cardeals.OfferTypeFinance
	}

	if v, ok := cardeals.ParseTerm(banner.Find(".terms").First().Text()); ok {
		c.TermMonths = cardeals.Int(v)
	}

	desc := banner.Find(".vehicle-description").First().Text()
	if v, ok := cardeals.ParseDownPayment(desc); ok {
		c.DownPayment = cardeals.Float(v)
	}
	if v, ok := cardeals.ParseExpiration(desc); ok {
		c.OfferEndDate = v
	}
	if d := strings.TrimSpace(desc); d != "" {
		c.Disclaimer = truncateRunes(d, 500)
	}

	// Banner images sit in a sibling column; walk up a few levels to find
	// the hero image or the hosted offer asset.
	cur := banner
	for i := 0; i < 5 && cur.Length() > 0; i++ {
		if img := cur.Find("img.img-fluid, img[src*='secureoffersites']").First(); img.Length() > 0 {
			c.ImageURL = resolveURL(baseURL, imageSource(img))
			break
		}
		cur = cur.Parent()
	}

	c.SourceAnchor = sourceAnchor(banner, 5)

	return finalizeCandidate(c, 0.85)
}
