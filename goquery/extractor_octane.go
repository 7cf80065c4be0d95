package goquery

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	cardeals "github.com/nicoselucafi/cardeals-ai"
)

var _ cardeals.OfferExtractor = (*OctaneExtractor)(nil)

// OctaneExtractor extracts offers from Octane-powered specials pages.
// Octane renders each offer as a vehicle title element with a sibling price
// block somewhere in an enclosing container, so extraction anchors on the
// titles and walks up to find the matching price.
type OctaneExtractor struct{}

// NewOctaneExtractor creates a new OctaneExtractor.
func NewOctaneExtractor() *OctaneExtractor {
	return &OctaneExtractor{}
}

// Platform returns the platform this extractor handles.
func (e *OctaneExtractor) Platform() cardeals.Platform {
	return cardeals.PlatformOctane
}

// Extract parses html and returns the offer candidates found on the page.
func (e *OctaneExtractor) Extract(html, baseURL, defaultMake string) ([]*cardeals.OfferCandidate, error) {
	doc, err := parseDoc(html)
	if err != nil {
		return nil, err
	}

	var offers []*cardeals.OfferCandidate
	doc.Find(".octane-specials-css-vehicle-title, .octane-specials-css-vehicle-slide-title").Each(func(_ int, title *goquery.Selection) {
		text := strings.TrimSpace(title.Text())
		if len(text) < 5 {
			return
		}

		container, price := octaneContainer(title)
		if container == nil {
			return
		}
		if c := e.extractOffer(text, container, price, baseURL, defaultMake); c != nil {
			offers = append(offers, c)
		}
	})

	return cardeals.DedupeOffers(offers), nil
}

// octaneContainer walks up from the title until it reaches an ancestor that
// contains a price element, up to 10 levels. The slide markup nests titles
// several levels below the offer card.
func octaneContainer(title *goquery.Selection) (container, price *goquery.Selection) {
	cur := title
	for i := 0; i < 10 && cur.Length() > 0; i++ {
		cur = cur.Parent()
		if p := cur.Find(".octane-specials-css-offer-price").First(); p.Length() > 0 {
			return cur, p
		}
	}
	return nil, nil
}

func (e *OctaneExtractor) extractOffer(title string, container, price *goquery.Selection, baseURL, defaultMake string) *cardeals.OfferCandidate {
	vehicle := cardeals.ParseVehicle(title, defaultMake)

	c := &cardeals.OfferCandidate{
		Year:  vehicle.Year,
		Make:  vehicle.Make,
		Model: vehicle.Model,
		Trim:  vehicle.Trim,
	}

	priceText := strings.TrimSpace(price.Text())
	// The subtext can sit anywhere in the container, not just next to the
	// price element.
	subtext := strings.TrimSpace(container.Find(".octane-specials-css-offer-price-subtext").First().Text())
	lowerSub := strings.ToLower(subtext)

	// A percentage figure marks a finance/APR offer; a plain dollar figure
	// is a monthly lease payment.
	if strings.Contains(lowerSub, "apr") || strings.Contains(priceText, "%") {
		c.OfferType = cardeals.OfferTypeFinance
		if v, ok := cardeals.ParsePrice(strings.TrimSuffix(priceText, "%")); ok {
			c.APR = cardeals.Float(v)
		}
	} else {
		c.OfferType = cardeals.OfferTypeLease
		if v, ok := cardeals.ParsePrice(priceText); ok {
			c.MonthlyPayment = cardeals.Float(v)
		}
	}
	if c.MonthlyPayment == nil && c.APR == nil {
		return nil
	}

	containerText := container.Text()
	if v, ok := cardeals.ParseDownPayment(containerText); ok {
		c.DownPayment = cardeals.Float(v)
	}
	if v, ok := cardeals.ParseTerm(containerText); ok {
		c.TermMonths = cardeals.Int(v)
	}
	if v, ok := cardeals.ParseAnnualMileage(containerText); ok {
		c.AnnualMileage = cardeals.Int(v)
	}

	imgSel := fmt.Sprintf("img[src*='vehicle'], img[src*='%s'], img[alt*='%s']",
		strings.ToLower(c.Make), c.Make)
	if img := container.Find(imgSel).First(); img.Length() > 0 {
		c.ImageURL = resolveURL(baseURL, imageSource(img))
	}

	c.SourceAnchor = sourceAnchor(container, 3)

	return finalizeCandidate(c, 0.85)
}
