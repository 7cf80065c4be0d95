package goquery

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	cardeals "github.com/nicoselucafi/cardeals-ai"
)

var _ cardeals.OfferExtractor = (*DealerInspireExtractor)(nil)

var (
	diPaymentRe     = regexp.MustCompile(`\$(\d[\d,]*)`)
	diDownRe        = regexp.MustCompile(`\$([\d,]+)\s*(?:due|at)`)
	diTextPaymentRe = regexp.MustCompile(`(?i)(?:lease|finance)\s+(?:for\s+)?\$([\d,]+)\s*(?:a\s*month|/mo|per\s*month)`)
	diBarePaymentRe = regexp.MustCompile(`(?i)\$([\d,]+)\s*/mo`)
	diVehicleRe     = regexp.MustCompile(`(20\d{2}\s+(?:` + strings.Join(cardeals.KnownMakes, "|") + `)\s+\w[\w\s-]*?)(?:\s*:|\s+\d+\s+at)`)
	diYearRe        = regexp.MustCompile(`\b(20\d{2})\b`)
)

// DealerInspireExtractor extracts offers from DealerInspire special-offer
// cards. Cards come in two flavors on the same page: structured cards with
// an .offerrate price span, and free-text cards where everything lives in
// one blob. Each card tries the structured path first and falls back to
// text parsing, so mixed pages extract fully.
type DealerInspireExtractor struct{}

// NewDealerInspireExtractor creates a new DealerInspireExtractor.
func NewDealerInspireExtractor() *DealerInspireExtractor {
	return &DealerInspireExtractor{}
}

// Platform returns the platform this extractor handles.
func (e *DealerInspireExtractor) Platform() cardeals.Platform {
	return cardeals.PlatformDealerInspire
}

// Extract parses html and returns the offer candidates found on the page.
func (e *DealerInspireExtractor) Extract(html, baseURL, defaultMake string) ([]*cardeals.OfferCandidate, error) {
	doc, err := parseDoc(html)
	if err != nil {
		return nil, err
	}

	var offers []*cardeals.OfferCandidate
	doc.Find("li.special-offer").Each(func(_ int, card *goquery.Selection) {
		c := e.extractStructured(card, baseURL, defaultMake)
		if c == nil {
			c = e.extractText(card, baseURL, defaultMake)
		}
		if c == nil {
			return
		}
		if id, ok := card.Attr("id"); ok {
			c.SourceAnchor = strings.TrimSpace(id)
		}
		offers = append(offers, c)
	})

	return cardeals.DedupeOffers(offers), nil
}

// extractStructured handles cards with an .offerrate price element.
func (e *DealerInspireExtractor) extractStructured(card *goquery.Selection, baseURL, defaultMake string) *cardeals.OfferCandidate {
	rate := card.Find(".offerrate").First()
	if rate.Length() == 0 {
		return nil
	}
	rateText := rate.Text()

	m := diPaymentRe.FindStringSubmatch(rateText)
	if m == nil {
		return nil
	}
	monthly, ok := cardeals.ParsePrice(m[1])
	if !ok {
		return nil
	}

	title := strings.TrimSpace(card.Find("h2").First().Text())
	vehicle := cardeals.ParseVehicle(title, defaultMake)

	c := &cardeals.OfferCandidate{
		Year:           vehicle.Year,
		Make:           vehicle.Make,
		Model:          vehicle.Model,
		Trim:           vehicle.Trim,
		MonthlyPayment: cardeals.Float(monthly),
	}

	if strings.Contains(strings.ToLower(rateText), "lease") {
		c.OfferType = cardeals.OfferTypeLease
	} else {
		c.OfferType = cardeals.OfferTypeFinance
	}

	label := card.Find(".offerlabel").First().Text()
	if dm := diDownRe.FindStringSubmatch(label); dm != nil {
		if v, ok := cardeals.ParsePrice(dm[1]); ok {
			c.DownPayment = cardeals.Float(v)
		}
	}
	applyCardText(c, card.Text())

	c.ImageURL = diImage(card, baseURL)

	return finalizeCandidate(c, 0.85)
}

// extractText handles free-text cards, pulling the payment and vehicle out
// of the card's full text. Lower confidence than the structured path.
func (e *DealerInspireExtractor) extractText(card *goquery.Selection, baseURL, defaultMake string) *cardeals.OfferCandidate {
	text := card.Text()

	m := diTextPaymentRe.FindStringSubmatch(text)
	if m == nil {
		m = diBarePaymentRe.FindStringSubmatch(text)
	}
	if m == nil {
		return nil
	}
	monthly, ok := cardeals.ParsePrice(m[1])
	if !ok {
		return nil
	}

	// Prefer a "2026 Toyota Corolla: ..." run inside the text; fall back to
	// the card heading with the year recovered from anywhere in the text.
	descriptor := ""
	year := 0
	if vm := diVehicleRe.FindStringSubmatch(text); vm != nil {
		descriptor = vm[1]
	} else {
		descriptor = strings.TrimSpace(card.Find("h2").First().Text())
		if ym := diYearRe.FindStringSubmatch(text); ym != nil {
			year, _ = strconv.Atoi(ym[1])
		}
	}
	if descriptor == "" {
		return nil
	}

	vehicle := cardeals.ParseVehicle(descriptor, defaultMake)
	if year != 0 && vehicle.Year == 0 {
		vehicle.Year = year
	}

	c := &cardeals.OfferCandidate{
		Year:           vehicle.Year,
		Make:           vehicle.Make,
		Model:          vehicle.Model,
		Trim:           vehicle.Trim,
		MonthlyPayment: cardeals.Float(monthly),
	}

	head := text
	if r := []rune(head); len(r) > 200 {
		head = string(r[:200])
	}
	if strings.Contains(strings.ToLower(head), "lease") {
		c.OfferType = cardeals.OfferTypeLease
	} else {
		c.OfferType = cardeals.OfferTypeFinance
	}

	if v, ok := cardeals.ParseDownPayment(text); ok {
		c.DownPayment = cardeals.Float(v)
	}
	applyCardText(c, text)

	c.ImageURL = diImage(card, baseURL)

	return finalizeCandidate(c, 0.80)
}

// applyCardText pulls the secondary fields both card flavors bury in the
// full card text: term, mileage allowance, expiration date, and the text
// itself as the disclaimer.
func applyCardText(c *cardeals.OfferCandidate, text string) {
	if v, ok := cardeals.ParseTerm(text); ok {
		c.TermMonths = cardeals.Int(v)
	}
	if v, ok := cardeals.ParseAnnualMileage(text); ok {
		c.AnnualMileage = cardeals.Int(v)
	}
	if v, ok := cardeals.ParseExpiration(text); ok {
		c.OfferEndDate = v
	}
	if d := strings.TrimSpace(text); d != "" {
		c.Disclaimer = truncateRunes(d, 500)
	}
}

// diImage finds the card's hero image, skipping tracking pixels and theme
// chrome by requiring a CDN or vehicle path fragment in the source.
func diImage(card *goquery.Selection, baseURL string) string {
	found := ""
	card.Find("img").EachWithBreak(func(_ int, img *goquery.Selection) bool {
		src := imageSource(img)
		if src == "" {
			return true
		}
		lower := strings.ToLower(src)
		if strings.Contains(lower, "dealerinspire") || strings.Contains(lower, "vehicle") {
			found = resolveURL(baseURL, src)
			return false
		}
		return true
	})
	return found
}
