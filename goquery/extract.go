package goquery

import (
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	cardeals "github.com/nicoselucafi/cardeals-ai"
)

// Shared helpers for the platform extractors. Every extractor parses the
// page once, walks platform-specific selectors, and funnels candidates
// through finalizeCandidate so defaults are applied uniformly.

func parseDoc(html string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, cardeals.Errorf(cardeals.EINVALID, "parse html: %v", err)
	}
	return doc, nil
}

// resolveURL turns a possibly protocol-relative or page-relative reference
// into an absolute URL against base. Unresolvable references come back
// unchanged; a broken image link is not worth losing an offer over.
func resolveURL(base, ref string) string {
	if ref == "" {
		return ""
	}
	if strings.HasPrefix(ref, "//") {
		return "https:" + ref
	}
	b, err := url.Parse(base)
	if err != nil {
		return ref
	}
	r, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return b.ResolveReference(r).String()
}

// imageSource returns the first populated image source attribute.
// Lazy-loading themes park the real URL in data-src or data-lazy-src.
func imageSource(sel *goquery.Selection) string {
	for _, attr := range []string{"src", "data-src", "data-lazy-src"} {
		if v, ok := sel.Attr(attr); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// sourceAnchor walks up from sel looking for an element id usable as a URL
// fragment, giving up after maxUp levels.
func sourceAnchor(sel *goquery.Selection, maxUp int) string {
	cur := sel
	for i := 0; i <= maxUp && cur.Length() > 0; i++ {
		if id, ok := cur.Attr("id"); ok && strings.TrimSpace(id) != "" {
			return strings.TrimSpace(id)
		}
		cur = cur.Parent()
	}
	return ""
}

// finalizeCandidate applies the structural-extraction defaults: current
// model year when none was parsed, a 36 month term when none was stated,
// and the css method tag.
func finalizeCandidate(c *cardeals.OfferCandidate, confidence float64) *cardeals.OfferCandidate {
	if c.Year == 0 {
		c.Year = time.Now().UTC().Year()
	}
	if c.TermMonths == nil {
		c.TermMonths = cardeals.Int(36)
	}
	c.Confidence = cardeals.Float(confidence)
	c.ExtractionMethod = cardeals.MethodCSS
	return c
}

// truncateRunes shortens s to at most n runes. Disclaimers routinely run to
// thousands of characters of legal boilerplate.
func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
