package cardeals

import (
	"context"
	"time"
)

// OfferType classifies the commercial structure of an offer.
type OfferType string

// Supported offer types. Anything else is rejected by validation or coerced
// to lease during cleaning.
const (
	OfferTypeLease   OfferType = "lease"
	OfferTypeFinance OfferType = "finance"
)

// Extraction method tags recorded on every candidate.
const (
	MethodCSS        = "css"
	MethodLLMHTML    = "llm_html"
	MethodManualSeed = "manual_seed"
)

// OfferCandidate is an unvalidated structured guess at a lease/finance
// offer, produced by extraction. Candidates are transient: only a cleaned,
// validated projection becomes a durable Offer.
type OfferCandidate struct {
	Year  int    `json:"year"`
	Make  string `json:"make"`
	Model string `json:"model"`
	Trim  string `json:"trim,omitempty"`

	OfferType      OfferType `json:"offer_type"`
	MonthlyPayment *float64  `json:"monthly_payment"`
	DownPayment    *float64  `json:"down_payment"`
	TermMonths     *int      `json:"term_months"`
	AnnualMileage  *int      `json:"annual_mileage"`
	APR            *float64  `json:"apr"`
	MSRP           *float64  `json:"msrp"`
	SellingPrice   *float64  `json:"selling_price"`

	// OfferEndDate is an ISO date (YYYY-MM-DD) when known.
	OfferEndDate string `json:"offer_end_date,omitempty"`
	Disclaimer   string `json:"disclaimer,omitempty"`
	ImageURL     string `json:"image_url,omitempty"`

	// SourceAnchor is a fragment identifier for the DOM node the offer was
	// extracted from, used to deep-link back into the source page.
	SourceAnchor string `json:"source_anchor,omitempty"`

	// Confidence is the extractor's score in [0,1]; nil means unscored and
	// is defaulted during cleaning. A scored candidate below 0.5 is
	// rejected, including an explicit zero.
	Confidence       *float64 `json:"confidence,omitempty"`
	ExtractionMethod string   `json:"extraction_method"`
}

// Offer is a durable, validated offer row owned by the storage layer.
type Offer struct {
	ID       string `json:"id"`
	DealerID string `json:"dealerId"`

	Year  int    `json:"year"`
	Make  string `json:"make"`
	Model string `json:"model"`
	Trim  string `json:"trim,omitempty"`

	OfferType      OfferType `json:"offerType"`
	MonthlyPayment *float64  `json:"monthlyPayment"`
	DownPayment    *float64  `json:"downPayment"`
	TermMonths     *int      `json:"termMonths"`
	AnnualMileage  *int      `json:"annualMileage"`
	APR            *float64  `json:"apr"`
	MSRP           *float64  `json:"msrp"`
	SellingPrice   *float64  `json:"sellingPrice"`

	OfferEndDate string `json:"offerEndDate,omitempty"`
	Disclaimer   string `json:"disclaimer,omitempty"`

	// SourceURL is the specials page the offer came from, with the source
	// anchor appended as a fragment when one was captured.
	SourceURL string `json:"sourceUrl"`
	ImageURL  string `json:"imageUrl,omitempty"`

	Confidence       float64 `json:"confidence"`
	ExtractionMethod string  `json:"extractionMethod"`

	Active          bool      `json:"active"`
	VerifiedByHuman bool      `json:"verifiedByHuman"`
	CreatedAt       time.Time `json:"createdAt"`
}

// SaveStats reports the outcome of a per-dealer offer replacement.
type SaveStats struct {
	Deactivated int
	Inserted    int
}

// OfferFilter represents a filter for FindOffers.
type OfferFilter struct {
	DealerID  *string    `json:"dealerId"`
	Model     *string    `json:"model"`
	OfferType *OfferType `json:"offerType"`
	Active    *bool      `json:"active"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// OfferService persists validated offers. Writes touch only the given
// dealer's rows, so concurrent per-dealer runs do not interfere.
type OfferService interface {
	// ReplaceDealerOffers deactivates the dealer's currently active offers
	// and inserts the new set. The source anchor, when present, is appended
	// to sourceURL as a fragment for deep-linking.
	ReplaceDealerOffers(ctx context.Context, dealerID, sourceURL string, candidates []*OfferCandidate) (*SaveStats, error)

	// FindOffers retrieves offers matching the filter, newest first.
	FindOffers(ctx context.Context, filter OfferFilter) ([]*Offer, error)
}

// DedupeOffers collapses candidates that share (year, model, monthly
// payment), keeping the first occurrence. This is a coarse heuristic: two
// genuinely distinct trims with identical payment and no captured trim
// difference will collide, which is an accepted approximation.
func DedupeOffers(offers []*OfferCandidate) []*OfferCandidate {
	type key struct {
		year    int
		model   string
		payment float64
	}
	seen := make(map[key]bool, len(offers))
	unique := make([]*OfferCandidate, 0, len(offers))
	for _, o := range offers {
		k := key{year: o.Year, model: o.Model, payment: -1}
		if o.MonthlyPayment != nil {
			k.payment = *o.MonthlyPayment
		}
		if seen[k] {
			continue
		}
		seen[k] = true
		unique = append(unique, o)
	}
	return unique
}

// Float returns a pointer to v. Convenience for optional numeric fields.
func Float(v float64) *float64 { return &v }

// Int returns a pointer to v. Convenience for optional numeric fields.
func Int(v int) *int { return &v }
