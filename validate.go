package cardeals

import (
	"fmt"
	"strings"
	"time"
)

// CanonicalTerms are the standard lease/finance term lengths in months.
var CanonicalTerms = []int{24, 27, 30, 33, 36, 39, 42, 48, 60, 72}

// termSnapTolerance is how far a term may sit from a canonical value and
// still be snapped to it rather than rejected.
const termSnapTolerance = 3

// defaultConfidence is assumed for candidates that arrive unscored.
const defaultConfidence = 0.8

// Plausibility bounds for extracted dollar amounts.
const (
	minMonthlyPayment = 50
	maxMonthlyPayment = 2000
	maxDownPayment    = 20000
)

// SnapTerm returns the canonical term nearest to term. ok is false when the
// nearest canonical value is more than the snap tolerance away.
func SnapTerm(term int) (int, bool) {
	closest := CanonicalTerms[0]
	for _, t := range CanonicalTerms[1:] {
		if abs(t-term) < abs(closest-term) {
			closest = t
		}
	}
	return closest, abs(closest-term) <= termSnapTolerance
}

// ValidateOffer enforces plausibility rules on an extracted candidate.
// It returns whether the candidate is acceptable along with the list of
// violations for diagnosis. Rejection is a routine outcome, not a failure.
func ValidateOffer(c *OfferCandidate) (bool, []string) {
	var errs []string

	if c.Model == "" {
		errs = append(errs, "missing model")
	}
	if c.Year == 0 {
		errs = append(errs, "missing year")
	}

	if c.MonthlyPayment != nil {
		if v := *c.MonthlyPayment; v < minMonthlyPayment || v > maxMonthlyPayment {
			errs = append(errs, fmt.Sprintf("monthly_payment out of range: %g", v))
		}
	}
	if c.DownPayment != nil {
		if v := *c.DownPayment; v < 0 || v > maxDownPayment {
			errs = append(errs, fmt.Sprintf("down_payment out of range: %g", v))
		}
	}
	if c.TermMonths != nil {
		if _, ok := SnapTerm(*c.TermMonths); !ok {
			errs = append(errs, fmt.Sprintf("invalid term_months: %d", *c.TermMonths))
		}
	}

	if c.Year != 0 {
		// Hard rule: offers for years outside the rolling model-year window
		// indicate mis-extraction, not an unusual offer.
		now := time.Now().UTC().Year()
		if c.Year < now-1 || c.Year > now+1 {
			errs = append(errs, fmt.Sprintf("invalid year: %d", c.Year))
		}
	}

	if c.Model != "" {
		if _, ok := NormalizeModel(c.Model); !ok {
			errs = append(errs, fmt.Sprintf("unknown model: %s", c.Model))
		}
	}

	if c.Confidence != nil && *c.Confidence < 0.5 {
		errs = append(errs, fmt.Sprintf("confidence too low: %g", *c.Confidence))
	}

	if c.OfferType != "" && c.OfferType != OfferTypeLease && c.OfferType != OfferTypeFinance {
		errs = append(errs, fmt.Sprintf("invalid offer_type: %s", c.OfferType))
	}

	return len(errs) == 0, errs
}

// CleanOffer returns a normalized copy of a candidate that passed
// validation. Cleaning is idempotent: applying it twice yields the same
// result as applying it once.
func CleanOffer(c *OfferCandidate, defaultMake string) *OfferCandidate {
	out := *c

	if out.Year == 0 {
		out.Year = time.Now().UTC().Year()
	}
	out.Make = NormalizeMake(out.Make, defaultMake)
	if normalized, ok := NormalizeModel(out.Model); ok {
		out.Model = normalized
	}
	out.Trim = strings.TrimSpace(out.Trim)

	switch OfferType(strings.ToLower(string(out.OfferType))) {
	case OfferTypeFinance:
		out.OfferType = OfferTypeFinance
	default:
		out.OfferType = OfferTypeLease
	}

	if out.TermMonths != nil {
		if snapped, ok := SnapTerm(*out.TermMonths); ok {
			out.TermMonths = Int(snapped)
		}
	}

	if out.Confidence == nil {
		out.Confidence = Float(defaultConfidence)
	}

	return &out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
