package main

import (
	"fmt"

	cardeals "github.com/nicoselucafi/cardeals-ai"
)

// Run executes the offers command.
func (c *OffersCmd) Run(deps *Dependencies) error {
	filter := cardeals.OfferFilter{Limit: c.Limit}

	if c.Dealer != "" {
		dealer, err := deps.Dealers.FindDealerBySlug(deps.Ctx, c.Dealer)
		if err != nil {
			return fmt.Errorf("dealer %q: %s", c.Dealer, cardeals.ErrorMessage(err))
		}
		filter.DealerID = &dealer.ID
	}
	if c.Model != "" {
		filter.Model = &c.Model
	}
	if c.Type != "" {
		t := cardeals.OfferType(c.Type)
		if t != cardeals.OfferTypeLease && t != cardeals.OfferTypeFinance {
			return cardeals.Errorf(cardeals.EINVALID, "invalid offer type %q (want lease or finance)", c.Type)
		}
		filter.OfferType = &t
	}
	if !c.All {
		active := true
		filter.Active = &active
	}

	offers, err := deps.Offers.FindOffers(deps.Ctx, filter)
	if err != nil {
		return err
	}

	if len(offers) == 0 {
		fmt.Fprintln(deps.Stdout, "No offers found.")
		return nil
	}

	for _, o := range offers {
		fmt.Fprintf(deps.Stdout, "%d %s %s %s  %s  %s  (%.2f, %s)\n",
			o.Year, o.Make, o.Model, o.Trim,
			string(o.OfferType), formatTerms(o),
			o.Confidence, o.ExtractionMethod)
	}
	fmt.Fprintf(deps.Stdout, "\n%d offers\n", len(offers))

	return nil
}

// formatTerms renders the money side of an offer in one short column.
func formatTerms(o *cardeals.Offer) string {
	s := ""
	if o.MonthlyPayment != nil {
		s = fmt.Sprintf("$%.0f/mo", *o.MonthlyPayment)
	}
	if o.APR != nil {
		if s != "" {
			s += " "
		}
		s += fmt.Sprintf("%.2f%% APR", *o.APR)
	}
	if o.TermMonths != nil {
		s += fmt.Sprintf(" x%dmo", *o.TermMonths)
	}
	if o.DownPayment != nil {
		s += fmt.Sprintf(" ($%.0f down)", *o.DownPayment)
	}
	if s == "" {
		s = "(no terms)"
	}
	return s
}
