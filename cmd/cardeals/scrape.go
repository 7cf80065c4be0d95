package main

import (
	"fmt"

	cardeals "github.com/nicoselucafi/cardeals-ai"
	"github.com/nicoselucafi/cardeals-ai/scrape"
)

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	dealers, err := c.selectDealers(deps)
	if err != nil {
		return err
	}
	if len(dealers) == 0 {
		fmt.Fprintln(deps.Stdout, "No dealers to scrape. Run 'cardeals seed' to load the roster.")
		return nil
	}

	progress := func(event scrape.ProgressEvent) {
		switch event.Type {
		case scrape.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Scraping %d dealers...\n", event.Total)
		case scrape.ProgressCompleted:
			r := event.Result
			if r.Status == cardeals.RunStatusSuccess {
				fmt.Fprintf(deps.Stdout, "[OK] %s: %d offers saved (%s fetched, %d extracted, %d valid)\n",
					r.Name, r.Saved, scrape.FormatBytes(r.BytesFetched), r.Extracted, r.Valid)
			} else {
				fmt.Fprintf(deps.Stdout, "[FAIL] %s: %v\n", r.Name, r.Err)
			}
		}
	}

	summary, err := deps.Scraper.Run(deps.Ctx, dealers, progress)
	if err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "\nDone: %d succeeded, %d failed, %d offers saved\n",
		summary.Succeeded, summary.Failed, summary.Saved)

	return nil
}

// selectDealers resolves the dealer roster for this run: the named slugs
// when given, otherwise all active dealers.
func (c *ScrapeCmd) selectDealers(deps *Dependencies) ([]*cardeals.Dealer, error) {
	if len(c.Dealer) > 0 {
		dealers := make([]*cardeals.Dealer, 0, len(c.Dealer))
		for _, slug := range c.Dealer {
			dealer, err := deps.Dealers.FindDealerBySlug(deps.Ctx, slug)
			if err != nil {
				return nil, fmt.Errorf("dealer %q: %s", slug, cardeals.ErrorMessage(err))
			}
			dealers = append(dealers, dealer)
		}
		return dealers, nil
	}

	active := true
	return deps.Dealers.FindDealers(deps.Ctx, cardeals.DealerFilter{Active: &active})
}
