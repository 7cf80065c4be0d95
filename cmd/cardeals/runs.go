package main

import (
	"fmt"

	cardeals "github.com/nicoselucafi/cardeals-ai"
	"github.com/nicoselucafi/cardeals-ai/scrape"
)

// Run executes the runs command.
func (c *RunsCmd) Run(deps *Dependencies) error {
	filter := cardeals.RunFilter{Limit: c.Limit}
	if c.Dealer != "" {
		filter.DealerSlug = &c.Dealer
	}

	runs, err := deps.Runs.FindRuns(deps.Ctx, filter)
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(deps.Stdout, "No runs recorded.")
		return nil
	}

	for _, r := range runs {
		line := fmt.Sprintf("%s  %-28s %-8s %s, %d extracted, %d valid, %d saved",
			r.CreatedAt.Format("2006-01-02 15:04"), r.DealerSlug, r.Status,
			scrape.FormatBytes(r.BytesFetched), r.Extracted, r.Valid, r.Saved)
		if r.Error != "" {
			line += "  err: " + r.Error
		}
		fmt.Fprintln(deps.Stdout, line)
	}
	fmt.Fprintf(deps.Stdout, "\n%d runs\n", len(runs))

	return nil
}
