package main

import (
	"fmt"

	cardeals "github.com/nicoselucafi/cardeals-ai"
)

// Run executes the dealers command.
func (c *DealersCmd) Run(deps *Dependencies) error {
	filter := cardeals.DealerFilter{}
	if c.Make != "" {
		filter.Make = &c.Make
	}
	if !c.All {
		active := true
		filter.Active = &active
	}

	dealers, err := deps.Dealers.FindDealers(deps.Ctx, filter)
	if err != nil {
		return err
	}

	if len(dealers) == 0 {
		fmt.Fprintln(deps.Stdout, "No dealers found. Run 'cardeals seed' to load the roster.")
		return nil
	}

	for _, d := range dealers {
		platform := string(d.Platform)
		if platform == "" {
			platform = "auto"
		}
		fmt.Fprintf(deps.Stdout, "%-28s %-8s %-15s %s\n", d.Slug, d.Make, platform, d.SpecialsURL)
	}
	fmt.Fprintf(deps.Stdout, "\n%d dealers\n", len(dealers))

	return nil
}
