package main

import (
	"fmt"

	cardeals "github.com/nicoselucafi/cardeals-ai"
)

// seedDealers is the built-in Los Angeles area roster. Platform assignments
// reflect each site's verified CMS; auto-detection covers the rest.
var seedDealers = []*cardeals.Dealer{
	{
		Name:        "Longo Toyota",
		Slug:        "longo-toyota",
		Make:        "Toyota",
		SpecialsURL: "https://www.longotoyota.com/new-toyota-specials-los-angeles.html",
		City:        "El Monte",
		State:       "CA",
		Platform:    cardeals.PlatformOctane,
	},
	{
		Name:        "Toyota of Downtown LA",
		Slug:        "toyota-downtown-la",
		Make:        "Toyota",
		SpecialsURL: "https://www.toyotaofdowntownla.com/new-vehicle-specials/",
		City:        "Los Angeles",
		State:       "CA",
		Platform:    cardeals.PlatformDealerOn,
	},
	{
		Name:        "North Hollywood Toyota",
		Slug:        "north-hollywood-toyota",
		Make:        "Toyota",
		SpecialsURL: "https://www.northhollywoodtoyota.com/new-vehicle-specials/",
		City:        "North Hollywood",
		State:       "CA",
		Platform:    cardeals.PlatformDealerOn,
	},
	{
		Name:        "Culver City Toyota",
		Slug:        "culver-city-toyota",
		Make:        "Toyota",
		SpecialsURL: "https://www.culvercitytoyota.com/new-vehicles/new-vehicle-specials/",
		City:        "Culver City",
		State:       "CA",
		Platform:    cardeals.PlatformDealerInspire,
	},
	{
		Name:        "AutoNation Toyota Cerritos",
		Slug:        "autonation-toyota-cerritos",
		Make:        "Toyota",
		SpecialsURL: "https://www.autonationtoyotacerritos.com/toyota-specials.htm",
		City:        "Cerritos",
		State:       "CA",
		Platform:    cardeals.PlatformDealerInspire,
	},
	{
		Name:        "Airport Marina Honda",
		Slug:        "airport-marina-honda",
		Make:        "Honda",
		SpecialsURL: "https://www.airportmarinahonda.com/new-vehicle-specials-2/",
		City:        "Los Angeles",
		State:       "CA",
		Platform:    cardeals.PlatformDealerInspire,
	},
	{
		Name:        "Galpin Honda",
		Slug:        "galpin-honda",
		Make:        "Honda",
		SpecialsURL: "https://www.galpinhonda.com/new-specials/",
		City:        "Mission Hills",
		State:       "CA",
		Platform:    cardeals.PlatformDealerInspire,
	},
	{
		Name:        "Goudy Honda",
		Slug:        "goudy-honda",
		Make:        "Honda",
		SpecialsURL: "https://www.goudyhonda.com/new-vehicles/new-vehicle-specials/",
		City:        "Alhambra",
		State:       "CA",
		Platform:    cardeals.PlatformDealerInspire,
	},
	{
		Name:        "Norm Reeves Honda Cerritos",
		Slug:        "norm-reeves-honda-cerritos",
		Make:        "Honda",
		SpecialsURL: "https://www.normreeveshondacerritos.com/new-vehicles/new-vehicle-specials/",
		City:        "Cerritos",
		State:       "CA",
		Platform:    cardeals.PlatformDealerInspire,
	},
	{
		Name:        "Scott Robinson Honda",
		Slug:        "scott-robinson-honda",
		Make:        "Honda",
		SpecialsURL: "https://scottrobinsonhonda.com/offers/",
		City:        "Torrance",
		State:       "CA",
		Platform:    cardeals.PlatformUnknown,
	},
	{
		Name:        "Carson Honda",
		Slug:        "carson-honda",
		Make:        "Honda",
		SpecialsURL: "https://www.carsonhonda.net/promotions/new/index.htm",
		City:        "Carson",
		State:       "CA",
		Platform:    cardeals.PlatformDealerCom,
	},
}

// Run executes the seed command.
func (c *SeedCmd) Run(deps *Dependencies) error {
	created := 0
	skipped := 0
	for _, d := range seedDealers {
		dealer := *d
		err := deps.Dealers.CreateDealer(deps.Ctx, &dealer)
		if cardeals.ErrorCode(err) == cardeals.ECONFLICT {
			skipped++
			continue
		}
		if err != nil {
			return err
		}
		created++
	}

	fmt.Fprintf(deps.Stdout, "Seeded %d dealers (%d already present)\n", created, skipped)
	return nil
}
