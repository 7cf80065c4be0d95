package cardeals

import (
	"context"
	"time"
)

// Dealer identifies a dealership whose specials page is scraped.
type Dealer struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	City        string `json:"city,omitempty"`
	State       string `json:"state,omitempty"`
	Make        string `json:"make"`
	SpecialsURL string `json:"specialsUrl"`

	// Platform is a pre-recorded layout assignment that takes precedence
	// over auto-detection. PlatformUnknown means detect from the markup.
	Platform Platform `json:"platform,omitempty"`

	Active    bool      `json:"active"`
	Verified  bool      `json:"verified"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Validate returns an error if the dealer contains invalid fields.
func (d *Dealer) Validate() error {
	if d.Name == "" {
		return Errorf(EINVALID, "dealer name required")
	}
	if d.Slug == "" {
		return Errorf(EINVALID, "dealer slug required")
	}
	if d.SpecialsURL == "" {
		return Errorf(EINVALID, "dealer specials URL required")
	}
	return nil
}

// DealerFilter represents a filter for FindDealers.
type DealerFilter struct {
	ID     *string `json:"id"`
	Slug   *string `json:"slug"`
	Make   *string `json:"make"`
	Active *bool   `json:"active"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// DealerUpdate represents fields that can be updated on a dealer.
type DealerUpdate struct {
	Name        *string   `json:"name"`
	SpecialsURL *string   `json:"specialsUrl"`
	Platform    *Platform `json:"platform"`
	Active      *bool     `json:"active"`
}

// DealerService represents a service for managing the dealer registry.
type DealerService interface {
	// CreateDealer creates a new dealer.
	// Returns ECONFLICT if the slug is already taken.
	CreateDealer(ctx context.Context, dealer *Dealer) error

	// FindDealerBySlug retrieves a dealer by slug.
	// Returns ENOTFOUND if the dealer does not exist.
	FindDealerBySlug(ctx context.Context, slug string) (*Dealer, error)

	// FindDealers retrieves dealers matching the filter.
	FindDealers(ctx context.Context, filter DealerFilter) ([]*Dealer, error)

	// UpdateDealer updates an existing dealer.
	// Returns ENOTFOUND if the dealer does not exist.
	UpdateDealer(ctx context.Context, id string, upd DealerUpdate) (*Dealer, error)
}
