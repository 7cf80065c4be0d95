package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	cardeals "github.com/nicoselucafi/cardeals-ai"
)

// Compile-time interface verification.
var _ cardeals.DealerService = (*DealerService)(nil)

// DealerService implements cardeals.DealerService using SQLite.
type DealerService struct {
	db *DB
}

// NewDealerService creates a new DealerService.
func NewDealerService(db *DB) *DealerService {
	return &DealerService{db: db}
}

// CreateDealer creates a new dealer.
// Returns ECONFLICT if the slug is already taken.
func (s *DealerService) CreateDealer(ctx context.Context, dealer *cardeals.Dealer) error {
	if err := dealer.Validate(); err != nil {
		return err
	}

	var exists int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM dealers WHERE slug = ?", dealer.Slug).Scan(&exists)
	if err != nil {
		return err
	}
	if exists > 0 {
		return cardeals.Errorf(cardeals.ECONFLICT, "dealer slug %q already exists", dealer.Slug)
	}

	dealer.ID = uuid.New().String()
	dealer.Active = true
	dealer.CreatedAt = time.Now().UTC()
	dealer.UpdatedAt = dealer.CreatedAt

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO dealers (id, name, slug, city, state, make, specials_url, platform, active, verified, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, dealer.ID, dealer.Name, dealer.Slug, dealer.City, dealer.State, dealer.Make,
		dealer.SpecialsURL, string(dealer.Platform), boolInt(dealer.Active), boolInt(dealer.Verified),
		dealer.CreatedAt.Format(time.RFC3339), dealer.UpdatedAt.Format(time.RFC3339))

	return err
}

// FindDealerBySlug retrieves a dealer by slug.
// Returns ENOTFOUND if the dealer does not exist.
func (s *DealerService) FindDealerBySlug(ctx context.Context, slug string) (*cardeals.Dealer, error) {
	row := s.db.QueryRowContext(ctx, selectDealers+" WHERE slug = ?", slug)
	dealer, err := scanDealer(row)
	if err == sql.ErrNoRows {
		return nil, cardeals.Errorf(cardeals.ENOTFOUND, "dealer not found")
	}
	if err != nil {
		return nil, err
	}
	return dealer, nil
}

// FindDealers retrieves dealers matching the filter, ordered by name.
func (s *DealerService) FindDealers(ctx context.Context, filter cardeals.DealerFilter) ([]*cardeals.Dealer, error) {
	var query strings.Builder
	var args []any

	query.WriteString(selectDealers + " WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Slug != nil {
		query.WriteString(" AND slug = ?")
		args = append(args, *filter.Slug)
	}
	if filter.Make != nil {
		query.WriteString(" AND make = ?")
		args = append(args, *filter.Make)
	}
	if filter.Active != nil {
		query.WriteString(" AND active = ?")
		args = append(args, boolInt(*filter.Active))
	}

	query.WriteString(" ORDER BY name ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dealers []*cardeals.Dealer
	for rows.Next() {
		dealer, err := scanDealer(rows)
		if err != nil {
			return nil, err
		}
		dealers = append(dealers, dealer)
	}

	return dealers, rows.Err()
}

// UpdateDealer updates an existing dealer.
// Returns ENOTFOUND if the dealer does not exist.
func (s *DealerService) UpdateDealer(ctx context.Context, id string, upd cardeals.DealerUpdate) (*cardeals.Dealer, error) {
	dealers, err := s.FindDealers(ctx, cardeals.DealerFilter{ID: &id})
	if err != nil {
		return nil, err
	}
	if len(dealers) == 0 {
		return nil, cardeals.Errorf(cardeals.ENOTFOUND, "dealer not found")
	}
	dealer := dealers[0]

	if upd.Name != nil {
		dealer.Name = *upd.Name
	}
	if upd.SpecialsURL != nil {
		dealer.SpecialsURL = *upd.SpecialsURL
	}
	if upd.Platform != nil {
		dealer.Platform = *upd.Platform
	}
	if upd.Active != nil {
		dealer.Active = *upd.Active
	}
	dealer.UpdatedAt = time.Now().UTC()

	if err := dealer.Validate(); err != nil {
		return nil, err
	}

	_, err = s.db.ExecContext(ctx, `
		UPDATE dealers
		SET name = ?, specials_url = ?, platform = ?, active = ?, updated_at = ?
		WHERE id = ?
	`, dealer.Name, dealer.SpecialsURL, string(dealer.Platform), boolInt(dealer.Active),
		dealer.UpdatedAt.Format(time.RFC3339), id)

	if err != nil {
		return nil, err
	}

	return dealer, nil
}

const selectDealers = `SELECT id, name, slug, city, state, make, specials_url, platform, active, verified, created_at, updated_at FROM dealers`

// scanner abstracts *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanDealer(row scanner) (*cardeals.Dealer, error) {
	var dealer cardeals.Dealer
	var platform string
	var active, verified int
	var createdAt, updatedAt string

	if err := row.Scan(&dealer.ID, &dealer.Name, &dealer.Slug, &dealer.City, &dealer.State,
		&dealer.Make, &dealer.SpecialsURL, &platform, &active, &verified,
		&createdAt, &updatedAt); err != nil {
		return nil, err
	}

	dealer.Platform = cardeals.Platform(platform)
	dealer.Active = active != 0
	dealer.Verified = verified != 0

	var err error
	if dealer.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if dealer.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
		return nil, err
	}

	return &dealer, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
