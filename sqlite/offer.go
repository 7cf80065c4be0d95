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
var _ cardeals.OfferService = (*OfferService)(nil)

// OfferService implements cardeals.OfferService using SQLite.
type OfferService struct {
	db *DB
}

// NewOfferService creates a new OfferService.
func NewOfferService(db *DB) *OfferService {
	return &OfferService{db: db}
}

// ReplaceDealerOffers deactivates the dealer's currently active offers and
// inserts the new set, in one transaction so readers never observe a dealer
// with no offers mid-replacement.
func (s *OfferService) ReplaceDealerOffers(ctx context.Context, dealerID, sourceURL string, candidates []*cardeals.OfferCandidate) (*cardeals.SaveStats, error) {
	if dealerID == "" {
		return nil, cardeals.Errorf(cardeals.EINVALID, "dealer ID required")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE offers SET active = 0 WHERE dealer_id = ? AND active = 1
	`, dealerID)
	if err != nil {
		return nil, err
	}
	deactivated, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	inserted := 0
	for _, c := range candidates {
		url := sourceURL
		if c.SourceAnchor != "" {
			url = sourceURL + "#" + c.SourceAnchor
		}
		confidence := 0.0
		if c.Confidence != nil {
			confidence = *c.Confidence
		}

		_, err := tx.ExecContext(ctx, `
			INSERT INTO offers (id, dealer_id, year, make, model, trim, offer_type,
				monthly_payment, down_payment, term_months, annual_mileage, apr, msrp, selling_price,
				offer_end_date, disclaimer, source_url, image_url, confidence, extraction_method,
				active, verified_by_human, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 1, 0, ?)
		`, uuid.New().String(), dealerID, c.Year, c.Make, c.Model, c.Trim, string(c.OfferType),
			nullFloat(c.MonthlyPayment), nullFloat(c.DownPayment), nullInt(c.TermMonths),
			nullInt(c.AnnualMileage), nullFloat(c.APR), nullFloat(c.MSRP), nullFloat(c.SellingPrice),
			c.OfferEndDate, c.Disclaimer, url, c.ImageURL, confidence, c.ExtractionMethod, now)
		if err != nil {
			return nil, err
		}
		inserted++
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &cardeals.SaveStats{Deactivated: int(deactivated), Inserted: inserted}, nil
}

// FindOffers retrieves offers matching the filter, newest first.
func (s *OfferService) FindOffers(ctx context.Context, filter cardeals.OfferFilter) ([]*cardeals.Offer, error) {
	var query strings.Builder
	var args []any

	query.WriteString(`SELECT id, dealer_id, year, make, model, trim, offer_type,
		monthly_payment, down_payment, term_months, annual_mileage, apr, msrp, selling_price,
		offer_end_date, disclaimer, source_url, image_url, confidence, extraction_method,
		active, verified_by_human, created_at
	FROM offers WHERE 1=1`)

	if filter.DealerID != nil {
		query.WriteString(" AND dealer_id = ?")
		args = append(args, *filter.DealerID)
	}
	if filter.Model != nil {
		query.WriteString(" AND model = ?")
		args = append(args, *filter.Model)
	}
	if filter.OfferType != nil {
		query.WriteString(" AND offer_type = ?")
		args = append(args, string(*filter.OfferType))
	}
	if filter.Active != nil {
		query.WriteString(" AND active = ?")
		args = append(args, boolInt(*filter.Active))
	}

	query.WriteString(" ORDER BY created_at DESC, model ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var offers []*cardeals.Offer
	for rows.Next() {
		offer, err := scanOffer(rows)
		if err != nil {
			return nil, err
		}
		offers = append(offers, offer)
	}

	return offers, rows.Err()
}

func scanOffer(rows *sql.Rows) (*cardeals.Offer, error) {
	var offer cardeals.Offer
	var offerType string
	var monthly, down, apr, msrp, selling sql.NullFloat64
	var term, mileage sql.NullInt64
	var active, verified int
	var createdAt string

	if err := rows.Scan(&offer.ID, &offer.DealerID, &offer.Year, &offer.Make, &offer.Model,
		&offer.Trim, &offerType, &monthly, &down, &term, &mileage, &apr, &msrp, &selling,
		&offer.OfferEndDate, &offer.Disclaimer, &offer.SourceURL, &offer.ImageURL,
		&offer.Confidence, &offer.ExtractionMethod, &active, &verified, &createdAt); err != nil {
		return nil, err
	}

	offer.OfferType = cardeals.OfferType(offerType)
	offer.MonthlyPayment = floatPtr(monthly)
	offer.DownPayment = floatPtr(down)
	offer.TermMonths = intPtr(term)
	offer.AnnualMileage = intPtr(mileage)
	offer.APR = floatPtr(apr)
	offer.MSRP = floatPtr(msrp)
	offer.SellingPrice = floatPtr(selling)
	offer.Active = active != 0
	offer.VerifiedByHuman = verified != 0

	var err error
	if offer.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}

	return &offer, nil
}
