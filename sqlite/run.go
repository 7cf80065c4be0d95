package sqlite

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	cardeals "github.com/nicoselucafi/cardeals-ai"
)

// Compile-time interface verification.
var _ cardeals.RunService = (*RunService)(nil)

// RunService implements cardeals.RunService using SQLite.
type RunService struct {
	db *DB
}

// NewRunService creates a new RunService.
func NewRunService(db *DB) *RunService {
	return &RunService{db: db}
}

// CreateRun records a completed dealer run.
func (s *RunService) CreateRun(ctx context.Context, run *cardeals.Run) error {
	if run.DealerSlug == "" {
		return cardeals.Errorf(cardeals.EINVALID, "dealer slug required")
	}
	if run.Status != cardeals.RunStatusSuccess && run.Status != cardeals.RunStatusFailed {
		return cardeals.Errorf(cardeals.EINVALID, "invalid run status %q", run.Status)
	}

	run.ID = uuid.New().String()
	run.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, dealer_slug, status, bytes_fetched, extracted, valid, saved, content_hash, error, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.DealerSlug, run.Status, run.BytesFetched, run.Extracted, run.Valid, run.Saved,
		run.ContentHash, run.Error, run.CreatedAt.Format(time.RFC3339))

	return err
}

// FindRuns retrieves runs matching the filter, newest first.
func (s *RunService) FindRuns(ctx context.Context, filter cardeals.RunFilter) ([]*cardeals.Run, error) {
	var query strings.Builder
	var args []any

	query.WriteString(`SELECT id, dealer_slug, status, bytes_fetched, extracted, valid, saved, content_hash, error, created_at FROM runs WHERE 1=1`)

	if filter.DealerSlug != nil {
		query.WriteString(" AND dealer_slug = ?")
		args = append(args, *filter.DealerSlug)
	}
	if filter.Status != nil {
		query.WriteString(" AND status = ?")
		args = append(args, *filter.Status)
	}

	query.WriteString(" ORDER BY created_at DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*cardeals.Run
	for rows.Next() {
		var run cardeals.Run
		var createdAt string

		if err := rows.Scan(&run.ID, &run.DealerSlug, &run.Status, &run.BytesFetched,
			&run.Extracted, &run.Valid, &run.Saved, &run.ContentHash, &run.Error, &createdAt); err != nil {
			return nil, err
		}

		if run.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
			return nil, err
		}

		runs = append(runs, &run)
	}

	return runs, rows.Err()
}
