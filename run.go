package cardeals

import (
	"context"
	"time"
)

// Run statuses. A run that fetched and extracted successfully but found
// nothing valid is still a success.
const (
	RunStatusSuccess = "success"
	RunStatusFailed  = "failed"
)

// Run records the outcome of a single dealer scrape for the run-summary
// report: how much was fetched, how many candidates survived each stage,
// and the failure reason when the run did not complete.
type Run struct {
	ID         string `json:"id"`
	DealerSlug string `json:"dealerSlug"`
	Status     string `json:"status"`

	BytesFetched int `json:"bytesFetched"`
	Extracted    int `json:"extracted"`
	Valid        int `json:"valid"`
	Saved        int `json:"saved"`

	// ContentHash is an xxhash of the fetched markup, useful for spotting
	// unchanged pages across runs.
	ContentHash string `json:"contentHash,omitempty"`

	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// RunFilter represents a filter for FindRuns.
type RunFilter struct {
	DealerSlug *string `json:"dealerSlug"`
	Status     *string `json:"status"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// RunService records and retrieves per-dealer run outcomes.
type RunService interface {
	// CreateRun records a completed dealer run.
	CreateRun(ctx context.Context, run *Run) error

	// FindRuns retrieves runs matching the filter, newest first.
	FindRuns(ctx context.Context, filter RunFilter) ([]*Run, error)
}
