// Package scrape provides dealer scraping orchestration.
// It coordinates fetching, platform-routed extraction, validation, and
// storage of lease/finance offers across a roster of dealers.
package scrape

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"sync/atomic"
	"time"

	cardeals "github.com/nicoselucafi/cardeals-ai"
	"golang.org/x/sync/errgroup"
)

// Scraper orchestrates scraping a roster of dealers.
type Scraper struct {
	Fetcher   cardeals.Fetcher
	Extractor *Extractor
	Offers    cardeals.OfferService
	Runs      cardeals.RunService // nil disables run recording
	Limiter   cardeals.DomainLimiter

	Concurrency int // 0 means 3
	RetryDelays []time.Duration

	Logger *slog.Logger
}

// DealerResult holds the outcome of scraping a single dealer.
type DealerResult struct {
	Slug string
	Name string

	Status       string // cardeals.RunStatusSuccess or RunStatusFailed
	BytesFetched int
	Extracted    int
	Valid        int
	Saved        int
	Deactivated  int
	ContentHash  string
	Err          error
}

// Summary aggregates a full roster run.
type Summary struct {
	Succeeded int
	Failed    int
	Saved     int
	Results   []*DealerResult
}

// ProgressEvent reports progress during a roster run.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	Result    *DealerResult
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFinished
)

// ProgressFunc is a callback for reporting roster progress.
type ProgressFunc func(event ProgressEvent)

// Run scrapes each dealer and returns the aggregated summary. Dealers run
// concurrently up to the configured limit; one dealer's failure never stops
// the rest. Results come back in roster order.
func (s *Scraper) Run(ctx context.Context, dealers []*cardeals.Dealer, progress ProgressFunc) (*Summary, error) {
	if len(dealers) == 0 {
		return &Summary{}, nil
	}

	concurrency := s.Concurrency
	if concurrency <= 0 {
		concurrency = 3
	}

	type positioned struct {
		position int
		result   *DealerResult
	}
	resultCh := make(chan positioned, len(dealers))

	var completed atomic.Int64
	total := len(dealers)

	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, dealer := range dealers {
			i, dealer := i, dealer
			g.Go(func() error {
				resultCh <- positioned{position: i, result: s.ScrapeDealer(gctx, dealer)}
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	results := make([]*DealerResult, len(dealers))
	for pr := range resultCh {
		completed.Add(1)
		results[pr.position] = pr.result
		if progress != nil {
			progress(ProgressEvent{
				Type:      ProgressCompleted,
				Completed: int(completed.Load()),
				Total:     total,
				Result:    pr.result,
			})
		}
	}

	summary := &Summary{Results: results}
	for _, r := range results {
		if r.Status == cardeals.RunStatusSuccess {
			summary.Succeeded++
		} else {
			summary.Failed++
		}
		summary.Saved += r.Saved
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	}

	return summary, nil
}

// ScrapeDealer runs the full pipeline for one dealer: rate-limited fetch
// with retry, extraction, validation, offer replacement, and run recording.
// A page with zero valid offers is a successful run; failure means the
// pipeline itself broke.
func (s *Scraper) ScrapeDealer(ctx context.Context, dealer *cardeals.Dealer) (result *DealerResult) {
	logger := s.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	result = &DealerResult{Slug: dealer.Slug, Name: dealer.Name}

	// One panicking extractor must not take down the roster run.
	defer func() {
		if r := recover(); r != nil {
			result.Status = cardeals.RunStatusFailed
			result.Err = cardeals.Errorf(cardeals.EINTERNAL, "panic: %v", r)
			logger.Error("dealer scrape panicked", "dealer", dealer.Slug, "panic", r)
		}
		s.recordRun(ctx, result)
	}()

	if s.Limiter != nil {
		if u, err := url.Parse(dealer.SpecialsURL); err == nil {
			if err := s.Limiter.Wait(ctx, u.Host); err != nil {
				return s.fail(result, err)
			}
		}
	}

	delays := s.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	html, err := FetchWithRetryDelays(ctx, dealer.SpecialsURL, s.Fetcher.Fetch, func(format string, args ...any) {
		logger.Debug(fmt.Sprintf(format, args...))
	}, delays)
	if err != nil {
		return s.fail(result, err)
	}
	result.BytesFetched = len(html)
	result.ContentHash = ComputeHash(html)

	candidates, err := s.Extractor.Extract(ctx, html, dealer.SpecialsURL, dealer.Platform, dealer.Make)
	if err != nil {
		return s.fail(result, err)
	}
	result.Extracted = len(candidates)

	candidates = cardeals.DedupeOffers(candidates)

	// Validation sees the raw candidate: the defaults applied during
	// cleaning must not backfill required fields like the year.
	valid := make([]*cardeals.OfferCandidate, 0, len(candidates))
	for _, c := range candidates {
		ok, reasons := cardeals.ValidateOffer(c)
		if !ok {
			logger.Info("offer rejected",
				"dealer", dealer.Slug,
				"model", c.Model,
				"reasons", reasons,
			)
			continue
		}
		valid = append(valid, cardeals.CleanOffer(c, dealer.Make))
	}
	result.Valid = len(valid)

	stats, err := s.Offers.ReplaceDealerOffers(ctx, dealer.ID, dealer.SpecialsURL, valid)
	if err != nil {
		return s.fail(result, err)
	}
	result.Saved = stats.Inserted
	result.Deactivated = stats.Deactivated
	result.Status = cardeals.RunStatusSuccess

	logger.Info("dealer scraped",
		"dealer", dealer.Slug,
		"bytes", result.BytesFetched,
		"extracted", result.Extracted,
		"valid", result.Valid,
		"saved", result.Saved,
	)
	return result
}

func (s *Scraper) fail(result *DealerResult, err error) *DealerResult {
	result.Status = cardeals.RunStatusFailed
	result.Err = err
	return result
}

// recordRun persists the run outcome. Recording failures are logged and
// swallowed: the scrape itself already succeeded or failed on its own merit.
func (s *Scraper) recordRun(ctx context.Context, result *DealerResult) {
	if s.Runs == nil {
		return
	}
	run := &cardeals.Run{
		DealerSlug:   result.Slug,
		Status:       result.Status,
		BytesFetched: result.BytesFetched,
		Extracted:    result.Extracted,
		Valid:        result.Valid,
		Saved:        result.Saved,
		ContentHash:  result.ContentHash,
	}
	if result.Err != nil {
		run.Error = result.Err.Error()
	}
	if err := s.Runs.CreateRun(ctx, run); err != nil && s.Logger != nil {
		s.Logger.Warn("recording run failed", "dealer", result.Slug, "err", err)
	}
}
