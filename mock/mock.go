// Package mock provides hand-rolled mock implementations of cardeals
// service interfaces for testing.
package mock

import (
	"context"

	cardeals "github.com/nicoselucafi/cardeals-ai"
)

// Ensure mocks implement the interfaces at compile time.
var (
	_ cardeals.Fetcher             = (*Fetcher)(nil)
	_ cardeals.DomainLimiter       = (*DomainLimiter)(nil)
	_ cardeals.GenerativeExtractor = (*GenerativeExtractor)(nil)
	_ cardeals.OfferExtractor      = (*OfferExtractor)(nil)
	_ cardeals.PlatformDetector    = (*PlatformDetector)(nil)
	_ cardeals.ExtractorRegistry   = (*ExtractorRegistry)(nil)
	_ cardeals.DealerService       = (*DealerService)(nil)
	_ cardeals.OfferService        = (*OfferService)(nil)
	_ cardeals.RunService          = (*RunService)(nil)
)

// Fetcher is a mock implementation of cardeals.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (m *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return m.FetchFn(ctx, url)
}

func (m *Fetcher) Close() error {
	if m.CloseFn == nil {
		return nil
	}
	return m.CloseFn()
}

// DomainLimiter is a mock implementation of cardeals.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (m *DomainLimiter) Wait(ctx context.Context, domain string) error {
	if m.WaitFn == nil {
		return nil
	}
	return m.WaitFn(ctx, domain)
}

// GenerativeExtractor is a mock implementation of cardeals.GenerativeExtractor.
type GenerativeExtractor struct {
	ExtractOffersFn func(ctx context.Context, pageText string) ([]*cardeals.OfferCandidate, error)
}

func (m *GenerativeExtractor) ExtractOffers(ctx context.Context, pageText string) ([]*cardeals.OfferCandidate, error) {
	return m.ExtractOffersFn(ctx, pageText)
}

// OfferExtractor is a mock implementation of cardeals.OfferExtractor.
type OfferExtractor struct {
	ExtractFn  func(html, baseURL, defaultMake string) ([]*cardeals.OfferCandidate, error)
	PlatformFn func() cardeals.Platform
}

func (m *OfferExtractor) Extract(html, baseURL, defaultMake string) ([]*cardeals.OfferCandidate, error) {
	return m.ExtractFn(html, baseURL, defaultMake)
}

func (m *OfferExtractor) Platform() cardeals.Platform {
	if m.PlatformFn == nil {
		return cardeals.PlatformUnknown
	}
	return m.PlatformFn()
}

// PlatformDetector is a mock implementation of cardeals.PlatformDetector.
type PlatformDetector struct {
	DetectFn func(html string) cardeals.Platform
}

func (m *PlatformDetector) Detect(html string) cardeals.Platform {
	return m.DetectFn(html)
}

// ExtractorRegistry is a mock implementation of cardeals.ExtractorRegistry.
type ExtractorRegistry struct {
	GetFn      func(platform cardeals.Platform) cardeals.OfferExtractor
	ResolveFn  func(override cardeals.Platform, html string) (cardeals.OfferExtractor, cardeals.Platform)
	RegisterFn func(platform cardeals.Platform, extractor cardeals.OfferExtractor)
	ListFn     func() []cardeals.Platform
}

func (m *ExtractorRegistry) Get(platform cardeals.Platform) cardeals.OfferExtractor {
	return m.GetFn(platform)
}

func (m *ExtractorRegistry) Resolve(override cardeals.Platform, html string) (cardeals.OfferExtractor, cardeals.Platform) {
	return m.ResolveFn(override, html)
}

func (m *ExtractorRegistry) Register(platform cardeals.Platform, extractor cardeals.OfferExtractor) {
	if m.RegisterFn != nil {
		m.RegisterFn(platform, extractor)
	}
}

func (m *ExtractorRegistry) List() []cardeals.Platform {
	if m.ListFn == nil {
		return nil
	}
	return m.ListFn()
}

// DealerService is a mock implementation of cardeals.DealerService.
type DealerService struct {
	CreateDealerFn     func(ctx context.Context, dealer *cardeals.Dealer) error
	FindDealerBySlugFn func(ctx context.Context, slug string) (*cardeals.Dealer, error)
	FindDealersFn      func(ctx context.Context, filter cardeals.DealerFilter) ([]*cardeals.Dealer, error)
	UpdateDealerFn     func(ctx context.Context, id string, upd cardeals.DealerUpdate) (*cardeals.Dealer, error)
}

func (m *DealerService) CreateDealer(ctx context.Context, dealer *cardeals.Dealer) error {
	return m.CreateDealerFn(ctx, dealer)
}

func (m *DealerService) FindDealerBySlug(ctx context.Context, slug string) (*cardeals.Dealer, error) {
	return m.FindDealerBySlugFn(ctx, slug)
}

func (m *DealerService) FindDealers(ctx context.Context, filter cardeals.DealerFilter) ([]*cardeals.Dealer, error) {
	return m.FindDealersFn(ctx, filter)
}

func (m *DealerService) UpdateDealer(ctx context.Context, id string, upd cardeals.DealerUpdate) (*cardeals.Dealer, error) {
	return m.UpdateDealerFn(ctx, id, upd)
}

// OfferService is a mock implementation of cardeals.OfferService.
type OfferService struct {
	ReplaceDealerOffersFn func(ctx context.Context, dealerID, sourceURL string, candidates []*cardeals.OfferCandidate) (*cardeals.SaveStats, error)
	FindOffersFn          func(ctx context.Context, filter cardeals.OfferFilter) ([]*cardeals.Offer, error)
}

func (m *OfferService) ReplaceDealerOffers(ctx context.Context, dealerID, sourceURL string, candidates []*cardeals.OfferCandidate) (*cardeals.SaveStats, error) {
	return m.ReplaceDealerOffersFn(ctx, dealerID, sourceURL, candidates)
}

func (m *OfferService) FindOffers(ctx context.Context, filter cardeals.OfferFilter) ([]*cardeals.Offer, error) {
	return m.FindOffersFn(ctx, filter)
}

// RunService is a mock implementation of cardeals.RunService.
type RunService struct {
	CreateRunFn func(ctx context.Context, run *cardeals.Run) error
	FindRunsFn  func(ctx context.Context, filter cardeals.RunFilter) ([]*cardeals.Run, error)
}

func (m *RunService) CreateRun(ctx context.Context, run *cardeals.Run) error {
	if m.CreateRunFn == nil {
		return nil
	}
	return m.CreateRunFn(ctx, run)
}

func (m *RunService) FindRuns(ctx context.Context, filter cardeals.RunFilter) ([]*cardeals.Run, error) {
	return m.FindRunsFn(ctx, filter)
}
