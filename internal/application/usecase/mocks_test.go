package usecase_test

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Systemsaholic/tailfire-sub005/internal/domain/model"
	"github.com/Systemsaholic/tailfire-sub005/pkg/events"
	"github.com/Systemsaholic/tailfire-sub005/pkg/money"
	"github.com/shopspring/decimal"
)

// --- Mock implementations of the domain ports ---

type mockTripRepo struct {
	findByIDFunc func(ctx context.Context, id uuid.UUID) (model.Trip, error)
}

func (m *mockTripRepo) FindByID(ctx context.Context, id uuid.UUID) (model.Trip, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return model.Trip{}, model.ErrTripNotFound
}

type mockActivityRepo struct {
	activities []model.Activity
	pricings   []model.ActivityPricing
}

func (m *mockActivityRepo) ListByTrip(_ context.Context, _ uuid.UUID) ([]model.Activity, error) {
	return m.activities, nil
}

func (m *mockActivityRepo) ListPricingsByTrip(_ context.Context, _ uuid.UUID) ([]model.ActivityPricing, error) {
	return m.pricings, nil
}

type mockFeeRepo struct {
	fees []model.ServiceFee
}

func (m *mockFeeRepo) ListByTrip(_ context.Context, _ uuid.UUID) ([]model.ServiceFee, error) {
	return m.fees, nil
}

type mockTravellerRepo struct {
	travellers []model.TripTraveller
	splits     []model.TravellerSplit
}

func (m *mockTravellerRepo) ListByTrip(_ context.Context, _ uuid.UUID) ([]model.TripTraveller, error) {
	return m.travellers, nil
}

func (m *mockTravellerRepo) ListSplitsByTrip(_ context.Context, _ uuid.UUID) ([]model.TravellerSplit, error) {
	return m.splits, nil
}

type mockCommissionRepo struct {
	receipts []model.CommissionReceipt
}

func (m *mockCommissionRepo) ListReceiptsByTrip(_ context.Context, _ uuid.UUID) ([]model.CommissionReceipt, error) {
	return m.receipts, nil
}

// mockRateRepo stores cache rows keyed by from/to/date and counts lookups.
type mockRateRepo struct {
	mu          sync.Mutex
	rows        map[string]model.ExchangeRate
	upserts     int
	exactCalls  int
	latestCalls int
}

func newMockRateRepo() *mockRateRepo {
	return &mockRateRepo{rows: make(map[string]model.ExchangeRate)}
}

func rateKey(from, to money.Currency, date time.Time) string {
	return from.Code() + "/" + to.Code() + "@" + model.DateOnly(date).Format("2006-01-02")
}

func (m *mockRateRepo) Upsert(_ context.Context, rate model.ExchangeRate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.upserts++
	m.rows[rateKey(rate.FromCurrency, rate.ToCurrency, rate.RateDate)] = rate
	return nil
}

func (m *mockRateRepo) FindExact(_ context.Context, from, to money.Currency, date time.Time) (model.ExchangeRate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.exactCalls++
	if row, ok := m.rows[rateKey(from, to, date)]; ok {
		return row, nil
	}
	return model.ExchangeRate{}, model.ErrRateNotCached
}

func (m *mockRateRepo) FindLatestOnOrBefore(_ context.Context, from, to money.Currency, date time.Time) (model.ExchangeRate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.latestCalls++

	day := model.DateOnly(date)
	var best model.ExchangeRate
	found := false
	for _, row := range m.rows {
		if row.FromCurrency != from || row.ToCurrency != to || row.RateDate.After(day) {
			continue
		}
		if !found || row.RateDate.After(best.RateDate) {
			best = row
			found = true
		}
	}
	if !found {
		return model.ExchangeRate{}, model.ErrRateNotCached
	}
	return best, nil
}

// mockProvider returns canned quotes per base currency and counts fetches.
type mockProvider struct {
	mu      sync.Mutex
	quotes  map[string]map[string]decimal.Decimal
	err     error
	fetches int
}

func (m *mockProvider) FetchLatestRates(_ context.Context, base money.Currency) (map[string]decimal.Decimal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fetches++
	if m.err != nil {
		return nil, m.err
	}
	return m.quotes[base.Code()], nil
}

type mockPublisher struct {
	mu        sync.Mutex
	published []events.DomainEvent
	topics    []string
}

func (m *mockPublisher) Publish(_ context.Context, topic string, evts ...events.DomainEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.published = append(m.published, evts...)
	m.topics = append(m.topics, topic)
	return nil
}

// memCache is an unbounded map cache for tests.
type memCache struct {
	mu      sync.Mutex
	entries map[string]model.ResolvedRate
}

func newMemCache() *memCache {
	return &memCache{entries: make(map[string]model.ResolvedRate)}
}

func (c *memCache) Get(key string) (model.ResolvedRate, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	rate, ok := c.entries[key]
	return rate, ok
}

func (c *memCache) Put(key string, rate model.ResolvedRate) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = rate
}

func (c *memCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// stubResolver returns a fixed rate per currency pair without any backend.
type stubResolver struct {
	rates map[string]decimal.Decimal // key "FROM/TO"
}

func (s *stubResolver) Rate(_ context.Context, from, to money.Currency, date time.Time) (model.ResolvedRate, error) {
	if from == to {
		return model.IdentityRate(date), nil
	}
	if rate, ok := s.rates[from.Code()+"/"+to.Code()]; ok {
		return model.ResolvedRate{Rate: rate, RateDate: model.DateOnly(date), Source: model.RateSourceCache}, nil
	}
	return model.ResolvedRate{Rate: decimal.New(1, 0), RateDate: model.DateOnly(date), Source: model.RateSourceFallback}, nil
}

// --- Shared fixture helpers ---

func int64Ptr(v int64) *int64 { return &v }

func decimalPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}
