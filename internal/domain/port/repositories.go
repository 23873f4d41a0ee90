// Package port declares the interfaces through which the settlement engine
// reaches persistence, the FX provider, the in-process rate cache, and the
// event broker. Implementations live under internal/infrastructure.
package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Systemsaholic/tailfire-sub005/internal/domain/model"
	"github.com/Systemsaholic/tailfire-sub005/pkg/money"
)

// TripRepository reads trip records.
type TripRepository interface {
	// FindByID returns the trip, or model.ErrTripNotFound.
	FindByID(ctx context.Context, id uuid.UUID) (model.Trip, error)
}

// ActivityRepository reads activities and their pricing in bulk.
// Every method fetches all rows for a trip in one query; the aggregators
// never issue per-row lookups.
type ActivityRepository interface {
	ListByTrip(ctx context.Context, tripID uuid.UUID) ([]model.Activity, error)
	ListPricingsByTrip(ctx context.Context, tripID uuid.UUID) ([]model.ActivityPricing, error)
}

// ServiceFeeRepository reads service fees.
type ServiceFeeRepository interface {
	ListByTrip(ctx context.Context, tripID uuid.UUID) ([]model.ServiceFee, error)
}

// TravellerRepository reads trip travellers and their activity splits.
type TravellerRepository interface {
	ListByTrip(ctx context.Context, tripID uuid.UUID) ([]model.TripTraveller, error)
	ListSplitsByTrip(ctx context.Context, tripID uuid.UUID) ([]model.TravellerSplit, error)
}

// CommissionRepository reads commission receipts for a trip's pricing rows.
type CommissionRepository interface {
	ListReceiptsByTrip(ctx context.Context, tripID uuid.UUID) ([]model.CommissionReceipt, error)
}

// ExchangeRateRepository persists the daily rate cache table. Upserts resolve
// conflicts on (from, to, rate date) by update-in-place; rows are never
// deleted.
type ExchangeRateRepository interface {
	Upsert(ctx context.Context, rate model.ExchangeRate) error

	// FindExact returns the cached rate for the pair on exactly the given
	// date, or model.ErrRateNotCached.
	FindExact(ctx context.Context, from, to money.Currency, date time.Time) (model.ExchangeRate, error)

	// FindLatestOnOrBefore returns the most recent cached rate for the pair
	// dated on or before the given date, or model.ErrRateNotCached.
	FindLatestOnOrBefore(ctx context.Context, from, to money.Currency, date time.Time) (model.ExchangeRate, error)
}
