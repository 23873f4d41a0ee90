package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Systemsaholic/tailfire-sub005/internal/domain/valueobject"
	"github.com/Systemsaholic/tailfire-sub005/pkg/money"
)

// TripTraveller is a person on a trip. Exactly one traveller per trip is
// flagged primary; that traveller is the billing contact and absorbs
// primary-traveller service fees in the per-traveller breakdown.
type TripTraveller struct {
	ID        uuid.UUID
	TripID    uuid.UUID
	FirstName string
	LastName  string
	IsPrimary bool
}

// FullName returns the traveller's display name.
func (t TripTraveller) FullName() string {
	switch {
	case t.FirstName == "":
		return t.LastName
	case t.LastName == "":
		return t.FirstName
	default:
		return t.FirstName + " " + t.LastName
	}
}

// TravellerSplit allocates part of one activity's cost to one traveller.
// At most one split row exists per (activity, traveller) pair. The splits for
// an activity need not sum to the activity total; unreconciled splits are a
// legitimate state flagged elsewhere, not an error here.
type TravellerSplit struct {
	ID          uuid.UUID
	ActivityID  uuid.UUID
	TravellerID uuid.UUID

	AmountCents int64
	Currency    money.Currency
	SplitType   valueobject.SplitType

	// ExchangeRateToTripCurrency is the permanent snapshot rate captured when
	// the split was created; nil when none was taken.
	ExchangeRateToTripCurrency *decimal.Decimal
}

// HasSnapshotRate reports whether a snapshot exchange rate exists.
func (s TravellerSplit) HasSnapshotRate() bool {
	return s.ExchangeRateToTripCurrency != nil
}
