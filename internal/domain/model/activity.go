package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/Systemsaholic/tailfire-sub005/pkg/money"
)

// Activity is a bookable item on a trip itinerary.
type Activity struct {
	ID        uuid.UUID
	TripID    uuid.UUID
	Name      string
	StartsAt  time.Time
	CreatedAt time.Time
}

// ActivityPricing is the priced side of an activity. An activity without a
// pricing row is a normal, incomplete state: it settles at zero cost in the
// trip currency until priced.
type ActivityPricing struct {
	ID         uuid.UUID
	ActivityID uuid.UUID

	// TotalPriceCents is nil until the activity has been priced.
	TotalPriceCents *int64
	Currency        money.Currency

	// CommissionTotalCents is the commission the agency expects from the
	// supplier, nil when unknown.
	CommissionTotalCents *int64
}

// IsPriced reports whether a total price has been recorded.
func (p ActivityPricing) IsPriced() bool {
	return p.TotalPriceCents != nil
}

// PriceCents returns the recorded price, or zero when unpriced.
func (p ActivityPricing) PriceCents() int64 {
	if p.TotalPriceCents == nil {
		return 0
	}
	return *p.TotalPriceCents
}

// ExpectedCommissionCents returns the expected commission, or zero when unknown.
func (p ActivityPricing) ExpectedCommissionCents() int64 {
	if p.CommissionTotalCents == nil {
		return 0
	}
	return *p.CommissionTotalCents
}
