// Package dto defines the value objects returned by the settlement use cases.
// TripFinancialSummary is the single composed document consumed by the
// report, PDF, and email collaborators.
package dto

import (
	"time"

	"github.com/google/uuid"
)

// ActivityCost is one activity's line in the activities summary.
type ActivityCost struct {
	ActivityID uuid.UUID
	Name       string

	// Priced is false when no pricing row exists; the activity then settles
	// at zero in the trip currency.
	Priced     bool
	PriceCents int64
	Currency   string

	PriceInTripCurrencyCents int64
	RateSource               string

	// HasSplits reports whether any traveller split rows exist for the
	// activity; SplitType is empty when there are none.
	HasSplits bool
	SplitType string
}

// ActivitiesSummary aggregates the priced activities of a trip.
//
// TotalCents sums native-currency amounts and is only meaningful when every
// activity shares the trip currency; TotalInTripCurrencyCents is the
// authoritative figure.
type ActivitiesSummary struct {
	TotalCents               int64
	TotalInTripCurrencyCents int64
	PerActivity              []ActivityCost
}

// FeesSummary aggregates the service fees of a trip, everything except
// TotalCents expressed in trip currency. Cancelled fees appear only in their
// ByStatus bucket.
//
// TotalInTripCurrencyCents approximately equals Paid + Pending + Refunded;
// refund accounting and per-item rounding make exact equality non-guaranteed.
type FeesSummary struct {
	TotalCents               int64
	TotalInTripCurrencyCents int64
	PaidCents                int64
	PendingCents             int64
	RefundedCents            int64

	// ByStatus has one bucket per lifecycle status, zero-valued when empty,
	// in trip currency.
	ByStatus map[string]int64
}

// TravellerBreakdown is one traveller's share of the trip cost.
//
// ServiceFeesCents is zero for non-primary travellers: fees targeting all
// travellers are not distributed per-traveller under the current attribution
// rule (see DESIGN.md).
type TravellerBreakdown struct {
	TravellerID uuid.UUID
	Name        string
	IsPrimary   bool

	ActivityCostsCents int64
	ServiceFeesCents   int64
	TotalCents         int64
}

// CommissionSummary compares expected against received supplier commission.
// PendingTotalCents may be negative when commission was over-received; it is
// deliberately not clamped.
type CommissionSummary struct {
	ExpectedTotalCents int64
	ReceivedTotalCents int64
	PendingTotalCents  int64
}

// GrandTotal is the trip-level roll-up.
type GrandTotal struct {
	TotalCostCents      int64
	TotalCollectedCents int64
	OutstandingCents    int64
}

// TripFinancialSummary is the immutable composed settlement document.
type TripFinancialSummary struct {
	TripID       uuid.UUID
	TripName     string
	TripCurrency string

	Activities  ActivitiesSummary
	Fees        FeesSummary
	Travellers  []TravellerBreakdown
	Commissions CommissionSummary
	GrandTotal  GrandTotal

	GeneratedAt time.Time
}
