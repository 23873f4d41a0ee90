// Package model holds the settlement engine's view of the back-office records:
// trips, activities and their pricing, service fees, travellers and their
// splits, commission receipts, and the exchange-rate cache entry.
//
// Except for the ExchangeRate cache the engine only reads these records; they
// are plain structs scanned from the relational store, with behavior attached
// where the settlement rules demand it (fee lifecycle, snapshot permanence).
package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/Systemsaholic/tailfire-sub005/pkg/money"
)

// TripStatus is the trip-order workflow status. The workflow itself
// (draft -> finalized -> sent) is owned by trip management; settlement only
// carries it through for display.
type TripStatus string

const (
	TripStatusDraft     TripStatus = "draft"
	TripStatusFinalized TripStatus = "finalized"
	TripStatusSent      TripStatus = "sent"
)

// Trip is the unit of settlement. Its currency is immutable for settlement
// purposes: every summary amount is expressed in it.
type Trip struct {
	ID        uuid.UUID
	Name      string
	Currency  money.Currency
	Status    TripStatus
	CreatedAt time.Time
}

// SettlementCurrency returns the trip's canonical currency, falling back to
// the agency default when the trip record has none.
func (t Trip) SettlementCurrency() money.Currency {
	if t.Currency.IsZero() {
		return money.DefaultCurrency
	}
	return t.Currency
}
