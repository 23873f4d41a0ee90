package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Systemsaholic/tailfire-sub005/internal/domain/valueobject"
	"github.com/Systemsaholic/tailfire-sub005/pkg/money"
)

// ServiceFee is an agency-issued charge against a trip.
//
// The two snapshot fields capture the conversion into the trip currency at the
// moment the fee settled. Once written they are the authoritative historical
// record: summaries must prefer them over any live rate, and they are never
// recomputed.
type ServiceFee struct {
	ID     uuid.UUID
	TripID uuid.UUID

	Description         string
	AmountCents         int64
	Currency            money.Currency
	Status              valueobject.FeeStatus
	RefundedAmountCents int64
	RecipientType       valueobject.RecipientType

	// ExchangeRateToTripCurrency is the snapshot rate captured when the fee
	// settled; nil when no snapshot was taken.
	ExchangeRateToTripCurrency *decimal.Decimal

	// AmountInTripCurrencyCents is the precomputed settled amount in trip
	// currency; nil when no snapshot was taken.
	AmountInTripCurrencyCents *int64

	CreatedAt time.Time
}

// NewServiceFee creates a draft fee after validating its amount and currency.
func NewServiceFee(tripID uuid.UUID, description string, amountCents int64, currency money.Currency, recipient valueobject.RecipientType) (ServiceFee, error) {
	if tripID == uuid.Nil {
		return ServiceFee{}, fmt.Errorf("trip ID is required")
	}
	if amountCents < 0 {
		return ServiceFee{}, fmt.Errorf("fee amount: %w", ErrNegativeAmount)
	}
	if currency.IsZero() {
		return ServiceFee{}, fmt.Errorf("fee currency: %w", ErrUnsupportedCurrency)
	}
	if recipient.IsZero() {
		return ServiceFee{}, fmt.Errorf("recipient type is required")
	}

	return ServiceFee{
		ID:            uuid.New(),
		TripID:        tripID,
		Description:   description,
		AmountCents:   amountCents,
		Currency:      currency,
		Status:        valueobject.FeeStatusDraft,
		RecipientType: recipient,
		CreatedAt:     time.Now().UTC(),
	}, nil
}

// TransitionTo moves the fee to the next lifecycle status, enforcing the
// transition table.
func (f *ServiceFee) TransitionTo(next valueobject.FeeStatus) error {
	if !f.Status.CanTransitionTo(next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, f.Status, next)
	}
	f.Status = next
	return nil
}

// RecordRefund registers a refunded portion of the fee. The fee must already
// be in a refund-bearing status.
func (f *ServiceFee) RecordRefund(amountCents int64) error {
	if amountCents < 0 {
		return fmt.Errorf("refund amount: %w", ErrNegativeAmount)
	}
	if !f.Status.HasRefund() {
		return fmt.Errorf("%w: cannot record refund in status %s", ErrInvalidTransition, f.Status)
	}
	if f.RefundedAmountCents+amountCents > f.AmountCents {
		return fmt.Errorf("refund %d exceeds fee amount %d", f.RefundedAmountCents+amountCents, f.AmountCents)
	}
	f.RefundedAmountCents += amountCents
	return nil
}

// SnapshotTripCurrency records the permanent point-in-time conversion of the
// fee into the trip currency. It fails once a snapshot exists: snapshots are
// write-once so the historical record survives later rate drift.
func (f *ServiceFee) SnapshotTripCurrency(rate decimal.Decimal, amountInTripCurrencyCents int64) error {
	if f.ExchangeRateToTripCurrency != nil || f.AmountInTripCurrencyCents != nil {
		return ErrSnapshotAlreadySet
	}
	if !rate.IsPositive() {
		return fmt.Errorf("snapshot rate must be positive, got %s", rate)
	}
	f.ExchangeRateToTripCurrency = &rate
	f.AmountInTripCurrencyCents = &amountInTripCurrencyCents
	return nil
}

// HasSnapshotAmount reports whether the precomputed trip-currency amount exists.
func (f ServiceFee) HasSnapshotAmount() bool {
	return f.AmountInTripCurrencyCents != nil
}

// HasSnapshotRate reports whether a snapshot exchange rate exists.
func (f ServiceFee) HasSnapshotRate() bool {
	return f.ExchangeRateToTripCurrency != nil
}
