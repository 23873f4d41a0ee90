package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Systemsaholic/tailfire-sub005/internal/domain/valueobject"
	"github.com/Systemsaholic/tailfire-sub005/pkg/money"
)

// CommissionReceipt records an actual commission receipt against a pricing
// row, as opposed to the expected commission carried on the pricing itself.
//
// AmountCents is integer cents like every other money field. The legacy
// storage column is decimal dollars; the repository converts it exactly once
// at scan time via money.CentsFromDecimalDollars.
type CommissionReceipt struct {
	ID        uuid.UUID
	PricingID uuid.UUID

	AmountCents int64
	Status      valueobject.CommissionStatus
}

// NewCommissionReceiptFromDollars builds a receipt from the legacy
// decimal-dollar representation. This is the only place the dollar/cent unit
// mismatch of the source data is bridged.
func NewCommissionReceiptFromDollars(id, pricingID uuid.UUID, dollars decimal.Decimal, status valueobject.CommissionStatus) CommissionReceipt {
	return CommissionReceipt{
		ID:          id,
		PricingID:   pricingID,
		AmountCents: money.CentsFromDecimalDollars(dollars),
		Status:      status,
	}
}
