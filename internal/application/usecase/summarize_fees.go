package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Systemsaholic/tailfire-sub005/internal/application/dto"
	"github.com/Systemsaholic/tailfire-sub005/internal/domain/model"
	"github.com/Systemsaholic/tailfire-sub005/internal/domain/port"
	"github.com/Systemsaholic/tailfire-sub005/internal/domain/valueobject"
	"github.com/Systemsaholic/tailfire-sub005/pkg/money"
	"github.com/Systemsaholic/tailfire-sub005/pkg/observability"
)

// SummarizeFees aggregates a trip's service fees by lifecycle status, net of
// refunds, in the trip currency.
//
// Conversion preference per fee: the precomputed snapshot amount is the
// historical ground truth; the snapshot rate is next; a live rate at today's
// date is the last resort and logs a warning, since a settled fee should have
// carried a snapshot.
type SummarizeFees struct {
	feeRepo  port.ServiceFeeRepository
	resolver port.RateResolver
	logger   *slog.Logger
}

// NewSummarizeFees creates the service fee ledger.
func NewSummarizeFees(feeRepo port.ServiceFeeRepository, resolver port.RateResolver, logger *slog.Logger) *SummarizeFees {
	return &SummarizeFees{
		feeRepo:  feeRepo,
		resolver: resolver,
		logger:   observability.WithComponent(logger, "fee-ledger"),
	}
}

// Execute aggregates all service fees of the trip.
func (uc *SummarizeFees) Execute(ctx context.Context, tripID uuid.UUID, tripCurrency money.Currency) (dto.FeesSummary, error) {
	fees, err := uc.feeRepo.ListByTrip(ctx, tripID)
	if err != nil {
		return dto.FeesSummary{}, fmt.Errorf("list service fees: %w", err)
	}

	summary := dto.FeesSummary{
		ByStatus: make(map[string]int64, 6),
	}
	for _, status := range valueobject.AllFeeStatuses() {
		summary.ByStatus[status.String()] = 0
	}

	for _, fee := range fees {
		amount, refunded, err := uc.tripCurrencyAmounts(ctx, fee, tripCurrency)
		if err != nil {
			return dto.FeesSummary{}, err
		}

		summary.ByStatus[fee.Status.String()] += amount

		// Cancelled fees appear only in their own bucket.
		if fee.Status.IsCancelled() {
			continue
		}

		summary.TotalCents += fee.AmountCents
		summary.TotalInTripCurrencyCents += amount

		switch {
		case fee.Status.IsCollected():
			summary.PaidCents += amount - refunded
		case fee.Status.IsPending():
			summary.PendingCents += amount
		}
		if fee.Status.HasRefund() {
			summary.RefundedCents += refunded
		}
	}

	return summary, nil
}

// tripCurrencyAmounts converts one fee's amount and refunded amount into the
// trip currency following the three-tier preference order.
func (uc *SummarizeFees) tripCurrencyAmounts(ctx context.Context, fee model.ServiceFee, tripCurrency money.Currency) (amount, refunded int64, err error) {
	// Tier 1: the settled snapshot amount is authoritative and never
	// recomputed, whatever today's rate says.
	if fee.HasSnapshotAmount() {
		amount = *fee.AmountInTripCurrencyCents
		refunded, err = uc.convertRefund(ctx, fee, tripCurrency)
		return amount, refunded, err
	}

	// Tier 2: the snapshot rate preserves the point-in-time conversion.
	if fee.HasSnapshotRate() {
		rate := *fee.ExchangeRateToTripCurrency
		return money.ConvertCents(fee.AmountCents, rate), money.ConvertCents(fee.RefundedAmountCents, rate), nil
	}

	// Tier 3: live rate at today's date. A settled foreign-currency fee
	// reaching this tier lost its snapshot somewhere.
	if fee.Currency != tripCurrency && fee.Status.IsSettled() {
		uc.logger.Warn("settled fee missing exchange-rate snapshot, converting at live rate",
			"fee_id", fee.ID, "status", fee.Status.String(),
			"fee_currency", fee.Currency.Code(), "trip_currency", tripCurrency.Code())
	}

	rate, rateErr := uc.resolver.Rate(ctx, fee.Currency, tripCurrency, time.Now())
	if rateErr != nil {
		return 0, 0, fmt.Errorf("resolve rate for fee %s: %w", fee.ID, rateErr)
	}
	return rate.Convert(fee.AmountCents), rate.Convert(fee.RefundedAmountCents), nil
}

// convertRefund converts the refunded portion for a fee whose amount came
// from the precomputed snapshot: the snapshot rate when present, else live.
func (uc *SummarizeFees) convertRefund(ctx context.Context, fee model.ServiceFee, tripCurrency money.Currency) (int64, error) {
	if fee.RefundedAmountCents == 0 {
		return 0, nil
	}
	if fee.HasSnapshotRate() {
		return money.ConvertCents(fee.RefundedAmountCents, *fee.ExchangeRateToTripCurrency), nil
	}

	rate, err := uc.resolver.Rate(ctx, fee.Currency, tripCurrency, time.Now())
	if err != nil {
		return 0, fmt.Errorf("resolve refund rate for fee %s: %w", fee.ID, err)
	}
	return rate.Convert(fee.RefundedAmountCents), nil
}
