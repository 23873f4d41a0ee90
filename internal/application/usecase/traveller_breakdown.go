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
	"github.com/Systemsaholic/tailfire-sub005/pkg/money"
	"github.com/Systemsaholic/tailfire-sub005/pkg/observability"
)

// TravellerBreakdown attributes activity costs and primary-traveller fees to
// individual travellers.
//
// Attribution rule: each traveller accrues their own activity splits; the
// primary traveller additionally accrues every non-cancelled fee addressed to
// the primary traveller. Fees addressed to all travellers are NOT distributed
// across non-primary travellers; whether that is an intentional limitation or
// an unfinished feature of the original workflow is unresolved, so the
// behavior is preserved as-is (see DESIGN.md).
type TravellerBreakdown struct {
	travellerRepo port.TravellerRepository
	feeRepo       port.ServiceFeeRepository
	resolver      port.RateResolver
	logger        *slog.Logger
}

// NewTravellerBreakdown creates the per-traveller allocator.
func NewTravellerBreakdown(
	travellerRepo port.TravellerRepository,
	feeRepo port.ServiceFeeRepository,
	resolver port.RateResolver,
	logger *slog.Logger,
) *TravellerBreakdown {
	return &TravellerBreakdown{
		travellerRepo: travellerRepo,
		feeRepo:       feeRepo,
		resolver:      resolver,
		logger:        observability.WithComponent(logger, "traveller-allocator"),
	}
}

// Execute builds one breakdown entry per trip traveller. All splits and fees
// are fetched in bulk up front.
func (uc *TravellerBreakdown) Execute(ctx context.Context, tripID uuid.UUID, tripCurrency money.Currency) ([]dto.TravellerBreakdown, error) {
	travellers, err := uc.travellerRepo.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("list travellers: %w", err)
	}

	splits, err := uc.travellerRepo.ListSplitsByTrip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("list traveller splits: %w", err)
	}

	fees, err := uc.feeRepo.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("list service fees: %w", err)
	}

	splitsByTraveller := make(map[uuid.UUID][]model.TravellerSplit)
	for _, s := range splits {
		splitsByTraveller[s.TravellerID] = append(splitsByTraveller[s.TravellerID], s)
	}

	primaryFeesCents, err := uc.primaryTravellerFees(ctx, fees, tripCurrency)
	if err != nil {
		return nil, err
	}

	breakdown := make([]dto.TravellerBreakdown, 0, len(travellers))
	for _, traveller := range travellers {
		activityCents, err := uc.splitTotal(ctx, splitsByTraveller[traveller.ID], tripCurrency)
		if err != nil {
			return nil, fmt.Errorf("traveller %s: %w", traveller.ID, err)
		}

		entry := dto.TravellerBreakdown{
			TravellerID:        traveller.ID,
			Name:               traveller.FullName(),
			IsPrimary:          traveller.IsPrimary,
			ActivityCostsCents: activityCents,
		}
		if traveller.IsPrimary {
			entry.ServiceFeesCents = primaryFeesCents
		}
		entry.TotalCents = entry.ActivityCostsCents + entry.ServiceFeesCents

		breakdown = append(breakdown, entry)
	}

	return breakdown, nil
}

// splitTotal converts and sums one traveller's split rows. Splits carry no
// precomputed trip-currency amount, so the preference order is snapshot rate
// then live rate.
func (uc *TravellerBreakdown) splitTotal(ctx context.Context, splits []model.TravellerSplit, tripCurrency money.Currency) (int64, error) {
	var total int64
	for _, split := range splits {
		if split.HasSnapshotRate() {
			total += money.ConvertCents(split.AmountCents, *split.ExchangeRateToTripCurrency)
			continue
		}

		if split.Currency != tripCurrency {
			uc.logger.Warn("traveller split missing exchange-rate snapshot, converting at live rate",
				"split_id", split.ID, "split_currency", split.Currency.Code(), "trip_currency", tripCurrency.Code())
		}

		rate, err := uc.resolver.Rate(ctx, split.Currency, tripCurrency, time.Now())
		if err != nil {
			return 0, fmt.Errorf("resolve rate for split %s: %w", split.ID, err)
		}
		total += rate.Convert(split.AmountCents)
	}
	return total, nil
}

// primaryTravellerFees sums the non-cancelled fees addressed to the primary
// traveller, in trip currency, using the fee conversion preference order.
func (uc *TravellerBreakdown) primaryTravellerFees(ctx context.Context, fees []model.ServiceFee, tripCurrency money.Currency) (int64, error) {
	var total int64
	for _, fee := range fees {
		if fee.Status.IsCancelled() || !fee.RecipientType.IsPrimaryTraveller() {
			continue
		}

		switch {
		case fee.HasSnapshotAmount():
			total += *fee.AmountInTripCurrencyCents
		case fee.HasSnapshotRate():
			total += money.ConvertCents(fee.AmountCents, *fee.ExchangeRateToTripCurrency)
		default:
			rate, err := uc.resolver.Rate(ctx, fee.Currency, tripCurrency, time.Now())
			if err != nil {
				return 0, fmt.Errorf("resolve rate for fee %s: %w", fee.ID, err)
			}
			total += rate.Convert(fee.AmountCents)
		}
	}
	return total, nil
}
