package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/Systemsaholic/tailfire-sub005/internal/application/dto"
	"github.com/Systemsaholic/tailfire-sub005/internal/domain/port"
	"github.com/Systemsaholic/tailfire-sub005/pkg/observability"
)

// GetTripFinancialSummary composes the trip-level settlement document from
// the four aggregation components.
//
// A missing trip is the only hard failure; everything downstream degrades
// with logged warnings so that a summary always renders. The four
// aggregations share no mutable state and run concurrently.
type GetTripFinancialSummary struct {
	tripRepo    port.TripRepository
	activities  *SummarizeActivities
	fees        *SummarizeFees
	travellers  *TravellerBreakdown
	commissions *SummarizeCommissions
	metrics     *observability.SettlementMetrics
	logger      *slog.Logger
}

// NewGetTripFinancialSummary creates the settlement composer. metrics may be nil.
func NewGetTripFinancialSummary(
	tripRepo port.TripRepository,
	activities *SummarizeActivities,
	fees *SummarizeFees,
	travellers *TravellerBreakdown,
	commissions *SummarizeCommissions,
	metrics *observability.SettlementMetrics,
	logger *slog.Logger,
) *GetTripFinancialSummary {
	return &GetTripFinancialSummary{
		tripRepo:    tripRepo,
		activities:  activities,
		fees:        fees,
		travellers:  travellers,
		commissions: commissions,
		metrics:     metrics,
		logger:      observability.WithComponent(logger, "settlement-engine"),
	}
}

// Execute builds the financial summary for a trip. Returns
// model.ErrTripNotFound when the trip does not exist.
func (uc *GetTripFinancialSummary) Execute(ctx context.Context, tripID uuid.UUID) (dto.TripFinancialSummary, error) {
	started := time.Now()

	trip, err := uc.tripRepo.FindByID(ctx, tripID)
	if err != nil {
		return dto.TripFinancialSummary{}, fmt.Errorf("find trip %s: %w", tripID, err)
	}

	tripCurrency := trip.SettlementCurrency()

	summary := dto.TripFinancialSummary{
		TripID:       trip.ID,
		TripName:     trip.Name,
		TripCurrency: tripCurrency.Code(),
	}

	// The four aggregations are order-insensitive: none depends on another's
	// output, and they share only read access to the rate cache.
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		summary.Activities, err = uc.activities.Execute(gctx, trip.ID, tripCurrency)
		return err
	})
	g.Go(func() error {
		var err error
		summary.Fees, err = uc.fees.Execute(gctx, trip.ID, tripCurrency)
		return err
	})
	g.Go(func() error {
		var err error
		summary.Travellers, err = uc.travellers.Execute(gctx, trip.ID, tripCurrency)
		return err
	})
	g.Go(func() error {
		var err error
		summary.Commissions, err = uc.commissions.Execute(gctx, trip.ID)
		return err
	})

	if err := g.Wait(); err != nil {
		return dto.TripFinancialSummary{}, fmt.Errorf("summarize trip %s: %w", tripID, err)
	}

	summary.GrandTotal = dto.GrandTotal{
		TotalCostCents:      summary.Activities.TotalInTripCurrencyCents + summary.Fees.TotalInTripCurrencyCents,
		TotalCollectedCents: summary.Fees.PaidCents,
		OutstandingCents:    summary.Fees.PendingCents,
	}
	summary.GeneratedAt = time.Now().UTC()

	if uc.metrics != nil {
		uc.metrics.SummariesBuilt.Add(ctx, 1)
		uc.metrics.SummaryDuration.Record(ctx, time.Since(started).Seconds())
	}

	uc.logger.Debug("composed trip financial summary",
		"trip_id", trip.ID,
		"total_cost_cents", summary.GrandTotal.TotalCostCents,
		"collected_cents", summary.GrandTotal.TotalCollectedCents,
		"outstanding_cents", summary.GrandTotal.OutstandingCents)

	return summary, nil
}
