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

// SummarizeActivities totals the priced activities of a trip in the trip
// currency. An activity without a pricing row settles at zero; a foreign
// currency converts at today's rate since no snapshot exists at the pricing
// level. The total is a sum of independently rounded per-activity
// conversions.
type SummarizeActivities struct {
	activityRepo  port.ActivityRepository
	travellerRepo port.TravellerRepository
	resolver      port.RateResolver
	logger        *slog.Logger
}

// NewSummarizeActivities creates the activity cost aggregator.
func NewSummarizeActivities(
	activityRepo port.ActivityRepository,
	travellerRepo port.TravellerRepository,
	resolver port.RateResolver,
	logger *slog.Logger,
) *SummarizeActivities {
	return &SummarizeActivities{
		activityRepo:  activityRepo,
		travellerRepo: travellerRepo,
		resolver:      resolver,
		logger:        observability.WithComponent(logger, "activity-aggregator"),
	}
}

// Execute aggregates all activities of the trip. All rows are fetched up
// front; nothing queries per activity.
func (uc *SummarizeActivities) Execute(ctx context.Context, tripID uuid.UUID, tripCurrency money.Currency) (dto.ActivitiesSummary, error) {
	activities, err := uc.activityRepo.ListByTrip(ctx, tripID)
	if err != nil {
		return dto.ActivitiesSummary{}, fmt.Errorf("list activities: %w", err)
	}

	pricings, err := uc.activityRepo.ListPricingsByTrip(ctx, tripID)
	if err != nil {
		return dto.ActivitiesSummary{}, fmt.Errorf("list activity pricings: %w", err)
	}

	splits, err := uc.travellerRepo.ListSplitsByTrip(ctx, tripID)
	if err != nil {
		return dto.ActivitiesSummary{}, fmt.Errorf("list traveller splits: %w", err)
	}

	pricingByActivity := make(map[uuid.UUID]model.ActivityPricing, len(pricings))
	for _, p := range pricings {
		pricingByActivity[p.ActivityID] = p
	}

	splitTypeByActivity := make(map[uuid.UUID]string)
	for _, s := range splits {
		if _, ok := splitTypeByActivity[s.ActivityID]; !ok {
			splitTypeByActivity[s.ActivityID] = s.SplitType.String()
		}
	}

	summary := dto.ActivitiesSummary{
		PerActivity: make([]dto.ActivityCost, 0, len(activities)),
	}

	today := time.Now()
	for _, activity := range activities {
		line, err := uc.costLine(ctx, activity, pricingByActivity, tripCurrency, today)
		if err != nil {
			return dto.ActivitiesSummary{}, err
		}

		if splitType, ok := splitTypeByActivity[activity.ID]; ok {
			line.HasSplits = true
			line.SplitType = splitType
		}

		summary.TotalCents += line.PriceCents
		summary.TotalInTripCurrencyCents += line.PriceInTripCurrencyCents
		summary.PerActivity = append(summary.PerActivity, line)
	}

	return summary, nil
}

// costLine converts one activity's price into the trip currency.
func (uc *SummarizeActivities) costLine(
	ctx context.Context,
	activity model.Activity,
	pricingByActivity map[uuid.UUID]model.ActivityPricing,
	tripCurrency money.Currency,
	today time.Time,
) (dto.ActivityCost, error) {
	pricing, priced := pricingByActivity[activity.ID]
	if !priced || !pricing.IsPriced() {
		// An unpriced activity is a normal, incomplete state.
		uc.logger.Warn("activity has no pricing, settling at zero",
			"activity_id", activity.ID, "activity", activity.Name)
		return dto.ActivityCost{
			ActivityID: activity.ID,
			Name:       activity.Name,
			Priced:     false,
			Currency:   tripCurrency.Code(),
			RateSource: model.RateSourceIdentity,
		}, nil
	}

	currency := pricing.Currency
	if currency.IsZero() {
		currency = tripCurrency
	}

	rate, err := uc.resolver.Rate(ctx, currency, tripCurrency, today)
	if err != nil {
		return dto.ActivityCost{}, fmt.Errorf("resolve rate for activity %s: %w", activity.ID, err)
	}

	return dto.ActivityCost{
		ActivityID:               activity.ID,
		Name:                     activity.Name,
		Priced:                   true,
		PriceCents:               pricing.PriceCents(),
		Currency:                 currency.Code(),
		PriceInTripCurrencyCents: rate.Convert(pricing.PriceCents()),
		RateSource:               rate.Source,
	}, nil
}
