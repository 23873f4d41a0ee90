package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Systemsaholic/tailfire-sub005/internal/domain/model"
	"github.com/Systemsaholic/tailfire-sub005/internal/domain/port"
	"github.com/Systemsaholic/tailfire-sub005/pkg/money"
)

// Compile-time interface check.
var _ port.ActivityRepository = (*ActivityRepo)(nil)

// ActivityRepo reads activities and their pricing. Every method fetches all
// rows for a trip in one query.
type ActivityRepo struct {
	pool *pgxpool.Pool
}

// NewActivityRepo creates a new ActivityRepo.
func NewActivityRepo(pool *pgxpool.Pool) *ActivityRepo {
	return &ActivityRepo{pool: pool}
}

// ListByTrip returns all activities of the trip in itinerary order.
func (r *ActivityRepo) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]model.Activity, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, trip_id, name, starts_at, created_at
		FROM activities
		WHERE trip_id = $1
		ORDER BY starts_at, created_at
	`, tripID)
	if err != nil {
		return nil, fmt.Errorf("query activities: %w", err)
	}
	defer rows.Close()

	var activities []model.Activity
	for rows.Next() {
		var a model.Activity
		if err := rows.Scan(&a.ID, &a.TripID, &a.Name, &a.StartsAt, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		activities = append(activities, a)
	}
	return activities, rows.Err()
}

// ListPricingsByTrip returns the pricing rows for every activity of the trip.
func (r *ActivityRepo) ListPricingsByTrip(ctx context.Context, tripID uuid.UUID) ([]model.ActivityPricing, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT p.id, p.activity_id, p.total_price_cents, p.currency, p.commission_total_cents
		FROM activity_pricings p
		JOIN activities a ON a.id = p.activity_id
		WHERE a.trip_id = $1
	`, tripID)
	if err != nil {
		return nil, fmt.Errorf("query activity pricings: %w", err)
	}
	defer rows.Close()

	var pricings []model.ActivityPricing
	for rows.Next() {
		var (
			p            model.ActivityPricing
			currencyCode *string
		)
		if err := rows.Scan(&p.ID, &p.ActivityID, &p.TotalPriceCents, &currencyCode, &p.CommissionTotalCents); err != nil {
			return nil, fmt.Errorf("scan activity pricing: %w", err)
		}
		if currencyCode != nil {
			currency, cerr := money.NewCurrency(*currencyCode)
			if cerr != nil {
				return nil, fmt.Errorf("reconstruct pricing currency: %w", cerr)
			}
			p.Currency = currency
		}
		pricings = append(pricings, p)
	}
	return pricings, rows.Err()
}
