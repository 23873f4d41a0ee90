package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/Systemsaholic/tailfire-sub005/internal/domain/model"
	"github.com/Systemsaholic/tailfire-sub005/internal/domain/port"
	"github.com/Systemsaholic/tailfire-sub005/internal/domain/valueobject"
	"github.com/Systemsaholic/tailfire-sub005/pkg/money"
)

// Compile-time interface check.
var _ port.TravellerRepository = (*TravellerRepo)(nil)

// TravellerRepo reads trip travellers and their activity splits.
type TravellerRepo struct {
	pool *pgxpool.Pool
}

// NewTravellerRepo creates a new TravellerRepo.
func NewTravellerRepo(pool *pgxpool.Pool) *TravellerRepo {
	return &TravellerRepo{pool: pool}
}

// ListByTrip returns the trip's travellers, primary first.
func (r *TravellerRepo) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]model.TripTraveller, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, trip_id, first_name, last_name, is_primary
		FROM trip_travellers
		WHERE trip_id = $1
		ORDER BY is_primary DESC, last_name, first_name
	`, tripID)
	if err != nil {
		return nil, fmt.Errorf("query trip travellers: %w", err)
	}
	defer rows.Close()

	var travellers []model.TripTraveller
	for rows.Next() {
		var t model.TripTraveller
		if err := rows.Scan(&t.ID, &t.TripID, &t.FirstName, &t.LastName, &t.IsPrimary); err != nil {
			return nil, fmt.Errorf("scan trip traveller: %w", err)
		}
		travellers = append(travellers, t)
	}
	return travellers, rows.Err()
}

// ListSplitsByTrip returns every traveller split across the trip's activities.
func (r *TravellerRepo) ListSplitsByTrip(ctx context.Context, tripID uuid.UUID) ([]model.TravellerSplit, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT s.id, s.activity_id, s.traveller_id, s.amount_cents, s.currency,
		       s.split_type, s.exchange_rate_to_trip_currency
		FROM activity_traveller_splits s
		JOIN activities a ON a.id = s.activity_id
		WHERE a.trip_id = $1
	`, tripID)
	if err != nil {
		return nil, fmt.Errorf("query traveller splits: %w", err)
	}
	defer rows.Close()

	var splits []model.TravellerSplit
	for rows.Next() {
		var (
			s            model.TravellerSplit
			currencyCode string
			splitTypeStr string
			snapshotRate *decimal.Decimal
		)
		if err := rows.Scan(&s.ID, &s.ActivityID, &s.TravellerID, &s.AmountCents,
			&currencyCode, &splitTypeStr, &snapshotRate); err != nil {
			return nil, fmt.Errorf("scan traveller split: %w", err)
		}

		currency, cerr := money.NewCurrency(currencyCode)
		if cerr != nil {
			return nil, fmt.Errorf("reconstruct split currency: %w", cerr)
		}
		splitType, serr := valueobject.NewSplitType(splitTypeStr)
		if serr != nil {
			return nil, fmt.Errorf("reconstruct split type: %w", serr)
		}

		s.Currency = currency
		s.SplitType = splitType
		s.ExchangeRateToTripCurrency = snapshotRate
		splits = append(splits, s)
	}
	return splits, rows.Err()
}
