package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Systemsaholic/tailfire-sub005/internal/domain/model"
	"github.com/Systemsaholic/tailfire-sub005/internal/domain/port"
	"github.com/Systemsaholic/tailfire-sub005/pkg/money"
)

// Compile-time interface check.
var _ port.TripRepository = (*TripRepo)(nil)

// TripRepo reads trip records.
type TripRepo struct {
	pool *pgxpool.Pool
}

// NewTripRepo creates a new TripRepo.
func NewTripRepo(pool *pgxpool.Pool) *TripRepo {
	return &TripRepo{pool: pool}
}

// FindByID returns the trip, or model.ErrTripNotFound.
func (r *TripRepo) FindByID(ctx context.Context, id uuid.UUID) (model.Trip, error) {
	var (
		trip         model.Trip
		currencyCode *string
		status       string
		createdAt    time.Time
	)

	err := r.pool.QueryRow(ctx, `
		SELECT id, name, currency, status, created_at
		FROM trips
		WHERE id = $1
	`, id).Scan(&trip.ID, &trip.Name, &currencyCode, &status, &createdAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Trip{}, model.ErrTripNotFound
	}
	if err != nil {
		return model.Trip{}, fmt.Errorf("query trip: %w", err)
	}

	// A NULL currency is legitimate; SettlementCurrency applies the default.
	if currencyCode != nil {
		currency, cerr := money.NewCurrency(*currencyCode)
		if cerr != nil {
			return model.Trip{}, fmt.Errorf("reconstruct trip currency: %w", cerr)
		}
		trip.Currency = currency
	}

	trip.Status = model.TripStatus(status)
	trip.CreatedAt = createdAt
	return trip, nil
}
