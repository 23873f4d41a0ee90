package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/Systemsaholic/tailfire-sub005/internal/domain/model"
	"github.com/Systemsaholic/tailfire-sub005/internal/domain/port"
	"github.com/Systemsaholic/tailfire-sub005/internal/domain/valueobject"
	"github.com/Systemsaholic/tailfire-sub005/pkg/money"
)

// Compile-time interface check.
var _ port.ServiceFeeRepository = (*ServiceFeeRepo)(nil)

// ServiceFeeRepo reads service fees.
type ServiceFeeRepo struct {
	pool *pgxpool.Pool
}

// NewServiceFeeRepo creates a new ServiceFeeRepo.
func NewServiceFeeRepo(pool *pgxpool.Pool) *ServiceFeeRepo {
	return &ServiceFeeRepo{pool: pool}
}

// ListByTrip returns all service fees of the trip, oldest first.
func (r *ServiceFeeRepo) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]model.ServiceFee, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, trip_id, description, amount_cents, currency, status,
		       refunded_amount_cents, recipient_type,
		       exchange_rate_to_trip_currency, amount_in_trip_currency_cents,
		       created_at
		FROM service_fees
		WHERE trip_id = $1
		ORDER BY created_at
	`, tripID)
	if err != nil {
		return nil, fmt.Errorf("query service fees: %w", err)
	}
	defer rows.Close()

	var fees []model.ServiceFee
	for rows.Next() {
		fee, err := scanServiceFee(rows)
		if err != nil {
			return nil, err
		}
		fees = append(fees, fee)
	}
	return fees, rows.Err()
}

type pgxRow interface {
	Scan(dest ...any) error
}

func scanServiceFee(row pgxRow) (model.ServiceFee, error) {
	var (
		fee           model.ServiceFee
		currencyCode  string
		statusStr     string
		recipientStr  string
		snapshotRate  *decimal.Decimal
		snapshotCents *int64
		createdAt     time.Time
	)

	err := row.Scan(&fee.ID, &fee.TripID, &fee.Description, &fee.AmountCents,
		&currencyCode, &statusStr, &fee.RefundedAmountCents, &recipientStr,
		&snapshotRate, &snapshotCents, &createdAt)
	if err != nil {
		return model.ServiceFee{}, fmt.Errorf("scan service fee: %w", err)
	}

	currency, err := money.NewCurrency(currencyCode)
	if err != nil {
		return model.ServiceFee{}, fmt.Errorf("reconstruct fee currency: %w", err)
	}
	status, err := valueobject.NewFeeStatus(statusStr)
	if err != nil {
		return model.ServiceFee{}, fmt.Errorf("reconstruct fee status: %w", err)
	}
	recipient, err := valueobject.NewRecipientType(recipientStr)
	if err != nil {
		return model.ServiceFee{}, fmt.Errorf("reconstruct fee recipient: %w", err)
	}

	fee.Currency = currency
	fee.Status = status
	fee.RecipientType = recipient
	fee.ExchangeRateToTripCurrency = snapshotRate
	fee.AmountInTripCurrencyCents = snapshotCents
	fee.CreatedAt = createdAt
	return fee, nil
}
