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
)

// Compile-time interface check.
var _ port.CommissionRepository = (*CommissionRepo)(nil)

// CommissionRepo reads commission receipts. The legacy amount column is
// decimal dollars; scanning converts to integer cents exactly once, here.
type CommissionRepo struct {
	pool *pgxpool.Pool
}

// NewCommissionRepo creates a new CommissionRepo.
func NewCommissionRepo(pool *pgxpool.Pool) *CommissionRepo {
	return &CommissionRepo{pool: pool}
}

// ListReceiptsByTrip returns the receipts recorded against any pricing row of
// the trip's activities.
func (r *CommissionRepo) ListReceiptsByTrip(ctx context.Context, tripID uuid.UUID) ([]model.CommissionReceipt, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT c.id, c.pricing_id, c.amount, c.status
		FROM commission_tracking c
		JOIN activity_pricings p ON p.id = c.pricing_id
		JOIN activities a ON a.id = p.activity_id
		WHERE a.trip_id = $1
	`, tripID)
	if err != nil {
		return nil, fmt.Errorf("query commission receipts: %w", err)
	}
	defer rows.Close()

	var receipts []model.CommissionReceipt
	for rows.Next() {
		var (
			id        uuid.UUID
			pricingID uuid.UUID
			dollars   decimal.Decimal
			statusStr string
		)
		if err := rows.Scan(&id, &pricingID, &dollars, &statusStr); err != nil {
			return nil, fmt.Errorf("scan commission receipt: %w", err)
		}

		status, serr := valueobject.NewCommissionStatus(statusStr)
		if serr != nil {
			return nil, fmt.Errorf("reconstruct commission status: %w", serr)
		}

		receipts = append(receipts, model.NewCommissionReceiptFromDollars(id, pricingID, dollars, status))
	}
	return receipts, rows.Err()
}
