package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/Systemsaholic/tailfire-sub005/internal/application/dto"
	"github.com/Systemsaholic/tailfire-sub005/internal/domain/port"
	"github.com/Systemsaholic/tailfire-sub005/pkg/observability"
)

// SummarizeCommissions compares the commission the agency expects from
// suppliers against what it has actually received.
//
// Expected comes from the pricing rows (integer cents). Received comes from
// commission receipts, already normalized to cents by the repository at scan
// time. Pending may be negative when commission was over-received.
type SummarizeCommissions struct {
	activityRepo   port.ActivityRepository
	commissionRepo port.CommissionRepository
	logger         *slog.Logger
}

// NewSummarizeCommissions creates the commission tracker.
func NewSummarizeCommissions(
	activityRepo port.ActivityRepository,
	commissionRepo port.CommissionRepository,
	logger *slog.Logger,
) *SummarizeCommissions {
	return &SummarizeCommissions{
		activityRepo:   activityRepo,
		commissionRepo: commissionRepo,
		logger:         observability.WithComponent(logger, "commission-tracker"),
	}
}

// Execute totals expected and received commission for the trip. Commission is
// tracked in the supplier's billed amounts; no currency conversion applies.
func (uc *SummarizeCommissions) Execute(ctx context.Context, tripID uuid.UUID) (dto.CommissionSummary, error) {
	pricings, err := uc.activityRepo.ListPricingsByTrip(ctx, tripID)
	if err != nil {
		return dto.CommissionSummary{}, fmt.Errorf("list activity pricings: %w", err)
	}

	receipts, err := uc.commissionRepo.ListReceiptsByTrip(ctx, tripID)
	if err != nil {
		return dto.CommissionSummary{}, fmt.Errorf("list commission receipts: %w", err)
	}

	var summary dto.CommissionSummary
	for _, pricing := range pricings {
		summary.ExpectedTotalCents += pricing.ExpectedCommissionCents()
	}

	for _, receipt := range receipts {
		if receipt.Status.IsReceived() {
			summary.ReceivedTotalCents += receipt.AmountCents
		}
	}

	summary.PendingTotalCents = summary.ExpectedTotalCents - summary.ReceivedTotalCents
	return summary, nil
}
