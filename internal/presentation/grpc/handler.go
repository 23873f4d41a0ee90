package grpc

import (
	"context"
	"errors"
	"log/slog"
	"regexp"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Systemsaholic/tailfire-sub005/internal/application/dto"
	"github.com/Systemsaholic/tailfire-sub005/internal/application/usecase"
	"github.com/Systemsaholic/tailfire-sub005/internal/domain/model"
	"github.com/Systemsaholic/tailfire-sub005/pkg/money"
)

var currencyCodeRE = regexp.MustCompile(`^[A-Z]{3}$`)

// Compile-time assertion that Handler implements SettlementServiceServer.
var _ SettlementServiceServer = (*Handler)(nil)

// Handler implements the SettlementServiceServer gRPC interface.
type Handler struct {
	UnimplementedSettlementServiceServer
	summary  *usecase.GetTripFinancialSummary
	resolver *usecase.RateResolver
	refresh  *usecase.RefreshRates
	logger   *slog.Logger
}

// NewHandler creates a new gRPC Handler.
func NewHandler(
	summary *usecase.GetTripFinancialSummary,
	resolver *usecase.RateResolver,
	refresh *usecase.RefreshRates,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		summary:  summary,
		resolver: resolver,
		refresh:  refresh,
		logger:   logger,
	}
}

// Proto-aligned request/response message types.

// GetTripFinancialSummaryRequest represents the proto GetTripFinancialSummaryRequest message.
type GetTripFinancialSummaryRequest struct {
	TripID string `json:"trip_id"`
}

// ActivityCostMsg represents the proto ActivityCost message.
type ActivityCostMsg struct {
	ActivityID               string `json:"activity_id"`
	Name                     string `json:"name"`
	Priced                   bool   `json:"priced"`
	PriceCents               int64  `json:"price_cents"`
	Currency                 string `json:"currency"`
	PriceInTripCurrencyCents int64  `json:"price_in_trip_currency_cents"`
	RateSource               string `json:"rate_source"`
	HasSplits                bool   `json:"has_splits"`
	SplitType                string `json:"split_type"`
}

// ActivitiesSummaryMsg represents the proto ActivitiesSummary message.
type ActivitiesSummaryMsg struct {
	TotalCents               int64              `json:"total_cents"`
	TotalInTripCurrencyCents int64              `json:"total_in_trip_currency_cents"`
	PerActivity              []*ActivityCostMsg `json:"per_activity"`
}

// FeesSummaryMsg represents the proto FeesSummary message.
type FeesSummaryMsg struct {
	TotalCents               int64            `json:"total_cents"`
	TotalInTripCurrencyCents int64            `json:"total_in_trip_currency_cents"`
	PaidCents                int64            `json:"paid_cents"`
	PendingCents             int64            `json:"pending_cents"`
	RefundedCents            int64            `json:"refunded_cents"`
	ByStatus                 map[string]int64 `json:"by_status"`
}

// TravellerBreakdownMsg represents the proto TravellerBreakdown message.
type TravellerBreakdownMsg struct {
	TravellerID        string `json:"traveller_id"`
	Name               string `json:"name"`
	IsPrimary          bool   `json:"is_primary"`
	ActivityCostsCents int64  `json:"activity_costs_cents"`
	ServiceFeesCents   int64  `json:"service_fees_cents"`
	TotalCents         int64  `json:"total_cents"`
}

// CommissionSummaryMsg represents the proto CommissionSummary message.
type CommissionSummaryMsg struct {
	ExpectedTotalCents int64 `json:"expected_total_cents"`
	ReceivedTotalCents int64 `json:"received_total_cents"`
	PendingTotalCents  int64 `json:"pending_total_cents"`
}

// GrandTotalMsg represents the proto GrandTotal message.
type GrandTotalMsg struct {
	TotalCostCents      int64 `json:"total_cost_cents"`
	TotalCollectedCents int64 `json:"total_collected_cents"`
	OutstandingCents    int64 `json:"outstanding_cents"`
}

// GetTripFinancialSummaryResponse represents the proto GetTripFinancialSummaryResponse message.
type GetTripFinancialSummaryResponse struct {
	TripID       string                   `json:"trip_id"`
	TripName     string                   `json:"trip_name"`
	TripCurrency string                   `json:"trip_currency"`
	Activities   *ActivitiesSummaryMsg    `json:"activities"`
	Fees         *FeesSummaryMsg          `json:"fees"`
	Travellers   []*TravellerBreakdownMsg `json:"travellers"`
	Commissions  *CommissionSummaryMsg    `json:"commissions"`
	GrandTotal   *GrandTotalMsg           `json:"grand_total"`
	GeneratedAt  string                   `json:"generated_at"`
}

// GetExchangeRateRequest represents the proto GetExchangeRateRequest message.
type GetExchangeRateRequest struct {
	FromCurrency string `json:"from_currency"`
	ToCurrency   string `json:"to_currency"`
	Date         string `json:"date"`
}

// GetExchangeRateResponse represents the proto GetExchangeRateResponse message.
type GetExchangeRateResponse struct {
	FromCurrency string `json:"from_currency"`
	ToCurrency   string `json:"to_currency"`
	Rate         string `json:"rate"`
	RateDate     string `json:"rate_date"`
	Source       string `json:"source"`
}

// ConvertAmountRequest represents the proto ConvertAmountRequest message.
type ConvertAmountRequest struct {
	FromCurrency string `json:"from_currency"`
	ToCurrency   string `json:"to_currency"`
	AmountCents  int64  `json:"amount_cents"`
	Date         string `json:"date"`
}

// ConvertAmountResponse represents the proto ConvertAmountResponse message.
type ConvertAmountResponse struct {
	FromCurrency         string `json:"from_currency"`
	ToCurrency           string `json:"to_currency"`
	AmountCents          int64  `json:"amount_cents"`
	ConvertedAmountCents int64  `json:"converted_amount_cents"`
	Rate                 string `json:"rate"`
	RateDate             string `json:"rate_date"`
	Source               string `json:"source"`
}

// RefreshExchangeRatesRequest represents the proto RefreshExchangeRatesRequest message.
type RefreshExchangeRatesRequest struct{}

// RefreshExchangeRatesResponse represents the proto RefreshExchangeRatesResponse message.
type RefreshExchangeRatesResponse struct {
	Completed bool `json:"completed"`
}

// GetTripFinancialSummary composes and returns the settlement summary for a trip.
func (h *Handler) GetTripFinancialSummary(ctx context.Context, req *GetTripFinancialSummaryRequest) (*GetTripFinancialSummaryResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	if req.TripID == "" {
		return nil, status.Error(codes.InvalidArgument, "trip_id is required")
	}

	tripID, err := uuid.Parse(req.TripID)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, "trip_id must be a UUID")
	}

	summary, err := h.summary.Execute(ctx, tripID)
	if err != nil {
		if errors.Is(err, model.ErrTripNotFound) {
			return nil, status.Errorf(codes.NotFound, "trip %s not found", tripID)
		}
		h.logger.Error("GetTripFinancialSummary failed", "error", err, "trip_id", tripID)
		return nil, status.Error(codes.Internal, "internal error")
	}

	return toSummaryResponse(summary), nil
}

// GetExchangeRate resolves the conversion rate for a currency pair.
func (h *Handler) GetExchangeRate(ctx context.Context, req *GetExchangeRateRequest) (*GetExchangeRateResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	if !currencyCodeRE.MatchString(req.FromCurrency) {
		return nil, status.Error(codes.InvalidArgument, "from_currency must be a 3-letter uppercase ISO code")
	}
	if !currencyCodeRE.MatchString(req.ToCurrency) {
		return nil, status.Error(codes.InvalidArgument, "to_currency must be a 3-letter uppercase ISO code")
	}

	date := time.Now()
	if req.Date != "" {
		parsed, perr := time.Parse("2006-01-02", req.Date)
		if perr != nil {
			return nil, status.Error(codes.InvalidArgument, "date must be YYYY-MM-DD")
		}
		date = parsed
	}

	from, _ := money.NewCurrency(req.FromCurrency)
	to, _ := money.NewCurrency(req.ToCurrency)

	rate, err := h.resolver.Rate(ctx, from, to, date)
	if err != nil {
		h.logger.Error("GetExchangeRate failed", "error", err, "pair", req.FromCurrency+"/"+req.ToCurrency)
		return nil, status.Error(codes.Internal, "internal error")
	}

	return &GetExchangeRateResponse{
		FromCurrency: req.FromCurrency,
		ToCurrency:   req.ToCurrency,
		Rate:         rate.Rate.String(),
		RateDate:     rate.RateDate.Format("2006-01-02"),
		Source:       rate.Source,
	}, nil
}

// ConvertAmount converts an integer cent amount between currencies using the
// resolved rate for the requested date.
func (h *Handler) ConvertAmount(ctx context.Context, req *ConvertAmountRequest) (*ConvertAmountResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}
	if !currencyCodeRE.MatchString(req.FromCurrency) {
		return nil, status.Error(codes.InvalidArgument, "from_currency must be a 3-letter uppercase ISO code")
	}
	if !currencyCodeRE.MatchString(req.ToCurrency) {
		return nil, status.Error(codes.InvalidArgument, "to_currency must be a 3-letter uppercase ISO code")
	}
	if req.AmountCents < 0 {
		return nil, status.Error(codes.InvalidArgument, "amount_cents must not be negative")
	}

	date := time.Now()
	if req.Date != "" {
		parsed, perr := time.Parse("2006-01-02", req.Date)
		if perr != nil {
			return nil, status.Error(codes.InvalidArgument, "date must be YYYY-MM-DD")
		}
		date = parsed
	}

	from, _ := money.NewCurrency(req.FromCurrency)
	to, _ := money.NewCurrency(req.ToCurrency)

	rate, err := h.resolver.Rate(ctx, from, to, date)
	if err != nil {
		h.logger.Error("ConvertAmount failed", "error", err, "pair", req.FromCurrency+"/"+req.ToCurrency)
		return nil, status.Error(codes.Internal, "internal error")
	}

	return &ConvertAmountResponse{
		FromCurrency:         req.FromCurrency,
		ToCurrency:           req.ToCurrency,
		AmountCents:          req.AmountCents,
		ConvertedAmountCents: money.ConvertCents(req.AmountCents, rate.Rate),
		Rate:                 rate.Rate.String(),
		RateDate:             rate.RateDate.Format("2006-01-02"),
		Source:               rate.Source,
	}, nil
}

// RefreshExchangeRates triggers an out-of-schedule rate refresh.
func (h *Handler) RefreshExchangeRates(ctx context.Context, req *RefreshExchangeRatesRequest) (*RefreshExchangeRatesResponse, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	if err := h.refresh.Execute(ctx); err != nil {
		h.logger.Error("RefreshExchangeRates failed", "error", err)
		return nil, status.Error(codes.Unavailable, "rate provider unavailable")
	}
	return &RefreshExchangeRatesResponse{Completed: true}, nil
}

func toSummaryResponse(summary dto.TripFinancialSummary) *GetTripFinancialSummaryResponse {
	activities := &ActivitiesSummaryMsg{
		TotalCents:               summary.Activities.TotalCents,
		TotalInTripCurrencyCents: summary.Activities.TotalInTripCurrencyCents,
		PerActivity:              make([]*ActivityCostMsg, 0, len(summary.Activities.PerActivity)),
	}
	for _, line := range summary.Activities.PerActivity {
		activities.PerActivity = append(activities.PerActivity, &ActivityCostMsg{
			ActivityID:               line.ActivityID.String(),
			Name:                     line.Name,
			Priced:                   line.Priced,
			PriceCents:               line.PriceCents,
			Currency:                 line.Currency,
			PriceInTripCurrencyCents: line.PriceInTripCurrencyCents,
			RateSource:               line.RateSource,
			HasSplits:                line.HasSplits,
			SplitType:                line.SplitType,
		})
	}

	travellers := make([]*TravellerBreakdownMsg, 0, len(summary.Travellers))
	for _, t := range summary.Travellers {
		travellers = append(travellers, &TravellerBreakdownMsg{
			TravellerID:        t.TravellerID.String(),
			Name:               t.Name,
			IsPrimary:          t.IsPrimary,
			ActivityCostsCents: t.ActivityCostsCents,
			ServiceFeesCents:   t.ServiceFeesCents,
			TotalCents:         t.TotalCents,
		})
	}

	return &GetTripFinancialSummaryResponse{
		TripID:       summary.TripID.String(),
		TripName:     summary.TripName,
		TripCurrency: summary.TripCurrency,
		Activities:   activities,
		Fees: &FeesSummaryMsg{
			TotalCents:               summary.Fees.TotalCents,
			TotalInTripCurrencyCents: summary.Fees.TotalInTripCurrencyCents,
			PaidCents:                summary.Fees.PaidCents,
			PendingCents:             summary.Fees.PendingCents,
			RefundedCents:            summary.Fees.RefundedCents,
			ByStatus:                 summary.Fees.ByStatus,
		},
		Travellers: travellers,
		Commissions: &CommissionSummaryMsg{
			ExpectedTotalCents: summary.Commissions.ExpectedTotalCents,
			ReceivedTotalCents: summary.Commissions.ReceivedTotalCents,
			PendingTotalCents:  summary.Commissions.PendingTotalCents,
		},
		GrandTotal: &GrandTotalMsg{
			TotalCostCents:      summary.GrandTotal.TotalCostCents,
			TotalCollectedCents: summary.GrandTotal.TotalCollectedCents,
			OutstandingCents:    summary.GrandTotal.OutstandingCents,
		},
		GeneratedAt: summary.GeneratedAt.Format(time.RFC3339),
	}
}
