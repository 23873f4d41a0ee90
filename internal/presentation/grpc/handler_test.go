package grpc

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Systemsaholic/tailfire-sub005/internal/application/usecase"
	"github.com/Systemsaholic/tailfire-sub005/internal/domain/model"
	"github.com/Systemsaholic/tailfire-sub005/pkg/money"
)

type stubRateRepo struct{}

func (stubRateRepo) Upsert(context.Context, model.ExchangeRate) error { return nil }
func (stubRateRepo) FindExact(context.Context, money.Currency, money.Currency, time.Time) (model.ExchangeRate, error) {
	return model.ExchangeRate{}, model.ErrRateNotCached
}
func (stubRateRepo) FindLatestOnOrBefore(context.Context, money.Currency, money.Currency, time.Time) (model.ExchangeRate, error) {
	return model.ExchangeRate{}, model.ErrRateNotCached
}

type stubCache struct {
	mu      sync.Mutex
	entries map[string]model.ResolvedRate
}

func (c *stubCache) Get(key string) (model.ResolvedRate, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	r, ok := c.entries[key]
	return r, ok
}

func (c *stubCache) Put(key string, rate model.ResolvedRate) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.entries == nil {
		c.entries = make(map[string]model.ResolvedRate)
	}
	c.entries[key] = rate
}

func (c *stubCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func newTestHandler() *Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	resolver := usecase.NewRateResolver(stubRateRepo{}, nil, &stubCache{}, nil, logger)
	return NewHandler(nil, resolver, nil, logger)
}

func TestGetTripFinancialSummaryValidation(t *testing.T) {
	h := newTestHandler()

	_, err := h.GetTripFinancialSummary(context.Background(), nil)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = h.GetTripFinancialSummary(context.Background(), &GetTripFinancialSummaryRequest{})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = h.GetTripFinancialSummary(context.Background(), &GetTripFinancialSummaryRequest{TripID: "not-a-uuid"})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestGetExchangeRateValidation(t *testing.T) {
	h := newTestHandler()

	_, err := h.GetExchangeRate(context.Background(), &GetExchangeRateRequest{FromCurrency: "dollars", ToCurrency: "CAD"})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = h.GetExchangeRate(context.Background(), &GetExchangeRateRequest{FromCurrency: "USD", ToCurrency: "CAD", Date: "01/02/2026"})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestGetExchangeRateIdentity(t *testing.T) {
	h := newTestHandler()

	resp, err := h.GetExchangeRate(context.Background(), &GetExchangeRateRequest{
		FromCurrency: "CAD", ToCurrency: "CAD", Date: "2026-08-15",
	})
	require.NoError(t, err)

	assert.Equal(t, "1", resp.Rate)
	assert.Equal(t, model.RateSourceIdentity, resp.Source)
	assert.Equal(t, "2026-08-15", resp.RateDate)
}

func TestGetExchangeRateDegradesToFallback(t *testing.T) {
	h := newTestHandler()

	resp, err := h.GetExchangeRate(context.Background(), &GetExchangeRateRequest{
		FromCurrency: "USD", ToCurrency: "CAD",
	})
	require.NoError(t, err)

	assert.Equal(t, model.RateSourceFallback, resp.Source)
	assert.Equal(t, "1.36", resp.Rate)
}

func TestConvertAmountValidation(t *testing.T) {
	h := newTestHandler()

	_, err := h.ConvertAmount(context.Background(), nil)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = h.ConvertAmount(context.Background(), &ConvertAmountRequest{FromCurrency: "usd", ToCurrency: "CAD"})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = h.ConvertAmount(context.Background(), &ConvertAmountRequest{FromCurrency: "USD", ToCurrency: "CAD", AmountCents: -1})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = h.ConvertAmount(context.Background(), &ConvertAmountRequest{FromCurrency: "USD", ToCurrency: "CAD", Date: "15-08-2026"})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestConvertAmountIdentity(t *testing.T) {
	h := newTestHandler()

	resp, err := h.ConvertAmount(context.Background(), &ConvertAmountRequest{
		FromCurrency: "EUR", ToCurrency: "EUR", AmountCents: 12345, Date: "2026-08-15",
	})
	require.NoError(t, err)

	assert.EqualValues(t, 12345, resp.ConvertedAmountCents)
	assert.Equal(t, model.RateSourceIdentity, resp.Source)
}

func TestConvertAmountUsesResolvedRate(t *testing.T) {
	h := newTestHandler()

	resp, err := h.ConvertAmount(context.Background(), &ConvertAmountRequest{
		FromCurrency: "USD", ToCurrency: "CAD", AmountCents: 10000,
	})
	require.NoError(t, err)

	assert.EqualValues(t, 13600, resp.ConvertedAmountCents)
	assert.Equal(t, "1.36", resp.Rate)
	assert.Equal(t, model.RateSourceFallback, resp.Source)
}
