package usecase_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Systemsaholic/tailfire-sub005/internal/application/usecase"
	"github.com/Systemsaholic/tailfire-sub005/internal/domain/model"
	"github.com/Systemsaholic/tailfire-sub005/pkg/money"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRateResolverIdentity(t *testing.T) {
	repo := newMockRateRepo()
	provider := &mockProvider{}
	resolver := usecase.NewRateResolver(repo, provider, newMemCache(), nil, testLogger())

	rate, err := resolver.Rate(context.Background(), money.CAD, money.CAD, time.Now())
	require.NoError(t, err)

	assert.Equal(t, model.RateSourceIdentity, rate.Source)
	assert.True(t, rate.Rate.Equal(decimal.New(1, 0)))
	assert.EqualValues(t, 12345, rate.Convert(12345))

	// Identity never touches any backend.
	assert.Zero(t, repo.exactCalls)
	assert.Zero(t, provider.fetches)
}

func TestRateResolverExactCacheHit(t *testing.T) {
	repo := newMockRateRepo()
	day := model.DateOnly(time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC))
	row, err := model.NewExchangeRate(money.USD, money.CAD, day, decimal.RequireFromString("1.3500"), model.RateSourceProvider)
	require.NoError(t, err)
	require.NoError(t, repo.Upsert(context.Background(), row))

	provider := &mockProvider{}
	resolver := usecase.NewRateResolver(repo, provider, newMemCache(), nil, testLogger())

	rate, err := resolver.Rate(context.Background(), money.USD, money.CAD, day)
	require.NoError(t, err)

	assert.Equal(t, model.RateSourceCache, rate.Source)
	assert.True(t, rate.Rate.Equal(decimal.RequireFromString("1.3500")))
	assert.True(t, rate.RateDate.Equal(day))
	assert.Zero(t, provider.fetches, "a cached rate must not hit the provider")
}

func TestRateResolverMemoryCacheShortCircuits(t *testing.T) {
	repo := newMockRateRepo()
	day := model.DateOnly(time.Now())
	row, err := model.NewExchangeRate(money.USD, money.CAD, day, decimal.RequireFromString("1.36"), model.RateSourceProvider)
	require.NoError(t, err)
	require.NoError(t, repo.Upsert(context.Background(), row))

	cache := newMemCache()
	resolver := usecase.NewRateResolver(repo, &mockProvider{}, cache, nil, testLogger())

	first, err := resolver.Rate(context.Background(), money.USD, money.CAD, day)
	require.NoError(t, err)
	exactAfterFirst := repo.exactCalls

	second, err := resolver.Rate(context.Background(), money.USD, money.CAD, day)
	require.NoError(t, err)

	assert.True(t, first.Rate.Equal(second.Rate))
	assert.Equal(t, exactAfterFirst, repo.exactCalls, "second lookup must come from memory")
	assert.Equal(t, 1, cache.Len())
}

func TestRateResolverLatestOnOrBefore(t *testing.T) {
	repo := newMockRateRepo()
	older := model.DateOnly(time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC))
	newer := model.DateOnly(time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC))
	for _, d := range []struct {
		day  time.Time
		rate string
	}{{older, "1.30"}, {newer, "1.34"}} {
		row, err := model.NewExchangeRate(money.USD, money.CAD, d.day, decimal.RequireFromString(d.rate), model.RateSourceProvider)
		require.NoError(t, err)
		require.NoError(t, repo.Upsert(context.Background(), row))
	}

	resolver := usecase.NewRateResolver(repo, &mockProvider{}, newMemCache(), nil, testLogger())

	// Asking for the 20th finds the row from the 10th, not the 1st.
	asked := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	rate, err := resolver.Rate(context.Background(), money.USD, money.CAD, asked)
	require.NoError(t, err)

	assert.Equal(t, model.RateSourceCache, rate.Source)
	assert.True(t, rate.Rate.Equal(decimal.RequireFromString("1.34")))
	assert.True(t, rate.RateDate.Equal(newer))
}

func TestRateResolverProviderFetchUpsertsToday(t *testing.T) {
	repo := newMockRateRepo()
	provider := &mockProvider{quotes: map[string]map[string]decimal.Decimal{
		"USD": {"CAD": decimal.RequireFromString("1.37")},
	}}
	resolver := usecase.NewRateResolver(repo, provider, newMemCache(), nil, testLogger())

	rate, err := resolver.Rate(context.Background(), money.USD, money.CAD, time.Now())
	require.NoError(t, err)

	assert.Equal(t, model.RateSourceProvider, rate.Source)
	assert.True(t, rate.Rate.Equal(decimal.RequireFromString("1.37")))
	assert.Equal(t, 1, provider.fetches)
	assert.Equal(t, 1, repo.upserts, "provider rates are written back under today's date")

	row, err := repo.FindExact(context.Background(), money.USD, money.CAD, model.DateOnly(time.Now()))
	require.NoError(t, err)
	assert.True(t, row.Rate.Equal(decimal.RequireFromString("1.37")))
}

func TestRateResolverProviderOutageFallsBack(t *testing.T) {
	repo := newMockRateRepo()
	provider := &mockProvider{err: errors.New("connection refused")}
	resolver := usecase.NewRateResolver(repo, provider, newMemCache(), nil, testLogger())

	rate, err := resolver.Rate(context.Background(), money.USD, money.CAD, time.Now())
	require.NoError(t, err, "provider outage must never surface as an error")

	assert.Equal(t, model.RateSourceFallback, rate.Source)
	// USD->CAD from the static table.
	assert.True(t, rate.Rate.Equal(decimal.RequireFromString("1.36")), "got %s", rate.Rate)
}

func TestRateResolverFallbackCrossRate(t *testing.T) {
	resolver := usecase.NewRateResolver(newMockRateRepo(), nil, newMemCache(), nil, testLogger())

	// EUR->GBP through USD: 0.79 / 0.92.
	rate, err := resolver.Rate(context.Background(), money.EUR, money.GBP, time.Now())
	require.NoError(t, err)

	assert.Equal(t, model.RateSourceFallback, rate.Source)
	want := decimal.RequireFromString("0.79").DivRound(decimal.RequireFromString("0.92"), 8)
	assert.True(t, rate.Rate.Equal(want), "got %s want %s", rate.Rate, want)
}

func TestRateResolverUnknownPairAssumesParity(t *testing.T) {
	resolver := usecase.NewRateResolver(newMockRateRepo(), nil, newMemCache(), nil, testLogger())

	exotic := money.MustCurrency("XXX")
	rate, err := resolver.Rate(context.Background(), exotic, money.CAD, time.Now())
	require.NoError(t, err)

	assert.Equal(t, model.RateSourceFallback, rate.Source)
	assert.True(t, rate.Rate.Equal(decimal.New(1, 0)))
}

func TestRateResolverRejectsZeroCurrency(t *testing.T) {
	resolver := usecase.NewRateResolver(newMockRateRepo(), nil, newMemCache(), nil, testLogger())

	_, err := resolver.Rate(context.Background(), money.Currency{}, money.CAD, time.Now())
	assert.ErrorIs(t, err, model.ErrUnsupportedCurrency)
}

func TestRateResolverConvert(t *testing.T) {
	repo := newMockRateRepo()
	day := model.DateOnly(time.Now())
	row, err := model.NewExchangeRate(money.USD, money.CAD, day, decimal.RequireFromString("1.358"), model.RateSourceProvider)
	require.NoError(t, err)
	require.NoError(t, repo.Upsert(context.Background(), row))

	resolver := usecase.NewRateResolver(repo, nil, newMemCache(), nil, testLogger())

	got, err := resolver.Convert(context.Background(), 10000, money.USD, money.CAD, day)
	require.NoError(t, err)
	assert.EqualValues(t, 13580, got)

	// Rounding is half away from zero per conversion.
	got, err = resolver.Convert(context.Background(), 55, money.USD, money.CAD, day)
	require.NoError(t, err)
	assert.EqualValues(t, 75, got, "55 * 1.358 = 74.69 rounds to 75")
}

func TestRateResolverConvertRejectsNegative(t *testing.T) {
	resolver := usecase.NewRateResolver(newMockRateRepo(), nil, newMemCache(), nil, testLogger())

	_, err := resolver.Convert(context.Background(), -1, money.USD, money.CAD, time.Now())
	assert.ErrorIs(t, err, model.ErrNegativeAmount)
}
