package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Systemsaholic/tailfire-sub005/internal/domain/model"
	"github.com/Systemsaholic/tailfire-sub005/internal/domain/port"
	"github.com/Systemsaholic/tailfire-sub005/pkg/money"
	"github.com/Systemsaholic/tailfire-sub005/pkg/observability"
)

// usdRelativeFallback is the static last-resort table: approximate rates from
// USD to each supported currency. Cross rates are derived through USD. Values
// are intentionally coarse; this path only answers when both the cache and
// the provider have failed, and every answer is tagged "fallback".
var usdRelativeFallback = map[string]string{
	"USD": "1",
	"CAD": "1.36",
	"EUR": "0.92",
	"GBP": "0.79",
	"AUD": "1.53",
	"NZD": "1.64",
	"JPY": "149.50",
	"CHF": "0.88",
	"MXN": "17.10",
}

// RateResolver resolves a from->to exchange rate for a date.
//
// Resolution order: identity short-circuit, in-process cache, exact cache-table
// row, most recent cache-table row on or before the date, external provider
// (upserted under today's date), static fallback table. Provider outage is
// never surfaced to the caller.
type RateResolver struct {
	rateRepo port.ExchangeRateRepository
	provider port.RateProvider // nil when unconfigured
	cache    port.RateCache
	metrics  *observability.SettlementMetrics // nil outside the daemon
	logger   *slog.Logger
}

// Compile-time check: RateResolver is the engine's port.RateResolver.
var _ port.RateResolver = (*RateResolver)(nil)

// NewRateResolver creates a RateResolver. provider and metrics may be nil.
func NewRateResolver(
	rateRepo port.ExchangeRateRepository,
	provider port.RateProvider,
	cache port.RateCache,
	metrics *observability.SettlementMetrics,
	logger *slog.Logger,
) *RateResolver {
	return &RateResolver{
		rateRepo: rateRepo,
		provider: provider,
		cache:    cache,
		metrics:  metrics,
		logger:   observability.WithComponent(logger, "rate-resolver"),
	}
}

// Rate resolves the conversion rate for the pair at the given date.
func (uc *RateResolver) Rate(ctx context.Context, from, to money.Currency, date time.Time) (model.ResolvedRate, error) {
	if from.IsZero() || to.IsZero() {
		return model.ResolvedRate{}, fmt.Errorf("resolve rate: %w", model.ErrUnsupportedCurrency)
	}

	if from == to {
		return uc.resolved(model.IdentityRate(date)), nil
	}

	day := model.DateOnly(date)
	key := rateCacheKey(from, to, day)

	if cached, ok := uc.cache.Get(key); ok {
		return uc.resolved(cached), nil
	}

	// Exact cache-table hit for the requested date.
	if row, err := uc.rateRepo.FindExact(ctx, from, to, day); err == nil {
		rate := model.ResolvedRate{Rate: row.Rate, RateDate: row.RateDate, Source: model.RateSourceCache}
		uc.cache.Put(key, rate)
		return uc.resolved(rate), nil
	}

	// Most recent cached rate on or before the date.
	if row, err := uc.rateRepo.FindLatestOnOrBefore(ctx, from, to, day); err == nil {
		rate := model.ResolvedRate{Rate: row.Rate, RateDate: row.RateDate, Source: model.RateSourceCache}
		uc.cache.Put(key, rate)
		return uc.resolved(rate), nil
	}

	if rate, ok := uc.fetchFromProvider(ctx, from, to); ok {
		uc.cache.Put(key, rate)
		return uc.resolved(rate), nil
	}

	rate := uc.fallbackRate(from, to, day)
	uc.cache.Put(key, rate)
	return uc.resolved(rate), nil
}

// Convert resolves a rate and applies it to an integer cent amount, rounding
// half away from zero. Negative amounts are rejected.
func (uc *RateResolver) Convert(ctx context.Context, amountCents int64, from, to money.Currency, date time.Time) (int64, error) {
	if amountCents < 0 {
		return 0, fmt.Errorf("convert %d: %w", amountCents, model.ErrNegativeAmount)
	}

	rate, err := uc.Rate(ctx, from, to, date)
	if err != nil {
		return 0, err
	}
	return rate.Convert(amountCents), nil
}

// fetchFromProvider asks the external provider for a current rate and caches
// it in the rate table under today's date. Any failure degrades silently.
func (uc *RateResolver) fetchFromProvider(ctx context.Context, from, to money.Currency) (model.ResolvedRate, bool) {
	if uc.provider == nil {
		return model.ResolvedRate{}, false
	}

	quotes, err := uc.provider.FetchLatestRates(ctx, from)
	if err != nil {
		uc.logger.Warn("rate provider unavailable, degrading to fallback table",
			"from", from.Code(), "to", to.Code(), "error", err)
		return model.ResolvedRate{}, false
	}

	quote, ok := quotes[to.Code()]
	if !ok {
		uc.logger.Warn("rate provider did not quote target currency",
			"from", from.Code(), "to", to.Code())
		return model.ResolvedRate{}, false
	}

	today := model.DateOnly(time.Now())
	row, err := model.NewExchangeRate(from, to, today, quote, model.RateSourceProvider)
	if err != nil {
		uc.logger.Warn("discarding invalid provider rate", "from", from.Code(), "to", to.Code(), "error", err)
		return model.ResolvedRate{}, false
	}

	if err := uc.rateRepo.Upsert(ctx, row); err != nil {
		// The rate itself is still usable; only the cache write failed.
		uc.logger.Warn("failed to cache provider rate", "from", from.Code(), "to", to.Code(), "error", err)
	}

	return model.ResolvedRate{Rate: quote, RateDate: today, Source: model.RateSourceProvider}, true
}

// fallbackRate derives a cross rate through USD from the static table. It
// never fails: unknown currencies resolve at 1.0 with a warning rather than
// blocking a summary from rendering.
func (uc *RateResolver) fallbackRate(from, to money.Currency, day time.Time) model.ResolvedRate {
	fromUSD, okFrom := usdRelativeFallback[from.Code()]
	toUSD, okTo := usdRelativeFallback[to.Code()]

	rate := decimal.New(1, 0)
	if okFrom && okTo {
		rate = decimal.RequireFromString(toUSD).
			DivRound(decimal.RequireFromString(fromUSD), 8)
		uc.logger.Warn("using static fallback exchange rate",
			"from", from.Code(), "to", to.Code(), "rate", rate.String())
	} else {
		uc.logger.Warn("no fallback rate known for pair, assuming parity",
			"from", from.Code(), "to", to.Code())
	}

	return model.ResolvedRate{Rate: rate, RateDate: day, Source: model.RateSourceFallback}
}

func (uc *RateResolver) resolved(rate model.ResolvedRate) model.ResolvedRate {
	if uc.metrics != nil {
		uc.metrics.RateLookups.Add(context.Background(), 1, observability.SourceAttr(rate.Source))
	}
	return rate
}

// rateCacheKey builds the in-process cache key for a pair and date.
func rateCacheKey(from, to money.Currency, day time.Time) string {
	return from.Code() + "/" + to.Code() + "@" + day.Format("2006-01-02")
}
