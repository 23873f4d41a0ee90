package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Systemsaholic/tailfire-sub005/internal/domain/event"
	"github.com/Systemsaholic/tailfire-sub005/internal/domain/model"
	"github.com/Systemsaholic/tailfire-sub005/internal/domain/port"
	"github.com/Systemsaholic/tailfire-sub005/pkg/money"
	"github.com/Systemsaholic/tailfire-sub005/pkg/observability"
)

// DefaultBaseCurrencies are the bases the daily refresh fetches quotes for.
var DefaultBaseCurrencies = []money.Currency{money.USD, money.CAD, money.EUR, money.GBP}

// DefaultTargetCurrencies are the quote currencies the refresh persists per base.
var DefaultTargetCurrencies = []money.Currency{
	money.USD, money.CAD, money.EUR, money.GBP, money.AUD, money.NZD, money.JPY, money.CHF, money.MXN,
}

// RefreshRates is the out-of-band task that upserts same-day rates for the
// configured base currencies. It is idempotent and safe to run concurrently
// with itself or with request-path resolution: conflicts on
// (from, to, rate date) resolve by update-in-place, last successful fetch
// wins.
type RefreshRates struct {
	rateRepo  port.ExchangeRateRepository
	provider  port.RateProvider
	cache     port.RateCache
	publisher port.EventPublisher // nil when no broker is configured
	metrics   *observability.SettlementMetrics
	logger    *slog.Logger

	bases   []money.Currency
	targets []money.Currency
}

// NewRefreshRates creates the refresh task. publisher and metrics may be nil;
// empty bases/targets fall back to the defaults.
func NewRefreshRates(
	rateRepo port.ExchangeRateRepository,
	provider port.RateProvider,
	cache port.RateCache,
	publisher port.EventPublisher,
	metrics *observability.SettlementMetrics,
	logger *slog.Logger,
	bases, targets []money.Currency,
) *RefreshRates {
	if len(bases) == 0 {
		bases = DefaultBaseCurrencies
	}
	if len(targets) == 0 {
		targets = DefaultTargetCurrencies
	}
	return &RefreshRates{
		rateRepo:  rateRepo,
		provider:  provider,
		cache:     cache,
		publisher: publisher,
		metrics:   metrics,
		logger:    observability.WithComponent(logger, "rate-refresh"),
		bases:     bases,
		targets:   targets,
	}
}

// Execute refreshes today's rates for every base currency. A provider failure
// for one base is logged and skipped; Execute only returns an error when no
// base could be refreshed at all.
func (uc *RefreshRates) Execute(ctx context.Context) error {
	if uc.provider == nil {
		uc.logger.Info("no rate provider configured, skipping refresh")
		return nil
	}

	today := model.DateOnly(time.Now())
	refreshedBases := 0

	for _, base := range uc.bases {
		updated, err := uc.refreshBase(ctx, base, today)
		if err != nil {
			uc.logger.Warn("refresh failed for base currency", "base", base.Code(), "error", err)
			continue
		}

		refreshedBases++
		uc.logger.Info("refreshed exchange rates", "base", base.Code(), "updated", updated, "rate_date", today.Format("2006-01-02"))

		if uc.publisher != nil {
			evt := event.NewExchangeRateRefreshed(base.Code(), today, updated, model.RateSourceProvider)
			if err := uc.publisher.Publish(ctx, event.TopicRates, evt); err != nil {
				uc.logger.Warn("failed to publish refresh event", "base", base.Code(), "error", err)
			}
		}
	}

	outcome := "ok"
	switch refreshedBases {
	case len(uc.bases):
	case 0:
		outcome = "failed"
	default:
		outcome = "partial"
	}
	if uc.metrics != nil {
		uc.metrics.RateRefreshRuns.Add(ctx, 1, observability.OutcomeAttr(outcome))
	}

	if refreshedBases == 0 {
		return fmt.Errorf("rate refresh: %w", model.ErrProviderUnavailable)
	}
	return nil
}

// refreshBase fetches and upserts today's quotes for one base currency.
func (uc *RefreshRates) refreshBase(ctx context.Context, base money.Currency, today time.Time) (int, error) {
	quotes, err := uc.provider.FetchLatestRates(ctx, base)
	if err != nil {
		return 0, fmt.Errorf("fetch rates for %s: %w", base.Code(), err)
	}

	updated := 0
	for _, target := range uc.targets {
		if target == base {
			continue
		}

		quote, ok := quotes[target.Code()]
		if !ok {
			continue
		}

		row, err := model.NewExchangeRate(base, target, today, quote, model.RateSourceProvider)
		if err != nil {
			uc.logger.Warn("discarding invalid provider quote", "base", base.Code(), "target", target.Code(), "error", err)
			continue
		}

		if err := uc.rateRepo.Upsert(ctx, row); err != nil {
			uc.logger.Warn("failed to upsert refreshed rate", "base", base.Code(), "target", target.Code(), "error", err)
			continue
		}

		// Prime the in-process cache so request-path lookups for today hit
		// memory directly.
		resolved := model.ResolvedRate{Rate: quote, RateDate: today, Source: model.RateSourceCache}
		uc.cache.Put(rateCacheKey(base, target, today), resolved)

		updated++
	}

	return updated, nil
}
