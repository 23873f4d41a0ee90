package port

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Systemsaholic/tailfire-sub005/internal/domain/model"
	"github.com/Systemsaholic/tailfire-sub005/pkg/events"
	"github.com/Systemsaholic/tailfire-sub005/pkg/money"
)

// RateProvider is an external FX data source. It is treated as unreliable:
// absence of configuration or a network failure is a normal condition the
// resolver degrades around, never an engine failure.
type RateProvider interface {
	// FetchLatestRates returns current rates from the base currency to every
	// currency the provider quotes, keyed by ISO code.
	FetchLatestRates(ctx context.Context, base money.Currency) (map[string]decimal.Decimal, error)
}

// RateResolver resolves a conversion rate between two currencies for a date.
// The aggregation use cases depend on this rather than on the concrete
// resolver so they can be tested with canned rates.
type RateResolver interface {
	// Rate never fails on provider outage; it degrades through the cache and
	// the static fallback table. It returns model.ErrUnsupportedCurrency for
	// malformed codes.
	Rate(ctx context.Context, from, to money.Currency, date time.Time) (model.ResolvedRate, error)
}

// RateCache is the bounded in-process cache shared by the request path and
// the refresh task. Entries expire on a TTL and the cache evicts when full;
// it memoizes the persistent cache table, it does not replace it.
type RateCache interface {
	Get(key string) (model.ResolvedRate, bool)
	Put(key string, rate model.ResolvedRate)
	Len() int
}

// EventPublisher publishes domain events to a message broker.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, events ...events.DomainEvent) error
}
