package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Systemsaholic/tailfire-sub005/pkg/money"
)

// Rate sources, in degradation order. Identity short-circuits everything;
// fallback means the static table answered after a provider failure.
const (
	RateSourceIdentity = "identity"
	RateSourceCache    = "cache"
	RateSourceProvider = "provider"
	RateSourceFallback = "fallback"
)

// ExchangeRate is one row of the daily rate cache, keyed by
// (from, to, rate date). It is a cache entry, not an audit trail: conflicts on
// the key are resolved by update-in-place, and rows are never deleted.
type ExchangeRate struct {
	FromCurrency money.Currency
	ToCurrency   money.Currency
	RateDate     time.Time
	Rate         decimal.Decimal
	Source       string
	FetchedAt    time.Time
}

// NewExchangeRate creates a cache entry after validating the pair and rate.
// Identity pairs are never cached; they resolve synthetically.
func NewExchangeRate(from, to money.Currency, rateDate time.Time, rate decimal.Decimal, source string) (ExchangeRate, error) {
	if from.IsZero() || to.IsZero() {
		return ExchangeRate{}, fmt.Errorf("exchange rate currencies are required: %w", ErrUnsupportedCurrency)
	}
	if from == to {
		return ExchangeRate{}, fmt.Errorf("identity pair %s/%s must not be cached", from, to)
	}
	if !rate.IsPositive() {
		return ExchangeRate{}, fmt.Errorf("exchange rate must be positive, got %s", rate)
	}
	if rateDate.IsZero() {
		return ExchangeRate{}, fmt.Errorf("rate date is required")
	}
	if source == "" {
		return ExchangeRate{}, fmt.Errorf("rate source is required")
	}

	return ExchangeRate{
		FromCurrency: from,
		ToCurrency:   to,
		RateDate:     DateOnly(rateDate),
		Rate:         rate,
		Source:       source,
		FetchedAt:    time.Now().UTC(),
	}, nil
}

// Convert applies this rate to an integer cent amount, rounding half away
// from zero.
func (r ExchangeRate) Convert(amountCents int64) int64 {
	return money.ConvertCents(amountCents, r.Rate)
}

// ResolvedRate is the resolver's answer: the rate, the date it is effective
// for, and which source satisfied the lookup.
type ResolvedRate struct {
	Rate     decimal.Decimal
	RateDate time.Time
	Source   string
}

// IdentityRate returns the synthetic 1.0 rate used when from == to.
func IdentityRate(date time.Time) ResolvedRate {
	return ResolvedRate{
		Rate:     decimal.New(1, 0),
		RateDate: DateOnly(date),
		Source:   RateSourceIdentity,
	}
}

// Convert applies the resolved rate to an integer cent amount.
func (r ResolvedRate) Convert(amountCents int64) int64 {
	return money.ConvertCents(amountCents, r.Rate)
}

// DateOnly truncates a timestamp to its UTC calendar date, the granularity of
// the rate cache key.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
