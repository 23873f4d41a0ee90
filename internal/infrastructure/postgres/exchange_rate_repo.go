// Package postgres implements the settlement engine's repositories on
// PostgreSQL via pgx.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/Systemsaholic/tailfire-sub005/internal/domain/model"
	"github.com/Systemsaholic/tailfire-sub005/internal/domain/port"
	"github.com/Systemsaholic/tailfire-sub005/pkg/money"
)

// Compile-time interface check.
var _ port.ExchangeRateRepository = (*ExchangeRateRepo)(nil)

// ExchangeRateRepo persists the daily rate cache table.
type ExchangeRateRepo struct {
	pool *pgxpool.Pool
}

// NewExchangeRateRepo creates a new ExchangeRateRepo.
func NewExchangeRateRepo(pool *pgxpool.Pool) *ExchangeRateRepo {
	return &ExchangeRateRepo{pool: pool}
}

// Upsert writes a rate row, replacing any existing row for the same
// (from, to, rate date) key. Last successful write wins.
func (r *ExchangeRateRepo) Upsert(ctx context.Context, rate model.ExchangeRate) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO exchange_rates (from_currency, to_currency, rate_date, rate, source, fetched_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (from_currency, to_currency, rate_date) DO UPDATE SET
			rate = EXCLUDED.rate,
			source = EXCLUDED.source,
			fetched_at = EXCLUDED.fetched_at
	`, rate.FromCurrency.Code(), rate.ToCurrency.Code(), rate.RateDate,
		rate.Rate, rate.Source, rate.FetchedAt)
	if err != nil {
		return fmt.Errorf("upsert exchange rate: %w", err)
	}
	return nil
}

// FindExact returns the cached rate for the pair on exactly the given date.
func (r *ExchangeRateRepo) FindExact(ctx context.Context, from, to money.Currency, date time.Time) (model.ExchangeRate, error) {
	return r.scanOne(ctx, `
		SELECT from_currency, to_currency, rate_date, rate, source, fetched_at
		FROM exchange_rates
		WHERE from_currency = $1 AND to_currency = $2 AND rate_date = $3
	`, from.Code(), to.Code(), model.DateOnly(date))
}

// FindLatestOnOrBefore returns the most recent cached rate for the pair dated
// on or before the given date.
func (r *ExchangeRateRepo) FindLatestOnOrBefore(ctx context.Context, from, to money.Currency, date time.Time) (model.ExchangeRate, error) {
	return r.scanOne(ctx, `
		SELECT from_currency, to_currency, rate_date, rate, source, fetched_at
		FROM exchange_rates
		WHERE from_currency = $1 AND to_currency = $2 AND rate_date <= $3
		ORDER BY rate_date DESC
		LIMIT 1
	`, from.Code(), to.Code(), model.DateOnly(date))
}

func (r *ExchangeRateRepo) scanOne(ctx context.Context, query string, args ...any) (model.ExchangeRate, error) {
	var (
		fromCode  string
		toCode    string
		rateDate  time.Time
		rate      decimal.Decimal
		source    string
		fetchedAt time.Time
	)

	err := r.pool.QueryRow(ctx, query, args...).
		Scan(&fromCode, &toCode, &rateDate, &rate, &source, &fetchedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.ExchangeRate{}, model.ErrRateNotCached
	}
	if err != nil {
		return model.ExchangeRate{}, fmt.Errorf("query exchange rate: %w", err)
	}

	from, err := money.NewCurrency(fromCode)
	if err != nil {
		return model.ExchangeRate{}, fmt.Errorf("reconstruct from currency: %w", err)
	}
	to, err := money.NewCurrency(toCode)
	if err != nil {
		return model.ExchangeRate{}, fmt.Errorf("reconstruct to currency: %w", err)
	}

	return model.ExchangeRate{
		FromCurrency: from,
		ToCurrency:   to,
		RateDate:     model.DateOnly(rateDate),
		Rate:         rate,
		Source:       source,
		FetchedAt:    fetchedAt,
	}, nil
}
