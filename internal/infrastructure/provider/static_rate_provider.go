// Package provider implements the external FX data sources behind
// port.RateProvider.
package provider

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Systemsaholic/tailfire-sub005/internal/domain/port"
	"github.com/Systemsaholic/tailfire-sub005/pkg/money"
)

// staticUSDRates maps a currency code to its USD price: one USD buys this
// many units. Quotes for any base are derived as cross rates through USD.
var staticUSDRates = map[string]string{
	"USD": "1",
	"CAD": "1.3580",
	"EUR": "0.9210",
	"GBP": "0.7905",
	"AUD": "1.5340",
	"NZD": "1.6450",
	"JPY": "149.50",
	"CHF": "0.8820",
	"MXN": "17.0800",
}

// Compile-time interface check.
var _ port.RateProvider = (*StaticRateProvider)(nil)

// StaticRateProvider quotes hardcoded exchange rates for the supported
// currencies. It is intended for development, testing, and CI environments.
type StaticRateProvider struct{}

// NewStaticRateProvider creates a new StaticRateProvider.
func NewStaticRateProvider() *StaticRateProvider {
	return &StaticRateProvider{}
}

// FetchLatestRates returns static quotes from the base to every currency in
// the table.
func (p *StaticRateProvider) FetchLatestRates(_ context.Context, base money.Currency) (map[string]decimal.Decimal, error) {
	baseUSD, ok := staticUSDRates[base.Code()]
	if !ok {
		return nil, fmt.Errorf("no static rates for base %s", base.Code())
	}
	baseRate := decimal.RequireFromString(baseUSD)

	quotes := make(map[string]decimal.Decimal, len(staticUSDRates)-1)
	for code, usdStr := range staticUSDRates {
		if code == base.Code() {
			continue
		}
		quotes[code] = decimal.RequireFromString(usdStr).DivRound(baseRate, 8)
	}
	return quotes, nil
}
