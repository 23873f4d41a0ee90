package event

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/Systemsaholic/tailfire-sub005/pkg/events"
)

const AggregateTypeExchangeRate = "ExchangeRate"

// TopicRates is the broker topic for exchange-rate lifecycle events.
const TopicRates = "tailfire.settlement.rates"

// ExchangeRateRefreshed is emitted after the scheduled refresh task upserts
// the day's rates for one base currency.
type ExchangeRateRefreshed struct {
	events.BaseEvent
	BaseCurrency string    `json:"base_currency"`
	RateDate     time.Time `json:"rate_date"`
	RatesUpdated int       `json:"rates_updated"`
	Source       string    `json:"source"`
}

// NewExchangeRateRefreshed creates an ExchangeRateRefreshed domain event.
func NewExchangeRateRefreshed(baseCurrency string, rateDate time.Time, ratesUpdated int, source string) ExchangeRateRefreshed {
	id := uuid.New()
	payload, _ := json.Marshal(struct {
		BaseCurrency string    `json:"base_currency"`
		RateDate     time.Time `json:"rate_date"`
		RatesUpdated int       `json:"rates_updated"`
		Source       string    `json:"source"`
	}{baseCurrency, rateDate, ratesUpdated, source})

	return ExchangeRateRefreshed{
		BaseEvent:    events.NewBaseEvent("settlement.rates.refreshed", id, AggregateTypeExchangeRate, payload),
		BaseCurrency: baseCurrency,
		RateDate:     rateDate,
		RatesUpdated: ratesUpdated,
		Source:       source,
	}
}
