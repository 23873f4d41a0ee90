// Package money provides integer minor-unit ("cents") monetary amounts and
// ISO 4217 currency codes. All settlement arithmetic is done in int64 cents;
// decimals appear only as exchange rates and at legacy ingestion boundaries.
package money

import (
	"fmt"
	"regexp"

	"github.com/shopspring/decimal"
)

var currencyCodeRe = regexp.MustCompile(`^[A-Z]{3}$`)

// Currency is an ISO 4217 currency code.
type Currency struct {
	code string
}

// NewCurrency creates a Currency after validating the code is exactly 3 uppercase letters.
func NewCurrency(code string) (Currency, error) {
	if !currencyCodeRe.MatchString(code) {
		return Currency{}, fmt.Errorf("invalid currency code %q: must be exactly 3 uppercase letters", code)
	}
	return Currency{code: code}, nil
}

// MustCurrency creates a Currency and panics on error. Intended for package-level
// variable initialization only.
func MustCurrency(code string) Currency {
	c, err := NewCurrency(code)
	if err != nil {
		panic(err)
	}
	return c
}

// Code returns the ISO 4217 currency code.
func (c Currency) Code() string {
	return c.code
}

// String returns the currency code.
func (c Currency) String() string {
	return c.code
}

// IsZero reports whether the currency is the zero value (no code).
func (c Currency) IsZero() bool {
	return c.code == ""
}

// Common currencies.
var (
	USD = MustCurrency("USD")
	EUR = MustCurrency("EUR")
	GBP = MustCurrency("GBP")
	CAD = MustCurrency("CAD")
	AUD = MustCurrency("AUD")
	JPY = MustCurrency("JPY")
	CHF = MustCurrency("CHF")
	MXN = MustCurrency("MXN")
	NZD = MustCurrency("NZD")
)

// DefaultCurrency is the settlement currency assumed when a trip does not
// declare one.
var DefaultCurrency = CAD

// Cents is a monetary amount in integer minor currency units with its currency.
type Cents struct {
	Amount   int64
	Currency Currency
}

// NewCents creates a Cents value.
func NewCents(amount int64, currency Currency) Cents {
	return Cents{Amount: amount, Currency: currency}
}

// ZeroCents returns a zero amount in the given currency.
func ZeroCents(currency Currency) Cents {
	return Cents{Amount: 0, Currency: currency}
}

// String formats the amount as a decimal with the currency code, e.g. "123.45 CAD".
func (c Cents) String() string {
	return fmt.Sprintf("%s %s", decimal.New(c.Amount, -2).StringFixed(2), c.Currency)
}

// ConvertCents applies an exchange rate to an integer cent amount and rounds
// half away from zero. Each call rounds independently; callers summing many
// conversions accept per-item rounding drift.
func ConvertCents(amountCents int64, rate decimal.Decimal) int64 {
	if rate.Equal(decimal.New(1, 0)) {
		return amountCents
	}
	return decimal.New(amountCents, 0).Mul(rate).Round(0).IntPart()
}

// CentsFromDecimalDollars converts a decimal major-unit amount (e.g. "12.34"
// dollars) into integer cents, rounding half away from zero.
//
// This is the single conversion point for legacy columns that store decimal
// dollars rather than cents; nothing else in the codebase may multiply by 100.
func CentsFromDecimalDollars(d decimal.Decimal) int64 {
	return d.Mul(decimal.New(100, 0)).Round(0).IntPart()
}
