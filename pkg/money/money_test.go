package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCurrency(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantErr bool
	}{
		{name: "valid USD", code: "USD"},
		{name: "valid CAD", code: "CAD"},
		{name: "lowercase rejected", code: "usd", wantErr: true},
		{name: "too short", code: "US", wantErr: true},
		{name: "too long", code: "USDT", wantErr: true},
		{name: "empty", code: "", wantErr: true},
		{name: "digits rejected", code: "U5D", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewCurrency(tt.code)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.code, c.Code())
		})
	}
}

func TestMustCurrencyPanicsOnInvalid(t *testing.T) {
	assert.Panics(t, func() { MustCurrency("nope") })
}

func TestConvertCents(t *testing.T) {
	tests := []struct {
		name   string
		amount int64
		rate   string
		want   int64
	}{
		{name: "identity rate", amount: 12345, rate: "1", want: 12345},
		{name: "simple conversion", amount: 10000, rate: "1.358", want: 13580},
		{name: "rounds half up", amount: 100, rate: "1.005", want: 101},
		{name: "rounds half away from zero for negatives", amount: -100, rate: "1.005", want: -101},
		{name: "rounds down below half", amount: 100, rate: "1.004", want: 100},
		{name: "zero amount", amount: 0, rate: "0.8820", want: 0},
		{name: "large amount", amount: 5000000, rate: "0.73456789", want: 3672839},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rate, err := decimal.NewFromString(tt.rate)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ConvertCents(tt.amount, rate))
		})
	}
}

func TestConvertCentsRoundsPerCall(t *testing.T) {
	// Three conversions of 1 cent at rate 0.4 each round to 0 independently;
	// converting the 3-cent sum rounds to 1. Per-item rounding drift is
	// accepted behavior.
	rate := decimal.RequireFromString("0.4")

	var perItem int64
	for i := 0; i < 3; i++ {
		perItem += ConvertCents(1, rate)
	}
	aggregate := ConvertCents(3, rate)

	assert.Equal(t, int64(0), perItem)
	assert.Equal(t, int64(1), aggregate)
}

func TestCentsFromDecimalDollars(t *testing.T) {
	tests := []struct {
		name    string
		dollars string
		want    int64
	}{
		{name: "whole dollars", dollars: "125", want: 12500},
		{name: "dollars and cents", dollars: "12.34", want: 1234},
		{name: "sub-cent rounds half up", dollars: "0.005", want: 1},
		{name: "negative", dollars: "-3.50", want: -350},
		{name: "zero", dollars: "0", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := decimal.RequireFromString(tt.dollars)
			assert.Equal(t, tt.want, CentsFromDecimalDollars(d))
		})
	}
}

func TestCentsString(t *testing.T) {
	assert.Equal(t, "123.45 CAD", NewCents(12345, CAD).String())
	assert.Equal(t, "0.00 USD", ZeroCents(USD).String())
	assert.Equal(t, "-7.00 EUR", NewCents(-700, EUR).String())
}
