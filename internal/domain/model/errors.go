package model

import "errors"

// Sentinel errors forming the settlement engine's failure taxonomy.
//
// ErrTripNotFound is the only error a summary caller will ever see; every
// other incomplete-data condition is recovered locally with a logged warning.
var (
	// ErrTripNotFound is returned when the requested trip does not exist.
	ErrTripNotFound = errors.New("trip not found")

	// ErrUnsupportedCurrency is returned for malformed or unknown currency codes.
	ErrUnsupportedCurrency = errors.New("unsupported currency code")

	// ErrNegativeAmount is returned when a negative amount is passed to a conversion.
	ErrNegativeAmount = errors.New("amount must not be negative")

	// ErrProviderUnavailable marks an FX provider outage. It never escapes the
	// resolver; the resolver degrades to the static fallback table instead.
	ErrProviderUnavailable = errors.New("exchange rate provider unavailable")

	// ErrRateNotCached is returned by the rate cache repository when no row
	// matches the lookup.
	ErrRateNotCached = errors.New("exchange rate not cached")

	// ErrInvalidTransition is returned when a service fee status change is not
	// in the lifecycle transition table.
	ErrInvalidTransition = errors.New("invalid fee status transition")

	// ErrSnapshotAlreadySet is returned when attempting to overwrite a
	// permanent exchange-rate snapshot.
	ErrSnapshotAlreadySet = errors.New("exchange rate snapshot already recorded")
)
