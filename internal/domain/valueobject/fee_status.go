package valueobject

import "fmt"

// FeeStatus represents the lifecycle status of a service fee.
// It is an immutable value object with an explicit forward-only transition
// table; cancellation is the universal escape from any live status.
type FeeStatus struct {
	value string
}

const (
	statusDraft             = "draft"
	statusSent              = "sent"
	statusPaid              = "paid"
	statusPartiallyRefunded = "partially_refunded"
	statusRefunded          = "refunded"
	statusCancelled         = "cancelled"
)

var (
	FeeStatusDraft             = FeeStatus{value: statusDraft}
	FeeStatusSent              = FeeStatus{value: statusSent}
	FeeStatusPaid              = FeeStatus{value: statusPaid}
	FeeStatusPartiallyRefunded = FeeStatus{value: statusPartiallyRefunded}
	FeeStatusRefunded          = FeeStatus{value: statusRefunded}
	FeeStatusCancelled         = FeeStatus{value: statusCancelled}
)

var validFeeStatuses = map[string]FeeStatus{
	statusDraft:             FeeStatusDraft,
	statusSent:              FeeStatusSent,
	statusPaid:              FeeStatusPaid,
	statusPartiallyRefunded: FeeStatusPartiallyRefunded,
	statusRefunded:          FeeStatusRefunded,
	statusCancelled:         FeeStatusCancelled,
}

// feeTransitions maps a status to the statuses it may move to. Cancelled is
// terminal; refunded may still be cancelled (administrative void).
var feeTransitions = map[string][]string{
	statusDraft:             {statusSent, statusCancelled},
	statusSent:              {statusPaid, statusCancelled},
	statusPaid:              {statusPartiallyRefunded, statusRefunded, statusCancelled},
	statusPartiallyRefunded: {statusRefunded, statusCancelled},
	statusRefunded:          {statusCancelled},
	statusCancelled:         {},
}

// AllFeeStatuses returns every status in a stable display order, used to
// build the per-status buckets of the fee summary.
func AllFeeStatuses() []FeeStatus {
	return []FeeStatus{
		FeeStatusDraft,
		FeeStatusSent,
		FeeStatusPaid,
		FeeStatusPartiallyRefunded,
		FeeStatusRefunded,
		FeeStatusCancelled,
	}
}

// NewFeeStatus creates a FeeStatus from a string, validating it is known.
func NewFeeStatus(s string) (FeeStatus, error) {
	fs, ok := validFeeStatuses[s]
	if !ok {
		return FeeStatus{}, fmt.Errorf("invalid fee status: %q", s)
	}
	return fs, nil
}

// CanTransitionTo reports whether moving from s to next is a legal lifecycle
// transition.
func (s FeeStatus) CanTransitionTo(next FeeStatus) bool {
	for _, allowed := range feeTransitions[s.value] {
		if allowed == next.value {
			return true
		}
	}
	return false
}

// IsCancelled reports whether the fee has been voided.
func (s FeeStatus) IsCancelled() bool {
	return s.value == statusCancelled
}

// IsPending reports whether the fee is awaiting collection (draft or sent).
func (s FeeStatus) IsPending() bool {
	return s.value == statusDraft || s.value == statusSent
}

// IsCollected reports whether money was received for the fee (paid or
// partially refunded).
func (s FeeStatus) IsCollected() bool {
	return s.value == statusPaid || s.value == statusPartiallyRefunded
}

// HasRefund reports whether any portion of the fee was returned.
func (s FeeStatus) HasRefund() bool {
	return s.value == statusRefunded || s.value == statusPartiallyRefunded
}

// IsSettled reports whether the status locks the historical exchange-rate
// snapshot (paid or refunded, fully or partially).
func (s FeeStatus) IsSettled() bool {
	return s.IsCollected() || s.value == statusRefunded
}

// String returns the string representation of the FeeStatus.
func (s FeeStatus) String() string {
	return s.value
}

// IsZero returns true if the FeeStatus has not been set.
func (s FeeStatus) IsZero() bool {
	return s.value == ""
}

// Equal returns true if two FeeStatus values are equal.
func (s FeeStatus) Equal(other FeeStatus) bool {
	return s.value == other.value
}
