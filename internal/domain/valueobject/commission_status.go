package valueobject

import "fmt"

// CommissionStatus tracks the receipt state of a supplier commission.
type CommissionStatus struct {
	value string
}

const (
	commissionPending   = "pending"
	commissionReceived  = "received"
	commissionCancelled = "cancelled"
)

var (
	CommissionStatusPending   = CommissionStatus{value: commissionPending}
	CommissionStatusReceived  = CommissionStatus{value: commissionReceived}
	CommissionStatusCancelled = CommissionStatus{value: commissionCancelled}
)

var validCommissionStatuses = map[string]CommissionStatus{
	commissionPending:   CommissionStatusPending,
	commissionReceived:  CommissionStatusReceived,
	commissionCancelled: CommissionStatusCancelled,
}

// NewCommissionStatus creates a CommissionStatus from a string, validating it is known.
func NewCommissionStatus(s string) (CommissionStatus, error) {
	cs, ok := validCommissionStatuses[s]
	if !ok {
		return CommissionStatus{}, fmt.Errorf("invalid commission status: %q", s)
	}
	return cs, nil
}

// IsReceived reports whether the commission has actually been collected.
func (s CommissionStatus) IsReceived() bool {
	return s.value == commissionReceived
}

// String returns the string representation of the CommissionStatus.
func (s CommissionStatus) String() string {
	return s.value
}

// IsZero returns true if the CommissionStatus has not been set.
func (s CommissionStatus) IsZero() bool {
	return s.value == ""
}
