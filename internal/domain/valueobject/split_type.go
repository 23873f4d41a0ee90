package valueobject

import "fmt"

// SplitType describes how an activity's cost was divided between travellers.
type SplitType struct {
	value string
}

const (
	splitEqual  = "equal"
	splitCustom = "custom"
)

var (
	SplitTypeEqual  = SplitType{value: splitEqual}
	SplitTypeCustom = SplitType{value: splitCustom}
)

var validSplitTypes = map[string]SplitType{
	splitEqual:  SplitTypeEqual,
	splitCustom: SplitTypeCustom,
}

// NewSplitType creates a SplitType from a string, validating it is known.
func NewSplitType(s string) (SplitType, error) {
	st, ok := validSplitTypes[s]
	if !ok {
		return SplitType{}, fmt.Errorf("invalid split type: %q", s)
	}
	return st, nil
}

// String returns the string representation of the SplitType.
func (t SplitType) String() string {
	return t.value
}

// IsZero returns true if the SplitType has not been set.
func (t SplitType) IsZero() bool {
	return t.value == ""
}
