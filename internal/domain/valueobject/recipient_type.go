package valueobject

import "fmt"

// RecipientType identifies who a service fee is charged to.
type RecipientType struct {
	value string
}

const (
	recipientPrimaryTraveller = "primary_traveller"
	recipientAllTravellers    = "all_travellers"
)

var (
	RecipientPrimaryTraveller = RecipientType{value: recipientPrimaryTraveller}
	RecipientAllTravellers    = RecipientType{value: recipientAllTravellers}
)

var validRecipientTypes = map[string]RecipientType{
	recipientPrimaryTraveller: RecipientPrimaryTraveller,
	recipientAllTravellers:    RecipientAllTravellers,
}

// NewRecipientType creates a RecipientType from a string, validating it is known.
func NewRecipientType(s string) (RecipientType, error) {
	rt, ok := validRecipientTypes[s]
	if !ok {
		return RecipientType{}, fmt.Errorf("invalid recipient type: %q", s)
	}
	return rt, nil
}

// IsPrimaryTraveller reports whether the fee targets the primary traveller only.
func (r RecipientType) IsPrimaryTraveller() bool {
	return r.value == recipientPrimaryTraveller
}

// String returns the string representation of the RecipientType.
func (r RecipientType) String() string {
	return r.value
}

// IsZero returns true if the RecipientType has not been set.
func (r RecipientType) IsZero() bool {
	return r.value == ""
}
