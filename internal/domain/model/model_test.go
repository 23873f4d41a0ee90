package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/Systemsaholic/tailfire-sub005/internal/domain/valueobject"
)

func testUUID(t *testing.T) uuid.UUID {
	t.Helper()
	return uuid.New()
}

func mustCommissionStatus(t *testing.T, s string) valueobject.CommissionStatus {
	t.Helper()
	cs, err := valueobject.NewCommissionStatus(s)
	require.NoError(t, err)
	return cs
}

func TestActivityPricingDefaults(t *testing.T) {
	p := ActivityPricing{}
	require.False(t, p.IsPriced())
	require.Zero(t, p.PriceCents())
	require.Zero(t, p.ExpectedCommissionCents())

	price := int64(50000)
	commission := int64(5000)
	p.TotalPriceCents = &price
	p.CommissionTotalCents = &commission
	require.True(t, p.IsPriced())
	require.EqualValues(t, 50000, p.PriceCents())
	require.EqualValues(t, 5000, p.ExpectedCommissionCents())
}

func TestTravellerFullName(t *testing.T) {
	require.Equal(t, "Ada Laurier", TripTraveller{FirstName: "Ada", LastName: "Laurier"}.FullName())
	require.Equal(t, "Ada", TripTraveller{FirstName: "Ada"}.FullName())
	require.Equal(t, "Laurier", TripTraveller{LastName: "Laurier"}.FullName())
}
