package usecase_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Systemsaholic/tailfire-sub005/internal/application/usecase"
	"github.com/Systemsaholic/tailfire-sub005/internal/domain/model"
	"github.com/Systemsaholic/tailfire-sub005/internal/domain/valueobject"
	"github.com/Systemsaholic/tailfire-sub005/pkg/money"
	"github.com/Systemsaholic/tailfire-sub005/pkg/testutil"
)

func TestTravellerBreakdownSplitsAndPrimaryFees(t *testing.T) {
	primary := model.TripTraveller{ID: testutil.TestTravellerID, TripID: testutil.TestTripID,
		FirstName: "Ana", LastName: "Silva", IsPrimary: true}
	companion := model.TripTraveller{ID: uuid.New(), TripID: testutil.TestTripID,
		FirstName: "Ben", LastName: "Silva"}

	travellerRepo := &mockTravellerRepo{
		travellers: []model.TripTraveller{primary, companion},
		splits: []model.TravellerSplit{
			{ID: uuid.New(), ActivityID: testutil.TestActivityID, TravellerID: primary.ID,
				AmountCents: 30000, Currency: money.CAD, SplitType: valueobject.SplitTypeCustom},
			{ID: uuid.New(), ActivityID: testutil.TestActivityID, TravellerID: companion.ID,
				AmountCents: 20000, Currency: money.CAD, SplitType: valueobject.SplitTypeCustom},
		},
	}
	feeRepo := &mockFeeRepo{fees: []model.ServiceFee{
		{ID: testutil.TestFeeID, TripID: testutil.TestTripID, AmountCents: 10000,
			Currency: money.CAD, Status: valueobject.FeeStatusSent,
			RecipientType: valueobject.RecipientPrimaryTraveller},
	}}

	uc := usecase.NewTravellerBreakdown(travellerRepo, feeRepo, &stubResolver{}, testLogger())

	breakdown, err := uc.Execute(context.Background(), testutil.TestTripID, money.CAD)
	require.NoError(t, err)
	require.Len(t, breakdown, 2)

	assert.Equal(t, "Ana Silva", breakdown[0].Name)
	assert.True(t, breakdown[0].IsPrimary)
	assert.EqualValues(t, 30000, breakdown[0].ActivityCostsCents)
	assert.EqualValues(t, 10000, breakdown[0].ServiceFeesCents)
	assert.EqualValues(t, 40000, breakdown[0].TotalCents)

	assert.False(t, breakdown[1].IsPrimary)
	assert.EqualValues(t, 20000, breakdown[1].ActivityCostsCents)
	assert.Zero(t, breakdown[1].ServiceFeesCents)
	assert.EqualValues(t, 20000, breakdown[1].TotalCents)
}

func TestTravellerBreakdownExcludesCancelledFees(t *testing.T) {
	primary := model.TripTraveller{ID: testutil.TestTravellerID, TripID: testutil.TestTripID,
		FirstName: "Ana", IsPrimary: true}
	feeRepo := &mockFeeRepo{fees: []model.ServiceFee{
		{ID: uuid.New(), TripID: testutil.TestTripID, AmountCents: 10000, Currency: money.CAD,
			Status: valueobject.FeeStatusPaid, RecipientType: valueobject.RecipientPrimaryTraveller},
		{ID: uuid.New(), TripID: testutil.TestTripID, AmountCents: 99999, Currency: money.CAD,
			Status: valueobject.FeeStatusCancelled, RecipientType: valueobject.RecipientPrimaryTraveller},
	}}

	uc := usecase.NewTravellerBreakdown(&mockTravellerRepo{travellers: []model.TripTraveller{primary}},
		feeRepo, &stubResolver{}, testLogger())

	breakdown, err := uc.Execute(context.Background(), testutil.TestTripID, money.CAD)
	require.NoError(t, err)
	require.Len(t, breakdown, 1)
	assert.EqualValues(t, 10000, breakdown[0].ServiceFeesCents)
}

func TestTravellerBreakdownAllTravellersFeesNotDistributed(t *testing.T) {
	primary := model.TripTraveller{ID: testutil.TestTravellerID, TripID: testutil.TestTripID,
		FirstName: "Ana", IsPrimary: true}
	companion := model.TripTraveller{ID: uuid.New(), TripID: testutil.TestTripID, FirstName: "Ben"}
	feeRepo := &mockFeeRepo{fees: []model.ServiceFee{
		{ID: uuid.New(), TripID: testutil.TestTripID, AmountCents: 6000, Currency: money.CAD,
			Status: valueobject.FeeStatusSent, RecipientType: valueobject.RecipientAllTravellers},
	}}

	uc := usecase.NewTravellerBreakdown(&mockTravellerRepo{travellers: []model.TripTraveller{primary, companion}},
		feeRepo, &stubResolver{}, testLogger())

	breakdown, err := uc.Execute(context.Background(), testutil.TestTripID, money.CAD)
	require.NoError(t, err)
	require.Len(t, breakdown, 2)

	// All-travellers fees are not attributed to anyone in the breakdown.
	assert.Zero(t, breakdown[0].ServiceFeesCents)
	assert.Zero(t, breakdown[1].ServiceFeesCents)
}

func TestTravellerBreakdownSplitSnapshotRatePreferred(t *testing.T) {
	traveller := model.TripTraveller{ID: testutil.TestTravellerID, TripID: testutil.TestTripID,
		FirstName: "Ana", IsPrimary: true}
	travellerRepo := &mockTravellerRepo{
		travellers: []model.TripTraveller{traveller},
		splits: []model.TravellerSplit{
			{ID: uuid.New(), ActivityID: testutil.TestActivityID, TravellerID: traveller.ID,
				AmountCents: 10000, Currency: money.USD, SplitType: valueobject.SplitTypeEqual,
				ExchangeRateToTripCurrency: decimalPtr("1.30")},
			{ID: uuid.New(), ActivityID: uuid.New(), TravellerID: traveller.ID,
				AmountCents: 10000, Currency: money.USD, SplitType: valueobject.SplitTypeEqual},
		},
	}
	resolver := &stubResolver{rates: map[string]decimal.Decimal{
		"USD/CAD": decimal.RequireFromString("1.40"),
	}}

	uc := usecase.NewTravellerBreakdown(travellerRepo, &mockFeeRepo{}, resolver, testLogger())

	breakdown, err := uc.Execute(context.Background(), testutil.TestTripID, money.CAD)
	require.NoError(t, err)
	require.Len(t, breakdown, 1)

	// First split converts at its 1.30 snapshot, second at the 1.40 live rate.
	assert.EqualValues(t, 13000+14000, breakdown[0].ActivityCostsCents)
}

func TestTravellerBreakdownNoTravellers(t *testing.T) {
	uc := usecase.NewTravellerBreakdown(&mockTravellerRepo{}, &mockFeeRepo{}, &stubResolver{}, testLogger())

	breakdown, err := uc.Execute(context.Background(), testutil.TestTripID, money.CAD)
	require.NoError(t, err)
	assert.Empty(t, breakdown)
}
