package testutil

import (
	"github.com/google/uuid"
)

// Fixed UUIDs for deterministic testing.
var (
	TestTripID      = uuid.MustParse("00000000-0000-0000-0000-000000000001")
	TestActivityID  = uuid.MustParse("00000000-0000-0000-0000-000000000002")
	TestTravellerID = uuid.MustParse("00000000-0000-0000-0000-000000000003")
	TestFeeID       = uuid.MustParse("00000000-0000-0000-0000-000000000004")
)
