// Package testutil provides shared test helpers.
package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// AssertCents checks an integer cent amount with a readable failure message.
func AssertCents(t *testing.T, expected, actual int64, label string) {
	t.Helper()
	assert.Equalf(t, expected, actual, "%s: expected %d cents, got %d", label, expected, actual)
}
