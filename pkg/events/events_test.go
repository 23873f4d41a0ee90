package events

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNewBaseEvent(t *testing.T) {
	aggregateID := uuid.New()
	payload := []byte(`{"base":"USD"}`)

	before := time.Now().UTC()
	event := NewBaseEvent("ExchangeRateRefreshed", aggregateID, "ExchangeRate", payload)
	after := time.Now().UTC()

	assert.NotEqual(t, uuid.Nil, event.EventID())
	assert.Equal(t, "ExchangeRateRefreshed", event.EventType())
	assert.Equal(t, aggregateID, event.AggregateID())
	assert.Equal(t, "ExchangeRate", event.AggregateType())
	assert.Equal(t, payload, event.Payload())
	assert.False(t, event.OccurredAt().Before(before))
	assert.False(t, event.OccurredAt().After(after))
}

func TestBaseEventIDsAreUnique(t *testing.T) {
	a := NewBaseEvent("T", uuid.New(), "A", nil)
	b := NewBaseEvent("T", uuid.New(), "A", nil)
	assert.NotEqual(t, a.EventID(), b.EventID())
}
