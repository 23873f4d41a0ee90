// Package kafka adapts the shared Kafka producer to the engine's event
// publisher port.
package kafka

import (
	"context"

	"github.com/Systemsaholic/tailfire-sub005/internal/domain/port"
	"github.com/Systemsaholic/tailfire-sub005/pkg/events"
	"github.com/Systemsaholic/tailfire-sub005/pkg/kafka"
)

// Compile-time interface check.
var _ port.EventPublisher = (*EventPublisher)(nil)

// EventPublisher publishes domain events to Kafka. Messages are keyed by
// aggregate ID so events for the same aggregate stay ordered within a
// partition.
type EventPublisher struct {
	producer *kafka.Producer
}

// NewEventPublisher creates an EventPublisher on top of the shared producer.
func NewEventPublisher(producer *kafka.Producer) *EventPublisher {
	return &EventPublisher{producer: producer}
}

// Publish sends the events to the topic.
func (p *EventPublisher) Publish(ctx context.Context, topic string, evts ...events.DomainEvent) error {
	messages := make([]kafka.Message, 0, len(evts))
	for _, evt := range evts {
		messages = append(messages, kafka.Message{
			Key:   []byte(evt.AggregateID().String()),
			Value: evt.Payload(),
			Headers: map[string]string{
				"event_id":       evt.EventID().String(),
				"event_type":     evt.EventType(),
				"aggregate_type": evt.AggregateType(),
			},
		})
	}
	return p.producer.Publish(ctx, topic, messages...)
}

// Close releases the underlying producer's writers.
func (p *EventPublisher) Close() error {
	return p.producer.Close()
}
