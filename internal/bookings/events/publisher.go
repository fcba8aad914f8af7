package events

import (
	"context"
	"time"
	"travelbook/pkg/kafka"
	"travelbook/pkg/model"
)

const (
	TypeCreated = "booking.created"
	TypeUpdated = "booking.updated"
	TypeDeleted = "booking.deleted"

	Source        = "bookings"
	SchemaVersion = "1"
)

// BookingEvent is the payload published after a successful mutation.
type BookingEvent struct {
	Type       string        `json:"type"`
	Booking    model.Booking `json:"booking"`
	OccurredAt time.Time     `json:"occurred_at"`
}

// Publisher announces booking mutations to other systems.
type Publisher interface {
	Publish(ctx context.Context, eventType string, booking *model.Booking) error
	Close() error
}

// MessagePublisher is satisfied by *kafka.Producer.
type MessagePublisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
	Close() error
}

type kafkaPublisher struct {
	producer MessagePublisher
}

func NewKafkaPublisher(producer MessagePublisher) Publisher {
	return &kafkaPublisher{producer: producer}
}

// Publish keys the message by booking id so every event for one booking
// lands on the same partition.
func (p *kafkaPublisher) Publish(ctx context.Context, eventType string, booking *model.Booking) error {
	msg, err := NewMessage(eventType, booking)
	if err != nil {
		return err
	}
	return p.producer.Publish(ctx, msg)
}

func (p *kafkaPublisher) Close() error {
	return p.producer.Close()
}

func NewMessage(eventType string, booking *model.Booking) (kafka.Message, error) {
	return kafka.NewMessage().
		WithKey(booking.ID).
		WithEventID("").
		WithEventType(eventType).
		WithSource(Source).
		WithSchemaVersion(SchemaVersion).
		WithValue(BookingEvent{
			Type:       eventType,
			Booking:    *booking,
			OccurredAt: time.Now().UTC(),
		}).
		Build()
}

type noopPublisher struct{}

// NewNoopPublisher returns a publisher that drops every event. Used when no
// brokers are configured.
func NewNoopPublisher() Publisher {
	return noopPublisher{}
}

func (noopPublisher) Publish(context.Context, string, *model.Booking) error { return nil }

func (noopPublisher) Close() error { return nil }
