package dispatcher

import (
	"context"
	"fmt"

	"medibook/internal/notifications/events"
	"medibook/pkg/kafka"
)

// Recorder persists the notifications for a booking event.
type Recorder interface {
	RecordAppointmentBooked(ctx context.Context, event events.AppointmentBooked) error
}

type directPublisher struct {
	recorder Recorder
}

// NewDirectPublisher records notifications in-process.
func NewDirectPublisher(recorder Recorder) Publisher {
	return &directPublisher{recorder: recorder}
}

func (p *directPublisher) Publish(ctx context.Context, event events.AppointmentBooked) error {
	return p.recorder.RecordAppointmentBooked(ctx, event)
}

type messageProducer interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

type kafkaPublisher struct {
	producer messageProducer
	source   string
}

// NewKafkaPublisher hands events to the notifications consumer through Kafka.
// Messages are keyed by doctor id so one doctor's events stay ordered.
func NewKafkaPublisher(producer messageProducer, source string) Publisher {
	return &kafkaPublisher{
		producer: producer,
		source:   source,
	}
}

func (p *kafkaPublisher) Publish(ctx context.Context, event events.AppointmentBooked) error {
	msg, err := kafka.NewMessage().
		WithKey(event.DoctorID).
		WithValue(event).
		WithEventType(events.AppointmentBookedType).
		WithSchemaVersion(events.AppointmentBookedVersion).
		WithCorrelationID(event.AppointmentID).
		WithSource(p.source).
		Build()
	if err != nil {
		return fmt.Errorf("failed to build appointment event: %w", err)
	}

	if err := p.producer.Publish(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish appointment event: %w", err)
	}
	return nil
}
