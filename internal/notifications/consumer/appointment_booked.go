package consumer

import (
	"context"

	"medibook/internal/notifications/dispatcher"
	"medibook/internal/notifications/events"
	"medibook/pkg/kafka"
	"medibook/pkg/logger"
)

// NewAppointmentBookedHandler records notifications for appointment.booked messages.
// Other event types are acknowledged and skipped.
func NewAppointmentBookedHandler(recorder dispatcher.Recorder, log *logger.Logger) kafka.MessageHandler {
	return func(ctx context.Context, msg kafka.Message) error {
		if eventType := msg.GetEventType(); eventType != events.AppointmentBookedType {
			log.Debug("Skipping unsupported event", "event_type", eventType, "event_id", msg.GetEventID())
			return nil
		}

		var event events.AppointmentBooked
		if err := msg.DecodeValue(&event); err != nil {
			return kafka.NewPermanentError("malformed appointment.booked payload", err)
		}
		if event.DoctorID == "" || event.PatientID == "" {
			return kafka.NewPermanentError("appointment.booked event is missing participants", nil)
		}

		if err := recorder.RecordAppointmentBooked(ctx, event); err != nil {
			return kafka.NewTransientError("failed to record booking notifications", err)
		}
		return nil
	}
}
