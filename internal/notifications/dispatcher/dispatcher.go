package dispatcher

import (
	"context"
	"sync"
	"time"

	"medibook/internal/notifications/events"
	"medibook/pkg/logger"
)

// Publisher delivers a booking event to wherever notifications get recorded.
type Publisher interface {
	Publish(ctx context.Context, event events.AppointmentBooked) error
}

// Dispatcher fans booking events out to a fixed pool of workers. Enqueueing never
// blocks the caller: when the queue is full the event is dropped and logged.
type Dispatcher struct {
	publisher Publisher
	queue     chan events.AppointmentBooked
	timeout   time.Duration
	log       *logger.Logger

	mu       sync.RWMutex
	closed   bool
	wg       sync.WaitGroup
	stopOnce sync.Once
}

func NewDispatcher(publisher Publisher, workers, queueSize int, timeout time.Duration, log *logger.Logger) *Dispatcher {
	workers = max(workers, 1)
	queueSize = max(queueSize, 0)

	d := &Dispatcher{
		publisher: publisher,
		queue:     make(chan events.AppointmentBooked, queueSize),
		timeout:   timeout,
		log:       log,
	}

	d.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go d.work(i)
	}
	return d
}

// NotifyAppointmentBooked enqueues the event and reports whether it was accepted.
func (d *Dispatcher) NotifyAppointmentBooked(event events.AppointmentBooked) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.log.Warn("Notification dispatcher stopped, dropping event",
			"appointment_id", event.AppointmentID,
		)
		return false
	}

	select {
	case d.queue <- event:
		return true
	default:
		d.log.Warn("Notification queue full, dropping event",
			"appointment_id", event.AppointmentID,
			"queue_size", cap(d.queue),
		)
		return false
	}
}

func (d *Dispatcher) work(id int) {
	defer d.wg.Done()
	for event := range d.queue {
		d.deliver(id, event)
	}
}

func (d *Dispatcher) deliver(worker int, event events.AppointmentBooked) {
	defer func() {
		if r := recover(); r != nil {
			d.log.Error("Notification publisher panicked",
				"worker", worker,
				"appointment_id", event.AppointmentID,
				"panic", r,
			)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	if err := d.publisher.Publish(ctx, event); err != nil {
		d.log.Error("Failed to publish booking notification",
			"worker", worker,
			"appointment_id", event.AppointmentID,
			"doctor_id", event.DoctorID,
			"patient_id", event.PatientID,
			"error", err,
		)
		return
	}

	d.log.Debug("Booking notification published",
		"worker", worker,
		"appointment_id", event.AppointmentID,
	)
}

// Stop refuses new events and waits until queued ones are delivered.
func (d *Dispatcher) Stop() {
	d.stopOnce.Do(func() {
		d.mu.Lock()
		d.closed = true
		close(d.queue)
		d.mu.Unlock()

		d.wg.Wait()
		d.log.Info("Notification dispatcher stopped")
	})
}
