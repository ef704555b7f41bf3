package dispatcher

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"medibook/internal/notifications/events"
	"medibook/pkg/kafka"
	"medibook/pkg/logger"
)

type publisherFunc func(ctx context.Context, event events.AppointmentBooked) error

func (f publisherFunc) Publish(ctx context.Context, event events.AppointmentBooked) error {
	return f(ctx, event)
}

type collector struct {
	mu     sync.Mutex
	events []events.AppointmentBooked
}

func (c *collector) Publish(_ context.Context, event events.AppointmentBooked) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, event)
	return nil
}

func (c *collector) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.events)
}

func TestDispatcher_DeliversQueuedEventsBeforeStop(t *testing.T) {
	c := &collector{}
	d := NewDispatcher(c, 3, 16, time.Second, logger.Discard())

	for i := 0; i < 10; i++ {
		if !d.NotifyAppointmentBooked(events.AppointmentBooked{AppointmentID: string(rune('a' + i))}) {
			t.Fatalf("event %d was rejected", i)
		}
	}
	d.Stop()

	if c.count() != 10 {
		t.Errorf("expected 10 delivered events, got %d", c.count())
	}
}

func TestDispatcher_DropsWhenQueueFull(t *testing.T) {
	started := make(chan struct{}, 1)
	release := make(chan struct{})
	var mu sync.Mutex
	delivered := 0

	d := NewDispatcher(publisherFunc(func(ctx context.Context, _ events.AppointmentBooked) error {
		started <- struct{}{}
		<-release
		mu.Lock()
		delivered++
		mu.Unlock()
		return nil
	}), 1, 1, time.Second, logger.Discard())

	if !d.NotifyAppointmentBooked(events.AppointmentBooked{AppointmentID: "1"}) {
		t.Fatal("first event rejected")
	}
	<-started

	if !d.NotifyAppointmentBooked(events.AppointmentBooked{AppointmentID: "2"}) {
		t.Fatal("second event should fit in the queue")
	}
	if d.NotifyAppointmentBooked(events.AppointmentBooked{AppointmentID: "3"}) {
		t.Fatal("third event should be dropped while the queue is full")
	}

	close(release)
	d.Stop()

	mu.Lock()
	defer mu.Unlock()
	if delivered != 2 {
		t.Errorf("expected 2 delivered events, got %d", delivered)
	}
}

func TestDispatcher_RejectsAfterStop(t *testing.T) {
	d := NewDispatcher(&collector{}, 1, 1, time.Second, logger.Discard())
	d.Stop()
	d.Stop()

	if d.NotifyAppointmentBooked(events.AppointmentBooked{AppointmentID: "late"}) {
		t.Error("stopped dispatcher must reject events")
	}
}

func TestDispatcher_SurvivesPublisherFailures(t *testing.T) {
	c := &collector{}
	calls := 0
	var mu sync.Mutex

	d := NewDispatcher(publisherFunc(func(ctx context.Context, event events.AppointmentBooked) error {
		mu.Lock()
		calls++
		n := calls
		mu.Unlock()
		switch n {
		case 1:
			return errors.New("storage down")
		case 2:
			panic("boom")
		}
		return c.Publish(ctx, event)
	}), 1, 4, time.Second, logger.Discard())

	for _, id := range []string{"1", "2", "3"} {
		d.NotifyAppointmentBooked(events.AppointmentBooked{AppointmentID: id})
	}
	d.Stop()

	if c.count() != 1 {
		t.Errorf("worker should keep going after failures, delivered %d", c.count())
	}
}

func TestDispatcher_AppliesTimeout(t *testing.T) {
	deadlineSet := make(chan bool, 1)
	d := NewDispatcher(publisherFunc(func(ctx context.Context, _ events.AppointmentBooked) error {
		_, ok := ctx.Deadline()
		deadlineSet <- ok
		return nil
	}), 1, 1, 50*time.Millisecond, logger.Discard())

	d.NotifyAppointmentBooked(events.AppointmentBooked{AppointmentID: "1"})
	d.Stop()

	if !<-deadlineSet {
		t.Error("publisher context must carry a deadline")
	}
}

type fakeRecorder struct {
	events []events.AppointmentBooked
	err    error
}

func (r *fakeRecorder) RecordAppointmentBooked(_ context.Context, event events.AppointmentBooked) error {
	r.events = append(r.events, event)
	return r.err
}

func TestDirectPublisher(t *testing.T) {
	recorder := &fakeRecorder{}
	p := NewDirectPublisher(recorder)

	if err := p.Publish(context.Background(), events.AppointmentBooked{AppointmentID: "a1"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(recorder.events) != 1 || recorder.events[0].AppointmentID != "a1" {
		t.Errorf("unexpected recorded events: %+v", recorder.events)
	}
}

type fakeProducer struct {
	messages []kafka.Message
	err      error
}

func (p *fakeProducer) Publish(_ context.Context, msg kafka.Message) error {
	p.messages = append(p.messages, msg)
	return p.err
}

func TestKafkaPublisher_BuildsEventMessage(t *testing.T) {
	producer := &fakeProducer{}
	p := NewKafkaPublisher(producer, "appointments")

	event := events.AppointmentBooked{AppointmentID: "a1", DoctorID: "d1", PatientID: "p1", Date: "2025-03-10", Time: "09:00 AM"}
	if err := p.Publish(context.Background(), event); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(producer.messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(producer.messages))
	}

	msg := producer.messages[0]
	if msg.Key != "d1" {
		t.Errorf("key = %q, want doctor id", msg.Key)
	}
	if msg.GetEventType() != events.AppointmentBookedType {
		t.Errorf("event type = %q", msg.GetEventType())
	}
	if msg.GetCorrelationID() != "a1" {
		t.Errorf("correlation id = %q", msg.GetCorrelationID())
	}
	if msg.GetEventID() == "" {
		t.Error("event id header missing")
	}

	var decoded events.AppointmentBooked
	if err := msg.DecodeValue(&decoded); err != nil {
		t.Fatalf("payload does not decode: %v", err)
	}
	if decoded.Time != "09:00 AM" || decoded.PatientID != "p1" {
		t.Errorf("unexpected payload: %+v", decoded)
	}

	producer.err = errors.New("broker down")
	if err := p.Publish(context.Background(), event); err == nil {
		t.Error("expected producer error to propagate")
	}
}
