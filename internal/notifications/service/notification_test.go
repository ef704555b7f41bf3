package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	notificationserrors "medibook/internal/notifications/errors"
	"medibook/internal/notifications/events"
	"medibook/pkg/config"
	apperrors "medibook/pkg/errors"
	"medibook/pkg/logger"
	"medibook/pkg/model"
)

const (
	doctorID  = "65f0c0ffee0000000000000a"
	patientID = "65f0c0ffee0000000000000b"
)

type memoryNotificationRepository struct {
	mu            sync.Mutex
	notifications []*model.Notification
	failFor       string
}

func (r *memoryNotificationRepository) Create(_ context.Context, n *model.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if n.UserID == r.failFor {
		return errors.New("write concern timeout")
	}
	n.ID = fmt.Sprintf("%024x", len(r.notifications)+1)
	r.notifications = append(r.notifications, n)
	return nil
}

func (r *memoryNotificationRepository) FindByRecipient(_ context.Context, userID string, limit int, offset int64) ([]*model.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Notification
	for _, n := range r.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memoryNotificationRepository) CountByRecipient(ctx context.Context, userID string) (int64, error) {
	found, _ := r.FindByRecipient(ctx, userID, 0, 0)
	return int64(len(found)), nil
}

func (r *memoryNotificationRepository) MarkRead(_ context.Context, id string) (*model.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.notifications {
		if n.ID == id {
			n.Read = true
			return n, nil
		}
	}
	return nil, notificationserrors.ErrNotFound
}

type stubUsers map[string]*model.User

func (s stubUsers) Lookup(_ context.Context, identifier string) (*model.User, error) {
	if u, ok := s[identifier]; ok {
		return u, nil
	}
	return nil, apperrors.NotFound("User")
}

func newTestService(repo *memoryNotificationRepository) NotificationService {
	users := stubUsers{
		"ada@example.com": model.DoctorUser(&model.Doctor{ID: doctorID, Name: "Ada Smith"}),
		patientID:         model.PatientUser(&model.Patient{ID: patientID, Name: "Bob Jones"}),
	}
	return NewNotificationService(repo, users, &config.Config{Log: logger.Discard()})
}

var booked = events.AppointmentBooked{
	AppointmentID: "a1",
	DoctorID:      doctorID,
	DoctorName:    "Ada Smith",
	PatientID:     patientID,
	PatientName:   "Bob Jones",
	Date:          "2025-03-10",
	Time:          "09:00 AM",
}

func TestRecordAppointmentBooked_CreatesBothNotifications(t *testing.T) {
	repo := &memoryNotificationRepository{}
	service := newTestService(repo)

	if err := service.RecordAppointmentBooked(context.Background(), booked); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(repo.notifications) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(repo.notifications))
	}
	byUser := map[string]string{}
	for _, n := range repo.notifications {
		byUser[n.UserID] = n.Message
		if n.Read {
			t.Error("notifications start unread")
		}
	}
	if byUser[doctorID] != "New appointment booked with Bob Jones on 2025-03-10 at 09:00 AM" {
		t.Errorf("doctor message = %q", byUser[doctorID])
	}
	if byUser[patientID] != "Your appointment with Dr. Ada Smith is booked on 2025-03-10 at 09:00 AM" {
		t.Errorf("patient message = %q", byUser[patientID])
	}
}

func TestRecordAppointmentBooked_OneFailureDoesNotBlockTheOther(t *testing.T) {
	repo := &memoryNotificationRepository{failFor: doctorID}
	service := newTestService(repo)

	if err := service.RecordAppointmentBooked(context.Background(), booked); err == nil {
		t.Fatal("expected the doctor's failure to be reported")
	}
	if len(repo.notifications) != 1 || repo.notifications[0].UserID != patientID {
		t.Errorf("patient notification should still be stored: %+v", repo.notifications)
	}
}

func TestListForUser_ByEmailAndID(t *testing.T) {
	repo := &memoryNotificationRepository{}
	service := newTestService(repo)
	ctx := context.Background()

	older := &model.Notification{UserID: doctorID, Message: "older", CreatedAt: time.Now().Add(-time.Hour)}
	newer := &model.Notification{UserID: doctorID, Message: "newer", CreatedAt: time.Now()}
	for _, n := range []*model.Notification{older, newer} {
		if err := repo.Create(ctx, n); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	notifications, total, err := service.ListForUser(ctx, "ada@example.com", 10, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 2 || len(notifications) != 2 {
		t.Fatalf("got total=%d len=%d", total, len(notifications))
	}
	if notifications[0].Message != "newer" {
		t.Errorf("expected newest first, got %q", notifications[0].Message)
	}

	notifications, _, err = service.ListForUser(ctx, patientID, 10, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(notifications) != 0 {
		t.Errorf("expected no notifications for the patient, got %d", len(notifications))
	}

	if _, _, err := service.ListForUser(ctx, "ghost@example.com", 10, 0); !apperrors.HasCode(err, apperrors.CodeNotFound) {
		t.Errorf("expected NOT_FOUND, got %v", err)
	}
}

func TestMarkRead(t *testing.T) {
	repo := &memoryNotificationRepository{}
	service := newTestService(repo)
	ctx := context.Background()

	n := &model.Notification{UserID: patientID, Message: "hello"}
	if err := repo.Create(ctx, n); err != nil {
		t.Fatalf("seed: %v", err)
	}

	for i := 0; i < 2; i++ {
		read, err := service.MarkRead(ctx, n.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !read.Read {
			t.Error("notification should be read")
		}
	}

	if _, err := service.MarkRead(ctx, "nope"); !apperrors.HasCode(err, apperrors.CodeInvalidInput) {
		t.Errorf("expected INVALID_INPUT, got %v", err)
	}
	if _, err := service.MarkRead(ctx, "65f0c0ffee0000000000000f"); !apperrors.HasCode(err, apperrors.CodeNotFound) {
		t.Errorf("expected NOT_FOUND, got %v", err)
	}
}
