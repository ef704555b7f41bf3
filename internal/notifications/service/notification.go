package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	notificationserrors "medibook/internal/notifications/errors"
	"medibook/internal/notifications/events"
	"medibook/internal/notifications/repository"
	"medibook/pkg/config"
	apperrors "medibook/pkg/errors"
	"medibook/pkg/model"
)

type NotificationService interface {
	RecordAppointmentBooked(ctx context.Context, event events.AppointmentBooked) error
	ListForUser(ctx context.Context, identifier string, limit int, offset int64) ([]*model.Notification, int64, error)
	MarkRead(ctx context.Context, id string) (*model.Notification, error)
}

// UserResolver resolves a user id or email.
type UserResolver interface {
	Lookup(ctx context.Context, identifier string) (*model.User, error)
}

type notificationService struct {
	repo  repository.NotificationRepository
	users UserResolver
	cfg   *config.Config
	now   func() time.Time
}

func NewNotificationService(repo repository.NotificationRepository, users UserResolver, cfg *config.Config) NotificationService {
	return &notificationService{
		repo:  repo,
		users: users,
		cfg:   cfg,
		now:   time.Now,
	}
}

// RecordAppointmentBooked stores the doctor's and the patient's notification. Each is
// attempted even if the other fails.
func (s *notificationService) RecordAppointmentBooked(ctx context.Context, event events.AppointmentBooked) error {
	var errs []error
	for _, notification := range event.Notifications(s.now().UTC()) {
		if err := s.repo.Create(ctx, notification); err != nil {
			s.cfg.Log.Error("Failed to record notification",
				"appointment_id", event.AppointmentID,
				"user_id", notification.UserID,
				"error", err,
			)
			errs = append(errs, fmt.Errorf("notification for %s: %w", notification.UserID, err))
			continue
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	s.cfg.Log.Info("Booking notifications recorded",
		"appointment_id", event.AppointmentID,
		"doctor_id", event.DoctorID,
		"patient_id", event.PatientID,
	)
	return nil
}

func (s *notificationService) ListForUser(ctx context.Context, identifier string, limit int, offset int64) ([]*model.Notification, int64, error) {
	user, err := s.users.Lookup(ctx, identifier)
	if err != nil {
		return nil, 0, err
	}
	userID := user.ID()

	var count int64
	var notifications []*model.Notification
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.CountByRecipient(ctx, userID)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count notifications", "user_id", userID, "error", errCount)
			errCount = apperrors.StorageUnavailable("notification", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		notifications, errFind = s.repo.FindByRecipient(ctx, userID, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list notifications", "user_id", userID, "error", errFind)
			errFind = apperrors.StorageUnavailable("notification", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return notifications, count, nil
}

// MarkRead is idempotent.
func (s *notificationService) MarkRead(ctx context.Context, id string) (*model.Notification, error) {
	if !model.IsValidID(id) {
		return nil, apperrors.InvalidInput("Invalid notification ID format")
	}

	notification, err := s.repo.MarkRead(ctx, id)
	if err != nil {
		if errors.Is(err, notificationserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Notification", id)
		}
		if errors.Is(err, notificationserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid notification ID format")
		}
		s.cfg.Log.Error("Failed to mark notification read", "id", id, "error", err)
		return nil, apperrors.StorageUnavailable("notification", err)
	}
	return notification, nil
}
