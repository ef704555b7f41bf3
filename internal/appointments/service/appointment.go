package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	appointmentserrors "medibook/internal/appointments/errors"
	"medibook/internal/appointments/repository"
	"medibook/internal/appointments/validator"
	doctorserrors "medibook/internal/doctors/errors"
	"medibook/internal/notifications/events"
	patientserrors "medibook/internal/patients/errors"
	"medibook/internal/slots"
	"medibook/pkg/config"
	apperrors "medibook/pkg/errors"
	"medibook/pkg/model"
	"medibook/pkg/sanitizer"
)

const slotTakenMessage = "slot already booked"

// Clock returns the current instant. Tests inject a fixed one.
type Clock func() time.Time

type BookRequest struct {
	DoctorID    string `json:"doctor_id"`
	PatientID   string `json:"patient_id"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Description string `json:"description,omitempty"`
}

// ListFilter selects appointments by exactly one participant.
type ListFilter struct {
	DoctorID  string
	PatientID string
}

type AppointmentService interface {
	Availability(ctx context.Context, doctorID, date string) ([]model.Slot, error)
	Book(ctx context.Context, req BookRequest) (*model.Appointment, error)
	Cancel(ctx context.Context, id string) (*model.Appointment, error)
	GetByID(ctx context.Context, id string) (*model.Appointment, error)
	ListAll(ctx context.Context, filter ListFilter) (*model.CategorizedAppointments, error)
}

type PatientFinder interface {
	FindByID(ctx context.Context, id string) (*model.Patient, error)
}

// Notifier accepts booking events without blocking.
type Notifier interface {
	NotifyAppointmentBooked(event events.AppointmentBooked) bool
}

type appointmentService struct {
	repo      repository.AppointmentRepository
	lockRepo  repository.AppointmentLockRepository
	doctors   slots.DoctorFinder
	patients  PatientFinder
	resolver  *slots.Resolver
	validator *validator.AppointmentValidator
	notifier  Notifier
	cfg       *config.Config
	clock     Clock
}

func NewAppointmentService(
	repo repository.AppointmentRepository,
	lockRepo repository.AppointmentLockRepository,
	doctors slots.DoctorFinder,
	patients PatientFinder,
	resolver *slots.Resolver,
	validator *validator.AppointmentValidator,
	notifier Notifier,
	cfg *config.Config,
	clock Clock,
) AppointmentService {
	if clock == nil {
		clock = time.Now
	}
	return &appointmentService{
		repo:      repo,
		lockRepo:  lockRepo,
		doctors:   doctors,
		patients:  patients,
		resolver:  resolver,
		validator: validator,
		notifier:  notifier,
		cfg:       cfg,
		clock:     clock,
	}
}

func (s *appointmentService) Availability(ctx context.Context, doctorID, date string) ([]model.Slot, error) {
	return s.resolver.Resolve(ctx, strings.TrimSpace(doctorID), strings.TrimSpace(date))
}

func (s *appointmentService) Book(ctx context.Context, req BookRequest) (*model.Appointment, error) {
	appointment := &model.Appointment{
		DoctorID:    strings.TrimSpace(req.DoctorID),
		PatientID:   strings.TrimSpace(req.PatientID),
		Date:        strings.TrimSpace(req.Date),
		Time:        strings.TrimSpace(req.Time),
		Description: sanitizer.NormalizeText(req.Description),
		Status:      model.StatusBooked,
	}
	if err := s.validator.Validate(appointment); err != nil {
		s.cfg.Log.Warn("Appointment validation failed", "error", err)
		return nil, apperrors.InvalidInput("Appointment validation failed").
			WithDetails(map[string]any{"error": err.Error()})
	}

	doctor, err := s.getDoctor(ctx, appointment.DoctorID)
	if err != nil {
		return nil, err
	}
	patient, err := s.getPatient(ctx, appointment.PatientID)
	if err != nil {
		return nil, err
	}

	lockID, err := s.acquireSlotLock(ctx, appointment)
	if err != nil {
		return nil, err
	}
	defer func() {
		if releaseErr := s.releaseSlotLock(ctx, lockID); releaseErr != nil {
			s.cfg.Log.Warn("Failed to release appointment lock", "lock_id", lockID, "error", releaseErr)
		}
	}()

	err = s.repo.ExecuteTransaction(ctx, func(txCtx context.Context) error {
		existing, err := s.repo.Find(txCtx, repository.AppointmentFilter{
			DoctorID:      appointment.DoctorID,
			Date:          appointment.Date,
			Time:          appointment.Time,
			ExcludeStatus: model.StatusCancelled,
		})
		if err != nil {
			return apperrors.StorageUnavailable("appointment", err)
		}
		if len(existing) > 0 {
			return apperrors.Conflict(slotTakenMessage)
		}

		appointment.CreatedAt = s.clock().UTC()
		if err := s.repo.Create(txCtx, appointment); err != nil {
			if errors.Is(err, appointmentserrors.ErrSlotTaken) {
				return apperrors.Conflict(slotTakenMessage)
			}
			return apperrors.StorageUnavailable("appointment", err)
		}
		return nil
	})
	if err != nil {
		if apperrors.HasCode(err, apperrors.CodeConflict) {
			s.cfg.Log.Info("Slot already booked",
				"doctor_id", appointment.DoctorID,
				"date", appointment.Date,
				"time", appointment.Time,
			)
			return nil, err
		}
		s.cfg.Log.Error("Failed to book appointment", "error", err)
		if apperrors.IsAppError(err) {
			return nil, err
		}
		return nil, apperrors.StorageUnavailable("appointment", err)
	}

	s.cfg.Log.Info("Appointment booked successfully",
		"id", appointment.ID,
		"doctor_id", appointment.DoctorID,
		"patient_id", appointment.PatientID,
		"date", appointment.Date,
		"time", appointment.Time,
	)

	if s.notifier != nil {
		s.notifier.NotifyAppointmentBooked(events.NewAppointmentBooked(appointment, doctor, patient))
	}
	return appointment, nil
}

// Cancel is idempotent: cancelling a cancelled appointment returns it unchanged.
func (s *appointmentService) Cancel(ctx context.Context, id string) (*model.Appointment, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if existing.Status == model.StatusCancelled {
		s.cfg.Log.Debug("Appointment already cancelled", "id", id)
		return existing, nil
	}
	if !existing.Status.CanTransitionTo(model.StatusCancelled) {
		return nil, apperrors.Conflict(fmt.Sprintf("Appointment in status %q cannot be cancelled", existing.Status))
	}

	updated, err := s.repo.UpdateStatus(ctx, id, model.StatusCancelled)
	if err != nil {
		return nil, s.translateFindError(err, id)
	}

	s.cfg.Log.Info("Appointment cancelled successfully",
		"id", id,
		"doctor_id", updated.DoctorID,
		"date", updated.Date,
		"time", updated.Time,
	)
	return updated, nil
}

func (s *appointmentService) GetByID(ctx context.Context, id string) (*model.Appointment, error) {
	if !model.IsValidID(id) {
		return nil, apperrors.InvalidInput("Invalid appointment ID format")
	}

	appointment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.translateFindError(err, id)
	}
	return appointment, nil
}

func (s *appointmentService) ListAll(ctx context.Context, filter ListFilter) (*model.CategorizedAppointments, error) {
	filter.DoctorID = strings.TrimSpace(filter.DoctorID)
	filter.PatientID = strings.TrimSpace(filter.PatientID)

	if (filter.DoctorID == "") == (filter.PatientID == "") {
		return nil, apperrors.InvalidInput("Exactly one of doctor_id or patient_id is required")
	}

	if id := filter.DoctorID + filter.PatientID; !model.IsValidID(id) {
		return nil, apperrors.InvalidInput("Invalid user ID format")
	}

	appointments, err := s.repo.Find(ctx, repository.AppointmentFilter{
		DoctorID:  filter.DoctorID,
		PatientID: filter.PatientID,
	})
	if err != nil {
		s.cfg.Log.Error("Failed to list appointments",
			"doctor_id", filter.DoctorID,
			"patient_id", filter.PatientID,
			"error", err,
		)
		return nil, apperrors.StorageUnavailable("appointment", err)
	}

	return Categorize(appointments, s.clock()), nil
}

func (s *appointmentService) getDoctor(ctx context.Context, id string) (*model.Doctor, error) {
	doctor, err := s.doctors.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, doctorserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Doctor", id)
		}
		s.cfg.Log.Error("Failed to load doctor", "doctor_id", id, "error", err)
		return nil, apperrors.StorageUnavailable("doctor", err)
	}
	return doctor, nil
}

func (s *appointmentService) getPatient(ctx context.Context, id string) (*model.Patient, error) {
	patient, err := s.patients.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, patientserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Patient", id)
		}
		s.cfg.Log.Error("Failed to load patient", "patient_id", id, "error", err)
		return nil, apperrors.StorageUnavailable("patient", err)
	}
	return patient, nil
}

func (s *appointmentService) translateFindError(err error, id string) error {
	if errors.Is(err, appointmentserrors.ErrNotFound) {
		return apperrors.NotFoundWithID("Appointment", id)
	}
	if errors.Is(err, appointmentserrors.ErrInvalidID) {
		return apperrors.InvalidInput("Invalid appointment ID format")
	}
	s.cfg.Log.Error("Failed to access appointment", "id", id, "error", err)
	return apperrors.StorageUnavailable("appointment", err)
}

func slotLockID(doctorID, date, label string) string {
	return fmt.Sprintf("appointment_lock_%s_%s_%s", doctorID, date, label)
}

// acquireSlotLock inserts the advisory lock for the appointment's slot. A held lock
// means another request is booking the same slot right now.
func (s *appointmentService) acquireSlotLock(ctx context.Context, appointment *model.Appointment) (string, error) {
	lockID := slotLockID(appointment.DoctorID, appointment.Date, appointment.Time)

	lock := &model.AppointmentLock{
		ID:        lockID,
		ExpiresAt: time.Now().Add(s.cfg.BookingLockTTL),
	}

	if _, err := s.lockRepo.Create(ctx, lock); err != nil {
		if errors.Is(err, appointmentserrors.ErrLockHeld) {
			s.cfg.Log.Info("Slot is locked by a concurrent booking", "lock_id", lockID)
			return "", apperrors.Conflict(slotTakenMessage)
		}
		s.cfg.Log.Error("Failed to acquire appointment lock", "lock_id", lockID, "error", err)
		return "", apperrors.StorageUnavailable("appointment lock", err)
	}

	return lockID, nil
}

// releaseSlotLock runs even when the request context is already cancelled.
func (s *appointmentService) releaseSlotLock(ctx context.Context, lockID string) error {
	return s.lockRepo.Delete(context.WithoutCancel(ctx), lockID)
}
