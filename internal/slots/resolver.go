package slots

import (
	"context"
	"errors"

	appointmentsrepo "medibook/internal/appointments/repository"
	doctorserrors "medibook/internal/doctors/errors"
	apperrors "medibook/pkg/errors"
	"medibook/pkg/logger"
	"medibook/pkg/model"
)

type DoctorFinder interface {
	FindByID(ctx context.Context, id string) (*model.Doctor, error)
}

type AppointmentFinder interface {
	Find(ctx context.Context, filter appointmentsrepo.AppointmentFilter) ([]*model.Appointment, error)
}

// Resolver computes a doctor's slot availability for one day.
type Resolver struct {
	grid         Grid
	doctors      DoctorFinder
	appointments AppointmentFinder
	log          *logger.Logger
}

func NewResolver(grid Grid, doctors DoctorFinder, appointments AppointmentFinder, log *logger.Logger) *Resolver {
	return &Resolver{
		grid:         grid,
		doctors:      doctors,
		appointments: appointments,
		log:          log,
	}
}

func (r *Resolver) Grid() Grid {
	return r.grid
}

// Resolve returns every grid slot for the date in grid order. A slot is unavailable when a
// non-cancelled appointment holds its exact label.
func (r *Resolver) Resolve(ctx context.Context, doctorID, date string) ([]model.Slot, error) {
	if !model.IsValidID(doctorID) {
		return nil, apperrors.InvalidInput("Invalid doctor ID format")
	}
	if _, err := ParseDate(date); err != nil {
		return nil, apperrors.InvalidInput(err.Error())
	}

	if _, err := r.doctors.FindByID(ctx, doctorID); err != nil {
		if errors.Is(err, doctorserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Doctor", doctorID)
		}
		r.log.Error("Failed to load doctor for availability", "doctor_id", doctorID, "error", err)
		return nil, apperrors.StorageUnavailable("doctor", err)
	}

	booked, err := r.appointments.Find(ctx, appointmentsrepo.AppointmentFilter{
		DoctorID:      doctorID,
		Date:          date,
		ExcludeStatus: model.StatusCancelled,
	})
	if err != nil {
		r.log.Error("Failed to load appointments for availability",
			"doctor_id", doctorID,
			"date", date,
			"error", err,
		)
		return nil, apperrors.StorageUnavailable("appointment", err)
	}

	slots := Annotate(r.grid.Labels(), booked)
	r.log.Debug("Availability resolved",
		"doctor_id", doctorID,
		"date", date,
		"slots", len(slots),
		"booked", len(booked),
	)
	return slots, nil
}

// Annotate marks each label unavailable when a booked appointment holds it.
func Annotate(labels []string, appointments []*model.Appointment) []model.Slot {
	taken := make(map[string]struct{}, len(appointments))
	for _, a := range appointments {
		if a.Status == model.StatusCancelled {
			continue
		}
		taken[a.Time] = struct{}{}
	}

	slots := make([]model.Slot, 0, len(labels))
	for _, label := range labels {
		_, isTaken := taken[label]
		slots = append(slots, model.Slot{Time: label, Available: !isTaken})
	}
	return slots
}
