package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	doctorserrors "medibook/internal/doctors/errors"
	doctorsrepo "medibook/internal/doctors/repository"
	patientserrors "medibook/internal/patients/errors"
	patientsrepo "medibook/internal/patients/repository"
	"medibook/pkg/config"
	apperrors "medibook/pkg/errors"
	"medibook/pkg/model"
	"medibook/pkg/sanitizer"
)

type UserService interface {
	Lookup(ctx context.Context, identifier string) (*model.User, error)
}

type userService struct {
	doctors  doctorsrepo.DoctorRepository
	patients patientsrepo.PatientRepository
	cfg      *config.Config
}

func NewUserService(doctors doctorsrepo.DoctorRepository, patients patientsrepo.PatientRepository, cfg *config.Config) UserService {
	return &userService{
		doctors:  doctors,
		patients: patients,
		cfg:      cfg,
	}
}

// Lookup resolves identifier as an email when it contains "@", otherwise as an id.
// Doctors and patients are queried concurrently; a doctor match wins.
func (s *userService) Lookup(ctx context.Context, identifier string) (*model.User, error) {
	identifier = strings.TrimSpace(identifier)

	var findDoctor func(context.Context, string) (*model.Doctor, error)
	var findPatient func(context.Context, string) (*model.Patient, error)
	switch {
	case strings.Contains(identifier, "@"):
		identifier = sanitizer.NormalizeEmail(identifier)
		findDoctor, findPatient = s.doctors.FindByEmail, s.patients.FindByEmail
	case model.IsValidID(identifier):
		findDoctor, findPatient = s.doctors.FindByID, s.patients.FindByID
	default:
		return nil, apperrors.InvalidInput("Identifier must be a user ID or an email address")
	}

	var doctor *model.Doctor
	var patient *model.Patient
	var errDoctor, errPatient error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		doctor, errDoctor = findDoctor(ctx, identifier)
	}()

	go func() {
		defer wg.Done()
		patient, errPatient = findPatient(ctx, identifier)
	}()

	wg.Wait()

	if errDoctor == nil {
		return model.DoctorUser(doctor), nil
	}
	if errPatient == nil {
		return model.PatientUser(patient), nil
	}

	doctorMissing := errors.Is(errDoctor, doctorserrors.ErrNotFound)
	patientMissing := errors.Is(errPatient, patientserrors.ErrNotFound)
	if doctorMissing && patientMissing {
		return nil, apperrors.NotFound("User").WithDetails(map[string]any{"identifier": identifier})
	}

	cause := errDoctor
	if doctorMissing {
		cause = errPatient
	}
	s.cfg.Log.Error("Failed to look up user", "identifier", identifier, "error", cause)
	return nil, apperrors.StorageUnavailable("user", cause)
}
