package service

import (
	"context"
	"errors"
	"sync"

	patientserrors "medibook/internal/patients/errors"
	"medibook/internal/patients/repository"
	"medibook/internal/patients/validator"
	"medibook/pkg/config"
	apperrors "medibook/pkg/errors"
	"medibook/pkg/model"
	"medibook/pkg/sanitizer"
)

type PatientService interface {
	Create(ctx context.Context, patient *model.Patient) error
	GetByID(ctx context.Context, id string) (*model.Patient, error)
	GetByEmail(ctx context.Context, email string) (*model.Patient, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Patient, int64, error)
}

type patientService struct {
	repo      repository.PatientRepository
	validator *validator.PatientValidator
	cfg       *config.Config
}

func NewPatientService(
	repo repository.PatientRepository,
	validator *validator.PatientValidator,
	cfg *config.Config,
) PatientService {
	return &patientService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *patientService) Create(ctx context.Context, patient *model.Patient) error {
	patient.ID = ""
	s.sanitize(patient)
	if err := s.validator.Validate(patient); err != nil {
		s.cfg.Log.Warn("Patient validation failed", "error", err)
		return apperrors.Validation("Patient validation failed", map[string]any{"error": err.Error()})
	}

	if err := s.repo.Create(ctx, patient); err != nil {
		if errors.Is(err, patientserrors.ErrDuplicateEmail) {
			return apperrors.Conflict("A patient with this email already exists")
		}
		s.cfg.Log.Error("Failed to create patient", "error", err)
		return apperrors.StorageUnavailable("patient", err)
	}

	s.cfg.Log.Info("Patient created successfully", "id", patient.ID)
	return nil
}

func (s *patientService) GetByID(ctx context.Context, id string) (*model.Patient, error) {
	if !model.IsValidID(id) {
		return nil, apperrors.InvalidInput("Invalid patient ID format")
	}

	patient, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.translateFindError(err, "id", id)
	}
	return patient, nil
}

func (s *patientService) GetByEmail(ctx context.Context, email string) (*model.Patient, error) {
	email = sanitizer.NormalizeEmail(email)
	if email == "" {
		return nil, apperrors.InvalidInput("Email cannot be empty")
	}

	patient, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, s.translateFindError(err, "email", email)
	}
	return patient, nil
}

func (s *patientService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Patient, int64, error) {
	var count int64
	var patients []*model.Patient
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count patients", "error", errCount)
			errCount = apperrors.StorageUnavailable("patient", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		patients, errFind = s.repo.FindAll(ctx, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list patients", "error", errFind)
			errFind = apperrors.StorageUnavailable("patient", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return patients, count, nil
}

func (s *patientService) translateFindError(err error, key, value string) error {
	if errors.Is(err, patientserrors.ErrNotFound) {
		return apperrors.NotFound("Patient").WithDetails(map[string]any{key: value})
	}
	if errors.Is(err, patientserrors.ErrInvalidID) {
		return apperrors.InvalidInput("Invalid patient ID format")
	}
	s.cfg.Log.Error("Failed to retrieve patient", key, value, "error", err)
	return apperrors.StorageUnavailable("patient", err)
}

func (s *patientService) sanitize(p *model.Patient) {
	p.Name = sanitizer.NormalizeName(p.Name)
	p.Email = sanitizer.NormalizeEmail(p.Email)
	p.HealthInfo = sanitizer.NormalizeText(p.HealthInfo)
	p.Conditions = sanitizer.NormalizeText(p.Conditions)
	p.MedicalHistory = sanitizer.NormalizeText(p.MedicalHistory)
	p.Gender = model.Gender(sanitizer.NormalizeChoice(string(p.Gender)))
	if phone := sanitizer.NormalizePhone(p.PhoneNumber, s.cfg.DefaultPhoneRegion); phone != "" {
		p.PhoneNumber = phone
	}
}
