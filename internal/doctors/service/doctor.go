package service

import (
	"context"
	"errors"
	"sync"

	doctorserrors "medibook/internal/doctors/errors"
	"medibook/internal/doctors/repository"
	"medibook/internal/doctors/validator"
	"medibook/pkg/config"
	apperrors "medibook/pkg/errors"
	"medibook/pkg/model"
	"medibook/pkg/sanitizer"
)

type DoctorService interface {
	Create(ctx context.Context, doctor *model.Doctor) error
	GetByID(ctx context.Context, id string) (*model.Doctor, error)
	GetByEmail(ctx context.Context, email string) (*model.Doctor, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Doctor, int64, error)
}

type doctorService struct {
	repo      repository.DoctorRepository
	validator *validator.DoctorValidator
	cfg       *config.Config
}

func NewDoctorService(
	repo repository.DoctorRepository,
	validator *validator.DoctorValidator,
	cfg *config.Config,
) DoctorService {
	return &doctorService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *doctorService) Create(ctx context.Context, doctor *model.Doctor) error {
	doctor.ID = ""
	s.sanitize(doctor)
	if err := s.validator.Validate(doctor); err != nil {
		s.cfg.Log.Warn("Doctor validation failed", "error", err)
		return apperrors.Validation("Doctor validation failed", map[string]any{"error": err.Error()})
	}

	if err := s.repo.Create(ctx, doctor); err != nil {
		if errors.Is(err, doctorserrors.ErrDuplicateEmail) {
			return apperrors.Conflict("A doctor with this email already exists")
		}
		s.cfg.Log.Error("Failed to create doctor", "error", err)
		return apperrors.StorageUnavailable("doctor", err)
	}

	s.cfg.Log.Info("Doctor created successfully",
		"id", doctor.ID,
		"specialization", doctor.Specialization,
	)
	return nil
}

func (s *doctorService) GetByID(ctx context.Context, id string) (*model.Doctor, error) {
	if !model.IsValidID(id) {
		return nil, apperrors.InvalidInput("Invalid doctor ID format")
	}

	doctor, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.translateFindError(err, "id", id)
	}
	return doctor, nil
}

func (s *doctorService) GetByEmail(ctx context.Context, email string) (*model.Doctor, error) {
	email = sanitizer.NormalizeEmail(email)
	if email == "" {
		return nil, apperrors.InvalidInput("Email cannot be empty")
	}

	doctor, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, s.translateFindError(err, "email", email)
	}
	return doctor, nil
}

func (s *doctorService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Doctor, int64, error) {
	var count int64
	var doctors []*model.Doctor
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count doctors", "error", errCount)
			errCount = apperrors.StorageUnavailable("doctor", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		doctors, errFind = s.repo.FindAll(ctx, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list doctors", "error", errFind)
			errFind = apperrors.StorageUnavailable("doctor", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return doctors, count, nil
}

func (s *doctorService) translateFindError(err error, key, value string) error {
	if errors.Is(err, doctorserrors.ErrNotFound) {
		return apperrors.NotFound("Doctor").WithDetails(map[string]any{key: value})
	}
	if errors.Is(err, doctorserrors.ErrInvalidID) {
		return apperrors.InvalidInput("Invalid doctor ID format")
	}
	s.cfg.Log.Error("Failed to retrieve doctor", key, value, "error", err)
	return apperrors.StorageUnavailable("doctor", err)
}

func (s *doctorService) sanitize(d *model.Doctor) {
	d.Name = sanitizer.NormalizeName(d.Name)
	d.Email = sanitizer.NormalizeEmail(d.Email)
	d.Specialization = sanitizer.NormalizeName(d.Specialization)
	d.Gender = model.Gender(sanitizer.NormalizeChoice(string(d.Gender)))
	if phone := sanitizer.NormalizePhone(d.PhoneNumber, s.cfg.DefaultPhoneRegion); phone != "" {
		d.PhoneNumber = phone
	}
}
