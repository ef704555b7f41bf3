package service

import (
	"context"
	"testing"
	"time"

	patientserrors "medibook/internal/patients/errors"
	"medibook/internal/patients/validator"
	"medibook/pkg/config"
	apperrors "medibook/pkg/errors"
	"medibook/pkg/logger"
	"medibook/pkg/model"
)

type mockPatientRepository struct {
	created []*model.Patient
	err     error
}

func (m *mockPatientRepository) Create(_ context.Context, patient *model.Patient) error {
	if m.err != nil {
		return m.err
	}
	patient.ID = "65f0c0ffee0000000000000b"
	m.created = append(m.created, patient)
	return nil
}

func (m *mockPatientRepository) FindByID(_ context.Context, id string) (*model.Patient, error) {
	for _, p := range m.created {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, patientserrors.ErrNotFound
}

func (m *mockPatientRepository) FindByEmail(_ context.Context, email string) (*model.Patient, error) {
	for _, p := range m.created {
		if p.Email == email {
			return p, nil
		}
	}
	return nil, patientserrors.ErrNotFound
}

func (m *mockPatientRepository) FindAll(_ context.Context, _ int, _ int64) ([]*model.Patient, error) {
	return m.created, nil
}

func (m *mockPatientRepository) Count(_ context.Context) (int64, error) {
	return int64(len(m.created)), nil
}

func newTestService(repo *mockPatientRepository) PatientService {
	log := logger.Discard()
	return NewPatientService(repo, validator.NewPatientValidator(log), &config.Config{Log: log, DefaultPhoneRegion: "GB"})
}

func TestCreate_StoresSanitizedPatient(t *testing.T) {
	repo := &mockPatientRepository{}
	service := newTestService(repo)

	patient := &model.Patient{
		Name:           "Bob\x00 Jones",
		Email:          "BOB@example.com",
		PhoneNumber:    "020 7946 0018",
		DateOfBirth:    time.Date(1990, time.January, 2, 0, 0, 0, 0, time.UTC),
		Gender:         model.Male,
		HealthInfo:     "  allergic to penicillin \n",
		MedicalHistory: "appendectomy 2010",
	}
	if err := service.Create(context.Background(), patient); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if patient.Name != "Bob Jones" {
		t.Errorf("name = %q", patient.Name)
	}
	if patient.PhoneNumber != "+442079460018" {
		t.Errorf("phone = %q", patient.PhoneNumber)
	}
	if patient.HealthInfo != "allergic to penicillin" {
		t.Errorf("health info = %q", patient.HealthInfo)
	}

	found, err := service.GetByEmail(context.Background(), "bob@EXAMPLE.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.ID != patient.ID {
		t.Errorf("found %q, want %q", found.ID, patient.ID)
	}
}

func TestCreate_DuplicateEmailConflicts(t *testing.T) {
	service := newTestService(&mockPatientRepository{err: patientserrors.ErrDuplicateEmail})

	err := service.Create(context.Background(), &model.Patient{
		Name:        "Bob Jones",
		Email:       "bob@example.com",
		PhoneNumber: "+442079460018",
		DateOfBirth: time.Date(1990, time.January, 2, 0, 0, 0, 0, time.UTC),
		Gender:      model.Male,
	})
	if !apperrors.HasCode(err, apperrors.CodeConflict) {
		t.Fatalf("expected CONFLICT, got %v", err)
	}
}

func TestGetByID_UnknownPatient(t *testing.T) {
	service := newTestService(&mockPatientRepository{})

	if _, err := service.GetByID(context.Background(), "65f0c0ffee0000000000000f"); !apperrors.HasCode(err, apperrors.CodeNotFound) {
		t.Errorf("expected NOT_FOUND, got %v", err)
	}
}
