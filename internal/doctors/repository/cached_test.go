package repository

import (
	"context"
	"errors"
	"testing"

	doctorserrors "medibook/internal/doctors/errors"
	"medibook/pkg/model"
)

type countingRepository struct {
	DoctorRepository
	doctors map[string]*model.Doctor
	calls   int
}

func (r *countingRepository) FindByID(_ context.Context, id string) (*model.Doctor, error) {
	r.calls++
	if d, ok := r.doctors[id]; ok {
		copied := *d
		return &copied, nil
	}
	return nil, doctorserrors.ErrNotFound
}

func (r *countingRepository) Create(_ context.Context, doctor *model.Doctor) error {
	doctor.ID = "65f0c0ffee0000000000000c"
	return nil
}

func TestCachedDoctorRepository_FindByID(t *testing.T) {
	inner := &countingRepository{doctors: map[string]*model.Doctor{
		"65f0c0ffee0000000000000a": {ID: "65f0c0ffee0000000000000a", Name: "Ada Smith"},
	}}
	repo, err := NewCachedDoctorRepository(inner, 8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := 0; i < 3; i++ {
		doctor, err := repo.FindByID(context.Background(), "65f0c0ffee0000000000000a")
		if err != nil || doctor.Name != "Ada Smith" {
			t.Fatalf("unexpected result: %+v, %v", doctor, err)
		}
	}
	if inner.calls != 1 {
		t.Errorf("expected a single backing lookup, got %d", inner.calls)
	}

	for i := 0; i < 2; i++ {
		if _, err := repo.FindByID(context.Background(), "65f0c0ffee0000000000000b"); !errors.Is(err, doctorserrors.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	}
	if inner.calls != 3 {
		t.Errorf("misses must not be cached, got %d backing lookups", inner.calls)
	}
}

func TestCachedDoctorRepository_CreateWarmsCache(t *testing.T) {
	inner := &countingRepository{doctors: map[string]*model.Doctor{}}
	repo, err := NewCachedDoctorRepository(inner, 8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	doctor := &model.Doctor{Name: "Grace Hopper"}
	if err := repo.Create(context.Background(), doctor); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found, err := repo.FindByID(context.Background(), doctor.ID)
	if err != nil || found.Name != "Grace Hopper" {
		t.Fatalf("unexpected result: %+v, %v", found, err)
	}
	if inner.calls != 0 {
		t.Errorf("expected cache hit, got %d backing lookups", inner.calls)
	}
}

func TestCachedDoctorRepository_ReturnsCopies(t *testing.T) {
	inner := &countingRepository{doctors: map[string]*model.Doctor{
		"65f0c0ffee0000000000000a": {ID: "65f0c0ffee0000000000000a", Name: "Ada Smith"},
	}}
	repo, _ := NewCachedDoctorRepository(inner, 8)

	first, _ := repo.FindByID(context.Background(), "65f0c0ffee0000000000000a")
	first.Name = "mutated"

	second, _ := repo.FindByID(context.Background(), "65f0c0ffee0000000000000a")
	if second.Name != "Ada Smith" {
		t.Errorf("cached entry was mutated through a returned pointer: %q", second.Name)
	}
}
