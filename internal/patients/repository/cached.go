package repository

import (
	"context"

	"medibook/pkg/cache"
	"medibook/pkg/model"
)

// cachedPatientRepository serves FindByID from an LRU.
type cachedPatientRepository struct {
	PatientRepository
	cache *cache.Cache[model.Patient]
}

func NewCachedPatientRepository(repo PatientRepository, size int) (PatientRepository, error) {
	c, err := cache.New[model.Patient](size)
	if err != nil {
		return nil, err
	}
	return &cachedPatientRepository{
		PatientRepository: repo,
		cache:            c,
	}, nil
}

func (r *cachedPatientRepository) FindByID(ctx context.Context, id string) (*model.Patient, error) {
	if patient, ok := r.cache.Get(id); ok {
		return &patient, nil
	}

	patient, err := r.PatientRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.cache.Add(id, *patient)
	return patient, nil
}

func (r *cachedPatientRepository) Create(ctx context.Context, patient *model.Patient) error {
	if err := r.PatientRepository.Create(ctx, patient); err != nil {
		return err
	}
	r.cache.Add(patient.ID, *patient)
	return nil
}
