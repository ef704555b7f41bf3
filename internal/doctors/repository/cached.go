package repository

import (
	"context"

	"medibook/pkg/cache"
	"medibook/pkg/model"
)

// cachedDoctorRepository serves FindByID from an LRU. Doctors are never updated after
// creation, so entries do not need invalidation.
type cachedDoctorRepository struct {
	DoctorRepository
	cache *cache.Cache[model.Doctor]
}

func NewCachedDoctorRepository(repo DoctorRepository, size int) (DoctorRepository, error) {
	c, err := cache.New[model.Doctor](size)
	if err != nil {
		return nil, err
	}
	return &cachedDoctorRepository{
		DoctorRepository: repo,
		cache:            c,
	}, nil
}

func (r *cachedDoctorRepository) FindByID(ctx context.Context, id string) (*model.Doctor, error) {
	if doctor, ok := r.cache.Get(id); ok {
		return &doctor, nil
	}

	doctor, err := r.DoctorRepository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.cache.Add(id, *doctor)
	return doctor, nil
}

func (r *cachedDoctorRepository) Create(ctx context.Context, doctor *model.Doctor) error {
	if err := r.DoctorRepository.Create(ctx, doctor); err != nil {
		return err
	}
	r.cache.Add(doctor.ID, *doctor)
	return nil
}
