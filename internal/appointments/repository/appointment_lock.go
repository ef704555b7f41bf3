package repository

import (
	"context"
	"fmt"
	"time"

	appointmentserrors "medibook/internal/appointments/errors"
	"medibook/pkg/config"
	"medibook/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	LockCollectionName = "Appointment_locks"
)

// AppointmentLockRepository stores advisory locks keyed by slot.
type AppointmentLockRepository interface {
	Create(ctx context.Context, lock *model.AppointmentLock) (*model.AppointmentLock, error)
	Delete(ctx context.Context, lockID string) error
}

type mongoAppointmentLockRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewAppointmentLockRepository(cfg *config.Config) AppointmentLockRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoAppointmentLockRepository{
		cfg:        cfg,
		collection: db.Collection(LockCollectionName),
	}
}

// Create returns ErrLockHeld if another request holds the lock.
func (r *mongoAppointmentLockRepository) Create(ctx context.Context, lock *model.AppointmentLock) (*model.AppointmentLock, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	lock.CreatedAt = time.Now().UTC()

	_, err := r.collection.InsertOne(ctx, lock)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, appointmentserrors.ErrLockHeld
		}
		return nil, fmt.Errorf("failed to create appointment lock: %w", err)
	}

	return lock, nil
}

func (r *mongoAppointmentLockRepository) Delete(ctx context.Context, lockID string) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if _, err := r.collection.DeleteOne(ctx, bson.M{"_id": lockID}); err != nil {
		return fmt.Errorf("failed to delete appointment lock: %w", err)
	}
	return nil
}
