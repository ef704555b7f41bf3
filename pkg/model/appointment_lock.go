package model

import "time"

// AppointmentLock is an advisory lock held while a slot is being booked.
// Its _id is derived from the (doctor, date, time) triple so concurrent attempts collide.
type AppointmentLock struct {
	ID        string    `bson:"_id" json:"id"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
