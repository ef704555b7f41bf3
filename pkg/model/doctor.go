package model

import "time"

type Doctor struct {
	ID             string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Name           string    `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Email          string    `json:"email" bson:"email" validate:"required,email,max=254"`
	PhoneNumber    string    `json:"phone_number" bson:"phone_number" validate:"required,e164"`
	DateOfBirth    time.Time `json:"date_of_birth" bson:"date_of_birth" validate:"required,past_date"`
	Specialization string    `json:"specialization" bson:"specialization" validate:"required,min=2,max=100"`
	Gender         Gender    `json:"gender" bson:"gender" validate:"required,oneof=male female"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}
