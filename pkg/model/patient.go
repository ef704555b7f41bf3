package model

import "time"

type Patient struct {
	ID             string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Name           string    `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Email          string    `json:"email" bson:"email" validate:"required,email,max=254"`
	PhoneNumber    string    `json:"phone_number" bson:"phone_number" validate:"required,e164"`
	DateOfBirth    time.Time `json:"date_of_birth" bson:"date_of_birth" validate:"required,past_date"`
	Gender         Gender    `json:"gender" bson:"gender" validate:"required,oneof=male female"`
	HealthInfo     string    `json:"health_info" bson:"health_info" validate:"omitempty,max=2000"`
	Conditions     string    `json:"conditions" bson:"conditions" validate:"omitempty,max=2000"`
	MedicalHistory string    `json:"medical_history" bson:"medical_history" validate:"omitempty,max=5000"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}
