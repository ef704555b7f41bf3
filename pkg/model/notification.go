package model

import "time"

type Notification struct {
	ID          string    `json:"id,omitempty" bson:"_id,omitempty"`
	UserID      string    `json:"user_id" bson:"user_id" validate:"required,mongodb"`
	Message     string    `json:"message" bson:"message" validate:"required,max=500"`
	Read        bool      `json:"read" bson:"read"`
	DoctorName  string    `json:"doctor_name" bson:"doctor_name"`
	PatientName string    `json:"patient_name" bson:"patient_name"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}
