package model

import "time"

type AppointmentStatus string

const (
	StatusBooked    AppointmentStatus = "booked"
	StatusCancelled AppointmentStatus = "cancelled"
)

func (s AppointmentStatus) Valid() bool {
	return s == StatusBooked || s == StatusCancelled
}

// CanTransitionTo reports whether a status change is allowed. The only forward edge is
// booked -> cancelled; staying in the same status is always allowed.
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	if !s.Valid() || !next.Valid() {
		return false
	}
	if s == next {
		return true
	}
	return s == StatusBooked && next == StatusCancelled
}

type Appointment struct {
	ID          string            `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	DoctorID    string            `json:"doctor_id" bson:"doctor_id" validate:"required,mongodb"`
	PatientID   string            `json:"patient_id" bson:"patient_id" validate:"required,mongodb"`
	Date        string            `json:"date" bson:"date" validate:"required,slot_date"`
	Time        string            `json:"time" bson:"time" validate:"required,slot_time"`
	Status      AppointmentStatus `json:"status" bson:"status" validate:"required,oneof=booked cancelled"`
	Description string            `json:"description,omitempty" bson:"description,omitempty" validate:"omitempty,max=500"`
	CreatedAt   time.Time         `json:"created_at" bson:"created_at" validate:"omitempty"`
}

// CategorizedAppointments is an appointment list partitioned around a reference instant.
type CategorizedAppointments struct {
	Past    []*Appointment `json:"past"`
	Present []*Appointment `json:"present"`
	Future  []*Appointment `json:"future"`
}

func NewCategorizedAppointments() *CategorizedAppointments {
	return &CategorizedAppointments{
		Past:    []*Appointment{},
		Present: []*Appointment{},
		Future:  []*Appointment{},
	}
}

func (c *CategorizedAppointments) Len() int {
	return len(c.Past) + len(c.Present) + len(c.Future)
}
