package events

import (
	"fmt"
	"time"

	"medibook/pkg/model"
)

const (
	AppointmentBookedType    = "appointment.booked"
	AppointmentBookedVersion = "1"
)

// AppointmentBooked is emitted once an appointment is committed.
type AppointmentBooked struct {
	AppointmentID string    `json:"appointment_id"`
	DoctorID      string    `json:"doctor_id"`
	DoctorName    string    `json:"doctor_name"`
	PatientID     string    `json:"patient_id"`
	PatientName   string    `json:"patient_name"`
	Date          string    `json:"date"`
	Time          string    `json:"time"`
	BookedAt      time.Time `json:"booked_at"`
}

func NewAppointmentBooked(appointment *model.Appointment, doctor *model.Doctor, patient *model.Patient) AppointmentBooked {
	return AppointmentBooked{
		AppointmentID: appointment.ID,
		DoctorID:      doctor.ID,
		DoctorName:    doctor.Name,
		PatientID:     patient.ID,
		PatientName:   patient.Name,
		Date:          appointment.Date,
		Time:          appointment.Time,
		BookedAt:      appointment.CreatedAt,
	}
}

func (e AppointmentBooked) DoctorMessage() string {
	return fmt.Sprintf("New appointment booked with %s on %s at %s", e.PatientName, e.Date, e.Time)
}

func (e AppointmentBooked) PatientMessage() string {
	return fmt.Sprintf("Your appointment with Dr. %s is booked on %s at %s", e.DoctorName, e.Date, e.Time)
}

// Notifications returns the doctor's notification followed by the patient's.
func (e AppointmentBooked) Notifications(createdAt time.Time) []*model.Notification {
	return []*model.Notification{
		{
			UserID:      e.DoctorID,
			Message:     e.DoctorMessage(),
			DoctorName:  e.DoctorName,
			PatientName: e.PatientName,
			CreatedAt:   createdAt,
		},
		{
			UserID:      e.PatientID,
			Message:     e.PatientMessage(),
			DoctorName:  e.DoctorName,
			PatientName: e.PatientName,
			CreatedAt:   createdAt,
		},
	}
}
