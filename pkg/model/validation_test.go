package model

import (
	"testing"
)

func TestAppointmentStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name string
		from AppointmentStatus
		to   AppointmentStatus
		want bool
	}{
		{"booked to cancelled", StatusBooked, StatusCancelled, true},
		{"booked to booked", StatusBooked, StatusBooked, true},
		{"cancelled to cancelled", StatusCancelled, StatusCancelled, true},
		{"cancelled to booked", StatusCancelled, StatusBooked, false},
		{"unknown source", AppointmentStatus("pending"), StatusCancelled, false},
		{"unknown target", StatusBooked, AppointmentStatus("confirmed"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.CanTransitionTo(tt.to); got != tt.want {
				t.Errorf("%s.CanTransitionTo(%s) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestUser_TaggedUnion(t *testing.T) {
	doctor := DoctorUser(&Doctor{ID: "65f1a2b3c4d5e6f708192a3b", Name: "Gregory House"})
	if doctor.Role != RoleDoctor || doctor.Patient != nil {
		t.Fatalf("doctor user has wrong shape: %+v", doctor)
	}
	if doctor.ID() != "65f1a2b3c4d5e6f708192a3b" || doctor.Name() != "Gregory House" {
		t.Errorf("unexpected doctor accessors: %s %s", doctor.ID(), doctor.Name())
	}

	patient := PatientUser(&Patient{ID: "65f1a2b3c4d5e6f708192a3c", Name: "Ann"})
	if patient.Role != RolePatient || patient.Doctor != nil {
		t.Fatalf("patient user has wrong shape: %+v", patient)
	}
	if patient.ID() != "65f1a2b3c4d5e6f708192a3c" || patient.Name() != "Ann" {
		t.Errorf("unexpected patient accessors: %s %s", patient.ID(), patient.Name())
	}
}

func TestCategorizedAppointments_EmptyBucketsNotNil(t *testing.T) {
	c := NewCategorizedAppointments()
	if c.Past == nil || c.Present == nil || c.Future == nil {
		t.Fatalf("buckets must be non-nil so they encode as []")
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0", c.Len())
	}

	c.Future = append(c.Future, &Appointment{})
	c.Past = append(c.Past, &Appointment{})
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
}
