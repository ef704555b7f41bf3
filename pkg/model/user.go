package model

type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
)

type Role string

const (
	RoleDoctor  Role = "doctor"
	RolePatient Role = "patient"
)

// User is a resolved identity: exactly one of Doctor or Patient is set, matching Role.
type User struct {
	Role    Role     `json:"role"`
	Doctor  *Doctor  `json:"doctor,omitempty"`
	Patient *Patient `json:"patient,omitempty"`
}

func DoctorUser(d *Doctor) *User {
	return &User{Role: RoleDoctor, Doctor: d}
}

func PatientUser(p *Patient) *User {
	return &User{Role: RolePatient, Patient: p}
}

func (u *User) ID() string {
	switch u.Role {
	case RoleDoctor:
		return u.Doctor.ID
	case RolePatient:
		return u.Patient.ID
	}
	return ""
}

func (u *User) Name() string {
	switch u.Role {
	case RoleDoctor:
		return u.Doctor.Name
	case RolePatient:
		return u.Patient.Name
	}
	return ""
}
