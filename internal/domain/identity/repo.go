package identity

import "github.com/hms/hms/internal/records"

// PatientRepository is the part of the record store the patient service uses.
type PatientRepository interface {
	AddPatient(p records.Patient) (records.Patient, error)
	UpdatePatient(id int, mutate func(*records.Patient) error) (records.Patient, error)
	DeletePatient(id int) (records.Patient, error)
	Patient(id int) (records.Patient, error)
	Patients() []records.Patient
}

// DoctorRepository is the part of the record store the doctor service uses.
type DoctorRepository interface {
	AddDoctor(d records.Doctor) (records.Doctor, error)
	UpdateDoctor(id int, mutate func(*records.Doctor) error) (records.Doctor, error)
	DeleteDoctor(id int) (records.Doctor, error)
	Doctor(id int) (records.Doctor, error)
	Doctors() []records.Doctor
}
