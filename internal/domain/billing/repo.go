package billing

import "github.com/hms/hms/internal/records"

// PatientLookup is the part of the record store billing reads.
type PatientLookup interface {
	Patient(id int) (records.Patient, error)
	Patients() []records.Patient
}
