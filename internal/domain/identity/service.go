// Package identity manages patients and doctors.
package identity

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/hms/hms/internal/records"
	"github.com/hms/hms/pkg/pagination"
)

type Service struct {
	patients PatientRepository
	doctors  DoctorRepository
	loc      *time.Location
	logger   zerolog.Logger
}

// NewService builds the service. Dates are parsed in loc; nil means local time.
func NewService(patients PatientRepository, doctors DoctorRepository, loc *time.Location, logger zerolog.Logger) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{
		patients: patients,
		doctors:  doctors,
		loc:      loc,
		logger:   logger.With().Str("component", "identity").Logger(),
	}
}

// -- Patient --

func (s *Service) CreatePatient(ctx context.Context, f PatientForm) (records.Patient, error) {
	var p records.Patient
	if err := f.Apply(&p, s.loc); err != nil {
		return records.Patient{}, err
	}
	p, err := s.patients.AddPatient(p)
	if err != nil {
		return records.Patient{}, err
	}
	s.logger.Info().Int("patient_id", p.ID).Msg("patient added")
	return p, nil
}

func (s *Service) GetPatient(ctx context.Context, id int) (records.Patient, error) {
	return s.patients.Patient(id)
}

// UpdatePatient replaces every editable field of the patient, or none.
func (s *Service) UpdatePatient(ctx context.Context, id int, f PatientForm) (records.Patient, error) {
	p, err := s.patients.UpdatePatient(id, func(p *records.Patient) error {
		return f.Apply(p, s.loc)
	})
	if err != nil {
		return records.Patient{}, err
	}
	s.logger.Info().Int("patient_id", id).Msg("patient updated")
	return p, nil
}

// DeletePatient removes the patient. Appointments that refer to it are kept
// and will show a placeholder name.
func (s *Service) DeletePatient(ctx context.Context, id int) error {
	if _, err := s.patients.DeletePatient(id); err != nil {
		return err
	}
	s.logger.Info().Int("patient_id", id).Msg("patient deleted")
	return nil
}

func (s *Service) ListPatients(ctx context.Context, limit, offset int) ([]records.Patient, int, error) {
	all := s.patients.Patients()
	return pagination.Page(all, limit, offset), len(all), nil
}

// -- Doctor --

func (s *Service) CreateDoctor(ctx context.Context, f DoctorForm) (records.Doctor, error) {
	var d records.Doctor
	if err := f.Apply(&d); err != nil {
		return records.Doctor{}, err
	}
	d, err := s.doctors.AddDoctor(d)
	if err != nil {
		return records.Doctor{}, err
	}
	s.logger.Info().Int("doctor_id", d.ID).Msg("doctor added")
	return d, nil
}

func (s *Service) GetDoctor(ctx context.Context, id int) (records.Doctor, error) {
	return s.doctors.Doctor(id)
}

func (s *Service) UpdateDoctor(ctx context.Context, id int, f DoctorForm) (records.Doctor, error) {
	d, err := s.doctors.UpdateDoctor(id, func(d *records.Doctor) error {
		return f.Apply(d)
	})
	if err != nil {
		return records.Doctor{}, err
	}
	s.logger.Info().Int("doctor_id", id).Msg("doctor updated")
	return d, nil
}

func (s *Service) DeleteDoctor(ctx context.Context, id int) error {
	if _, err := s.doctors.DeleteDoctor(id); err != nil {
		return err
	}
	s.logger.Info().Int("doctor_id", id).Msg("doctor deleted")
	return nil
}

func (s *Service) ListDoctors(ctx context.Context, limit, offset int) ([]records.Doctor, int, error) {
	all := s.doctors.Doctors()
	return pagination.Page(all, limit, offset), len(all), nil
}
