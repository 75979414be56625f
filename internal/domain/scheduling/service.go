// Package scheduling manages appointments between patients and doctors.
package scheduling

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/hms/hms/internal/records"
	"github.com/hms/hms/pkg/pagination"
)

type Service struct {
	repo   AppointmentRepository
	loc    *time.Location
	logger zerolog.Logger
}

func NewService(repo AppointmentRepository, loc *time.Location, logger zerolog.Logger) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{
		repo:   repo,
		loc:    loc,
		logger: logger.With().Str("component", "scheduling").Logger(),
	}
}

func (s *Service) requireParticipants() error {
	counts := s.repo.Counts()
	if counts[records.KindPatients] == 0 || counts[records.KindDoctors] == 0 {
		return ErrNoParticipants
	}
	return nil
}

func (s *Service) CreateAppointment(ctx context.Context, f AppointmentForm) (records.Appointment, error) {
	if err := s.requireParticipants(); err != nil {
		return records.Appointment{}, err
	}
	var a records.Appointment
	if err := f.Apply(&a, s.loc); err != nil {
		return records.Appointment{}, err
	}
	a, err := s.repo.AddAppointment(a)
	if err != nil {
		return records.Appointment{}, err
	}
	s.logger.Info().
		Int("appointment_id", a.ID).
		Int("patient_id", a.PatientID).
		Int("doctor_id", a.DoctorID).
		Msg("appointment added")
	return a, nil
}

func (s *Service) GetAppointment(ctx context.Context, id int) (AppointmentView, error) {
	a, err := s.repo.Appointment(id)
	if err != nil {
		return AppointmentView{}, err
	}
	return Project(s.repo, []records.Appointment{a})[0], nil
}

func (s *Service) UpdateAppointment(ctx context.Context, id int, f AppointmentForm) (records.Appointment, error) {
	if err := s.requireParticipants(); err != nil {
		return records.Appointment{}, err
	}
	a, err := s.repo.UpdateAppointment(id, func(a *records.Appointment) error {
		return f.Apply(a, s.loc)
	})
	if err != nil {
		return records.Appointment{}, err
	}
	s.logger.Info().Int("appointment_id", id).Msg("appointment updated")
	return a, nil
}

func (s *Service) DeleteAppointment(ctx context.Context, id int) error {
	if _, err := s.repo.DeleteAppointment(id); err != nil {
		return err
	}
	s.logger.Info().Int("appointment_id", id).Msg("appointment deleted")
	return nil
}

// ListAppointments returns display rows in insertion order.
func (s *Service) ListAppointments(ctx context.Context, limit, offset int) ([]AppointmentView, int, error) {
	all := s.repo.Appointments()
	return Project(s.repo, pagination.Page(all, limit, offset)), len(all), nil
}
