package scheduling

import "github.com/hms/hms/internal/records"

// AppointmentRepository is the part of the record store the scheduling
// service uses.
type AppointmentRepository interface {
	NameResolver
	AddAppointment(a records.Appointment) (records.Appointment, error)
	UpdateAppointment(id int, mutate func(*records.Appointment) error) (records.Appointment, error)
	DeleteAppointment(id int) (records.Appointment, error)
	Appointment(id int) (records.Appointment, error)
	Appointments() []records.Appointment
	Counts() map[records.Kind]int
}
