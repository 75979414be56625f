package scheduling

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/hms/hms/internal/records"
)

// ErrNoParticipants is returned when an appointment is entered before any
// patient or doctor exists to choose from.
var ErrNoParticipants = fmt.Errorf("%w: add patients and doctors first", records.ErrValidation)

// AppointmentForm is the textual input for creating or editing an
// appointment. The referenced ids are not checked against the store.
type AppointmentForm struct {
	PatientID string `json:"patient_id"`
	DoctorID  string `json:"doctor_id"`
	DateTime  string `json:"date_time"`
	Notes     string `json:"notes"`
}

// Apply validates every field and only then copies them onto a.
func (f AppointmentForm) Apply(a *records.Appointment, loc *time.Location) error {
	patientID, err := parseRef("patient_id", f.PatientID)
	if err != nil {
		return err
	}
	doctorID, err := parseRef("doctor_id", f.DoctorID)
	if err != nil {
		return err
	}
	when, err := records.ParseDateTime("date_time", f.DateTime, loc)
	if err != nil {
		return err
	}
	a.PatientID = patientID
	a.DoctorID = doctorID
	a.DateTime = when
	a.Notes = strings.TrimSpace(f.Notes)
	return nil
}

func parseRef(field, value string) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, records.Required(field)
	}
	id, err := strconv.Atoi(value)
	if err != nil {
		return 0, records.Invalid(field, fmt.Sprintf("must be a number, got %q", value))
	}
	return id, nil
}

func AppointmentFormFrom(a records.Appointment) AppointmentForm {
	return AppointmentForm{
		PatientID: strconv.Itoa(a.PatientID),
		DoctorID:  strconv.Itoa(a.DoctorID),
		DateTime:  records.FormatDateTime(a.DateTime),
		Notes:     a.Notes,
	}
}

// AppointmentView is an appointment row with its references resolved for
// display.
type AppointmentView struct {
	ID        int    `json:"id"`
	PatientID int    `json:"patient_id"`
	Patient   string `json:"patient"`
	DoctorID  int    `json:"doctor_id"`
	Doctor    string `json:"doctor"`
	DateTime  string `json:"date_time"`
	Notes     string `json:"notes"`
}

// NameResolver looks up display names. Missing references resolve to
// records.DeletedPlaceholder.
type NameResolver interface {
	PatientName(id int) string
	DoctorName(id int) string
}

// Project builds display rows for appts, preserving order.
func Project(names NameResolver, appts []records.Appointment) []AppointmentView {
	views := make([]AppointmentView, 0, len(appts))
	for _, a := range appts {
		views = append(views, AppointmentView{
			ID:        a.ID,
			PatientID: a.PatientID,
			Patient:   names.PatientName(a.PatientID),
			DoctorID:  a.DoctorID,
			Doctor:    names.DoctorName(a.DoctorID),
			DateTime:  records.FormatDateTime(a.DateTime),
			Notes:     a.Notes,
		})
	}
	return views
}
