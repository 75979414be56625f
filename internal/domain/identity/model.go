package identity

import (
	"strings"
	"time"

	"github.com/hms/hms/internal/records"
)

// PatientForm is the textual input for creating or editing a patient.
type PatientForm struct {
	Name      string `json:"name"`
	Gender    string `json:"gender"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	BirthDate string `json:"birth_date"`
}

// Apply validates the form and copies it onto p. On error p is unchanged.
// The birth date is checked before the name.
func (f PatientForm) Apply(p *records.Patient, loc *time.Location) error {
	dob, err := records.ParseDate("birth_date", f.BirthDate, loc)
	if err != nil {
		return err
	}
	name := strings.TrimSpace(f.Name)
	if name == "" {
		return records.Required("name")
	}
	p.Name = name
	p.Gender = strings.TrimSpace(f.Gender)
	p.Phone = strings.TrimSpace(f.Phone)
	p.Address = strings.TrimSpace(f.Address)
	p.BirthDate = dob
	return nil
}

// PatientFormFrom pre-fills a form from an existing patient for editing.
func PatientFormFrom(p records.Patient) PatientForm {
	return PatientForm{
		Name:      p.Name,
		Gender:    p.Gender,
		Phone:     p.Phone,
		Address:   p.Address,
		BirthDate: records.FormatDate(p.BirthDate),
	}
}

// DoctorForm is the textual input for creating or editing a doctor.
type DoctorForm struct {
	Name           string `json:"name"`
	Specialization string `json:"specialization"`
	Phone          string `json:"phone"`
}

func (f DoctorForm) Apply(d *records.Doctor) error {
	name := strings.TrimSpace(f.Name)
	if name == "" {
		return records.Required("name")
	}
	d.Name = name
	d.Specialization = strings.TrimSpace(f.Specialization)
	d.Phone = strings.TrimSpace(f.Phone)
	return nil
}

func DoctorFormFrom(d records.Doctor) DoctorForm {
	return DoctorForm{Name: d.Name, Specialization: d.Specialization, Phone: d.Phone}
}
