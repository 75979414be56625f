// Package records holds the flat record types managed by the hospital
// records store. The types carry no behavior beyond identifier access.
package records

import "time"

// DeletedPlaceholder is shown in place of a name when an appointment
// references a patient or doctor that no longer exists.
const DeletedPlaceholder = "-deleted-"

// Patient maps to one row of the patients collection.
type Patient struct {
	ID        int        `json:"id"`
	Name      string     `json:"name"`
	Gender    string     `json:"gender"`
	Phone     string     `json:"phone"`
	Address   string     `json:"address"`
	BirthDate *time.Time `json:"birth_date,omitempty"`
}

func (p Patient) RecordID() int { return p.ID }

// Doctor maps to one row of the doctors collection.
type Doctor struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	Specialization string `json:"specialization"`
	Phone          string `json:"phone"`
}

func (d Doctor) RecordID() int { return d.ID }

// Appointment links a patient and a doctor at a point in time. PatientID and
// DoctorID are plain references: nothing guarantees the targets exist.
type Appointment struct {
	ID        int       `json:"id"`
	PatientID int       `json:"patient_id"`
	DoctorID  int       `json:"doctor_id"`
	DateTime  time.Time `json:"date_time"`
	Notes     string    `json:"notes"`
}

func (a Appointment) RecordID() int { return a.ID }

// InventoryItem is a stocked supply. Quantity has no floor and may go
// negative through restocking.
type InventoryItem struct {
	ID        int     `json:"id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

func (i InventoryItem) RecordID() int { return i.ID }
