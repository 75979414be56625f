package billing

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// TaxRate is applied to the sum of the service and medicine charges.
const TaxRate = 0.18

// NoPatient stands in for the patient name when the selected patient does
// not exist.
const NoPatient = "-"

// Bill is a computed invoice. It is not persisted.
type Bill struct {
	Number    uuid.UUID `json:"number"`
	PatientID int       `json:"patient_id"`
	Patient   string    `json:"patient"`
	Service   float64   `json:"service"`
	Medicine  float64   `json:"medicine"`
	Tax       float64   `json:"tax"`
	Total     float64   `json:"total"`
}

// ParseCharge reads a charge field. Anything that is not a finite number,
// including the empty string, counts as zero.
func ParseCharge(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// Compute prices a bill for patientName.
func Compute(patientName string, service, medicine float64) Bill {
	tax := (service + medicine) * TaxRate
	return Bill{
		Number:   uuid.New(),
		Patient:  patientName,
		Service:  service,
		Medicine: medicine,
		Tax:      tax,
		Total:    service + medicine + tax,
	}
}

// Text renders the bill summary shown to the user and written on export.
func (b Bill) Text() string {
	var sb strings.Builder
	sb.WriteString("--- Hospital Bill ---\n")
	fmt.Fprintf(&sb, "Patient: %s\n", b.Patient)
	fmt.Fprintf(&sb, "Service: %s\n", formatCharge(b.Service))
	fmt.Fprintf(&sb, "Medicine: %s\n", formatCharge(b.Medicine))
	fmt.Fprintf(&sb, "Tax (18%%): %.2f\n", b.Tax)
	fmt.Fprintf(&sb, "TOTAL: %.2f\n", b.Total)
	return sb.String()
}

// DefaultFileName is the export name used when the caller gives none.
func (b Bill) DefaultFileName() string {
	return "bill-" + b.Number.String() + ".txt"
}

// formatCharge prints the charge as entered, keeping one decimal for whole
// amounts ("100.0").
func formatCharge(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
