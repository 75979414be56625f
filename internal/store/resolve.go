package store

import "github.com/hms/hms/internal/records"

// PatientName resolves a patient reference for display. The first patient
// with id wins; a missing patient yields records.DeletedPlaceholder.
func (s *Store) PatientName(id int) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.patients.items {
		if p.ID == id {
			return p.Name
		}
	}
	return records.DeletedPlaceholder
}

// DoctorName resolves a doctor reference for display, as PatientName does.
func (s *Store) DoctorName(id int) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, d := range s.doctors.items {
		if d.ID == id {
			return d.Name
		}
	}
	return records.DeletedPlaceholder
}
