package store

import (
	"math"
	"strings"

	"github.com/hms/hms/internal/records"
)

func checkPatient(p records.Patient) error {
	if strings.TrimSpace(p.Name) == "" {
		return records.Required("name")
	}
	return nil
}

func checkDoctor(d records.Doctor) error {
	if strings.TrimSpace(d.Name) == "" {
		return records.Required("name")
	}
	return nil
}

// checkItem also rejects prices that would not encode as JSON.
func checkItem(i records.InventoryItem) error {
	if strings.TrimSpace(i.Name) == "" {
		return records.Required("name")
	}
	if math.IsNaN(i.UnitPrice) || math.IsInf(i.UnitPrice, 0) {
		return records.Invalid("unit_price", "must be a finite number")
	}
	return nil
}

// AddPatient assigns the next patient id and appends p.
func (s *Store) AddPatient(p records.Patient) (records.Patient, error) {
	if err := checkPatient(p); err != nil {
		return records.Patient{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p.ID = s.patients.nextID()
	s.patients.append(p)
	s.publishCountsLocked()
	return p, nil
}

// UpdatePatient applies mutate to the patient with id. The change is kept only
// if mutate succeeds and the result is valid; the id cannot be changed.
func (s *Store) UpdatePatient(id int, mutate func(*records.Patient) error) (records.Patient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok, err := s.patients.update(id, func(p *records.Patient) error {
		if err := mutate(p); err != nil {
			return err
		}
		p.ID = id
		return checkPatient(*p)
	})
	if !ok {
		return records.Patient{}, notFound(records.KindPatients, id)
	}
	return p, err
}

// DeletePatient removes the patient with id. Appointments referring to it are
// left in place.
func (s *Store) DeletePatient(id int) (records.Patient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.patients.remove(id)
	if !ok {
		return records.Patient{}, notFound(records.KindPatients, id)
	}
	s.publishCountsLocked()
	return p, nil
}

// RemovePatientAt removes the patient at position pos of Patients().
func (s *Store) RemovePatientAt(pos int) (records.Patient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.patients.removeAt(pos)
	if !ok {
		return records.Patient{}, notFoundAt(records.KindPatients, pos)
	}
	s.publishCountsLocked()
	return p, nil
}

// Patient returns the first patient with id.
func (s *Store) Patient(id int) (records.Patient, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.patients.get(id)
	if !ok {
		return records.Patient{}, notFound(records.KindPatients, id)
	}
	return p, nil
}

// Patients returns a copy of the patients in insertion order.
func (s *Store) Patients() []records.Patient {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.patients.list()
}

// AddDoctor assigns the next doctor id and appends d.
func (s *Store) AddDoctor(d records.Doctor) (records.Doctor, error) {
	if err := checkDoctor(d); err != nil {
		return records.Doctor{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	d.ID = s.doctors.nextID()
	s.doctors.append(d)
	s.publishCountsLocked()
	return d, nil
}

// UpdateDoctor applies mutate to the doctor with id, keeping the change only if it is valid.
func (s *Store) UpdateDoctor(id int, mutate func(*records.Doctor) error) (records.Doctor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok, err := s.doctors.update(id, func(d *records.Doctor) error {
		if err := mutate(d); err != nil {
			return err
		}
		d.ID = id
		return checkDoctor(*d)
	})
	if !ok {
		return records.Doctor{}, notFound(records.KindDoctors, id)
	}
	return d, err
}

// DeleteDoctor removes the doctor with id. Appointments referring to it are left in place.
func (s *Store) DeleteDoctor(id int) (records.Doctor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.doctors.remove(id)
	if !ok {
		return records.Doctor{}, notFound(records.KindDoctors, id)
	}
	s.publishCountsLocked()
	return d, nil
}

// RemoveDoctorAt removes the doctor at position pos of Doctors().
func (s *Store) RemoveDoctorAt(pos int) (records.Doctor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.doctors.removeAt(pos)
	if !ok {
		return records.Doctor{}, notFoundAt(records.KindDoctors, pos)
	}
	s.publishCountsLocked()
	return d, nil
}

// Doctor returns the first doctor with id.
func (s *Store) Doctor(id int) (records.Doctor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.doctors.get(id)
	if !ok {
		return records.Doctor{}, notFound(records.KindDoctors, id)
	}
	return d, nil
}

// Doctors returns a copy of the doctors in insertion order.
func (s *Store) Doctors() []records.Doctor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doctors.list()
}

// AddAppointment appends a. Its patient and doctor references are stored as
// given; they are not checked against the other collections.
func (s *Store) AddAppointment(a records.Appointment) (records.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a.ID = s.appointments.nextID()
	s.appointments.append(a)
	s.publishCountsLocked()
	return a, nil
}

// UpdateAppointment applies mutate to the appointment with id. A failed mutate leaves it untouched.
func (s *Store) UpdateAppointment(id int, mutate func(*records.Appointment) error) (records.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok, err := s.appointments.update(id, func(a *records.Appointment) error {
		if err := mutate(a); err != nil {
			return err
		}
		a.ID = id
		return nil
	})
	if !ok {
		return records.Appointment{}, notFound(records.KindAppointments, id)
	}
	return a, err
}

// DeleteAppointment removes the appointment with id.
func (s *Store) DeleteAppointment(id int) (records.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.appointments.remove(id)
	if !ok {
		return records.Appointment{}, notFound(records.KindAppointments, id)
	}
	s.publishCountsLocked()
	return a, nil
}

// RemoveAppointmentAt removes the appointment at position pos of Appointments().
func (s *Store) RemoveAppointmentAt(pos int) (records.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.appointments.removeAt(pos)
	if !ok {
		return records.Appointment{}, notFoundAt(records.KindAppointments, pos)
	}
	s.publishCountsLocked()
	return a, nil
}

// Appointment returns the first appointment with id.
func (s *Store) Appointment(id int) (records.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.appointments.get(id)
	if !ok {
		return records.Appointment{}, notFound(records.KindAppointments, id)
	}
	return a, nil
}

// Appointments returns a copy of the appointments in insertion order.
func (s *Store) Appointments() []records.Appointment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.appointments.list()
}

// AddInventoryItem assigns the next item id and appends i.
func (s *Store) AddInventoryItem(i records.InventoryItem) (records.InventoryItem, error) {
	if err := checkItem(i); err != nil {
		return records.InventoryItem{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i.ID = s.inventory.nextID()
	s.inventory.append(i)
	s.publishCountsLocked()
	return i, nil
}

// UpdateInventoryItem applies mutate to the item with id, keeping the change only if it is valid.
func (s *Store) UpdateInventoryItem(id int, mutate func(*records.InventoryItem) error) (records.InventoryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok, err := s.inventory.update(id, func(i *records.InventoryItem) error {
		if err := mutate(i); err != nil {
			return err
		}
		i.ID = id
		return checkItem(*i)
	})
	if !ok {
		return records.InventoryItem{}, notFound(records.KindInventory, id)
	}
	return i, err
}

// DeleteInventoryItem removes the item with id.
func (s *Store) DeleteInventoryItem(id int) (records.InventoryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.inventory.remove(id)
	if !ok {
		return records.InventoryItem{}, notFound(records.KindInventory, id)
	}
	s.publishCountsLocked()
	return i, nil
}

// RemoveInventoryItemAt removes the item at position pos of Inventory().
func (s *Store) RemoveInventoryItemAt(pos int) (records.InventoryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.inventory.removeAt(pos)
	if !ok {
		return records.InventoryItem{}, notFoundAt(records.KindInventory, pos)
	}
	s.publishCountsLocked()
	return i, nil
}

// InventoryItem returns the first item with id.
func (s *Store) InventoryItem(id int) (records.InventoryItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.inventory.get(id)
	if !ok {
		return records.InventoryItem{}, notFound(records.KindInventory, id)
	}
	return i, nil
}

// Inventory returns a copy of the stock items in insertion order.
func (s *Store) Inventory() []records.InventoryItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inventory.list()
}
