// Package store owns the four record collections of the hospital records
// manager: patients, doctors, appointments and inventory. It assigns
// identifiers, mediates every mutation and persists each collection as a
// whole-collection snapshot through a snapshot.Provider.
package store

import (
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/hms/hms/internal/platform/metrics"
	"github.com/hms/hms/internal/records"
	"github.com/hms/hms/internal/snapshot"
)

var (
	ErrNotFound    = errors.New("record not found")
	ErrUnknownKind = errors.New("unknown collection")
)

func notFound(kind records.Kind, id int) error {
	return fmt.Errorf("%w: %s %d", ErrNotFound, kind, id)
}

func notFoundAt(kind records.Kind, pos int) error {
	return fmt.Errorf("%w: %s at position %d", ErrNotFound, kind, pos)
}

// Store holds the in-memory collections. A single RWMutex serializes writers;
// there is no isolation across calls.
type Store struct {
	mu           sync.RWMutex
	patients     collection[records.Patient]
	doctors      collection[records.Doctor]
	appointments collection[records.Appointment]
	inventory    collection[records.InventoryItem]

	provider snapshot.Provider
	logger   zerolog.Logger
	metrics  *metrics.Metrics
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger persistence diagnostics are written to.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithMetrics enables prometheus accounting of loads, saves and sizes.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Store) { s.metrics = m }
}

// New returns an empty store persisting through provider. Call Load to read
// prior state.
func New(provider snapshot.Provider, opts ...Option) *Store {
	s := &Store{
		provider: provider,
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.patients.reset(nil)
	s.doctors.reset(nil)
	s.appointments.reset(nil)
	s.inventory.reset(nil)
	return s
}

// Provider returns the persistence backend.
func (s *Store) Provider() snapshot.Provider {
	return s.provider
}

// NextID returns the identifier the next record added to kind will receive.
func (s *Store) NextID(kind records.Kind) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	switch kind {
	case records.KindPatients:
		return s.patients.nextID(), nil
	case records.KindDoctors:
		return s.doctors.nextID(), nil
	case records.KindAppointments:
		return s.appointments.nextID(), nil
	case records.KindInventory:
		return s.inventory.nextID(), nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
}

// Counts reports the size of every collection.
func (s *Store) Counts() map[records.Kind]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.countsLocked()
}

func (s *Store) countsLocked() map[records.Kind]int {
	return map[records.Kind]int{
		records.KindPatients:     len(s.patients.items),
		records.KindDoctors:      len(s.doctors.items),
		records.KindAppointments: len(s.appointments.items),
		records.KindInventory:    len(s.inventory.items),
	}
}

func (s *Store) publishCountsLocked() {
	if s.metrics == nil {
		return
	}
	for kind, n := range s.countsLocked() {
		s.metrics.SetRecords(string(kind), n)
	}
}
