package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hms/hms/internal/records"
	"github.com/hms/hms/internal/snapshot"
)

// Outcome describes what happened to one collection during Load or Save.
type Outcome struct {
	Kind    records.Kind
	Records int
	// Missing is set by Load when nothing had been saved for the collection.
	Missing bool
	Err     error
}

// Result collects the per-collection outcomes of a Load or Save. Callers may
// ignore it: failures have already been logged and, for Load, replaced by an
// empty collection.
type Result struct {
	Op       string
	Outcomes []Outcome
}

// OK reports whether every collection succeeded. A missing collection on
// load is not a failure.
func (r Result) OK() bool {
	for _, o := range r.Outcomes {
		if o.Err != nil {
			return false
		}
	}
	return true
}

// Err joins the per-collection errors, or returns nil.
func (r Result) Err() error {
	var errs []error
	for _, o := range r.Outcomes {
		if o.Err != nil {
			errs = append(errs, o.Err)
		}
	}
	return errors.Join(errs...)
}

// Outcome returns the entry for kind.
func (r Result) Outcome(kind records.Kind) (Outcome, bool) {
	for _, o := range r.Outcomes {
		if o.Kind == kind {
			return o, true
		}
	}
	return Outcome{}, false
}

// Load replaces every collection with its persisted snapshot. A collection
// whose snapshot is missing, unreadable or undecodable becomes empty; the
// other collections are unaffected. Load never fails.
func (s *Store) Load(ctx context.Context) Result {
	patients, po := readCollection[records.Patient](ctx, s, records.KindPatients)
	doctors, do := readCollection[records.Doctor](ctx, s, records.KindDoctors)
	appointments, ao := readCollection[records.Appointment](ctx, s, records.KindAppointments)
	inventory, ino := readCollection[records.InventoryItem](ctx, s, records.KindInventory)

	s.mu.Lock()
	s.patients.reset(patients)
	s.doctors.reset(doctors)
	s.appointments.reset(appointments)
	s.inventory.reset(inventory)
	s.publishCountsLocked()
	s.mu.Unlock()

	return Result{Op: "load", Outcomes: []Outcome{po, do, ao, ino}}
}

func readCollection[T record](ctx context.Context, s *Store, kind records.Kind) ([]T, Outcome) {
	start := time.Now()
	out := Outcome{Kind: kind}
	log := s.logger.With().Str("kind", string(kind)).Str("driver", string(s.provider.Driver())).Logger()

	payload, err := s.provider.Read(ctx, kind)
	switch {
	case errors.Is(err, snapshot.ErrNotFound):
		out.Missing = true
		s.metrics.ObserveSnapshot("load", string(kind), "missing", time.Since(start))
		log.Info().Msg("no saved snapshot, starting empty")
		return []T{}, out
	case err != nil:
		out.Err = err
		s.metrics.ObserveSnapshot("load", string(kind), "error", time.Since(start))
		log.Error().Err(err).Msg("failed to read snapshot, starting empty")
		return []T{}, out
	}

	var items []T
	if err := json.Unmarshal(payload, &items); err != nil {
		out.Err = fmt.Errorf("decode %s: %w", kind, err)
		s.metrics.ObserveSnapshot("load", string(kind), "error", time.Since(start))
		log.Error().Err(err).Int("bytes", len(payload)).Msg("corrupt snapshot, starting empty")
		return []T{}, out
	}
	if items == nil {
		items = []T{}
	}
	out.Records = len(items)
	s.metrics.ObserveSnapshot("load", string(kind), "ok", time.Since(start))
	log.Debug().Int("records", len(items)).Msg("snapshot loaded")
	return items, out
}

// Save writes every collection to its snapshot location. Each collection is
// attempted even when an earlier one fails. Save never fails; see Result.
func (s *Store) Save(ctx context.Context) Result {
	s.mu.RLock()
	payloads := []encoded{
		encodeCollection(records.KindPatients, s.patients.items),
		encodeCollection(records.KindDoctors, s.doctors.items),
		encodeCollection(records.KindAppointments, s.appointments.items),
		encodeCollection(records.KindInventory, s.inventory.items),
	}
	s.mu.RUnlock()

	res := Result{Op: "save"}
	for _, p := range payloads {
		start := time.Now()
		out := Outcome{Kind: p.kind, Records: p.n}
		log := s.logger.With().Str("kind", string(p.kind)).Str("driver", string(s.provider.Driver())).Logger()

		err := p.err
		if err == nil {
			err = s.provider.Write(ctx, p.kind, p.data)
		}
		if err != nil {
			out.Err = err
			s.metrics.ObserveSnapshot("save", string(p.kind), "error", time.Since(start))
			log.Error().Err(err).Msg("failed to save snapshot")
		} else {
			s.metrics.ObserveSnapshot("save", string(p.kind), "ok", time.Since(start))
			log.Debug().Int("records", p.n).Msg("snapshot saved")
		}
		res.Outcomes = append(res.Outcomes, out)
	}
	return res
}

// encoded is one collection serialized under the read lock.
type encoded struct {
	kind records.Kind
	n    int
	data []byte
	err  error
}

func encodeCollection[T record](kind records.Kind, items []T) encoded {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		err = fmt.Errorf("encode %s: %w", kind, err)
	}
	return encoded{kind: kind, n: len(items), data: data, err: err}
}
