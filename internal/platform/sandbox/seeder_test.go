package sandbox

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/hms/hms/internal/records"
	"github.com/hms/hms/internal/snapshot"
	"github.com/hms/hms/internal/store"
)

func newStore() *store.Store {
	return store.New(snapshot.NewMemoryProvider())
}

func TestDataGenerator_Deterministic(t *testing.T) {
	a, b := NewDataGenerator(42), NewDataGenerator(42)
	for i := 0; i < 5; i++ {
		pa, pb := a.Patient(), b.Patient()
		if pa.Name != pb.Name || pa.Phone != pb.Phone {
			t.Fatalf("expected identical patients for same seed, got %+v and %+v", pa, pb)
		}
	}
}

func TestDataGenerator_Patient(t *testing.T) {
	gen := NewDataGenerator(7)
	for i := 0; i < 20; i++ {
		p := gen.Patient()
		if strings.TrimSpace(p.Name) == "" {
			t.Fatal("expected non-empty name")
		}
		if p.Gender != "Male" && p.Gender != "Female" {
			t.Errorf("unexpected gender %q", p.Gender)
		}
		if p.ID != 0 {
			t.Errorf("expected no id, got %d", p.ID)
		}
	}
}

func TestDataGenerator_AppointmentReferencesGivenIDs(t *testing.T) {
	gen := NewDataGenerator(3)
	for i := 0; i < 50; i++ {
		a := gen.Appointment([]int{4, 9}, []int{2})
		if a.PatientID != 4 && a.PatientID != 9 {
			t.Errorf("unexpected patient id %d", a.PatientID)
		}
		if a.DoctorID != 2 {
			t.Errorf("expected doctor 2, got %d", a.DoctorID)
		}
		if wd := a.DateTime.Weekday(); wd == 0 || wd == 6 {
			t.Errorf("expected weekday, got %s", wd)
		}
	}
}

func TestSeeder_Seed(t *testing.T) {
	s := newStore()
	res, err := NewSeeder(s).Seed(SeedConfig{Patients: 3, Doctors: 2, Appointments: 4, Items: 5, Seed: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Patients) != 3 || len(res.Doctors) != 2 || len(res.Appointments) != 4 || len(res.Items) != 5 {
		t.Errorf("unexpected result: %+v", res)
	}
	counts := s.Counts()
	if counts[records.KindPatients] != 3 || counts[records.KindAppointments] != 4 {
		t.Errorf("unexpected counts: %v", counts)
	}
	for _, a := range s.Appointments() {
		if s.PatientName(a.PatientID) == records.DeletedPlaceholder {
			t.Errorf("appointment %d references missing patient %d", a.ID, a.PatientID)
		}
		if s.DoctorName(a.DoctorID) == records.DeletedPlaceholder {
			t.Errorf("appointment %d references missing doctor %d", a.ID, a.DoctorID)
		}
	}
}

func TestSeeder_AppendsToExisting(t *testing.T) {
	s := newStore()
	s.AddPatient(records.Patient{Name: "Existing"})

	res, err := NewSeeder(s).Seed(SeedConfig{Patients: 2, Seed: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Patients[0] != 2 || res.Patients[1] != 3 {
		t.Errorf("expected ids 2 and 3, got %v", res.Patients)
	}
}

func TestSeeder_SkipsAppointmentsWithoutDoctors(t *testing.T) {
	s := newStore()
	res, err := NewSeeder(s).Seed(SeedConfig{Patients: 2, Appointments: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Appointments) != 0 || len(s.Appointments()) != 0 {
		t.Errorf("expected no appointments, got %v", res.Appointments)
	}
}

func TestSeeder_NegativeCount(t *testing.T) {
	_, err := NewSeeder(newStore()).Seed(SeedConfig{Items: -1})
	if !errors.Is(err, records.ErrValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestSeeder_CountTooLarge(t *testing.T) {
	s := newStore()
	_, err := NewSeeder(s).Seed(SeedConfig{Patients: MaxSeedCount + 1})
	if !errors.Is(err, records.ErrValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
	if n := len(s.Patients()); n != 0 {
		t.Errorf("expected nothing seeded, got %d patients", n)
	}
}

func TestSeedHandler_CountTooLarge(t *testing.T) {
	h := NewSeedHandler(NewSeeder(newStore()))
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/sandbox/seed", strings.NewReader(`{"patients":100000000}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := e.NewContext(req, httptest.NewRecorder())

	httpErr, ok := h.handleSeed(c).(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %v", httpErr)
	}
}

func TestSeedHandler_Defaults(t *testing.T) {
	s := newStore()
	h := NewSeedHandler(NewSeeder(s))
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/api/v1/sandbox/seed", nil), rec)

	if err := h.handleSeed(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}
	var res SeedResult
	json.Unmarshal(rec.Body.Bytes(), &res)
	def := DefaultSeedConfig()
	if len(res.Patients) != def.Patients || len(s.Inventory()) != def.Items {
		t.Errorf("expected default counts, got %+v", res)
	}
}

func TestSeedHandler_BadCount(t *testing.T) {
	h := NewSeedHandler(NewSeeder(newStore()))
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/sandbox/seed", strings.NewReader(`{"patients":-3}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := e.NewContext(req, httptest.NewRecorder())

	err := h.handleSeed(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %T", err)
	}
	if httpErr.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", httpErr.Code)
	}
}
