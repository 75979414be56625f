// Package sandbox fills a record store with synthetic hospital data for demos
// and local development. Output is reproducible for a fixed seed.
package sandbox

import (
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/hms/hms/internal/httperr"
	"github.com/hms/hms/internal/records"
)

// ---------------------------------------------------------------------------
// Configuration
// ---------------------------------------------------------------------------

// SeedConfig controls how many records of each kind are generated.
type SeedConfig struct {
	Patients     int   `json:"patients"`
	Doctors      int   `json:"doctors"`
	Appointments int   `json:"appointments"`
	Items        int   `json:"items"`
	Seed         int64 `json:"seed"`
}

// DefaultSeedConfig returns a small data set suitable for a demo.
func DefaultSeedConfig() SeedConfig {
	return SeedConfig{
		Patients:     10,
		Doctors:      4,
		Appointments: 12,
		Items:        8,
	}
}

// MaxSeedCount bounds every count in a SeedConfig.
const MaxSeedCount = 10000

func (c SeedConfig) validate() error {
	for _, n := range []int{c.Patients, c.Doctors, c.Appointments, c.Items} {
		if n < 0 {
			return records.Invalid("count", "must not be negative")
		}
		if n > MaxSeedCount {
			return records.Invalid("count", fmt.Sprintf("must not exceed %d", MaxSeedCount))
		}
	}
	return nil
}

// SeedResult reports the ids assigned to each generated record.
type SeedResult struct {
	Patients     []int  `json:"patients"`
	Doctors      []int  `json:"doctors"`
	Appointments []int  `json:"appointments"`
	Items        []int  `json:"items"`
	Duration     string `json:"duration"`
}

// ---------------------------------------------------------------------------
// Pools
// ---------------------------------------------------------------------------

var (
	firstNamesMale = []string{
		"James", "Robert", "John", "Michael", "David", "William", "Richard",
		"Joseph", "Thomas", "Daniel", "Matthew", "Anthony", "Mark", "Paul",
		"Andrew", "Kevin", "Brian", "George", "Edward", "Ryan", "Samuel",
	}
	firstNamesFemale = []string{
		"Mary", "Patricia", "Jennifer", "Linda", "Barbara", "Elizabeth",
		"Susan", "Jessica", "Sarah", "Karen", "Lisa", "Nancy", "Margaret",
		"Emily", "Michelle", "Amanda", "Rebecca", "Laura", "Anna", "Emma",
	}
	lastNames = []string{
		"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia",
		"Miller", "Davis", "Rodriguez", "Martinez", "Lopez", "Wilson",
		"Anderson", "Taylor", "Moore", "Jackson", "Lee", "White", "Harris",
		"Clark", "Lewis", "Walker", "Young", "King", "Wright", "Nguyen",
	}
	streets = []string{
		"123 Main St", "456 Oak Ave", "789 Elm St", "321 Pine Rd",
		"654 Maple Dr", "987 Cedar Ln", "147 Birch Blvd", "258 Walnut Way",
	}
	cities = []string{
		"Springfield", "Riverside", "Fairview", "Greenville", "Madison",
		"Franklin", "Clinton", "Georgetown", "Salem", "Bristol",
	}
	specializations = []string{
		"Cardiology", "Dermatology", "Neurology", "Pediatrics", "Orthopedics",
		"Oncology", "Radiology", "General Medicine", "Psychiatry", "ENT",
	}
	visitNotes = []string{
		"Routine checkup", "Follow-up visit", "Blood test review",
		"Post-operative review", "Vaccination", "Consultation", "",
	}
	supplies = []struct {
		name  string
		price float64
	}{
		{"Paracetamol 500mg", 0.5},
		{"Amoxicillin 250mg", 1.2},
		{"Ibuprofen 400mg", 0.75},
		{"Saline 0.9% 1L", 3.4},
		{"Surgical gloves (box)", 8.99},
		{"Syringe 5ml", 0.3},
		{"Gauze pad", 0.15},
		{"Bandage roll", 1.1},
		{"Face mask (box)", 6.5},
		{"Insulin pen", 24},
	}
)

// ---------------------------------------------------------------------------
// DataGenerator
// ---------------------------------------------------------------------------

// DataGenerator produces synthetic records. Generated records carry no id;
// the store assigns one on insert.
type DataGenerator struct {
	rng *rand.Rand
	now time.Time
}

// NewDataGenerator returns a generator seeded for reproducibility. If seed is
// 0 a time-based seed is chosen.
func NewDataGenerator(seed int64) *DataGenerator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &DataGenerator{
		rng: rand.New(rand.NewSource(seed)),
		now: time.Date(2024, time.January, 1, 9, 0, 0, 0, time.Local),
	}
}

func (g *DataGenerator) pick(pool []string) string {
	return pool[g.rng.Intn(len(pool))]
}

func (g *DataGenerator) randomPhone() string {
	return fmt.Sprintf("(%03d) %03d-%04d",
		200+g.rng.Intn(800),
		200+g.rng.Intn(800),
		g.rng.Intn(10000),
	)
}

func (g *DataGenerator) birthDate() *time.Time {
	d := time.Date(1940+g.rng.Intn(80), time.Month(1+g.rng.Intn(12)), 1+g.rng.Intn(28), 0, 0, 0, 0, time.Local)
	return &d
}

// Patient produces a patient with a birth date most of the time.
func (g *DataGenerator) Patient() records.Patient {
	first, gender := g.pick(firstNamesFemale), "Female"
	if g.rng.Intn(2) == 0 {
		first, gender = g.pick(firstNamesMale), "Male"
	}
	p := records.Patient{
		Name:    first + " " + g.pick(lastNames),
		Gender:  gender,
		Phone:   g.randomPhone(),
		Address: g.pick(streets) + ", " + g.pick(cities),
	}
	if g.rng.Intn(10) > 0 {
		p.BirthDate = g.birthDate()
	}
	return p
}

func (g *DataGenerator) Doctor() records.Doctor {
	first := g.pick(firstNamesFemale)
	if g.rng.Intn(2) == 0 {
		first = g.pick(firstNamesMale)
	}
	return records.Doctor{
		Name:           "Dr. " + first + " " + g.pick(lastNames),
		Specialization: g.pick(specializations),
		Phone:          g.randomPhone(),
	}
}

// Appointment books one of patientIDs with one of doctorIDs on a weekday
// half hour within 60 days. Both slices must be non-empty.
func (g *DataGenerator) Appointment(patientIDs, doctorIDs []int) records.Appointment {
	at := g.now.AddDate(0, 0, g.rng.Intn(60)).Add(time.Duration(g.rng.Intn(16)) * 30 * time.Minute)
	switch at.Weekday() {
	case time.Saturday:
		at = at.AddDate(0, 0, 2)
	case time.Sunday:
		at = at.AddDate(0, 0, 1)
	}
	return records.Appointment{
		PatientID: patientIDs[g.rng.Intn(len(patientIDs))],
		DoctorID:  doctorIDs[g.rng.Intn(len(doctorIDs))],
		DateTime:  at,
		Notes:     g.pick(visitNotes),
	}
}

func (g *DataGenerator) Item() records.InventoryItem {
	s := supplies[g.rng.Intn(len(supplies))]
	return records.InventoryItem{
		Name:      s.name,
		Quantity:  10 * (1 + g.rng.Intn(50)),
		UnitPrice: s.price,
	}
}

// ---------------------------------------------------------------------------
// Seeder
// ---------------------------------------------------------------------------

// Target receives generated records. *store.Store satisfies it.
type Target interface {
	AddPatient(records.Patient) (records.Patient, error)
	AddDoctor(records.Doctor) (records.Doctor, error)
	AddAppointment(records.Appointment) (records.Appointment, error)
	AddInventoryItem(records.InventoryItem) (records.InventoryItem, error)
}

// Seeder appends synthetic records to a Target.
type Seeder struct {
	target Target
}

func NewSeeder(target Target) *Seeder {
	return &Seeder{target: target}
}

// Seed generates records per cfg and adds them in dependency order.
// Appointments reference only records created in the same run and are
// skipped when there are no patients or no doctors. Records added before a
// failure stay in the target.
func (s *Seeder) Seed(cfg SeedConfig) (*SeedResult, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	start := time.Now()
	gen := NewDataGenerator(cfg.Seed)
	res := &SeedResult{
		Patients:     []int{},
		Doctors:      []int{},
		Appointments: []int{},
		Items:        []int{},
	}

	for i := 0; i < cfg.Patients; i++ {
		p, err := s.target.AddPatient(gen.Patient())
		if err != nil {
			return res, fmt.Errorf("seed patient: %w", err)
		}
		res.Patients = append(res.Patients, p.ID)
	}
	for i := 0; i < cfg.Doctors; i++ {
		d, err := s.target.AddDoctor(gen.Doctor())
		if err != nil {
			return res, fmt.Errorf("seed doctor: %w", err)
		}
		res.Doctors = append(res.Doctors, d.ID)
	}
	if len(res.Patients) > 0 && len(res.Doctors) > 0 {
		for i := 0; i < cfg.Appointments; i++ {
			a, err := s.target.AddAppointment(gen.Appointment(res.Patients, res.Doctors))
			if err != nil {
				return res, fmt.Errorf("seed appointment: %w", err)
			}
			res.Appointments = append(res.Appointments, a.ID)
		}
	}
	for i := 0; i < cfg.Items; i++ {
		it, err := s.target.AddInventoryItem(gen.Item())
		if err != nil {
			return res, fmt.Errorf("seed inventory item: %w", err)
		}
		res.Items = append(res.Items, it.ID)
	}

	res.Duration = time.Since(start).String()
	return res, nil
}

// ---------------------------------------------------------------------------
// SeedHandler
// ---------------------------------------------------------------------------

// SeedHandler exposes the seeder over HTTP.
type SeedHandler struct {
	seeder *Seeder
}

func NewSeedHandler(s *Seeder) *SeedHandler {
	return &SeedHandler{seeder: s}
}

func (h *SeedHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/sandbox/seed", h.handleSeed)
}

func (h *SeedHandler) handleSeed(c echo.Context) error {
	cfg := DefaultSeedConfig()
	if err := c.Bind(&cfg); err != nil {
		return httperr.Bind(err)
	}
	result, err := h.seeder.Seed(cfg)
	if err != nil {
		return httperr.From(err)
	}
	return c.JSON(http.StatusCreated, result)
}
