// Package billing prices visits and exports bills as text files.
package billing

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/hms/hms/internal/records"
	"github.com/hms/hms/internal/store"
)

var ErrNoPatients = fmt.Errorf("%w: no patients available", records.ErrValidation)

// BillRequest carries the textual billing inputs. An empty PatientID selects
// the first patient on file.
type BillRequest struct {
	PatientID string `json:"patient_id"`
	Service   string `json:"service"`
	Medicine  string `json:"medicine"`
}

type Service struct {
	patients PatientLookup
	billDir  string
	logger   zerolog.Logger
}

// NewService builds the billing service. Bills exported without an explicit
// path are written to billDir.
func NewService(patients PatientLookup, billDir string, logger zerolog.Logger) *Service {
	if billDir == "" {
		billDir = "."
	}
	return &Service{
		patients: patients,
		billDir:  billDir,
		logger:   logger.With().Str("component", "billing").Logger(),
	}
}

// Generate prices a bill. A patient id that matches nobody still produces a
// bill, with NoPatient as the name.
func (s *Service) Generate(ctx context.Context, req BillRequest) (Bill, error) {
	all := s.patients.Patients()
	if len(all) == 0 {
		return Bill{}, ErrNoPatients
	}

	pid := all[0].ID
	if v := strings.TrimSpace(req.PatientID); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Bill{}, records.Invalid("patient_id", fmt.Sprintf("must be a number, got %q", v))
		}
		pid = n
	}

	name := NoPatient
	p, err := s.patients.Patient(pid)
	switch {
	case err == nil:
		name = p.Name
	case !errors.Is(err, store.ErrNotFound):
		return Bill{}, err
	}

	b := Compute(name, ParseCharge(req.Service), ParseCharge(req.Medicine))
	b.PatientID = pid
	s.logger.Info().
		Str("bill", b.Number.String()).
		Int("patient_id", pid).
		Float64("total", b.Total).
		Msg("bill generated")
	return b, nil
}

// Export writes the bill text to path, or to the default file name under the
// bill directory when path is empty. It returns the path written.
func (s *Service) Export(ctx context.Context, path string, b Bill) (string, error) {
	if strings.TrimSpace(path) == "" {
		path = filepath.Join(s.billDir, b.DefaultFileName())
	}
	if err := os.WriteFile(path, []byte(b.Text()), 0o644); err != nil {
		s.logger.Error().Err(err).Str("path", path).Msg("failed to export bill")
		return "", fmt.Errorf("export bill: %w", err)
	}
	s.logger.Info().Str("bill", b.Number.String()).Str("path", path).Msg("bill exported")
	return path, nil
}
