package records

import (
	"errors"
	"testing"
	"time"
)

func TestParseDate_Empty(t *testing.T) {
	d, err := ParseDate("dob", "  ", time.UTC)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d != nil {
		t.Errorf("expected nil date, got %v", d)
	}
}

func TestParseDate_Valid(t *testing.T) {
	d, err := ParseDate("dob", "1990-04-12", time.UTC)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(1990, 4, 12, 0, 0, 0, 0, time.UTC)
	if !d.Equal(want) {
		t.Errorf("expected %v, got %v", want, d)
	}
	if FormatDate(d) != "1990-04-12" {
		t.Errorf("expected 1990-04-12, got %s", FormatDate(d))
	}
}

func TestParseDate_Invalid(t *testing.T) {
	_, err := ParseDate("dob", "12/04/1990", time.UTC)
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestParseDateTime(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{"2024-03-01 09:30", false},
		{" 2024-03-01 09:30 ", false},
		{"2024-03-01", true},
		{"", true},
		{"tomorrow", true},
	}
	for _, tt := range tests {
		got, err := ParseDateTime("date_time", tt.in, time.UTC)
		if tt.wantErr {
			if !errors.Is(err, ErrValidation) {
				t.Errorf("ParseDateTime(%q): expected validation error, got %v", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseDateTime(%q): unexpected error: %v", tt.in, err)
			continue
		}
		if FormatDateTime(got) != "2024-03-01 09:30" {
			t.Errorf("ParseDateTime(%q) formatted = %q", tt.in, FormatDateTime(got))
		}
	}
}

func TestFormatNil(t *testing.T) {
	if FormatDate(nil) != "" {
		t.Error("expected empty string for nil date")
	}
	if FormatDateTime(time.Time{}) != "" {
		t.Error("expected empty string for zero date-time")
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range Kinds {
		got, err := ParseKind(string(k))
		if err != nil || got != k {
			t.Errorf("ParseKind(%s) = %s, %v", k, got, err)
		}
	}
	if _, err := ParseKind("wards"); err == nil {
		t.Error("expected error for unknown kind")
	}
}
