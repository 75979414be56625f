package records

import (
	"fmt"
	"strings"
	"time"
)

// User-facing date layouts.
const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04"
)

// ParseDate parses an optional date field. An empty value yields nil.
func ParseDate(field, value string, loc *time.Location) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(DateLayout, value, locationOrLocal(loc))
	if err != nil {
		return nil, Invalid(field, fmt.Sprintf("must use format yyyy-MM-dd, got %q", value))
	}
	return &t, nil
}

// ParseDateTime parses a required date-time field.
func ParseDateTime(field, value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	t, err := time.ParseInLocation(DateTimeLayout, value, locationOrLocal(loc))
	if err != nil {
		return time.Time{}, Invalid(field, fmt.Sprintf("must use format yyyy-MM-dd HH:mm, got %q", value))
	}
	return t, nil
}

// FormatDate renders an optional date; nil renders as the empty string.
func FormatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(DateLayout)
}

// FormatDateTime renders a date-time; the zero time renders as the empty string.
func FormatDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateTimeLayout)
}

func locationOrLocal(loc *time.Location) *time.Location {
	if loc == nil {
		return time.Local
	}
	return loc
}
