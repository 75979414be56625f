package records

import "fmt"

// Kind names one of the four independently persisted collections.
type Kind string

const (
	KindPatients     Kind = "patients"
	KindDoctors      Kind = "doctors"
	KindAppointments Kind = "appointments"
	KindInventory    Kind = "inventory"
)

// Kinds lists every collection in load/save order.
var Kinds = []Kind{KindPatients, KindDoctors, KindAppointments, KindInventory}

// ParseKind validates a collection name supplied by a user or a URL.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown collection %q", s)
}

func (k Kind) String() string { return string(k) }
