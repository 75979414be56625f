package supply

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/hms/hms/internal/records"
)

// InventoryForm is the textual input for creating or editing a stock item.
type InventoryForm struct {
	Name      string `json:"name"`
	Quantity  string `json:"quantity"`
	UnitPrice string `json:"unit_price"`
}

func (f InventoryForm) Apply(i *records.InventoryItem) error {
	name := strings.TrimSpace(f.Name)
	if name == "" {
		return records.Required("name")
	}
	qty, err := strconv.Atoi(strings.TrimSpace(f.Quantity))
	if err != nil {
		return records.Invalid("quantity", fmt.Sprintf("must be a whole number, got %q", f.Quantity))
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(f.UnitPrice), 64)
	if err != nil || math.IsNaN(price) || math.IsInf(price, 0) {
		return records.Invalid("unit_price", fmt.Sprintf("must be a number, got %q", f.UnitPrice))
	}
	i.Name = name
	i.Quantity = qty
	i.UnitPrice = price
	return nil
}

func InventoryFormFrom(i records.InventoryItem) InventoryForm {
	return InventoryForm{
		Name:      i.Name,
		Quantity:  strconv.Itoa(i.Quantity),
		UnitPrice: strconv.FormatFloat(i.UnitPrice, 'f', -1, 64),
	}
}

// RestockRequest carries the quantity to add, as typed by the user. It may be
// negative.
type RestockRequest struct {
	Quantity string `json:"quantity"`
}

// ParseDelta reads a restock quantity. Surrounding spaces are ignored.
func ParseDelta(input string) (int, error) {
	delta, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return 0, records.Invalid("quantity", "invalid number")
	}
	return delta, nil
}
