package supply

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/hms/hms/internal/records"
	"github.com/hms/hms/internal/snapshot"
	"github.com/hms/hms/internal/store"
)

func newTestService() (*Service, *store.Store) {
	st := store.New(snapshot.NewMemoryProvider())
	return NewService(st, zerolog.Nop()), st
}

func TestInventoryForm_Apply(t *testing.T) {
	tests := []struct {
		name    string
		form    InventoryForm
		wantErr bool
	}{
		{"valid", InventoryForm{Name: "Gauze", Quantity: " 10 ", UnitPrice: "2.50"}, false},
		{"negative quantity", InventoryForm{Name: "Gauze", Quantity: "-3", UnitPrice: "1"}, false},
		{"blank name", InventoryForm{Name: " ", Quantity: "1", UnitPrice: "1"}, true},
		{"fractional quantity", InventoryForm{Name: "Gauze", Quantity: "1.5", UnitPrice: "1"}, true},
		{"bad price", InventoryForm{Name: "Gauze", Quantity: "1", UnitPrice: "cheap"}, true},
		{"empty price", InventoryForm{Name: "Gauze", Quantity: "1"}, true},
		{"not a number price", InventoryForm{Name: "Gauze", Quantity: "1", UnitPrice: "NaN"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			i := records.InventoryItem{Name: "Original", Quantity: 99}
			err := tt.form.Apply(&i)
			if tt.wantErr {
				if !errors.Is(err, records.ErrValidation) {
					t.Fatalf("expected validation error, got %v", err)
				}
				if i.Name != "Original" || i.Quantity != 99 {
					t.Errorf("expected item unchanged, got %+v", i)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestInventoryFormFrom(t *testing.T) {
	f := InventoryFormFrom(records.InventoryItem{Name: "Gauze", Quantity: 10, UnitPrice: 2.5})
	if f.Quantity != "10" || f.UnitPrice != "2.5" {
		t.Errorf("unexpected form: %+v", f)
	}
}

func TestService_Restock(t *testing.T) {
	svc, _ := newTestService()
	item, err := svc.CreateItem(context.Background(), InventoryForm{Name: "Gauze", Quantity: "10", UnitPrice: "2.5"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	item, err = svc.Restock(context.Background(), item.ID, "5")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item.Quantity != 15 {
		t.Errorf("expected 15, got %d", item.Quantity)
	}

	item, _ = svc.Restock(context.Background(), item.ID, " -20 ")
	if item.Quantity != -5 {
		t.Errorf("expected -5 with no floor, got %d", item.Quantity)
	}
}

func TestService_Restock_InvalidInput(t *testing.T) {
	svc, st := newTestService()
	svc.CreateItem(context.Background(), InventoryForm{Name: "Gauze", Quantity: "10", UnitPrice: "2.5"})

	for _, input := range []string{"abc", "", "2.5"} {
		_, err := svc.Restock(context.Background(), 1, input)
		if !errors.Is(err, records.ErrValidation) {
			t.Errorf("expected validation error for %q, got %v", input, err)
		}
	}
	i, _ := st.InventoryItem(1)
	if i.Quantity != 10 {
		t.Errorf("expected quantity unchanged, got %d", i.Quantity)
	}
}

func TestService_Restock_NotFound(t *testing.T) {
	svc, _ := newTestService()
	if _, err := svc.Restock(context.Background(), 3, "1"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestService_UpdateAndDelete(t *testing.T) {
	svc, _ := newTestService()
	svc.CreateItem(context.Background(), InventoryForm{Name: "Gauze", Quantity: "10", UnitPrice: "2.5"})

	if _, err := svc.UpdateItem(context.Background(), 1, InventoryForm{Name: "Gauze XL", Quantity: "x", UnitPrice: "3"}); err == nil {
		t.Fatal("expected error")
	}
	i, _ := svc.GetItem(context.Background(), 1)
	if i.Name != "Gauze" {
		t.Errorf("expected name unchanged, got %s", i.Name)
	}

	i, err := svc.UpdateItem(context.Background(), 1, InventoryForm{Name: "Gauze XL", Quantity: "4", UnitPrice: "3"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if i.Name != "Gauze XL" || i.Quantity != 4 || i.UnitPrice != 3 {
		t.Errorf("unexpected item: %+v", i)
	}

	if err := svc.DeleteItem(context.Background(), 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	items, total, _ := svc.ListItems(context.Background(), 20, 0)
	if total != 0 || len(items) != 0 {
		t.Errorf("expected empty inventory")
	}
}
