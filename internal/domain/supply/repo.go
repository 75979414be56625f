package supply

import "github.com/hms/hms/internal/records"

// InventoryRepository is the part of the record store the supply service uses.
type InventoryRepository interface {
	AddInventoryItem(i records.InventoryItem) (records.InventoryItem, error)
	UpdateInventoryItem(id int, mutate func(*records.InventoryItem) error) (records.InventoryItem, error)
	DeleteInventoryItem(id int) (records.InventoryItem, error)
	InventoryItem(id int) (records.InventoryItem, error)
	Inventory() []records.InventoryItem
}
