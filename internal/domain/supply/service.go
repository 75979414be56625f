// Package supply manages the stock of medical supplies.
package supply

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/hms/hms/internal/records"
	"github.com/hms/hms/pkg/pagination"
)

type Service struct {
	repo   InventoryRepository
	logger zerolog.Logger
}

func NewService(repo InventoryRepository, logger zerolog.Logger) *Service {
	return &Service{repo: repo, logger: logger.With().Str("component", "supply").Logger()}
}

func (s *Service) CreateItem(ctx context.Context, f InventoryForm) (records.InventoryItem, error) {
	var i records.InventoryItem
	if err := f.Apply(&i); err != nil {
		return records.InventoryItem{}, err
	}
	i, err := s.repo.AddInventoryItem(i)
	if err != nil {
		return records.InventoryItem{}, err
	}
	s.logger.Info().Int("item_id", i.ID).Str("name", i.Name).Msg("inventory item added")
	return i, nil
}

func (s *Service) GetItem(ctx context.Context, id int) (records.InventoryItem, error) {
	return s.repo.InventoryItem(id)
}

func (s *Service) UpdateItem(ctx context.Context, id int, f InventoryForm) (records.InventoryItem, error) {
	i, err := s.repo.UpdateInventoryItem(id, func(i *records.InventoryItem) error {
		return f.Apply(i)
	})
	if err != nil {
		return records.InventoryItem{}, err
	}
	s.logger.Info().Int("item_id", id).Msg("inventory item updated")
	return i, nil
}

func (s *Service) DeleteItem(ctx context.Context, id int) error {
	if _, err := s.repo.DeleteInventoryItem(id); err != nil {
		return err
	}
	s.logger.Info().Int("item_id", id).Msg("inventory item deleted")
	return nil
}

func (s *Service) ListItems(ctx context.Context, limit, offset int) ([]records.InventoryItem, int, error) {
	all := s.repo.Inventory()
	return pagination.Page(all, limit, offset), len(all), nil
}

// Restock adds the parsed input to the item's quantity. Input that is not an
// integer is rejected before the item is touched. There is no lower bound on
// the resulting quantity.
func (s *Service) Restock(ctx context.Context, id int, input string) (records.InventoryItem, error) {
	delta, err := ParseDelta(input)
	if err != nil {
		return records.InventoryItem{}, err
	}
	i, err := s.repo.UpdateInventoryItem(id, func(i *records.InventoryItem) error {
		i.Quantity += delta
		return nil
	})
	if err != nil {
		return records.InventoryItem{}, err
	}
	s.logger.Info().Int("item_id", id).Int("delta", delta).Int("quantity", i.Quantity).Msg("inventory restocked")
	return i, nil
}
