package inventory

import (
	"context"

	"github.com/mazajretail/shishapos-backend/internal/store"
	"github.com/mazajretail/shishapos-backend/pkg/db/models"
	"github.com/mazajretail/shishapos-backend/pkg/enums"
	pkgerrors "github.com/mazajretail/shishapos-backend/pkg/errors"
	"github.com/mazajretail/shishapos-backend/pkg/logger"
)

// Service covers the inventory item lifecycle plus the derived stock views.
type Service interface {
	List(ctx context.Context) ([]models.InventoryItem, error)
	Get(ctx context.Context, id int64) (*models.InventoryItem, error)
	Add(ctx context.Context, input AddItemInput) (*models.InventoryItem, error)
	Edit(ctx context.Context, id int64, input EditItemInput) (*models.InventoryItem, error)
	Delete(ctx context.Context, id int64) error
	Status(ctx context.Context, id int64) (*StockStatus, error)
	LowStock(ctx context.Context) (*LowStockResult, error)
}

// AddItemInput creates or merges an inventory record. When a record with the
// same barcode and location exists the quantities are added onto it, unless
// ForceNew asks for a sibling record instead.
type AddItemInput struct {
	Name                string   `json:"name" validate:"required"`
	Barcode             string   `json:"barcode"`
	CartonCount         *int     `json:"cartonCount" validate:"omitempty,min=0"`
	CartonFraction      *float64 `json:"cartonFraction"`
	UnitsPerCarton      *int     `json:"unitsPerCarton" validate:"omitempty,min=0"`
	RetailQuantity      *float64 `json:"retailQuantity" validate:"omitempty,min=0"`
	ExtraRetailQuantity *float64 `json:"extraRetailQuantity" validate:"omitempty,min=0"`
	Location            string   `json:"location"`
	ForceNew            bool     `json:"forceNew"`
}

// EditItemInput overwrites every field of an existing record.
type EditItemInput struct {
	Name                string   `json:"name" validate:"required"`
	Barcode             string   `json:"barcode"`
	CartonCount         *int     `json:"cartonCount" validate:"omitempty,min=0"`
	CartonFraction      *float64 `json:"cartonFraction"`
	UnitsPerCarton      *int     `json:"unitsPerCarton" validate:"omitempty,min=0"`
	RetailQuantity      *float64 `json:"retailQuantity" validate:"omitempty,min=0"`
	ExtraRetailQuantity *float64 `json:"extraRetailQuantity" validate:"omitempty,min=0"`
	Location            string   `json:"location"`
}

// LowStockResult pairs flagged items with the threshold they were judged
// against, so the caller can render the cutoff alongside the alerts.
type LowStockResult struct {
	Threshold int           `json:"threshold"`
	Items     []StockStatus `json:"items"`
}

type service struct {
	store             *store.Store
	logg              *logger.Logger
	thresholdOverride int
}

// NewService wires the inventory service. thresholdOverride pins the
// low-stock cutoff; zero derives it from the inventory itself.
func NewService(st *store.Store, logg *logger.Logger, thresholdOverride int) (Service, error) {
	if st == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "store required")
	}
	return &service{
		store:             st,
		logg:              logg,
		thresholdOverride: thresholdOverride,
	}, nil
}

func (s *service) List(ctx context.Context) ([]models.InventoryItem, error) {
	return store.Load[models.InventoryItem](ctx, s.store, store.CollectionInventory)
}

func (s *service) Get(ctx context.Context, id int64) (*models.InventoryItem, error) {
	items, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == id {
			return &items[i], nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "inventory item not found")
}

func (s *service) Add(ctx context.Context, input AddItemInput) (*models.InventoryItem, error) {
	if !ValidFraction(floatValue(input.CartonFraction)) {
		return nil, ErrInvalidFraction
	}

	items, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	if !input.ForceNew && input.Barcode != "" {
		for i := range items {
			if items[i].Barcode == input.Barcode && items[i].Location == input.Location {
				merged, err := mergeQuantities(&items[i], input)
				if err != nil {
					return nil, err
				}
				if err := store.Save(ctx, s.store, store.CollectionInventory, items); err != nil {
					return nil, err
				}
				return merged, nil
			}
		}
	}

	id, err := s.store.NextID(ctx, store.CollectionInventory)
	if err != nil {
		return nil, err
	}
	item := models.InventoryItem{
		ID:                  id,
		Name:                input.Name,
		Barcode:             input.Barcode,
		CartonCount:         input.CartonCount,
		CartonFraction:      input.CartonFraction,
		UnitsPerCarton:      input.UnitsPerCarton,
		RetailQuantity:      input.RetailQuantity,
		ExtraRetailQuantity: input.ExtraRetailQuantity,
		Location:            input.Location,
	}
	items = append(items, item)
	if err := store.Save(ctx, s.store, store.CollectionInventory, items); err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *service) Edit(ctx context.Context, id int64, input EditItemInput) (*models.InventoryItem, error) {
	if !ValidFraction(floatValue(input.CartonFraction)) {
		return nil, ErrInvalidFraction
	}

	items, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID != id {
			continue
		}
		items[i].Name = input.Name
		items[i].Barcode = input.Barcode
		items[i].CartonCount = input.CartonCount
		items[i].CartonFraction = input.CartonFraction
		items[i].UnitsPerCarton = input.UnitsPerCarton
		items[i].RetailQuantity = input.RetailQuantity
		items[i].ExtraRetailQuantity = input.ExtraRetailQuantity
		items[i].Location = input.Location
		if err := store.Save(ctx, s.store, store.CollectionInventory, items); err != nil {
			return nil, err
		}
		return &items[i], nil
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "inventory item not found")
}

func (s *service) Delete(ctx context.Context, id int64) error {
	items, err := s.List(ctx)
	if err != nil {
		return err
	}
	kept := items[:0]
	found := false
	for _, item := range items {
		if item.ID == id {
			found = true
			continue
		}
		kept = append(kept, item)
	}
	if !found {
		return pkgerrors.New(pkgerrors.CodeNotFound, "inventory item not found")
	}
	return store.Save(ctx, s.store, store.CollectionInventory, kept)
}

func (s *service) Status(ctx context.Context, id int64) (*StockStatus, error) {
	items, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	threshold, err := s.threshold(items)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		if item.ID != id {
			continue
		}
		status, err := Classify(item, threshold)
		if err != nil {
			return nil, err
		}
		return &status, nil
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "inventory item not found")
}

func (s *service) LowStock(ctx context.Context) (*LowStockResult, error) {
	items, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	threshold, err := s.threshold(items)
	if err != nil {
		return nil, err
	}

	flagged := make([]StockStatus, 0)
	for _, item := range items {
		status, err := Classify(item, threshold)
		if err != nil {
			return nil, err
		}
		if status.Level != enums.StockLevelInStock {
			flagged = append(flagged, status)
		}
	}
	return &LowStockResult{Threshold: threshold, Items: flagged}, nil
}

// threshold is recomputed from the full inventory on every read. The
// inventory is small enough that caching would only add staleness.
func (s *service) threshold(items []models.InventoryItem) (int, error) {
	if s.thresholdOverride > 0 {
		return s.thresholdOverride, nil
	}
	return DefaultThreshold(items)
}

// mergeQuantities adds the incoming quantities onto an existing record.
// Fractions are summed and whole cartons carried over; a remainder outside
// the allowed set fails rather than being rounded.
func mergeQuantities(existing *models.InventoryItem, input AddItemInput) (*models.InventoryItem, error) {
	cartons := intValue(existing.CartonCount) + intValue(input.CartonCount)
	fractionSum := floatValue(existing.CartonFraction) + floatValue(input.CartonFraction)
	carry := int(fractionSum)
	fraction := fractionSum - float64(carry)
	if !ValidFraction(fraction) {
		return nil, ErrInvalidFraction
	}
	cartons += carry

	retail := floatValue(existing.RetailQuantity) + floatValue(input.RetailQuantity)
	extra := floatValue(existing.ExtraRetailQuantity) + floatValue(input.ExtraRetailQuantity)

	existing.CartonCount = &cartons
	existing.CartonFraction = &fraction
	existing.RetailQuantity = &retail
	existing.ExtraRetailQuantity = &extra
	if intValue(existing.UnitsPerCarton) == 0 {
		existing.UnitsPerCarton = input.UnitsPerCarton
	}
	return existing, nil
}
