package catalog

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/mazajretail/shishapos-backend/internal/inventory"
	"github.com/mazajretail/shishapos-backend/internal/store"
	"github.com/mazajretail/shishapos-backend/pkg/db/models"
	"github.com/mazajretail/shishapos-backend/pkg/enums"
	pkgerrors "github.com/mazajretail/shishapos-backend/pkg/errors"
	"github.com/mazajretail/shishapos-backend/pkg/logger"
)

// Service manages the sellable catalog. Products carry prices and a cached
// wholesale/retail quantity split; the inventory collection stays the source
// of truth for quantities, synced in via Refresh.
type Service interface {
	List(ctx context.Context) ([]models.Product, error)
	Get(ctx context.Context, id int64) (*models.Product, error)
	Create(ctx context.Context, input ProductInput) (*models.Product, error)
	Update(ctx context.Context, id int64, input ProductInput) (*models.Product, error)
	Delete(ctx context.Context, id int64) error
	Refresh(ctx context.Context) (*RefreshResult, error)
}

// ProductInput carries the writable product fields.
type ProductInput struct {
	Name           string              `json:"name" validate:"required"`
	Barcode        string              `json:"barcode"`
	Status         enums.ProductStatus `json:"status" validate:"omitempty,oneof=active inactive discontinued"`
	Quantity       *float64            `json:"quantity"`
	RetailQuantity *float64            `json:"retailQuantity"`
	WholesalePrice decimal.Decimal     `json:"wholesalePrice"`
	RetailPrice    decimal.Decimal     `json:"retailPrice"`
}

// RefreshResult reports how many products were synced from inventory.
type RefreshResult struct {
	Matched   int `json:"matched"`
	Unmatched int `json:"unmatched"`
}

type service struct {
	store *store.Store
	logg  *logger.Logger
}

// NewService wires the catalog service.
func NewService(st *store.Store, logg *logger.Logger) (Service, error) {
	if st == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "store required")
	}
	if logg == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "logger required")
	}
	return &service{store: st, logg: logg}, nil
}

func (s *service) List(ctx context.Context) ([]models.Product, error) {
	return store.Load[models.Product](ctx, s.store, store.CollectionProducts)
}

func (s *service) Get(ctx context.Context, id int64) (*models.Product, error) {
	products, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].ID == id {
			return &products[i], nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
}

func (s *service) Create(ctx context.Context, input ProductInput) (*models.Product, error) {
	products, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	id, err := s.store.NextID(ctx, store.CollectionProducts)
	if err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = enums.ProductStatusActive
	}
	product := models.Product{
		ID:             id,
		Name:           input.Name,
		Barcode:        input.Barcode,
		Status:         status,
		Quantity:       input.Quantity,
		RetailQuantity: input.RetailQuantity,
		WholesalePrice: input.WholesalePrice,
		RetailPrice:    input.RetailPrice,
	}
	products = append(products, product)
	if err := store.Save(ctx, s.store, store.CollectionProducts, products); err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *service) Update(ctx context.Context, id int64, input ProductInput) (*models.Product, error) {
	products, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].ID != id {
			continue
		}
		products[i].Name = input.Name
		products[i].Barcode = input.Barcode
		if input.Status != "" {
			products[i].Status = input.Status
		}
		products[i].Quantity = input.Quantity
		products[i].RetailQuantity = input.RetailQuantity
		products[i].WholesalePrice = input.WholesalePrice
		products[i].RetailPrice = input.RetailPrice
		if err := store.Save(ctx, s.store, store.CollectionProducts, products); err != nil {
			return nil, err
		}
		return &products[i], nil
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
}

func (s *service) Delete(ctx context.Context, id int64) error {
	products, err := s.List(ctx)
	if err != nil {
		return err
	}
	kept := products[:0]
	found := false
	for _, product := range products {
		if product.ID == id {
			found = true
			continue
		}
		kept = append(kept, product)
	}
	if !found {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return store.Save(ctx, s.store, store.CollectionProducts, kept)
}

// Refresh pulls quantities from inventory onto barcode-matched products.
// Multiple inventory records sharing a barcode (per-location siblings) sum
// into one total. Products without a barcode match keep their quantities;
// checkout may have driven them independently.
func (s *service) Refresh(ctx context.Context) (*RefreshResult, error) {
	products, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	items, err := store.Load[models.InventoryItem](ctx, s.store, store.CollectionInventory)
	if err != nil {
		return nil, err
	}

	type totals struct {
		wholesale float64
		retail    float64
	}
	byBarcode := make(map[string]totals, len(items))
	for _, item := range items {
		if item.Barcode == "" {
			continue
		}
		wholesale, err := inventory.WholesaleUnits(item)
		if err != nil {
			return nil, err
		}
		sum := byBarcode[item.Barcode]
		sum.wholesale += wholesale
		sum.retail += inventory.RetailUnits(item)
		byBarcode[item.Barcode] = sum
	}

	result := &RefreshResult{}
	for i := range products {
		sum, ok := byBarcode[products[i].Barcode]
		if products[i].Barcode == "" || !ok {
			result.Unmatched++
			continue
		}
		wholesale, retail := sum.wholesale, sum.retail
		products[i].Quantity = &wholesale
		products[i].RetailQuantity = &retail
		result.Matched++
	}

	if err := store.Save(ctx, s.store, store.CollectionProducts, products); err != nil {
		return nil, err
	}
	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"matched":   result.Matched,
		"unmatched": result.Unmatched,
	}), "catalog refreshed from inventory")
	return result, nil
}
