package partners

import (
	"context"

	"github.com/mazajretail/shishapos-backend/internal/store"
	"github.com/mazajretail/shishapos-backend/pkg/db/models"
	pkgerrors "github.com/mazajretail/shishapos-backend/pkg/errors"
	"github.com/mazajretail/shishapos-backend/pkg/logger"
)

// Service manages the shop's customers and suppliers.
type Service interface {
	ListCustomers(ctx context.Context) ([]models.Customer, error)
	CreateCustomer(ctx context.Context, input CustomerInput) (*models.Customer, error)
	UpdateCustomer(ctx context.Context, id int64, input CustomerInput) (*models.Customer, error)
	DeleteCustomer(ctx context.Context, id int64) error

	ListSuppliers(ctx context.Context) ([]models.Supplier, error)
	CreateSupplier(ctx context.Context, input SupplierInput) (*models.Supplier, error)
	UpdateSupplier(ctx context.Context, id int64, input SupplierInput) (*models.Supplier, error)
	DeleteSupplier(ctx context.Context, id int64) error
}

// CustomerInput carries the writable customer fields.
type CustomerInput struct {
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone"`
	Email   string `json:"email" validate:"omitempty,email"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}

// SupplierInput carries the writable supplier fields.
type SupplierInput struct {
	Name    string `json:"name" validate:"required"`
	Company string `json:"company"`
	Phone   string `json:"phone"`
	Email   string `json:"email" validate:"omitempty,email"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}

type service struct {
	store *store.Store
	logg  *logger.Logger
}

// NewService wires the partners service.
func NewService(st *store.Store, logg *logger.Logger) (Service, error) {
	if st == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "store required")
	}
	if logg == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "logger required")
	}
	return &service{store: st, logg: logg}, nil
}

func (s *service) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	return store.Load[models.Customer](ctx, s.store, store.CollectionCustomers)
}

func (s *service) CreateCustomer(ctx context.Context, input CustomerInput) (*models.Customer, error) {
	customers, err := s.ListCustomers(ctx)
	if err != nil {
		return nil, err
	}
	id, err := s.store.NextID(ctx, store.CollectionCustomers)
	if err != nil {
		return nil, err
	}
	customer := models.Customer{
		ID:      id,
		Name:    input.Name,
		Phone:   input.Phone,
		Email:   input.Email,
		Address: input.Address,
		Notes:   input.Notes,
	}
	customers = append(customers, customer)
	if err := store.Save(ctx, s.store, store.CollectionCustomers, customers); err != nil {
		return nil, err
	}
	return &customer, nil
}

func (s *service) UpdateCustomer(ctx context.Context, id int64, input CustomerInput) (*models.Customer, error) {
	customers, err := s.ListCustomers(ctx)
	if err != nil {
		return nil, err
	}
	for i := range customers {
		if customers[i].ID != id {
			continue
		}
		customers[i].Name = input.Name
		customers[i].Phone = input.Phone
		customers[i].Email = input.Email
		customers[i].Address = input.Address
		customers[i].Notes = input.Notes
		if err := store.Save(ctx, s.store, store.CollectionCustomers, customers); err != nil {
			return nil, err
		}
		return &customers[i], nil
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
}

func (s *service) DeleteCustomer(ctx context.Context, id int64) error {
	customers, err := s.ListCustomers(ctx)
	if err != nil {
		return err
	}
	kept := customers[:0]
	found := false
	for _, customer := range customers {
		if customer.ID == id {
			found = true
			continue
		}
		kept = append(kept, customer)
	}
	if !found {
		return pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
	}
	return store.Save(ctx, s.store, store.CollectionCustomers, kept)
}

func (s *service) ListSuppliers(ctx context.Context) ([]models.Supplier, error) {
	return store.Load[models.Supplier](ctx, s.store, store.CollectionSuppliers)
}

func (s *service) CreateSupplier(ctx context.Context, input SupplierInput) (*models.Supplier, error) {
	suppliers, err := s.ListSuppliers(ctx)
	if err != nil {
		return nil, err
	}
	id, err := s.store.NextID(ctx, store.CollectionSuppliers)
	if err != nil {
		return nil, err
	}
	supplier := models.Supplier{
		ID:      id,
		Name:    input.Name,
		Company: input.Company,
		Phone:   input.Phone,
		Email:   input.Email,
		Address: input.Address,
		Notes:   input.Notes,
	}
	suppliers = append(suppliers, supplier)
	if err := store.Save(ctx, s.store, store.CollectionSuppliers, suppliers); err != nil {
		return nil, err
	}
	return &supplier, nil
}

func (s *service) UpdateSupplier(ctx context.Context, id int64, input SupplierInput) (*models.Supplier, error) {
	suppliers, err := s.ListSuppliers(ctx)
	if err != nil {
		return nil, err
	}
	for i := range suppliers {
		if suppliers[i].ID != id {
			continue
		}
		suppliers[i].Name = input.Name
		suppliers[i].Company = input.Company
		suppliers[i].Phone = input.Phone
		suppliers[i].Email = input.Email
		suppliers[i].Address = input.Address
		suppliers[i].Notes = input.Notes
		if err := store.Save(ctx, s.store, store.CollectionSuppliers, suppliers); err != nil {
			return nil, err
		}
		return &suppliers[i], nil
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "supplier not found")
}

func (s *service) DeleteSupplier(ctx context.Context, id int64) error {
	suppliers, err := s.ListSuppliers(ctx)
	if err != nil {
		return err
	}
	kept := suppliers[:0]
	found := false
	for _, supplier := range suppliers {
		if supplier.ID == id {
			found = true
			continue
		}
		kept = append(kept, supplier)
	}
	if !found {
		return pkgerrors.New(pkgerrors.CodeNotFound, "supplier not found")
	}
	return store.Save(ctx, s.store, store.CollectionSuppliers, kept)
}
