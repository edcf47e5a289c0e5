package sales

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mazajretail/shishapos-backend/internal/store"
	"github.com/mazajretail/shishapos-backend/pkg/db/models"
	"github.com/mazajretail/shishapos-backend/pkg/enums"
	pkgerrors "github.com/mazajretail/shishapos-backend/pkg/errors"
	"github.com/mazajretail/shishapos-backend/pkg/logger"
	"github.com/mazajretail/shishapos-backend/pkg/metrics"
)

// ErrEmptyCart rejects a checkout with nothing in the cart.
var ErrEmptyCart = pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")

// Service runs the sale lifecycle: cart edits, checkout, and journal reads.
type Service interface {
	AddToCart(ctx context.Context, input AddLineInput) (*CartView, error)
	RemoveFromCart(ctx context.Context, productID int64, saleType enums.SaleType) (*CartView, error)
	ViewCart(ctx context.Context) (*CartView, error)
	ClearCart(ctx context.Context) error
	Checkout(ctx context.Context) (*models.SaleRecord, error)
	Journal(ctx context.Context) ([]models.SaleRecord, error)
}

// AddLineInput identifies what goes in the cart. The price is resolved from
// the catalog at add time, not supplied by the caller.
type AddLineInput struct {
	ProductID int64          `json:"productId" validate:"required"`
	Quantity  int            `json:"quantity" validate:"required,min=1"`
	SaleType  enums.SaleType `json:"saleType" validate:"required"`
}

// CartView is the cart contents plus the running total.
type CartView struct {
	Lines []models.SaleLine `json:"lines"`
	Total decimal.Decimal   `json:"total"`
}

type service struct {
	store   *store.Store
	cart    *Cart
	logg    *logger.Logger
	metrics *metrics.CheckoutMetrics
}

// NewService wires the sales service. metrics may be nil.
func NewService(st *store.Store, logg *logger.Logger, m *metrics.CheckoutMetrics) (Service, error) {
	if st == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "store required")
	}
	if logg == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "logger required")
	}
	return &service{
		store:   st,
		cart:    NewCart(),
		logg:    logg,
		metrics: m,
	}, nil
}

func (s *service) AddToCart(ctx context.Context, input AddLineInput) (*CartView, error) {
	if !input.SaleType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown sale type")
	}
	if input.Quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	products, err := store.Load[models.Product](ctx, s.store, store.CollectionProducts)
	if err != nil {
		return nil, err
	}
	var product *models.Product
	for i := range products {
		if products[i].ID == input.ProductID {
			product = &products[i]
			break
		}
	}
	if product == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}

	s.cart.AddLine(models.SaleLine{
		ProductID: product.ID,
		Name:      product.Name,
		UnitPrice: product.PriceFor(input.SaleType),
		Quantity:  input.Quantity,
		SaleType:  input.SaleType,
	})
	return s.view(), nil
}

func (s *service) RemoveFromCart(ctx context.Context, productID int64, saleType enums.SaleType) (*CartView, error) {
	s.cart.RemoveLine(productID, saleType)
	return s.view(), nil
}

func (s *service) ViewCart(ctx context.Context) (*CartView, error) {
	return s.view(), nil
}

func (s *service) ClearCart(ctx context.Context) error {
	s.cart.Clear()
	return nil
}

// Checkout turns the cart into a journal record and applies the decrements.
// The journal write comes before the stock update on purpose: if the process
// dies in between, the books show a sale that stock does not yet reflect,
// which the shop can reconcile. The reverse order would lose the sale.
func (s *service) Checkout(ctx context.Context) (*models.SaleRecord, error) {
	started := time.Now()
	record, err := s.checkout(ctx)
	if err != nil {
		s.metrics.ObserveDuration("failure", time.Since(started))
		s.metrics.IncFailure(failureReason(err))
		return nil, err
	}
	s.metrics.ObserveDuration("success", time.Since(started))
	for _, line := range record.Items {
		s.metrics.IncSuccess(line.SaleType.String())
	}
	return record, nil
}

func (s *service) checkout(ctx context.Context) (*models.SaleRecord, error) {
	lines := s.cart.Lines()
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Subtotal())
	}

	journal, err := store.Load[models.SaleRecord](ctx, s.store, store.CollectionSalesJournal)
	if err != nil {
		return nil, err
	}
	id, err := s.store.NextID(ctx, store.CollectionSalesJournal)
	if err != nil {
		return nil, err
	}
	record := models.SaleRecord{
		ID:    id,
		Items: lines,
		Total: total,
		Date:  time.Now().UTC(),
	}
	journal = append(journal, record)
	if err := store.Save(ctx, s.store, store.CollectionSalesJournal, journal); err != nil {
		return nil, err
	}

	// Products are reloaded after the journal write; another caller may have
	// edited the catalog while the cart was being built.
	products, err := store.Load[models.Product](ctx, s.store, store.CollectionProducts)
	if err != nil {
		return nil, err
	}
	saleCtx := s.logg.WithSaleID(ctx, record.ID)
	s.applyDecrements(saleCtx, products, lines)
	if err := store.Save(ctx, s.store, store.CollectionProducts, products); err != nil {
		return nil, err
	}

	s.cart.Clear()
	s.logg.Info(saleCtx, "checkout complete")
	return &record, nil
}

func (s *service) Journal(ctx context.Context) ([]models.SaleRecord, error) {
	return store.Load[models.SaleRecord](ctx, s.store, store.CollectionSalesJournal)
}

func (s *service) view() *CartView {
	return &CartView{Lines: s.cart.Lines(), Total: s.cart.Total()}
}

// applyDecrements subtracts each sold quantity from the matching pool. A line
// whose product vanished, or whose pool was never initialized, is skipped and
// logged rather than failing a sale that already hit the journal. Quantities
// may go negative; stock health reporting surfaces the overdraft.
func (s *service) applyDecrements(ctx context.Context, products []models.Product, lines []models.SaleLine) {
	for _, line := range lines {
		idx := -1
		for i := range products {
			if products[i].ID == line.ProductID {
				idx = i
				break
			}
		}
		if idx < 0 {
			s.logg.Warn(s.logg.WithItemID(ctx, line.ProductID), "sold product missing from catalog, decrement skipped")
			continue
		}
		pool := &products[idx].Quantity
		if line.SaleType == enums.SaleTypeRetail {
			pool = &products[idx].RetailQuantity
		}
		if *pool == nil {
			s.logg.Warn(s.logg.WithItemID(ctx, line.ProductID), "quantity pool not tracked, decrement skipped")
			continue
		}
		next := **pool - float64(line.Quantity)
		*pool = &next
	}
}

func failureReason(err error) string {
	if pkgerrors.Is(err, ErrEmptyCart) {
		return "empty_cart"
	}
	if typed := pkgerrors.As(err); typed != nil {
		return string(typed.Code())
	}
	return "unknown"
}
