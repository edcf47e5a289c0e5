package sales_test

import (
	"context"
	"io"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/mazajretail/shishapos-backend/internal/sales"
	"github.com/mazajretail/shishapos-backend/internal/store"
	"github.com/mazajretail/shishapos-backend/internal/store/storetest"
	"github.com/mazajretail/shishapos-backend/pkg/db/models"
	"github.com/mazajretail/shishapos-backend/pkg/enums"
	pkgerrors "github.com/mazajretail/shishapos-backend/pkg/errors"
	"github.com/mazajretail/shishapos-backend/pkg/logger"
)

func floatPtr(v float64) *float64 { return &v }

func newFixture(t *testing.T) (sales.Service, *store.Store) {
	t.Helper()
	st := storetest.New(t)
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	svc, err := sales.NewService(st, logg, nil)
	require.NoError(t, err)
	return svc, st
}

func seedProducts(t *testing.T, st *store.Store, products []models.Product) {
	t.Helper()
	require.NoError(t, store.Save(context.Background(), st, store.CollectionProducts, products))
}

func defaultProducts() []models.Product {
	return []models.Product{
		{
			ID:             1,
			Name:           "Double Apple 250g",
			Status:         enums.ProductStatusActive,
			Quantity:       floatPtr(24),
			RetailQuantity: floatPtr(10),
			WholesalePrice: decimal.RequireFromString("40.00"),
			RetailPrice:    decimal.RequireFromString("55.00"),
		},
		{
			ID:             2,
			Name:           "Mint 250g",
			Status:         enums.ProductStatusActive,
			Quantity:       floatPtr(12),
			RetailQuantity: nil,
			WholesalePrice: decimal.RequireFromString("38.00"),
			RetailPrice:    decimal.RequireFromString("50.00"),
		},
	}
}

func TestCheckoutEmptyCartFails(t *testing.T) {
	svc, _ := newFixture(t)

	_, err := svc.Checkout(context.Background())
	require.ErrorIs(t, err, sales.ErrEmptyCart)
	require.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestCheckoutWritesJournalAndDecrementsStock(t *testing.T) {
	svc, st := newFixture(t)
	ctx := context.Background()
	seedProducts(t, st, defaultProducts())

	_, err := svc.AddToCart(ctx, sales.AddLineInput{ProductID: 1, Quantity: 2, SaleType: enums.SaleTypeWholesale})
	require.NoError(t, err)
	_, err = svc.AddToCart(ctx, sales.AddLineInput{ProductID: 1, Quantity: 3, SaleType: enums.SaleTypeRetail})
	require.NoError(t, err)

	record, err := svc.Checkout(ctx)
	require.NoError(t, err)
	require.True(t, record.Total.Equal(decimal.RequireFromString("245.00")), "2*40 + 3*55, got %s", record.Total)
	require.Len(t, record.Items, 2)

	journal, err := svc.Journal(ctx)
	require.NoError(t, err)
	require.Len(t, journal, 1)
	require.Equal(t, record.ID, journal[0].ID)

	products, err := store.Load[models.Product](ctx, st, store.CollectionProducts)
	require.NoError(t, err)
	require.Equal(t, 22.0, *products[0].Quantity)
	require.Equal(t, 7.0, *products[0].RetailQuantity)

	view, err := svc.ViewCart(ctx)
	require.NoError(t, err)
	require.Empty(t, view.Lines)
}

func TestCheckoutAllowsNegativeStock(t *testing.T) {
	svc, st := newFixture(t)
	ctx := context.Background()
	seedProducts(t, st, defaultProducts())

	_, err := svc.AddToCart(ctx, sales.AddLineInput{ProductID: 1, Quantity: 30, SaleType: enums.SaleTypeWholesale})
	require.NoError(t, err)

	_, err = svc.Checkout(ctx)
	require.NoError(t, err)

	products, err := store.Load[models.Product](ctx, st, store.CollectionProducts)
	require.NoError(t, err)
	require.Equal(t, -6.0, *products[0].Quantity, "oversell must not be floored at zero")
}

func TestCheckoutSkipsUntrackedPool(t *testing.T) {
	svc, st := newFixture(t)
	ctx := context.Background()
	seedProducts(t, st, defaultProducts())

	// Product 2 has no retail pool; the sale still completes.
	_, err := svc.AddToCart(ctx, sales.AddLineInput{ProductID: 2, Quantity: 4, SaleType: enums.SaleTypeRetail})
	require.NoError(t, err)

	record, err := svc.Checkout(ctx)
	require.NoError(t, err)
	require.True(t, record.Total.Equal(decimal.RequireFromString("200.00")))

	products, err := store.Load[models.Product](ctx, st, store.CollectionProducts)
	require.NoError(t, err)
	require.Nil(t, products[1].RetailQuantity, "untracked pool stays untracked")
	require.Equal(t, 12.0, *products[1].Quantity, "wholesale pool untouched by retail sale")
}

func TestCheckoutProductDeletedMidSale(t *testing.T) {
	svc, st := newFixture(t)
	ctx := context.Background()
	seedProducts(t, st, defaultProducts())

	_, err := svc.AddToCart(ctx, sales.AddLineInput{ProductID: 2, Quantity: 1, SaleType: enums.SaleTypeWholesale})
	require.NoError(t, err)

	// Catalog edit between add and checkout: product 2 disappears.
	seedProducts(t, st, defaultProducts()[:1])

	record, err := svc.Checkout(ctx)
	require.NoError(t, err, "the journal keeps the sale even when the product is gone")
	require.Len(t, record.Items, 1)

	journal, err := svc.Journal(ctx)
	require.NoError(t, err)
	require.Len(t, journal, 1)
}

func TestCheckoutFailedEmptyCartLeavesJournalUntouched(t *testing.T) {
	svc, _ := newFixture(t)
	ctx := context.Background()

	_, err := svc.Checkout(ctx)
	require.Error(t, err)

	journal, err := svc.Journal(ctx)
	require.NoError(t, err)
	require.Empty(t, journal)
}

func TestAddToCartUnknownProduct(t *testing.T) {
	svc, _ := newFixture(t)

	_, err := svc.AddToCart(context.Background(), sales.AddLineInput{ProductID: 99, Quantity: 1, SaleType: enums.SaleTypeRetail})
	require.Error(t, err)
	require.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}

func TestAddToCartSnapshotsPrice(t *testing.T) {
	svc, st := newFixture(t)
	ctx := context.Background()
	seedProducts(t, st, defaultProducts())

	_, err := svc.AddToCart(ctx, sales.AddLineInput{ProductID: 1, Quantity: 1, SaleType: enums.SaleTypeWholesale})
	require.NoError(t, err)

	// Reprice after the line is in the cart.
	repriced := defaultProducts()
	repriced[0].WholesalePrice = decimal.RequireFromString("99.00")
	seedProducts(t, st, repriced)

	record, err := svc.Checkout(ctx)
	require.NoError(t, err)
	require.True(t, record.Total.Equal(decimal.RequireFromString("40.00")), "cart keeps the price at add time")
}

func TestRemoveFromCart(t *testing.T) {
	svc, st := newFixture(t)
	ctx := context.Background()
	seedProducts(t, st, defaultProducts())

	_, err := svc.AddToCart(ctx, sales.AddLineInput{ProductID: 1, Quantity: 1, SaleType: enums.SaleTypeWholesale})
	require.NoError(t, err)
	view, err := svc.RemoveFromCart(ctx, 1, enums.SaleTypeWholesale)
	require.NoError(t, err)
	require.Empty(t, view.Lines)
}
