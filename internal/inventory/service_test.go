package inventory_test

import (
	"context"
	"testing"

	"github.com/mazajretail/shishapos-backend/internal/inventory"
	"github.com/mazajretail/shishapos-backend/internal/store/storetest"
	"github.com/mazajretail/shishapos-backend/pkg/enums"
	pkgerrors "github.com/mazajretail/shishapos-backend/pkg/errors"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func newService(t *testing.T) inventory.Service {
	t.Helper()
	svc, err := inventory.NewService(storetest.New(t), nil, 0)
	if err != nil {
		t.Fatalf("building service: %v", err)
	}
	return svc
}

func TestAddCreatesFreshItem(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	item, err := svc.Add(ctx, inventory.AddItemInput{
		Name:           "Double Apple 250g",
		Barcode:        "6291100561012",
		CartonCount:    intPtr(2),
		UnitsPerCarton: intPtr(12),
		Location:       "main",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item.ID != 1 {
		t.Fatalf("expected first id 1, got %d", item.ID)
	}

	items, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
}

func TestAddMergesOnMatchingBarcodeAndLocation(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, inventory.AddItemInput{
		Name:           "Mint 250g",
		Barcode:        "6291100561029",
		CartonCount:    intPtr(2),
		CartonFraction: floatPtr(0.5),
		UnitsPerCarton: intPtr(10),
		RetailQuantity: floatPtr(3),
		Location:       "main",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	merged, err := svc.Add(ctx, inventory.AddItemInput{
		Name:           "Mint 250g",
		Barcode:        "6291100561029",
		CartonCount:    intPtr(1),
		CartonFraction: floatPtr(0.5),
		RetailQuantity: floatPtr(2),
		Location:       "main",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 2.5 + 1.5 cartons = 4 whole cartons, fraction carried over.
	if *merged.CartonCount != 4 {
		t.Fatalf("expected 4 cartons after carry, got %d", *merged.CartonCount)
	}
	if *merged.CartonFraction != 0 {
		t.Fatalf("expected fraction 0 after carry, got %v", *merged.CartonFraction)
	}
	if *merged.RetailQuantity != 5 {
		t.Fatalf("expected retail 5, got %v", *merged.RetailQuantity)
	}

	items, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("merge must not create a sibling, got %d items", len(items))
	}
}

func TestAddForceNewCreatesSibling(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	base := inventory.AddItemInput{
		Name:    "Grape 1kg",
		Barcode: "6291100561036",
	}
	if _, err := svc.Add(ctx, base); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	base.ForceNew = true
	if _, err := svc.Add(ctx, base); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	items, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected sibling record, got %d items", len(items))
	}
}

func TestAddDifferentLocationIsSeparateRecord(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	if _, err := svc.Add(ctx, inventory.AddItemInput{Name: "Coal", Barcode: "b1", Location: "main"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Add(ctx, inventory.AddItemInput{Name: "Coal", Barcode: "b1", Location: "warehouse"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	items, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected one record per location, got %d", len(items))
	}
}

func TestAddRejectsInvalidFraction(t *testing.T) {
	svc := newService(t)

	_, err := svc.Add(context.Background(), inventory.AddItemInput{
		Name:           "Bad",
		CartonFraction: floatPtr(0.4),
	})
	if !pkgerrors.Is(err, inventory.ErrInvalidFraction) {
		t.Fatalf("expected ErrInvalidFraction, got %v", err)
	}
}

func TestEditOverwritesAllFields(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	created, err := svc.Add(ctx, inventory.AddItemInput{
		Name:           "Lemon 250g",
		CartonCount:    intPtr(5),
		UnitsPerCarton: intPtr(10),
		Location:       "main",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	updated, err := svc.Edit(ctx, created.ID, inventory.EditItemInput{
		Name:           "Lemon Mint 250g",
		CartonCount:    intPtr(3),
		UnitsPerCarton: intPtr(12),
		Location:       "warehouse",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Name != "Lemon Mint 250g" || updated.Location != "warehouse" {
		t.Fatalf("expected overwrite, got %+v", updated)
	}
	if updated.RetailQuantity != nil {
		t.Fatal("fields omitted from the edit must be cleared, not kept")
	}
}

func TestDeleteRemovesItem(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	created, err := svc.Add(ctx, inventory.AddItemInput{Name: "Coal box"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.Delete(ctx, created.ID); err == nil {
		t.Fatal("expected not-found on second delete")
	}
}

func TestLowStockFlagsAgainstDerivedThreshold(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	// Quantities 40, 40, 40: threshold = floor(40*0.25) = 10.
	for i := 0; i < 3; i++ {
		if _, err := svc.Add(ctx, inventory.AddItemInput{
			Name:           "Filler",
			CartonCount:    intPtr(4),
			UnitsPerCarton: intPtr(10),
			ForceNew:       true,
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	low, err := svc.Add(ctx, inventory.AddItemInput{
		Name:           "Running out",
		CartonCount:    intPtr(0),
		CartonFraction: floatPtr(0.5),
		UnitsPerCarton: intPtr(10), // 5 wholesale units
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result, err := svc.LowStock(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Threshold != 10 {
		t.Fatalf("expected derived threshold 10, got %d", result.Threshold)
	}
	if len(result.Items) != 1 {
		t.Fatalf("expected exactly the low item flagged, got %d", len(result.Items))
	}
	if result.Items[0].ItemID != low.ID {
		t.Fatalf("expected item %d flagged, got %d", low.ID, result.Items[0].ItemID)
	}
	if result.Items[0].Level != enums.StockLevelLowStock {
		t.Fatalf("expected low_stock, got %s", result.Items[0].Level)
	}
}
