package inventory

import (
	"testing"

	"github.com/mazajretail/shishapos-backend/pkg/db/models"
	"github.com/mazajretail/shishapos-backend/pkg/enums"
)

func TestDefaultThreshold(t *testing.T) {
	t.Run("emptyInventoryFallsBack", func(t *testing.T) {
		got, err := DefaultThreshold(nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != 10 {
			t.Fatalf("expected fallback 10, got %d", got)
		}
	})

	t.Run("singleItemQuarterOfMedian", func(t *testing.T) {
		items := []models.InventoryItem{item(4, 0, 10, 0, 0)} // 40 wholesale units
		got, err := DefaultThreshold(items)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != 10 {
			t.Fatalf("expected max(1, floor(40*0.25)) = 10, got %d", got)
		}
	})

	t.Run("neverBelowOne", func(t *testing.T) {
		items := []models.InventoryItem{item(0, 0.25, 4, 0, 0)} // 1 wholesale unit
		got, err := DefaultThreshold(items)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != 1 {
			t.Fatalf("expected floor to clamp at 1, got %d", got)
		}
	})

	t.Run("zeroQuantityItemsExcluded", func(t *testing.T) {
		items := []models.InventoryItem{
			item(0, 0, 12, 5, 0), // zero wholesale, ignored
			item(2, 0, 20, 0, 0), // 40
			item(4, 0, 20, 0, 0), // 80
			item(6, 0, 20, 0, 0), // 120
		}
		got, err := DefaultThreshold(items)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != 20 {
			t.Fatalf("expected floor(80*0.25) = 20, got %d", got)
		}
	})

	t.Run("invalidFractionPropagates", func(t *testing.T) {
		items := []models.InventoryItem{item(1, 0.1, 10, 0, 0)}
		if _, err := DefaultThreshold(items); err == nil {
			t.Fatal("expected error for invalid fraction")
		}
	})
}

func TestClassifyBoundaries(t *testing.T) {
	threshold := 10

	t.Run("exactlyAtThresholdIsLow", func(t *testing.T) {
		status, err := Classify(item(1, 0, 10, 100, 0), threshold)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if status.Level != enums.StockLevelLowStock {
			t.Fatalf("expected low_stock at threshold, got %s", status.Level)
		}
		if !status.WholesaleLow {
			t.Fatal("expected wholesale low signal")
		}
	})

	t.Run("oneAboveThresholdIsInStock", func(t *testing.T) {
		status, err := Classify(item(1, 0, 11, 100, 0), threshold)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if status.Level != enums.StockLevelInStock {
			t.Fatalf("expected in_stock above threshold, got %s", status.Level)
		}
	})

	t.Run("bothPoolsEmptyIsOutOfStock", func(t *testing.T) {
		status, err := Classify(models.InventoryItem{}, threshold)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if status.Level != enums.StockLevelOutOfStock {
			t.Fatalf("expected out_of_stock, got %s", status.Level)
		}
	})

	t.Run("retailUsesLooserCutoff", func(t *testing.T) {
		// 20 retail units: at 2*threshold, low; wholesale pool healthy.
		status, err := Classify(item(5, 0, 100, 20, 0), threshold)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if status.Level != enums.StockLevelLowStock {
			t.Fatalf("expected low_stock via retail, got %s", status.Level)
		}
		if status.WholesaleLow {
			t.Fatal("wholesale should not be low")
		}
		if !status.RetailLow {
			t.Fatal("expected retail low signal")
		}
	})

	t.Run("bothSignalsExposedIndependently", func(t *testing.T) {
		status, err := Classify(item(0, 0.5, 10, 3, 0), threshold)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !status.WholesaleLow || !status.RetailLow {
			t.Fatalf("expected both low signals, got wholesale=%v retail=%v", status.WholesaleLow, status.RetailLow)
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		it := item(1, 0.25, 8, 2, 0)
		first, err := Classify(it, threshold)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		second, err := Classify(it, threshold)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if first != second {
			t.Fatalf("classification mutated state: %+v vs %+v", first, second)
		}
	})
}

func TestNegativeStockClassifiesOutOfStock(t *testing.T) {
	// Checkout never floors at zero; an oversold pool must surface here.
	it := models.InventoryItem{
		CartonCount:    intPtr(-2),
		UnitsPerCarton: intPtr(10),
		RetailQuantity: floatPtr(0),
	}
	status, err := Classify(it, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status.Level != enums.StockLevelOutOfStock {
		t.Fatalf("expected out_of_stock for negative stock, got %s", status.Level)
	}
	if status.WholesaleRemaining != -20 {
		t.Fatalf("expected overdraft to be visible, got %v", status.WholesaleRemaining)
	}
}
