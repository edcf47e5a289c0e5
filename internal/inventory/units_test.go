package inventory

import (
	"math"
	"testing"

	"github.com/mazajretail/shishapos-backend/pkg/db/models"
	pkgerrors "github.com/mazajretail/shishapos-backend/pkg/errors"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func item(cartons int, fraction float64, perCarton int, retail, extra float64) models.InventoryItem {
	return models.InventoryItem{
		CartonCount:         intPtr(cartons),
		CartonFraction:      floatPtr(fraction),
		UnitsPerCarton:      intPtr(perCarton),
		RetailQuantity:      floatPtr(retail),
		ExtraRetailQuantity: floatPtr(extra),
	}
}

func TestWholesaleUnitsAcrossAllFractions(t *testing.T) {
	for _, fraction := range []float64{0, 0.25, 0.33, 0.5, 0.66, 0.75} {
		got, err := WholesaleUnits(item(3, fraction, 12, 0, 0))
		if err != nil {
			t.Fatalf("fraction %v: unexpected error: %v", fraction, err)
		}
		want := (3 + fraction) * 12
		if math.Abs(got-want) > 1e-9 {
			t.Fatalf("fraction %v: got %v, want %v", fraction, got, want)
		}
	}
}

func TestWholesaleUnitsRejectsUnknownFraction(t *testing.T) {
	_, err := WholesaleUnits(item(1, 0.4, 10, 0, 0))
	if !pkgerrors.Is(err, ErrInvalidFraction) {
		t.Fatalf("expected ErrInvalidFraction, got %v", err)
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %v", err)
	}
}

func TestNilFieldsCountAsZero(t *testing.T) {
	empty := models.InventoryItem{}

	wholesale, err := WholesaleUnits(empty)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if wholesale != 0 {
		t.Fatalf("expected 0 wholesale units, got %v", wholesale)
	}
	if retail := RetailUnits(empty); retail != 0 {
		t.Fatalf("expected 0 retail units, got %v", retail)
	}
	total, err := TotalUnits(empty)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 0 {
		t.Fatalf("expected 0 total units, got %v", total)
	}
}

func TestTotalUnitsIsSumOfPools(t *testing.T) {
	it := item(2, 0.5, 10, 4, 1.5)

	wholesale, err := WholesaleUnits(it)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	total, err := TotalUnits(it)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(total-(wholesale+RetailUnits(it))) > 1e-9 {
		t.Fatalf("total %v is not wholesale %v + retail %v", total, wholesale, RetailUnits(it))
	}
	if math.Abs(total-30.5) > 1e-9 {
		t.Fatalf("expected 30.5, got %v", total)
	}
}

func TestFormatQuantity(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{25, "25"},
		{25.0000000001, "25"},
		{4.5, "4.50"},
		{0.33, "0.33"},
		{0, "0"},
	}
	for _, tc := range cases {
		if got := FormatQuantity(tc.in); got != tc.want {
			t.Fatalf("FormatQuantity(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
