package inventory

import (
	"fmt"
	"math"

	"github.com/mazajretail/shishapos-backend/pkg/db/models"
	pkgerrors "github.com/mazajretail/shishapos-backend/pkg/errors"
)

// ErrInvalidFraction marks a carton fraction outside the allowed set. The
// converter fails on bad fractions rather than clamping them: clamping would
// silently rewrite operator input, and the data-entry layer needs to know
// exactly what it sent.
var ErrInvalidFraction = pkgerrors.New(pkgerrors.CodeValidation, "carton fraction outside the allowed set")

// allowedFractions are the partial-carton sizes the shop trades in.
var allowedFractions = []float64{0, 0.25, 0.33, 0.5, 0.66, 0.75}

const fractionTolerance = 1e-9

// ValidFraction reports whether f is one of the allowed carton fractions,
// within floating-point tolerance.
func ValidFraction(f float64) bool {
	for _, allowed := range allowedFractions {
		if math.Abs(f-allowed) <= fractionTolerance {
			return true
		}
	}
	return false
}

// WholesaleUnits converts the carton-based representation into a flat unit
// count: (cartonCount + cartonFraction) * unitsPerCarton. Nil fields count
// as zero; manually entered stock is allowed to be sparse.
func WholesaleUnits(item models.InventoryItem) (float64, error) {
	fraction := floatValue(item.CartonFraction)
	if !ValidFraction(fraction) {
		return 0, ErrInvalidFraction
	}
	cartons := float64(intValue(item.CartonCount)) + fraction
	return cartons * float64(intValue(item.UnitsPerCarton)), nil
}

// RetailUnits returns the loose retail count: retailQuantity plus the
// separately tracked extra pool. Nil fields count as zero.
func RetailUnits(item models.InventoryItem) float64 {
	return floatValue(item.RetailQuantity) + floatValue(item.ExtraRetailQuantity)
}

// TotalUnits is the item's full on-hand quantity across both pools.
func TotalUnits(item models.InventoryItem) (float64, error) {
	wholesale, err := WholesaleUnits(item)
	if err != nil {
		return 0, err
	}
	return wholesale + RetailUnits(item), nil
}

// FormatQuantity renders whole totals without a decimal point and fractional
// totals with exactly two decimals. Display contract only; stored values
// keep their natural numeric type.
func FormatQuantity(v float64) string {
	rounded := math.Round(v)
	if math.Abs(v-rounded) <= fractionTolerance {
		return fmt.Sprintf("%.0f", rounded)
	}
	return fmt.Sprintf("%.2f", v)
}

func intValue(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

func floatValue(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
