package inventory

import (
	"math"
	"sort"

	"github.com/mazajretail/shishapos-backend/pkg/db/models"
	"github.com/mazajretail/shishapos-backend/pkg/enums"
)

// FallbackThreshold applies when no item carries wholesale stock to derive
// a threshold from.
const FallbackThreshold = 10

// StockStatus is the derived health of one item. It is recomputed from
// current state on every read and never persisted. The wholesale and retail
// low signals stay independent; alerting acts on each separately.
type StockStatus struct {
	ItemID             int64            `json:"itemId"`
	Level              enums.StockLevel `json:"level"`
	WholesaleRemaining float64          `json:"wholesaleRemaining"`
	RetailRemaining    float64          `json:"retailRemaining"`
	WholesaleLow       bool             `json:"wholesaleLow"`
	RetailLow          bool             `json:"retailLow"`
}

// DefaultThreshold derives the low-stock cutoff from the inventory's own
// quantity distribution: a quarter of the median nonzero wholesale quantity,
// floored, never below 1. An inventory with no wholesale stock gets the
// fixed fallback. A fixed absolute cutoff is meaningless across shops with
// different stock scales; the median keeps outliers from skewing it.
func DefaultThreshold(items []models.InventoryItem) (int, error) {
	quantities := make([]float64, 0, len(items))
	for _, item := range items {
		wholesale, err := WholesaleUnits(item)
		if err != nil {
			return 0, err
		}
		if wholesale != 0 {
			quantities = append(quantities, wholesale)
		}
	}
	if len(quantities) == 0 {
		return FallbackThreshold, nil
	}

	threshold := int(math.Floor(median(quantities) * 0.25))
	if threshold < 1 {
		threshold = 1
	}
	return threshold, nil
}

// Classify derives the item's stock status against the given threshold.
// Retail uses a looser cutoff (twice the threshold, at least 1): retail
// sells in smaller increments and the wholesale cutoff would over-trigger.
func Classify(item models.InventoryItem, threshold int) (StockStatus, error) {
	wholesale, err := WholesaleUnits(item)
	if err != nil {
		return StockStatus{}, err
	}
	retail := RetailUnits(item)

	retailCutoff := threshold * 2
	if retailCutoff < 1 {
		retailCutoff = 1
	}

	status := StockStatus{
		ItemID:             item.ID,
		WholesaleRemaining: wholesale,
		RetailRemaining:    retail,
		WholesaleLow:       wholesale > 0 && wholesale <= float64(threshold),
		RetailLow:          retail > 0 && retail <= float64(retailCutoff),
	}

	switch {
	case wholesale <= 0 && retail <= 0:
		status.Level = enums.StockLevelOutOfStock
	case status.WholesaleLow || status.RetailLow:
		status.Level = enums.StockLevelLowStock
	default:
		status.Level = enums.StockLevelInStock
	}
	return status, nil
}

func median(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}
