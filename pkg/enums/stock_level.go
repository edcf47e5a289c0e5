package enums

import "fmt"

// StockLevel is the derived health classification of an inventory item.
type StockLevel string

const (
	StockLevelInStock    StockLevel = "in_stock"
	StockLevelLowStock   StockLevel = "low_stock"
	StockLevelOutOfStock StockLevel = "out_of_stock"
)

var validStockLevels = []StockLevel{
	StockLevelInStock,
	StockLevelLowStock,
	StockLevelOutOfStock,
}

// String implements fmt.Stringer.
func (l StockLevel) String() string {
	return string(l)
}

// IsValid reports whether the value is a known StockLevel.
func (l StockLevel) IsValid() bool {
	for _, candidate := range validStockLevels {
		if candidate == l {
			return true
		}
	}
	return false
}

// Severity orders levels for alerting: out_of_stock outranks low_stock,
// which outranks in_stock.
func (l StockLevel) Severity() int {
	switch l {
	case StockLevelOutOfStock:
		return 2
	case StockLevelLowStock:
		return 1
	default:
		return 0
	}
}

// ParseStockLevel converts raw input into a StockLevel.
func ParseStockLevel(value string) (StockLevel, error) {
	for _, candidate := range validStockLevels {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid stock level %q", value)
}
