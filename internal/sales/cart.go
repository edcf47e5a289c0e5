package sales

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/mazajretail/shishapos-backend/pkg/db/models"
	"github.com/mazajretail/shishapos-backend/pkg/enums"
)

// Cart is the in-memory working set of a sale in progress. The POS runs a
// single terminal, so one cart per process is enough; the mutex covers the
// HTTP handlers hitting it concurrently.
type Cart struct {
	mu    sync.Mutex
	lines []models.SaleLine
}

// NewCart returns an empty cart.
func NewCart() *Cart {
	return &Cart{}
}

// AddLine appends a line to the cart. A line for the same product under the
// same sale type merges into the existing one; the same product sold at the
// other price point stays a separate line.
func (c *Cart) AddLine(line models.SaleLine) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].ProductID == line.ProductID && c.lines[i].SaleType == line.SaleType {
			c.lines[i].Quantity += line.Quantity
			return
		}
	}
	c.lines = append(c.lines, line)
}

// RemoveLine drops the line for the given product and sale type. Removing a
// line that is not in the cart is a no-op.
func (c *Cart) RemoveLine(productID int64, saleType enums.SaleType) {
	c.mu.Lock()
	defer c.mu.Unlock()

	kept := c.lines[:0]
	for _, line := range c.lines {
		if line.ProductID == productID && line.SaleType == saleType {
			continue
		}
		kept = append(kept, line)
	}
	c.lines = kept
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
}

// Lines returns a copy of the cart contents.
func (c *Cart) Lines() []models.SaleLine {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]models.SaleLine, len(c.lines))
	copy(out, c.lines)
	return out
}

// Total sums unit price times quantity across all lines.
func (c *Cart) Total() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := decimal.Zero
	for _, line := range c.lines {
		total = total.Add(line.Subtotal())
	}
	return total
}

// Empty reports whether the cart has no lines.
func (c *Cart) Empty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines) == 0
}
