package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mazajretail/shishapos-backend/pkg/enums"
)

// SaleLine is a snapshot of one cart line at checkout time. It copies the
// price so later catalog edits never rewrite history.
type SaleLine struct {
	ProductID int64           `json:"productId"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int             `json:"quantity"`
	SaleType  enums.SaleType  `json:"saleType"`
}

// Subtotal returns unit price times quantity.
func (l SaleLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// SaleRecord is one entry in the append-only sales journal. Records are
// written once at checkout and never mutated afterwards.
type SaleRecord struct {
	ID    int64           `gorm:"column:id;primaryKey" json:"id"`
	Items []SaleLine      `gorm:"column:items;serializer:json" json:"items"`
	Total decimal.Decimal `gorm:"column:total;type:numeric(12,2)" json:"total"`
	Date  time.Time       `gorm:"column:date;not null" json:"date"`
}

// TableName maps the struct onto the sales journal collection.
func (SaleRecord) TableName() string { return "sales_journal" }

// PrimaryID implements store.Record.
func (s SaleRecord) PrimaryID() int64 { return s.ID }
