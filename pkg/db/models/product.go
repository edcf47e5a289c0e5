package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mazajretail/shishapos-backend/pkg/enums"
)

// Product is a catalog entry. Its sellable quantities are the wholesale/
// retail split held on the record itself; inventory totals are the source of
// truth and flow in via the catalog refresh operation. The quantity pointers
// stay nullable on purpose: checkout skips the decrement when a pool was
// never initialized instead of failing the sale.
type Product struct {
	ID             int64               `gorm:"column:id;primaryKey" json:"id"`
	Name           string              `gorm:"column:name;not null" json:"name"`
	Barcode        string              `gorm:"column:barcode;index" json:"barcode"`
	Status         enums.ProductStatus `gorm:"column:status;not null;default:'active'" json:"status"`
	Quantity       *float64            `gorm:"column:quantity" json:"quantity"`
	RetailQuantity *float64            `gorm:"column:retail_quantity" json:"retailQuantity"`
	WholesalePrice decimal.Decimal     `gorm:"column:wholesale_price;type:numeric(12,2)" json:"wholesalePrice"`
	RetailPrice    decimal.Decimal     `gorm:"column:retail_price;type:numeric(12,2)" json:"retailPrice"`
	CreatedAt      time.Time           `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt      time.Time           `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

// TableName maps the struct onto the products collection.
func (Product) TableName() string { return "products" }

// PrimaryID implements store.Record.
func (p Product) PrimaryID() int64 { return p.ID }

// PriceFor returns the unit price for the given sale type.
func (p Product) PriceFor(saleType enums.SaleType) decimal.Decimal {
	if saleType == enums.SaleTypeRetail {
		return p.RetailPrice
	}
	return p.WholesalePrice
}
