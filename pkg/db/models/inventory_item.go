package models

import "time"

// InventoryItem is one stocked product at one location. Wholesale stock is
// carton-based (count + fraction + units per carton); retail stock is counted
// loose. Quantity fields are pointers: operators leave fields blank and the
// converters treat nil as zero.
type InventoryItem struct {
	ID                  int64     `gorm:"column:id;primaryKey" json:"id"`
	Name                string    `gorm:"column:name;not null" json:"name"`
	Barcode             string    `gorm:"column:barcode;index" json:"barcode"`
	CartonCount         *int      `gorm:"column:carton_count" json:"cartonCount"`
	CartonFraction      *float64  `gorm:"column:carton_fraction" json:"cartonFraction"`
	UnitsPerCarton      *int      `gorm:"column:units_per_carton" json:"unitsPerCarton"`
	RetailQuantity      *float64  `gorm:"column:retail_quantity" json:"retailQuantity"`
	ExtraRetailQuantity *float64  `gorm:"column:extra_retail_quantity" json:"extraRetailQuantity"`
	Location            string    `gorm:"column:location;index" json:"location"`
	CreatedAt           time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt           time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

// TableName maps the struct onto the inventory collection.
func (InventoryItem) TableName() string { return "inventory" }

// PrimaryID implements store.Record.
func (i InventoryItem) PrimaryID() int64 { return i.ID }
