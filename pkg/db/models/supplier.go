package models

import "time"

// Supplier is a vendor the shop buys stock from.
type Supplier struct {
	ID        int64     `gorm:"column:id;primaryKey" json:"id"`
	Name      string    `gorm:"column:name;not null" json:"name"`
	Company   string    `gorm:"column:company" json:"company"`
	Phone     string    `gorm:"column:phone" json:"phone"`
	Email     string    `gorm:"column:email" json:"email"`
	Address   string    `gorm:"column:address" json:"address"`
	Notes     string    `gorm:"column:notes" json:"notes"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

// TableName maps the struct onto the suppliers collection.
func (Supplier) TableName() string { return "suppliers" }

// PrimaryID implements store.Record.
func (s Supplier) PrimaryID() int64 { return s.ID }
