package models

import "time"

// Customer is a buyer the shop tracks for receivables and contact.
type Customer struct {
	ID        int64     `gorm:"column:id;primaryKey" json:"id"`
	Name      string    `gorm:"column:name;not null" json:"name"`
	Phone     string    `gorm:"column:phone" json:"phone"`
	Email     string    `gorm:"column:email" json:"email"`
	Address   string    `gorm:"column:address" json:"address"`
	Notes     string    `gorm:"column:notes" json:"notes"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

// TableName maps the struct onto the customers collection.
func (Customer) TableName() string { return "customers" }

// PrimaryID implements store.Record.
func (c Customer) PrimaryID() int64 { return c.ID }
