package models

import (
	"time"

	"github.com/mazajretail/shishapos-backend/pkg/enums"
)

// Notification is a persisted alert, mostly stock health warnings produced
// from classifier output.
type Notification struct {
	ID        int64                  `gorm:"column:id;primaryKey" json:"id"`
	Type      enums.NotificationType `gorm:"column:type;not null" json:"type"`
	ItemID    *int64                 `gorm:"column:item_id;index" json:"itemId"`
	Message   string                 `gorm:"column:message;not null" json:"message"`
	Severity  int                    `gorm:"column:severity;not null;default:0" json:"severity"`
	ReadAt    *time.Time             `gorm:"column:read_at" json:"readAt"`
	CreatedAt time.Time              `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}

// TableName maps the struct onto the notifications collection.
func (Notification) TableName() string { return "notifications" }

// PrimaryID implements store.Record.
func (n Notification) PrimaryID() int64 { return n.ID }
