package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mazajretail/shishapos-backend/pkg/enums"
)

// LedgerEntry is one payable (expense) or receivable (bill) line.
type LedgerEntry struct {
	ID          int64           `gorm:"column:id;primaryKey" json:"id"`
	Type        enums.EntryType `gorm:"column:type;not null" json:"type"`
	Party       string          `gorm:"column:party;not null;index" json:"party"`
	Description string          `gorm:"column:description" json:"description"`
	Amount      decimal.Decimal `gorm:"column:amount;type:numeric(12,2)" json:"amount"`
	DueDate     *time.Time      `gorm:"column:due_date" json:"dueDate"`
	SettledAt   *time.Time      `gorm:"column:settled_at" json:"settledAt"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}

// TableName maps the struct onto the ledger collection.
func (LedgerEntry) TableName() string { return "ledger_entries" }

// PrimaryID implements store.Record.
func (e LedgerEntry) PrimaryID() int64 { return e.ID }

// Settled reports whether the entry has been paid/collected.
func (e LedgerEntry) Settled() bool { return e.SettledAt != nil }
