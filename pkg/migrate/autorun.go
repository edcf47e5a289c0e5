package migrate

import (
	"fmt"

	"github.com/mazajretail/shishapos-backend/pkg/db"
	"github.com/mazajretail/shishapos-backend/pkg/db/models"
)

// Tables lists every persisted collection model, leaves first.
func Tables() []any {
	return []any{
		&models.Product{},
		&models.InventoryItem{},
		&models.SaleRecord{},
		&models.LedgerEntry{},
		&models.Customer{},
		&models.Supplier{},
		&models.Notification{},
	}
}

// Run applies the schema for all collections via GORM auto-migration. SQLite
// is schema-light, so additive migration on boot is sufficient here.
func Run(client *db.Client) error {
	if client == nil {
		return fmt.Errorf("db client required")
	}
	if err := client.DB().AutoMigrate(Tables()...); err != nil {
		return fmt.Errorf("running auto-migration: %w", err)
	}
	return nil
}
