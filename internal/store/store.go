package store

import (
	"context"
	"database/sql"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mazajretail/shishapos-backend/pkg/db"
	pkgerrors "github.com/mazajretail/shishapos-backend/pkg/errors"
	"github.com/mazajretail/shishapos-backend/pkg/logger"
	"github.com/mazajretail/shishapos-backend/pkg/metrics"
)

// Collection names a persisted record set. The set is closed: unknown names
// are rejected instead of lazily creating tables.
type Collection string

const (
	CollectionProducts      Collection = "products"
	CollectionInventory     Collection = "inventory"
	CollectionSalesJournal  Collection = "sales_journal"
	CollectionCustomers     Collection = "customers"
	CollectionSuppliers     Collection = "suppliers"
	CollectionLedger        Collection = "ledger_entries"
	CollectionNotifications Collection = "notifications"
)

var validCollections = []Collection{
	CollectionProducts,
	CollectionInventory,
	CollectionSalesJournal,
	CollectionCustomers,
	CollectionSuppliers,
	CollectionLedger,
	CollectionNotifications,
}

// String implements fmt.Stringer.
func (c Collection) String() string {
	return string(c)
}

// IsValid reports whether the value is a known Collection.
func (c Collection) IsValid() bool {
	for _, candidate := range validCollections {
		if candidate == c {
			return true
		}
	}
	return false
}

// Record is anything persisted in a named collection.
type Record interface {
	PrimaryID() int64
}

// Store is the persistence boundary. Callers load a whole collection,
// mutate it in memory, and save the whole collection back; Save keeps the
// replace semantics of that contract but applies it as per-record upserts
// plus pruning inside one transaction.
type Store struct {
	client    *db.Client
	logg      *logger.Logger
	exportDir string
	metrics   *metrics.CheckoutMetrics
}

// New wires the store. The export dir may be empty to disable snapshots;
// metrics may be nil.
func New(client *db.Client, logg *logger.Logger, exportDir string, m *metrics.CheckoutMetrics) (*Store, error) {
	if client == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "db client required")
	}
	return &Store{
		client:    client,
		logg:      logg,
		exportDir: exportDir,
		metrics:   m,
	}, nil
}

// Load returns every record in the collection. Absence of data is an empty
// slice, never nil.
func Load[T Record](ctx context.Context, s *Store, name Collection) ([]T, error) {
	if !name.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown collection %q", name))
	}

	out := make([]T, 0)
	err := s.client.DB().WithContext(ctx).
		Table(name.String()).
		Order("id ASC").
		Find(&out).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("loading collection %s", name))
	}
	return out, nil
}

// Save replaces the collection's contents with records. Records present are
// upserted by id; rows absent from records are pruned. A successful save
// also drops a JSON snapshot of the collection for human inspection; the
// snapshot is best-effort and never fails the save.
func Save[T Record](ctx context.Context, s *Store, name Collection, records []T) error {
	if !name.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown collection %q", name))
	}

	err := s.client.WithTx(ctx, func(tx *gorm.DB) error {
		keep := make([]int64, 0, len(records))
		for _, record := range records {
			keep = append(keep, record.PrimaryID())
		}

		if len(keep) == 0 {
			if err := tx.Exec(fmt.Sprintf("DELETE FROM %s", name)).Error; err != nil {
				return err
			}
			return nil
		}

		if err := tx.Exec(fmt.Sprintf("DELETE FROM %s WHERE id NOT IN ?", name), keep).Error; err != nil {
			return err
		}

		return tx.Table(name.String()).
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "id"}},
				UpdateAll: true,
			}).
			Create(&records).Error
	})
	if err != nil {
		s.metrics.IncSave(name.String(), "failure")
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("saving collection %s", name))
	}

	s.metrics.IncSave(name.String(), "success")
	s.export(ctx, name, records)
	return nil
}

// NextID returns an identifier guaranteed not to collide with any record in
// the collection: one greater than the max id present, or count+1 when the
// collection holds no positive ids.
func (s *Store) NextID(ctx context.Context, name Collection) (int64, error) {
	if !name.IsValid() {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown collection %q", name))
	}

	conn := s.client.DB().WithContext(ctx)

	var maxID sql.NullInt64
	row := conn.Table(name.String()).Select("MAX(id)").Row()
	if err := row.Scan(&maxID); err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("allocating id for %s", name))
	}
	if maxID.Valid && maxID.Int64 > 0 {
		return maxID.Int64 + 1, nil
	}

	var count int64
	if err := conn.Table(name.String()).Count(&count).Error; err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("allocating id for %s", name))
	}
	return count + 1, nil
}
