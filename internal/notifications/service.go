package notifications

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/mazajretail/shishapos-backend/internal/inventory"
	"github.com/mazajretail/shishapos-backend/internal/ledger"
	"github.com/mazajretail/shishapos-backend/internal/store"
	"github.com/mazajretail/shishapos-backend/pkg/db/models"
	"github.com/mazajretail/shishapos-backend/pkg/enums"
	pkgerrors "github.com/mazajretail/shishapos-backend/pkg/errors"
	"github.com/mazajretail/shishapos-backend/pkg/logger"
)

// billDueWindow is how far ahead the refresh looks for unsettled bills.
const billDueWindow = 7 * 24 * time.Hour

// Service materializes alerts out of the stock classifier and the ledger and
// keeps their read state.
type Service interface {
	List(ctx context.Context, unreadOnly bool) ([]models.Notification, error)
	Refresh(ctx context.Context) ([]models.Notification, error)
	MarkRead(ctx context.Context, id int64) error
	MarkAllRead(ctx context.Context) error
}

type service struct {
	store     *store.Store
	inventory inventory.Service
	ledger    ledger.Service
	logg      *logger.Logger
}

// NewService wires the notifications service.
func NewService(st *store.Store, inv inventory.Service, led ledger.Service, logg *logger.Logger) (Service, error) {
	if st == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "store required")
	}
	if inv == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "inventory service required")
	}
	if led == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "ledger service required")
	}
	if logg == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "logger required")
	}
	return &service{store: st, inventory: inv, ledger: led, logg: logg}, nil
}

// List returns notifications ordered most severe first, ties broken by
// newest. unreadOnly drops already-read alerts.
func (s *service) List(ctx context.Context, unreadOnly bool) ([]models.Notification, error) {
	all, err := store.Load[models.Notification](ctx, s.store, store.CollectionNotifications)
	if err != nil {
		return nil, err
	}

	out := all
	if unreadOnly {
		out = make([]models.Notification, 0, len(all))
		for _, n := range all {
			if n.ReadAt == nil {
				out = append(out, n)
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Severity != out[j].Severity {
			return out[i].Severity > out[j].Severity
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Refresh rebuilds the alert set from current state. Unread alerts that no
// longer apply are dropped; read ones stay as history. An alert for the same
// item and type is not duplicated across refreshes.
func (s *service) Refresh(ctx context.Context) ([]models.Notification, error) {
	existing, err := store.Load[models.Notification](ctx, s.store, store.CollectionNotifications)
	if err != nil {
		return nil, err
	}

	fresh, err := s.currentAlerts(ctx)
	if err != nil {
		return nil, err
	}

	type key struct {
		t      enums.NotificationType
		itemID int64
	}
	keyOf := func(n models.Notification) key {
		k := key{t: n.Type}
		if n.ItemID != nil {
			k.itemID = *n.ItemID
		}
		return k
	}

	freshKeys := make(map[key]bool, len(fresh))
	for _, n := range fresh {
		freshKeys[keyOf(n)] = true
	}

	kept := make([]models.Notification, 0, len(existing)+len(fresh))
	seen := make(map[key]bool, len(existing))
	for _, n := range existing {
		k := keyOf(n)
		if n.ReadAt == nil && !freshKeys[k] {
			continue
		}
		kept = append(kept, n)
		if n.ReadAt == nil {
			seen[k] = true
		}
	}
	for _, n := range fresh {
		if seen[keyOf(n)] {
			continue
		}
		id, err := s.store.NextID(ctx, store.CollectionNotifications)
		if err != nil {
			return nil, err
		}
		// NextID consults the table, not the batch; bump past what this
		// refresh already allocated.
		for _, k := range kept {
			if k.ID >= id {
				id = k.ID + 1
			}
		}
		n.ID = id
		n.CreatedAt = time.Now().UTC()
		kept = append(kept, n)
	}

	if err := store.Save(ctx, s.store, store.CollectionNotifications, kept); err != nil {
		return nil, err
	}
	return s.List(ctx, true)
}

func (s *service) MarkRead(ctx context.Context, id int64) error {
	all, err := store.Load[models.Notification](ctx, s.store, store.CollectionNotifications)
	if err != nil {
		return err
	}
	for i := range all {
		if all[i].ID != id {
			continue
		}
		if all[i].ReadAt == nil {
			now := time.Now().UTC()
			all[i].ReadAt = &now
		}
		return store.Save(ctx, s.store, store.CollectionNotifications, all)
	}
	return pkgerrors.New(pkgerrors.CodeNotFound, "notification not found")
}

func (s *service) MarkAllRead(ctx context.Context) error {
	all, err := store.Load[models.Notification](ctx, s.store, store.CollectionNotifications)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	for i := range all {
		if all[i].ReadAt == nil {
			all[i].ReadAt = &now
		}
	}
	return store.Save(ctx, s.store, store.CollectionNotifications, all)
}

func (s *service) currentAlerts(ctx context.Context) ([]models.Notification, error) {
	low, err := s.inventory.LowStock(ctx)
	if err != nil {
		return nil, err
	}

	alerts := make([]models.Notification, 0, len(low.Items))
	for _, status := range low.Items {
		item, err := s.inventory.Get(ctx, status.ItemID)
		if err != nil {
			return nil, err
		}
		itemID := status.ItemID
		if status.Level == enums.StockLevelOutOfStock {
			alerts = append(alerts, models.Notification{
				Type:     enums.NotificationTypeOutOfStock,
				ItemID:   &itemID,
				Message:  fmt.Sprintf("%s is out of stock", item.Name),
				Severity: status.Level.Severity(),
			})
			continue
		}
		alerts = append(alerts, models.Notification{
			Type:   enums.NotificationTypeLowStock,
			ItemID: &itemID,
			Message: fmt.Sprintf("%s is low: %s wholesale, %s retail left",
				item.Name,
				inventory.FormatQuantity(status.WholesaleRemaining),
				inventory.FormatQuantity(status.RetailRemaining)),
			Severity: status.Level.Severity(),
		})
	}

	due, err := s.ledger.DueSoon(ctx, billDueWindow)
	if err != nil {
		return nil, err
	}
	for _, entry := range due {
		entryID := entry.ID
		alerts = append(alerts, models.Notification{
			Type:     enums.NotificationTypeBillDue,
			ItemID:   &entryID,
			Message:  fmt.Sprintf("%s owes %s, due %s", entry.Party, entry.Amount.StringFixed(2), entry.DueDate.Format("2006-01-02")),
			Severity: 1,
		})
	}
	return alerts, nil
}
