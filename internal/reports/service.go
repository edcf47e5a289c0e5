package reports

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mazajretail/shishapos-backend/internal/inventory"
	"github.com/mazajretail/shishapos-backend/internal/store"
	"github.com/mazajretail/shishapos-backend/pkg/db/models"
	"github.com/mazajretail/shishapos-backend/pkg/enums"
	pkgerrors "github.com/mazajretail/shishapos-backend/pkg/errors"
	"github.com/mazajretail/shishapos-backend/pkg/logger"
)

// Service derives read-only views over the journal and the inventory.
type Service interface {
	SalesSummary(ctx context.Context, from, to time.Time) (*SalesSummary, error)
	StockHealth(ctx context.Context) (*StockHealth, error)
}

// DayRevenue is one calendar day's takings.
type DayRevenue struct {
	Day     string          `json:"day"`
	Revenue decimal.Decimal `json:"revenue"`
	Sales   int             `json:"sales"`
}

// SalesSummary aggregates the journal over a date range.
type SalesSummary struct {
	From             time.Time       `json:"from"`
	To               time.Time       `json:"to"`
	Sales            int             `json:"sales"`
	Revenue          decimal.Decimal `json:"revenue"`
	WholesaleRevenue decimal.Decimal `json:"wholesaleRevenue"`
	RetailRevenue    decimal.Decimal `json:"retailRevenue"`
	ByDay            []DayRevenue    `json:"byDay"`
}

// StockHealth counts items per stock level against the current threshold.
type StockHealth struct {
	Threshold int                      `json:"threshold"`
	Items     int                      `json:"items"`
	ByLevel   map[enums.StockLevel]int `json:"byLevel"`
	Flagged   []inventory.StockStatus  `json:"flagged"`
}

type service struct {
	store     *store.Store
	inventory inventory.Service
	logg      *logger.Logger
}

// NewService wires the reports service.
func NewService(st *store.Store, inv inventory.Service, logg *logger.Logger) (Service, error) {
	if st == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "store required")
	}
	if inv == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "inventory service required")
	}
	if logg == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "logger required")
	}
	return &service{store: st, inventory: inv, logg: logg}, nil
}

// SalesSummary aggregates journal records with from <= date < to.
func (s *service) SalesSummary(ctx context.Context, from, to time.Time) (*SalesSummary, error) {
	if !to.After(from) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "range end must be after start")
	}

	journal, err := store.Load[models.SaleRecord](ctx, s.store, store.CollectionSalesJournal)
	if err != nil {
		return nil, err
	}

	summary := &SalesSummary{
		From:             from,
		To:               to,
		Revenue:          decimal.Zero,
		WholesaleRevenue: decimal.Zero,
		RetailRevenue:    decimal.Zero,
	}
	days := make(map[string]*DayRevenue)
	for _, record := range journal {
		if record.Date.Before(from) || !record.Date.Before(to) {
			continue
		}
		summary.Sales++
		summary.Revenue = summary.Revenue.Add(record.Total)
		for _, line := range record.Items {
			if line.SaleType == enums.SaleTypeRetail {
				summary.RetailRevenue = summary.RetailRevenue.Add(line.Subtotal())
			} else {
				summary.WholesaleRevenue = summary.WholesaleRevenue.Add(line.Subtotal())
			}
		}

		day := record.Date.UTC().Format("2006-01-02")
		bucket, ok := days[day]
		if !ok {
			bucket = &DayRevenue{Day: day, Revenue: decimal.Zero}
			days[day] = bucket
		}
		bucket.Revenue = bucket.Revenue.Add(record.Total)
		bucket.Sales++
	}

	summary.ByDay = make([]DayRevenue, 0, len(days))
	for _, bucket := range days {
		summary.ByDay = append(summary.ByDay, *bucket)
	}
	sort.Slice(summary.ByDay, func(i, j int) bool {
		return summary.ByDay[i].Day < summary.ByDay[j].Day
	})
	return summary, nil
}

// StockHealth tallies the whole inventory by classification. Flagged holds
// the non-healthy items ordered most severe first, ties newest first.
func (s *service) StockHealth(ctx context.Context) (*StockHealth, error) {
	items, err := s.inventory.List(ctx)
	if err != nil {
		return nil, err
	}
	low, err := s.inventory.LowStock(ctx)
	if err != nil {
		return nil, err
	}

	health := &StockHealth{
		Threshold: low.Threshold,
		Items:     len(items),
		ByLevel: map[enums.StockLevel]int{
			enums.StockLevelInStock:    0,
			enums.StockLevelLowStock:   0,
			enums.StockLevelOutOfStock: 0,
		},
		Flagged: low.Items,
	}
	for _, status := range low.Items {
		health.ByLevel[status.Level]++
	}
	health.ByLevel[enums.StockLevelInStock] = len(items) - len(low.Items)

	sort.SliceStable(health.Flagged, func(i, j int) bool {
		if health.Flagged[i].Level.Severity() != health.Flagged[j].Level.Severity() {
			return health.Flagged[i].Level.Severity() > health.Flagged[j].Level.Severity()
		}
		return health.Flagged[i].ItemID > health.Flagged[j].ItemID
	})
	return health, nil
}
