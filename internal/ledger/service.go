package ledger

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mazajretail/shishapos-backend/internal/store"
	"github.com/mazajretail/shishapos-backend/pkg/db/models"
	"github.com/mazajretail/shishapos-backend/pkg/enums"
	pkgerrors "github.com/mazajretail/shishapos-backend/pkg/errors"
	"github.com/mazajretail/shishapos-backend/pkg/logger"
)

// Service tracks shop expenses and customer/supplier bills.
type Service interface {
	List(ctx context.Context) ([]models.LedgerEntry, error)
	Record(ctx context.Context, input EntryInput) (*models.LedgerEntry, error)
	Settle(ctx context.Context, id int64) (*models.LedgerEntry, error)
	Outstanding(ctx context.Context) ([]PartyBalance, error)
	DueSoon(ctx context.Context, within time.Duration) ([]models.LedgerEntry, error)
}

// EntryInput records a new ledger line.
type EntryInput struct {
	Type        enums.EntryType `json:"type" validate:"required"`
	Party       string          `json:"party" validate:"required"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	DueDate     *time.Time      `json:"dueDate"`
}

// PartyBalance sums a party's unsettled entries.
type PartyBalance struct {
	Party   string          `json:"party"`
	Balance decimal.Decimal `json:"balance"`
	Entries int             `json:"entries"`
}

type service struct {
	store *store.Store
	logg  *logger.Logger
}

// NewService wires the ledger service.
func NewService(st *store.Store, logg *logger.Logger) (Service, error) {
	if st == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "store required")
	}
	if logg == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "logger required")
	}
	return &service{store: st, logg: logg}, nil
}

func (s *service) List(ctx context.Context) ([]models.LedgerEntry, error) {
	return store.Load[models.LedgerEntry](ctx, s.store, store.CollectionLedger)
}

func (s *service) Record(ctx context.Context, input EntryInput) (*models.LedgerEntry, error) {
	if !input.Type.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown entry type")
	}
	if input.Party == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "party required")
	}
	if input.Amount.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "amount must not be negative")
	}

	entries, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	id, err := s.store.NextID(ctx, store.CollectionLedger)
	if err != nil {
		return nil, err
	}
	entry := models.LedgerEntry{
		ID:          id,
		Type:        input.Type,
		Party:       input.Party,
		Description: input.Description,
		Amount:      input.Amount,
		DueDate:     input.DueDate,
	}
	entries = append(entries, entry)
	if err := store.Save(ctx, s.store, store.CollectionLedger, entries); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *service) Settle(ctx context.Context, id int64) (*models.LedgerEntry, error) {
	entries, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		if entries[i].ID != id {
			continue
		}
		if entries[i].Settled() {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "entry already settled")
		}
		now := time.Now().UTC()
		entries[i].SettledAt = &now
		if err := store.Save(ctx, s.store, store.CollectionLedger, entries); err != nil {
			return nil, err
		}
		return &entries[i], nil
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "ledger entry not found")
}

// Outstanding groups unsettled entries by party, largest balance first.
func (s *service) Outstanding(ctx context.Context) ([]PartyBalance, error) {
	entries, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	byParty := make(map[string]*PartyBalance)
	for _, entry := range entries {
		if entry.Settled() {
			continue
		}
		balance, ok := byParty[entry.Party]
		if !ok {
			balance = &PartyBalance{Party: entry.Party, Balance: decimal.Zero}
			byParty[entry.Party] = balance
		}
		balance.Balance = balance.Balance.Add(entry.Amount)
		balance.Entries++
	}

	balances := make([]PartyBalance, 0, len(byParty))
	for _, balance := range byParty {
		balances = append(balances, *balance)
	}
	sort.Slice(balances, func(i, j int) bool {
		if !balances[i].Balance.Equal(balances[j].Balance) {
			return balances[i].Balance.GreaterThan(balances[j].Balance)
		}
		return balances[i].Party < balances[j].Party
	})
	return balances, nil
}

// DueSoon lists unsettled entries whose due date falls within the window.
// Already-overdue entries are included.
func (s *service) DueSoon(ctx context.Context, within time.Duration) ([]models.LedgerEntry, error) {
	entries, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	cutoff := time.Now().UTC().Add(within)
	due := make([]models.LedgerEntry, 0)
	for _, entry := range entries {
		if entry.Settled() || entry.DueDate == nil {
			continue
		}
		if entry.DueDate.Before(cutoff) {
			due = append(due, entry)
		}
	}
	sort.Slice(due, func(i, j int) bool {
		return due[i].DueDate.Before(*due[j].DueDate)
	})
	return due, nil
}
