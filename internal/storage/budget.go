package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/khata-app/khata/internal/common"
	"github.com/khata-app/khata/internal/model"
	"github.com/khata-app/khata/internal/service"
)

// budgetKey is the key the budget snapshot lives under.
const budgetKey = "budget-state"

// dateFormat is RFC 3339 with millisecond precision. The persisted
// round-trip is exact at this precision; anything finer is truncated on
// write.
const dateFormat = "2006-01-02T15:04:05.000Z07:00"

// defaultMonthlyLimit applies when no snapshot has ever been persisted.
const defaultMonthlyLimit = 1000

// BudgetStore owns the budget working set. It is constructed explicitly
// and injected by the application session; persistence is an explicit
// save on every mutation, not a subscription side effect. The in-memory
// state stays authoritative: a failed write leaves it untouched and the
// previous snapshot intact.
type BudgetStore struct {
	kv       service.KV
	passcode string
}

// NewBudgetStore creates a budget store over the given key-value
// backend. passcode gates SetMonthlyLimit; empty disables the gate.
func NewBudgetStore(kv service.KV, passcode string) *BudgetStore {
	return &BudgetStore{kv: kv, passcode: passcode}
}

// persistedExpense is the wire form of an expense. Dates are encoded as
// ISO-8601 strings on write and decoded back on read.
type persistedExpense struct {
	ID          string  `json:"id"`
	Date        string  `json:"date"`
	Category    string  `json:"category"`
	Description string  `json:"description,omitempty"`
	Amount      float64 `json:"amount"`
}

type persistedBudget struct {
	Expenses     []persistedExpense `json:"expenses"`
	MonthlyLimit float64            `json:"monthlyLimit"`
}

// Load returns the persisted budget state, or the default state when
// nothing has been persisted yet.
func (s *BudgetStore) Load(ctx context.Context) (model.BudgetInfo, error) {
	if err := validateContext(ctx); err != nil {
		return model.BudgetInfo{}, err
	}

	blob, ok, err := s.kv.Get(ctx, budgetKey)
	if err != nil {
		return model.BudgetInfo{}, fmt.Errorf("failed to load budget: %w", err)
	}
	if !ok {
		return model.BudgetInfo{MonthlyLimit: defaultMonthlyLimit}, nil
	}

	var p persistedBudget
	if err := json.Unmarshal(blob, &p); err != nil {
		return model.BudgetInfo{}, fmt.Errorf("failed to decode budget: %w", err)
	}

	budget := model.BudgetInfo{MonthlyLimit: p.MonthlyLimit}
	for _, pe := range p.Expenses {
		date, err := time.ParseInLocation(dateFormat, pe.Date, time.Local)
		if err != nil {
			return model.BudgetInfo{}, fmt.Errorf("failed to decode expense %s date: %w", pe.ID, err)
		}
		budget.Expenses = append(budget.Expenses, model.Expense{
			ID:          pe.ID,
			Date:        date,
			Category:    pe.Category,
			Description: pe.Description,
			Amount:      pe.Amount,
		})
	}
	return budget, nil
}

// save writes a full snapshot of the budget state.
func (s *BudgetStore) save(ctx context.Context, budget model.BudgetInfo) error {
	p := persistedBudget{MonthlyLimit: budget.MonthlyLimit}
	for _, e := range budget.Expenses {
		p.Expenses = append(p.Expenses, persistedExpense{
			ID:          e.ID,
			Date:        e.Date.Format(dateFormat),
			Category:    e.Category,
			Description: e.Description,
			Amount:      e.Amount,
		})
	}

	blob, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to encode budget: %w", err)
	}
	if err := s.kv.Set(ctx, budgetKey, blob); err != nil {
		return fmt.Errorf("failed to persist budget: %w", err)
	}
	return nil
}

// AddExpense validates the record, assigns its ID, and commits. The
// returned expense carries the assigned ID.
func (s *BudgetStore) AddExpense(ctx context.Context, proto model.ProtoExpense) (model.Expense, error) {
	expenses, err := s.AddExpenses(ctx, []model.ProtoExpense{proto})
	if err != nil {
		return model.Expense{}, err
	}
	return expenses[0], nil
}

// AddExpenses bulk-commits imported records. IDs are assigned here, at
// commit time, never by the parsers. Unknown categories map onto the
// catch-all so stored expenses always carry known category ids.
func (s *BudgetStore) AddExpenses(ctx context.Context, protos []model.ProtoExpense) ([]model.Expense, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if len(protos) == 0 {
		return nil, common.ErrNoImportData
	}
	for i := range protos {
		if err := validateProto(&protos[i]); err != nil {
			return nil, fmt.Errorf("record %d: %w", i+1, err)
		}
	}

	budget, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}

	added := make([]model.Expense, 0, len(protos))
	for _, proto := range protos {
		added = append(added, model.Expense{
			ID:          uuid.NewString(),
			Date:        proto.Date,
			Category:    model.CategoryOrOthers(proto.Category),
			Description: proto.Description,
			Amount:      proto.Amount,
		})
	}

	budget.Expenses = append(budget.Expenses, added...)
	if err := s.save(ctx, budget); err != nil {
		return nil, err
	}

	slog.Debug("Committed expenses", "count", len(added))
	return added, nil
}

// DeleteExpense removes an expense by ID.
func (s *BudgetStore) DeleteExpense(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	budget, err := s.Load(ctx)
	if err != nil {
		return err
	}

	kept := budget.Expenses[:0]
	found := false
	for _, e := range budget.Expenses {
		if e.ID == id {
			found = true
			continue
		}
		kept = append(kept, e)
	}
	if !found {
		return fmt.Errorf("expense %s: %w", id, common.ErrNotFound)
	}

	budget.Expenses = kept
	return s.save(ctx, budget)
}

// SetMonthlyLimit updates the limit after checking the passcode gate.
func (s *BudgetStore) SetMonthlyLimit(ctx context.Context, limit float64, passcode string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if s.passcode != "" && passcode != s.passcode {
		return common.ErrBadPasscode
	}
	if limit <= 0 {
		return common.ErrBadLimit
	}

	budget, err := s.Load(ctx)
	if err != nil {
		return err
	}
	budget.MonthlyLimit = limit
	return s.save(ctx, budget)
}

// Reset clears all expenses but keeps the monthly limit.
func (s *BudgetStore) Reset(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	budget, err := s.Load(ctx)
	if err != nil {
		return err
	}
	budget.Expenses = nil
	return s.save(ctx, budget)
}

// Close closes the underlying key-value store.
func (s *BudgetStore) Close() error {
	return s.kv.Close()
}
