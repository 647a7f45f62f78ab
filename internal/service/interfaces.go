// Package service defines the interfaces between the engine and its
// collaborators.
package service

import (
	"context"
	"time"

	"github.com/khata-app/khata/internal/model"
)

// KV is the persistence boundary: an opaque key-value store of JSON
// blobs. The engine owns encoding; implementations own durability.
type KV interface {
	// Get returns the blob stored under key, or ok=false when absent.
	Get(ctx context.Context, key string) (blob []byte, ok bool, err error)
	// Set stores the blob under key, replacing any previous value.
	Set(ctx context.Context, key string, blob []byte) error
	// Delete removes the key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
	Close() error
}

// Store is the contract for the budget state container. The in-memory
// working set is the source of truth; every mutation persists a full
// snapshot, and a failed write leaves the previous snapshot intact.
type Store interface {
	// Load returns the persisted budget state, or the default state
	// when nothing has been persisted yet.
	Load(ctx context.Context) (model.BudgetInfo, error)
	// AddExpense validates the record, assigns its ID, and commits.
	AddExpense(ctx context.Context, proto model.ProtoExpense) (model.Expense, error)
	// AddExpenses bulk-commits imported records, mapping unknown
	// categories onto the catch-all. Returns the accepted expenses.
	AddExpenses(ctx context.Context, protos []model.ProtoExpense) ([]model.Expense, error)
	// DeleteExpense removes an expense by ID.
	DeleteExpense(ctx context.Context, id string) error
	// SetMonthlyLimit updates the limit after checking the configured
	// passcode gate.
	SetMonthlyLimit(ctx context.Context, limit float64, passcode string) error
	// Reset clears all expenses but keeps the monthly limit.
	Reset(ctx context.Context) error
	Close() error
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
