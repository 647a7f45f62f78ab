package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidAmount indicates a zero or negative amount. Records carrying
// one are rejected at the entry boundary and never persisted.
var ErrInvalidAmount = errors.New("amount must be positive")

// Expense represents a single recorded spending event.
type Expense struct {
	Date        time.Time
	ID          string
	Category    string
	Description string
	Amount      float64
}

// Validate checks the invariants every expense must satisfy before it
// enters the working set.
func (e *Expense) Validate() error {
	if e.Amount <= 0 {
		return fmt.Errorf("%w: %.2f", ErrInvalidAmount, e.Amount)
	}
	if strings.TrimSpace(e.Category) == "" {
		return fmt.Errorf("category is required")
	}
	if e.Date.IsZero() {
		return fmt.Errorf("date is required")
	}
	return nil
}

// ProtoExpense is an expense as produced by an import parser: validated
// shape but no ID yet. IDs are assigned by the store at commit time.
type ProtoExpense struct {
	Date        time.Time
	Category    string
	Description string
	Amount      float64
}

// BudgetInfo is the aggregate root: the configured monthly limit plus the
// full working set of expenses. Insertion order of Expenses carries no
// meaning; consumers filter and sort by date.
type BudgetInfo struct {
	Expenses     []Expense
	MonthlyLimit float64
}
