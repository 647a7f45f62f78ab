package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khata-app/khata/internal/common"
	"github.com/khata-app/khata/internal/model"
)

func newTestStore(t *testing.T, passcode string) *BudgetStore {
	t.Helper()
	store := NewBudgetStore(NewMemoryKV(), passcode)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func proto(amount float64, category string) model.ProtoExpense {
	return model.ProtoExpense{
		Amount:      amount,
		Category:    category,
		Description: "test expense",
		Date:        time.Date(2025, time.June, 10, 9, 30, 0, 123_000_000, time.Local),
	}
}

func TestLoadDefaults(t *testing.T) {
	store := newTestStore(t, "")

	budget, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, budget.Expenses)
	assert.InDelta(t, 1000, budget.MonthlyLimit, 1e-9)
}

func TestAddExpensePersistRoundTrip(t *testing.T) {
	store := newTestStore(t, "")
	ctx := context.Background()

	want := proto(42.75, "food")
	added, err := store.AddExpense(ctx, want)
	require.NoError(t, err)
	assert.NotEmpty(t, added.ID)

	budget, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, budget.Expenses, 1)

	got := budget.Expenses[0]
	assert.Equal(t, added.ID, got.ID)
	assert.InDelta(t, want.Amount, got.Amount, 1e-9)
	assert.Equal(t, "food", got.Category)
	assert.Equal(t, want.Description, got.Description)
	assert.True(t, got.Date.Equal(want.Date), "dates persist exactly at millisecond precision: got %v want %v", got.Date, want.Date)
}

func TestAddExpensesAssignsUniqueIDs(t *testing.T) {
	store := newTestStore(t, "")

	added, err := store.AddExpenses(context.Background(), []model.ProtoExpense{
		proto(10, "food"),
		proto(20, "travel"),
		proto(30, ""),
	})
	require.NoError(t, err)
	require.Len(t, added, 3)

	seen := make(map[string]bool)
	for _, e := range added {
		assert.NotEmpty(t, e.ID)
		assert.False(t, seen[e.ID], "duplicate id %s", e.ID)
		seen[e.ID] = true
	}
}

func TestAddExpensesNormalizesUnknownCategories(t *testing.T) {
	store := newTestStore(t, "")

	added, err := store.AddExpenses(context.Background(), []model.ProtoExpense{
		proto(10, "groceries"),
		proto(20, "cryptocurrency"),
		proto(30, ""),
	})
	require.NoError(t, err)

	assert.Equal(t, "groceries", added[0].Category)
	assert.Equal(t, model.CategoryOthers, added[1].Category)
	assert.Equal(t, model.CategoryOthers, added[2].Category)
}

func TestAddExpensesRejectsInvalidRecords(t *testing.T) {
	store := newTestStore(t, "")
	ctx := context.Background()

	_, err := store.AddExpenses(ctx, nil)
	assert.ErrorIs(t, err, common.ErrNoImportData)

	_, err = store.AddExpenses(ctx, []model.ProtoExpense{proto(-5, "food")})
	assert.ErrorIs(t, err, model.ErrInvalidAmount)

	// A bad record anywhere in the batch rejects the whole batch.
	_, err = store.AddExpenses(ctx, []model.ProtoExpense{proto(10, "food"), proto(0, "food")})
	assert.ErrorIs(t, err, model.ErrInvalidAmount)

	budget, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, budget.Expenses, "rejected batches leave no partial state")
}

func TestDeleteExpense(t *testing.T) {
	store := newTestStore(t, "")
	ctx := context.Background()

	added, err := store.AddExpenses(ctx, []model.ProtoExpense{proto(10, "food"), proto(20, "travel")})
	require.NoError(t, err)

	require.NoError(t, store.DeleteExpense(ctx, added[0].ID))

	budget, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, budget.Expenses, 1)
	assert.Equal(t, added[1].ID, budget.Expenses[0].ID)

	err = store.DeleteExpense(ctx, "no-such-id")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestSetMonthlyLimit(t *testing.T) {
	ctx := context.Background()

	t.Run("no passcode configured", func(t *testing.T) {
		store := newTestStore(t, "")
		require.NoError(t, store.SetMonthlyLimit(ctx, 2500, ""))

		budget, err := store.Load(ctx)
		require.NoError(t, err)
		assert.InDelta(t, 2500, budget.MonthlyLimit, 1e-9)
	})

	t.Run("passcode gate", func(t *testing.T) {
		store := newTestStore(t, "sesame")

		err := store.SetMonthlyLimit(ctx, 2500, "wrong")
		assert.ErrorIs(t, err, common.ErrBadPasscode)

		err = store.SetMonthlyLimit(ctx, 2500, "")
		assert.ErrorIs(t, err, common.ErrBadPasscode)

		require.NoError(t, store.SetMonthlyLimit(ctx, 2500, "sesame"))
	})

	t.Run("rejects non-positive limits", func(t *testing.T) {
		store := newTestStore(t, "")
		assert.ErrorIs(t, store.SetMonthlyLimit(ctx, 0, ""), common.ErrBadLimit)
		assert.ErrorIs(t, store.SetMonthlyLimit(ctx, -100, ""), common.ErrBadLimit)
	})
}

func TestResetKeepsLimit(t *testing.T) {
	store := newTestStore(t, "")
	ctx := context.Background()

	require.NoError(t, store.SetMonthlyLimit(ctx, 3000, ""))
	_, err := store.AddExpense(ctx, proto(10, "food"))
	require.NoError(t, err)

	require.NoError(t, store.Reset(ctx))

	budget, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, budget.Expenses)
	assert.InDelta(t, 3000, budget.MonthlyLimit, 1e-9)
}

func TestValidation(t *testing.T) {
	store := newTestStore(t, "")

	//nolint:staticcheck // nil context is exactly what is under test
	_, err := store.Load(nil)
	assert.ErrorIs(t, err, ErrNilContext)

	err = store.DeleteExpense(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrEmptyString)
}
