package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/khata-app/khata/internal/model"
)

func expense(amount float64, date time.Time) model.Expense {
	return model.Expense{
		ID:       "test-id",
		Amount:   amount,
		Category: model.CategoryOthers,
		Date:     date,
	}
}

func TestDailySpending(t *testing.T) {
	day := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.Local)
	expenses := []model.Expense{
		expense(100, day.Add(8*time.Hour)),
		expense(50, day.Add(20*time.Hour)),
		expense(999, day.AddDate(0, 0, -1)),
		expense(999, day.AddDate(0, 0, 1)),
	}

	assert.InDelta(t, 150, DailySpending(expenses, day), 1e-9)
	assert.Zero(t, DailySpending(expenses, day.AddDate(0, 1, 0)))
	assert.Zero(t, DailySpending(nil, day))
}

func TestMonthlySpending(t *testing.T) {
	now := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.Local)
	expenses := []model.Expense{
		expense(10, time.Date(2025, time.June, 1, 0, 0, 0, 0, time.Local)),
		expense(20, time.Date(2025, time.June, 30, 23, 59, 59, 0, time.Local)),
		expense(999, time.Date(2025, time.May, 31, 23, 59, 59, 0, time.Local)),
		expense(999, time.Date(2025, time.July, 1, 0, 0, 0, 0, time.Local)),
	}

	assert.InDelta(t, 30, MonthlySpending(expenses, now), 1e-9)
}

// The monthly total must equal the sum of the per-day totals across the
// month, so no expense is double counted or missed by the boundaries.
func TestMonthlyEqualsSumOfDaily(t *testing.T) {
	now := time.Date(2025, time.June, 18, 10, 0, 0, 0, time.Local)
	expenses := []model.Expense{
		expense(12.50, time.Date(2025, time.June, 1, 9, 0, 0, 0, time.Local)),
		expense(7.25, time.Date(2025, time.June, 1, 21, 0, 0, 0, time.Local)),
		expense(40, time.Date(2025, time.June, 10, 12, 0, 0, 0, time.Local)),
		expense(3.33, time.Date(2025, time.June, 30, 23, 0, 0, 0, time.Local)),
	}

	var daySum float64
	for d := 1; d <= 30; d++ {
		daySum += DailySpending(expenses, time.Date(2025, time.June, d, 0, 0, 0, 0, time.Local))
	}

	assert.InDelta(t, MonthlySpending(expenses, now), daySum, 1e-9)
}

func TestAverageAndProjection(t *testing.T) {
	// 300 spent by the 15th of a 30 day month: average 20/day,
	// projected 600 for the month.
	now := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.Local)
	expenses := []model.Expense{
		expense(100, time.Date(2025, time.June, 5, 0, 0, 0, 0, time.Local)),
		expense(200, time.Date(2025, time.June, 12, 0, 0, 0, 0, time.Local)),
	}

	assert.InDelta(t, 20, AverageDailySpending(expenses, now), 1e-9)
	assert.InDelta(t, 600, ProjectedMonthlyExpense(expenses, now), 1e-9)
}

func TestDailyLimit(t *testing.T) {
	now := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.Local)

	tests := []struct {
		name      string
		remaining float64
		want      float64
	}{
		{"spreads over remaining days", 320, 20}, // 16 days left incl today
		{"exhausted budget", 0, 0},
		{"overspent budget", -150, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, DailyLimit(tt.remaining, now), 1e-9)
		})
	}
}
