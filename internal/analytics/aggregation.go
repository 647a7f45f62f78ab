// Package analytics derives spending aggregates, the 7-day trend, and the
// budget status/score from the expense working set. Every function is
// pure and total over validated expenses; the reference time is always
// passed in so results are reproducible in tests.
package analytics

import (
	"time"

	"github.com/khata-app/khata/internal/dateutil"
	"github.com/khata-app/khata/internal/model"
)

// DailySpending returns the sum of amounts over all expenses falling on
// the same calendar day as day. Zero when nothing matches.
func DailySpending(expenses []model.Expense, day time.Time) float64 {
	var sum float64
	for _, e := range expenses {
		if dateutil.SameDay(e.Date, day) {
			sum += e.Amount
		}
	}
	return sum
}

// MonthlySpending returns the sum of amounts over expenses dated within
// now's calendar month, boundaries inclusive.
func MonthlySpending(expenses []model.Expense, now time.Time) float64 {
	start := dateutil.StartOfMonth(now)
	end := dateutil.EndOfMonth(now)

	var sum float64
	for _, e := range expenses {
		if !e.Date.Before(start) && !e.Date.After(end) {
			sum += e.Amount
		}
	}
	return sum
}

// AverageDailySpending returns this month's spending divided by the days
// elapsed so far, where the current day counts as a full day.
func AverageDailySpending(expenses []model.Expense, now time.Time) float64 {
	elapsed := dateutil.DayOfMonth(now)
	return MonthlySpending(expenses, now) / float64(elapsed)
}

// ProjectedMonthlyExpense linearly extrapolates the month's total,
// assuming the rest of the month spends at the average daily rate
// observed so far.
func ProjectedMonthlyExpense(expenses []model.Expense, now time.Time) float64 {
	return AverageDailySpending(expenses, now) * float64(dateutil.DaysInMonth(now))
}

// DailyLimit spreads the remaining budget evenly over the days left in
// the month, the current day included. A non-positive remaining budget
// yields 0 rather than a negative allowance.
func DailyLimit(remainingBudget float64, now time.Time) float64 {
	if remainingBudget <= 0 {
		return 0
	}
	return remainingBudget / float64(dateutil.RemainingDays(now))
}
