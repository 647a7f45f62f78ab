package analytics

import (
	"time"

	"github.com/khata-app/khata/internal/model"
)

// Report bundles every derived figure the presentation layer shows for a
// budget at a point in time.
type Report struct {
	Status           model.BudgetStatus
	MonthlySpending  float64
	TodaySpending    float64
	AverageDaily     float64
	ProjectedMonthly float64
	RemainingBudget  float64
	DailyLimit       float64
	Trend            float64
	Score            float64
}

// BuildReport derives a full report from the budget working set. All
// figures are recomputed from the flat expense list on every call; there
// is no incremental state to fall out of sync.
func BuildReport(budget model.BudgetInfo, now time.Time) Report {
	monthly := MonthlySpending(budget.Expenses, now)
	trend := SpendingTrend(budget.Expenses, now)
	remaining := budget.MonthlyLimit - monthly

	return Report{
		MonthlySpending:  monthly,
		TodaySpending:    DailySpending(budget.Expenses, now),
		AverageDaily:     AverageDailySpending(budget.Expenses, now),
		ProjectedMonthly: ProjectedMonthlyExpense(budget.Expenses, now),
		RemainingBudget:  remaining,
		DailyLimit:       DailyLimit(remaining, now),
		Trend:            trend,
		Status:           Status(monthly, budget.MonthlyLimit, trend, now),
		Score:            Score(monthly, budget.MonthlyLimit, trend, now),
	}
}
