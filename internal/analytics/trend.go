package analytics

import (
	"time"

	"github.com/khata-app/khata/internal/model"
)

// trendWindow is the number of trailing days sampled for the trend.
const trendWindow = 7

// SpendingTrend returns the signed average day-over-day change in
// spending over the trailing 7 days.
//
// Samples run today-first (today, today-1, ... today-6), and the trend is
// the mean of spending[i-1]-spending[i] over the six adjacent pairs, i.e.
// newer-day minus older-day. Positive trend therefore means spending is
// rising toward today (worsening); negative means it is falling
// (improving). The status and score thresholds depend on this exact sign
// convention.
func SpendingTrend(expenses []model.Expense, now time.Time) float64 {
	daily := make([]float64, trendWindow)
	for i := 0; i < trendWindow; i++ {
		daily[i] = DailySpending(expenses, now.AddDate(0, 0, -i))
	}

	var trend float64
	for i := 1; i < len(daily); i++ {
		trend += daily[i-1] - daily[i]
	}
	return trend / float64(trendWindow-1)
}
