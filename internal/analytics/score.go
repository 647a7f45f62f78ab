package analytics

import (
	"math"
	"time"

	"github.com/khata-app/khata/internal/dateutil"
	"github.com/khata-app/khata/internal/model"
)

// Status classifies the current spending pace by comparing the spending
// ratio against the elapsed-day fraction of the month, combined with the
// trend sign and magnitude.
//
// With no monthly limit configured (limit <= 0) the ratio is undefined,
// so the classification is skipped entirely and StatusUnknown is
// returned. This is the documented sentinel for the division-by-zero
// case; NaN and Inf never reach callers.
func Status(monthlySpending, monthlyLimit, trend float64, now time.Time) model.BudgetStatus {
	if monthlyLimit <= 0 {
		return model.StatusUnknown
	}

	ratio := monthlySpending / monthlyLimit
	expected := expectedRatio(now)

	switch {
	// Under pace and not worsening.
	case ratio <= expected*0.9 && trend <= 0:
		return model.StatusExcellent
	// Near pace with low volatility.
	case ratio <= expected*1.1 && math.Abs(trend) < monthlyLimit*0.01:
		return model.StatusGood
	// Modestly over pace, or over pace but currently improving.
	case ratio <= expected*1.2 || trend < 0:
		return model.StatusBad
	default:
		return model.StatusWorst
	}
}

// Score computes the bucketed 0-100 budget score.
//
// The raw score starts from how far the spending ratio runs ahead of the
// expected elapsed-day ratio, then a worsening trend subtracts up to 20
// points and an improving one adds up to 10, and finally the adjusted
// value is snapped onto the coarse bucket ladder. The bucketing is
// deliberate gamification and must stay exact: >=90 -> 100, >=70 -> 90,
// >=50 -> 70, else clamped to [0, 50].
//
// A non-positive monthly limit short-circuits to 0 (no budget, no score).
func Score(monthlySpending, monthlyLimit, trend float64, now time.Time) float64 {
	if monthlyLimit <= 0 {
		return 0
	}

	ratio := monthlySpending / monthlyLimit
	score := 100 - math.Max(0, ratio-expectedRatio(now))*100

	if trend > 0 {
		score -= math.Min(20, (trend/monthlyLimit)*1000)
	} else {
		score += math.Min(10, (math.Abs(trend)/monthlyLimit)*500)
	}

	switch {
	case score >= 90:
		return 100
	case score >= 70:
		return 90
	case score >= 50:
		return 70
	default:
		return math.Max(0, math.Min(50, score))
	}
}

// expectedRatio is the fraction of the month elapsed, with the current
// day counting as a full day.
func expectedRatio(now time.Time) float64 {
	return float64(dateutil.DayOfMonth(now)) / float64(dateutil.DaysInMonth(now))
}
