package model

// BudgetStatus is a qualitative classification of current spending pace.
type BudgetStatus string

const (
	// StatusExcellent means spending is under pace and not worsening.
	StatusExcellent BudgetStatus = "excellent"
	// StatusGood means spending is near pace with low volatility.
	StatusGood BudgetStatus = "good"
	// StatusBad means spending is modestly over pace, or over pace but improving.
	StatusBad BudgetStatus = "bad"
	// StatusWorst means spending is meaningfully over pace and worsening.
	StatusWorst BudgetStatus = "worst"
	// StatusUnknown means no monthly limit is configured, so pace-based
	// classification does not apply.
	StatusUnknown BudgetStatus = "unknown"
)

// Color returns the display color for the status. Presentation metadata
// only; no logic branches on it.
func (s BudgetStatus) Color() string {
	switch s {
	case StatusExcellent, StatusGood:
		return "#46988B"
	case StatusBad:
		return "#EED668"
	case StatusWorst:
		return "#E0533D"
	default:
		return "#666666"
	}
}
