package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/khata-app/khata/internal/model"
)

func TestSpendingTrend(t *testing.T) {
	now := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.Local)

	constant := make([]model.Expense, 0, 7)
	rising := make([]model.Expense, 0, 7)
	falling := make([]model.Expense, 0, 7)
	for i := 0; i < 7; i++ {
		day := now.AddDate(0, 0, -i)
		constant = append(constant, expense(25, day))
		rising = append(rising, expense(float64(60-10*i), day))
		falling = append(falling, expense(float64(10*i), day))
	}

	tests := []struct {
		name     string
		expenses []model.Expense
		want     float64
	}{
		{"no expenses", nil, 0},
		{"constant spending is flat", constant, 0},
		{"spending rising toward today is positive", rising, 10},
		{"spending falling toward today is negative", falling, -10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, SpendingTrend(tt.expenses, now), 1e-9)
		})
	}
}

func TestSpendingTrendIgnoresOutsideWindow(t *testing.T) {
	now := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.Local)
	expenses := []model.Expense{
		expense(500, now.AddDate(0, 0, -7)),
		expense(500, now.AddDate(0, 0, 1)),
	}
	assert.Zero(t, SpendingTrend(expenses, now))
}
