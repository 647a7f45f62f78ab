package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/khata-app/khata/internal/analytics"
	"github.com/khata-app/khata/internal/cli"
	"github.com/khata-app/khata/internal/model"
)

func statusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show how the month is going",
		Long: `Status derives the month's spending figures, the 7-day trend, and the
budget status and score from the recorded expenses.`,
		RunE: runStatus,
	}
}

func runStatus(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, err := initStore()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	budget, err := store.Load(ctx)
	if err != nil {
		return err
	}

	report := analytics.BuildReport(budget, time.Now())

	var b strings.Builder
	fmt.Fprintf(&b, "Spent this month:  %10.2f", report.MonthlySpending)
	if budget.MonthlyLimit > 0 {
		fmt.Fprintf(&b, " / %.2f", budget.MonthlyLimit)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "Spent today:       %10.2f\n", report.TodaySpending)
	fmt.Fprintf(&b, "Daily average:     %10.2f\n", report.AverageDaily)
	fmt.Fprintf(&b, "Projected month:   %10.2f\n", report.ProjectedMonthly)
	fmt.Fprintf(&b, "Daily allowance:   %10.2f\n", report.DailyLimit)
	fmt.Fprintf(&b, "7-day trend:       %+10.2f/day\n", report.Trend)

	if report.Status == model.StatusUnknown {
		b.WriteString("\nNo budget set. Run 'khata limit <amount>' to get a status and score.\n")
	} else {
		fmt.Fprintf(&b, "\nStatus: %s    Score: %.0f/100\n", cli.StyleStatus(report.Status), report.Score)
	}

	fmt.Println(cli.RenderBox("Budget", strings.TrimRight(b.String(), "\n")))
	return nil
}
