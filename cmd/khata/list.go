package main

import (
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/khata-app/khata/internal/cli"
	"github.com/khata-app/khata/internal/dateutil"
	"github.com/khata-app/khata/internal/model"
)

func listCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded expenses",
		RunE:  runList,
	}

	cmd.Flags().Bool("month", false, "only show the current calendar month")
	cmd.Flags().Bool("categories", false, "list the known categories instead of expenses")

	return cmd
}

func runList(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	if showCategories, _ := cmd.Flags().GetBool("categories"); showCategories {
		for _, c := range model.DefaultCategories() {
			fmt.Printf("%-15s %s\n", c.ID, cli.SubtleStyle.Render(c.Label))
		}
		return nil
	}

	store, err := initStore()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	budget, err := store.Load(ctx)
	if err != nil {
		return err
	}

	expenses := budget.Expenses
	if monthOnly, _ := cmd.Flags().GetBool("month"); monthOnly {
		now := time.Now()
		start := dateutil.StartOfMonth(now)
		end := dateutil.EndOfMonth(now)
		filtered := expenses[:0:0]
		for _, e := range expenses {
			if !e.Date.Before(start) && !e.Date.After(end) {
				filtered = append(filtered, e)
			}
		}
		expenses = filtered
	}

	if len(expenses) == 0 {
		fmt.Println("No expenses recorded.")
		return nil
	}

	sort.Slice(expenses, func(i, j int) bool {
		return expenses[i].Date.After(expenses[j].Date)
	})

	for _, e := range expenses {
		line := fmt.Sprintf("%s  %8.2f  %-15s %s",
			e.Date.Format("2006-01-02"), e.Amount, e.Category, e.Description)
		fmt.Printf("%s  %s\n", line, cli.SubtleStyle.Render(e.ID))
	}
	fmt.Printf("\n%d expenses\n", len(expenses))
	return nil
}
