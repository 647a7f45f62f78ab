package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/khata-app/khata/internal/cli"
	"github.com/khata-app/khata/internal/model"
)

func addCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <amount>",
		Short: "Record an expense",
		Long: `Record a single expense.

The amount must be positive. The date defaults to now and the category to
the catch-all; both can be set with flags.`,
		Args: cobra.ExactArgs(1),
		RunE: runAdd,
	}

	cmd.Flags().StringP("category", "c", model.CategoryOthers, "expense category")
	cmd.Flags().StringP("description", "m", "", "free-text description")
	cmd.Flags().StringP("date", "d", "", "expense date (format: 2006-01-02, default: now)")

	return cmd
}

func runAdd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	amount, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", args[0], err)
	}
	if amount <= 0 {
		return model.ErrInvalidAmount
	}

	category, _ := cmd.Flags().GetString("category")
	if !model.KnownCategory(category) {
		return fmt.Errorf("unknown category %q (see 'khata list --categories')", category)
	}

	date := time.Now()
	if raw, _ := cmd.Flags().GetString("date"); raw != "" {
		date, err = time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			return fmt.Errorf("invalid date %q: %w", raw, err)
		}
	}

	description, _ := cmd.Flags().GetString("description")

	store, err := initStore()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	expense, err := store.AddExpense(ctx, model.ProtoExpense{
		Amount:      amount,
		Category:    model.NormalizeCategory(category),
		Description: description,
		Date:        date,
	})
	if err != nil {
		return err
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Recorded %.2f (%s) as %s", expense.Amount, expense.Category, expense.ID)))
	return nil
}
