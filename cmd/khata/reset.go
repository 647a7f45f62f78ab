package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/khata-app/khata/internal/cli"
)

func resetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete all recorded expenses",
		Long: `Reset deletes every recorded expense.

This is a destructive operation. The monthly limit is kept.`,
		RunE: runReset,
	}

	cmd.Flags().BoolP("force", "f", false, "skip confirmation prompt")

	return cmd
}

func runReset(cmd *cobra.Command, _ []string) error {
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
	if len(budget.Expenses) == 0 {
		fmt.Println("No expenses found. Nothing to reset.")
		return nil
	}

	if force, _ := cmd.Flags().GetBool("force"); !force {
		prompter := cli.NewPrompter(os.Stdin, os.Stdout)
		ok, err := prompter.Confirm(ctx, fmt.Sprintf("This will delete %d expenses. Continue?", len(budget.Expenses)))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Reset canceled.")
			return nil
		}
	}

	if err := store.Reset(ctx); err != nil {
		return err
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Deleted %d expenses", len(budget.Expenses))))
	return nil
}
