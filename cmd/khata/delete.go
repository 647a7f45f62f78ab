package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/khata-app/khata/internal/cli"
)

func deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an expense by id",
		Args:  cobra.ExactArgs(1),
		RunE:  runDelete,
	}
}

func runDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	store, err := initStore()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if err := store.DeleteExpense(ctx, args[0]); err != nil {
		return err
	}

	fmt.Println(cli.FormatSuccess("Expense deleted"))
	return nil
}
