package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/khata-app/khata/internal/cli"
	"github.com/khata-app/khata/internal/common"
)

func limitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "limit [amount]",
		Short: "Show or set the monthly budget limit",
		Long: `Show the monthly budget limit, or set it when an amount is given.

Changing the limit is gated by the passcode configured under
budget.passcode; with no passcode configured the gate is disabled.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runLimit,
	}

	cmd.Flags().String("passcode", "", "passcode authorizing the change")

	return cmd
}

func runLimit(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	store, err := initStore()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if len(args) == 0 {
		budget, err := store.Load(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("Monthly limit: %.2f\n", budget.MonthlyLimit)
		return nil
	}

	limit, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("invalid limit %q: %w", args[0], err)
	}

	passcode, _ := cmd.Flags().GetString("passcode")
	if passcode == "" && viper.GetString("budget.passcode") != "" {
		prompter := cli.NewPrompter(os.Stdin, os.Stdout)
		passcode, err = prompter.Ask(ctx, "Passcode", "")
		if err != nil {
			return err
		}
	}

	if err := store.SetMonthlyLimit(ctx, limit, passcode); err != nil {
		if errors.Is(err, common.ErrBadPasscode) {
			return common.NewUserError("Invalid passcode", err)
		}
		return err
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Monthly limit set to %.2f", limit)))
	return nil
}
