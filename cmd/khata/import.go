package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/khata-app/khata/internal/cli"
	"github.com/khata-app/khata/internal/importer"
	"github.com/khata-app/khata/internal/model"
	"github.com/khata-app/khata/internal/ofx"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import expenses from external sources",
	}

	cmd.AddCommand(importSheetCmd())
	cmd.AddCommand(importSMSCmd())
	cmd.AddCommand(importOFXCmd())

	return cmd
}

func importSheetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sheet <file>",
		Short: "Import expenses from a spreadsheet (.xlsx or .csv)",
		Long: `Import expenses from a spreadsheet.

Column headers are matched flexibly (Amount/Cost/Price, Category/Type,
Date/Transaction Date, ...). Rows without a usable positive amount are
dropped; missing categories fall back to the catch-all and missing dates
to now.`,
		Args: cobra.ExactArgs(1),
		RunE: runImportSheet,
	}

	cmd.Flags().Bool("dry-run", false, "show what would be imported without saving")

	return cmd
}

func runImportSheet(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	path := args[0]

	var rows []importer.Row
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		rows, err = importer.ReadXLSX(path)
	case ".csv":
		var f *os.File
		f, err = os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", path, err)
		}
		defer func() { _ = f.Close() }()
		rows, err = importer.ReadCSV(f)
	default:
		return fmt.Errorf("unsupported file type %q (expected .xlsx or .csv)", filepath.Ext(path))
	}
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Println("No rows found.")
		return nil
	}

	bar := progressbar.NewOptions(len(rows),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("Mapping rows..."),
	)

	mapper := importer.SheetMapper{
		Progress: func() { _ = bar.Add(1) },
	}
	result := mapper.MapRows(rows)
	fmt.Fprintln(os.Stderr)

	for _, rowErr := range result.Errors {
		slog.Debug("Skipped row", "error", rowErr)
	}
	if result.Dropped > 0 {
		fmt.Println(cli.FormatWarning(fmt.Sprintf("Dropped %d rows without a valid amount", result.Dropped)))
	}
	if len(result.Expenses) == 0 {
		fmt.Println("No valid expense rows found.")
		return nil
	}

	if dryRun, _ := cmd.Flags().GetBool("dry-run"); dryRun {
		for _, e := range result.Expenses {
			fmt.Printf("%s  %8.2f  %-15s %s\n", e.Date.Format("2006-01-02"), e.Amount, e.Category, e.Description)
		}
		fmt.Printf("\n%d rows would be imported\n", len(result.Expenses))
		return nil
	}

	store, err := initStore()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	added, err := store.AddExpenses(ctx, result.Expenses)
	if err != nil {
		return err
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Imported %d expenses", len(added))))
	return nil
}

func importSMSCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sms [text]",
		Short: "Import an expense from payment SMS text",
		Long: `Import a single expense from payment SMS text.

The text is given as an argument or read from stdin. The parsed amount,
category, and description are advisory: each one is offered for manual
override before the expense is committed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runImportSMS,
	}
}

func runImportSMS(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	prompter := cli.NewPrompter(os.Stdin, os.Stdout)

	var text string
	if len(args) == 1 {
		text = args[0]
	} else {
		var err error
		text, err = prompter.Ask(ctx, "Paste SMS text", "")
		if err != nil {
			return err
		}
	}
	if strings.TrimSpace(text) == "" {
		return errors.New("no SMS text given")
	}

	parser := importer.SMSParser{}
	proto, err := parser.Parse(text)
	switch {
	case errors.Is(err, importer.ErrNoAmountFound):
		fmt.Println(cli.FormatWarning("Could not find an amount in the SMS. Please enter it manually."))
		proto = model.ProtoExpense{
			Category:    model.CategoryOthers,
			Description: text,
			Date:        time.Now(),
		}
	case err != nil:
		return err
	default:
		fmt.Println(cli.FormatSuccess(fmt.Sprintf("Found amount: %.2f", proto.Amount)))
	}

	// Every extracted field can be overridden before commit.
	amountDefault := ""
	if proto.Amount > 0 {
		amountDefault = strconv.FormatFloat(proto.Amount, 'f', -1, 64)
	}
	amountRaw, err := prompter.Ask(ctx, "Amount", amountDefault)
	if err != nil {
		return err
	}
	proto.Amount, err = strconv.ParseFloat(amountRaw, 64)
	if err != nil || proto.Amount <= 0 {
		return fmt.Errorf("invalid amount %q: %w", amountRaw, model.ErrInvalidAmount)
	}

	category, err := prompter.Ask(ctx, "Category", proto.Category)
	if err != nil {
		return err
	}
	proto.Category = model.CategoryOrOthers(category)

	proto.Description, err = prompter.Ask(ctx, "Description", proto.Description)
	if err != nil {
		return err
	}

	store, err := initStore()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	expense, err := store.AddExpense(ctx, proto)
	if err != nil {
		return err
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Recorded %.2f (%s) as %s", expense.Amount, expense.Category, expense.ID)))
	return nil
}

func importOFXCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ofx <file>",
		Short: "Import expenses from an OFX/QFX bank statement",
		Long: `Import expenses from a bank statement file.

Only debits are imported; credits and inbound transfers are skipped.
Categories are guessed from the transaction description keywords.`,
		Args: cobra.ExactArgs(1),
		RunE: runImportOFX,
	}

	cmd.Flags().Bool("dry-run", false, "show what would be imported without saving")

	return cmd
}

func runImportOFX(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", args[0], err)
	}
	defer func() { _ = f.Close() }()

	parser := ofx.NewParser()
	protos, err := parser.ParseFile(ctx, f)
	if err != nil {
		return err
	}
	if len(protos) == 0 {
		fmt.Println("No expenses found in statement.")
		return nil
	}

	if dryRun, _ := cmd.Flags().GetBool("dry-run"); dryRun {
		for _, e := range protos {
			fmt.Printf("%s  %8.2f  %-15s %s\n", e.Date.Format("2006-01-02"), e.Amount, e.Category, e.Description)
		}
		fmt.Printf("\n%d expenses would be imported\n", len(protos))
		return nil
	}

	store, err := initStore()
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	added, err := store.AddExpenses(ctx, protos)
	if err != nil {
		return err
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Imported %d expenses", len(added))))
	return nil
}
