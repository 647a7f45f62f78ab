package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/khata-app/khata/internal/cli"
	"github.com/khata-app/khata/internal/config"
	"github.com/khata-app/khata/internal/export"
	"github.com/khata-app/khata/internal/model"
	"github.com/khata-app/khata/internal/sheets"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export expenses to a file or Google Sheets",
		Long: `Export the recorded expenses.

By default a CSV file named expenses_<date>.csv is written to the current
directory. With --sheets the expenses are uploaded to Google Sheets
instead; if the upload fails, the local file export runs as a fallback.`,
		RunE: runExport,
	}

	cmd.Flags().String("format", "csv", "export format (csv, json)")
	cmd.Flags().StringP("output", "o", "", "output file (default: expenses_<date>.<ext>)")
	cmd.Flags().Bool("no-description", false, "omit the description column")
	cmd.Flags().Bool("sheets", false, "upload to Google Sheets instead of writing a file")

	return cmd
}

func runExport(cmd *cobra.Command, _ []string) error {
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
		fmt.Println("No expenses to export.")
		return nil
	}

	if useSheets, _ := cmd.Flags().GetBool("sheets"); useSheets {
		uploadErr := uploadToSheets(cmd, budget.Expenses)
		if uploadErr == nil {
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Uploaded %d expenses to Google Sheets", len(budget.Expenses))))
			return nil
		}
		// The working set is intact; fall back to a local file.
		slog.Warn("Sheets upload failed, falling back to file export", "error", uploadErr)
		fmt.Println(cli.FormatWarning("Upload failed; writing a local file instead"))
	}

	format, _ := cmd.Flags().GetString("format")
	if format != "csv" && format != "json" {
		return fmt.Errorf("unsupported format %q (expected csv or json)", format)
	}

	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		output = export.Filename(format, time.Now())
	}

	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", output, err)
	}
	defer func() { _ = f.Close() }()

	switch format {
	case "json":
		err = export.WriteJSON(f, budget.Expenses)
	default:
		noDesc, _ := cmd.Flags().GetBool("no-description")
		err = export.WriteCSV(f, budget.Expenses, !noDesc)
	}
	if err != nil {
		return err
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Exported %d expenses to %s", len(budget.Expenses), output)))
	return nil
}

func uploadToSheets(cmd *cobra.Command, expenses []model.Expense) error {
	ctx := cmd.Context()

	cfg, err := config.LoadSheetsConfig()
	if err != nil {
		return err
	}

	writer, err := sheets.NewWriter(ctx, *cfg, slog.Default())
	if err != nil {
		return err
	}

	return writer.Upload(ctx, expenses)
}
