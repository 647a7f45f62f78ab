// Package export converts the expense working set to delimited text or
// JSON for the external save/share boundary.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/khata-app/khata/internal/model"
)

// dateLayout is how expense dates render in delimited output.
const dateLayout = "2006-01-02"

// Filename returns the generated export filename for the given
// extension, e.g. expenses_2026-09-01.csv.
func Filename(ext string, now time.Time) string {
	return fmt.Sprintf("expenses_%s.%s", now.Format(dateLayout), ext)
}

// WriteCSV writes the expenses as delimited text: a header row, then one
// row per expense with the amount fixed to two decimals. The description
// column is omitted entirely when includeDescription is false. Fields
// containing delimiters or quotes are quoted per RFC 4180.
func WriteCSV(w io.Writer, expenses []model.Expense, includeDescription bool) error {
	cw := csv.NewWriter(w)

	header := []string{"Date", "Amount", "Category"}
	if includeDescription {
		header = append(header, "Description")
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, e := range expenses {
		row := []string{
			e.Date.Format(dateLayout),
			strconv.FormatFloat(e.Amount, 'f', 2, 64),
			e.Category,
		}
		if includeDescription {
			row = append(row, e.Description)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write expense %s: %w", e.ID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// ReadCSV is the counterpart reader for WriteCSV output. It recovers the
// rows as proto-expense records; the description column may be absent.
func ReadCSV(r io.Reader) ([]model.ProtoExpense, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	if len(header) < 3 {
		return nil, fmt.Errorf("unexpected header: %v", header)
	}

	var expenses []model.ProtoExpense
	line := 1
	for {
		line++
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if len(rec) < 3 {
			return nil, fmt.Errorf("line %d: expected at least 3 columns", line)
		}

		date, err := time.ParseInLocation(dateLayout, rec[0], time.Local)
		if err != nil {
			return nil, fmt.Errorf("line %d date: %w", line, err)
		}
		amount, err := strconv.ParseFloat(rec[1], 64)
		if err != nil {
			return nil, fmt.Errorf("line %d amount: %w", line, err)
		}

		e := model.ProtoExpense{
			Date:     date,
			Amount:   amount,
			Category: rec[2],
		}
		if len(rec) > 3 {
			e.Description = rec[3]
		}
		expenses = append(expenses, e)
	}
	return expenses, nil
}

// WriteJSON writes the expenses as indented JSON with RFC 3339 dates.
func WriteJSON(w io.Writer, expenses []model.Expense) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(expenses); err != nil {
		return fmt.Errorf("failed to encode expenses: %w", err)
	}
	return nil
}
