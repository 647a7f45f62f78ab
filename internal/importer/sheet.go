// Package importer turns raw tabular data and SMS text into normalized
// proto-expense records. Both parsers are best-effort: rows that cannot
// yield a positive amount are dropped, every other missing field falls
// back to a safe default, and nothing here ever aborts the pipeline.
package importer

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/khata-app/khata/internal/model"
)

// Candidate header names per field, probed in priority order. The first
// header present in the row wins. This is a finite declarative table on
// purpose; header matching never falls back to fuzzy or reflective
// lookup.
var (
	amountKeys = []string{
		"Amount", "amount", "AMOUNT",
		"Cost", "cost",
		"Price", "price",
		"Value", "value",
	}
	categoryKeys = []string{
		"Category", "category", "CATEGORY",
		"Type", "type",
		"Expense Type", "expense type",
	}
	descriptionKeys = []string{
		"Description", "description",
		"DESC", "desc",
		"Note", "note",
		"Details", "details",
	}
	dateKeys = []string{
		"Date", "date", "DATE",
		"Transaction Date", "transaction date",
		"Purchase Date", "purchase date",
	}
)

// serialEpoch anchors spreadsheet serial dates: day 0 is 1899-12-30.
var serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.Local)

// dateLayouts are tried in order for string date cells.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
	"02/01/2006",
	"Jan 2, 2006",
	"2 Jan 2006",
}

// Row is a single spreadsheet row keyed by its column headers.
type Row map[string]string

// Result reports the outcome of mapping a batch of rows. Accepted
// records carry no IDs yet; the store assigns them at commit.
type Result struct {
	Expenses []model.ProtoExpense
	Errors   []error
	Dropped  int
}

// SheetMapper maps arbitrary-header spreadsheet rows onto proto-expense
// records.
type SheetMapper struct {
	// Now supplies the fallback date for rows with a missing or
	// unparseable date cell. Defaults to time.Now.
	Now func() time.Time
	// Progress, when set, is invoked once per processed row.
	Progress func()
}

// MapRows resolves amount, category, description and date for every row
// and returns the accepted records. Rows without a usable positive
// amount are dropped and counted; they are never stored and later
// hidden.
func (m *SheetMapper) MapRows(rows []Row) Result {
	now := time.Now
	if m.Now != nil {
		now = m.Now
	}

	var res Result
	for i, row := range rows {
		if m.Progress != nil {
			m.Progress()
		}

		amountRaw, ok := findValue(row, amountKeys)
		if !ok {
			res.Dropped++
			res.Errors = append(res.Errors, fmt.Errorf("row %d: no amount column matched", i+1))
			continue
		}
		amount, err := strconv.ParseFloat(strings.TrimSpace(amountRaw), 64)
		if err != nil || amount <= 0 {
			res.Dropped++
			res.Errors = append(res.Errors, fmt.Errorf("row %d: %w: %q", i+1, model.ErrInvalidAmount, amountRaw))
			continue
		}

		category := model.CategoryOthers
		if raw, found := findValue(row, categoryKeys); found && strings.TrimSpace(raw) != "" {
			category = model.NormalizeCategory(raw)
		}

		description := ""
		if raw, found := findValue(row, descriptionKeys); found {
			description = strings.TrimSpace(raw)
		}

		date := now()
		if raw, found := findValue(row, dateKeys); found {
			if parsed, parseErr := parseCellDate(raw); parseErr == nil {
				date = parsed
			}
		}

		res.Expenses = append(res.Expenses, model.ProtoExpense{
			Amount:      amount,
			Category:    category,
			Description: description,
			Date:        date,
		})
	}
	return res
}

// findValue probes the row with each candidate key in order.
func findValue(row Row, keys []string) (string, bool) {
	for _, key := range keys {
		if v, ok := row[key]; ok {
			return v, true
		}
	}
	return "", false
}

// parseCellDate decodes a date cell. Numeric cells are spreadsheet
// serial dates (days since 1899-12-30, fractional part is time of day);
// anything else is tried against the calendar layouts.
func parseCellDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, fmt.Errorf("empty date cell")
	}

	if serial, err := strconv.ParseFloat(raw, 64); err == nil {
		return serialToDate(serial), nil
	}

	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable date cell: %q", raw)
}

// serialToDate converts a spreadsheet serial day count to a time.
func serialToDate(serial float64) time.Time {
	ms := int64(serial * 86400 * 1000)
	return serialEpoch.Add(time.Duration(ms) * time.Millisecond)
}
