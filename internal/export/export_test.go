package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khata-app/khata/internal/model"
)

func sampleExpenses() []model.Expense {
	return []model.Expense{
		{
			ID:          "a1",
			Date:        time.Date(2025, time.June, 10, 9, 30, 0, 0, time.Local),
			Amount:      120,
			Category:    "food",
			Description: `lunch, "team" outing`,
		},
		{
			ID:       "b2",
			Date:     time.Date(2025, time.June, 11, 0, 0, 0, 0, time.Local),
			Amount:   45.5,
			Category: "travel",
		},
	}
}

func TestFilename(t *testing.T) {
	now := time.Date(2026, time.September, 1, 15, 0, 0, 0, time.Local)
	assert.Equal(t, "expenses_2026-09-01.csv", Filename("csv", now))
	assert.Equal(t, "expenses_2026-09-01.json", Filename("json", now))
}

func TestWriteCSVRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleExpenses(), true))

	got, err := ReadCSV(&buf)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.InDelta(t, 120, got[0].Amount, 1e-9)
	assert.Equal(t, "food", got[0].Category)
	assert.Equal(t, `lunch, "team" outing`, got[0].Description, "embedded delimiters and quotes survive")
	assert.True(t, got[0].Date.Equal(time.Date(2025, time.June, 10, 0, 0, 0, 0, time.Local)), "dates round to the day")

	assert.InDelta(t, 45.5, got[1].Amount, 1e-9)
	assert.Empty(t, got[1].Description)
}

func TestWriteCSVWithoutDescription(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleExpenses(), false))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Date,Amount,Category", lines[0])
	assert.Equal(t, "2025-06-10,120.00,food", lines[1])

	got, err := ReadCSV(strings.NewReader(buf.String()))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Empty(t, got[0].Description)
}

func TestWriteCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil, true))
	assert.Equal(t, "Date,Amount,Category,Description\n", buf.String())

	got, err := ReadCSV(&buf)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestReadCSVErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"short header", "Date,Amount\n"},
		{"bad date", "Date,Amount,Category\nnot-a-date,10,food\n"},
		{"bad amount", "Date,Amount,Category\n2025-06-10,ten,food\n"},
		{"short row", "Date,Amount,Category\n2025-06-10,10\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(tt.input))
			assert.Error(t, err)
		})
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleExpenses()))

	var decoded []model.Expense
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)
	assert.Equal(t, "a1", decoded[0].ID)
	assert.InDelta(t, 45.5, decoded[1].Amount, 1e-9)
	assert.True(t, decoded[0].Date.Equal(sampleExpenses()[0].Date))
}
