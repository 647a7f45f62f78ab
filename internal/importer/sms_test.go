package importer

import (
	"encoding/json"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khata-app/khata/internal/model"
)

func TestSMSParse(t *testing.T) {
	parser := &SMSParser{Now: fixedNow}

	tests := []struct {
		name         string
		text         string
		wantAmount   float64
		wantCategory string
	}{
		{
			name:         "typical debit alert",
			text:         "Rs. 250 spent at Cafe Coffee Day",
			wantAmount:   250,
			wantCategory: "food",
		},
		{
			name:         "rupee symbol",
			text:         "₹99.50 paid to Netflix subscription",
			wantAmount:   99.50,
			wantCategory: "entertainment",
		},
		{
			name:         "inr prefix",
			text:         "INR 1200 debited for electricity bill",
			wantAmount:   1200,
			wantCategory: "housing",
		},
		{
			name:         "rs without dot",
			text:         "Paid Rs 80 for Uber ride home",
			wantAmount:   80,
			wantCategory: "travel",
		},
		{
			name:         "no keyword match",
			text:         "Rs. 500 transferred to savings",
			wantAmount:   500,
			wantCategory: model.CategoryOthers,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parser.Parse(tt.text)
			require.NoError(t, err)
			assert.InDelta(t, tt.wantAmount, got.Amount, 1e-9)
			assert.Equal(t, tt.wantCategory, got.Category)
			assert.Equal(t, fixedNow(), got.Date)
		})
	}
}

func TestSMSParseNoAmount(t *testing.T) {
	parser := &SMSParser{Now: fixedNow}

	for _, text := range []string{
		"",
		"Your OTP is 482913",
		"Payment received, thank you",
	} {
		_, err := parser.Parse(text)
		assert.ErrorIs(t, err, ErrNoAmountFound, "text %q", text)
	}
}

func TestSMSParseDescriptionTruncation(t *testing.T) {
	parser := &SMSParser{Now: fixedNow}

	t.Run("ascii text", func(t *testing.T) {
		text := "Rs. 42 spent at " + strings.Repeat("a very long merchant name ", 5)

		got, err := parser.Parse(text)
		require.NoError(t, err)
		assert.Len(t, got.Description, 50)
		assert.Equal(t, text[:50], got.Description)
	})

	t.Run("multi-byte rune at the cutoff", func(t *testing.T) {
		// The rupee sign straddles the 50-rune boundary; the cut must
		// land between runes, never inside one.
		text := "Rs. 42 spent at store abcdefghijklmnopqrstuvwxy ₹99"

		got, err := parser.Parse(text)
		require.NoError(t, err)
		assert.Equal(t, string([]rune(text)[:50]), got.Description)
		assert.True(t, utf8.ValidString(got.Description))

		// JSON survives the description unchanged.
		blob, err := json.Marshal(got)
		require.NoError(t, err)
		var decoded model.ProtoExpense
		require.NoError(t, json.Unmarshal(blob, &decoded))
		assert.Equal(t, got.Description, decoded.Description)
	})
}

func TestGuessCategoryPriority(t *testing.T) {
	// Food keywords are probed before travel, so a text mentioning both
	// resolves to food.
	assert.Equal(t, "food", GuessCategory("Uber Eats restaurant order"))
	assert.Equal(t, "travel", GuessCategory("Uber ride downtown"))
	assert.Equal(t, model.CategoryOthers, GuessCategory("miscellaneous purchase"))
}
