package importer

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/khata-app/khata/internal/model"
)

// ErrNoAmountFound means the SMS text contained no recognizable amount.
// The caller should ask the user to fill the amount in manually.
var ErrNoAmountFound = errors.New("no amount found in SMS text")

// descriptionLimit caps the auto-filled description length.
const descriptionLimit = 50

// amountPattern matches Rs.500, Rs 500, INR 500, ₹500 and friends.
var amountPattern = regexp.MustCompile(`(?i)(?:Rs\.?|INR|₹)\s?(\d+(?:\.\d+)?)`)

// categoryKeyword pairs a lowercase substring with the category it
// implies. Groups are checked in priority order; the first hit wins.
type categoryKeyword struct {
	keywords []string
	category string
}

var categoryKeywords = []categoryKeyword{
	{keywords: []string{"food", "restaurant", "cafe"}, category: "food"},
	{keywords: []string{"uber", "ola", "travel"}, category: "travel"},
	{keywords: []string{"movie", "netflix", "entertainment"}, category: "entertainment"},
	{keywords: []string{"rent", "electricity", "water"}, category: "housing"},
}

// SMSParser extracts a proto-expense from payment SMS text. Its output
// is advisory: callers let the user override every field before commit.
type SMSParser struct {
	// Now supplies the expense date; SMS text carries no usable one.
	Now func() time.Time
}

// Parse extracts amount, category and description from the text. When no
// amount can be found it returns ErrNoAmountFound and the caller falls
// back to fully manual entry.
func (p *SMSParser) Parse(text string) (model.ProtoExpense, error) {
	now := time.Now
	if p.Now != nil {
		now = p.Now
	}

	match := amountPattern.FindStringSubmatch(text)
	if match == nil {
		return model.ProtoExpense{}, ErrNoAmountFound
	}
	amount, err := strconv.ParseFloat(match[1], 64)
	if err != nil || amount <= 0 {
		return model.ProtoExpense{}, ErrNoAmountFound
	}

	return model.ProtoExpense{
		Amount:      amount,
		Category:    GuessCategory(text),
		Description: truncate(text, descriptionLimit),
		Date:        now(),
	}, nil
}

// GuessCategory picks a category from fixed keyword groups, falling back
// to the catch-all when nothing matches.
func GuessCategory(text string) string {
	lower := strings.ToLower(text)
	for _, group := range categoryKeywords {
		for _, kw := range group.keywords {
			if strings.Contains(lower, kw) {
				return group.category
			}
		}
	}
	return model.CategoryOthers
}

// truncate cuts s to at most limit runes. Cutting on a byte index would
// split multi-byte runes like the rupee sign and leave invalid UTF-8.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
