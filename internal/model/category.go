package model

import "strings"

// CategoryOthers is the catch-all category assigned when no category can
// be determined for an imported record.
const CategoryOthers = "others"

// Category represents a valid expense category. The set of categories is
// configuration, not logic: nothing in the engine branches on a specific
// id except the import keyword tables, which are themselves data.
type Category struct {
	ID    string
	Label string
}

// DefaultCategories returns the built-in category set.
func DefaultCategories() []Category {
	return []Category{
		{ID: "bills", Label: "Bills"},
		{ID: "entertainment", Label: "Entertainment"},
		{ID: "food", Label: "Food & Drinks"},
		{ID: "fuel", Label: "Fuel"},
		{ID: "groceries", Label: "Groceries"},
		{ID: "health", Label: "Health"},
		{ID: "housing", Label: "Housing"},
		{ID: "shopping", Label: "Shopping"},
		{ID: "travel", Label: "Travel"},
		{ID: CategoryOthers, Label: "Other"},
	}
}

// KnownCategory reports whether id is part of the built-in set.
func KnownCategory(id string) bool {
	id = NormalizeCategory(id)
	for _, c := range DefaultCategories() {
		if c.ID == id {
			return true
		}
	}
	return false
}

// NormalizeCategory lowercases and trims a raw category value so lookups
// are insensitive to spreadsheet formatting.
func NormalizeCategory(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// CategoryOrOthers maps a raw category value onto the known set, falling
// back to the catch-all when the value is empty or unrecognized.
func CategoryOrOthers(raw string) string {
	id := NormalizeCategory(raw)
	if id == "" || !KnownCategory(id) {
		return CategoryOthers
	}
	return id
}
