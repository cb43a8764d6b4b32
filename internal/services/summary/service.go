// Package summary derives aggregate figures from a ledger. All functions
// are pure: no persistence, no mutation of the input.
package summary

import (
	"sort"

	"github.com/fintrackhq/fintrack/internal/models"
)

// UncategorizedLabel is the sentinel category for expenses recorded without
// a category.
const UncategorizedLabel = "Uncategorized"

// Totals computes total income, total expenses, and the net balance.
// An empty ledger yields all zeros. The result does not depend on input order.
func Totals(txns []models.Transaction) models.Totals {
	var t models.Totals
	for i := range txns {
		switch txns[i].Kind {
		case models.KindIncome:
			t.Income += txns[i].Amount
		case models.KindExpense:
			t.Expenses += txns[i].Amount
		}
	}
	t.Balance = t.Income - t.Expenses
	return t
}

// ExpensesByCategory groups expense transactions by category and sums the
// amounts per group. Missing categories are folded into UncategorizedLabel.
// The result is sorted by total descending; equal totals keep first-seen
// category order. No expenses yields an empty slice.
func ExpensesByCategory(txns []models.Transaction) []models.CategoryTotal {
	index := make(map[string]int)
	var result []models.CategoryTotal

	for i := range txns {
		if txns[i].Kind != models.KindExpense {
			continue
		}
		category := txns[i].Category
		if category == "" {
			category = UncategorizedLabel
		}
		pos, ok := index[category]
		if !ok {
			pos = len(result)
			index[category] = pos
			result = append(result, models.CategoryTotal{Category: category})
		}
		result[pos].Total += txns[i].Amount
	}

	// Stable sort keeps the first-seen order for equal totals.
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Total > result[j].Total
	})
	return result
}
