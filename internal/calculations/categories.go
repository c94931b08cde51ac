package calculations

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

// DefaultTopCategories is the number of categories TopCategories returns
// when callers have no preference.
const DefaultTopCategories = 5

// AggregateByCategory sums amounts and counts transactions per category.
//
// Only transactions carrying both a category reference and a resolved
// category snapshot are aggregated. The percentage of each category is
// relative to the sum of the amounts of all input transactions, including
// those not aggregated. The result is ordered by amount, descending, with
// ties in order of first appearance.
func AggregateByCategory(transactions []Transaction) []CategorySummary {
	index := make(map[uuid.UUID]int)
	summaries := make([]CategorySummary, 0)

	for _, t := range transactions {
		if t.CategoryID == nil || t.Category == nil {
			continue
		}

		i, ok := index[*t.CategoryID]
		if !ok {
			i = len(summaries)
			index[*t.CategoryID] = i
			summaries = append(summaries, CategorySummary{
				CategoryID:   *t.CategoryID,
				CategoryName: t.Category.Name,
				Amount:       decimal.Zero,
			})
		}

		summaries[i].Amount = summaries[i].Amount.Add(t.Amount)
		summaries[i].TransactionCount++
	}

	total := sum(transactions)
	for i := range summaries {
		summaries[i].Percentage = decimal.Zero
		if total.IsPositive() {
			summaries[i].Percentage = summaries[i].Amount.Div(total).Mul(hundred)
		}
	}

	slices.SortStableFunc(summaries, func(a, b CategorySummary) int {
		return b.Amount.Cmp(a.Amount)
	})

	return summaries
}

// AggregateExpensesByCategory aggregates the expense transactions only.
func AggregateExpensesByCategory(transactions []Transaction) []CategorySummary {
	return AggregateByCategory(FilterByType(transactions, TypeExpense))
}

// AggregateIncomeByCategory aggregates the income transactions only.
func AggregateIncomeByCategory(transactions []Transaction) []CategorySummary {
	return AggregateByCategory(FilterByType(transactions, TypeIncome))
}

// TopCategories returns the limit expense categories with the highest
// amounts. A negative limit is treated as zero.
func TopCategories(transactions []Transaction, limit int) []CategorySummary {
	summaries := AggregateExpensesByCategory(transactions)
	if limit < 0 {
		limit = 0
	}

	if limit < len(summaries) {
		return summaries[:limit]
	}
	return summaries
}

// CategoryDiversity returns the number of distinct categories referenced.
func CategoryDiversity(transactions []Transaction) int {
	seen := make(map[uuid.UUID]struct{})
	for _, t := range transactions {
		if t.CategoryID != nil {
			seen[*t.CategoryID] = struct{}{}
		}
	}
	return len(seen)
}

// UncategorizedTransactions returns the transactions without a category
// reference. A transaction referencing a category that could not be
// resolved still counts as categorized.
func UncategorizedTransactions(transactions []Transaction) []Transaction {
	out := make([]Transaction, 0)
	for _, t := range transactions {
		if t.CategoryID == nil {
			out = append(out, t)
		}
	}
	return out
}

// Uncategorized returns the number and share of uncategorized transactions.
func Uncategorized(transactions []Transaction) UncategorizedStats {
	count := len(UncategorizedTransactions(transactions))
	return UncategorizedStats{
		Count:      count,
		Percentage: percentOf(decimal.NewFromInt(int64(count)), decimal.NewFromInt(int64(len(transactions)))),
	}
}
