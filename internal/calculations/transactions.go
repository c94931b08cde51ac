package calculations

import (
	"time"

	"github.com/finance-tracker/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// NetBalance returns the sum of all income minus the sum of all expenses.
func NetBalance(transactions []Transaction) decimal.Decimal {
	balance := decimal.Zero
	for _, t := range transactions {
		switch t.Type {
		case TypeIncome:
			balance = balance.Add(t.Amount)
		case TypeExpense:
			balance = balance.Sub(t.Amount)
		}
	}
	return balance
}

// TotalIncome returns the sum of the amounts of all income transactions.
func TotalIncome(transactions []Transaction) decimal.Decimal {
	return sum(FilterByType(transactions, TypeIncome))
}

// TotalExpenses returns the sum of the amounts of all expense transactions.
func TotalExpenses(transactions []Transaction) decimal.Decimal {
	return sum(FilterByType(transactions, TypeExpense))
}

func sum(transactions []Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, t := range transactions {
		total = total.Add(t.Amount)
	}
	return total
}

// FilterByDateRange returns the transactions with start <= date <= end,
// comparing full timestamps. An inverted range matches nothing.
func FilterByDateRange(transactions []Transaction, start, end time.Time) []Transaction {
	out := make([]Transaction, 0)
	if start.After(end) {
		return out
	}

	for _, t := range transactions {
		if !t.Date.Before(start) && !t.Date.After(end) {
			out = append(out, t)
		}
	}
	return out
}

// FilterByType returns the transactions of the given type.
func FilterByType(transactions []Transaction, transactionType TransactionType) []Transaction {
	out := make([]Transaction, 0)
	for _, t := range transactions {
		if t.Type == transactionType {
			out = append(out, t)
		}
	}
	return out
}

// FilterByCategory returns the transactions referencing the category.
// Only the reference is compared, the embedded snapshot is ignored.
func FilterByCategory(transactions []Transaction, categoryID uuid.UUID) []Transaction {
	out := make([]Transaction, 0)
	for _, t := range transactions {
		if t.CategoryID != nil && *t.CategoryID == categoryID {
			out = append(out, t)
		}
	}
	return out
}

// GroupByMonth buckets transactions by the "YYYY-MM" month of their date,
// evaluated in the location of each date. Input order is kept per bucket.
func GroupByMonth(transactions []Transaction) map[string][]Transaction {
	groups := make(map[string][]Transaction)
	for _, t := range transactions {
		key := types.MonthOf(t.Date).String()
		groups[key] = append(groups[key], t)
	}
	return groups
}

// TransactionsForMonth returns the transactions between the first and the
// last instant of the calendar month containing reference.
func TransactionsForMonth(transactions []Transaction, reference time.Time) []Transaction {
	month := types.MonthOf(reference)
	return FilterByDateRange(transactions, month.First(), month.Last())
}

// TransactionsForLastMonths returns the transactions dated between n months
// ago and now, both inclusive.
func TransactionsForLastMonths(transactions []Transaction, months int) []Transaction {
	return transactionsForLastMonths(transactions, months, time.Now())
}

func transactionsForLastMonths(transactions []Transaction, months int, now time.Time) []Transaction {
	return FilterByDateRange(transactions, types.AddMonthsClamped(now, -months), now)
}

// PercentageChange returns the relative change from oldValue to newValue in
// percent. When oldValue is zero, any positive newValue counts as 100% and
// everything else as 0%.
func PercentageChange(oldValue, newValue decimal.Decimal) decimal.Decimal {
	if oldValue.IsZero() {
		if newValue.IsPositive() {
			return hundred
		}
		return decimal.Zero
	}
	return newValue.Sub(oldValue).Div(oldValue).Mul(hundred)
}

// CountByType returns the number of transactions per type. Both types are
// always present in the result.
func CountByType(transactions []Transaction) map[TransactionType]int {
	counts := map[TransactionType]int{
		TypeIncome:  0,
		TypeExpense: 0,
	}

	for _, t := range transactions {
		if _, ok := counts[t.Type]; ok {
			counts[t.Type]++
		}
	}
	return counts
}
