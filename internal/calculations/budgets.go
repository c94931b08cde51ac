package calculations

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// atRiskThreshold is the budget progress in percent from which on a budget
// counts as at risk.
var atRiskThreshold = decimal.NewFromInt(80)

// BudgetProgress returns spent relative to limit in percent. The result is
// not capped at 100. A zero limit always has zero progress.
func BudgetProgress(spent, limit decimal.Decimal) decimal.Decimal {
	return percentOf(spent, limit)
}

// RemainingBudget returns limit minus spent. It is negative for budgets
// that are exceeded.
func RemainingBudget(spent, limit decimal.Decimal) decimal.Decimal {
	return limit.Sub(spent)
}

// IsOverBudget reports whether spent exceeds limit. Spending exactly the
// limit is not over budget.
func IsOverBudget(spent, limit decimal.Decimal) bool {
	return spent.GreaterThan(limit)
}

// BudgetOverage returns how much spent exceeds limit, or zero.
func BudgetOverage(spent, limit decimal.Decimal) decimal.Decimal {
	return decimal.Max(decimal.Zero, spent.Sub(limit))
}

// SpentInCategory sums the expense transactions referencing the category.
func SpentInCategory(transactions []Transaction, categoryID uuid.UUID) decimal.Decimal {
	return sum(FilterByType(FilterByCategory(transactions, categoryID), TypeExpense))
}

// CalculateBudgetStats computes the spending state of a budget.
//
// The transactions are not filtered by date. Callers scope them to the
// budget window, e.g. with BudgetWindow, beforehand.
func CalculateBudgetStats(budget Budget, transactions []Transaction) BudgetStats {
	spent := SpentInCategory(transactions, budget.CategoryID)

	return BudgetStats{
		Spent:        spent,
		Remaining:    RemainingBudget(spent, budget.Limit),
		Percentage:   BudgetProgress(spent, budget.Limit),
		IsOverBudget: IsOverBudget(spent, budget.Limit),
		Overage:      BudgetOverage(spent, budget.Limit),
	}
}

// OverBudgets returns the budgets whose spending exceeds their limit,
// in input order.
func OverBudgets(budgets []Budget, transactions []Transaction) []Budget {
	out := make([]Budget, 0)
	for _, b := range budgets {
		if CalculateBudgetStats(b, transactions).IsOverBudget {
			out = append(out, b)
		}
	}
	return out
}

// AtRiskBudgets returns the budgets with a progress between 80 and 100
// percent, both inclusive, in input order.
func AtRiskBudgets(budgets []Budget, transactions []Transaction) []Budget {
	out := make([]Budget, 0)
	for _, b := range budgets {
		p := CalculateBudgetStats(b, transactions).Percentage
		if p.GreaterThanOrEqual(atRiskThreshold) && p.LessThanOrEqual(hundred) {
			out = append(out, b)
		}
	}
	return out
}

// BudgetProportionRemaining returns the remaining budget as a fraction of
// the limit, floored at zero. A zero limit has nothing remaining.
func BudgetProportionRemaining(spent, limit decimal.Decimal) decimal.Decimal {
	if limit.IsZero() {
		return decimal.Zero
	}
	return decimal.Max(decimal.Zero, RemainingBudget(spent, limit).Div(limit))
}
