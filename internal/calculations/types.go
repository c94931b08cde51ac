// Package calculations implements the arithmetic behind the finance tracker.
//
// All functions work on in-memory records that callers have already fetched,
// authorized and scoped. None of them access storage, mutate their inputs or
// return errors.
package calculations

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType is the direction of money flow.
type TransactionType string

const (
	TypeIncome  TransactionType = "INCOME"
	TypeExpense TransactionType = "EXPENSE"
)

// Valid reports whether t is one of the known transaction types.
func (t TransactionType) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// BudgetPeriod is the cadence a budget limit applies to.
type BudgetPeriod string

const (
	PeriodDaily   BudgetPeriod = "DAILY"
	PeriodWeekly  BudgetPeriod = "WEEKLY"
	PeriodMonthly BudgetPeriod = "MONTHLY"
	PeriodYearly  BudgetPeriod = "YEARLY"
)

// Valid reports whether p is one of the known budget periods.
func (p BudgetPeriod) Valid() bool {
	switch p {
	case PeriodDaily, PeriodWeekly, PeriodMonthly, PeriodYearly:
		return true
	}
	return false
}

// Category is the snapshot of a category as seen by the calculations.
type Category struct {
	ID    uuid.UUID
	Name  string
	Type  TransactionType
	Color string
	Icon  string
}

// Transaction is a single recorded flow of money.
//
// CategoryID is the reference to a category, Category the resolved snapshot
// of it. Either may be set without the other.
type Transaction struct {
	ID         uuid.UUID
	Amount     decimal.Decimal
	Type       TransactionType
	Date       time.Time
	CategoryID *uuid.UUID
	Category   *Category
	Note       string
}

// Budget is a spending limit for one category.
type Budget struct {
	ID         uuid.UUID
	CategoryID uuid.UUID
	Limit      decimal.Decimal
	Period     BudgetPeriod
	StartDate  *time.Time
	EndDate    *time.Time
}

// CategorySummary is the aggregate of all transactions in one category.
type CategorySummary struct {
	CategoryID       uuid.UUID       `json:"categoryId" example:"0b4ad5a2-f4a1-4b3a-9c2e-5b1cf8cc2a1d"`
	CategoryName     string          `json:"categoryName" example:"Food & Dining"`
	Amount           decimal.Decimal `json:"amount" example:"205.5"`
	Percentage       decimal.Decimal `json:"percentage" example:"82.2"`
	TransactionCount int             `json:"transactionCount" example:"2"`
}

// BudgetStats is the spending state of a budget.
type BudgetStats struct {
	Spent        decimal.Decimal `json:"spent" example:"450"`
	Remaining    decimal.Decimal `json:"remaining" example:"50"`
	Percentage   decimal.Decimal `json:"percentage" example:"90"`
	IsOverBudget bool            `json:"isOverBudget" example:"false"`
	Overage      decimal.Decimal `json:"overage" example:"0"`
}

// UncategorizedStats is the share of transactions without a category reference.
type UncategorizedStats struct {
	Count      int             `json:"count" example:"5"`
	Percentage decimal.Decimal `json:"percentage" example:"10"`
}

var hundred = decimal.NewFromInt(100)

// percentOf returns part / whole * 100, or zero when whole is zero.
func percentOf(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred)
}
