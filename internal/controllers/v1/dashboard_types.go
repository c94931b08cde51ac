package v1

import (
	"github.com/finance-tracker/backend/internal/calculations"
	"github.com/finance-tracker/backend/internal/types"
	"github.com/shopspring/decimal"
)

// DashboardQuery contains the parameters of the dashboard endpoints.
type DashboardQuery struct {
	Month  types.Month `form:"month"`  // The month, YYYY-MM. Defaults to the current month.
	Limit  int         `form:"limit"`  // Number of top categories. Defaults to 5.
	Months int         `form:"months"` // Number of months in the charts. Defaults to 6.
}

// DashboardSummary contains the key figures for one month.
type DashboardSummary struct {
	calculations.DashboardSummary
	Month             types.Month                     `json:"month" swaggertype:"string" example:"2024-03"` // The month of the summary
	IncomeCount       int                             `json:"incomeCount" example:"1"`                      // Number of income transactions
	ExpenseCount      int                             `json:"expenseCount" example:"3"`                     // Number of expense transactions
	IncomeChange      decimal.Decimal                 `json:"incomeChange" example:"0"`                     // Change of the income compared to the previous month, in percent
	ExpensesChange    decimal.Decimal                 `json:"expensesChange" example:"-12.5"`               // Change of the expenses compared to the previous month, in percent
	Uncategorized     calculations.UncategorizedStats `json:"uncategorized"`                                // Transactions without a category
	CategoryDiversity int                             `json:"categoryDiversity" example:"3"`                // Number of distinct categories used
	TopCategories     []calculations.CategorySummary  `json:"topCategories"`                                // Categories with the highest expenses
}

type DashboardSummaryResponse struct {
	Error *string           `json:"error" example:"months must be between 1 and 60"` // The error, if any occurred
	Data  *DashboardSummary `json:"data"`                                            // The summary
}

// DashboardCharts contains the data for the dashboard charts.
type DashboardCharts struct {
	Monthly  []calculations.MonthlySummary    `json:"monthly"`  // Income, expenses and balance per month, oldest first
	Expenses []calculations.PieChartDataPoint `json:"expenses"` // Expense shares per category in the month
	Income   []calculations.PieChartDataPoint `json:"income"`   // Income shares per category in the month
	Budgets  []Budget                         `json:"budgets"`  // Progress of all budgets
}

type DashboardChartsResponse struct {
	Error *string          `json:"error" example:"months must be between 1 and 60"` // The error, if any occurred
	Data  *DashboardCharts `json:"data"`                                            // The chart data
}
