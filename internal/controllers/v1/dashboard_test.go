package v1_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/finance-tracker/backend/internal/calculations"
	v1 "github.com/finance-tracker/backend/internal/controllers/v1"
	"github.com/finance-tracker/backend/internal/types"
	"github.com/finance-tracker/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// createDashboardData creates transactions in February and March 2024.
func (suite *TestSuiteStandard) createDashboardData() (v1.CategoryResponse, v1.CategoryResponse) {
	salary := suite.createTestCategory(suite.T(), v1.CategoryEditable{Name: "Salary", Type: calculations.TypeIncome, Color: "#10B981"})
	food := suite.createTestCategory(suite.T(), v1.CategoryEditable{Name: "Food & Dining", Type: calculations.TypeExpense, Color: "#F59E0B"})

	march := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	february := time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)

	for _, t := range []v1.TransactionEditable{
		{Amount: decimal.NewFromInt(5000), Type: calculations.TypeIncome, Date: march, CategoryID: &salary.Data.ID},
		{Amount: decimal.RequireFromString("85.50"), Type: calculations.TypeExpense, Date: march, CategoryID: &food.Data.ID},
		{Amount: decimal.NewFromInt(120), Type: calculations.TypeExpense, Date: march.AddDate(0, 0, 10), CategoryID: &food.Data.ID},
		{Amount: decimal.NewFromInt(45), Type: calculations.TypeExpense, Date: march.AddDate(0, 0, 20)},
		{Amount: decimal.NewFromInt(5000), Type: calculations.TypeIncome, Date: february, CategoryID: &salary.Data.ID},
		{Amount: decimal.NewFromInt(100), Type: calculations.TypeExpense, Date: february, CategoryID: &food.Data.ID},
	} {
		_ = suite.createTestTransaction(suite.T(), t)
	}

	return salary, food
}

func (suite *TestSuiteStandard) TestDashboardSummary() {
	_, food := suite.createDashboardData()

	r := suite.request(suite.T(), http.MethodGet, "/v1/dashboard/summary?month=2024-03", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var res v1.DashboardSummaryResponse
	test.DecodeResponse(suite.T(), &r, &res)
	s := res.Data

	suite.Assert().Equal(types.NewMonth(2024, time.March), s.Month)
	suite.Assert().True(decimal.NewFromInt(5000).Equal(s.TotalIncome), s.TotalIncome.String())
	suite.Assert().True(decimal.RequireFromString("250.5").Equal(s.TotalExpenses), s.TotalExpenses.String())
	suite.Assert().True(decimal.RequireFromString("4749.5").Equal(s.NetBalance), s.NetBalance.String())
	suite.Assert().Equal(4, s.TransactionCount)
	suite.Assert().Equal(1, s.IncomeCount)
	suite.Assert().Equal(3, s.ExpenseCount)
	suite.Assert().True(s.IncomeChange.IsZero(), s.IncomeChange.String())
	suite.Assert().True(decimal.RequireFromString("150.5").Equal(s.ExpensesChange), s.ExpensesChange.String())
	suite.Assert().Equal(1, s.Uncategorized.Count)
	suite.Assert().True(decimal.NewFromInt(25).Equal(s.Uncategorized.Percentage), s.Uncategorized.Percentage.String())
	suite.Assert().Equal(2, s.CategoryDiversity)

	if suite.Assert().NotEmpty(s.TopCategories) {
		suite.Assert().Equal(food.Data.ID, s.TopCategories[0].CategoryID)
		suite.Assert().True(decimal.RequireFromString("205.5").Equal(s.TopCategories[0].Amount))
		suite.Assert().Equal(2, s.TopCategories[0].TransactionCount)
	}
}

func (suite *TestSuiteStandard) TestDashboardSummaryTopLimit() {
	_, _ = suite.createDashboardData()

	tests := []struct {
		name  string
		query string
		len   int
	}{
		{"One", "limit=1", 1},
		{"Zero", "limit=0", 0},
		{"Negative", "limit=-3", 0},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := suite.request(t, http.MethodGet, "/v1/dashboard/summary?month=2024-03&"+tt.query, nil)
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var res v1.DashboardSummaryResponse
			test.DecodeResponse(t, &r, &res)
			assert.Len(t, res.Data.TopCategories, tt.len)
		})
	}
}

func (suite *TestSuiteStandard) TestDashboardSummaryEmpty() {
	r := suite.request(suite.T(), http.MethodGet, "/v1/dashboard/summary", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var res v1.DashboardSummaryResponse
	test.DecodeResponse(suite.T(), &r, &res)
	suite.Assert().True(res.Data.TotalIncome.IsZero())
	suite.Assert().Equal(0, res.Data.TransactionCount)
	suite.Assert().Equal(types.MonthOf(time.Now().In(time.UTC)), res.Data.Month)
	suite.Assert().True(res.Data.Uncategorized.Percentage.IsZero())
}

func (suite *TestSuiteStandard) TestDashboardCharts() {
	_, food := suite.createDashboardData()
	_ = suite.createTestBudget(suite.T(), v1.BudgetEditable{CategoryID: food.Data.ID, Limit: decimal.NewFromInt(300), Period: calculations.PeriodMonthly})

	r := suite.request(suite.T(), http.MethodGet, "/v1/dashboard/charts?month=2024-03&months=3", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var res v1.DashboardChartsResponse
	test.DecodeResponse(suite.T(), &r, &res)
	charts := res.Data

	if suite.Assert().Len(charts.Monthly, 3) {
		suite.Assert().Equal(types.NewMonth(2024, time.January), charts.Monthly[0].Month)
		suite.Assert().True(charts.Monthly[0].Income.IsZero())

		suite.Assert().Equal(types.NewMonth(2024, time.February), charts.Monthly[1].Month)
		suite.Assert().True(decimal.NewFromInt(4900).Equal(charts.Monthly[1].Balance), charts.Monthly[1].Balance.String())

		suite.Assert().Equal(types.NewMonth(2024, time.March), charts.Monthly[2].Month)
		suite.Assert().True(decimal.RequireFromString("250.5").Equal(charts.Monthly[2].Expenses))
	}

	var foodShare *calculations.PieChartDataPoint
	for i := range charts.Expenses {
		if charts.Expenses[i].Name == "Food & Dining" {
			foodShare = &charts.Expenses[i]
		}
	}
	if suite.Assert().NotNil(foodShare) {
		suite.Assert().True(decimal.RequireFromString("205.5").Equal(foodShare.Value))
		suite.Assert().Equal("#F59E0B", foodShare.Color)
	}

	if suite.Assert().Len(charts.Income, 1) {
		suite.Assert().Equal("Salary", charts.Income[0].Name)
		suite.Assert().True(decimal.NewFromInt(100).Equal(charts.Income[0].Percentage))
	}

	// The budget is scored at the end of March
	if suite.Assert().Len(charts.Budgets, 1) {
		suite.Assert().True(decimal.RequireFromString("205.5").Equal(charts.Budgets[0].Stats.Spent), charts.Budgets[0].Stats.Spent.String())
		suite.Assert().False(charts.Budgets[0].Stats.IsOverBudget)
	}
}

func (suite *TestSuiteStandard) TestDashboardChartsMonths() {
	tests := []struct {
		name   string
		query  string
		status int
		len    int
	}{
		{"Default", "", http.StatusOK, 6},
		{"One", "months=1", http.StatusOK, 1},
		{"Maximum", "months=60", http.StatusOK, 60},
		{"Zero", "months=0", http.StatusBadRequest, 0},
		{"Too many", "months=61", http.StatusBadRequest, 0},
		{"Invalid month", "month=2024-13", http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := suite.request(t, http.MethodGet, "/v1/dashboard/charts?"+tt.query, nil)
			test.AssertHTTPStatus(t, &r, tt.status)

			var res v1.DashboardChartsResponse
			test.DecodeResponse(t, &r, &res)
			if tt.status == http.StatusOK {
				assert.Len(t, res.Data.Monthly, tt.len)
			} else {
				assert.NotNil(t, res.Error)
			}
		})
	}
}
