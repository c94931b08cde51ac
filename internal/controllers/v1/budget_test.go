package v1_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/finance-tracker/backend/internal/calculations"
	v1 "github.com/finance-tracker/backend/internal/controllers/v1"
	"github.com/finance-tracker/backend/internal/models"
	"github.com/finance-tracker/backend/test"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestBudgetCreate() {
	food := suite.createTestCategory(suite.T(), v1.CategoryEditable{Name: "Food", Type: calculations.TypeExpense})
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		create         v1.BudgetEditable
		expectedError  string
		expectedStatus int
	}{
		{"Monthly", v1.BudgetEditable{CategoryID: food.Data.ID, Limit: decimal.NewFromInt(500), Period: calculations.PeriodMonthly}, "", http.StatusCreated},
		{"Weekly", v1.BudgetEditable{CategoryID: food.Data.ID, Limit: decimal.NewFromInt(100), Period: calculations.PeriodWeekly}, "", http.StatusCreated},
		{"Invalid period", v1.BudgetEditable{CategoryID: food.Data.ID, Limit: decimal.NewFromInt(100), Period: "HOURLY"}, models.ErrInvalidBudgetPeriod.Error(), http.StatusBadRequest},
		{"Negative limit", v1.BudgetEditable{CategoryID: food.Data.ID, Limit: decimal.NewFromInt(-1), Period: calculations.PeriodMonthly}, models.ErrInvalidAmount.Error(), http.StatusBadRequest},
		{"Inverted dates", v1.BudgetEditable{CategoryID: food.Data.ID, Limit: decimal.NewFromInt(1), Period: calculations.PeriodMonthly, StartDate: &start, EndDate: &end}, models.ErrInvalidDateRange.Error(), http.StatusBadRequest},
		{"Unknown category", v1.BudgetEditable{CategoryID: uuid.New(), Limit: decimal.NewFromInt(1), Period: calculations.PeriodMonthly}, models.ErrUnknownCategory.Error(), http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			res := suite.createTestBudget(t, tt.create, tt.expectedStatus)

			if tt.expectedError != "" {
				if assert.NotNil(t, res.Error) {
					assert.Equal(t, tt.expectedError, *res.Error)
				}
				return
			}

			assert.True(t, tt.create.Limit.Equal(res.Data.Limit))
			assert.True(t, res.Data.Stats.Spent.IsZero())
			if assert.NotNil(t, res.Data.Category) {
				assert.Equal(t, "Food", res.Data.Category.Name)
			}
		})
	}
}

func (suite *TestSuiteStandard) TestBudgetStats() {
	food := suite.createTestCategory(suite.T(), v1.CategoryEditable{Name: "Food", Type: calculations.TypeExpense})
	transport := suite.createTestCategory(suite.T(), v1.CategoryEditable{Name: "Transport", Type: calculations.TypeExpense})
	budget := suite.createTestBudget(suite.T(), v1.BudgetEditable{CategoryID: food.Data.ID, Limit: decimal.NewFromInt(500), Period: calculations.PeriodMonthly})

	month := thisMonth()
	_ = suite.createTestTransaction(suite.T(), v1.TransactionEditable{Amount: decimal.NewFromInt(250), Type: calculations.TypeExpense, Date: month, CategoryID: &food.Data.ID})
	_ = suite.createTestTransaction(suite.T(), v1.TransactionEditable{Amount: decimal.NewFromInt(350), Type: calculations.TypeExpense, Date: month, CategoryID: &food.Data.ID})

	// Neither other categories nor other months count
	_ = suite.createTestTransaction(suite.T(), v1.TransactionEditable{Amount: decimal.NewFromInt(99), Type: calculations.TypeExpense, Date: month, CategoryID: &transport.Data.ID})
	_ = suite.createTestTransaction(suite.T(), v1.TransactionEditable{Amount: decimal.NewFromInt(77), Type: calculations.TypeExpense, Date: month.AddDate(0, -1, 0), CategoryID: &food.Data.ID})

	r := suite.request(suite.T(), http.MethodGet, "/v1/budgets/"+budget.Data.ID.String(), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var res v1.BudgetResponse
	test.DecodeResponse(suite.T(), &r, &res)

	stats := res.Data.Stats
	suite.Assert().True(decimal.NewFromInt(600).Equal(stats.Spent), stats.Spent.String())
	suite.Assert().True(decimal.NewFromInt(-100).Equal(stats.Remaining), stats.Remaining.String())
	suite.Assert().True(decimal.NewFromInt(120).Equal(stats.Percentage), stats.Percentage.String())
	suite.Assert().True(stats.IsOverBudget)
	suite.Assert().True(decimal.NewFromInt(100).Equal(stats.Overage), stats.Overage.String())
	suite.Assert().True(month.Equal(res.Data.Window.StartDate), res.Data.Window.StartDate.String())

	// The previous month window only sees the older transaction
	previous := month.AddDate(0, -1, 0).Format(time.DateOnly)
	r = suite.request(suite.T(), http.MethodGet, "/v1/budgets/"+budget.Data.ID.String()+"?date="+previous, nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &res)
	suite.Assert().True(decimal.NewFromInt(77).Equal(res.Data.Stats.Spent), res.Data.Stats.Spent.String())
	suite.Assert().False(res.Data.Stats.IsOverBudget)
}

func (suite *TestSuiteStandard) TestBudgetGetFilter() {
	food := suite.createTestCategory(suite.T(), v1.CategoryEditable{Name: "Food", Type: calculations.TypeExpense})
	transport := suite.createTestCategory(suite.T(), v1.CategoryEditable{Name: "Transport", Type: calculations.TypeExpense})
	_ = suite.createTestBudget(suite.T(), v1.BudgetEditable{CategoryID: food.Data.ID, Limit: decimal.NewFromInt(500), Period: calculations.PeriodMonthly})
	_ = suite.createTestBudget(suite.T(), v1.BudgetEditable{CategoryID: food.Data.ID, Limit: decimal.NewFromInt(50), Period: calculations.PeriodWeekly})
	_ = suite.createTestBudget(suite.T(), v1.BudgetEditable{CategoryID: transport.Data.ID, Limit: decimal.NewFromInt(200), Period: calculations.PeriodMonthly})

	tests := []struct {
		name   string
		query  string
		len    int
		status int
	}{
		{"All", "", 3, http.StatusOK},
		{"Monthly", "period=MONTHLY", 2, http.StatusOK},
		{"Category", "category=" + food.Data.ID.String(), 2, http.StatusOK},
		{"Category and period", "category=" + transport.Data.ID.String() + "&period=MONTHLY", 1, http.StatusOK},
		{"Limit", "limit=1", 1, http.StatusOK},
		{"Invalid period", "period=HOURLY", 0, http.StatusBadRequest},
		{"Invalid date", "date=tomorrow", 0, http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := suite.request(t, http.MethodGet, "/v1/budgets?"+tt.query, nil)
			test.AssertHTTPStatus(t, &r, tt.status)

			var res v1.BudgetListResponse
			test.DecodeResponse(t, &r, &res)
			assert.Len(t, res.Data, tt.len)
		})
	}
}

func (suite *TestSuiteStandard) TestBudgetAlerts() {
	food := suite.createTestCategory(suite.T(), v1.CategoryEditable{Name: "Food", Type: calculations.TypeExpense})
	transport := suite.createTestCategory(suite.T(), v1.CategoryEditable{Name: "Transport", Type: calculations.TypeExpense})
	fun := suite.createTestCategory(suite.T(), v1.CategoryEditable{Name: "Fun", Type: calculations.TypeExpense})

	over := suite.createTestBudget(suite.T(), v1.BudgetEditable{CategoryID: food.Data.ID, Limit: decimal.NewFromInt(100), Period: calculations.PeriodMonthly})
	atLimit := suite.createTestBudget(suite.T(), v1.BudgetEditable{CategoryID: transport.Data.ID, Limit: decimal.NewFromInt(100), Period: calculations.PeriodMonthly})
	_ = suite.createTestBudget(suite.T(), v1.BudgetEditable{CategoryID: fun.Data.ID, Limit: decimal.NewFromInt(100), Period: calculations.PeriodMonthly})

	// A budget that ended last year is ignored even though it is over its limit
	ended := thisMonth().AddDate(-1, 0, 0)
	_ = suite.createTestBudget(suite.T(), v1.BudgetEditable{CategoryID: food.Data.ID, Limit: decimal.NewFromInt(1), Period: calculations.PeriodMonthly, EndDate: &ended})

	month := thisMonth()
	_ = suite.createTestTransaction(suite.T(), v1.TransactionEditable{Amount: decimal.NewFromInt(150), Type: calculations.TypeExpense, Date: month, CategoryID: &food.Data.ID})
	_ = suite.createTestTransaction(suite.T(), v1.TransactionEditable{Amount: decimal.NewFromInt(100), Type: calculations.TypeExpense, Date: month, CategoryID: &transport.Data.ID})
	_ = suite.createTestTransaction(suite.T(), v1.TransactionEditable{Amount: decimal.NewFromInt(10), Type: calculations.TypeExpense, Date: month, CategoryID: &fun.Data.ID})

	r := suite.request(suite.T(), http.MethodGet, "/v1/budgets/alerts", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var res v1.BudgetAlertsResponse
	test.DecodeResponse(suite.T(), &r, &res)

	if suite.Assert().Len(res.Data.OverBudget, 1) {
		suite.Assert().Equal(over.Data.ID, res.Data.OverBudget[0].ID)
	}

	if suite.Assert().Len(res.Data.AtRisk, 1, "a budget spent exactly to the limit is at risk") {
		suite.Assert().Equal(atLimit.Data.ID, res.Data.AtRisk[0].ID)
		suite.Assert().False(res.Data.AtRisk[0].Stats.IsOverBudget)
	}
}

func (suite *TestSuiteStandard) TestBudgetUpdate() {
	food := suite.createTestCategory(suite.T(), v1.CategoryEditable{Name: "Food", Type: calculations.TypeExpense})
	budget := suite.createTestBudget(suite.T(), v1.BudgetEditable{CategoryID: food.Data.ID, Limit: decimal.NewFromInt(500), Period: calculations.PeriodMonthly})
	path := "/v1/budgets/" + budget.Data.ID.String()

	r := suite.request(suite.T(), http.MethodPatch, path, map[string]any{"limit": "650.25"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var res v1.BudgetResponse
	test.DecodeResponse(suite.T(), &r, &res)
	suite.Assert().True(decimal.RequireFromString("650.25").Equal(res.Data.Limit))
	suite.Assert().Equal(calculations.PeriodMonthly, res.Data.Period)

	r = suite.request(suite.T(), http.MethodPatch, path, map[string]any{"period": "FORTNIGHTLY"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	r = suite.request(suite.T(), http.MethodDelete, path, nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = suite.request(suite.T(), http.MethodGet, path, nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}
