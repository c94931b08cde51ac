package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/finance-tracker/backend/internal/calculations"
	v1 "github.com/finance-tracker/backend/internal/controllers/v1"
	"github.com/finance-tracker/backend/internal/models"
	"github.com/finance-tracker/backend/test"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestCategoryCreate() {
	tests := []struct {
		name           string
		create         []v1.CategoryEditable
		expectedErrors []string
		expectedStatus int
	}{
		{
			"All successful",
			[]v1.CategoryEditable{
				{Name: "Salary", Type: calculations.TypeIncome, Color: "#10B981"},
				{Name: "Food & Dining", Type: calculations.TypeExpense, Icon: "utensils"},
			},
			[]string{"", ""},
			http.StatusCreated,
		},
		{
			"Second fails",
			[]v1.CategoryEditable{
				{Name: "Transport", Type: calculations.TypeExpense},
				{Name: "Transport", Type: calculations.TypeExpense},
			},
			[]string{"", models.ErrCategoryNameNotUnique.Error()},
			http.StatusBadRequest,
		},
		{
			"Invalid type",
			[]v1.CategoryEditable{
				{Name: "Misc", Type: "TRANSFER"},
			},
			[]string{models.ErrInvalidTransactionType.Error()},
			http.StatusBadRequest,
		},
		{
			"Empty name",
			[]v1.CategoryEditable{
				{Name: "  ", Type: calculations.TypeExpense},
			},
			[]string{models.ErrCategoryNameEmpty.Error()},
			http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := suite.request(t, http.MethodPost, "/v1/categories", tt.create)
			test.AssertHTTPStatus(t, &r, tt.expectedStatus)

			var res v1.CategoryCreateResponse
			test.DecodeResponse(t, &r, &res)

			for i, c := range res.Data {
				if tt.expectedErrors[i] != "" {
					assert.Equal(t, tt.expectedErrors[i], *c.Error)
				} else {
					assert.Equal(t, fmt.Sprintf("%s/v1/categories/%s", apiURL, c.Data.ID), c.Data.Links.Self)
				}
			}
		})
	}
}

func (suite *TestSuiteStandard) TestCategoryGetFilter() {
	_ = suite.createTestCategory(suite.T(), v1.CategoryEditable{Name: "Salary", Type: calculations.TypeIncome})
	_ = suite.createTestCategory(suite.T(), v1.CategoryEditable{Name: "Food & Dining", Type: calculations.TypeExpense})
	_ = suite.createTestCategory(suite.T(), v1.CategoryEditable{Name: "Fast Food", Type: calculations.TypeExpense})

	tests := []struct {
		name  string
		query string
		len   int
		total int64
	}{
		{"All", "", 3, 3},
		{"Expenses", "type=EXPENSE", 2, 2},
		{"Income", "type=INCOME", 1, 1},
		{"Search", "search=Food", 2, 2},
		{"Exact name", "name=Salary", 1, 1},
		{"Limit", "limit=1", 1, 3},
		{"Offset", "offset=2", 1, 3},
		{"Filter with limit", "type=EXPENSE&limit=1", 1, 2},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := suite.request(t, http.MethodGet, fmt.Sprintf("/v1/categories?%s", tt.query), nil)
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var res v1.CategoryListResponse
			test.DecodeResponse(t, &r, &res)
			assert.Len(t, res.Data, tt.len)
			assert.Equal(t, tt.total, res.Pagination.Total, "total counts all matches regardless of limit and offset")
		})
	}

	r := suite.request(suite.T(), http.MethodGet, "/v1/categories?type=TRANSFER", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestCategoryUpdate() {
	category := suite.createTestCategory(suite.T(), v1.CategoryEditable{Name: "Food", Type: calculations.TypeExpense, Color: "#F59E0B"})
	path := "/v1/categories/" + category.Data.ID.String()

	r := suite.request(suite.T(), http.MethodPatch, path, map[string]any{"name": "Food & Dining"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var res v1.CategoryResponse
	test.DecodeResponse(suite.T(), &r, &res)
	suite.Assert().Equal("Food & Dining", res.Data.Name)
	suite.Assert().Equal("#F59E0B", res.Data.Color, "fields not in the body must be kept")

	// Sending the same type is fine, changing it is not
	r = suite.request(suite.T(), http.MethodPatch, path, map[string]any{"type": "EXPENSE"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	r = suite.request(suite.T(), http.MethodPatch, path, map[string]any{"type": "INCOME"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
	test.DecodeResponse(suite.T(), &r, &res)
	suite.Assert().Equal(models.ErrCategoryTypeNotChangable.Error(), *res.Error)

	r = suite.request(suite.T(), http.MethodPatch, path, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestCategoryDelete() {
	category := suite.createTestCategory(suite.T(), v1.CategoryEditable{Name: "Food", Type: calculations.TypeExpense})
	transaction := suite.createTestTransaction(suite.T(), v1.TransactionEditable{
		Amount:     decimal.NewFromInt(20),
		Type:       calculations.TypeExpense,
		Date:       thisMonth(),
		CategoryID: &category.Data.ID,
	})
	_ = suite.createTestBudget(suite.T(), v1.BudgetEditable{CategoryID: category.Data.ID, Limit: decimal.NewFromInt(100), Period: calculations.PeriodMonthly})

	r := suite.request(suite.T(), http.MethodDelete, "/v1/categories/"+category.Data.ID.String(), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	// The transaction is kept without a category
	r = suite.request(suite.T(), http.MethodGet, "/v1/transactions/"+transaction.Data.ID.String(), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var tr v1.TransactionResponse
	test.DecodeResponse(suite.T(), &r, &tr)
	suite.Assert().Nil(tr.Data.CategoryID)
	suite.Assert().Nil(tr.Data.Category)

	// The budget is deleted with the category
	r = suite.request(suite.T(), http.MethodGet, "/v1/budgets", nil)
	var br v1.BudgetListResponse
	test.DecodeResponse(suite.T(), &r, &br)
	suite.Assert().Len(br.Data, 0)
}

func (suite *TestSuiteStandard) TestCategoryDetailErrors() {
	tests := []struct {
		name   string
		method string
		id     string
		status int
	}{
		{"Get not found", http.MethodGet, uuid.New().String(), http.StatusNotFound},
		{"Get invalid ID", http.MethodGet, "not-a-uuid", http.StatusBadRequest},
		{"Delete not found", http.MethodDelete, uuid.New().String(), http.StatusNotFound},
		{"Options not found", http.MethodOptions, uuid.New().String(), http.StatusNotFound},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := suite.request(t, tt.method, "/v1/categories/"+tt.id, nil)
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestCategoryOptions() {
	category := suite.createTestCategory(suite.T(), v1.CategoryEditable{Name: "Food", Type: calculations.TypeExpense})

	r := suite.request(suite.T(), http.MethodOptions, "/v1/categories/"+category.Data.ID.String(), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	suite.Assert().Equal("OPTIONS, GET, PATCH, DELETE", r.Header().Get("allow"))

	r = suite.request(suite.T(), http.MethodOptions, "/v1/categories", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	suite.Assert().Equal("OPTIONS, GET, POST", r.Header().Get("allow"))
}
