package v1_test

import (
	"net/http"
	"testing"

	"github.com/finance-tracker/backend/internal/calculations"
	v1 "github.com/finance-tracker/backend/internal/controllers/v1"
	"github.com/finance-tracker/backend/internal/models"
	"github.com/finance-tracker/backend/test"
	"github.com/stretchr/testify/assert"
)

// TestDatabaseClosed verifies that closed database connections are reported
// with a general error instead of leaking the database error.
func (suite *TestSuiteStandard) TestDatabaseClosed() {
	suite.CloseDB()

	tests := []struct {
		method string
		path   string
		body   any
	}{
		{http.MethodGet, "/v1/categories", nil},
		{http.MethodPost, "/v1/categories", []v1.CategoryEditable{{Name: "Food", Type: calculations.TypeExpense}}},
		{http.MethodGet, "/v1/transactions", nil},
		{http.MethodGet, "/v1/budgets", nil},
		{http.MethodGet, "/v1/budgets/alerts", nil},
		{http.MethodGet, "/v1/recurring", nil},
		{http.MethodGet, "/v1/match-rules", nil},
		{http.MethodGet, "/v1/dashboard/summary", nil},
		{http.MethodGet, "/v1/dashboard/charts", nil},
		{http.MethodGet, "/v1/export/transactions", nil},
		{http.MethodGet, "/v1/plaid/items", nil},
	}

	for _, tt := range tests {
		suite.T().Run(tt.method+tt.path, func(t *testing.T) {
			r := suite.request(t, tt.method, tt.path, tt.body)
			test.AssertHTTPStatus(t, &r, http.StatusInternalServerError)
			assert.Contains(t, r.Body.String(), models.ErrGeneral.Error())
		})
	}
}
