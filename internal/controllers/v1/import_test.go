package v1_test

import (
	"net/http"
	"testing"

	"github.com/finance-tracker/backend/internal/calculations"
	v1 "github.com/finance-tracker/backend/internal/controllers/v1"
	"github.com/finance-tracker/backend/internal/models"
	"github.com/finance-tracker/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestImportOFX() {
	salary := suite.createTestCategory(suite.T(), v1.CategoryEditable{Name: "Salary", Type: calculations.TypeIncome})
	_ = suite.createTestMatchRule(suite.T(), v1.MatchRuleEditable{Match: "ACME*", CategoryID: salary.Data.ID})

	body, headers := test.LoadTestFile(suite.T(), "ofx/statement.ofx")
	r := suite.request(suite.T(), http.MethodPost, "/v1/import/ofx", body, headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var res v1.ImportResponse
	test.DecodeResponse(suite.T(), &r, &res)
	suite.Assert().Equal(2, res.Data.Created)
	suite.Assert().Equal(0, res.Data.Duplicates)

	if suite.Assert().Len(res.Data.Transactions, 2) {
		bakery := res.Data.Transactions[0]
		suite.Assert().True(decimal.RequireFromString("25.50").Equal(bakery.Amount))
		suite.Assert().Equal(calculations.TypeExpense, bakery.Type)
		suite.Assert().Equal(models.SourceOFX, bakery.Source)
		suite.Assert().NotEmpty(bakery.ExternalID)
		suite.Assert().Nil(bakery.Category)

		payroll := res.Data.Transactions[1]
		suite.Assert().Equal(calculations.TypeIncome, payroll.Type)
		if suite.Assert().NotNil(payroll.Category, "the match rule assigns the category") {
			suite.Assert().Equal(salary.Data.ID, payroll.Category.ID)
		}
	}

	// Importing the same statement again creates nothing
	body, headers = test.LoadTestFile(suite.T(), "ofx/statement.ofx")
	r = suite.request(suite.T(), http.MethodPost, "/v1/import/ofx", body, headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)
	test.DecodeResponse(suite.T(), &r, &res)
	suite.Assert().Equal(0, res.Data.Created)
	suite.Assert().Equal(2, res.Data.Duplicates)

	// An overlapping statement only adds the new line, once
	body, headers = test.LoadTestFile(suite.T(), "ofx/statement-overlap.ofx")
	r = suite.request(suite.T(), http.MethodPost, "/v1/import/ofx", body, headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)
	test.DecodeResponse(suite.T(), &r, &res)
	suite.Assert().Equal(1, res.Data.Created)
	suite.Assert().Equal(3, res.Data.Duplicates)

	r = suite.request(suite.T(), http.MethodGet, "/v1/transactions?source=ofx", nil)
	var list v1.TransactionListResponse
	test.DecodeResponse(suite.T(), &r, &list)
	suite.Assert().Len(list.Data, 3)

}

func (suite *TestSuiteStandard) TestImportOFXPreview() {
	salary := suite.createTestCategory(suite.T(), v1.CategoryEditable{Name: "Salary", Type: calculations.TypeIncome})
	rule := suite.createTestMatchRule(suite.T(), v1.MatchRuleEditable{Match: "ACME*", CategoryID: salary.Data.ID})

	body, headers := test.LoadTestFile(suite.T(), "ofx/statement.ofx")
	r := suite.request(suite.T(), http.MethodPost, "/v1/import/ofx-preview", body, headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var preview v1.ImportPreviewList
	test.DecodeResponse(suite.T(), &r, &preview)
	if suite.Assert().Len(preview.Data, 2) {
		suite.Assert().Equal("Corner Bakery", preview.Data[0].Name)
		suite.Assert().Nil(preview.Data[0].MatchRuleID)
		suite.Assert().Empty(preview.Data[0].DuplicateTransactionIDs)

		suite.Assert().Equal("ACME Payroll", preview.Data[1].Name)
		if suite.Assert().NotNil(preview.Data[1].MatchRuleID) {
			suite.Assert().Equal(rule.Data.ID, *preview.Data[1].MatchRuleID)
		}
		if suite.Assert().NotNil(preview.Data[1].Transaction.Category) {
			suite.Assert().Equal("Salary", preview.Data[1].Transaction.Category.Name)
		}
	}

	// The preview does not store anything
	r = suite.request(suite.T(), http.MethodGet, "/v1/transactions", nil)
	var list v1.TransactionListResponse
	test.DecodeResponse(suite.T(), &r, &list)
	suite.Assert().Len(list.Data, 0)

	// After the import, the preview reports the duplicates
	body, headers = test.LoadTestFile(suite.T(), "ofx/statement.ofx")
	r = suite.request(suite.T(), http.MethodPost, "/v1/import/ofx", body, headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	body, headers = test.LoadTestFile(suite.T(), "ofx/statement.ofx")
	r = suite.request(suite.T(), http.MethodPost, "/v1/import/ofx-preview", body, headers)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &preview)
	for _, p := range preview.Data {
		suite.Assert().Len(p.DuplicateTransactionIDs, 1, p.Name)
	}
}

func (suite *TestSuiteStandard) TestImportOFXErrors() {
	tests := []struct {
		name     string
		filename string
		content  string
		status   int
		err      string
	}{
		{"Wrong suffix", "statement.csv", "Date,Amount\n", http.StatusBadRequest, "this endpoint only supports files of the following types: .ofx, .qfx"},
		{"Not OFX", "statement.ofx", "this is not a statement", http.StatusBadRequest, ""},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			body, headers := test.MultipartFile(t, tt.filename, []byte(tt.content))
			r := suite.request(t, http.MethodPost, "/v1/import/ofx", body, headers)
			test.AssertHTTPStatus(t, &r, tt.status)

			var res v1.ImportResponse
			test.DecodeResponse(t, &r, &res)
			if assert.NotNil(t, res.Error) && tt.err != "" {
				assert.Equal(t, tt.err, *res.Error)
			}
		})
	}

	// No file at all
	r := suite.request(suite.T(), http.MethodPost, "/v1/import/ofx", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var res v1.ImportResponse
	test.DecodeResponse(suite.T(), &r, &res)
	suite.Assert().Equal("you must send a file to this endpoint", *res.Error)
}
