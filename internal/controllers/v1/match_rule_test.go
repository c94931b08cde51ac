package v1_test

import (
	"net/http"
	"testing"

	"github.com/finance-tracker/backend/internal/calculations"
	v1 "github.com/finance-tracker/backend/internal/controllers/v1"
	"github.com/finance-tracker/backend/internal/models"
	"github.com/finance-tracker/backend/test"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestMatchRuleCreate() {
	salary := suite.createTestCategory(suite.T(), v1.CategoryEditable{Name: "Salary", Type: calculations.TypeIncome})

	tests := []struct {
		name           string
		create         v1.MatchRuleEditable
		expectedError  string
		expectedStatus int
	}{
		{"Valid", v1.MatchRuleEditable{Match: "ACME*", CategoryID: salary.Data.ID}, "", http.StatusCreated},
		{"Trimmed", v1.MatchRuleEditable{Match: "  Payroll  ", Priority: 2, CategoryID: salary.Data.ID}, "", http.StatusCreated},
		{"Empty match", v1.MatchRuleEditable{Match: " ", CategoryID: salary.Data.ID}, models.ErrMatchRuleEmpty.Error(), http.StatusBadRequest},
		{"Unknown category", v1.MatchRuleEditable{Match: "Bakery", CategoryID: uuid.New()}, models.ErrUnknownCategory.Error(), http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			res := suite.createTestMatchRule(t, tt.create, tt.expectedStatus)
			if tt.expectedError != "" {
				if assert.NotNil(t, res.Error) {
					assert.Equal(t, tt.expectedError, *res.Error)
				}
				return
			}

			assert.NotContains(t, res.Data.Match, " ")
			if assert.NotNil(t, res.Data.Category) {
				assert.Equal(t, "Salary", res.Data.Category.Name)
			}
		})
	}
}

func (suite *TestSuiteStandard) TestMatchRuleGetFilter() {
	salary := suite.createTestCategory(suite.T(), v1.CategoryEditable{Name: "Salary", Type: calculations.TypeIncome})
	food := suite.createTestCategory(suite.T(), v1.CategoryEditable{Name: "Food", Type: calculations.TypeExpense})

	_ = suite.createTestMatchRule(suite.T(), v1.MatchRuleEditable{Match: "ACME*", Priority: 1, CategoryID: salary.Data.ID})
	_ = suite.createTestMatchRule(suite.T(), v1.MatchRuleEditable{Match: "*Bakery*", Priority: 2, CategoryID: food.Data.ID})
	_ = suite.createTestMatchRule(suite.T(), v1.MatchRuleEditable{Match: "*Market", Priority: 2, CategoryID: food.Data.ID})

	tests := []struct {
		name  string
		query string
		len   int
	}{
		{"All", "", 3},
		{"Priority", "priority=2", 2},
		{"Category", "category=" + salary.Data.ID.String(), 1},
		{"Match", "match=Bakery", 1},
		{"Limit", "limit=2", 2},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := suite.request(t, http.MethodGet, "/v1/match-rules?"+tt.query, nil)
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var res v1.MatchRuleListResponse
			test.DecodeResponse(t, &r, &res)
			assert.Len(t, res.Data, tt.len)
		})
	}

	// Rules are ordered by priority, then match
	r := suite.request(suite.T(), http.MethodGet, "/v1/match-rules", nil)
	var res v1.MatchRuleListResponse
	test.DecodeResponse(suite.T(), &r, &res)
	if suite.Assert().Len(res.Data, 3) {
		suite.Assert().Equal("ACME*", res.Data[0].Match)
		suite.Assert().Equal("*Bakery*", res.Data[1].Match)
		suite.Assert().Equal("*Market", res.Data[2].Match)
	}
}

func (suite *TestSuiteStandard) TestMatchRuleUpdate() {
	salary := suite.createTestCategory(suite.T(), v1.CategoryEditable{Name: "Salary", Type: calculations.TypeIncome})
	rule := suite.createTestMatchRule(suite.T(), v1.MatchRuleEditable{Match: "ACME*", CategoryID: salary.Data.ID})
	path := "/v1/match-rules/" + rule.Data.ID.String()

	r := suite.request(suite.T(), http.MethodPatch, path, map[string]any{"priority": 5})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var res v1.MatchRuleResponse
	test.DecodeResponse(suite.T(), &r, &res)
	suite.Assert().Equal(uint(5), res.Data.Priority)
	suite.Assert().Equal("ACME*", res.Data.Match)

	r = suite.request(suite.T(), http.MethodPatch, path, map[string]any{"match": ""})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	r = suite.request(suite.T(), http.MethodPatch, path, map[string]any{"categoryId": uuid.New()})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestMatchRuleDeletedWithCategory() {
	salary := suite.createTestCategory(suite.T(), v1.CategoryEditable{Name: "Salary", Type: calculations.TypeIncome})
	rule := suite.createTestMatchRule(suite.T(), v1.MatchRuleEditable{Match: "ACME*", CategoryID: salary.Data.ID})

	r := suite.request(suite.T(), http.MethodDelete, "/v1/categories/"+salary.Data.ID.String(), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = suite.request(suite.T(), http.MethodGet, "/v1/match-rules/"+rule.Data.ID.String(), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestMatchRuleDelete() {
	salary := suite.createTestCategory(suite.T(), v1.CategoryEditable{Name: "Salary", Type: calculations.TypeIncome})
	rule := suite.createTestMatchRule(suite.T(), v1.MatchRuleEditable{Match: "ACME*", CategoryID: salary.Data.ID})
	path := "/v1/match-rules/" + rule.Data.ID.String()

	r := suite.request(suite.T(), http.MethodDelete, path, nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = suite.request(suite.T(), http.MethodDelete, path, nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}
