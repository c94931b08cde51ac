package v1_test

import (
	"net/http"
	"testing"

	"github.com/finance-tracker/backend/internal/auth"
	v1 "github.com/finance-tracker/backend/internal/controllers/v1"
	"github.com/finance-tracker/backend/internal/models"
	"github.com/finance-tracker/backend/test"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestAuthSignup() {
	tests := []struct {
		name           string
		request        v1.SignupRequest
		expectedStatus int
		expectedError  string
	}{
		{"Success", v1.SignupRequest{Email: "Jane@Example.com", Name: "Jane", Password: "Sup3rSecret", ConfirmPassword: "Sup3rSecret"}, http.StatusCreated, ""},
		{"Passwords differ", v1.SignupRequest{Email: "jane@example.com", Password: "Sup3rSecret", ConfirmPassword: "Sup3rSecreT"}, http.StatusBadRequest, auth.ErrPasswordMismatch.Error()},
		{"Weak password", v1.SignupRequest{Email: "jane@example.com", Password: "password", ConfirmPassword: "password"}, http.StatusBadRequest, auth.ErrWeakPassword.Error()},
		{"Invalid email", v1.SignupRequest{Email: "not-an-email", Password: "Sup3rSecret", ConfirmPassword: "Sup3rSecret"}, http.StatusBadRequest, "invalid email format"},
		{"Email in use", v1.SignupRequest{Email: "test@example.com", Password: "Sup3rSecret", ConfirmPassword: "Sup3rSecret"}, http.StatusBadRequest, models.ErrEmailInUse.Error()},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := suite.requestAs(t, "", http.MethodPost, "/v1/auth/signup", tt.request)
			test.AssertHTTPStatus(t, &r, tt.expectedStatus)

			var res v1.SessionResponse
			test.DecodeResponse(t, &r, &res)

			if tt.expectedError != "" {
				assert.Equal(t, tt.expectedError, *res.Error)
				return
			}

			assert.NotEmpty(t, res.Data.Token)
			assert.Equal(t, "jane@example.com", res.Data.User.Email)

			// The token authenticates the new user
			r = suite.requestAs(t, res.Data.Token, http.MethodGet, "/v1/auth/me", nil)
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var me v1.UserResponse
			test.DecodeResponse(t, &r, &me)
			assert.Equal(t, res.Data.User.ID, me.Data.ID)
		})
	}
}

func (suite *TestSuiteStandard) TestAuthSignupRequirements() {
	r := suite.requestAs(suite.T(), "", http.MethodPost, "/v1/auth/signup", v1.SignupRequest{Email: "jane@example.com", Password: "short", ConfirmPassword: "short"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var res v1.SessionResponse
	test.DecodeResponse(suite.T(), &r, &res)
	suite.Assert().Equal(auth.PasswordRequirements("short"), res.Requirements)
}

func (suite *TestSuiteStandard) TestAuthLogin() {
	tests := []struct {
		name           string
		request        v1.LoginRequest
		expectedStatus int
	}{
		{"Success", v1.LoginRequest{Email: "test@example.com", Password: "Sup3rSecret"}, http.StatusOK},
		{"Email is case insensitive", v1.LoginRequest{Email: " TEST@example.com", Password: "Sup3rSecret"}, http.StatusOK},
		{"Wrong password", v1.LoginRequest{Email: "test@example.com", Password: "wrong"}, http.StatusUnauthorized},
		{"Unknown user", v1.LoginRequest{Email: "nobody@example.com", Password: "Sup3rSecret"}, http.StatusUnauthorized},
		{"Missing password", v1.LoginRequest{Email: "test@example.com"}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := suite.requestAs(t, "", http.MethodPost, "/v1/auth/login", tt.request)
			test.AssertHTTPStatus(t, &r, tt.expectedStatus)

			var res v1.SessionResponse
			test.DecodeResponse(t, &r, &res)

			if tt.expectedStatus == http.StatusOK {
				assert.Equal(t, suite.user.ID, res.Data.User.ID)
			} else {
				assert.NotNil(t, res.Error)
			}
		})
	}
}

func (suite *TestSuiteStandard) TestAuthRequired() {
	tests := []struct {
		name  string
		token string
	}{
		{"No token", ""},
		{"Invalid token", "not-a-token"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			for _, path := range []string{"/v1/auth/me", "/v1/categories", "/v1/transactions", "/v1/budgets", "/v1/dashboard/summary"} {
				r := suite.requestAs(t, tt.token, http.MethodGet, path, nil)
				test.AssertHTTPStatus(t, &r, http.StatusUnauthorized)
			}
		})
	}
}

func (suite *TestSuiteStandard) TestAuthUsersAreIsolated() {
	category := suite.createTestCategory(suite.T(), v1.CategoryEditable{Name: "Groceries", Type: "EXPENSE"})

	_, token := suite.createTestUser("other@example.com")

	r := suite.requestAs(suite.T(), token, http.MethodGet, "/v1/categories/"+category.Data.ID.String(), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	r = suite.requestAs(suite.T(), token, http.MethodGet, "/v1/categories", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var list v1.CategoryListResponse
	test.DecodeResponse(suite.T(), &r, &list)
	suite.Assert().Len(list.Data, 0)
}
