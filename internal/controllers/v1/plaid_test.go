package v1_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/finance-tracker/backend/internal/calculations"
	v1 "github.com/finance-tracker/backend/internal/controllers/v1"
	"github.com/finance-tracker/backend/internal/models"
	"github.com/finance-tracker/backend/internal/plaid"
	"github.com/finance-tracker/backend/test"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// linkTestItem links a bank connection through the mocked Plaid API.
func (suite *TestSuiteStandard) linkTestItem(itemID, accessToken string) v1.PlaidItemResponse {
	suite.plaid.Item = plaid.Item{ItemID: itemID, AccessToken: accessToken}

	r := suite.request(suite.T(), http.MethodPost, "/v1/plaid/exchange-token", v1.ExchangeTokenRequest{
		PublicToken:     "public-sandbox-token",
		InstitutionID:   "ins_109508",
		InstitutionName: "First Platypus Bank",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var res v1.PlaidItemResponse
	test.DecodeResponse(suite.T(), &r, &res)
	return res
}

func (suite *TestSuiteStandard) TestPlaidNotConfigured() {
	suite.controller.Plaid = nil

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/v1/plaid/link-token"},
		{http.MethodPost, "/v1/plaid/exchange-token"},
		{http.MethodPost, "/v1/plaid/sync"},
		{http.MethodGet, "/v1/plaid/items"},
		{http.MethodPost, "/v1/plaid/webhook"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.method+tt.path, func(t *testing.T) {
			r := suite.request(t, tt.method, tt.path, nil)
			test.AssertHTTPStatus(t, &r, http.StatusNotImplemented)

			var res struct{ Error string }
			test.DecodeResponse(t, &r, &res)
			assert.Equal(t, plaid.ErrNotConfigured.Error(), res.Error)
		})
	}
}

func (suite *TestSuiteStandard) TestPlaidLinkToken() {
	suite.plaid.LinkToken = "link-sandbox-123"

	r := suite.request(suite.T(), http.MethodPost, "/v1/plaid/link-token", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var res v1.LinkTokenResponse
	test.DecodeResponse(suite.T(), &r, &res)
	suite.Assert().Equal("link-sandbox-123", res.Data.LinkToken)

	suite.plaid.Err = errors.New("INVALID_API_KEYS")
	r = suite.request(suite.T(), http.MethodPost, "/v1/plaid/link-token", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	r = suite.requestAs(suite.T(), "", http.MethodPost, "/v1/plaid/link-token", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusUnauthorized)
}

func (suite *TestSuiteStandard) TestPlaidExchangeToken() {
	item := suite.linkTestItem("item-1", "access-sandbox-1")
	suite.Assert().Equal("item-1", item.Data.ItemID)
	suite.Assert().Equal("First Platypus Bank", item.Data.InstitutionName)
	suite.Assert().Nil(item.Data.LastSync)

	// The same item cannot be linked twice
	r := suite.request(suite.T(), http.MethodPost, "/v1/plaid/exchange-token", v1.ExchangeTokenRequest{PublicToken: "public-sandbox-token"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var res v1.PlaidItemResponse
	test.DecodeResponse(suite.T(), &r, &res)
	suite.Assert().Equal(models.ErrPlaidItemNotUnique.Error(), *res.Error)

	r = suite.request(suite.T(), http.MethodPost, "/v1/plaid/exchange-token", map[string]string{})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestPlaidItems() {
	item := suite.linkTestItem("item-1", "access-sandbox-1")
	_ = suite.linkTestItem("item-2", "access-sandbox-2")

	r := suite.request(suite.T(), http.MethodGet, "/v1/plaid/items", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	suite.Assert().NotContains(r.Body.String(), "access-sandbox", "access tokens must never be returned")

	var list v1.PlaidItemListResponse
	test.DecodeResponse(suite.T(), &r, &list)
	suite.Assert().Len(list.Data, 2)

	// Other users do not see the items
	_, token := suite.createTestUser("other@example.com")
	r = suite.requestAs(suite.T(), token, http.MethodGet, "/v1/plaid/items", nil)
	test.DecodeResponse(suite.T(), &r, &list)
	suite.Assert().Len(list.Data, 0)

	path := "/v1/plaid/items/" + item.Data.ID.String()
	r = suite.requestAs(suite.T(), token, http.MethodDelete, path, nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	r = suite.request(suite.T(), http.MethodOptions, path, nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	suite.Assert().Equal("OPTIONS, DELETE", r.Header().Get("allow"))

	r = suite.request(suite.T(), http.MethodDelete, path, nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = suite.request(suite.T(), http.MethodGet, "/v1/plaid/items", nil)
	test.DecodeResponse(suite.T(), &r, &list)
	suite.Assert().Len(list.Data, 1)
}

func (suite *TestSuiteStandard) TestPlaidSync() {
	food := suite.createTestCategory(suite.T(), v1.CategoryEditable{Name: "Food", Type: calculations.TypeExpense})
	_ = suite.createTestMatchRule(suite.T(), v1.MatchRuleEditable{Match: "Corner*", CategoryID: food.Data.ID})
	_ = suite.linkTestItem("item-1", "access-sandbox-1")

	date := time.Now().In(time.UTC).AddDate(0, 0, -2).Truncate(24 * time.Hour)
	suite.plaid.TransactionsByKey = map[string][]plaid.Transaction{
		"access-sandbox-1": {
			{TransactionID: "tx-1", Amount: decimal.RequireFromString("12.40"), Type: calculations.TypeExpense, Date: date, MerchantName: "Corner Bakery", Pending: true},
			{TransactionID: "tx-2", Amount: decimal.NewFromInt(2500), Type: calculations.TypeIncome, Date: date, MerchantName: "ACME", PrimaryCategory: "INCOME"},
		},
	}

	r := suite.request(suite.T(), http.MethodPost, "/v1/plaid/sync", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var res v1.PlaidSyncResponse
	test.DecodeResponse(suite.T(), &r, &res)
	suite.Assert().Equal(2, res.Data.Created)
	suite.Assert().Equal(0, res.Data.Updated)
	if suite.Assert().Len(res.Data.Items, 1) {
		suite.Assert().NotNil(res.Data.Items[0].LastSync)
	}

	r = suite.request(suite.T(), http.MethodGet, "/v1/transactions?source=plaid&sortBy=amount&sortOrder=asc", nil)
	var list v1.TransactionListResponse
	test.DecodeResponse(suite.T(), &r, &list)
	if suite.Assert().Len(list.Data, 2) {
		bakery := list.Data[0]
		suite.Assert().Equal("tx-1", bakery.ExternalID)
		suite.Assert().True(bakery.Pending)
		if suite.Assert().NotNil(bakery.Category, "match rules apply to synchronized transactions") {
			suite.Assert().Equal(food.Data.ID, bakery.Category.ID)
		}
		suite.Assert().Equal("ACME (INCOME)", list.Data[1].Note)
	}

	// The bank books the pending transaction, nothing is duplicated
	suite.plaid.TransactionsByKey["access-sandbox-1"][0].Pending = false

	r = suite.request(suite.T(), http.MethodPost, "/v1/plaid/sync", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	test.DecodeResponse(suite.T(), &r, &res)
	suite.Assert().Equal(0, res.Data.Created)
	suite.Assert().Equal(2, res.Data.Updated)

	r = suite.request(suite.T(), http.MethodGet, "/v1/transactions?source=plaid&sortBy=amount&sortOrder=asc", nil)
	test.DecodeResponse(suite.T(), &r, &list)
	if suite.Assert().Len(list.Data, 2) {
		suite.Assert().False(list.Data[0].Pending)
	}
}

func (suite *TestSuiteStandard) TestPlaidSyncError() {
	_ = suite.linkTestItem("item-1", "access-sandbox-1")
	suite.plaid.Err = errors.New("ITEM_LOGIN_REQUIRED")

	r := suite.request(suite.T(), http.MethodPost, "/v1/plaid/sync", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestPlaidWebhook() {
	_ = suite.linkTestItem("item-1", "access-sandbox-1")
	suite.plaid.TransactionsByKey = map[string][]plaid.Transaction{
		"access-sandbox-1": {
			{TransactionID: "tx-1", Amount: decimal.NewFromInt(20), Type: calculations.TypeExpense, Date: time.Now().In(time.UTC).AddDate(0, 0, -1), MerchantName: "Kiosk"},
		},
	}

	tests := []struct {
		name     string
		webhook  v1.PlaidWebhook
		synced   bool
		requests int
	}{
		{"Other type", v1.PlaidWebhook{WebhookType: "ITEM", WebhookCode: "ERROR", ItemID: "item-1"}, false, 0},
		{"Unknown item", v1.PlaidWebhook{WebhookType: "TRANSACTIONS", WebhookCode: "DEFAULT_UPDATE", ItemID: "item-unknown"}, false, 0},
		{"Known item", v1.PlaidWebhook{WebhookType: "TRANSACTIONS", WebhookCode: "DEFAULT_UPDATE", ItemID: "item-1"}, true, 1},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			suite.plaid.Requests = nil

			// Webhooks are sent by Plaid without user authentication
			r := suite.requestAs(t, "", http.MethodPost, "/v1/plaid/webhook", tt.webhook)
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var res v1.PlaidWebhookResponse
			test.DecodeResponse(t, &r, &res)
			assert.Len(t, suite.plaid.Requests, tt.requests)

			if tt.synced {
				if assert.NotNil(t, res.Data) {
					assert.Equal(t, 1, res.Data.Created)
				}
			} else {
				assert.Nil(t, res.Data)
			}
		})
	}
}
