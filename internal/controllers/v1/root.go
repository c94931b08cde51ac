package v1

import (
	"net/http"

	"github.com/finance-tracker/backend/internal/httputil"
	"github.com/finance-tracker/backend/internal/models"
	"github.com/gin-gonic/gin"
)

type Response struct {
	Links Links `json:"links"` // Links for the v1 API
}

type Links struct {
	Auth         string `json:"auth" example:"https://example.com/api/v1/auth"`                 // URL of the authentication endpoints
	Categories   string `json:"categories" example:"https://example.com/api/v1/categories"`     // URL of Category collection endpoint
	Transactions string `json:"transactions" example:"https://example.com/api/v1/transactions"` // URL of Transaction collection endpoint
	Budgets      string `json:"budgets" example:"https://example.com/api/v1/budgets"`           // URL of Budget collection endpoint
	Recurring    string `json:"recurring" example:"https://example.com/api/v1/recurring"`       // URL of Recurring Transaction collection endpoint
	Dashboard    string `json:"dashboard" example:"https://example.com/api/v1/dashboard"`       // URL of Dashboard endpoint
	MatchRules   string `json:"matchRules" example:"https://example.com/api/v1/match-rules"`    // URL of Match Rule collection endpoint
	Import       string `json:"import" example:"https://example.com/api/v1/import"`             // URL of import endpoint
	Export       string `json:"export" example:"https://example.com/api/v1/export"`             // URL of export endpoint
	Plaid        string `json:"plaid" example:"https://example.com/api/v1/plaid"`               // URL of bank connection endpoints
}

// GetRoot returns the link list for v1
//
//	@Summary		v1 API
//	@Description	Returns general information about the v1 API
//	@Tags			v1
//	@Success		200	{object}	Response
//	@Router			/v1 [get]
func (co Controller) GetRoot(c *gin.Context) {
	url := c.GetString(string(models.DBContextURL))

	c.JSON(http.StatusOK, Response{
		Links: Links{
			Auth:         url + "/v1/auth",
			Categories:   url + "/v1/categories",
			Transactions: url + "/v1/transactions",
			Budgets:      url + "/v1/budgets",
			Recurring:    url + "/v1/recurring",
			Dashboard:    url + "/v1/dashboard",
			MatchRules:   url + "/v1/match-rules",
			Import:       url + "/v1/import",
			Export:       url + "/v1/export",
			Plaid:        url + "/v1/plaid",
		},
	})
}

// OptionsRoot returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			v1
//	@Success		204
//	@Router			/v1 [options]
func OptionsRoot(c *gin.Context) {
	httputil.OptionsGet(c)
}
