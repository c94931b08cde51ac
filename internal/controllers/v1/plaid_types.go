package v1

import (
	"fmt"
	"time"

	"github.com/finance-tracker/backend/internal/models"
	"github.com/finance-tracker/backend/internal/plaid"
	"github.com/gin-gonic/gin"
)

type LinkToken struct {
	LinkToken string `json:"linkToken" example:"link-sandbox-af1a0311-da53-4636-b754-dd15cc058176"` // Token to initialize Plaid Link with
}

type LinkTokenResponse struct {
	Error *string    `json:"error" example:"bank synchronization is not configured on this server"` // The error, if any occurred
	Data  *LinkToken `json:"data"`                                                                  // The link token
}

// ExchangeTokenRequest is sent after the user finished Plaid Link.
type ExchangeTokenRequest struct {
	PublicToken     string `json:"publicToken" binding:"required" example:"public-sandbox-b0e2c4ee-a763-4df5-bfe9-46a46bce993d"` // Public token returned by Plaid Link
	InstitutionID   string `json:"institutionId" example:"ins_109508"`                                                           // ID of the institution
	InstitutionName string `json:"institutionName" example:"First Platypus Bank"`                                                // Name of the institution
}

type PlaidItemLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/plaid/items/b2b4f1c4-6e3b-4a1d-8f3e-1c2d3e4f5a6b"` // The bank connection itself
}

// PlaidItem is the API representation of a bank connection. The access
// token never leaves the server.
type PlaidItem struct {
	models.DefaultModel
	ItemID          string         `json:"itemId" example:"eVBnVMp7zdTJLkRNr33Rs6zr7KNJqBFL9DrE6"` // ID of the item at Plaid
	InstitutionID   string         `json:"institutionId" example:"ins_109508"`                     // ID of the institution
	InstitutionName string         `json:"institutionName" example:"First Platypus Bank"`          // Name of the institution
	LastSync        *time.Time     `json:"lastSync" example:"2024-03-15T08:00:00Z"`                // Time of the last synchronization
	Links           PlaidItemLinks `json:"links"`
}

func newPlaidItem(c *gin.Context, model models.PlaidItem) PlaidItem {
	url := c.GetString(string(models.DBContextURL))

	return PlaidItem{
		DefaultModel:    model.DefaultModel,
		ItemID:          model.ItemID,
		InstitutionID:   model.InstitutionID,
		InstitutionName: model.InstitutionName,
		LastSync:        model.LastSync,
		Links: PlaidItemLinks{
			Self: fmt.Sprintf("%s/v1/plaid/items/%s", url, model.ID),
		},
	}
}

type PlaidItemResponse struct {
	Error *string    `json:"error" example:"this bank connection has already been linked"` // The error, if any occurred
	Data  *PlaidItem `json:"data"`                                                         // The bank connection
}

type PlaidItemListResponse struct {
	Error *string     `json:"error" example:"bank synchronization is not configured on this server"` // The error, if any occurred
	Data  []PlaidItem `json:"data"`                                                                  // List of bank connections
}

// PlaidSync is the result of synchronizing all bank connections.
type PlaidSync struct {
	plaid.SyncResult
	Items []PlaidItem `json:"items"` // The synchronized bank connections
}

type PlaidSyncResponse struct {
	Error *string    `json:"error" example:"bank synchronization is not configured on this server"` // The error, if any occurred
	Data  *PlaidSync `json:"data"`                                                                  // The result of the synchronization
}

// PlaidWebhook contains the fields of a Plaid webhook that are evaluated.
type PlaidWebhook struct {
	WebhookType string `json:"webhook_type" example:"TRANSACTIONS"`                     // Type of the webhook
	WebhookCode string `json:"webhook_code" example:"DEFAULT_UPDATE"`                   // Code of the webhook
	ItemID      string `json:"item_id" example:"eVBnVMp7zdTJLkRNr33Rs6zr7KNJqBFL9DrE6"` // The item the webhook is about
}

type PlaidWebhookResponse struct {
	Error *string           `json:"error" example:"bank synchronization is not configured on this server"` // The error, if any occurred
	Data  *plaid.SyncResult `json:"data"`                                                                  // The result of the synchronization, if one was triggered
}
