package v1

import (
	"errors"
	"math"
	"net/http"
	"time"

	"github.com/finance-tracker/backend/internal/auth"
	"github.com/finance-tracker/backend/internal/httputil"
	"github.com/finance-tracker/backend/internal/models"
	"github.com/finance-tracker/backend/internal/plaid"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// RegisterPlaidRoutes registers the authenticated routes for bank
// synchronization with the RouterGroup that is passed.
func (co Controller) RegisterPlaidRoutes(r *gin.RouterGroup) {
	r.Use(co.requirePlaid)

	r.OPTIONS("/link-token", OptionsPost)
	r.POST("/link-token", co.CreateLinkToken)
	r.OPTIONS("/exchange-token", OptionsPost)
	r.POST("/exchange-token", co.ExchangePublicToken)
	r.OPTIONS("/sync", OptionsPost)
	r.POST("/sync", co.SyncPlaidItems)

	r.OPTIONS("/items", OptionsGet)
	r.GET("/items", co.GetPlaidItems)
	r.OPTIONS("/items/:id", co.OptionsPlaidItemDetail)
	r.DELETE("/items/:id", co.DeletePlaidItem)
}

// RegisterPlaidWebhookRoutes registers the unauthenticated webhook
// receiver with the RouterGroup that is passed.
func (co Controller) RegisterPlaidWebhookRoutes(r *gin.RouterGroup) {
	r.Use(co.requirePlaid)

	r.OPTIONS("", OptionsPost)
	r.POST("", co.PlaidWebhook)
}

// requirePlaid aborts with 501 Not Implemented when no Plaid client is configured.
func (co Controller) requirePlaid(c *gin.Context) {
	if co.Plaid == nil {
		c.AbortWithStatusJSON(status(plaid.ErrNotConfigured), httpError{Error: plaid.ErrNotConfigured.Error()})
		return
	}
	c.Next()
}

// syncDays returns the number of days to fetch for an item. Items that were
// synced before are fetched since the last sync plus the overlap.
func (co Controller) syncDays(item models.PlaidItem) int {
	if item.LastSync == nil {
		return co.Config.Plaid.SyncDays
	}

	since := time.Since(*item.LastSync).Hours() / 24
	return int(math.Ceil(math.Max(since, 0))) + co.Config.Plaid.SyncDays
}

// @Summary		Create link token
// @Description	Creates a token to initialize Plaid Link with for the authenticated user
// @Tags			Plaid
// @Produce		json
// @Success		201	{object}	LinkTokenResponse
// @Failure		400	{object}	LinkTokenResponse
// @Failure		501	{object}	LinkTokenResponse
// @Router			/v1/plaid/link-token [post]
func (co Controller) CreateLinkToken(c *gin.Context) {
	token, err := co.Plaid.CreateLinkToken(c.Request.Context(), auth.UserID(c).String())
	if err != nil {
		s := err.Error()
		c.JSON(status(err), LinkTokenResponse{Error: &s})
		return
	}

	c.JSON(http.StatusCreated, LinkTokenResponse{Data: &LinkToken{LinkToken: token}})
}

// @Summary		Exchange public token
// @Description	Exchanges the public token from Plaid Link and stores the bank connection
// @Tags			Plaid
// @Accept			json
// @Produce		json
// @Success		201		{object}	PlaidItemResponse
// @Failure		400		{object}	PlaidItemResponse
// @Failure		500		{object}	PlaidItemResponse
// @Failure		501		{object}	PlaidItemResponse
// @Param			token	body		ExchangeTokenRequest	true	"Public token"
// @Router			/v1/plaid/exchange-token [post]
func (co Controller) ExchangePublicToken(c *gin.Context) {
	var request ExchangeTokenRequest
	err := httputil.BindData(c, &request)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PlaidItemResponse{Error: &s})
		return
	}

	exchanged, err := co.Plaid.ExchangePublicToken(c.Request.Context(), request.PublicToken)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PlaidItemResponse{Error: &s})
		return
	}

	item := models.PlaidItem{
		UserID:          auth.UserID(c),
		ItemID:          exchanged.ItemID,
		AccessToken:     exchanged.AccessToken,
		InstitutionID:   request.InstitutionID,
		InstitutionName: request.InstitutionName,
	}

	err = co.db(c).Create(&item).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PlaidItemResponse{Error: &s})
		return
	}

	data := newPlaidItem(c, item)
	c.JSON(http.StatusCreated, PlaidItemResponse{Data: &data})
}

// @Summary		Get bank connections
// @Description	Returns the bank connections of the authenticated user
// @Tags			Plaid
// @Produce		json
// @Success		200	{object}	PlaidItemListResponse
// @Failure		500	{object}	PlaidItemListResponse
// @Failure		501	{object}	PlaidItemListResponse
// @Router			/v1/plaid/items [get]
func (co Controller) GetPlaidItems(c *gin.Context) {
	items, err := co.plaidItems(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PlaidItemListResponse{Error: &s})
		return
	}

	data := make([]PlaidItem, 0, len(items))
	for _, item := range items {
		data = append(data, newPlaidItem(c, item))
	}

	c.JSON(http.StatusOK, PlaidItemListResponse{Data: data})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Plaid
// @Success		204
// @Failure		400	{object}	httputil.HTTPError
// @Failure		404	{object}	httputil.HTTPError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/plaid/items/{id} [options]
func (co Controller) OptionsPlaidItemDetail(c *gin.Context) {
	_, err := getResource[models.PlaidItem](co, c)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsDelete(c)
}

// @Summary		Delete bank connection
// @Description	Deletes a bank connection. Transactions synchronized from it are kept.
// @Tags			Plaid
// @Success		204
// @Failure		400	{object}	httputil.HTTPError
// @Failure		404	{object}	httputil.HTTPError
// @Failure		500	{object}	httputil.HTTPError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/plaid/items/{id} [delete]
func (co Controller) DeletePlaidItem(c *gin.Context) {
	deleteResource[models.PlaidItem](co, c)
}

// @Summary		Synchronize
// @Description	Fetches the transactions of all bank connections since their last synchronization and stores them
// @Tags			Plaid
// @Produce		json
// @Success		200	{object}	PlaidSyncResponse
// @Failure		400	{object}	PlaidSyncResponse
// @Failure		500	{object}	PlaidSyncResponse
// @Failure		501	{object}	PlaidSyncResponse
// @Router			/v1/plaid/sync [post]
func (co Controller) SyncPlaidItems(c *gin.Context) {
	items, err := co.plaidItems(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PlaidSyncResponse{Error: &s})
		return
	}

	result := PlaidSync{Items: make([]PlaidItem, 0, len(items))}
	for i := range items {
		r, err := plaid.Sync(c.Request.Context(), co.db(c), co.Plaid, &items[i], co.syncDays(items[i]))
		if err != nil {
			s := err.Error()
			c.JSON(status(err), PlaidSyncResponse{Error: &s})
			return
		}

		result.Add(r)
		result.Items = append(result.Items, newPlaidItem(c, items[i]))
	}

	c.JSON(http.StatusOK, PlaidSyncResponse{Data: &result})
}

// @Summary		Plaid webhook
// @Description	Receives webhooks from Plaid. TRANSACTIONS webhooks for known items trigger a synchronization of the item, all other webhooks are acknowledged.
// @Tags			Plaid
// @Accept			json
// @Produce		json
// @Success		200		{object}	PlaidWebhookResponse
// @Failure		400		{object}	PlaidWebhookResponse
// @Failure		500		{object}	PlaidWebhookResponse
// @Failure		501		{object}	PlaidWebhookResponse
// @Param			webhook	body		PlaidWebhook	true	"Webhook"
// @Router			/v1/plaid/webhook [post]
func (co Controller) PlaidWebhook(c *gin.Context) {
	var webhook PlaidWebhook
	err := httputil.BindData(c, &webhook)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), PlaidWebhookResponse{Error: &s})
		return
	}

	logger := log.With().Str("type", webhook.WebhookType).Str("code", webhook.WebhookCode).Str("item", webhook.ItemID).Logger()

	if webhook.WebhookType != "TRANSACTIONS" {
		logger.Debug().Msg("Plaid webhook ignored")
		c.JSON(http.StatusOK, PlaidWebhookResponse{})
		return
	}

	var item models.PlaidItem
	err = co.db(c).Where("item_id = ?", webhook.ItemID).First(&item).Error
	if errors.Is(err, models.ErrResourceNotFound) || errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Warn().Msg("Plaid webhook for unknown item")
		c.JSON(http.StatusOK, PlaidWebhookResponse{})
		return
	} else if err != nil {
		s := err.Error()
		c.JSON(status(err), PlaidWebhookResponse{Error: &s})
		return
	}

	result, err := plaid.Sync(c.Request.Context(), co.db(c), co.Plaid, &item, co.syncDays(item))
	if err != nil {
		logger.Error().Err(err).Msg("Plaid webhook sync")
		s := err.Error()
		c.JSON(status(err), PlaidWebhookResponse{Error: &s})
		return
	}

	c.JSON(http.StatusOK, PlaidWebhookResponse{Data: &result})
}

// plaidItems loads the bank connections of the user.
func (co Controller) plaidItems(c *gin.Context) ([]models.PlaidItem, error) {
	var items []models.PlaidItem
	err := co.db(c).
		Where("user_id = ?", auth.UserID(c)).
		Order("created_at ASC").
		Find(&items).Error

	return items, err
}
