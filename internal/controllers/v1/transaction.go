package v1

import (
	"fmt"
	"net/http"

	"github.com/finance-tracker/backend/internal/auth"
	"github.com/finance-tracker/backend/internal/httputil"
	"github.com/finance-tracker/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RegisterTransactionRoutes registers the routes for transactions with
// the RouterGroup that is passed.
func (co Controller) RegisterTransactionRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsTransactionList)
		r.GET("", co.GetTransactions)
		r.POST("", co.CreateTransactions)
	}

	// Transaction with ID
	{
		r.OPTIONS("/:id", co.OptionsTransactionDetail)
		r.GET("/:id", co.GetTransaction)
		r.PATCH("/:id", co.UpdateTransaction)
		r.DELETE("/:id", co.DeleteTransaction)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Transactions
// @Success		204
// @Router			/v1/transactions [options]
func OptionsTransactionList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Transactions
// @Success		204
// @Failure		400	{object}	httputil.HTTPError
// @Failure		404	{object}	httputil.HTTPError
// @Failure		500	{object}	httputil.HTTPError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/transactions/{id} [options]
func (co Controller) OptionsTransactionDetail(c *gin.Context) {
	resourceOptionsDetail[models.Transaction](co, c)
}

// @Summary		Create transactions
// @Description	Creates transactions from the list of submitted transaction data. The response code is the highest response code number that a single transaction creation would have caused. If it is not equal to 201, at least one transaction has an error.
// @Tags			Transactions
// @Accept			json
// @Produce		json
// @Success		201				{object}	TransactionCreateResponse
// @Failure		400				{object}	TransactionCreateResponse
// @Failure		500				{object}	TransactionCreateResponse
// @Param			transactions	body		[]TransactionEditable	true	"Transactions"
// @Router			/v1/transactions [post]
func (co Controller) CreateTransactions(c *gin.Context) {
	var editables []TransactionEditable

	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TransactionCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := TransactionCreateResponse{}

	for _, editable := range editables {
		transaction := editable.model(c)
		transaction.Source = models.SourceManual

		err = co.db(c).Create(&transaction).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		transaction, err = co.loadTransaction(c, transaction.ID)
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newTransaction(c, transaction)
		r.Data = append(r.Data, TransactionResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get transactions
// @Description	Returns a list of transactions
// @Tags			Transactions
// @Produce		json
// @Success		200				{object}	TransactionListResponse
// @Failure		400				{object}	TransactionListResponse
// @Failure		500				{object}	TransactionListResponse
// @Param			fromDate		query		string	false	"Transactions at and after this date, YYYY-MM-DD"
// @Param			untilDate		query		string	false	"Transactions before and at this date, YYYY-MM-DD"
// @Param			category		query		string	false	"Filter by category ID"
// @Param			type			query		string	false	"Filter by type, INCOME or EXPENSE"
// @Param			source			query		string	false	"Filter by source, manual, plaid or ofx"
// @Param			search			query		string	false	"Search for this text in the note"
// @Param			uncategorized	query		bool	false	"Only transactions without a category"
// @Param			sortBy			query		string	false	"date or amount. Defaults to date."
// @Param			sortOrder		query		string	false	"asc or desc. Defaults to desc."
// @Param			offset			query		uint	false	"The offset of the first Transaction returned. Defaults to 0."
// @Param			limit			query		int		false	"Maximum number of transactions to return. Defaults to 50."
// @Router			/v1/transactions [get]
func (co Controller) GetTransactions(c *gin.Context) {
	var filter TransactionQueryFilter
	if err := c.Bind(&filter); err != nil {
		s := httputil.ErrInvalidQueryString.Error()
		c.JSON(http.StatusBadRequest, TransactionListResponse{
			Error: &s,
		})
		return
	}

	// Get the parameters set in the query string
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	filterModel, err := filter.model(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionListResponse{Error: &s})
		return
	}

	order, err := filter.order()
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionListResponse{Error: &s})
		return
	}

	q := co.db(c).
		Model(&models.Transaction{}).
		Where(&filterModel, append(queryFields, "UserID")...)

	if !filter.FromDate.IsZero() {
		q = q.Where("date >= ?", filter.FromDate)
	}

	if !filter.UntilDate.IsZero() {
		// The whole day is included
		q = q.Where("date < ?", filter.UntilDate.AddDate(0, 0, 1))
	}

	if !filter.CategoryID.IsNil() {
		q = q.Where("category_id = ?", filter.CategoryID.UUID)
	}

	if filter.Search != "" {
		q = q.Where("note LIKE ?", fmt.Sprintf("%%%s%%", filter.Search))
	}

	if slices.Contains(setFields, "Uncategorized") && filter.Uncategorized {
		q = q.Where("category_id IS NULL")
	}

	// The filtered query is used for the page and the total count
	q = q.Session(&gorm.Session{})
	limit := limit(setFields, filter.Limit)

	var transactions []models.Transaction
	err = q.Preload("Category").Order(order).Offset(int(filter.Offset)).Limit(limit).Find(&transactions).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionListResponse{Error: &s})
		return
	}

	var count int64
	err = q.Count(&count).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionListResponse{Error: &s})
		return
	}

	data := make([]Transaction, 0)
	for _, transaction := range transactions {
		data = append(data, newTransaction(c, transaction))
	}

	c.JSON(http.StatusOK, TransactionListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get transaction
// @Description	Returns a specific transaction
// @Tags			Transactions
// @Produce		json
// @Success		200	{object}	TransactionResponse
// @Failure		400	{object}	TransactionResponse
// @Failure		404	{object}	TransactionResponse
// @Failure		500	{object}	TransactionResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/transactions/{id} [get]
func (co Controller) GetTransaction(c *gin.Context) {
	transaction, err := getResource[models.Transaction](co, c)
	if err == nil {
		transaction, err = co.loadTransaction(c, transaction.ID)
	}

	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &s})
		return
	}

	data := newTransaction(c, transaction)
	c.JSON(http.StatusOK, TransactionResponse{Data: &data})
}

// @Summary		Update transaction
// @Description	Updates an existing transaction. Only values to be updated need to be specified.
// @Tags			Transactions
// @Accept			json
// @Produce		json
// @Success		200			{object}	TransactionResponse
// @Failure		400			{object}	TransactionResponse
// @Failure		404			{object}	TransactionResponse
// @Failure		500			{object}	TransactionResponse
// @Param			id			path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			transaction	body		TransactionEditable	true	"Transaction"
// @Router			/v1/transactions/{id} [patch]
func (co Controller) UpdateTransaction(c *gin.Context) {
	transaction, err := getResource[models.Transaction](co, c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &s})
		return
	}

	// Start from the current state so that only the fields in the body change
	data := newTransaction(c, transaction).TransactionEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &s})
		return
	}

	updated := data.model(c)
	updated.DefaultModel = transaction.DefaultModel
	updated.Source = transaction.Source
	updated.ExternalID = transaction.ExternalID
	updated.Pending = transaction.Pending

	err = co.db(c).Omit(clause.Associations).Save(&updated).Error
	if err == nil {
		updated, err = co.loadTransaction(c, updated.ID)
	}

	if err != nil {
		s := err.Error()
		c.JSON(status(err), TransactionResponse{Error: &s})
		return
	}

	r := newTransaction(c, updated)
	c.JSON(http.StatusOK, TransactionResponse{Data: &r})
}

// @Summary		Delete transaction
// @Description	Deletes a transaction
// @Tags			Transactions
// @Success		204
// @Failure		400	{object}	httputil.HTTPError
// @Failure		404	{object}	httputil.HTTPError
// @Failure		500	{object}	httputil.HTTPError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/transactions/{id} [delete]
func (co Controller) DeleteTransaction(c *gin.Context) {
	deleteResource[models.Transaction](co, c)
}

// loadTransaction loads a transaction of the user with its category.
func (co Controller) loadTransaction(c *gin.Context, id uuid.UUID) (models.Transaction, error) {
	var transaction models.Transaction
	err := co.db(c).
		Preload("Category").
		Where("id = ? AND user_id = ?", id, auth.UserID(c)).
		First(&transaction).Error

	return transaction, err
}
