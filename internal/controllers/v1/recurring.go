package v1

import (
	"fmt"
	"net/http"
	"time"

	"github.com/finance-tracker/backend/internal/auth"
	"github.com/finance-tracker/backend/internal/httputil"
	"github.com/finance-tracker/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RegisterRecurringRoutes registers the routes for recurring transactions with
// the RouterGroup that is passed.
func (co Controller) RegisterRecurringRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsRecurringList)
		r.GET("", co.GetRecurringTransactions)
		r.POST("", co.CreateRecurringTransactions)
	}

	// Recurring transaction with ID
	{
		r.OPTIONS("/:id", co.OptionsRecurringDetail)
		r.GET("/:id", co.GetRecurringTransaction)
		r.PATCH("/:id", co.UpdateRecurringTransaction)
		r.DELETE("/:id", co.DeleteRecurringTransaction)
		r.OPTIONS("/:id/run", OptionsPost)
		r.POST("/:id/run", co.RunRecurringTransaction)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Recurring Transactions
// @Success		204
// @Router			/v1/recurring [options]
func OptionsRecurringList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Recurring Transactions
// @Success		204
// @Failure		400	{object}	httputil.HTTPError
// @Failure		404	{object}	httputil.HTTPError
// @Failure		500	{object}	httputil.HTTPError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/recurring/{id} [options]
func (co Controller) OptionsRecurringDetail(c *gin.Context) {
	resourceOptionsDetail[models.RecurringTransaction](co, c)
}

// @Summary		Create recurring transactions
// @Description	Creates recurring transactions from the list of submitted data. The response code is the highest response code number that a single creation would have caused. If it is not equal to 201, at least one recurring transaction has an error.
// @Tags			Recurring Transactions
// @Accept			json
// @Produce		json
// @Success		201			{object}	RecurringCreateResponse
// @Failure		400			{object}	RecurringCreateResponse
// @Failure		500			{object}	RecurringCreateResponse
// @Param			recurring	body		[]RecurringEditable	true	"Recurring transactions"
// @Router			/v1/recurring [post]
func (co Controller) CreateRecurringTransactions(c *gin.Context) {
	var editables []RecurringEditable

	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), RecurringCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := RecurringCreateResponse{}

	for _, editable := range editables {
		recurring := editable.model(c)

		err = co.db(c).Create(&recurring).Error
		if err == nil {
			recurring, err = co.loadRecurring(c, recurring.ID)
		}

		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newRecurring(c, recurring)
		r.Data = append(r.Data, RecurringResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get recurring transactions
// @Description	Returns a list of recurring transactions
// @Tags			Recurring Transactions
// @Produce		json
// @Success		200			{object}	RecurringListResponse
// @Failure		400			{object}	RecurringListResponse
// @Failure		500			{object}	RecurringListResponse
// @Param			type		query		string	false	"Filter by type, INCOME or EXPENSE"
// @Param			frequency	query		string	false	"Filter by frequency"
// @Param			active		query		bool	false	"Filter by active state"
// @Param			category	query		string	false	"Filter by category ID"
// @Param			search		query		string	false	"Search for this text in the note"
// @Param			offset		query		uint	false	"The offset of the first recurring transaction returned. Defaults to 0."
// @Param			limit		query		int		false	"Maximum number of recurring transactions to return. Defaults to 50."
// @Router			/v1/recurring [get]
func (co Controller) GetRecurringTransactions(c *gin.Context) {
	var filter RecurringQueryFilter
	if err := c.Bind(&filter); err != nil {
		s := httputil.ErrInvalidQueryString.Error()
		c.JSON(http.StatusBadRequest, RecurringListResponse{
			Error: &s,
		})
		return
	}

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	filterModel, err := filter.model(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecurringListResponse{Error: &s})
		return
	}

	q := co.db(c).
		Model(&models.RecurringTransaction{}).
		Where(&filterModel, append(queryFields, "UserID")...)

	if !filter.CategoryID.IsNil() {
		q = q.Where("category_id = ?", filter.CategoryID.UUID)
	}

	if filter.Search != "" {
		q = q.Where("note LIKE ?", fmt.Sprintf("%%%s%%", filter.Search))
	}

	q = q.Session(&gorm.Session{})
	limit := limit(setFields, filter.Limit)

	var recurring []models.RecurringTransaction
	err = q.Preload("Category").Order("next_date ASC, created_at ASC").Offset(int(filter.Offset)).Limit(limit).Find(&recurring).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecurringListResponse{Error: &s})
		return
	}

	var count int64
	err = q.Count(&count).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecurringListResponse{Error: &s})
		return
	}

	data := make([]Recurring, 0)
	for _, r := range recurring {
		data = append(data, newRecurring(c, r))
	}

	c.JSON(http.StatusOK, RecurringListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get recurring transaction
// @Description	Returns a specific recurring transaction
// @Tags			Recurring Transactions
// @Produce		json
// @Success		200	{object}	RecurringResponse
// @Failure		400	{object}	RecurringResponse
// @Failure		404	{object}	RecurringResponse
// @Failure		500	{object}	RecurringResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/recurring/{id} [get]
func (co Controller) GetRecurringTransaction(c *gin.Context) {
	recurring, err := getResource[models.RecurringTransaction](co, c)
	if err == nil {
		recurring, err = co.loadRecurring(c, recurring.ID)
	}

	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecurringResponse{Error: &s})
		return
	}

	data := newRecurring(c, recurring)
	c.JSON(http.StatusOK, RecurringResponse{Data: &data})
}

// @Summary		Update recurring transaction
// @Description	Updates an existing recurring transaction. Only values to be updated need to be specified.
// @Tags			Recurring Transactions
// @Accept			json
// @Produce		json
// @Success		200			{object}	RecurringResponse
// @Failure		400			{object}	RecurringResponse
// @Failure		404			{object}	RecurringResponse
// @Failure		500			{object}	RecurringResponse
// @Param			id			path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			recurring	body		RecurringEditable	true	"Recurring transaction"
// @Router			/v1/recurring/{id} [patch]
func (co Controller) UpdateRecurringTransaction(c *gin.Context) {
	recurring, err := getResource[models.RecurringTransaction](co, c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecurringResponse{Error: &s})
		return
	}

	data := newRecurring(c, recurring).RecurringEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecurringResponse{Error: &s})
		return
	}

	updated := data.model(c)
	updated.DefaultModel = recurring.DefaultModel
	updated.LastRun = recurring.LastRun

	// A new next date starts a new anchor
	if updated.NextDate.Equal(recurring.NextDate) {
		updated.AnchorDay = recurring.AnchorDay
	}

	err = co.db(c).Omit(clause.Associations).Save(&updated).Error
	if err == nil {
		updated, err = co.loadRecurring(c, updated.ID)
	}

	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecurringResponse{Error: &s})
		return
	}

	r := newRecurring(c, updated)
	c.JSON(http.StatusOK, RecurringResponse{Data: &r})
}

// @Summary		Delete recurring transaction
// @Description	Deletes a recurring transaction. Transactions created from it are kept.
// @Tags			Recurring Transactions
// @Success		204
// @Failure		400	{object}	httputil.HTTPError
// @Failure		404	{object}	httputil.HTTPError
// @Failure		500	{object}	httputil.HTTPError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/recurring/{id} [delete]
func (co Controller) DeleteRecurringTransaction(c *gin.Context) {
	deleteResource[models.RecurringTransaction](co, c)
}

// @Summary		Run recurring transaction
// @Description	Creates the transaction for the next occurrence and advances the next date by one interval. Only active recurring transactions that are due can be run.
// @Tags			Recurring Transactions
// @Produce		json
// @Success		201	{object}	RecurringRunResponse
// @Failure		400	{object}	RecurringRunResponse
// @Failure		404	{object}	RecurringRunResponse
// @Failure		500	{object}	RecurringRunResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/recurring/{id}/run [post]
func (co Controller) RunRecurringTransaction(c *gin.Context) {
	recurring, err := getResource[models.RecurringTransaction](co, c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecurringRunResponse{Error: &s})
		return
	}

	if !recurring.Active {
		s := errRecurringInactive.Error()
		c.JSON(http.StatusBadRequest, RecurringRunResponse{Error: &s})
		return
	}

	now := time.Now().In(time.UTC)
	if recurring.NextDate.After(now) {
		s := errRecurringNotDue.Error()
		c.JSON(http.StatusBadRequest, RecurringRunResponse{Error: &s})
		return
	}

	transaction := models.Transaction{
		UserID:     recurring.UserID,
		Amount:     recurring.Amount,
		Type:       recurring.Type,
		Date:       recurring.NextDate,
		Note:       recurring.Note,
		CategoryID: recurring.CategoryID,
		Source:     models.SourceManual,
	}

	err = co.db(c).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&transaction).Error; err != nil {
			return err
		}

		lastRun := recurring.NextDate
		recurring.LastRun = &lastRun
		recurring.NextDate = recurring.Frequency.Next(recurring.NextDate, recurring.AnchorDay)
		return tx.Omit(clause.Associations).Save(&recurring).Error
	})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecurringRunResponse{Error: &s})
		return
	}

	transaction, err = co.loadTransaction(c, transaction.ID)
	if err == nil {
		recurring, err = co.loadRecurring(c, recurring.ID)
	}

	if err != nil {
		s := err.Error()
		c.JSON(status(err), RecurringRunResponse{Error: &s})
		return
	}

	c.JSON(http.StatusCreated, RecurringRunResponse{Data: &RecurringRun{
		Transaction: newTransaction(c, transaction),
		Recurring:   newRecurring(c, recurring),
	}})
}

// loadRecurring loads a recurring transaction of the user with its category.
func (co Controller) loadRecurring(c *gin.Context, id uuid.UUID) (models.RecurringTransaction, error) {
	var recurring models.RecurringTransaction
	err := co.db(c).
		Preload("Category").
		Where("id = ? AND user_id = ?", id, auth.UserID(c)).
		First(&recurring).Error

	return recurring, err
}
