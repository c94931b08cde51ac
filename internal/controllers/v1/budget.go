package v1

import (
	"net/http"
	"time"

	"github.com/finance-tracker/backend/internal/auth"
	"github.com/finance-tracker/backend/internal/calculations"
	"github.com/finance-tracker/backend/internal/httputil"
	"github.com/finance-tracker/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm/clause"
)

// RegisterBudgetRoutes registers the routes for budgets with
// the RouterGroup that is passed.
func (co Controller) RegisterBudgetRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsBudgetList)
		r.GET("", co.GetBudgets)
		r.POST("", co.CreateBudgets)
		r.OPTIONS("/alerts", OptionsGet)
		r.GET("/alerts", co.GetBudgetAlerts)
	}

	// Budget with ID
	{
		r.OPTIONS("/:id", co.OptionsBudgetDetail)
		r.GET("/:id", co.GetBudget)
		r.PATCH("/:id", co.UpdateBudget)
		r.DELETE("/:id", co.DeleteBudget)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Budgets
// @Success		204
// @Router			/v1/budgets [options]
func OptionsBudgetList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Budgets
// @Success		204
// @Failure		400	{object}	httputil.HTTPError
// @Failure		404	{object}	httputil.HTTPError
// @Failure		500	{object}	httputil.HTTPError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/budgets/{id} [options]
func (co Controller) OptionsBudgetDetail(c *gin.Context) {
	resourceOptionsDetail[models.Budget](co, c)
}

// @Summary		Create budgets
// @Description	Creates budgets from the list of submitted budget data. The response code is the highest response code number that a single budget creation would have caused. If it is not equal to 201, at least one budget has an error.
// @Tags			Budgets
// @Accept			json
// @Produce		json
// @Success		201		{object}	BudgetCreateResponse
// @Failure		400		{object}	BudgetCreateResponse
// @Failure		500		{object}	BudgetCreateResponse
// @Param			budgets	body		[]BudgetEditable	true	"Budgets"
// @Router			/v1/budgets [post]
func (co Controller) CreateBudgets(c *gin.Context) {
	var editables []BudgetEditable

	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := BudgetCreateResponse{}
	now := time.Now().In(time.UTC)

	for _, editable := range editables {
		budget := editable.model(c)

		err = co.db(c).Create(&budget).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data, err := co.budgetWithStats(c, budget.ID, now)
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		r.Data = append(r.Data, BudgetResponse{Data: &data})
	}

	c.JSON(status, r)
}

// @Summary		Get budgets
// @Description	Returns a list of budgets with their spending in the period containing the date
// @Tags			Budgets
// @Produce		json
// @Success		200			{object}	BudgetListResponse
// @Failure		400			{object}	BudgetListResponse
// @Failure		500			{object}	BudgetListResponse
// @Param			date		query		string	false	"Date the stats are calculated for, YYYY-MM-DD. Defaults to today."
// @Param			category	query		string	false	"Filter by category ID"
// @Param			period		query		string	false	"Filter by period"
// @Param			offset		query		uint	false	"The offset of the first Budget returned. Defaults to 0."
// @Param			limit		query		int		false	"Maximum number of budgets to return. Defaults to 50."
// @Router			/v1/budgets [get]
func (co Controller) GetBudgets(c *gin.Context) {
	var filter BudgetQueryFilter
	if err := c.Bind(&filter); err != nil {
		s := httputil.ErrInvalidQueryString.Error()
		c.JSON(http.StatusBadRequest, BudgetListResponse{
			Error: &s,
		})
		return
	}

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	filterModel, err := filter.model(c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetListResponse{Error: &s})
		return
	}

	q := co.db(c).
		Order("created_at ASC").
		Where(&filterModel, append(queryFields, "UserID")...)

	limit := limit(setFields, filter.Limit)
	q = q.Offset(int(filter.Offset)).Limit(limit)

	var budgets []models.Budget
	err = q.Find(&budgets).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetListResponse{Error: &s})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetListResponse{Error: &s})
		return
	}

	data := make([]Budget, 0)
	for _, budget := range budgets {
		b, err := co.budgetWithStats(c, budget.ID, filter.reference())
		if err != nil {
			s := err.Error()
			c.JSON(status(err), BudgetListResponse{Error: &s})
			return
		}
		data = append(data, b)
	}

	c.JSON(http.StatusOK, BudgetListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get budget
// @Description	Returns a specific budget with its spending in the period containing the date
// @Tags			Budgets
// @Produce		json
// @Success		200		{object}	BudgetResponse
// @Failure		400		{object}	BudgetResponse
// @Failure		404		{object}	BudgetResponse
// @Failure		500		{object}	BudgetResponse
// @Param			id		path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			date	query		string	false	"Date the stats are calculated for, YYYY-MM-DD. Defaults to today."
// @Router			/v1/budgets/{id} [get]
func (co Controller) GetBudget(c *gin.Context) {
	var query QueryDate
	if err := c.BindQuery(&query); err != nil {
		s := httputil.ErrInvalidQueryString.Error()
		c.JSON(http.StatusBadRequest, BudgetResponse{Error: &s})
		return
	}

	budget, err := getResource[models.Budget](co, c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetResponse{Error: &s})
		return
	}

	data, err := co.budgetWithStats(c, budget.ID, query.reference())
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetResponse{Error: &s})
		return
	}

	c.JSON(http.StatusOK, BudgetResponse{Data: &data})
}

// @Summary		Update budget
// @Description	Update an existing budget. Only values to be updated need to be specified.
// @Tags			Budgets
// @Accept			json
// @Produce		json
// @Success		200		{object}	BudgetResponse
// @Failure		400		{object}	BudgetResponse
// @Failure		404		{object}	BudgetResponse
// @Failure		500		{object}	BudgetResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			budget	body		BudgetEditable	true	"Budget"
// @Router			/v1/budgets/{id} [patch]
func (co Controller) UpdateBudget(c *gin.Context) {
	budget, err := getResource[models.Budget](co, c)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetResponse{Error: &s})
		return
	}

	// Start from the current state so that only the fields in the body change
	data := newBudget(c, budget, time.Time{}, time.Time{}, calculations.BudgetStats{}).BudgetEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetResponse{Error: &s})
		return
	}

	updated := data.model(c)
	updated.DefaultModel = budget.DefaultModel

	err = co.db(c).Omit(clause.Associations).Save(&updated).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetResponse{Error: &s})
		return
	}

	r, err := co.budgetWithStats(c, updated.ID, time.Now().In(time.UTC))
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetResponse{Error: &s})
		return
	}

	c.JSON(http.StatusOK, BudgetResponse{Data: &r})
}

// @Summary		Delete budget
// @Description	Deletes a budget
// @Tags			Budgets
// @Success		204
// @Failure		400	{object}	httputil.HTTPError
// @Failure		404	{object}	httputil.HTTPError
// @Failure		500	{object}	httputil.HTTPError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/budgets/{id} [delete]
func (co Controller) DeleteBudget(c *gin.Context) {
	deleteResource[models.Budget](co, c)
}

// @Summary		Budget alerts
// @Description	Returns the budgets that are over their limit or at risk of exceeding it. Budgets are grouped by period and scored against the window of their period that contains the date. Budgets that do not apply at the date are skipped.
// @Tags			Budgets
// @Produce		json
// @Success		200		{object}	BudgetAlertsResponse
// @Failure		400		{object}	BudgetAlertsResponse
// @Failure		500		{object}	BudgetAlertsResponse
// @Param			date	query		string	false	"Date the alerts are calculated for, YYYY-MM-DD. Defaults to today."
// @Router			/v1/budgets/alerts [get]
func (co Controller) GetBudgetAlerts(c *gin.Context) {
	var query QueryDate
	if err := c.BindQuery(&query); err != nil {
		s := httputil.ErrInvalidQueryString.Error()
		c.JSON(http.StatusBadRequest, BudgetAlertsResponse{Error: &s})
		return
	}
	reference := query.reference()

	var budgets []models.Budget
	err := co.db(c).
		Preload("Category").
		Where("user_id = ?", auth.UserID(c)).
		Order("created_at ASC").
		Find(&budgets).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), BudgetAlertsResponse{Error: &s})
		return
	}

	groups := make(map[calculations.BudgetPeriod][]calculations.Budget)
	byID := make(map[uuid.UUID]models.Budget)
	for _, budget := range budgets {
		record := budget.Record()

		start, end := calculations.BudgetWindow(record, reference)
		if start.After(end) {
			continue
		}

		groups[budget.Period] = append(groups[budget.Period], record)
		byID[budget.ID] = budget
	}

	alerts := BudgetAlerts{
		OverBudget: make([]Budget, 0),
		AtRisk:     make([]Budget, 0),
	}

	for _, period := range []calculations.BudgetPeriod{calculations.PeriodDaily, calculations.PeriodWeekly, calculations.PeriodMonthly, calculations.PeriodYearly} {
		group := groups[period]
		if len(group) == 0 {
			continue
		}

		start, end := calculations.PeriodWindow(period, reference)
		transactions, err := models.UserTransactions(co.db(c), auth.UserID(c), start, end)
		if err != nil {
			s := err.Error()
			c.JSON(status(err), BudgetAlertsResponse{Error: &s})
			return
		}
		records := models.Records(transactions)

		for _, b := range calculations.OverBudgets(group, records) {
			alerts.OverBudget = append(alerts.OverBudget, newBudget(c, byID[b.ID], start, end, calculations.CalculateBudgetStats(b, records)))
		}

		for _, b := range calculations.AtRiskBudgets(group, records) {
			alerts.AtRisk = append(alerts.AtRisk, newBudget(c, byID[b.ID], start, end, calculations.CalculateBudgetStats(b, records)))
		}
	}

	c.JSON(http.StatusOK, BudgetAlertsResponse{Data: &alerts})
}

// budgetWithStats loads the budget with its category and calculates the
// stats for the budget window containing reference.
func (co Controller) budgetWithStats(c *gin.Context, id uuid.UUID, reference time.Time) (Budget, error) {
	var budget models.Budget
	err := co.db(c).
		Preload("Category").
		Where("id = ? AND user_id = ?", id, auth.UserID(c)).
		First(&budget).Error
	if err != nil {
		return Budget{}, err
	}

	record := budget.Record()
	start, end := calculations.BudgetWindow(record, reference)

	transactions, err := models.UserTransactions(co.db(c), budget.UserID, start, end)
	if err != nil {
		return Budget{}, err
	}

	stats := calculations.CalculateBudgetStats(record, models.Records(transactions))
	return newBudget(c, budget, start, end, stats), nil
}
