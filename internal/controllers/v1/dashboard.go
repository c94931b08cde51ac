package v1

import (
	"net/http"
	"time"

	"github.com/finance-tracker/backend/internal/auth"
	"github.com/finance-tracker/backend/internal/calculations"
	"github.com/finance-tracker/backend/internal/httputil"
	"github.com/finance-tracker/backend/internal/models"
	"github.com/finance-tracker/backend/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RegisterDashboardRoutes registers the routes for the dashboard with
// the RouterGroup that is passed.
func (co Controller) RegisterDashboardRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/summary", OptionsGet)
	r.GET("/summary", co.GetDashboardSummary)
	r.OPTIONS("/charts", OptionsGet)
	r.GET("/charts", co.GetDashboardCharts)
}

// month returns the requested month, defaulting to the current month.
func (q DashboardQuery) month() types.Month {
	if q.Month.IsZero() {
		return types.MonthOf(time.Now().In(time.UTC))
	}
	return q.Month
}

// @Summary		Dashboard summary
// @Description	Returns the totals of a month with the change compared to the previous month and the top expense categories
// @Tags			Dashboard
// @Produce		json
// @Success		200		{object}	DashboardSummaryResponse
// @Failure		400		{object}	DashboardSummaryResponse
// @Failure		500		{object}	DashboardSummaryResponse
// @Param			month	query		string	false	"The month, YYYY-MM. Defaults to the current month."
// @Param			limit	query		int		false	"Number of top categories. Defaults to 5."
// @Router			/v1/dashboard/summary [get]
func (co Controller) GetDashboardSummary(c *gin.Context) {
	var query DashboardQuery
	if err := c.BindQuery(&query); err != nil {
		s := httputil.ErrInvalidQueryString.Error()
		c.JSON(http.StatusBadRequest, DashboardSummaryResponse{Error: &s})
		return
	}

	top := 5
	if c.Request.URL.Query().Has("limit") {
		top = query.Limit
	}

	month := query.month()
	previous := month.AddDate(0, -1)

	transactions, err := models.UserTransactions(co.db(c), auth.UserID(c), previous.First(), month.Last())
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DashboardSummaryResponse{Error: &s})
		return
	}

	records := models.Records(transactions)
	current := calculations.FilterByDateRange(records, month.First(), month.Last())
	before := calculations.FilterByDateRange(records, previous.First(), previous.Last())
	counts := calculations.CountByType(current)

	summary := DashboardSummary{
		DashboardSummary:  calculations.Summarize(current, month.First(), month.Last()),
		Month:             month,
		IncomeCount:       counts[calculations.TypeIncome],
		ExpenseCount:      counts[calculations.TypeExpense],
		IncomeChange:      calculations.PercentageChange(calculations.TotalIncome(before), calculations.TotalIncome(current)),
		ExpensesChange:    calculations.PercentageChange(calculations.TotalExpenses(before), calculations.TotalExpenses(current)),
		Uncategorized:     calculations.Uncategorized(current),
		CategoryDiversity: calculations.CategoryDiversity(current),
		TopCategories:     calculations.TopCategories(current, top),
	}

	c.JSON(http.StatusOK, DashboardSummaryResponse{Data: &summary})
}

// @Summary		Dashboard charts
// @Description	Returns the monthly time series ending with the month, the category shares of the month and the progress of all budgets
// @Tags			Dashboard
// @Produce		json
// @Success		200		{object}	DashboardChartsResponse
// @Failure		400		{object}	DashboardChartsResponse
// @Failure		500		{object}	DashboardChartsResponse
// @Param			month	query		string	false	"The last month of the series, YYYY-MM. Defaults to the current month."
// @Param			months	query		int		false	"Number of months in the series, between 1 and 60. Defaults to 6."
// @Router			/v1/dashboard/charts [get]
func (co Controller) GetDashboardCharts(c *gin.Context) {
	var query DashboardQuery
	if err := c.BindQuery(&query); err != nil {
		s := httputil.ErrInvalidQueryString.Error()
		c.JSON(http.StatusBadRequest, DashboardChartsResponse{Error: &s})
		return
	}

	months := 6
	if c.Request.URL.Query().Has("months") {
		months = query.Months
	}

	if months < 1 || months > 60 {
		s := errMonthsInvalid.Error()
		c.JSON(http.StatusBadRequest, DashboardChartsResponse{Error: &s})
		return
	}

	month := query.month()
	first := month.AddDate(0, -(months - 1))

	transactions, err := models.UserTransactions(co.db(c), auth.UserID(c), first.First(), month.Last())
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DashboardChartsResponse{Error: &s})
		return
	}

	var categories []models.Category
	err = co.db(c).Where("user_id = ?", auth.UserID(c)).Find(&categories).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DashboardChartsResponse{Error: &s})
		return
	}

	colors := make(map[uuid.UUID]string, len(categories))
	for _, category := range categories {
		colors[category.ID] = category.Color
	}

	records := models.Records(transactions)
	current := calculations.FilterByDateRange(records, month.First(), month.Last())

	// Budgets are scored at the end of past months and now for the current one
	reference := time.Now().In(time.UTC)
	if !month.Contains(reference) {
		reference = month.Last()
	}

	var budgets []models.Budget
	err = co.db(c).Where("user_id = ?", auth.UserID(c)).Order("created_at ASC").Find(&budgets).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DashboardChartsResponse{Error: &s})
		return
	}

	progress := make([]Budget, 0, len(budgets))
	for _, budget := range budgets {
		b, err := co.budgetWithStats(c, budget.ID, reference)
		if err != nil {
			s := err.Error()
			c.JSON(status(err), DashboardChartsResponse{Error: &s})
			return
		}
		progress = append(progress, b)
	}

	c.JSON(http.StatusOK, DashboardChartsResponse{Data: &DashboardCharts{
		Monthly:  calculations.MonthlySummaries(records, month.Last(), months),
		Expenses: calculations.CategoryShares(calculations.AggregateExpensesByCategory(current), colors),
		Income:   calculations.CategoryShares(calculations.AggregateIncomeByCategory(current), colors),
		Budgets:  progress,
	}})
}
