package v1

import (
	"fmt"
	"time"

	"github.com/finance-tracker/backend/internal/auth"
	"github.com/finance-tracker/backend/internal/calculations"
	"github.com/finance-tracker/backend/internal/models"
	ez_uuid "github.com/finance-tracker/backend/internal/uuid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BudgetEditable represents all user configurable parameters
type BudgetEditable struct {
	CategoryID uuid.UUID                 `json:"categoryId" example:"0b4ad5a2-f4a1-4b3a-9c2e-5b1cf8cc2a1d"` // ID of the category the budget limits
	Limit      decimal.Decimal           `json:"limit" swaggertype:"string" example:"500"`                  // Maximum spending per period
	Period     calculations.BudgetPeriod `json:"period" example:"MONTHLY"`                                  // DAILY, WEEKLY, MONTHLY or YEARLY
	StartDate  *time.Time                `json:"startDate" example:"2024-01-01T00:00:00Z"`                  // First day the budget applies, optional
	EndDate    *time.Time                `json:"endDate" example:"2024-12-31T00:00:00Z"`                    // Last day the budget applies, optional. The whole day is included.
}

func (editable BudgetEditable) model(c *gin.Context) models.Budget {
	return models.Budget{
		UserID:     auth.UserID(c),
		CategoryID: editable.CategoryID,
		Limit:      editable.Limit,
		Period:     editable.Period,
		StartDate:  editable.StartDate,
		EndDate:    editable.EndDate,
	}
}

type BudgetLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/budgets/95685c82-53c6-455d-b235-f49960b73b21"` // The budget itself
}

// Budget is the API representation of a Budget with its spending in the
// period window containing the requested date.
type Budget struct {
	models.DefaultModel
	BudgetEditable
	Category *CategoryReference       `json:"category"` // The category of the budget
	Window   calculations.Period      `json:"window"`   // The window the stats are calculated for
	Stats    calculations.BudgetStats `json:"stats"`    // Spending in the window
	Links    BudgetLinks              `json:"links"`
}

func newBudget(c *gin.Context, model models.Budget, start, end time.Time, stats calculations.BudgetStats) Budget {
	url := c.GetString(string(models.DBContextURL))

	return Budget{
		DefaultModel: model.DefaultModel,
		BudgetEditable: BudgetEditable{
			CategoryID: model.CategoryID,
			Limit:      model.Limit,
			Period:     model.Period,
			StartDate:  model.StartDate,
			EndDate:    model.EndDate,
		},
		Category: newCategoryReference(&model.Category),
		Window:   calculations.Period{StartDate: start, EndDate: end},
		Stats:    stats,
		Links: BudgetLinks{
			Self: fmt.Sprintf("%s/v1/budgets/%s", url, model.ID),
		},
	}
}

type BudgetListResponse struct {
	Data       []Budget    `json:"data"`                                                          // List of budgets
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type BudgetCreateResponse struct {
	Error *string          `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []BudgetResponse `json:"data"`                                                          // List of created budgets
}

func (b *BudgetCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	b.Data = append(b.Data, BudgetResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type BudgetResponse struct {
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred for this budget
	Data  *Budget `json:"data"`                                                          // The budget data, if creation was successful
}

// BudgetAlerts lists the budgets that need attention.
type BudgetAlerts struct {
	OverBudget []Budget `json:"overBudget"` // Budgets whose spending exceeds the limit
	AtRisk     []Budget `json:"atRisk"`     // Budgets with 80 to 100 percent of the limit spent
}

type BudgetAlertsResponse struct {
	Error *string       `json:"error" example:"the date query parameter must be in YYYY-MM-DD format"` // The error, if any occurred
	Data  *BudgetAlerts `json:"data"`                                                                  // The alerts
}

// BudgetQueryFilter contains the fields that budgets can be filtered with.
type BudgetQueryFilter struct {
	QueryDate
	CategoryID ez_uuid.UUID `form:"category"`                   // By ID of the category
	Period     string       `form:"period"`                     // By period
	Offset     uint         `form:"offset" filterField:"false"` // The offset of the first Budget returned. Defaults to 0.
	Limit      int          `form:"limit" filterField:"false"`  // Maximum number of budgets to return. Defaults to 50.
}

func (f BudgetQueryFilter) model(c *gin.Context) (models.Budget, error) {
	p := calculations.BudgetPeriod(f.Period)
	if f.Period != "" && !p.Valid() {
		return models.Budget{}, models.ErrInvalidBudgetPeriod
	}

	return models.Budget{
		UserID:     auth.UserID(c),
		CategoryID: f.CategoryID.UUID,
		Period:     p,
	}, nil
}
