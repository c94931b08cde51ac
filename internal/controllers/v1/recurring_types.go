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

// RecurringEditable represents all user configurable parameters
type RecurringEditable struct {
	Amount     decimal.Decimal              `json:"amount" swaggertype:"string" example:"5000"`                // Amount of every occurrence
	Type       calculations.TransactionType `json:"type" example:"INCOME"`                                     // INCOME or EXPENSE
	CategoryID *uuid.UUID                   `json:"categoryId" example:"0b4ad5a2-f4a1-4b3a-9c2e-5b1cf8cc2a1d"` // ID of the category. The category type must match the type.
	Note       string                       `json:"note" example:"Salary"`                                     // Note for the created transactions
	Frequency  models.RecurringFrequency    `json:"frequency" example:"MONTHLY"`                               // DAILY, WEEKLY, MONTHLY or YEARLY
	NextDate   time.Time                    `json:"nextDate" example:"2024-04-01T00:00:00Z"`                   // Date of the next occurrence
	Active     *bool                        `json:"active" example:"true"`                                     // Inactive templates cannot be run. Defaults to true.
}

func (editable RecurringEditable) model(c *gin.Context) models.RecurringTransaction {
	active := true
	if editable.Active != nil {
		active = *editable.Active
	}

	return models.RecurringTransaction{
		UserID:     auth.UserID(c),
		Amount:     editable.Amount,
		Type:       editable.Type,
		CategoryID: editable.CategoryID,
		Note:       editable.Note,
		Frequency:  editable.Frequency,
		NextDate:   editable.NextDate,
		Active:     active,
	}
}

type RecurringLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/recurring/1dbd3bcd-c4a4-4cc8-8ee0-3fb5c03cb4ca"`    // The recurring transaction itself
	Run  string `json:"run" example:"https://example.com/api/v1/recurring/1dbd3bcd-c4a4-4cc8-8ee0-3fb5c03cb4ca/run"` // Creates the next occurrence
}

// Recurring is the API representation of a RecurringTransaction.
type Recurring struct {
	models.DefaultModel
	RecurringEditable
	LastRun  *time.Time         `json:"lastRun" example:"2024-03-01T00:00:00Z"` // Date of the last created occurrence
	Category *CategoryReference `json:"category"`                               // The category, if any
	Links    RecurringLinks     `json:"links"`
}

func newRecurring(c *gin.Context, model models.RecurringTransaction) Recurring {
	url := c.GetString(string(models.DBContextURL))
	active := model.Active

	return Recurring{
		DefaultModel: model.DefaultModel,
		RecurringEditable: RecurringEditable{
			Amount:     model.Amount,
			Type:       model.Type,
			CategoryID: model.CategoryID,
			Note:       model.Note,
			Frequency:  model.Frequency,
			NextDate:   model.NextDate,
			Active:     &active,
		},
		LastRun:  model.LastRun,
		Category: newCategoryReference(model.Category),
		Links: RecurringLinks{
			Self: fmt.Sprintf("%s/v1/recurring/%s", url, model.ID),
			Run:  fmt.Sprintf("%s/v1/recurring/%s/run", url, model.ID),
		},
	}
}

type RecurringListResponse struct {
	Data       []Recurring `json:"data"`                                                          // List of recurring transactions
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type RecurringCreateResponse struct {
	Error *string             `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []RecurringResponse `json:"data"`                                                          // List of created recurring transactions
}

func (r *RecurringCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, RecurringResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type RecurringResponse struct {
	Error *string    `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred for this recurring transaction
	Data  *Recurring `json:"data"`                                                          // The recurring transaction data, if creation was successful
}

// RecurringRun is the result of running a recurring transaction.
type RecurringRun struct {
	Transaction Transaction `json:"transaction"` // The created transaction
	Recurring   Recurring   `json:"recurring"`   // The recurring transaction with the advanced next date
}

type RecurringRunResponse struct {
	Error *string       `json:"error" example:"the recurring transaction is not active"` // The error, if any occurred
	Data  *RecurringRun `json:"data"`                                                    // The run result
}

// RecurringQueryFilter contains the fields that recurring transactions can be filtered with.
type RecurringQueryFilter struct {
	Type       string       `form:"type"`                         // By type, INCOME or EXPENSE
	Frequency  string       `form:"frequency"`                    // By frequency
	Active     bool         `form:"active"`                       // By active state
	CategoryID ez_uuid.UUID `form:"category" filterField:"false"` // By ID of the category
	Search     string       `form:"search" filterField:"false"`   // By string in the note
	Offset     uint         `form:"offset" filterField:"false"`   // The offset of the first recurring transaction returned. Defaults to 0.
	Limit      int          `form:"limit" filterField:"false"`    // Maximum number of recurring transactions to return. Defaults to 50.
}

func (f RecurringQueryFilter) model(c *gin.Context) (models.RecurringTransaction, error) {
	t := calculations.TransactionType(f.Type)
	if f.Type != "" && !t.Valid() {
		return models.RecurringTransaction{}, errTransactionTypeInvalid
	}

	frequency := models.RecurringFrequency(f.Frequency)
	if f.Frequency != "" && !frequency.Valid() {
		return models.RecurringTransaction{}, models.ErrInvalidFrequency
	}

	return models.RecurringTransaction{
		UserID:    auth.UserID(c),
		Type:      t,
		Frequency: frequency,
		Active:    f.Active,
	}, nil
}
