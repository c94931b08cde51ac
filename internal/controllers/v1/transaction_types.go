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

// TransactionEditable represents all user configurable parameters
type TransactionEditable struct {
	Amount     decimal.Decimal              `json:"amount" swaggertype:"string" example:"14.03"`               // Amount, must be non-negative
	Type       calculations.TransactionType `json:"type" example:"EXPENSE"`                                    // INCOME or EXPENSE
	Date       time.Time                    `json:"date" example:"2024-03-05T00:00:00Z"`                       // Date of the transaction. Defaults to now. Must not be in the future.
	Note       string                       `json:"note" example:"Groceries for the week"`                     // A note
	CategoryID *uuid.UUID                   `json:"categoryId" example:"0b4ad5a2-f4a1-4b3a-9c2e-5b1cf8cc2a1d"` // ID of the category. The category type must match the transaction type.
}

func (editable TransactionEditable) model(c *gin.Context) models.Transaction {
	return models.Transaction{
		UserID:     auth.UserID(c),
		Amount:     editable.Amount,
		Type:       editable.Type,
		Date:       editable.Date,
		Note:       editable.Note,
		CategoryID: editable.CategoryID,
	}
}

type TransactionLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/transactions/d430d7c3-d14c-4712-9336-ee56965a6673"` // The transaction itself
}

// Transaction is the API representation of a Transaction.
type Transaction struct {
	models.DefaultModel
	TransactionEditable
	Source     models.TransactionSource `json:"source" example:"manual"` // Where the transaction was recorded: manual, plaid or ofx
	ExternalID string                   `json:"externalId" example:""`   // ID of the transaction at the bank or the import hash
	Pending    bool                     `json:"pending" example:"false"` // The bank has not booked the transaction yet
	Category   *CategoryReference       `json:"category"`                // The category, if any
	Links      TransactionLinks         `json:"links"`
}

// CategoryReference is a short form of the category embedded in other resources.
type CategoryReference struct {
	ID    uuid.UUID                    `json:"id" example:"0b4ad5a2-f4a1-4b3a-9c2e-5b1cf8cc2a1d"` // ID of the category
	Name  string                       `json:"name" example:"Food & Dining"`                      // Name of the category
	Type  calculations.TransactionType `json:"type" example:"EXPENSE"`                            // Type of the category
	Icon  string                       `json:"icon" example:"utensils"`                           // Icon of the category
	Color string                       `json:"color" example:"#F59E0B"`                           // Color of the category
}

func newCategoryReference(category *models.Category) *CategoryReference {
	if category == nil || category.ID == uuid.Nil {
		return nil
	}

	return &CategoryReference{
		ID:    category.ID,
		Name:  category.Name,
		Type:  category.Type,
		Icon:  category.Icon,
		Color: category.Color,
	}
}

func newTransaction(c *gin.Context, model models.Transaction) Transaction {
	url := c.GetString(string(models.DBContextURL))

	return Transaction{
		DefaultModel: model.DefaultModel,
		TransactionEditable: TransactionEditable{
			Amount:     model.Amount,
			Type:       model.Type,
			Date:       model.Date,
			Note:       model.Note,
			CategoryID: model.CategoryID,
		},
		Source:     model.Source,
		ExternalID: model.ExternalID,
		Pending:    model.Pending,
		Category:   newCategoryReference(model.Category),
		Links: TransactionLinks{
			Self: fmt.Sprintf("%s/v1/transactions/%s", url, model.ID),
		},
	}
}

type TransactionListResponse struct {
	Data       []Transaction `json:"data"`                                                          // List of transactions
	Error      *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination   `json:"pagination"`                                                    // Pagination information
}

type TransactionCreateResponse struct {
	Error *string               `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []TransactionResponse `json:"data"`                                                          // List of created Transactions
}

func (t *TransactionCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	t.Data = append(t.Data, TransactionResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type TransactionResponse struct {
	Error *string      `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred for this transaction
	Data  *Transaction `json:"data"`                                                          // The transaction data, if creation was successful
}

// TransactionQueryFilter contains the fields that transactions can be filtered with.
type TransactionQueryFilter struct {
	FromDate      time.Time    `form:"fromDate" time_format:"2006-01-02" time_utc:"1" filterField:"false"`  // From this date, inclusive
	UntilDate     time.Time    `form:"untilDate" time_format:"2006-01-02" time_utc:"1" filterField:"false"` // Until this date, inclusive
	CategoryID    ez_uuid.UUID `form:"category" filterField:"false"`                                        // By ID of the category
	Type          string       `form:"type"`                                                                // By type, INCOME or EXPENSE
	Source        string       `form:"source"`                                                              // By source
	Search        string       `form:"search" filterField:"false"`                                          // By string in the note
	Uncategorized bool         `form:"uncategorized" filterField:"false"`                                   // Only transactions without a category
	SortBy        string       `form:"sortBy" filterField:"false"`                                          // date or amount. Defaults to date.
	SortOrder     string       `form:"sortOrder" filterField:"false"`                                       // asc or desc. Defaults to desc.
	Offset        uint         `form:"offset" filterField:"false"`                                          // The offset of the first Transaction returned. Defaults to 0.
	Limit         int          `form:"limit" filterField:"false"`                                           // Maximum number of transactions to return. Defaults to 50.
}

func (f TransactionQueryFilter) model(c *gin.Context) (models.Transaction, error) {
	t := calculations.TransactionType(f.Type)
	if f.Type != "" && !t.Valid() {
		return models.Transaction{}, errTransactionTypeInvalid
	}

	if !f.FromDate.IsZero() && !f.UntilDate.IsZero() && f.FromDate.After(f.UntilDate) {
		return models.Transaction{}, models.ErrInvalidDateRange
	}

	return models.Transaction{
		UserID: auth.UserID(c),
		Type:   t,
		Source: models.TransactionSource(f.Source),
	}, nil
}

// order returns the ORDER BY clause for the sort parameters.
func (f TransactionQueryFilter) order() (string, error) {
	column := "date"
	switch f.SortBy {
	case "", "date":
	case "amount":
		column = "amount"
	default:
		return "", errSortByInvalid
	}

	direction := "DESC"
	switch f.SortOrder {
	case "", "desc":
	case "asc":
		direction = "ASC"
	default:
		return "", errSortOrderInvalid
	}

	return fmt.Sprintf("%s %s, created_at %s", column, direction, direction), nil
}
