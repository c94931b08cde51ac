package v1

import (
	"fmt"

	"github.com/finance-tracker/backend/internal/auth"
	"github.com/finance-tracker/backend/internal/calculations"
	"github.com/finance-tracker/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// CategoryEditable represents all user configurable parameters
type CategoryEditable struct {
	Name  string                       `json:"name" example:"Food & Dining"` // Name of the category, unique per user
	Type  calculations.TransactionType `json:"type" example:"EXPENSE"`       // Type of the transactions in this category. Cannot be changed after creation.
	Icon  string                       `json:"icon" example:"utensils"`      // Icon for the category
	Color string                       `json:"color" example:"#F59E0B"`      // Color for the category
}

func (editable CategoryEditable) model(c *gin.Context) models.Category {
	return models.Category{
		UserID: auth.UserID(c),
		Name:   editable.Name,
		Type:   editable.Type,
		Icon:   editable.Icon,
		Color:  editable.Color,
	}
}

type CategoryLinks struct {
	Self         string `json:"self" example:"https://example.com/api/v1/categories/3b1ea324-d438-4419-882a-2fc91d71772f"`                    // The category itself
	Transactions string `json:"transactions" example:"https://example.com/api/v1/transactions?category=3b1ea324-d438-4419-882a-2fc91d71772f"` // Transactions in this category
}

// Category is the API representation of a Category.
type Category struct {
	models.DefaultModel
	CategoryEditable
	Links CategoryLinks `json:"links"`
}

func newCategory(c *gin.Context, model models.Category) Category {
	url := c.GetString(string(models.DBContextURL))

	return Category{
		DefaultModel: model.DefaultModel,
		CategoryEditable: CategoryEditable{
			Name:  model.Name,
			Type:  model.Type,
			Icon:  model.Icon,
			Color: model.Color,
		},
		Links: CategoryLinks{
			Self:         fmt.Sprintf("%s/v1/categories/%s", url, model.ID),
			Transactions: fmt.Sprintf("%s/v1/transactions?category=%s", url, model.ID),
		},
	}
}

type CategoryListResponse struct {
	Data       []Category  `json:"data"`                                                          // List of Categories
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type CategoryCreateResponse struct {
	Data  []CategoryResponse `json:"data"`                                                          // List of the created Categories or their respective error
	Error *string            `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

func (r *CategoryCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	r.Data = append(r.Data, CategoryResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type CategoryResponse struct {
	Data  *Category `json:"data"`                                                          // Data for the Category
	Error *string   `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type CategoryQueryFilter struct {
	Name   string `form:"name" filterField:"false"`   // By name
	Type   string `form:"type"`                       // By type
	Search string `form:"search" filterField:"false"` // By string in name
	Offset uint   `form:"offset" filterField:"false"` // The offset of the first Category returned. Defaults to 0.
	Limit  int    `form:"limit" filterField:"false"`  // Maximum number of Categories to return. Defaults to 50.
}

func (f CategoryQueryFilter) model(c *gin.Context) (models.Category, error) {
	t := calculations.TransactionType(f.Type)
	if f.Type != "" && !t.Valid() {
		return models.Category{}, errTransactionTypeInvalid
	}

	return models.Category{
		UserID: auth.UserID(c),
		Type:   t,
	}, nil
}
