package models

import (
	"strings"
	"unicode/utf8"

	"github.com/finance-tracker/backend/internal/calculations"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CategoryNameMaxLength is the maximum number of characters in a category name.
const CategoryNameMaxLength = 50

// Category groups transactions of one type.
type Category struct {
	DefaultModel
	UserID uuid.UUID                    `gorm:"type:uuid;uniqueIndex:category_user_name"`
	Name   string                       `gorm:"uniqueIndex:category_user_name"`
	Type   calculations.TransactionType `gorm:"type:varchar(10)"`
	Icon   string
	Color  string
}

// BeforeSave trims whitespace and validates name and type.
func (c *Category) BeforeSave(_ *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)
	c.Icon = strings.TrimSpace(c.Icon)
	c.Color = strings.TrimSpace(c.Color)

	if c.Name == "" {
		return ErrCategoryNameEmpty
	}

	if utf8.RuneCountInString(c.Name) > CategoryNameMaxLength {
		return ErrCategoryNameTooLong
	}

	if !c.Type.Valid() {
		return ErrInvalidTransactionType
	}

	return nil
}

// Record returns the category as used by the calculations.
func (c Category) Record() calculations.Category {
	return calculations.Category{
		ID:    c.ID,
		Name:  c.Name,
		Type:  c.Type,
		Color: c.Color,
		Icon:  c.Icon,
	}
}

// checkCategory verifies that the category exists for the user and, when
// transactionType is set, that its type matches.
func checkCategory(tx *gorm.DB, userID uuid.UUID, categoryID uuid.UUID, transactionType calculations.TransactionType) error {
	var category Category
	err := lookup(tx).Where("id = ? AND user_id = ?", categoryID, userID).First(&category).Error
	if err != nil {
		if isNotFound(err) {
			return ErrUnknownCategory
		}
		return err
	}

	if transactionType != "" && category.Type != transactionType {
		return ErrCategoryTypeMismatch
	}

	return nil
}
