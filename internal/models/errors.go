package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")
)

// Validation errors
var (
	ErrInvalidAmount           = errors.New("the amount must be a non-negative number")
	ErrInvalidDateRange        = errors.New("the start date must not be after the end date")
	ErrUnknownCategory         = errors.New("there is no category with the specified ID")
	ErrCategoryTypeMismatch    = errors.New("the category type must match the transaction type")
	ErrInvalidTransactionType  = errors.New("the transaction type must be INCOME or EXPENSE")
	ErrTransactionDateInFuture = errors.New("the transaction date cannot be in the future")
	ErrInvalidBudgetPeriod     = errors.New("the budget period must be one of DAILY, WEEKLY, MONTHLY, YEARLY")
	ErrInvalidFrequency        = errors.New("the frequency must be one of DAILY, WEEKLY, MONTHLY, YEARLY")
	ErrInvalidTransactionSrc   = errors.New("the transaction source must be one of manual, plaid, ofx")
)

// Category errors
var (
	ErrCategoryNameEmpty        = errors.New("the category name is required")
	ErrCategoryNameTooLong      = errors.New("the category name must be 50 characters or less")
	ErrCategoryNameNotUnique    = errors.New("the category name must be unique")
	ErrCategoryTypeNotChangable = errors.New("the type of a category cannot be changed")
)

// User errors
var (
	ErrEmailInUse   = errors.New("this email address is already in use")
	ErrInvalidEmail = errors.New("the email address is not valid")
)

// Other uniqueness errors
var (
	ErrPlaidItemNotUnique = errors.New("this bank connection has already been linked")
	ErrMatchRuleEmpty     = errors.New("the match must not be empty")
)
