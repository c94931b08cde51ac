package v1

import (
	"errors"
	"net/http"

	"github.com/finance-tracker/backend/internal/auth"
	"github.com/finance-tracker/backend/internal/httputil"
	"github.com/finance-tracker/backend/internal/models"
	"github.com/finance-tracker/backend/internal/plaid"
)

type httpError = httputil.HTTPError

// status returns the appropriate status for an error
func status(err error) int {
	switch {
	case errors.Is(err, models.ErrGeneral):
		return http.StatusInternalServerError
	case errors.Is(err, models.ErrResourceNotFound):
		return http.StatusNotFound
	case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrMissingToken):
		return http.StatusUnauthorized
	case errors.Is(err, plaid.ErrNotConfigured):
		return http.StatusNotImplemented
	}

	return http.StatusBadRequest
}

var (
	errTransactionTypeInvalid = errors.New("the specified transaction type is invalid, must be INCOME or EXPENSE")
	errSortByInvalid          = errors.New("sortBy must be one of date, amount")
	errSortOrderInvalid       = errors.New("sortOrder must be one of asc, desc")
	errMonthsInvalid          = errors.New("months must be between 1 and 60")
)

// Recurring transaction errors
var (
	errRecurringInactive = errors.New("the recurring transaction is not active")
	errRecurringNotDue   = errors.New("the next occurrence of the recurring transaction is not due yet")
)

// Import errors
var (
	errNoFilePost      = errors.New("you must send a file to this endpoint")
	errWrongFileSuffix = errors.New("this endpoint only supports files of the following types")
)
