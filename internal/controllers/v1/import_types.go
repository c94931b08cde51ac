package v1

import (
	"time"

	"github.com/finance-tracker/backend/internal/importer"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TransactionPreview is used to preview transactions that will be imported.
type TransactionPreview struct {
	Transaction             Transaction `json:"transaction"`
	Name                    string      `json:"name" example:"Corner Bakery"`                               // Name of the payee in the statement
	DuplicateTransactionIDs []uuid.UUID `json:"duplicateTransactionIds"`                                    // IDs of transactions that this transaction duplicates
	MatchRuleID             *uuid.UUID  `json:"matchRuleId" example:"042d101d-f1de-4403-9295-59dc0ea58677"` // ID of the match rule that was applied to this transaction preview
}

// newTransactionPreview transforms a TransactionPreview to the API resource
func newTransactionPreview(c *gin.Context, t importer.TransactionPreview) TransactionPreview {
	return TransactionPreview{
		Transaction:             newTransaction(c, t.Transaction),
		Name:                    t.Name,
		DuplicateTransactionIDs: t.DuplicateTransactionIDs,
		MatchRuleID:             ptr(t.MatchRuleID),
	}
}

type ImportPreviewList struct {
	Data  []TransactionPreview `json:"data"`                                                          // List of transaction previews
	Error *string              `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

// ImportResult is the outcome of a statement import.
type ImportResult struct {
	Created      int           `json:"created" example:"12"`   // Number of transactions created
	Duplicates   int           `json:"duplicates" example:"3"` // Number of statement lines skipped because they were imported before
	Transactions []Transaction `json:"transactions"`           // The created transactions
}

type ImportResponse struct {
	Error *string       `json:"error" example:"this endpoint only supports files of the following types: .ofx, .qfx"` // The error, if any occurred
	Data  *ImportResult `json:"data"`                                                                                 // The import result
}

// ExportQuery contains the parameters of the export.
type ExportQuery struct {
	FromDate  time.Time `form:"fromDate" time_format:"2006-01-02" time_utc:"1"`  // From this date, inclusive
	UntilDate time.Time `form:"untilDate" time_format:"2006-01-02" time_utc:"1"` // Until this date, inclusive
}
