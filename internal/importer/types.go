package importer

import (
	"github.com/finance-tracker/backend/internal/models"
	"github.com/google/uuid"
)

// TransactionPreview is a transaction read from a statement or a bank
// connection that has not been stored yet.
type TransactionPreview struct {
	Transaction             models.Transaction
	Name                    string      // Payee as named by the bank, matched against the match rules
	DuplicateTransactionIDs []uuid.UUID // IDs of stored transactions with the same external ID
	MatchRuleID             uuid.UUID   // ID of the match rule that set the category
}
