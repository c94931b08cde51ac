package plaid

import (
	"fmt"
	"time"

	"github.com/finance-tracker/backend/internal/calculations"
	"github.com/plaid/plaid-go/v20/plaid"
	"github.com/shopspring/decimal"
)

const dateFormat = "2006-01-02"

// PrimaryCategory returns the top level of a Plaid category hierarchy.
func PrimaryCategory(categories []string) string {
	if len(categories) > 0 {
		return categories[0]
	}
	return ""
}

// Subcategory returns the second level of a Plaid category hierarchy.
func Subcategory(categories []string) string {
	if len(categories) > 1 {
		return categories[1]
	}
	return ""
}

// TypeForAmount returns the transaction type for a Plaid amount. Plaid
// reports money leaving the account as positive amounts.
func TypeForAmount(amount decimal.Decimal) calculations.TransactionType {
	if amount.IsNegative() {
		return calculations.TypeIncome
	}
	return calculations.TypeExpense
}

// Transform converts a transaction returned by the Plaid API.
func Transform(t plaid.Transaction) (Transaction, error) {
	amount := decimal.NewFromFloat(t.GetAmount())

	date, err := time.Parse(dateFormat, t.GetDate())
	if err != nil {
		return Transaction{}, fmt.Errorf("%w: %q", ErrInvalidDate, t.GetDate())
	}

	var authorized *time.Time
	if a, err := time.Parse(dateFormat, t.GetAuthorizedDate()); err == nil {
		authorized = &a
	}

	merchant := t.GetMerchantName()
	if merchant == "" {
		merchant = t.GetName()
	}

	categories := t.GetCategory()

	return Transaction{
		TransactionID:        t.GetTransactionId(),
		PendingTransactionID: t.GetPendingTransactionId(),
		AccountID:            t.GetAccountId(),
		Amount:               amount.Abs(),
		Type:                 TypeForAmount(amount),
		Date:                 date,
		AuthorizedDate:       authorized,
		Name:                 t.GetName(),
		MerchantName:         merchant,
		Category:             categories,
		PrimaryCategory:      PrimaryCategory(categories),
		Subcategory:          Subcategory(categories),
		PaymentChannel:       t.GetPaymentChannel(),
		Pending:              t.GetPending(),
	}, nil
}
