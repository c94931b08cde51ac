// Package plaid connects bank accounts through the Plaid API.
package plaid

import (
	"context"
	"errors"
	"time"

	"github.com/finance-tracker/backend/internal/calculations"
	"github.com/shopspring/decimal"
)

var (
	ErrNotConfigured = errors.New("bank synchronization is not configured on this server")
	ErrInvalidDate   = errors.New("the transaction has no valid date")
)

// Service is the part of the Plaid API used by the finance tracker.
type Service interface {
	// CreateLinkToken creates a token to initialize Plaid Link for the user.
	CreateLinkToken(ctx context.Context, userID string) (string, error)

	// ExchangePublicToken exchanges the public token returned by Plaid Link
	// for a permanent access token.
	ExchangePublicToken(ctx context.Context, publicToken string) (Item, error)

	// Transactions returns all transactions of the item between start and end.
	Transactions(ctx context.Context, accessToken string, start, end time.Time) ([]Transaction, error)
}

// Item is a bank connection.
type Item struct {
	ItemID      string
	AccessToken string
}

// Transaction is a transaction fetched from Plaid, with the amount converted
// to a non-negative value and a transaction type.
type Transaction struct {
	TransactionID        string
	AccountID            string
	PendingTransactionID string // ID of the pending transaction this posted transaction replaces
	Amount               decimal.Decimal
	Type                 calculations.TransactionType
	Date                 time.Time
	AuthorizedDate       *time.Time
	Name                 string
	MerchantName         string
	Category             []string
	PrimaryCategory      string
	Subcategory          string
	PaymentChannel       string
	Pending              bool
}
