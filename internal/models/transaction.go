package models

import (
	"strings"
	"time"

	"github.com/finance-tracker/backend/internal/calculations"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TransactionSource tells where a transaction was recorded.
type TransactionSource string

const (
	SourceManual TransactionSource = "manual"
	SourcePlaid  TransactionSource = "plaid"
	SourceOFX    TransactionSource = "ofx"
)

// Transaction is a single flow of money of a user.
type Transaction struct {
	DefaultModel
	UserID     uuid.UUID                    `gorm:"type:uuid;index"`
	Amount     decimal.Decimal              `gorm:"type:DECIMAL(20,8)"`
	Type       calculations.TransactionType `gorm:"type:varchar(10)"`
	Date       time.Time                    `gorm:"index"`
	Note       string
	CategoryID *uuid.UUID `gorm:"type:uuid"`
	Category   *Category  `gorm:"constraint:OnDelete:SET NULL"`
	Source     TransactionSource
	ExternalID string `gorm:"index"` // Plaid transaction ID or the import hash of a statement line, used in duplicate detection
	Pending    bool
}

// AfterFind enforces dates to be in UTC.
func (t *Transaction) AfterFind(tx *gorm.DB) (err error) {
	err = t.DefaultModel.AfterFind(tx)
	if err != nil {
		return err
	}

	t.Date = t.Date.In(time.UTC)
	return nil
}

// BeforeSave
//   - trims whitespace from string fields
//   - sets the timezone for the Date to UTC
//   - validates amount, type and date
//   - verifies that the category exists for the user and has the same type
func (t *Transaction) BeforeSave(tx *gorm.DB) error {
	t.Note = strings.TrimSpace(t.Note)
	t.ExternalID = strings.TrimSpace(t.ExternalID)

	// Ensure that the Category ID is nil and not a pointer to a nil UUID
	if t.CategoryID != nil && *t.CategoryID == uuid.Nil {
		t.CategoryID = nil
	}

	if t.Source == "" {
		t.Source = SourceManual
	}

	if t.Date.IsZero() {
		t.Date = time.Now()
	}
	t.Date = t.Date.In(time.UTC)

	err := validateTransaction(t.Amount, t.Type)
	if err != nil {
		return err
	}

	switch t.Source {
	case SourceManual:
		if t.Date.After(time.Now()) {
			return ErrTransactionDateInFuture
		}
	case SourcePlaid, SourceOFX:
	default:
		return ErrInvalidTransactionSrc
	}

	if t.CategoryID != nil {
		return checkCategory(tx, t.UserID, *t.CategoryID, t.Type)
	}

	return nil
}

func validateTransaction(amount decimal.Decimal, transactionType calculations.TransactionType) error {
	if amount.IsNegative() {
		return ErrInvalidAmount
	}

	if !transactionType.Valid() {
		return ErrInvalidTransactionType
	}

	return nil
}

// Record returns the transaction as used by the calculations. The category
// snapshot is only set when the category has been loaded.
func (t Transaction) Record() calculations.Transaction {
	r := calculations.Transaction{
		ID:         t.ID,
		Amount:     t.Amount,
		Type:       t.Type,
		Date:       t.Date,
		CategoryID: t.CategoryID,
		Note:       t.Note,
	}

	if t.Category != nil && t.Category.ID != uuid.Nil {
		c := t.Category.Record()
		r.Category = &c
	}

	return r
}

// Records converts a list of transactions.
func Records(transactions []Transaction) []calculations.Transaction {
	records := make([]calculations.Transaction, 0, len(transactions))
	for _, t := range transactions {
		records = append(records, t.Record())
	}
	return records
}

// UserTransactions loads all transactions of a user between start and end,
// both inclusive, with their categories.
func UserTransactions(db *gorm.DB, userID uuid.UUID, start, end time.Time) ([]Transaction, error) {
	var transactions []Transaction
	err := db.
		Preload("Category").
		Where("user_id = ?", userID).
		Where("date >= ? AND date <= ?", start.In(time.UTC), end.In(time.UTC)).
		Order("date ASC, created_at ASC").
		Find(&transactions).Error

	return transactions, err
}
