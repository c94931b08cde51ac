package plaid

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/finance-tracker/backend/internal/importer"
	"github.com/finance-tracker/backend/internal/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// SyncResult counts the changes of a synchronization.
type SyncResult struct {
	Created int `json:"created" example:"12"` // Number of new transactions
	Updated int `json:"updated" example:"2"`  // Number of transactions that changed, e.g. when they are no longer pending
}

// Add adds the counts of another result.
func (r *SyncResult) Add(o SyncResult) {
	r.Created += o.Created
	r.Updated += o.Updated
}

// Sync fetches the transactions of the last days for the item and stores
// them. Known transactions are updated instead of duplicated. New
// transactions are categorized with the match rules of the user.
func Sync(ctx context.Context, db *gorm.DB, svc Service, item *models.PlaidItem, days int) (SyncResult, error) {
	end := time.Now().In(time.UTC)
	start := end.AddDate(0, 0, -days)

	transactions, err := svc.Transactions(ctx, item.AccessToken, start, end)
	if err != nil {
		return SyncResult{}, err
	}

	rules, err := models.UserMatchRules(db, item.UserID)
	if err != nil {
		return SyncResult{}, err
	}

	// Pending transactions that were posted in the same response are dropped
	posted := make(map[string]bool)
	for _, t := range transactions {
		if t.PendingTransactionID != "" {
			posted[t.PendingTransactionID] = true
		}
	}

	var result SyncResult
	err = db.Transaction(func(tx *gorm.DB) error {
		for _, t := range transactions {
			if t.Pending && posted[t.TransactionID] {
				continue
			}

			created, err := store(tx, item, t, rules)
			if err != nil {
				return fmt.Errorf("transaction %s: %w", t.TransactionID, err)
			}

			if created {
				result.Created++
			} else {
				result.Updated++
			}
		}

		now := time.Now()
		item.LastSync = &now
		return tx.Model(item).Update("last_sync", now.In(time.UTC)).Error
	})
	if err != nil {
		return SyncResult{}, err
	}

	log.Info().Str("item", item.ItemID).Int("created", result.Created).Int("updated", result.Updated).Msg("Plaid sync")
	return result, nil
}

// store creates or updates the transaction. A posted transaction takes over
// the row of the pending transaction it replaces. The category of an
// existing transaction is kept since the user may have changed it.
func store(tx *gorm.DB, item *models.PlaidItem, t Transaction, rules []models.MatchRule) (bool, error) {
	existing, found, err := find(tx, item.UserID, t.TransactionID)
	if err != nil {
		return false, err
	}

	if t.PendingTransactionID != "" {
		pending, pendingFound, err := find(tx, item.UserID, t.PendingTransactionID)
		if err != nil {
			return false, err
		}

		switch {
		case pendingFound && !found:
			existing, found = pending, true
		case pendingFound:
			if err := tx.Delete(&pending).Error; err != nil {
				return false, err
			}
		}
	}

	if found {
		existing.ExternalID = t.TransactionID
		existing.Amount = t.Amount
		existing.Date = t.Date
		existing.Pending = t.Pending

		// Changing the type would invalidate the category
		if existing.Type != t.Type {
			existing.Type = t.Type
			existing.CategoryID = nil
		}

		return false, tx.Omit("Category").Save(&existing).Error
	}

	preview := importer.TransactionPreview{
		Transaction: models.Transaction{
			UserID:     item.UserID,
			Amount:     t.Amount,
			Type:       t.Type,
			Date:       t.Date,
			Note:       note(t),
			Source:     models.SourcePlaid,
			ExternalID: t.TransactionID,
			Pending:    t.Pending,
		},
		Name: t.MerchantName,
	}
	importer.Match(&preview, rules)

	return true, tx.Create(&preview.Transaction).Error
}

func find(tx *gorm.DB, userID uuid.UUID, externalID string) (models.Transaction, bool, error) {
	var transaction models.Transaction
	err := tx.Where(&models.Transaction{UserID: userID, ExternalID: externalID, Source: models.SourcePlaid}).First(&transaction).Error
	if errors.Is(err, models.ErrResourceNotFound) {
		return models.Transaction{}, false, nil
	}

	return transaction, err == nil, err
}

func note(t Transaction) string {
	if t.PrimaryCategory == "" {
		return t.MerchantName
	}
	return fmt.Sprintf("%s (%s)", t.MerchantName, t.PrimaryCategory)
}
