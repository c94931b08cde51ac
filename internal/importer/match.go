package importer

import (
	"github.com/finance-tracker/backend/internal/models"
	"github.com/google/uuid"
	"github.com/ryanuber/go-glob"
	"gorm.io/gorm"
)

// Match applies the first matching rule to the preview. Rules are expected
// in priority order. Rules pointing to a category of the other transaction
// type are skipped, and previews that already have a category are left alone.
func Match(preview *TransactionPreview, rules []models.MatchRule) {
	if preview.Transaction.CategoryID != nil || preview.Name == "" {
		return
	}

	for _, rule := range rules {
		if rule.Category.Type != preview.Transaction.Type {
			continue
		}

		if glob.Glob(rule.Match, preview.Name) {
			id := rule.CategoryID
			preview.Transaction.CategoryID = &id
			preview.MatchRuleID = rule.ID
			return
		}
	}
}

// Duplicates sets the DuplicateTransactionIDs of every preview to the
// stored transactions of the user that have the same external ID.
func Duplicates(db *gorm.DB, userID uuid.UUID, previews []TransactionPreview) error {
	for i := range previews {
		externalID := previews[i].Transaction.ExternalID
		if externalID == "" {
			continue
		}

		var ids []uuid.UUID
		err := db.
			Model(&models.Transaction{}).
			Where("user_id = ? AND external_id = ?", userID, externalID).
			Pluck("id", &ids).Error
		if err != nil {
			return err
		}

		previews[i].DuplicateTransactionIDs = ids
	}

	return nil
}
