package models

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MatchRule assigns a category to imported transactions whose name matches
// a glob pattern. Rules with a lower priority are applied first.
type MatchRule struct {
	DefaultModel
	UserID     uuid.UUID `gorm:"type:uuid;index"`
	Priority   uint
	Match      string
	CategoryID uuid.UUID `gorm:"type:uuid"`
	Category   Category  `gorm:"constraint:OnDelete:CASCADE"`
}

// BeforeSave trims the match and verifies that the category belongs to the user.
func (r *MatchRule) BeforeSave(tx *gorm.DB) error {
	r.Match = strings.TrimSpace(r.Match)
	if r.Match == "" {
		return ErrMatchRuleEmpty
	}

	return checkCategory(tx, r.UserID, r.CategoryID, "")
}

// UserMatchRules loads the match rules of a user in the order they apply,
// with their categories.
func UserMatchRules(db *gorm.DB, userID uuid.UUID) ([]MatchRule, error) {
	var rules []MatchRule
	err := db.
		Preload("Category").
		Where("user_id = ?", userID).
		Order("priority ASC, match ASC").
		Find(&rules).Error

	return rules, err
}
