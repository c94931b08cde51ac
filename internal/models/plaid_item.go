package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PlaidItem is a bank connection established through Plaid Link.
type PlaidItem struct {
	DefaultModel
	UserID          uuid.UUID `gorm:"type:uuid;index"`
	ItemID          string    `gorm:"uniqueIndex"`
	AccessToken     string
	InstitutionID   string
	InstitutionName string
	LastSync        *time.Time
}

// AfterFind enforces dates to be in UTC.
func (p *PlaidItem) AfterFind(tx *gorm.DB) (err error) {
	err = p.DefaultModel.AfterFind(tx)
	if err != nil {
		return err
	}

	p.LastSync = utc(p.LastSync)
	return nil
}

// BeforeSave trims whitespace from all strings.
func (p *PlaidItem) BeforeSave(_ *gorm.DB) error {
	p.ItemID = strings.TrimSpace(p.ItemID)
	p.InstitutionID = strings.TrimSpace(p.InstitutionID)
	p.InstitutionName = strings.TrimSpace(p.InstitutionName)
	p.LastSync = utc(p.LastSync)

	return nil
}
