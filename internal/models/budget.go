package models

import (
	"time"

	"github.com/finance-tracker/backend/internal/calculations"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Budget is a spending limit for a category over a recurring period.
type Budget struct {
	DefaultModel
	UserID     uuid.UUID                 `gorm:"type:uuid;index"`
	CategoryID uuid.UUID                 `gorm:"type:uuid"`
	Category   Category                  `gorm:"constraint:OnDelete:CASCADE"`
	Limit      decimal.Decimal           `gorm:"type:DECIMAL(20,8)"`
	Period     calculations.BudgetPeriod `gorm:"type:varchar(10)"`
	StartDate  *time.Time
	EndDate    *time.Time
}

// AfterFind enforces dates to be in UTC.
func (b *Budget) AfterFind(tx *gorm.DB) (err error) {
	err = b.DefaultModel.AfterFind(tx)
	if err != nil {
		return err
	}

	b.StartDate = utc(b.StartDate)
	b.EndDate = utc(b.EndDate)
	return nil
}

// BeforeSave validates limit, period and date range and verifies
// that the category belongs to the user.
func (b *Budget) BeforeSave(tx *gorm.DB) error {
	b.StartDate = utc(b.StartDate)
	b.EndDate = utc(b.EndDate)

	if b.Limit.IsNegative() {
		return ErrInvalidAmount
	}

	if !b.Period.Valid() {
		return ErrInvalidBudgetPeriod
	}

	if b.StartDate != nil && b.EndDate != nil && b.StartDate.After(*b.EndDate) {
		return ErrInvalidDateRange
	}

	return checkCategory(tx, b.UserID, b.CategoryID, "")
}

// Record returns the budget as used by the calculations.
func (b Budget) Record() calculations.Budget {
	return calculations.Budget{
		ID:         b.ID,
		CategoryID: b.CategoryID,
		Limit:      b.Limit,
		Period:     b.Period,
		StartDate:  b.StartDate,
		EndDate:    b.EndDate,
	}
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}

	u := t.In(time.UTC)
	return &u
}
