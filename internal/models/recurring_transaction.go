package models

import (
	"strings"
	"time"

	"github.com/finance-tracker/backend/internal/calculations"
	"github.com/finance-tracker/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RecurringFrequency is the interval between two occurrences of a
// recurring transaction.
type RecurringFrequency string

const (
	FrequencyDaily   RecurringFrequency = "DAILY"
	FrequencyWeekly  RecurringFrequency = "WEEKLY"
	FrequencyMonthly RecurringFrequency = "MONTHLY"
	FrequencyYearly  RecurringFrequency = "YEARLY"
)

// Valid reports whether f is one of the known frequencies.
func (f RecurringFrequency) Valid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyYearly:
		return true
	}
	return false
}

// Next returns the occurrence following t. Monthly and yearly occurrences
// fall on anchorDay, or the last day of a month that is too short for it.
// An anchorDay below 1 uses the day of t.
func (f RecurringFrequency) Next(t time.Time, anchorDay int) time.Time {
	switch f {
	case FrequencyDaily:
		return t.AddDate(0, 0, 1)
	case FrequencyWeekly:
		return t.AddDate(0, 0, 7)
	case FrequencyYearly:
		return onDay(types.AddMonthsClamped(t, 12), anchorDay)
	default:
		return onDay(types.AddMonthsClamped(t, 1), anchorDay)
	}
}

func onDay(t time.Time, day int) time.Time {
	if day < 1 {
		return t
	}

	last := time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
	if day > last {
		day = last
	}

	return time.Date(t.Year(), t.Month(), day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// RecurringTransaction is a template for transactions that repeat.
type RecurringTransaction struct {
	DefaultModel
	UserID     uuid.UUID                    `gorm:"type:uuid;index"`
	Amount     decimal.Decimal              `gorm:"type:DECIMAL(20,8)"`
	Type       calculations.TransactionType `gorm:"type:varchar(10)"`
	CategoryID *uuid.UUID                   `gorm:"type:uuid"`
	Category   *Category                    `gorm:"constraint:OnDelete:SET NULL"`
	Note       string
	Frequency  RecurringFrequency `gorm:"type:varchar(10)"`
	NextDate   time.Time
	AnchorDay  int // day of the month occurrences fall on, taken from the first NextDate
	LastRun    *time.Time
	Active     bool
}

// AfterFind enforces dates to be in UTC.
func (r *RecurringTransaction) AfterFind(tx *gorm.DB) (err error) {
	err = r.DefaultModel.AfterFind(tx)
	if err != nil {
		return err
	}

	r.NextDate = r.NextDate.In(time.UTC)
	r.LastRun = utc(r.LastRun)
	return nil
}

// BeforeSave validates the template the same way transactions are validated.
func (r *RecurringTransaction) BeforeSave(tx *gorm.DB) error {
	r.Note = strings.TrimSpace(r.Note)
	r.NextDate = r.NextDate.In(time.UTC)
	r.LastRun = utc(r.LastRun)

	if r.AnchorDay < 1 || r.AnchorDay > 31 {
		r.AnchorDay = r.NextDate.Day()
	}

	if r.CategoryID != nil && *r.CategoryID == uuid.Nil {
		r.CategoryID = nil
	}

	err := validateTransaction(r.Amount, r.Type)
	if err != nil {
		return err
	}

	if !r.Frequency.Valid() {
		return ErrInvalidFrequency
	}

	if r.CategoryID != nil {
		return checkCategory(tx, r.UserID, *r.CategoryID, r.Type)
	}

	return nil
}
