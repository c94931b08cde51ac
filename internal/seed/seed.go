// Package seed fills an empty database with a demo user and sample data.
package seed

import (
	"context"
	"errors"
	"time"

	"github.com/finance-tracker/backend/internal/auth"
	"github.com/finance-tracker/backend/internal/calculations"
	"github.com/finance-tracker/backend/internal/models"
	"github.com/finance-tracker/backend/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	Email    = "test@example.com"
	Password = "password123"
)

// Run creates the demo data. It does nothing and returns false if the demo
// user already exists.
func Run(ctx context.Context, db *gorm.DB) (bool, error) {
	db = db.WithContext(ctx)

	var existing models.User
	err := db.Where(models.User{Email: Email}).First(&existing).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, models.ErrResourceNotFound) && !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	// The demo password is below the strength requirements of registration
	hash, err := auth.HashPassword(Password, 0)
	if err != nil {
		return false, err
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		return create(tx, hash, time.Now().UTC())
	})
	if err != nil {
		return false, err
	}

	return true, nil
}

func create(tx *gorm.DB, hash string, now time.Time) error {
	user := models.User{Email: Email, Name: "Test User", PasswordHash: hash}
	if err := tx.Create(&user).Error; err != nil {
		return err
	}

	salary := models.Category{UserID: user.ID, Name: "Salary", Type: calculations.TypeIncome, Icon: "💰", Color: "#22c55e"}
	food := models.Category{UserID: user.ID, Name: "Food & Dining", Type: calculations.TypeExpense, Icon: "🍔", Color: "#ef4444"}
	transport := models.Category{UserID: user.ID, Name: "Transport", Type: calculations.TypeExpense, Icon: "🚗", Color: "#3b82f6"}
	for _, c := range []*models.Category{&salary, &food, &transport} {
		if err := tx.Create(c).Error; err != nil {
			return err
		}
	}

	previousMonth := types.MonthOf(now).AddDate(0, -1).First()

	transactions := []models.Transaction{
		{Amount: decimal.NewFromInt(5000), Type: calculations.TypeIncome, CategoryID: &salary.ID, Note: "Monthly salary", Date: now},
		{Amount: decimal.RequireFromString("85.50"), Type: calculations.TypeExpense, CategoryID: &food.ID, Note: "Groceries", Date: now},
		{Amount: decimal.NewFromInt(45), Type: calculations.TypeExpense, CategoryID: &transport.ID, Note: "Gas", Date: now},
		{Amount: decimal.NewFromInt(120), Type: calculations.TypeExpense, CategoryID: &food.ID, Note: "Restaurant", Date: now},
		{Amount: decimal.NewFromInt(5000), Type: calculations.TypeIncome, CategoryID: &salary.ID, Note: "Monthly salary", Date: previousMonth},
	}
	for i := range transactions {
		transactions[i].UserID = user.ID
		if err := tx.Create(&transactions[i]).Error; err != nil {
			return err
		}
	}

	start := types.MonthOf(now).First()
	budget := models.Budget{
		UserID:     user.ID,
		CategoryID: food.ID,
		Limit:      decimal.NewFromInt(500),
		Period:     calculations.PeriodMonthly,
		StartDate:  &start,
	}
	if err := tx.Create(&budget).Error; err != nil {
		return err
	}

	recurring := models.RecurringTransaction{
		UserID:     user.ID,
		Amount:     decimal.NewFromInt(5000),
		Type:       calculations.TypeIncome,
		CategoryID: &salary.ID,
		Note:       "Monthly salary",
		Frequency:  models.FrequencyMonthly,
		NextDate:   types.MonthOf(now).AddDate(0, 1).First(),
		Active:     true,
	}
	return tx.Create(&recurring).Error
}
