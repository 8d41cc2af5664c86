// internal/services/helpers_test.go
package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/wl-sites/offgrid-biz-flow/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	// One connection only: each :memory: connection is its own database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Sale{},
		&models.Expense{},
	)
	require.NoError(t, err)

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	user := &models.User{
		Email:    email,
		Language: models.LanguageFrench,
		Currency: models.CurrencyCDF,
	}
	require.NoError(t, user.SetPassword("Secret123"))
	require.NoError(t, db.Create(user).Error)

	return user
}

func createTestProduct(t *testing.T, db *gorm.DB, userID uuid.UUID, name string, stock int, purchase, sale string) *models.Product {
	t.Helper()

	product := &models.Product{
		UserID:        userID,
		Name:          name,
		Category:      "general",
		InitialStock:  stock,
		CurrentStock:  stock,
		PurchasePrice: dec(purchase),
		SalePrice:     dec(sale),
	}
	require.NoError(t, db.Create(product).Error)

	return product
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
