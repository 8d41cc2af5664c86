// internal/services/sale_service_test.go
package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wl-sites/offgrid-biz-flow/internal/models"
	"github.com/wl-sites/offgrid-biz-flow/internal/utils"
)

func TestRecordSale(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "seller@example.com")
	product := createTestProduct(t, db, user.ID, "Soap", 10, "1.00", "2.50")

	service := NewSaleService(db, nil)

	sale, err := service.RecordSale(context.Background(), user.ID, &RecordSaleRequest{
		ProductID: product.ID,
		Quantity:  3,
	})
	require.NoError(t, err)

	assert.Equal(t, product.ID, sale.ProductID)
	assert.Equal(t, "Soap", sale.ProductName)
	assert.Equal(t, 3, sale.Quantity)
	assert.True(t, sale.UnitPrice.Equal(dec("2.50")))
	assert.True(t, sale.TotalAmount.Equal(dec("7.50")))
	assert.True(t, sale.Profit.Equal(dec("4.50")))
	assert.WithinDuration(t, time.Now().UTC(), sale.Date, 5*time.Second)

	var reloaded models.Product
	require.NoError(t, db.First(&reloaded, "id = ?", product.ID).Error)
	assert.Equal(t, 7, reloaded.CurrentStock)
	assert.Equal(t, 10, reloaded.InitialStock)
}

func TestRecordSaleInsufficientStock(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "seller@example.com")
	product := createTestProduct(t, db, user.ID, "Soap", 7, "1.00", "2.50")

	service := NewSaleService(db, nil)

	_, err := service.RecordSale(context.Background(), user.ID, &RecordSaleRequest{
		ProductID: product.ID,
		Quantity:  8,
	})
	assert.ErrorIs(t, err, ErrInsufficientStock)

	// The failed attempt must leave no trace: no ledger row, stock untouched.
	var saleCount int64
	require.NoError(t, db.Model(&models.Sale{}).Count(&saleCount).Error)
	assert.Zero(t, saleCount)

	var reloaded models.Product
	require.NoError(t, db.First(&reloaded, "id = ?", product.ID).Error)
	assert.Equal(t, 7, reloaded.CurrentStock)
}

func TestRecordSaleExactStockSellsOut(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "seller@example.com")
	product := createTestProduct(t, db, user.ID, "Soap", 4, "1.00", "2.50")

	service := NewSaleService(db, nil)

	_, err := service.RecordSale(context.Background(), user.ID, &RecordSaleRequest{
		ProductID: product.ID,
		Quantity:  4,
	})
	require.NoError(t, err)

	var reloaded models.Product
	require.NoError(t, db.First(&reloaded, "id = ?", product.ID).Error)
	assert.Equal(t, 0, reloaded.CurrentStock)

	// The next unit is refused
	_, err = service.RecordSale(context.Background(), user.ID, &RecordSaleRequest{
		ProductID: product.ID,
		Quantity:  1,
	})
	assert.ErrorIs(t, err, ErrInsufficientStock)
}

func TestRecordSaleInvalidQuantity(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "seller@example.com")
	product := createTestProduct(t, db, user.ID, "Soap", 10, "1.00", "2.50")

	service := NewSaleService(db, nil)

	for _, quantity := range []int{0, -3} {
		_, err := service.RecordSale(context.Background(), user.ID, &RecordSaleRequest{
			ProductID: product.ID,
			Quantity:  quantity,
		})
		assert.ErrorIs(t, err, ErrInvalidQuantity, "quantity %d", quantity)
	}
}

func TestRecordSaleUnknownProduct(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "seller@example.com")

	service := NewSaleService(db, nil)

	_, err := service.RecordSale(context.Background(), user.ID, &RecordSaleRequest{
		ProductID: uuid.New(),
		Quantity:  1,
	})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestRecordSaleScopedToOwner(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db, "owner@example.com")
	intruder := createTestUser(t, db, "intruder@example.com")
	product := createTestProduct(t, db, owner.ID, "Soap", 10, "1.00", "2.50")

	service := NewSaleService(db, nil)

	_, err := service.RecordSale(context.Background(), intruder.ID, &RecordSaleRequest{
		ProductID: product.ID,
		Quantity:  1,
	})
	assert.ErrorIs(t, err, ErrProductNotFound)

	var reloaded models.Product
	require.NoError(t, db.First(&reloaded, "id = ?", product.ID).Error)
	assert.Equal(t, 10, reloaded.CurrentStock)
}

func TestListSalesMostRecentFirst(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "seller@example.com")
	product := createTestProduct(t, db, user.ID, "Soap", 100, "1.00", "2.50")

	now := time.Now().UTC()
	for i, offset := range []time.Duration{-48 * time.Hour, -24 * time.Hour, 0} {
		sale := &models.Sale{
			UserID:      user.ID,
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    i + 1,
			UnitPrice:   product.SalePrice,
			TotalAmount: product.SalePrice.Mul(dec("1")),
			Profit:      dec("1.50"),
			Date:        now.Add(offset),
		}
		require.NoError(t, db.Create(sale).Error)
	}

	service := NewSaleService(db, nil)

	sales, total, err := service.ListSales(user.ID, utils.PaginationParams{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, sales, 3)
	assert.True(t, sales[0].Date.After(sales[1].Date))
	assert.True(t, sales[1].Date.After(sales[2].Date))
}

func TestListSalesScopedToUser(t *testing.T) {
	db := setupTestDB(t)
	alice := createTestUser(t, db, "alice@example.com")
	bob := createTestUser(t, db, "bob@example.com")
	product := createTestProduct(t, db, alice.ID, "Soap", 10, "1.00", "2.50")

	service := NewSaleService(db, nil)

	_, err := service.RecordSale(context.Background(), alice.ID, &RecordSaleRequest{
		ProductID: product.ID,
		Quantity:  2,
	})
	require.NoError(t, err)

	sales, total, err := service.ListSales(bob.ID, utils.PaginationParams{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, sales)
}
