// internal/services/product_service_test.go
package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wl-sites/offgrid-biz-flow/internal/models"
	"github.com/wl-sites/offgrid-biz-flow/internal/utils"
)

func TestCreateProduct(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "owner@example.com")

	service := NewProductService(db, nil)

	product, err := service.CreateProduct(context.Background(), user.ID, &CreateProductRequest{
		Name:          "Soap",
		Category:      "hygiene",
		Subcategory:   "bar",
		InitialStock:  10,
		PurchasePrice: dec("1.00"),
		SalePrice:     dec("2.50"),
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, product.ID)
	assert.Equal(t, user.ID, product.UserID)
	assert.Equal(t, 10, product.InitialStock)
	assert.Equal(t, 10, product.CurrentStock)
	assert.True(t, product.PurchasePrice.Equal(dec("1.00")))
	assert.True(t, product.SalePrice.Equal(dec("2.50")))
}

func TestCreateProductRejectsNegativeValues(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "owner@example.com")

	service := NewProductService(db, nil)

	_, err := service.CreateProduct(context.Background(), user.ID, &CreateProductRequest{
		Name:         "Soap",
		Category:     "hygiene",
		InitialStock: -1,
	})
	assert.ErrorIs(t, err, ErrNegativeStock)

	_, err = service.CreateProduct(context.Background(), user.ID, &CreateProductRequest{
		Name:          "Soap",
		Category:      "hygiene",
		PurchasePrice: dec("-1.00"),
	})
	assert.ErrorIs(t, err, ErrNegativePrice)

	_, err = service.CreateProduct(context.Background(), user.ID, &CreateProductRequest{
		Name:      "Soap",
		Category:  "hygiene",
		SalePrice: dec("-0.01"),
	})
	assert.ErrorIs(t, err, ErrNegativePrice)
}

func TestCreateProductRequiresName(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "owner@example.com")

	service := NewProductService(db, nil)

	_, err := service.CreateProduct(context.Background(), user.ID, &CreateProductRequest{
		Category: "hygiene",
	})
	assert.Error(t, err)
}

func TestUpdateProductStockCorrection(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "owner@example.com")
	product := createTestProduct(t, db, user.ID, "Soap", 10, "1.00", "2.50")

	service := NewProductService(db, nil)

	corrected := 25
	updated, err := service.UpdateProduct(context.Background(), product.ID, user.ID, &UpdateProductRequest{
		CurrentStock: &corrected,
	})
	require.NoError(t, err)
	assert.Equal(t, 25, updated.CurrentStock)
	// A correction never rewrites the opening stock
	assert.Equal(t, 10, updated.InitialStock)

	negative := -5
	_, err = service.UpdateProduct(context.Background(), product.ID, user.ID, &UpdateProductRequest{
		CurrentStock: &negative,
	})
	assert.ErrorIs(t, err, ErrNegativeStock)
}

func TestUpdateProductPrices(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "owner@example.com")
	product := createTestProduct(t, db, user.ID, "Soap", 10, "1.00", "2.50")

	service := NewProductService(db, nil)

	newSale := dec("3.00")
	updated, err := service.UpdateProduct(context.Background(), product.ID, user.ID, &UpdateProductRequest{
		SalePrice: &newSale,
	})
	require.NoError(t, err)
	assert.True(t, updated.SalePrice.Equal(dec("3.00")))
	assert.True(t, updated.PurchasePrice.Equal(dec("1.00")))

	badPrice := decimal.NewFromInt(-2)
	_, err = service.UpdateProduct(context.Background(), product.ID, user.ID, &UpdateProductRequest{
		PurchasePrice: &badPrice,
	})
	assert.ErrorIs(t, err, ErrNegativePrice)
}

func TestUpdateProductNotFound(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "owner@example.com")

	service := NewProductService(db, nil)

	_, err := service.UpdateProduct(context.Background(), uuid.New(), user.ID, &UpdateProductRequest{
		Name: "Anything",
	})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestDeleteProductKeepsSaleHistory(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "owner@example.com")
	product := createTestProduct(t, db, user.ID, "Soap", 10, "1.00", "2.50")

	saleService := NewSaleService(db, nil)
	_, err := saleService.RecordSale(context.Background(), user.ID, &RecordSaleRequest{
		ProductID: product.ID,
		Quantity:  2,
	})
	require.NoError(t, err)

	productService := NewProductService(db, nil)
	require.NoError(t, productService.DeleteProduct(context.Background(), product.ID, user.ID))

	_, err = productService.GetProduct(product.ID, user.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)

	// The ledger keeps its denormalized snapshot
	var sales []models.Sale
	require.NoError(t, db.Where("user_id = ?", user.ID).Find(&sales).Error)
	require.Len(t, sales, 1)
	assert.Equal(t, "Soap", sales[0].ProductName)
}

func TestListProducts(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "owner@example.com")
	other := createTestUser(t, db, "other@example.com")

	createTestProduct(t, db, user.ID, "Savon de Marseille", 10, "1.00", "2.50")
	createTestProduct(t, db, user.ID, "Rice 5kg", 20, "4.00", "6.00")
	createTestProduct(t, db, other.ID, "Soap", 5, "1.00", "2.00")

	service := NewProductService(db, nil)

	products, total, err := service.ListProducts(user.ID, utils.PaginationParams{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, products, 2)

	// Case-insensitive name search
	products, total, err = service.ListProducts(user.ID, utils.PaginationParams{Page: 1, Limit: 20, Search: "savon"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, products, 1)
	assert.Equal(t, "Savon de Marseille", products[0].Name)
}

func TestListProductsByCategory(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "owner@example.com")

	soap := &models.Product{
		UserID:        user.ID,
		Name:          "Soap",
		Category:      "hygiene",
		InitialStock:  10,
		CurrentStock:  10,
		PurchasePrice: dec("1.00"),
		SalePrice:     dec("2.50"),
	}
	require.NoError(t, db.Create(soap).Error)
	createTestProduct(t, db, user.ID, "Rice 5kg", 20, "4.00", "6.00")

	service := NewProductService(db, nil)

	products, total, err := service.ListProducts(user.ID, utils.PaginationParams{Page: 1, Limit: 20, Category: "hygiene"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, products, 1)
	assert.Equal(t, "Soap", products[0].Name)
}
