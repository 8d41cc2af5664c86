// internal/services/product_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/wl-sites/offgrid-biz-flow/internal/models"
	"github.com/wl-sites/offgrid-biz-flow/internal/realtime"
	"github.com/wl-sites/offgrid-biz-flow/internal/utils"
)

// ProductService is the catalog: every query is scoped to the owning user,
// and stock only ever moves through two paths — the sale commit in
// SaleService, or an explicit manual correction via UpdateProduct.
type ProductService struct {
	db        *gorm.DB
	publisher *realtime.Publisher
}

type CreateProductRequest struct {
	Name          string          `json:"name" validate:"required,min=1,max=255"`
	Category      string          `json:"category" validate:"required,max=100"`
	Subcategory   string          `json:"subcategory,omitempty" validate:"omitempty,max=100"`
	InitialStock  int             `json:"initial_stock"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SalePrice     decimal.Decimal `json:"sale_price"`
}

type UpdateProductRequest struct {
	Name          string           `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Category      string           `json:"category,omitempty" validate:"omitempty,max=100"`
	Subcategory   *string          `json:"subcategory,omitempty" validate:"omitempty,max=100"`
	CurrentStock  *int             `json:"current_stock,omitempty"` // manual stock correction
	PurchasePrice *decimal.Decimal `json:"purchase_price,omitempty"`
	SalePrice     *decimal.Decimal `json:"sale_price,omitempty"`
}

func NewProductService(db *gorm.DB, publisher *realtime.Publisher) *ProductService {
	return &ProductService{
		db:        db,
		publisher: publisher,
	}
}

func (s *ProductService) CreateProduct(ctx context.Context, userID uuid.UUID, req *CreateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if req.InitialStock < 0 {
		return nil, ErrNegativeStock
	}
	if req.PurchasePrice.IsNegative() || req.SalePrice.IsNegative() {
		return nil, ErrNegativePrice
	}

	product := &models.Product{
		UserID:        userID,
		Name:          req.Name,
		Category:      req.Category,
		Subcategory:   req.Subcategory,
		InitialStock:  req.InitialStock,
		CurrentStock:  req.InitialStock,
		PurchasePrice: req.PurchasePrice,
		SalePrice:     req.SalePrice,
	}

	if err := s.db.Create(product).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.publisher.Publish(ctx, userID, realtime.Event{
		Collection: "products",
		Action:     "created",
		RecordID:   product.ID.String(),
	})

	return product, nil
}

func (s *ProductService) GetProduct(id, userID uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &product, nil
}

func (s *ProductService) UpdateProduct(ctx context.Context, id, userID uuid.UUID, req *UpdateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	product, err := s.GetProduct(id, userID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Category != "" {
		updates["category"] = req.Category
	}
	if req.Subcategory != nil {
		updates["subcategory"] = *req.Subcategory
	}
	if req.CurrentStock != nil {
		if *req.CurrentStock < 0 {
			return nil, ErrNegativeStock
		}
		updates["current_stock"] = *req.CurrentStock
	}
	if req.PurchasePrice != nil {
		if req.PurchasePrice.IsNegative() {
			return nil, ErrNegativePrice
		}
		updates["purchase_price"] = *req.PurchasePrice
	}
	if req.SalePrice != nil {
		if req.SalePrice.IsNegative() {
			return nil, ErrNegativePrice
		}
		updates["sale_price"] = *req.SalePrice
	}

	if len(updates) > 0 {
		if err := s.db.Model(product).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update product: %w", err)
		}
	}

	// Reload so callers see refreshed timestamps alongside the new values
	if err := s.db.First(product, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	s.publisher.Publish(ctx, userID, realtime.Event{
		Collection: "products",
		Action:     "updated",
		RecordID:   id.String(),
	})

	return product, nil
}

// DeleteProduct removes the catalog record only. Sales keep their
// denormalized snapshot, so history and aggregation survive the deletion.
func (s *ProductService) DeleteProduct(ctx context.Context, id, userID uuid.UUID) error {
	product, err := s.GetProduct(id, userID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(product).Error; err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	s.publisher.Publish(ctx, userID, realtime.Event{
		Collection: "products",
		Action:     "deleted",
		RecordID:   id.String(),
	})

	return nil
}

func (s *ProductService) ListProducts(userID uuid.UUID, params utils.PaginationParams) ([]models.Product, int64, error) {
	query := s.db.Model(&models.Product{}).Where("user_id = ?", userID)

	if params.Category != "" {
		query = query.Where("category = ?", params.Category)
	}

	if params.Search != "" {
		searchTerm := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(name) LIKE ?", searchTerm)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	allowedSortFields := []string{"created_at", "updated_at", "name", "category", "current_stock", "sale_price"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch products: %w", err)
	}

	return products, total, nil
}
