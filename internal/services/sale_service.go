// internal/services/sale_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/wl-sites/offgrid-biz-flow/internal/models"
	"github.com/wl-sites/offgrid-biz-flow/internal/realtime"
	"github.com/wl-sites/offgrid-biz-flow/internal/utils"
)

// SaleService is the append-only sale ledger. Sales have no update or
// delete path: once committed they are permanent.
type SaleService struct {
	db        *gorm.DB
	publisher *realtime.Publisher
}

type RecordSaleRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,min=1"`
}

func NewSaleService(db *gorm.DB, publisher *realtime.Publisher) *SaleService {
	return &SaleService{
		db:        db,
		publisher: publisher,
	}
}

// RecordSale appends a sale and consumes stock in a single database
// transaction. The stock decrement carries its own current_stock >= quantity
// guard, so two racing sales against the same product can never drive the
// stock negative: the second one fails with ErrInsufficientStock and the
// whole transaction, sale row included, rolls back.
func (s *SaleService) RecordSale(ctx context.Context, userID uuid.UUID, req *RecordSaleRequest) (*models.Sale, error) {
	if err := utils.ValidateStruct(req); err != nil {
		if req.Quantity < 1 {
			return nil, ErrInvalidQuantity
		}
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var sale *models.Sale

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.Where("id = ? AND user_id = ?", req.ProductID, userID).First(&product).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return fmt.Errorf("database error: %w", err)
		}

		if product.CurrentStock < req.Quantity {
			return ErrInsufficientStock
		}

		quantity := decimal.NewFromInt(int64(req.Quantity))
		unitPrice := product.SalePrice

		sale = &models.Sale{
			UserID:      userID,
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    req.Quantity,
			UnitPrice:   unitPrice,
			TotalAmount: unitPrice.Mul(quantity),
			Profit:      product.SalePrice.Sub(product.PurchasePrice).Mul(quantity),
			Date:        time.Now().UTC(),
		}

		if err := tx.Create(sale).Error; err != nil {
			return fmt.Errorf("failed to record sale: %w", err)
		}

		// Conditional decrement: the WHERE guard re-checks stock at write
		// time, which is what protects against a concurrent sale that
		// passed the read check above.
		result := tx.Model(&models.Product{}).
			Where("id = ? AND user_id = ? AND current_stock >= ?", product.ID, userID, req.Quantity).
			UpdateColumn("current_stock", gorm.Expr("current_stock - ?", req.Quantity))
		if result.Error != nil {
			return fmt.Errorf("failed to update stock: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrInsufficientStock
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(ctx, userID, realtime.Event{
		Collection: "sales",
		Action:     "created",
		RecordID:   sale.ID.String(),
	})

	return sale, nil
}

// ListSales returns the ledger most-recent-first for display. Aggregation
// in StatsService never depends on this ordering.
func (s *SaleService) ListSales(userID uuid.UUID, params utils.PaginationParams) ([]models.Sale, int64, error) {
	query := s.db.Model(&models.Sale{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count sales: %w", err)
	}

	query = query.Order("date DESC, created_at DESC")
	query = utils.ApplyPagination(query, params)

	var sales []models.Sale
	if err := query.Find(&sales).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch sales: %w", err)
	}

	return sales, total, nil
}
