// internal/services/expense_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/wl-sites/offgrid-biz-flow/internal/models"
	"github.com/wl-sites/offgrid-biz-flow/internal/realtime"
	"github.com/wl-sites/offgrid-biz-flow/internal/utils"
)

// ExpenseService is an append-and-delete log, independent of the catalog.
// Expenses have no update path.
type ExpenseService struct {
	db        *gorm.DB
	publisher *realtime.Publisher
}

type AddExpenseRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description" validate:"required,max=255"`
	Category    string          `json:"category,omitempty" validate:"omitempty,max=100"`
	Date        *time.Time      `json:"date,omitempty"`
}

func NewExpenseService(db *gorm.DB, publisher *realtime.Publisher) *ExpenseService {
	return &ExpenseService{
		db:        db,
		publisher: publisher,
	}
}

func (s *ExpenseService) AddExpense(ctx context.Context, userID uuid.UUID, req *AddExpenseRequest) (*models.Expense, error) {
	if strings.TrimSpace(req.Description) == "" {
		return nil, ErrInvalidDescription
	}
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if !req.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	expense := &models.Expense{
		UserID:      userID,
		Amount:      req.Amount,
		Description: req.Description,
		Category:    req.Category,
		Date:        time.Now().UTC(),
	}
	if req.Date != nil {
		expense.Date = *req.Date
	}

	if err := s.db.Create(expense).Error; err != nil {
		return nil, fmt.Errorf("failed to add expense: %w", err)
	}

	s.publisher.Publish(ctx, userID, realtime.Event{
		Collection: "expenses",
		Action:     "created",
		RecordID:   expense.ID.String(),
	})

	return expense, nil
}

func (s *ExpenseService) DeleteExpense(ctx context.Context, id, userID uuid.UUID) error {
	var expense models.Expense
	if err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&expense).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrExpenseNotFound
		}
		return fmt.Errorf("database error: %w", err)
	}

	if err := s.db.Delete(&expense).Error; err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	s.publisher.Publish(ctx, userID, realtime.Event{
		Collection: "expenses",
		Action:     "deleted",
		RecordID:   id.String(),
	})

	return nil
}

func (s *ExpenseService) ListExpenses(userID uuid.UUID, params utils.PaginationParams) ([]models.Expense, int64, error) {
	query := s.db.Model(&models.Expense{}).Where("user_id = ?", userID)

	if params.Category != "" {
		query = query.Where("category = ?", params.Category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count expenses: %w", err)
	}

	query = query.Order("date DESC, created_at DESC")
	query = utils.ApplyPagination(query, params)

	var expenses []models.Expense
	if err := query.Find(&expenses).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch expenses: %w", err)
	}

	return expenses, total, nil
}
