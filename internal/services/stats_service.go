// internal/services/stats_service.go
package services

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/wl-sites/offgrid-biz-flow/internal/models"
)

// StatsService derives dashboard figures by reducing over the current sale
// ledger and expense log. It keeps no state and no cache: every call
// recomputes from a fresh snapshot, so two calls over unchanged data always
// agree.
type StatsService struct {
	db *gorm.DB
}

type ProductProfit struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	TotalProfit decimal.Decimal `json:"total_profit"`
	UnitsSold   int             `json:"units_sold"`
}

type DashboardStats struct {
	TotalRevenue   decimal.Decimal `json:"total_revenue"`
	TotalExpenses  decimal.Decimal `json:"total_expenses"`
	NetProfit      decimal.Decimal `json:"net_profit"`
	ProductProfits []ProductProfit `json:"product_profits"`
}

func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{db: db}
}

// GetDashboardStats computes:
//
//	total_revenue  = Σ sale.total_amount
//	total_expenses = Σ expense.amount
//	net_profit     = Σ sale.profit − total_expenses
//
// Net profit is margin-based, not revenue-based: revenue − expenses would
// ignore what the sold goods cost to buy.
//
// Per-product figures group the ledger by product id using the sale's
// denormalized product name, so products deleted from the catalog keep
// their place in the history.
func (s *StatsService) GetDashboardStats(userID uuid.UUID) (*DashboardStats, error) {
	var sales []models.Sale
	if err := s.db.Where("user_id = ?", userID).Find(&sales).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch sales: %w", err)
	}

	var expenses []models.Expense
	if err := s.db.Where("user_id = ?", userID).Find(&expenses).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch expenses: %w", err)
	}

	stats := &DashboardStats{
		TotalRevenue:   decimal.Zero,
		TotalExpenses:  decimal.Zero,
		NetProfit:      decimal.Zero,
		ProductProfits: []ProductProfit{},
	}

	totalProfit := decimal.Zero
	perProduct := make(map[uuid.UUID]*ProductProfit)

	for _, sale := range sales {
		stats.TotalRevenue = stats.TotalRevenue.Add(sale.TotalAmount)
		totalProfit = totalProfit.Add(sale.Profit)

		entry, ok := perProduct[sale.ProductID]
		if !ok {
			entry = &ProductProfit{
				ProductID:   sale.ProductID,
				ProductName: sale.ProductName,
				TotalProfit: decimal.Zero,
			}
			perProduct[sale.ProductID] = entry
		}
		entry.TotalProfit = entry.TotalProfit.Add(sale.Profit)
		entry.UnitsSold += sale.Quantity
	}

	for _, expense := range expenses {
		stats.TotalExpenses = stats.TotalExpenses.Add(expense.Amount)
	}

	stats.NetProfit = totalProfit.Sub(stats.TotalExpenses)

	for _, entry := range perProduct {
		stats.ProductProfits = append(stats.ProductProfits, *entry)
	}
	sort.Slice(stats.ProductProfits, func(i, j int) bool {
		a, b := stats.ProductProfits[i], stats.ProductProfits[j]
		if !a.TotalProfit.Equal(b.TotalProfit) {
			return a.TotalProfit.GreaterThan(b.TotalProfit)
		}
		return a.ProductName < b.ProductName
	})

	return stats, nil
}
