// internal/handlers/stats.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/wl-sites/offgrid-biz-flow/internal/services"
	"github.com/wl-sites/offgrid-biz-flow/internal/utils"
)

type StatsHandler struct {
	statsService *services.StatsService
	userService  *services.UserService
}

func NewStatsHandler(statsService *services.StatsService, userService *services.UserService) *StatsHandler {
	return &StatsHandler{
		statsService: statsService,
		userService:  userService,
	}
}

// GET /dashboard/stats
// Figures are returned raw plus preformatted in the caller's currency so
// the client never has to know about grouping or symbols.
func (h *StatsHandler) GetDashboardStats(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	stats, err := h.statsService.GetDashboardStats(userID)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	currency := "CDF"
	user, err := h.userService.GetSettings(userID)
	if err != nil && !errors.Is(err, services.ErrUserNotFound) {
		utils.InternalErrorResponse(c, err.Error())
		return
	}
	if user != nil {
		currency = string(user.Currency)
	}

	utils.SuccessResponse(c, gin.H{
		"stats": stats,
		"formatted": gin.H{
			"total_revenue":  utils.FormatCurrency(stats.TotalRevenue, currency),
			"total_expenses": utils.FormatCurrency(stats.TotalExpenses, currency),
			"net_profit":     utils.FormatCurrency(stats.NetProfit, currency),
		},
	})
}
