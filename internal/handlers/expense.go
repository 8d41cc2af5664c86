// internal/handlers/expense.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/wl-sites/offgrid-biz-flow/internal/i18n"
	"github.com/wl-sites/offgrid-biz-flow/internal/services"
	"github.com/wl-sites/offgrid-biz-flow/internal/utils"
)

type ExpenseHandler struct {
	expenseService *services.ExpenseService
}

func NewExpenseHandler(expenseService *services.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{
		expenseService: expenseService,
	}
}

// GET /expenses
func (h *ExpenseHandler) GetExpenses(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	params := utils.GetPaginationParams(c)

	expenses, total, err := h.expenseService.ListExpenses(userID, params)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	result := utils.CreatePaginationResult(expenses, total, params)
	utils.PaginatedResponse(c, result)
}

// POST /expenses
func (h *ExpenseHandler) AddExpense(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.AddExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	expense, err := h.expenseService.AddExpense(c.Request.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidAmount):
			utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyExpenseInvalidAmount), nil)
		case errors.Is(err, services.ErrInvalidDescription):
			utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyExpenseInvalidDescription), nil)
		default:
			utils.BadRequestResponse(c, err.Error(), nil)
		}
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyExpenseAdded),
		"expense": expense,
	})
}

// DELETE /expenses/:id
func (h *ExpenseHandler) DeleteExpense(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid expense ID", nil)
		return
	}

	if err := h.expenseService.DeleteExpense(c.Request.Context(), id, userID); err != nil {
		if errors.Is(err, services.ErrExpenseNotFound) {
			utils.NotFoundResponse(c, "expense")
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyExpenseDeleted),
	})
}
