// internal/handlers/settings.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/wl-sites/offgrid-biz-flow/internal/i18n"
	"github.com/wl-sites/offgrid-biz-flow/internal/services"
	"github.com/wl-sites/offgrid-biz-flow/internal/utils"
)

type SettingsHandler struct {
	userService *services.UserService
}

func NewSettingsHandler(userService *services.UserService) *SettingsHandler {
	return &SettingsHandler{
		userService: userService,
	}
}

// GET /settings
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	user, err := h.userService.GetSettings(userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			utils.NotFoundResponse(c, "user")
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"language": user.Language,
		"currency": user.Currency,
	})
}

// PUT /settings
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req services.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	user, err := h.userService.UpdateSettings(c.Request.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			utils.NotFoundResponse(c, "user")
		case errors.Is(err, services.ErrInvalidLanguage):
			utils.BadRequestResponse(c, i18n.T(lang, i18n.KeySettingsInvalidLanguage), nil)
		case errors.Is(err, services.ErrInvalidCurrency):
			utils.BadRequestResponse(c, i18n.T(lang, i18n.KeySettingsInvalidCurrency), nil)
		default:
			utils.BadRequestResponse(c, err.Error(), nil)
		}
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":  i18n.T(lang, i18n.KeySettingsUpdated),
		"language": user.Language,
		"currency": user.Currency,
	})
}
