// internal/handlers/report.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/wl-sites/offgrid-biz-flow/internal/i18n"
	"github.com/wl-sites/offgrid-biz-flow/internal/services"
	"github.com/wl-sites/offgrid-biz-flow/internal/utils"
)

type ReportHandler struct {
	reportService *services.ReportService
}

func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

// GET /reports/sales/export
func (h *ReportHandler) ExportSales(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	result, err := h.reportService.ExportSales(userID)
	if err != nil {
		utils.InternalErrorResponse(c, i18n.T(lang, i18n.KeyReportExportFailed))
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyReportExported),
		"export":  result,
	})
}

// GET /reports/expenses/export
func (h *ReportHandler) ExportExpenses(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	result, err := h.reportService.ExportExpenses(userID)
	if err != nil {
		utils.InternalErrorResponse(c, i18n.T(lang, i18n.KeyReportExportFailed))
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyReportExported),
		"export":  result,
	})
}
