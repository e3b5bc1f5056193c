package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/vanshbajaj13/Muskan-Collection-sub000/internal/core/ports/services"
	"github.com/vanshbajaj13/Muskan-Collection-sub000/internal/middleware"
)

type reportHandler struct {
	reportService portssvc.ReportSvc
}

func newReportHandler(rs portssvc.ReportSvc) *reportHandler {
	return &reportHandler{reportService: rs}
}

func registerReportRoutes(rg *gin.RouterGroup, reportService portssvc.ReportSvc) {
	h := newReportHandler(reportService)
	rg.GET("/sessions/:sessionID/report", h.exportVarianceReport)
}

// exportVarianceReport godoc
// @Summary Export the variance report
// @Description Downloads an xlsx workbook with the session summary and the per-item variance
// @Tags reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param   sessionID path string true "Session ID"
// @Success 200 {file} file
// @Failure 404 {object} map[string]string "Session not found"
// @Failure 500 {object} map[string]string "Failed to export report"
// @Security BearerAuth
// @Router /verification/sessions/{sessionID}/report [get]
func (h *reportHandler) exportVarianceReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	sessionID := c.Param("sessionID")
	logger = logger.With(slog.String("session_id", sessionID))

	report, err := h.reportService.ExportVarianceReport(c.Request.Context(), sessionID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to export report")
		return
	}

	logger.Info("Variance report exported", slog.String("file_name", report.FileName), slog.Int("bytes", len(report.Body)))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.FileName))
	c.Data(http.StatusOK, report.ContentType, report.Body)
}
