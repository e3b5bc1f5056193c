package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/vanshbajaj13/Muskan-Collection-sub000/internal/core/ports/services"
	"github.com/vanshbajaj13/Muskan-Collection-sub000/internal/dto"
	"github.com/vanshbajaj13/Muskan-Collection-sub000/internal/middleware"
)

// logHandler exposes the audit trail and log reversal.
type logHandler struct {
	auditService portssvc.AuditSvcFacade
}

func newLogHandler(as portssvc.AuditSvcFacade) *logHandler {
	return &logHandler{auditService: as}
}

func registerLogRoutes(rg *gin.RouterGroup, auditService portssvc.AuditSvcFacade) {
	h := newLogHandler(auditService)

	rg.GET("/sessions/:sessionID/logs", h.listLogs)

	logs := rg.Group("/logs")
	{
		logs.GET("/:logID/preview-delete", h.previewLogDeletion)
		logs.DELETE("/:logID", h.deleteLog)
	}
}

// listLogs godoc
// @Summary List the audit logs of a session
// @Description Returns logs most recent first, paginated with an opaque token
// @Tags logs
// @Produce  json
// @Param   sessionID path string true "Session ID"
// @Param   limit query int false "Page size" minimum(1) maximum(100)
// @Param   nextToken query string false "Token from the previous page"
// @Param   itemCode query string false "Only logs of this item"
// @Success 200 {object} dto.ListLogsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 404 {object} map[string]string "Session not found"
// @Failure 500 {object} map[string]string "Failed to list logs"
// @Security BearerAuth
// @Router /verification/sessions/{sessionID}/logs [get]
func (h *logHandler) listLogs(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	sessionID := c.Param("sessionID")
	logger = logger.With(slog.String("session_id", sessionID))

	var params dto.ListLogsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Invalid query parameters for ListLogs", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.auditService.ListLogs(c.Request.Context(), sessionID, params)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list logs")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// previewLogDeletion godoc
// @Summary Preview deleting a log
// @Description Reports whether a log can be deleted and what it would do to its item, without changing anything
// @Tags logs
// @Produce  json
// @Param   logID path string true "Log ID"
// @Success 200 {object} dto.DeletionPreviewResponse
// @Failure 404 {object} map[string]string "Log not found"
// @Failure 500 {object} map[string]string "Failed to preview log deletion"
// @Security BearerAuth
// @Router /verification/logs/{logID}/preview-delete [get]
func (h *logHandler) previewLogDeletion(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	logID := c.Param("logID")
	logger = logger.With(slog.String("log_id", logID))

	preview, err := h.auditService.PreviewLogDeletion(c.Request.Context(), logID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to preview log deletion")
		return
	}

	c.JSON(http.StatusOK, dto.ToDeletionPreviewResponse(preview))
}

// deleteLog godoc
// @Summary Delete a log
// @Description Removes a count log, reverses its effect on the item and records a deletion log
// @Tags logs
// @Produce  json
// @Param   logID path string true "Log ID"
// @Success 200 {object} dto.DeleteLogResponse
// @Failure 404 {object} map[string]string "Log not found"
// @Failure 409 {object} map[string]string "Log is protected or the session is closed"
// @Failure 500 {object} map[string]string "Failed to delete log"
// @Security BearerAuth
// @Router /verification/logs/{logID} [delete]
func (h *logHandler) deleteLog(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	logID := c.Param("logID")
	logger = logger.With(slog.String("log_id", logID))

	actor, ok := requireActor(c, logger)
	if !ok {
		return
	}

	result, err := h.auditService.DeleteLog(c.Request.Context(), actor, logID, middleware.GetRequestMetadata(c))
	if err != nil {
		respondWithError(c, logger, err, "Failed to delete log")
		return
	}

	logger.Info("Verification log deleted", slog.String("impact", result.ImpactDescription))
	c.JSON(http.StatusOK, dto.ToDeleteLogResponse(result))
}
