package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/vanshbajaj13/Muskan-Collection-sub000/internal/core/domain"
	portssvc "github.com/vanshbajaj13/Muskan-Collection-sub000/internal/core/ports/services"
	"github.com/vanshbajaj13/Muskan-Collection-sub000/internal/dto"
	"github.com/vanshbajaj13/Muskan-Collection-sub000/internal/middleware"
)

// itemHandler handles item reads and count recording.
type itemHandler struct {
	recordingService portssvc.RecordingSvcFacade
}

func newItemHandler(rs portssvc.RecordingSvcFacade) *itemHandler {
	return &itemHandler{recordingService: rs}
}

// registerItemRoutes registers item and recording routes. Recording routes are rate
// limited per actor when a limiter is given.
func registerItemRoutes(rg *gin.RouterGroup, recordingService portssvc.RecordingSvcFacade, rateLimiter *limiter.Limiter) {
	h := newItemHandler(recordingService)

	session := rg.Group("/sessions/:sessionID")
	{
		session.GET("/items", h.listItems)
		session.GET("/items/:itemCode", h.getItem)
	}

	recording := rg.Group("/sessions/:sessionID")
	if rateLimiter != nil {
		recording.Use(middleware.RateLimit(rateLimiter))
	}
	{
		recording.POST("/scan", h.recordScan)
		recording.POST("/manual", h.recordManual)
		recording.POST("/correct", h.correctCount)
	}
}

// listItems godoc
// @Summary List the items of a session
// @Description Returns a page of items with their live status, plus the per-status summary of the whole session
// @Tags items
// @Produce  json
// @Param   sessionID path string true "Session ID"
// @Param   page query int false "Page number" minimum(1)
// @Param   pageSize query int false "Page size" minimum(1)
// @Param   search query string false "Substring of item code, brand or product"
// @Param   status query string false "Filter by status" Enums(pending, verified, discrepancy, overage, not_found)
// @Success 200 {object} dto.ListItemsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 404 {object} map[string]string "Session not found"
// @Failure 500 {object} map[string]string "Failed to list items"
// @Security BearerAuth
// @Router /verification/sessions/{sessionID}/items [get]
func (h *itemHandler) listItems(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	sessionID := c.Param("sessionID")
	logger = logger.With(slog.String("session_id", sessionID))

	var params dto.ListItemsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Invalid query parameters for ListItems", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.recordingService.ListItems(c.Request.Context(), sessionID, params)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list items")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// getItem godoc
// @Summary Get one item of a session
// @Description Returns the item with the catalog snapshot frozen at session start
// @Tags items
// @Produce  json
// @Param   sessionID path string true "Session ID"
// @Param   itemCode path string true "Item code"
// @Success 200 {object} dto.GetItemResponse
// @Failure 404 {object} map[string]string "Item not found in session"
// @Failure 500 {object} map[string]string "Failed to retrieve item"
// @Security BearerAuth
// @Router /verification/sessions/{sessionID}/items/{itemCode} [get]
func (h *itemHandler) getItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	sessionID := c.Param("sessionID")
	itemCode := c.Param("itemCode")
	logger = logger.With(slog.String("session_id", sessionID), slog.String("item_code", itemCode))

	item, snapshot, err := h.recordingService.GetItem(c.Request.Context(), sessionID, itemCode)
	if err != nil {
		respondWithError(c, logger, err, "Failed to retrieve item")
		return
	}

	c.JSON(http.StatusOK, dto.GetItemResponse{Item: dto.ToItemResponse(item), Snapshot: snapshot})
}

type recordFunc func(c *gin.Context, actor domain.Actor, sessionID string, req dto.RecordCountRequest) (*domain.RecordingResult, error)

// handleCount binds a count observation and applies it with record.
func (h *itemHandler) handleCount(c *gin.Context, method string, record recordFunc) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	sessionID := c.Param("sessionID")
	logger = logger.With(slog.String("session_id", sessionID), slog.String("method", method))

	var req dto.RecordCountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for count", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := requireActor(c, logger)
	if !ok {
		return
	}

	result, err := record(c, actor, sessionID, req)
	if err != nil {
		respondWithError(c, logger, err, "Failed to record count")
		return
	}

	logger.Info("Count recorded",
		slog.String("item_code", result.Item.ItemCode),
		slog.Int("quantity", req.Quantity),
		slog.String("status", string(result.Item.Status)))
	c.JSON(http.StatusOK, dto.ToRecordCountResponse(&result.Item, result.SessionStats))
}

// recordScan godoc
// @Summary Record a QR scan
// @Description Adds the scanned quantity to the item's running count. Scanning the same item again adds to the count.
// @Tags recording
// @Accept  json
// @Produce  json
// @Param   sessionID path string true "Session ID"
// @Param   scan body dto.RecordCountRequest true "Scan"
// @Success 200 {object} dto.RecordCountResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Session or item not found"
// @Failure 409 {object} map[string]string "Session not active or concurrent modification"
// @Failure 429 {object} map[string]string "Too many requests"
// @Failure 500 {object} map[string]string "Failed to record count"
// @Security BearerAuth
// @Router /verification/sessions/{sessionID}/scan [post]
func (h *itemHandler) recordScan(c *gin.Context) {
	h.handleCount(c, string(domain.MethodQRScan), func(c *gin.Context, actor domain.Actor, sessionID string, req dto.RecordCountRequest) (*domain.RecordingResult, error) {
		return h.recordingService.RecordScan(c.Request.Context(), actor, sessionID, req, middleware.GetRequestMetadata(c))
	})
}

// recordManual godoc
// @Summary Record a manual count
// @Description Adds a typed-in quantity to the item's running count
// @Tags recording
// @Accept  json
// @Produce  json
// @Param   sessionID path string true "Session ID"
// @Param   count body dto.RecordCountRequest true "Manual count"
// @Success 200 {object} dto.RecordCountResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Session or item not found"
// @Failure 409 {object} map[string]string "Session not active or concurrent modification"
// @Failure 429 {object} map[string]string "Too many requests"
// @Failure 500 {object} map[string]string "Failed to record count"
// @Security BearerAuth
// @Router /verification/sessions/{sessionID}/manual [post]
func (h *itemHandler) recordManual(c *gin.Context) {
	h.handleCount(c, string(domain.MethodManualEntry), func(c *gin.Context, actor domain.Actor, sessionID string, req dto.RecordCountRequest) (*domain.RecordingResult, error) {
		return h.recordingService.RecordManual(c.Request.Context(), actor, sessionID, req, middleware.GetRequestMetadata(c))
	})
}

// correctCount godoc
// @Summary Correct an item count
// @Description Replaces the item's verified quantity and marks it as adjusted
// @Tags recording
// @Accept  json
// @Produce  json
// @Param   sessionID path string true "Session ID"
// @Param   correction body dto.CorrectCountRequest true "Correction"
// @Success 200 {object} dto.RecordCountResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Session or item not found"
// @Failure 409 {object} map[string]string "Session not active or concurrent modification"
// @Failure 429 {object} map[string]string "Too many requests"
// @Failure 500 {object} map[string]string "Failed to correct count"
// @Security BearerAuth
// @Router /verification/sessions/{sessionID}/correct [post]
func (h *itemHandler) correctCount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	sessionID := c.Param("sessionID")
	logger = logger.With(slog.String("session_id", sessionID))

	var req dto.CorrectCountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CorrectCount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := requireActor(c, logger)
	if !ok {
		return
	}

	result, err := h.recordingService.CorrectCount(c.Request.Context(), actor, sessionID, req, middleware.GetRequestMetadata(c))
	if err != nil {
		respondWithError(c, logger, err, "Failed to correct count")
		return
	}

	logger.Info("Count corrected",
		slog.String("item_code", result.Item.ItemCode),
		slog.Int("new_quantity", req.NewQuantity))
	c.JSON(http.StatusOK, dto.ToRecordCountResponse(&result.Item, result.SessionStats))
}
