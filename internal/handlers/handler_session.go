package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/vanshbajaj13/Muskan-Collection-sub000/internal/core/ports/services"
	"github.com/vanshbajaj13/Muskan-Collection-sub000/internal/dto"
	"github.com/vanshbajaj13/Muskan-Collection-sub000/internal/middleware"
)

// sessionHandler handles HTTP requests for the verification session lifecycle.
type sessionHandler struct {
	sessionService portssvc.SessionSvcFacade
}

func newSessionHandler(ss portssvc.SessionSvcFacade) *sessionHandler {
	return &sessionHandler{sessionService: ss}
}

// registerSessionRoutes registers the session lifecycle routes.
func registerSessionRoutes(rg *gin.RouterGroup, sessionService portssvc.SessionSvcFacade) {
	h := newSessionHandler(sessionService)

	sessions := rg.Group("/sessions")
	{
		sessions.POST("", h.createSession)
		sessions.GET("", h.listSessions)
		sessions.GET("/:sessionID", h.getSession)
		sessions.POST("/:sessionID/pause", h.pauseSession)
		sessions.POST("/:sessionID/resume", h.resumeSession)
		sessions.POST("/:sessionID/complete", h.completeSession)
		sessions.POST("/:sessionID/cancel", h.cancelSession)
		sessions.DELETE("/:sessionID", h.deleteSession)
	}
}

// bindOptionalJSON binds a request body that callers may omit entirely.
func bindOptionalJSON(c *gin.Context, obj any) error {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return nil
	}
	if err := c.ShouldBindJSON(obj); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// createSession godoc
// @Summary Start a verification session
// @Description Freezes the current catalog (or the given categories) as the session baseline and opens the session for counting
// @Tags sessions
// @Accept  json
// @Produce  json
// @Param   session body dto.CreateSessionRequest true "Session details"
// @Success 201 {object} dto.SessionResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 503 {object} map[string]string "Inventory catalog unavailable"
// @Failure 500 {object} map[string]string "Failed to create session"
// @Security BearerAuth
// @Router /verification/sessions [post]
func (h *sessionHandler) createSession(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateSession", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := requireActor(c, logger)
	if !ok {
		return
	}

	logger.Info("Received request to create verification session", slog.String("name", req.Name), slog.String("type", req.Type))

	session, err := h.sessionService.CreateSession(c.Request.Context(), actor, req, middleware.GetRequestMetadata(c))
	if err != nil {
		respondWithError(c, logger, err, "Failed to create session")
		return
	}

	logger.Info("Verification session created", slog.String("session_id", session.SessionID), slog.Int("items", session.TotalExpectedItems))
	c.JSON(http.StatusCreated, dto.ToSessionResponse(session))
}

// listSessions godoc
// @Summary List verification sessions
// @Description Lists sessions, most recently started first
// @Tags sessions
// @Produce  json
// @Param   status query string false "Filter by status" Enums(active, paused, completed, cancelled)
// @Param   limit query int false "Page size" minimum(1) maximum(100)
// @Param   offset query int false "Offset" minimum(0)
// @Success 200 {object} dto.ListSessionsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list sessions"
// @Security BearerAuth
// @Router /verification/sessions [get]
func (h *sessionHandler) listSessions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListSessionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Invalid query parameters for ListSessions", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.sessionService.ListSessions(c.Request.Context(), params)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list sessions")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// getSession godoc
// @Summary Get a verification session
// @Description Returns the session with its live statistics and per-status item counts
// @Tags sessions
// @Produce  json
// @Param   sessionID path string true "Session ID"
// @Success 200 {object} dto.GetSessionResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Session not found"
// @Failure 500 {object} map[string]string "Failed to retrieve session"
// @Security BearerAuth
// @Router /verification/sessions/{sessionID} [get]
func (h *sessionHandler) getSession(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	sessionID := c.Param("sessionID")
	logger = logger.With(slog.String("session_id", sessionID))

	overview, err := h.sessionService.GetSession(c.Request.Context(), sessionID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to retrieve session")
		return
	}

	c.JSON(http.StatusOK, dto.ToGetSessionResponse(overview))
}

// pauseSession godoc
// @Summary Pause a verification session
// @Description Stops counting on an active session. Only the initiator or an admin may pause.
// @Tags sessions
// @Produce  json
// @Param   sessionID path string true "Session ID"
// @Success 200 {object} dto.SessionResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Session not found"
// @Failure 409 {object} map[string]string "Session is not active"
// @Failure 500 {object} map[string]string "Failed to pause session"
// @Security BearerAuth
// @Router /verification/sessions/{sessionID}/pause [post]
func (h *sessionHandler) pauseSession(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	sessionID := c.Param("sessionID")
	logger = logger.With(slog.String("session_id", sessionID))

	actor, ok := requireActor(c, logger)
	if !ok {
		return
	}

	session, err := h.sessionService.PauseSession(c.Request.Context(), actor, sessionID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to pause session")
		return
	}

	logger.Info("Verification session paused")
	c.JSON(http.StatusOK, dto.ToSessionResponse(session))
}

// resumeSession godoc
// @Summary Resume a verification session
// @Description Reopens a paused session for counting. Only the initiator or an admin may resume.
// @Tags sessions
// @Produce  json
// @Param   sessionID path string true "Session ID"
// @Success 200 {object} dto.SessionResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Session not found"
// @Failure 409 {object} map[string]string "Session is not paused"
// @Failure 500 {object} map[string]string "Failed to resume session"
// @Security BearerAuth
// @Router /verification/sessions/{sessionID}/resume [post]
func (h *sessionHandler) resumeSession(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	sessionID := c.Param("sessionID")
	logger = logger.With(slog.String("session_id", sessionID))

	actor, ok := requireActor(c, logger)
	if !ok {
		return
	}

	session, err := h.sessionService.ResumeSession(c.Request.Context(), actor, sessionID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to resume session")
		return
	}

	logger.Info("Verification session resumed")
	c.JSON(http.StatusOK, dto.ToSessionResponse(session))
}

// completeSession godoc
// @Summary Complete a verification session
// @Description Freezes the final statistics and closes the session. Counting and log deletion stop once it returns.
// @Tags sessions
// @Accept  json
// @Produce  json
// @Param   sessionID path string true "Session ID"
// @Param   body body dto.CompleteSessionRequest false "Closing notes"
// @Success 200 {object} dto.SessionResponse
// @Failure 404 {object} map[string]string "Session not found"
// @Failure 409 {object} map[string]string "Session already completed"
// @Failure 500 {object} map[string]string "Failed to complete session"
// @Security BearerAuth
// @Router /verification/sessions/{sessionID}/complete [post]
func (h *sessionHandler) completeSession(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	sessionID := c.Param("sessionID")
	logger = logger.With(slog.String("session_id", sessionID))

	var req dto.CompleteSessionRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		logger.Warn("Failed to bind JSON for CompleteSession", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := requireActor(c, logger)
	if !ok {
		return
	}

	session, err := h.sessionService.CompleteSession(c.Request.Context(), actor, sessionID, req, middleware.GetRequestMetadata(c))
	if err != nil {
		respondWithError(c, logger, err, "Failed to complete session")
		return
	}

	logger.Info("Verification session completed", slog.String("variance_value", session.VarianceValue.String()))
	c.JSON(http.StatusOK, dto.ToSessionResponse(session))
}

// cancelSession godoc
// @Summary Cancel a verification session
// @Description Abandons an open session. Admin only.
// @Tags sessions
// @Accept  json
// @Produce  json
// @Param   sessionID path string true "Session ID"
// @Param   body body dto.CancelSessionRequest false "Cancellation reason"
// @Success 200 {object} dto.SessionResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Session not found"
// @Failure 409 {object} map[string]string "Session is not open"
// @Failure 500 {object} map[string]string "Failed to cancel session"
// @Security BearerAuth
// @Router /verification/sessions/{sessionID}/cancel [post]
func (h *sessionHandler) cancelSession(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	sessionID := c.Param("sessionID")
	logger = logger.With(slog.String("session_id", sessionID))

	var req dto.CancelSessionRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		logger.Warn("Failed to bind JSON for CancelSession", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actor, ok := requireActor(c, logger)
	if !ok {
		return
	}

	session, err := h.sessionService.CancelSession(c.Request.Context(), actor, sessionID, req)
	if err != nil {
		respondWithError(c, logger, err, "Failed to cancel session")
		return
	}

	logger.Info("Verification session cancelled")
	c.JSON(http.StatusOK, dto.ToSessionResponse(session))
}

// deleteSession godoc
// @Summary Delete a verification session
// @Description Removes the session with its snapshots, items and logs. Only the initiator may delete it.
// @Tags sessions
// @Param   sessionID path string true "Session ID"
// @Success 204 "No Content"
// @Failure 403 {object} map[string]string "Only the initiator can delete the session"
// @Failure 404 {object} map[string]string "Session not found"
// @Failure 500 {object} map[string]string "Failed to delete session"
// @Security BearerAuth
// @Router /verification/sessions/{sessionID} [delete]
func (h *sessionHandler) deleteSession(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	sessionID := c.Param("sessionID")
	logger = logger.With(slog.String("session_id", sessionID))

	actor, ok := requireActor(c, logger)
	if !ok {
		return
	}

	if err := h.sessionService.DeleteSession(c.Request.Context(), actor, sessionID); err != nil {
		respondWithError(c, logger, err, "Failed to delete session")
		return
	}

	logger.Info("Verification session deleted")
	c.Status(http.StatusNoContent)
}
