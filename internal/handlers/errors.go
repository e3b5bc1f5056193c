package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vanshbajaj13/Muskan-Collection-sub000/internal/apperrors"
	"github.com/vanshbajaj13/Muskan-Collection-sub000/internal/core/domain"
	"github.com/vanshbajaj13/Muskan-Collection-sub000/internal/middleware"
)

// respondWithError maps service errors onto HTTP statuses. Client errors are logged as
// warnings with the underlying message returned; anything unexpected is logged as an
// error and hidden behind fallbackMsg.
func respondWithError(c *gin.Context, logger *slog.Logger, err error, fallbackMsg string) {
	var appErr *apperrors.AppError
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, apperrors.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, apperrors.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, apperrors.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperrors.ErrConflict), errors.Is(err, apperrors.ErrDuplicate), errors.Is(err, apperrors.ErrConcurrency):
		status = http.StatusConflict
	case errors.Is(err, apperrors.ErrDependency):
		status = http.StatusServiceUnavailable
	case errors.As(err, &appErr) && appErr.Code >= 400 && appErr.Code < 500:
		status = appErr.Code
	}

	if status >= http.StatusInternalServerError {
		logger.Error(fallbackMsg, slog.String("error", err.Error()))
		msg := fallbackMsg
		if status == http.StatusServiceUnavailable {
			msg = err.Error()
		}
		c.JSON(status, gin.H{"error": msg})
		return
	}

	logger.Warn(fallbackMsg, slog.Int("status", status), slog.String("error", err.Error()))
	c.JSON(status, gin.H{"error": err.Error()})
}

// requireActor reads the caller identity set by AuthMiddleware and aborts with 401
// when it is missing.
func requireActor(c *gin.Context, logger *slog.Logger) (domain.Actor, bool) {
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		logger.Error("Actor not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return domain.Actor{}, false
	}
	return actor, true
}
