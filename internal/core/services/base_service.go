package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/vanshbajaj13/Muskan-Collection-sub000/internal/apperrors"
	"github.com/vanshbajaj13/Muskan-Collection-sub000/internal/core/domain"
	portsrepo "github.com/vanshbajaj13/Muskan-Collection-sub000/internal/core/ports/repositories"
	"github.com/vanshbajaj13/Muskan-Collection-sub000/internal/middleware"
	"github.com/vanshbajaj13/Muskan-Collection-sub000/internal/platform/metrics"
)

const (
	defaultLockWait     = 5 * time.Second
	defaultMaxAttempts  = 3
	defaultItemPageSize = 20
	maxItemPageSize     = 200
)

// BaseService provides common functionality for all services
type BaseService struct {
	Locker      portsrepo.ItemLocker
	LockWait    time.Duration
	MaxAttempts int
	Metrics     *metrics.Metrics
	Now         func() time.Time

	DefaultPageSize int
	MaxPageSize     int
}

// ServiceOption is a functional option for configuring the shared service parts
type ServiceOption func(*BaseService)

// WithClock overrides the service clock.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *BaseService) {
		s.Now = now
	}
}

// WithItemLocker serialises item work through the locker, waiting at most wait for a key.
func WithItemLocker(locker portsrepo.ItemLocker, wait time.Duration) ServiceOption {
	return func(s *BaseService) {
		s.Locker = locker
		s.LockWait = wait
	}
}

// WithMaxAttempts bounds the optimistic retries of a version-guarded item write.
func WithMaxAttempts(n int) ServiceOption {
	return func(s *BaseService) {
		s.MaxAttempts = n
	}
}

// WithPageSizes configures offset listings.
func WithPageSizes(defaultSize, maxSize int) ServiceOption {
	return func(s *BaseService) {
		s.DefaultPageSize = defaultSize
		s.MaxPageSize = maxSize
	}
}

// WithMetrics records verification counters.
func WithMetrics(m *metrics.Metrics) ServiceOption {
	return func(s *BaseService) {
		s.Metrics = m
	}
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// CurrentTime returns the service clock, UTC.
func (s *BaseService) CurrentTime() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Attempts returns the configured retry bound.
func (s *BaseService) Attempts() int {
	if s.MaxAttempts < 1 {
		return defaultMaxAttempts
	}
	return s.MaxAttempts
}

// PageSizes returns the default and maximum page size of offset listings.
func (s *BaseService) PageSizes() (int, int) {
	defaultSize, maxSize := s.DefaultPageSize, s.MaxPageSize
	if defaultSize < 1 {
		defaultSize = defaultItemPageSize
	}
	if maxSize < defaultSize {
		maxSize = max(defaultSize, maxItemPageSize)
	}
	return defaultSize, maxSize
}

// AcquireLock takes the key on the configured locker. Locking is best effort: when no
// locker is configured or the lock cannot be obtained, work proceeds unlocked and
// the storage version guard still rejects lost updates.
func (s *BaseService) AcquireLock(ctx context.Context, key string) portsrepo.Unlock {
	if s.Locker == nil {
		return func() {}
	}
	wait := s.LockWait
	if wait <= 0 {
		wait = defaultLockWait
	}
	unlock, err := s.Locker.Lock(ctx, key, wait)
	if err != nil {
		s.GetLogger(ctx).Warn("could not obtain lock; proceeding without lock",
			slog.String("lock_key", key),
			slog.String("error", err.Error()))
		return func() {}
	}
	return unlock
}

// AuthorizeSessionControl allows the session initiator and administrators.
func (s *BaseService) AuthorizeSessionControl(ctx context.Context, actor domain.Actor, session *domain.VerificationSession) error {
	if actor.ID == session.InitiatedBy || actor.IsAdmin() {
		return nil
	}
	s.LogDebug(ctx, "Actor is neither session initiator nor admin",
		slog.String("actor_id", actor.ID),
		slog.String("session_id", session.SessionID))
	return apperrors.ErrNotSessionInitiator
}

// validationError converts validator failures into the validation category.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Errorf("%w: field %s failed on '%s'", apperrors.ErrValidation, fe.Field(), fe.Tag())
	}
	return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
}

func itemLockKey(sessionID, itemCode string) string {
	return fmt.Sprintf("session:%s:item:%s", sessionID, itemCode)
}

func statsLockKey(sessionID string) string {
	return fmt.Sprintf("session:%s:stats", sessionID)
}
