package repositories

import (
	"context"

	"github.com/vanshbajaj13/Muskan-Collection-sub000/internal/core/domain"
)

// LogQuery selects one page of a session's logs, most recent first.
type LogQuery struct {
	SessionID string
	ItemCode  string
	Limit     int
	NextToken *string
}

// LogDeletion removes one log, writes the deletion log that replaces it and, when the
// deleted log had an item effect, stores the reversed item under a version guard.
type LogDeletion struct {
	DeletedLogID    string
	Item            *domain.VerificationItem
	ExpectedVersion int64
	DeletionLog     domain.VerificationLog
}

// LogReader defines read operations for verification logs
type LogReader interface {
	// FindLogByID returns apperrors.ErrLogNotFound when absent.
	FindLogByID(ctx context.Context, logID string) (*domain.VerificationLog, error)

	// ListLogs returns a page of logs and the token for the next page, nil on the last page.
	ListLogs(ctx context.Context, query LogQuery) ([]domain.VerificationLog, *string, error)

	// FindPriorItemLog returns the most recent log of the item recorded before the given
	// sequence whose kind is one of kinds. Returns apperrors.ErrLogNotFound when none exists.
	FindPriorItemLog(ctx context.Context, sessionID, itemCode string, beforeSequence int64, kinds []domain.LogKind) (*domain.VerificationLog, error)
}

// LogWriter defines write operations for verification logs
type LogWriter interface {
	// ApplyLogDeletion applies a LogDeletion atomically and returns the stored deletion log.
	// It fails with apperrors.ErrLogNotFound if the log is already gone,
	// apperrors.ErrSessionLocked if the session closed meanwhile and
	// apperrors.ErrConcurrentUpdate on an item version mismatch.
	ApplyLogDeletion(ctx context.Context, deletion LogDeletion) (*domain.VerificationLog, error)
}

// LogRepositoryFacade combines all log-related repository interfaces
type LogRepositoryFacade interface {
	LogReader
	LogWriter
}
