package repositories

import (
	"context"
	"time"

	"github.com/vanshbajaj13/Muskan-Collection-sub000/internal/core/domain"
)

// SessionQuery filters a session listing. Status nil means every status.
type SessionQuery struct {
	Status *domain.SessionStatus
	Limit  int
	Offset int
}

// SessionBaseline is everything written when a session starts. It is persisted
// all-or-nothing.
type SessionBaseline struct {
	Session   domain.VerificationSession
	Snapshots []domain.InventorySnapshot
	Items     []domain.VerificationItem
	StartLog  domain.VerificationLog
}

// StatusChange moves a session between two statuses. Notes, when set, replace the
// session notes.
type StatusChange struct {
	SessionID string
	From      domain.SessionStatus
	To        domain.SessionStatus
	Notes     *string
	UpdatedBy string
	At        time.Time
}

// SessionCompletion is the final write of a session. The store aggregates the
// final statistics itself, after it has excluded concurrent item writes, and
// passes them to Describe to fill the completion log details.
type SessionCompletion struct {
	SessionID   string
	Notes       string
	CompletedBy string
	CompletedAt time.Time
	Log         domain.VerificationLog
	Describe    func(final domain.ComputedStats) string
}

// SessionReader defines read operations for verification sessions
type SessionReader interface {
	// FindSessionByID retrieves a session. Returns apperrors.ErrSessionNotFound when absent.
	FindSessionByID(ctx context.Context, sessionID string) (*domain.VerificationSession, error)

	// ListSessions returns sessions most recent first along with the total match count.
	ListSessions(ctx context.Context, query SessionQuery) ([]domain.VerificationSession, int, error)
}

// SessionWriter defines write operations for verification sessions
type SessionWriter interface {
	// SaveSessionBaseline persists a new session with its snapshots, items and start log in one unit.
	SaveSessionBaseline(ctx context.Context, baseline SessionBaseline) error

	// UpdateSessionStatus applies a status change. It fails with
	// apperrors.ErrInvalidTransition when the stored status is no longer change.From.
	UpdateSessionStatus(ctx context.Context, change StatusChange) error

	// UpdateSessionStats overwrites the aggregated figures of an open session. It is a
	// no-op once the session is completed or cancelled.
	UpdateSessionStats(ctx context.Context, sessionID string, stats domain.ComputedStats, at time.Time) error

	// CompleteSession marks an open session completed and appends its completion log.
	// The final statistics are computed from the items in the same unit of work and
	// returned. It fails with apperrors.ErrAlreadyCompleted if the session was
	// completed meanwhile.
	CompleteSession(ctx context.Context, completion SessionCompletion) (*domain.ComputedStats, error)

	// AddParticipant records a participant unless the user already joined.
	AddParticipant(ctx context.Context, sessionID string, participant domain.Participant) error

	// DeleteSession removes the session and all its snapshots, items and logs.
	DeleteSession(ctx context.Context, sessionID string) error
}

// SessionRepositoryFacade combines all session-related repository interfaces
type SessionRepositoryFacade interface {
	SessionReader
	SessionWriter
}
