package services

import (
	"context"

	"github.com/vanshbajaj13/Muskan-Collection-sub000/internal/core/domain"
	"github.com/vanshbajaj13/Muskan-Collection-sub000/internal/dto"
)

// SessionReaderSvc defines read operations for verification sessions
type SessionReaderSvc interface {
	// GetSession returns the session with its per-status item counts.
	GetSession(ctx context.Context, sessionID string) (*domain.SessionOverview, error)

	// ListSessions returns sessions most recent first, optionally filtered by status.
	ListSessions(ctx context.Context, params dto.ListSessionsParams) (*dto.ListSessionsResponse, error)
}

// SessionLifecycleSvc owns the session state machine
type SessionLifecycleSvc interface {
	// CreateSession freezes the catalog baseline and starts an active session.
	CreateSession(ctx context.Context, actor domain.Actor, req dto.CreateSessionRequest, meta domain.RequestMetadata) (*domain.VerificationSession, error)

	// PauseSession moves an active session to paused. Initiator or admin only.
	PauseSession(ctx context.Context, actor domain.Actor, sessionID string) (*domain.VerificationSession, error)

	// ResumeSession moves a paused session back to active. Initiator or admin only.
	ResumeSession(ctx context.Context, actor domain.Actor, sessionID string) (*domain.VerificationSession, error)

	// CompleteSession freezes the final statistics and closes the session.
	CompleteSession(ctx context.Context, actor domain.Actor, sessionID string, req dto.CompleteSessionRequest, meta domain.RequestMetadata) (*domain.VerificationSession, error)

	// CancelSession abandons an open session. Admin only.
	CancelSession(ctx context.Context, actor domain.Actor, sessionID string, req dto.CancelSessionRequest) (*domain.VerificationSession, error)

	// DeleteSession removes the session and everything it owns. Initiator only.
	DeleteSession(ctx context.Context, actor domain.Actor, sessionID string) error
}

// SessionSvcFacade combines all session-related service interfaces
type SessionSvcFacade interface {
	SessionReaderSvc
	SessionLifecycleSvc
}
