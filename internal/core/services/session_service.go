package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/vanshbajaj13/Muskan-Collection-sub000/internal/apperrors"
	"github.com/vanshbajaj13/Muskan-Collection-sub000/internal/core/domain"
	portsrepo "github.com/vanshbajaj13/Muskan-Collection-sub000/internal/core/ports/repositories"
	portssvc "github.com/vanshbajaj13/Muskan-Collection-sub000/internal/core/ports/services"
	"github.com/vanshbajaj13/Muskan-Collection-sub000/internal/dto"
)

const (
	defaultSessionListLimit = 20
	maxSessionListLimit     = 100
)

type sessionService struct {
	BaseService
	sessionRepo portsrepo.SessionRepositoryFacade
	itemRepo    portsrepo.ItemReader
	snapshots   *SnapshotBuilder
	validate    *validator.Validate
}

// NewSessionService creates the session lifecycle service.
func NewSessionService(
	sessionRepo portsrepo.SessionRepositoryFacade,
	itemRepo portsrepo.ItemReader,
	catalog portsrepo.CatalogReader,
	options ...ServiceOption,
) portssvc.SessionSvcFacade {
	svc := &sessionService{
		sessionRepo: sessionRepo,
		itemRepo:    itemRepo,
		snapshots:   NewSnapshotBuilder(catalog),
		validate:    validator.New(),
	}
	for _, option := range options {
		option(&svc.BaseService)
	}
	svc.snapshots.BaseService = svc.BaseService
	return svc
}

var _ portssvc.SessionSvcFacade = (*sessionService)(nil)

func (s *sessionService) CreateSession(ctx context.Context, actor domain.Actor, req dto.CreateSessionRequest, meta domain.RequestMetadata) (*domain.VerificationSession, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Categories = uniqueStrings(req.Categories)
	if err := s.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}

	sessionType, ok := domain.ParseSessionType(req.Type)
	if !ok {
		return nil, fmt.Errorf("%w: unknown session type %q", apperrors.ErrValidation, req.Type)
	}
	filter := domain.CatalogFilter{}
	if sessionType == domain.SessionTypePartial {
		if len(req.Categories) == 0 {
			return nil, fmt.Errorf("%w: a partial session needs at least one category", apperrors.ErrValidation)
		}
		filter.Categories = req.Categories
	} else {
		req.Categories = nil
	}

	now := s.CurrentTime()
	sessionID := uuid.NewString()

	baseline, err := s.snapshots.Build(ctx, sessionID, filter, now)
	if err != nil {
		return nil, err
	}

	session := domain.VerificationSession{
		SessionID:  sessionID,
		Name:       req.Name,
		Type:       sessionType,
		Status:     domain.SessionActive,
		Categories: req.Categories,
		Participants: []domain.Participant{{
			UserID:      actor.ID,
			DisplayName: actor.DisplayName,
			Role:        actor.Role,
			JoinedAt:    now,
		}},
		InitiatedBy:  actor.ID,
		SessionStats: baseline.Stats,
		StartedAt:    now,
		Notes:        req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.ID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.ID,
		},
	}

	startLog := domain.VerificationLog{
		LogID:       uuid.NewString(),
		SessionID:   sessionID,
		Action:      domain.SessionStarted{},
		PerformedBy: actor.ID,
		PerformedAt: now,
		Details: fmt.Sprintf("%s started %s verification session %q covering %d items",
			actor.DisplayName, sessionType, session.Name, len(baseline.Items)),
		Metadata: meta,
	}

	err = s.sessionRepo.SaveSessionBaseline(ctx, portsrepo.SessionBaseline{
		Session:   session,
		Snapshots: baseline.Snapshots,
		Items:     baseline.Items,
		StartLog:  startLog,
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to save session baseline",
			slog.String("session_id", sessionID))
		return nil, err
	}

	s.LogInfo(ctx, "Verification session created",
		slog.String("session_id", sessionID),
		slog.String("actor_id", actor.ID),
		slog.Int("item_count", len(baseline.Items)))
	return &session, nil
}

func (s *sessionService) GetSession(ctx context.Context, sessionID string) (*domain.SessionOverview, error) {
	session, err := s.sessionRepo.FindSessionByID(ctx, sessionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find session", slog.String("session_id", sessionID))
		}
		return nil, err
	}

	items, err := s.itemRepo.ListAllItems(ctx, sessionID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list session items", slog.String("session_id", sessionID))
		return nil, err
	}

	return &domain.SessionOverview{
		Session: *session,
		Summary: domain.SummarizeItems(items),
	}, nil
}

func (s *sessionService) ListSessions(ctx context.Context, params dto.ListSessionsParams) (*dto.ListSessionsResponse, error) {
	query := portsrepo.SessionQuery{Limit: params.Limit, Offset: params.Offset}
	if query.Limit <= 0 {
		query.Limit = defaultSessionListLimit
	}
	if query.Limit > maxSessionListLimit {
		query.Limit = maxSessionListLimit
	}
	if query.Offset < 0 {
		query.Offset = 0
	}
	if params.Status != "" {
		status := domain.SessionStatus(params.Status)
		query.Status = &status
	}

	sessions, total, err := s.sessionRepo.ListSessions(ctx, query)
	if err != nil {
		s.LogError(ctx, err, "Failed to list sessions")
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	resp := dto.ToListSessionsResponse(sessions, total)
	return &resp, nil
}

func (s *sessionService) PauseSession(ctx context.Context, actor domain.Actor, sessionID string) (*domain.VerificationSession, error) {
	return s.transition(ctx, actor, sessionID, domain.SessionPaused, nil)
}

func (s *sessionService) ResumeSession(ctx context.Context, actor domain.Actor, sessionID string) (*domain.VerificationSession, error) {
	return s.transition(ctx, actor, sessionID, domain.SessionActive, nil)
}

func (s *sessionService) CancelSession(ctx context.Context, actor domain.Actor, sessionID string, req dto.CancelSessionRequest) (*domain.VerificationSession, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}
	if !actor.IsAdmin() {
		return nil, fmt.Errorf("%w: only administrators can cancel a session", apperrors.ErrForbidden)
	}
	var notes *string
	if reason := strings.TrimSpace(req.Reason); reason != "" {
		notes = &reason
	}
	return s.transition(ctx, actor, sessionID, domain.SessionCancelled, notes)
}

// transition applies pause, resume and cancel. Completion has its own path since it
// freezes statistics and writes a log.
func (s *sessionService) transition(ctx context.Context, actor domain.Actor, sessionID string, target domain.SessionStatus, notes *string) (*domain.VerificationSession, error) {
	session, err := s.sessionRepo.FindSessionByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if target != domain.SessionCancelled {
		if err := s.AuthorizeSessionControl(ctx, actor, session); err != nil {
			return nil, err
		}
	}

	if !session.Status.CanTransitionTo(target) {
		return nil, fmt.Errorf("%w: cannot move session from %s to %s", apperrors.ErrInvalidTransition, session.Status, target)
	}

	change := portsrepo.StatusChange{
		SessionID: sessionID,
		From:      session.Status,
		To:        target,
		Notes:     notes,
		UpdatedBy: actor.ID,
		At:        s.CurrentTime(),
	}
	if err := s.sessionRepo.UpdateSessionStatus(ctx, change); err != nil {
		s.LogError(ctx, err, "Failed to change session status",
			slog.String("session_id", sessionID),
			slog.String("from", string(session.Status)),
			slog.String("to", string(target)))
		return nil, err
	}

	s.LogInfo(ctx, "Session status changed",
		slog.String("session_id", sessionID),
		slog.String("from", string(session.Status)),
		slog.String("to", string(target)),
		slog.String("actor_id", actor.ID))
	return s.sessionRepo.FindSessionByID(ctx, sessionID)
}

func (s *sessionService) CompleteSession(ctx context.Context, actor domain.Actor, sessionID string, req dto.CompleteSessionRequest, meta domain.RequestMetadata) (*domain.VerificationSession, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}

	session, err := s.sessionRepo.FindSessionByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status == domain.SessionCompleted {
		return nil, apperrors.ErrAlreadyCompleted
	}
	if !session.Status.CanTransitionTo(domain.SessionCompleted) {
		return nil, fmt.Errorf("%w: cannot complete a %s session", apperrors.ErrInvalidTransition, session.Status)
	}

	now := s.CurrentTime()
	totalExpected := session.TotalExpectedItems

	completion := portsrepo.SessionCompletion{
		SessionID:   sessionID,
		Notes:       strings.TrimSpace(req.Notes),
		CompletedBy: actor.ID,
		CompletedAt: now,
		Log: domain.VerificationLog{
			LogID:       uuid.NewString(),
			SessionID:   sessionID,
			Action:      domain.SessionClosed{},
			PerformedBy: actor.ID,
			PerformedAt: now,
			Metadata:    meta,
		},
		Describe: func(final domain.ComputedStats) string {
			return fmt.Sprintf("%s completed the session: %d of %d items verified, %d discrepancies, variance %s",
				actor.DisplayName, final.TotalVerifiedItems, totalExpected, final.TotalDiscrepancies, final.VarianceValue.StringFixed(2))
		},
	}
	final, err := s.sessionRepo.CompleteSession(ctx, completion)
	if err != nil {
		if !errors.Is(err, apperrors.ErrConflict) {
			s.LogError(ctx, err, "Failed to complete session", slog.String("session_id", sessionID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Verification session completed",
		slog.String("session_id", sessionID),
		slog.String("actor_id", actor.ID),
		slog.Int("verified_items", final.TotalVerifiedItems),
		slog.Int("discrepancies", final.TotalDiscrepancies))
	return s.sessionRepo.FindSessionByID(ctx, sessionID)
}

func (s *sessionService) DeleteSession(ctx context.Context, actor domain.Actor, sessionID string) error {
	session, err := s.sessionRepo.FindSessionByID(ctx, sessionID)
	if err != nil {
		return err
	}
	if session.InitiatedBy != actor.ID {
		s.LogDebug(ctx, "Session delete refused for non-initiator",
			slog.String("session_id", sessionID),
			slog.String("actor_id", actor.ID))
		return apperrors.ErrNotSessionInitiator
	}

	if err := s.sessionRepo.DeleteSession(ctx, sessionID); err != nil {
		s.LogError(ctx, err, "Failed to delete session", slog.String("session_id", sessionID))
		return err
	}

	s.LogInfo(ctx, "Verification session deleted",
		slog.String("session_id", sessionID),
		slog.String("actor_id", actor.ID))
	return nil
}

func uniqueStrings(input []string) []string {
	if len(input) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(input))
	out := make([]string, 0, len(input))
	for _, v := range input {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
