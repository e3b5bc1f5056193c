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

// itemMutation turns the current item into its next state and the log explaining it.
type itemMutation func(current domain.VerificationItem) (domain.VerificationItem, domain.LogAction, string)

type recordingService struct {
	BaseService
	sessionRepo portsrepo.SessionRepositoryFacade
	itemRepo    portsrepo.ItemRepositoryFacade
	stats       portssvc.StatisticsSvc
	validate    *validator.Validate
}

// NewRecordingService creates the verification recording engine.
func NewRecordingService(
	sessionRepo portsrepo.SessionRepositoryFacade,
	itemRepo portsrepo.ItemRepositoryFacade,
	stats portssvc.StatisticsSvc,
	options ...ServiceOption,
) portssvc.RecordingSvcFacade {
	svc := &recordingService{
		sessionRepo: sessionRepo,
		itemRepo:    itemRepo,
		stats:       stats,
		validate:    validator.New(),
	}
	for _, option := range options {
		option(&svc.BaseService)
	}
	return svc
}

var _ portssvc.RecordingSvcFacade = (*recordingService)(nil)

func (s *recordingService) ListItems(ctx context.Context, sessionID string, params dto.ListItemsParams) (*dto.ListItemsResponse, error) {
	if _, err := s.sessionRepo.FindSessionByID(ctx, sessionID); err != nil {
		return nil, err
	}

	page := params.Page
	if page < 1 {
		page = 1
	}
	defaultSize, maxSize := s.PageSizes()
	pageSize := params.PageSize
	if pageSize < 1 {
		pageSize = defaultSize
	}
	if pageSize > maxSize {
		pageSize = maxSize
	}

	query := portsrepo.ItemQuery{
		SessionID: sessionID,
		Search:    strings.TrimSpace(params.Search),
		Limit:     pageSize,
		Offset:    (page - 1) * pageSize,
	}
	if params.Status != "" {
		status := domain.ItemStatus(params.Status)
		query.Status = &status
	}

	items, total, err := s.itemRepo.ListItems(ctx, query)
	if err != nil {
		s.LogError(ctx, err, "Failed to list items", slog.String("session_id", sessionID))
		return nil, fmt.Errorf("failed to list items for session %s: %w", sessionID, err)
	}

	// The summary always covers the whole session, not just the filtered page.
	all, err := s.itemRepo.ListAllItems(ctx, sessionID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list items for summary", slog.String("session_id", sessionID))
		return nil, err
	}

	return &dto.ListItemsResponse{
		Items:      dto.ToItemResponses(items),
		Pagination: dto.NewPagination(page, pageSize, total),
		Summary:    domain.SummarizeItems(all),
	}, nil
}

func (s *recordingService) GetItem(ctx context.Context, sessionID, itemCode string) (*domain.VerificationItem, *domain.InventorySnapshot, error) {
	if _, err := s.sessionRepo.FindSessionByID(ctx, sessionID); err != nil {
		return nil, nil, err
	}
	item, err := s.itemRepo.FindItem(ctx, sessionID, itemCode)
	if err != nil {
		return nil, nil, err
	}
	snapshot, err := s.itemRepo.FindSnapshot(ctx, sessionID, itemCode)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, err
		}
		s.LogDebug(ctx, "Item has no snapshot",
			slog.String("session_id", sessionID),
			slog.String("item_code", itemCode))
		snapshot = nil
	}
	return item, snapshot, nil
}

func (s *recordingService) RecordScan(ctx context.Context, actor domain.Actor, sessionID string, req dto.RecordCountRequest, meta domain.RequestMetadata) (*domain.RecordingResult, error) {
	return s.recordCount(ctx, actor, sessionID, req, domain.MethodQRScan, meta)
}

func (s *recordingService) RecordManual(ctx context.Context, actor domain.Actor, sessionID string, req dto.RecordCountRequest, meta domain.RequestMetadata) (*domain.RecordingResult, error) {
	return s.recordCount(ctx, actor, sessionID, req, domain.MethodManualEntry, meta)
}

func (s *recordingService) recordCount(ctx context.Context, actor domain.Actor, sessionID string, req dto.RecordCountRequest, method domain.VerificationMethod, meta domain.RequestMetadata) (*domain.RecordingResult, error) {
	req.ItemCode = strings.TrimSpace(req.ItemCode)
	req.Notes = strings.TrimSpace(req.Notes)
	if err := s.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}
	// A scan is one physical unit or more; a manual entry may confirm zero on the shelf.
	minQuantity := "min=0"
	if method == domain.MethodQRScan {
		minQuantity = "min=1"
	}
	if err := s.validate.Var(req.Quantity, minQuantity); err != nil {
		return nil, fmt.Errorf("%w: quantity must satisfy %s for %s", apperrors.ErrValidation, minQuantity, method)
	}

	mutate := func(current domain.VerificationItem) (domain.VerificationItem, domain.LogAction, string) {
		next := current.WithCount(req.Quantity, method, actor.ID, req.Notes, s.CurrentTime())
		var action domain.LogAction
		verb := "scanned"
		if method == domain.MethodQRScan {
			action = domain.ScanRecorded{ItemCode: current.ItemCode, PreviousQuantity: current.VerifiedQuantity, Quantity: req.Quantity}
		} else {
			action = domain.ManualEntryRecorded{ItemCode: current.ItemCode, PreviousQuantity: current.VerifiedQuantity, Quantity: req.Quantity}
			verb = "entered"
		}
		details := fmt.Sprintf("%s %s %d of %s (%d -> %d, %s)",
			actor.DisplayName, verb, req.Quantity, current.ItemCode, current.VerifiedQuantity, next.VerifiedQuantity, next.Status)
		if req.Notes != "" {
			details += ": " + req.Notes
		}
		return next, action, details
	}

	result, err := s.applyItemMutation(ctx, actor, sessionID, req.ItemCode, meta, mutate)
	if err != nil {
		return nil, err
	}
	s.Metrics.CountRecorded(string(method))
	return result, nil
}

func (s *recordingService) CorrectCount(ctx context.Context, actor domain.Actor, sessionID string, req dto.CorrectCountRequest, meta domain.RequestMetadata) (*domain.RecordingResult, error) {
	req.ItemCode = strings.TrimSpace(req.ItemCode)
	req.Reason = strings.TrimSpace(req.Reason)
	if err := s.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}

	mutate := func(current domain.VerificationItem) (domain.VerificationItem, domain.LogAction, string) {
		next := current.WithCorrection(req.NewQuantity, actor.ID, req.Reason, s.CurrentTime())
		action := domain.CountCorrected{ItemCode: current.ItemCode, PreviousQuantity: current.VerifiedQuantity, NewQuantity: req.NewQuantity}
		details := fmt.Sprintf("%s corrected %s from %d to %d: %s",
			actor.DisplayName, current.ItemCode, current.VerifiedQuantity, req.NewQuantity, req.Reason)
		return next, action, details
	}

	result, err := s.applyItemMutation(ctx, actor, sessionID, req.ItemCode, meta, mutate)
	if err != nil {
		return nil, err
	}
	s.Metrics.CountRecorded(string(domain.LogCorrection))
	return result, nil
}

// applyItemMutation runs the guarded read-modify-write of one item, then refreshes
// the session statistics from committed items.
func (s *recordingService) applyItemMutation(ctx context.Context, actor domain.Actor, sessionID, itemCode string, meta domain.RequestMetadata, mutate itemMutation) (*domain.RecordingResult, error) {
	session, err := s.sessionRepo.FindSessionByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !session.Status.IsOpen() {
		return nil, apperrors.ErrSessionNotActive
	}

	item, log, err := s.writeWithRetry(ctx, actor, sessionID, itemCode, meta, mutate)
	if err != nil {
		return nil, err
	}

	if !session.HasParticipant(actor.ID) {
		participant := domain.Participant{UserID: actor.ID, DisplayName: actor.DisplayName, Role: actor.Role, JoinedAt: log.PerformedAt}
		if err := s.sessionRepo.AddParticipant(ctx, sessionID, participant); err != nil {
			s.LogError(ctx, err, "Failed to add session participant",
				slog.String("session_id", sessionID),
				slog.String("actor_id", actor.ID))
		}
	}

	stats, err := s.stats.RecomputeSessionStats(ctx, sessionID)
	if err != nil {
		// The item write is committed; totals catch up on the next mutation.
		s.LogError(ctx, err, "Failed to recompute session statistics", slog.String("session_id", sessionID))
		stats = &session.SessionStats
	}

	s.LogInfo(ctx, "Item count applied",
		slog.String("session_id", sessionID),
		slog.String("item_code", itemCode),
		slog.String("log_id", log.LogID),
		slog.String("action", string(log.Kind())),
		slog.Int("verified_quantity", item.VerifiedQuantity),
		slog.String("status", string(item.Status)))

	return &domain.RecordingResult{Item: *item, Log: *log, SessionStats: *stats}, nil
}

func (s *recordingService) writeWithRetry(ctx context.Context, actor domain.Actor, sessionID, itemCode string, meta domain.RequestMetadata, mutate itemMutation) (*domain.VerificationItem, *domain.VerificationLog, error) {
	unlock := s.AcquireLock(ctx, itemLockKey(sessionID, itemCode))
	defer unlock()

	attempts := s.Attempts()
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		current, err := s.itemRepo.FindItem(ctx, sessionID, itemCode)
		if err != nil {
			return nil, nil, err
		}

		next, action, details := mutate(*current)
		next.Version = current.Version + 1

		log := domain.VerificationLog{
			LogID:       uuid.NewString(),
			SessionID:   sessionID,
			Action:      action,
			PerformedBy: actor.ID,
			PerformedAt: next.UpdatedAt,
			Details:     details,
			Metadata:    meta,
		}

		stored, err := s.itemRepo.SaveItemChange(ctx, portsrepo.ItemChange{
			Item:            next,
			ExpectedVersion: current.Version,
			Log:             log,
		})
		if err == nil {
			return &next, stored, nil
		}
		if !errors.Is(err, apperrors.ErrConcurrency) {
			if !errors.Is(err, apperrors.ErrConflict) {
				s.LogError(ctx, err, "Failed to save item change",
					slog.String("session_id", sessionID),
					slog.String("item_code", itemCode))
			}
			return nil, nil, err
		}

		lastErr = err
		s.Metrics.RecordRetried()
		s.LogDebug(ctx, "Item changed concurrently, retrying",
			slog.String("session_id", sessionID),
			slog.String("item_code", itemCode),
			slog.Int("attempt", attempt))
	}

	s.LogError(ctx, lastErr, "Giving up on item change after retries",
		slog.String("session_id", sessionID),
		slog.String("item_code", itemCode),
		slog.Int("attempts", attempts))
	return nil, nil, lastErr
}
