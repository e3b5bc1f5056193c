package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/vanshbajaj13/Muskan-Collection-sub000/internal/apperrors"
	"github.com/vanshbajaj13/Muskan-Collection-sub000/internal/core/domain"
	portsrepo "github.com/vanshbajaj13/Muskan-Collection-sub000/internal/core/ports/repositories"
	portssvc "github.com/vanshbajaj13/Muskan-Collection-sub000/internal/core/ports/services"
	"github.com/vanshbajaj13/Muskan-Collection-sub000/internal/dto"
)

const (
	defaultLogListLimit = 50
	maxLogListLimit     = 100
)

// countKinds are the log kinds that set an item's verified quantity.
var countKinds = []domain.LogKind{domain.LogScan, domain.LogManualEntry, domain.LogCorrection}

// reversal is the computed inverse of one log. current and next are nil when the
// log has no item effect.
type reversal struct {
	current     *domain.VerificationItem
	next        *domain.VerificationItem
	impact      *domain.ItemImpact
	description string
}

type auditService struct {
	BaseService
	sessionRepo portsrepo.SessionReader
	itemRepo    portsrepo.ItemReader
	logRepo     portsrepo.LogRepositoryFacade
	stats       portssvc.StatisticsSvc
}

// NewAuditService creates the audit log and reversal engine.
func NewAuditService(
	sessionRepo portsrepo.SessionReader,
	itemRepo portsrepo.ItemReader,
	logRepo portsrepo.LogRepositoryFacade,
	stats portssvc.StatisticsSvc,
	options ...ServiceOption,
) portssvc.AuditSvcFacade {
	svc := &auditService{
		sessionRepo: sessionRepo,
		itemRepo:    itemRepo,
		logRepo:     logRepo,
		stats:       stats,
	}
	for _, option := range options {
		option(&svc.BaseService)
	}
	return svc
}

var _ portssvc.AuditSvcFacade = (*auditService)(nil)

func (s *auditService) ListLogs(ctx context.Context, sessionID string, params dto.ListLogsParams) (*dto.ListLogsResponse, error) {
	if _, err := s.sessionRepo.FindSessionByID(ctx, sessionID); err != nil {
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = defaultLogListLimit
	}
	if limit > maxLogListLimit {
		limit = maxLogListLimit
	}

	logs, nextToken, err := s.logRepo.ListLogs(ctx, portsrepo.LogQuery{
		SessionID: sessionID,
		ItemCode:  strings.TrimSpace(params.ItemCode),
		Limit:     limit,
		NextToken: params.NextToken,
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to list logs", slog.String("session_id", sessionID))
		}
		return nil, err
	}

	return &dto.ListLogsResponse{
		Logs:      dto.ToLogResponses(logs),
		NextToken: nextToken,
	}, nil
}

// checkDeletable applies the deletion guards. The protected-kind check comes first
// so session provenance logs are refused whatever the session status.
func checkDeletable(log *domain.VerificationLog, session *domain.VerificationSession) error {
	if log.Kind().IsProtected() {
		return apperrors.ErrProtectedLog
	}
	if !session.Status.IsOpen() {
		return apperrors.ErrSessionLocked
	}
	return nil
}

func (s *auditService) PreviewLogDeletion(ctx context.Context, logID string) (*domain.DeletionPreview, error) {
	log, err := s.logRepo.FindLogByID(ctx, logID)
	if err != nil {
		return nil, err
	}
	session, err := s.sessionRepo.FindSessionByID(ctx, log.SessionID)
	if err != nil {
		return nil, err
	}

	preview := &domain.DeletionPreview{Log: *log, CanDelete: true}
	if err := checkDeletable(log, session); err != nil {
		preview.CanDelete = false
		preview.Reason = reasonText(err)
		preview.ImpactDescription = "No changes would be made."
		return preview, nil
	}

	rev, err := s.planReversal(ctx, log)
	if err != nil {
		return nil, err
	}
	preview.ImpactDescription = rev.description
	preview.Impact = rev.impact
	return preview, nil
}

func (s *auditService) DeleteLog(ctx context.Context, actor domain.Actor, logID string, meta domain.RequestMetadata) (*domain.DeletionResult, error) {
	log, err := s.logRepo.FindLogByID(ctx, logID)
	if err != nil {
		return nil, err
	}
	session, err := s.sessionRepo.FindSessionByID(ctx, log.SessionID)
	if err != nil {
		return nil, err
	}
	if err := checkDeletable(log, session); err != nil {
		s.LogDebug(ctx, "Log deletion refused",
			slog.String("log_id", logID),
			slog.String("reason", err.Error()))
		return nil, err
	}

	if itemCode := logItemCode(log.Action); itemCode != "" {
		unlock := s.AcquireLock(ctx, itemLockKey(log.SessionID, itemCode))
		defer unlock()
	}

	attempts := s.Attempts()
	var rev *reversal
	var deletionLog *domain.VerificationLog
	for attempt := 1; attempt <= attempts; attempt++ {
		rev, err = s.planReversal(ctx, log)
		if err != nil {
			return nil, err
		}

		deletion := portsrepo.LogDeletion{
			DeletedLogID: log.LogID,
			DeletionLog:  s.newDeletionLog(actor, log, rev, meta),
		}
		if rev.next != nil {
			next := *rev.next
			next.Version = rev.current.Version + 1
			rev.next = &next
			deletion.Item = &next
			deletion.ExpectedVersion = rev.current.Version
		}

		deletionLog, err = s.logRepo.ApplyLogDeletion(ctx, deletion)
		if err == nil {
			break
		}
		if !errors.Is(err, apperrors.ErrConcurrency) || attempt == attempts {
			if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrConflict) {
				s.LogError(ctx, err, "Failed to apply log deletion", slog.String("log_id", logID))
			}
			return nil, err
		}
		s.Metrics.RecordRetried()
		s.LogDebug(ctx, "Item changed concurrently during log deletion, retrying",
			slog.String("log_id", logID),
			slog.Int("attempt", attempt))
	}
	s.Metrics.LogReversed(string(log.Kind()))

	result := &domain.DeletionResult{
		DeletedLogID:      log.LogID,
		DeletionLog:       *deletionLog,
		ImpactDescription: rev.description,
		Impact:            rev.impact,
		AffectedItem:      rev.next,
		SessionStats:      session.SessionStats,
	}

	stats, err := s.stats.RecomputeSessionStats(ctx, log.SessionID)
	if err != nil {
		s.LogError(ctx, err, "Failed to recompute session statistics", slog.String("session_id", log.SessionID))
	} else {
		result.SessionStats = *stats
	}

	s.LogInfo(ctx, "Verification log deleted",
		slog.String("session_id", log.SessionID),
		slog.String("log_id", logID),
		slog.String("action", string(log.Kind())),
		slog.String("actor_id", actor.ID))
	return result, nil
}

// planReversal computes the inverse effect of a log against the item's current state.
func (s *auditService) planReversal(ctx context.Context, log *domain.VerificationLog) (*reversal, error) {
	switch action := log.Action.(type) {
	case domain.ScanRecorded:
		return s.planDeltaReversal(ctx, log, action.ItemCode, action.Quantity)
	case domain.ManualEntryRecorded:
		return s.planDeltaReversal(ctx, log, action.ItemCode, action.Quantity)
	case domain.CountCorrected:
		return s.planCorrectionReversal(ctx, log, action)
	case domain.LogDeleted:
		return &reversal{description: "Removes a deletion record only. No item quantities change."}, nil
	case domain.SessionStarted, domain.SessionClosed:
		return nil, apperrors.ErrProtectedLog
	default:
		return nil, fmt.Errorf("%w: unsupported log action %T", apperrors.ErrInternal, log.Action)
	}
}

// planDeltaReversal subtracts the logged delta from the item's current total.
func (s *auditService) planDeltaReversal(ctx context.Context, log *domain.VerificationLog, itemCode string, delta int) (*reversal, error) {
	current, err := s.itemRepo.FindItem(ctx, log.SessionID, itemCode)
	if err != nil {
		return nil, err
	}
	next := current.WithRestoredQuantity(current.VerifiedQuantity-delta, s.CurrentTime())
	impact := newItemImpact(current, &next)
	return &reversal{
		current:     current,
		next:        &next,
		impact:      impact,
		description: fmt.Sprintf("Removes %d counted by this %s. %s", delta, log.Kind(), describeImpact(impact)),
	}, nil
}

// planCorrectionReversal restores the quantity recorded before the most recent earlier
// count of the item, or resets the item when no earlier count exists.
func (s *auditService) planCorrectionReversal(ctx context.Context, log *domain.VerificationLog, action domain.CountCorrected) (*reversal, error) {
	current, err := s.itemRepo.FindItem(ctx, log.SessionID, action.ItemCode)
	if err != nil {
		return nil, err
	}

	now := s.CurrentTime()
	prior, err := s.logRepo.FindPriorItemLog(ctx, log.SessionID, action.ItemCode, log.Sequence, countKinds)
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		next := current.WithReset(now)
		impact := newItemImpact(current, &next)
		return &reversal{
			current:     current,
			next:        &next,
			impact:      impact,
			description: "No earlier count exists, the item returns to pending. " + describeImpact(impact),
		}, nil
	case err != nil:
		s.LogError(ctx, err, "Failed to find prior item log",
			slog.String("log_id", log.LogID),
			slog.String("item_code", action.ItemCode))
		return nil, err
	}

	restored, ok := previousQuantity(prior.Action)
	if !ok {
		return nil, fmt.Errorf("%w: prior log %s carries no quantity", apperrors.ErrInternal, prior.LogID)
	}
	next := current.WithRestoredQuantity(restored, now)

	// The adjustment belongs to the correction being removed unless an earlier
	// correction of the item survives.
	earlier, err := s.logRepo.FindPriorItemLog(ctx, log.SessionID, action.ItemCode, log.Sequence, []domain.LogKind{domain.LogCorrection})
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		next = next.WithAdjustment(false, "")
	case err != nil:
		s.LogError(ctx, err, "Failed to find earlier correction",
			slog.String("log_id", log.LogID),
			slog.String("item_code", action.ItemCode))
		return nil, err
	default:
		next = next.WithAdjustment(true, earlier.Details)
	}

	impact := newItemImpact(current, &next)
	return &reversal{
		current:     current,
		next:        &next,
		impact:      impact,
		description: fmt.Sprintf("Restores the quantity recorded before %s log %s. %s", prior.Kind(), prior.LogID, describeImpact(impact)),
	}, nil
}

func (s *auditService) newDeletionLog(actor domain.Actor, log *domain.VerificationLog, rev *reversal, meta domain.RequestMetadata) domain.VerificationLog {
	action := domain.LogDeleted{
		DeletedLogID: log.LogID,
		DeletedKind:  log.Kind(),
		ItemCode:     logItemCode(log.Action),
	}
	if rev.impact != nil {
		prev, next := rev.impact.PreviousQuantity, rev.impact.NewQuantity
		action.PreviousQuantity = &prev
		action.NewQuantity = &next
	}

	details := fmt.Sprintf("%s deleted %s log %s by %s at %s", actor.DisplayName, log.Kind(), log.LogID,
		log.PerformedBy, log.PerformedAt.Format("2006-01-02 15:04:05"))
	if log.Details != "" {
		details += fmt.Sprintf(" (%s)", log.Details)
	}
	details += ". " + rev.description

	return domain.VerificationLog{
		LogID:       uuid.NewString(),
		SessionID:   log.SessionID,
		Action:      action,
		PerformedBy: actor.ID,
		PerformedAt: s.CurrentTime(),
		Details:     details,
		Metadata:    meta,
	}
}

func newItemImpact(current, next *domain.VerificationItem) *domain.ItemImpact {
	return &domain.ItemImpact{
		ItemCode:         current.ItemCode,
		PreviousQuantity: current.VerifiedQuantity,
		NewQuantity:      next.VerifiedQuantity,
		PreviousStatus:   current.Status,
		NewStatus:        next.Status,
	}
}

func describeImpact(impact *domain.ItemImpact) string {
	return fmt.Sprintf("Item %s: quantity %d -> %d, status %s -> %s.",
		impact.ItemCode, impact.PreviousQuantity, impact.NewQuantity, impact.PreviousStatus, impact.NewStatus)
}

func logItemCode(action domain.LogAction) string {
	switch a := action.(type) {
	case domain.ScanRecorded:
		return a.ItemCode
	case domain.ManualEntryRecorded:
		return a.ItemCode
	case domain.CountCorrected:
		return a.ItemCode
	case domain.LogDeleted:
		return a.ItemCode
	default:
		return ""
	}
}

func previousQuantity(action domain.LogAction) (int, bool) {
	switch a := action.(type) {
	case domain.ScanRecorded:
		return a.PreviousQuantity, true
	case domain.ManualEntryRecorded:
		return a.PreviousQuantity, true
	case domain.CountCorrected:
		return a.PreviousQuantity, true
	default:
		return 0, false
	}
}

func reasonText(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrProtectedLog):
		return "Session start and completion logs cannot be deleted."
	case errors.Is(err, apperrors.ErrSessionLocked):
		return "Logs can only be deleted while the session is active or paused."
	default:
		return err.Error()
	}
}
