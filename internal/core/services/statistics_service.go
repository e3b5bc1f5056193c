package services

import (
	"context"
	"log/slog"

	"github.com/vanshbajaj13/Muskan-Collection-sub000/internal/core/domain"
	portsrepo "github.com/vanshbajaj13/Muskan-Collection-sub000/internal/core/ports/repositories"
	portssvc "github.com/vanshbajaj13/Muskan-Collection-sub000/internal/core/ports/services"
)

type statisticsService struct {
	BaseService
	sessionRepo portsrepo.SessionRepositoryFacade
	itemRepo    portsrepo.ItemReader
}

// NewStatisticsService creates the statistics aggregator service.
func NewStatisticsService(sessionRepo portsrepo.SessionRepositoryFacade, itemRepo portsrepo.ItemReader, options ...ServiceOption) portssvc.StatisticsSvc {
	svc := &statisticsService{
		sessionRepo: sessionRepo,
		itemRepo:    itemRepo,
	}
	for _, option := range options {
		option(&svc.BaseService)
	}
	return svc
}

var _ portssvc.StatisticsSvc = (*statisticsService)(nil)

// RecomputeSessionStats runs under a per-session lock so the last writer always
// reads items committed before every earlier recompute.
func (s *statisticsService) RecomputeSessionStats(ctx context.Context, sessionID string) (*domain.SessionStats, error) {
	unlock := s.AcquireLock(ctx, statsLockKey(sessionID))
	defer unlock()

	session, err := s.sessionRepo.FindSessionByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	items, err := s.itemRepo.ListAllItems(ctx, sessionID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list items for statistics",
			slog.String("session_id", sessionID))
		return nil, err
	}

	computed := domain.ComputeSessionStats(items)
	if err := s.sessionRepo.UpdateSessionStats(ctx, sessionID, computed, s.CurrentTime()); err != nil {
		s.LogError(ctx, err, "Failed to store session statistics",
			slog.String("session_id", sessionID))
		return nil, err
	}

	computed.Apply(&session.SessionStats)
	s.LogDebug(ctx, "Session statistics recomputed",
		slog.String("session_id", sessionID),
		slog.Int("verified_items", computed.TotalVerifiedItems),
		slog.Int("discrepancies", computed.TotalDiscrepancies))
	return &session.SessionStats, nil
}
