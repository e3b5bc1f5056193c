package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/vanshbajaj13/Muskan-Collection-sub000/internal/apperrors"
	"github.com/vanshbajaj13/Muskan-Collection-sub000/internal/core/domain"
	portsrepo "github.com/vanshbajaj13/Muskan-Collection-sub000/internal/core/ports/repositories"
)

func (s *Store) FindSessionByID(ctx context.Context, sessionID string) (*domain.VerificationSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, apperrors.ErrSessionNotFound
	}
	out := cloneSession(session)
	return &out, nil
}

func (s *Store) ListSessions(ctx context.Context, query portsrepo.SessionQuery) ([]domain.VerificationSession, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]domain.VerificationSession, 0, len(s.sessions))
	for _, session := range s.sessions {
		if query.Status != nil && session.Status != *query.Status {
			continue
		}
		matched = append(matched, cloneSession(session))
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].StartedAt.Equal(matched[j].StartedAt) {
			return matched[i].StartedAt.After(matched[j].StartedAt)
		}
		return matched[i].SessionID < matched[j].SessionID
	})

	total := len(matched)
	return paginate(matched, query.Limit, query.Offset), total, nil
}

func (s *Store) SaveSessionBaseline(ctx context.Context, baseline portsrepo.SessionBaseline) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessionID := baseline.Session.SessionID
	if _, exists := s.sessions[sessionID]; exists {
		return fmt.Errorf("%w: session %s", apperrors.ErrDuplicate, sessionID)
	}

	snapshots := make(map[string]domain.InventorySnapshot, len(baseline.Snapshots))
	for _, snap := range baseline.Snapshots {
		snapshots[snap.ItemCode] = snap
	}
	items := make(map[string]domain.VerificationItem, len(baseline.Items))
	for _, item := range baseline.Items {
		if _, dup := items[item.ItemCode]; dup {
			return fmt.Errorf("%w: item %s appears twice in session baseline", apperrors.ErrDuplicate, item.ItemCode)
		}
		items[item.ItemCode] = item
	}

	s.sessions[sessionID] = cloneSession(baseline.Session)
	s.snapshots[sessionID] = snapshots
	s.items[sessionID] = items
	startLog := baseline.StartLog
	startLog.Sequence = s.nextSequence()
	s.logs[startLog.LogID] = startLog
	return nil
}

func (s *Store) UpdateSessionStatus(ctx context.Context, change portsrepo.StatusChange) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[change.SessionID]
	if !ok {
		return apperrors.ErrSessionNotFound
	}
	if session.Status != change.From {
		return fmt.Errorf("%w: session is %s, expected %s", apperrors.ErrInvalidTransition, session.Status, change.From)
	}
	session.Status = change.To
	if change.Notes != nil {
		session.Notes = *change.Notes
	}
	session.LastUpdatedAt = change.At
	session.LastUpdatedBy = change.UpdatedBy
	s.sessions[change.SessionID] = session
	return nil
}

func (s *Store) UpdateSessionStats(ctx context.Context, sessionID string, stats domain.ComputedStats, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return apperrors.ErrSessionNotFound
	}
	if !session.Status.IsOpen() {
		return nil
	}
	stats.Apply(&session.SessionStats)
	session.LastUpdatedAt = at
	s.sessions[sessionID] = session
	return nil
}

func (s *Store) CompleteSession(ctx context.Context, completion portsrepo.SessionCompletion) (*domain.ComputedStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[completion.SessionID]
	if !ok {
		return nil, apperrors.ErrSessionNotFound
	}
	if session.Status == domain.SessionCompleted {
		return nil, apperrors.ErrAlreadyCompleted
	}
	if !session.Status.IsOpen() {
		return nil, fmt.Errorf("%w: cannot complete a %s session", apperrors.ErrInvalidTransition, session.Status)
	}

	items := make([]domain.VerificationItem, 0, len(s.items[completion.SessionID]))
	for _, item := range s.items[completion.SessionID] {
		items = append(items, item)
	}
	final := domain.ComputeSessionStats(items)
	final.Apply(&session.SessionStats)
	completedAt := completion.CompletedAt
	session.Status = domain.SessionCompleted
	session.CompletedAt = &completedAt
	if completion.Notes != "" {
		session.Notes = completion.Notes
	}
	session.LastUpdatedAt = completedAt
	session.LastUpdatedBy = completion.CompletedBy
	s.sessions[completion.SessionID] = session

	log := completion.Log
	if completion.Describe != nil {
		log.Details = completion.Describe(final)
	}
	log.Sequence = s.nextSequence()
	s.logs[log.LogID] = log
	return &final, nil
}

func (s *Store) AddParticipant(ctx context.Context, sessionID string, participant domain.Participant) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return apperrors.ErrSessionNotFound
	}
	if session.HasParticipant(participant.UserID) {
		return nil
	}
	session = cloneSession(session)
	session.Participants = append(session.Participants, participant)
	s.sessions[sessionID] = session
	return nil
}

func (s *Store) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[sessionID]; !ok {
		return apperrors.ErrSessionNotFound
	}
	delete(s.sessions, sessionID)
	delete(s.snapshots, sessionID)
	delete(s.items, sessionID)
	for id, log := range s.logs {
		if log.SessionID == sessionID {
			delete(s.logs, id)
		}
	}
	return nil
}

func paginate[T any](in []T, limit, offset int) []T {
	if offset >= len(in) {
		return []T{}
	}
	in = in[offset:]
	if limit > 0 && limit < len(in) {
		in = in[:limit]
	}
	return in
}
