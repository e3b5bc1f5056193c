package memory

import (
	"context"
	"fmt"
	"slices"
	"sort"

	"github.com/vanshbajaj13/Muskan-Collection-sub000/internal/apperrors"
	"github.com/vanshbajaj13/Muskan-Collection-sub000/internal/core/domain"
	portsrepo "github.com/vanshbajaj13/Muskan-Collection-sub000/internal/core/ports/repositories"
	"github.com/vanshbajaj13/Muskan-Collection-sub000/internal/utils/pagination"
)

func (s *Store) FindLogByID(ctx context.Context, logID string) (*domain.VerificationLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	log, ok := s.logs[logID]
	if !ok {
		return nil, apperrors.ErrLogNotFound
	}
	return &log, nil
}

func (s *Store) ListLogs(ctx context.Context, query portsrepo.LogQuery) ([]domain.VerificationLog, *string, error) {
	var before int64
	if query.NextToken != nil && *query.NextToken != "" {
		seq, err := pagination.DecodeSequenceToken(*query.NextToken, query.SessionID)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		before = seq
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]domain.VerificationLog, 0)
	for _, log := range s.logs {
		if log.SessionID != query.SessionID {
			continue
		}
		if before > 0 && log.Sequence >= before {
			continue
		}
		if query.ItemCode != "" && logItemCode(log) != query.ItemCode {
			continue
		}
		matched = append(matched, log)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Sequence > matched[j].Sequence })

	if query.Limit <= 0 || len(matched) <= query.Limit {
		return matched, nil, nil
	}
	page := matched[:query.Limit]
	token := pagination.EncodeSequenceToken(query.SessionID, page[len(page)-1].Sequence)
	return page, &token, nil
}

func (s *Store) FindPriorItemLog(ctx context.Context, sessionID, itemCode string, beforeSequence int64, kinds []domain.LogKind) (*domain.VerificationLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var prior *domain.VerificationLog
	for _, log := range s.logs {
		if log.SessionID != sessionID || log.Sequence >= beforeSequence {
			continue
		}
		if !slices.Contains(kinds, log.Kind()) || logItemCode(log) != itemCode {
			continue
		}
		if prior == nil || log.Sequence > prior.Sequence {
			found := log
			prior = &found
		}
	}
	if prior == nil {
		return nil, apperrors.ErrLogNotFound
	}
	return prior, nil
}

func (s *Store) ApplyLogDeletion(ctx context.Context, deletion portsrepo.LogDeletion) (*domain.VerificationLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	original, ok := s.logs[deletion.DeletedLogID]
	if !ok {
		return nil, apperrors.ErrLogNotFound
	}
	session, ok := s.sessions[original.SessionID]
	if !ok {
		return nil, apperrors.ErrSessionNotFound
	}
	if !session.Status.IsOpen() {
		return nil, apperrors.ErrSessionLocked
	}
	if deletion.Item != nil {
		stored, ok := s.items[original.SessionID][deletion.Item.ItemCode]
		if !ok {
			return nil, apperrors.ErrItemNotInSession
		}
		if stored.Version != deletion.ExpectedVersion {
			return nil, apperrors.ErrConcurrentUpdate
		}
		s.items[original.SessionID][deletion.Item.ItemCode] = *deletion.Item
	}

	delete(s.logs, deletion.DeletedLogID)
	log := deletion.DeletionLog
	log.Sequence = s.nextSequence()
	s.logs[log.LogID] = log
	return &log, nil
}

func logItemCode(log domain.VerificationLog) string {
	fields, err := domain.Flatten(log.Action)
	if err != nil || fields.ItemCode == nil {
		return ""
	}
	return *fields.ItemCode
}
