package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/vanshbajaj13/Muskan-Collection-sub000/internal/apperrors"
	"github.com/vanshbajaj13/Muskan-Collection-sub000/internal/core/domain"
	portsrepo "github.com/vanshbajaj13/Muskan-Collection-sub000/internal/core/ports/repositories"
)

func (s *Store) FindItem(ctx context.Context, sessionID, itemCode string) (*domain.VerificationItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.items[sessionID][itemCode]
	if !ok {
		return nil, apperrors.ErrItemNotInSession
	}
	return &item, nil
}

func (s *Store) ListItems(ctx context.Context, query portsrepo.ItemQuery) ([]domain.VerificationItem, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	search := strings.ToLower(query.Search)
	matched := make([]domain.VerificationItem, 0)
	for _, item := range s.items[query.SessionID] {
		if query.Status != nil && item.Status != *query.Status {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(item.ItemCode), search) &&
			!strings.Contains(strings.ToLower(item.Details.Brand), search) &&
			!strings.Contains(strings.ToLower(item.Details.Product), search) {
			continue
		}
		matched = append(matched, item)
	}
	sortItems(matched)

	total := len(matched)
	return paginate(matched, query.Limit, query.Offset), total, nil
}

func (s *Store) ListAllItems(ctx context.Context, sessionID string) ([]domain.VerificationItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]domain.VerificationItem, 0, len(s.items[sessionID]))
	for _, item := range s.items[sessionID] {
		items = append(items, item)
	}
	sortItems(items)
	return items, nil
}

func (s *Store) FindSnapshot(ctx context.Context, sessionID, itemCode string) (*domain.InventorySnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap, ok := s.snapshots[sessionID][itemCode]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	snap.Sales = append([]domain.SaleRecord(nil), snap.Sales...)
	return &snap, nil
}

func (s *Store) SaveItemChange(ctx context.Context, change portsrepo.ItemChange) (*domain.VerificationLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sessionID := change.Item.SessionID
	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, apperrors.ErrSessionNotFound
	}
	if !session.Status.IsOpen() {
		return nil, apperrors.ErrSessionNotActive
	}
	stored, ok := s.items[sessionID][change.Item.ItemCode]
	if !ok {
		return nil, apperrors.ErrItemNotInSession
	}
	if stored.Version != change.ExpectedVersion {
		return nil, apperrors.ErrConcurrentUpdate
	}

	s.items[sessionID][change.Item.ItemCode] = change.Item
	log := change.Log
	log.Sequence = s.nextSequence()
	s.logs[log.LogID] = log
	return &log, nil
}

func sortItems(items []domain.VerificationItem) {
	sort.Slice(items, func(i, j int) bool { return items[i].ItemCode < items[j].ItemCode })
}
