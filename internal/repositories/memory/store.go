package memory

import (
	"sync"

	"github.com/vanshbajaj13/Muskan-Collection-sub000/internal/core/domain"
	portsrepo "github.com/vanshbajaj13/Muskan-Collection-sub000/internal/core/ports/repositories"
)

// Store keeps sessions, snapshots, items, logs and the catalog in process memory.
// Every write runs under one mutex, which gives the same all-or-nothing and
// version-guard semantics as the database implementation.
type Store struct {
	mu        sync.RWMutex
	sessions  map[string]domain.VerificationSession
	snapshots map[string]map[string]domain.InventorySnapshot
	items     map[string]map[string]domain.VerificationItem
	logs      map[string]domain.VerificationLog
	sequence  int64
	catalog   []domain.CatalogItem
}

// NewStore creates an empty store serving the given catalog.
func NewStore(catalog []domain.CatalogItem) *Store {
	return &Store{
		sessions:  make(map[string]domain.VerificationSession),
		snapshots: make(map[string]map[string]domain.InventorySnapshot),
		items:     make(map[string]map[string]domain.VerificationItem),
		logs:      make(map[string]domain.VerificationLog),
		catalog:   cloneCatalog(catalog),
	}
}

// Provider exposes the store through every repository port.
func (s *Store) Provider(locker portsrepo.ItemLocker) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		SessionRepo: s,
		ItemRepo:    s,
		LogRepo:     s,
		CatalogRepo: s,
		Locker:      locker,
	}
}

var (
	_ portsrepo.SessionRepositoryFacade = (*Store)(nil)
	_ portsrepo.ItemRepositoryFacade    = (*Store)(nil)
	_ portsrepo.LogRepositoryFacade     = (*Store)(nil)
	_ portsrepo.CatalogReader           = (*Store)(nil)
)

func (s *Store) nextSequence() int64 {
	s.sequence++
	return s.sequence
}

func cloneSession(session domain.VerificationSession) domain.VerificationSession {
	session.Categories = append([]string(nil), session.Categories...)
	session.Participants = append([]domain.Participant(nil), session.Participants...)
	return session
}

func cloneCatalog(items []domain.CatalogItem) []domain.CatalogItem {
	out := make([]domain.CatalogItem, len(items))
	for i, item := range items {
		item.Sales = append([]domain.SaleRecord(nil), item.Sales...)
		out[i] = item
	}
	return out
}
