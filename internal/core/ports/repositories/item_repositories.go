package repositories

import (
	"context"

	"github.com/vanshbajaj13/Muskan-Collection-sub000/internal/core/domain"
)

// ItemQuery filters the items of one session. Search matches item code, brand or
// product case-insensitively.
type ItemQuery struct {
	SessionID string
	Search    string
	Status    *domain.ItemStatus
	Limit     int
	Offset    int
}

// ItemChange is a version-guarded item write together with the log that explains it.
type ItemChange struct {
	Item            domain.VerificationItem
	ExpectedVersion int64
	Log             domain.VerificationLog
}

// ItemReader defines read operations for verification items and their snapshots
type ItemReader interface {
	// FindItem returns apperrors.ErrItemNotInSession when the session has no such item.
	FindItem(ctx context.Context, sessionID, itemCode string) (*domain.VerificationItem, error)

	// ListItems returns one page of matching items ordered by item code, and the total match count.
	ListItems(ctx context.Context, query ItemQuery) ([]domain.VerificationItem, int, error)

	// ListAllItems returns every item of the session.
	ListAllItems(ctx context.Context, sessionID string) ([]domain.VerificationItem, error)

	// FindSnapshot returns the frozen baseline of an item.
	FindSnapshot(ctx context.Context, sessionID, itemCode string) (*domain.InventorySnapshot, error)
}

// ItemWriter defines write operations for verification items
type ItemWriter interface {
	// SaveItemChange stores the item only if its stored version still equals
	// ExpectedVersion, and appends the log in the same unit. A version mismatch
	// returns apperrors.ErrConcurrentUpdate; a session that is no longer active or paused
	// returns apperrors.ErrSessionNotActive. The stored log is returned with its sequence.
	SaveItemChange(ctx context.Context, change ItemChange) (*domain.VerificationLog, error)
}

// ItemRepositoryFacade combines all item-related repository interfaces
type ItemRepositoryFacade interface {
	ItemReader
	ItemWriter
}
