package repositories

import (
	"context"
	"time"

	"github.com/vanshbajaj13/Muskan-Collection-sub000/internal/core/domain"
)

// CatalogReader is the read side of the inventory catalog collaborator.
type CatalogReader interface {
	// ListCatalogItems returns every catalog item matching the filter.
	ListCatalogItems(ctx context.Context, filter domain.CatalogFilter) ([]domain.CatalogItem, error)
}

// Unlock releases a lock obtained from an ItemLocker.
type Unlock func()

// ItemLocker serialises work on one key across recording stations.
type ItemLocker interface {
	// Lock blocks until the key is held, ctx is done, or wait elapses.
	Lock(ctx context.Context, key string, wait time.Duration) (Unlock, error)
}
