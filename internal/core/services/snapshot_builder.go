package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/vanshbajaj13/Muskan-Collection-sub000/internal/apperrors"
	"github.com/vanshbajaj13/Muskan-Collection-sub000/internal/core/domain"
	portsrepo "github.com/vanshbajaj13/Muskan-Collection-sub000/internal/core/ports/repositories"
)

// Baseline is the frozen starting point of a session.
type Baseline struct {
	Snapshots []domain.InventorySnapshot
	Items     []domain.VerificationItem
	Stats     domain.SessionStats
}

// SnapshotBuilder captures the catalog subset a session verifies.
type SnapshotBuilder struct {
	BaseService
	catalog portsrepo.CatalogReader
}

// NewSnapshotBuilder creates a SnapshotBuilder over the catalog collaborator.
func NewSnapshotBuilder(catalog portsrepo.CatalogReader) *SnapshotBuilder {
	return &SnapshotBuilder{catalog: catalog}
}

// Build reads the catalog once and returns one snapshot and one pending item per
// matching catalog item. Nothing is persisted here; the caller stores the baseline
// as a single unit.
func (b *SnapshotBuilder) Build(ctx context.Context, sessionID string, filter domain.CatalogFilter, capturedAt time.Time) (*Baseline, error) {
	catalogItems, err := b.catalog.ListCatalogItems(ctx, filter)
	if err != nil {
		b.LogError(ctx, err, "Failed to read inventory catalog",
			slog.String("session_id", sessionID))
		return nil, fmt.Errorf("%w: %w", apperrors.ErrCatalogUnavailable, err)
	}

	// The collaborator may ignore the filter, so it is applied again here.
	matched := make([]domain.CatalogItem, 0, len(catalogItems))
	seen := make(map[string]struct{}, len(catalogItems))
	for _, item := range catalogItems {
		if !filter.Matches(item) {
			continue
		}
		if _, dup := seen[item.Code]; dup {
			b.LogDebug(ctx, "Skipping duplicate catalog item code", slog.String("item_code", item.Code))
			continue
		}
		seen[item.Code] = struct{}{}
		matched = append(matched, item)
	}
	if len(matched) == 0 {
		return nil, fmt.Errorf("%w: no catalog items match the session scope", apperrors.ErrValidation)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Code < matched[j].Code })

	baseline := &Baseline{
		Snapshots: make([]domain.InventorySnapshot, 0, len(matched)),
		Items:     make([]domain.VerificationItem, 0, len(matched)),
	}
	for _, catalogItem := range matched {
		snap := domain.NewInventorySnapshot(uuid.NewString(), sessionID, catalogItem, capturedAt)
		baseline.Snapshots = append(baseline.Snapshots, snap)
		baseline.Items = append(baseline.Items, domain.NewVerificationItem(uuid.NewString(), snap, capturedAt))
	}

	baseline.Stats.TotalExpectedItems = len(baseline.Items)
	for _, item := range baseline.Items {
		baseline.Stats.ExpectedFinancialValue = baseline.Stats.ExpectedFinancialValue.Add(item.ExpectedValue())
	}
	domain.ComputeSessionStats(baseline.Items).Apply(&baseline.Stats)

	b.LogDebug(ctx, "Inventory baseline captured",
		slog.String("session_id", sessionID),
		slog.Int("item_count", len(baseline.Items)))
	return baseline, nil
}
