package services

import (
	"context"

	"github.com/vanshbajaj13/Muskan-Collection-sub000/internal/core/domain"
	"github.com/vanshbajaj13/Muskan-Collection-sub000/internal/dto"
)

// ItemReaderSvc defines read operations for the items of a session
type ItemReaderSvc interface {
	// ListItems returns a page of items with pagination and the session's status summary.
	ListItems(ctx context.Context, sessionID string, params dto.ListItemsParams) (*dto.ListItemsResponse, error)

	// GetItem returns the item and its frozen snapshot.
	GetItem(ctx context.Context, sessionID, itemCode string) (*domain.VerificationItem, *domain.InventorySnapshot, error)
}

// RecordingSvc applies count observations to items
type RecordingSvc interface {
	// RecordScan adds a scanned quantity to the item's running tally.
	RecordScan(ctx context.Context, actor domain.Actor, sessionID string, req dto.RecordCountRequest, meta domain.RequestMetadata) (*domain.RecordingResult, error)

	// RecordManual adds a typed-in quantity to the item's running tally.
	RecordManual(ctx context.Context, actor domain.Actor, sessionID string, req dto.RecordCountRequest, meta domain.RequestMetadata) (*domain.RecordingResult, error)

	// CorrectCount replaces the item's verified quantity.
	CorrectCount(ctx context.Context, actor domain.Actor, sessionID string, req dto.CorrectCountRequest, meta domain.RequestMetadata) (*domain.RecordingResult, error)
}

// RecordingSvcFacade combines all item-related service interfaces
type RecordingSvcFacade interface {
	ItemReaderSvc
	RecordingSvc
}
