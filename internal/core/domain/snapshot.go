package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventorySnapshot is the frozen catalog state of one item at session start.
// It is written once and never mutated.
type InventorySnapshot struct {
	SnapshotID        string          `json:"snapshotID"`
	SessionID         string          `json:"sessionID"`
	ItemCode          string          `json:"itemCode"`
	Brand             string          `json:"brand"`
	Product           string          `json:"product"`
	Category          string          `json:"category"`
	Size              string          `json:"size"`
	QuantityBought    int             `json:"quantityBought"`
	QuantitySold      int             `json:"quantitySold"`
	AvailableQuantity int             `json:"availableQuantity"`
	Price             decimal.Decimal `json:"price"`
	InternalCode      string          `json:"internalCode"`
	Sales             []SaleRecord    `json:"sales"`
	CapturedAt        time.Time       `json:"capturedAt"`
}

// NewInventorySnapshot copies a catalog item into a snapshot.
func NewInventorySnapshot(snapshotID, sessionID string, item CatalogItem, capturedAt time.Time) InventorySnapshot {
	sales := make([]SaleRecord, len(item.Sales))
	copy(sales, item.Sales)
	return InventorySnapshot{
		SnapshotID:        snapshotID,
		SessionID:         sessionID,
		ItemCode:          item.Code,
		Brand:             item.Brand,
		Product:           item.Product,
		Category:          item.Category,
		Size:              item.Size,
		QuantityBought:    item.QuantityBought,
		QuantitySold:      item.QuantitySold,
		AvailableQuantity: item.AvailableQuantity(),
		Price:             item.Price,
		InternalCode:      item.InternalCode,
		Sales:             sales,
		CapturedAt:        capturedAt,
	}
}

// ExpectedQuantity is the quantity the count is reconciled against.
func (s InventorySnapshot) ExpectedQuantity() int {
	return s.QuantityBought - s.QuantitySold
}
