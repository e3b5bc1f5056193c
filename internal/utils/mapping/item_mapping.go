package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/vanshbajaj13/Muskan-Collection-sub000/internal/core/domain"
	"github.com/vanshbajaj13/Muskan-Collection-sub000/internal/models"
)

// ToModelItem converts a domain VerificationItem to a model Item
func ToModelItem(d domain.VerificationItem) models.Item {
	return models.Item{
		ItemID:             d.ItemID,
		SessionID:          d.SessionID,
		ItemCode:           d.ItemCode,
		Brand:              d.Details.Brand,
		Product:            d.Details.Product,
		Category:           d.Details.Category,
		Size:               d.Details.Size,
		Price:              d.Details.Price,
		InternalCode:       d.Details.InternalCode,
		ExpectedQuantity:   d.ExpectedQuantity,
		VerifiedQuantity:   d.VerifiedQuantity,
		VarianceQuantity:   d.VarianceQuantity,
		VarianceValue:      d.VarianceValue,
		Status:             string(d.Status),
		VerificationMethod: string(d.Method),
		VerifiedBy:         d.VerifiedBy,
		VerifiedAt:         d.VerifiedAt,
		Notes:              d.Notes,
		IsAdjusted:         d.IsAdjusted,
		AdjustmentReason:   d.AdjustmentReason,
		Version:            d.Version,
		CreatedAt:          d.CreatedAt,
		UpdatedAt:          d.UpdatedAt,
	}
}

// ToDomainItem converts a model Item to a domain VerificationItem
func ToDomainItem(m models.Item) domain.VerificationItem {
	return domain.VerificationItem{
		ItemID:    m.ItemID,
		SessionID: m.SessionID,
		ItemCode:  m.ItemCode,
		Details: domain.ItemDetails{
			Brand:        m.Brand,
			Product:      m.Product,
			Category:     m.Category,
			Size:         m.Size,
			Price:        m.Price,
			InternalCode: m.InternalCode,
		},
		ExpectedQuantity: m.ExpectedQuantity,
		VerifiedQuantity: m.VerifiedQuantity,
		VarianceQuantity: m.VarianceQuantity,
		VarianceValue:    m.VarianceValue,
		Status:           domain.ItemStatus(m.Status),
		Method:           domain.VerificationMethod(m.VerificationMethod),
		VerifiedBy:       m.VerifiedBy,
		VerifiedAt:       m.VerifiedAt,
		Notes:            m.Notes,
		IsAdjusted:       m.IsAdjusted,
		AdjustmentReason: m.AdjustmentReason,
		Version:          m.Version,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

// ToDomainItemSlice converts a slice of model Items to a slice of domain VerificationItems
func ToDomainItemSlice(ms []models.Item) []domain.VerificationItem {
	ds := make([]domain.VerificationItem, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainItem(m)
	}
	return ds
}

// ToModelSnapshot converts a domain InventorySnapshot to a model Snapshot
func ToModelSnapshot(d domain.InventorySnapshot) (models.Snapshot, error) {
	sales, err := encodeSales(d.Sales)
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("snapshot %s: %w", d.ItemCode, err)
	}
	return models.Snapshot{
		SnapshotID:        d.SnapshotID,
		SessionID:         d.SessionID,
		ItemCode:          d.ItemCode,
		Brand:             d.Brand,
		Product:           d.Product,
		Category:          d.Category,
		Size:              d.Size,
		QuantityBought:    d.QuantityBought,
		QuantitySold:      d.QuantitySold,
		AvailableQuantity: d.AvailableQuantity,
		Price:             d.Price,
		InternalCode:      d.InternalCode,
		Sales:             sales,
		CapturedAt:        d.CapturedAt,
	}, nil
}

// ToDomainSnapshot converts a model Snapshot to a domain InventorySnapshot
func ToDomainSnapshot(m models.Snapshot) (domain.InventorySnapshot, error) {
	sales, err := decodeSales(m.Sales)
	if err != nil {
		return domain.InventorySnapshot{}, fmt.Errorf("snapshot %s: %w", m.ItemCode, err)
	}
	return domain.InventorySnapshot{
		SnapshotID:        m.SnapshotID,
		SessionID:         m.SessionID,
		ItemCode:          m.ItemCode,
		Brand:             m.Brand,
		Product:           m.Product,
		Category:          m.Category,
		Size:              m.Size,
		QuantityBought:    m.QuantityBought,
		QuantitySold:      m.QuantitySold,
		AvailableQuantity: m.AvailableQuantity,
		Price:             m.Price,
		InternalCode:      m.InternalCode,
		Sales:             sales,
		CapturedAt:        m.CapturedAt,
	}, nil
}

func encodeSales(sales []domain.SaleRecord) ([]byte, error) {
	if sales == nil {
		sales = []domain.SaleRecord{}
	}
	data, err := json.Marshal(sales)
	if err != nil {
		return nil, fmt.Errorf("failed to encode sales: %w", err)
	}
	return data, nil
}

func decodeSales(data []byte) ([]domain.SaleRecord, error) {
	if len(data) == 0 {
		return []domain.SaleRecord{}, nil
	}
	var sales []domain.SaleRecord
	if err := json.Unmarshal(data, &sales); err != nil {
		return nil, fmt.Errorf("failed to decode sales: %w", err)
	}
	return sales, nil
}
