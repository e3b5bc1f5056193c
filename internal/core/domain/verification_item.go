package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ItemStatus is the reconciliation state of one item within a session.
type ItemStatus string

const (
	ItemPending     ItemStatus = "pending"
	ItemVerified    ItemStatus = "verified"
	ItemDiscrepancy ItemStatus = "discrepancy"
	ItemOverage     ItemStatus = "overage"
	ItemNotFound    ItemStatus = "not_found" // counted as a discrepancy by the aggregator
)

// VerificationMethod records how the last count was captured.
type VerificationMethod string

const (
	MethodQRScan      VerificationMethod = "qr-scan"
	MethodManualEntry VerificationMethod = "manual-entry"
)

// DeriveStatus maps a variance to a status. Zero variance is verified, positive is an
// overage and negative a discrepancy.
func DeriveStatus(variance int) ItemStatus {
	switch {
	case variance == 0:
		return ItemVerified
	case variance > 0:
		return ItemOverage
	default:
		return ItemDiscrepancy
	}
}

// ItemDetails is a display copy of the catalog fields, not a live reference.
type ItemDetails struct {
	Brand        string          `json:"brand"`
	Product      string          `json:"product"`
	Category     string          `json:"category"`
	Size         string          `json:"size"`
	Price        decimal.Decimal `json:"price"`
	InternalCode string          `json:"internalCode"`
}

// VerificationItem is the live working record of one item within a session.
//
// VarianceQuantity == VerifiedQuantity - ExpectedQuantity and
// VarianceValue == VarianceQuantity * Price hold after every mutation.
type VerificationItem struct {
	ItemID           string             `json:"itemID"`
	SessionID        string             `json:"sessionID"`
	ItemCode         string             `json:"itemCode"`
	Details          ItemDetails        `json:"originalDetails"`
	ExpectedQuantity int                `json:"expectedQuantity"`
	VerifiedQuantity int                `json:"verifiedQuantity"`
	VarianceQuantity int                `json:"varianceQuantity"`
	VarianceValue    decimal.Decimal    `json:"varianceValue"`
	Status           ItemStatus         `json:"status"`
	Method           VerificationMethod `json:"verificationMethod,omitempty"`
	VerifiedBy       string             `json:"verifiedBy,omitempty"`
	VerifiedAt       *time.Time         `json:"verifiedAt,omitempty"`
	Notes            string             `json:"notes"`
	IsAdjusted       bool               `json:"isAdjusted"`
	AdjustmentReason string             `json:"adjustmentReason,omitempty"`
	Version          int64              `json:"version"`
	CreatedAt        time.Time          `json:"createdAt"`
	UpdatedAt        time.Time          `json:"updatedAt"`
}

// NewVerificationItem creates the pending working record for a snapshot.
func NewVerificationItem(itemID string, snap InventorySnapshot, now time.Time) VerificationItem {
	item := VerificationItem{
		ItemID:    itemID,
		SessionID: snap.SessionID,
		ItemCode:  snap.ItemCode,
		Details: ItemDetails{
			Brand:        snap.Brand,
			Product:      snap.Product,
			Category:     snap.Category,
			Size:         snap.Size,
			Price:        snap.Price,
			InternalCode: snap.InternalCode,
		},
		ExpectedQuantity: snap.ExpectedQuantity(),
		Status:           ItemPending,
		Version:          1,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	item.recalculate()
	item.Status = ItemPending
	return item
}

// recalculate refreshes the derived variance fields from the verified quantity.
func (i *VerificationItem) recalculate() {
	i.VarianceQuantity = i.VerifiedQuantity - i.ExpectedQuantity
	i.VarianceValue = i.Details.Price.Mul(decimal.NewFromInt(int64(i.VarianceQuantity)))
}

// ExpectedValue is the expected quantity priced at the snapshot price.
func (i VerificationItem) ExpectedValue() decimal.Decimal {
	return i.Details.Price.Mul(decimal.NewFromInt(int64(i.ExpectedQuantity)))
}

// WithCount returns the item after adding an observed quantity. Counts are additive:
// scanning the same item twice sums both observations.
func (i VerificationItem) WithCount(observed int, method VerificationMethod, actorID, notes string, at time.Time) VerificationItem {
	next := i
	next.VerifiedQuantity = i.VerifiedQuantity + observed
	next.recalculate()
	next.Status = DeriveStatus(next.VarianceQuantity)
	next.Method = method
	next.VerifiedBy = actorID
	next.VerifiedAt = &at
	if notes != "" {
		next.Notes = notes
	}
	next.UpdatedAt = at
	return next
}

// WithCorrection returns the item with its verified quantity replaced.
func (i VerificationItem) WithCorrection(quantity int, actorID, reason string, at time.Time) VerificationItem {
	next := i
	next.VerifiedQuantity = quantity
	next.recalculate()
	next.Status = DeriveStatus(next.VarianceQuantity)
	next.VerifiedBy = actorID
	next.VerifiedAt = &at
	next.IsAdjusted = true
	next.AdjustmentReason = reason
	if reason != "" {
		next.Notes = reason
	}
	next.UpdatedAt = at
	return next
}

// WithRestoredQuantity returns the item after a reversal set its verified quantity.
// A zero quantity returns the item to pending and clears the verification time; notes
// and method are kept because other logs may have contributed to them.
func (i VerificationItem) WithRestoredQuantity(quantity int, at time.Time) VerificationItem {
	next := i
	if quantity < 0 {
		quantity = 0
	}
	next.VerifiedQuantity = quantity
	next.recalculate()
	if quantity == 0 {
		next.Status = ItemPending
		next.VerifiedAt = nil
	} else {
		next.Status = DeriveStatus(next.VarianceQuantity)
	}
	next.UpdatedAt = at
	return next
}

// WithAdjustment returns the item with its adjustment flag and reason replaced. An
// unadjusted item carries no reason.
func (i VerificationItem) WithAdjustment(adjusted bool, reason string) VerificationItem {
	next := i
	next.IsAdjusted = adjusted
	next.AdjustmentReason = ""
	if adjusted {
		next.AdjustmentReason = reason
	}
	return next
}

// WithReset returns the item fully reset to its initial pending state.
func (i VerificationItem) WithReset(at time.Time) VerificationItem {
	next := i.WithRestoredQuantity(0, at)
	next = next.WithAdjustment(false, "")
	next.Method = ""
	next.VerifiedBy = ""
	return next
}
