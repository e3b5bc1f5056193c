package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Snapshot is a row of inventory_snapshots. Sales holds the JSON encoded sale history.
type Snapshot struct {
	SnapshotID        string          `db:"snapshot_id"`
	SessionID         string          `db:"session_id"`
	ItemCode          string          `db:"item_code"`
	Brand             string          `db:"brand"`
	Product           string          `db:"product"`
	Category          string          `db:"category"`
	Size              string          `db:"size"`
	QuantityBought    int             `db:"quantity_bought"`
	QuantitySold      int             `db:"quantity_sold"`
	AvailableQuantity int             `db:"available_quantity"`
	Price             decimal.Decimal `db:"price"`
	InternalCode      string          `db:"internal_code"`
	Sales             []byte          `db:"sales"`
	CapturedAt        time.Time       `db:"captured_at"`
}

// Item is a row of verification_items.
type Item struct {
	ItemID             string          `db:"item_id"`
	SessionID          string          `db:"session_id"`
	ItemCode           string          `db:"item_code"`
	Brand              string          `db:"brand"`
	Product            string          `db:"product"`
	Category           string          `db:"category"`
	Size               string          `db:"size"`
	Price              decimal.Decimal `db:"price"`
	InternalCode       string          `db:"internal_code"`
	ExpectedQuantity   int             `db:"expected_quantity"`
	VerifiedQuantity   int             `db:"verified_quantity"`
	VarianceQuantity   int             `db:"variance_quantity"`
	VarianceValue      decimal.Decimal `db:"variance_value"`
	Status             string          `db:"status"`
	VerificationMethod string          `db:"verification_method"`
	VerifiedBy         string          `db:"verified_by"`
	VerifiedAt         *time.Time      `db:"verified_at"`
	Notes              string          `db:"notes"`
	IsAdjusted         bool            `db:"is_adjusted"`
	AdjustmentReason   string          `db:"adjustment_reason"`
	Version            int64           `db:"version"`
	CreatedAt          time.Time       `db:"created_at"`
	UpdatedAt          time.Time       `db:"updated_at"`
}
