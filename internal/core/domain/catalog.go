package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleRecord is one historical sale of a catalog item.
type SaleRecord struct {
	SoldAt   time.Time       `json:"soldAt"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// CatalogItem is the read-only view of an inventory item exposed by the catalog.
type CatalogItem struct {
	Code           string          `json:"code"`
	Brand          string          `json:"brand"`
	Product        string          `json:"product"`
	Category       string          `json:"category"`
	Size           string          `json:"size"`
	QuantityBought int             `json:"quantityBought"`
	QuantitySold   int             `json:"quantitySold"`
	Price          decimal.Decimal `json:"price"`
	InternalCode   string          `json:"internalCode"`
	Sales          []SaleRecord    `json:"sales"`
}

// AvailableQuantity is the on-hand quantity the catalog believes exists.
func (c CatalogItem) AvailableQuantity() int {
	return c.QuantityBought - c.QuantitySold
}

// CatalogFilter narrows a catalog read. Empty Categories means every item.
type CatalogFilter struct {
	Categories []string
}

// Matches reports whether the item passes the filter.
func (f CatalogFilter) Matches(item CatalogItem) bool {
	if len(f.Categories) == 0 {
		return true
	}
	for _, c := range f.Categories {
		if c == item.Category {
			return true
		}
	}
	return false
}
