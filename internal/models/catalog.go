package models

import "github.com/shopspring/decimal"

// CatalogItem is a row of catalog_items, the inventory the point of sale maintains.
type CatalogItem struct {
	ItemCode       string          `db:"item_code"`
	Brand          string          `db:"brand"`
	Product        string          `db:"product"`
	Category       string          `db:"category"`
	Size           string          `db:"size"`
	QuantityBought int             `db:"quantity_bought"`
	QuantitySold   int             `db:"quantity_sold"`
	Price          decimal.Decimal `db:"price"`
	InternalCode   string          `db:"internal_code"`
	Sales          []byte          `db:"sales"`
}
