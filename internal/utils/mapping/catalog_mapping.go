package mapping

import (
	"github.com/vanshbajaj13/Muskan-Collection-sub000/internal/core/domain"
	"github.com/vanshbajaj13/Muskan-Collection-sub000/internal/models"
)

// ToDomainCatalogItem converts a model CatalogItem to a domain CatalogItem
func ToDomainCatalogItem(m models.CatalogItem) (domain.CatalogItem, error) {
	sales, err := decodeSales(m.Sales)
	if err != nil {
		return domain.CatalogItem{}, err
	}
	return domain.CatalogItem{
		Code:           m.ItemCode,
		Brand:          m.Brand,
		Product:        m.Product,
		Category:       m.Category,
		Size:           m.Size,
		QuantityBought: m.QuantityBought,
		QuantitySold:   m.QuantitySold,
		Price:          m.Price,
		InternalCode:   m.InternalCode,
		Sales:          sales,
	}, nil
}

// ToModelCatalogItem converts a domain CatalogItem to a model CatalogItem
func ToModelCatalogItem(d domain.CatalogItem) (models.CatalogItem, error) {
	sales, err := encodeSales(d.Sales)
	if err != nil {
		return models.CatalogItem{}, err
	}
	return models.CatalogItem{
		ItemCode:       d.Code,
		Brand:          d.Brand,
		Product:        d.Product,
		Category:       d.Category,
		Size:           d.Size,
		QuantityBought: d.QuantityBought,
		QuantitySold:   d.QuantitySold,
		Price:          d.Price,
		InternalCode:   d.InternalCode,
		Sales:          sales,
	}, nil
}
