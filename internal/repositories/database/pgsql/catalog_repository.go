package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vanshbajaj13/Muskan-Collection-sub000/internal/apperrors"
	"github.com/vanshbajaj13/Muskan-Collection-sub000/internal/core/domain"
	portsrepo "github.com/vanshbajaj13/Muskan-Collection-sub000/internal/core/ports/repositories"
	"github.com/vanshbajaj13/Muskan-Collection-sub000/internal/models"
	"github.com/vanshbajaj13/Muskan-Collection-sub000/internal/utils/mapping"
)

// PgxCatalogRepository reads the point of sale inventory tables.
type PgxCatalogRepository struct {
	BaseRepository
}

func newPgxCatalogRepository(pool *pgxpool.Pool) portsrepo.CatalogReader {
	return &PgxCatalogRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CatalogReader = (*PgxCatalogRepository)(nil)

// ListCatalogItems retrieves the catalog, restricted to filter.Categories when set.
func (r *PgxCatalogRepository) ListCatalogItems(ctx context.Context, filter domain.CatalogFilter) ([]domain.CatalogItem, error) {
	query := `
		SELECT item_code, brand, product, category, size, quantity_bought, quantity_sold, price, internal_code, sales
		FROM catalog_items
	`
	args := []interface{}{}
	if len(filter.Categories) > 0 {
		query += ` WHERE category = ANY($1)`
		args = append(args, filter.Categories)
	}
	query += ` ORDER BY item_code;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query catalog items", err)
	}
	defer rows.Close()

	items := []domain.CatalogItem{}
	for rows.Next() {
		var m models.CatalogItem
		err := rows.Scan(
			&m.ItemCode,
			&m.Brand,
			&m.Product,
			&m.Category,
			&m.Size,
			&m.QuantityBought,
			&m.QuantitySold,
			&m.Price,
			&m.InternalCode,
			&m.Sales,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan catalog item row", err)
		}
		item, err := mapping.ToDomainCatalogItem(m)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to map catalog item "+m.ItemCode, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating catalog item rows", err)
	}
	return items, nil
}

// UpsertCatalogItems loads catalog rows, replacing items with the same code.
func (r *PgxCatalogRepository) UpsertCatalogItems(ctx context.Context, items []domain.CatalogItem) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // Ignored once committed

	query := `
		INSERT INTO catalog_items (item_code, brand, product, category, size, quantity_bought, quantity_sold, price, internal_code, sales)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (item_code) DO UPDATE SET
			brand = EXCLUDED.brand, product = EXCLUDED.product, category = EXCLUDED.category, size = EXCLUDED.size,
			quantity_bought = EXCLUDED.quantity_bought, quantity_sold = EXCLUDED.quantity_sold,
			price = EXCLUDED.price, internal_code = EXCLUDED.internal_code, sales = EXCLUDED.sales;
	`
	for _, item := range items {
		m, err := mapping.ToModelCatalogItem(item)
		if err != nil {
			return apperrors.NewAppError(500, "failed to map catalog item "+item.Code, err)
		}
		_, err = tx.Exec(ctx, query, m.ItemCode, m.Brand, m.Product, m.Category, m.Size,
			m.QuantityBought, m.QuantitySold, m.Price, m.InternalCode, string(m.Sales))
		if err != nil {
			return apperrors.NewAppError(500, "failed to upsert catalog item "+item.Code, err)
		}
	}
	return r.Commit(ctx, tx)
}
