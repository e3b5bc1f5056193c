package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/vanshbajaj13/Muskan-Collection-sub000/internal/core/ports/repositories"
)

// NewRepositoryProvider wires the PostgreSQL repositories. The locker is optional.
func NewRepositoryProvider(dbPool *pgxpool.Pool, locker portsrepo.ItemLocker) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		SessionRepo: newPgxSessionRepository(dbPool),
		ItemRepo:    newPgxItemRepository(dbPool),
		LogRepo:     newPgxLogRepository(dbPool),
		CatalogRepo: newPgxCatalogRepository(dbPool),
		Locker:      locker,
	}
}

// NewCatalogRepository exposes catalog loading for the seed command.
func NewCatalogRepository(dbPool *pgxpool.Pool) *PgxCatalogRepository {
	return &PgxCatalogRepository{BaseRepository: BaseRepository{Pool: dbPool}}
}
