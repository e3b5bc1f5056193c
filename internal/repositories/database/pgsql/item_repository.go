package pgsql

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vanshbajaj13/Muskan-Collection-sub000/internal/apperrors"
	"github.com/vanshbajaj13/Muskan-Collection-sub000/internal/core/domain"
	portsrepo "github.com/vanshbajaj13/Muskan-Collection-sub000/internal/core/ports/repositories"
	"github.com/vanshbajaj13/Muskan-Collection-sub000/internal/models"
	"github.com/vanshbajaj13/Muskan-Collection-sub000/internal/utils/mapping"
)

const itemColumns = `
	item_id, session_id, item_code, brand, product, category, size, price, internal_code,
	expected_quantity, verified_quantity, variance_quantity, variance_value, status,
	verification_method, verified_by, verified_at, notes, is_adjusted, adjustment_reason,
	version, created_at, updated_at`

type PgxItemRepository struct {
	BaseRepository
}

func newPgxItemRepository(pool *pgxpool.Pool) portsrepo.ItemRepositoryFacade {
	return &PgxItemRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ItemRepositoryFacade = (*PgxItemRepository)(nil)

func scanItem(row pgx.Row) (models.Item, error) {
	var m models.Item
	err := row.Scan(
		&m.ItemID,
		&m.SessionID,
		&m.ItemCode,
		&m.Brand,
		&m.Product,
		&m.Category,
		&m.Size,
		&m.Price,
		&m.InternalCode,
		&m.ExpectedQuantity,
		&m.VerifiedQuantity,
		&m.VarianceQuantity,
		&m.VarianceValue,
		&m.Status,
		&m.VerificationMethod,
		&m.VerifiedBy,
		&m.VerifiedAt,
		&m.Notes,
		&m.IsAdjusted,
		&m.AdjustmentReason,
		&m.Version,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	return m, err
}

// FindItem retrieves one item of a session by its item code.
func (r *PgxItemRepository) FindItem(ctx context.Context, sessionID, itemCode string) (*domain.VerificationItem, error) {
	query := `SELECT ` + itemColumns + ` FROM verification_items WHERE session_id = $1 AND item_code = $2;`
	m, err := scanItem(r.Pool.QueryRow(ctx, query, sessionID, itemCode))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrItemNotInSession
		}
		return nil, apperrors.NewAppError(500, "failed to find item "+itemCode+" in session "+sessionID, err)
	}
	item := mapping.ToDomainItem(m)
	return &item, nil
}

// ListItems retrieves one page of a session's items ordered by item code.
func (r *PgxItemRepository) ListItems(ctx context.Context, query portsrepo.ItemQuery) ([]domain.VerificationItem, int, error) {
	filterClause := `WHERE session_id = $1`
	args := []interface{}{query.SessionID}
	if query.Status != nil {
		args = append(args, string(*query.Status))
		filterClause += ` AND status = $` + strconv.Itoa(len(args))
	}
	if search := strings.TrimSpace(query.Search); search != "" {
		args = append(args, "%"+escapeLike(search)+"%")
		n := strconv.Itoa(len(args))
		filterClause += ` AND (item_code ILIKE $` + n + ` OR brand ILIKE $` + n + ` OR product ILIKE $` + n + `)`
	}

	var total int
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM verification_items `+filterClause+`;`, args...).Scan(&total); err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to count items of session "+query.SessionID, err)
	}

	listQuery := `SELECT ` + itemColumns + ` FROM verification_items ` + filterClause +
		` ORDER BY item_code LIMIT $` + strconv.Itoa(len(args)+1) + ` OFFSET $` + strconv.Itoa(len(args)+2) + `;`
	args = append(args, query.Limit, query.Offset)

	items, err := queryItems(ctx, r.Pool, listQuery, args...)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// ListAllItems retrieves every item of the session.
func (r *PgxItemRepository) ListAllItems(ctx context.Context, sessionID string) ([]domain.VerificationItem, error) {
	return listSessionItems(ctx, r.Pool, sessionID)
}

func listSessionItems(ctx context.Context, q querier, sessionID string) ([]domain.VerificationItem, error) {
	query := `SELECT ` + itemColumns + ` FROM verification_items WHERE session_id = $1 ORDER BY item_code;`
	return queryItems(ctx, q, query, sessionID)
}

func queryItems(ctx context.Context, q querier, query string, args ...interface{}) ([]domain.VerificationItem, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query items", err)
	}
	defer rows.Close()

	modelItems := []models.Item{}
	for rows.Next() {
		m, err := scanItem(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan item row", err)
		}
		modelItems = append(modelItems, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating item rows", err)
	}
	return mapping.ToDomainItemSlice(modelItems), nil
}

// FindSnapshot retrieves the frozen baseline of an item.
func (r *PgxItemRepository) FindSnapshot(ctx context.Context, sessionID, itemCode string) (*domain.InventorySnapshot, error) {
	query := `
		SELECT snapshot_id, session_id, item_code, brand, product, category, size,
		       quantity_bought, quantity_sold, available_quantity, price, internal_code, sales, captured_at
		FROM inventory_snapshots
		WHERE session_id = $1 AND item_code = $2;
	`
	var m models.Snapshot
	err := r.Pool.QueryRow(ctx, query, sessionID, itemCode).Scan(
		&m.SnapshotID,
		&m.SessionID,
		&m.ItemCode,
		&m.Brand,
		&m.Product,
		&m.Category,
		&m.Size,
		&m.QuantityBought,
		&m.QuantitySold,
		&m.AvailableQuantity,
		&m.Price,
		&m.InternalCode,
		&m.Sales,
		&m.CapturedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find snapshot of item "+itemCode, err)
	}
	snapshot, err := mapping.ToDomainSnapshot(m)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to map snapshot of item "+itemCode, err)
	}
	return &snapshot, nil
}

// SaveItemChange applies a version-guarded item update and appends its log in one
// transaction, holding a shared lock on the session row.
func (r *PgxItemRepository) SaveItemChange(ctx context.Context, change portsrepo.ItemChange) (*domain.VerificationLog, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx) // Ignored once committed

	status, err := lockSessionStatus(ctx, tx, change.Item.SessionID)
	if err != nil {
		return nil, err
	}
	if !status.IsOpen() {
		return nil, apperrors.ErrSessionNotActive
	}

	if err := updateItemGuarded(ctx, tx, change.Item, change.ExpectedVersion); err != nil {
		return nil, err
	}

	stored, err := insertLog(ctx, tx, change.Log)
	if err != nil {
		return nil, err
	}
	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return stored, nil
}

// updateItemGuarded writes the item only if the stored version equals expectedVersion.
func updateItemGuarded(ctx context.Context, tx pgx.Tx, item domain.VerificationItem, expectedVersion int64) error {
	m := mapping.ToModelItem(item)
	query := `
		UPDATE verification_items
		SET verified_quantity = $1, variance_quantity = $2, variance_value = $3, status = $4,
		    verification_method = $5, verified_by = $6, verified_at = $7, notes = $8,
		    is_adjusted = $9, adjustment_reason = $10, version = $11, updated_at = $12
		WHERE session_id = $13 AND item_code = $14 AND version = $15;
	`
	cmdTag, err := tx.Exec(ctx, query,
		m.VerifiedQuantity,
		m.VarianceQuantity,
		m.VarianceValue,
		m.Status,
		m.VerificationMethod,
		m.VerifiedBy,
		m.VerifiedAt,
		m.Notes,
		m.IsAdjusted,
		m.AdjustmentReason,
		m.Version,
		m.UpdatedAt,
		m.SessionID,
		m.ItemCode,
		expectedVersion,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update item "+m.ItemCode, err)
	}
	if cmdTag.RowsAffected() > 0 {
		return nil
	}

	var exists bool
	err = tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM verification_items WHERE session_id = $1 AND item_code = $2);`,
		m.SessionID, m.ItemCode).Scan(&exists)
	if err != nil {
		return apperrors.NewAppError(500, "failed to check item "+m.ItemCode, err)
	}
	if !exists {
		return apperrors.ErrItemNotInSession
	}
	return apperrors.ErrConcurrentUpdate
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`).Replace(s)
}
