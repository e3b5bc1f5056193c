package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vanshbajaj13/Muskan-Collection-sub000/internal/apperrors"
	"github.com/vanshbajaj13/Muskan-Collection-sub000/internal/core/domain"
	portsrepo "github.com/vanshbajaj13/Muskan-Collection-sub000/internal/core/ports/repositories"
	"github.com/vanshbajaj13/Muskan-Collection-sub000/internal/models"
	"github.com/vanshbajaj13/Muskan-Collection-sub000/internal/utils/mapping"
	"github.com/vanshbajaj13/Muskan-Collection-sub000/internal/utils/pagination"
)

const logColumns = `
	log_id, seq, session_id, action, item_code, previous_quantity, new_quantity,
	reference_log_id, reference_action, performed_by, performed_at, details, client_ip, user_agent`

type PgxLogRepository struct {
	BaseRepository
}

func newPgxLogRepository(pool *pgxpool.Pool) portsrepo.LogRepositoryFacade {
	return &PgxLogRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.LogRepositoryFacade = (*PgxLogRepository)(nil)

func scanLog(row pgx.Row) (models.Log, error) {
	var m models.Log
	err := row.Scan(
		&m.LogID,
		&m.Seq,
		&m.SessionID,
		&m.Action,
		&m.ItemCode,
		&m.PreviousQuantity,
		&m.NewQuantity,
		&m.ReferenceLogID,
		&m.ReferenceAction,
		&m.PerformedBy,
		&m.PerformedAt,
		&m.Details,
		&m.ClientIP,
		&m.UserAgent,
	)
	return m, err
}

func (r *PgxLogRepository) findLog(ctx context.Context, query string, args ...interface{}) (*domain.VerificationLog, error) {
	m, err := scanLog(r.Pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrLogNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find log", err)
	}
	log, err := mapping.ToDomainLog(m)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to map log "+m.LogID, err)
	}
	return &log, nil
}

// FindLogByID retrieves a log by its ID.
func (r *PgxLogRepository) FindLogByID(ctx context.Context, logID string) (*domain.VerificationLog, error) {
	query := `SELECT ` + logColumns + ` FROM verification_logs WHERE log_id = $1;`
	return r.findLog(ctx, query, logID)
}

// ListLogs retrieves a session's logs most recent first using sequence cursors.
func (r *PgxLogRepository) ListLogs(ctx context.Context, query portsrepo.LogQuery) ([]domain.VerificationLog, *string, error) {
	limit := query.Limit
	if limit <= 0 {
		limit = 50
	}
	// One extra row tells whether another page exists.
	fetchLimit := limit + 1

	filterClause := `WHERE session_id = $1`
	args := []interface{}{query.SessionID}
	if query.ItemCode != "" {
		args = append(args, query.ItemCode)
		filterClause += ` AND item_code = $` + strconv.Itoa(len(args))
	}
	if query.NextToken != nil && *query.NextToken != "" {
		before, err := pagination.DecodeSequenceToken(*query.NextToken, query.SessionID)
		if err != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", fmt.Errorf("%w: %v", apperrors.ErrValidation, err))
		}
		args = append(args, before)
		filterClause += ` AND seq < $` + strconv.Itoa(len(args))
	}

	listQuery := `SELECT ` + logColumns + ` FROM verification_logs ` + filterClause +
		` ORDER BY seq DESC LIMIT $` + strconv.Itoa(len(args)+1) + `;`
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query logs for session "+query.SessionID, err)
	}
	defer rows.Close()

	modelLogs := make([]models.Log, 0, fetchLimit)
	for rows.Next() {
		m, err := scanLog(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan log row", err)
		}
		modelLogs = append(modelLogs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating log rows", err)
	}

	var nextToken *string
	if len(modelLogs) > limit {
		modelLogs = modelLogs[:limit]
		token := pagination.EncodeSequenceToken(query.SessionID, modelLogs[limit-1].Seq)
		nextToken = &token
	}

	logs, err := mapping.ToDomainLogSlice(modelLogs)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to map logs", err)
	}
	return logs, nextToken, nil
}

// FindPriorItemLog retrieves the most recent log of the given kinds for the item
// that was stored before beforeSequence.
func (r *PgxLogRepository) FindPriorItemLog(ctx context.Context, sessionID, itemCode string, beforeSequence int64, kinds []domain.LogKind) (*domain.VerificationLog, error) {
	actions := make([]string, len(kinds))
	for i, k := range kinds {
		actions[i] = string(k)
	}
	query := `
		SELECT ` + logColumns + `
		FROM verification_logs
		WHERE session_id = $1 AND item_code = $2 AND seq < $3 AND action = ANY($4)
		ORDER BY seq DESC
		LIMIT 1;
	`
	return r.findLog(ctx, query, sessionID, itemCode, beforeSequence, actions)
}

// ApplyLogDeletion removes the log, applies the reversal to the item under its
// version guard and appends the deletion log, all in one transaction.
func (r *PgxLogRepository) ApplyLogDeletion(ctx context.Context, deletion portsrepo.LogDeletion) (*domain.VerificationLog, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx) // Ignored once committed

	var sessionID string
	err = tx.QueryRow(ctx, `DELETE FROM verification_logs WHERE log_id = $1 RETURNING session_id;`, deletion.DeletedLogID).Scan(&sessionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrLogNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to delete log "+deletion.DeletedLogID, err)
	}

	status, err := lockSessionStatus(ctx, tx, sessionID)
	if err != nil {
		return nil, err
	}
	if !status.IsOpen() {
		return nil, apperrors.ErrSessionLocked
	}

	if deletion.Item != nil {
		if err := updateItemGuarded(ctx, tx, *deletion.Item, deletion.ExpectedVersion); err != nil {
			return nil, err
		}
	}

	stored, err := insertLog(ctx, tx, deletion.DeletionLog)
	if err != nil {
		return nil, err
	}
	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return stored, nil
}
