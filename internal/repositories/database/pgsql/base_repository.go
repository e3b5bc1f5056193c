package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vanshbajaj13/Muskan-Collection-sub000/internal/apperrors"
	"github.com/vanshbajaj13/Muskan-Collection-sub000/internal/core/domain"
	"github.com/vanshbajaj13/Muskan-Collection-sub000/internal/utils/mapping"
)

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// Begin starts a new database transaction
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	return tx, nil
}

// Commit commits a transaction
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction", err)
	}
	return nil
}

// Rollback rolls back a transaction
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return apperrors.NewAppError(500, "failed to rollback transaction", err)
	}
	return nil
}

// querier is satisfied by both the pool and a transaction.
type querier interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
}

// lockSessionStatus reads the session status under a shared row lock. Completion
// and status changes take an exclusive lock on the same row, so a write holding the
// shared lock is ordered entirely before or after them.
func lockSessionStatus(ctx context.Context, tx pgx.Tx, sessionID string) (domain.SessionStatus, error) {
	var status string
	err := tx.QueryRow(ctx, `SELECT status FROM verification_sessions WHERE session_id = $1 FOR SHARE;`, sessionID).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.ErrSessionNotFound
		}
		return "", apperrors.NewAppError(500, "failed to read status of session "+sessionID, err)
	}
	return domain.SessionStatus(status), nil
}

// insertLog appends a log row and returns its storage sequence.
func insertLog(ctx context.Context, tx pgx.Tx, log domain.VerificationLog) (*domain.VerificationLog, error) {
	m, err := mapping.ToModelLog(log)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to map log "+log.LogID, err)
	}
	query := `
		INSERT INTO verification_logs (
			log_id, session_id, action, item_code, previous_quantity, new_quantity,
			reference_log_id, reference_action, performed_by, performed_at, details, client_ip, user_agent
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING seq;
	`
	err = tx.QueryRow(ctx, query,
		m.LogID,
		m.SessionID,
		m.Action,
		m.ItemCode,
		m.PreviousQuantity,
		m.NewQuantity,
		m.ReferenceLogID,
		m.ReferenceAction,
		m.PerformedBy,
		m.PerformedAt,
		m.Details,
		m.ClientIP,
		m.UserAgent,
	).Scan(&m.Seq)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to insert log "+log.LogID, err)
	}
	stored := log
	stored.Sequence = m.Seq
	return &stored, nil
}
