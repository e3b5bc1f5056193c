package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vanshbajaj13/Muskan-Collection-sub000/internal/apperrors"
	"github.com/vanshbajaj13/Muskan-Collection-sub000/internal/core/domain"
	portsrepo "github.com/vanshbajaj13/Muskan-Collection-sub000/internal/core/ports/repositories"
	"github.com/vanshbajaj13/Muskan-Collection-sub000/internal/models"
	"github.com/vanshbajaj13/Muskan-Collection-sub000/internal/utils/mapping"
)

const sessionColumns = `
	session_id, name, session_type, status, categories, initiated_by,
	total_expected_items, total_verified_items, total_discrepancies,
	expected_financial_value, actual_financial_value, variance_value,
	started_at, completed_at, notes,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxSessionRepository struct {
	BaseRepository
}

func newPgxSessionRepository(pool *pgxpool.Pool) portsrepo.SessionRepositoryFacade {
	return &PgxSessionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.SessionRepositoryFacade = (*PgxSessionRepository)(nil)

func scanSession(row pgx.Row) (models.Session, error) {
	var m models.Session
	err := row.Scan(
		&m.SessionID,
		&m.Name,
		&m.SessionType,
		&m.Status,
		&m.Categories,
		&m.InitiatedBy,
		&m.TotalExpectedItems,
		&m.TotalVerifiedItems,
		&m.TotalDiscrepancies,
		&m.ExpectedFinancialValue,
		&m.ActualFinancialValue,
		&m.VarianceValue,
		&m.StartedAt,
		&m.CompletedAt,
		&m.Notes,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// FindSessionByID retrieves a session with its participants.
func (r *PgxSessionRepository) FindSessionByID(ctx context.Context, sessionID string) (*domain.VerificationSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM verification_sessions WHERE session_id = $1;`
	m, err := scanSession(r.Pool.QueryRow(ctx, query, sessionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSessionNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find session "+sessionID, err)
	}

	participants, err := r.findParticipants(ctx, []string{sessionID})
	if err != nil {
		return nil, err
	}
	session := mapping.ToDomainSession(m, participants[sessionID])
	return &session, nil
}

// ListSessions retrieves sessions most recent first, optionally filtered by status.
func (r *PgxSessionRepository) ListSessions(ctx context.Context, query portsrepo.SessionQuery) ([]domain.VerificationSession, int, error) {
	filterClause := ``
	args := []interface{}{}
	if query.Status != nil {
		args = append(args, string(*query.Status))
		filterClause = `WHERE status = $1`
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM verification_sessions ` + filterClause + `;`
	if err := r.Pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to count sessions", err)
	}

	listQuery := `SELECT ` + sessionColumns + ` FROM verification_sessions ` + filterClause +
		` ORDER BY started_at DESC, session_id LIMIT $` + strconv.Itoa(len(args)+1) + ` OFFSET $` + strconv.Itoa(len(args)+2) + `;`
	args = append(args, query.Limit, query.Offset)

	rows, err := r.Pool.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to query sessions", err)
	}
	defer rows.Close()

	modelSessions := make([]models.Session, 0, query.Limit)
	for rows.Next() {
		m, err := scanSession(rows)
		if err != nil {
			return nil, 0, apperrors.NewAppError(500, "failed to scan session row", err)
		}
		modelSessions = append(modelSessions, m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperrors.NewAppError(500, "error iterating session rows", err)
	}

	ids := make([]string, len(modelSessions))
	for i, m := range modelSessions {
		ids[i] = m.SessionID
	}
	participants, err := r.findParticipants(ctx, ids)
	if err != nil {
		return nil, 0, err
	}

	sessions := make([]domain.VerificationSession, len(modelSessions))
	for i, m := range modelSessions {
		sessions[i] = mapping.ToDomainSession(m, participants[m.SessionID])
	}
	return sessions, total, nil
}

func (r *PgxSessionRepository) findParticipants(ctx context.Context, sessionIDs []string) (map[string][]models.Participant, error) {
	result := make(map[string][]models.Participant, len(sessionIDs))
	if len(sessionIDs) == 0 {
		return result, nil
	}
	query := `
		SELECT session_id, user_id, display_name, role, joined_at
		FROM verification_participants
		WHERE session_id = ANY($1)
		ORDER BY joined_at, user_id;
	`
	rows, err := r.Pool.Query(ctx, query, sessionIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query session participants", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p models.Participant
		if err := rows.Scan(&p.SessionID, &p.UserID, &p.DisplayName, &p.Role, &p.JoinedAt); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan participant row", err)
		}
		result[p.SessionID] = append(result[p.SessionID], p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating participant rows", err)
	}
	return result, nil
}

// SaveSessionBaseline inserts the session, its participants, snapshots, items and
// start log in one transaction.
func (r *PgxSessionRepository) SaveSessionBaseline(ctx context.Context, baseline portsrepo.SessionBaseline) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // Ignored once committed

	m := mapping.ToModelSession(baseline.Session)
	sessionQuery := `
		INSERT INTO verification_sessions (` + sessionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19);
	`
	_, err = tx.Exec(ctx, sessionQuery,
		m.SessionID,
		m.Name,
		m.SessionType,
		m.Status,
		m.Categories,
		m.InitiatedBy,
		m.TotalExpectedItems,
		m.TotalVerifiedItems,
		m.TotalDiscrepancies,
		m.ExpectedFinancialValue,
		m.ActualFinancialValue,
		m.VarianceValue,
		m.StartedAt,
		m.CompletedAt,
		m.Notes,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert session "+m.SessionID, err)
	}

	batch := &pgx.Batch{}
	for _, p := range baseline.Session.Participants {
		queueParticipant(batch, mapping.ToModelParticipant(m.SessionID, p))
	}

	snapshotQuery := `
		INSERT INTO inventory_snapshots (
			snapshot_id, session_id, item_code, brand, product, category, size,
			quantity_bought, quantity_sold, available_quantity, price, internal_code, sales, captured_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	for _, snap := range baseline.Snapshots {
		s, err := mapping.ToModelSnapshot(snap)
		if err != nil {
			return apperrors.NewAppError(500, "failed to map snapshot", err)
		}
		batch.Queue(snapshotQuery,
			s.SnapshotID, s.SessionID, s.ItemCode, s.Brand, s.Product, s.Category, s.Size,
			s.QuantityBought, s.QuantitySold, s.AvailableQuantity, s.Price, s.InternalCode, string(s.Sales), s.CapturedAt,
		)
	}

	itemQuery := `
		INSERT INTO verification_items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23);
	`
	for _, item := range baseline.Items {
		i := mapping.ToModelItem(item)
		batch.Queue(itemQuery,
			i.ItemID, i.SessionID, i.ItemCode, i.Brand, i.Product, i.Category, i.Size, i.Price, i.InternalCode,
			i.ExpectedQuantity, i.VerifiedQuantity, i.VarianceQuantity, i.VarianceValue, i.Status,
			i.VerificationMethod, i.VerifiedBy, i.VerifiedAt, i.Notes, i.IsAdjusted, i.AdjustmentReason,
			i.Version, i.CreatedAt, i.UpdatedAt,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert baseline of session "+m.SessionID, err)
	}

	if _, err := insertLog(ctx, tx, baseline.StartLog); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

const insertParticipantQuery = `
	INSERT INTO verification_participants (session_id, user_id, display_name, role, joined_at)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (session_id, user_id) DO NOTHING;
`

func queueParticipant(batch *pgx.Batch, p models.Participant) {
	batch.Queue(insertParticipantQuery, p.SessionID, p.UserID, p.DisplayName, p.Role, p.JoinedAt)
}

// UpdateSessionStatus moves the session from change.From to change.To.
func (r *PgxSessionRepository) UpdateSessionStatus(ctx context.Context, change portsrepo.StatusChange) error {
	query := `
		UPDATE verification_sessions
		SET status = $1, notes = COALESCE($2, notes), last_updated_at = $3, last_updated_by = $4
		WHERE session_id = $5 AND status = $6;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		string(change.To), change.Notes, change.At, change.UpdatedBy, change.SessionID, string(change.From))
	if err != nil {
		return apperrors.NewAppError(500, "failed to update status of session "+change.SessionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return r.explainMissedUpdate(ctx, change.SessionID)
	}
	return nil
}

// explainMissedUpdate tells a missing session apart from one whose status moved on.
func (r *PgxSessionRepository) explainMissedUpdate(ctx context.Context, sessionID string) error {
	var status string
	err := r.Pool.QueryRow(ctx, `SELECT status FROM verification_sessions WHERE session_id = $1;`, sessionID).Scan(&status)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return apperrors.ErrSessionNotFound
	case err != nil:
		return apperrors.NewAppError(500, "failed to read status of session "+sessionID, err)
	case domain.SessionStatus(status) == domain.SessionCompleted:
		return apperrors.ErrAlreadyCompleted
	default:
		return apperrors.ErrInvalidTransition
	}
}

// UpdateSessionStats overwrites the aggregated figures of an open session. Figures of
// a completed or cancelled session are left as they were frozen.
func (r *PgxSessionRepository) UpdateSessionStats(ctx context.Context, sessionID string, stats domain.ComputedStats, at time.Time) error {
	query := `
		UPDATE verification_sessions
		SET total_verified_items = $1, total_discrepancies = $2, actual_financial_value = $3,
		    variance_value = $4, last_updated_at = $5
		WHERE session_id = $6 AND status IN ('active', 'paused');
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		stats.TotalVerifiedItems, stats.TotalDiscrepancies, stats.ActualFinancialValue, stats.VarianceValue, at, sessionID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update statistics of session "+sessionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		var exists bool
		err := r.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM verification_sessions WHERE session_id = $1);`, sessionID).Scan(&exists)
		if err != nil {
			return apperrors.NewAppError(500, "failed to read session "+sessionID, err)
		}
		if !exists {
			return apperrors.ErrSessionNotFound
		}
	}
	return nil
}

// CompleteSession locks the session row exclusively, which waits for item writes
// holding it FOR SHARE and blocks later ones, then aggregates the committed items,
// freezes the figures and appends the completion log.
func (r *PgxSessionRepository) CompleteSession(ctx context.Context, completion portsrepo.SessionCompletion) (*domain.ComputedStats, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx) // Ignored once committed

	var status string
	err = tx.QueryRow(ctx, `SELECT status FROM verification_sessions WHERE session_id = $1 FOR UPDATE;`, completion.SessionID).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSessionNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to lock session "+completion.SessionID, err)
	}
	switch current := domain.SessionStatus(status); {
	case current == domain.SessionCompleted:
		return nil, apperrors.ErrAlreadyCompleted
	case !current.IsOpen():
		return nil, fmt.Errorf("%w: cannot complete a %s session", apperrors.ErrInvalidTransition, current)
	}

	items, err := listSessionItems(ctx, tx, completion.SessionID)
	if err != nil {
		return nil, err
	}
	final := domain.ComputeSessionStats(items)

	query := `
		UPDATE verification_sessions
		SET status = 'completed', completed_at = $1, notes = CASE WHEN $2 = '' THEN notes ELSE $2 END,
		    total_verified_items = $3, total_discrepancies = $4, actual_financial_value = $5, variance_value = $6,
		    last_updated_at = $1, last_updated_by = $7
		WHERE session_id = $8;
	`
	_, err = tx.Exec(ctx, query,
		completion.CompletedAt,
		completion.Notes,
		final.TotalVerifiedItems,
		final.TotalDiscrepancies,
		final.ActualFinancialValue,
		final.VarianceValue,
		completion.CompletedBy,
		completion.SessionID,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to complete session "+completion.SessionID, err)
	}

	log := completion.Log
	if completion.Describe != nil {
		log.Details = completion.Describe(final)
	}
	if _, err := insertLog(ctx, tx, log); err != nil {
		return nil, err
	}
	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &final, nil
}

// AddParticipant records a participant unless the user already joined.
func (r *PgxSessionRepository) AddParticipant(ctx context.Context, sessionID string, participant domain.Participant) error {
	p := mapping.ToModelParticipant(sessionID, participant)
	_, err := r.Pool.Exec(ctx, insertParticipantQuery, p.SessionID, p.UserID, p.DisplayName, p.Role, p.JoinedAt)
	if err != nil {
		return apperrors.NewAppError(500, "failed to add participant to session "+sessionID, err)
	}
	return nil
}

// DeleteSession removes the session; snapshots, items, participants and logs cascade.
func (r *PgxSessionRepository) DeleteSession(ctx context.Context, sessionID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM verification_sessions WHERE session_id = $1;`, sessionID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete session "+sessionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrSessionNotFound
	}
	return nil
}
