package models

import "time"

// Log is a row of verification_logs. The action payload is spread over the
// nullable item and reference columns.
type Log struct {
	LogID            string    `db:"log_id"`
	Seq              int64     `db:"seq"`
	SessionID        string    `db:"session_id"`
	Action           string    `db:"action"`
	ItemCode         *string   `db:"item_code"`
	PreviousQuantity *int      `db:"previous_quantity"`
	NewQuantity      *int      `db:"new_quantity"`
	ReferenceLogID   *string   `db:"reference_log_id"`
	ReferenceAction  *string   `db:"reference_action"`
	PerformedBy      string    `db:"performed_by"`
	PerformedAt      time.Time `db:"performed_at"`
	Details          string    `db:"details"`
	ClientIP         string    `db:"client_ip"`
	UserAgent        string    `db:"user_agent"`
}
