package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Session is a row of verification_sessions.
type Session struct {
	SessionID              string          `db:"session_id"`
	Name                   string          `db:"name"`
	SessionType            string          `db:"session_type"`
	Status                 string          `db:"status"`
	Categories             []string        `db:"categories"`
	InitiatedBy            string          `db:"initiated_by"`
	TotalExpectedItems     int             `db:"total_expected_items"`
	TotalVerifiedItems     int             `db:"total_verified_items"`
	TotalDiscrepancies     int             `db:"total_discrepancies"`
	ExpectedFinancialValue decimal.Decimal `db:"expected_financial_value"`
	ActualFinancialValue   decimal.Decimal `db:"actual_financial_value"`
	VarianceValue          decimal.Decimal `db:"variance_value"`
	StartedAt              time.Time       `db:"started_at"`
	CompletedAt            *time.Time      `db:"completed_at"`
	Notes                  string          `db:"notes"`
	AuditFields
}

// Participant is a row of verification_participants.
type Participant struct {
	SessionID   string    `db:"session_id"`
	UserID      string    `db:"user_id"`
	DisplayName string    `db:"display_name"`
	Role        string    `db:"role"`
	JoinedAt    time.Time `db:"joined_at"`
}
