package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SessionType selects which part of the catalog a session covers.
type SessionType string

const (
	SessionTypeFull    SessionType = "full"
	SessionTypePartial SessionType = "partial-by-category" // restricted to Categories
)

// ParseSessionType maps a request value onto a session type. "partial" is
// accepted as a short form of "partial-by-category".
func ParseSessionType(value string) (SessionType, bool) {
	switch value {
	case string(SessionTypeFull):
		return SessionTypeFull, true
	case string(SessionTypePartial), "partial":
		return SessionTypePartial, true
	default:
		return "", false
	}
}

// SessionStatus is the lifecycle state of a verification session.
type SessionStatus string

const (
	SessionActive    SessionStatus = "active"
	SessionPaused    SessionStatus = "paused"
	SessionCompleted SessionStatus = "completed"
	SessionCancelled SessionStatus = "cancelled"
)

// IsOpen reports whether the session still accepts counts and log corrections.
func (s SessionStatus) IsOpen() bool {
	return s == SessionActive || s == SessionPaused
}

// IsTerminal reports whether no further transition is possible.
func (s SessionStatus) IsTerminal() bool {
	return s == SessionCompleted || s == SessionCancelled
}

// CanTransitionTo applies the session state machine.
func (s SessionStatus) CanTransitionTo(target SessionStatus) bool {
	switch target {
	case SessionPaused:
		return s == SessionActive
	case SessionActive:
		return s == SessionPaused
	case SessionCompleted, SessionCancelled:
		return s.IsOpen()
	default:
		return false
	}
}

// Participant is an operator who took part in a session.
type Participant struct {
	UserID      string    `json:"userID"`
	DisplayName string    `json:"displayName"`
	Role        ActorRole `json:"role"`
	JoinedAt    time.Time `json:"joinedAt"`
}

// SessionStats are the session-level figures maintained by the statistics aggregator.
type SessionStats struct {
	TotalExpectedItems     int             `json:"totalExpectedItems"`
	TotalVerifiedItems     int             `json:"totalVerifiedItems"`
	TotalDiscrepancies     int             `json:"totalDiscrepancies"`
	ExpectedFinancialValue decimal.Decimal `json:"expectedFinancialValue"`
	ActualFinancialValue   decimal.Decimal `json:"actualFinancialValue"`
	VarianceValue          decimal.Decimal `json:"varianceValue"`
}

// VerificationSession is one physical-count reconciliation exercise.
type VerificationSession struct {
	SessionID    string        `json:"sessionID"`
	Name         string        `json:"name"`
	Type         SessionType   `json:"type"`
	Status       SessionStatus `json:"status"`
	Categories   []string      `json:"categories"`
	Participants []Participant `json:"participants"`
	InitiatedBy  string        `json:"initiatedBy"`
	SessionStats
	StartedAt   time.Time  `json:"startedAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	Notes       string     `json:"notes"`
	AuditFields
}

// HasParticipant reports whether the user already joined the session.
func (s VerificationSession) HasParticipant(userID string) bool {
	for _, p := range s.Participants {
		if p.UserID == userID {
			return true
		}
	}
	return false
}

// StatusSummary counts items per verification status.
type StatusSummary struct {
	Total       int `json:"total"`
	Pending     int `json:"pending"`
	Verified    int `json:"verified"`
	Discrepancy int `json:"discrepancy"`
	Overage     int `json:"overage"`
	NotFound    int `json:"notFound"`
}

// Add counts one item of the given status.
func (s *StatusSummary) Add(status ItemStatus, n int) {
	s.Total += n
	switch status {
	case ItemPending:
		s.Pending += n
	case ItemVerified:
		s.Verified += n
	case ItemDiscrepancy:
		s.Discrepancy += n
	case ItemOverage:
		s.Overage += n
	case ItemNotFound:
		s.NotFound += n
	}
}

// SessionOverview is a session together with its per-status item counts.
type SessionOverview struct {
	Session VerificationSession `json:"session"`
	Summary StatusSummary       `json:"summary"`
}
