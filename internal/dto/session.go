package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/vanshbajaj13/Muskan-Collection-sub000/internal/core/domain"
)

// --- Session DTOs ---

// CreateSessionRequest defines data for starting a verification session.
type CreateSessionRequest struct {
	Name       string   `json:"name" binding:"required,max=200" validate:"required,max=200"`
	Type       string   `json:"type" binding:"required,oneof=full partial-by-category partial" validate:"required,oneof=full partial-by-category partial"`
	Categories []string `json:"categories" validate:"omitempty,dive,required,max=100"`
	Notes      string   `json:"notes" validate:"max=2000"`
}

// CompleteSessionRequest carries the closing notes of a session.
type CompleteSessionRequest struct {
	Notes string `json:"notes" validate:"max=2000"`
}

// CancelSessionRequest carries the reason a session was abandoned.
type CancelSessionRequest struct {
	Reason string `json:"reason" validate:"max=2000"`
}

// ListSessionsParams defines query parameters for listing sessions.
type ListSessionsParams struct {
	Status string `form:"status" binding:"omitempty,oneof=active paused completed cancelled"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Offset int    `form:"offset" binding:"omitempty,min=0"`
}

// SessionStatsResponse is the aggregated figures of a session.
type SessionStatsResponse struct {
	TotalExpectedItems     int             `json:"totalExpectedItems"`
	TotalVerifiedItems     int             `json:"totalVerifiedItems"`
	TotalDiscrepancies     int             `json:"totalDiscrepancies"`
	ExpectedFinancialValue decimal.Decimal `json:"expectedFinancialValue"`
	ActualFinancialValue   decimal.Decimal `json:"actualFinancialValue"`
	VarianceValue          decimal.Decimal `json:"varianceValue"`
}

// SessionResponse defines data returned for a verification session.
type SessionResponse struct {
	SessionID    string               `json:"sessionID"`
	Name         string               `json:"name"`
	Type         string               `json:"type"`
	Status       string               `json:"status"`
	Categories   []string             `json:"categories"`
	Participants []domain.Participant `json:"participants"`
	InitiatedBy  string               `json:"initiatedBy"`
	Stats        SessionStatsResponse `json:"stats"`
	StartedAt    time.Time            `json:"startedAt"`
	CompletedAt  *time.Time           `json:"completedAt,omitempty"`
	Notes        string               `json:"notes"`
	LastUpdateAt time.Time            `json:"lastUpdatedAt"`
	LastUpdateBy string               `json:"lastUpdatedBy"`
}

// GetSessionResponse is a session with its per-status item counts.
type GetSessionResponse struct {
	Session SessionResponse      `json:"session"`
	Summary domain.StatusSummary `json:"summary"`
}

// ListSessionsResponse wraps a page of sessions.
type ListSessionsResponse struct {
	Sessions []SessionResponse `json:"sessions"`
	Total    int               `json:"total"`
}

// ToSessionStatsResponse converts domain.SessionStats to DTO.
func ToSessionStatsResponse(s domain.SessionStats) SessionStatsResponse {
	return SessionStatsResponse{
		TotalExpectedItems:     s.TotalExpectedItems,
		TotalVerifiedItems:     s.TotalVerifiedItems,
		TotalDiscrepancies:     s.TotalDiscrepancies,
		ExpectedFinancialValue: s.ExpectedFinancialValue,
		ActualFinancialValue:   s.ActualFinancialValue,
		VarianceValue:          s.VarianceValue,
	}
}

// ToSessionResponse converts domain.VerificationSession to DTO.
func ToSessionResponse(s *domain.VerificationSession) SessionResponse {
	categories := s.Categories
	if categories == nil {
		categories = []string{}
	}
	participants := s.Participants
	if participants == nil {
		participants = []domain.Participant{}
	}
	return SessionResponse{
		SessionID:    s.SessionID,
		Name:         s.Name,
		Type:         string(s.Type),
		Status:       string(s.Status),
		Categories:   categories,
		Participants: participants,
		InitiatedBy:  s.InitiatedBy,
		Stats:        ToSessionStatsResponse(s.SessionStats),
		StartedAt:    s.StartedAt,
		CompletedAt:  s.CompletedAt,
		Notes:        s.Notes,
		LastUpdateAt: s.LastUpdatedAt,
		LastUpdateBy: s.LastUpdatedBy,
	}
}

// ToGetSessionResponse converts a session overview to DTO.
func ToGetSessionResponse(o *domain.SessionOverview) GetSessionResponse {
	return GetSessionResponse{
		Session: ToSessionResponse(&o.Session),
		Summary: o.Summary,
	}
}

// ToListSessionsResponse converts a slice of sessions to DTO.
func ToListSessionsResponse(sessions []domain.VerificationSession, total int) ListSessionsResponse {
	list := make([]SessionResponse, len(sessions))
	for i, s := range sessions {
		list[i] = ToSessionResponse(&s)
	}
	return ListSessionsResponse{Sessions: list, Total: total}
}
