package mapping

import (
	"github.com/vanshbajaj13/Muskan-Collection-sub000/internal/core/domain"
	"github.com/vanshbajaj13/Muskan-Collection-sub000/internal/models"
)

// ToModelSession converts a domain VerificationSession to a model Session.
// Participants are stored separately, see ToModelParticipant.
func ToModelSession(d domain.VerificationSession) models.Session {
	categories := d.Categories
	if categories == nil {
		categories = []string{}
	}
	return models.Session{
		SessionID:              d.SessionID,
		Name:                   d.Name,
		SessionType:            string(d.Type),
		Status:                 string(d.Status),
		Categories:             categories,
		InitiatedBy:            d.InitiatedBy,
		TotalExpectedItems:     d.TotalExpectedItems,
		TotalVerifiedItems:     d.TotalVerifiedItems,
		TotalDiscrepancies:     d.TotalDiscrepancies,
		ExpectedFinancialValue: d.ExpectedFinancialValue,
		ActualFinancialValue:   d.ActualFinancialValue,
		VarianceValue:          d.VarianceValue,
		StartedAt:              d.StartedAt,
		CompletedAt:            d.CompletedAt,
		Notes:                  d.Notes,
		AuditFields:            models.AuditFields(d.AuditFields),
	}
}

// ToDomainSession converts a model Session and its participants to a domain VerificationSession
func ToDomainSession(m models.Session, participants []models.Participant) domain.VerificationSession {
	var categories []string
	if len(m.Categories) > 0 {
		categories = m.Categories
	}
	return domain.VerificationSession{
		SessionID:    m.SessionID,
		Name:         m.Name,
		Type:         domain.SessionType(m.SessionType),
		Status:       domain.SessionStatus(m.Status),
		Categories:   categories,
		Participants: ToDomainParticipantSlice(participants),
		InitiatedBy:  m.InitiatedBy,
		SessionStats: domain.SessionStats{
			TotalExpectedItems:     m.TotalExpectedItems,
			TotalVerifiedItems:     m.TotalVerifiedItems,
			TotalDiscrepancies:     m.TotalDiscrepancies,
			ExpectedFinancialValue: m.ExpectedFinancialValue,
			ActualFinancialValue:   m.ActualFinancialValue,
			VarianceValue:          m.VarianceValue,
		},
		StartedAt:   m.StartedAt,
		CompletedAt: m.CompletedAt,
		Notes:       m.Notes,
		AuditFields: domain.AuditFields(m.AuditFields),
	}
}

// ToModelParticipant converts a domain Participant of a session to a model Participant
func ToModelParticipant(sessionID string, d domain.Participant) models.Participant {
	return models.Participant{
		SessionID:   sessionID,
		UserID:      d.UserID,
		DisplayName: d.DisplayName,
		Role:        string(d.Role),
		JoinedAt:    d.JoinedAt,
	}
}

// ToDomainParticipantSlice converts model Participants to domain Participants
func ToDomainParticipantSlice(ms []models.Participant) []domain.Participant {
	ds := make([]domain.Participant, len(ms))
	for i, m := range ms {
		ds[i] = domain.Participant{
			UserID:      m.UserID,
			DisplayName: m.DisplayName,
			Role:        domain.ActorRole(m.Role),
			JoinedAt:    m.JoinedAt,
		}
	}
	return ds
}
