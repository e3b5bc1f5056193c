package mapping

import (
	"github.com/vanshbajaj13/Muskan-Collection-sub000/internal/core/domain"
	"github.com/vanshbajaj13/Muskan-Collection-sub000/internal/models"
)

// ToModelLog flattens a domain VerificationLog into a model Log
func ToModelLog(d domain.VerificationLog) (models.Log, error) {
	fields, err := domain.Flatten(d.Action)
	if err != nil {
		return models.Log{}, err
	}
	m := models.Log{
		LogID:            d.LogID,
		Seq:              d.Sequence,
		SessionID:        d.SessionID,
		Action:           string(fields.Kind),
		ItemCode:         fields.ItemCode,
		PreviousQuantity: fields.PreviousQuantity,
		NewQuantity:      fields.NewQuantity,
		ReferenceLogID:   fields.ReferenceLogID,
		PerformedBy:      d.PerformedBy,
		PerformedAt:      d.PerformedAt,
		Details:          d.Details,
		ClientIP:         d.Metadata.ClientIP,
		UserAgent:        d.Metadata.UserAgent,
	}
	if fields.ReferenceKind != nil {
		kind := string(*fields.ReferenceKind)
		m.ReferenceAction = &kind
	}
	return m, nil
}

// ToDomainLog rebuilds a domain VerificationLog from a model Log
func ToDomainLog(m models.Log) (domain.VerificationLog, error) {
	fields := domain.LogFields{
		Kind:             domain.LogKind(m.Action),
		ItemCode:         m.ItemCode,
		PreviousQuantity: m.PreviousQuantity,
		NewQuantity:      m.NewQuantity,
		ReferenceLogID:   m.ReferenceLogID,
	}
	if m.ReferenceAction != nil {
		kind := domain.LogKind(*m.ReferenceAction)
		fields.ReferenceKind = &kind
	}
	action, err := domain.Unflatten(fields)
	if err != nil {
		return domain.VerificationLog{}, err
	}
	return domain.VerificationLog{
		LogID:       m.LogID,
		SessionID:   m.SessionID,
		Sequence:    m.Seq,
		Action:      action,
		PerformedBy: m.PerformedBy,
		PerformedAt: m.PerformedAt,
		Details:     m.Details,
		Metadata: domain.RequestMetadata{
			ClientIP:  m.ClientIP,
			UserAgent: m.UserAgent,
		},
	}, nil
}

// ToDomainLogSlice converts a slice of model Logs to domain VerificationLogs
func ToDomainLogSlice(ms []models.Log) ([]domain.VerificationLog, error) {
	ds := make([]domain.VerificationLog, 0, len(ms))
	for _, m := range ms {
		d, err := ToDomainLog(m)
		if err != nil {
			return nil, err
		}
		ds = append(ds, d)
	}
	return ds, nil
}
