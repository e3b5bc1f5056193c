package dto

import (
	"time"

	"github.com/vanshbajaj13/Muskan-Collection-sub000/internal/core/domain"
)

// --- Verification log DTOs ---

// ListLogsParams defines query parameters for listing a session's logs.
type ListLogsParams struct {
	Limit     int     `form:"limit" binding:"omitempty,min=1,max=100"`
	NextToken *string `form:"nextToken"`
	ItemCode  string  `form:"itemCode"`
}

// LogResponse defines data returned for a verification log.
type LogResponse struct {
	LogID            string                 `json:"logID"`
	SessionID        string                 `json:"sessionID"`
	Action           string                 `json:"action"`
	ItemCode         *string                `json:"itemCode,omitempty"`
	PreviousQuantity *int                   `json:"previousQuantity,omitempty"`
	NewQuantity      *int                   `json:"newQuantity,omitempty"`
	ReferenceLogID   *string                `json:"referenceLogID,omitempty"`
	ReferenceAction  *string                `json:"referenceAction,omitempty"`
	PerformedBy      string                 `json:"performedBy"`
	PerformedAt      time.Time              `json:"performedAt"`
	Details          string                 `json:"details"`
	Metadata         domain.RequestMetadata `json:"metadata"`
}

// ListLogsResponse wraps a page of logs, most recent first.
type ListLogsResponse struct {
	Logs      []LogResponse `json:"logs"`
	NextToken *string       `json:"nextToken,omitempty"`
}

// DeletionPreviewResponse reports what deleting a log would do.
type DeletionPreviewResponse struct {
	Log               LogResponse        `json:"log"`
	CanDelete         bool               `json:"canDelete"`
	Reason            string             `json:"reason,omitempty"`
	ImpactDescription string             `json:"impactDescription"`
	Impact            *domain.ItemImpact `json:"impact,omitempty"`
}

// DeleteLogResponse reports what deleting a log did.
type DeleteLogResponse struct {
	DeletedLogID        string               `json:"deletedLogID"`
	DeletionLog         LogResponse          `json:"deletionLog"`
	ImpactDescription   string               `json:"impactDescription"`
	Impact              *domain.ItemImpact   `json:"impact,omitempty"`
	AffectedItem        *ItemResponse        `json:"affectedItem,omitempty"`
	UpdatedSessionStats SessionStatsResponse `json:"updatedSessionStats"`
}

// ToLogResponse converts domain.VerificationLog to DTO.
func ToLogResponse(l *domain.VerificationLog) LogResponse {
	resp := LogResponse{
		LogID:       l.LogID,
		SessionID:   l.SessionID,
		Action:      string(l.Kind()),
		PerformedBy: l.PerformedBy,
		PerformedAt: l.PerformedAt,
		Details:     l.Details,
		Metadata:    l.Metadata,
	}
	if l.Action == nil {
		return resp
	}
	fields, err := domain.Flatten(l.Action)
	if err != nil {
		return resp
	}
	resp.ItemCode = fields.ItemCode
	resp.PreviousQuantity = fields.PreviousQuantity
	resp.NewQuantity = fields.NewQuantity
	resp.ReferenceLogID = fields.ReferenceLogID
	if fields.ReferenceKind != nil {
		kind := string(*fields.ReferenceKind)
		resp.ReferenceAction = &kind
	}
	return resp
}

// ToLogResponses converts a slice of domain.VerificationLog to DTOs.
func ToLogResponses(logs []domain.VerificationLog) []LogResponse {
	responses := make([]LogResponse, len(logs))
	for i, l := range logs {
		responses[i] = ToLogResponse(&l)
	}
	return responses
}

// ToDeletionPreviewResponse converts domain.DeletionPreview to DTO.
func ToDeletionPreviewResponse(p *domain.DeletionPreview) DeletionPreviewResponse {
	return DeletionPreviewResponse{
		Log:               ToLogResponse(&p.Log),
		CanDelete:         p.CanDelete,
		Reason:            p.Reason,
		ImpactDescription: p.ImpactDescription,
		Impact:            p.Impact,
	}
}

// ToDeleteLogResponse converts domain.DeletionResult to DTO.
func ToDeleteLogResponse(r *domain.DeletionResult) DeleteLogResponse {
	resp := DeleteLogResponse{
		DeletedLogID:        r.DeletedLogID,
		DeletionLog:         ToLogResponse(&r.DeletionLog),
		ImpactDescription:   r.ImpactDescription,
		Impact:              r.Impact,
		UpdatedSessionStats: ToSessionStatsResponse(r.SessionStats),
	}
	if r.AffectedItem != nil {
		item := ToItemResponse(r.AffectedItem)
		resp.AffectedItem = &item
	}
	return resp
}
