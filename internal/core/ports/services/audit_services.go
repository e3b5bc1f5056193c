package services

import (
	"context"

	"github.com/vanshbajaj13/Muskan-Collection-sub000/internal/core/domain"
	"github.com/vanshbajaj13/Muskan-Collection-sub000/internal/dto"
)

// AuditReaderSvc defines read operations over the audit log
type AuditReaderSvc interface {
	// ListLogs returns a page of the session's logs, most recent first.
	ListLogs(ctx context.Context, sessionID string, params dto.ListLogsParams) (*dto.ListLogsResponse, error)

	// PreviewLogDeletion computes what DeleteLog would do without applying it.
	PreviewLogDeletion(ctx context.Context, logID string) (*domain.DeletionPreview, error)
}

// AuditWriterSvc reverses logged actions
type AuditWriterSvc interface {
	// DeleteLog removes a log, reverses its effect on the item and records a deletion log.
	DeleteLog(ctx context.Context, actor domain.Actor, logID string, meta domain.RequestMetadata) (*domain.DeletionResult, error)
}

// AuditSvcFacade combines all audit-related service interfaces
type AuditSvcFacade interface {
	AuditReaderSvc
	AuditWriterSvc
}
