package services

import (
	"context"

	"github.com/vanshbajaj13/Muskan-Collection-sub000/internal/core/domain"
)

// StatisticsSvc keeps the session aggregates in line with its items.
type StatisticsSvc interface {
	// RecomputeSessionStats recomputes and stores the session totals from its items.
	RecomputeSessionStats(ctx context.Context, sessionID string) (*domain.SessionStats, error)
}

// Report is a rendered export ready to be streamed to a client.
type Report struct {
	FileName    string
	ContentType string
	Body        []byte
}

// ReportSvc renders session exports.
type ReportSvc interface {
	// ExportVarianceReport renders the session's variance workbook.
	ExportVarianceReport(ctx context.Context, sessionID string) (*Report, error)
}
