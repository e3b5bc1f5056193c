package handlers_test

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vanshbajaj13/Muskan-Collection-sub000/internal/core/domain"
	portssvc "github.com/vanshbajaj13/Muskan-Collection-sub000/internal/core/ports/services"
	"github.com/vanshbajaj13/Muskan-Collection-sub000/internal/dto"
)

// --- Mock SessionService ---
type MockSessionService struct {
	mock.Mock
}

func (m *MockSessionService) GetSession(ctx context.Context, sessionID string) (*domain.SessionOverview, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SessionOverview), args.Error(1)
}
func (m *MockSessionService) ListSessions(ctx context.Context, params dto.ListSessionsParams) (*dto.ListSessionsResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListSessionsResponse), args.Error(1)
}
func (m *MockSessionService) CreateSession(ctx context.Context, actor domain.Actor, req dto.CreateSessionRequest, meta domain.RequestMetadata) (*domain.VerificationSession, error) {
	args := m.Called(ctx, actor, req, meta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VerificationSession), args.Error(1)
}
func (m *MockSessionService) PauseSession(ctx context.Context, actor domain.Actor, sessionID string) (*domain.VerificationSession, error) {
	args := m.Called(ctx, actor, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VerificationSession), args.Error(1)
}
func (m *MockSessionService) ResumeSession(ctx context.Context, actor domain.Actor, sessionID string) (*domain.VerificationSession, error) {
	args := m.Called(ctx, actor, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VerificationSession), args.Error(1)
}
func (m *MockSessionService) CompleteSession(ctx context.Context, actor domain.Actor, sessionID string, req dto.CompleteSessionRequest, meta domain.RequestMetadata) (*domain.VerificationSession, error) {
	args := m.Called(ctx, actor, sessionID, req, meta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VerificationSession), args.Error(1)
}
func (m *MockSessionService) CancelSession(ctx context.Context, actor domain.Actor, sessionID string, req dto.CancelSessionRequest) (*domain.VerificationSession, error) {
	args := m.Called(ctx, actor, sessionID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VerificationSession), args.Error(1)
}
func (m *MockSessionService) DeleteSession(ctx context.Context, actor domain.Actor, sessionID string) error {
	args := m.Called(ctx, actor, sessionID)
	return args.Error(0)
}

var _ portssvc.SessionSvcFacade = (*MockSessionService)(nil)

// --- Mock RecordingService ---
type MockRecordingService struct {
	mock.Mock
}

func (m *MockRecordingService) ListItems(ctx context.Context, sessionID string, params dto.ListItemsParams) (*dto.ListItemsResponse, error) {
	args := m.Called(ctx, sessionID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListItemsResponse), args.Error(1)
}
func (m *MockRecordingService) GetItem(ctx context.Context, sessionID, itemCode string) (*domain.VerificationItem, *domain.InventorySnapshot, error) {
	args := m.Called(ctx, sessionID, itemCode)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.VerificationItem), args.Get(1).(*domain.InventorySnapshot), args.Error(2)
}
func (m *MockRecordingService) RecordScan(ctx context.Context, actor domain.Actor, sessionID string, req dto.RecordCountRequest, meta domain.RequestMetadata) (*domain.RecordingResult, error) {
	args := m.Called(ctx, actor, sessionID, req, meta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RecordingResult), args.Error(1)
}
func (m *MockRecordingService) RecordManual(ctx context.Context, actor domain.Actor, sessionID string, req dto.RecordCountRequest, meta domain.RequestMetadata) (*domain.RecordingResult, error) {
	args := m.Called(ctx, actor, sessionID, req, meta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RecordingResult), args.Error(1)
}
func (m *MockRecordingService) CorrectCount(ctx context.Context, actor domain.Actor, sessionID string, req dto.CorrectCountRequest, meta domain.RequestMetadata) (*domain.RecordingResult, error) {
	args := m.Called(ctx, actor, sessionID, req, meta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RecordingResult), args.Error(1)
}

var _ portssvc.RecordingSvcFacade = (*MockRecordingService)(nil)

// --- Mock AuditService ---
type MockAuditService struct {
	mock.Mock
}

func (m *MockAuditService) ListLogs(ctx context.Context, sessionID string, params dto.ListLogsParams) (*dto.ListLogsResponse, error) {
	args := m.Called(ctx, sessionID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListLogsResponse), args.Error(1)
}
func (m *MockAuditService) PreviewLogDeletion(ctx context.Context, logID string) (*domain.DeletionPreview, error) {
	args := m.Called(ctx, logID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DeletionPreview), args.Error(1)
}
func (m *MockAuditService) DeleteLog(ctx context.Context, actor domain.Actor, logID string, meta domain.RequestMetadata) (*domain.DeletionResult, error) {
	args := m.Called(ctx, actor, logID, meta)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DeletionResult), args.Error(1)
}

var _ portssvc.AuditSvcFacade = (*MockAuditService)(nil)

// --- Mock ReportService ---
type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) ExportVarianceReport(ctx context.Context, sessionID string) (*portssvc.Report, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portssvc.Report), args.Error(1)
}

var _ portssvc.ReportSvc = (*MockReportService)(nil)
