package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/vanshbajaj13/Muskan-Collection-sub000/internal/core/domain"
	portsrepo "github.com/vanshbajaj13/Muskan-Collection-sub000/internal/core/ports/repositories"
	portssvc "github.com/vanshbajaj13/Muskan-Collection-sub000/internal/core/ports/services"
	"github.com/xuri/excelize/v2"
)

const (
	xlsxContentType  = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	summarySheetName = "Summary"
	itemsSheetName   = "Items"
)

var itemsSheetHeadings = []string{
	"Item Code", "Brand", "Product", "Category", "Size", "Price",
	"Expected", "Verified", "Variance", "Variance Value", "Status", "Method", "Verified By", "Adjusted", "Notes",
}

type reportService struct {
	BaseService
	sessionRepo portsrepo.SessionReader
	itemRepo    portsrepo.ItemReader
}

// NewReportService creates the variance report exporter.
func NewReportService(sessionRepo portsrepo.SessionReader, itemRepo portsrepo.ItemReader, options ...ServiceOption) portssvc.ReportSvc {
	svc := &reportService{sessionRepo: sessionRepo, itemRepo: itemRepo}
	for _, option := range options {
		option(&svc.BaseService)
	}
	return svc
}

var _ portssvc.ReportSvc = (*reportService)(nil)

func (s *reportService) ExportVarianceReport(ctx context.Context, sessionID string) (*portssvc.Report, error) {
	session, err := s.sessionRepo.FindSessionByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	items, err := s.itemRepo.ListAllItems(ctx, sessionID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list items for report", slog.String("session_id", sessionID))
		return nil, err
	}

	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil {
			s.LogError(ctx, cerr, "Failed to close workbook", slog.String("session_id", sessionID))
		}
	}()

	if err := f.SetSheetName("Sheet1", summarySheetName); err != nil {
		return nil, fmt.Errorf("failed to name summary sheet: %w", err)
	}
	if err := writeSummarySheet(f, session, domain.SummarizeItems(items)); err != nil {
		return nil, fmt.Errorf("failed to write summary sheet: %w", err)
	}
	if _, err := f.NewSheet(itemsSheetName); err != nil {
		return nil, fmt.Errorf("failed to create items sheet: %w", err)
	}
	if err := writeItemsSheet(f, items); err != nil {
		return nil, fmt.Errorf("failed to write items sheet: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}

	s.LogInfo(ctx, "Variance report exported",
		slog.String("session_id", sessionID),
		slog.Int("item_count", len(items)))
	return &portssvc.Report{
		FileName:    reportFileName(session),
		ContentType: xlsxContentType,
		Body:        buf.Bytes(),
	}, nil
}

func writeSummarySheet(f *excelize.File, session *domain.VerificationSession, summary domain.StatusSummary) error {
	completedAt := ""
	if session.CompletedAt != nil {
		completedAt = session.CompletedAt.Format("2006-01-02 15:04")
	}
	rows := [][]interface{}{
		{"Session", session.Name},
		{"Session ID", session.SessionID},
		{"Type", string(session.Type)},
		{"Status", string(session.Status)},
		{"Categories", strings.Join(session.Categories, ", ")},
		{"Started", session.StartedAt.Format("2006-01-02 15:04")},
		{"Completed", completedAt},
		{"Expected Items", session.TotalExpectedItems},
		{"Verified Items", session.TotalVerifiedItems},
		{"Discrepancies", session.TotalDiscrepancies},
		{"Pending", summary.Pending},
		{"Verified", summary.Verified},
		{"Short", summary.Discrepancy},
		{"Over", summary.Overage},
		{"Not Found", summary.NotFound},
		{"Expected Value", session.ExpectedFinancialValue.InexactFloat64()},
		{"Actual Value", session.ActualFinancialValue.InexactFloat64()},
		{"Variance Value", session.VarianceValue.InexactFloat64()},
		{"Notes", session.Notes},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(summarySheetName, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func writeItemsSheet(f *excelize.File, items []domain.VerificationItem) error {
	if err := f.SetSheetRow(itemsSheetName, "A1", &itemsSheetHeadings); err != nil {
		return err
	}
	for i, item := range items {
		row := []interface{}{
			item.ItemCode,
			item.Details.Brand,
			item.Details.Product,
			item.Details.Category,
			item.Details.Size,
			item.Details.Price.InexactFloat64(),
			item.ExpectedQuantity,
			item.VerifiedQuantity,
			item.VarianceQuantity,
			item.VarianceValue.InexactFloat64(),
			string(item.Status),
			string(item.Method),
			item.VerifiedBy,
			item.IsAdjusted,
			item.Notes,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(itemsSheetName, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func reportFileName(session *domain.VerificationSession) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, session.Name)
	if name == "" {
		name = session.SessionID
	}
	return fmt.Sprintf("variance_%s_%s.xlsx", name, session.StartedAt.Format("20060102"))
}
