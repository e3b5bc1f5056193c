package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/vanshbajaj13/Muskan-Collection-sub000/internal/apperrors"
	"github.com/vanshbajaj13/Muskan-Collection-sub000/internal/core/domain"
	portsrepo "github.com/vanshbajaj13/Muskan-Collection-sub000/internal/core/ports/repositories"
	portssvc "github.com/vanshbajaj13/Muskan-Collection-sub000/internal/core/ports/services"
	"github.com/vanshbajaj13/Muskan-Collection-sub000/internal/core/services"
	"github.com/vanshbajaj13/Muskan-Collection-sub000/internal/dto"
	"github.com/vanshbajaj13/Muskan-Collection-sub000/internal/repositories/lock"
	"github.com/vanshbajaj13/Muskan-Collection-sub000/internal/repositories/memory"
)

func testCatalog() []domain.CatalogItem {
	item := func(code, category string) domain.CatalogItem {
		return domain.CatalogItem{
			Code:           code,
			Brand:          "Levis",
			Product:        "Slim Jeans " + code,
			Category:       category,
			Size:           "32",
			QuantityBought: 7,
			QuantitySold:   2,
			Price:          decimal.NewFromInt(100),
		}
	}
	return []domain.CatalogItem{item("MC-001", "denim"), item("MC-002", "denim"), item("MC-003", "denim")}
}

type VerificationScenarioSuite struct {
	suite.Suite
	ctx       context.Context
	store     *memory.Store
	stats     portssvc.StatisticsSvc
	sessions  portssvc.SessionSvcFacade
	recording portssvc.RecordingSvcFacade
	audit     portssvc.AuditSvcFacade
	initiator domain.Actor
	operator  domain.Actor
	admin     domain.Actor
}

func (s *VerificationScenarioSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = memory.NewStore(testCatalog())
	s.initiator = domain.Actor{ID: "user-initiator", DisplayName: "Asha", Role: domain.RoleManager}
	s.operator = domain.Actor{ID: "user-operator", DisplayName: "Ravi", Role: domain.RoleOperator}
	s.admin = domain.Actor{ID: "user-admin", DisplayName: "Meera", Role: domain.RoleAdmin}
	s.buildServices(lock.NewLocalLocker())
}

func (s *VerificationScenarioSuite) buildServices(locker *lock.LocalLocker) {
	repos := s.store.Provider(nil)
	opts := []services.ServiceOption{services.WithMaxAttempts(3)}
	if locker != nil {
		repos.Locker = locker
		opts = append(opts, services.WithItemLocker(locker, time.Second))
	}
	s.stats = services.NewStatisticsService(repos.SessionRepo, repos.ItemRepo, opts...)
	s.sessions = services.NewSessionService(repos.SessionRepo, repos.ItemRepo, repos.CatalogRepo, opts...)
	s.recording = services.NewRecordingService(repos.SessionRepo, repos.ItemRepo, s.stats, opts...)
	s.audit = services.NewAuditService(repos.SessionRepo, repos.ItemRepo, repos.LogRepo, s.stats, opts...)
}

func (s *VerificationScenarioSuite) createSession() *domain.VerificationSession {
	session, err := s.sessions.CreateSession(s.ctx, s.initiator, dto.CreateSessionRequest{
		Name: "Quarter end count",
		Type: "full",
	}, domain.RequestMetadata{ClientIP: "10.0.0.5"})
	s.Require().NoError(err)
	return session
}

func (s *VerificationScenarioSuite) scan(sessionID, itemCode string, quantity int) *domain.RecordingResult {
	result, err := s.recording.RecordScan(s.ctx, s.operator, sessionID, dto.RecordCountRequest{ItemCode: itemCode, Quantity: quantity}, domain.RequestMetadata{})
	s.Require().NoError(err)
	return result
}

func (s *VerificationScenarioSuite) item(sessionID, itemCode string) *domain.VerificationItem {
	item, _, err := s.recording.GetItem(s.ctx, sessionID, itemCode)
	s.Require().NoError(err)
	return item
}

func (s *VerificationScenarioSuite) logsOf(sessionID string) []dto.LogResponse {
	resp, err := s.audit.ListLogs(s.ctx, sessionID, dto.ListLogsParams{Limit: 100})
	s.Require().NoError(err)
	return resp.Logs
}

func (s *VerificationScenarioSuite) assertVarianceInvariant(item *domain.VerificationItem) {
	s.Equal(item.VerifiedQuantity-item.ExpectedQuantity, item.VarianceQuantity)
	want := item.Details.Price.Mul(decimal.NewFromInt(int64(item.VarianceQuantity)))
	s.True(want.Equal(item.VarianceValue), "variance value %s, want %s", item.VarianceValue, want)
}

func (s *VerificationScenarioSuite) TestScenarioA_CreateSessionFreezesBaseline() {
	session := s.createSession()

	s.Equal(domain.SessionActive, session.Status)
	s.Equal(3, session.TotalExpectedItems)
	s.True(decimal.NewFromInt(1500).Equal(session.ExpectedFinancialValue), session.ExpectedFinancialValue.String())
	s.True(decimal.NewFromInt(1500).Equal(session.ActualFinancialValue))
	s.True(decimal.NewFromInt(-1500).Equal(session.VarianceValue), session.VarianceValue.String())
	s.Require().Len(session.Participants, 1)
	s.Equal(s.initiator.ID, session.Participants[0].UserID)

	overview, err := s.sessions.GetSession(s.ctx, session.SessionID)
	s.Require().NoError(err)
	s.Equal(domain.StatusSummary{Total: 3, Pending: 3}, overview.Summary)

	item, snapshot, err := s.recording.GetItem(s.ctx, session.SessionID, "MC-001")
	s.Require().NoError(err)
	s.Equal(5, item.ExpectedQuantity)
	s.Equal(domain.ItemPending, item.Status)
	s.Require().NotNil(snapshot)
	s.Equal(5, snapshot.AvailableQuantity)

	for _, code := range []string{"MC-001", "MC-002", "MC-003"} {
		pending := s.item(session.SessionID, code)
		s.Equal(0, pending.VerifiedQuantity)
		s.Equal(-5, pending.VarianceQuantity)
		s.True(decimal.NewFromInt(-500).Equal(pending.VarianceValue), pending.VarianceValue.String())
		s.assertVarianceInvariant(pending)
	}

	logs := s.logsOf(session.SessionID)
	s.Require().Len(logs, 1)
	s.Equal(string(domain.LogSessionStart), logs[0].Action)
	s.Equal("10.0.0.5", logs[0].Metadata.ClientIP)
}

func (s *VerificationScenarioSuite) TestSnapshotIsUnaffectedByCatalogChanges() {
	session := s.createSession()

	changed := testCatalog()
	changed[0].QuantitySold = 7
	s.store.SetCatalog(changed)

	item, snapshot, err := s.recording.GetItem(s.ctx, session.SessionID, "MC-001")
	s.Require().NoError(err)
	s.Equal(5, item.ExpectedQuantity)
	s.Equal(2, snapshot.QuantitySold)
}

func (s *VerificationScenarioSuite) TestPartialSessionCoversOnlyCategories() {
	catalog := append(testCatalog(), domain.CatalogItem{
		Code: "SH-001", Brand: "Arrow", Product: "Oxford Shirt", Category: "shirts",
		QuantityBought: 4, QuantitySold: 1, Price: decimal.NewFromInt(50),
	})
	s.store.SetCatalog(catalog)

	session, err := s.sessions.CreateSession(s.ctx, s.initiator, dto.CreateSessionRequest{
		Name: "Shirts only", Type: "partial-by-category", Categories: []string{"shirts", " shirts "},
	}, domain.RequestMetadata{})
	s.Require().NoError(err)

	s.Equal(domain.SessionTypePartial, session.Type)
	s.Equal([]string{"shirts"}, session.Categories)
	s.Equal(1, session.TotalExpectedItems)
	s.True(decimal.NewFromInt(150).Equal(session.ExpectedFinancialValue))

	_, _, err = s.recording.GetItem(s.ctx, session.SessionID, "MC-001")
	s.ErrorIs(err, apperrors.ErrItemNotInSession)
}

func (s *VerificationScenarioSuite) TestCreateSession_Validation() {
	_, err := s.sessions.CreateSession(s.ctx, s.initiator, dto.CreateSessionRequest{Name: "No scope", Type: "partial-by-category"}, domain.RequestMetadata{})
	s.ErrorIs(err, apperrors.ErrValidation)

	_, err = s.sessions.CreateSession(s.ctx, s.initiator, dto.CreateSessionRequest{Name: "  ", Type: "full"}, domain.RequestMetadata{})
	s.ErrorIs(err, apperrors.ErrValidation)

	_, err = s.sessions.CreateSession(s.ctx, s.initiator, dto.CreateSessionRequest{Name: "Bad type", Type: "weekly"}, domain.RequestMetadata{})
	s.ErrorIs(err, apperrors.ErrValidation)

	_, err = s.sessions.CreateSession(s.ctx, s.initiator, dto.CreateSessionRequest{Name: "Nothing", Type: "partial-by-category", Categories: []string{"hats"}}, domain.RequestMetadata{})
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *VerificationScenarioSuite) TestCreateSession_ShortPartialTypeIsNormalised() {
	session, err := s.sessions.CreateSession(s.ctx, s.initiator, dto.CreateSessionRequest{
		Name: "Denim", Type: "partial", Categories: []string{"denim"},
	}, domain.RequestMetadata{})
	s.Require().NoError(err)
	s.Equal(domain.SessionTypePartial, session.Type)
	s.Equal("partial-by-category", string(session.Type))
	s.Equal(3, session.TotalExpectedItems)
}

func (s *VerificationScenarioSuite) TestScenarioB_ExactScanVerifiesItem() {
	session := s.createSession()

	result := s.scan(session.SessionID, "MC-001", 5)

	s.Equal(domain.ItemVerified, result.Item.Status)
	s.Equal(0, result.Item.VarianceQuantity)
	s.Equal(1, result.SessionStats.TotalVerifiedItems)
	s.Equal(0, result.SessionStats.TotalDiscrepancies)
	s.assertVarianceInvariant(&result.Item)

	scan, ok := result.Log.Action.(domain.ScanRecorded)
	s.Require().True(ok)
	s.Equal(domain.ScanRecorded{ItemCode: "MC-001", PreviousQuantity: 0, Quantity: 5}, scan)
}

func (s *VerificationScenarioSuite) TestScenarioC_ScansAreAdditive() {
	session := s.createSession()

	s.scan(session.SessionID, "MC-001", 2)
	result := s.scan(session.SessionID, "MC-001", 1)

	s.Equal(3, result.Item.VerifiedQuantity)
	s.Equal(-2, result.Item.VarianceQuantity)
	s.Equal(domain.ItemDiscrepancy, result.Item.Status)
	s.Equal(domain.ScanRecorded{ItemCode: "MC-001", PreviousQuantity: 2, Quantity: 1}, result.Log.Action)
	s.assertVarianceInvariant(&result.Item)
}

func (s *VerificationScenarioSuite) TestScenarioD_DeletingSecondScanRevertsDelta() {
	session := s.createSession()
	s.scan(session.SessionID, "MC-001", 2)
	second := s.scan(session.SessionID, "MC-001", 1)

	result, err := s.audit.DeleteLog(s.ctx, s.initiator, second.Log.LogID, domain.RequestMetadata{})
	s.Require().NoError(err)

	s.Require().NotNil(result.AffectedItem)
	s.Equal(2, result.AffectedItem.VerifiedQuantity)
	s.Equal(-3, result.AffectedItem.VarianceQuantity)
	s.Equal(domain.ItemDiscrepancy, result.AffectedItem.Status)
	s.Equal(&domain.ItemImpact{
		ItemCode: "MC-001", PreviousQuantity: 3, NewQuantity: 2,
		PreviousStatus: domain.ItemDiscrepancy, NewStatus: domain.ItemDiscrepancy,
	}, result.Impact)
	s.Equal(1, result.SessionStats.TotalVerifiedItems)

	stored := s.item(session.SessionID, "MC-001")
	s.Equal(2, stored.VerifiedQuantity)
	s.assertVarianceInvariant(stored)

	deleted, ok := result.DeletionLog.Action.(domain.LogDeleted)
	s.Require().True(ok)
	s.Equal(second.Log.LogID, deleted.DeletedLogID)
	s.Equal(domain.LogScan, deleted.DeletedKind)

	_, err = s.audit.PreviewLogDeletion(s.ctx, second.Log.LogID)
	s.ErrorIs(err, apperrors.ErrLogNotFound)
}

func (s *VerificationScenarioSuite) TestScenarioE_ConcurrentScansDoNotLoseUpdates() {
	session := s.createSession()

	const stations = 10
	var wg sync.WaitGroup
	errs := make(chan error, stations)
	for i := 0; i < stations; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.recording.RecordScan(s.ctx, s.operator, session.SessionID, dto.RecordCountRequest{ItemCode: "MC-002", Quantity: 1}, domain.RequestMetadata{})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		s.NoError(err)
	}

	item := s.item(session.SessionID, "MC-002")
	s.Equal(stations, item.VerifiedQuantity)
	s.Equal(domain.ItemOverage, item.Status)
	s.Len(s.logsOf(session.SessionID), stations+1)

	overview, err := s.sessions.GetSession(s.ctx, session.SessionID)
	s.Require().NoError(err)
	s.Equal(1, overview.Session.TotalVerifiedItems)
	s.Equal(1, overview.Session.TotalDiscrepancies)
}

func (s *VerificationScenarioSuite) TestScenarioE_VersionGuardWithoutLocker() {
	s.buildServices(nil)
	session := s.createSession()

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.recording.RecordScan(s.ctx, s.operator, session.SessionID, dto.RecordCountRequest{ItemCode: "MC-002", Quantity: 1}, domain.RequestMetadata{})
			s.NoError(err)
		}()
	}
	wg.Wait()

	s.Equal(2, s.item(session.SessionID, "MC-002").VerifiedQuantity)
}

func (s *VerificationScenarioSuite) TestScenarioF_CompleteTwiceFails() {
	session := s.createSession()
	s.scan(session.SessionID, "MC-001", 4)

	completed, err := s.sessions.CompleteSession(s.ctx, s.initiator, session.SessionID, dto.CompleteSessionRequest{Notes: "counted by two teams"}, domain.RequestMetadata{})
	s.Require().NoError(err)
	s.Equal(domain.SessionCompleted, completed.Status)
	s.NotNil(completed.CompletedAt)
	s.Equal("counted by two teams", completed.Notes)
	s.Equal(1, completed.TotalDiscrepancies)

	_, err = s.sessions.CompleteSession(s.ctx, s.initiator, session.SessionID, dto.CompleteSessionRequest{Notes: "again"}, domain.RequestMetadata{})
	s.ErrorIs(err, apperrors.ErrAlreadyCompleted)
	s.ErrorIs(err, apperrors.ErrConflict)

	after, err := s.sessions.GetSession(s.ctx, session.SessionID)
	s.Require().NoError(err)
	s.Equal(completed.SessionStats, after.Session.SessionStats)
	s.Equal("counted by two teams", after.Session.Notes)

	logs := s.logsOf(session.SessionID)
	s.Equal(string(domain.LogSessionComplete), logs[0].Action)
}

// scanBeforeCompletion lands a count right before the completion unit of work,
// after the session service has validated the session.
type scanBeforeCompletion struct {
	portsrepo.SessionRepositoryFacade
	beforeComplete func()
}

func (r *scanBeforeCompletion) CompleteSession(ctx context.Context, completion portsrepo.SessionCompletion) (*domain.ComputedStats, error) {
	r.beforeComplete()
	return r.SessionRepositoryFacade.CompleteSession(ctx, completion)
}

func (s *VerificationScenarioSuite) TestCompleteSession_FreezesTotalsOfLateCounts() {
	session := s.createSession()

	repos := s.store.Provider(nil)
	sessionRepo := &scanBeforeCompletion{
		SessionRepositoryFacade: repos.SessionRepo,
		beforeComplete: func() {
			s.scan(session.SessionID, "MC-001", 5)
		},
	}
	sessions := services.NewSessionService(sessionRepo, repos.ItemRepo, repos.CatalogRepo, services.WithMaxAttempts(3))

	completed, err := sessions.CompleteSession(s.ctx, s.initiator, session.SessionID, dto.CompleteSessionRequest{}, domain.RequestMetadata{})
	s.Require().NoError(err)

	items, err := s.store.ListAllItems(s.ctx, session.SessionID)
	s.Require().NoError(err)
	truth := domain.ComputeSessionStats(items)
	s.Equal(1, truth.TotalVerifiedItems)
	s.Equal(truth.TotalVerifiedItems, completed.TotalVerifiedItems)
	s.Equal(truth.TotalDiscrepancies, completed.TotalDiscrepancies)
	s.True(truth.VarianceValue.Equal(completed.VarianceValue), completed.VarianceValue.String())
	s.True(truth.ActualFinancialValue.Equal(completed.ActualFinancialValue))

	logs := s.logsOf(session.SessionID)
	s.Equal(string(domain.LogSessionComplete), logs[0].Action)
	s.Contains(logs[0].Details, "1 of 3 items verified")
}

func (s *VerificationScenarioSuite) TestStatisticsAreFrozenAfterCompletion() {
	session := s.createSession()
	s.scan(session.SessionID, "MC-002", 5)
	completed, err := s.sessions.CompleteSession(s.ctx, s.initiator, session.SessionID, dto.CompleteSessionRequest{}, domain.RequestMetadata{})
	s.Require().NoError(err)

	err = s.store.UpdateSessionStats(s.ctx, session.SessionID, domain.ComputedStats{TotalVerifiedItems: 3}, time.Now())
	s.Require().NoError(err)

	after, err := s.sessions.GetSession(s.ctx, session.SessionID)
	s.Require().NoError(err)
	s.Equal(completed.SessionStats, after.Session.SessionStats)

	s.ErrorIs(s.store.UpdateSessionStats(s.ctx, "missing", domain.ComputedStats{}, time.Now()), apperrors.ErrSessionNotFound)
}

func (s *VerificationScenarioSuite) TestCompletedSessionIsABarrier() {
	session := s.createSession()
	first := s.scan(session.SessionID, "MC-001", 1)
	_, err := s.sessions.CompleteSession(s.ctx, s.initiator, session.SessionID, dto.CompleteSessionRequest{}, domain.RequestMetadata{})
	s.Require().NoError(err)

	_, err = s.recording.RecordScan(s.ctx, s.operator, session.SessionID, dto.RecordCountRequest{ItemCode: "MC-001", Quantity: 1}, domain.RequestMetadata{})
	s.ErrorIs(err, apperrors.ErrSessionNotActive)

	_, err = s.audit.DeleteLog(s.ctx, s.initiator, first.Log.LogID, domain.RequestMetadata{})
	s.ErrorIs(err, apperrors.ErrSessionLocked)

	preview, err := s.audit.PreviewLogDeletion(s.ctx, first.Log.LogID)
	s.Require().NoError(err)
	s.False(preview.CanDelete)
	s.NotEmpty(preview.Reason)
}

func (s *VerificationScenarioSuite) TestRoundTrip_RecordThenDeleteRestoresItem() {
	session := s.createSession()
	before := s.item(session.SessionID, "MC-003")

	result, err := s.recording.RecordManual(s.ctx, s.operator, session.SessionID, dto.RecordCountRequest{ItemCode: "MC-003", Quantity: 3, Notes: "back room"}, domain.RequestMetadata{})
	s.Require().NoError(err)
	s.Equal(domain.ItemDiscrepancy, result.Item.Status)

	_, err = s.audit.DeleteLog(s.ctx, s.initiator, result.Log.LogID, domain.RequestMetadata{})
	s.Require().NoError(err)

	after := s.item(session.SessionID, "MC-003")
	s.Equal(before.VerifiedQuantity, after.VerifiedQuantity)
	s.Equal(before.VarianceQuantity, after.VarianceQuantity)
	s.True(before.VarianceValue.Equal(after.VarianceValue))
	s.Equal(before.Status, after.Status)
	s.Nil(after.VerifiedAt)
	s.Equal("back room", after.Notes)

	overview, err := s.sessions.GetSession(s.ctx, session.SessionID)
	s.Require().NoError(err)
	s.Equal(0, overview.Session.TotalVerifiedItems)
}

func (s *VerificationScenarioSuite) TestProtectedLogsCannotBeDeleted() {
	session := s.createSession()
	startLogID := s.logsOf(session.SessionID)[0].LogID

	_, err := s.audit.DeleteLog(s.ctx, s.initiator, startLogID, domain.RequestMetadata{})
	s.ErrorIs(err, apperrors.ErrProtectedLog)
	s.ErrorIs(err, apperrors.ErrConflict)

	_, err = s.sessions.CompleteSession(s.ctx, s.initiator, session.SessionID, dto.CompleteSessionRequest{}, domain.RequestMetadata{})
	s.Require().NoError(err)

	for _, log := range s.logsOf(session.SessionID) {
		_, err := s.audit.DeleteLog(s.ctx, s.initiator, log.LogID, domain.RequestMetadata{})
		s.ErrorIs(err, apperrors.ErrProtectedLog, "log %s (%s)", log.LogID, log.Action)
	}
}

func (s *VerificationScenarioSuite) TestCorrection_SetsAbsoluteQuantity() {
	session := s.createSession()
	s.scan(session.SessionID, "MC-001", 8)

	result, err := s.recording.CorrectCount(s.ctx, s.initiator, session.SessionID, dto.CorrectCountRequest{ItemCode: "MC-001", NewQuantity: 5, Reason: "double scanned a pile"}, domain.RequestMetadata{})
	s.Require().NoError(err)

	s.Equal(5, result.Item.VerifiedQuantity)
	s.Equal(domain.ItemVerified, result.Item.Status)
	s.True(result.Item.IsAdjusted)
	s.Equal("double scanned a pile", result.Item.AdjustmentReason)
	s.Equal(domain.CountCorrected{ItemCode: "MC-001", PreviousQuantity: 8, NewQuantity: 5}, result.Log.Action)
}

func (s *VerificationScenarioSuite) TestCorrectionReversal_RestoresFromMostRecentPriorLog() {
	session := s.createSession()
	s.scan(session.SessionID, "MC-001", 2)
	s.scan(session.SessionID, "MC-001", 1)
	correction, err := s.recording.CorrectCount(s.ctx, s.initiator, session.SessionID, dto.CorrectCountRequest{ItemCode: "MC-001", NewQuantity: 10, Reason: "recount"}, domain.RequestMetadata{})
	s.Require().NoError(err)

	preview, err := s.audit.PreviewLogDeletion(s.ctx, correction.Log.LogID)
	s.Require().NoError(err)
	s.True(preview.CanDelete)
	s.Require().NotNil(preview.Impact)
	s.Equal(10, preview.Impact.PreviousQuantity)
	s.Equal(2, preview.Impact.NewQuantity)
	s.Equal(10, s.item(session.SessionID, "MC-001").VerifiedQuantity, "preview must not apply anything")

	result, err := s.audit.DeleteLog(s.ctx, s.initiator, correction.Log.LogID, domain.RequestMetadata{})
	s.Require().NoError(err)

	// The prior log is the second scan, whose previous quantity was 2.
	s.Equal(2, result.AffectedItem.VerifiedQuantity)
	s.Equal(domain.ItemDiscrepancy, result.AffectedItem.Status)
	s.assertVarianceInvariant(result.AffectedItem)

	stored := s.item(session.SessionID, "MC-001")
	s.False(stored.IsAdjusted)
	s.Empty(stored.AdjustmentReason)
}

func (s *VerificationScenarioSuite) TestCorrectionReversal_KeepsEarlierSurvivingAdjustment() {
	session := s.createSession()
	s.scan(session.SessionID, "MC-001", 1)
	earlier, err := s.recording.CorrectCount(s.ctx, s.initiator, session.SessionID, dto.CorrectCountRequest{ItemCode: "MC-001", NewQuantity: 3, Reason: "damaged tag"}, domain.RequestMetadata{})
	s.Require().NoError(err)
	latest, err := s.recording.CorrectCount(s.ctx, s.initiator, session.SessionID, dto.CorrectCountRequest{ItemCode: "MC-001", NewQuantity: 6, Reason: "second recount"}, domain.RequestMetadata{})
	s.Require().NoError(err)
	s.Equal("second recount", latest.Item.AdjustmentReason)

	result, err := s.audit.DeleteLog(s.ctx, s.initiator, latest.Log.LogID, domain.RequestMetadata{})
	s.Require().NoError(err)

	// Restored from the previous quantity of the earlier correction.
	item := result.AffectedItem
	s.Equal(1, item.VerifiedQuantity)
	s.True(item.IsAdjusted)
	s.Equal(earlier.Log.Details, item.AdjustmentReason)
	s.Contains(item.AdjustmentReason, "damaged tag")
	s.NotContains(item.AdjustmentReason, "second recount")
	s.assertVarianceInvariant(item)
}

func (s *VerificationScenarioSuite) TestCorrectionReversal_WithoutPriorLogResetsItem() {
	session := s.createSession()
	s.scan(session.SessionID, "MC-002", 3)
	correction, err := s.recording.CorrectCount(s.ctx, s.initiator, session.SessionID, dto.CorrectCountRequest{ItemCode: "MC-001", NewQuantity: 4, Reason: "typed count"}, domain.RequestMetadata{})
	s.Require().NoError(err)

	result, err := s.audit.DeleteLog(s.ctx, s.initiator, correction.Log.LogID, domain.RequestMetadata{})
	s.Require().NoError(err)

	item := result.AffectedItem
	s.Equal(0, item.VerifiedQuantity)
	s.Equal(domain.ItemPending, item.Status)
	s.False(item.IsAdjusted)
	s.Empty(item.VerifiedBy)
	s.Nil(item.VerifiedAt)
	s.Equal(3, s.item(session.SessionID, "MC-002").VerifiedQuantity, "other items untouched")
}

func (s *VerificationScenarioSuite) TestDeletingADeletionLogHasNoItemEffect() {
	session := s.createSession()
	scan := s.scan(session.SessionID, "MC-001", 2)
	first, err := s.audit.DeleteLog(s.ctx, s.initiator, scan.Log.LogID, domain.RequestMetadata{})
	s.Require().NoError(err)

	result, err := s.audit.DeleteLog(s.ctx, s.initiator, first.DeletionLog.LogID, domain.RequestMetadata{})
	s.Require().NoError(err)

	s.Nil(result.AffectedItem)
	s.Nil(result.Impact)
	s.Equal(0, s.item(session.SessionID, "MC-001").VerifiedQuantity)

	logs := s.logsOf(session.SessionID)
	s.Require().Len(logs, 2)
	s.Equal(string(domain.LogDeletion), logs[0].Action)
	s.Equal(string(domain.LogDeletion), *logs[0].ReferenceAction)
}

func (s *VerificationScenarioSuite) TestRecordCount_Validation() {
	session := s.createSession()

	_, err := s.recording.RecordScan(s.ctx, s.operator, session.SessionID, dto.RecordCountRequest{ItemCode: "MC-001", Quantity: 0}, domain.RequestMetadata{})
	s.ErrorIs(err, apperrors.ErrValidation)

	_, err = s.recording.RecordManual(s.ctx, s.operator, session.SessionID, dto.RecordCountRequest{ItemCode: "MC-001", Quantity: -1}, domain.RequestMetadata{})
	s.ErrorIs(err, apperrors.ErrValidation)

	_, err = s.recording.RecordScan(s.ctx, s.operator, session.SessionID, dto.RecordCountRequest{ItemCode: "", Quantity: 1}, domain.RequestMetadata{})
	s.ErrorIs(err, apperrors.ErrValidation)

	_, err = s.recording.RecordScan(s.ctx, s.operator, session.SessionID, dto.RecordCountRequest{ItemCode: "UNKNOWN", Quantity: 1}, domain.RequestMetadata{})
	s.ErrorIs(err, apperrors.ErrItemNotInSession)

	_, err = s.recording.RecordScan(s.ctx, s.operator, "missing-session", dto.RecordCountRequest{ItemCode: "MC-001", Quantity: 1}, domain.RequestMetadata{})
	s.ErrorIs(err, apperrors.ErrSessionNotFound)

	zero, err := s.recording.RecordManual(s.ctx, s.operator, session.SessionID, dto.RecordCountRequest{ItemCode: "MC-001", Quantity: 0}, domain.RequestMetadata{})
	s.Require().NoError(err)
	s.Equal(domain.ItemDiscrepancy, zero.Item.Status, "a confirmed zero is no longer pending")
}

func (s *VerificationScenarioSuite) TestParticipantsAreAddedOnFirstAction() {
	session := s.createSession()
	s.scan(session.SessionID, "MC-001", 1)
	s.scan(session.SessionID, "MC-002", 1)

	overview, err := s.sessions.GetSession(s.ctx, session.SessionID)
	s.Require().NoError(err)
	s.Require().Len(overview.Session.Participants, 2)
	s.Equal(s.operator.ID, overview.Session.Participants[1].UserID)
}

func (s *VerificationScenarioSuite) TestPauseResumeCancel() {
	session := s.createSession()

	_, err := s.sessions.PauseSession(s.ctx, s.operator, session.SessionID)
	s.ErrorIs(err, apperrors.ErrForbidden)

	paused, err := s.sessions.PauseSession(s.ctx, s.initiator, session.SessionID)
	s.Require().NoError(err)
	s.Equal(domain.SessionPaused, paused.Status)

	_, err = s.sessions.PauseSession(s.ctx, s.initiator, session.SessionID)
	s.ErrorIs(err, apperrors.ErrInvalidTransition)

	// Paused sessions still accept counts.
	s.scan(session.SessionID, "MC-001", 1)

	resumed, err := s.sessions.ResumeSession(s.ctx, s.admin, session.SessionID)
	s.Require().NoError(err)
	s.Equal(domain.SessionActive, resumed.Status)

	_, err = s.sessions.CancelSession(s.ctx, s.initiator, session.SessionID, dto.CancelSessionRequest{Reason: "wrong store"})
	s.ErrorIs(err, apperrors.ErrForbidden)

	cancelled, err := s.sessions.CancelSession(s.ctx, s.admin, session.SessionID, dto.CancelSessionRequest{Reason: "wrong store"})
	s.Require().NoError(err)
	s.Equal(domain.SessionCancelled, cancelled.Status)
	s.Equal("wrong store", cancelled.Notes)

	_, err = s.sessions.CompleteSession(s.ctx, s.initiator, session.SessionID, dto.CompleteSessionRequest{}, domain.RequestMetadata{})
	s.ErrorIs(err, apperrors.ErrInvalidTransition)

	_, err = s.recording.RecordScan(s.ctx, s.operator, session.SessionID, dto.RecordCountRequest{ItemCode: "MC-001", Quantity: 1}, domain.RequestMetadata{})
	s.ErrorIs(err, apperrors.ErrSessionNotActive)
}

func (s *VerificationScenarioSuite) TestDeleteSession_InitiatorOnlyAndCascades() {
	session := s.createSession()
	scan := s.scan(session.SessionID, "MC-001", 1)

	err := s.sessions.DeleteSession(s.ctx, s.admin, session.SessionID)
	s.ErrorIs(err, apperrors.ErrNotSessionInitiator)
	s.ErrorIs(err, apperrors.ErrForbidden)

	s.Require().NoError(s.sessions.DeleteSession(s.ctx, s.initiator, session.SessionID))

	_, err = s.sessions.GetSession(s.ctx, session.SessionID)
	s.ErrorIs(err, apperrors.ErrNotFound)
	_, err = s.audit.PreviewLogDeletion(s.ctx, scan.Log.LogID)
	s.ErrorIs(err, apperrors.ErrNotFound)
	items, err := s.store.ListAllItems(s.ctx, session.SessionID)
	s.Require().NoError(err)
	s.Empty(items)
}

func (s *VerificationScenarioSuite) TestListItems_SearchStatusAndPaging() {
	session := s.createSession()
	s.scan(session.SessionID, "MC-002", 5)

	resp, err := s.recording.ListItems(s.ctx, session.SessionID, dto.ListItemsParams{Search: "mc-00", PageSize: 2})
	s.Require().NoError(err)
	s.Len(resp.Items, 2)
	s.Equal(dto.Pagination{Page: 1, PageSize: 2, Total: 3, TotalPages: 2}, resp.Pagination)
	s.Equal(domain.StatusSummary{Total: 3, Pending: 2, Verified: 1}, resp.Summary)

	resp, err = s.recording.ListItems(s.ctx, session.SessionID, dto.ListItemsParams{Search: "LEVIS", Status: "verified"})
	s.Require().NoError(err)
	s.Require().Len(resp.Items, 1)
	s.Equal("MC-002", resp.Items[0].ItemCode)

	resp, err = s.recording.ListItems(s.ctx, session.SessionID, dto.ListItemsParams{Search: "jeans mc-003"})
	s.Require().NoError(err)
	s.Len(resp.Items, 1)
}

func (s *VerificationScenarioSuite) TestListLogs_CursorPagingAndItemFilter() {
	session := s.createSession()
	for i := 0; i < 3; i++ {
		s.scan(session.SessionID, "MC-001", 1)
	}
	s.scan(session.SessionID, "MC-002", 1)

	first, err := s.audit.ListLogs(s.ctx, session.SessionID, dto.ListLogsParams{Limit: 3})
	s.Require().NoError(err)
	s.Require().Len(first.Logs, 3)
	s.Require().NotNil(first.NextToken)
	s.Equal("MC-002", *first.Logs[0].ItemCode, "most recent first")

	second, err := s.audit.ListLogs(s.ctx, session.SessionID, dto.ListLogsParams{Limit: 3, NextToken: first.NextToken})
	s.Require().NoError(err)
	s.Require().Len(second.Logs, 2)
	s.Nil(second.NextToken)
	s.Equal(string(domain.LogSessionStart), second.Logs[1].Action)

	filtered, err := s.audit.ListLogs(s.ctx, session.SessionID, dto.ListLogsParams{ItemCode: "MC-001"})
	s.Require().NoError(err)
	s.Len(filtered.Logs, 3)

	bad := "not-a-token"
	_, err = s.audit.ListLogs(s.ctx, session.SessionID, dto.ListLogsParams{NextToken: &bad})
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *VerificationScenarioSuite) TestListSessions_FilterByStatus() {
	first := s.createSession()
	s.createSession()
	_, err := s.sessions.CompleteSession(s.ctx, s.initiator, first.SessionID, dto.CompleteSessionRequest{}, domain.RequestMetadata{})
	s.Require().NoError(err)

	all, err := s.sessions.ListSessions(s.ctx, dto.ListSessionsParams{})
	s.Require().NoError(err)
	s.Equal(2, all.Total)

	completed, err := s.sessions.ListSessions(s.ctx, dto.ListSessionsParams{Status: "completed"})
	s.Require().NoError(err)
	s.Require().Len(completed.Sessions, 1)
	s.Equal(first.SessionID, completed.Sessions[0].SessionID)
}

func TestVerificationScenarioSuite(t *testing.T) {
	suite.Run(t, new(VerificationScenarioSuite))
}
