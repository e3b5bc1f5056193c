package services

import (
	portsrepo "github.com/vanshbajaj13/Muskan-Collection-sub000/internal/core/ports/repositories"
	portssvc "github.com/vanshbajaj13/Muskan-Collection-sub000/internal/core/ports/services"
	"github.com/vanshbajaj13/Muskan-Collection-sub000/internal/platform/config"
	"github.com/vanshbajaj13/Muskan-Collection-sub000/internal/platform/metrics"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, m *metrics.Metrics) *portssvc.ServiceContainer {
	options := []ServiceOption{
		WithItemLocker(repos.Locker, cfg.ItemLockTTL),
		WithMaxAttempts(cfg.RecordMaxAttempts),
		WithPageSizes(cfg.DefaultPageSize, cfg.MaxPageSize),
		WithMetrics(m),
	}

	container := &portssvc.ServiceContainer{}

	// Statistics first since recording, audit and lifecycle refresh totals through it
	container.Statistics = NewStatisticsService(repos.SessionRepo, repos.ItemRepo, options...)
	container.Session = NewSessionService(repos.SessionRepo, repos.ItemRepo, repos.CatalogRepo, options...)
	container.Recording = NewRecordingService(repos.SessionRepo, repos.ItemRepo, container.Statistics, options...)
	container.Audit = NewAuditService(repos.SessionRepo, repos.ItemRepo, repos.LogRepo, container.Statistics, options...)
	container.Report = NewReportService(repos.SessionRepo, repos.ItemRepo, options...)

	return container
}
