package services

import (
	"fmt"

	"github.com/SscSPs/ledger_engine/internal/core/ledger"
	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/platform/config"
)

// ReportingDecorator wraps the reporting service, for example with a cache. When the
// wrapper also implements portssvc.ReportInvalidator the posting engine notifies it.
type ReportingDecorator func(next portssvc.ReportingSvcFacade) portssvc.ReportingSvcFacade

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, decorators ...ReportingDecorator) (*portssvc.ServiceContainer, error) {
	container := &portssvc.ServiceContainer{}

	container.Reporting = NewReportingService(repos.Store)
	for _, decorate := range decorators {
		container.Reporting = decorate(container.Reporting)
	}

	locks, err := ledger.NewStaticPeriodLocks(cfg.LockedPeriods)
	if err != nil {
		return nil, fmt.Errorf("invalid LOCKED_PERIODS: %w", err)
	}
	opts := []PostingServiceOption{
		WithPeriodLockPolicy(locks),
		WithApprovalPolicy(ledger.ThresholdApproval{Threshold: cfg.ApprovalThreshold}),
	}
	if inv, ok := container.Reporting.(portssvc.ReportInvalidator); ok {
		opts = append(opts, WithReportInvalidator(inv))
	}
	container.Posting = NewPostingService(repos.Store, opts...)

	return container, nil
}
