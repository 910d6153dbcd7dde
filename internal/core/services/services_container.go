package services

import (
	portsrepo "github.com/kennethjason07/school_management_app/internal/core/ports/repositories"
	portssvc "github.com/kennethjason07/school_management_app/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Date repair comes first: every reading service falls back to it.
	container.DateIntegrity = NewDateIntegrityService(repos.DateRepairRepo)

	container.FeeStructure = NewFeeStructureService(
		repos.FeeStructureRepo,
		repos.StudentFeeRepo,
		repos.SchoolRepo,
		WithFeeStructureDateRepairer(container.DateIntegrity),
	)

	container.Ledger = NewLedgerService(
		repos.StudentFeeRepo,
		repos.FeeStructureRepo,
		repos.SchoolRepo,
		WithLedgerDateRepairer(container.DateIntegrity),
	)

	container.Payment = NewPaymentService(
		repos.StudentFeeRepo,
		repos.SchoolRepo,
		container.FeeStructure,
	)

	container.Statistics = NewStatisticsService(
		repos.FeeStructureRepo,
		repos.StudentFeeRepo,
		repos.SchoolRepo,
		WithStatisticsDateRepairer(container.DateIntegrity),
	)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.FeeStructureSvcFacade  = (*feeStructureService)(nil)
	_ portssvc.LedgerSvcFacade        = (*ledgerService)(nil)
	_ portssvc.PaymentSvc             = (*paymentService)(nil)
	_ portssvc.StatisticsSvc          = (*statisticsService)(nil)
	_ portssvc.DateIntegritySvcFacade = (*dateIntegrityService)(nil)
)
