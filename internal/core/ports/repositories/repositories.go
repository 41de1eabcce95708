package repositories

// LedgerStore is the transactional store the posting and reporting engines run against.
type LedgerStore interface {
	TransactionManager
	HealthChecker
	ReferenceDataReader
	JournalRepositoryFacade
	ReportingRepository
}

// RepositoryProvider holds all repository interfaces needed by services.
type RepositoryProvider struct {
	Store     LedgerStore
	Reference ReferenceDataWriter
}
