package pgsql

import (
	"time"

	portsrepo "github.com/SscSPs/ledger_engine/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store is the PostgreSQL implementation of portsrepo.LedgerStore. Every repository shares
// one BaseRepository so they all see the transaction carried by ctx.
type Store struct {
	*BaseRepository
	*PgxEntityRepository
	*PgxAccountRepository
	*PgxCurrencyRepository
	*PgxExchangeRateRepository
	*PgxJournalRepository
	*PgxAuditLogRepository
	*reportingRepository
}

var (
	_ portsrepo.LedgerStore         = (*Store)(nil)
	_ portsrepo.ReferenceDataWriter = (*Store)(nil)
)

// NewStore wires the repositories over dbPool. statementTimeout, when positive, is applied
// with SET LOCAL at the start of every transaction.
func NewStore(dbPool *pgxpool.Pool, statementTimeout time.Duration) *Store {
	base := &BaseRepository{Pool: dbPool, StatementTimeout: statementTimeout}
	return &Store{
		BaseRepository:            base,
		PgxEntityRepository:       newPgxEntityRepository(base),
		PgxAccountRepository:      newPgxAccountRepository(base),
		PgxCurrencyRepository:     newPgxCurrencyRepository(base),
		PgxExchangeRateRepository: newPgxExchangeRateRepository(base),
		PgxJournalRepository:      newPgxJournalRepository(base),
		PgxAuditLogRepository:     newPgxAuditLogRepository(base),
		reportingRepository:       newReportingRepository(base),
	}
}

// NewRepositoryProvider exposes the store through the interfaces the services depend on.
func NewRepositoryProvider(dbPool *pgxpool.Pool, statementTimeout time.Duration) portsrepo.RepositoryProvider {
	store := NewStore(dbPool, statementTimeout)
	return portsrepo.RepositoryProvider{
		Store:     store,
		Reference: store,
	}
}
