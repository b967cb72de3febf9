package pgsql

import (
	portsrepo "github.com/dharmawipraja/accounting-api-sub000/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	ledgerRepo := newPgxLedgerRepository(dbPool)
	journalRepo := newPgxJournalRepository(dbPool)
	periodRepo := newPgxPeriodRepository(dbPool)

	return portsrepo.RepositoryProvider{
		AccountRepo: accountRepo,
		LedgerRepo:  ledgerRepo,
		JournalRepo: journalRepo,
		PeriodRepo:  periodRepo,
	}
}
