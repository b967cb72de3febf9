package services

import (
	portsrepo "github.com/dharmawipraja/accounting-api-sub000/internal/core/ports/repositories"
	portssvc "github.com/dharmawipraja/accounting-api-sub000/internal/core/ports/services"
)

// NewServiceContainer wires every service facade against the repository
// provider. resultAccountNumber designates the equity detail account that
// receives the yearly net result.
func NewServiceContainer(repos portsrepo.RepositoryProvider, resultAccountNumber string) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Account: NewAccountService(repos.AccountRepo, repos.LedgerRepo),
		Ledger:  NewLedgerService(repos.LedgerRepo, repos.AccountRepo),
		Posting: NewPostingService(repos.LedgerRepo, repos.JournalRepo, repos.AccountRepo),
		Closing: NewClosingService(repos.JournalRepo, repos.AccountRepo, repos.PeriodRepo, resultAccountNumber),
	}
}
