package services

import (
	"context"
	"time"

	"github.com/dharmawipraja/accounting-api-sub000/internal/core/domain"
	"github.com/dharmawipraja/accounting-api-sub000/internal/dto"
)

// AccountSvcFacade exposes chart-of-accounts operations.
type AccountSvcFacade interface {
	CreateGeneral(ctx context.Context, req dto.CreateGeneralAccountRequest, creatorUserID string) (*domain.GeneralAccount, error)
	CreateDetail(ctx context.Context, req dto.CreateDetailAccountRequest, creatorUserID string) (*domain.DetailAccount, error)
	GetGeneralByNumber(ctx context.Context, accountNumber string) (*domain.GeneralAccount, error)
	GetDetailByNumber(ctx context.Context, accountNumber string) (*domain.DetailAccount, error)
	ListGenerals(ctx context.Context, limit, offset int) ([]domain.GeneralAccount, error)
	ListDetails(ctx context.Context, limit, offset int) ([]domain.DetailAccount, error)
	UpdateGeneral(ctx context.Context, accountID string, req dto.UpdateAccountRequest, updaterUserID string) (*domain.GeneralAccount, error)
	UpdateDetail(ctx context.Context, accountID string, req dto.UpdateAccountRequest, updaterUserID string) (*domain.DetailAccount, error)
	DeleteGeneral(ctx context.Context, accountID string, deleterUserID string) error
	DeleteDetail(ctx context.Context, accountID string, deleterUserID string) error
}

// LedgerSvcFacade exposes bulk ledger intake.
type LedgerSvcFacade interface {
	// SubmitBatch validates a batch of proposed lines and persists them as PENDING.
	SubmitBatch(ctx context.Context, req dto.SubmitBatchRequest, actorID string) (*dto.SubmitBatchResult, error)

	// GetBatch retrieves every line of a batch.
	GetBatch(ctx context.Context, referenceNumber string) ([]domain.LedgerEntry, error)

	// DeleteBatch hard-deletes a batch; allowed only while every line is PENDING.
	DeleteBatch(ctx context.Context, referenceNumber string, actorID string) error
}

// PostingSvcFacade exposes the posting and unposting engines.
type PostingSvcFacade interface {
	// PostForDate aggregates the day's PENDING ledger lines into journal
	// aggregates and flips the lines to POSTED.
	PostForDate(ctx context.Context, date time.Time, actorID string) (*dto.PostingResult, error)

	// UnpostForDate is the exact inverse of PostForDate.
	UnpostForDate(ctx context.Context, date time.Time, actorID string) (*dto.UnpostingResult, error)
}

// ClosingSvcFacade exposes balance application, balance reversal and the
// period closing engine.
type ClosingSvcFacade interface {
	// ApplyBalancesUpTo realizes PENDING journal aggregates up to a date into
	// account balances.
	ApplyBalancesUpTo(ctx context.Context, date time.Time, actorID string) (*dto.BalanceApplicationResult, error)

	// RevertBalancesFor un-applies the balances of one day's POSTED aggregates.
	RevertBalancesFor(ctx context.Context, date time.Time, actorID string) (*dto.BalanceApplicationResult, error)

	// ClosePeriod computes and stores the net result for a year.
	ClosePeriod(ctx context.Context, year int, actorID string) (*dto.ClosePeriodResult, error)

	// LockPeriod sets the one-way closed flag on a year's period result.
	LockPeriod(ctx context.Context, year int, actorID string) error
}

// ServiceContainer aggregates every service facade for handler wiring.
type ServiceContainer struct {
	Account AccountSvcFacade
	Ledger  LedgerSvcFacade
	Posting PostingSvcFacade
	Closing ClosingSvcFacade
}
