package repositories

import (
	"context"
	"time"

	"github.com/dharmawipraja/accounting-api-sub000/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// PeriodReader defines read operations for yearly period results.
type PeriodReader interface {
	// FindByYear retrieves the period result for a year, or apperrors.ErrNotFound.
	FindByYear(ctx context.Context, year int) (*domain.PeriodResult, error)

	// FindByYearForUpdate selects and locks the period result row for a year
	// within a transaction, or apperrors.ErrNotFound.
	FindByYearForUpdate(ctx context.Context, tx pgx.Tx, year int) (*domain.PeriodResult, error)
}

// PeriodWriter defines write operations for yearly period results.
type PeriodWriter interface {
	// SaveInTx inserts a new period result row within a transaction.
	SaveInTx(ctx context.Context, tx pgx.Tx, result domain.PeriodResult) error

	// UpdateAmountInTx overwrites the amount of an existing period result within
	// a transaction.
	UpdateAmountInTx(ctx context.Context, tx pgx.Tx, periodID string, amount decimal.Decimal, userID string, now time.Time) error

	// MarkClosed sets the one-way closed flag within a transaction.
	MarkClosed(ctx context.Context, tx pgx.Tx, year int, userID string, now time.Time) error
}

// PeriodRepositoryFacade combines all period-related repository interfaces.
type PeriodRepositoryFacade interface {
	PeriodReader
	PeriodWriter
}

// PeriodRepositoryWithTx extends PeriodRepositoryFacade with transaction capabilities.
type PeriodRepositoryWithTx interface {
	PeriodRepositoryFacade
	TransactionManager
}
