package repositories

import (
	"context"
	"time"

	"github.com/dharmawipraja/accounting-api-sub000/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// AccountReader defines read operations for account data. Soft-deleted rows
// are invisible to every reader.
type AccountReader interface {
	// FindGeneralByID retrieves an active general account by its surrogate id.
	FindGeneralByID(ctx context.Context, accountID string) (*domain.GeneralAccount, error)

	// FindGeneralByNumber retrieves an active general account by its account number.
	FindGeneralByNumber(ctx context.Context, accountNumber string) (*domain.GeneralAccount, error)

	// FindDetailByID retrieves an active detail account by its surrogate id.
	FindDetailByID(ctx context.Context, accountID string) (*domain.DetailAccount, error)

	// FindDetailByNumber retrieves an active detail account by its account number.
	FindDetailByNumber(ctx context.Context, accountNumber string) (*domain.DetailAccount, error)

	// ListGenerals retrieves a paginated list of active general accounts.
	ListGenerals(ctx context.Context, limit int, offset int) ([]domain.GeneralAccount, error)

	// ListDetails retrieves a paginated list of active detail accounts.
	ListDetails(ctx context.Context, limit int, offset int) ([]domain.DetailAccount, error)

	// CountActiveDetailsByGeneralID counts active detail accounts under a general account.
	CountActiveDetailsByGeneralID(ctx context.Context, generalID string) (int64, error)
}

// AccountWriter defines write operations for account data.
type AccountWriter interface {
	// SaveGeneral persists a new general account.
	SaveGeneral(ctx context.Context, account domain.GeneralAccount) error

	// SaveDetail persists a new detail account.
	SaveDetail(ctx context.Context, account domain.DetailAccount) error

	// UpdateGeneral updates descriptive fields of a general account.
	UpdateGeneral(ctx context.Context, account domain.GeneralAccount) error

	// UpdateDetail updates descriptive fields of a detail account.
	UpdateDetail(ctx context.Context, account domain.DetailAccount) error

	// SoftDeleteGeneral rewrites the account number with the tombstone value and
	// stamps the delete timestamp.
	SoftDeleteGeneral(ctx context.Context, accountID string, tombstoneNumber string, userID string, now time.Time) error

	// SoftDeleteDetail rewrites the account number with the tombstone value and
	// stamps the delete timestamp.
	SoftDeleteDetail(ctx context.Context, accountID string, tombstoneNumber string, userID string, now time.Time) error
}

// AccountBalanceSupport defines the tx-scoped operations the posting,
// unposting and closing engines use. Balance mutation is always a relative
// delta; SetDetailAccumulation is the single deliberate absolute write,
// reserved for the period closing engine.
type AccountBalanceSupport interface {
	// FindDetailsByIDsInTx retrieves active detail accounts by id within a transaction.
	FindDetailsByIDsInTx(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.DetailAccount, error)

	// FindGeneralsByIDsInTx retrieves active general accounts by id within a transaction.
	FindGeneralsByIDsInTx(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.GeneralAccount, error)

	// FindDetailByNumberForUpdate selects an active detail account by number and
	// locks it for update within a transaction.
	FindDetailByNumberForUpdate(ctx context.Context, tx pgx.Tx, accountNumber string) (*domain.DetailAccount, error)

	// ListResultDetailsInTx retrieves every active detail account in the result
	// report group within a transaction.
	ListResultDetailsInTx(ctx context.Context, tx pgx.Tx) ([]domain.DetailAccount, error)

	// IncrementDetailBalances adds the deltas to the account's cumulative credit
	// and debit totals within a transaction.
	IncrementDetailBalances(ctx context.Context, tx pgx.Tx, accountID string, creditDelta, debitDelta decimal.Decimal, userID string, now time.Time) error

	// DecrementDetailBalances subtracts the deltas from the account's cumulative
	// credit and debit totals within a transaction.
	DecrementDetailBalances(ctx context.Context, tx pgx.Tx, accountID string, creditDelta, debitDelta decimal.Decimal, userID string, now time.Time) error

	// SetDetailAccumulation overwrites the account's accumulation pair within a
	// transaction.
	SetDetailAccumulation(ctx context.Context, tx pgx.Tx, accountID string, credit, debit decimal.Decimal, userID string, now time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountBalanceSupport
}

// AccountRepositoryWithTx extends AccountRepositoryFacade with transaction capabilities.
type AccountRepositoryWithTx interface {
	AccountRepositoryFacade
	TransactionManager
}
