package repositories

import (
	"context"
	"time"

	"github.com/dharmawipraja/accounting-api-sub000/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// LedgerReader defines read operations for ledger lines.
type LedgerReader interface {
	// FindByReference retrieves every line of a batch by its reference number.
	FindByReference(ctx context.Context, referenceNumber string) ([]domain.LedgerEntry, error)

	// CountByDetailID counts non-deleted ledger lines referencing a detail account.
	CountByDetailID(ctx context.Context, detailID string) (int64, error)

	// FindPendingByDateForUpdate selects and locks the PENDING lines whose ledger
	// date falls within [dayStart, dayEnd) within a transaction.
	FindPendingByDateForUpdate(ctx context.Context, tx pgx.Tx, dayStart, dayEnd time.Time) ([]domain.LedgerEntry, error)

	// FindPostedByDateForUpdate selects and locks the POSTED lines whose ledger
	// date falls within [dayStart, dayEnd) within a transaction.
	FindPostedByDateForUpdate(ctx context.Context, tx pgx.Tx, dayStart, dayEnd time.Time) ([]domain.LedgerEntry, error)
}

// LedgerWriter defines write operations for ledger lines.
type LedgerWriter interface {
	// SaveBatch inserts all lines of one batch within a transaction.
	SaveBatch(ctx context.Context, tx pgx.Tx, entries []domain.LedgerEntry) error

	// MarkPosted flips the given lines to POSTED, stamping the posting timestamp
	// and updater, within a transaction.
	MarkPosted(ctx context.Context, tx pgx.Tx, ledgerIDs []string, postedAt time.Time, userID string) error

	// MarkPending flips the given lines back to PENDING, clearing the posting
	// timestamp, within a transaction.
	MarkPending(ctx context.Context, tx pgx.Tx, ledgerIDs []string, userID string, now time.Time) error

	// DeleteBatch hard-deletes the still-PENDING lines of a batch within a
	// transaction and reports how many rows went away.
	DeleteBatch(ctx context.Context, tx pgx.Tx, referenceNumber string) (int64, error)
}

// LedgerRepositoryFacade combines all ledger-related repository interfaces.
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
}

// LedgerRepositoryWithTx extends LedgerRepositoryFacade with transaction capabilities.
type LedgerRepositoryWithTx interface {
	LedgerRepositoryFacade
	TransactionManager
}
