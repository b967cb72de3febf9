package repositories

import (
	"context"
	"time"

	"github.com/dharmawipraja/accounting-api-sub000/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// JournalReader defines read operations for posting aggregates.
type JournalReader interface {
	// HasOnOrBefore reports whether any aggregate, regardless of status, exists
	// with a ledger date on or before the given date, within a transaction.
	HasOnOrBefore(ctx context.Context, tx pgx.Tx, date time.Time) (bool, error)

	// HasPostedForDate reports whether any POSTED aggregate exists with a ledger
	// date within [dayStart, dayEnd), within a transaction.
	HasPostedForDate(ctx context.Context, tx pgx.Tx, dayStart, dayEnd time.Time) (bool, error)

	// FindPendingUpToForUpdate selects and locks the PENDING aggregates with a
	// ledger date on or before the cutoff, within a transaction.
	FindPendingUpToForUpdate(ctx context.Context, tx pgx.Tx, cutoff time.Time) ([]domain.JournalEntry, error)

	// FindPostedByDateForUpdate selects and locks the POSTED aggregates with a
	// ledger date within [dayStart, dayEnd), within a transaction.
	FindPostedByDateForUpdate(ctx context.Context, tx pgx.Tx, dayStart, dayEnd time.Time) ([]domain.JournalEntry, error)

	// ListByDate retrieves the aggregates for one day, newest first.
	ListByDate(ctx context.Context, dayStart, dayEnd time.Time) ([]domain.JournalEntry, error)
}

// JournalWriter defines write operations for posting aggregates.
type JournalWriter interface {
	// SaveEntries inserts the aggregates of one posting run within a transaction.
	SaveEntries(ctx context.Context, tx pgx.Tx, entries []domain.JournalEntry) error

	// UpdateStatus flips the given aggregates to the target status within a transaction.
	UpdateStatus(ctx context.Context, tx pgx.Tx, journalIDs []string, status domain.PostingStatus, userID string, now time.Time) error

	// DeletePendingByDate removes the still-PENDING aggregates of one day within
	// a transaction and reports how many rows went away.
	DeletePendingByDate(ctx context.Context, tx pgx.Tx, dayStart, dayEnd time.Time) (int64, error)
}

// JournalRepositoryFacade combines all journal-related repository interfaces.
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
}

// JournalRepositoryWithTx extends JournalRepositoryFacade with transaction capabilities.
type JournalRepositoryWithTx interface {
	JournalRepositoryFacade
	TransactionManager
}
