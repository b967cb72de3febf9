package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dharmawipraja/accounting-api-sub000/internal/core/domain"
	portsrepo "github.com/dharmawipraja/accounting-api-sub000/internal/core/ports/repositories"
	"github.com/dharmawipraja/accounting-api-sub000/internal/models"
	"github.com/dharmawipraja/accounting-api-sub000/internal/utils/mapping"
)

const journalColumns = `journal_id, detail_number, general_number, amount_debit, amount_credit, ledger_date, posting_status, created_at, created_by, last_updated_at, last_updated_by`

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for posting aggregates.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryWithTx {
	return &PgxJournalRepository{BaseRepository{Pool: pool}}
}

// Ensure PgxJournalRepository implements portsrepo.JournalRepositoryWithTx
var _ portsrepo.JournalRepositoryWithTx = (*PgxJournalRepository)(nil)

func scanJournalEntry(row pgx.Row) (*domain.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.JournalID,
		&m.DetailNumber,
		&m.GeneralNumber,
		&m.AmountDebit,
		&m.AmountCredit,
		&m.LedgerDate,
		&m.PostingStatus,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	d := mapping.ToDomainJournalEntry(m)
	return &d, nil
}

func collectJournalEntries(rows pgx.Rows) ([]domain.JournalEntry, error) {
	defer rows.Close()
	entries := make([]domain.JournalEntry, 0)
	for rows.Next() {
		entry, err := scanJournalEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal row: %w", err)
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating journal rows: %w", err)
	}
	return entries, nil
}

// SaveEntries inserts the aggregates of one posting run within a transaction.
func (r *PgxJournalRepository) SaveEntries(ctx context.Context, tx pgx.Tx, entries []domain.JournalEntry) error {
	if len(entries) == 0 {
		return nil
	}
	query := `
		INSERT INTO journal_entries (` + journalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	batch := &pgx.Batch{}
	for _, entry := range entries {
		m := mapping.ToModelJournalEntry(entry)
		batch.Queue(query,
			m.JournalID,
			m.DetailNumber,
			m.GeneralNumber,
			m.AmountDebit,
			m.AmountCredit,
			m.LedgerDate,
			m.PostingStatus,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()
	for range entries {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to insert journal aggregate: %w", err)
		}
	}
	return nil
}

// HasOnOrBefore reports whether any aggregate, regardless of status, exists
// with a ledger date on or before the given date. PENDING aggregates count:
// a posted day stays posted until it is unposted, not until its balances are
// applied.
func (r *PgxJournalRepository) HasOnOrBefore(ctx context.Context, tx pgx.Tx, date time.Time) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM journal_entries WHERE ledger_date <= $1);`
	var exists bool
	if err := tx.QueryRow(ctx, query, date).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check aggregates: %w", err)
	}
	return exists, nil
}

// HasPostedForDate reports whether any POSTED aggregate exists within
// [dayStart, dayEnd).
func (r *PgxJournalRepository) HasPostedForDate(ctx context.Context, tx pgx.Tx, dayStart, dayEnd time.Time) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM journal_entries WHERE posting_status = $1 AND ledger_date >= $2 AND ledger_date < $3);`
	var exists bool
	if err := tx.QueryRow(ctx, query, models.Posted, dayStart, dayEnd).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check posted aggregates for date: %w", err)
	}
	return exists, nil
}

// FindPendingUpToForUpdate selects and locks the PENDING aggregates with a
// ledger date on or before the cutoff.
func (r *PgxJournalRepository) FindPendingUpToForUpdate(ctx context.Context, tx pgx.Tx, cutoff time.Time) ([]domain.JournalEntry, error) {
	query := `
		SELECT ` + journalColumns + `
		FROM journal_entries
		WHERE posting_status = $1 AND ledger_date <= $2
		ORDER BY ledger_date, journal_id
		FOR UPDATE;
	`
	rows, err := tx.Query(ctx, query, models.Pending, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to lock pending aggregates: %w", err)
	}
	return collectJournalEntries(rows)
}

// FindPostedByDateForUpdate selects and locks the POSTED aggregates of one day.
func (r *PgxJournalRepository) FindPostedByDateForUpdate(ctx context.Context, tx pgx.Tx, dayStart, dayEnd time.Time) ([]domain.JournalEntry, error) {
	query := `
		SELECT ` + journalColumns + `
		FROM journal_entries
		WHERE posting_status = $1 AND ledger_date >= $2 AND ledger_date < $3
		ORDER BY journal_id
		FOR UPDATE;
	`
	rows, err := tx.Query(ctx, query, models.Posted, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to lock posted aggregates: %w", err)
	}
	return collectJournalEntries(rows)
}

// ListByDate retrieves the aggregates for one day.
func (r *PgxJournalRepository) ListByDate(ctx context.Context, dayStart, dayEnd time.Time) ([]domain.JournalEntry, error) {
	query := `
		SELECT ` + journalColumns + `
		FROM journal_entries
		WHERE ledger_date >= $1 AND ledger_date < $2
		ORDER BY detail_number;
	`
	rows, err := r.Pool.Query(ctx, query, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to list journal aggregates: %w", err)
	}
	return collectJournalEntries(rows)
}

// UpdateStatus flips the given aggregates to the target status.
func (r *PgxJournalRepository) UpdateStatus(ctx context.Context, tx pgx.Tx, journalIDs []string, status domain.PostingStatus, userID string, now time.Time) error {
	if len(journalIDs) == 0 {
		return nil
	}
	query := `
		UPDATE journal_entries
		SET posting_status = $2, last_updated_at = $3, last_updated_by = $4
		WHERE journal_id = ANY($1);
	`
	if _, err := tx.Exec(ctx, query, journalIDs, models.PostingStatus(status), now, userID); err != nil {
		return fmt.Errorf("failed to update aggregate status: %w", err)
	}
	return nil
}

// DeletePendingByDate removes the still-PENDING aggregates of one day and
// reports how many rows went away.
func (r *PgxJournalRepository) DeletePendingByDate(ctx context.Context, tx pgx.Tx, dayStart, dayEnd time.Time) (int64, error) {
	query := `DELETE FROM journal_entries WHERE posting_status = $1 AND ledger_date >= $2 AND ledger_date < $3;`
	tag, err := tx.Exec(ctx, query, models.Pending, dayStart, dayEnd)
	if err != nil {
		return 0, fmt.Errorf("failed to delete pending aggregates: %w", err)
	}
	return tag.RowsAffected(), nil
}
