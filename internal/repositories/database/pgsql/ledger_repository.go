package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dharmawipraja/accounting-api-sub000/internal/apperrors"
	"github.com/dharmawipraja/accounting-api-sub000/internal/core/domain"
	portsrepo "github.com/dharmawipraja/accounting-api-sub000/internal/core/ports/repositories"
	"github.com/dharmawipraja/accounting-api-sub000/internal/models"
	"github.com/dharmawipraja/accounting-api-sub000/internal/utils/mapping"
)

const ledgerColumns = `ledger_id, reference_number, amount, description, detail_id, general_id, movement_type, ledger_date, posting_status, posted_at, created_at, created_by, last_updated_at, last_updated_by, deleted_at`

type PgxLedgerRepository struct {
	BaseRepository
}

// newPgxLedgerRepository creates a new repository for ledger lines.
func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepositoryWithTx {
	return &PgxLedgerRepository{BaseRepository{Pool: pool}}
}

// Ensure PgxLedgerRepository implements portsrepo.LedgerRepositoryWithTx
var _ portsrepo.LedgerRepositoryWithTx = (*PgxLedgerRepository)(nil)

func scanLedgerEntry(row pgx.Row) (*domain.LedgerEntry, error) {
	var m models.LedgerEntry
	err := row.Scan(
		&m.LedgerID,
		&m.ReferenceNumber,
		&m.Amount,
		&m.Description,
		&m.DetailID,
		&m.GeneralID,
		&m.MovementType,
		&m.LedgerDate,
		&m.PostingStatus,
		&m.PostedAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	d := mapping.ToDomainLedgerEntry(m)
	return &d, nil
}

func collectLedgerEntries(rows pgx.Rows) ([]domain.LedgerEntry, error) {
	defer rows.Close()
	entries := make([]domain.LedgerEntry, 0)
	for rows.Next() {
		entry, err := scanLedgerEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger row: %w", err)
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ledger rows: %w", err)
	}
	return entries, nil
}

// SaveBatch inserts all lines of one batch within a transaction. The whole
// batch is rejected when its reference number is already taken.
func (r *PgxLedgerRepository) SaveBatch(ctx context.Context, tx pgx.Tx, entries []domain.LedgerEntry) error {
	if len(entries) == 0 {
		return nil
	}

	var taken bool
	checkQuery := `SELECT EXISTS (SELECT 1 FROM ledgers WHERE reference_number = $1);`
	if err := tx.QueryRow(ctx, checkQuery, entries[0].ReferenceNumber).Scan(&taken); err != nil {
		return fmt.Errorf("failed to check batch reference %s: %w", entries[0].ReferenceNumber, err)
	}
	if taken {
		return fmt.Errorf("%w: %s", apperrors.ErrReferenceCollision, entries[0].ReferenceNumber)
	}

	insertQuery := `
		INSERT INTO ledgers (` + ledgerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	batch := &pgx.Batch{}
	for _, entry := range entries {
		m := mapping.ToModelLedgerEntry(entry)
		batch.Queue(insertQuery,
			m.LedgerID,
			m.ReferenceNumber,
			m.Amount,
			m.Description,
			m.DetailID,
			m.GeneralID,
			m.MovementType,
			m.LedgerDate,
			m.PostingStatus,
			m.PostedAt,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
			m.DeletedAt,
		)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()
	for range entries {
		if _, err := results.Exec(); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return fmt.Errorf("%w: %s", apperrors.ErrReferenceCollision, entries[0].ReferenceNumber)
			}
			return fmt.Errorf("failed to insert ledger batch %s: %w", entries[0].ReferenceNumber, err)
		}
	}
	return nil
}

// FindByReference retrieves every line of a batch by its reference number.
func (r *PgxLedgerRepository) FindByReference(ctx context.Context, referenceNumber string) ([]domain.LedgerEntry, error) {
	query := `
		SELECT ` + ledgerColumns + `
		FROM ledgers
		WHERE reference_number = $1 AND deleted_at IS NULL
		ORDER BY created_at, ledger_id;
	`
	rows, err := r.Pool.Query(ctx, query, referenceNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to find batch %s: %w", referenceNumber, err)
	}
	return collectLedgerEntries(rows)
}

// CountByDetailID counts non-deleted ledger lines referencing a detail account.
func (r *PgxLedgerRepository) CountByDetailID(ctx context.Context, detailID string) (int64, error) {
	query := `SELECT COUNT(*) FROM ledgers WHERE detail_id = $1 AND deleted_at IS NULL;`
	var count int64
	if err := r.Pool.QueryRow(ctx, query, detailID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count ledger lines for detail %s: %w", detailID, err)
	}
	return count, nil
}

// FindPendingByDateForUpdate selects and locks the PENDING lines of one day.
func (r *PgxLedgerRepository) FindPendingByDateForUpdate(ctx context.Context, tx pgx.Tx, dayStart, dayEnd time.Time) ([]domain.LedgerEntry, error) {
	query := `
		SELECT ` + ledgerColumns + `
		FROM ledgers
		WHERE posting_status = $1 AND ledger_date >= $2 AND ledger_date < $3 AND deleted_at IS NULL
		ORDER BY ledger_id
		FOR UPDATE;
	`
	rows, err := tx.Query(ctx, query, models.Pending, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to lock pending ledger lines: %w", err)
	}
	return collectLedgerEntries(rows)
}

// FindPostedByDateForUpdate selects and locks the POSTED lines of one day.
func (r *PgxLedgerRepository) FindPostedByDateForUpdate(ctx context.Context, tx pgx.Tx, dayStart, dayEnd time.Time) ([]domain.LedgerEntry, error) {
	query := `
		SELECT ` + ledgerColumns + `
		FROM ledgers
		WHERE posting_status = $1 AND ledger_date >= $2 AND ledger_date < $3 AND deleted_at IS NULL
		ORDER BY ledger_id
		FOR UPDATE;
	`
	rows, err := tx.Query(ctx, query, models.Posted, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to lock posted ledger lines: %w", err)
	}
	return collectLedgerEntries(rows)
}

// MarkPosted flips the given lines to POSTED, stamping the posting timestamp.
func (r *PgxLedgerRepository) MarkPosted(ctx context.Context, tx pgx.Tx, ledgerIDs []string, postedAt time.Time, userID string) error {
	if len(ledgerIDs) == 0 {
		return nil
	}
	query := `
		UPDATE ledgers
		SET posting_status = $2, posted_at = $3, last_updated_at = $3, last_updated_by = $4
		WHERE ledger_id = ANY($1) AND deleted_at IS NULL;
	`
	tag, err := tx.Exec(ctx, query, ledgerIDs, models.Posted, postedAt, userID)
	if err != nil {
		return fmt.Errorf("failed to mark ledger lines posted: %w", err)
	}
	if tag.RowsAffected() != int64(len(ledgerIDs)) {
		return fmt.Errorf("%w: expected to post %d lines, posted %d", apperrors.ErrConflict, len(ledgerIDs), tag.RowsAffected())
	}
	return nil
}

// MarkPending flips the given lines back to PENDING, clearing the posting
// timestamp.
func (r *PgxLedgerRepository) MarkPending(ctx context.Context, tx pgx.Tx, ledgerIDs []string, userID string, now time.Time) error {
	if len(ledgerIDs) == 0 {
		return nil
	}
	query := `
		UPDATE ledgers
		SET posting_status = $2, posted_at = NULL, last_updated_at = $3, last_updated_by = $4
		WHERE ledger_id = ANY($1) AND deleted_at IS NULL;
	`
	tag, err := tx.Exec(ctx, query, ledgerIDs, models.Pending, now, userID)
	if err != nil {
		return fmt.Errorf("failed to mark ledger lines pending: %w", err)
	}
	if tag.RowsAffected() != int64(len(ledgerIDs)) {
		return fmt.Errorf("%w: expected to unpost %d lines, unposted %d", apperrors.ErrConflict, len(ledgerIDs), tag.RowsAffected())
	}
	return nil
}

// DeleteBatch hard-deletes the still-PENDING lines of a batch and reports how
// many rows went away.
func (r *PgxLedgerRepository) DeleteBatch(ctx context.Context, tx pgx.Tx, referenceNumber string) (int64, error) {
	query := `DELETE FROM ledgers WHERE reference_number = $1 AND posting_status = $2;`
	tag, err := tx.Exec(ctx, query, referenceNumber, models.Pending)
	if err != nil {
		return 0, fmt.Errorf("failed to delete batch %s: %w", referenceNumber, err)
	}
	return tag.RowsAffected(), nil
}
