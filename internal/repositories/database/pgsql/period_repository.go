package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/dharmawipraja/accounting-api-sub000/internal/apperrors"
	"github.com/dharmawipraja/accounting-api-sub000/internal/core/domain"
	portsrepo "github.com/dharmawipraja/accounting-api-sub000/internal/core/ports/repositories"
	"github.com/dharmawipraja/accounting-api-sub000/internal/models"
	"github.com/dharmawipraja/accounting-api-sub000/internal/utils/mapping"
)

const periodColumns = `period_id, year, amount, equity_detail_id, closed, created_at, created_by, last_updated_at, last_updated_by`

type PgxPeriodRepository struct {
	BaseRepository
}

// newPgxPeriodRepository creates a new repository for yearly period results.
func newPgxPeriodRepository(pool *pgxpool.Pool) portsrepo.PeriodRepositoryWithTx {
	return &PgxPeriodRepository{BaseRepository{Pool: pool}}
}

// Ensure PgxPeriodRepository implements portsrepo.PeriodRepositoryWithTx
var _ portsrepo.PeriodRepositoryWithTx = (*PgxPeriodRepository)(nil)

func scanPeriodResult(row pgx.Row) (*domain.PeriodResult, error) {
	var m models.PeriodResult
	err := row.Scan(
		&m.PeriodID,
		&m.Year,
		&m.Amount,
		&m.EquityDetailID,
		&m.Closed,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	d := mapping.ToDomainPeriodResult(m)
	return &d, nil
}

// FindByYear retrieves the period result for a year.
func (r *PgxPeriodRepository) FindByYear(ctx context.Context, year int) (*domain.PeriodResult, error) {
	query := `SELECT ` + periodColumns + ` FROM period_results WHERE year = $1;`
	result, err := scanPeriodResult(r.Pool.QueryRow(ctx, query, year))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find period result for %d: %w", year, err)
	}
	return result, nil
}

// FindByYearForUpdate selects and locks the period result row for a year.
func (r *PgxPeriodRepository) FindByYearForUpdate(ctx context.Context, tx pgx.Tx, year int) (*domain.PeriodResult, error) {
	query := `SELECT ` + periodColumns + ` FROM period_results WHERE year = $1 FOR UPDATE;`
	result, err := scanPeriodResult(tx.QueryRow(ctx, query, year))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock period result for %d: %w", year, err)
	}
	return result, nil
}

// SaveInTx inserts a new period result row within a transaction.
func (r *PgxPeriodRepository) SaveInTx(ctx context.Context, tx pgx.Tx, result domain.PeriodResult) error {
	m := mapping.ToModelPeriodResult(result)
	query := `
		INSERT INTO period_results (` + periodColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := tx.Exec(ctx, query,
		m.PeriodID,
		m.Year,
		m.Amount,
		m.EquityDetailID,
		m.Closed,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: period result for %d already exists", apperrors.ErrDuplicate, m.Year)
		}
		return fmt.Errorf("failed to save period result for %d: %w", m.Year, err)
	}
	return nil
}

// UpdateAmountInTx overwrites the amount of an existing period result.
func (r *PgxPeriodRepository) UpdateAmountInTx(ctx context.Context, tx pgx.Tx, periodID string, amount decimal.Decimal, userID string, now time.Time) error {
	query := `
		UPDATE period_results
		SET amount = $2, last_updated_at = $3, last_updated_by = $4
		WHERE period_id = $1 AND closed = FALSE;
	`
	tag, err := tx.Exec(ctx, query, periodID, amount, now, userID)
	if err != nil {
		return fmt.Errorf("failed to update period result %s: %w", periodID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// MarkClosed sets the one-way closed flag.
func (r *PgxPeriodRepository) MarkClosed(ctx context.Context, tx pgx.Tx, year int, userID string, now time.Time) error {
	query := `
		UPDATE period_results
		SET closed = TRUE, last_updated_at = $2, last_updated_by = $3
		WHERE year = $1 AND closed = FALSE;
	`
	tag, err := tx.Exec(ctx, query, year, now, userID)
	if err != nil {
		return fmt.Errorf("failed to close period %d: %w", year, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
