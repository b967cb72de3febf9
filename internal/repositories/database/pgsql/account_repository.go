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

const generalAccountColumns = `account_id, account_number, name, category, report_group, normal_side, amount_credit, amount_debit, accumulated_credit, accumulated_debit, created_at, created_by, last_updated_at, last_updated_by, deleted_at`

const detailAccountColumns = `account_id, account_number, name, category, report_group, normal_side, general_id, amount_credit, amount_debit, accumulated_credit, accumulated_debit, created_at, created_by, last_updated_at, last_updated_by, deleted_at`

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryWithTx {
	return &PgxAccountRepository{BaseRepository{Pool: pool}}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryWithTx
var _ portsrepo.AccountRepositoryWithTx = (*PgxAccountRepository)(nil)

func scanGeneralAccount(row pgx.Row) (*domain.GeneralAccount, error) {
	var m models.GeneralAccount
	err := row.Scan(
		&m.AccountID,
		&m.AccountNumber,
		&m.Name,
		&m.Category,
		&m.ReportGroup,
		&m.NormalSide,
		&m.AmountCredit,
		&m.AmountDebit,
		&m.AccumulatedCredit,
		&m.AccumulatedDebit,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	d := mapping.ToDomainGeneralAccount(m)
	return &d, nil
}

func scanDetailAccount(row pgx.Row) (*domain.DetailAccount, error) {
	var m models.DetailAccount
	err := row.Scan(
		&m.AccountID,
		&m.AccountNumber,
		&m.Name,
		&m.Category,
		&m.ReportGroup,
		&m.NormalSide,
		&m.GeneralID,
		&m.AmountCredit,
		&m.AmountDebit,
		&m.AccumulatedCredit,
		&m.AccumulatedDebit,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	d := mapping.ToDomainDetailAccount(m)
	return &d, nil
}

// SaveGeneral inserts a new general account.
func (r *PgxAccountRepository) SaveGeneral(ctx context.Context, account domain.GeneralAccount) error {
	m := mapping.ToModelGeneralAccount(account)

	query := `
		INSERT INTO account_generals (` + generalAccountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.AccountID,
		m.AccountNumber,
		m.Name,
		m.Category,
		m.ReportGroup,
		m.NormalSide,
		m.AmountCredit,
		m.AmountDebit,
		m.AccumulatedCredit,
		m.AccumulatedDebit,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.DeletedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: general account number %s already exists", apperrors.ErrDuplicate, m.AccountNumber)
		}
		return fmt.Errorf("failed to save general account %s: %w", m.AccountNumber, err)
	}
	return nil
}

// SaveDetail inserts a new detail account.
func (r *PgxAccountRepository) SaveDetail(ctx context.Context, account domain.DetailAccount) error {
	m := mapping.ToModelDetailAccount(account)

	query := `
		INSERT INTO account_details (` + detailAccountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.AccountID,
		m.AccountNumber,
		m.Name,
		m.Category,
		m.ReportGroup,
		m.NormalSide,
		m.GeneralID,
		m.AmountCredit,
		m.AmountDebit,
		m.AccumulatedCredit,
		m.AccumulatedDebit,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.DeletedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: detail account number %s already exists", apperrors.ErrDuplicate, m.AccountNumber)
		}
		return fmt.Errorf("failed to save detail account %s: %w", m.AccountNumber, err)
	}
	return nil
}

// FindGeneralByID retrieves an active general account by its surrogate id.
func (r *PgxAccountRepository) FindGeneralByID(ctx context.Context, accountID string) (*domain.GeneralAccount, error) {
	query := `
		SELECT ` + generalAccountColumns + `
		FROM account_generals
		WHERE account_id = $1 AND deleted_at IS NULL;
	`
	account, err := scanGeneralAccount(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find general account by ID %s: %w", accountID, err)
	}
	return account, nil
}

// FindGeneralByNumber retrieves an active general account by its account number.
func (r *PgxAccountRepository) FindGeneralByNumber(ctx context.Context, accountNumber string) (*domain.GeneralAccount, error) {
	query := `
		SELECT ` + generalAccountColumns + `
		FROM account_generals
		WHERE account_number = $1 AND deleted_at IS NULL;
	`
	account, err := scanGeneralAccount(r.Pool.QueryRow(ctx, query, accountNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find general account by number %s: %w", accountNumber, err)
	}
	return account, nil
}

// FindDetailByID retrieves an active detail account by its surrogate id.
func (r *PgxAccountRepository) FindDetailByID(ctx context.Context, accountID string) (*domain.DetailAccount, error) {
	query := `
		SELECT ` + detailAccountColumns + `
		FROM account_details
		WHERE account_id = $1 AND deleted_at IS NULL;
	`
	account, err := scanDetailAccount(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find detail account by ID %s: %w", accountID, err)
	}
	return account, nil
}

// FindDetailByNumber retrieves an active detail account by its account number.
func (r *PgxAccountRepository) FindDetailByNumber(ctx context.Context, accountNumber string) (*domain.DetailAccount, error) {
	query := `
		SELECT ` + detailAccountColumns + `
		FROM account_details
		WHERE account_number = $1 AND deleted_at IS NULL;
	`
	account, err := scanDetailAccount(r.Pool.QueryRow(ctx, query, accountNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find detail account by number %s: %w", accountNumber, err)
	}
	return account, nil
}

// ListGenerals retrieves a paginated list of active general accounts.
func (r *PgxAccountRepository) ListGenerals(ctx context.Context, limit int, offset int) ([]domain.GeneralAccount, error) {
	query := `
		SELECT ` + generalAccountColumns + `
		FROM account_generals
		WHERE deleted_at IS NULL
		ORDER BY account_number
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list general accounts: %w", err)
	}
	defer rows.Close()

	accounts := make([]domain.GeneralAccount, 0)
	for rows.Next() {
		account, err := scanGeneralAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan general account row: %w", err)
		}
		accounts = append(accounts, *account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating general account rows: %w", err)
	}
	return accounts, nil
}

// ListDetails retrieves a paginated list of active detail accounts.
func (r *PgxAccountRepository) ListDetails(ctx context.Context, limit int, offset int) ([]domain.DetailAccount, error) {
	query := `
		SELECT ` + detailAccountColumns + `
		FROM account_details
		WHERE deleted_at IS NULL
		ORDER BY account_number
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list detail accounts: %w", err)
	}
	defer rows.Close()

	accounts := make([]domain.DetailAccount, 0)
	for rows.Next() {
		account, err := scanDetailAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan detail account row: %w", err)
		}
		accounts = append(accounts, *account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating detail account rows: %w", err)
	}
	return accounts, nil
}

// CountActiveDetailsByGeneralID counts active detail accounts under a general account.
func (r *PgxAccountRepository) CountActiveDetailsByGeneralID(ctx context.Context, generalID string) (int64, error) {
	query := `SELECT COUNT(*) FROM account_details WHERE general_id = $1 AND deleted_at IS NULL;`
	var count int64
	if err := r.Pool.QueryRow(ctx, query, generalID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count detail accounts under %s: %w", generalID, err)
	}
	return count, nil
}

// UpdateGeneral updates descriptive fields of a general account.
func (r *PgxAccountRepository) UpdateGeneral(ctx context.Context, account domain.GeneralAccount) error {
	query := `
		UPDATE account_generals
		SET name = $2, category = $3, report_group = $4, normal_side = $5, last_updated_at = $6, last_updated_by = $7
		WHERE account_id = $1 AND deleted_at IS NULL;
	`
	tag, err := r.Pool.Exec(ctx, query,
		account.AccountID,
		account.Name,
		string(account.Category),
		string(account.ReportGroup),
		string(account.NormalSide),
		account.LastUpdatedAt,
		account.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update general account %s: %w", account.AccountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateDetail updates descriptive fields of a detail account.
func (r *PgxAccountRepository) UpdateDetail(ctx context.Context, account domain.DetailAccount) error {
	query := `
		UPDATE account_details
		SET name = $2, category = $3, report_group = $4, normal_side = $5, last_updated_at = $6, last_updated_by = $7
		WHERE account_id = $1 AND deleted_at IS NULL;
	`
	tag, err := r.Pool.Exec(ctx, query,
		account.AccountID,
		account.Name,
		string(account.Category),
		string(account.ReportGroup),
		string(account.NormalSide),
		account.LastUpdatedAt,
		account.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update detail account %s: %w", account.AccountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SoftDeleteGeneral rewrites the account number with the tombstone value and
// stamps the delete timestamp.
func (r *PgxAccountRepository) SoftDeleteGeneral(ctx context.Context, accountID string, tombstoneNumber string, userID string, now time.Time) error {
	query := `
		UPDATE account_generals
		SET account_number = $2, deleted_at = $3, last_updated_at = $3, last_updated_by = $4
		WHERE account_id = $1 AND deleted_at IS NULL;
	`
	tag, err := r.Pool.Exec(ctx, query, accountID, tombstoneNumber, now, userID)
	if err != nil {
		return fmt.Errorf("failed to delete general account %s: %w", accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SoftDeleteDetail rewrites the account number with the tombstone value and
// stamps the delete timestamp.
func (r *PgxAccountRepository) SoftDeleteDetail(ctx context.Context, accountID string, tombstoneNumber string, userID string, now time.Time) error {
	query := `
		UPDATE account_details
		SET account_number = $2, deleted_at = $3, last_updated_at = $3, last_updated_by = $4
		WHERE account_id = $1 AND deleted_at IS NULL;
	`
	tag, err := r.Pool.Exec(ctx, query, accountID, tombstoneNumber, now, userID)
	if err != nil {
		return fmt.Errorf("failed to delete detail account %s: %w", accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindDetailsByIDsInTx retrieves active detail accounts by id within a transaction.
func (r *PgxAccountRepository) FindDetailsByIDsInTx(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.DetailAccount, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.DetailAccount{}, nil
	}
	query := `
		SELECT ` + detailAccountColumns + `
		FROM account_details
		WHERE account_id = ANY($1) AND deleted_at IS NULL;
	`
	rows, err := tx.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch detail accounts by IDs: %w", err)
	}
	defer rows.Close()

	accounts := make(map[string]domain.DetailAccount, len(accountIDs))
	for rows.Next() {
		account, err := scanDetailAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan detail account row: %w", err)
		}
		accounts[account.AccountID] = *account
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating detail account rows: %w", err)
	}
	return accounts, nil
}

// FindGeneralsByIDsInTx retrieves active general accounts by id within a transaction.
func (r *PgxAccountRepository) FindGeneralsByIDsInTx(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.GeneralAccount, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.GeneralAccount{}, nil
	}
	query := `
		SELECT ` + generalAccountColumns + `
		FROM account_generals
		WHERE account_id = ANY($1) AND deleted_at IS NULL;
	`
	rows, err := tx.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch general accounts by IDs: %w", err)
	}
	defer rows.Close()

	accounts := make(map[string]domain.GeneralAccount, len(accountIDs))
	for rows.Next() {
		account, err := scanGeneralAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan general account row: %w", err)
		}
		accounts[account.AccountID] = *account
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating general account rows: %w", err)
	}
	return accounts, nil
}

// FindDetailByNumberForUpdate selects an active detail account by number and
// locks its row until the transaction ends.
func (r *PgxAccountRepository) FindDetailByNumberForUpdate(ctx context.Context, tx pgx.Tx, accountNumber string) (*domain.DetailAccount, error) {
	query := `
		SELECT ` + detailAccountColumns + `
		FROM account_details
		WHERE account_number = $1 AND deleted_at IS NULL
		FOR UPDATE;
	`
	account, err := scanDetailAccount(tx.QueryRow(ctx, query, accountNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock detail account %s: %w", accountNumber, err)
	}
	return account, nil
}

// ListResultDetailsInTx retrieves every active detail account in the result
// report group within a transaction.
func (r *PgxAccountRepository) ListResultDetailsInTx(ctx context.Context, tx pgx.Tx) ([]domain.DetailAccount, error) {
	query := `
		SELECT ` + detailAccountColumns + `
		FROM account_details
		WHERE report_group = $1 AND deleted_at IS NULL
		ORDER BY account_number;
	`
	rows, err := tx.Query(ctx, query, string(domain.ReportResult))
	if err != nil {
		return nil, fmt.Errorf("failed to list result accounts: %w", err)
	}
	defer rows.Close()

	accounts := make([]domain.DetailAccount, 0)
	for rows.Next() {
		account, err := scanDetailAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan detail account row: %w", err)
		}
		accounts = append(accounts, *account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating detail account rows: %w", err)
	}
	return accounts, nil
}

// IncrementDetailBalances adds the deltas to the account's cumulative credit
// and debit totals within a transaction.
func (r *PgxAccountRepository) IncrementDetailBalances(ctx context.Context, tx pgx.Tx, accountID string, creditDelta, debitDelta decimal.Decimal, userID string, now time.Time) error {
	query := `
		UPDATE account_details
		SET amount_credit = amount_credit + $2,
		    amount_debit = amount_debit + $3,
		    last_updated_at = $4,
		    last_updated_by = $5
		WHERE account_id = $1 AND deleted_at IS NULL;
	`
	tag, err := tx.Exec(ctx, query, accountID, creditDelta, debitDelta, now, userID)
	if err != nil {
		return fmt.Errorf("failed to increment balances of account %s: %w", accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DecrementDetailBalances subtracts the deltas from the account's cumulative
// credit and debit totals within a transaction.
func (r *PgxAccountRepository) DecrementDetailBalances(ctx context.Context, tx pgx.Tx, accountID string, creditDelta, debitDelta decimal.Decimal, userID string, now time.Time) error {
	query := `
		UPDATE account_details
		SET amount_credit = amount_credit - $2,
		    amount_debit = amount_debit - $3,
		    last_updated_at = $4,
		    last_updated_by = $5
		WHERE account_id = $1 AND deleted_at IS NULL;
	`
	tag, err := tx.Exec(ctx, query, accountID, creditDelta, debitDelta, now, userID)
	if err != nil {
		return fmt.Errorf("failed to decrement balances of account %s: %w", accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SetDetailAccumulation overwrites the account's accumulation pair within a
// transaction.
func (r *PgxAccountRepository) SetDetailAccumulation(ctx context.Context, tx pgx.Tx, accountID string, credit, debit decimal.Decimal, userID string, now time.Time) error {
	query := `
		UPDATE account_details
		SET accumulated_credit = $2,
		    accumulated_debit = $3,
		    last_updated_at = $4,
		    last_updated_by = $5
		WHERE account_id = $1 AND deleted_at IS NULL;
	`
	tag, err := tx.Exec(ctx, query, accountID, credit, debit, now, userID)
	if err != nil {
		return fmt.Errorf("failed to set accumulation of account %s: %w", accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
