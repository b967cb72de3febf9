package services_test

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/dharmawipraja/accounting-api-sub000/internal/core/domain"
)

// MockAccountRepository is a mock type for the AccountRepositoryWithTx interface
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockAccountRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockAccountRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockAccountRepository) FindGeneralByID(ctx context.Context, accountID string) (*domain.GeneralAccount, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GeneralAccount), args.Error(1)
}

func (m *MockAccountRepository) FindGeneralByNumber(ctx context.Context, accountNumber string) (*domain.GeneralAccount, error) {
	args := m.Called(ctx, accountNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GeneralAccount), args.Error(1)
}

func (m *MockAccountRepository) FindDetailByID(ctx context.Context, accountID string) (*domain.DetailAccount, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DetailAccount), args.Error(1)
}

func (m *MockAccountRepository) FindDetailByNumber(ctx context.Context, accountNumber string) (*domain.DetailAccount, error) {
	args := m.Called(ctx, accountNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DetailAccount), args.Error(1)
}

func (m *MockAccountRepository) ListGenerals(ctx context.Context, limit int, offset int) ([]domain.GeneralAccount, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GeneralAccount), args.Error(1)
}

func (m *MockAccountRepository) ListDetails(ctx context.Context, limit int, offset int) ([]domain.DetailAccount, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DetailAccount), args.Error(1)
}

func (m *MockAccountRepository) CountActiveDetailsByGeneralID(ctx context.Context, generalID string) (int64, error) {
	args := m.Called(ctx, generalID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAccountRepository) SaveGeneral(ctx context.Context, account domain.GeneralAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) SaveDetail(ctx context.Context, account domain.DetailAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateGeneral(ctx context.Context, account domain.GeneralAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateDetail(ctx context.Context, account domain.DetailAccount) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) SoftDeleteGeneral(ctx context.Context, accountID string, tombstoneNumber string, userID string, now time.Time) error {
	args := m.Called(ctx, accountID, tombstoneNumber, userID, now)
	return args.Error(0)
}

func (m *MockAccountRepository) SoftDeleteDetail(ctx context.Context, accountID string, tombstoneNumber string, userID string, now time.Time) error {
	args := m.Called(ctx, accountID, tombstoneNumber, userID, now)
	return args.Error(0)
}

func (m *MockAccountRepository) FindDetailsByIDsInTx(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.DetailAccount, error) {
	args := m.Called(ctx, tx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.DetailAccount), args.Error(1)
}

func (m *MockAccountRepository) FindGeneralsByIDsInTx(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.GeneralAccount, error) {
	args := m.Called(ctx, tx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.GeneralAccount), args.Error(1)
}

func (m *MockAccountRepository) FindDetailByNumberForUpdate(ctx context.Context, tx pgx.Tx, accountNumber string) (*domain.DetailAccount, error) {
	args := m.Called(ctx, tx, accountNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DetailAccount), args.Error(1)
}

func (m *MockAccountRepository) ListResultDetailsInTx(ctx context.Context, tx pgx.Tx) ([]domain.DetailAccount, error) {
	args := m.Called(ctx, tx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DetailAccount), args.Error(1)
}

func (m *MockAccountRepository) IncrementDetailBalances(ctx context.Context, tx pgx.Tx, accountID string, creditDelta, debitDelta decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, tx, accountID, creditDelta, debitDelta, userID, now)
	return args.Error(0)
}

func (m *MockAccountRepository) DecrementDetailBalances(ctx context.Context, tx pgx.Tx, accountID string, creditDelta, debitDelta decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, tx, accountID, creditDelta, debitDelta, userID, now)
	return args.Error(0)
}

func (m *MockAccountRepository) SetDetailAccumulation(ctx context.Context, tx pgx.Tx, accountID string, credit, debit decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, tx, accountID, credit, debit, userID, now)
	return args.Error(0)
}

// MockLedgerRepository is a mock type for the LedgerRepositoryWithTx interface
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockLedgerRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockLedgerRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockLedgerRepository) FindByReference(ctx context.Context, referenceNumber string) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, referenceNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) CountByDetailID(ctx context.Context, detailID string) (int64, error) {
	args := m.Called(ctx, detailID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLedgerRepository) FindPendingByDateForUpdate(ctx context.Context, tx pgx.Tx, dayStart, dayEnd time.Time) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, tx, dayStart, dayEnd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) FindPostedByDateForUpdate(ctx context.Context, tx pgx.Tx, dayStart, dayEnd time.Time) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, tx, dayStart, dayEnd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) SaveBatch(ctx context.Context, tx pgx.Tx, entries []domain.LedgerEntry) error {
	args := m.Called(ctx, tx, entries)
	return args.Error(0)
}

func (m *MockLedgerRepository) MarkPosted(ctx context.Context, tx pgx.Tx, ledgerIDs []string, postedAt time.Time, userID string) error {
	args := m.Called(ctx, tx, ledgerIDs, postedAt, userID)
	return args.Error(0)
}

func (m *MockLedgerRepository) MarkPending(ctx context.Context, tx pgx.Tx, ledgerIDs []string, userID string, now time.Time) error {
	args := m.Called(ctx, tx, ledgerIDs, userID, now)
	return args.Error(0)
}

func (m *MockLedgerRepository) DeleteBatch(ctx context.Context, tx pgx.Tx, referenceNumber string) (int64, error) {
	args := m.Called(ctx, tx, referenceNumber)
	return args.Get(0).(int64), args.Error(1)
}

// MockJournalRepository is a mock type for the JournalRepositoryWithTx interface
type MockJournalRepository struct {
	mock.Mock
}

func (m *MockJournalRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockJournalRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockJournalRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockJournalRepository) HasOnOrBefore(ctx context.Context, tx pgx.Tx, date time.Time) (bool, error) {
	args := m.Called(ctx, tx, date)
	return args.Bool(0), args.Error(1)
}

func (m *MockJournalRepository) HasPostedForDate(ctx context.Context, tx pgx.Tx, dayStart, dayEnd time.Time) (bool, error) {
	args := m.Called(ctx, tx, dayStart, dayEnd)
	return args.Bool(0), args.Error(1)
}

func (m *MockJournalRepository) FindPendingUpToForUpdate(ctx context.Context, tx pgx.Tx, cutoff time.Time) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, tx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) FindPostedByDateForUpdate(ctx context.Context, tx pgx.Tx, dayStart, dayEnd time.Time) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, tx, dayStart, dayEnd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) ListByDate(ctx context.Context, dayStart, dayEnd time.Time) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, dayStart, dayEnd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) SaveEntries(ctx context.Context, tx pgx.Tx, entries []domain.JournalEntry) error {
	args := m.Called(ctx, tx, entries)
	return args.Error(0)
}

func (m *MockJournalRepository) UpdateStatus(ctx context.Context, tx pgx.Tx, journalIDs []string, status domain.PostingStatus, userID string, now time.Time) error {
	args := m.Called(ctx, tx, journalIDs, status, userID, now)
	return args.Error(0)
}

func (m *MockJournalRepository) DeletePendingByDate(ctx context.Context, tx pgx.Tx, dayStart, dayEnd time.Time) (int64, error) {
	args := m.Called(ctx, tx, dayStart, dayEnd)
	return args.Get(0).(int64), args.Error(1)
}

// MockPeriodRepository is a mock type for the PeriodRepositoryWithTx interface
type MockPeriodRepository struct {
	mock.Mock
}

func (m *MockPeriodRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockPeriodRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockPeriodRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockPeriodRepository) FindByYear(ctx context.Context, year int) (*domain.PeriodResult, error) {
	args := m.Called(ctx, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PeriodResult), args.Error(1)
}

func (m *MockPeriodRepository) FindByYearForUpdate(ctx context.Context, tx pgx.Tx, year int) (*domain.PeriodResult, error) {
	args := m.Called(ctx, tx, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PeriodResult), args.Error(1)
}

func (m *MockPeriodRepository) SaveInTx(ctx context.Context, tx pgx.Tx, result domain.PeriodResult) error {
	args := m.Called(ctx, tx, result)
	return args.Error(0)
}

func (m *MockPeriodRepository) UpdateAmountInTx(ctx context.Context, tx pgx.Tx, periodID string, amount decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, tx, periodID, amount, userID, now)
	return args.Error(0)
}

func (m *MockPeriodRepository) MarkClosed(ctx context.Context, tx pgx.Tx, year int, userID string, now time.Time) error {
	args := m.Called(ctx, tx, year, userID, now)
	return args.Error(0)
}
