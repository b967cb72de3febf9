package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/dharmawipraja/accounting-api-sub000/internal/apperrors"
	"github.com/dharmawipraja/accounting-api-sub000/internal/core/domain"
	portssvc "github.com/dharmawipraja/accounting-api-sub000/internal/core/ports/services"
	"github.com/dharmawipraja/accounting-api-sub000/internal/core/services"
	"github.com/dharmawipraja/accounting-api-sub000/internal/dto"
)

const testResultAccountNumber = "300.01"

type ClosingServiceTestSuite struct {
	suite.Suite
	mockJournalRepo *MockJournalRepository
	mockAccountRepo *MockAccountRepository
	mockPeriodRepo  *MockPeriodRepository
	service         portssvc.ClosingSvcFacade

	date     time.Time
	dayStart time.Time
	dayEnd   time.Time
	equity   domain.DetailAccount
}

func (suite *ClosingServiceTestSuite) SetupTest() {
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockPeriodRepo = new(MockPeriodRepository)
	suite.service = services.NewClosingService(suite.mockJournalRepo, suite.mockAccountRepo, suite.mockPeriodRepo, testResultAccountNumber)

	suite.date = time.Date(2024, 3, 15, 8, 0, 0, 0, time.UTC)
	suite.dayStart = time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	suite.dayEnd = suite.dayStart.AddDate(0, 0, 1)
	suite.equity = domain.DetailAccount{AccountBase: domain.AccountBase{
		AccountID:     uuid.NewString(),
		AccountNumber: testResultAccountNumber,
	}}
}

func (suite *ClosingServiceTestSuite) TestApplyBalancesUpTo_Success() {
	ctx := context.Background()
	actorID := uuid.NewString()
	aggregates := []domain.JournalEntry{
		{
			JournalID:     uuid.NewString(),
			DetailNumber:  "100.01",
			AmountDebit:   decimal.NewFromInt(100),
			AmountCredit:  decimal.NewFromInt(40),
			LedgerDate:    suite.dayStart,
			PostingStatus: domain.Pending,
		},
	}
	detail := domain.DetailAccount{AccountBase: domain.AccountBase{
		AccountID:     uuid.NewString(),
		AccountNumber: "100.01",
	}}

	suite.mockJournalRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockJournalRepo.On("Rollback", ctx, mock.Anything).Return(nil).Once()
	suite.mockJournalRepo.On("FindPendingUpToForUpdate", ctx, mock.Anything, suite.dayStart).
		Return(aggregates, nil).Once()
	suite.mockAccountRepo.On("FindDetailByNumberForUpdate", ctx, mock.Anything, "100.01").
		Return(&detail, nil).Once()
	suite.mockAccountRepo.On("IncrementDetailBalances", ctx, mock.Anything, detail.AccountID,
		aggregates[0].AmountCredit, aggregates[0].AmountDebit, actorID, mock.Anything).Return(nil).Once()
	suite.mockJournalRepo.On("UpdateStatus", ctx, mock.Anything, []string{aggregates[0].JournalID}, domain.Posted, actorID, mock.Anything).
		Return(nil).Once()
	suite.mockJournalRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()

	result, err := suite.service.ApplyBalancesUpTo(ctx, suite.date, actorID)

	suite.Require().NoError(err)
	suite.Require().NotNil(result)
	suite.Equal([]string{"100.01"}, result.UpdatedAccounts)
	suite.mockJournalRepo.AssertExpectations(suite.T())
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *ClosingServiceTestSuite) TestApplyBalancesUpTo_EmptyIsFine() {
	ctx := context.Background()

	suite.mockJournalRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockJournalRepo.On("Rollback", ctx, mock.Anything).Return(nil).Once()
	suite.mockJournalRepo.On("FindPendingUpToForUpdate", ctx, mock.Anything, suite.dayStart).
		Return([]domain.JournalEntry{}, nil).Once()

	result, err := suite.service.ApplyBalancesUpTo(ctx, suite.date, uuid.NewString())

	suite.Require().NoError(err)
	suite.Require().NotNil(result)
	suite.Empty(result.UpdatedAccounts)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ClosingServiceTestSuite) TestApplyBalancesUpTo_MissingAccountAborts() {
	ctx := context.Background()
	aggregates := []domain.JournalEntry{
		{JournalID: uuid.NewString(), DetailNumber: "gone", PostingStatus: domain.Pending},
	}

	suite.mockJournalRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockJournalRepo.On("Rollback", ctx, mock.Anything).Return(nil).Once()
	suite.mockJournalRepo.On("FindPendingUpToForUpdate", ctx, mock.Anything, suite.dayStart).
		Return(aggregates, nil).Once()
	suite.mockAccountRepo.On("FindDetailByNumberForUpdate", ctx, mock.Anything, "gone").
		Return(nil, apperrors.ErrNotFound).Once()

	result, err := suite.service.ApplyBalancesUpTo(ctx, suite.date, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrAccountDetailNotFound)
	suite.Contains(err.Error(), "gone")
	suite.Nil(result)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "Commit", mock.Anything, mock.Anything)
}

func (suite *ClosingServiceTestSuite) TestRevertBalancesFor_Success() {
	ctx := context.Background()
	actorID := uuid.NewString()
	aggregates := []domain.JournalEntry{
		{
			JournalID:     uuid.NewString(),
			DetailNumber:  "100.01",
			AmountDebit:   decimal.NewFromInt(100),
			AmountCredit:  decimal.NewFromInt(40),
			LedgerDate:    suite.dayStart,
			PostingStatus: domain.Posted,
		},
	}
	detail := domain.DetailAccount{AccountBase: domain.AccountBase{
		AccountID:     uuid.NewString(),
		AccountNumber: "100.01",
	}}

	suite.mockJournalRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockJournalRepo.On("Rollback", ctx, mock.Anything).Return(nil).Once()
	suite.mockPeriodRepo.On("FindByYearForUpdate", ctx, mock.Anything, 2024).
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockJournalRepo.On("FindPostedByDateForUpdate", ctx, mock.Anything, suite.dayStart, suite.dayEnd).
		Return(aggregates, nil).Once()
	suite.mockAccountRepo.On("FindDetailByNumberForUpdate", ctx, mock.Anything, "100.01").
		Return(&detail, nil).Once()
	suite.mockAccountRepo.On("DecrementDetailBalances", ctx, mock.Anything, detail.AccountID,
		aggregates[0].AmountCredit, aggregates[0].AmountDebit, actorID, mock.Anything).Return(nil).Once()
	suite.mockJournalRepo.On("UpdateStatus", ctx, mock.Anything, []string{aggregates[0].JournalID}, domain.Pending, actorID, mock.Anything).
		Return(nil).Once()
	suite.mockJournalRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()

	result, err := suite.service.RevertBalancesFor(ctx, suite.date, actorID)

	suite.Require().NoError(err)
	suite.Require().NotNil(result)
	suite.Equal([]string{"100.01"}, result.UpdatedAccounts)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *ClosingServiceTestSuite) TestRevertBalancesFor_ClosedPeriodBlocks() {
	ctx := context.Background()
	closed := &domain.PeriodResult{PeriodID: uuid.NewString(), Year: 2024, Closed: true}

	suite.mockJournalRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockJournalRepo.On("Rollback", ctx, mock.Anything).Return(nil).Once()
	suite.mockPeriodRepo.On("FindByYearForUpdate", ctx, mock.Anything, 2024).Return(closed, nil).Once()

	result, err := suite.service.RevertBalancesFor(ctx, suite.date, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrPeriodClosed)
	suite.Nil(result)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "FindPostedByDateForUpdate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ClosingServiceTestSuite) resultAccounts() []domain.DetailAccount {
	return []domain.DetailAccount{
		{AccountBase: domain.AccountBase{
			AccountID:     uuid.NewString(),
			AccountNumber: "400.01",
			NormalSide:    domain.NormalCredit,
			AmountCredit:  decimal.NewFromInt(500),
			AmountDebit:   decimal.NewFromInt(20),
		}},
		{AccountBase: domain.AccountBase{
			AccountID:     uuid.NewString(),
			AccountNumber: "500.01",
			NormalSide:    domain.NormalDebit,
			AmountCredit:  decimal.NewFromInt(5),
			AmountDebit:   decimal.NewFromInt(300),
		}},
	}
}

func (suite *ClosingServiceTestSuite) TestClosePeriod_CreatesResult() {
	ctx := context.Background()
	actorID := uuid.NewString()

	suite.mockPeriodRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockPeriodRepo.On("Rollback", ctx, mock.Anything).Return(nil).Once()
	suite.mockPeriodRepo.On("FindByYearForUpdate", ctx, mock.Anything, 2024).
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockAccountRepo.On("ListResultDetailsInTx", ctx, mock.Anything).
		Return(suite.resultAccounts(), nil).Once()
	suite.mockAccountRepo.On("FindDetailByNumberForUpdate", ctx, mock.Anything, testResultAccountNumber).
		Return(&suite.equity, nil).Once()
	// Net result 500 - 300 = 200, positive, lands on the credit side.
	suite.mockAccountRepo.On("SetDetailAccumulation", ctx, mock.Anything, suite.equity.AccountID,
		mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(decimal.NewFromInt(200)) }),
		mock.MatchedBy(func(d decimal.Decimal) bool { return d.IsZero() }),
		actorID, mock.Anything).Return(nil).Once()
	suite.mockPeriodRepo.On("SaveInTx", ctx, mock.Anything, mock.AnythingOfType("domain.PeriodResult")).
		Run(func(args mock.Arguments) {
			result := args.Get(2).(domain.PeriodResult)
			suite.Equal(2024, result.Year)
			suite.True(result.Amount.Equal(decimal.NewFromInt(200)))
			suite.False(result.Closed)
			suite.Equal(suite.equity.AccountID, result.EquityDetailID)
		}).Return(nil).Once()
	suite.mockPeriodRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()

	result, err := suite.service.ClosePeriod(ctx, 2024, actorID)

	suite.Require().NoError(err)
	suite.Require().NotNil(result)
	suite.True(result.NetResult.Equal(decimal.NewFromInt(200)))
	suite.Equal(dto.OperationCreated, result.Operation)
	suite.mockPeriodRepo.AssertExpectations(suite.T())
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *ClosingServiceTestSuite) TestClosePeriod_UpdatesExistingResult() {
	ctx := context.Background()
	actorID := uuid.NewString()
	existing := &domain.PeriodResult{PeriodID: uuid.NewString(), Year: 2024, Closed: false}

	suite.mockPeriodRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockPeriodRepo.On("Rollback", ctx, mock.Anything).Return(nil).Once()
	suite.mockPeriodRepo.On("FindByYearForUpdate", ctx, mock.Anything, 2024).Return(existing, nil).Once()
	suite.mockAccountRepo.On("ListResultDetailsInTx", ctx, mock.Anything).
		Return(suite.resultAccounts(), nil).Once()
	suite.mockAccountRepo.On("FindDetailByNumberForUpdate", ctx, mock.Anything, testResultAccountNumber).
		Return(&suite.equity, nil).Once()
	suite.mockAccountRepo.On("SetDetailAccumulation", ctx, mock.Anything, suite.equity.AccountID,
		mock.Anything, mock.Anything, actorID, mock.Anything).Return(nil).Once()
	suite.mockPeriodRepo.On("UpdateAmountInTx", ctx, mock.Anything, existing.PeriodID,
		mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(decimal.NewFromInt(200)) }),
		actorID, mock.Anything).Return(nil).Once()
	suite.mockPeriodRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()

	result, err := suite.service.ClosePeriod(ctx, 2024, actorID)

	suite.Require().NoError(err)
	suite.Equal(dto.OperationUpdated, result.Operation)
	suite.mockPeriodRepo.AssertExpectations(suite.T())
}

func (suite *ClosingServiceTestSuite) TestClosePeriod_NegativeNetResultLandsOnDebitSide() {
	ctx := context.Background()
	actorID := uuid.NewString()
	accounts := []domain.DetailAccount{
		{AccountBase: domain.AccountBase{
			AccountID:     uuid.NewString(),
			AccountNumber: "500.01",
			NormalSide:    domain.NormalDebit,
			AmountDebit:   decimal.NewFromInt(300),
		}},
	}

	suite.mockPeriodRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockPeriodRepo.On("Rollback", ctx, mock.Anything).Return(nil).Once()
	suite.mockPeriodRepo.On("FindByYearForUpdate", ctx, mock.Anything, 2024).
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockAccountRepo.On("ListResultDetailsInTx", ctx, mock.Anything).Return(accounts, nil).Once()
	suite.mockAccountRepo.On("FindDetailByNumberForUpdate", ctx, mock.Anything, testResultAccountNumber).
		Return(&suite.equity, nil).Once()
	suite.mockAccountRepo.On("SetDetailAccumulation", ctx, mock.Anything, suite.equity.AccountID,
		mock.MatchedBy(func(d decimal.Decimal) bool { return d.IsZero() }),
		mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(decimal.NewFromInt(300)) }),
		actorID, mock.Anything).Return(nil).Once()
	suite.mockPeriodRepo.On("SaveInTx", ctx, mock.Anything, mock.Anything).Return(nil).Once()
	suite.mockPeriodRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()

	result, err := suite.service.ClosePeriod(ctx, 2024, actorID)

	suite.Require().NoError(err)
	suite.True(result.NetResult.Equal(decimal.NewFromInt(-300)))
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *ClosingServiceTestSuite) TestClosePeriod_ClosedBlocks() {
	ctx := context.Background()
	closed := &domain.PeriodResult{PeriodID: uuid.NewString(), Year: 2024, Closed: true}

	suite.mockPeriodRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockPeriodRepo.On("Rollback", ctx, mock.Anything).Return(nil).Once()
	suite.mockPeriodRepo.On("FindByYearForUpdate", ctx, mock.Anything, 2024).Return(closed, nil).Once()

	result, err := suite.service.ClosePeriod(ctx, 2024, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrPeriodClosed)
	suite.Nil(result)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "ListResultDetailsInTx", mock.Anything, mock.Anything)
}

func (suite *ClosingServiceTestSuite) TestClosePeriod_MissingEquityAccount() {
	ctx := context.Background()

	suite.mockPeriodRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockPeriodRepo.On("Rollback", ctx, mock.Anything).Return(nil).Once()
	suite.mockPeriodRepo.On("FindByYearForUpdate", ctx, mock.Anything, 2024).
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockAccountRepo.On("ListResultDetailsInTx", ctx, mock.Anything).
		Return(suite.resultAccounts(), nil).Once()
	suite.mockAccountRepo.On("FindDetailByNumberForUpdate", ctx, mock.Anything, testResultAccountNumber).
		Return(nil, apperrors.ErrNotFound).Once()

	result, err := suite.service.ClosePeriod(ctx, 2024, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrResultAccountNotFound)
	suite.Nil(result)
	suite.mockPeriodRepo.AssertNotCalled(suite.T(), "SaveInTx", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ClosingServiceTestSuite) TestLockPeriod_Success() {
	ctx := context.Background()
	actorID := uuid.NewString()
	existing := &domain.PeriodResult{PeriodID: uuid.NewString(), Year: 2024, Closed: false}

	suite.mockPeriodRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockPeriodRepo.On("Rollback", ctx, mock.Anything).Return(nil).Once()
	suite.mockPeriodRepo.On("FindByYearForUpdate", ctx, mock.Anything, 2024).Return(existing, nil).Once()
	suite.mockPeriodRepo.On("MarkClosed", ctx, mock.Anything, 2024, actorID, mock.Anything).Return(nil).Once()
	suite.mockPeriodRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()

	err := suite.service.LockPeriod(ctx, 2024, actorID)

	suite.Require().NoError(err)
	suite.mockPeriodRepo.AssertExpectations(suite.T())
}

func (suite *ClosingServiceTestSuite) TestLockPeriod_AlreadyClosed() {
	ctx := context.Background()
	closed := &domain.PeriodResult{PeriodID: uuid.NewString(), Year: 2024, Closed: true}

	suite.mockPeriodRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockPeriodRepo.On("Rollback", ctx, mock.Anything).Return(nil).Once()
	suite.mockPeriodRepo.On("FindByYearForUpdate", ctx, mock.Anything, 2024).Return(closed, nil).Once()

	err := suite.service.LockPeriod(ctx, 2024, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrPeriodClosed)
	suite.mockPeriodRepo.AssertNotCalled(suite.T(), "MarkClosed", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ClosingServiceTestSuite) TestLockPeriod_NotFound() {
	ctx := context.Background()

	suite.mockPeriodRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockPeriodRepo.On("Rollback", ctx, mock.Anything).Return(nil).Once()
	suite.mockPeriodRepo.On("FindByYearForUpdate", ctx, mock.Anything, 2030).
		Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.LockPeriod(ctx, 2030, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestClosingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ClosingServiceTestSuite))
}
