package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/dharmawipraja/accounting-api-sub000/internal/apperrors"
	"github.com/dharmawipraja/accounting-api-sub000/internal/core/domain"
	portssvc "github.com/dharmawipraja/accounting-api-sub000/internal/core/ports/services"
	"github.com/dharmawipraja/accounting-api-sub000/internal/core/services"
	"github.com/dharmawipraja/accounting-api-sub000/internal/dto"
)

type AccountServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	mockLedgerRepo  *MockLedgerRepository
	service         portssvc.AccountSvcFacade
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.service = services.NewAccountService(suite.mockAccountRepo, suite.mockLedgerRepo)
}

func (suite *AccountServiceTestSuite) TestCreateGeneral_Success() {
	ctx := context.Background()
	creatorUserID := uuid.NewString()
	req := dto.CreateGeneralAccountRequest{
		AccountNumber: "100",
		Name:          "Cash and equivalents",
		Category:      "ASSET",
		ReportGroup:   "BALANCE_SHEET",
		NormalSide:    "DEBIT",
	}

	suite.mockAccountRepo.On("SaveGeneral", ctx, mock.AnythingOfType("domain.GeneralAccount")).
		Run(func(args mock.Arguments) {
			account := args.Get(1).(domain.GeneralAccount)
			suite.NotEmpty(account.AccountID)
			suite.Equal("100", account.AccountNumber)
			suite.Equal(domain.CategoryAsset, account.Category)
			suite.Equal(creatorUserID, account.CreatedBy)
			suite.True(account.AmountCredit.IsZero())
			suite.True(account.AmountDebit.IsZero())
		}).Return(nil).Once()

	account, err := suite.service.CreateGeneral(ctx, req, creatorUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(account)
	suite.Equal("100", account.AccountNumber)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateDetail_ResolvesParentByNumber() {
	ctx := context.Background()
	creatorUserID := uuid.NewString()
	parent := &domain.GeneralAccount{AccountBase: domain.AccountBase{
		AccountID:     uuid.NewString(),
		AccountNumber: "100",
	}}
	req := dto.CreateDetailAccountRequest{
		AccountNumber: "100.01",
		Name:          "Petty cash",
		Category:      "ASSET",
		ReportGroup:   "BALANCE_SHEET",
		NormalSide:    "DEBIT",
		GeneralNumber: "100",
	}

	suite.mockAccountRepo.On("FindGeneralByNumber", ctx, "100").Return(parent, nil).Once()
	suite.mockAccountRepo.On("SaveDetail", ctx, mock.AnythingOfType("domain.DetailAccount")).
		Run(func(args mock.Arguments) {
			account := args.Get(1).(domain.DetailAccount)
			suite.Equal(parent.AccountID, account.GeneralID)
		}).Return(nil).Once()

	account, err := suite.service.CreateDetail(ctx, req, creatorUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(account)
	suite.Equal(parent.AccountID, account.GeneralID)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateDetail_UnknownParent() {
	ctx := context.Background()
	req := dto.CreateDetailAccountRequest{
		AccountNumber: "100.01",
		Name:          "Petty cash",
		Category:      "ASSET",
		ReportGroup:   "BALANCE_SHEET",
		NormalSide:    "DEBIT",
		GeneralNumber: "999",
	}

	suite.mockAccountRepo.On("FindGeneralByNumber", ctx, "999").
		Return(nil, apperrors.ErrNotFound).Once()

	account, err := suite.service.CreateDetail(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(account)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SaveDetail", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestUpdateGeneral_PartialFields() {
	ctx := context.Background()
	accountID := uuid.NewString()
	updaterUserID := uuid.NewString()
	existing := &domain.GeneralAccount{AccountBase: domain.AccountBase{
		AccountID:     accountID,
		AccountNumber: "100",
		Name:          "Cash",
		Category:      domain.CategoryAsset,
		NormalSide:    domain.NormalDebit,
	}}
	newName := "Cash and equivalents"

	suite.mockAccountRepo.On("FindGeneralByID", ctx, accountID).Return(existing, nil).Once()
	suite.mockAccountRepo.On("UpdateGeneral", ctx, mock.AnythingOfType("domain.GeneralAccount")).
		Run(func(args mock.Arguments) {
			account := args.Get(1).(domain.GeneralAccount)
			suite.Equal(newName, account.Name)
			suite.Equal(domain.CategoryAsset, account.Category)
			suite.Equal(updaterUserID, account.LastUpdatedBy)
		}).Return(nil).Once()

	account, err := suite.service.UpdateGeneral(ctx, accountID, dto.UpdateAccountRequest{Name: &newName}, updaterUserID)

	suite.Require().NoError(err)
	suite.Equal(newName, account.Name)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestUpdateDetail_NotFound() {
	ctx := context.Background()
	accountID := uuid.NewString()

	suite.mockAccountRepo.On("FindDetailByID", ctx, accountID).
		Return(nil, apperrors.ErrNotFound).Once()

	account, err := suite.service.UpdateDetail(ctx, accountID, dto.UpdateAccountRequest{}, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(account)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "UpdateDetail", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestDeleteGeneral_WithActiveChildrenBlocked() {
	ctx := context.Background()
	accountID := uuid.NewString()
	account := &domain.GeneralAccount{AccountBase: domain.AccountBase{
		AccountID:     accountID,
		AccountNumber: "100",
	}}

	suite.mockAccountRepo.On("FindGeneralByID", ctx, accountID).Return(account, nil).Once()
	suite.mockAccountRepo.On("CountActiveDetailsByGeneralID", ctx, accountID).Return(int64(3), nil).Once()

	err := suite.service.DeleteGeneral(ctx, accountID, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrHasDependents)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SoftDeleteGeneral", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestDeleteGeneral_Success() {
	ctx := context.Background()
	accountID := uuid.NewString()
	deleterUserID := uuid.NewString()
	account := &domain.GeneralAccount{AccountBase: domain.AccountBase{
		AccountID:     accountID,
		AccountNumber: "100",
	}}

	suite.mockAccountRepo.On("FindGeneralByID", ctx, accountID).Return(account, nil).Once()
	suite.mockAccountRepo.On("CountActiveDetailsByGeneralID", ctx, accountID).Return(int64(0), nil).Once()
	suite.mockAccountRepo.On("SoftDeleteGeneral", ctx, accountID,
		mock.MatchedBy(func(tombstone string) bool { return len(tombstone) > len("100") }),
		deleterUserID, mock.Anything).Return(nil).Once()

	err := suite.service.DeleteGeneral(ctx, accountID, deleterUserID)

	suite.Require().NoError(err)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestDeleteDetail_ReferencedByLedgerBlocked() {
	ctx := context.Background()
	accountID := uuid.NewString()
	account := &domain.DetailAccount{AccountBase: domain.AccountBase{
		AccountID:     accountID,
		AccountNumber: "100.01",
	}}

	suite.mockAccountRepo.On("FindDetailByID", ctx, accountID).Return(account, nil).Once()
	suite.mockLedgerRepo.On("CountByDetailID", ctx, accountID).Return(int64(7), nil).Once()

	err := suite.service.DeleteDetail(ctx, accountID, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrHasDependents)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SoftDeleteDetail", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestDeleteDetail_Success() {
	ctx := context.Background()
	accountID := uuid.NewString()
	deleterUserID := uuid.NewString()
	account := &domain.DetailAccount{AccountBase: domain.AccountBase{
		AccountID:     accountID,
		AccountNumber: "100.01",
	}}

	suite.mockAccountRepo.On("FindDetailByID", ctx, accountID).Return(account, nil).Once()
	suite.mockLedgerRepo.On("CountByDetailID", ctx, accountID).Return(int64(0), nil).Once()
	suite.mockAccountRepo.On("SoftDeleteDetail", ctx, accountID, mock.Anything, deleterUserID, mock.Anything).
		Return(nil).Once()

	err := suite.service.DeleteDetail(ctx, accountID, deleterUserID)

	suite.Require().NoError(err)
	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
