package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dharmawipraja/accounting-api-sub000/internal/apperrors"
	"github.com/dharmawipraja/accounting-api-sub000/internal/core/domain"
	portsrepo "github.com/dharmawipraja/accounting-api-sub000/internal/core/ports/repositories"
	portssvc "github.com/dharmawipraja/accounting-api-sub000/internal/core/ports/services"
	"github.com/dharmawipraja/accounting-api-sub000/internal/dto"
	"github.com/dharmawipraja/accounting-api-sub000/internal/middleware"
	"github.com/dharmawipraja/accounting-api-sub000/internal/utils/money"
)

// accountService manages the two-level chart of accounts.
type accountService struct {
	accountRepo portsrepo.AccountRepositoryWithTx
	ledgerRepo  portsrepo.LedgerRepositoryWithTx
}

// NewAccountService creates a new chart-of-accounts service.
func NewAccountService(accountRepo portsrepo.AccountRepositoryWithTx, ledgerRepo portsrepo.LedgerRepositoryWithTx) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo: accountRepo,
		ledgerRepo:  ledgerRepo,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func newAccountBase(number, name, category, reportGroup, normalSide, creatorUserID string, now time.Time) domain.AccountBase {
	return domain.AccountBase{
		AccountID:         uuid.NewString(),
		AccountNumber:     number,
		Name:              name,
		Category:          domain.AccountCategory(category),
		ReportGroup:       domain.ReportGroup(reportGroup),
		NormalSide:        domain.NormalSide(normalSide),
		AmountCredit:      money.Zero(),
		AmountDebit:       money.Zero(),
		AccumulatedCredit: money.Zero(),
		AccumulatedDebit:  money.Zero(),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
}

// CreateGeneral creates a parent account with zeroed balances.
func (s *accountService) CreateGeneral(ctx context.Context, req dto.CreateGeneralAccountRequest, creatorUserID string) (*domain.GeneralAccount, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	account := domain.GeneralAccount{
		AccountBase: newAccountBase(req.AccountNumber, req.Name, req.Category, req.ReportGroup, req.NormalSide, creatorUserID, now),
	}

	if err := s.accountRepo.SaveGeneral(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to create general account %s: %w", req.AccountNumber, err)
	}

	logger.Info("General account created", slog.String("number", account.AccountNumber))
	return &account, nil
}

// CreateDetail creates a child account under the general account resolved by
// its account number.
func (s *accountService) CreateDetail(ctx context.Context, req dto.CreateDetailAccountRequest, creatorUserID string) (*domain.DetailAccount, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	parent, err := s.accountRepo.FindGeneralByNumber(ctx, req.GeneralNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve general account %s: %w", req.GeneralNumber, err)
	}

	now := time.Now().UTC()
	account := domain.DetailAccount{
		AccountBase: newAccountBase(req.AccountNumber, req.Name, req.Category, req.ReportGroup, req.NormalSide, creatorUserID, now),
		GeneralID:   parent.AccountID,
	}

	if err := s.accountRepo.SaveDetail(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to create detail account %s: %w", req.AccountNumber, err)
	}

	logger.Info("Detail account created", slog.String("number", account.AccountNumber), slog.String("general", parent.AccountNumber))
	return &account, nil
}

// GetGeneralByNumber retrieves an active general account.
func (s *accountService) GetGeneralByNumber(ctx context.Context, accountNumber string) (*domain.GeneralAccount, error) {
	account, err := s.accountRepo.FindGeneralByNumber(ctx, accountNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to get general account %s: %w", accountNumber, err)
	}
	return account, nil
}

// GetDetailByNumber retrieves an active detail account.
func (s *accountService) GetDetailByNumber(ctx context.Context, accountNumber string) (*domain.DetailAccount, error) {
	account, err := s.accountRepo.FindDetailByNumber(ctx, accountNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to get detail account %s: %w", accountNumber, err)
	}
	return account, nil
}

// ListGenerals retrieves a page of active general accounts.
func (s *accountService) ListGenerals(ctx context.Context, limit, offset int) ([]domain.GeneralAccount, error) {
	accounts, err := s.accountRepo.ListGenerals(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list general accounts: %w", err)
	}
	return accounts, nil
}

// ListDetails retrieves a page of active detail accounts.
func (s *accountService) ListDetails(ctx context.Context, limit, offset int) ([]domain.DetailAccount, error) {
	accounts, err := s.accountRepo.ListDetails(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list detail accounts: %w", err)
	}
	return accounts, nil
}

func applyAccountUpdate(base *domain.AccountBase, req dto.UpdateAccountRequest, updaterUserID string, now time.Time) {
	if req.Name != nil {
		base.Name = *req.Name
	}
	if req.Category != nil {
		base.Category = domain.AccountCategory(*req.Category)
	}
	if req.ReportGroup != nil {
		base.ReportGroup = domain.ReportGroup(*req.ReportGroup)
	}
	if req.NormalSide != nil {
		base.NormalSide = domain.NormalSide(*req.NormalSide)
	}
	base.LastUpdatedAt = now
	base.LastUpdatedBy = updaterUserID
}

// UpdateGeneral updates descriptive fields of a general account. Balances are
// never touched here.
func (s *accountService) UpdateGeneral(ctx context.Context, accountID string, req dto.UpdateAccountRequest, updaterUserID string) (*domain.GeneralAccount, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindGeneralByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to get general account %s: %w", accountID, err)
	}

	applyAccountUpdate(&account.AccountBase, req, updaterUserID, time.Now().UTC())
	if err := s.accountRepo.UpdateGeneral(ctx, *account); err != nil {
		return nil, fmt.Errorf("failed to update general account %s: %w", account.AccountNumber, err)
	}

	logger.Info("General account updated", slog.String("number", account.AccountNumber))
	return account, nil
}

// UpdateDetail updates descriptive fields of a detail account. The parent
// general account cannot be changed.
func (s *accountService) UpdateDetail(ctx context.Context, accountID string, req dto.UpdateAccountRequest, updaterUserID string) (*domain.DetailAccount, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindDetailByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to get detail account %s: %w", accountID, err)
	}

	applyAccountUpdate(&account.AccountBase, req, updaterUserID, time.Now().UTC())
	if err := s.accountRepo.UpdateDetail(ctx, *account); err != nil {
		return nil, fmt.Errorf("failed to update detail account %s: %w", account.AccountNumber, err)
	}

	logger.Info("Detail account updated", slog.String("number", account.AccountNumber))
	return account, nil
}

// tombstoneNumber frees the account number for reuse while keeping the row.
func tombstoneNumber(accountNumber string, now time.Time) string {
	return fmt.Sprintf("%s-del-%d", accountNumber, now.Unix())
}

// DeleteGeneral soft-deletes a general account. A general account with active
// detail accounts cannot be deleted.
func (s *accountService) DeleteGeneral(ctx context.Context, accountID string, deleterUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindGeneralByID(ctx, accountID)
	if err != nil {
		return fmt.Errorf("failed to get general account %s: %w", accountID, err)
	}

	children, err := s.accountRepo.CountActiveDetailsByGeneralID(ctx, accountID)
	if err != nil {
		return fmt.Errorf("failed to count detail accounts under %s: %w", account.AccountNumber, err)
	}
	if children > 0 {
		return fmt.Errorf("%w: general account %s has %d active detail accounts",
			apperrors.ErrHasDependents, account.AccountNumber, children)
	}

	now := time.Now().UTC()
	if err := s.accountRepo.SoftDeleteGeneral(ctx, accountID, tombstoneNumber(account.AccountNumber, now), deleterUserID, now); err != nil {
		return fmt.Errorf("failed to delete general account %s: %w", account.AccountNumber, err)
	}

	logger.Info("General account deleted", slog.String("number", account.AccountNumber))
	return nil
}

// DeleteDetail soft-deletes a detail account. A detail account referenced by
// any ledger line cannot be deleted.
func (s *accountService) DeleteDetail(ctx context.Context, accountID string, deleterUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindDetailByID(ctx, accountID)
	if err != nil {
		return fmt.Errorf("failed to get detail account %s: %w", accountID, err)
	}

	refs, err := s.ledgerRepo.CountByDetailID(ctx, accountID)
	if err != nil {
		return fmt.Errorf("failed to count ledger lines for %s: %w", account.AccountNumber, err)
	}
	if refs > 0 {
		return fmt.Errorf("%w: detail account %s is referenced by %d ledger lines",
			apperrors.ErrHasDependents, account.AccountNumber, refs)
	}

	now := time.Now().UTC()
	if err := s.accountRepo.SoftDeleteDetail(ctx, accountID, tombstoneNumber(account.AccountNumber, now), deleterUserID, now); err != nil {
		return fmt.Errorf("failed to delete detail account %s: %w", account.AccountNumber, err)
	}

	logger.Info("Detail account deleted", slog.String("number", account.AccountNumber))
	return nil
}
