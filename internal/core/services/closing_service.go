package services

import (
	"context"
	"errors"
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

// closingService realizes journal aggregates into account balances, reverses
// that realization, and computes the yearly net result against the
// designated equity account.
type closingService struct {
	journalRepo portsrepo.JournalRepositoryWithTx
	accountRepo portsrepo.AccountRepositoryWithTx
	periodRepo  portsrepo.PeriodRepositoryWithTx

	// resultAccountNumber is the detail account receiving the yearly net result.
	resultAccountNumber string
}

// NewClosingService creates a new balance application / period closing service.
func NewClosingService(
	journalRepo portsrepo.JournalRepositoryWithTx,
	accountRepo portsrepo.AccountRepositoryWithTx,
	periodRepo portsrepo.PeriodRepositoryWithTx,
	resultAccountNumber string,
) portssvc.ClosingSvcFacade {
	return &closingService{
		journalRepo:         journalRepo,
		accountRepo:         accountRepo,
		periodRepo:          periodRepo,
		resultAccountNumber: resultAccountNumber,
	}
}

var _ portssvc.ClosingSvcFacade = (*closingService)(nil)

// ApplyBalancesUpTo walks the PENDING journal aggregates up to the given
// date and realizes each into the referenced detail account's cumulative
// balances, flipping the aggregate to POSTED. A detail number that no longer
// resolves aborts the whole pass.
func (s *closingService) ApplyBalancesUpTo(ctx context.Context, date time.Time, actorID string) (*dto.BalanceApplicationResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	// Aggregates carry day-start ledger dates, so the inclusive cutoff is the
	// target day's start.
	cutoff, _ := dayBounds(date)

	tx, err := s.journalRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.journalRepo.Rollback(ctx, tx)

	entries, err := s.journalRepo.FindPendingUpToForUpdate(ctx, tx, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to load pending aggregates: %w", err)
	}
	if len(entries) == 0 {
		return &dto.BalanceApplicationResult{UpdatedAccounts: []string{}}, nil
	}

	now := time.Now().UTC()
	journalIDs := make([]string, len(entries))
	updated := make([]string, 0, len(entries))
	seen := make(map[string]struct{})
	for i, e := range entries {
		journalIDs[i] = e.JournalID

		det, err := s.accountRepo.FindDetailByNumberForUpdate(ctx, tx, e.DetailNumber)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: %s", apperrors.ErrAccountDetailNotFound, e.DetailNumber)
			}
			return nil, fmt.Errorf("failed to lock detail account %s: %w", e.DetailNumber, err)
		}

		if err := s.accountRepo.IncrementDetailBalances(ctx, tx, det.AccountID, e.AmountCredit, e.AmountDebit, actorID, now); err != nil {
			return nil, fmt.Errorf("failed to apply balances to account %s: %w", e.DetailNumber, err)
		}
		if _, dup := seen[e.DetailNumber]; !dup {
			seen[e.DetailNumber] = struct{}{}
			updated = append(updated, e.DetailNumber)
		}
	}

	if err := s.journalRepo.UpdateStatus(ctx, tx, journalIDs, domain.Posted, actorID, now); err != nil {
		return nil, fmt.Errorf("failed to mark aggregates posted: %w", err)
	}

	if err := s.journalRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	logger.Info("Balances applied", slog.Int("aggregates", len(entries)), slog.Int("accounts", len(updated)))
	return &dto.BalanceApplicationResult{UpdatedAccounts: updated}, nil
}

// RevertBalancesFor un-applies the balances of one day's POSTED aggregates:
// it decrements each referenced account by the same totals and flips the
// aggregates back to PENDING. Closed periods block the reversal.
func (s *closingService) RevertBalancesFor(ctx context.Context, date time.Time, actorID string) (*dto.BalanceApplicationResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	dayStart, dayEnd := dayBounds(date)

	tx, err := s.journalRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.journalRepo.Rollback(ctx, tx)

	period, err := s.periodRepo.FindByYearForUpdate(ctx, tx, dayStart.Year())
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check period state: %w", err)
	}
	if period != nil && period.Closed {
		return nil, fmt.Errorf("%w: %d", apperrors.ErrPeriodClosed, dayStart.Year())
	}

	entries, err := s.journalRepo.FindPostedByDateForUpdate(ctx, tx, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to load posted aggregates: %w", err)
	}
	if len(entries) == 0 {
		return &dto.BalanceApplicationResult{UpdatedAccounts: []string{}}, nil
	}

	now := time.Now().UTC()
	journalIDs := make([]string, len(entries))
	reverted := make([]string, 0, len(entries))
	seen := make(map[string]struct{})
	for i, e := range entries {
		journalIDs[i] = e.JournalID

		det, err := s.accountRepo.FindDetailByNumberForUpdate(ctx, tx, e.DetailNumber)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: %s", apperrors.ErrAccountDetailNotFound, e.DetailNumber)
			}
			return nil, fmt.Errorf("failed to lock detail account %s: %w", e.DetailNumber, err)
		}

		if err := s.accountRepo.DecrementDetailBalances(ctx, tx, det.AccountID, e.AmountCredit, e.AmountDebit, actorID, now); err != nil {
			return nil, fmt.Errorf("failed to revert balances for account %s: %w", e.DetailNumber, err)
		}
		if _, dup := seen[e.DetailNumber]; !dup {
			seen[e.DetailNumber] = struct{}{}
			reverted = append(reverted, e.DetailNumber)
		}
	}

	if err := s.journalRepo.UpdateStatus(ctx, tx, journalIDs, domain.Pending, actorID, now); err != nil {
		return nil, fmt.Errorf("failed to mark aggregates pending: %w", err)
	}

	if err := s.journalRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	logger.Info("Balances reverted", slog.String("date", dayStart.Format("2006-01-02")), slog.Int("accounts", len(reverted)))
	return &dto.BalanceApplicationResult{UpdatedAccounts: reverted}, nil
}

// ClosePeriod computes the net result for a year across the result-group
// detail accounts and writes it to the designated equity account's
// accumulation pair. Credit-normal accounts contribute their cumulative
// credit (revenue), debit-normal their cumulative debit (expense); the
// totals are lifetime figures, not year-scoped movements.
func (s *closingService) ClosePeriod(ctx context.Context, year int, actorID string) (*dto.ClosePeriodResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	tx, err := s.periodRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.periodRepo.Rollback(ctx, tx)

	existing, err := s.periodRepo.FindByYearForUpdate(ctx, tx, year)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to load period result: %w", err)
	}
	if existing != nil && existing.Closed {
		return nil, fmt.Errorf("%w: %d", apperrors.ErrPeriodClosed, year)
	}

	details, err := s.accountRepo.ListResultDetailsInTx(ctx, tx)
	if err != nil {
		return nil, fmt.Errorf("failed to list result accounts: %w", err)
	}

	revenue := money.Zero()
	expense := money.Zero()
	for _, d := range details {
		switch d.NormalSide {
		case domain.NormalCredit:
			revenue = revenue.Add(d.AmountCredit)
		case domain.NormalDebit:
			expense = expense.Add(d.AmountDebit)
		}
	}
	netResult := money.Round(revenue.Sub(expense))

	equity, err := s.accountRepo.FindDetailByNumberForUpdate(ctx, tx, s.resultAccountNumber)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrResultAccountNotFound, s.resultAccountNumber)
		}
		return nil, fmt.Errorf("failed to lock equity account %s: %w", s.resultAccountNumber, err)
	}

	// The net result is a computed snapshot: the accumulation pair is
	// overwritten, not incremented.
	credit := money.Zero()
	debit := money.Zero()
	if netResult.Sign() >= 0 {
		credit = netResult
	} else {
		debit = netResult.Neg()
	}

	now := time.Now().UTC()
	if err := s.accountRepo.SetDetailAccumulation(ctx, tx, equity.AccountID, credit, debit, actorID, now); err != nil {
		return nil, fmt.Errorf("failed to write net result to equity account: %w", err)
	}

	operation := dto.OperationUpdated
	if existing == nil {
		operation = dto.OperationCreated
		result := domain.PeriodResult{
			PeriodID:       uuid.NewString(),
			Year:           year,
			Amount:         netResult,
			EquityDetailID: equity.AccountID,
			Closed:         false,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     actorID,
				LastUpdatedAt: now,
				LastUpdatedBy: actorID,
			},
		}
		if err := s.periodRepo.SaveInTx(ctx, tx, result); err != nil {
			return nil, fmt.Errorf("failed to save period result: %w", err)
		}
	} else {
		if err := s.periodRepo.UpdateAmountInTx(ctx, tx, existing.PeriodID, netResult, actorID, now); err != nil {
			return nil, fmt.Errorf("failed to update period result: %w", err)
		}
	}

	if err := s.periodRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	logger.Info("Period closed",
		slog.Int("year", year),
		slog.String("net_result", money.Display(netResult)),
		slog.String("operation", operation),
	)
	return &dto.ClosePeriodResult{NetResult: netResult, Operation: operation}, nil
}

// LockPeriod sets the one-way closed flag on a year's period result. Once
// set, neither the result row nor the equity account's accumulation pair may
// change again.
func (s *closingService) LockPeriod(ctx context.Context, year int, actorID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	tx, err := s.periodRepo.Begin(ctx)
	if err != nil {
		return err
	}
	defer s.periodRepo.Rollback(ctx, tx)

	existing, err := s.periodRepo.FindByYearForUpdate(ctx, tx, year)
	if err != nil {
		return fmt.Errorf("failed to load period result for %d: %w", year, err)
	}
	if existing.Closed {
		return fmt.Errorf("%w: %d", apperrors.ErrPeriodClosed, year)
	}

	now := time.Now().UTC()
	if err := s.periodRepo.MarkClosed(ctx, tx, year, actorID, now); err != nil {
		return fmt.Errorf("failed to lock period %d: %w", year, err)
	}

	if err := s.periodRepo.Commit(ctx, tx); err != nil {
		return err
	}

	logger.Info("Period locked", slog.Int("year", year), slog.String("actor", actorID))
	return nil
}
