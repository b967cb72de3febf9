package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dharmawipraja/accounting-api-sub000/internal/apperrors"
	"github.com/dharmawipraja/accounting-api-sub000/internal/core/domain"
	portsrepo "github.com/dharmawipraja/accounting-api-sub000/internal/core/ports/repositories"
	portssvc "github.com/dharmawipraja/accounting-api-sub000/internal/core/ports/services"
	"github.com/dharmawipraja/accounting-api-sub000/internal/dto"
	"github.com/dharmawipraja/accounting-api-sub000/internal/middleware"
	"github.com/dharmawipraja/accounting-api-sub000/internal/utils/money"
)

// postingService realizes PENDING ledger lines into per-account journal
// aggregates (posting) and reverses that transition exactly (unposting).
type postingService struct {
	ledgerRepo  portsrepo.LedgerRepositoryWithTx
	journalRepo portsrepo.JournalRepositoryWithTx
	accountRepo portsrepo.AccountRepositoryWithTx
}

// NewPostingService creates a new posting/unposting service.
func NewPostingService(
	ledgerRepo portsrepo.LedgerRepositoryWithTx,
	journalRepo portsrepo.JournalRepositoryWithTx,
	accountRepo portsrepo.AccountRepositoryWithTx,
) portssvc.PostingSvcFacade {
	return &postingService{
		ledgerRepo:  ledgerRepo,
		journalRepo: journalRepo,
		accountRepo: accountRepo,
	}
}

var _ portssvc.PostingSvcFacade = (*postingService)(nil)

// dayBounds returns the UTC half-open interval [start, end) covering the
// calendar day of the given date.
func dayBounds(date time.Time) (time.Time, time.Time) {
	d := date.UTC()
	start := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 1)
}

// PostForDate aggregates the day's PENDING ledger lines into one journal
// aggregate per detail account and flips the lines to POSTED, all inside one
// transaction. Posting is forward-only: a day at or before an already posted
// one is rejected.
func (s *postingService) PostForDate(ctx context.Context, date time.Time, actorID string) (*dto.PostingResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	dayStart, dayEnd := dayBounds(date)

	tx, err := s.ledgerRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.ledgerRepo.Rollback(ctx, tx)

	// 1. Forward-only guard: no aggregate of any status may exist on or before
	// the target day. A first run leaves the day's aggregates PENDING, so the
	// status must not be part of this check or the same day could be posted twice.
	already, err := s.journalRepo.HasOnOrBefore(ctx, tx, dayStart)
	if err != nil {
		return nil, fmt.Errorf("failed to check posted aggregates: %w", err)
	}
	if already {
		return nil, fmt.Errorf("%w: aggregates already exist on or before %s",
			apperrors.ErrAlreadyPosted, dayStart.Format("2006-01-02"))
	}

	// 2. Load the day's pending lines.
	entries, err := s.ledgerRepo.FindPendingByDateForUpdate(ctx, tx, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to load pending ledger lines: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: no pending ledger lines on %s",
			apperrors.ErrNothingToPost, dayStart.Format("2006-01-02"))
	}

	// 3. Group by detail account and sum each side separately.
	type groupTotals struct {
		debit  decimal.Decimal
		credit decimal.Decimal
	}
	groups := make(map[string]*groupTotals)
	order := make([]string, 0)
	ledgerIDs := make([]string, len(entries))
	for i, e := range entries {
		ledgerIDs[i] = e.LedgerID
		g, found := groups[e.DetailID]
		if !found {
			g = &groupTotals{debit: money.Zero(), credit: money.Zero()}
			groups[e.DetailID] = g
			order = append(order, e.DetailID)
		}
		if e.MovementType == domain.Debit {
			g.debit = g.debit.Add(e.Amount)
		} else {
			g.credit = g.credit.Add(e.Amount)
		}
	}

	// 4. Resolve account numbers for the aggregates (stored as soft FKs).
	details, err := s.accountRepo.FindDetailsByIDsInTx(ctx, tx, order)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch detail accounts: %w", err)
	}
	generalIDs := make([]string, 0, len(order))
	seenGeneral := make(map[string]struct{})
	for _, id := range order {
		det, found := details[id]
		if !found {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrAccountsNotFound, id)
		}
		if _, ok := seenGeneral[det.GeneralID]; !ok {
			seenGeneral[det.GeneralID] = struct{}{}
			generalIDs = append(generalIDs, det.GeneralID)
		}
	}
	generals, err := s.accountRepo.FindGeneralsByIDsInTx(ctx, tx, generalIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch general accounts: %w", err)
	}

	now := time.Now().UTC()
	journalEntries := make([]domain.JournalEntry, 0, len(order))
	for _, detailID := range order {
		det := details[detailID]
		gen, found := generals[det.GeneralID]
		if !found {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrAccountsNotFound, det.GeneralID)
		}
		g := groups[detailID]
		journalEntries = append(journalEntries, domain.JournalEntry{
			JournalID:     uuid.NewString(),
			DetailNumber:  det.AccountNumber,
			GeneralNumber: gen.AccountNumber,
			AmountDebit:   money.Round(g.debit),
			AmountCredit:  money.Round(g.credit),
			LedgerDate:    dayStart,
			PostingStatus: domain.Pending, // balances are applied in a later pass
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     actorID,
				LastUpdatedAt: now,
				LastUpdatedBy: actorID,
			},
		})
	}

	if err := s.journalRepo.SaveEntries(ctx, tx, journalEntries); err != nil {
		return nil, fmt.Errorf("failed to save journal aggregates: %w", err)
	}

	// 5. Flip the ledger lines to POSTED.
	if err := s.ledgerRepo.MarkPosted(ctx, tx, ledgerIDs, now, actorID); err != nil {
		return nil, fmt.Errorf("failed to mark ledger lines posted: %w", err)
	}

	if err := s.ledgerRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	logger.Info("Posting run completed",
		slog.String("date", dayStart.Format("2006-01-02")),
		slog.Int("lines", len(entries)),
		slog.Int("groups", len(journalEntries)),
	)
	return &dto.PostingResult{
		PostedCount: len(entries),
		GroupCount:  len(journalEntries),
		PostedAt:    now,
	}, nil
}

// UnpostForDate is the exact inverse of PostForDate: it flips the day's
// POSTED ledger lines back to PENDING and deletes the day's still-PENDING
// journal aggregates. Aggregates whose balances were already applied block
// the operation; they must be reverted first.
func (s *postingService) UnpostForDate(ctx context.Context, date time.Time, actorID string) (*dto.UnpostingResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	dayStart, dayEnd := dayBounds(date)

	tx, err := s.ledgerRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.ledgerRepo.Rollback(ctx, tx)

	// 1. Balances must be un-applied before ledger-level unposting.
	applied, err := s.journalRepo.HasPostedForDate(ctx, tx, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to check posted aggregates: %w", err)
	}
	if applied {
		return nil, fmt.Errorf("%w: journal aggregates for %s are posted",
			apperrors.ErrCannotUnpost, dayStart.Format("2006-01-02"))
	}

	// 2. Load the day's posted lines.
	entries, err := s.ledgerRepo.FindPostedByDateForUpdate(ctx, tx, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to load posted ledger lines: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: no posted ledger lines on %s",
			apperrors.ErrNothingToUnpost, dayStart.Format("2006-01-02"))
	}
	ledgerIDs := make([]string, len(entries))
	for i, e := range entries {
		ledgerIDs[i] = e.LedgerID
	}

	// 3. Flip back to PENDING, clearing the posting timestamp.
	now := time.Now().UTC()
	if err := s.ledgerRepo.MarkPending(ctx, tx, ledgerIDs, actorID, now); err != nil {
		return nil, fmt.Errorf("failed to mark ledger lines pending: %w", err)
	}

	// 4. Remove the day's pending aggregates (posted ones were excluded by the guard).
	deleted, err := s.journalRepo.DeletePendingByDate(ctx, tx, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to delete journal aggregates: %w", err)
	}

	if err := s.ledgerRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	logger.Info("Unposting run completed",
		slog.String("date", dayStart.Format("2006-01-02")),
		slog.Int("lines", len(entries)),
		slog.Int64("deleted_groups", deleted),
	)
	return &dto.UnpostingResult{
		UnpostedCount: len(entries),
		DeletedGroups: deleted,
		Timestamp:     now,
	}, nil
}
