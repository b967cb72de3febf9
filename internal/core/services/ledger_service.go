package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dharmawipraja/accounting-api-sub000/internal/apperrors"
	"github.com/dharmawipraja/accounting-api-sub000/internal/core/domain"
	portsrepo "github.com/dharmawipraja/accounting-api-sub000/internal/core/ports/repositories"
	portssvc "github.com/dharmawipraja/accounting-api-sub000/internal/core/ports/services"
	"github.com/dharmawipraja/accounting-api-sub000/internal/dto"
	"github.com/dharmawipraja/accounting-api-sub000/internal/middleware"
	"github.com/dharmawipraja/accounting-api-sub000/internal/utils/money"
	"github.com/dharmawipraja/accounting-api-sub000/internal/utils/refnum"
)

// ledgerService provides bulk ledger intake: it validates a batch of
// proposed movement lines and persists them as one PENDING batch.
type ledgerService struct {
	ledgerRepo  portsrepo.LedgerRepositoryWithTx
	accountRepo portsrepo.AccountRepositoryWithTx
}

// NewLedgerService creates a new ledger intake service.
func NewLedgerService(ledgerRepo portsrepo.LedgerRepositoryWithTx, accountRepo portsrepo.AccountRepositoryWithTx) portssvc.LedgerSvcFacade {
	return &ledgerService{
		ledgerRepo:  ledgerRepo,
		accountRepo: accountRepo,
	}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// SubmitBatch validates a batch of proposed lines and persists them as
// PENDING. Resolution, relation checks, the double-entry balance check and
// the insert all happen inside a single transaction; any failure aborts the
// whole batch.
func (s *ledgerService) SubmitBatch(ctx context.Context, req dto.SubmitBatchRequest, actorID string) (*dto.SubmitBatchResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if len(req.Lines) < 2 {
		return nil, fmt.Errorf("%w: a batch needs at least two lines", apperrors.ErrValidation)
	}
	for i, line := range req.Lines {
		if !money.IsPositive(line.Amount) {
			return nil, fmt.Errorf("%w: line %d amount must be positive", apperrors.ErrValidation, i)
		}
		mt := domain.MovementType(line.MovementType)
		if mt != domain.Debit && mt != domain.Credit {
			return nil, fmt.Errorf("%w: line %d has unknown movement type %q", apperrors.ErrValidation, i, line.MovementType)
		}
	}

	tx, err := s.ledgerRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.ledgerRepo.Rollback(ctx, tx)

	// 1. Resolve the distinct account references.
	detailIDs := make([]string, 0, len(req.Lines))
	generalIDs := make([]string, 0, len(req.Lines))
	seenDetail := make(map[string]struct{})
	seenGeneral := make(map[string]struct{})
	for _, line := range req.Lines {
		if _, ok := seenDetail[line.DetailID]; !ok {
			seenDetail[line.DetailID] = struct{}{}
			detailIDs = append(detailIDs, line.DetailID)
		}
		if _, ok := seenGeneral[line.GeneralID]; !ok {
			seenGeneral[line.GeneralID] = struct{}{}
			generalIDs = append(generalIDs, line.GeneralID)
		}
	}

	details, err := s.accountRepo.FindDetailsByIDsInTx(ctx, tx, detailIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch detail accounts: %w", err)
	}
	generals, err := s.accountRepo.FindGeneralsByIDsInTx(ctx, tx, generalIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch general accounts: %w", err)
	}

	var missing []string
	for _, id := range detailIDs {
		if _, found := details[id]; !found {
			missing = append(missing, id)
		}
	}
	for _, id := range generalIDs {
		if _, found := generals[id]; !found {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, fmt.Errorf("%w: %s", apperrors.ErrAccountsNotFound, strings.Join(missing, ", "))
	}

	// 2. Every line's detail account must belong to the referenced general account.
	var mismatched []string
	for i, line := range req.Lines {
		if details[line.DetailID].GeneralID != line.GeneralID {
			mismatched = append(mismatched, fmt.Sprintf("line %d: detail %s is not a child of general %s", i, line.DetailID, line.GeneralID))
		}
	}
	if len(mismatched) > 0 {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrAccountRelationMismatch, strings.Join(mismatched, "; "))
	}

	// 3. Double-entry check: total debits must equal total credits.
	debitTotal := money.Zero()
	creditTotal := money.Zero()
	for _, line := range req.Lines {
		amount := money.Round(line.Amount)
		if domain.MovementType(line.MovementType) == domain.Debit {
			debitTotal = debitTotal.Add(amount)
		} else {
			creditTotal = creditTotal.Add(amount)
		}
	}
	if !money.Equal(debitTotal, creditTotal) {
		return nil, fmt.Errorf("%w: debit total is %s, credit total is %s",
			apperrors.ErrUnbalancedJournal, money.Display(debitTotal), money.Display(creditTotal))
	}

	// 4. Generate the batch reference.
	now := time.Now().UTC()
	batchRef, err := refnum.New(now)
	if err != nil {
		return nil, fmt.Errorf("failed to generate batch reference: %w", err)
	}

	// 5. Persist all lines as one PENDING batch.
	entries := make([]domain.LedgerEntry, len(req.Lines))
	for i, line := range req.Lines {
		entries[i] = domain.LedgerEntry{
			LedgerID:        uuid.NewString(),
			ReferenceNumber: batchRef,
			Amount:          money.Round(line.Amount),
			Description:     line.Description,
			DetailID:        line.DetailID,
			GeneralID:       line.GeneralID,
			MovementType:    domain.MovementType(line.MovementType),
			LedgerDate:      line.LedgerDate,
			PostingStatus:   domain.Pending,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     actorID,
				LastUpdatedAt: now,
				LastUpdatedBy: actorID,
			},
		}
	}

	if err := s.ledgerRepo.SaveBatch(ctx, tx, entries); err != nil {
		if errors.Is(err, apperrors.ErrReferenceCollision) {
			logger.Warn("Batch reference collided", slog.String("reference", batchRef))
			return nil, err
		}
		return nil, fmt.Errorf("failed to save ledger batch: %w", err)
	}

	if err := s.ledgerRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	logger.Info("Ledger batch submitted", slog.String("reference", batchRef), slog.Int("lines", len(entries)))
	return &dto.SubmitBatchResult{BatchRef: batchRef, Count: len(entries)}, nil
}

// GetBatch retrieves every line of a batch by its reference number.
func (s *ledgerService) GetBatch(ctx context.Context, referenceNumber string) ([]domain.LedgerEntry, error) {
	entries, err := s.ledgerRepo.FindByReference(ctx, referenceNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve batch %s: %w", referenceNumber, err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: batch %s", apperrors.ErrNotFound, referenceNumber)
	}
	return entries, nil
}

// DeleteBatch hard-deletes a batch. A batch is deletable only while every
// line is still PENDING; POSTED lines are never deleted.
func (s *ledgerService) DeleteBatch(ctx context.Context, referenceNumber string, actorID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	entries, err := s.ledgerRepo.FindByReference(ctx, referenceNumber)
	if err != nil {
		return fmt.Errorf("failed to retrieve batch %s: %w", referenceNumber, err)
	}
	if len(entries) == 0 {
		return fmt.Errorf("%w: batch %s", apperrors.ErrNotFound, referenceNumber)
	}
	for _, e := range entries {
		if e.PostingStatus != domain.Pending {
			return fmt.Errorf("%w: batch %s contains posted lines", apperrors.ErrConflict, referenceNumber)
		}
	}

	tx, err := s.ledgerRepo.Begin(ctx)
	if err != nil {
		return err
	}
	defer s.ledgerRepo.Rollback(ctx, tx)

	deleted, err := s.ledgerRepo.DeleteBatch(ctx, tx, referenceNumber)
	if err != nil {
		return fmt.Errorf("failed to delete batch %s: %w", referenceNumber, err)
	}
	if deleted != int64(len(entries)) {
		// A line was posted between the read and the delete; abort the whole batch.
		return fmt.Errorf("%w: batch %s changed concurrently", apperrors.ErrConflict, referenceNumber)
	}

	if err := s.ledgerRepo.Commit(ctx, tx); err != nil {
		return err
	}

	logger.Info("Ledger batch deleted", slog.String("reference", referenceNumber), slog.Int64("lines", deleted), slog.String("actor", actorID))
	return nil
}
