package service

import (
	"context"
	"time"

	"saralevents-backend/internal/domain"
	"saralevents-backend/internal/logger"
	"saralevents-backend/internal/repository"
)

type reconciliationService struct {
	reconciliationRepo repository.ReconciliationRepository
	walletRepo         repository.WalletRepository
	escrowRepo         repository.EscrowRepository
	emailSvc           EmailService
	maxAttempts        int
	batchSize          int32
}

func NewReconciliationService(
	reconciliationRepo repository.ReconciliationRepository,
	walletRepo repository.WalletRepository,
	escrowRepo repository.EscrowRepository,
	emailSvc EmailService,
	maxAttempts int,
) ReconciliationService {
	return &reconciliationService{
		reconciliationRepo: reconciliationRepo,
		walletRepo:         walletRepo,
		escrowRepo:         escrowRepo,
		emailSvc:           emailSvc,
		maxAttempts:        maxAttempts,
		batchSize:          100,
	}
}

func (s *reconciliationService) Enqueue(ctx context.Context, credit *domain.WalletCredit, cause error) error {
	logger.EnterMethod("reconciliationService.Enqueue", "vendorID", credit.VendorID, "dedupKey", credit.DedupKey)

	rec := &domain.WalletCreditReconciliation{
		VendorID:            credit.VendorID,
		AmountPaise:         credit.AmountPaise,
		Source:              credit.Source,
		DedupKey:            credit.DedupKey,
		BookingID:           credit.BookingID,
		MilestoneID:         credit.MilestoneID,
		EscrowTransactionID: credit.EscrowTransactionID,
		RefundID:            credit.RefundID,
		Notes:               credit.Notes,
		Attempts:            1,
		LastError:           cause.Error(),
		Status:              domain.ReconciliationStatusPending,
	}
	if err := s.reconciliationRepo.Create(ctx, rec); err != nil {
		logger.ExitMethodWithError("reconciliationService.Enqueue", err, "dedupKey", credit.DedupKey)
		return err
	}

	logger.ExitMethod("reconciliationService.Enqueue", "reconciliationID", rec.ID)
	return nil
}

func (s *reconciliationService) RetryPending(ctx context.Context) (int, int, error) {
	logger.EnterMethod("reconciliationService.RetryPending")

	pending, err := s.reconciliationRepo.ListPending(ctx, s.batchSize)
	if err != nil {
		logger.ExitMethodWithError("reconciliationService.RetryPending", err)
		return 0, 0, err
	}

	var credited, abandoned int
	for _, rec := range pending {
		credit := &domain.WalletCredit{
			VendorID:            rec.VendorID,
			AmountPaise:         rec.AmountPaise,
			Source:              rec.Source,
			DedupKey:            rec.DedupKey,
			BookingID:           rec.BookingID,
			MilestoneID:         rec.MilestoneID,
			EscrowTransactionID: rec.EscrowTransactionID,
			RefundID:            rec.RefundID,
			Notes:               rec.Notes,
		}

		if _, err := s.walletRepo.Credit(ctx, credit); err != nil {
			if recErr := s.reconciliationRepo.RecordFailedAttempt(ctx, rec.ID, err.Error()); recErr != nil {
				logger.Error("failed to record reconciliation attempt", "reconciliationID", rec.ID, "error", recErr)
				continue
			}
			rec.Attempts++
			rec.LastError = err.Error()
			if int(rec.Attempts) >= s.maxAttempts {
				s.abandon(ctx, &rec)
				abandoned++
			}
			continue
		}

		if err := s.reconciliationRepo.MarkCredited(ctx, rec.ID, time.Now().UTC()); err != nil {
			// The credit is idempotent, so the next run just hits the dedup
			// key and retries this mark.
			logger.Error("failed to mark reconciliation credited", "reconciliationID", rec.ID, "error", err)
			continue
		}
		if rec.EscrowTransactionID != nil {
			if err := s.escrowRepo.MarkWalletCredited(ctx, *rec.EscrowTransactionID); err != nil {
				logger.Warn("failed to mark escrow transaction wallet_credited",
					"escrowTransactionID", *rec.EscrowTransactionID, "error", err)
			}
		}
		credited++
	}

	logger.ExitMethod("reconciliationService.RetryPending",
		"pending", len(pending), "credited", credited, "abandoned", abandoned)
	return credited, abandoned, nil
}

func (s *reconciliationService) abandon(ctx context.Context, rec *domain.WalletCreditReconciliation) {
	if err := s.reconciliationRepo.MarkAbandoned(ctx, rec.ID, time.Now().UTC()); err != nil {
		logger.Error("failed to abandon reconciliation entry", "reconciliationID", rec.ID, "error", err)
		return
	}
	rec.Status = domain.ReconciliationStatusAbandoned
	if err := s.emailSvc.SendReconciliationAlert(rec); err != nil {
		logger.Error("failed to send reconciliation alert", "reconciliationID", rec.ID, "error", err)
	}
}
