package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"saralevents-backend/internal/domain"
	"saralevents-backend/internal/logger"
	"saralevents-backend/internal/policy"
	"saralevents-backend/internal/repository"

	"github.com/google/uuid"
)

type settlementService struct {
	bookingRepo       repository.BookingRepository
	milestoneRepo     repository.MilestoneRepository
	escrowRepo        repository.EscrowRepository
	refundRepo        repository.RefundRepository
	walletRepo        repository.WalletRepository
	reconciliationSvc ReconciliationService
	rates             policy.Rates
}

func NewSettlementService(
	bookingRepo repository.BookingRepository,
	milestoneRepo repository.MilestoneRepository,
	escrowRepo repository.EscrowRepository,
	refundRepo repository.RefundRepository,
	walletRepo repository.WalletRepository,
	reconciliationSvc ReconciliationService,
	rates policy.Rates,
) SettlementService {
	return &settlementService{
		bookingRepo:       bookingRepo,
		milestoneRepo:     milestoneRepo,
		escrowRepo:        escrowRepo,
		refundRepo:        refundRepo,
		walletRepo:        walletRepo,
		reconciliationSvc: reconciliationSvc,
		rates:             rates,
	}
}

func (s *settlementService) ReleaseMilestone(ctx context.Context, adminID, milestoneID int64, notes string) (*domain.EscrowTransaction, error) {
	logger.EnterMethod("settlementService.ReleaseMilestone", "adminID", adminID, "milestoneID", milestoneID)

	milestone, booking, err := s.loadCompletionMilestone(ctx, milestoneID)
	if err != nil {
		logger.ExitMethodWithError("settlementService.ReleaseMilestone", err, "milestoneID", milestoneID)
		return nil, err
	}

	split, err := s.rates.CompletionSplit(booking.TotalAmountPaise, milestone.AmountPaise)
	if err != nil {
		logger.ExitMethodWithError("settlementService.ReleaseMilestone", err, "milestoneID", milestoneID)
		return nil, err
	}

	txn := &domain.EscrowTransaction{
		TransactionID:     uuid.NewString(),
		BookingID:         booking.ID,
		MilestoneID:       milestone.ID,
		VendorID:          booking.VendorID,
		Type:              domain.EscrowTransactionTypeCommissionDeduct,
		GrossAmountPaise:  split.GrossPaise,
		CommissionPaise:   split.CommissionPaise,
		VendorAmountPaise: split.VendorPaise,
		Status:            domain.EscrowTransactionStatusCompleted,
		AdminVerifiedBy:   adminID,
		AdminVerifiedAt:   time.Now().UTC(),
		Notes:             notes,
	}

	if err := s.escrowRepo.RecordRelease(ctx, txn); err != nil {
		if errors.Is(err, domain.ErrStateConflict) {
			err = domain.NewValidationError("milestone %d is no longer held in escrow", milestoneID)
		}
		logger.ExitMethodWithError("settlementService.ReleaseMilestone", err, "milestoneID", milestoneID)
		return nil, err
	}

	credit := &domain.WalletCredit{
		VendorID:            booking.VendorID,
		AmountPaise:         split.VendorPaise,
		Source:              domain.WalletTxnSourceMilestoneRelease,
		DedupKey:            txn.TransactionID,
		BookingID:           &booking.ID,
		MilestoneID:         &milestone.ID,
		EscrowTransactionID: &txn.ID,
		Notes:               fmt.Sprintf("release of %s milestone for booking %d", milestone.Type, booking.ID),
	}
	if _, err := s.walletRepo.Credit(ctx, credit); err != nil {
		// The release is committed; the vendor is owed the credit. Queue it
		// for retry instead of failing the whole operation silently.
		if qErr := s.reconciliationSvc.Enqueue(ctx, credit, err); qErr != nil {
			logger.Error("failed to enqueue wallet credit for reconciliation",
				"vendorID", booking.VendorID, "dedupKey", credit.DedupKey, "error", qErr)
		}
		pf := &domain.PartialFailureError{Op: "ReleaseMilestone", Step: "wallet_credit", Err: err}
		logger.ExitMethodWithError("settlementService.ReleaseMilestone", pf, "milestoneID", milestoneID)
		return txn, pf
	}

	if err := s.escrowRepo.MarkWalletCredited(ctx, txn.ID); err != nil {
		// The credit itself landed; the flag only feeds the stale-escrow
		// report, so a miss here is noisy, not lossy.
		logger.Warn("failed to mark escrow transaction wallet_credited",
			"escrowTransactionID", txn.ID, "error", err)
	} else {
		txn.VendorWalletCredited = true
	}

	logger.ExitMethod("settlementService.ReleaseMilestone", "milestoneID", milestoneID,
		"escrowTransactionID", txn.ID, "commissionPaise", txn.CommissionPaise, "vendorPaise", txn.VendorAmountPaise)
	return txn, nil
}

func (s *settlementService) PreviewMilestoneRelease(ctx context.Context, milestoneID int64) (*domain.PaymentMilestone, policy.MilestoneSplit, error) {
	logger.EnterMethod("settlementService.PreviewMilestoneRelease", "milestoneID", milestoneID)

	milestone, booking, err := s.loadCompletionMilestone(ctx, milestoneID)
	if err != nil {
		logger.ExitMethodWithError("settlementService.PreviewMilestoneRelease", err, "milestoneID", milestoneID)
		return nil, policy.MilestoneSplit{}, err
	}

	split, err := s.rates.CompletionSplit(booking.TotalAmountPaise, milestone.AmountPaise)
	if err != nil {
		logger.ExitMethodWithError("settlementService.PreviewMilestoneRelease", err, "milestoneID", milestoneID)
		return nil, policy.MilestoneSplit{}, err
	}

	logger.ExitMethod("settlementService.PreviewMilestoneRelease", "milestoneID", milestoneID)
	return milestone, split, nil
}

func (s *settlementService) loadCompletionMilestone(ctx context.Context, milestoneID int64) (*domain.PaymentMilestone, *domain.Booking, error) {
	milestone, err := s.milestoneRepo.GetByID(ctx, milestoneID)
	if err != nil {
		return nil, nil, err
	}
	if milestone.Type != domain.MilestoneTypeCompletion {
		return nil, nil, domain.NewValidationError("milestone %d is a %s milestone; only completion milestones are released here",
			milestoneID, milestone.Type)
	}
	if milestone.Status != domain.MilestoneStatusHeldInEscrow {
		return nil, nil, domain.NewValidationError("milestone %d is %s, expected %s",
			milestoneID, milestone.Status, domain.MilestoneStatusHeldInEscrow)
	}

	booking, err := s.bookingRepo.GetByID(ctx, milestone.BookingID)
	if err != nil {
		return nil, nil, err
	}
	return milestone, booking, nil
}

func (s *settlementService) ReleaseRefund(ctx context.Context, adminID, refundID int64) (*domain.Refund, error) {
	logger.EnterMethod("settlementService.ReleaseRefund", "adminID", adminID, "refundID", refundID)

	refund, err := s.refundRepo.GetByID(ctx, refundID)
	if err != nil {
		logger.ExitMethodWithError("settlementService.ReleaseRefund", err, "refundID", refundID)
		return nil, err
	}
	if refund.Status != domain.RefundStatusPending {
		err := domain.NewValidationError("refund %d is %s, expected %s", refundID, refund.Status, domain.RefundStatusPending)
		logger.ExitMethodWithError("settlementService.ReleaseRefund", err, "refundID", refundID)
		return nil, err
	}

	split, err := s.rates.ComputeRefundSplit(refund.RefundAmountPaise, refund.NonRefundablePaise)
	if err != nil {
		logger.ExitMethodWithError("settlementService.ReleaseRefund", err, "refundID", refundID)
		return nil, err
	}

	now := time.Now().UTC()
	refund.CustomerAmountPaise = split.CustomerPaise
	refund.CompanyAmountPaise = split.CompanyPaise
	refund.VendorAmountPaise = split.VendorPaise
	refund.ProcessedBy = &adminID
	refund.ProcessedAt = &now

	if err := s.refundRepo.Complete(ctx, refund); err != nil {
		if errors.Is(err, domain.ErrStateConflict) {
			err = domain.NewValidationError("refund %d is no longer pending", refundID)
		}
		logger.ExitMethodWithError("settlementService.ReleaseRefund", err, "refundID", refundID)
		return nil, err
	}

	if split.VendorPaise > 0 {
		credit := &domain.WalletCredit{
			VendorID:    refund.VendorID,
			AmountPaise: split.VendorPaise,
			Source:      domain.WalletTxnSourceRefundSplit,
			DedupKey:    fmt.Sprintf("refund-%d-vendor-share", refund.ID),
			BookingID:   &refund.BookingID,
			RefundID:    &refund.ID,
			Notes:       fmt.Sprintf("vendor share of forfeited amount, booking %d", refund.BookingID),
		}
		if _, err := s.walletRepo.Credit(ctx, credit); err != nil {
			// The refund stays completed: the customer payout is already
			// authorized and must not be blocked by the vendor-side credit.
			if qErr := s.reconciliationSvc.Enqueue(ctx, credit, err); qErr != nil {
				logger.Error("failed to enqueue wallet credit for reconciliation",
					"vendorID", refund.VendorID, "dedupKey", credit.DedupKey, "error", qErr)
			}
			pf := &domain.PartialFailureError{Op: "ReleaseRefund", Step: "wallet_credit", Err: err}
			logger.ExitMethodWithError("settlementService.ReleaseRefund", pf, "refundID", refundID)
			return refund, pf
		}
	}

	logger.ExitMethod("settlementService.ReleaseRefund", "refundID", refundID,
		"customerPaise", split.CustomerPaise, "companyPaise", split.CompanyPaise, "vendorPaise", split.VendorPaise)
	return refund, nil
}

func (s *settlementService) RejectRefund(ctx context.Context, adminID, refundID int64) (*domain.Refund, error) {
	logger.EnterMethod("settlementService.RejectRefund", "adminID", adminID, "refundID", refundID)

	refund, err := s.refundRepo.GetByID(ctx, refundID)
	if err != nil {
		logger.ExitMethodWithError("settlementService.RejectRefund", err, "refundID", refundID)
		return nil, err
	}
	if refund.Status != domain.RefundStatusPending {
		err := domain.NewValidationError("refund %d is %s, expected %s", refundID, refund.Status, domain.RefundStatusPending)
		logger.ExitMethodWithError("settlementService.RejectRefund", err, "refundID", refundID)
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.refundRepo.Reject(ctx, refundID, adminID, now); err != nil {
		if errors.Is(err, domain.ErrStateConflict) {
			err = domain.NewValidationError("refund %d is no longer pending", refundID)
		}
		logger.ExitMethodWithError("settlementService.RejectRefund", err, "refundID", refundID)
		return nil, err
	}

	refund.Status = domain.RefundStatusRejected
	refund.ProcessedBy = &adminID
	refund.ProcessedAt = &now

	logger.ExitMethod("settlementService.RejectRefund", "refundID", refundID)
	return refund, nil
}

func (s *settlementService) GetMilestoneEscrow(ctx context.Context, milestoneID int64) (*domain.EscrowTransaction, error) {
	logger.EnterMethod("settlementService.GetMilestoneEscrow", "milestoneID", milestoneID)

	txn, err := s.escrowRepo.GetByMilestone(ctx, milestoneID)
	if err != nil {
		logger.ExitMethodWithError("settlementService.GetMilestoneEscrow", err, "milestoneID", milestoneID)
		return nil, err
	}

	logger.ExitMethod("settlementService.GetMilestoneEscrow", "milestoneID", milestoneID)
	return txn, nil
}

func (s *settlementService) GetBookingSettlement(ctx context.Context, bookingID int64) (*domain.Booking, []domain.PaymentMilestone, error) {
	logger.EnterMethod("settlementService.GetBookingSettlement", "bookingID", bookingID)

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		logger.ExitMethodWithError("settlementService.GetBookingSettlement", err, "bookingID", bookingID)
		return nil, nil, err
	}

	milestones, err := s.milestoneRepo.ListByBooking(ctx, bookingID)
	if err != nil {
		logger.ExitMethodWithError("settlementService.GetBookingSettlement", err, "bookingID", bookingID)
		return nil, nil, err
	}

	logger.ExitMethod("settlementService.GetBookingSettlement", "bookingID", bookingID, "milestoneCount", len(milestones))
	return booking, milestones, nil
}

func (s *settlementService) ListRefunds(ctx context.Context, status domain.RefundStatus, page, pageSize int32) ([]domain.Refund, int32, error) {
	switch status {
	case domain.RefundStatusPending, domain.RefundStatusCompleted, domain.RefundStatusRejected:
	default:
		return nil, 0, domain.NewValidationError("unknown refund status %q", status)
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.refundRepo.ListByStatus(ctx, status, page, pageSize)
}
