package service

import (
	"context"

	"saralevents-backend/internal/domain"
	"saralevents-backend/internal/logger"
	"saralevents-backend/internal/repository"
)

type walletService struct {
	walletRepo repository.WalletRepository
}

func NewWalletService(walletRepo repository.WalletRepository) WalletService {
	return &walletService{walletRepo: walletRepo}
}

func (s *walletService) GetWallet(ctx context.Context, vendorID int64) (*domain.VendorWallet, error) {
	return s.walletRepo.GetByVendor(ctx, vendorID)
}

func (s *walletService) ListTransactions(ctx context.Context, vendorID int64, page, pageSize int32) ([]domain.WalletTransaction, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.walletRepo.ListTransactions(ctx, vendorID, page, pageSize)
}

func (s *walletService) AuditWallet(ctx context.Context, vendorID int64) (*domain.WalletAudit, error) {
	logger.EnterMethod("walletService.AuditWallet", "vendorID", vendorID)

	wallet, err := s.walletRepo.GetByVendor(ctx, vendorID)
	if err != nil {
		logger.ExitMethodWithError("walletService.AuditWallet", err, "vendorID", vendorID)
		return nil, err
	}

	txns, err := s.walletRepo.ListTransactionsAsc(ctx, wallet.ID)
	if err != nil {
		logger.ExitMethodWithError("walletService.AuditWallet", err, "vendorID", vendorID)
		return nil, err
	}

	audit := &domain.WalletAudit{
		VendorID:         vendorID,
		WalletID:         wallet.ID,
		BalancePaise:     wallet.BalancePaise,
		TransactionCount: int32(len(txns)),
		Consistent:       true,
	}

	// Walk the ledger: each balance_after snapshot must equal the previous
	// snapshot adjusted by the entry's amount, and the final snapshot must
	// match the stored wallet balance. Only the first broken link is
	// recorded; later entries are checked against their own predecessor.
	var running int64
	for _, txn := range txns {
		switch txn.Type {
		case domain.WalletTxnTypeCredit:
			running += txn.AmountPaise
		case domain.WalletTxnTypeDebit:
			running -= txn.AmountPaise
		}
		if txn.BalanceAfterPaise != running && audit.Consistent {
			audit.Consistent = false
			audit.BrokenAtTransactionID = txn.TransactionID
		}
		running = txn.BalanceAfterPaise
	}
	audit.ReplayedBalancePaise = running
	if running != wallet.BalancePaise {
		audit.Consistent = false
	}

	logger.ExitMethod("walletService.AuditWallet", "vendorID", vendorID, "consistent", audit.Consistent)
	return audit, nil
}

func (s *walletService) AuditAllWallets(ctx context.Context) ([]domain.WalletAudit, error) {
	logger.EnterMethod("walletService.AuditAllWallets")

	vendorIDs, err := s.walletRepo.ListVendorIDs(ctx)
	if err != nil {
		logger.ExitMethodWithError("walletService.AuditAllWallets", err)
		return nil, err
	}

	audits := make([]domain.WalletAudit, 0, len(vendorIDs))
	for _, vendorID := range vendorIDs {
		audit, err := s.AuditWallet(ctx, vendorID)
		if err != nil {
			logger.Error("wallet audit failed", "vendorID", vendorID, "error", err)
			continue
		}
		audits = append(audits, *audit)
	}

	logger.ExitMethod("walletService.AuditAllWallets", "walletCount", len(audits))
	return audits, nil
}
