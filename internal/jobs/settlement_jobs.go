package jobs

import (
	"context"
	"time"

	"saralevents-backend/internal/logger"
)

// RetryWalletCredits re-attempts every wallet credit queued for
// reconciliation.
func (jr *JobRunner) RetryWalletCredits() {
	jr.runWithRecovery("RetryWalletCredits", func() {
		ctx := context.Background()

		credited, abandoned, err := jr.services.Reconciliation.RetryPending(ctx)
		if err != nil {
			logger.Error("Failed to retry pending wallet credits", "error", err)
			return
		}

		logger.Info("Retried pending wallet credits", "credited", credited, "abandoned", abandoned)
	})
}

// AuditWalletLedgers replays every vendor wallet's transaction ledger and
// reports wallets whose stored balance drifted from the ledger.
func (jr *JobRunner) AuditWalletLedgers() {
	jr.runWithRecovery("AuditWalletLedgers", func() {
		ctx := context.Background()

		audits, err := jr.services.Wallet.AuditAllWallets(ctx)
		if err != nil {
			logger.Error("Failed to audit wallet ledgers", "error", err)
			return
		}

		inconsistent := 0
		for i := range audits {
			if audits[i].Consistent {
				continue
			}
			inconsistent++
			logger.Error("Wallet ledger inconsistent",
				"vendor_id", audits[i].VendorID,
				"stored_balance", audits[i].BalancePaise,
				"replayed_balance", audits[i].ReplayedBalancePaise)
			if err := jr.services.Email.SendAuditAlert(&audits[i]); err != nil {
				logger.Error("Failed to send audit alert", "vendor_id", audits[i].VendorID, "error", err)
			}
		}

		logger.Info("Audited wallet ledgers", "wallets", len(audits), "inconsistent", inconsistent)
	})
}

// ReportStaleEscrow logs escrow transactions whose vendor wallet credit
// still has not landed after the configured grace period. These need an
// operator to look at the reconciliation queue.
func (jr *JobRunner) ReportStaleEscrow() {
	jr.runWithRecovery("ReportStaleEscrow", func() {
		ctx := context.Background()

		cutoff := time.Now().UTC().Add(-time.Duration(jr.config.Settlement.StaleEscrowHours) * time.Hour)
		stale, err := jr.store.EscrowRepository.ListUncredited(ctx, cutoff)
		if err != nil {
			logger.Error("Failed to list uncredited escrow transactions", "error", err)
			return
		}

		for _, txn := range stale {
			logger.Warn("Escrow transaction released but vendor never credited",
				"escrow_transaction_id", txn.ID,
				"vendor_id", txn.VendorID,
				"vendor_amount_paise", txn.VendorAmountPaise,
				"released_at", txn.AdminVerifiedAt)
		}

		logger.Info("Checked for stale escrow transactions", "stale", len(stale))
	})
}
