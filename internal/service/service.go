package service

import (
	"context"

	"saralevents-backend/internal/domain"
	"saralevents-backend/internal/policy"
)

type AuthService interface {
	// Login verifies the configured admin credentials and returns a signed
	// access token.
	Login(ctx context.Context, email, password string) (string, error)
}

type SettlementService interface {
	// ReleaseMilestone releases a held completion milestone: flips it to
	// released, records the escrow transaction with the commission split, and
	// credits the vendor wallet. At most one release succeeds per milestone.
	ReleaseMilestone(ctx context.Context, adminID, milestoneID int64, notes string) (*domain.EscrowTransaction, error)
	// PreviewMilestoneRelease computes the split a release would record,
	// without mutating anything.
	PreviewMilestoneRelease(ctx context.Context, milestoneID int64) (*domain.PaymentMilestone, policy.MilestoneSplit, error)
	// ReleaseRefund completes a pending refund: computes and records the
	// customer/company/vendor split and credits the vendor's forfeited share
	// to their wallet.
	ReleaseRefund(ctx context.Context, adminID, refundID int64) (*domain.Refund, error)
	// RejectRefund flips a pending refund to rejected. No money moves.
	RejectRefund(ctx context.Context, adminID, refundID int64) (*domain.Refund, error)
	// GetMilestoneEscrow fetches the escrow transaction recorded for a
	// released milestone.
	GetMilestoneEscrow(ctx context.Context, milestoneID int64) (*domain.EscrowTransaction, error)
	GetBookingSettlement(ctx context.Context, bookingID int64) (*domain.Booking, []domain.PaymentMilestone, error)
	ListRefunds(ctx context.Context, status domain.RefundStatus, page, pageSize int32) ([]domain.Refund, int32, error)
}

type WalletService interface {
	GetWallet(ctx context.Context, vendorID int64) (*domain.VendorWallet, error)
	ListTransactions(ctx context.Context, vendorID int64, page, pageSize int32) ([]domain.WalletTransaction, int32, error)
	// AuditWallet replays the wallet's transaction ledger and checks every
	// balance_after snapshot and the stored balance against the replay.
	AuditWallet(ctx context.Context, vendorID int64) (*domain.WalletAudit, error)
	AuditAllWallets(ctx context.Context) ([]domain.WalletAudit, error)
}

type ReconciliationService interface {
	// Enqueue records a failed wallet credit for scheduled retry. The entry
	// keeps the original dedup key so a retry cannot double-credit.
	Enqueue(ctx context.Context, credit *domain.WalletCredit, cause error) error
	// RetryPending re-attempts every pending reconciliation entry. Entries
	// exceeding the attempt limit are abandoned and reported to the operator.
	// Returns how many entries were credited and abandoned.
	RetryPending(ctx context.Context) (credited, abandoned int, err error)
}

type EmailService interface {
	SendReconciliationAlert(rec *domain.WalletCreditReconciliation) error
	SendAuditAlert(audit *domain.WalletAudit) error
}
