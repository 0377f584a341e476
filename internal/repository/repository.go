package repository

import (
	"context"
	"time"

	"saralevents-backend/internal/domain"
)

type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
}

type MilestoneRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.PaymentMilestone, error)
	ListByBooking(ctx context.Context, bookingID int64) ([]domain.PaymentMilestone, error)
}

type EscrowRepository interface {
	// RecordRelease inserts the escrow transaction and flips the milestone
	// held_in_escrow -> released in one database transaction. Returns
	// domain.ErrStateConflict without writing anything when the milestone is
	// no longer held_in_escrow, which makes release at-most-once under
	// concurrent admins.
	RecordRelease(ctx context.Context, txn *domain.EscrowTransaction) error
	GetByMilestone(ctx context.Context, milestoneID int64) (*domain.EscrowTransaction, error)
	MarkWalletCredited(ctx context.Context, id int64) error
	// ListUncredited returns completed escrow transactions whose vendor
	// wallet credit never landed, older than the given cutoff.
	ListUncredited(ctx context.Context, olderThan time.Time) ([]domain.EscrowTransaction, error)
}

type RefundRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Refund, error)
	// Complete flips pending -> completed and populates the split amounts and
	// processed_by/processed_at in a single conditional update. Returns
	// domain.ErrStateConflict when the refund is no longer pending.
	Complete(ctx context.Context, refund *domain.Refund) error
	// Reject flips pending -> rejected. No monetary effect.
	Reject(ctx context.Context, id, adminID int64, at time.Time) error
	ListByStatus(ctx context.Context, status domain.RefundStatus, page, pageSize int32) ([]domain.Refund, int32, error)
}

type WalletRepository interface {
	GetByVendor(ctx context.Context, vendorID int64) (*domain.VendorWallet, error)
	// Credit gets or creates the vendor wallet, updates balance and
	// total_earned, and appends the wallet transaction with its balance_after
	// snapshot, all in one database transaction. A credit whose DedupKey was
	// already applied returns the existing transaction without crediting
	// again.
	Credit(ctx context.Context, credit *domain.WalletCredit) (*domain.WalletTransaction, error)
	ListTransactions(ctx context.Context, vendorID int64, page, pageSize int32) ([]domain.WalletTransaction, int32, error)
	// ListTransactionsAsc returns every transaction of a wallet in creation
	// order, for ledger replay.
	ListTransactionsAsc(ctx context.Context, walletID int64) ([]domain.WalletTransaction, error)
	ListVendorIDs(ctx context.Context) ([]int64, error)
}

type ReconciliationRepository interface {
	Create(ctx context.Context, rec *domain.WalletCreditReconciliation) error
	ListPending(ctx context.Context, limit int32) ([]domain.WalletCreditReconciliation, error)
	MarkCredited(ctx context.Context, id int64, at time.Time) error
	RecordFailedAttempt(ctx context.Context, id int64, lastError string) error
	MarkAbandoned(ctx context.Context, id int64, at time.Time) error
}
