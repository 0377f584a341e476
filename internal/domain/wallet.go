package domain

import "time"

// VendorWallet holds a vendor's withdrawable earnings. One per vendor,
// created lazily on first credit. Invariant: balance >= pending_withdrawal >= 0.
type VendorWallet struct {
	ID                     int64     `json:"id"`
	VendorID               int64     `json:"vendor_id"`
	BalancePaise           int64     `json:"balance_paise"`
	PendingWithdrawalPaise int64     `json:"pending_withdrawal_paise"`
	TotalEarnedPaise       int64     `json:"total_earned_paise"`
	CreatedAt              time.Time `json:"created_at"`
	UpdatedAt              time.Time `json:"updated_at"`
}

type WalletTxnType string

const (
	WalletTxnTypeCredit WalletTxnType = "credit"
	WalletTxnTypeDebit  WalletTxnType = "debit"
)

type WalletTxnSource string

const (
	WalletTxnSourceMilestoneRelease WalletTxnSource = "milestone_release"
	WalletTxnSourceRefundSplit      WalletTxnSource = "refund_split"
	WalletTxnSourceWithdrawal       WalletTxnSource = "withdrawal"
	WalletTxnSourceAdjustment       WalletTxnSource = "adjustment"
)

// WalletTransaction is an append-only ledger entry. Replaying all of a
// wallet's transactions in created-order must reproduce each recorded
// BalanceAfterPaise. Rows are never updated or deleted.
type WalletTransaction struct {
	ID                  int64           `json:"id"`
	TransactionID       string          `json:"transaction_id"` // uuid
	WalletID            int64           `json:"wallet_id"`
	VendorID            int64           `json:"vendor_id"`
	Type                WalletTxnType   `json:"type"`
	Source              WalletTxnSource `json:"source"`
	AmountPaise         int64           `json:"amount_paise"`
	BalanceAfterPaise   int64           `json:"balance_after_paise"`
	BookingID           *int64          `json:"booking_id,omitempty"`
	MilestoneID         *int64          `json:"milestone_id,omitempty"`
	EscrowTransactionID *int64          `json:"escrow_transaction_id,omitempty"`
	RefundID            *int64          `json:"refund_id,omitempty"`
	DedupKey            string          `json:"dedup_key"`
	Notes               string          `json:"notes"`
	CreatedAt           time.Time       `json:"created_at"`
}

// WalletCredit is a request to credit a vendor wallet. DedupKey makes the
// credit idempotent: two credits with the same key apply at most once.
type WalletCredit struct {
	VendorID            int64
	AmountPaise         int64
	Source              WalletTxnSource
	DedupKey            string
	BookingID           *int64
	MilestoneID         *int64
	EscrowTransactionID *int64
	RefundID            *int64
	Notes               string
}

// WalletAudit is the result of replaying a wallet's transaction ledger
// against its stored balance.
type WalletAudit struct {
	VendorID              int64  `json:"vendor_id"`
	WalletID              int64  `json:"wallet_id"`
	BalancePaise          int64  `json:"balance_paise"`
	ReplayedBalancePaise  int64  `json:"replayed_balance_paise"`
	TransactionCount      int32  `json:"transaction_count"`
	Consistent            bool   `json:"consistent"`
	BrokenAtTransactionID string `json:"broken_at_transaction_id,omitempty"`
}
