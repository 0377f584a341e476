package domain

import "time"

type EscrowTransactionType string

const (
	EscrowTransactionTypeCommissionDeduct EscrowTransactionType = "commission_deduct"
)

type EscrowTransactionStatus string

const (
	EscrowTransactionStatusCompleted EscrowTransactionStatus = "completed"
)

// EscrowTransaction is the immutable audit record written at the moment a
// completion milestone is released. Exactly one exists per released
// milestone. After creation only VendorWalletCredited is ever flipped.
type EscrowTransaction struct {
	ID                   int64                   `json:"id"`
	TransactionID        string                  `json:"transaction_id"` // uuid, used as wallet-credit dedup key
	BookingID            int64                   `json:"booking_id"`
	MilestoneID          int64                   `json:"milestone_id"`
	VendorID             int64                   `json:"vendor_id"`
	Type                 EscrowTransactionType   `json:"type"`
	GrossAmountPaise     int64                   `json:"gross_amount_paise"`
	CommissionPaise      int64                   `json:"commission_paise"`
	VendorAmountPaise    int64                   `json:"vendor_amount_paise"`
	Status               EscrowTransactionStatus `json:"status"`
	AdminVerifiedBy      int64                   `json:"admin_verified_by"`
	AdminVerifiedAt      time.Time               `json:"admin_verified_at"`
	VendorWalletCredited bool                    `json:"vendor_wallet_credited"`
	Notes                string                  `json:"notes"`
	CreatedAt            time.Time               `json:"created_at"`
}
