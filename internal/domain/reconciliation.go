package domain

import "time"

type ReconciliationStatus string

const (
	ReconciliationStatusPending   ReconciliationStatus = "pending"
	ReconciliationStatusCredited  ReconciliationStatus = "credited"
	ReconciliationStatusAbandoned ReconciliationStatus = "abandoned"
)

// WalletCreditReconciliation records a vendor wallet credit that failed
// during settlement and must be retried. Retries reuse the original
// DedupKey, so a credit that actually landed before the failure was observed
// cannot apply twice.
type WalletCreditReconciliation struct {
	ID                  int64                `json:"id"`
	VendorID            int64                `json:"vendor_id"`
	AmountPaise         int64                `json:"amount_paise"`
	Source              WalletTxnSource      `json:"source"`
	DedupKey            string               `json:"dedup_key"`
	BookingID           *int64               `json:"booking_id,omitempty"`
	MilestoneID         *int64               `json:"milestone_id,omitempty"`
	EscrowTransactionID *int64               `json:"escrow_transaction_id,omitempty"`
	RefundID            *int64               `json:"refund_id,omitempty"`
	Notes               string               `json:"notes"`
	Attempts            int32                `json:"attempts"`
	LastError           string               `json:"last_error"`
	Status              ReconciliationStatus `json:"status"`
	CreatedAt           time.Time            `json:"created_at"`
	ResolvedAt          *time.Time           `json:"resolved_at,omitempty"`
}
