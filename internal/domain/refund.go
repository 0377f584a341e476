package domain

import "time"

type RefundStatus string

const (
	RefundStatusPending   RefundStatus = "pending"
	RefundStatusCompleted RefundStatus = "completed"
	RefundStatusRejected  RefundStatus = "rejected"
)

type CancelledBy string

const (
	CancelledByCustomer CancelledBy = "customer"
	CancelledByVendor   CancelledBy = "vendor"
)

// Refund is a cancellation outcome. RefundAmountPaise and
// NonRefundablePaise are computed by the upstream cancellation policy; only
// the three-way split and the pending -> completed|rejected transition happen
// here. CustomerAmountPaise/CompanyAmountPaise/VendorAmountPaise are
// populated on completion and must satisfy
// customer + company + vendor == refund_amount + non_refundable.
type Refund struct {
	ID                  int64        `json:"id"`
	BookingID           int64        `json:"booking_id"`
	VendorID            int64        `json:"vendor_id"`
	CancelledBy         CancelledBy  `json:"cancelled_by"`
	RefundAmountPaise   int64        `json:"refund_amount_paise"`
	NonRefundablePaise  int64        `json:"non_refundable_paise"`
	RefundPercentage    float64      `json:"refund_percentage"`
	Reason              string       `json:"reason"`
	Status              RefundStatus `json:"status"`
	CustomerAmountPaise int64        `json:"customer_amount_paise"`
	CompanyAmountPaise  int64        `json:"company_amount_paise"`
	VendorAmountPaise   int64        `json:"vendor_amount_paise"`
	ProcessedBy         *int64       `json:"processed_by,omitempty"`
	ProcessedAt         *time.Time   `json:"processed_at,omitempty"`
	CreatedAt           time.Time    `json:"created_at"`
	UpdatedAt           time.Time    `json:"updated_at"`
}
