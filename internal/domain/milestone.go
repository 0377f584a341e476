package domain

import "time"

type MilestoneType string

const (
	MilestoneTypeAdvance    MilestoneType = "advance"
	MilestoneTypeArrival    MilestoneType = "arrival"
	MilestoneTypeCompletion MilestoneType = "completion"
)

type MilestoneStatus string

const (
	MilestoneStatusPending      MilestoneStatus = "pending"
	MilestoneStatusPaid         MilestoneStatus = "paid"
	MilestoneStatusHeldInEscrow MilestoneStatus = "held_in_escrow"
	MilestoneStatusReleased     MilestoneStatus = "released"
	MilestoneStatusRefunded     MilestoneStatus = "refunded"
)

// PaymentMilestone is one of exactly three slices of a booking's total:
// advance (20%), arrival (50%), completion (30%). AmountPaise is computed at
// creation from the booking total and is never re-derived here. Only the
// completion milestone moves to released through a manual admin action;
// advance and arrival are released by upstream fulfillment events.
type PaymentMilestone struct {
	ID               int64           `json:"id"`
	BookingID        int64           `json:"booking_id"`
	Type             MilestoneType   `json:"type"`
	Percentage       float64         `json:"percentage"`
	AmountPaise      int64           `json:"amount_paise"`
	Status           MilestoneStatus `json:"status"`
	EscrowHeldAt     *time.Time      `json:"escrow_held_at,omitempty"`
	EscrowReleasedAt *time.Time      `json:"escrow_released_at,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}
