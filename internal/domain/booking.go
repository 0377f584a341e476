package domain

import "time"

type BookingStatus string

const (
	BookingStatusPending    BookingStatus = "pending"
	BookingStatusConfirmed  BookingStatus = "confirmed"
	BookingStatusInProgress BookingStatus = "in_progress"
	BookingStatusCompleted  BookingStatus = "completed"
	BookingStatusCancelled  BookingStatus = "cancelled"
)

// Booking is a purchased service order. TotalAmountPaise is fixed at creation
// and is the base for all milestone and refund percentage math.
type Booking struct {
	ID               int64         `json:"id"`
	CustomerID       int64         `json:"customer_id"`
	VendorID         int64         `json:"vendor_id"`
	ServiceName      string        `json:"service_name"`
	TotalAmountPaise int64         `json:"total_amount_paise"`
	Status           BookingStatus `json:"status"`
	EventDate        *time.Time    `json:"event_date,omitempty"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
}
