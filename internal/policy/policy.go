// Package policy is the single source of truth for settlement split math.
// Every surface that shows or applies a commission or refund split goes
// through these functions; no other package carries rate constants.
package policy

import (
	"fmt"
	"math"

	"saralevents-backend/internal/domain"
	"saralevents-backend/internal/money"
)

// Default rates. Overridable through configuration, see config.SettlementConfig.
const (
	DefaultCommissionRate        = 0.10
	DefaultCompletionVendorShare = 0.20
	DefaultRefundCompanyShare    = 0.05
	DefaultRefundVendorShare     = 0.95

	DefaultAdvancePercent    = 0.20
	DefaultArrivalPercent    = 0.50
	DefaultCompletionPercent = 0.30
)

// Rates carries the named settlement constants.
type Rates struct {
	CommissionRate        float64
	CompletionVendorShare float64
	RefundCompanyShare    float64
	RefundVendorShare     float64
	AdvancePercent        float64
	ArrivalPercent        float64
	CompletionPercent     float64
}

func DefaultRates() Rates {
	return Rates{
		CommissionRate:        DefaultCommissionRate,
		CompletionVendorShare: DefaultCompletionVendorShare,
		RefundCompanyShare:    DefaultRefundCompanyShare,
		RefundVendorShare:     DefaultRefundVendorShare,
		AdvancePercent:        DefaultAdvancePercent,
		ArrivalPercent:        DefaultArrivalPercent,
		CompletionPercent:     DefaultCompletionPercent,
	}
}

// Validate rejects rate sets that cannot conserve money.
func (r Rates) Validate() error {
	if r.CommissionRate < 0 || r.CommissionRate > 1 {
		return fmt.Errorf("commission_rate must be within [0,1], got %v", r.CommissionRate)
	}
	if r.CompletionVendorShare < 0 || r.CompletionVendorShare > 1 {
		return fmt.Errorf("completion_vendor_share must be within [0,1], got %v", r.CompletionVendorShare)
	}
	if math.Abs(r.CommissionRate+r.CompletionVendorShare-r.CompletionPercent) > 1e-9 {
		return fmt.Errorf("commission_rate + completion_vendor_share must equal completion_percent: %v + %v != %v",
			r.CommissionRate, r.CompletionVendorShare, r.CompletionPercent)
	}
	if math.Abs(r.RefundCompanyShare+r.RefundVendorShare-1.0) > 1e-9 {
		return fmt.Errorf("refund shares must sum to 1: %v + %v", r.RefundCompanyShare, r.RefundVendorShare)
	}
	if math.Abs(r.AdvancePercent+r.ArrivalPercent+r.CompletionPercent-1.0) > 1e-9 {
		return fmt.Errorf("milestone percentages must sum to 1: %v + %v + %v",
			r.AdvancePercent, r.ArrivalPercent, r.CompletionPercent)
	}
	return nil
}

// MilestoneSplit is the outcome of releasing a completion milestone.
type MilestoneSplit struct {
	GrossPaise      int64 `json:"gross_paise"`
	CommissionPaise int64 `json:"commission_paise"`
	VendorPaise     int64 `json:"vendor_paise"`
}

// CompletionSplit computes the commission/vendor split for releasing a
// completion milestone. Both amounts are fractions of the booking TOTAL, not
// of the milestone's own share: commission = CommissionRate x total, vendor =
// CompletionVendorShare x total. Deriving vendor as gross minus commission
// would re-round the milestone amount and drift from the published
// "10% of total to company, 20% of total to vendor" split.
// Gross is the milestone's own recorded amount, carried for audit.
func (r Rates) CompletionSplit(bookingTotalPaise, milestoneAmountPaise int64) (MilestoneSplit, error) {
	if bookingTotalPaise <= 0 {
		return MilestoneSplit{}, fmt.Errorf("%w: booking total must be positive, got %d",
			domain.ErrInvariantViolation, bookingTotalPaise)
	}
	split := MilestoneSplit{
		GrossPaise:      milestoneAmountPaise,
		CommissionPaise: money.ApplyRate(bookingTotalPaise, r.CommissionRate),
		VendorPaise:     money.ApplyRate(bookingTotalPaise, r.CompletionVendorShare),
	}
	if split.CommissionPaise < 0 || split.VendorPaise < 0 || split.GrossPaise < 0 {
		return MilestoneSplit{}, fmt.Errorf("%w: negative milestone split %+v for total %d",
			domain.ErrInvariantViolation, split, bookingTotalPaise)
	}
	return split, nil
}

// RefundSplit is the three-way division of a cancellation's exposure.
type RefundSplit struct {
	CustomerPaise int64 `json:"customer_paise"`
	CompanyPaise  int64 `json:"company_paise"`
	VendorPaise   int64 `json:"vendor_paise"`
}

// ComputeRefundSplit divides a cancellation between customer, company and
// vendor. The customer receives the upstream-computed refund amount
// unchanged. When nothing was forfeited (non-refundable == 0) company and
// vendor both receive zero; this zero floor is deliberate business policy.
// Otherwise the forfeited portion is shared RefundCompanyShare /
// RefundVendorShare. The vendor side is computed as the remainder after the
// company cut so customer + company + vendor always equals
// refund + non-refundable to the paise.
func (r Rates) ComputeRefundSplit(refundPaise, nonRefundablePaise int64) (RefundSplit, error) {
	if refundPaise < 0 || nonRefundablePaise < 0 {
		return RefundSplit{}, fmt.Errorf("%w: negative refund inputs refund=%d non_refundable=%d",
			domain.ErrInvariantViolation, refundPaise, nonRefundablePaise)
	}
	split := RefundSplit{CustomerPaise: refundPaise}
	if nonRefundablePaise > 0 {
		split.CompanyPaise = money.ApplyRate(nonRefundablePaise, r.RefundCompanyShare)
		split.VendorPaise = nonRefundablePaise - split.CompanyPaise
	}
	if split.CompanyPaise < 0 || split.VendorPaise < 0 {
		return RefundSplit{}, fmt.Errorf("%w: negative refund split %+v", domain.ErrInvariantViolation, split)
	}
	return split, nil
}
