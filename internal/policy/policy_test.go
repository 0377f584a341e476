package policy

import (
	"testing"

	"saralevents-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestCompletionSplit(t *testing.T) {
	rates := DefaultRates()

	t.Run("Booking of 10,000 rupees", func(t *testing.T) {
		// completion milestone = 3,000.00 held in escrow
		split, err := rates.CompletionSplit(1000000, 300000)
		assert.NoError(t, err)
		assert.Equal(t, int64(100000), split.CommissionPaise) // 1,000.00
		assert.Equal(t, int64(200000), split.VendorPaise)     // 2,000.00
		assert.Equal(t, int64(300000), split.GrossPaise)      // 3,000.00
	})

	t.Run("Commission plus vendor consumes the completion slice", func(t *testing.T) {
		// commission (10% of T) + vendor (20% of T) == 30% of T, within one
		// paise of rounding per term
		totals := []int64{1, 99, 100, 3333, 999999, 1000000, 123456789}
		for _, total := range totals {
			split, err := rates.CompletionSplit(total, 0)
			assert.NoError(t, err)
			completionSlice := int64(float64(total) * 0.30)
			assert.InDelta(t, completionSlice, split.CommissionPaise+split.VendorPaise, 2,
				"total=%d", total)
		}
	})

	t.Run("Zero total is an invariant violation", func(t *testing.T) {
		_, err := rates.CompletionSplit(0, 0)
		assert.ErrorIs(t, err, domain.ErrInvariantViolation)
	})

	t.Run("Negative total is an invariant violation", func(t *testing.T) {
		_, err := rates.CompletionSplit(-500, 0)
		assert.ErrorIs(t, err, domain.ErrInvariantViolation)
	})
}

func TestComputeRefundSplit(t *testing.T) {
	rates := DefaultRates()

	t.Run("Cancelled too late, nothing refunded", func(t *testing.T) {
		// refund = 0, non-refundable = 5,000.00
		split, err := rates.ComputeRefundSplit(0, 500000)
		assert.NoError(t, err)
		assert.Equal(t, int64(0), split.CustomerPaise)
		assert.Equal(t, int64(25000), split.CompanyPaise)  // 250.00
		assert.Equal(t, int64(475000), split.VendorPaise)  // 4,750.00
	})

	t.Run("Full refund has a zero floor", func(t *testing.T) {
		split, err := rates.ComputeRefundSplit(800000, 0)
		assert.NoError(t, err)
		assert.Equal(t, int64(800000), split.CustomerPaise)
		assert.Equal(t, int64(0), split.CompanyPaise)
		assert.Equal(t, int64(0), split.VendorPaise)
	})

	t.Run("Conservation holds exactly for awkward amounts", func(t *testing.T) {
		cases := []struct{ refund, nonRefundable int64 }{
			{0, 1},
			{1, 1},
			{333333, 666667},
			{799999, 30},   // 5% of 30 paise rounds to 2
			{500000, 12345},
		}
		for _, c := range cases {
			split, err := rates.ComputeRefundSplit(c.refund, c.nonRefundable)
			assert.NoError(t, err)
			total := split.CustomerPaise + split.CompanyPaise + split.VendorPaise
			assert.Equal(t, c.refund+c.nonRefundable, total,
				"refund=%d non_refundable=%d", c.refund, c.nonRefundable)
		}
	})

	t.Run("Negative inputs are invariant violations", func(t *testing.T) {
		_, err := rates.ComputeRefundSplit(-1, 0)
		assert.ErrorIs(t, err, domain.ErrInvariantViolation)

		_, err = rates.ComputeRefundSplit(0, -1)
		assert.ErrorIs(t, err, domain.ErrInvariantViolation)
	})
}

func TestRatesValidate(t *testing.T) {
	t.Run("Defaults are valid", func(t *testing.T) {
		assert.NoError(t, DefaultRates().Validate())
	})

	t.Run("Refund shares must sum to one", func(t *testing.T) {
		r := DefaultRates()
		r.RefundCompanyShare = 0.15
		assert.Error(t, r.Validate())
	})

	t.Run("Commission and vendor share must consume the completion slice", func(t *testing.T) {
		r := DefaultRates()
		r.CommissionRate = 0.15 // the display-only 15% that never matched the applied math
		assert.Error(t, r.Validate())
	})

	t.Run("Milestone percentages must sum to one", func(t *testing.T) {
		r := DefaultRates()
		r.AdvancePercent = 0.25
		assert.Error(t, r.Validate())
	})
}
