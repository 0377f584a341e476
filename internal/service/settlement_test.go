package service_test

import (
	"context"
	"errors"
	"testing"

	"saralevents-backend/internal/domain"
	"saralevents-backend/internal/policy"
	"saralevents-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newSettlementService(
	bookings *MockBookingRepo,
	milestones *MockMilestoneRepo,
	escrow *MockEscrowRepo,
	refunds *MockRefundRepo,
	wallets *MockWalletRepo,
	recon *MockReconciliationSvc,
) service.SettlementService {
	return service.NewSettlementService(bookings, milestones, escrow, refunds, wallets, recon, policy.DefaultRates())
}

// TestSettlementService_ReleaseMilestone covers the admin release of a held
// completion milestone: a booking of INR 10,000.00 (1,000,000 paise) has a
// completion milestone of 300,000 paise; the release must record 100,000
// paise commission (10% of the booking total) and credit 200,000 paise (20%
// of the booking total) to the vendor wallet.
func TestSettlementService_ReleaseMilestone(t *testing.T) {
	ctx := context.Background()

	heldMilestone := func() *domain.PaymentMilestone {
		return &domain.PaymentMilestone{
			ID:          30,
			BookingID:   10,
			Type:        domain.MilestoneTypeCompletion,
			Percentage:  0.30,
			AmountPaise: 300000,
			Status:      domain.MilestoneStatusHeldInEscrow,
		}
	}
	booking := func() *domain.Booking {
		return &domain.Booking{ID: 10, CustomerID: 5, VendorID: 7, TotalAmountPaise: 1000000}
	}

	t.Run("Success", func(t *testing.T) {
		bookings := new(MockBookingRepo)
		milestones := new(MockMilestoneRepo)
		escrow := new(MockEscrowRepo)
		wallets := new(MockWalletRepo)
		recon := new(MockReconciliationSvc)
		svc := newSettlementService(bookings, milestones, escrow, new(MockRefundRepo), wallets, recon)

		milestones.On("GetByID", ctx, int64(30)).Return(heldMilestone(), nil)
		bookings.On("GetByID", ctx, int64(10)).Return(booking(), nil)
		escrow.On("RecordRelease", ctx, mock.AnythingOfType("*domain.EscrowTransaction")).
			Run(func(args mock.Arguments) {
				args.Get(1).(*domain.EscrowTransaction).ID = 55
			}).Return(nil)
		wallets.On("Credit", ctx, mock.MatchedBy(func(c *domain.WalletCredit) bool {
			return c.VendorID == 7 && c.AmountPaise == 200000 &&
				c.Source == domain.WalletTxnSourceMilestoneRelease && c.DedupKey != ""
		})).Return(&domain.WalletTransaction{ID: 101, BalanceAfterPaise: 200000}, nil)
		escrow.On("MarkWalletCredited", ctx, int64(55)).Return(nil)

		txn, err := svc.ReleaseMilestone(ctx, 1, 30, "verified completion photos")
		assert.NoError(t, err)
		assert.Equal(t, int64(300000), txn.GrossAmountPaise)
		assert.Equal(t, int64(100000), txn.CommissionPaise)
		assert.Equal(t, int64(200000), txn.VendorAmountPaise)
		assert.Equal(t, int64(1), txn.AdminVerifiedBy)
		assert.True(t, txn.VendorWalletCredited)
		assert.NotEmpty(t, txn.TransactionID)
		escrow.AssertExpectations(t)
		wallets.AssertExpectations(t)
	})

	t.Run("WrongMilestoneType", func(t *testing.T) {
		milestones := new(MockMilestoneRepo)
		svc := newSettlementService(new(MockBookingRepo), milestones, new(MockEscrowRepo), new(MockRefundRepo), new(MockWalletRepo), new(MockReconciliationSvc))

		ms := heldMilestone()
		ms.Type = domain.MilestoneTypeAdvance
		milestones.On("GetByID", ctx, int64(30)).Return(ms, nil)

		_, err := svc.ReleaseMilestone(ctx, 1, 30, "")
		assert.True(t, domain.IsValidation(err))
	})

	t.Run("NotHeldInEscrow", func(t *testing.T) {
		milestones := new(MockMilestoneRepo)
		svc := newSettlementService(new(MockBookingRepo), milestones, new(MockEscrowRepo), new(MockRefundRepo), new(MockWalletRepo), new(MockReconciliationSvc))

		ms := heldMilestone()
		ms.Status = domain.MilestoneStatusReleased
		milestones.On("GetByID", ctx, int64(30)).Return(ms, nil)

		_, err := svc.ReleaseMilestone(ctx, 1, 30, "")
		assert.True(t, domain.IsValidation(err))
	})

	t.Run("LostReleaseRace", func(t *testing.T) {
		bookings := new(MockBookingRepo)
		milestones := new(MockMilestoneRepo)
		escrow := new(MockEscrowRepo)
		wallets := new(MockWalletRepo)
		svc := newSettlementService(bookings, milestones, escrow, new(MockRefundRepo), wallets, new(MockReconciliationSvc))

		milestones.On("GetByID", ctx, int64(30)).Return(heldMilestone(), nil)
		bookings.On("GetByID", ctx, int64(10)).Return(booking(), nil)
		escrow.On("RecordRelease", ctx, mock.Anything).Return(domain.ErrStateConflict)

		_, err := svc.ReleaseMilestone(ctx, 1, 30, "")
		assert.True(t, domain.IsValidation(err))
		wallets.AssertNotCalled(t, "Credit", mock.Anything, mock.Anything)
	})

	t.Run("WalletCreditFailureQueuesReconciliation", func(t *testing.T) {
		bookings := new(MockBookingRepo)
		milestones := new(MockMilestoneRepo)
		escrow := new(MockEscrowRepo)
		wallets := new(MockWalletRepo)
		recon := new(MockReconciliationSvc)
		svc := newSettlementService(bookings, milestones, escrow, new(MockRefundRepo), wallets, recon)

		creditErr := errors.New("connection reset")
		milestones.On("GetByID", ctx, int64(30)).Return(heldMilestone(), nil)
		bookings.On("GetByID", ctx, int64(10)).Return(booking(), nil)
		escrow.On("RecordRelease", ctx, mock.Anything).Return(nil)
		wallets.On("Credit", ctx, mock.Anything).Return(nil, creditErr)
		recon.On("Enqueue", ctx, mock.MatchedBy(func(c *domain.WalletCredit) bool {
			return c.VendorID == 7 && c.AmountPaise == 200000
		}), creditErr).Return(nil)

		txn, err := svc.ReleaseMilestone(ctx, 1, 30, "")
		assert.True(t, domain.IsPartialFailure(err))
		assert.NotNil(t, txn)
		assert.False(t, txn.VendorWalletCredited)
		recon.AssertExpectations(t)
		escrow.AssertNotCalled(t, "MarkWalletCredited", mock.Anything, mock.Anything)
	})
}

func TestSettlementService_PreviewMilestoneRelease(t *testing.T) {
	ctx := context.Background()
	bookings := new(MockBookingRepo)
	milestones := new(MockMilestoneRepo)
	escrow := new(MockEscrowRepo)
	svc := newSettlementService(bookings, milestones, escrow, new(MockRefundRepo), new(MockWalletRepo), new(MockReconciliationSvc))

	milestones.On("GetByID", ctx, int64(30)).Return(&domain.PaymentMilestone{
		ID: 30, BookingID: 10, Type: domain.MilestoneTypeCompletion,
		AmountPaise: 300000, Status: domain.MilestoneStatusHeldInEscrow,
	}, nil)
	bookings.On("GetByID", ctx, int64(10)).Return(&domain.Booking{ID: 10, VendorID: 7, TotalAmountPaise: 1000000}, nil)

	ms, split, err := svc.PreviewMilestoneRelease(ctx, 30)
	assert.NoError(t, err)
	assert.Equal(t, int64(30), ms.ID)
	assert.Equal(t, int64(300000), split.GrossPaise)
	assert.Equal(t, int64(100000), split.CommissionPaise)
	assert.Equal(t, int64(200000), split.VendorPaise)
	escrow.AssertNotCalled(t, "RecordRelease", mock.Anything, mock.Anything)
}

func TestSettlementService_GetMilestoneEscrow(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		escrow := new(MockEscrowRepo)
		svc := newSettlementService(new(MockBookingRepo), new(MockMilestoneRepo), escrow, new(MockRefundRepo), new(MockWalletRepo), new(MockReconciliationSvc))

		escrow.On("GetByMilestone", ctx, int64(30)).Return(&domain.EscrowTransaction{
			ID: 55, MilestoneID: 30, VendorID: 7,
			GrossAmountPaise: 300000, CommissionPaise: 100000, VendorAmountPaise: 200000,
		}, nil)

		txn, err := svc.GetMilestoneEscrow(ctx, 30)
		assert.NoError(t, err)
		assert.Equal(t, int64(55), txn.ID)
		assert.Equal(t, int64(200000), txn.VendorAmountPaise)
	})

	t.Run("NotReleased", func(t *testing.T) {
		escrow := new(MockEscrowRepo)
		svc := newSettlementService(new(MockBookingRepo), new(MockMilestoneRepo), escrow, new(MockRefundRepo), new(MockWalletRepo), new(MockReconciliationSvc))

		escrow.On("GetByMilestone", ctx, int64(31)).
			Return(nil, domain.NewNotFoundError("escrow transaction for milestone", 31))

		_, err := svc.GetMilestoneEscrow(ctx, 31)
		assert.True(t, domain.IsNotFound(err))
	})
}

func TestSettlementService_ReleaseRefund(t *testing.T) {
	ctx := context.Background()

	pendingRefund := func() *domain.Refund {
		return &domain.Refund{
			ID:                 12,
			BookingID:          10,
			VendorID:           7,
			CancelledBy:        domain.CancelledByCustomer,
			RefundAmountPaise:  250000,
			NonRefundablePaise: 250000,
			RefundPercentage:   0.5,
			Status:             domain.RefundStatusPending,
		}
	}

	t.Run("Success", func(t *testing.T) {
		refunds := new(MockRefundRepo)
		wallets := new(MockWalletRepo)
		svc := newSettlementService(new(MockBookingRepo), new(MockMilestoneRepo), new(MockEscrowRepo), refunds, wallets, new(MockReconciliationSvc))

		refunds.On("GetByID", ctx, int64(12)).Return(pendingRefund(), nil)
		refunds.On("Complete", ctx, mock.MatchedBy(func(r *domain.Refund) bool {
			return r.CustomerAmountPaise == 250000 && r.CompanyAmountPaise == 12500 &&
				r.VendorAmountPaise == 237500 && r.ProcessedBy != nil && *r.ProcessedBy == 1
		})).Return(nil)
		wallets.On("Credit", ctx, mock.MatchedBy(func(c *domain.WalletCredit) bool {
			return c.VendorID == 7 && c.AmountPaise == 237500 &&
				c.Source == domain.WalletTxnSourceRefundSplit && c.DedupKey == "refund-12-vendor-share"
		})).Return(&domain.WalletTransaction{ID: 102}, nil)

		refund, err := svc.ReleaseRefund(ctx, 1, 12)
		assert.NoError(t, err)
		// customer + company + vendor must conserve refund + non-refundable
		assert.Equal(t, refund.RefundAmountPaise+refund.NonRefundablePaise,
			refund.CustomerAmountPaise+refund.CompanyAmountPaise+refund.VendorAmountPaise)
		refunds.AssertExpectations(t)
		wallets.AssertExpectations(t)
	})

	t.Run("FullRefundZeroFloor", func(t *testing.T) {
		refunds := new(MockRefundRepo)
		wallets := new(MockWalletRepo)
		svc := newSettlementService(new(MockBookingRepo), new(MockMilestoneRepo), new(MockEscrowRepo), refunds, wallets, new(MockReconciliationSvc))

		rf := pendingRefund()
		rf.RefundAmountPaise = 500000
		rf.NonRefundablePaise = 0
		refunds.On("GetByID", ctx, int64(12)).Return(rf, nil)
		refunds.On("Complete", ctx, mock.MatchedBy(func(r *domain.Refund) bool {
			return r.CustomerAmountPaise == 500000 && r.CompanyAmountPaise == 0 && r.VendorAmountPaise == 0
		})).Return(nil)

		_, err := svc.ReleaseRefund(ctx, 1, 12)
		assert.NoError(t, err)
		// nothing was forfeited, so no vendor credit happens
		wallets.AssertNotCalled(t, "Credit", mock.Anything, mock.Anything)
	})

	t.Run("AlreadyCompleted", func(t *testing.T) {
		refunds := new(MockRefundRepo)
		svc := newSettlementService(new(MockBookingRepo), new(MockMilestoneRepo), new(MockEscrowRepo), refunds, new(MockWalletRepo), new(MockReconciliationSvc))

		rf := pendingRefund()
		rf.Status = domain.RefundStatusCompleted
		refunds.On("GetByID", ctx, int64(12)).Return(rf, nil)

		_, err := svc.ReleaseRefund(ctx, 1, 12)
		assert.True(t, domain.IsValidation(err))
	})

	t.Run("CreditFailureKeepsRefundCompleted", func(t *testing.T) {
		refunds := new(MockRefundRepo)
		wallets := new(MockWalletRepo)
		recon := new(MockReconciliationSvc)
		svc := newSettlementService(new(MockBookingRepo), new(MockMilestoneRepo), new(MockEscrowRepo), refunds, wallets, recon)

		creditErr := errors.New("connection reset")
		refunds.On("GetByID", ctx, int64(12)).Return(pendingRefund(), nil)
		refunds.On("Complete", ctx, mock.Anything).Return(nil)
		wallets.On("Credit", ctx, mock.Anything).Return(nil, creditErr)
		recon.On("Enqueue", ctx, mock.Anything, creditErr).Return(nil)

		refund, err := svc.ReleaseRefund(ctx, 1, 12)
		assert.True(t, domain.IsPartialFailure(err))
		assert.Equal(t, domain.RefundStatusCompleted, refund.Status)
		recon.AssertExpectations(t)
	})
}

func TestSettlementService_RejectRefund(t *testing.T) {
	ctx := context.Background()
	refunds := new(MockRefundRepo)
	wallets := new(MockWalletRepo)
	svc := newSettlementService(new(MockBookingRepo), new(MockMilestoneRepo), new(MockEscrowRepo), refunds, wallets, new(MockReconciliationSvc))

	refunds.On("GetByID", ctx, int64(12)).Return(&domain.Refund{
		ID: 12, VendorID: 7, Status: domain.RefundStatusPending,
	}, nil)
	refunds.On("Reject", ctx, int64(12), int64(1), mock.AnythingOfType("time.Time")).Return(nil)

	refund, err := svc.RejectRefund(ctx, 1, 12)
	assert.NoError(t, err)
	assert.Equal(t, domain.RefundStatusRejected, refund.Status)
	// rejection moves no money
	wallets.AssertNotCalled(t, "Credit", mock.Anything, mock.Anything)
}

func TestSettlementService_ListRefunds(t *testing.T) {
	ctx := context.Background()
	refunds := new(MockRefundRepo)
	svc := newSettlementService(new(MockBookingRepo), new(MockMilestoneRepo), new(MockEscrowRepo), refunds, new(MockWalletRepo), new(MockReconciliationSvc))

	t.Run("UnknownStatus", func(t *testing.T) {
		_, _, err := svc.ListRefunds(ctx, "paused", 1, 20)
		assert.True(t, domain.IsValidation(err))
	})

	t.Run("DefaultsPagination", func(t *testing.T) {
		refunds.On("ListByStatus", ctx, domain.RefundStatusPending, int32(1), int32(20)).
			Return([]domain.Refund{}, int32(0), nil).Once()

		_, _, err := svc.ListRefunds(ctx, domain.RefundStatusPending, 0, 0)
		assert.NoError(t, err)
		refunds.AssertExpectations(t)
	})
}
