package service_test

import (
	"context"
	"time"

	"saralevents-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockBookingRepo
type MockBookingRepo struct {
	mock.Mock
}

func (m *MockBookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

// MockMilestoneRepo
type MockMilestoneRepo struct {
	mock.Mock
}

func (m *MockMilestoneRepo) GetByID(ctx context.Context, id int64) (*domain.PaymentMilestone, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentMilestone), args.Error(1)
}
func (m *MockMilestoneRepo) ListByBooking(ctx context.Context, bookingID int64) ([]domain.PaymentMilestone, error) {
	args := m.Called(ctx, bookingID)
	return args.Get(0).([]domain.PaymentMilestone), args.Error(1)
}

// MockEscrowRepo
type MockEscrowRepo struct {
	mock.Mock
}

func (m *MockEscrowRepo) RecordRelease(ctx context.Context, txn *domain.EscrowTransaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}
func (m *MockEscrowRepo) GetByMilestone(ctx context.Context, milestoneID int64) (*domain.EscrowTransaction, error) {
	args := m.Called(ctx, milestoneID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EscrowTransaction), args.Error(1)
}
func (m *MockEscrowRepo) MarkWalletCredited(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockEscrowRepo) ListUncredited(ctx context.Context, olderThan time.Time) ([]domain.EscrowTransaction, error) {
	args := m.Called(ctx, olderThan)
	return args.Get(0).([]domain.EscrowTransaction), args.Error(1)
}

// MockRefundRepo
type MockRefundRepo struct {
	mock.Mock
}

func (m *MockRefundRepo) GetByID(ctx context.Context, id int64) (*domain.Refund, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Refund), args.Error(1)
}
func (m *MockRefundRepo) Complete(ctx context.Context, refund *domain.Refund) error {
	args := m.Called(ctx, refund)
	return args.Error(0)
}
func (m *MockRefundRepo) Reject(ctx context.Context, id, adminID int64, at time.Time) error {
	args := m.Called(ctx, id, adminID, at)
	return args.Error(0)
}
func (m *MockRefundRepo) ListByStatus(ctx context.Context, status domain.RefundStatus, page, pageSize int32) ([]domain.Refund, int32, error) {
	args := m.Called(ctx, status, page, pageSize)
	return args.Get(0).([]domain.Refund), args.Get(1).(int32), args.Error(2)
}

// MockWalletRepo
type MockWalletRepo struct {
	mock.Mock
}

func (m *MockWalletRepo) GetByVendor(ctx context.Context, vendorID int64) (*domain.VendorWallet, error) {
	args := m.Called(ctx, vendorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VendorWallet), args.Error(1)
}
func (m *MockWalletRepo) Credit(ctx context.Context, credit *domain.WalletCredit) (*domain.WalletTransaction, error) {
	args := m.Called(ctx, credit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WalletTransaction), args.Error(1)
}
func (m *MockWalletRepo) ListTransactions(ctx context.Context, vendorID int64, page, pageSize int32) ([]domain.WalletTransaction, int32, error) {
	args := m.Called(ctx, vendorID, page, pageSize)
	return args.Get(0).([]domain.WalletTransaction), args.Get(1).(int32), args.Error(2)
}
func (m *MockWalletRepo) ListTransactionsAsc(ctx context.Context, walletID int64) ([]domain.WalletTransaction, error) {
	args := m.Called(ctx, walletID)
	return args.Get(0).([]domain.WalletTransaction), args.Error(1)
}
func (m *MockWalletRepo) ListVendorIDs(ctx context.Context) ([]int64, error) {
	args := m.Called(ctx)
	return args.Get(0).([]int64), args.Error(1)
}

// MockReconciliationRepo
type MockReconciliationRepo struct {
	mock.Mock
}

func (m *MockReconciliationRepo) Create(ctx context.Context, rec *domain.WalletCreditReconciliation) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}
func (m *MockReconciliationRepo) ListPending(ctx context.Context, limit int32) ([]domain.WalletCreditReconciliation, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]domain.WalletCreditReconciliation), args.Error(1)
}
func (m *MockReconciliationRepo) MarkCredited(ctx context.Context, id int64, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}
func (m *MockReconciliationRepo) RecordFailedAttempt(ctx context.Context, id int64, lastError string) error {
	args := m.Called(ctx, id, lastError)
	return args.Error(0)
}
func (m *MockReconciliationRepo) MarkAbandoned(ctx context.Context, id int64, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

// MockReconciliationSvc
type MockReconciliationSvc struct {
	mock.Mock
}

func (m *MockReconciliationSvc) Enqueue(ctx context.Context, credit *domain.WalletCredit, cause error) error {
	args := m.Called(ctx, credit, cause)
	return args.Error(0)
}
func (m *MockReconciliationSvc) RetryPending(ctx context.Context) (int, int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Int(1), args.Error(2)
}

// MockEmailSvc
type MockEmailSvc struct {
	mock.Mock
}

func (m *MockEmailSvc) SendReconciliationAlert(rec *domain.WalletCreditReconciliation) error {
	args := m.Called(rec)
	return args.Error(0)
}
func (m *MockEmailSvc) SendAuditAlert(audit *domain.WalletAudit) error {
	args := m.Called(audit)
	return args.Error(0)
}
