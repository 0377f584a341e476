package postgres_test

import (
	"context"
	"testing"
	"time"

	"saralevents-backend/internal/domain"
	"saralevents-backend/internal/repository/postgres"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestRefundRepository_Complete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewRefundRepository(db)
	ctx := context.Background()
	now := time.Now()
	adminID := int64(1)

	t.Run("Success", func(t *testing.T) {
		refund := &domain.Refund{
			ID:                  12,
			Status:              domain.RefundStatusPending,
			CustomerAmountPaise: 250000,
			CompanyAmountPaise:  12500,
			VendorAmountPaise:   237500,
			ProcessedBy:         &adminID,
			ProcessedAt:         &now,
		}

		mock.ExpectExec("UPDATE refunds").
			WithArgs(domain.RefundStatusCompleted, int64(250000), int64(12500), int64(237500),
				&adminID, &now, int64(12), domain.RefundStatusPending).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Complete(ctx, refund)
		assert.NoError(t, err)
		assert.Equal(t, domain.RefundStatusCompleted, refund.Status)
	})

	t.Run("AlreadyCompleted", func(t *testing.T) {
		refund := &domain.Refund{ID: 12, ProcessedBy: &adminID, ProcessedAt: &now}

		mock.ExpectExec("UPDATE refunds").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Complete(ctx, refund)
		assert.ErrorIs(t, err, domain.ErrStateConflict)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRefundRepository_Reject(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewRefundRepository(db)
	ctx := context.Background()
	now := time.Now()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE refunds SET status").
			WithArgs(domain.RefundStatusRejected, int64(1), now, int64(12), domain.RefundStatusPending).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Reject(ctx, 12, 1, now))
	})

	t.Run("NotPending", func(t *testing.T) {
		mock.ExpectExec("UPDATE refunds SET status").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Reject(ctx, 12, 1, now)
		assert.ErrorIs(t, err, domain.ErrStateConflict)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRefundRepository_ListByStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewRefundRepository(db)
	ctx := context.Background()
	now := time.Now()

	rows := sqlmock.NewRows([]string{
		"id", "booking_id", "vendor_id", "cancelled_by", "refund_amount_paise", "non_refundable_paise",
		"refund_percentage", "reason", "status", "customer_amount_paise", "company_amount_paise",
		"vendor_amount_paise", "processed_by", "processed_at", "created_at", "updated_at",
	}).AddRow(12, 10, 7, "customer", 250000, 250000, 0.5, "date moved", "pending", 0, 0, 0, nil, nil, now, now)

	mock.ExpectQuery("FROM refunds WHERE status").
		WithArgs(domain.RefundStatusPending, int32(20), int32(0)).
		WillReturnRows(rows)
	mock.ExpectQuery("SELECT count").
		WithArgs(domain.RefundStatusPending).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	refunds, total, err := repo.ListByStatus(ctx, domain.RefundStatusPending, 1, 20)
	assert.NoError(t, err)
	assert.Equal(t, int32(1), total)
	assert.Len(t, refunds, 1)
	assert.Nil(t, refunds[0].ProcessedBy)
	assert.Equal(t, int64(250000), refunds[0].RefundAmountPaise)
	assert.NoError(t, mock.ExpectationsWereMet())
}
