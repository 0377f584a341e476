package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"saralevents-backend/internal/domain"
	"saralevents-backend/internal/logger"
	"saralevents-backend/internal/repository"
)

type refundRepository struct {
	db *sql.DB
}

func NewRefundRepository(db *sql.DB) repository.RefundRepository {
	return &refundRepository{db: db}
}

const refundColumns = `id, booking_id, vendor_id, cancelled_by, refund_amount_paise, non_refundable_paise, refund_percentage, COALESCE(reason, ''), status, customer_amount_paise, company_amount_paise, vendor_amount_paise, processed_by, processed_at, created_at, updated_at`

func scanRefund(row interface{ Scan(...any) error }) (*domain.Refund, error) {
	var rf domain.Refund
	var processedBy sql.NullInt64
	var processedAt sql.NullTime
	err := row.Scan(
		&rf.ID, &rf.BookingID, &rf.VendorID, &rf.CancelledBy, &rf.RefundAmountPaise,
		&rf.NonRefundablePaise, &rf.RefundPercentage, &rf.Reason, &rf.Status,
		&rf.CustomerAmountPaise, &rf.CompanyAmountPaise, &rf.VendorAmountPaise,
		&processedBy, &processedAt, &rf.CreatedAt, &rf.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if processedBy.Valid {
		rf.ProcessedBy = &processedBy.Int64
	}
	if processedAt.Valid {
		rf.ProcessedAt = &processedAt.Time
	}
	return &rf, nil
}

func (r *refundRepository) GetByID(ctx context.Context, id int64) (*domain.Refund, error) {
	query := `SELECT ` + refundColumns + ` FROM refunds WHERE id = $1`

	rf, err := scanRefund(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFoundError("refund", id)
	}
	if err != nil {
		return nil, err
	}
	return rf, nil
}

func (r *refundRepository) Complete(ctx context.Context, refund *domain.Refund) error {
	logger.DatabaseCall("UPDATE", "refunds", "refundID", refund.ID)

	query := `UPDATE refunds
	          SET status = $1, customer_amount_paise = $2, company_amount_paise = $3, vendor_amount_paise = $4,
	              processed_by = $5, processed_at = $6, updated_at = $6
	          WHERE id = $7 AND status = $8`

	res, err := r.db.ExecContext(ctx, query,
		domain.RefundStatusCompleted, refund.CustomerAmountPaise, refund.CompanyAmountPaise,
		refund.VendorAmountPaise, refund.ProcessedBy, refund.ProcessedAt,
		refund.ID, domain.RefundStatusPending,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrStateConflict
	}
	refund.Status = domain.RefundStatusCompleted
	return nil
}

func (r *refundRepository) Reject(ctx context.Context, id, adminID int64, at time.Time) error {
	query := `UPDATE refunds SET status = $1, processed_by = $2, processed_at = $3, updated_at = $3
	          WHERE id = $4 AND status = $5`

	res, err := r.db.ExecContext(ctx, query,
		domain.RefundStatusRejected, adminID, at, id, domain.RefundStatusPending)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrStateConflict
	}
	return nil
}

func (r *refundRepository) ListByStatus(ctx context.Context, status domain.RefundStatus, page, pageSize int32) ([]domain.Refund, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + refundColumns + ` FROM refunds WHERE status = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`

	rows, err := r.db.QueryContext(ctx, query, status, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var refunds []domain.Refund
	for rows.Next() {
		rf, err := scanRefund(rows)
		if err != nil {
			return nil, 0, err
		}
		refunds = append(refunds, *rf)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var count int32
	countQuery := `SELECT count(*) FROM refunds WHERE status = $1`
	if err := r.db.QueryRowContext(ctx, countQuery, status).Scan(&count); err != nil {
		return nil, 0, err
	}
	return refunds, count, nil
}
