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

type reconciliationRepository struct {
	db *sql.DB
}

func NewReconciliationRepository(db *sql.DB) repository.ReconciliationRepository {
	return &reconciliationRepository{db: db}
}

func (r *reconciliationRepository) Create(ctx context.Context, rec *domain.WalletCreditReconciliation) error {
	logger.DatabaseCall("INSERT", "wallet_credit_reconciliations", "vendorID", rec.VendorID, "dedupKey", rec.DedupKey)

	query := `INSERT INTO wallet_credit_reconciliations
	          (vendor_id, amount_paise, source, dedup_key, booking_id, milestone_id, escrow_transaction_id, refund_id, notes, attempts, last_error, status, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW()) RETURNING id, created_at`

	return r.db.QueryRowContext(ctx, query,
		rec.VendorID, rec.AmountPaise, rec.Source, rec.DedupKey,
		rec.BookingID, rec.MilestoneID, rec.EscrowTransactionID, rec.RefundID,
		rec.Notes, rec.Attempts, rec.LastError, rec.Status,
	).Scan(&rec.ID, &rec.CreatedAt)
}

func (r *reconciliationRepository) ListPending(ctx context.Context, limit int32) ([]domain.WalletCreditReconciliation, error) {
	query := `SELECT id, vendor_id, amount_paise, source, dedup_key, booking_id, milestone_id, escrow_transaction_id, refund_id, COALESCE(notes, ''), attempts, COALESCE(last_error, ''), status, created_at, resolved_at
	          FROM wallet_credit_reconciliations
	          WHERE status = $1 ORDER BY created_at ASC LIMIT $2`

	rows, err := r.db.QueryContext(ctx, query, domain.ReconciliationStatusPending, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []domain.WalletCreditReconciliation
	for rows.Next() {
		var rec domain.WalletCreditReconciliation
		var bookingID, milestoneID, escrowTxnID, refundID sql.NullInt64
		var resolvedAt sql.NullTime
		err := rows.Scan(
			&rec.ID, &rec.VendorID, &rec.AmountPaise, &rec.Source, &rec.DedupKey,
			&bookingID, &milestoneID, &escrowTxnID, &refundID,
			&rec.Notes, &rec.Attempts, &rec.LastError, &rec.Status,
			&rec.CreatedAt, &resolvedAt,
		)
		if err != nil {
			return nil, err
		}
		if bookingID.Valid {
			rec.BookingID = &bookingID.Int64
		}
		if milestoneID.Valid {
			rec.MilestoneID = &milestoneID.Int64
		}
		if escrowTxnID.Valid {
			rec.EscrowTransactionID = &escrowTxnID.Int64
		}
		if refundID.Valid {
			rec.RefundID = &refundID.Int64
		}
		if resolvedAt.Valid {
			rec.ResolvedAt = &resolvedAt.Time
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

func (r *reconciliationRepository) MarkCredited(ctx context.Context, id int64, at time.Time) error {
	return r.resolve(ctx, id, domain.ReconciliationStatusCredited, at)
}

func (r *reconciliationRepository) MarkAbandoned(ctx context.Context, id int64, at time.Time) error {
	return r.resolve(ctx, id, domain.ReconciliationStatusAbandoned, at)
}

func (r *reconciliationRepository) resolve(ctx context.Context, id int64, status domain.ReconciliationStatus, at time.Time) error {
	query := `UPDATE wallet_credit_reconciliations SET status = $1, resolved_at = $2
	          WHERE id = $3 AND status = $4`

	result, err := r.db.ExecContext(ctx, query, status, at, id, domain.ReconciliationStatusPending)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrStateConflict
	}
	return nil
}

func (r *reconciliationRepository) RecordFailedAttempt(ctx context.Context, id int64, lastError string) error {
	query := `UPDATE wallet_credit_reconciliations SET attempts = attempts + 1, last_error = $1
	          WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, lastError, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return errors.New("reconciliation entry not found")
	}
	return nil
}
