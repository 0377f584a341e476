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

type escrowRepository struct {
	db *sql.DB
}

func NewEscrowRepository(db *sql.DB) repository.EscrowRepository {
	return &escrowRepository{db: db}
}

func (r *escrowRepository) RecordRelease(ctx context.Context, txn *domain.EscrowTransaction) error {
	logger.DatabaseCall("INSERT", "escrow_transactions", "milestoneID", txn.MilestoneID)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Conditional update first: a lost race aborts before anything is written.
	res, err := tx.ExecContext(ctx,
		`UPDATE payment_milestones SET status = $1, escrow_released_at = $2, updated_at = $2
		 WHERE id = $3 AND status = $4`,
		domain.MilestoneStatusReleased, txn.AdminVerifiedAt, txn.MilestoneID, domain.MilestoneStatusHeldInEscrow,
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

	query := `INSERT INTO escrow_transactions
	          (transaction_id, booking_id, milestone_id, vendor_id, transaction_type, gross_amount_paise, commission_paise, vendor_amount_paise, status, admin_verified_by, admin_verified_at, vendor_wallet_credited, notes, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, false, $12, $11) RETURNING id`
	err = tx.QueryRowContext(ctx, query,
		txn.TransactionID, txn.BookingID, txn.MilestoneID, txn.VendorID, txn.Type,
		txn.GrossAmountPaise, txn.CommissionPaise, txn.VendorAmountPaise, txn.Status,
		txn.AdminVerifiedBy, txn.AdminVerifiedAt, txn.Notes,
	).Scan(&txn.ID)
	if err != nil {
		return err
	}
	txn.CreatedAt = txn.AdminVerifiedAt

	return tx.Commit()
}

func (r *escrowRepository) GetByMilestone(ctx context.Context, milestoneID int64) (*domain.EscrowTransaction, error) {
	query := `SELECT id, transaction_id, booking_id, milestone_id, vendor_id, transaction_type, gross_amount_paise, commission_paise, vendor_amount_paise, status, admin_verified_by, admin_verified_at, vendor_wallet_credited, COALESCE(notes, ''), created_at
	          FROM escrow_transactions WHERE milestone_id = $1`

	var t domain.EscrowTransaction
	err := r.db.QueryRowContext(ctx, query, milestoneID).Scan(
		&t.ID, &t.TransactionID, &t.BookingID, &t.MilestoneID, &t.VendorID, &t.Type,
		&t.GrossAmountPaise, &t.CommissionPaise, &t.VendorAmountPaise, &t.Status,
		&t.AdminVerifiedBy, &t.AdminVerifiedAt, &t.VendorWalletCredited, &t.Notes, &t.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFoundError("escrow transaction for milestone", milestoneID)
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *escrowRepository) MarkWalletCredited(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE escrow_transactions SET vendor_wallet_credited = true WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.NewNotFoundError("escrow transaction", id)
	}
	return nil
}

func (r *escrowRepository) ListUncredited(ctx context.Context, olderThan time.Time) ([]domain.EscrowTransaction, error) {
	query := `SELECT id, transaction_id, booking_id, milestone_id, vendor_id, transaction_type, gross_amount_paise, commission_paise, vendor_amount_paise, status, admin_verified_by, admin_verified_at, vendor_wallet_credited, COALESCE(notes, ''), created_at
	          FROM escrow_transactions
	          WHERE vendor_wallet_credited = false AND created_at < $1
	          ORDER BY created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, olderThan)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txns []domain.EscrowTransaction
	for rows.Next() {
		var t domain.EscrowTransaction
		if err := rows.Scan(
			&t.ID, &t.TransactionID, &t.BookingID, &t.MilestoneID, &t.VendorID, &t.Type,
			&t.GrossAmountPaise, &t.CommissionPaise, &t.VendorAmountPaise, &t.Status,
			&t.AdminVerifiedBy, &t.AdminVerifiedAt, &t.VendorWalletCredited, &t.Notes, &t.CreatedAt,
		); err != nil {
			return nil, err
		}
		txns = append(txns, t)
	}
	return txns, rows.Err()
}
