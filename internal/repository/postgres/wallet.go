package postgres

import (
	"context"
	"database/sql"
	"errors"

	"saralevents-backend/internal/domain"
	"saralevents-backend/internal/logger"
	"saralevents-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type walletRepository struct {
	db *sql.DB
}

func NewWalletRepository(db *sql.DB) repository.WalletRepository {
	return &walletRepository{db: db}
}

const walletTxnColumns = `id, transaction_id, wallet_id, vendor_id, txn_type, source, amount_paise, balance_after_paise, booking_id, milestone_id, escrow_transaction_id, refund_id, dedup_key, COALESCE(notes, ''), created_at`

const uniqueViolation = "23505"

func scanWalletTxn(row interface{ Scan(...any) error }) (*domain.WalletTransaction, error) {
	var t domain.WalletTransaction
	var bookingID, milestoneID, escrowTxnID, refundID sql.NullInt64
	err := row.Scan(
		&t.ID, &t.TransactionID, &t.WalletID, &t.VendorID, &t.Type, &t.Source,
		&t.AmountPaise, &t.BalanceAfterPaise, &bookingID, &milestoneID,
		&escrowTxnID, &refundID, &t.DedupKey, &t.Notes, &t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if bookingID.Valid {
		t.BookingID = &bookingID.Int64
	}
	if milestoneID.Valid {
		t.MilestoneID = &milestoneID.Int64
	}
	if escrowTxnID.Valid {
		t.EscrowTransactionID = &escrowTxnID.Int64
	}
	if refundID.Valid {
		t.RefundID = &refundID.Int64
	}
	return &t, nil
}

func (r *walletRepository) GetByVendor(ctx context.Context, vendorID int64) (*domain.VendorWallet, error) {
	query := `SELECT id, vendor_id, balance_paise, pending_withdrawal_paise, total_earned_paise, created_at, updated_at
	          FROM vendor_wallets WHERE vendor_id = $1`

	var w domain.VendorWallet
	err := r.db.QueryRowContext(ctx, query, vendorID).Scan(
		&w.ID, &w.VendorID, &w.BalancePaise, &w.PendingWithdrawalPaise,
		&w.TotalEarnedPaise, &w.CreatedAt, &w.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFoundError("vendor wallet", vendorID)
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *walletRepository) Credit(ctx context.Context, credit *domain.WalletCredit) (*domain.WalletTransaction, error) {
	logger.DatabaseCall("INSERT", "wallet_transactions", "vendorID", credit.VendorID, "dedupKey", credit.DedupKey)

	// A credit with a known dedup key has already been applied; return it as-is.
	existing, err := r.getByDedupKey(ctx, credit.DedupKey)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	// Get-or-create: the unique constraint on vendor_id means two concurrent
	// first credits cannot produce two wallets; the loser's insert is a no-op
	// and both proceed to lock the same row.
	_, err = tx.ExecContext(ctx,
		`INSERT INTO vendor_wallets (vendor_id, balance_paise, pending_withdrawal_paise, total_earned_paise, created_at, updated_at)
		 VALUES ($1, 0, 0, 0, NOW(), NOW())
		 ON CONFLICT (vendor_id) DO NOTHING`,
		credit.VendorID,
	)
	if err != nil {
		return nil, err
	}

	var walletID, balance, totalEarned int64
	err = tx.QueryRowContext(ctx,
		`SELECT id, balance_paise, total_earned_paise FROM vendor_wallets WHERE vendor_id = $1 FOR UPDATE`,
		credit.VendorID,
	).Scan(&walletID, &balance, &totalEarned)
	if err != nil {
		return nil, err
	}

	newBalance := balance + credit.AmountPaise
	newTotalEarned := totalEarned + credit.AmountPaise
	_, err = tx.ExecContext(ctx,
		`UPDATE vendor_wallets SET balance_paise = $1, total_earned_paise = $2, updated_at = NOW() WHERE id = $3`,
		newBalance, newTotalEarned, walletID,
	)
	if err != nil {
		return nil, err
	}

	txn := &domain.WalletTransaction{
		TransactionID:       uuid.NewString(),
		WalletID:            walletID,
		VendorID:            credit.VendorID,
		Type:                domain.WalletTxnTypeCredit,
		Source:              credit.Source,
		AmountPaise:         credit.AmountPaise,
		BalanceAfterPaise:   newBalance,
		BookingID:           credit.BookingID,
		MilestoneID:         credit.MilestoneID,
		EscrowTransactionID: credit.EscrowTransactionID,
		RefundID:            credit.RefundID,
		DedupKey:            credit.DedupKey,
		Notes:               credit.Notes,
	}
	query := `INSERT INTO wallet_transactions
	          (transaction_id, wallet_id, vendor_id, txn_type, source, amount_paise, balance_after_paise, booking_id, milestone_id, escrow_transaction_id, refund_id, dedup_key, notes, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW()) RETURNING id, created_at`
	err = tx.QueryRowContext(ctx, query,
		txn.TransactionID, txn.WalletID, txn.VendorID, txn.Type, txn.Source,
		txn.AmountPaise, txn.BalanceAfterPaise, txn.BookingID, txn.MilestoneID,
		txn.EscrowTransactionID, txn.RefundID, txn.DedupKey, txn.Notes,
	).Scan(&txn.ID, &txn.CreatedAt)
	if err != nil {
		// A concurrent caller applied the same dedup key first; the whole
		// transaction rolls back and their credit stands.
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			tx.Rollback()
			return r.getByDedupKey(ctx, credit.DedupKey)
		}
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return txn, nil
}

func (r *walletRepository) getByDedupKey(ctx context.Context, dedupKey string) (*domain.WalletTransaction, error) {
	query := `SELECT ` + walletTxnColumns + ` FROM wallet_transactions WHERE dedup_key = $1`
	return scanWalletTxn(r.db.QueryRowContext(ctx, query, dedupKey))
}

func (r *walletRepository) ListTransactions(ctx context.Context, vendorID int64, page, pageSize int32) ([]domain.WalletTransaction, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + walletTxnColumns + ` FROM wallet_transactions WHERE vendor_id = $1 ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3`

	rows, err := r.db.QueryContext(ctx, query, vendorID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var txns []domain.WalletTransaction
	for rows.Next() {
		t, err := scanWalletTxn(rows)
		if err != nil {
			return nil, 0, err
		}
		txns = append(txns, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var count int32
	countQuery := `SELECT count(*) FROM wallet_transactions WHERE vendor_id = $1`
	if err := r.db.QueryRowContext(ctx, countQuery, vendorID).Scan(&count); err != nil {
		return nil, 0, err
	}
	return txns, count, nil
}

func (r *walletRepository) ListTransactionsAsc(ctx context.Context, walletID int64) ([]domain.WalletTransaction, error) {
	query := `SELECT ` + walletTxnColumns + ` FROM wallet_transactions WHERE wallet_id = $1 ORDER BY created_at ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query, walletID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txns []domain.WalletTransaction
	for rows.Next() {
		t, err := scanWalletTxn(rows)
		if err != nil {
			return nil, err
		}
		txns = append(txns, *t)
	}
	return txns, rows.Err()
}

func (r *walletRepository) ListVendorIDs(ctx context.Context) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT vendor_id FROM vendor_wallets ORDER BY vendor_id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
