package postgres

import (
	"database/sql"

	"saralevents-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.BookingRepository
	repository.MilestoneRepository
	repository.EscrowRepository
	repository.RefundRepository
	repository.WalletRepository
	repository.ReconciliationRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                       db,
		BookingRepository:        NewBookingRepository(db),
		MilestoneRepository:      NewMilestoneRepository(db),
		EscrowRepository:         NewEscrowRepository(db),
		RefundRepository:         NewRefundRepository(db),
		WalletRepository:         NewWalletRepository(db),
		ReconciliationRepository: NewReconciliationRepository(db),
	}
}
