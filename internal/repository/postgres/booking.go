package postgres

import (
	"context"
	"database/sql"
	"errors"

	"saralevents-backend/internal/domain"
	"saralevents-backend/internal/repository"
)

type bookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) repository.BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	query := `SELECT id, customer_id, vendor_id, COALESCE(service_name, ''), total_amount_paise, status, event_date, created_at, updated_at
	          FROM bookings WHERE id = $1`

	var b domain.Booking
	var eventDate sql.NullTime
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&b.ID, &b.CustomerID, &b.VendorID, &b.ServiceName, &b.TotalAmountPaise,
		&b.Status, &eventDate, &b.CreatedAt, &b.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFoundError("booking", id)
	}
	if err != nil {
		return nil, err
	}
	if eventDate.Valid {
		b.EventDate = &eventDate.Time
	}
	return &b, nil
}
