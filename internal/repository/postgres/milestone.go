package postgres

import (
	"context"
	"database/sql"
	"errors"

	"saralevents-backend/internal/domain"
	"saralevents-backend/internal/repository"
)

type milestoneRepository struct {
	db *sql.DB
}

func NewMilestoneRepository(db *sql.DB) repository.MilestoneRepository {
	return &milestoneRepository{db: db}
}

const milestoneColumns = `id, booking_id, milestone_type, percentage, amount_paise, status, escrow_held_at, escrow_released_at, created_at, updated_at`

func scanMilestone(row interface{ Scan(...any) error }) (*domain.PaymentMilestone, error) {
	var m domain.PaymentMilestone
	var heldAt, releasedAt sql.NullTime
	err := row.Scan(
		&m.ID, &m.BookingID, &m.Type, &m.Percentage, &m.AmountPaise, &m.Status,
		&heldAt, &releasedAt, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if heldAt.Valid {
		m.EscrowHeldAt = &heldAt.Time
	}
	if releasedAt.Valid {
		m.EscrowReleasedAt = &releasedAt.Time
	}
	return &m, nil
}

func (r *milestoneRepository) GetByID(ctx context.Context, id int64) (*domain.PaymentMilestone, error) {
	query := `SELECT ` + milestoneColumns + ` FROM payment_milestones WHERE id = $1`

	m, err := scanMilestone(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewNotFoundError("payment milestone", id)
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *milestoneRepository) ListByBooking(ctx context.Context, bookingID int64) ([]domain.PaymentMilestone, error) {
	query := `SELECT ` + milestoneColumns + ` FROM payment_milestones WHERE booking_id = $1 ORDER BY percentage ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var milestones []domain.PaymentMilestone
	for rows.Next() {
		m, err := scanMilestone(rows)
		if err != nil {
			return nil, err
		}
		milestones = append(milestones, *m)
	}
	return milestones, rows.Err()
}
