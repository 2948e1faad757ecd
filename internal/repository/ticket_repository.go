package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/hotel-room-booking/internal/model"
)

// TicketRepo resolves an enrollment to its ticket.  The joined
// ticket_types row is loaded in the same query so callers receive
// the remote and hotel-inclusion flags alongside the payment status.
type TicketRepo struct {
	db *sql.DB
}

// NewTicketRepo returns a new TicketRepo bound to the given database.
func NewTicketRepo(db *sql.DB) *TicketRepo { return &TicketRepo{db: db} }

// FindByEnrollment returns the ticket attached to an enrollment.
// ErrTicketNotFound is returned when the enrollment has no ticket.
func (r *TicketRepo) FindByEnrollment(ctx context.Context, enrollmentID uint64) (*model.Ticket, error) {
	const q = `SELECT t.id, t.enrollment_id, t.ticket_type_id, t.status,
	                  tt.id, tt.name, tt.is_remote, tt.includes_hotel, tt.price_cents,
	                  t.created_at, t.updated_at
	           FROM tickets t
	           JOIN ticket_types tt ON tt.id = t.ticket_type_id
	           WHERE t.enrollment_id = ? LIMIT 1`
	var t model.Ticket
	err := r.db.QueryRowContext(ctx, q, enrollmentID).Scan(
		&t.ID, &t.EnrollmentID, &t.TicketTypeID, &t.Status,
		&t.Type.ID, &t.Type.Name, &t.Type.IsRemote, &t.Type.IncludesHotel, &t.Type.PriceCents,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTicketNotFound
		}
		return nil, err
	}
	return &t, nil
}
