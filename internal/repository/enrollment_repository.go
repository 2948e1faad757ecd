package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/hotel-room-booking/internal/model"
)

// EnrollmentRepo resolves a user to their event enrollment.  Exactly
// one enrollment per user is assumed; the lookup is a plain point
// query with no caching or retries.
type EnrollmentRepo struct {
	db *sql.DB
}

// NewEnrollmentRepo returns a new EnrollmentRepo bound to the given database.
func NewEnrollmentRepo(db *sql.DB) *EnrollmentRepo { return &EnrollmentRepo{db: db} }

// GetByUser returns the enrollment belonging to the given user.
// ErrEnrollmentNotFound is returned when the user never enrolled.
func (r *EnrollmentRepo) GetByUser(ctx context.Context, userID uint64) (*model.Enrollment, error) {
	const q = `SELECT id, user_id, created_at, updated_at FROM enrollments WHERE user_id = ? LIMIT 1`
	var e model.Enrollment
	err := r.db.QueryRowContext(ctx, q, userID).Scan(&e.ID, &e.UserID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEnrollmentNotFound
		}
		return nil, err
	}
	return &e, nil
}
