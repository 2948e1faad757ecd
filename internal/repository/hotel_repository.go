package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/hotel-room-booking/internal/model"
)

// HotelRepo provides read access to the hotels catalog.  Like rooms,
// hotels are owned by an upstream system and are never written here.
type HotelRepo struct {
	db *sql.DB
}

// NewHotelRepo returns a new HotelRepo bound to the given database.
func NewHotelRepo(db *sql.DB) *HotelRepo { return &HotelRepo{db: db} }

// List returns all hotels ordered by name.  When no hotels exist an
// empty slice is returned.
func (r *HotelRepo) List(ctx context.Context) ([]model.Hotel, error) {
	const q = `SELECT id, name, image, created_at, updated_at FROM hotels ORDER BY name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	hotels := make([]model.Hotel, 0)
	for rows.Next() {
		var h model.Hotel
		if err := rows.Scan(&h.ID, &h.Name, &h.Image, &h.CreatedAt, &h.UpdatedAt); err != nil {
			return nil, err
		}
		hotels = append(hotels, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return hotels, nil
}

// GetByID returns a single hotel.  ErrHotelNotFound is returned when
// no row matches.
func (r *HotelRepo) GetByID(ctx context.Context, id uint64) (*model.Hotel, error) {
	const q = `SELECT id, name, image, created_at, updated_at FROM hotels WHERE id = ?`
	var h model.Hotel
	err := r.db.QueryRowContext(ctx, q, id).Scan(&h.ID, &h.Name, &h.Image, &h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrHotelNotFound
		}
		return nil, err
	}
	return &h, nil
}
