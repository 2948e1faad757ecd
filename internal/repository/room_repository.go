package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/hotel-room-booking/internal/model"
)

// RoomRepo provides read access to the rooms catalog.  Rooms are
// created and maintained by an upstream system; this service never
// mutates them, it only resolves a room to its capacity and hotel.
type RoomRepo struct {
	db *sql.DB
}

// NewRoomRepo returns a new RoomRepo bound to the given database.
func NewRoomRepo(db *sql.DB) *RoomRepo { return &RoomRepo{db: db} }

// FindByID returns the room with the given ID.  ErrRoomNotFound is
// returned when no such room exists.
func (r *RoomRepo) FindByID(ctx context.Context, id uint64) (*model.Room, error) {
	const q = `SELECT id, hotel_id, name, capacity, created_at, updated_at
	           FROM rooms WHERE id = ?`
	var room model.Room
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&room.ID, &room.HotelID, &room.Name, &room.Capacity,
		&room.CreatedAt, &room.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return &room, nil
}

// RoomWithOccupancy pairs a room with its current booking count.  It
// is returned by ListByHotel so browse endpoints can show remaining
// vacancies without issuing a count query per room.
type RoomWithOccupancy struct {
	ID        uint64 `json:"id"`
	HotelID   uint64 `json:"hotel_id"`
	Name      string `json:"name"`
	Capacity  uint32 `json:"capacity"`
	Booked    uint32 `json:"booked"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// ListByHotel returns all rooms of a hotel together with the number
// of bookings currently assigned to each.  Rooms with no bookings
// report zero.  Results are ordered by room name for deterministic
// output.  When the hotel has no rooms, an empty slice is returned.
func (r *RoomRepo) ListByHotel(ctx context.Context, hotelID uint64) ([]RoomWithOccupancy, error) {
	const q = `SELECT r.id, r.hotel_id, r.name, r.capacity,
	                  COUNT(b.id), r.created_at, r.updated_at
	           FROM rooms r
	           LEFT JOIN bookings b ON b.room_id = r.id
	           WHERE r.hotel_id = ?
	           GROUP BY r.id, r.hotel_id, r.name, r.capacity, r.created_at, r.updated_at
	           ORDER BY r.name`
	rows, err := r.db.QueryContext(ctx, q, hotelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]RoomWithOccupancy, 0)
	for rows.Next() {
		var rec RoomWithOccupancy
		var created, updated sql.NullTime
		if err := rows.Scan(&rec.ID, &rec.HotelID, &rec.Name, &rec.Capacity,
			&rec.Booked, &created, &updated); err != nil {
			return nil, err
		}
		if created.Valid {
			rec.CreatedAt = created.Time.UTC().Format(time.RFC3339)
		}
		if updated.Valid {
			rec.UpdatedAt = updated.Time.UTC().Format(time.RFC3339)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
